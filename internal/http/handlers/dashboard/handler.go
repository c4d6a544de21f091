package dashboard

import (
	handlershared "github.com/jewelbridge/internal/http/handlers/shared"
	"github.com/jewelbridge/internal/provider"

	"github.com/gin-gonic/gin"
)

// Handler 店铺仪表盘接口处理器
type Handler struct {
	*provider.Container
}

// New 创建仪表盘处理器
func New(c *provider.Container) *Handler {
	return &Handler{Container: c}
}

func respondError(c *gin.Context, code int, key string, err error) {
	handlershared.RespondError(c, code, key, err)
}
