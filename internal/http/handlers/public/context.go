package public

import (
	handlershared "github.com/jewelbridge/internal/http/handlers/shared"
	"github.com/jewelbridge/internal/service"

	"github.com/gin-gonic/gin"
)

func getSession(c *gin.Context) (*service.Session, bool) {
	return handlershared.GetSession(c)
}

func respondError(c *gin.Context, code int, key string, err error) {
	handlershared.RespondError(c, code, key, err)
}
