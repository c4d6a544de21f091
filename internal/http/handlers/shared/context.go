package shared

import (
	"github.com/jewelbridge/internal/constants"
	"github.com/jewelbridge/internal/http/response"
	"github.com/jewelbridge/internal/service"

	"github.com/gin-gonic/gin"
)

// GetSession 读取会话中间件注入的会话，缺失时返回未授权响应。
func GetSession(c *gin.Context) (*service.Session, bool) {
	value, exists := c.Get(constants.ContextKeySession)
	if !exists {
		RespondError(c, response.CodeUnauthorized, "error.unauthorized", nil)
		return nil, false
	}
	session, ok := value.(*service.Session)
	if !ok || session == nil {
		RespondError(c, response.CodeInternal, "error.internal", nil)
		return nil, false
	}
	return session, true
}
