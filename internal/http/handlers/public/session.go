package public

import (
	"github.com/jewelbridge/internal/http/response"
	"github.com/jewelbridge/internal/service"

	"github.com/gin-gonic/gin"
)

// SessionResponse 会话签发响应
type SessionResponse struct {
	SessionID string               `json:"session_id"`
	Token     service.SessionToken `json:"token"`
}

// CreateSession 创建匿名会话
func (h *Handler) CreateSession(c *gin.Context) {
	session, token, err := h.SessionService.Create()
	if err != nil {
		respondError(c, response.CodeInternal, "error.session_create_failed", err)
		return
	}
	response.Success(c, SessionResponse{SessionID: session.ID, Token: token})
}
