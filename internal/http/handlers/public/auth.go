package public

import (
	"strings"

	"github.com/jewelbridge/internal/http/response"
	"github.com/jewelbridge/internal/models"
	"github.com/jewelbridge/internal/service"

	"github.com/gin-gonic/gin"
)

// LoginRequest 登录请求
type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password"`
	Role     string `json:"role" binding:"required"`
}

// RegisterRequest 注册请求
type RegisterRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required"`
	Password string `json:"password"`
	Role     string `json:"role" binding:"required"`
	City     string `json:"city"`
	Area     string `json:"area"`
	Phone    string `json:"phone"`
	ShopName string `json:"shop_name"`
}

// MeResponse 当前会话身份
type MeResponse struct {
	SessionID     string        `json:"session_id"`
	Authenticated bool          `json:"authenticated"`
	Role          models.Role   `json:"role"`
	User          *service.User `json:"user"`
}

func meResponse(session *service.Session) MeResponse {
	resp := MeResponse{SessionID: session.ID, Role: session.Role()}
	if user, ok := session.User(); ok {
		resp.Authenticated = true
		resp.User = &user
	}
	return resp
}

// Login 登录（认证后端由配置决定）
func (h *Handler) Login(c *gin.Context) {
	session, ok := getSession(c)
	if !ok {
		return
	}
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", nil)
		return
	}
	role, err := models.ParseRole(req.Role)
	if err != nil {
		respondError(c, response.CodeBadRequest, "error.invalid_role", nil)
		return
	}
	if _, err := h.SessionService.Login(c.Request.Context(), session, service.LoginInput{
		Email:    strings.TrimSpace(req.Email),
		Password: req.Password,
		Role:     role,
	}); err != nil {
		respondLoginError(c, err)
		return
	}
	response.Success(c, meResponse(session))
}

// Register 注册并登录
func (h *Handler) Register(c *gin.Context) {
	session, ok := getSession(c)
	if !ok {
		return
	}
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", nil)
		return
	}
	role, err := models.ParseRole(req.Role)
	if err != nil {
		respondError(c, response.CodeBadRequest, "error.invalid_role", nil)
		return
	}
	if _, err := h.SessionService.Register(c.Request.Context(), session, service.RegisterInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
		Role:     role,
		City:     req.City,
		Area:     req.Area,
		Phone:    req.Phone,
		ShopName: req.ShopName,
	}); err != nil {
		respondRegisterError(c, err)
		return
	}
	response.Success(c, meResponse(session))
}

// Logout 退出登录，购物车保留
func (h *Handler) Logout(c *gin.Context) {
	session, ok := getSession(c)
	if !ok {
		return
	}
	h.SessionService.Logout(session)
	response.Success(c, meResponse(session))
}

// GetMe 当前会话身份
func (h *Handler) GetMe(c *gin.Context) {
	session, ok := getSession(c)
	if !ok {
		return
	}
	response.Success(c, meResponse(session))
}
