package public

import "github.com/jewelbridge/internal/provider"

// Handler 前台/公开接口处理器入口
// 说明：目录浏览、会话、购物车与到店预约接口。
type Handler struct {
	*provider.Container
}

// New 创建前台处理器
func New(c *provider.Container) *Handler {
	return &Handler{Container: c}
}
