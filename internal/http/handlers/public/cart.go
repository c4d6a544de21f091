package public

import (
	"strings"

	"github.com/jewelbridge/internal/http/response"
	"github.com/jewelbridge/internal/service"

	"github.com/gin-gonic/gin"
)

// AddCartItemRequest 加入购物车请求
type AddCartItemRequest struct {
	ProductID string `json:"product_id" binding:"required"`
	Quantity  int    `json:"quantity"`
}

// UpdateCartItemRequest 修改数量请求
type UpdateCartItemRequest struct {
	Quantity *int `json:"quantity" binding:"required"`
}

// CartResponse 购物车响应
type CartResponse struct {
	Items        []service.CartItem      `json:"items"`
	Shops        []service.ShopCartGroup `json:"shops"`
	Count        int                     `json:"count"`
	Total        int64                   `json:"total"`
	TotalDisplay string                  `json:"total_display"`
	Notices      []service.Notice        `json:"notices"`
}

func cartResponse(cart *service.CartLedger, notices *service.NoticeCollector) CartResponse {
	snap := cart.Snapshot()
	return CartResponse{
		Items:        snap.Items,
		Shops:        snap.Shops,
		Count:        snap.Count,
		Total:        snap.Total,
		TotalDisplay: service.FormatPrice(snap.Total),
		Notices:      notices.Notices(),
	}
}

// GetCart 获取购物车
func (h *Handler) GetCart(c *gin.Context) {
	session, ok := getSession(c)
	if !ok {
		return
	}
	response.Success(c, cartResponse(session.Cart, nil))
}

// AddCartItem 加入购物车（超出库存时截断）
func (h *Handler) AddCartItem(c *gin.Context) {
	session, ok := getSession(c)
	if !ok {
		return
	}
	var req AddCartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", nil)
		return
	}
	product, found := h.CatalogService.ProductByID(strings.TrimSpace(req.ProductID))
	if !found || !product.IsActive {
		respondError(c, response.CodeNotFound, "error.product_not_found", nil)
		return
	}
	notices := &service.NoticeCollector{}
	session.Cart.Add(product, req.Quantity, notices)
	response.Success(c, cartResponse(session.Cart, notices))
}

// UpdateCartItem 修改数量，0 或负数等同移除
func (h *Handler) UpdateCartItem(c *gin.Context) {
	session, ok := getSession(c)
	if !ok {
		return
	}
	var req UpdateCartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", nil)
		return
	}
	notices := &service.NoticeCollector{}
	session.Cart.UpdateQuantity(strings.TrimSpace(c.Param("product_id")), *req.Quantity, notices)
	response.Success(c, cartResponse(session.Cart, notices))
}

// RemoveCartItem 移除购物车项
func (h *Handler) RemoveCartItem(c *gin.Context) {
	session, ok := getSession(c)
	if !ok {
		return
	}
	notices := &service.NoticeCollector{}
	session.Cart.Remove(strings.TrimSpace(c.Param("product_id")), notices)
	response.Success(c, cartResponse(session.Cart, notices))
}

// ClearCart 清空购物车
func (h *Handler) ClearCart(c *gin.Context) {
	session, ok := getSession(c)
	if !ok {
		return
	}
	session.Cart.Clear()
	response.Success(c, cartResponse(session.Cart, nil))
}
