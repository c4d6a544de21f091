package public

import (
	"strings"

	handlershared "github.com/jewelbridge/internal/http/handlers/shared"
	"github.com/jewelbridge/internal/http/response"
	"github.com/jewelbridge/internal/models"
	"github.com/jewelbridge/internal/service"

	"github.com/gin-gonic/gin"
)

// CreateVisitRequestRequest 创建到店预约请求
type CreateVisitRequestRequest struct {
	ShopID string `json:"shop_id" binding:"required"`
}

// VisitRequestView 到店预约响应结构
type VisitRequestView struct {
	models.VisitRequest
	ShopName     string `json:"shop_name"`
	TotalDisplay string `json:"total_display"`
}

func (h *Handler) visitRequestView(request models.VisitRequest) VisitRequestView {
	view := VisitRequestView{
		VisitRequest: request,
		TotalDisplay: service.FormatPrice(request.TotalEstimatedAmount),
	}
	if shop, ok := h.CatalogService.ShopByID(request.ShopID); ok {
		view.ShopName = shop.Name
	}
	return view
}

// CreateVisitRequest 将购物车中某店铺的商品转为到店预约
func (h *Handler) CreateVisitRequest(c *gin.Context) {
	session, ok := getSession(c)
	if !ok {
		return
	}
	var req CreateVisitRequestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", nil)
		return
	}
	notices := &service.NoticeCollector{}
	request, err := h.VisitRequestService.Create(c.Request.Context(), session, strings.TrimSpace(req.ShopID), notices)
	if err != nil {
		respondVisitRequestCreateError(c, err)
		return
	}
	response.Success(c, gin.H{
		"visit_request": h.visitRequestView(*request),
		"cart":          cartResponse(session.Cart, nil),
		"notices":       notices.Notices(),
	})
}

// ListVisitRequests 当前会话创建的到店预约
func (h *Handler) ListVisitRequests(c *gin.Context) {
	session, ok := getSession(c)
	if !ok {
		return
	}
	page, pageSize := handlershared.ParsePagination(c)

	requests, total, err := h.VisitRequestService.ListBySession(session.ID, page, pageSize)
	if err != nil {
		respondError(c, response.CodeInternal, "error.visit_request_fetch_failed", err)
		return
	}
	views := make([]VisitRequestView, 0, len(requests))
	for _, request := range requests {
		views = append(views, h.visitRequestView(request))
	}
	response.SuccessWithPage(c, views, response.NewPagination(page, pageSize, total))
}
