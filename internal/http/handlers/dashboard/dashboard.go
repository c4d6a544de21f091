package dashboard

import (
	"errors"
	"strconv"
	"strings"
	"time"

	handlershared "github.com/jewelbridge/internal/http/handlers/shared"
	"github.com/jewelbridge/internal/http/response"
	"github.com/jewelbridge/internal/models"
	"github.com/jewelbridge/internal/repository"
	"github.com/jewelbridge/internal/service"

	"github.com/gin-gonic/gin"
)

// PatchVisitRequestRequest 仪表盘预约操作请求
type PatchVisitRequestRequest struct {
	Action string `json:"action" binding:"required"`
}

// dashboardUser 取当前登录用户；店主的店铺不在目录中时改用首个店铺
func (h *Handler) dashboardUser(c *gin.Context) (service.User, bool) {
	session, ok := handlershared.GetSession(c)
	if !ok {
		return service.User{}, false
	}
	user, ok := session.User()
	if !ok {
		respondError(c, response.CodeUnauthorized, "error.unauthorized", nil)
		return service.User{}, false
	}
	if user.Role == models.RoleShopkeeper {
		user.ShopID = h.CatalogService.DashboardShopID(user.ShopID)
	}
	return user, true
}

// resolveShop 解析当前用户可访问的店铺，失败时已写出响应
func (h *Handler) resolveShop(c *gin.Context) (service.User, string, bool) {
	user, ok := h.dashboardUser(c)
	if !ok {
		return service.User{}, "", false
	}
	shopID, err := service.ResolveDashboardShop(user, c.Query("shop_id"))
	if err != nil {
		respondError(c, response.CodeForbidden, "error.forbidden_shop", nil)
		return service.User{}, "", false
	}
	if shopID != "" {
		if _, ok := h.CatalogService.ShopByID(shopID); !ok {
			respondError(c, response.CodeNotFound, "error.shop_not_found", nil)
			return service.User{}, "", false
		}
	}
	return user, shopID, true
}

// GetOverview 获取店铺仪表盘总览
func (h *Handler) GetOverview(c *gin.Context) {
	_, shopID, ok := h.resolveShop(c)
	if !ok {
		return
	}
	refresh := false
	if raw := strings.TrimSpace(c.Query("refresh")); raw != "" {
		parsed, err := strconv.ParseBool(raw)
		if err != nil {
			respondError(c, response.CodeBadRequest, "error.bad_request", err)
			return
		}
		refresh = parsed
	}

	data, err := h.DashboardService.GetOverview(c.Request.Context(), service.DashboardQueryInput{
		ShopID:       shopID,
		ForceRefresh: refresh,
	})
	if err != nil {
		respondError(c, response.CodeInternal, "error.dashboard_fetch_failed", err)
		return
	}
	response.Success(c, data)
}

// GetProducts 店铺商品库存表
func (h *Handler) GetProducts(c *gin.Context) {
	_, shopID, ok := h.resolveShop(c)
	if !ok {
		return
	}
	response.Success(c, h.DashboardService.ListProducts(shopID))
}

// GetVisitRequests 店铺收到的到店预约
// 支持 status、customer_id、created_from、created_to（RFC3339）过滤
func (h *Handler) GetVisitRequests(c *gin.Context) {
	_, shopID, ok := h.resolveShop(c)
	if !ok {
		return
	}
	page, pageSize := handlershared.ParsePagination(c)

	createdFrom, err := parseTimeNullable(strings.TrimSpace(c.Query("created_from")))
	if err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}
	createdTo, err := parseTimeNullable(strings.TrimSpace(c.Query("created_to")))
	if err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}

	filter := repository.VisitRequestListFilter{
		Page:        page,
		PageSize:    pageSize,
		CustomerID:  strings.TrimSpace(c.Query("customer_id")),
		Status:      strings.TrimSpace(c.Query("status")),
		CreatedFrom: createdFrom,
		CreatedTo:   createdTo,
	}
	var (
		requests []models.VisitRequest
		total    int64
	)
	if shopID == "" {
		requests, total, err = h.VisitRequestService.ListAll(filter)
	} else {
		requests, total, err = h.VisitRequestService.ListByShop(shopID, filter)
	}
	if err != nil {
		respondError(c, response.CodeInternal, "error.visit_request_fetch_failed", err)
		return
	}

	response.SuccessWithPage(c, requests, response.NewPagination(page, pageSize, total))
}

func parseTimeNullable(raw string) (*time.Time, error) {
	if raw == "" {
		return nil, nil
	}
	parsed, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return nil, err
	}
	return &parsed, nil
}

// PatchVisitRequest 确认、完成或取消到店预约
func (h *Handler) PatchVisitRequest(c *gin.Context) {
	user, ok := h.dashboardUser(c)
	if !ok {
		return
	}
	var req PatchVisitRequestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", nil)
		return
	}
	status, ok := service.DashboardActionStatus(req.Action)
	if !ok {
		respondError(c, response.CodeBadRequest, "error.visit_request_action_invalid", nil)
		return
	}

	current, err := h.VisitRequestService.Get(c.Param("id"))
	if err != nil {
		if errors.Is(err, service.ErrVisitRequestNotFound) {
			respondError(c, response.CodeNotFound, "error.visit_request_not_found", nil)
			return
		}
		respondError(c, response.CodeInternal, "error.visit_request_fetch_failed", err)
		return
	}
	if _, err := service.ResolveDashboardShop(user, current.ShopID); err != nil {
		respondError(c, response.CodeForbidden, "error.forbidden_shop", nil)
		return
	}

	updated, err := h.VisitRequestService.Transition(c.Request.Context(), current.ID, status)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrVisitRequestStatusInvalid):
			respondError(c, response.CodeBadRequest, "error.visit_request_status_invalid", nil)
		case errors.Is(err, service.ErrVisitRequestNotFound):
			respondError(c, response.CodeNotFound, "error.visit_request_not_found", nil)
		default:
			respondError(c, response.CodeInternal, "error.internal", err)
		}
		return
	}
	response.Success(c, updated)
}
