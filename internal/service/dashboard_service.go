package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jewelbridge/internal/cache"
	"github.com/jewelbridge/internal/constants"
	"github.com/jewelbridge/internal/models"
	"github.com/jewelbridge/internal/repository"
)

const (
	dashboardCacheTTL        = 45 * time.Second
	dashboardTopProductLimit = 5
)

// DashboardService 店铺仪表盘服务
// 说明：聚合店主首页的库存与预约数据。
type DashboardService struct {
	repo    repository.DashboardRepository
	catalog *CatalogService
}

// NewDashboardService 创建仪表盘服务
func NewDashboardService(repo repository.DashboardRepository, catalog *CatalogService) *DashboardService {
	return &DashboardService{repo: repo, catalog: catalog}
}

// DashboardQueryInput 仪表盘查询输入，ShopID 为空表示全部店铺
type DashboardQueryInput struct {
	ShopID       string
	ForceRefresh bool
}

// DashboardOverviewResponse 仪表盘总览响应
type DashboardOverviewResponse struct {
	ShopID      string                    `json:"shop_id"`
	Shop        *models.Shop              `json:"shop,omitempty"`
	Currency    string                    `json:"currency"`
	KPI         DashboardKPI              `json:"kpi"`
	Alerts      []DashboardAlertItem      `json:"alerts"`
	TopProducts []DashboardProductRanking `json:"top_products"`
	GeneratedAt time.Time                 `json:"generated_at"`
}

// DashboardKPI 仪表盘核心指标
type DashboardKPI struct {
	ProductsListed       int64  `json:"products_listed"`
	UnitsInStock         int64  `json:"units_in_stock"`
	LowStockProducts     int64  `json:"low_stock_products"`
	OutOfStockProducts   int64  `json:"out_of_stock_products"`
	VisitRequestsTotal   int64  `json:"visit_requests_total"`
	PendingRequests      int64  `json:"pending_requests"`
	ConfirmedRequests    int64  `json:"confirmed_requests"`
	CompletedRequests    int64  `json:"completed_requests"`
	CancelledRequests    int64  `json:"cancelled_requests"`
	ExpiredRequests      int64  `json:"expired_requests"`
	OpenHoldValue        int64  `json:"open_hold_value"`
	OpenHoldValueDisplay string `json:"open_hold_value_display"`
}

// DashboardAlertItem 仪表盘告警项
type DashboardAlertItem struct {
	Type  string `json:"type"`
	Level string `json:"level"`
	Value int64  `json:"value"`
}

// DashboardProductRanking 被预约商品排行项
type DashboardProductRanking struct {
	ProductID    string `json:"product_id"`
	Name         string `json:"name"`
	RequestCount int64  `json:"request_count"`
	Quantity     int64  `json:"quantity"`
	EstimatedGMV string `json:"estimated_gmv"`
}

// DashboardProductRow 店铺商品表行
type DashboardProductRow struct {
	models.Product
	StockStatus  string `json:"stock_status"`
	PriceDisplay string `json:"price_display"`
}

func dashboardShopKey(shopID string) string {
	if value := strings.TrimSpace(shopID); value != "" {
		return value
	}
	return constants.FilterAll
}

func dashboardOverviewCachePrefix(shopID string) string {
	return fmt.Sprintf("dashboard:overview:%s:", dashboardShopKey(shopID))
}

// GetOverview 获取仪表盘总览
func (s *DashboardService) GetOverview(ctx context.Context, input DashboardQueryInput) (*DashboardOverviewResponse, error) {
	if s == nil || s.repo == nil {
		return &DashboardOverviewResponse{}, nil
	}
	shopID := strings.TrimSpace(input.ShopID)
	threshold := s.catalog.LowStockThreshold()

	cacheKey := fmt.Sprintf("%s%d", dashboardOverviewCachePrefix(shopID), threshold)
	if !input.ForceRefresh {
		var cached DashboardOverviewResponse
		hit, cacheErr := cache.GetJSON(ctx, cacheKey, &cached)
		if cacheErr == nil && hit {
			return &cached, nil
		}
	}

	stockStats, err := s.repo.GetStockStats(shopID, threshold)
	if err != nil {
		return nil, err
	}
	statusCounts, err := s.repo.CountVisitRequestsByStatus(shopID)
	if err != nil {
		return nil, err
	}
	openValue, err := s.repo.GetOpenHoldValue(shopID)
	if err != nil {
		return nil, err
	}
	topRows, err := s.repo.GetTopRequestedProducts(shopID, dashboardTopProductLimit)
	if err != nil {
		return nil, err
	}

	kpi := DashboardKPI{
		ProductsListed:       stockStats.ActiveProducts,
		UnitsInStock:         stockStats.UnitsInStock,
		LowStockProducts:     stockStats.LowStockProducts,
		OutOfStockProducts:   stockStats.OutOfStockProducts,
		OpenHoldValue:        openValue,
		OpenHoldValueDisplay: FormatPrice(openValue),
	}
	for _, row := range statusCounts {
		kpi.VisitRequestsTotal += row.Total
		switch row.Status {
		case constants.VisitRequestStatusCreated:
			kpi.PendingRequests = row.Total
		case constants.VisitRequestStatusConfirmed:
			kpi.ConfirmedRequests = row.Total
		case constants.VisitRequestStatusCompleted:
			kpi.CompletedRequests = row.Total
		case constants.VisitRequestStatusCancelled:
			kpi.CancelledRequests = row.Total
		case constants.VisitRequestStatusExpired:
			kpi.ExpiredRequests = row.Total
		}
	}

	topProducts := make([]DashboardProductRanking, 0, len(topRows))
	for _, row := range topRows {
		topProducts = append(topProducts, DashboardProductRanking{
			ProductID:    row.ProductID,
			Name:         row.Name,
			RequestCount: row.RequestCount,
			Quantity:     row.Quantity,
			EstimatedGMV: FormatPrice(row.EstimatedGMV),
		})
	}

	response := &DashboardOverviewResponse{
		ShopID:      shopID,
		Currency:    constants.CurrencyINR,
		KPI:         kpi,
		Alerts:      buildDashboardAlerts(kpi),
		TopProducts: topProducts,
		GeneratedAt: time.Now().UTC(),
	}
	if shopID != "" {
		if shop, ok := s.catalog.ShopByID(shopID); ok {
			response.Shop = &shop
		}
	}

	_ = cache.SetJSON(ctx, cacheKey, response, dashboardCacheTTL)
	return response, nil
}

// ListProducts 店铺商品表，shopID 为空时返回全部商品
func (s *DashboardService) ListProducts(shopID string) []DashboardProductRow {
	var products []models.Product
	if strings.TrimSpace(shopID) == "" {
		products = s.catalog.Products()
	} else {
		products = s.catalog.ProductsByShop(shopID)
	}
	rows := make([]DashboardProductRow, 0, len(products))
	for _, product := range products {
		rows = append(rows, DashboardProductRow{
			Product:      product,
			StockStatus:  s.catalog.StockStatus(product),
			PriceDisplay: FormatPrice(product.Price),
		})
	}
	return rows
}

func buildDashboardAlerts(kpi DashboardKPI) []DashboardAlertItem {
	alerts := make([]DashboardAlertItem, 0, 3)
	if kpi.OutOfStockProducts > 0 {
		alerts = append(alerts, DashboardAlertItem{Type: "out_of_stock_products", Level: "error", Value: kpi.OutOfStockProducts})
	}
	if kpi.LowStockProducts > 0 {
		alerts = append(alerts, DashboardAlertItem{Type: "low_stock_products", Level: "warning", Value: kpi.LowStockProducts})
	}
	if kpi.PendingRequests > 0 {
		alerts = append(alerts, DashboardAlertItem{Type: "pending_visit_requests", Level: "info", Value: kpi.PendingRequests})
	}
	return alerts
}

// ResolveDashboardShop 确定仪表盘可查看的店铺
// 店主只能查看自己的店铺；管理员可指定任意店铺，不指定时查看全部。
func ResolveDashboardShop(user User, requestedShopID string) (string, error) {
	requested := strings.TrimSpace(requestedShopID)
	switch user.Role {
	case models.RoleAdmin:
		return requested, nil
	case models.RoleShopkeeper:
		own := strings.TrimSpace(user.ShopID)
		if own == "" {
			return "", ErrForbiddenShop
		}
		if requested != "" && requested != own {
			return "", ErrForbiddenShop
		}
		return own, nil
	default:
		return "", ErrForbiddenShop
	}
}

// DashboardActionStatus 仪表盘操作对应的目标状态
func DashboardActionStatus(action string) (string, bool) {
	switch strings.ToLower(strings.TrimSpace(action)) {
	case "confirm":
		return constants.VisitRequestStatusConfirmed, true
	case "complete":
		return constants.VisitRequestStatusCompleted, true
	case "cancel":
		return constants.VisitRequestStatusCancelled, true
	default:
		return "", false
	}
}
