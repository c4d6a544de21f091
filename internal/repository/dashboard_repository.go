package repository

import (
	"strings"

	"github.com/jewelbridge/internal/constants"
	"github.com/jewelbridge/internal/models"

	"gorm.io/gorm"
)

// DashboardRepository 店铺仪表盘聚合查询接口
// 说明：仅聚合统计数据，不承载业务规则。shopID 为空表示全部店铺。
type DashboardRepository interface {
	GetStockStats(shopID string, lowStockThreshold int) (DashboardStockStatsRow, error)
	CountVisitRequestsByStatus(shopID string) ([]VisitRequestStatusCount, error)
	GetOpenHoldValue(shopID string) (int64, error)
	GetTopRequestedProducts(shopID string, limit int) ([]DashboardProductRankingRow, error)
}

// DashboardStockStatsRow 库存统计
type DashboardStockStatsRow struct {
	ActiveProducts     int64
	OutOfStockProducts int64
	LowStockProducts   int64
	UnitsInStock       int64
}

// DashboardProductRankingRow 预约商品排行原始行
type DashboardProductRankingRow struct {
	ProductID    string
	Name         string
	RequestCount int64
	Quantity     int64
	EstimatedGMV int64
}

// GormDashboardRepository GORM 仪表盘聚合实现
type GormDashboardRepository struct {
	db *gorm.DB
}

// NewDashboardRepository 创建仪表盘仓库
func NewDashboardRepository(db *gorm.DB) *GormDashboardRepository {
	return &GormDashboardRepository{db: db}
}

func openHoldStatuses() []string {
	return []string{
		constants.VisitRequestStatusCreated,
		constants.VisitRequestStatusConfirmed,
	}
}

func scopeShop(query *gorm.DB, column, shopID string) *gorm.DB {
	if value := strings.TrimSpace(shopID); value != "" {
		return query.Where(column+" = ?", value)
	}
	return query
}

// GetStockStats 获取库存统计
func (r *GormDashboardRepository) GetStockStats(shopID string, lowStockThreshold int) (DashboardStockStatsRow, error) {
	result := DashboardStockStatsRow{}

	type stockRow struct {
		ID       string
		StockQty int
	}
	var rows []stockRow
	query := r.db.Model(&models.Product{}).Select("id, stock_qty").Where("is_active = ?", true)
	if err := scopeShop(query, "shop_id", shopID).Scan(&rows).Error; err != nil {
		return result, err
	}

	for _, row := range rows {
		result.ActiveProducts++
		if row.StockQty <= 0 {
			result.OutOfStockProducts++
			continue
		}
		result.UnitsInStock += int64(row.StockQty)
		if row.StockQty <= lowStockThreshold {
			result.LowStockProducts++
		}
	}
	return result, nil
}

// CountVisitRequestsByStatus 按状态统计预约数量
func (r *GormDashboardRepository) CountVisitRequestsByStatus(shopID string) ([]VisitRequestStatusCount, error) {
	rows := make([]VisitRequestStatusCount, 0)
	query := r.db.Model(&models.VisitRequest{}).Select("status, COUNT(*) as total")
	if err := scopeShop(query, "shop_id", shopID).
		Group("status").
		Order("status asc").
		Scan(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// GetOpenHoldValue 统计仍在预留中的预约估算总额
func (r *GormDashboardRepository) GetOpenHoldValue(shopID string) (int64, error) {
	var total int64
	query := r.db.Model(&models.VisitRequest{}).
		Select("COALESCE(SUM(total_estimated_amount), 0)").
		Where("status IN ?", openHoldStatuses())
	if err := scopeShop(query, "shop_id", shopID).Scan(&total).Error; err != nil {
		return 0, err
	}
	return total, nil
}

// GetTopRequestedProducts 获取被预约最多的商品
func (r *GormDashboardRepository) GetTopRequestedProducts(shopID string, limit int) ([]DashboardProductRankingRow, error) {
	if limit <= 0 {
		limit = 5
	}
	rows := make([]DashboardProductRankingRow, 0)
	query := r.db.Model(&models.VisitRequestItem{}).
		Select(`
			visit_request_items.product_id as product_id,
			visit_request_items.name as name,
			COUNT(DISTINCT visit_request_items.visit_request_id) as request_count,
			COALESCE(SUM(visit_request_items.quantity), 0) as quantity,
			COALESCE(SUM(visit_request_items.unit_price * visit_request_items.quantity), 0) as estimated_gmv
		`).
		Joins("JOIN visit_requests ON visit_requests.id = visit_request_items.visit_request_id").
		Where("visit_requests.status <> ?", constants.VisitRequestStatusCancelled)
	if err := scopeShop(query, "visit_requests.shop_id", shopID).
		Group("visit_request_items.product_id, visit_request_items.name").
		Order("quantity DESC, estimated_gmv DESC").
		Limit(limit).
		Scan(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}
