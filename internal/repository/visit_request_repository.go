package repository

import (
	"errors"
	"strings"
	"time"

	"github.com/jewelbridge/internal/models"

	"gorm.io/gorm"
)

// VisitRequestRepository 到店预约数据访问接口
type VisitRequestRepository interface {
	Create(request *models.VisitRequest) error
	GetByID(id string) (*models.VisitRequest, error)
	List(filter VisitRequestListFilter) ([]models.VisitRequest, int64, error)
	UpdateStatus(id string, fromStatuses []string, toStatus string, now time.Time) (int64, error)
	ListExpiredHolds(status string, before time.Time, limit int) ([]models.VisitRequest, error)
}

// GormVisitRequestRepository GORM 实现
type GormVisitRequestRepository struct {
	db *gorm.DB
}

// NewVisitRequestRepository 创建到店预约仓库
func NewVisitRequestRepository(db *gorm.DB) *GormVisitRequestRepository {
	return &GormVisitRequestRepository{db: db}
}

// Create 写入预约及明细
func (r *GormVisitRequestRepository) Create(request *models.VisitRequest) error {
	if request == nil {
		return errors.New("visit request is nil")
	}
	return r.db.Transaction(func(tx *gorm.DB) error {
		items := request.Items
		request.Items = nil
		if err := tx.Omit("Items").Create(request).Error; err != nil {
			request.Items = items
			return err
		}
		for i := range items {
			items[i].VisitRequestID = request.ID
			items[i].SortOrder = i
		}
		if len(items) > 0 {
			if err := tx.Create(&items).Error; err != nil {
				request.Items = items
				return err
			}
		}
		request.Items = items
		return nil
	})
}

// GetByID 获取预约详情
func (r *GormVisitRequestRepository) GetByID(id string) (*models.VisitRequest, error) {
	var request models.VisitRequest
	if err := r.withItems(r.db).Where("id = ?", id).First(&request).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &request, nil
}

// List 预约列表，按创建时间倒序
func (r *GormVisitRequestRepository) List(filter VisitRequestListFilter) ([]models.VisitRequest, int64, error) {
	query := r.db.Model(&models.VisitRequest{})
	if value := strings.TrimSpace(filter.SessionID); value != "" {
		query = query.Where("session_id = ?", value)
	}
	if value := strings.TrimSpace(filter.CustomerID); value != "" {
		query = query.Where("customer_id = ?", value)
	}
	if value := strings.TrimSpace(filter.ShopID); value != "" {
		query = query.Where("shop_id = ?", value)
	}
	if value := strings.TrimSpace(filter.Status); value != "" {
		query = query.Where("status = ?", value)
	}
	if filter.CreatedFrom != nil {
		query = query.Where("created_at >= ?", *filter.CreatedFrom)
	}
	if filter.CreatedTo != nil {
		query = query.Where("created_at <= ?", *filter.CreatedTo)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var requests []models.VisitRequest
	query = r.withItems(query).Scopes(paginate(filter.Page, filter.PageSize))
	if err := query.Order("created_at DESC, id DESC").Find(&requests).Error; err != nil {
		return nil, 0, err
	}
	return requests, total, nil
}

// UpdateStatus 条件更新状态，仅当当前状态属于 fromStatuses 时生效，返回影响行数
func (r *GormVisitRequestRepository) UpdateStatus(id string, fromStatuses []string, toStatus string, now time.Time) (int64, error) {
	if len(fromStatuses) == 0 {
		return 0, nil
	}
	result := r.db.Model(&models.VisitRequest{}).
		Where("id = ? AND status IN ?", id, fromStatuses).
		Updates(map[string]interface{}{
			"status":     toStatus,
			"updated_at": now,
		})
	return result.RowsAffected, result.Error
}

// ListExpiredHolds 列出预留已过期的预约
func (r *GormVisitRequestRepository) ListExpiredHolds(status string, before time.Time, limit int) ([]models.VisitRequest, error) {
	query := r.db.Where("status = ? AND hold_expires_at <= ?", status, before).Order("hold_expires_at ASC")
	if limit > 0 {
		query = query.Limit(limit)
	}
	var requests []models.VisitRequest
	if err := query.Find(&requests).Error; err != nil {
		return nil, err
	}
	return requests, nil
}

func (r *GormVisitRequestRepository) withItems(query *gorm.DB) *gorm.DB {
	return query.Preload("Items", func(db *gorm.DB) *gorm.DB {
		return db.Order("sort_order ASC, id ASC")
	})
}
