package repository

import (
	"errors"
	"strings"

	"github.com/jewelbridge/internal/models"

	"gorm.io/gorm"
)

// CatalogRepository 店铺/商品/评价只读数据访问接口
type CatalogRepository interface {
	ListShops() ([]models.Shop, error)
	GetShopByID(id string) (*models.Shop, error)
	ListProducts(filter ProductListFilter) ([]models.Product, int64, error)
	GetProductByID(id string) (*models.Product, error)
	ListReviews() ([]models.Review, error)
	ListReviewsByProduct(productID string) ([]models.Review, error)
}

// GormCatalogRepository GORM 实现
type GormCatalogRepository struct {
	db *gorm.DB
}

// NewCatalogRepository 创建目录仓库
func NewCatalogRepository(db *gorm.DB) *GormCatalogRepository {
	return &GormCatalogRepository{db: db}
}

// ListShops 按种子顺序列出店铺
func (r *GormCatalogRepository) ListShops() ([]models.Shop, error) {
	var shops []models.Shop
	if err := r.db.Order("sort_order ASC, id ASC").Find(&shops).Error; err != nil {
		return nil, err
	}
	return shops, nil
}

// GetShopByID 获取店铺
func (r *GormCatalogRepository) GetShopByID(id string) (*models.Shop, error) {
	var shop models.Shop
	if err := r.db.Where("id = ?", id).First(&shop).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &shop, nil
}

// ListProducts 商品列表，保持种子顺序
func (r *GormCatalogRepository) ListProducts(filter ProductListFilter) ([]models.Product, int64, error) {
	var products []models.Product

	query := r.db.Model(&models.Product{})
	if filter.OnlyActive {
		query = query.Where("is_active = ?", true)
	}
	if shopID := strings.TrimSpace(filter.ShopID); shopID != "" {
		query = query.Where("shop_id = ?", shopID)
	}
	if search := strings.TrimSpace(filter.Search); search != "" {
		condition, argCount := buildLikeCondition(r.db, []string{"name", "description", "category", "metal_type"})
		query = query.Where(condition, repeatLikeArgs(likePattern(search), argCount)...)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query = query.Scopes(paginate(filter.Page, filter.PageSize))
	if err := query.Order("sort_order ASC, id ASC").Find(&products).Error; err != nil {
		return nil, 0, err
	}
	return products, total, nil
}

// GetProductByID 获取商品
func (r *GormCatalogRepository) GetProductByID(id string) (*models.Product, error) {
	var product models.Product
	if err := r.db.Where("id = ?", id).First(&product).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &product, nil
}

// ListReviews 列出全部评价
func (r *GormCatalogRepository) ListReviews() ([]models.Review, error) {
	var reviews []models.Review
	if err := r.db.Order("created_at ASC, id ASC").Find(&reviews).Error; err != nil {
		return nil, err
	}
	return reviews, nil
}

// ListReviewsByProduct 列出商品评价
func (r *GormCatalogRepository) ListReviewsByProduct(productID string) ([]models.Review, error) {
	var reviews []models.Review
	if err := r.db.Where("product_id = ?", productID).Order("created_at ASC, id ASC").Find(&reviews).Error; err != nil {
		return nil, err
	}
	return reviews, nil
}
