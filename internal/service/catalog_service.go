package service

import (
	"strings"
	"sync/atomic"

	"github.com/jewelbridge/internal/config"
	"github.com/jewelbridge/internal/constants"
	"github.com/jewelbridge/internal/logger"
	"github.com/jewelbridge/internal/models"
	"github.com/jewelbridge/internal/repository"

	"github.com/shopspring/decimal"
)

// Option 下拉选项
type Option struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

var categoryOptions = []Option{
	{Value: constants.CategoryBangles, Label: "Bangles"},
	{Value: constants.CategoryEarrings, Label: "Earrings"},
	{Value: constants.CategoryChains, Label: "Chains"},
	{Value: constants.CategoryRings, Label: "Rings"},
	{Value: constants.CategoryAnklets, Label: "Anklets"},
	{Value: constants.CategoryBracelets, Label: "Bracelets"},
	{Value: constants.CategoryOther, Label: "Other"},
}

var metalOptions = []Option{
	{Value: constants.MetalGold, Label: "Gold"},
	{Value: constants.MetalSilver, Label: "Silver"},
	{Value: constants.MetalPlatinum, Label: "Platinum"},
	{Value: constants.MetalImitation, Label: "Imitation"},
}

var cityOptions = []string{"Hyderabad", "Mumbai", "Delhi", "Bangalore", "Chennai"}

type catalogSnapshot struct {
	shops            []models.Shop
	shopByID         map[string]int
	products         []models.Product
	productByID      map[string]int
	reviewsByProduct map[string][]models.Review
}

// CatalogService 只读目录
// 启动时从数据库加载一次快照，之后所有查询都在内存中完成。
type CatalogService struct {
	repo     repository.CatalogRepository
	cfg      config.CatalogConfig
	snapshot atomic.Pointer[catalogSnapshot]
}

// NewCatalogService 创建目录服务
func NewCatalogService(repo repository.CatalogRepository, cfg config.CatalogConfig) *CatalogService {
	return &CatalogService{repo: repo, cfg: cfg}
}

// Reload 重新加载目录快照
func (s *CatalogService) Reload() error {
	if s == nil || s.repo == nil {
		return ErrCatalogNotLoaded
	}
	shops, err := s.repo.ListShops()
	if err != nil {
		return err
	}
	products, _, err := s.repo.ListProducts(repository.ProductListFilter{})
	if err != nil {
		return err
	}
	reviews, err := s.repo.ListReviews()
	if err != nil {
		return err
	}
	s.snapshot.Store(buildCatalogSnapshot(shops, products, reviews))
	logger.Infow("catalog_loaded", "shops", len(shops), "products", len(products), "reviews", len(reviews))
	return nil
}

// Load 直接使用给定数据构建快照
func (s *CatalogService) Load(shops []models.Shop, products []models.Product, reviews []models.Review) {
	s.snapshot.Store(buildCatalogSnapshot(shops, products, reviews))
}

func buildCatalogSnapshot(shops []models.Shop, products []models.Product, reviews []models.Review) *catalogSnapshot {
	snap := &catalogSnapshot{
		shops:            append([]models.Shop(nil), shops...),
		shopByID:         make(map[string]int, len(shops)),
		products:         append([]models.Product(nil), products...),
		productByID:      make(map[string]int, len(products)),
		reviewsByProduct: make(map[string][]models.Review),
	}
	for i, shop := range snap.shops {
		snap.shopByID[shop.ID] = i
	}
	for i, product := range snap.products {
		snap.productByID[product.ID] = i
	}
	for _, review := range reviews {
		snap.reviewsByProduct[review.ProductID] = append(snap.reviewsByProduct[review.ProductID], review)
	}
	return snap
}

func (s *CatalogService) current() *catalogSnapshot {
	if s == nil {
		return &catalogSnapshot{}
	}
	if snap := s.snapshot.Load(); snap != nil {
		return snap
	}
	return &catalogSnapshot{}
}

// Shops 全部店铺（种子顺序）
func (s *CatalogService) Shops() []models.Shop {
	return append([]models.Shop(nil), s.current().shops...)
}

// DashboardShopID 店主绑定的店铺不在目录中时（如新注册的店主）回退到首个店铺
func (s *CatalogService) DashboardShopID(shopID string) string {
	if _, ok := s.ShopByID(shopID); ok {
		return strings.TrimSpace(shopID)
	}
	shops := s.current().shops
	if len(shops) == 0 {
		return strings.TrimSpace(shopID)
	}
	return shops[0].ID
}

// ShopByID 按 ID 查找店铺
func (s *CatalogService) ShopByID(id string) (models.Shop, bool) {
	snap := s.current()
	idx, ok := snap.shopByID[strings.TrimSpace(id)]
	if !ok {
		return models.Shop{}, false
	}
	return snap.shops[idx], true
}

// Products 全部商品（种子顺序）
func (s *CatalogService) Products() []models.Product {
	return append([]models.Product(nil), s.current().products...)
}

// ActiveProducts 上架商品
func (s *CatalogService) ActiveProducts() []models.Product {
	snap := s.current()
	result := make([]models.Product, 0, len(snap.products))
	for _, product := range snap.products {
		if product.IsActive {
			result = append(result, product)
		}
	}
	return result
}

// ProductByID 按 ID 查找商品
func (s *CatalogService) ProductByID(id string) (models.Product, bool) {
	snap := s.current()
	idx, ok := snap.productByID[strings.TrimSpace(id)]
	if !ok {
		return models.Product{}, false
	}
	return snap.products[idx], true
}

// ProductsByShop 店铺下的商品
func (s *CatalogService) ProductsByShop(shopID string) []models.Product {
	result := make([]models.Product, 0)
	for _, product := range s.current().products {
		if product.ShopID == shopID {
			result = append(result, product)
		}
	}
	return result
}

// ReviewsByProduct 商品评价
func (s *CatalogService) ReviewsByProduct(productID string) []models.Review {
	return append([]models.Review(nil), s.current().reviewsByProduct[productID]...)
}

// AverageRating 平均评分，保留两位小数；无评价时为 0
func (s *CatalogService) AverageRating(productID string) float64 {
	reviews := s.current().reviewsByProduct[productID]
	if len(reviews) == 0 {
		return 0
	}
	sum := decimal.Zero
	for _, review := range reviews {
		sum = sum.Add(decimal.NewFromInt(int64(review.Rating)))
	}
	avg, _ := sum.Div(decimal.NewFromInt(int64(len(reviews)))).Round(2).Float64()
	return avg
}

// FeaturedProducts 首页精选：前 N 个上架商品
func (s *CatalogService) FeaturedProducts() []models.Product {
	active := s.ActiveProducts()
	limit := s.featuredLimit()
	if len(active) > limit {
		active = active[:limit]
	}
	return active
}

// SimilarProducts 同品类同金属的其他商品
func (s *CatalogService) SimilarProducts(product models.Product) []models.Product {
	limit := s.similarLimit()
	result := make([]models.Product, 0, limit)
	for _, candidate := range s.current().products {
		if len(result) >= limit {
			break
		}
		if candidate.ID == product.ID {
			continue
		}
		if candidate.Category == product.Category && candidate.MetalType == product.MetalType {
			result = append(result, candidate)
		}
	}
	return result
}

// StockStatus 库存状态
func (s *CatalogService) StockStatus(product models.Product) string {
	return StockStatusFor(product.StockQty, s.lowStockThreshold())
}

// StockStatusFor 根据库存与阈值计算库存状态
func StockStatusFor(stockQty, lowStockThreshold int) string {
	switch {
	case stockQty <= 0:
		return constants.StockStatusOutOfStock
	case stockQty <= lowStockThreshold:
		return constants.StockStatusLowStock
	default:
		return constants.StockStatusInStock
	}
}

// CategoryOptions 品类选项
func (s *CatalogService) CategoryOptions() []Option {
	return append([]Option(nil), categoryOptions...)
}

// MetalOptions 金属类型选项
func (s *CatalogService) MetalOptions() []Option {
	return append([]Option(nil), metalOptions...)
}

// CityOptions 城市选项
func (s *CatalogService) CityOptions() []string {
	return append([]string(nil), cityOptions...)
}

// MaxPrice 价格筛选上限
func (s *CatalogService) MaxPrice() int64 {
	if s == nil || s.cfg.MaxPrice <= 0 {
		return defaultMaxPrice
	}
	return s.cfg.MaxPrice
}

// LowStockThreshold 低库存阈值
func (s *CatalogService) LowStockThreshold() int {
	return s.lowStockThreshold()
}

func (s *CatalogService) lowStockThreshold() int {
	if s == nil || s.cfg.LowStockThreshold <= 0 {
		return 3
	}
	return s.cfg.LowStockThreshold
}

func (s *CatalogService) featuredLimit() int {
	if s == nil || s.cfg.FeaturedLimit <= 0 {
		return 4
	}
	return s.cfg.FeaturedLimit
}

func (s *CatalogService) similarLimit() int {
	if s == nil || s.cfg.SimilarLimit <= 0 {
		return 4
	}
	return s.cfg.SimilarLimit
}
