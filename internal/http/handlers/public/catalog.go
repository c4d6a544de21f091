package public

import (
	"strconv"
	"strings"

	"github.com/jewelbridge/internal/constants"
	"github.com/jewelbridge/internal/http/response"
	"github.com/jewelbridge/internal/models"
	"github.com/jewelbridge/internal/service"

	"github.com/gin-gonic/gin"
)

// ProductView 公共商品响应结构
type ProductView struct {
	models.Product
	ShopName      string  `json:"shop_name"`
	City          string  `json:"city"`
	PriceDisplay  string  `json:"price_display"`
	StockStatus   string  `json:"stock_status"`
	AverageRating float64 `json:"average_rating"`
	ReviewCount   int     `json:"review_count"`
}

// ShopView 店铺响应结构
type ShopView struct {
	models.Shop
	ProductCount int `json:"product_count"`
}

func (h *Handler) productView(product models.Product) ProductView {
	view := ProductView{
		Product:       product,
		PriceDisplay:  service.FormatPrice(product.Price),
		StockStatus:   h.CatalogService.StockStatus(product),
		AverageRating: h.CatalogService.AverageRating(product.ID),
		ReviewCount:   len(h.CatalogService.ReviewsByProduct(product.ID)),
	}
	if shop, ok := h.CatalogService.ShopByID(product.ShopID); ok {
		view.ShopName = shop.Name
		view.City = shop.City
	}
	return view
}

func (h *Handler) productViews(products []models.Product) []ProductView {
	views := make([]ProductView, 0, len(products))
	for _, product := range products {
		views = append(views, h.productView(product))
	}
	return views
}

// GetConfig 获取前台筛选配置
func (h *Handler) GetConfig(c *gin.Context) {
	response.Success(c, gin.H{
		"currency":       constants.CurrencyINR,
		"categories":     h.CatalogService.CategoryOptions(),
		"metal_types":    h.CatalogService.MetalOptions(),
		"cities":         h.CatalogService.CityOptions(),
		"max_price":      h.CatalogService.MaxPrice(),
		"default_filter": h.defaultFilter(),
		"auth_provider":  h.SessionService.ProviderName(),
	})
}

func (h *Handler) defaultFilter() service.FilterCriteria {
	criteria := service.DefaultFilterCriteria()
	criteria.PriceRange.Max = h.CatalogService.MaxPrice()
	return criteria
}

// GetProducts 商品列表（按筛选条件过滤，保持目录顺序）
func (h *Handler) GetProducts(c *gin.Context) {
	criteria := h.defaultFilter()
	criteria.Search = strings.TrimSpace(c.Query("search"))
	if value := strings.TrimSpace(c.Query("category")); value != "" {
		criteria.Category = value
	}
	if value := strings.TrimSpace(c.Query("metal_type")); value != "" {
		criteria.MetalType = value
	}
	if value := strings.TrimSpace(c.Query("city")); value != "" {
		criteria.City = value
	}
	if value := strings.TrimSpace(c.Query("min_price")); value != "" {
		parsed, err := strconv.ParseInt(value, 10, 64)
		if err != nil || parsed < 0 {
			respondError(c, response.CodeBadRequest, "error.bad_request", nil)
			return
		}
		criteria.PriceRange.Min = parsed
	}
	if value := strings.TrimSpace(c.Query("max_price")); value != "" {
		parsed, err := strconv.ParseInt(value, 10, 64)
		if err != nil || parsed < 0 {
			respondError(c, response.CodeBadRequest, "error.bad_request", nil)
			return
		}
		criteria.PriceRange.Max = parsed
	}

	products := service.FilterProducts(h.CatalogService.ActiveProducts(), criteria, h.CatalogService)
	response.Success(c, gin.H{
		"filter":   criteria,
		"total":    len(products),
		"products": h.productViews(products),
	})
}

// GetFeaturedProducts 首页精选商品
func (h *Handler) GetFeaturedProducts(c *gin.Context) {
	response.Success(c, h.productViews(h.CatalogService.FeaturedProducts()))
}

// GetProduct 商品详情（含店铺、评价与相似商品）
func (h *Handler) GetProduct(c *gin.Context) {
	product, ok := h.CatalogService.ProductByID(strings.TrimSpace(c.Param("id")))
	if !ok {
		respondError(c, response.CodeNotFound, "error.product_not_found", nil)
		return
	}
	data := gin.H{
		"product": h.productView(product),
		"reviews": h.CatalogService.ReviewsByProduct(product.ID),
		"similar": h.productViews(h.CatalogService.SimilarProducts(product)),
	}
	if shop, ok := h.CatalogService.ShopByID(product.ShopID); ok {
		data["shop"] = shop
	}
	response.Success(c, data)
}

// GetShops 店铺列表
func (h *Handler) GetShops(c *gin.Context) {
	city := strings.TrimSpace(c.Query("city"))
	shops := h.CatalogService.Shops()
	views := make([]ShopView, 0, len(shops))
	for _, shop := range shops {
		if city != "" && city != constants.FilterAll && shop.City != city {
			continue
		}
		views = append(views, ShopView{Shop: shop, ProductCount: len(h.CatalogService.ProductsByShop(shop.ID))})
	}
	response.Success(c, views)
}

// GetShop 店铺详情及商品
func (h *Handler) GetShop(c *gin.Context) {
	shop, ok := h.CatalogService.ShopByID(strings.TrimSpace(c.Param("id")))
	if !ok {
		respondError(c, response.CodeNotFound, "error.shop_not_found", nil)
		return
	}
	products := h.CatalogService.ProductsByShop(shop.ID)
	response.Success(c, gin.H{
		"shop":     ShopView{Shop: shop, ProductCount: len(products)},
		"products": h.productViews(products),
	})
}
