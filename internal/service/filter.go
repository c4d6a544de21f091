package service

import (
	"strings"

	"github.com/jewelbridge/internal/constants"
	"github.com/jewelbridge/internal/models"
)

const defaultMaxPrice int64 = 500000

// PriceRange 闭区间价格范围
type PriceRange struct {
	Min int64 `json:"min"`
	Max int64 `json:"max"`
}

// FilterCriteria 商品筛选条件
// Category / MetalType / City 为 "all" 或空串时不参与过滤。
type FilterCriteria struct {
	Search     string     `json:"search"`
	Category   string     `json:"category"`
	MetalType  string     `json:"metal_type"`
	City       string     `json:"city"`
	PriceRange PriceRange `json:"price_range"`
}

// ShopLookup 按 ID 查找店铺
type ShopLookup interface {
	ShopByID(id string) (models.Shop, bool)
}

// DefaultFilterCriteria 默认筛选条件
func DefaultFilterCriteria() FilterCriteria {
	return FilterCriteria{
		Category:   constants.FilterAll,
		MetalType:  constants.FilterAll,
		City:       constants.FilterAll,
		PriceRange: PriceRange{Min: 0, Max: defaultMaxPrice},
	}
}

// FilterProducts 按条件过滤商品，保持输入顺序
func FilterProducts(products []models.Product, criteria FilterCriteria, shops ShopLookup) []models.Product {
	search := strings.ToLower(strings.TrimSpace(criteria.Search))
	result := make([]models.Product, 0, len(products))
	for _, product := range products {
		if !matchesSearch(product, search) {
			continue
		}
		if !matchesOption(criteria.Category, product.Category) {
			continue
		}
		if !matchesOption(criteria.MetalType, product.MetalType) {
			continue
		}
		if !matchesCity(criteria.City, product.ShopID, shops) {
			continue
		}
		if product.Price < criteria.PriceRange.Min || product.Price > criteria.PriceRange.Max {
			continue
		}
		result = append(result, product)
	}
	return result
}

func matchesSearch(product models.Product, search string) bool {
	if search == "" {
		return true
	}
	for _, field := range []string{product.Name, product.Description, product.Category, product.MetalType} {
		if strings.Contains(strings.ToLower(field), search) {
			return true
		}
	}
	return false
}

func isFilterAll(value string) bool {
	value = strings.TrimSpace(value)
	return value == "" || value == constants.FilterAll
}

func matchesOption(want, got string) bool {
	if isFilterAll(want) {
		return true
	}
	return strings.TrimSpace(want) == got
}

func matchesCity(city, shopID string, shops ShopLookup) bool {
	if isFilterAll(city) {
		return true
	}
	if shops == nil {
		return false
	}
	shop, ok := shops.ShopByID(shopID)
	if !ok {
		return false
	}
	return shop.City == strings.TrimSpace(city)
}
