package models

import (
	"time"

	"github.com/jewelbridge/internal/constants"

	"gorm.io/gorm"
)

// CatalogSeedData 目录种子数据
type CatalogSeedData struct {
	Shops    []Shop
	Products []Product
	Reviews  []Review
}

func seedDate(value string) time.Time {
	t, err := time.Parse("2006-01-02", value)
	if err != nil {
		panic(err)
	}
	return t.UTC()
}

// CatalogSeed 返回内置的店铺、商品与评价
func CatalogSeed() CatalogSeedData {
	shops := []Shop{
		{
			ID:         "shop-1",
			Name:       "Lakshmi Gold Palace",
			City:       "Hyderabad",
			Area:       "Kukatpally",
			Address:    "123 Main Street, Kukatpally, Hyderabad",
			Phone:      "+91 98765 43210",
			IsVerified: true,
			MapURL:     "https://maps.google.com",
			SortOrder:  1,
		},
		{
			ID:         "shop-2",
			Name:       "Sri Ganesh Jewellers",
			City:       "Hyderabad",
			Area:       "Ameerpet",
			Address:    "456 Temple Road, Ameerpet, Hyderabad",
			Phone:      "+91 98765 43211",
			IsVerified: true,
			SortOrder:  2,
		},
		{
			ID:         "shop-3",
			Name:       "Royal Silver Works",
			City:       "Hyderabad",
			Area:       "Secunderabad",
			Address:    "789 Silver Lane, Secunderabad, Hyderabad",
			Phone:      "+91 98765 43212",
			IsVerified: false,
			SortOrder:  3,
		},
	}

	products := []Product{
		{
			ID:          "prod-1",
			ShopID:      "shop-1",
			Name:        "Traditional Gold Bangles Set",
			Category:    constants.CategoryBangles,
			MetalType:   constants.MetalGold,
			Purity:      constants.Purity22K,
			WeightGrams: NewGrams(45),
			Price:       285000,
			StockQty:    3,
			Description: "Exquisite traditional gold bangles with intricate temple design, perfect for weddings and festive occasions.",
			ImageURL:    "/assets/products/bangles-1.jpg",
			IsActive:    true,
			SortOrder:   1,
			CreatedAt:   seedDate("2024-01-15"),
		},
		{
			ID:          "prod-2",
			ShopID:      "shop-1",
			Name:        "Diamond Jhumka Earrings",
			Category:    constants.CategoryEarrings,
			MetalType:   constants.MetalGold,
			Purity:      constants.Purity22K,
			WeightGrams: NewGrams(12),
			Price:       95000,
			StockQty:    5,
			Description: "Stunning jhumka earrings with diamond embellishments and traditional craftsmanship.",
			ImageURL:    "/assets/products/earrings-1.jpg",
			IsActive:    true,
			SortOrder:   2,
			CreatedAt:   seedDate("2024-01-20"),
		},
		{
			ID:          "prod-3",
			ShopID:      "shop-2",
			Name:        "Royal Gold Chain Necklace",
			Category:    constants.CategoryChains,
			MetalType:   constants.MetalGold,
			Purity:      constants.Purity22K,
			WeightGrams: NewGrams(25),
			Price:       158000,
			StockQty:    2,
			Description: "Elegant gold chain with ornate pendant, combining traditional artistry with modern elegance.",
			ImageURL:    "/assets/products/chain-1.jpg",
			IsActive:    true,
			SortOrder:   3,
			CreatedAt:   seedDate("2024-02-01"),
		},
		{
			ID:          "prod-4",
			ShopID:      "shop-2",
			Name:        "Gemstone Flower Ring",
			Category:    constants.CategoryRings,
			MetalType:   constants.MetalGold,
			Purity:      constants.Purity18K,
			WeightGrams: NewGrams(5.5),
			Price:       42000,
			StockQty:    8,
			Description: "Beautiful floral design ring with amethyst centerpiece and diamond accents.",
			ImageURL:    "/assets/products/ring-1.jpg",
			IsActive:    true,
			SortOrder:   4,
			CreatedAt:   seedDate("2024-02-10"),
		},
		{
			ID:          "prod-5",
			ShopID:      "shop-3",
			Name:        "Designer Silver Anklets",
			Category:    constants.CategoryAnklets,
			MetalType:   constants.MetalSilver,
			Purity:      constants.Purity925,
			WeightGrams: NewGrams(35),
			Price:       8500,
			StockQty:    15,
			Description: "Elegant silver anklets with traditional design, perfect for everyday wear.",
			ImageURL:    "/assets/products/anklets-1.jpg",
			IsActive:    true,
			SortOrder:   5,
			CreatedAt:   seedDate("2024-02-15"),
		},
		{
			ID:          "prod-6",
			ShopID:      "shop-1",
			Name:        "Cuban Link Gold Bracelet",
			Category:    constants.CategoryBracelets,
			MetalType:   constants.MetalGold,
			Purity:      constants.Purity22K,
			WeightGrams: NewGrams(28),
			Price:       178000,
			StockQty:    4,
			Description: "Bold Cuban link bracelet in 22K gold, a statement piece for the modern jewelry enthusiast.",
			ImageURL:    "/assets/products/bracelet-1.jpg",
			IsActive:    true,
			SortOrder:   6,
			CreatedAt:   seedDate("2024-02-20"),
		},
	}

	reviews := []Review{
		{
			ID:           "rev-1",
			ProductID:    "prod-1",
			CustomerID:   "cust-1",
			CustomerName: "Priya S.",
			Rating:       5,
			ReviewText:   "Absolutely stunning bangles! The craftsmanship is exceptional.",
			CreatedAt:    seedDate("2024-02-25"),
		},
		{
			ID:           "rev-2",
			ProductID:    "prod-2",
			CustomerID:   "cust-2",
			CustomerName: "Anita R.",
			Rating:       4,
			ReviewText:   "Beautiful earrings, exactly as shown. Fast response from the shop.",
			CreatedAt:    seedDate("2024-02-28"),
		},
	}

	return CatalogSeedData{Shops: shops, Products: products, Reviews: reviews}
}

// SeedCatalog 目录为空时写入种子数据，返回是否写入
func SeedCatalog(db *gorm.DB) (bool, error) {
	var count int64
	if err := db.Model(&Shop{}).Count(&count).Error; err != nil {
		return false, err
	}
	if count > 0 {
		return false, nil
	}
	seed := CatalogSeed()
	err := db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&seed.Shops).Error; err != nil {
			return err
		}
		if err := tx.Create(&seed.Products).Error; err != nil {
			return err
		}
		return tx.Create(&seed.Reviews).Error
	})
	if err != nil {
		return false, err
	}
	return true, nil
}
