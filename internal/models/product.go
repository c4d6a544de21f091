package models

import (
	"time"
)

// Product 首饰商品表（种子数据，只读）
type Product struct {
	ID          string    `gorm:"primaryKey;type:varchar(64)" json:"id"`             // 商品ID
	ShopID      string    `gorm:"type:varchar(64);not null;index" json:"shop_id"`    // 所属店铺ID
	Name        string    `gorm:"type:varchar(255);not null" json:"name"`            // 名称
	Category    string    `gorm:"type:varchar(20);not null;index" json:"category"`   // 品类
	MetalType   string    `gorm:"type:varchar(20);not null;index" json:"metal_type"` // 金属类型
	Purity      string    `gorm:"type:varchar(8);not null" json:"purity"`            // 纯度
	WeightGrams Grams     `gorm:"type:decimal(10,2);not null" json:"weight_grams"`   // 重量（克）
	Price       int64     `gorm:"not null;default:0;index" json:"price"`             // 价格（最小货币单位）
	StockQty    int       `gorm:"not null;default:0" json:"stock_qty"`               // 库存
	Description string    `gorm:"type:text" json:"description"`                      // 描述
	ImageURL    string    `gorm:"type:varchar(512)" json:"image_url"`                // 图片地址
	IsActive    bool      `gorm:"default:true;index" json:"is_active"`               // 是否上架
	SortOrder   int       `gorm:"not null;default:0;index" json:"-"`                 // 种子顺序
	CreatedAt   time.Time `gorm:"index" json:"created_at"`                           // 创建时间
	UpdatedAt   time.Time `json:"-"`                                                 // 更新时间
}

// TableName 指定表名
func (Product) TableName() string {
	return "products"
}

// InStock 是否有库存
func (p Product) InStock() bool {
	return p.StockQty > 0
}
