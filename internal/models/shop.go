package models

import "time"

// Shop 首饰店铺表
type Shop struct {
	ID         string    `gorm:"primaryKey;type:varchar(64)" json:"id"`       // 店铺ID
	Name       string    `gorm:"type:varchar(255);not null" json:"name"`      // 店铺名称
	City       string    `gorm:"type:varchar(64);not null;index" json:"city"` // 城市
	Area       string    `gorm:"type:varchar(128)" json:"area"`               // 区域
	Address    string    `gorm:"type:varchar(512)" json:"address"`            // 地址
	Phone      string    `gorm:"type:varchar(32)" json:"phone"`               // 联系电话
	IsVerified bool      `gorm:"not null;default:false" json:"is_verified"`   // 是否认证
	MapURL     string    `gorm:"type:varchar(512)" json:"map_url,omitempty"`  // 地图链接
	SortOrder  int       `gorm:"not null;default:0" json:"-"`                 // 种子顺序
	CreatedAt  time.Time `json:"-"`                                           // 创建时间
}

// TableName 指定表名
func (Shop) TableName() string {
	return "shops"
}

// Review 商品评价表
type Review struct {
	ID           string    `gorm:"primaryKey;type:varchar(64)" json:"id"`             // 评价ID
	ProductID    string    `gorm:"type:varchar(64);not null;index" json:"product_id"` // 商品ID
	CustomerID   string    `gorm:"type:varchar(64);not null" json:"customer_id"`      // 评价人ID
	CustomerName string    `gorm:"type:varchar(128)" json:"customer_name"`            // 评价人名称
	Rating       int       `gorm:"not null" json:"rating"`                            // 评分 1-5
	ReviewText   string    `gorm:"type:text" json:"review_text"`                      // 评价内容
	CreatedAt    time.Time `json:"created_at"`                                        // 创建时间
}

// TableName 指定表名
func (Review) TableName() string {
	return "reviews"
}
