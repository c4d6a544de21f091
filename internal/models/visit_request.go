package models

import "time"

// VisitRequest 到店预约（Visit & Hold）
// 创建后只允许状态流转，不允许删除或修改明细。
type VisitRequest struct {
	ID                   string             `gorm:"primaryKey;type:varchar(64)" json:"id"`              // 预约ID（vr- 前缀）
	SessionID            string             `gorm:"type:varchar(64);not null;index" json:"-"`           // 所属会话
	CustomerID           string             `gorm:"type:varchar(64);not null;index" json:"customer_id"` // 顾客ID
	ShopID               string             `gorm:"type:varchar(64);not null;index" json:"shop_id"`     // 店铺ID
	Status               string             `gorm:"type:varchar(20);not null;index" json:"status"`      // 状态
	TotalEstimatedAmount int64              `gorm:"not null;default:0" json:"total_estimated_amount"`   // 创建时冻结的估算总额
	HoldExpiresAt        time.Time          `gorm:"not null;index" json:"hold_expires_at"`              // 预留截止时间
	CreatedAt            time.Time          `gorm:"index" json:"created_at"`                            // 创建时间
	UpdatedAt            time.Time          `json:"updated_at"`                                         // 更新时间
	Items                []VisitRequestItem `gorm:"foreignKey:VisitRequestID" json:"items"`             // 明细快照
}

// TableName 指定表名
func (VisitRequest) TableName() string {
	return "visit_requests"
}

// VisitRequestItem 到店预约明细（购物车项快照）
type VisitRequestItem struct {
	ID             uint   `gorm:"primarykey" json:"-"`                         // 主键
	VisitRequestID string `gorm:"type:varchar(64);not null;index" json:"-"`    // 预约ID
	ProductID      string `gorm:"type:varchar(64);not null" json:"product_id"` // 商品ID
	ShopID         string `gorm:"type:varchar(64);not null" json:"shop_id"`    // 店铺ID
	Name           string `gorm:"type:varchar(255);not null" json:"name"`      // 商品名称快照
	Category       string `gorm:"type:varchar(20)" json:"category"`            // 品类快照
	MetalType      string `gorm:"type:varchar(20)" json:"metal_type"`          // 金属类型快照
	Purity         string `gorm:"type:varchar(8)" json:"purity"`               // 纯度快照
	WeightGrams    Grams  `gorm:"type:decimal(10,2)" json:"weight_grams"`      // 重量快照
	UnitPrice      int64  `gorm:"not null" json:"unit_price"`                  // 单价快照
	ImageURL       string `gorm:"type:varchar(512)" json:"image_url"`          // 图片快照
	Quantity       int    `gorm:"not null" json:"quantity"`                    // 数量
	SortOrder      int    `gorm:"not null;default:0" json:"-"`                 // 购物车顺序
}

// TableName 指定表名
func (VisitRequestItem) TableName() string {
	return "visit_request_items"
}

// LineTotal 明细小计
func (i VisitRequestItem) LineTotal() int64 {
	return i.UnitPrice * int64(i.Quantity)
}
