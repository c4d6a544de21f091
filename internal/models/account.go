package models

import "time"

// Account 账号目录表（directory 身份提供方使用）
type Account struct {
	ID           string     `gorm:"primaryKey;type:varchar(64)" json:"id"`           // 用户ID
	Email        string     `gorm:"uniqueIndex;not null" json:"email"`               // 邮箱
	Name         string     `gorm:"type:varchar(128);not null" json:"name"`          // 名称
	PasswordHash string     `gorm:"not null" json:"-"`                               // 密码哈希（不返回给前端）
	Role         Role       `gorm:"type:varchar(20);not null" json:"role"`           // 角色
	City         string     `gorm:"type:varchar(64)" json:"city,omitempty"`          // 城市
	ShopID       string     `gorm:"type:varchar(64);index" json:"shop_id,omitempty"` // 店铺ID（店主）
	LastLoginAt  *time.Time `json:"last_login_at,omitempty"`                         // 最后登录时间
	CreatedAt    time.Time  `json:"created_at"`                                      // 创建时间
	UpdatedAt    time.Time  `json:"-"`                                               // 更新时间
}

// TableName 指定表名
func (Account) TableName() string {
	return "accounts"
}
