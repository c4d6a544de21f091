package models

import (
	"strings"
	"time"

	"github.com/jewelbridge/internal/logger"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// DemoAccount 演示账号定义
type DemoAccount struct {
	ID       string
	Email    string
	Name     string
	Password string
	Role     Role
	City     string
	ShopID   string
}

// DefaultDemoAccounts 目录模式下的演示账号
func DefaultDemoAccounts(password string) []DemoAccount {
	if strings.TrimSpace(password) == "" {
		password = "jewel123"
	}
	return []DemoAccount{
		{ID: "user-1", Email: "owner@lakshmi.example", Name: "Shop Owner", Password: password, Role: RoleShopkeeper, City: "Hyderabad", ShopID: "shop-1"},
		{ID: "user-2", Email: "customer@example.com", Name: "Customer", Password: password, Role: RoleCustomer, City: "Hyderabad"},
		{ID: "user-admin", Email: "admin@jewelbridge.example", Name: "Admin", Password: password, Role: RoleAdmin},
	}
}

// InitDemoAccounts 账号表为空时写入演示账号
func InitDemoAccounts(db *gorm.DB, accounts []DemoAccount, cost int) error {
	var count int64
	if err := db.Model(&Account{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}

	now := time.Now()
	for _, item := range accounts {
		hash, err := bcrypt.GenerateFromPassword([]byte(item.Password), cost)
		if err != nil {
			return err
		}
		account := Account{
			ID:           item.ID,
			Email:        strings.ToLower(strings.TrimSpace(item.Email)),
			Name:         item.Name,
			PasswordHash: string(hash),
			Role:         item.Role,
			City:         item.City,
			ShopID:       item.ShopID,
			CreatedAt:    now,
			UpdatedAt:    now,
		}
		if err := db.Create(&account).Error; err != nil {
			return err
		}
		logger.Infow("demo_account_created", "email", account.Email, "role", account.Role.String())
	}
	if len(accounts) > 0 && accounts[0].Password == "jewel123" {
		logger.Warnw("demo_accounts_use_default_password", "count", len(accounts))
	}
	return nil
}
