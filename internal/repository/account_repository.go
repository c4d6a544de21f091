package repository

import (
	"errors"
	"strings"
	"time"

	"github.com/jewelbridge/internal/models"

	"gorm.io/gorm"
)

// AccountRepository 账号目录数据访问接口
type AccountRepository interface {
	GetByID(id string) (*models.Account, error)
	GetByEmail(email string) (*models.Account, error)
	Create(account *models.Account) error
	TouchLastLogin(id string, at time.Time) error
}

// GormAccountRepository GORM 实现
type GormAccountRepository struct {
	db *gorm.DB
}

// NewAccountRepository 创建账号仓库
func NewAccountRepository(db *gorm.DB) *GormAccountRepository {
	return &GormAccountRepository{db: db}
}

// GetByID 按 ID 获取账号
func (r *GormAccountRepository) GetByID(id string) (*models.Account, error) {
	var account models.Account
	if err := r.db.Where("id = ?", id).First(&account).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &account, nil
}

// GetByEmail 按邮箱获取账号（不区分大小写）
func (r *GormAccountRepository) GetByEmail(email string) (*models.Account, error) {
	var account models.Account
	normalized := strings.ToLower(strings.TrimSpace(email))
	if err := r.db.Where("email = ?", normalized).First(&account).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &account, nil
}

// Create 创建账号
func (r *GormAccountRepository) Create(account *models.Account) error {
	return r.db.Create(account).Error
}

// TouchLastLogin 记录最后登录时间
func (r *GormAccountRepository) TouchLastLogin(id string, at time.Time) error {
	return r.db.Model(&models.Account{}).Where("id = ?", id).Update("last_login_at", at).Error
}
