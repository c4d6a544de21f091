package service

import (
	"context"
	"fmt"
	"net/mail"
	"strings"
	"time"

	"github.com/jewelbridge/internal/config"
	"github.com/jewelbridge/internal/constants"
	"github.com/jewelbridge/internal/logger"
	"github.com/jewelbridge/internal/models"
	"github.com/jewelbridge/internal/repository"

	"golang.org/x/crypto/bcrypt"
)

// User 会话当前用户
type User struct {
	ID     string      `json:"id"`
	Name   string      `json:"name"`
	Email  string      `json:"email"`
	Role   models.Role `json:"role"`
	City   string      `json:"city,omitempty"`
	ShopID string      `json:"shop_id,omitempty"`
}

// LoginInput 登录参数
type LoginInput struct {
	Email    string
	Password string
	Role     models.Role
}

// RegisterInput 注册参数
type RegisterInput struct {
	Name     string
	Email    string
	Password string
	Role     models.Role
	City     string
	Area     string
	Phone    string
	ShopName string
}

// AuthProvider 可替换的身份认证后端
type AuthProvider interface {
	Name() string
	Login(ctx context.Context, input LoginInput) (*User, error)
	Register(ctx context.Context, input RegisterInput) (*User, error)
}

// NewAuthProvider 按配置选择认证后端
func NewAuthProvider(cfg config.AuthConfig, accounts repository.AccountRepository) AuthProvider {
	switch strings.ToLower(strings.TrimSpace(cfg.Provider)) {
	case constants.AuthProviderDirectory:
		return NewDirectoryAuthProvider(accounts, cfg.BcryptCost)
	default:
		return NewSimulatedAuthProvider(
			time.Duration(cfg.LoginDelayMS)*time.Millisecond,
			time.Duration(cfg.RegisterDelayMS)*time.Millisecond,
		)
	}
}

func normalizeEmail(email string) (string, error) {
	trimmed := strings.ToLower(strings.TrimSpace(email))
	if trimmed == "" {
		return "", ErrInvalidEmail
	}
	if _, err := mail.ParseAddress(trimmed); err != nil {
		return "", ErrInvalidEmail
	}
	return trimmed, nil
}

func validateLoginRole(role models.Role) error {
	switch role {
	case models.RoleCustomer, models.RoleShopkeeper, models.RoleAdmin:
		return nil
	default:
		return ErrInvalidRole
	}
}

func validateRegisterRole(role models.Role) error {
	switch role {
	case models.RoleCustomer, models.RoleShopkeeper:
		return nil
	default:
		return ErrInvalidRole
	}
}

// wait 等待固定延迟，可被 ctx 取消
func wait(ctx context.Context, delay time.Duration) error {
	if delay <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(delay)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// SimulatedAuthProvider 模拟认证：固定延迟后总是成功
type SimulatedAuthProvider struct {
	loginDelay    time.Duration
	registerDelay time.Duration
	now           func() time.Time
}

// NewSimulatedAuthProvider 创建模拟认证
func NewSimulatedAuthProvider(loginDelay, registerDelay time.Duration) *SimulatedAuthProvider {
	return &SimulatedAuthProvider{
		loginDelay:    loginDelay,
		registerDelay: registerDelay,
		now:           time.Now,
	}
}

// Name 后端名称
func (p *SimulatedAuthProvider) Name() string {
	return constants.AuthProviderSimulated
}

// Login 模拟登录，不校验密码
func (p *SimulatedAuthProvider) Login(ctx context.Context, input LoginInput) (*User, error) {
	if err := validateLoginRole(input.Role); err != nil {
		return nil, err
	}
	if err := wait(ctx, p.loginDelay); err != nil {
		return nil, err
	}
	user := &User{
		ID:    constants.SimulatedUserID,
		Name:  constants.SimulatedCustomerName,
		Email: strings.TrimSpace(input.Email),
		Role:  input.Role,
		City:  constants.SimulatedCity,
	}
	if input.Role == models.RoleShopkeeper {
		user.Name = constants.SimulatedShopkeeper
		user.ShopID = constants.SimulatedShopID
	}
	return user, nil
}

// Register 模拟注册，ID 由当前毫秒时间戳生成
func (p *SimulatedAuthProvider) Register(ctx context.Context, input RegisterInput) (*User, error) {
	if err := validateRegisterRole(input.Role); err != nil {
		return nil, err
	}
	if err := wait(ctx, p.registerDelay); err != nil {
		return nil, err
	}
	stamp := p.now().UnixMilli()
	user := &User{
		ID:    fmt.Sprintf("user-%d", stamp),
		Name:  strings.TrimSpace(input.Name),
		Email: strings.TrimSpace(input.Email),
		Role:  input.Role,
		City:  strings.TrimSpace(input.City),
	}
	if input.Role == models.RoleShopkeeper {
		user.ShopID = fmt.Sprintf("shop-%d", stamp)
	}
	return user, nil
}

// DirectoryAuthProvider 基于账号表的认证，密码使用 bcrypt
type DirectoryAuthProvider struct {
	accounts repository.AccountRepository
	cost     int
	now      func() time.Time
}

// NewDirectoryAuthProvider 创建账号目录认证
func NewDirectoryAuthProvider(accounts repository.AccountRepository, cost int) *DirectoryAuthProvider {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	return &DirectoryAuthProvider{accounts: accounts, cost: cost, now: time.Now}
}

// Name 后端名称
func (p *DirectoryAuthProvider) Name() string {
	return constants.AuthProviderDirectory
}

// Login 校验邮箱、密码与角色
func (p *DirectoryAuthProvider) Login(ctx context.Context, input LoginInput) (*User, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := validateLoginRole(input.Role); err != nil {
		return nil, err
	}
	email, err := normalizeEmail(input.Email)
	if err != nil {
		return nil, ErrInvalidCredentials
	}
	account, err := p.accounts.GetByEmail(email)
	if err != nil {
		return nil, err
	}
	if account == nil {
		return nil, ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(account.PasswordHash), []byte(input.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}
	if account.Role != input.Role {
		return nil, ErrInvalidCredentials
	}
	if err := p.accounts.TouchLastLogin(account.ID, p.now()); err != nil {
		logger.Warnw("auth_touch_last_login_failed", "account_id", account.ID, "error", err)
	}
	return userFromAccount(account), nil
}

// Register 创建账号，邮箱不可重复
func (p *DirectoryAuthProvider) Register(ctx context.Context, input RegisterInput) (*User, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := validateRegisterRole(input.Role); err != nil {
		return nil, err
	}
	email, err := normalizeEmail(input.Email)
	if err != nil {
		return nil, err
	}
	if input.Password == "" {
		return nil, ErrPasswordRequired
	}
	existing, err := p.accounts.GetByEmail(email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrEmailTaken
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), p.cost)
	if err != nil {
		return nil, err
	}
	stamp := p.now().UnixMilli()
	account := &models.Account{
		ID:           fmt.Sprintf("user-%d", stamp),
		Email:        email,
		Name:         strings.TrimSpace(input.Name),
		PasswordHash: string(hash),
		Role:         input.Role,
		City:         strings.TrimSpace(input.City),
	}
	if input.Role == models.RoleShopkeeper {
		account.ShopID = fmt.Sprintf("shop-%d", stamp)
	}
	if err := p.accounts.Create(account); err != nil {
		return nil, err
	}
	return userFromAccount(account), nil
}

func userFromAccount(account *models.Account) *User {
	return &User{
		ID:     account.ID,
		Name:   account.Name,
		Email:  account.Email,
		Role:   account.Role,
		City:   account.City,
		ShopID: account.ShopID,
	}
}
