package service

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/jewelbridge/internal/config"
	"github.com/jewelbridge/internal/logger"
	"github.com/jewelbridge/internal/models"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Session 匿名或已登录的浏览会话，持有独立的购物车
type Session struct {
	ID        string
	CreatedAt time.Time
	Cart      *CartLedger

	mu       sync.RWMutex
	user     *User
	lastSeen time.Time
}

func newSession(id string, now time.Time) *Session {
	return &Session{
		ID:        id,
		CreatedAt: now,
		Cart:      NewCartLedger(),
		lastSeen:  now,
	}
}

// User 当前用户
func (s *Session) User() (User, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.user == nil {
		return User{}, false
	}
	return *s.user, true
}

// IsAuthenticated 是否已登录
func (s *Session) IsAuthenticated() bool {
	_, ok := s.User()
	return ok
}

// Role 会话角色，未登录为访客
func (s *Session) Role() models.Role {
	if user, ok := s.User(); ok {
		return user.Role
	}
	return models.RoleGuest
}

// CustomerID 预约使用的顾客 ID，匿名会话使用占位值
func (s *Session) CustomerID(placeholder string) string {
	if user, ok := s.User(); ok && strings.TrimSpace(user.ID) != "" {
		return user.ID
	}
	return placeholder
}

func (s *Session) setUser(user *User) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.user = user
}

func (s *Session) touch(now time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if now.After(s.lastSeen) {
		s.lastSeen = now
	}
}

func (s *Session) idleSince(now time.Time) time.Duration {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return now.Sub(s.lastSeen)
}

// SessionClaims 会话令牌声明
type SessionClaims struct {
	SessionID string `json:"sid"`
	jwt.RegisteredClaims
}

// SessionToken 签发结果
type SessionToken struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
}

// SessionService 会话与身份存储
// 会话仅保存在内存中，进程重启后丢失。
type SessionService struct {
	jwtCfg   config.JWTConfig
	cfg      config.SessionConfig
	provider AuthProvider

	mu       sync.RWMutex
	sessions map[string]*Session
	now      func() time.Time
}

// NewSessionService 创建会话服务
func NewSessionService(jwtCfg config.JWTConfig, cfg config.SessionConfig, provider AuthProvider) *SessionService {
	return &SessionService{
		jwtCfg:   jwtCfg,
		cfg:      cfg,
		provider: provider,
		sessions: make(map[string]*Session),
		now:      time.Now,
	}
}

// ProviderName 当前认证后端名称
func (s *SessionService) ProviderName() string {
	if s == nil || s.provider == nil {
		return ""
	}
	return s.provider.Name()
}

// Create 创建匿名会话并签发令牌
func (s *SessionService) Create() (*Session, SessionToken, error) {
	now := s.now()
	session := newSession(uuid.NewString(), now)
	token, err := s.issueToken(session.ID, now)
	if err != nil {
		return nil, SessionToken{}, err
	}
	s.mu.Lock()
	s.sessions[session.ID] = session
	s.mu.Unlock()
	logger.Debugw("session_created", "session_id", session.ID)
	return session, token, nil
}

func (s *SessionService) issueToken(sessionID string, now time.Time) (SessionToken, error) {
	hours := s.jwtCfg.ExpireHours
	if hours <= 0 {
		hours = 24
	}
	expiresAt := now.Add(time.Duration(hours) * time.Hour)
	claims := SessionClaims{
		SessionID: sessionID,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(s.jwtCfg.SecretKey))
	if err != nil {
		return SessionToken{}, err
	}
	return SessionToken{Token: signed, ExpiresAt: expiresAt}, nil
}

// ParseToken 解析会话令牌
func (s *SessionService) ParseToken(tokenString string) (*SessionClaims, error) {
	parser := jwt.NewParser(
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(s.now),
	)
	token, err := parser.ParseWithClaims(tokenString, &SessionClaims{}, func(token *jwt.Token) (interface{}, error) {
		return []byte(s.jwtCfg.SecretKey), nil
	})
	if err != nil {
		return nil, ErrInvalidToken
	}
	claims, ok := token.Claims.(*SessionClaims)
	if !ok || !token.Valid || strings.TrimSpace(claims.SessionID) == "" {
		return nil, ErrInvalidToken
	}
	return claims, nil
}

// Resolve 根据令牌找到会话并刷新活跃时间
func (s *SessionService) Resolve(tokenString string) (*Session, error) {
	claims, err := s.ParseToken(tokenString)
	if err != nil {
		return nil, err
	}
	session, ok := s.Get(claims.SessionID)
	if !ok {
		return nil, ErrSessionNotFound
	}
	now := s.now()
	if idle := s.cfg.IdleTimeout(); idle > 0 && session.idleSince(now) > idle {
		s.remove(session.ID)
		return nil, ErrSessionNotFound
	}
	session.touch(now)
	return session, nil
}

// Get 按 ID 获取会话
func (s *SessionService) Get(id string) (*Session, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	session, ok := s.sessions[id]
	return session, ok
}

// Count 当前会话数
func (s *SessionService) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}

func (s *SessionService) remove(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, id)
}

// Login 通过认证后端登录；延迟期间会话保持原状态
func (s *SessionService) Login(ctx context.Context, session *Session, input LoginInput) (User, error) {
	if session == nil {
		return User{}, ErrSessionNotFound
	}
	user, err := s.provider.Login(ctx, input)
	if err != nil {
		if !errors.Is(err, ErrInvalidCredentials) && !errors.Is(err, ErrInvalidRole) {
			logger.Warnw("session_login_failed", "session_id", session.ID, "provider", s.ProviderName(), "error", err)
		}
		return User{}, err
	}
	session.setUser(user)
	logger.Infow("session_login", "session_id", session.ID, "user_id", user.ID, "role", user.Role.String())
	return *user, nil
}

// Register 通过认证后端注册并登录
func (s *SessionService) Register(ctx context.Context, session *Session, input RegisterInput) (User, error) {
	if session == nil {
		return User{}, ErrSessionNotFound
	}
	user, err := s.provider.Register(ctx, input)
	if err != nil {
		return User{}, err
	}
	session.setUser(user)
	logger.Infow("session_register", "session_id", session.ID, "user_id", user.ID, "role", user.Role.String())
	return *user, nil
}

// Logout 清除当前用户，购物车保留
func (s *SessionService) Logout(session *Session) {
	if session == nil {
		return
	}
	session.setUser(nil)
	logger.Infow("session_logout", "session_id", session.ID)
}

// Sweep 清理闲置超时的会话，返回清理数量
func (s *SessionService) Sweep(now time.Time) int {
	idle := s.cfg.IdleTimeout()
	if idle <= 0 {
		return 0
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	removed := 0
	for id, session := range s.sessions {
		if session.idleSince(now) > idle {
			delete(s.sessions, id)
			removed++
		}
	}
	return removed
}

// RunJanitor 定时清理闲置会话，直到 ctx 结束
func (s *SessionService) RunJanitor(ctx context.Context) {
	interval := s.cfg.SweepInterval()
	if interval <= 0 {
		interval = time.Minute
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if removed := s.Sweep(s.now()); removed > 0 {
				logger.Infow("session_janitor_swept", "removed", removed, "remaining", s.Count())
			}
		}
	}
}
