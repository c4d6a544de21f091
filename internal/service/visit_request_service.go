package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jewelbridge/internal/cache"
	"github.com/jewelbridge/internal/config"
	"github.com/jewelbridge/internal/constants"
	"github.com/jewelbridge/internal/events"
	"github.com/jewelbridge/internal/logger"
	"github.com/jewelbridge/internal/models"
	"github.com/jewelbridge/internal/queue"
	"github.com/jewelbridge/internal/repository"

	"github.com/google/uuid"
)

const (
	visitRequestIDPrefix   = "vr-"
	defaultPlaceholderUser = "current-user"
	expireSweepBatch       = 100
)

// visitRequestTransitions 目标状态 -> 允许的来源状态
var visitRequestTransitions = map[string][]string{
	constants.VisitRequestStatusConfirmed: {constants.VisitRequestStatusCreated},
	constants.VisitRequestStatusCancelled: {constants.VisitRequestStatusCreated},
	constants.VisitRequestStatusExpired:   {constants.VisitRequestStatusCreated},
	constants.VisitRequestStatusCompleted: {constants.VisitRequestStatusConfirmed},
}

// CanTransitionVisitRequest 判断状态流转是否合法
func CanTransitionVisitRequest(from, to string) bool {
	for _, allowed := range visitRequestTransitions[to] {
		if allowed == from {
			return true
		}
	}
	return false
}

// HoldScheduler 预留到期任务调度
type HoldScheduler interface {
	EnqueueVisitHoldExpire(payload queue.VisitHoldExpirePayload, delay time.Duration) error
}

// VisitRequestService 到店预约工厂与预约簿
type VisitRequestService struct {
	repo      repository.VisitRequestRepository
	cfg       config.VisitRequestConfig
	scheduler HoldScheduler
	publisher events.Publisher
	now       func() time.Time
}

// NewVisitRequestService 创建到店预约服务
func NewVisitRequestService(repo repository.VisitRequestRepository, cfg config.VisitRequestConfig, scheduler HoldScheduler, publisher events.Publisher) *VisitRequestService {
	if publisher == nil {
		publisher = events.NoopPublisher{}
	}
	return &VisitRequestService{
		repo:      repo,
		cfg:       cfg,
		scheduler: scheduler,
		publisher: publisher,
		now:       time.Now,
	}
}

func (s *VisitRequestService) placeholderCustomer() string {
	if value := strings.TrimSpace(s.cfg.PlaceholderCustomer); value != "" {
		return value
	}
	return defaultPlaceholderUser
}

// Create 将会话购物车中该店铺的商品转为到店预约，并从购物车移除
// 子集为空时仍会创建零金额预约。写入失败时购物车保持不变。
func (s *VisitRequestService) Create(ctx context.Context, session *Session, shopID string, n Notifier) (*models.VisitRequest, error) {
	if session == nil {
		return nil, ErrSessionNotFound
	}
	n = notifierOrDiscard(n)
	shopID = strings.TrimSpace(shopID)
	customerID := session.CustomerID(s.placeholderCustomer())

	var created *models.VisitRequest
	err := session.Cart.CommitShop(shopID, func(items []CartItem) error {
		now := s.now()
		if len(items) == 0 {
			logger.Warnw("visit_request_empty_subset", "session_id", session.ID, "shop_id", shopID)
		}
		request := &models.VisitRequest{
			ID:                   visitRequestIDPrefix + uuid.NewString(),
			SessionID:            session.ID,
			CustomerID:           customerID,
			ShopID:               shopID,
			Status:               constants.VisitRequestStatusCreated,
			TotalEstimatedAmount: sumLineTotals(items),
			HoldExpiresAt:        now.Add(s.cfg.HoldDuration()),
			CreatedAt:            now,
			UpdatedAt:            now,
			Items:                snapshotVisitItems(items),
		}
		if err := s.repo.Create(request); err != nil {
			return fmt.Errorf("%w: %w", ErrVisitRequestCreateFailed, err)
		}
		created = request
		return nil
	})
	if err != nil {
		logger.Errorw("visit_request_create_failed", "session_id", session.ID, "shop_id", shopID, "error", err)
		return nil, err
	}

	n.Notify(NoticeLevelSuccess, "Visit & Hold request created!")
	logger.Infow("visit_request_created",
		"visit_request_id", created.ID,
		"shop_id", created.ShopID,
		"customer_id", created.CustomerID,
		"items", len(created.Items),
		"total", created.TotalEstimatedAmount,
	)
	s.afterCreate(ctx, created)
	return created, nil
}

func snapshotVisitItems(items []CartItem) []models.VisitRequestItem {
	result := make([]models.VisitRequestItem, 0, len(items))
	for i, item := range items {
		product := item.Product
		result = append(result, models.VisitRequestItem{
			ProductID:   product.ID,
			ShopID:      product.ShopID,
			Name:        product.Name,
			Category:    product.Category,
			MetalType:   product.MetalType,
			Purity:      product.Purity,
			WeightGrams: product.WeightGrams,
			UnitPrice:   product.Price,
			ImageURL:    product.ImageURL,
			Quantity:    item.Quantity,
			SortOrder:   i,
		})
	}
	return result
}

func (s *VisitRequestService) afterCreate(ctx context.Context, request *models.VisitRequest) {
	if s.scheduler != nil {
		payload := queue.VisitHoldExpirePayload{VisitRequestID: request.ID, ShopID: request.ShopID}
		if err := s.scheduler.EnqueueVisitHoldExpire(payload, request.HoldExpiresAt.Sub(s.now())); err != nil {
			logger.Warnw("visit_request_schedule_expire_failed", "visit_request_id", request.ID, "error", err)
		}
	}
	event := events.VisitRequestCreated{
		VisitRequestID:       request.ID,
		ShopID:               request.ShopID,
		CustomerID:           request.CustomerID,
		ItemCount:            len(request.Items),
		TotalEstimatedAmount: request.TotalEstimatedAmount,
		HoldExpiresAt:        request.HoldExpiresAt,
	}
	if err := s.publisher.Publish(ctx, constants.EventVisitRequestCreated, request.ShopID, event); err != nil {
		logger.Warnw("visit_request_publish_created_failed", "visit_request_id", request.ID, "error", err)
	}
	s.invalidateDashboard(ctx, request.ShopID)
}

// Get 获取预约
func (s *VisitRequestService) Get(id string) (*models.VisitRequest, error) {
	request, err := s.repo.GetByID(strings.TrimSpace(id))
	if err != nil {
		return nil, err
	}
	if request == nil {
		return nil, ErrVisitRequestNotFound
	}
	return request, nil
}

// ListBySession 会话创建的预约
func (s *VisitRequestService) ListBySession(sessionID string, page, pageSize int) ([]models.VisitRequest, int64, error) {
	if strings.TrimSpace(sessionID) == "" {
		return []models.VisitRequest{}, 0, nil
	}
	return s.repo.List(repository.VisitRequestListFilter{SessionID: sessionID, Page: page, PageSize: pageSize})
}

// ListByShop 店铺收到的预约，filter 中的店铺条件以 shopID 为准
func (s *VisitRequestService) ListByShop(shopID string, filter repository.VisitRequestListFilter) ([]models.VisitRequest, int64, error) {
	if strings.TrimSpace(shopID) == "" {
		return []models.VisitRequest{}, 0, nil
	}
	filter.ShopID = shopID
	return s.repo.List(filter)
}

// ListAll 全部预约
func (s *VisitRequestService) ListAll(filter repository.VisitRequestListFilter) ([]models.VisitRequest, int64, error) {
	return s.repo.List(filter)
}

// Transition 按状态机流转预约状态
func (s *VisitRequestService) Transition(ctx context.Context, id, to string) (*models.VisitRequest, error) {
	request, err := s.Get(id)
	if err != nil {
		return nil, err
	}
	to = strings.TrimSpace(to)
	from := request.Status
	if !CanTransitionVisitRequest(from, to) {
		return nil, ErrVisitRequestStatusInvalid
	}
	affected, err := s.repo.UpdateStatus(request.ID, []string{from}, to, s.now())
	if err != nil {
		return nil, err
	}
	if affected == 0 {
		return nil, ErrVisitRequestStatusInvalid
	}
	s.afterTransition(ctx, request, from, to)
	return s.Get(request.ID)
}

// Expire 预留到期：仅对仍处于 created 且已过期的预约生效，返回是否实际过期
func (s *VisitRequestService) Expire(ctx context.Context, id string) (bool, error) {
	request, err := s.Get(id)
	if err != nil {
		return false, err
	}
	now := s.now()
	if request.Status != constants.VisitRequestStatusCreated || request.HoldExpiresAt.After(now) {
		return false, nil
	}
	affected, err := s.repo.UpdateStatus(request.ID, []string{constants.VisitRequestStatusCreated}, constants.VisitRequestStatusExpired, now)
	if err != nil {
		return false, err
	}
	if affected == 0 {
		return false, nil
	}
	s.afterTransition(ctx, request, constants.VisitRequestStatusCreated, constants.VisitRequestStatusExpired)
	return true, nil
}

// ExpireDueHolds 批量处理已到期的预留，返回过期数量
func (s *VisitRequestService) ExpireDueHolds(ctx context.Context) (int, error) {
	due, err := s.repo.ListExpiredHolds(constants.VisitRequestStatusCreated, s.now(), expireSweepBatch)
	if err != nil {
		return 0, err
	}
	expired := 0
	for _, request := range due {
		ok, err := s.Expire(ctx, request.ID)
		if err != nil {
			logger.Warnw("visit_request_expire_failed", "visit_request_id", request.ID, "error", err)
			continue
		}
		if ok {
			expired++
		}
	}
	return expired, nil
}

func (s *VisitRequestService) afterTransition(ctx context.Context, request *models.VisitRequest, from, to string) {
	logger.Infow("visit_request_status_changed", "visit_request_id", request.ID, "shop_id", request.ShopID, "from", from, "to", to)
	event := events.VisitRequestStatusChanged{
		VisitRequestID: request.ID,
		ShopID:         request.ShopID,
		From:           from,
		To:             to,
	}
	if err := s.publisher.Publish(ctx, constants.EventVisitRequestStatusChanged, request.ShopID, event); err != nil {
		logger.Warnw("visit_request_publish_status_failed", "visit_request_id", request.ID, "error", err)
	}
	s.invalidateDashboard(ctx, request.ShopID)
}

func (s *VisitRequestService) invalidateDashboard(ctx context.Context, shopID string) {
	for _, prefix := range []string{dashboardOverviewCachePrefix(shopID), dashboardOverviewCachePrefix("")} {
		if _, err := cache.Invalidate(ctx, prefix); err != nil {
			logger.Debugw("dashboard_cache_invalidate_failed", "shop_id", shopID, "error", err)
		}
	}
}
