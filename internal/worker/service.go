package worker

import (
	"context"
	"errors"
	"time"

	"github.com/jewelbridge/internal/config"
	"github.com/jewelbridge/internal/logger"
	"github.com/jewelbridge/internal/queue"
	"github.com/jewelbridge/internal/service"

	"github.com/hibiken/asynq"
)

const (
	holdSweepInterval = time.Minute
)

// Service 异步队列服务
type Service struct {
	name     string
	server   *asynq.Server
	mux      *asynq.ServeMux
	consumer *Consumer
}

// NewService 创建异步队列服务
func NewService(cfg *config.QueueConfig, consumer *Consumer) (*Service, error) {
	if cfg == nil || !cfg.Enabled {
		return nil, errors.New("queue disabled")
	}
	if consumer == nil {
		return nil, errors.New("consumer is nil")
	}
	opt, serverCfg := queue.BuildServerConfig(cfg)
	server := asynq.NewServer(opt, serverCfg)
	mux := asynq.NewServeMux()
	consumer.Register(mux)
	return &Service{
		name:     "worker",
		server:   server,
		mux:      mux,
		consumer: consumer,
	}, nil
}

// Name 服务名称
func (s *Service) Name() string {
	if s == nil || s.name == "" {
		return "worker"
	}
	return s.name
}

// Start 启动服务
func (s *Service) Start(ctx context.Context) error {
	if s == nil || s.server == nil || s.mux == nil {
		return errors.New("worker not initialized")
	}
	if s.consumer != nil && s.consumer.Container != nil && s.consumer.VisitRequestService != nil {
		go RunHoldSweep(ctx, s.consumer.VisitRequestService, holdSweepInterval)
	}
	return s.server.Run(s.mux)
}

// Stop 停止服务
func (s *Service) Stop(ctx context.Context) error {
	if s == nil || s.server == nil {
		return nil
	}
	_ = ctx
	s.server.Shutdown()
	return nil
}

// RunHoldSweep 定时过期已到期的预留，阻塞至 ctx 结束
// 队列关闭时由应用层单独运行，作为延时任务之外的兜底。
func RunHoldSweep(ctx context.Context, visits *service.VisitRequestService, interval time.Duration) {
	if visits == nil {
		return
	}
	if interval <= 0 {
		interval = holdSweepInterval
	}
	runOnce := func() {
		expired, err := visits.ExpireDueHolds(ctx)
		if err != nil {
			logger.Warnw("worker_hold_sweep_failed", "error", err)
			return
		}
		if expired > 0 {
			logger.Infow("worker_hold_sweep_expired", "count", expired)
		}
	}
	runOnce()

	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			runOnce()
		}
	}
}
