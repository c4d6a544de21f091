package worker

import (
	"context"
	"errors"

	"github.com/jewelbridge/internal/logger"
	"github.com/jewelbridge/internal/provider"
	"github.com/jewelbridge/internal/queue"
	"github.com/jewelbridge/internal/service"

	"github.com/hibiken/asynq"
)

// Consumer 异步任务消费者
type Consumer struct {
	*provider.Container
}

// NewConsumer 创建消费者
func NewConsumer(c *provider.Container) *Consumer {
	return &Consumer{
		Container: c,
	}
}

// Register 注册消费者
func (c *Consumer) Register(mux *asynq.ServeMux) {
	if c == nil || mux == nil {
		logger.Debugw("worker_register_skip_nil", "consumer_nil", c == nil, "mux_nil", mux == nil)
		return
	}
	mux.HandleFunc(queue.TaskVisitHoldExpire, c.handleVisitHoldExpire)
}

func (c *Consumer) handleVisitHoldExpire(ctx context.Context, task *asynq.Task) error {
	if c == nil || c.Container == nil || c.VisitRequestService == nil || task == nil {
		logger.Debugw("worker_visit_hold_expire_skip_nil", "consumer_nil", c == nil, "task_nil", task == nil)
		return nil
	}
	payload, err := queue.ParseVisitHoldExpirePayload(task)
	if err != nil {
		logger.Warnw("worker_visit_hold_expire_unmarshal_failed", "error", err)
		return err
	}
	if payload.VisitRequestID == "" {
		logger.Debugw("worker_visit_hold_expire_skip_invalid_payload")
		return nil
	}
	expired, err := c.VisitRequestService.Expire(ctx, payload.VisitRequestID)
	if err != nil {
		if errors.Is(err, service.ErrVisitRequestNotFound) {
			logger.Debugw("worker_visit_hold_expire_skip_not_found", "visit_request_id", payload.VisitRequestID)
			return nil
		}
		logger.Warnw("worker_visit_hold_expire_failed", "visit_request_id", payload.VisitRequestID, "error", err)
		return err
	}
	logger.Debugw("worker_visit_hold_expire_done", "visit_request_id", payload.VisitRequestID, "expired", expired)
	return nil
}
