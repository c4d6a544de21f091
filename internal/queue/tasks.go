package queue

import (
	"encoding/json"
	"errors"
	"strings"

	"github.com/jewelbridge/internal/constants"

	"github.com/hibiken/asynq"
)

const (
	// TaskVisitHoldExpire 到店预约预留到期任务
	TaskVisitHoldExpire = constants.TaskVisitHoldExpire
)

// VisitHoldExpirePayload 预留到期任务载荷
type VisitHoldExpirePayload struct {
	VisitRequestID string `json:"visit_request_id"`
	ShopID         string `json:"shop_id"`
}

// NewVisitHoldExpireTask 创建预留到期任务
func NewVisitHoldExpireTask(payload VisitHoldExpirePayload) (*asynq.Task, error) {
	if strings.TrimSpace(payload.VisitRequestID) == "" {
		return nil, errors.New("visit request id is empty")
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskVisitHoldExpire, body), nil
}

// ParseVisitHoldExpirePayload 解析预留到期任务载荷
func ParseVisitHoldExpirePayload(task *asynq.Task) (VisitHoldExpirePayload, error) {
	var payload VisitHoldExpirePayload
	if task == nil {
		return payload, errors.New("task is nil")
	}
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		return payload, err
	}
	return payload, nil
}
