package events

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// EnvelopeVersion 当前事件结构版本
const EnvelopeVersion = 1

// Envelope 事件信封
type Envelope struct {
	EventID       string          `json:"event_id"`
	EventType     string          `json:"event_type"`
	EventVersion  int             `json:"event_version"`
	OccurredAt    time.Time       `json:"occurred_at"`
	Producer      string          `json:"producer"`
	CorrelationID string          `json:"correlation_id,omitempty"`
	Payload       json.RawMessage `json:"payload"`
}

// NewEnvelope 包装事件载荷
func NewEnvelope(producer, eventType, correlationID string, payload interface{}, now time.Time) (Envelope, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return Envelope{}, fmt.Errorf("encode %s payload: %w", eventType, err)
	}
	return Envelope{
		EventID:       uuid.NewString(),
		EventType:     eventType,
		EventVersion:  EnvelopeVersion,
		OccurredAt:    now.UTC(),
		Producer:      producer,
		CorrelationID: correlationID,
		Payload:       body,
	}, nil
}

// DecodePayload 解出具体事件载荷
func DecodePayload[T any](envelope Envelope) (T, error) {
	var out T
	if err := json.Unmarshal(envelope.Payload, &out); err != nil {
		return out, fmt.Errorf("decode %s payload: %w", envelope.EventType, err)
	}
	return out, nil
}

// VisitRequestCreated 预约创建事件载荷
type VisitRequestCreated struct {
	VisitRequestID       string    `json:"visit_request_id"`
	ShopID               string    `json:"shop_id"`
	CustomerID           string    `json:"customer_id"`
	ItemCount            int       `json:"item_count"`
	TotalEstimatedAmount int64     `json:"total_estimated_amount"`
	HoldExpiresAt        time.Time `json:"hold_expires_at"`
}

// VisitRequestStatusChanged 预约状态变更事件载荷
type VisitRequestStatusChanged struct {
	VisitRequestID string `json:"visit_request_id"`
	ShopID         string `json:"shop_id"`
	From           string `json:"from"`
	To             string `json:"to"`
}
