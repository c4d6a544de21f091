package events

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/jewelbridge/internal/config"
	"github.com/jewelbridge/internal/logger"

	"github.com/segmentio/kafka-go"
)

const (
	defaultProducer   = "jewelbridge-api"
	defaultBufferSize = 256
)

var (
	ErrPublisherClosed     = errors.New("event publisher closed")
	ErrPublisherBufferFull = errors.New("event publisher buffer full")
)

// Publisher 领域事件发布接口
type Publisher interface {
	Publish(ctx context.Context, eventType, key string, payload interface{}) error
}

// NoopPublisher 未启用 Kafka 时使用
type NoopPublisher struct{}

// Publish 丢弃事件
func (NoopPublisher) Publish(context.Context, string, string, interface{}) error {
	return nil
}

type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// KafkaPublisher 异步 Kafka 发布器
// 事件先进入缓冲队列，由 Start 中的循环写出；停止时冲刷剩余消息。
type KafkaPublisher struct {
	name     string
	producer string
	writer   messageWriter
	inbox    chan kafka.Message
	done     chan struct{}

	mu     sync.RWMutex
	closed bool
	now    func() time.Time
}

// NewKafkaPublisher 根据配置创建发布器
func NewKafkaPublisher(cfg *config.KafkaConfig) (*KafkaPublisher, error) {
	if cfg == nil || !cfg.Enabled {
		return nil, errors.New("kafka disabled")
	}
	brokers := make([]string, 0, len(cfg.Brokers))
	for _, broker := range cfg.Brokers {
		if trimmed := strings.TrimSpace(broker); trimmed != "" {
			brokers = append(brokers, trimmed)
		}
	}
	if len(brokers) == 0 {
		return nil, errors.New("kafka brokers are empty")
	}
	topic := strings.TrimSpace(cfg.Topic)
	if topic == "" {
		return nil, errors.New("kafka topic is empty")
	}
	writer := &kafka.Writer{
		Addr:         kafka.TCP(brokers...),
		Topic:        topic,
		Balancer:     &kafka.Hash{},
		RequiredAcks: kafka.RequireAll,
	}
	return newKafkaPublisher(writer, cfg.BufferSize), nil
}

func newKafkaPublisher(writer messageWriter, bufferSize int) *KafkaPublisher {
	if bufferSize <= 0 {
		bufferSize = defaultBufferSize
	}
	return &KafkaPublisher{
		name:     "events",
		producer: defaultProducer,
		writer:   writer,
		inbox:    make(chan kafka.Message, bufferSize),
		done:     make(chan struct{}),
		now:      time.Now,
	}
}

// Publish 将事件放入发送缓冲，按 key 分区保证同一店铺事件有序
func (p *KafkaPublisher) Publish(ctx context.Context, eventType, key string, payload interface{}) error {
	if p == nil {
		return ErrPublisherClosed
	}
	envelope, err := NewEnvelope(p.producer, eventType, key, payload, p.now())
	if err != nil {
		return err
	}
	value, err := json.Marshal(envelope)
	if err != nil {
		return err
	}
	msg := kafka.Message{
		Key:   []byte(key),
		Value: value,
		Time:  envelope.OccurredAt,
		Headers: []kafka.Header{
			{Key: "event_type", Value: []byte(eventType)},
		},
	}

	p.mu.RLock()
	defer p.mu.RUnlock()
	if p.closed {
		return ErrPublisherClosed
	}
	select {
	case p.inbox <- msg:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	default:
		return ErrPublisherBufferFull
	}
}

// Name 服务名称
func (p *KafkaPublisher) Name() string {
	if p == nil || p.name == "" {
		return "events"
	}
	return p.name
}

// Start 运行发送循环，直到 ctx 结束
func (p *KafkaPublisher) Start(ctx context.Context) error {
	if p == nil || p.writer == nil {
		return errors.New("event publisher not initialized")
	}
	defer close(p.done)
	for {
		select {
		case <-ctx.Done():
			p.mu.Lock()
			p.closed = true
			close(p.inbox)
			p.mu.Unlock()
			for msg := range p.inbox {
				p.write(msg)
			}
			if err := p.writer.Close(); err != nil {
				logger.Warnw("event_publisher_close_failed", "error", err)
			}
			return nil
		case msg := <-p.inbox:
			p.write(msg)
		}
	}
}

// Stop 等待发送循环冲刷完毕
func (p *KafkaPublisher) Stop(ctx context.Context) error {
	if p == nil {
		return nil
	}
	select {
	case <-p.done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (p *KafkaPublisher) write(msg kafka.Message) {
	writeCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := p.writer.WriteMessages(writeCtx, msg); err != nil {
		logger.Warnw("event_publish_failed", "key", string(msg.Key), "error", err)
		return
	}
	logger.Debugw("event_published", "key", string(msg.Key), "bytes", len(msg.Value))
}
