package mq

import (
	"Social/config"
	"Social/pkg/log"
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"
)

// 领域事件类型, 事务提交后投递
const (
	EventPostCreated    = "post.created"
	EventPostDeleted    = "post.deleted"
	EventCommentCreated = "comment.created"
	EventCommentDeleted = "comment.deleted"
	EventReactionAdded  = "reaction.added"
	EventUserDeleted    = "user.deleted"
)

type Event struct {
	Type       string    `json:"type"`
	Payload    any       `json:"payload"`
	OccurredAt time.Time `json:"occurred_at"`
}

func (e Event) Encode() ([]byte, error) {
	return json.Marshal(e)
}

type Publisher interface {
	Publish(ctx context.Context, event Event) error
	Close() error
}

// NewPublisher 按 mq.driver 选择实现, 未配置时事件被丢弃
func NewPublisher(conf *config.MQConfig) (Publisher, error) {
	if conf == nil {
		return Noop{}, nil
	}
	switch conf.Driver {
	case "", config.MQDriverNone:
		return Noop{}, nil
	case config.MQDriverRocketMQ:
		return NewRocketMQPublisher(conf.RocketMQ)
	case config.MQDriverNats:
		return NewNatsPublisher(conf.Nats)
	default:
		return nil, fmt.Errorf("unknown mq driver %q", conf.Driver)
	}
}

// ProvidePublisher 连接失败不影响主流程, 降级为不投递
func ProvidePublisher(conf *config.MQConfig) Publisher {
	p, err := NewPublisher(conf)
	if err != nil {
		log.L.Error("init mq publisher failed, events disabled", zap.Error(err))
		return Noop{}
	}
	return p
}

// Emit 投递失败只记录日志
func Emit(ctx context.Context, p Publisher, eventType string, payload any) {
	if p == nil {
		return
	}
	event := Event{Type: eventType, Payload: payload, OccurredAt: time.Now()}
	if err := p.Publish(ctx, event); err != nil {
		log.L.Warn("publish event failed", zap.String("type", eventType), zap.Error(err))
	}
}

type Noop struct{}

func (Noop) Publish(context.Context, Event) error { return nil }

func (Noop) Close() error { return nil }

// Recorder 内存记录已投递事件
type Recorder struct {
	mu     sync.Mutex
	events []Event
}

func (r *Recorder) Publish(_ context.Context, event Event) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, event)
	return nil
}

func (r *Recorder) Close() error { return nil }

func (r *Recorder) Types() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	types := make([]string, 0, len(r.events))
	for _, e := range r.events {
		types = append(types, e.Type)
	}
	return types
}
