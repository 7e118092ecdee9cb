package mq

import (
	"Social/config"
	"Social/pkg/log"
	"context"
	"errors"
	"strings"

	"github.com/apache/rocketmq-client-go/v2"
	"github.com/apache/rocketmq-client-go/v2/primitive"
	"github.com/apache/rocketmq-client-go/v2/producer"
	"github.com/apache/rocketmq-client-go/v2/rlog"
	"go.uber.org/zap"
)

// Topic 全部事件写入同一个 topic, 用 tag 区分事件类型
const Topic = "social_events"

func init() {
	rlog.SetLogLevel("error")
}

type RocketMQPublisher struct {
	producer rocketmq.Producer
}

func NewRocketMQPublisher(cfg *config.RocketMQConfig) (*RocketMQPublisher, error) {
	if cfg == nil || len(cfg.NameServer) == 0 {
		return nil, errors.New("rocketmq nameserver not configured")
	}
	retry := cfg.Producer.Retry
	if retry <= 0 {
		retry = 2
	}
	p, err := rocketmq.NewProducer(
		producer.WithNameServer(cfg.NameServer),
		producer.WithRetry(retry),
		producer.WithGroupName(cfg.Producer.Group),
	)
	if err != nil {
		return nil, err
	}
	if err = p.Start(); err != nil {
		return nil, err
	}
	log.L.Info("init producer success", zap.Strings("nameserver", cfg.NameServer))

	return &RocketMQPublisher{producer: p}, nil
}

func (r *RocketMQPublisher) Publish(ctx context.Context, event Event) error {
	body, err := event.Encode()
	if err != nil {
		return err
	}
	msg := primitive.NewMessage(Topic, body).WithTag(tagOf(event.Type))
	_, err = r.producer.SendSync(ctx, msg)
	return err
}

func (r *RocketMQPublisher) Close() error {
	return r.producer.Shutdown()
}

// tagOf rocketmq tag 不允许出现 '.'
func tagOf(eventType string) string {
	return strings.ReplaceAll(eventType, ".", "_")
}
