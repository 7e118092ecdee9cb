package mq

import (
	"Social/config"
	"Social/pkg/log"
	"context"
	"errors"

	"github.com/nats-io/nats.go"
	"go.uber.org/zap"
)

const subjectPrefix = "social."

type NatsPublisher struct {
	conn *nats.Conn
}

func NewNatsPublisher(cfg *config.NatsConfig) (*NatsPublisher, error) {
	if cfg == nil || cfg.Url == "" {
		return nil, errors.New("nats url not configured")
	}
	conn, err := nats.Connect(cfg.Url, nats.Name("social-api"))
	if err != nil {
		return nil, err
	}
	log.L.Info("NATS connected", zap.String("url", cfg.Url))
	return &NatsPublisher{conn: conn}, nil
}

// Publish subject 形如 social.post.created
func (n *NatsPublisher) Publish(_ context.Context, event Event) error {
	body, err := event.Encode()
	if err != nil {
		return err
	}
	return n.conn.Publish(subjectPrefix+event.Type, body)
}

func (n *NatsPublisher) Close() error {
	return n.conn.Drain()
}
