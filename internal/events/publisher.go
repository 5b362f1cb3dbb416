package events

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/nats-io/nats.go"
	"go.uber.org/zap"

	"github.com/Kilat-Pet-Delivery/service-adoption/pkg/kafka"
)

// NATSPublisher publishes CloudEvents on NATS subjects named after the topic.
type NATSPublisher struct {
	conn   *nats.Conn
	logger *zap.Logger
}

// NewNATSPublisher connects to url.
func NewNATSPublisher(url string, logger *zap.Logger) (*NATSPublisher, error) {
	nc, err := nats.Connect(url, nats.Name("service-adoption"))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to nats: %w", err)
	}
	return &NATSPublisher{conn: nc, logger: logger}, nil
}

// PublishEvent sends ce on subject topic.
func (p *NATSPublisher) PublishEvent(_ context.Context, topic string, ce kafka.CloudEvent) error {
	data, err := json.Marshal(ce)
	if err != nil {
		return fmt.Errorf("failed to marshal cloud event: %w", err)
	}

	msg := nats.NewMsg(topic)
	msg.Data = data
	msg.Header.Set("ce_type", ce.Type)
	msg.Header.Set("ce_id", ce.ID)
	if err := p.conn.PublishMsg(msg); err != nil {
		return fmt.Errorf("failed to publish to %s: %w", topic, err)
	}

	p.logger.Debug("event published",
		zap.String("subject", topic),
		zap.String("type", ce.Type),
		zap.String("id", ce.ID),
	)
	return nil
}

// Close drains pending messages and closes the connection.
func (p *NATSPublisher) Close() error {
	return p.conn.Drain()
}

// NopPublisher drops every event. Used when no broker is configured.
type NopPublisher struct{}

func (NopPublisher) PublishEvent(context.Context, string, kafka.CloudEvent) error { return nil }
func (NopPublisher) Close() error                                                  { return nil }
