package events

import (
	"context"

	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"

	"github.com/Kilat-Pet-Delivery/service-adoption/internal/application"
	userDomain "github.com/Kilat-Pet-Delivery/service-adoption/internal/domain/user"
	"github.com/Kilat-Pet-Delivery/service-adoption/pkg/domain"
	"github.com/Kilat-Pet-Delivery/service-adoption/pkg/events"
	"github.com/Kilat-Pet-Delivery/service-adoption/pkg/kafka"
)

// UserUpserter is the slice of the user service the consumer needs.
type UserUpserter interface {
	UpsertUser(ctx context.Context, ident userDomain.Identity) (*application.UserDTO, error)
}

// IdentityEventConsumer mirrors identity-provider profile changes into the users table.
type IdentityEventConsumer struct {
	consumer *kafka.Consumer
	service  UserUpserter
	logger   *zap.Logger
}

// NewIdentityEventConsumer creates a new IdentityEventConsumer.
func NewIdentityEventConsumer(
	brokers []string,
	groupID string,
	service UserUpserter,
	logger *zap.Logger,
) *IdentityEventConsumer {
	consumer := kafka.NewConsumer(brokers, groupID, events.TopicIdentityEvents, logger)
	return &IdentityEventConsumer{
		consumer: consumer,
		service:  service,
		logger:   logger,
	}
}

// Start begins consuming identity events. It blocks until the context is
// cancelled, or returns an error once an event keeps failing after the
// consumer's retries; that event stays uncommitted and is redelivered to the
// group on the next start.
func (c *IdentityEventConsumer) Start(ctx context.Context) error {
	return c.consumer.Consume(ctx, c.handleMessage)
}

// Close closes the underlying Kafka consumer.
func (c *IdentityEventConsumer) Close() error {
	return c.consumer.Close()
}

func (c *IdentityEventConsumer) handleMessage(ctx context.Context, msg kafkago.Message) error {
	return c.handle(ctx, msg.Value)
}

func (c *IdentityEventConsumer) handle(ctx context.Context, value []byte) error {
	cloudEvent, err := kafka.ParseCloudEvent(value)
	if err != nil {
		c.logger.Error("failed to parse cloud event from identity topic",
			zap.Error(err),
			zap.String("raw", string(value)),
		)
		return nil // malformed messages are skipped
	}

	switch cloudEvent.Type {
	case events.IdentityUserCreated, events.IdentityUserUpdated:
		return c.handleUserChanged(ctx, cloudEvent)
	default:
		c.logger.Debug("ignoring unhandled identity event type",
			zap.String("type", cloudEvent.Type),
		)
		return nil
	}
}

func (c *IdentityEventConsumer) handleUserChanged(ctx context.Context, cloudEvent kafka.CloudEvent) error {
	var evt events.IdentityUserEvent
	if err := cloudEvent.ParseData(&evt); err != nil {
		c.logger.Error("failed to parse IdentityUserEvent data", zap.Error(err))
		return nil
	}

	_, err := c.service.UpsertUser(ctx, userDomain.Identity{
		ExternalID:  evt.UserID,
		Email:       evt.Email,
		DisplayName: evt.Name,
		IsAdmin:     evt.IsAdmin,
	})
	if err != nil {
		if domain.IsValidation(err) || domain.IsConflict(err) {
			c.logger.Warn("rejected identity user event",
				zap.String("user_id", evt.UserID),
				zap.Error(err),
			)
			return nil
		}
		c.logger.Error("failed to sync user from identity event",
			zap.String("user_id", evt.UserID),
			zap.Error(err),
		)
		return err
	}

	c.logger.Info("user synced from identity event",
		zap.String("user_id", evt.UserID),
		zap.String("type", cloudEvent.Type),
	)
	return nil
}
