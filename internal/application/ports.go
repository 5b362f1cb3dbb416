package application

import (
	"context"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/Kilat-Pet-Delivery/service-adoption/pkg/domain"
	"github.com/Kilat-Pet-Delivery/service-adoption/pkg/kafka"
)

const eventSource = "service-adoption"

// EventPublisher sends CloudEvents to a broker. *kafka.Producer satisfies it.
type EventPublisher interface {
	PublishEvent(ctx context.Context, topic string, ce kafka.CloudEvent) error
}

// FeedCache stores encoded feed pages by generation. Get reports the generation
// it read; a page rebuilt after a miss is written back under that generation so
// an Invalidate that happened meanwhile keeps it hidden. A miss is ok=false
// with a nil error.
type FeedCache interface {
	Get(ctx context.Context, key string) (page []byte, gen int64, ok bool, err error)
	Set(ctx context.Context, gen int64, key string, page []byte) error
	Invalidate(ctx context.Context) error
}

// MediaStore persists an image and returns its public URL. Failures are UploadErrors.
type MediaStore interface {
	Store(ctx context.Context, data []byte, mimeType string) (string, error)
}

// ParseID parses a positive base-10 id. Anything else is a NotFound for entity.
func ParseID(entity, raw string) (int64, error) {
	id, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
	if err != nil || id <= 0 {
		return 0, domain.NewNotFoundError(entity, raw)
	}
	return id, nil
}

// ParsePage returns raw as a page number, falling back to 1.
func ParsePage(raw string) int {
	page, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || page < 1 {
		return 1
	}
	return page
}

// publishEvent sends an event and only logs failures; writes never roll back
// because of the broker.
func publishEvent(ctx context.Context, publisher EventPublisher, logger *zap.Logger, topic, eventType, subject string, data interface{}) {
	if publisher == nil {
		return
	}

	cloudEvent, err := kafka.NewCloudEvent(eventSource, eventType, data)
	if err != nil {
		logger.Error("failed to create cloud event",
			zap.String("event_type", eventType),
			zap.Error(err),
		)
		return
	}
	cloudEvent.Subject = subject

	if err := publisher.PublishEvent(ctx, topic, cloudEvent); err != nil {
		logger.Error("failed to publish event",
			zap.String("topic", topic),
			zap.String("event_type", eventType),
			zap.Error(err),
		)
	}
}
