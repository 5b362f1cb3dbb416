package kafka

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/cenkalti/backoff/v4"
	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// MessageHandler processes one message. A returned error leaves the offset uncommitted.
type MessageHandler func(ctx context.Context, msg kafkago.Message) error

// RetryPolicy controls how a failing message is retried before Consume gives up.
type RetryPolicy struct {
	MaxRetries      uint64
	InitialInterval time.Duration
	MaxInterval     time.Duration
}

// DefaultRetryPolicy retries a failing message 8 times, backing off from 500ms up to 30s.
func DefaultRetryPolicy() RetryPolicy {
	return RetryPolicy{
		MaxRetries:      8,
		InitialInterval: 500 * time.Millisecond,
		MaxInterval:     30 * time.Second,
	}
}

func (p RetryPolicy) newBackOff() *backoff.ExponentialBackOff {
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = p.InitialInterval
	b.MaxInterval = p.MaxInterval
	b.MaxElapsedTime = 0
	b.Reset()
	return b
}

type messageReader interface {
	FetchMessage(ctx context.Context) (kafkago.Message, error)
	CommitMessages(ctx context.Context, msgs ...kafkago.Message) error
	Close() error
}

// Consumer reads a single topic as part of a consumer group.
type Consumer struct {
	reader messageReader
	retry  RetryPolicy
	logger *zap.Logger
}

// NewConsumer creates a consumer for topic in groupID.
func NewConsumer(brokers []string, groupID, topic string, logger *zap.Logger) *Consumer {
	reader := kafkago.NewReader(kafkago.ReaderConfig{
		Brokers:  brokers,
		GroupID:  groupID,
		Topic:    topic,
		MinBytes: 1,
		MaxBytes: 10e6,
	})
	return newConsumer(reader, DefaultRetryPolicy(), logger)
}

func newConsumer(reader messageReader, retry RetryPolicy, logger *zap.Logger) *Consumer {
	return &Consumer{reader: reader, retry: retry, logger: logger}
}

// Consume fetches messages until ctx is cancelled, committing each one the handler accepts.
// A message whose handler still fails after the retry policy is exhausted stops the loop
// without committing, so the group redelivers it from that offset on the next start.
func (c *Consumer) Consume(ctx context.Context, handler MessageHandler) error {
	fetchBackOff := c.retry.newBackOff()

	for {
		msg, err := c.reader.FetchMessage(ctx)
		if err != nil {
			if errors.Is(err, context.Canceled) || ctx.Err() != nil {
				return context.Canceled
			}
			wait := fetchBackOff.NextBackOff()
			c.logger.Error("failed to fetch message", zap.Error(err), zap.Duration("retry_in", wait))
			if !sleep(ctx, wait) {
				return context.Canceled
			}
			continue
		}
		fetchBackOff.Reset()

		if err := c.handleWithRetry(ctx, handler, msg); err != nil {
			if ctx.Err() != nil {
				return context.Canceled
			}
			return fmt.Errorf("giving up on %s[%d]@%d: %w", msg.Topic, msg.Partition, msg.Offset, err)
		}

		if err := c.reader.CommitMessages(ctx, msg); err != nil {
			c.logger.Error("failed to commit message", zap.Error(err))
		}
	}
}

// Close closes the reader.
func (c *Consumer) Close() error {
	return c.reader.Close()
}

func (c *Consumer) handleWithRetry(ctx context.Context, handler MessageHandler, msg kafkago.Message) error {
	policy := backoff.WithContext(backoff.WithMaxRetries(c.retry.newBackOff(), c.retry.MaxRetries), ctx)
	return backoff.RetryNotify(
		func() error { return handler(ctx, msg) },
		policy,
		func(err error, wait time.Duration) {
			c.logger.Warn("message handler failed, retrying",
				zap.String("topic", msg.Topic),
				zap.Int("partition", msg.Partition),
				zap.Int64("offset", msg.Offset),
				zap.Duration("retry_in", wait),
				zap.Error(err),
			)
		},
	)
}

func sleep(ctx context.Context, d time.Duration) bool {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-t.C:
		return true
	}
}
