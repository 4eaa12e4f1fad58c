package messaging

import (
	"context"
	"errors"
	"fmt"

	"github.com/ThreeDotsLabs/watermill/message"
	"go.uber.org/zap"
)

// Runnable is anything with a start/stop lifecycle managed by the group.
type Runnable interface {
	Start(ctx context.Context) error
	Shutdown() error
}

// ConsumerGroup owns a set of consumers and the subscriber they share.
type ConsumerGroup struct {
	consumers  []Runnable
	subscriber message.Subscriber
	logger     *zap.Logger
}

// NewConsumerGroup creates an empty group around a shared subscriber.
func NewConsumerGroup(subscriber message.Subscriber, logger *zap.Logger) *ConsumerGroup {
	return &ConsumerGroup{
		subscriber: subscriber,
		logger:     logger,
	}
}

// Add registers a consumer to the group.
func (g *ConsumerGroup) Add(consumer Runnable) {
	g.consumers = append(g.consumers, consumer)
}

// Start starts every consumer; on failure, the ones already running are
// stopped again before the error is returned.
func (g *ConsumerGroup) Start(ctx context.Context) error {
	for i, consumer := range g.consumers {
		if err := consumer.Start(ctx); err != nil {
			g.stop(g.consumers[:i])

			return fmt.Errorf("start consumer %d: %w", i, err)
		}
	}

	g.logger.Info("consumer group started", zap.Int("consumers", len(g.consumers)))

	return nil
}

func (g *ConsumerGroup) stop(consumers []Runnable) {
	for i := len(consumers) - 1; i >= 0; i-- {
		if err := consumers[i].Shutdown(); err != nil {
			g.logger.Error("consumer shutdown failed", zap.Error(err))
		}
	}
}

// Shutdown stops every consumer, then closes the shared subscriber.
func (g *ConsumerGroup) Shutdown() error {
	g.logger.Info("stopping consumer group")

	errs := make([]error, 0, len(g.consumers)+1)

	for _, consumer := range g.consumers {
		errs = append(errs, consumer.Shutdown())
	}

	errs = append(errs, g.subscriber.Close())

	return errors.Join(errs...)
}
