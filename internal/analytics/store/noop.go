package store

import (
	"context"

	"github.com/tokenlink/tokenlink/internal/analytics"
	"go.uber.org/zap"
)

// Noop is a no-op implementation of analytics.Store that logs events.
type Noop struct {
	logger *zap.Logger
}

// NewNoop creates a new no-op analytics store.
func NewNoop(logger *zap.Logger) *Noop {
	return &Noop{logger: logger}
}

func (n *Noop) SaveRedirectCreated(_ context.Context, event *analytics.RedirectCreatedEvent) error {
	n.logger.Info("redirect created event received",
		zap.String("key", event.Key),
		zap.String("destination", event.Destination),
		zap.Time("createdAt", event.CreatedAt),
	)

	return nil
}

func (n *Noop) SaveRedirectResolved(_ context.Context, event *analytics.RedirectResolvedEvent) error {
	n.logger.Info("redirect resolved event received",
		zap.String("key", event.Key),
		zap.Time("resolvedAt", event.ResolvedAt),
		zap.String("referrer", event.Referrer),
	)

	return nil
}

func (n *Noop) SaveRedirectDenied(_ context.Context, event *analytics.RedirectDeniedEvent) error {
	n.logger.Info("redirect denied event received",
		zap.String("key", event.Key),
		zap.String("reason", event.Reason),
		zap.Time("deniedAt", event.DeniedAt),
	)

	return nil
}
