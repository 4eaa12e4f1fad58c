package store_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/tokenlink/tokenlink/internal/analytics"
	"github.com/tokenlink/tokenlink/internal/analytics/store"
	"go.uber.org/zap"
)

func TestNoop(t *testing.T) {
	noop := store.NewNoop(zap.NewNop())
	ctx := context.Background()

	t.Run("saves created events", func(t *testing.T) {
		err := noop.SaveRedirectCreated(ctx, &analytics.RedirectCreatedEvent{
			Key:         "7b06f52e19c8d3a4",
			Destination: "https://example.com",
			CreatedAt:   time.Now(),
		})

		require.NoError(t, err)
	})

	t.Run("saves resolved events", func(t *testing.T) {
		err := noop.SaveRedirectResolved(ctx, &analytics.RedirectResolvedEvent{
			Key:        "7b06f52e19c8d3a4",
			ResolvedAt: time.Now(),
		})

		require.NoError(t, err)
	})

	t.Run("saves denied events", func(t *testing.T) {
		err := noop.SaveRedirectDenied(ctx, &analytics.RedirectDeniedEvent{
			Key:      "7b06f52e19c8d3a4",
			Reason:   "invalid token",
			DeniedAt: time.Now(),
		})

		require.NoError(t, err)
	})
}
