package analytics

import "context"

// Store defines the interface for persisting analytics events.
type Store interface {
	SaveRedirectCreated(ctx context.Context, event *RedirectCreatedEvent) error
	SaveRedirectResolved(ctx context.Context, event *RedirectResolvedEvent) error
	SaveRedirectDenied(ctx context.Context, event *RedirectDeniedEvent) error
}
