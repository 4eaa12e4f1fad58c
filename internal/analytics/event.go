package analytics

import "time"

// Topics for redirect lifecycle events.
const (
	TopicRedirectCreated  = "redirect.created"
	TopicRedirectResolved = "redirect.resolved"
	TopicRedirectDenied   = "redirect.denied"
)

// RedirectCreatedEvent is emitted when a new redirect link is minted.
type RedirectCreatedEvent struct {
	Key         string    `json:"key"`
	Destination string    `json:"destination"`
	CreatedAt   time.Time `json:"createdAt"`
	ClientIP    string    `json:"clientIp"`
	UserAgent   string    `json:"userAgent"`
}

// RedirectResolvedEvent is emitted when a visitor successfully resolves a link.
type RedirectResolvedEvent struct {
	Key         string    `json:"key"`
	Destination string    `json:"destination"`
	Email       string    `json:"email,omitempty"`
	ResolvedAt  time.Time `json:"resolvedAt"`
	ClientIP    string    `json:"clientIp"`
	UserAgent   string    `json:"userAgent"`
	Referrer    string    `json:"referrer,omitempty"`
}

// RedirectDeniedEvent is emitted when a resolution attempt is refused.
type RedirectDeniedEvent struct {
	Key       string    `json:"key"`
	Reason    string    `json:"reason"`
	DeniedAt  time.Time `json:"deniedAt"`
	ClientIP  string    `json:"clientIp"`
	UserAgent string    `json:"userAgent"`
}
