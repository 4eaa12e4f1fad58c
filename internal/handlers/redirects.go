package handlers

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/tokenlink/tokenlink/internal/analytics"
	"github.com/tokenlink/tokenlink/internal/messaging"
	"github.com/tokenlink/tokenlink/internal/redirect"
	"go.uber.org/zap"
)

// RedirectHandler handles redirect creation, resolution, and administration.
type RedirectHandler struct {
	creator         *redirect.Creator
	resolver        *redirect.Resolver
	store           redirect.Repository
	baseURL         string
	publishCreated  messaging.Publish[analytics.RedirectCreatedEvent]
	publishResolved messaging.Publish[analytics.RedirectResolvedEvent]
	publishDenied   messaging.Publish[analytics.RedirectDeniedEvent]
	logger          *zap.Logger
}

// NewRedirectHandler creates a new redirect handler.
func NewRedirectHandler(
	creator *redirect.Creator,
	resolver *redirect.Resolver,
	store redirect.Repository,
	baseURL string,
	publishCreated messaging.Publish[analytics.RedirectCreatedEvent],
	publishResolved messaging.Publish[analytics.RedirectResolvedEvent],
	publishDenied messaging.Publish[analytics.RedirectDeniedEvent],
	logger *zap.Logger,
) *RedirectHandler {
	return &RedirectHandler{
		creator:         creator,
		resolver:        resolver,
		store:           store,
		baseURL:         baseURL,
		publishCreated:  publishCreated,
		publishResolved: publishResolved,
		publishDenied:   publishDenied,
		logger:          logger,
	}
}

// AddRedirect mints a new key/token pair for the given destination.
func (h *RedirectHandler) AddRedirect(ctx context.Context, req *AddRedirectRequest) (*AddRedirectResponse, error) {
	rec, err := h.creator.Create(ctx, req.Body.Destination)
	if err != nil {
		switch {
		case errors.Is(err, redirect.ErrInvalidDestination):
			return nil, huma.Error400BadRequest("invalid destination URL")
		case errors.Is(err, redirect.ErrDuplicateKey):
			return nil, huma.Error409Conflict("key collision, please retry")
		default:
			h.logger.Error("failed to save redirect", zap.Error(err))

			return nil, huma.Error500InternalServerError("failed to save redirect")
		}
	}

	meta := RequestMetaFromContext(ctx)
	event := &analytics.RedirectCreatedEvent{
		Key:         rec.Key,
		Destination: rec.Destination,
		CreatedAt:   rec.CreatedAt,
		ClientIP:    meta.ClientIP,
		UserAgent:   meta.UserAgent,
	}

	if err := h.publishCreated(event); err != nil {
		h.logger.Error("failed to publish created event",
			zap.String("key", rec.Key),
			zap.Error(err),
		)
	}

	resp := &AddRedirectResponse{}
	resp.Body.Message = "Redirect added successfully!"
	resp.Body.RedirectURL = fmt.Sprintf("%s/%s?token=%s", h.baseURL, rec.Key, rec.Token)
	resp.Body.PathRedirectURL = fmt.Sprintf("%s/%s/%s", h.baseURL, rec.Key, rec.Token)

	return resp, nil
}

// Resolve handles the path form GET /{key}/{token}.
func (h *RedirectHandler) Resolve(ctx context.Context, req *ResolveRequest) (*ResolveResponse, error) {
	return h.resolve(ctx, req.Key, req.Token, req.Email, req.UserAgent)
}

// ResolveQuery handles the query form GET /{key}?token=...
func (h *RedirectHandler) ResolveQuery(ctx context.Context, req *ResolveQueryRequest) (*ResolveResponse, error) {
	return h.resolve(ctx, req.Key, req.Token, req.Email, req.UserAgent)
}

func (h *RedirectHandler) resolve(ctx context.Context, key, token, email, userAgent string) (*ResolveResponse, error) {
	destination, err := h.resolver.Resolve(ctx, key, token, userAgent, email)
	if err != nil {
		return nil, h.denied(ctx, key, userAgent, err)
	}

	meta := RequestMetaFromContext(ctx)
	event := &analytics.RedirectResolvedEvent{
		Key:         key,
		Destination: destination,
		Email:       email,
		ResolvedAt:  time.Now(),
		ClientIP:    meta.ClientIP,
		UserAgent:   meta.UserAgent,
		Referrer:    meta.Referrer,
	}

	if err := h.publishResolved(event); err != nil {
		h.logger.Error("failed to publish resolved event",
			zap.String("key", key),
			zap.Error(err),
		)
	}

	resp := &ResolveResponse{
		Status: http.StatusFound,
	}
	resp.Headers.Location = destination

	return resp, nil
}

// denied maps a resolution failure to its HTTP error and publishes a denial
// event for the tagged (policy) failures. Store failures stay 500s and are
// not analytics events.
func (h *RedirectHandler) denied(ctx context.Context, key, userAgent string, err error) error {
	var httpErr error

	switch {
	case errors.Is(err, redirect.ErrAccessDenied):
		httpErr = huma.Error403Forbidden("access denied")
	case errors.Is(err, redirect.ErrInvalidParameter):
		httpErr = huma.Error400BadRequest("invalid email")
	case errors.Is(err, redirect.ErrInvalidToken):
		httpErr = huma.Error403Forbidden("invalid or expired token")
	case errors.Is(err, redirect.ErrNotFound):
		httpErr = huma.Error404NotFound("redirect not found")
	case errors.Is(err, redirect.ErrForbidden):
		httpErr = huma.Error403Forbidden("invalid token")
	default:
		h.logger.Error("failed to resolve redirect",
			zap.String("key", key),
			zap.Error(err),
		)

		return huma.Error500InternalServerError("failed to resolve redirect")
	}

	meta := RequestMetaFromContext(ctx)
	event := &analytics.RedirectDeniedEvent{
		Key:       key,
		Reason:    err.Error(),
		DeniedAt:  time.Now(),
		ClientIP:  meta.ClientIP,
		UserAgent: userAgent,
	}

	if publishErr := h.publishDenied(event); publishErr != nil {
		h.logger.Error("failed to publish denied event",
			zap.String("key", key),
			zap.Error(publishErr),
		)
	}

	return httpErr
}

// ListRedirects returns all stored redirects for the dashboard.
func (h *RedirectHandler) ListRedirects(ctx context.Context, _ *struct{}) (*ListRedirectsResponse, error) {
	records, err := h.store.List(ctx)
	if err != nil {
		h.logger.Error("failed to fetch redirects", zap.Error(err))

		return nil, huma.Error500InternalServerError("failed to fetch redirects")
	}

	resp := &ListRedirectsResponse{
		Body: make([]RecordResponse, 0, len(records)),
	}

	for _, rec := range records {
		resp.Body = append(resp.Body, RecordResponse{
			Key:         rec.Key,
			Destination: rec.Destination,
			Token:       rec.Token,
			CreatedAt:   rec.CreatedAt,
			UpdatedAt:   rec.UpdatedAt,
		})
	}

	return resp, nil
}

// UpdateRedirect replaces the destination of an existing redirect. The stored
// token is untouched: it commits only to the key, so issued links stay valid.
func (h *RedirectHandler) UpdateRedirect(ctx context.Context, req *UpdateRedirectRequest) (*MessageResponse, error) {
	if !redirect.ValidDestination(req.Body.Destination) {
		return nil, huma.Error400BadRequest("invalid destination URL")
	}

	if _, err := h.store.UpdateDestination(ctx, req.Key, req.Body.Destination); err != nil {
		if errors.Is(err, redirect.ErrNotFound) {
			return nil, huma.Error404NotFound("redirect not found")
		}

		h.logger.Error("failed to update redirect",
			zap.String("key", req.Key),
			zap.Error(err),
		)

		return nil, huma.Error500InternalServerError("failed to update redirect")
	}

	resp := &MessageResponse{}
	resp.Body.Message = "Redirect updated."

	return resp, nil
}

// DeleteRedirect removes a redirect; its key/token pair becomes permanently
// unusable even though the token itself still verifies.
func (h *RedirectHandler) DeleteRedirect(ctx context.Context, req *DeleteRedirectRequest) (*MessageResponse, error) {
	if err := h.store.DeleteByKey(ctx, req.Key); err != nil {
		if errors.Is(err, redirect.ErrNotFound) {
			return nil, huma.Error404NotFound("redirect not found")
		}

		h.logger.Error("failed to delete redirect",
			zap.String("key", req.Key),
			zap.Error(err),
		)

		return nil, huma.Error500InternalServerError("failed to delete redirect")
	}

	resp := &MessageResponse{}
	resp.Body.Message = "Redirect deleted."

	return resp, nil
}
