package redirect

import (
	"context"
	"crypto/subtle"
	"errors"
	"strings"

	"go.uber.org/zap"
)

var (
	// ErrAccessDenied is returned when the request comes from an automated client.
	ErrAccessDenied = errors.New("access denied")

	// ErrInvalidParameter is returned when a supplied email parameter is malformed.
	ErrInvalidParameter = errors.New("invalid email")

	// ErrForbidden is returned when a token verifies cryptographically but does
	// not match the token currently stored for the key. This is what makes
	// deleting and recreating a key invalidate every previously issued link.
	ErrForbidden = errors.New("token does not match stored credential")
)

// Resolver turns a (key, token, request metadata) triple into a destination
// URL or a tagged denial.
type Resolver struct {
	codec  *TokenCodec
	store  Repository
	logger *zap.Logger
}

// NewResolver creates a resolver backed by the given codec and store.
func NewResolver(codec *TokenCodec, store Repository, logger *zap.Logger) *Resolver {
	return &Resolver{
		codec:  codec,
		store:  store,
		logger: logger,
	}
}

// Resolve decides whether the request may be redirected and computes the
// final destination. Checks run in a fixed order and short-circuit on the
// first failure:
//
//  1. automated clients are denied before any token work
//  2. a present email parameter must be well-formed
//  3. the token must verify and assert the requested key
//  4. a record must exist for the key
//  5. the token must byte-match the stored credential
//
// A supplied email is appended to the destination as a path segment.
func (r *Resolver) Resolve(ctx context.Context, key, token, userAgent, email string) (string, error) {
	if IsAutomatedClient(userAgent) {
		r.logger.Debug("denied automated client",
			zap.String("key", key),
			zap.String("userAgent", userAgent),
		)

		return "", ErrAccessDenied
	}

	if email != "" && !IsValidEmail(email) {
		return "", ErrInvalidParameter
	}

	claimedKey, err := r.codec.Verify(token)
	if err != nil {
		return "", ErrInvalidToken
	}

	// A valid token for a different key is indistinguishable from a bad token.
	if claimedKey != key {
		return "", ErrInvalidToken
	}

	rec, err := r.store.GetByKey(ctx, key)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return "", ErrNotFound
		}

		return "", err
	}

	if subtle.ConstantTimeCompare([]byte(rec.Token), []byte(token)) != 1 {
		r.logger.Warn("token cross-check failed",
			zap.String("key", key),
		)

		return "", ErrForbidden
	}

	destination := rec.Destination
	if email != "" {
		if strings.HasSuffix(destination, "/") {
			destination += email
		} else {
			destination += "/" + email
		}
	}

	return destination, nil
}
