package redirect

import (
	"context"
	"errors"
	"regexp"

	"go.uber.org/zap"
)

// ErrInvalidDestination is returned when a destination is not an absolute
// http(s) URL.
var ErrInvalidDestination = errors.New("invalid destination URL")

var destinationPattern = regexp.MustCompile(`^https?://`)

// maxInsertAttempts caps key-collision retries before the conflict surfaces
// to the caller.
const maxInsertAttempts = 3

// ValidDestination reports whether destination is an absolute http(s) URL.
func ValidDestination(destination string) bool {
	return destinationPattern.MatchString(destination)
}

// Creator mints new redirect records: key generation, token issuance, insert.
type Creator struct {
	generateKey KeyGenerator
	codec       *TokenCodec
	store       Repository
	logger      *zap.Logger
}

// NewCreator creates a Creator.
func NewCreator(generateKey KeyGenerator, codec *TokenCodec, store Repository, logger *zap.Logger) *Creator {
	return &Creator{
		generateKey: generateKey,
		codec:       codec,
		store:       store,
		logger:      logger,
	}
}

// Create validates the destination, generates a fresh key, issues its token,
// and persists the record. Key collisions are retried with a fresh key up to
// maxInsertAttempts before ErrDuplicateKey is surfaced.
func (c *Creator) Create(ctx context.Context, destination string) (*Record, error) {
	if !ValidDestination(destination) {
		return nil, ErrInvalidDestination
	}

	var lastErr error

	for attempt := 0; attempt < maxInsertAttempts; attempt++ {
		key, err := c.generateKey()
		if err != nil {
			return nil, err
		}

		token, err := c.codec.Issue(key)
		if err != nil {
			return nil, err
		}

		rec := &Record{
			Key:         key,
			Destination: destination,
			Token:       token,
		}

		err = c.store.Insert(ctx, rec)
		if err == nil {
			return rec, nil
		}

		if !errors.Is(err, ErrDuplicateKey) {
			return nil, err
		}

		c.logger.Warn("key collision on insert, retrying",
			zap.String("key", key),
			zap.Int("attempt", attempt+1),
		)
		lastErr = err
	}

	return nil, lastErr
}
