package redirect

import (
	"context"
	"errors"
	"time"
)

var (
	// ErrNotFound is returned when no record exists for a key.
	ErrNotFound = errors.New("redirect not found")

	// ErrDuplicateKey is returned when inserting a record whose key already exists.
	ErrDuplicateKey = errors.New("duplicate key")
)

// Record is a stored redirect: a short key mapped to a destination URL,
// together with the signed token issued for that key at creation time.
// The token is immutable; only Destination may change after creation.
type Record struct {
	Key         string
	Destination string
	Token       string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Repository defines the interface for redirect record storage.
type Repository interface {
	// Insert stores a new record. Returns ErrDuplicateKey if the key is taken.
	Insert(ctx context.Context, rec *Record) error

	// GetByKey returns the record for a key, or ErrNotFound.
	GetByKey(ctx context.Context, key string) (*Record, error)

	// List returns all records, newest first.
	List(ctx context.Context) ([]*Record, error)

	// UpdateDestination replaces the destination of an existing record and
	// returns the updated record, or ErrNotFound.
	UpdateDestination(ctx context.Context, key, destination string) (*Record, error)

	// DeleteByKey removes the record for a key, or returns ErrNotFound.
	DeleteByKey(ctx context.Context, key string) error
}
