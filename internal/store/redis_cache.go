package store

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/tokenlink/tokenlink/internal/redirect"
)

// RedisCacheRepository decorates a redirect.Repository with Redis caching for
// key lookups, the hot path of every resolution. Writes go straight through
// and invalidate or refresh the cached entry.
type RedisCacheRepository struct {
	store  redirect.Repository
	client *redis.Client
	prefix string
	ttl    time.Duration
}

// NewRedisCacheRepository creates a Redis-cached repository decorator.
func NewRedisCacheRepository(store redirect.Repository, client *redis.Client, ttl time.Duration) *RedisCacheRepository {
	return &RedisCacheRepository{
		store:  store,
		client: client,
		prefix: "redirect:",
		ttl:    ttl,
	}
}

func (r *RedisCacheRepository) Insert(ctx context.Context, rec *redirect.Record) error {
	if err := r.store.Insert(ctx, rec); err != nil {
		return err
	}

	r.cache(ctx, rec)

	return nil
}

func (r *RedisCacheRepository) GetByKey(ctx context.Context, key string) (*redirect.Record, error) {
	// Cache misses and cache errors both fall through to the store; a flaky
	// cache must not take down resolution.
	payload, err := r.client.Get(ctx, r.prefix+key).Bytes()
	if err == nil {
		var rec redirect.Record
		if unmarshalErr := json.Unmarshal(payload, &rec); unmarshalErr == nil {
			return &rec, nil
		}
	}

	rec, err := r.store.GetByKey(ctx, key)
	if err != nil {
		return nil, err
	}

	r.cache(ctx, rec)

	return rec, nil
}

func (r *RedisCacheRepository) List(ctx context.Context) ([]*redirect.Record, error) {
	return r.store.List(ctx)
}

func (r *RedisCacheRepository) UpdateDestination(ctx context.Context, key, destination string) (*redirect.Record, error) {
	rec, err := r.store.UpdateDestination(ctx, key, destination)
	if err != nil {
		return nil, err
	}

	r.cache(ctx, rec)

	return rec, nil
}

func (r *RedisCacheRepository) DeleteByKey(ctx context.Context, key string) error {
	if err := r.store.DeleteByKey(ctx, key); err != nil {
		return err
	}

	r.client.Del(ctx, r.prefix+key)

	return nil
}

func (r *RedisCacheRepository) cache(ctx context.Context, rec *redirect.Record) {
	payload, err := json.Marshal(rec)
	if err != nil {
		return
	}

	r.client.Set(ctx, r.prefix+rec.Key, payload, r.ttl)
}
