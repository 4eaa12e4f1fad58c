package store_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tokenlink/tokenlink/internal/redirect"
	"github.com/tokenlink/tokenlink/internal/store"
)

func TestMemoryStore_Insert(t *testing.T) {
	t.Run("stores a record and stamps timestamps", func(t *testing.T) {
		memStore := store.NewMemoryStore()

		rec := &redirect.Record{Key: "k1", Destination: "https://example.com", Token: "t1"}
		err := memStore.Insert(context.Background(), rec)

		require.NoError(t, err)
		assert.False(t, rec.CreatedAt.IsZero())
		assert.False(t, rec.UpdatedAt.IsZero())
	})

	t.Run("rejects a duplicate key", func(t *testing.T) {
		memStore := store.NewMemoryStore()

		require.NoError(t, memStore.Insert(context.Background(), &redirect.Record{Key: "k1", Destination: "https://a.com", Token: "t1"}))

		err := memStore.Insert(context.Background(), &redirect.Record{Key: "k1", Destination: "https://b.com", Token: "t2"})

		assert.ErrorIs(t, err, redirect.ErrDuplicateKey)
	})
}

func TestMemoryStore_GetByKey(t *testing.T) {
	t.Run("returns the stored record", func(t *testing.T) {
		memStore := store.NewMemoryStore()
		require.NoError(t, memStore.Insert(context.Background(), &redirect.Record{Key: "k1", Destination: "https://example.com", Token: "t1"}))

		rec, err := memStore.GetByKey(context.Background(), "k1")

		require.NoError(t, err)
		assert.Equal(t, "https://example.com", rec.Destination)
		assert.Equal(t, "t1", rec.Token)
	})

	t.Run("returns not found for unknown keys", func(t *testing.T) {
		memStore := store.NewMemoryStore()

		_, err := memStore.GetByKey(context.Background(), "missing")

		assert.ErrorIs(t, err, redirect.ErrNotFound)
	})

	t.Run("returns a copy that does not alias the stored record", func(t *testing.T) {
		memStore := store.NewMemoryStore()
		require.NoError(t, memStore.Insert(context.Background(), &redirect.Record{Key: "k1", Destination: "https://example.com", Token: "t1"}))

		rec, err := memStore.GetByKey(context.Background(), "k1")
		require.NoError(t, err)

		rec.Destination = "https://mutated.com"

		again, err := memStore.GetByKey(context.Background(), "k1")
		require.NoError(t, err)
		assert.Equal(t, "https://example.com", again.Destination)
	})
}

func TestMemoryStore_List(t *testing.T) {
	t.Run("returns all records newest first", func(t *testing.T) {
		memStore := store.NewMemoryStore()

		require.NoError(t, memStore.Insert(context.Background(), &redirect.Record{Key: "old", Destination: "https://a.com", Token: "t1"}))
		time.Sleep(2 * time.Millisecond)
		require.NoError(t, memStore.Insert(context.Background(), &redirect.Record{Key: "new", Destination: "https://b.com", Token: "t2"}))

		records, err := memStore.List(context.Background())

		require.NoError(t, err)
		require.Len(t, records, 2)
		assert.Equal(t, "new", records[0].Key)
		assert.Equal(t, "old", records[1].Key)
	})

	t.Run("returns an empty slice for an empty store", func(t *testing.T) {
		memStore := store.NewMemoryStore()

		records, err := memStore.List(context.Background())

		require.NoError(t, err)
		assert.Empty(t, records)
	})
}

func TestMemoryStore_UpdateDestination(t *testing.T) {
	t.Run("replaces the destination and keeps the token", func(t *testing.T) {
		memStore := store.NewMemoryStore()
		require.NoError(t, memStore.Insert(context.Background(), &redirect.Record{Key: "k1", Destination: "https://a.com", Token: "t1"}))

		rec, err := memStore.UpdateDestination(context.Background(), "k1", "https://b.com")

		require.NoError(t, err)
		assert.Equal(t, "https://b.com", rec.Destination)
		assert.Equal(t, "t1", rec.Token)
	})

	t.Run("returns not found for unknown keys", func(t *testing.T) {
		memStore := store.NewMemoryStore()

		_, err := memStore.UpdateDestination(context.Background(), "missing", "https://b.com")

		assert.ErrorIs(t, err, redirect.ErrNotFound)
	})
}

func TestMemoryStore_DeleteByKey(t *testing.T) {
	t.Run("removes the record", func(t *testing.T) {
		memStore := store.NewMemoryStore()
		require.NoError(t, memStore.Insert(context.Background(), &redirect.Record{Key: "k1", Destination: "https://a.com", Token: "t1"}))

		require.NoError(t, memStore.DeleteByKey(context.Background(), "k1"))

		_, err := memStore.GetByKey(context.Background(), "k1")
		assert.ErrorIs(t, err, redirect.ErrNotFound)
	})

	t.Run("returns not found for unknown keys", func(t *testing.T) {
		memStore := store.NewMemoryStore()

		err := memStore.DeleteByKey(context.Background(), "missing")

		assert.ErrorIs(t, err, redirect.ErrNotFound)
	})

	t.Run("allows reinserting the key afterwards", func(t *testing.T) {
		memStore := store.NewMemoryStore()
		require.NoError(t, memStore.Insert(context.Background(), &redirect.Record{Key: "k1", Destination: "https://a.com", Token: "t1"}))
		require.NoError(t, memStore.DeleteByKey(context.Background(), "k1"))

		err := memStore.Insert(context.Background(), &redirect.Record{Key: "k1", Destination: "https://b.com", Token: "t2"})

		assert.NoError(t, err)
	})
}
