package redirect_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tokenlink/tokenlink/internal/redirect"
	"github.com/tokenlink/tokenlink/internal/store"
	"go.uber.org/zap"
)

var errStore = errors.New("store error")

// collidingStore fails the first n inserts with ErrDuplicateKey, then delegates.
type collidingStore struct {
	redirect.Repository

	failures int
	inserts  int
}

func (s *collidingStore) Insert(ctx context.Context, rec *redirect.Record) error {
	s.inserts++
	if s.inserts <= s.failures {
		return redirect.ErrDuplicateKey
	}

	return s.Repository.Insert(ctx, rec)
}

func newCreator(t *testing.T, repo redirect.Repository) (*redirect.Creator, *redirect.TokenCodec) {
	t.Helper()

	codec, err := redirect.NewTokenCodec(testSecret, 0)
	require.NoError(t, err)

	return redirect.NewCreator(redirect.NewHexKeyGenerator(), codec, repo, zap.NewNop()), codec
}

func TestCreator_Create(t *testing.T) {
	t.Run("mints a record with a verifiable token", func(t *testing.T) {
		memStore := store.NewMemoryStore()
		creator, codec := newCreator(t, memStore)

		rec, err := creator.Create(context.Background(), "https://example.com")

		require.NoError(t, err)
		assert.Len(t, rec.Key, 16)
		assert.Equal(t, "https://example.com", rec.Destination)

		key, err := codec.Verify(rec.Token)
		require.NoError(t, err)
		assert.Equal(t, rec.Key, key)

		stored, err := memStore.GetByKey(context.Background(), rec.Key)
		require.NoError(t, err)
		assert.Equal(t, rec.Token, stored.Token)
	})

	t.Run("rejects non-http destinations", func(t *testing.T) {
		creator, _ := newCreator(t, store.NewMemoryStore())

		for _, destination := range []string{"", "ftp://example.com", "example.com", "javascript:alert(1)"} {
			_, err := creator.Create(context.Background(), destination)

			assert.ErrorIs(t, err, redirect.ErrInvalidDestination, "destination %q", destination)
		}
	})

	t.Run("accepts http and https destinations", func(t *testing.T) {
		creator, _ := newCreator(t, store.NewMemoryStore())

		for _, destination := range []string{"http://example.com", "https://example.com/deep/path?q=1"} {
			_, err := creator.Create(context.Background(), destination)

			assert.NoError(t, err, "destination %q", destination)
		}
	})

	t.Run("retries on key collision", func(t *testing.T) {
		colliding := &collidingStore{Repository: store.NewMemoryStore(), failures: 2}
		creator, _ := newCreator(t, colliding)

		rec, err := creator.Create(context.Background(), "https://example.com")

		require.NoError(t, err)
		assert.NotNil(t, rec)
		assert.Equal(t, 3, colliding.inserts)
	})

	t.Run("surfaces duplicate key after exhausting retries", func(t *testing.T) {
		colliding := &collidingStore{Repository: store.NewMemoryStore(), failures: 100}
		creator, _ := newCreator(t, colliding)

		_, err := creator.Create(context.Background(), "https://example.com")

		assert.ErrorIs(t, err, redirect.ErrDuplicateKey)
		assert.Equal(t, 3, colliding.inserts)
	})

	t.Run("does not retry other store errors", func(t *testing.T) {
		failing := &failingStore{insertErr: errStore}
		creator, _ := newCreator(t, failing)

		_, err := creator.Create(context.Background(), "https://example.com")

		assert.ErrorIs(t, err, errStore)
		assert.Equal(t, 1, failing.inserts)
	})
}

// failingStore fails every insert with a fixed error.
type failingStore struct {
	redirect.Repository

	insertErr error
	inserts   int
}

func (s *failingStore) Insert(_ context.Context, _ *redirect.Record) error {
	s.inserts++

	return s.insertErr
}
