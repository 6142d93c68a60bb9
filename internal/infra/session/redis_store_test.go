package session

import (
	"context"
	"testing"
	"time"

	"passport/internal/domain/entity"
	"passport/internal/domain/repository"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRedisStoreFixture(t *testing.T) (repository.SessionStore, *redis.Client) {
	t.Helper()

	server := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: server.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	return NewRedisStore(client, time.Hour), client
}

func TestRedisStore_GetAbsentKey(t *testing.T) {
	store, _ := newRedisStoreFixture(t)

	_, err := store.Get(context.Background(), "k1")
	assert.ErrorIs(t, err, repository.ErrSessionNotFound)
}

func TestRedisStore_SetAndGet(t *testing.T) {
	store, _ := newRedisStoreFixture(t)
	ctx := context.Background()

	require.NoError(t, store.Set(ctx, "k1", newTestSession("alice")))

	stored, err := store.Get(ctx, "k1")
	require.NoError(t, err)
	assert.Equal(t, "alice", stored.Profile.UserName)
}

func TestRedisStore_ClearIsIdempotent(t *testing.T) {
	store, _ := newRedisStoreFixture(t)
	ctx := context.Background()

	require.NoError(t, store.Set(ctx, "k1", newTestSession("alice")))
	require.NoError(t, store.Clear(ctx, "k1"))
	require.NoError(t, store.Clear(ctx, "k1"))

	_, err := store.Get(ctx, "k1")
	assert.ErrorIs(t, err, repository.ErrSessionNotFound)
}

func TestRedisStore_MutateAbsentKey(t *testing.T) {
	store, _ := newRedisStoreFixture(t)

	err := store.Mutate(context.Background(), "k1", func(s *entity.Session) {
		s.Profile.City = "Beijing"
	})
	assert.ErrorIs(t, err, repository.ErrSessionNotFound)
}

func TestRedisStore_MutateAppliesInPlace(t *testing.T) {
	store, _ := newRedisStoreFixture(t)
	ctx := context.Background()

	require.NoError(t, store.Set(ctx, "k1", newTestSession("alice")))

	require.NoError(t, store.Mutate(ctx, "k1", func(s *entity.Session) {
		s.Profile.City = "Beijing"
	}))

	stored, err := store.Get(ctx, "k1")
	require.NoError(t, err)
	assert.Equal(t, "Beijing", stored.Profile.City)
}

func TestRedisStore_Mutate_RetriesContestedWrite(t *testing.T) {
	store, client := newRedisStoreFixture(t)
	ctx := context.Background()

	require.NoError(t, store.Set(ctx, "k1", newTestSession("alice")))

	// The first attempt touches the watched key from outside the transaction,
	// so its EXEC aborts and the mutation must be re-applied to the fresh
	// value instead of failing.
	invocations := 0
	err := store.Mutate(ctx, "k1", func(s *entity.Session) {
		invocations++
		if invocations == 1 {
			require.NoError(t, client.Set(ctx,
				keyPrefix+"k1", []byte(`{"profile":{"userName":"alice","nickName":"Ali"}}`), 0).Err())
		}
		s.Profile.City = "Beijing"
	})
	require.NoError(t, err)
	assert.GreaterOrEqual(t, invocations, 2, "aborted transaction must be retried")

	stored, err := store.Get(ctx, "k1")
	require.NoError(t, err)
	assert.Equal(t, "Beijing", stored.Profile.City)
	assert.Equal(t, "Ali", stored.Profile.NickName, "retry reads the concurrent write")
}

func TestRedisStore_Mutate_ClearedDuringMutate(t *testing.T) {
	store, client := newRedisStoreFixture(t)
	ctx := context.Background()

	require.NoError(t, store.Set(ctx, "k1", newTestSession("alice")))

	// A concurrent Clear aborts the first attempt; the retry finds no session
	// and reports that instead of a generic failure.
	invocations := 0
	err := store.Mutate(ctx, "k1", func(s *entity.Session) {
		invocations++
		if invocations == 1 {
			require.NoError(t, client.Del(ctx, keyPrefix+"k1").Err())
		}
	})
	assert.ErrorIs(t, err, repository.ErrSessionNotFound)
}
