package session

import (
	"context"
	"sync"
	"testing"

	"passport/internal/domain/entity"
	"passport/internal/domain/repository"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestSession(userName string) *entity.Session {
	return entity.NewSession(&entity.Profile{
		UserName: userName,
		NickName: userName,
		Gender:   entity.GenderUndisclosed,
	})
}

func TestMemoryStore_GetAbsentKey(t *testing.T) {
	store := NewMemoryStore()

	_, err := store.Get(context.Background(), "nobody")
	assert.True(t, errors.Is(err, repository.ErrSessionNotFound))
}

func TestMemoryStore_SetThenGet(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	require.NoError(t, store.Set(ctx, "k1", newTestSession("alice")))

	got, err := store.Get(ctx, "k1")
	require.NoError(t, err)
	assert.Equal(t, "alice", got.Profile.UserName)
}

func TestMemoryStore_GetReturnsCopy(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	require.NoError(t, store.Set(ctx, "k1", newTestSession("alice")))

	got, err := store.Get(ctx, "k1")
	require.NoError(t, err)
	got.Profile.NickName = "tampered"

	again, err := store.Get(ctx, "k1")
	require.NoError(t, err)
	assert.Equal(t, "alice", again.Profile.NickName)
}

func TestMemoryStore_ClearIsIdempotent(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	require.NoError(t, store.Set(ctx, "k1", newTestSession("alice")))
	require.NoError(t, store.Clear(ctx, "k1"))
	require.NoError(t, store.Clear(ctx, "k1"))

	_, err := store.Get(ctx, "k1")
	assert.True(t, errors.Is(err, repository.ErrSessionNotFound))
}

func TestMemoryStore_MutateAbsentKey(t *testing.T) {
	store := NewMemoryStore()

	err := store.Mutate(context.Background(), "nobody", func(*entity.Session) {})
	assert.True(t, errors.Is(err, repository.ErrSessionNotFound))
}

func TestMemoryStore_MutateUpdatesInPlace(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	require.NoError(t, store.Set(ctx, "k1", newTestSession("alice")))
	require.NoError(t, store.Mutate(ctx, "k1", func(s *entity.Session) {
		s.Profile.City = "Beijing"
	}))

	got, err := store.Get(ctx, "k1")
	require.NoError(t, err)
	assert.Equal(t, "Beijing", got.Profile.City)
}

func TestMemoryStore_ConcurrentMutationsSameKey(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	require.NoError(t, store.Set(ctx, "k1", newTestSession("alice")))

	const writers = 50
	var wg sync.WaitGroup
	wg.Add(writers)
	for range writers {
		go func() {
			defer wg.Done()
			_ = store.Mutate(ctx, "k1", func(s *entity.Session) {
				s.Profile.Gender++
			})
		}()
	}
	wg.Wait()

	got, err := store.Get(ctx, "k1")
	require.NoError(t, err)
	// No lost updates: every increment lands.
	assert.Equal(t, entity.GenderUndisclosed+writers, got.Profile.Gender)
}

func TestMemoryStore_IndependentKeysDoNotInterfere(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	require.NoError(t, store.Set(ctx, "k1", newTestSession("alice")))
	require.NoError(t, store.Set(ctx, "k2", newTestSession("bob")))
	require.NoError(t, store.Clear(ctx, "k1"))

	got, err := store.Get(ctx, "k2")
	require.NoError(t, err)
	assert.Equal(t, "bob", got.Profile.UserName)
}
