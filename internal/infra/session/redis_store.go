package session

import (
	"context"
	"encoding/json"
	"time"

	"passport/internal/domain/entity"
	"passport/internal/domain/repository"

	"github.com/pkg/errors"
	"github.com/redis/go-redis/v9"
)

const keyPrefix = "passport:session:"

// redisStore keeps sessions in Redis as JSON values with a TTL, so sessions
// survive process restarts and can be shared across replicas.
type redisStore struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisStore is the constructor for redisStore.
func NewRedisStore(client *redis.Client, ttl time.Duration) repository.SessionStore {
	return &redisStore{
		client: client,
		ttl:    ttl,
	}
}

// Get returns the session for the key, or ErrSessionNotFound.
func (s *redisStore) Get(ctx context.Context, key string) (*entity.Session, error) {
	raw, err := s.client.Get(ctx, keyPrefix+key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, repository.ErrSessionNotFound
	}
	if err != nil {
		return nil, errors.Wrap(err, "failed to read session")
	}

	var session entity.Session
	if err := json.Unmarshal(raw, &session); err != nil {
		return nil, errors.Wrap(err, "failed to decode session")
	}

	return &session, nil
}

// Set stores the session for the key, replacing any previous value.
func (s *redisStore) Set(ctx context.Context, key string, session *entity.Session) error {
	raw, err := json.Marshal(session)
	if err != nil {
		return errors.Wrap(err, "failed to encode session")
	}

	if err := s.client.Set(ctx, keyPrefix+key, raw, s.ttl).Err(); err != nil {
		return errors.Wrap(err, "failed to write session")
	}

	return nil
}

// Clear removes the session for the key. Idempotent.
func (s *redisStore) Clear(ctx context.Context, key string) error {
	if err := s.client.Del(ctx, keyPrefix+key).Err(); err != nil {
		return errors.Wrap(err, "failed to delete session")
	}

	return nil
}

// mutateRetries bounds how often a contested Mutate re-reads before giving up.
const mutateRetries = 5

// Mutate applies fn under WATCH so a concurrent Set or Clear for the same key
// aborts the transaction instead of losing the update. An aborted transaction
// is retried against the fresh value; a key cleared in the meantime resolves
// to ErrSessionNotFound on the retry.
func (s *redisStore) Mutate(ctx context.Context, key string, fn func(*entity.Session)) error {
	fullKey := keyPrefix + key

	for attempt := 0; attempt < mutateRetries; attempt++ {
		err := s.client.Watch(ctx, func(tx *redis.Tx) error {
			raw, err := tx.Get(ctx, fullKey).Bytes()
			if errors.Is(err, redis.Nil) {
				return repository.ErrSessionNotFound
			}
			if err != nil {
				return errors.Wrap(err, "failed to read session")
			}

			var session entity.Session
			if err := json.Unmarshal(raw, &session); err != nil {
				return errors.Wrap(err, "failed to decode session")
			}

			fn(&session)

			updated, err := json.Marshal(&session)
			if err != nil {
				return errors.Wrap(err, "failed to encode session")
			}

			_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
				pipe.Set(ctx, fullKey, updated, s.ttl)

				return nil
			})

			return errors.WithStack(err)
		}, fullKey)

		switch {
		case err == nil:
			return nil
		case errors.Is(err, repository.ErrSessionNotFound):
			return repository.ErrSessionNotFound
		case errors.Is(err, redis.TxFailedErr):
			// Another writer touched the key between GET and EXEC.
			continue
		default:
			return errors.Wrap(err, "failed to mutate session")
		}
	}

	return errors.Errorf("session mutation still contested after %d attempts", mutateRetries)
}
