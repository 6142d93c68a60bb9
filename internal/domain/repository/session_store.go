package repository

import (
	"context"
	"errors"

	"passport/internal/domain/entity"
)

// ErrSessionNotFound is returned by Get and Mutate when no session exists for
// the caller key.
var ErrSessionNotFound = errors.New("session not found")

// SessionStore is the keyed slot holding each caller's authenticated profile
// snapshot. The key is an opaque caller identity supplied by the delivery
// layer. Implementations must allow concurrent access across different keys
// and serialize operations on the same key, so a profile update and a logout
// racing for one caller cannot produce a lost update.
type SessionStore interface {
	// Get returns the session for the key, or ErrSessionNotFound.
	Get(ctx context.Context, key string) (*entity.Session, error)

	// Set stores the session for the key, replacing any previous value.
	Set(ctx context.Context, key string, session *entity.Session) error

	// Clear removes the session for the key. Clearing an absent session is
	// not an error.
	Clear(ctx context.Context, key string) error

	// Mutate applies fn to the stored session atomically with respect to
	// other operations on the same key. Returns ErrSessionNotFound when no
	// session exists.
	Mutate(ctx context.Context, key string, fn func(*entity.Session)) error
}
