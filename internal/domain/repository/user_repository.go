// Package repository defines the interfaces for the persistence layer.
// These interfaces act as a contract between the domain/application layers and the infrastructure layer.
package repository

import (
	"context"
	"errors"

	"passport/internal/domain/entity"
)

// ErrUserNotFound is returned by FindOne when no record matches the predicate.
var ErrUserNotFound = errors.New("user not found")

// ErrDuplicateUser is returned by Create when the unique constraint on
// userName rejects the insert. The service's pre-check is only an
// optimization; this constraint is the authoritative guard against the
// check-then-act registration race.
var ErrDuplicateUser = errors.New("duplicate user name")

// Predicate is a conjunction over userName and, optionally, the hashed
// credential. A nil Password matches on userName alone.
type Predicate struct {
	UserName string
	Password *string
}

// ByUserName matches on userName alone.
func ByUserName(userName string) Predicate {
	return Predicate{UserName: userName}
}

// ByCredentials matches on userName and the hashed credential together.
func ByCredentials(userName, hashedPassword string) Predicate {
	return Predicate{UserName: userName, Password: &hashedPassword}
}

// UserChanges carries the columns an update may touch. Nil fields are left
// untouched. UserName is absent on purpose: it is immutable after creation.
type UserChanges struct {
	NickName *string
	City     *string
	Avatar   *string
	Gender   *entity.Gender
	Password *string
}

// UserRepository defines the standard operations for user persistence.
// The application layer depends on this interface, not the concrete implementation.
type UserRepository interface {
	// FindOne retrieves the single record matching the predicate, or
	// ErrUserNotFound.
	FindOne(ctx context.Context, pred Predicate) (*entity.User, error)

	// Create persists a new user record. A userName collision yields
	// ErrDuplicateUser.
	Create(ctx context.Context, user *entity.User) error

	// Update applies the changes to the record matching the predicate in a
	// single atomic statement and reports whether any record was changed.
	// Predicate-matched updates carry the old-credential re-check for
	// password changes, so implementations must not split this into a
	// read-modify-write.
	Update(ctx context.Context, changes UserChanges, pred Predicate) (bool, error)

	// Delete removes the record(s) matching the predicate and reports whether
	// anything was removed.
	Delete(ctx context.Context, pred Predicate) (bool, error)
}
