// Package usecase contains the application-specific business rules.
// It orchestrates the domain layer to perform tasks.
package usecase

import (
	"context"

	"passport/internal/domain/entity"
)

// --- Input DTOs ---

// RegisterInput defines the data required to register a new account.
type RegisterInput struct {
	UserName string
	Password string
	Gender   entity.Gender
}

// LoginInput defines the data required for a caller to log in.
type LoginInput struct {
	UserName string
	Password string
}

// ChangeUserInfoInput carries the profile fields an authenticated caller may
// change. Nil fields are left untouched.
type ChangeUserInfoInput struct {
	NickName *string
	City     *string
	Avatar   *string
	Gender   *entity.Gender
}

// ChangePasswordInput carries the old and new credentials for a password
// change. The old credential is re-verified atomically inside the storage
// update.
type ChangePasswordInput struct {
	OldPassword string
	NewPassword string
}

// AccountUsecase defines the account credential and session lifecycle
// operations. The sessionKey parameter is the opaque caller identity supplied
// by the delivery layer; operations that require an authenticated caller
// assume the delivery layer has already verified a session exists for it.
type AccountUsecase interface {
	// Register creates a new account after a uniqueness check, hashing the
	// credential before storage. NickName defaults to UserName.
	Register(ctx context.Context, input *RegisterInput) (*entity.Profile, error)

	// IsExist reports whether an account exists, returning its public
	// profile. Side-effect free.
	IsExist(ctx context.Context, userName string) (*entity.Profile, error)

	// Login verifies the credential pair against storage. On a match it
	// creates a session for the caller key unless one already exists, in
	// which case the existing session is preserved untouched.
	Login(ctx context.Context, sessionKey string, input *LoginInput) (*entity.Profile, error)

	// ChangeUserInfo updates the caller's profile fields and, on success,
	// mutates the cached session to match. On failure the session is left
	// unchanged.
	ChangeUserInfo(ctx context.Context, sessionKey string, input *ChangeUserInfoInput) error

	// ChangePassword replaces the credential, re-verifying the old one inside
	// the same storage update. It does not terminate the session; forcing
	// re-login is the caller's policy.
	ChangePassword(ctx context.Context, sessionKey string, input *ChangePasswordInput) error

	// DeleteUserInfo removes the account record. It does not touch sessions;
	// invalidating sessions of deleted users is the caller's policy.
	DeleteUserInfo(ctx context.Context, userName string) error

	// Logout destroys the caller's session. Idempotent.
	Logout(ctx context.Context, sessionKey string) error
}
