// Package impl contains the implementation of the application's business logic.
package impl

import (
	"context"
	"log/slog"

	deliverycontext "passport/internal/delivery/context"
	"passport/internal/domain/entity"
	domainerrors "passport/internal/domain/errors"
	"passport/internal/domain/repository"
	"passport/internal/domain/service"
	"passport/internal/usecase"

	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// accountService implements the AccountUsecase interface.
type accountService struct {
	userRepo repository.UserRepository
	sessions repository.SessionStore
	hasher   service.CredentialHasher
	logger   *slog.Logger
}

// AccountServiceParams holds dependencies for AccountService, injected by Fx.
type AccountServiceParams struct {
	fx.In

	UserRepo repository.UserRepository
	Sessions repository.SessionStore
	Hasher   service.CredentialHasher
	Logger   *slog.Logger
}

// NewAccountService is the constructor for accountService. It receives all dependencies as interfaces.
func NewAccountService(params AccountServiceParams) usecase.AccountUsecase {
	return &accountService{
		userRepo: params.UserRepo,
		sessions: params.Sessions,
		hasher:   params.Hasher,
		logger:   params.Logger,
	}
}

// log returns a request-scoped logger if available, otherwise falls back to the service's logger.
func (srv *accountService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// Register creates a new account. The existence check is only an optimization:
// two concurrent registrations can both pass it, and then the repository's
// unique constraint decides the race.
func (srv *accountService) Register(ctx context.Context, input *usecase.RegisterInput) (*entity.Profile, error) {
	srv.log(ctx).Info("Starting registration", slog.String("userName", input.UserName))

	_, err := srv.userRepo.FindOne(ctx, repository.ByUserName(input.UserName))
	if err == nil {
		srv.log(ctx).Warn("Registration rejected, name taken", slog.String("userName", input.UserName))

		return nil, domainerrors.ErrAccountExists.WrapMessage("user name already registered")
	}
	if !errors.Is(err, repository.ErrUserNotFound) {
		srv.log(ctx).Error("Failed to check name availability", slog.String("userName", input.UserName), slog.Any("error", err))

		return nil, domainerrors.ErrRegistrationFailed.WrapMessage("failed to check name availability")
	}

	gender := input.Gender
	if !gender.Valid() {
		gender = entity.GenderUndisclosed
	}

	newUser := &entity.User{
		UserName: input.UserName,
		Password: srv.hasher.Hash(input.Password),
		NickName: input.UserName,
		Gender:   gender,
	}

	if err := srv.userRepo.Create(ctx, newUser); err != nil {
		// A race-induced duplicate lands here too; the caller sees the same
		// registration failure either way, without the storage cause.
		srv.log(ctx).Error("Failed to create user", slog.String("userName", input.UserName), slog.Any("error", err))

		return nil, domainerrors.ErrRegistrationFailed.WrapMessage("failed to create user")
	}

	srv.log(ctx).Debug("Registration completed", slog.String("userName", newUser.UserName))

	return newUser.ToProfile(), nil
}

// IsExist reports whether an account with the given name exists.
func (srv *accountService) IsExist(ctx context.Context, userName string) (*entity.Profile, error) {
	user, err := srv.userRepo.FindOne(ctx, repository.ByUserName(userName))
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, domainerrors.ErrAccountNotFound.WrapMessage("user name not registered")
		}
		srv.log(ctx).Error("Failed to look up user", slog.String("userName", userName), slog.Any("error", err))

		return nil, domainerrors.ErrStorageUnavailable.WrapMessage("failed to look up user")
	}

	return user.ToProfile(), nil
}

// Login matches the hashed credential pair against storage. A missing user and
// a wrong password are indistinguishable to the caller. Once credentials
// match, an existing session for the key is preserved untouched.
func (srv *accountService) Login(ctx context.Context, sessionKey string, input *usecase.LoginInput) (*entity.Profile, error) {
	srv.log(ctx).Debug("Starting login", slog.String("userName", input.UserName))

	user, err := srv.userRepo.FindOne(ctx, repository.ByCredentials(input.UserName, srv.hasher.Hash(input.Password)))
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			srv.log(ctx).Warn("Login failed", slog.String("userName", input.UserName))

			return nil, domainerrors.ErrLoginFailed.WrapMessage("credentials did not match")
		}
		srv.log(ctx).Error("Failed to verify credentials", slog.String("userName", input.UserName), slog.Any("error", err))

		return nil, domainerrors.ErrStorageUnavailable.WrapMessage("failed to verify credentials")
	}

	existing, err := srv.sessions.Get(ctx, sessionKey)
	if err == nil {
		// A session already exists for this caller; leave it untouched.
		return &existing.Profile, nil
	}
	if !errors.Is(err, repository.ErrSessionNotFound) {
		srv.log(ctx).Error("Failed to read session", slog.Any("error", err))

		return nil, domainerrors.ErrStorageUnavailable.WrapMessage("failed to read session")
	}

	profile := user.ToProfile()
	if err := srv.sessions.Set(ctx, sessionKey, entity.NewSession(profile)); err != nil {
		srv.log(ctx).Error("Failed to create session", slog.Any("error", err))

		return nil, domainerrors.ErrStorageUnavailable.WrapMessage("failed to create session")
	}

	srv.log(ctx).Debug("Logged in", slog.String("userName", user.UserName))

	return profile, nil
}

// ChangeUserInfo updates the caller's profile fields. The storage update and
// the session mutation either both happen or neither does, so the cached
// snapshot never diverges from storage after a success.
func (srv *accountService) ChangeUserInfo(ctx context.Context, sessionKey string, input *usecase.ChangeUserInfoInput) error {
	session, err := srv.sessions.Get(ctx, sessionKey)
	if err != nil {
		if errors.Is(err, repository.ErrSessionNotFound) {
			return domainerrors.ErrNotLoggedIn.WrapMessage("no session for caller")
		}
		srv.log(ctx).Error("Failed to read session", slog.Any("error", err))

		return domainerrors.ErrStorageUnavailable.WrapMessage("failed to read session")
	}

	userName := session.Profile.UserName
	if input.Gender != nil && !input.Gender.Valid() {
		return domainerrors.ErrValidationFailed.WrapMessage("unknown gender code")
	}

	changes := repository.UserChanges{
		NickName: input.NickName,
		City:     input.City,
		Avatar:   input.Avatar,
		Gender:   input.Gender,
	}

	changed, err := srv.userRepo.Update(ctx, changes, repository.ByUserName(userName))
	if err != nil {
		srv.log(ctx).Error("Failed to update profile", slog.String("userName", userName), slog.Any("error", err))

		return domainerrors.ErrProfileUpdateFailed.WrapMessage("failed to update profile")
	}
	if !changed {
		srv.log(ctx).Warn("Profile update touched no record", slog.String("userName", userName))

		return domainerrors.ErrProfileUpdateFailed.WrapMessage("no record changed")
	}

	// Storage accepted the update; fold the same changes into the cached
	// session. A session cleared by a concurrent logout is not an error.
	err = srv.sessions.Mutate(ctx, sessionKey, func(s *entity.Session) {
		if input.NickName != nil {
			s.Profile.NickName = *input.NickName
		}
		if input.City != nil {
			s.Profile.City = *input.City
		}
		if input.Avatar != nil {
			s.Profile.Avatar = *input.Avatar
		}
		if input.Gender != nil {
			s.Profile.Gender = *input.Gender
		}
	})
	if err != nil && !errors.Is(err, repository.ErrSessionNotFound) {
		srv.log(ctx).Error("Failed to refresh session after update", slog.String("userName", userName), slog.Any("error", err))

		return domainerrors.ErrProfileUpdateFailed.WrapMessage("failed to refresh session")
	}

	return nil
}

// ChangePassword replaces the credential. The old credential rides in the
// update predicate, so verification and replacement are one atomic statement
// with no read-then-write gap. The session is deliberately left alive; the
// delivery layer decides whether to force a re-login.
func (srv *accountService) ChangePassword(ctx context.Context, sessionKey string, input *usecase.ChangePasswordInput) error {
	session, err := srv.sessions.Get(ctx, sessionKey)
	if err != nil {
		if errors.Is(err, repository.ErrSessionNotFound) {
			return domainerrors.ErrNotLoggedIn.WrapMessage("no session for caller")
		}
		srv.log(ctx).Error("Failed to read session", slog.Any("error", err))

		return domainerrors.ErrStorageUnavailable.WrapMessage("failed to read session")
	}

	userName := session.Profile.UserName
	newHash := srv.hasher.Hash(input.NewPassword)

	changed, err := srv.userRepo.Update(ctx,
		repository.UserChanges{Password: &newHash},
		repository.ByCredentials(userName, srv.hasher.Hash(input.OldPassword)),
	)
	if err != nil {
		srv.log(ctx).Error("Failed to change password", slog.String("userName", userName), slog.Any("error", err))

		return domainerrors.ErrPasswordChangeFailed.WrapMessage("failed to change password")
	}
	if !changed {
		// Old credential did not match (or the account vanished).
		srv.log(ctx).Warn("Password change rejected", slog.String("userName", userName))

		return domainerrors.ErrPasswordChangeFailed.WrapMessage("old credential did not match")
	}

	srv.log(ctx).Info("Password changed", slog.String("userName", userName))

	return nil
}

// DeleteUserInfo removes the account record. Sessions of the deleted user are
// not touched here; that policy belongs to the caller.
func (srv *accountService) DeleteUserInfo(ctx context.Context, userName string) error {
	removed, err := srv.userRepo.Delete(ctx, repository.ByUserName(userName))
	if err != nil {
		srv.log(ctx).Error("Failed to delete user", slog.String("userName", userName), slog.Any("error", err))

		return domainerrors.ErrDeletionFailed.WrapMessage("failed to delete user")
	}
	if !removed {
		return domainerrors.ErrDeletionFailed.WrapMessage("no record removed")
	}

	srv.log(ctx).Info("User deleted", slog.String("userName", userName))

	return nil
}

// Logout destroys the caller's session. Destroying an absent session succeeds.
func (srv *accountService) Logout(ctx context.Context, sessionKey string) error {
	if err := srv.sessions.Clear(ctx, sessionKey); err != nil {
		srv.log(ctx).Error("Failed to clear session", slog.Any("error", err))

		return domainerrors.ErrStorageUnavailable.WrapMessage("failed to clear session")
	}

	return nil
}
