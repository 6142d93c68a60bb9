package middleware

import (
	domainerrors "passport/internal/domain/errors"
	"passport/internal/domain/repository"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// AuthMiddleware guards routes that require an authenticated caller: the
// caller's session key must have a live entry in the session store.
type AuthMiddleware struct {
	sessions repository.SessionStore
}

// NewAuthMiddleware is the constructor for AuthMiddleware.
func NewAuthMiddleware(sessions repository.SessionStore) *AuthMiddleware {
	return &AuthMiddleware{sessions: sessions}
}

// Authenticate rejects callers without a session. It must run after
// SessionKeyMiddleware so the key is already resolved.
func (m *AuthMiddleware) Authenticate(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		key := SessionKey(c)
		if key == "" {
			return domainerrors.ErrNotLoggedIn.WrapMessage("no session key on request")
		}

		if _, err := m.sessions.Get(c.Request().Context(), key); err != nil {
			if errors.Is(err, repository.ErrSessionNotFound) {
				return domainerrors.ErrNotLoggedIn.WrapMessage("no session for caller")
			}

			return domainerrors.ErrStorageUnavailable.WrapMessage("failed to read session")
		}

		return next(c)
	}
}
