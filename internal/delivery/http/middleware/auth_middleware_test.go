package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"passport/internal/domain/entity"
	domainerrors "passport/internal/domain/errors"
	"passport/internal/domain/repository"
	"passport/internal/infra/session"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newAuthTestContext(e *echo.Echo, sessionKey string) echo.Context {
	req := httptest.NewRequest(http.MethodPost, "/api/users/changeInfo", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if sessionKey != "" {
		c.Set(sessionKeyContextKey, sessionKey)
	}

	return c
}

func assertErrorCode(t *testing.T, err error, code string) {
	t.Helper()

	var appErr domainerrors.AppError
	require.True(t, errors.As(err, &appErr), "expected a business error, got %v", err)
	assert.Equal(t, code, appErr.ErrorCode())
}

func TestAuthMiddleware_RejectsWithoutSessionKey(t *testing.T) {
	mw := NewAuthMiddleware(session.NewMemoryStore())
	e := echo.New()

	next := func(echo.Context) error {
		t.Fatal("next handler must not run")

		return nil
	}

	err := mw.Authenticate(next)(newAuthTestContext(e, ""))
	assertErrorCode(t, err, "NOT_LOGGED_IN")
}

func TestAuthMiddleware_RejectsKeyWithoutSession(t *testing.T) {
	mw := NewAuthMiddleware(session.NewMemoryStore())
	e := echo.New()

	next := func(echo.Context) error {
		t.Fatal("next handler must not run")

		return nil
	}

	err := mw.Authenticate(next)(newAuthTestContext(e, "key-stranger"))
	assertErrorCode(t, err, "NOT_LOGGED_IN")
}

func TestAuthMiddleware_PassesThroughWithLiveSession(t *testing.T) {
	sessions := session.NewMemoryStore()
	require.NoError(t, sessions.Set(context.Background(), "key-alice",
		entity.NewSession(&entity.Profile{UserName: "alice"})))

	mw := NewAuthMiddleware(sessions)
	e := echo.New()

	called := false
	next := func(echo.Context) error {
		called = true

		return nil
	}

	require.NoError(t, mw.Authenticate(next)(newAuthTestContext(e, "key-alice")))
	assert.True(t, called, "authenticated request must reach the handler")
}

// failingSessionStore fails every read to exercise the store-fault path.
type failingSessionStore struct {
	repository.SessionStore
}

func (failingSessionStore) Get(context.Context, string) (*entity.Session, error) {
	return nil, errors.New("connection refused")
}

func TestAuthMiddleware_StoreFaultIsNotAuthFailure(t *testing.T) {
	mw := NewAuthMiddleware(failingSessionStore{})
	e := echo.New()

	next := func(echo.Context) error {
		t.Fatal("next handler must not run")

		return nil
	}

	err := mw.Authenticate(next)(newAuthTestContext(e, "key-alice"))
	assertErrorCode(t, err, "STORAGE_UNAVAILABLE")
	assert.NotContains(t, err.Error(), "connection refused")
}
