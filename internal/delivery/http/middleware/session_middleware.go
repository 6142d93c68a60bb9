package middleware

import (
	"net/http"

	"passport/config"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// sessionKeyContextKey is where the caller's opaque session key is stored on
// the echo context for handlers to read.
const sessionKeyContextKey = "sessionKey"

// SessionKeyMiddleware derives the caller's opaque session key from a cookie,
// issuing a fresh one when the caller has none. The key identifies the
// caller's session slot; it carries no claims and proves nothing by itself.
type SessionKeyMiddleware struct {
	cookieName string
}

// NewSessionKeyMiddleware is the constructor for SessionKeyMiddleware.
func NewSessionKeyMiddleware(cfg *config.Config) *SessionKeyMiddleware {
	return &SessionKeyMiddleware{cookieName: cfg.Auth.SessionCookie}
}

// Process resolves or issues the session cookie and exposes the key on the
// request context.
func (m *SessionKeyMiddleware) Process(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		var key string

		cookie, err := c.Cookie(m.cookieName)
		if err == nil && cookie.Value != "" {
			key = cookie.Value
		} else {
			key = uuid.New().String()
			c.SetCookie(&http.Cookie{
				Name:     m.cookieName,
				Value:    key,
				Path:     "/",
				HttpOnly: true,
				SameSite: http.SameSiteLaxMode,
			})
		}

		c.Set(sessionKeyContextKey, key)

		return next(c)
	}
}

// SessionKey returns the caller's session key resolved by the middleware.
func SessionKey(c echo.Context) string {
	if key, ok := c.Get(sessionKeyContextKey).(string); ok {
		return key
	}

	return ""
}
