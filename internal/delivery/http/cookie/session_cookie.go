// Package cookie writes and reads the session cookie that carries the token.
package cookie

import (
	"net/http"
	"time"

	"authgate/config"
	"authgate/internal/domain/service"

	"github.com/labstack/echo/v4"
)

// SessionCookie describes the HTTP-only cookie transporting the session token.
type SessionCookie struct {
	name   string
	domain string
	secure bool
	ttl    time.Duration
	now    func() time.Time
}

// NewSessionCookie builds the cookie settings; Max-Age follows the token lifetime.
func NewSessionCookie(cfg *config.Config, tokens service.TokenService) *SessionCookie {
	return &SessionCookie{
		name:   cfg.Session.CookieName,
		domain: cfg.Session.CookieDomain,
		secure: cfg.Session.CookieSecure,
		ttl:    tokens.TTL(),
		now:    time.Now,
	}
}

// Name returns the cookie name.
func (s *SessionCookie) Name() string {
	return s.name
}

// Set attaches the token to the response.
func (s *SessionCookie) Set(c echo.Context, token string) {
	c.SetCookie(s.build(token, int(s.ttl.Seconds()), s.now().Add(s.ttl)))
}

// Clear tells the client to drop the cookie.
func (s *SessionCookie) Clear(c echo.Context) {
	c.SetCookie(s.build("", -1, time.Unix(0, 0)))
}

// Read returns the token from the request, or "" when the cookie is absent.
func (s *SessionCookie) Read(c echo.Context) string {
	ck, err := c.Cookie(s.name)
	if err != nil {
		return ""
	}

	return ck.Value
}

func (s *SessionCookie) build(value string, maxAge int, expires time.Time) *http.Cookie {
	return &http.Cookie{
		Name:     s.name,
		Value:    value,
		Path:     "/",
		Domain:   s.domain,
		MaxAge:   maxAge,
		Expires:  expires,
		HttpOnly: true,
		Secure:   s.secure,
		SameSite: http.SameSiteLaxMode,
	}
}
