package middleware

import (
	"net/http"

	"authgate/config"
	deliverycontext "authgate/internal/delivery/context"
	"authgate/internal/delivery/http/cookie"
	"authgate/internal/domain/entity"
	"authgate/internal/usecase"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

// SessionGateMiddleware intercepts every request that is not bypassed and
// either forwards it or redirects to the login page.
type SessionGateMiddleware struct {
	gate      usecase.SessionGateUsecase
	bypass    entity.BypassList
	cookie    *cookie.SessionCookie
	loginPath string
}

// SessionGateMiddlewareParams holds the gate dependencies, injected by Fx.
type SessionGateMiddlewareParams struct {
	fx.In

	Gate   usecase.SessionGateUsecase
	Bypass entity.BypassList
	Cookie *cookie.SessionCookie
	Config *config.Config
}

// NewSessionGateMiddleware creates the gate middleware.
func NewSessionGateMiddleware(params SessionGateMiddlewareParams) *SessionGateMiddleware {
	return &SessionGateMiddleware{
		gate:      params.Gate,
		bypass:    params.Bypass,
		cookie:    params.Cookie,
		loginPath: params.Config.Gate.LoginPath,
	}
}

// Handle applies the gate. Bypassed paths are never evaluated. A redirect
// carries no return-to parameter.
func (m *SessionGateMiddleware) Handle(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		path := c.Request().URL.Path
		if m.bypass.Match(path) {
			return next(c)
		}

		result := m.gate.Evaluate(c.Request().Context(), path, m.cookie.Read(c))
		if result.Decision == entity.DecisionRedirect {
			return c.Redirect(http.StatusTemporaryRedirect, m.loginPath)
		}

		if result.Claims != nil {
			deliverycontext.SetClaims(c, result.Claims)
		}

		return next(c)
	}
}
