package handler

import (
	"net/http"

	deliverycontext "authgate/internal/delivery/context"
	"authgate/internal/delivery/http/response"
	domainerrors "authgate/internal/domain/errors"

	"github.com/labstack/echo/v4"
)

// PageHandler serves the page routes the session gate classifies.
type PageHandler struct{}

// NewPageHandler creates a new PageHandler instance
func NewPageHandler() *PageHandler {
	return &PageHandler{}
}

// Public answers the public pages (login, signup, password reset).
func (h *PageHandler) Public(c echo.Context) error {
	return response.Success(c, http.StatusOK, "", map[string]string{
		"page": c.Path(),
	})
}

// Home is a protected page; it is only reached with verified claims.
func (h *PageHandler) Home(c echo.Context) error {
	claims, ok := deliverycontext.GetClaims(c.Request().Context())
	if !ok {
		return domainerrors.ErrInternalError.WrapMessage("home reached without session claims")
	}

	return response.Success(c, http.StatusOK, "", map[string]string{
		"accountId": claims.Subject,
	})
}

// HealthCheck is a simple handler to check if the service is up.
func HealthCheck(c echo.Context) error {
	return response.Success(c, http.StatusOK, "Service is healthy", map[string]string{"status": "ok"})
}
