package middleware

import (
	"fmt"
	"log/slog"
	"net/http"

	deliverycontext "authgate/internal/delivery/context"
	"authgate/internal/delivery/http/response"
	domainerrors "authgate/internal/domain/errors"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// ErrorMiddleware error handling middleware
type ErrorMiddleware struct {
	logger *slog.Logger
}

// NewErrorMiddleware creates a new error handling middleware
func NewErrorMiddleware(logger *slog.Logger) *ErrorMiddleware {
	return &ErrorMiddleware{
		logger: logger,
	}
}

// HandleHTTPError is echo's HTTPErrorHandler. Server-side failures are logged in
// full and answered with the generic message only.
func (m *ErrorMiddleware) HandleHTTPError(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	var validationErr *domainerrors.ValidationError
	if errors.As(err, &validationErr) {
		m.write(c, response.Errors(c, validationErr.HTTPCode(), validationErr.Messages()))

		return
	}

	var appErr domainerrors.AppError
	if errors.As(err, &appErr) {
		if appErr.HTTPCode() >= http.StatusInternalServerError {
			m.logServerError(c, err)
		}
		m.write(c, response.Error(c, appErr.HTTPCode(), appErr.Message()))

		return
	}

	var httpErr *echo.HTTPError
	if errors.As(err, &httpErr) {
		if httpErr.Code >= http.StatusInternalServerError {
			m.logServerError(c, err)
			m.write(c, response.Error(c, httpErr.Code, "Internal server error"))

			return
		}
		m.write(c, response.Error(c, httpErr.Code, fmt.Sprint(httpErr.Message)))

		return
	}

	m.logServerError(c, err)
	m.write(c, response.Error(c, domainerrors.ErrInternalError.HTTPCode(), domainerrors.ErrInternalError.Message()))
}

func (m *ErrorMiddleware) logServerError(c echo.Context, err error) {
	deliverycontext.GetLoggerOrDefault(c.Request().Context(), m.logger).Error("Unhandled error",
		slog.String("error", fmt.Sprintf("%+v", err)),
		slog.String("path", c.Request().URL.Path),
		slog.String("method", c.Request().Method),
	)
}

func (m *ErrorMiddleware) write(c echo.Context, err error) {
	if err != nil {
		m.logger.Error("Failed to write error response", slog.Any("error", err))
	}
}
