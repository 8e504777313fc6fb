package middleware

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"authgate/config"
	deliverycontext "authgate/internal/delivery/context"
	"authgate/internal/delivery/http/cookie"
	"authgate/internal/domain/entity"
	domainerrors "authgate/internal/domain/errors"
	"authgate/internal/domain/service"
	mockService "authgate/internal/mocks/service"
	"authgate/internal/usecase"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubGate records the calls it receives and returns a fixed result.
type stubGate struct {
	result usecase.GateResult
	calls  []string
	tokens []string
}

func (g *stubGate) Evaluate(_ context.Context, path, token string) usecase.GateResult {
	g.calls = append(g.calls, path)
	g.tokens = append(g.tokens, token)

	return g.result
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newGateMiddleware(t *testing.T, gate usecase.SessionGateUsecase) *SessionGateMiddleware {
	cfg := &config.Config{}
	cfg.ApplyDefaults()

	tokens := mockService.NewMockTokenService(t)
	tokens.EXPECT().TTL().Return(time.Hour)

	return NewSessionGateMiddleware(SessionGateMiddlewareParams{
		Gate:   gate,
		Bypass: entity.NewBypassList(cfg.Gate.BypassPrefixes, cfg.Gate.BypassExtensions),
		Cookie: cookie.NewSessionCookie(cfg, tokens),
		Config: cfg,
	})
}

func serve(m *SessionGateMiddleware, req *http.Request, next echo.HandlerFunc) (*httptest.ResponseRecorder, error) {
	rec := httptest.NewRecorder()
	c := echo.New().NewContext(req, rec)

	return rec, m.Handle(next)(c)
}

func okHandler(c echo.Context) error {
	return c.String(http.StatusOK, "ok")
}

func TestSessionGateMiddleware_BypassSkipsGate(t *testing.T) {
	gate := &stubGate{result: usecase.GateResult{Decision: entity.DecisionRedirect}}
	m := newGateMiddleware(t, gate)

	for _, path := range []string{"/api/auth/signup", "/static/app.js", "/_image/x", "/favicon.ico", "/img/logo.PNG"} {
		rec, err := serve(m, httptest.NewRequest(http.MethodGet, path, nil), okHandler)
		require.NoError(t, err)
		assert.Equal(t, http.StatusOK, rec.Code, path)
	}
	assert.Empty(t, gate.calls)
}

func TestSessionGateMiddleware_Redirect(t *testing.T) {
	gate := &stubGate{result: usecase.GateResult{Decision: entity.DecisionRedirect}}
	m := newGateMiddleware(t, gate)

	req := httptest.NewRequest(http.MethodGet, "/dashboard?x=1", nil)
	req.AddCookie(&http.Cookie{Name: "auth-token", Value: "stale"})

	called := false
	rec, err := serve(m, req, func(c echo.Context) error {
		called = true

		return nil
	})
	require.NoError(t, err)

	assert.False(t, called)
	assert.Equal(t, http.StatusTemporaryRedirect, rec.Code)
	assert.Equal(t, "/login", rec.Header().Get(echo.HeaderLocation))
	assert.Equal(t, []string{"/dashboard"}, gate.calls)
	assert.Equal(t, []string{"stale"}, gate.tokens)
}

func TestSessionGateMiddleware_ForwardWithClaims(t *testing.T) {
	claims := &service.Claims{RegisteredClaims: jwt.RegisteredClaims{Subject: "account-1"}}
	gate := &stubGate{result: usecase.GateResult{Decision: entity.DecisionForward, Claims: claims}}
	m := newGateMiddleware(t, gate)

	var got *service.Claims
	rec, err := serve(m, httptest.NewRequest(http.MethodGet, "/", nil), func(c echo.Context) error {
		got, _ = deliverycontext.GetClaims(c.Request().Context())

		return okHandler(c)
	})
	require.NoError(t, err)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Same(t, claims, got)
	assert.Equal(t, []string{""}, gate.tokens)
}

func TestSessionGateMiddleware_ForwardWithoutClaims(t *testing.T) {
	gate := &stubGate{result: usecase.GateResult{Decision: entity.DecisionForward}}
	m := newGateMiddleware(t, gate)

	var ok bool
	_, err := serve(m, httptest.NewRequest(http.MethodGet, "/login", nil), func(c echo.Context) error {
		_, ok = deliverycontext.GetClaims(c.Request().Context())

		return nil
	})
	require.NoError(t, err)
	assert.False(t, ok)
}

func handleError(t *testing.T, err error) (*httptest.ResponseRecorder, map[string]any, *bytes.Buffer) {
	t.Helper()

	var logs bytes.Buffer
	m := NewErrorMiddleware(slog.New(slog.NewTextHandler(&logs, nil)))
	rec := httptest.NewRecorder()
	c := echo.New().NewContext(httptest.NewRequest(http.MethodPost, "/api/auth/signup", nil), rec)

	m.HandleHTTPError(err, c)

	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))

	return rec, body, &logs
}

func TestErrorMiddleware(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
		error  any
		logged bool
	}{
		{
			name:   "missing field",
			err:    errors.WithStack(domainerrors.NewMissingFieldError("email")),
			status: http.StatusBadRequest,
			error:  "email is required",
		},
		{
			name:   "validation",
			err:    domainerrors.NewValidationError([]string{"a", "b"}),
			status: http.StatusBadRequest,
			error:  []any{"a", "b"},
		},
		{
			name:   "conflict",
			err:    errors.Wrap(domainerrors.ErrAccountAlreadyExists.WrapMessage("email already exists"), "register"),
			status: http.StatusConflict,
			error:  "User already exist",
		},
		{
			name:   "database",
			err:    domainerrors.NewDatabaseExecuteError(errors.New("pq: connection refused"), "insert"),
			status: http.StatusInternalServerError,
			error:  "Internal server error",
			logged: true,
		},
		{
			name:   "echo not found",
			err:    echo.ErrNotFound,
			status: http.StatusNotFound,
			error:  "Not Found",
		},
		{
			name:   "unknown",
			err:    errors.New("disk on fire"),
			status: http.StatusInternalServerError,
			error:  "Internal server error",
			logged: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec, body, logs := handleError(t, tt.err)

			assert.Equal(t, tt.status, rec.Code)
			assert.Equal(t, false, body["success"])
			assert.Equal(t, tt.error, body["error"])
			assert.NotContains(t, rec.Body.String(), "connection refused")
			assert.NotContains(t, rec.Body.String(), "disk on fire")
			assert.Equal(t, tt.logged, logs.Len() > 0)
		})
	}
}

func TestRequestIDMiddleware(t *testing.T) {
	m := NewRequestIDMiddleware(discardLogger())

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(deliverycontext.HeaderXRequestID, "client-id")
	rec := httptest.NewRecorder()
	c := echo.New().NewContext(req, rec)

	var fromCtx string
	err := m.Process(func(c echo.Context) error {
		fromCtx = deliverycontext.GetRequestIDFromContext(c.Request().Context())
		assert.NotNil(t, deliverycontext.GetLogger(c.Request().Context()))

		return nil
	})(c)
	require.NoError(t, err)

	assert.Equal(t, "client-id", fromCtx)
	assert.Equal(t, "client-id", rec.Header().Get(deliverycontext.HeaderXRequestID))
}

func TestLoggerMiddleware_LogsFailures(t *testing.T) {
	var logs bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&logs, nil))

	e := echo.New()
	e.HTTPErrorHandler = NewErrorMiddleware(discardLogger()).HandleHTTPError
	m := NewLoggerMiddleware(logger, &config.Config{})

	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), rec)

	err := m.Handle(func(echo.Context) error {
		return domainerrors.ErrAccountAlreadyExists
	})(c)

	require.NoError(t, err)
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Contains(t, logs.String(), "status=409")
	assert.Contains(t, logs.String(), "level=WARN")
}
