package impl

import (
	"context"
	"strings"
	"testing"
	"time"

	"authgate/internal/domain/entity"
	"authgate/internal/domain/service"
	"authgate/internal/infra/auth"
	mockService "authgate/internal/mocks/service"
	"authgate/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestGate(tokens service.TokenService) usecase.SessionGateUsecase {
	return NewSessionGate(SessionGateParams{
		Policy:       entity.NewRoutePolicy([]string{"/login", "/signup", "/password-reset"}),
		TokenService: tokens,
		Logger:       newDiscardLogger(),
	})
}

func TestSessionGate_NoToken(t *testing.T) {
	gate := newTestGate(mockService.NewMockTokenService(t))

	for _, path := range []string{"/login", "/signup", "/password-reset"} {
		assert.Equal(t, entity.DecisionForward, gate.Evaluate(context.Background(), path, "").Decision, path)
	}
	for _, path := range []string{"/", "/dashboard", "/login/extra", "/unknown"} {
		assert.Equal(t, entity.DecisionRedirect, gate.Evaluate(context.Background(), path, "").Decision, path)
	}
}

func TestSessionGate_ValidToken(t *testing.T) {
	tokens := newTestTokenService(t)
	gate := newTestGate(tokens)

	accountID := uuid.New()
	token, err := tokens.Issue(accountID)
	require.NoError(t, err)

	for _, path := range []string{"/", "/dashboard", "/login"} {
		result := gate.Evaluate(context.Background(), path, token)
		assert.Equal(t, entity.DecisionForward, result.Decision, path)
		require.NotNil(t, result.Claims, path)
		assert.Equal(t, accountID.String(), result.Claims.Subject)
	}
}

func TestSessionGate_InvalidToken(t *testing.T) {
	tokens := newTestTokenService(t)
	gate := newTestGate(tokens)

	token, err := tokens.Issue(uuid.New())
	require.NoError(t, err)
	tampered := token[:strings.LastIndex(token, ".")+1] + "invalidsignature"

	for _, bad := range []string{tampered, "garbage", "a.b.c"} {
		protected := gate.Evaluate(context.Background(), "/dashboard", bad)
		assert.Equal(t, entity.DecisionRedirect, protected.Decision)
		assert.Nil(t, protected.Claims)

		public := gate.Evaluate(context.Background(), "/login", bad)
		assert.Equal(t, entity.DecisionForward, public.Decision)
		assert.Nil(t, public.Claims)
	}
}

func TestSessionGate_ExpiredToken(t *testing.T) {
	cfg := newTestConfig()
	cfg.Auth.TokenTTL = time.Millisecond
	tokens, err := auth.NewJWTService(cfg, newDiscardLogger())
	require.NoError(t, err)
	gate := newTestGate(tokens)

	token, err := tokens.Issue(uuid.New())
	require.NoError(t, err)

	// jwt NumericDate has second precision.
	time.Sleep(1100 * time.Millisecond)

	assert.Equal(t, entity.DecisionRedirect, gate.Evaluate(context.Background(), "/", token).Decision)
	assert.Equal(t, entity.DecisionForward, gate.Evaluate(context.Background(), "/signup", token).Decision)
}

func TestSessionGate_Idempotent(t *testing.T) {
	tokens := newTestTokenService(t)
	gate := newTestGate(tokens)

	token, err := tokens.Issue(uuid.New())
	require.NoError(t, err)

	first := gate.Evaluate(context.Background(), "/", token)
	second := gate.Evaluate(context.Background(), "/", token)
	assert.Equal(t, first.Decision, second.Decision)
	assert.Equal(t, first.Claims.Subject, second.Claims.Subject)
}

func TestSessionGate_VerifierPanicRedirects(t *testing.T) {
	tokens := mockService.NewMockTokenService(t)
	tokens.EXPECT().Verify("boom").RunAndReturn(func(string) (*service.Claims, error) {
		panic("unexpected")
	})
	gate := newTestGate(tokens)

	var result usecase.GateResult
	assert.NotPanics(t, func() {
		result = gate.Evaluate(context.Background(), "/", "boom")
	})
	assert.Equal(t, entity.DecisionRedirect, result.Decision)
}

func TestSessionGate_NilClaimsRedirects(t *testing.T) {
	tokens := mockService.NewMockTokenService(t)
	tokens.EXPECT().Verify("odd").Return(nil, nil)
	tokens.EXPECT().Verify("err").Return(nil, errors.New("bad"))
	gate := newTestGate(tokens)

	assert.Equal(t, entity.DecisionRedirect, gate.Evaluate(context.Background(), "/", "odd").Decision)
	assert.Equal(t, entity.DecisionRedirect, gate.Evaluate(context.Background(), "/", "err").Decision)
}
