package impl

import (
	"io"
	"log/slog"
	"testing"
	"time"

	"authgate/config"
	"authgate/internal/domain/repository"
	"authgate/internal/domain/service"
	"authgate/internal/infra/auth"
	"authgate/internal/infra/validation"
	"authgate/internal/usecase"

	"github.com/stretchr/testify/require"
)

func newDiscardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestConfig() *config.Config {
	cfg := &config.Config{}
	cfg.Env.Env = "test"
	cfg.Env.ServiceName = "authgate-test"
	cfg.SecretKey.Access = "test_access_secret_key_very_long_for_testing"
	cfg.Auth.BcryptCost = 4
	cfg.Auth.TokenTTL = time.Hour

	return cfg
}

func newTestTokenService(t *testing.T) service.TokenService {
	t.Helper()

	tokens, err := auth.NewJWTService(newTestConfig(), newDiscardLogger())
	require.NoError(t, err)

	return tokens
}

func newTestAccountService(t *testing.T, txManager repository.TransactionManager, tokens service.TokenService) usecase.AccountUsecase {
	t.Helper()

	return NewAccountService(AccountServiceParams{
		TxManager:    txManager,
		Hasher:       auth.NewBcryptHasher(newTestConfig()),
		TokenService: tokens,
		Validator:    validation.NewSignupValidator(validation.New()),
		Logger:       newDiscardLogger(),
	})
}
