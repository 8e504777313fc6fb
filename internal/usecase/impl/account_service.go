// Package impl contains the implementation of the application's business logic.
package impl

import (
	"context"
	"log/slog"
	"strings"
	"sync"
	"time"

	deliverycontext "authgate/internal/delivery/context"
	"authgate/internal/domain/entity"
	domainerrors "authgate/internal/domain/errors"
	"authgate/internal/domain/repository"
	"authgate/internal/domain/service"
	"authgate/internal/usecase"

	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// accountService implements the AccountUsecase interface.
type accountService struct {
	txManager    repository.TransactionManager
	hasher       service.PasswordHasher
	tokenService service.TokenService
	validator    service.SignupValidator
	logger       *slog.Logger
	now          func() time.Time
	// dummyHash is compared against on unknown emails so login timing does not reveal them.
	dummyHash func() string
}

// AccountServiceParams holds dependencies for AccountService, injected by Fx.
type AccountServiceParams struct {
	fx.In

	TxManager    repository.TransactionManager
	Hasher       service.PasswordHasher
	TokenService service.TokenService
	Validator    service.SignupValidator
	Logger       *slog.Logger
}

// NewAccountService is the constructor for accountService.
func NewAccountService(params AccountServiceParams) usecase.AccountUsecase {
	return &accountService{
		txManager:    params.TxManager,
		hasher:       params.Hasher,
		tokenService: params.TokenService,
		validator:    params.Validator,
		logger:       params.Logger,
		now:          time.Now,
		dummyHash: sync.OnceValue(func() string {
			hash, err := params.Hasher.Hash(dummyPassword)
			if err != nil {
				return ""
			}

			return hash
		}),
	}
}

const dummyPassword = "authgate-dummy-password"

// log returns a request-scoped logger if available, otherwise falls back to the service's logger.
func (srv *accountService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// Register creates an account and issues its first session token.
// The uniqueness check, insert and token issuance share one transaction: a failure at
// any step leaves no account behind, and the store's unique email index settles races.
func (srv *accountService) Register(ctx context.Context, input usecase.RegisterInput) (*usecase.RegisterOutput, error) {
	if err := requireFields(
		field{"username", input.Username},
		field{"email", input.Email},
		field{"password", input.Password},
	); err != nil {
		return nil, err
	}

	result := srv.validator.ValidateSignup(service.SignupFields{
		Username: input.Username,
		Email:    input.Email,
		Password: input.Password,
	})
	if !result.Valid() {
		return nil, domainerrors.NewValidationError(result.Messages)
	}
	fields := result.Fields

	var output *usecase.RegisterOutput
	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		accountRepo := repoFactory.AccountRepo()

		_, err := accountRepo.FindByEmail(ctx, fields.Email)
		if err == nil {
			return domainerrors.ErrAccountAlreadyExists.WrapMessage("email already registered")
		}
		if !errors.Is(err, repository.ErrAccountNotFound) {
			return errors.Wrap(err, "failed to look up account")
		}

		hash, err := srv.hasher.Hash(fields.Password)
		if err != nil {
			return errors.Wrap(err, "failed to hash password")
		}

		now := srv.now()
		account := &entity.Account{
			Username:     fields.Username,
			Email:        fields.Email,
			PasswordHash: hash,
			LastLoginAt:  now,
			CreatedAt:    now,
		}
		if err := accountRepo.Create(ctx, account); err != nil {
			return err
		}

		token, err := srv.tokenService.Issue(account.ID)
		if err != nil {
			return errors.Wrap(err, "failed to issue session token")
		}

		output = &usecase.RegisterOutput{Account: account, Token: token}

		return nil
	})
	if err != nil {
		if errors.Is(err, domainerrors.ErrAccountAlreadyExists) {
			srv.log(ctx).Info("Registration rejected: email in use")

			return nil, err
		}

		return nil, errors.Wrap(err, "failed to execute registration transaction")
	}

	srv.log(ctx).Info("Account registered", slog.String("accountID", output.Account.ID.String()))

	return output, nil
}

// Login verifies credentials, records the login time and issues a new session token.
func (srv *accountService) Login(ctx context.Context, input usecase.LoginInput) (*usecase.LoginOutput, error) {
	if err := requireFields(
		field{"email", input.Email},
		field{"password", input.Password},
	); err != nil {
		return nil, err
	}

	email := strings.ToLower(strings.TrimSpace(input.Email))

	var output *usecase.LoginOutput
	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		accountRepo := repoFactory.AccountRepo()

		account, err := accountRepo.FindByEmail(ctx, email)
		if errors.Is(err, repository.ErrAccountNotFound) {
			srv.hasher.Check(input.Password, srv.dummyHash())

			return domainerrors.ErrInvalidCredentials
		}
		if err != nil {
			return errors.Wrap(err, "failed to look up account")
		}

		if !srv.hasher.Check(input.Password, account.PasswordHash) {
			return domainerrors.ErrInvalidCredentials
		}

		account.LastLoginAt = srv.now()
		if err := accountRepo.TouchLastLogin(ctx, account.ID, account.LastLoginAt); err != nil {
			return errors.Wrap(err, "failed to record login")
		}

		token, err := srv.tokenService.Issue(account.ID)
		if err != nil {
			return errors.Wrap(err, "failed to issue session token")
		}

		output = &usecase.LoginOutput{Account: account, Token: token}

		return nil
	})
	if err != nil {
		if errors.Is(err, domainerrors.ErrInvalidCredentials) {
			srv.log(ctx).Info("Login rejected")

			return nil, err
		}

		return nil, errors.Wrap(err, "failed to execute login transaction")
	}

	srv.log(ctx).Debug("Login succeeded", slog.String("accountID", output.Account.ID.String()))

	return output, nil
}

type field struct {
	name  string
	value string
}

// requireFields reports the first empty field, in argument order.
func requireFields(fields ...field) error {
	for _, f := range fields {
		if f.value == "" {
			return domainerrors.NewMissingFieldError(f.name)
		}
	}

	return nil
}
