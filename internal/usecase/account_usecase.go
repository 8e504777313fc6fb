// Package usecase contains the application-specific business rules.
// It orchestrates the domain layer to perform tasks.
package usecase

import (
	"context"

	"authgate/internal/domain/entity"
)

// --- Input DTOs ---

// RegisterInput is the raw signup payload. Fields are validated and normalized by Register.
type RegisterInput struct {
	Username string
	Email    string
	Password string
}

// LoginInput defines the data required for an account to log in.
type LoginInput struct {
	Email    string
	Password string
}

// --- Output DTOs ---

// RegisterOutput returns the created account and its first session token.
type RegisterOutput struct {
	Account *entity.Account
	Token   string
}

// LoginOutput returns the authenticated account and a fresh session token.
type LoginOutput struct {
	Account *entity.Account
	Token   string
}

// AccountUsecase defines the credential operations the delivery layer depends on.
type AccountUsecase interface {
	Register(ctx context.Context, input RegisterInput) (*RegisterOutput, error)
	Login(ctx context.Context, input LoginInput) (*LoginOutput, error)
}
