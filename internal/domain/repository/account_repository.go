// Package repository defines the interfaces for the persistence layer.
// These interfaces act as a contract between the domain/application layers and the infrastructure layer.
package repository

import (
	"context"
	"errors"
	"time"

	"authgate/internal/domain/entity"

	"github.com/google/uuid"
)

// ErrAccountNotFound is returned when no account matches the lookup.
var ErrAccountNotFound = errors.New("account not found")

// AccountRepository defines the persistence operations the authentication core needs.
// Implementations must enforce uniqueness of Email at the storage level.
type AccountRepository interface {
	// FindByEmail retrieves an account by its normalized email.
	FindByEmail(ctx context.Context, email string) (*entity.Account, error)

	// Create inserts the account and fills in its generated ID and CreatedAt.
	// A duplicate email yields domainerrors.ErrAccountAlreadyExists.
	Create(ctx context.Context, account *entity.Account) error

	// TouchLastLogin sets the account's last-login timestamp.
	TouchLastLogin(ctx context.Context, id uuid.UUID, at time.Time) error
}
