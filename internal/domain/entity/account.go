// Package entity contains the core business objects of the project,
// each representing a unique, identifiable concept within the domain.
package entity

import (
	"time"

	"github.com/google/uuid"
)

// Account is a registered credential holder. Email is unique across all accounts.
type Account struct {
	ID           uuid.UUID // Assigned by the store on insert.
	Username     string    // Normalized display name.
	Email        string    // Normalized (trimmed, lower-cased) login identifier.
	PasswordHash string    // bcrypt hash; the plaintext password is never kept.
	LastLoginAt  time.Time // Set at registration and on every successful login.
	CreatedAt    time.Time
}
