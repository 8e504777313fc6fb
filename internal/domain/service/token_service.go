package service

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Claims is the claims schema shared by token issuance and verification.
// The account identifier travels in the registered "sub" claim.
type Claims struct {
	jwt.RegisteredClaims
}

// AccountID parses the subject claim as an account identifier.
func (c *Claims) AccountID() (uuid.UUID, error) {
	return uuid.Parse(c.Subject)
}

// TokenService issues and verifies session tokens with one process-wide secret.
type TokenService interface {
	// Issue mints a signed session token bound to the account.
	Issue(accountID uuid.UUID) (string, error)

	// Verify checks signature, algorithm and expiry, returning the verified claims.
	Verify(token string) (*Claims, error)

	// TTL returns the lifetime of issued tokens.
	TTL() time.Duration
}
