package auth

import (
	"crypto/rand"
	"log/slog"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/pkg/errors"

	"authgate/config"
	"authgate/internal/domain/service"
)

const devSecretBytes = 32

// ErrEmptySecret is returned when no signing secret is configured outside development.
var ErrEmptySecret = errors.New("jwt secret must be provided")

// jwtService is a concrete implementation of the TokenService interface using HS256 JWTs.
type jwtService struct {
	secret []byte        // Process-wide HMAC secret, read-only after construction.
	issuer string        // Value of the "iss" claim.
	ttl    time.Duration // Lifetime of issued tokens; "exp" is always set.
	now    func() time.Time
	parser *jwt.Parser
}

// NewJWTService is the constructor for jwtService.
// In development an empty secret is replaced once by a random one so local runs work;
// sessions then do not survive a restart.
func NewJWTService(cfg *config.Config, logger *slog.Logger) (service.TokenService, error) {
	secret := []byte(cfg.SecretKey.Access)
	if len(secret) == 0 {
		if !cfg.IsDevelopment() {
			return nil, ErrEmptySecret
		}

		secret = make([]byte, devSecretBytes)
		if _, err := rand.Read(secret); err != nil {
			return nil, errors.Wrap(err, "generate development secret")
		}
		logger.Warn("secretKey.access is empty, using an ephemeral development secret")
	}

	return newJWTService(secret, cfg.Env.ServiceName, cfg.Auth.TokenTTL, time.Now), nil
}

func newJWTService(secret []byte, issuer string, ttl time.Duration, now func() time.Time) *jwtService {
	s := &jwtService{
		secret: secret,
		issuer: issuer,
		ttl:    ttl,
		now:    now,
	}
	s.parser = jwt.NewParser(
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithIssuer(issuer),
		jwt.WithTimeFunc(func() time.Time { return s.now() }),
	)

	return s
}

// Issue creates a signed token whose subject is the account ID.
func (s *jwtService) Issue(accountID uuid.UUID) (string, error) {
	issuedAt := s.now()
	claims := service.Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   accountID.String(),
			Issuer:    s.issuer,
			IssuedAt:  jwt.NewNumericDate(issuedAt),
			ExpiresAt: jwt.NewNumericDate(issuedAt.Add(s.ttl)),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", errors.Wrap(err, "sign session token")
	}

	return signed, nil
}

// Verify parses the token, checking the HS256 signature, issuer and mandatory expiry.
func (s *jwtService) Verify(tokenString string) (*service.Claims, error) {
	claims := &service.Claims{}

	token, err := s.parser.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}

		return s.secret, nil
	})
	if err != nil {
		return nil, errors.Wrap(err, "verify session token")
	}
	if !token.Valid {
		return nil, errors.New("session token is not valid")
	}

	if _, err := claims.AccountID(); err != nil {
		return nil, errors.Wrap(err, "session token subject is not an account id")
	}

	return claims, nil
}

// TTL returns the configured token lifetime.
func (s *jwtService) TTL() time.Duration {
	return s.ttl
}
