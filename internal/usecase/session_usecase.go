package usecase

import (
	"context"

	"authgate/internal/domain/entity"
	"authgate/internal/domain/service"
)

// GateResult is the outcome of evaluating one request. Claims is set only for
// a Forward on a protected path.
type GateResult struct {
	Decision entity.Decision
	Claims   *service.Claims
}

// SessionGateUsecase decides whether a request may proceed.
type SessionGateUsecase interface {
	// Evaluate never fails: every verification problem becomes a Redirect.
	// token is the raw cookie value, empty when the cookie is absent.
	Evaluate(ctx context.Context, path, token string) GateResult
}
