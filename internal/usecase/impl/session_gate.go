package impl

import (
	"context"
	"log/slog"

	deliverycontext "authgate/internal/delivery/context"
	"authgate/internal/domain/entity"
	"authgate/internal/domain/service"
	"authgate/internal/usecase"

	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// sessionGate implements the SessionGateUsecase interface. It holds no per-request state.
type sessionGate struct {
	policy       *entity.RoutePolicy
	tokenService service.TokenService
	logger       *slog.Logger
}

// SessionGateParams holds dependencies for the session gate, injected by Fx.
type SessionGateParams struct {
	fx.In

	Policy       *entity.RoutePolicy
	TokenService service.TokenService
	Logger       *slog.Logger
}

// NewSessionGate is the constructor for sessionGate.
func NewSessionGate(params SessionGateParams) usecase.SessionGateUsecase {
	return &sessionGate{
		policy:       params.Policy,
		tokenService: params.TokenService,
		logger:       params.Logger,
	}
}

func (g *sessionGate) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, g.logger)
}

// Evaluate runs the per-request decision:
//
//	no token,      public    -> Forward
//	no token,      protected -> Redirect
//	valid token              -> Forward with claims
//	invalid token, public    -> Forward
//	invalid token, protected -> Redirect
func (g *sessionGate) Evaluate(ctx context.Context, path, token string) usecase.GateResult {
	class := g.policy.Classify(path)

	if token == "" {
		return decide(class)
	}

	claims, err := g.verify(token)
	if err != nil {
		g.log(ctx).Debug("Session token rejected",
			slog.String("path", path),
			slog.String("class", class.String()),
			slog.String("reason", err.Error()),
		)

		return decide(class)
	}

	g.log(ctx).Debug("Session token accepted",
		slog.String("path", path),
		slog.String("subject", claims.Subject),
	)

	return usecase.GateResult{Decision: entity.DecisionForward, Claims: claims}
}

// verify converts a panic inside the token service into an ordinary verification failure.
func (g *sessionGate) verify(token string) (claims *service.Claims, err error) {
	defer func() {
		if r := recover(); r != nil {
			claims = nil
			err = errors.Errorf("token verification panicked: %v", r)
		}
	}()

	claims, err = g.tokenService.Verify(token)
	if err == nil && claims == nil {
		err = errors.New("token verification returned no claims")
	}

	return claims, err
}

func decide(class entity.RouteClass) usecase.GateResult {
	if class == entity.RoutePublic {
		return usecase.GateResult{Decision: entity.DecisionForward}
	}

	return usecase.GateResult{Decision: entity.DecisionRedirect}
}
