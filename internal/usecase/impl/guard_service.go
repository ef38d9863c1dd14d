package impl

import (
	"context"
	"log/slog"
	"strings"

	deliverycontext "gatekeeper/internal/delivery/context"
	"gatekeeper/internal/domain/entity"
	domainerrors "gatekeeper/internal/domain/errors"
	"gatekeeper/internal/domain/service"
	"gatekeeper/internal/usecase"

	"github.com/pkg/errors"
)

const bearerScheme = "Bearer"

// guardService walks a request through
// Unauthenticated -> TokenPresent -> Verified -> Authorized, stopping at the first rejection.
type guardService struct {
	tokenService service.TokenService
	logger       *slog.Logger
}

// NewGuardService is the constructor for guardService.
func NewGuardService(tokenService service.TokenService, logger *slog.Logger) usecase.GuardUsecase {
	return &guardService{
		tokenService: tokenService,
		logger:       logger,
	}
}

func (srv *guardService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

func (srv *guardService) Authorize(ctx context.Context, authorizationHeader string, required entity.Capability) (*entity.Identity, error) {
	if !required.IsValid() {
		return nil, errors.Wrapf(domainerrors.ErrInternalError, "unknown capability %q", required)
	}

	token, ok := extractBearerToken(authorizationHeader)
	if !ok {
		return nil, errors.WithStack(domainerrors.ErrMissingCredential)
	}

	claims, err := srv.tokenService.Verify(token)
	if err != nil {
		// The reason stays in the logs; callers get one uniform rejection.
		srv.log(ctx).Debug("Token rejected", slog.String("reason", tokenFailureReason(err)))

		return nil, errors.WithStack(domainerrors.ErrInvalidCredential)
	}

	identity := claims.Identity()
	if !identity.Has(required) {
		srv.log(ctx).Info("Capability denied",
			slog.String("username", identity.Username),
			slog.String("capability", required.String()),
		)

		return nil, errors.WithStack(domainerrors.ErrInsufficientPrivilege)
	}

	return identity, nil
}

// extractBearerToken accepts exactly "Bearer <token>". The scheme is matched
// case-insensitively.
func extractBearerToken(header string) (string, bool) {
	scheme, token, found := strings.Cut(strings.TrimSpace(header), " ")
	if !found || !strings.EqualFold(scheme, bearerScheme) {
		return "", false
	}

	token = strings.TrimSpace(token)
	if token == "" || strings.ContainsAny(token, " \t") {
		return "", false
	}

	return token, true
}

func tokenFailureReason(err error) string {
	switch {
	case errors.Is(err, service.ErrTokenExpired):
		return "expired"
	case errors.Is(err, service.ErrTokenBadSignature):
		return "bad_signature"
	default:
		return "malformed"
	}
}
