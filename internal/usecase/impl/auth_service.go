// Package impl contains the implementation of the application's business logic.
package impl

import (
	"context"
	"log/slog"
	"strings"
	"sync"

	deliverycontext "gatekeeper/internal/delivery/context"
	"gatekeeper/internal/domain/entity"
	domainerrors "gatekeeper/internal/domain/errors"
	"gatekeeper/internal/domain/repository"
	"gatekeeper/internal/domain/service"
	"gatekeeper/internal/usecase"

	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// dummyPassword is hashed once and checked against when a login names an
// unknown user, so both failure paths spend the same hashing time.
const dummyPassword = "gatekeeper-timing-equalisation"

// authService implements the AuthUsecase interface.
type authService struct {
	credentialRepo repository.CredentialRepository
	hasher         service.PasswordHasher
	tokenService   service.TokenService
	logger         *slog.Logger

	dummyMu   sync.Mutex
	dummyHash string
}

// AuthServiceParams holds dependencies for AuthService, injected by Fx.
type AuthServiceParams struct {
	fx.In

	CredentialRepo repository.CredentialRepository
	Hasher         service.PasswordHasher
	TokenService   service.TokenService
	Logger         *slog.Logger
}

// NewAuthService is the constructor for authService.
func NewAuthService(params AuthServiceParams) usecase.AuthUsecase {
	return &authService{
		credentialRepo: params.CredentialRepo,
		hasher:         params.Hasher,
		tokenService:   params.TokenService,
		logger:         params.Logger,
	}
}

// log returns a request-scoped logger if available, otherwise falls back to the service's logger.
func (srv *authService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// Register validates input before touching the store, hashes the password and
// creates exactly one credential.
func (srv *authService) Register(ctx context.Context, input *usecase.RegisterInput) (*usecase.AuthOutput, error) {
	if input == nil {
		return nil, errors.WithStack(domainerrors.ErrInvalidInput)
	}
	username := normalizeUsername(input.Username)
	if username == "" || input.Password == "" {
		return nil, errors.WithStack(domainerrors.ErrInvalidInput)
	}

	hash, err := hashPassword(ctx, srv.hasher, input.Password)
	if err != nil {
		return nil, err
	}

	credential := &entity.Credential{
		Username:     username,
		PasswordHash: hash,
	}
	if err := srv.credentialRepo.Create(ctx, credential); err != nil {
		if errors.Is(err, repository.ErrDuplicateIdentity) {
			srv.log(ctx).Info("Registration rejected: username taken", slog.String("username", username))

			return nil, errors.WithStack(domainerrors.ErrRegistrationFailed)
		}

		srv.log(ctx).Error("Failed to create credential", slog.String("username", username), slog.Any("error", err))

		return nil, internalError(err, "failed to create credential")
	}

	token, err := srv.issueToken(ctx, credential)
	if err != nil {
		return nil, err
	}

	srv.log(ctx).Info("Credential registered", slog.String("username", credential.Username), slog.Any("userID", credential.ID))

	return &usecase.AuthOutput{Token: token, Credential: credential}, nil
}

// Login never writes. Unknown users and wrong passwords produce the same error.
func (srv *authService) Login(ctx context.Context, input *usecase.LoginInput) (*usecase.AuthOutput, error) {
	if input == nil {
		return nil, errors.WithStack(domainerrors.ErrAuthenticationFailed)
	}
	username := normalizeUsername(input.Username)
	if username == "" || input.Password == "" {
		return nil, errors.WithStack(domainerrors.ErrAuthenticationFailed)
	}

	credential, err := srv.credentialRepo.FindByUsername(ctx, username)
	if err != nil {
		if !errors.Is(err, repository.ErrCredentialNotFound) {
			srv.log(ctx).Error("Failed to look up credential", slog.Any("error", err))

			return nil, internalError(err, "failed to look up credential")
		}

		srv.equaliseTiming(ctx, input.Password)
		srv.log(ctx).Debug("Login rejected", slog.String("username", username))

		return nil, errors.WithStack(domainerrors.ErrAuthenticationFailed)
	}

	ok, err := srv.hasher.Check(ctx, input.Password, credential.PasswordHash)
	if err != nil {
		srv.log(ctx).Error("Failed to verify password", slog.Any("error", err))

		return nil, internalError(err, "failed to verify password")
	}
	if !ok {
		srv.log(ctx).Debug("Login rejected", slog.String("username", username))

		return nil, errors.WithStack(domainerrors.ErrAuthenticationFailed)
	}

	token, err := srv.issueToken(ctx, credential)
	if err != nil {
		return nil, err
	}

	srv.log(ctx).Info("Login succeeded", slog.String("username", credential.Username))

	return &usecase.AuthOutput{Token: token, Credential: credential}, nil
}

// WhoAmI reloads the credential behind a verified identity.
func (srv *authService) WhoAmI(ctx context.Context, identity *entity.Identity) (*entity.Credential, error) {
	if identity == nil {
		return nil, errors.WithStack(domainerrors.ErrMissingCredential)
	}

	credential, err := srv.credentialRepo.FindByID(ctx, identity.UserID)
	if err != nil {
		if errors.Is(err, repository.ErrCredentialNotFound) {
			// The token outlived its credential.
			return nil, errors.WithStack(domainerrors.ErrInvalidCredential)
		}

		return nil, internalError(err, "failed to load credential")
	}

	return credential, nil
}

func (srv *authService) issueToken(ctx context.Context, credential *entity.Credential) (string, error) {
	token, err := srv.tokenService.Issue(credential.Identity())
	if err != nil {
		srv.log(ctx).Error("Failed to issue token", slog.Any("error", err))

		return "", internalError(err, "failed to issue token")
	}

	return token, nil
}

func (srv *authService) equaliseTiming(ctx context.Context, password string) {
	if hash := srv.timingHash(ctx); hash != "" {
		_, _ = srv.hasher.Check(ctx, password, hash)
	}
}

// timingHash computes the dummy hash on first use and retries after a failure.
func (srv *authService) timingHash(ctx context.Context) string {
	srv.dummyMu.Lock()
	defer srv.dummyMu.Unlock()

	if srv.dummyHash == "" {
		hash, err := srv.hasher.Hash(ctx, dummyPassword)
		if err != nil {
			srv.log(ctx).Warn("Failed to prepare timing equalisation hash", slog.Any("error", err))

			return ""
		}
		srv.dummyHash = hash
	}

	return srv.dummyHash
}

// normalizeUsername strips surrounding whitespace so " alice" and "alice" name the same account.
func normalizeUsername(username string) string {
	return strings.TrimSpace(username)
}

// hashPassword maps hasher failures onto the domain error taxonomy.
func hashPassword(ctx context.Context, hasher service.PasswordHasher, password string) (string, error) {
	hash, err := hasher.Hash(ctx, password)
	if err != nil {
		if errors.Is(err, service.ErrPasswordTooLong) {
			return "", errors.WithStack(domainerrors.ErrPasswordTooLong)
		}

		return "", internalError(err, "failed to hash password")
	}

	return hash, nil
}

// internalError keeps the cause for logging while the caller only ever sees
// the generic internal error message.
func internalError(err error, message string) error {
	return errors.Wrap(domainerrors.ErrInternalError.WithDetails(err.Error()), message)
}
