package impl

import (
	"context"
	"log/slog"

	deliverycontext "gatekeeper/internal/delivery/context"
	"gatekeeper/internal/domain/entity"
	domainerrors "gatekeeper/internal/domain/errors"
	"gatekeeper/internal/domain/repository"
	"gatekeeper/internal/domain/service"
	"gatekeeper/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// userService implements the administrative UserUsecase.
type userService struct {
	credentialRepo repository.CredentialRepository
	hasher         service.PasswordHasher
	logger         *slog.Logger
}

// UserServiceParams holds dependencies for UserService, injected by Fx.
type UserServiceParams struct {
	fx.In

	CredentialRepo repository.CredentialRepository
	Hasher         service.PasswordHasher
	Logger         *slog.Logger
}

// NewUserService is the constructor for userService.
func NewUserService(params UserServiceParams) usecase.UserUsecase {
	return &userService{
		credentialRepo: params.CredentialRepo,
		hasher:         params.Hasher,
		logger:         params.Logger,
	}
}

func (srv *userService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

func (srv *userService) List(ctx context.Context, input *usecase.ListUsersInput) ([]*entity.Credential, error) {
	skip, limit := 0, repository.DefaultListLimit
	if input != nil {
		if input.Skip > 0 {
			skip = input.Skip
		}
		if input.Limit > 0 {
			limit = input.Limit
		}
	}

	credentials, err := srv.credentialRepo.List(ctx, skip, limit)
	if err != nil {
		return nil, internalError(err, "failed to list credentials")
	}

	return credentials, nil
}

func (srv *userService) Get(ctx context.Context, userID uuid.UUID) (*entity.Credential, error) {
	credential, err := srv.credentialRepo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrCredentialNotFound) {
			return nil, errors.WithStack(domainerrors.ErrUserNotFound)
		}

		return nil, internalError(err, "failed to load credential")
	}

	return credential, nil
}

func (srv *userService) Create(ctx context.Context, input *usecase.CreateUserInput) (*entity.Credential, error) {
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
		IsAdmin:      input.IsAdmin,
	}
	if err := srv.credentialRepo.Create(ctx, credential); err != nil {
		if errors.Is(err, repository.ErrDuplicateIdentity) {
			return nil, errors.WithStack(domainerrors.ErrRegistrationFailed)
		}

		return nil, internalError(err, "failed to create credential")
	}

	srv.log(ctx).Info("Credential created by administrator",
		slog.String("username", credential.Username),
		slog.Bool("isAdmin", credential.IsAdmin),
	)

	return credential, nil
}

// Update applies the provided fields. A new password replaces the stored hash as a whole.
func (srv *userService) Update(ctx context.Context, userID uuid.UUID, input *usecase.UpdateUserInput) (*entity.Credential, error) {
	if input == nil {
		return nil, errors.WithStack(domainerrors.ErrInvalidInput)
	}
	var username string
	if input.Username != nil {
		username = normalizeUsername(*input.Username)
		if username == "" {
			return nil, errors.WithStack(domainerrors.ErrInvalidInput)
		}
	}
	if input.Password != nil && *input.Password == "" {
		return nil, errors.WithStack(domainerrors.ErrInvalidInput)
	}

	credential, err := srv.Get(ctx, userID)
	if err != nil {
		return nil, err
	}

	if input.Username != nil {
		credential.Username = username
	}
	if input.IsAdmin != nil {
		credential.IsAdmin = *input.IsAdmin
	}
	if input.Password != nil {
		hash, err := hashPassword(ctx, srv.hasher, *input.Password)
		if err != nil {
			return nil, err
		}
		credential.PasswordHash = hash
	}

	if err := srv.credentialRepo.Update(ctx, credential); err != nil {
		switch {
		case errors.Is(err, repository.ErrDuplicateIdentity):
			return nil, errors.WithStack(domainerrors.ErrRegistrationFailed)
		case errors.Is(err, repository.ErrCredentialNotFound):
			return nil, errors.WithStack(domainerrors.ErrUserNotFound)
		default:
			return nil, internalError(err, "failed to update credential")
		}
	}

	srv.log(ctx).Info("Credential updated", slog.Any("userID", credential.ID), slog.Bool("passwordChanged", input.Password != nil))

	return credential, nil
}

func (srv *userService) Delete(ctx context.Context, userID uuid.UUID) error {
	if err := srv.credentialRepo.Delete(ctx, userID); err != nil {
		if errors.Is(err, repository.ErrCredentialNotFound) {
			return errors.WithStack(domainerrors.ErrUserNotFound)
		}

		return internalError(err, "failed to delete credential")
	}

	srv.log(ctx).Info("Credential deleted", slog.Any("userID", userID))

	return nil
}
