package impl

import (
	"context"
	"strings"
	"testing"

	"gatekeeper/internal/domain/entity"
	domainerrors "gatekeeper/internal/domain/errors"
	"gatekeeper/internal/domain/repository"
	"gatekeeper/internal/domain/service"
	mockRepo "gatekeeper/internal/mocks/repository"
	mockSvc "gatekeeper/internal/mocks/service"
	"gatekeeper/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// authServiceFixtures holds all test dependencies for auth service tests.
type authServiceFixtures struct {
	service        usecase.AuthUsecase
	credentialRepo *mockRepo.MockCredentialRepository
	hasher         *mockSvc.MockPasswordHasher
	tokenService   *mockSvc.MockTokenService
}

func createTestAuthService(t *testing.T) authServiceFixtures {
	credentialRepo := mockRepo.NewMockCredentialRepository(t)
	hasher := mockSvc.NewMockPasswordHasher(t)
	tokenService := mockSvc.NewMockTokenService(t)

	svc := NewAuthService(AuthServiceParams{
		CredentialRepo: credentialRepo,
		Hasher:         hasher,
		TokenService:   tokenService,
		Logger:         newDiscardLogger(),
	})

	return authServiceFixtures{
		service:        svc,
		credentialRepo: credentialRepo,
		hasher:         hasher,
		tokenService:   tokenService,
	}
}

func storedCredential(username string, isAdmin bool) *entity.Credential {
	return &entity.Credential{
		ID:           uuid.New(),
		Username:     username,
		PasswordHash: "$2a$10$stored",
		IsAdmin:      isAdmin,
	}
}

func TestAuthService_Register_Success(t *testing.T) {
	fx := createTestAuthService(t)
	ctx := context.Background()
	newID := uuid.New()

	fx.hasher.EXPECT().Hash(ctx, "s3cret").Return("$2a$10$hashed", nil).Once()
	fx.credentialRepo.EXPECT().
		Create(ctx, mock.MatchedBy(func(c *entity.Credential) bool {
			return c.Username == "alice" && c.PasswordHash == "$2a$10$hashed" && !c.IsAdmin
		})).
		Run(func(_ context.Context, c *entity.Credential) { c.ID = newID }).
		Return(nil).
		Once()
	fx.tokenService.EXPECT().
		Issue(&entity.Identity{UserID: newID, Username: "alice"}).
		Return("signed-token", nil).
		Once()

	out, err := fx.service.Register(ctx, &usecase.RegisterInput{Username: "alice", Password: "s3cret"})
	require.NoError(t, err)
	assert.Equal(t, "signed-token", out.Token)
	assert.Equal(t, "alice", out.Credential.Username)
	assert.Equal(t, newID, out.Credential.ID)
	assert.NotEqual(t, "s3cret", out.Credential.PasswordHash)
}

func TestAuthService_Register_TrimsUsername(t *testing.T) {
	fx := createTestAuthService(t)
	ctx := context.Background()

	fx.hasher.EXPECT().Hash(ctx, "s3cret").Return("$2a$10$hashed", nil).Once()
	fx.credentialRepo.EXPECT().
		Create(ctx, mock.MatchedBy(func(c *entity.Credential) bool { return c.Username == "alice" })).
		Return(nil).
		Once()
	fx.tokenService.EXPECT().Issue(mock.Anything).Return("signed-token", nil).Once()

	out, err := fx.service.Register(ctx, &usecase.RegisterInput{Username: "  alice\t", Password: "s3cret"})
	require.NoError(t, err)
	assert.Equal(t, "alice", out.Credential.Username)
}

func TestAuthService_Login_TrimsUsername(t *testing.T) {
	fx := createTestAuthService(t)
	ctx := context.Background()
	stored := storedCredential("alice", false)

	fx.credentialRepo.EXPECT().FindByUsername(ctx, "alice").Return(stored, nil).Once()
	fx.hasher.EXPECT().Check(ctx, "s3cret", stored.PasswordHash).Return(true, nil).Once()
	fx.tokenService.EXPECT().Issue(stored.Identity()).Return("signed-token", nil).Once()

	out, err := fx.service.Login(ctx, &usecase.LoginInput{Username: " alice ", Password: "s3cret"})
	require.NoError(t, err)
	assert.Equal(t, "signed-token", out.Token)
}

func TestAuthService_Register_InvalidInputTouchesNothing(t *testing.T) {
	tests := []struct {
		name  string
		input *usecase.RegisterInput
	}{
		{"nil input", nil},
		{"missing username", &usecase.RegisterInput{Password: "x"}},
		{"blank username", &usecase.RegisterInput{Username: "   ", Password: "x"}},
		{"missing password", &usecase.RegisterInput{Username: "alice"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fx := createTestAuthService(t)

			_, err := fx.service.Register(context.Background(), tt.input)
			appErr := requireAppError(t, err, domainerrors.ErrInvalidInput)
			assert.Equal(t, domainerrors.StatusBadRequest, appErr.Status())
		})
	}
}

func TestAuthService_Register_DuplicateUsername(t *testing.T) {
	fx := createTestAuthService(t)
	ctx := context.Background()

	fx.hasher.EXPECT().Hash(ctx, "s3cret").Return("$2a$10$hashed", nil).Once()
	fx.credentialRepo.EXPECT().
		Create(ctx, mock.Anything).
		Return(errors.Wrap(repository.ErrDuplicateIdentity, "username already exists")).
		Once()

	_, err := fx.service.Register(ctx, &usecase.RegisterInput{Username: "alice", Password: "s3cret"})
	appErr := requireAppError(t, err, domainerrors.ErrRegistrationFailed)
	assert.Equal(t, domainerrors.StatusBadRequest, appErr.Status())
}

func TestAuthService_Register_PasswordTooLong(t *testing.T) {
	fx := createTestAuthService(t)
	ctx := context.Background()
	long := strings.Repeat("p", 73)

	fx.hasher.EXPECT().Hash(ctx, long).Return("", errors.WithStack(service.ErrPasswordTooLong)).Once()

	_, err := fx.service.Register(ctx, &usecase.RegisterInput{Username: "alice", Password: long})
	appErr := requireAppError(t, err, domainerrors.ErrInvalidInput)
	assert.Equal(t, "Password is too long", appErr.Message())
}

func TestAuthService_Register_InternalFailures(t *testing.T) {
	t.Run("hasher failure", func(t *testing.T) {
		fx := createTestAuthService(t)
		ctx := context.Background()

		fx.hasher.EXPECT().Hash(ctx, "s3cret").Return("", errors.New("entropy source unavailable")).Once()

		_, err := fx.service.Register(ctx, &usecase.RegisterInput{Username: "alice", Password: "s3cret"})
		appErr := requireAppError(t, err, domainerrors.ErrInternalError)
		assert.Equal(t, "Internal server error", appErr.Message())
		assert.Contains(t, appErr.Details(), "entropy source unavailable")
	})

	t.Run("store failure", func(t *testing.T) {
		fx := createTestAuthService(t)
		ctx := context.Background()

		fx.hasher.EXPECT().Hash(ctx, "s3cret").Return("$2a$10$hashed", nil).Once()
		fx.credentialRepo.EXPECT().Create(ctx, mock.Anything).Return(errors.New("connection refused")).Once()

		_, err := fx.service.Register(ctx, &usecase.RegisterInput{Username: "alice", Password: "s3cret"})
		requireAppError(t, err, domainerrors.ErrInternalError)
	})

	t.Run("signing failure", func(t *testing.T) {
		fx := createTestAuthService(t)
		ctx := context.Background()

		fx.hasher.EXPECT().Hash(ctx, "s3cret").Return("$2a$10$hashed", nil).Once()
		fx.credentialRepo.EXPECT().Create(ctx, mock.Anything).Return(nil).Once()
		fx.tokenService.EXPECT().Issue(mock.Anything).Return("", errors.New("sign failed")).Once()

		_, err := fx.service.Register(ctx, &usecase.RegisterInput{Username: "alice", Password: "s3cret"})
		requireAppError(t, err, domainerrors.ErrInternalError)
	})
}

func TestAuthService_Login_Success(t *testing.T) {
	fx := createTestAuthService(t)
	ctx := context.Background()
	stored := storedCredential("alice", true)

	fx.credentialRepo.EXPECT().FindByUsername(ctx, "alice").Return(stored, nil).Once()
	fx.hasher.EXPECT().Check(ctx, "s3cret", stored.PasswordHash).Return(true, nil).Once()
	fx.tokenService.EXPECT().Issue(stored.Identity()).Return("signed-token", nil).Once()

	out, err := fx.service.Login(ctx, &usecase.LoginInput{Username: "alice", Password: "s3cret"})
	require.NoError(t, err)
	assert.Equal(t, "signed-token", out.Token)
	assert.Equal(t, stored, out.Credential)
}

func TestAuthService_Login_WrongPassword(t *testing.T) {
	fx := createTestAuthService(t)
	ctx := context.Background()
	stored := storedCredential("alice", false)

	fx.credentialRepo.EXPECT().FindByUsername(ctx, "alice").Return(stored, nil).Once()
	fx.hasher.EXPECT().Check(ctx, "wrong", stored.PasswordHash).Return(false, nil).Once()

	_, err := fx.service.Login(ctx, &usecase.LoginInput{Username: "alice", Password: "wrong"})
	appErr := requireAppError(t, err, domainerrors.ErrAuthenticationFailed)
	assert.Equal(t, domainerrors.StatusUnauthorized, appErr.Status())
	assert.Equal(t, "Authentication error", appErr.Message())
}

func TestAuthService_Login_UnknownUserLooksLikeWrongPassword(t *testing.T) {
	fx := createTestAuthService(t)
	ctx := context.Background()

	fx.credentialRepo.EXPECT().FindByUsername(ctx, "ghost").Return(nil, repository.ErrCredentialNotFound).Twice()
	// The dummy hash is computed once and reused.
	fx.hasher.EXPECT().Hash(ctx, dummyPassword).Return("$2a$10$dummy", nil).Once()
	fx.hasher.EXPECT().Check(ctx, "whatever", "$2a$10$dummy").Return(false, nil).Twice()

	_, first := fx.service.Login(ctx, &usecase.LoginInput{Username: "ghost", Password: "whatever"})
	_, second := fx.service.Login(ctx, &usecase.LoginInput{Username: "ghost", Password: "whatever"})

	firstErr := requireAppError(t, first, domainerrors.ErrAuthenticationFailed)
	secondErr := requireAppError(t, second, domainerrors.ErrAuthenticationFailed)
	assert.Equal(t, firstErr.Message(), secondErr.Message())
	assert.Equal(t, domainerrors.ErrAuthenticationFailed.Message(), firstErr.Message())
}

func TestAuthService_Login_MissingFields(t *testing.T) {
	fx := createTestAuthService(t)

	_, err := fx.service.Login(context.Background(), &usecase.LoginInput{Username: "alice"})
	requireAppError(t, err, domainerrors.ErrAuthenticationFailed)

	_, err = fx.service.Login(context.Background(), nil)
	requireAppError(t, err, domainerrors.ErrAuthenticationFailed)
}

func TestAuthService_Login_InternalFailures(t *testing.T) {
	t.Run("store unavailable", func(t *testing.T) {
		fx := createTestAuthService(t)
		ctx := context.Background()

		fx.credentialRepo.EXPECT().FindByUsername(ctx, "alice").Return(nil, errors.New("connection refused")).Once()

		_, err := fx.service.Login(ctx, &usecase.LoginInput{Username: "alice", Password: "s3cret"})
		requireAppError(t, err, domainerrors.ErrInternalError)
	})

	t.Run("hasher failure", func(t *testing.T) {
		fx := createTestAuthService(t)
		ctx := context.Background()
		stored := storedCredential("alice", false)

		fx.credentialRepo.EXPECT().FindByUsername(ctx, "alice").Return(stored, nil).Once()
		fx.hasher.EXPECT().Check(ctx, "s3cret", stored.PasswordHash).Return(false, context.Canceled).Once()

		_, err := fx.service.Login(ctx, &usecase.LoginInput{Username: "alice", Password: "s3cret"})
		requireAppError(t, err, domainerrors.ErrInternalError)
	})

	t.Run("signing failure", func(t *testing.T) {
		fx := createTestAuthService(t)
		ctx := context.Background()
		stored := storedCredential("alice", false)

		fx.credentialRepo.EXPECT().FindByUsername(ctx, "alice").Return(stored, nil).Once()
		fx.hasher.EXPECT().Check(ctx, "s3cret", stored.PasswordHash).Return(true, nil).Once()
		fx.tokenService.EXPECT().Issue(mock.Anything).Return("", errors.New("sign failed")).Once()

		_, err := fx.service.Login(ctx, &usecase.LoginInput{Username: "alice", Password: "s3cret"})
		requireAppError(t, err, domainerrors.ErrInternalError)
	})
}

func TestAuthService_WhoAmI(t *testing.T) {
	t.Run("returns stored credential", func(t *testing.T) {
		fx := createTestAuthService(t)
		ctx := context.Background()
		stored := storedCredential("alice", false)

		fx.credentialRepo.EXPECT().FindByID(ctx, stored.ID).Return(stored, nil).Once()

		got, err := fx.service.WhoAmI(ctx, stored.Identity())
		require.NoError(t, err)
		assert.Equal(t, stored, got)
	})

	t.Run("deleted credential is treated as an invalid token", func(t *testing.T) {
		fx := createTestAuthService(t)
		ctx := context.Background()
		identity := &entity.Identity{UserID: uuid.New(), Username: "gone"}

		fx.credentialRepo.EXPECT().FindByID(ctx, identity.UserID).Return(nil, repository.ErrCredentialNotFound).Once()

		_, err := fx.service.WhoAmI(ctx, identity)
		requireAppError(t, err, domainerrors.ErrInvalidCredential)
	})

	t.Run("no identity", func(t *testing.T) {
		fx := createTestAuthService(t)

		_, err := fx.service.WhoAmI(context.Background(), nil)
		requireAppError(t, err, domainerrors.ErrMissingCredential)
	})
}
