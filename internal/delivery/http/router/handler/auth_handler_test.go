package handler

import (
	"io"
	"log/slog"
	"net/http"
	"strings"
	"testing"

	deliverycontext "gatekeeper/internal/delivery/context"
	"gatekeeper/internal/domain/entity"
	domainerrors "gatekeeper/internal/domain/errors"
	mockUsecase "gatekeeper/internal/mocks/usecase"
	"gatekeeper/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func createTestAuthHandler(t *testing.T) (*AuthHandler, *mockUsecase.MockAuthUsecase) {
	uc := mockUsecase.NewMockAuthUsecase(t)

	return NewAuthHandler(uc, slog.New(slog.NewTextHandler(io.Discard, nil))), uc
}

func TestAuthHandler_Register(t *testing.T) {
	t.Run("created", func(t *testing.T) {
		h, uc := createTestAuthHandler(t)
		id := uuid.New()
		uc.EXPECT().
			Register(mock.Anything, &usecase.RegisterInput{Username: "alice", Password: "pw1"}).
			Return(&usecase.AuthOutput{Token: "signed", Credential: &entity.Credential{ID: id, Username: "alice"}}, nil).
			Once()

		c, rec := newTestContext(http.MethodPost, "/api/auth/register", `{"username":"alice","password":"pw1"}`)
		require.NoError(t, h.Register(c))

		assert.Equal(t, http.StatusCreated, rec.Code)
		body := decodeBody[authResponse](t, rec)
		assert.Equal(t, authResponse{Token: "signed", Username: "alice", ID: id}, body)
		assert.NotContains(t, rec.Body.String(), "pw1")
	})

	t.Run("malformed body never reaches the use case", func(t *testing.T) {
		h, _ := createTestAuthHandler(t)

		c, _ := newTestContext(http.MethodPost, "/api/auth/register", `{"username":`)
		err := h.Register(c)
		assert.True(t, errors.Is(err, domainerrors.ErrInvalidInput))
	})

	t.Run("oversized username is rejected by validation", func(t *testing.T) {
		h, _ := createTestAuthHandler(t)

		c, _ := newTestContext(http.MethodPost, "/api/auth/register",
			`{"username":"`+strings.Repeat("a", 256)+`","password":"pw1"}`)
		err := h.Register(c)
		assert.True(t, errors.Is(err, domainerrors.ErrInvalidInput))
	})

	t.Run("use case errors are passed through", func(t *testing.T) {
		h, uc := createTestAuthHandler(t)
		uc.EXPECT().Register(mock.Anything, mock.Anything).Return(nil, errors.WithStack(domainerrors.ErrRegistrationFailed)).Once()

		c, _ := newTestContext(http.MethodPost, "/api/auth/register", `{"username":"alice","password":"pw1"}`)
		err := h.Register(c)
		assert.True(t, errors.Is(err, domainerrors.ErrRegistrationFailed))
	})
}

func TestAuthHandler_Login(t *testing.T) {
	t.Run("ok", func(t *testing.T) {
		h, uc := createTestAuthHandler(t)
		id := uuid.New()
		uc.EXPECT().
			Login(mock.Anything, &usecase.LoginInput{Username: "alice", Password: "pw1"}).
			Return(&usecase.AuthOutput{Token: "signed", Credential: &entity.Credential{ID: id, Username: "alice"}}, nil).
			Once()

		c, rec := newTestContext(http.MethodPost, "/api/auth/login", `{"username":"alice","password":"pw1"}`)
		require.NoError(t, h.Login(c))

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "signed", decodeBody[authResponse](t, rec).Token)
	})

	t.Run("malformed body looks like bad credentials", func(t *testing.T) {
		h, _ := createTestAuthHandler(t)

		c, _ := newTestContext(http.MethodPost, "/api/auth/login", `not json`)
		err := h.Login(c)
		assert.True(t, errors.Is(err, domainerrors.ErrAuthenticationFailed))
	})
}

func TestAuthHandler_Me(t *testing.T) {
	t.Run("without identity", func(t *testing.T) {
		h, _ := createTestAuthHandler(t)

		c, _ := newTestContext(http.MethodGet, "/api/auth/me", "")
		err := h.Me(c)
		assert.True(t, errors.Is(err, domainerrors.ErrMissingCredential))
	})

	t.Run("reloads the credential", func(t *testing.T) {
		h, uc := createTestAuthHandler(t)
		identity := &entity.Identity{UserID: uuid.New(), Username: "alice"}
		uc.EXPECT().
			WhoAmI(mock.Anything, identity).
			Return(&entity.Credential{ID: identity.UserID, Username: "alice", PasswordHash: "$2a$10$secret"}, nil).
			Once()

		c, rec := newTestContext(http.MethodGet, "/api/auth/me", "")
		require.NoError(t, deliverycontext.AttachIdentity(c, identity))
		require.NoError(t, h.Me(c))

		assert.Equal(t, http.StatusOK, rec.Code)
		body := decodeBody[userResponse](t, rec)
		assert.Equal(t, identity.UserID, body.ID)
		assert.Equal(t, "alice", body.Username)
		assert.NotContains(t, rec.Body.String(), "$2a$")
	})
}

func TestAuthHandler_RandomNumber(t *testing.T) {
	h, _ := createTestAuthHandler(t)
	identity := &entity.Identity{UserID: uuid.New(), Username: "alice"}

	c, rec := newTestContext(http.MethodGet, "/api/auth/random-number", "")
	require.NoError(t, deliverycontext.AttachIdentity(c, identity))
	require.NoError(t, h.RandomNumber(c))

	assert.Equal(t, http.StatusOK, rec.Code)
	body := decodeBody[randomNumberResponse](t, rec)
	assert.Equal(t, "alice", body.User.Username)
	assert.GreaterOrEqual(t, body.Num, 0.0)
	assert.Less(t, body.Num, 100.0)
}
