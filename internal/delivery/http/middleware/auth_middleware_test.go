package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	deliverycontext "gatekeeper/internal/delivery/context"
	"gatekeeper/internal/domain/entity"
	domainerrors "gatekeeper/internal/domain/errors"
	mockusecase "gatekeeper/internal/mocks/usecase"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newAuthContext(authorization string) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if authorization != "" {
		req.Header.Set(echo.HeaderAuthorization, authorization)
	}
	rec := httptest.NewRecorder()

	return e.NewContext(req, rec), rec
}

func TestAuthMiddleware_AttachesIdentity(t *testing.T) {
	guard := mockusecase.NewMockGuardUsecase(t)
	identity := &entity.Identity{UserID: uuid.New(), Username: "alice"}
	guard.EXPECT().
		Authorize(mock.Anything, "Bearer good", entity.CapabilityAuthenticated).
		Return(identity, nil).
		Once()

	c, _ := newAuthContext("Bearer good")
	calls := 0
	handler := NewAuthMiddleware(guard).Authenticate(func(c echo.Context) error {
		calls++

		attached, ok := deliverycontext.GetIdentity(c)
		require.True(t, ok)
		assert.Same(t, identity, attached)

		fromCtx, ok := deliverycontext.GetIdentityFromContext(c.Request().Context())
		require.True(t, ok)
		assert.Same(t, identity, fromCtx)

		return nil
	})

	require.NoError(t, handler(c))
	assert.Equal(t, 1, calls)
}

func TestAuthMiddleware_RejectionShortCircuits(t *testing.T) {
	tests := []struct {
		name       string
		capability entity.Capability
		err        error
	}{
		{"missing credential", entity.CapabilityAuthenticated, domainerrors.ErrMissingCredential},
		{"invalid credential", entity.CapabilityAuthenticated, domainerrors.ErrInvalidCredential},
		{"insufficient privilege", entity.CapabilityAdmin, domainerrors.ErrInsufficientPrivilege},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			guard := mockusecase.NewMockGuardUsecase(t)
			guard.EXPECT().
				Authorize(mock.Anything, mock.Anything, tt.capability).
				Return(nil, tt.err).
				Once()

			c, _ := newAuthContext("Bearer whatever")
			called := false
			handler := NewAuthMiddleware(guard).Require(tt.capability)(func(echo.Context) error {
				called = true

				return nil
			})

			err := handler(c)
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.err)
			assert.False(t, called, "next handler must not run after a rejection")

			_, ok := deliverycontext.GetIdentity(c)
			assert.False(t, ok)
		})
	}
}

func TestAuthMiddleware_StackedGuardsRefuseSecondAttach(t *testing.T) {
	guard := mockusecase.NewMockGuardUsecase(t)
	guard.EXPECT().
		Authorize(mock.Anything, mock.Anything, mock.Anything).
		Return(&entity.Identity{Username: "root", IsAdmin: true}, nil).
		Twice()

	c, _ := newAuthContext("Bearer good")
	m := NewAuthMiddleware(guard)
	called := false
	handler := m.Authenticate(m.Require(entity.CapabilityAdmin)(func(echo.Context) error {
		called = true

		return nil
	}))

	err := handler(c)
	require.Error(t, err)
	assert.ErrorIs(t, err, deliverycontext.ErrIdentityAlreadyAttached)
	assert.False(t, called)
}
