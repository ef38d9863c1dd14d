package handler

import (
	"net/http"
	"testing"
	"time"

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

func createTestUserHandler(t *testing.T) (*UserHandler, *mockUsecase.MockUserUsecase) {
	uc := mockUsecase.NewMockUserUsecase(t)

	return NewUserHandler(uc), uc
}

func TestUserHandler_List(t *testing.T) {
	t.Run("passes paging", func(t *testing.T) {
		h, uc := createTestUserHandler(t)
		listed := []*entity.Credential{
			{ID: uuid.New(), Username: "bob", CreatedAt: time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)},
			{ID: uuid.New(), Username: "alice", IsAdmin: true, CreatedAt: time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)},
		}
		uc.EXPECT().List(mock.Anything, &usecase.ListUsersInput{Skip: 5, Limit: 2}).Return(listed, nil).Once()

		c, rec := newTestContext(http.MethodGet, "/api/users?skip=5&limit=2", "")
		require.NoError(t, h.List(c))

		assert.Equal(t, http.StatusOK, rec.Code)
		body := decodeBody[[]userResponse](t, rec)
		require.Len(t, body, 2)
		assert.Equal(t, "bob", body[0].Username)
		assert.True(t, body[1].IsAdmin)
	})

	t.Run("out of range limit", func(t *testing.T) {
		h, _ := createTestUserHandler(t)

		c, _ := newTestContext(http.MethodGet, "/api/users?limit=501", "")
		err := h.List(c)
		assert.True(t, errors.Is(err, domainerrors.ErrInvalidInput))
	})
}

func TestUserHandler_Get(t *testing.T) {
	t.Run("unparsable id is not found", func(t *testing.T) {
		h, _ := createTestUserHandler(t)

		c, _ := newTestContext(http.MethodGet, "/api/users/nope", "")
		c.SetParamNames("userId")
		c.SetParamValues("nope")

		err := h.Get(c)
		assert.True(t, errors.Is(err, domainerrors.ErrUserNotFound))
	})

	t.Run("found", func(t *testing.T) {
		h, uc := createTestUserHandler(t)
		id := uuid.New()
		uc.EXPECT().Get(mock.Anything, id).Return(&entity.Credential{ID: id, Username: "bob"}, nil).Once()

		c, rec := newTestContext(http.MethodGet, "/api/users/"+id.String(), "")
		c.SetParamNames("userId")
		c.SetParamValues(id.String())

		require.NoError(t, h.Get(c))
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, id, decodeBody[userResponse](t, rec).ID)
	})
}

func TestUserHandler_Create(t *testing.T) {
	h, uc := createTestUserHandler(t)
	id := uuid.New()
	uc.EXPECT().
		Create(mock.Anything, &usecase.CreateUserInput{Username: "carol", Password: "pw", IsAdmin: true}).
		Return(&entity.Credential{ID: id, Username: "carol", IsAdmin: true}, nil).
		Once()

	c, rec := newTestContext(http.MethodPost, "/api/users", `{"username":"carol","password":"pw","isAdmin":true}`)
	require.NoError(t, h.Create(c))

	assert.Equal(t, http.StatusCreated, rec.Code)
	body := decodeBody[userResponse](t, rec)
	assert.Equal(t, id, body.ID)
	assert.True(t, body.IsAdmin)
}

func TestUserHandler_Update(t *testing.T) {
	h, uc := createTestUserHandler(t)
	id := uuid.New()
	uc.EXPECT().
		Update(mock.Anything, id, mock.MatchedBy(func(in *usecase.UpdateUserInput) bool {
			return in.Username == nil && in.IsAdmin == nil && in.Password != nil && *in.Password == "n3w"
		})).
		Return(&entity.Credential{ID: id, Username: "bob"}, nil).
		Once()

	c, rec := newTestContext(http.MethodPut, "/api/users/"+id.String(), `{"password":"n3w"}`)
	c.SetParamNames("userId")
	c.SetParamValues(id.String())

	require.NoError(t, h.Update(c))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "bob", decodeBody[userResponse](t, rec).Username)
}

func TestUserHandler_Delete(t *testing.T) {
	t.Run("no content", func(t *testing.T) {
		h, uc := createTestUserHandler(t)
		id := uuid.New()
		uc.EXPECT().Delete(mock.Anything, id).Return(nil).Once()

		c, rec := newTestContext(http.MethodDelete, "/api/users/"+id.String(), "")
		c.SetParamNames("userId")
		c.SetParamValues(id.String())

		require.NoError(t, h.Delete(c))
		assert.Equal(t, http.StatusNoContent, rec.Code)
	})

	t.Run("missing user", func(t *testing.T) {
		h, uc := createTestUserHandler(t)
		id := uuid.New()
		uc.EXPECT().Delete(mock.Anything, id).Return(errors.WithStack(domainerrors.ErrUserNotFound)).Once()

		c, _ := newTestContext(http.MethodDelete, "/api/users/"+id.String(), "")
		c.SetParamNames("userId")
		c.SetParamValues(id.String())

		err := h.Delete(c)
		assert.True(t, errors.Is(err, domainerrors.ErrUserNotFound))
	})
}
