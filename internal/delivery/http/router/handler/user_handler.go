package handler

import (
	"net/http"

	"gatekeeper/internal/delivery/http/response"
	domainerrors "gatekeeper/internal/domain/errors"
	"gatekeeper/internal/usecase"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// UserHandler serves the admin-only credential management endpoints.
type UserHandler struct {
	uc usecase.UserUsecase
}

// NewUserHandler is the constructor for UserHandler, injected by Fx.
func NewUserHandler(uc usecase.UserUsecase) *UserHandler {
	return &UserHandler{uc: uc}
}

// List handles GET /api/users?skip=&limit=.
func (h *UserHandler) List(c echo.Context) error {
	var req listUsersRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	credentials, err := h.uc.List(c.Request().Context(), &usecase.ListUsersInput{Skip: req.Skip, Limit: req.Limit})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.JSON(c, http.StatusOK, newUserResponses(credentials))
}

// Create handles POST /api/users.
func (h *UserHandler) Create(c echo.Context) error {
	var req createUserRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	credential, err := h.uc.Create(c.Request().Context(), &usecase.CreateUserInput{
		Username: req.Username,
		Password: req.Password,
		IsAdmin:  req.IsAdmin,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.JSON(c, http.StatusCreated, newUserResponse(credential))
}

// Get handles GET /api/users/:userId.
func (h *UserHandler) Get(c echo.Context) error {
	userID, err := parseUserID(c)
	if err != nil {
		return err
	}

	credential, err := h.uc.Get(c.Request().Context(), userID)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.JSON(c, http.StatusOK, newUserResponse(credential))
}

// Update handles PUT /api/users/:userId.
func (h *UserHandler) Update(c echo.Context) error {
	userID, err := parseUserID(c)
	if err != nil {
		return err
	}

	var req updateUserRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	credential, err := h.uc.Update(c.Request().Context(), userID, &usecase.UpdateUserInput{
		Username: req.Username,
		Password: req.Password,
		IsAdmin:  req.IsAdmin,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.JSON(c, http.StatusOK, newUserResponse(credential))
}

// Delete handles DELETE /api/users/:userId.
func (h *UserHandler) Delete(c echo.Context) error {
	userID, err := parseUserID(c)
	if err != nil {
		return err
	}

	if err := h.uc.Delete(c.Request().Context(), userID); err != nil {
		return errors.WithStack(err)
	}

	return c.NoContent(http.StatusNoContent)
}

// parseUserID treats an unparsable ID like an unknown one.
func parseUserID(c echo.Context) (uuid.UUID, error) {
	userID, err := uuid.Parse(c.Param("userId"))
	if err != nil {
		return uuid.Nil, errors.WithStack(domainerrors.ErrUserNotFound)
	}

	return userID, nil
}
