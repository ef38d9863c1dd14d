// Package handler contains the HTTP handlers for the application.
package handler

import (
	"log/slog"
	"math/rand/v2"
	"net/http"

	deliverycontext "gatekeeper/internal/delivery/context"
	"gatekeeper/internal/delivery/http/response"
	domainerrors "gatekeeper/internal/domain/errors"
	"gatekeeper/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// AuthHandler serves login, registration and the endpoints for the calling identity.
type AuthHandler struct {
	uc     usecase.AuthUsecase
	logger *slog.Logger
}

// NewAuthHandler is the constructor for AuthHandler, injected by Fx.
func NewAuthHandler(uc usecase.AuthUsecase, logger *slog.Logger) *AuthHandler {
	return &AuthHandler{
		uc:     uc,
		logger: logger,
	}
}

// Register handles POST /api/auth/register.
func (h *AuthHandler) Register(c echo.Context) error {
	var req credentialsRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	output, err := h.uc.Register(c.Request().Context(), &usecase.RegisterInput{
		Username: req.Username,
		Password: req.Password,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.JSON(c, http.StatusCreated, newAuthResponse(output))
}

// Login handles POST /api/auth/login.
func (h *AuthHandler) Login(c echo.Context) error {
	var req credentialsRequest
	if err := c.Bind(&req); err != nil {
		// Malformed login bodies get the same answer as bad credentials.
		return errors.WithStack(domainerrors.ErrAuthenticationFailed)
	}

	output, err := h.uc.Login(c.Request().Context(), &usecase.LoginInput{
		Username: req.Username,
		Password: req.Password,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.JSON(c, http.StatusOK, newAuthResponse(output))
}

// Me handles GET /api/auth/me.
func (h *AuthHandler) Me(c echo.Context) error {
	identity, ok := deliverycontext.GetIdentity(c)
	if !ok {
		return errors.WithStack(domainerrors.ErrMissingCredential)
	}

	credential, err := h.uc.WhoAmI(c.Request().Context(), identity)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.JSON(c, http.StatusOK, newUserResponse(credential))
}

// RandomNumber handles GET /api/auth/random-number, a protected demo endpoint.
func (h *AuthHandler) RandomNumber(c echo.Context) error {
	identity, ok := deliverycontext.GetIdentity(c)
	if !ok {
		return errors.WithStack(domainerrors.ErrMissingCredential)
	}

	return response.JSON(c, http.StatusOK, randomNumberResponse{
		User: newIdentityResponse(identity),
		Num:  rand.Float64() * 100,
	})
}

func newAuthResponse(output *usecase.AuthOutput) authResponse {
	return authResponse{
		Token:    output.Token,
		Username: output.Credential.Username,
		ID:       output.Credential.ID,
	}
}
