// Package middleware holds the echo middleware specific to the HTTP API.
package middleware

import (
	deliverycontext "gatekeeper/internal/delivery/context"
	"gatekeeper/internal/domain/entity"
	"gatekeeper/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// AuthMiddleware guards routes with the GuardUsecase.
type AuthMiddleware struct {
	guard usecase.GuardUsecase
}

// NewAuthMiddleware is the constructor for AuthMiddleware.
func NewAuthMiddleware(guard usecase.GuardUsecase) *AuthMiddleware {
	return &AuthMiddleware{guard: guard}
}

// Authenticate admits any request carrying a valid bearer token.
func (m *AuthMiddleware) Authenticate(next echo.HandlerFunc) echo.HandlerFunc {
	return m.Require(entity.CapabilityAuthenticated)(next)
}

// Require admits a request only if its token grants the capability. Use one
// Require per route; it attaches the identity exactly once. A rejection is
// returned to the error handler and the next handler never runs.
func (m *AuthMiddleware) Require(capability entity.Capability) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			header := c.Request().Header.Get(echo.HeaderAuthorization)

			identity, err := m.guard.Authorize(c.Request().Context(), header, capability)
			if err != nil {
				return err
			}

			if err := deliverycontext.AttachIdentity(c, identity); err != nil {
				return errors.Wrap(err, "auth middleware applied twice")
			}

			return next(c)
		}
	}
}
