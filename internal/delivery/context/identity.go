package context

import (
	"gatekeeper/internal/domain/entity"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// KeyIdentity is the key for storing the verified identity of a request.
const KeyIdentity ContextKey = "identity"

// ErrIdentityAlreadyAttached is returned when a request is authorized twice.
var ErrIdentityAlreadyAttached = errors.New("identity already attached to request")

// AttachIdentity stores the verified identity in both the echo context and the
// request context. It refuses to overwrite an identity that is already present.
func AttachIdentity(c echo.Context, identity *entity.Identity) error {
	if _, ok := GetIdentity(c); ok {
		return errors.WithStack(ErrIdentityAlreadyAttached)
	}

	c.Set(string(KeyIdentity), identity)
	c.SetRequest(c.Request().WithContext(WithIdentity(c.Request().Context(), identity)))

	return nil
}

// GetIdentity returns the identity attached by the auth middleware.
func GetIdentity(c echo.Context) (*entity.Identity, bool) {
	identity, ok := c.Get(string(KeyIdentity)).(*entity.Identity)

	return identity, ok && identity != nil
}
