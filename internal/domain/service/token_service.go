package service

import (
	"errors"
	"time"

	"gatekeeper/internal/domain/entity"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Token verification failures. Signature problems are always reported as
// ErrTokenBadSignature even when the claims would otherwise parse.
var (
	ErrTokenMalformed    = errors.New("token is malformed")
	ErrTokenBadSignature = errors.New("token signature is invalid")
	ErrTokenExpired      = errors.New("token has expired")
)

// Claims defines the custom claims for the JWT tokens.
type Claims struct {
	UserID   uuid.UUID `json:"uid"`
	Username string    `json:"username"`
	IsAdmin  bool      `json:"isAdmin"`

	// IssuedAtNano carries the issue instant at full precision; iat is whole seconds.
	IssuedAtNano int64 `json:"iatNano,omitempty"`
	jwt.RegisteredClaims
}

// Identity converts verified claims into a request-scoped identity.
func (c *Claims) Identity() *entity.Identity {
	return &entity.Identity{
		UserID:   c.UserID,
		Username: c.Username,
		IsAdmin:  c.IsAdmin,
	}
}

// TokenService defines the interface for issuing and verifying stateless bearer tokens.
type TokenService interface {
	// Issue signs a token for the given identity, stamped with the current time.
	Issue(identity *entity.Identity) (string, error)

	// Verify checks signature and age and returns the embedded claims.
	// Errors wrap one of ErrTokenMalformed, ErrTokenBadSignature or ErrTokenExpired.
	Verify(token string) (*Claims, error)

	// MaxAge returns the configured token lifetime; zero means tokens never expire.
	MaxAge() time.Duration
}
