package usecase

import (
	"context"

	"gatekeeper/internal/domain/entity"
)

// GuardUsecase decides whether a request may proceed.
type GuardUsecase interface {
	// Authorize takes the raw Authorization header and the capability a route
	// requires. It returns the verified identity, or one of
	// ErrMissingCredential, ErrInvalidCredential, ErrInsufficientPrivilege.
	Authorize(ctx context.Context, authorizationHeader string, required entity.Capability) (*entity.Identity, error)
}
