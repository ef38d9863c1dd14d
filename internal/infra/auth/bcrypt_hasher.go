// Package auth provides concrete implementations for authentication-related domain services.
package auth

import (
	"context"

	"gatekeeper/internal/domain/service"

	"github.com/pkg/errors"
	"golang.org/x/crypto/bcrypt"
)

// DefaultBcryptCost is the work factor used when none is configured.
const DefaultBcryptCost = 10

// bcryptHasher is a concrete implementation of the PasswordHasher interface using bcrypt.
type bcryptHasher struct {
	cost    int
	limiter *hashLimiter
}

// NewBcryptHasher is the constructor for bcryptHasher with the default cost.
// It returns the implementation as a service.PasswordHasher interface.
func NewBcryptHasher(maxConcurrent int) service.PasswordHasher {
	return NewBcryptHasherWithCost(DefaultBcryptCost, maxConcurrent)
}

// NewBcryptHasherWithCost creates a bcrypt hasher with a custom cost.
// Out-of-range costs fall back to DefaultBcryptCost.
func NewBcryptHasherWithCost(cost, maxConcurrent int) service.PasswordHasher {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = DefaultBcryptCost
	}

	return &bcryptHasher{
		cost:    cost,
		limiter: newHashLimiter(maxConcurrent),
	}
}

// Hash generates a salted hash from a plaintext password using bcrypt.
// bcrypt generates a fresh salt on every call and embeds it, with the cost, in the
// "$2a$<cost>$<salt><digest>" encoding.
func (h *bcryptHasher) Hash(ctx context.Context, password string) (string, error) {
	if len(password) > 72 {
		return "", errors.WithStack(service.ErrPasswordTooLong)
	}

	var (
		hash    []byte
		hashErr error
	)
	if err := h.limiter.run(ctx, func() {
		hash, hashErr = bcrypt.GenerateFromPassword([]byte(password), h.cost)
	}); err != nil {
		return "", err
	}
	if hashErr != nil {
		return "", errors.Wrap(hashErr, "bcrypt: generate hash")
	}

	return string(hash), nil
}

// Check compares a plaintext password with a bcrypt hash.
func (h *bcryptHasher) Check(ctx context.Context, password, hash string) (bool, error) {
	var match bool
	if err := h.limiter.run(ctx, func() {
		// err is nil only if the password and hash match; malformed hashes also land here.
		match = bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
	}); err != nil {
		return false, err
	}

	return match, nil
}
