// Package service defines interfaces for core, stateless domain logic.
// These services encapsulate business rules that don't naturally fit within a single entity.
package service

import (
	"context"
	"errors"
)

// PasswordHasher defines the interface for password hashing and verification.
// This abstracts the underlying hashing algorithm (e.g., bcrypt), keeping the domain pure.
type PasswordHasher interface {
	// Hash generates a freshly salted, self-describing hash from a plaintext password.
	// An error means the hashing subsystem itself failed.
	Hash(ctx context.Context, password string) (string, error)

	// Check compares a plaintext password with a stored hash in constant time.
	// A mismatch or a malformed hash yields (false, nil); an error is reserved
	// for failures unrelated to the inputs, such as cancellation while waiting
	// for a hashing slot.
	Check(ctx context.Context, password, hash string) (bool, error)
}

// ErrPasswordTooLong is returned by Hash when the plaintext exceeds what the
// algorithm can absorb (72 bytes for bcrypt). It is an input problem, not a
// subsystem failure.
var ErrPasswordTooLong = errors.New("password exceeds the maximum supported length")
