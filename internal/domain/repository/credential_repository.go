// Package repository defines the interfaces for the persistence layer.
// These interfaces act as a contract between the domain/application layers and the infrastructure layer.
package repository

import (
	"context"
	"errors"

	"gatekeeper/internal/domain/entity"

	"github.com/google/uuid"
)

var (
	// ErrCredentialNotFound is returned when no credential matches the lookup.
	ErrCredentialNotFound = errors.New("credential not found")

	// ErrDuplicateIdentity is returned when a create or update would violate username uniqueness.
	ErrDuplicateIdentity = errors.New("duplicate identity")
)

// DefaultListLimit is used when List is called with a non-positive limit.
const DefaultListLimit = 50

// CredentialRepository defines the operations the core needs from the identity store.
// Implementations own username uniqueness; callers must hash passwords before Create or Update.
type CredentialRepository interface {
	// FindByUsername retrieves a credential by its unique username.
	FindByUsername(ctx context.Context, username string) (*entity.Credential, error)

	// FindByID retrieves a credential by its ID.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Credential, error)

	// Create persists a new credential. ID and timestamps are filled in on success.
	Create(ctx context.Context, credential *entity.Credential) error

	// Update replaces the stored username, password hash and admin flag.
	Update(ctx context.Context, credential *entity.Credential) error

	// List returns credentials ordered by CreatedAt descending.
	List(ctx context.Context, skip, limit int) ([]*entity.Credential, error)

	// Delete removes a credential by ID.
	Delete(ctx context.Context, id uuid.UUID) error
}
