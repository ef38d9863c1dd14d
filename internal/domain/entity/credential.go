// Package entity contains the core business objects of the project,
// each representing a unique, identifiable concept within the domain.
package entity

import (
	"time"

	"github.com/google/uuid"
)

// Credential is the stored account record used to authenticate a person.
// PasswordHash is never the plaintext password; it is only ever replaced as a whole.
type Credential struct {
	ID           uuid.UUID // The Global Unique Identifier (GUID) for the account.
	Username     string    // Unique, non-empty login name.
	PasswordHash string    // Self-describing encoded hash produced by a PasswordHasher.
	IsAdmin      bool      // Grants the admin capability.
	CreatedAt    time.Time // Timestamp of when this account was created.
	UpdatedAt    time.Time // Timestamp of the last modification to this account.
}

// Identity returns the request-scoped identity derived from this credential.
func (c *Credential) Identity() *Identity {
	return &Identity{
		UserID:   c.ID,
		Username: c.Username,
		IsAdmin:  c.IsAdmin,
	}
}
