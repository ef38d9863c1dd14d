package entity

import "github.com/google/uuid"

// Identity is the result of a successful token verification.
// It lives only for the lifetime of a single request.
type Identity struct {
	UserID   uuid.UUID
	Username string
	IsAdmin  bool
}

// Has reports whether the identity satisfies the given capability.
func (i *Identity) Has(capability Capability) bool {
	if i == nil {
		return false
	}

	switch capability {
	case CapabilityAuthenticated:
		return true
	case CapabilityAdmin:
		return i.IsAdmin
	default:
		return false
	}
}
