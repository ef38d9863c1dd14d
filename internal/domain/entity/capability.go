package entity

// Capability represents the privilege a route requires from the caller.
type Capability string

const (
	// CapabilityAuthenticated is satisfied by any verified identity.
	CapabilityAuthenticated Capability = "authenticated"
	// CapabilityAdmin is satisfied only by identities flagged as admin.
	CapabilityAdmin Capability = "admin"
)

// String returns the string representation of the Capability.
func (c Capability) String() string {
	return string(c)
}

// IsValid checks if the Capability is a known value.
func (c Capability) IsValid() bool {
	switch c {
	case CapabilityAuthenticated, CapabilityAdmin:
		return true
	default:
		return false
	}
}
