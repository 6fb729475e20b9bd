package auth

// RoleAdmin is the role name that unlocks admin-only operations.
const RoleAdmin = "Admin"

// Identity is an immutable snapshot of an authenticated account, taken
// at token-issue time. Role changes made after issuance do not show up
// here until the holder obtains a new token.
type Identity struct {
	// Subject is the stable, opaque account id.
	Subject string

	// Email is the account email at issue time.
	Email string

	// Roles are the role names held at issue time. May be empty.
	Roles []string
}

// HasRole checks if the identity holds a specific role.
func (id *Identity) HasRole(role string) bool {
	for _, r := range id.Roles {
		if r == role {
			return true
		}
	}
	return false
}

// IsAdmin checks if the identity holds the Admin role.
func (id *Identity) IsAdmin() bool {
	return id.HasRole(RoleAdmin)
}
