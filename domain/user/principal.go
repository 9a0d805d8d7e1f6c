package user

import "strings"

// Principal is the identity a request acts as. It is derived from a
// verified token at the web boundary, or constructed directly for
// background jobs.
type Principal struct {
	Email string
	Role  Role
}

// SystemPrincipal is the identity background jobs act as. It holds
// administrative privilege so jobs go through the same authorization
// checks as any other caller.
func SystemPrincipal() Principal {
	return Principal{Email: "system", Role: RoleAdmin}
}

// IsAdmin reports whether the principal holds administrative privilege.
func (p Principal) IsAdmin() bool {
	return p.Role == RoleAdmin
}

// IsOwnerOrAdmin reports whether the principal owns the resource keyed by
// ownerEmail (case-insensitive) or is an administrator.
func (p Principal) IsOwnerOrAdmin(ownerEmail string) bool {
	return p.IsAdmin() || strings.EqualFold(p.Email, ownerEmail)
}
