// Package domain holds the client-side model of the OCP intervention
// system: roles, the persisted user identity, and the role-to-route
// contract shared by login, the guard, and the root redirector.
package domain

// Role is a user's role as reported by the OCP API.
type Role string

const (
	RoleAdmin      Role = "ADMIN"
	RoleTechnician Role = "TECHNICIAN"
	RoleUser       Role = "USER"
)

// Known reports whether the role is one the client understands. A session
// carrying an unknown role is treated as invalid for routing purposes.
func (r Role) Known() bool {
	switch r {
	case RoleAdmin, RoleTechnician, RoleUser:
		return true
	}
	return false
}
