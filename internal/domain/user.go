package domain

import "time"

// Role enumerates the caller roles recognized by the access-control engine.
type Role string

const (
	RoleClient Role = "CLIENT"
	RoleTech   Role = "TECH"
	RoleAdmin  Role = "ADMIN"
)

// ParseRole maps a raw role string to a Role, reporting whether it is known.
func ParseRole(raw string) (Role, bool) {
	switch Role(raw) {
	case RoleClient, RoleTech, RoleAdmin:
		return Role(raw), true
	}
	return "", false
}

// CanBeAssignee reports whether users with this role may hold ticket assignments.
func (r Role) CanBeAssignee() bool {
	return r == RoleTech || r == RoleAdmin
}

// User is the read-only projection of an actor owned by the identity subsystem.
// The lifecycle engine holds references to users and never mutates them.
type User struct {
	ID        string
	Name      string
	Email     string
	Role      Role
	CreatedAt time.Time
	UpdatedAt time.Time
}
