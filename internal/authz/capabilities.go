// Package authz maps caller roles to capability sets. Every mutation path asks
// this package instead of comparing role strings inline.
package authz

import "github.com/spec-kit/helpdesk/internal/domain"

// Capabilities is the set of named permissions derived from a role.
type Capabilities struct {
	CanCreateTicket bool
	CanChangeStatus bool
	CanAssign       bool
	CanManageUsers  bool
}

// CapabilitiesOf returns the capability set for a role. ADMIN is a strict
// superset of the other roles. Unknown or absent roles get the zero set, so an
// unrecognized caller fails closed.
func CapabilitiesOf(role domain.Role) Capabilities {
	switch role {
	case domain.RoleClient:
		return Capabilities{CanCreateTicket: true}
	case domain.RoleTech:
		// Assignment is administrative; technicians do not self-claim tickets.
		return Capabilities{CanChangeStatus: true}
	case domain.RoleAdmin:
		return Capabilities{
			CanCreateTicket: true,
			CanChangeStatus: true,
			CanAssign:       true,
			CanManageUsers:  true,
		}
	}
	return Capabilities{}
}
