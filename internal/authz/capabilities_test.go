package authz

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/spec-kit/helpdesk/internal/domain"
)

func TestCapabilitiesOf(t *testing.T) {
	tests := []struct {
		name string
		role domain.Role
		want Capabilities
	}{
		{
			name: "client can only create",
			role: domain.RoleClient,
			want: Capabilities{CanCreateTicket: true},
		},
		{
			name: "tech can only change status",
			role: domain.RoleTech,
			want: Capabilities{CanChangeStatus: true},
		},
		{
			name: "admin has every capability",
			role: domain.RoleAdmin,
			want: Capabilities{
				CanCreateTicket: true,
				CanChangeStatus: true,
				CanAssign:       true,
				CanManageUsers:  true,
			},
		},
		{
			name: "unknown role fails closed",
			role: domain.Role("SUPERVISOR"),
			want: Capabilities{},
		},
		{
			name: "empty role fails closed",
			role: domain.Role(""),
			want: Capabilities{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CapabilitiesOf(tt.role))
		})
	}
}

func TestAdminIsSupersetOfOtherRoles(t *testing.T) {
	admin := CapabilitiesOf(domain.RoleAdmin)
	assert.True(t, admin.CanCreateTicket, "admin inherits client create capability")
	assert.True(t, admin.CanChangeStatus, "admin inherits tech status-change capability")
}
