package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCanTransition(t *testing.T) {
	tests := []struct {
		name    string
		current TicketStatus
		next    TicketStatus
		want    bool
	}{
		{"open to in_progress", TicketStatusOpen, TicketStatusInProgress, true},
		{"open to done", TicketStatusOpen, TicketStatusDone, true},
		{"in_progress to done", TicketStatusInProgress, TicketStatusDone, true},
		{"in_progress reopened", TicketStatusInProgress, TicketStatusOpen, true},
		{"done to open", TicketStatusDone, TicketStatusOpen, false},
		{"done to in_progress", TicketStatusDone, TicketStatusInProgress, false},
		{"done to done", TicketStatusDone, TicketStatusDone, false},
		{"open to open is not an edge", TicketStatusOpen, TicketStatusOpen, false},
		{"in_progress to in_progress is not an edge", TicketStatusInProgress, TicketStatusInProgress, false},
		{"unknown source", TicketStatus("PENDING"), TicketStatusOpen, false},
		{"unknown target", TicketStatusOpen, TicketStatus("PENDING"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CanTransition(tt.current, tt.next))
		})
	}
}

func TestDoneIsAbsorbing(t *testing.T) {
	for _, next := range []TicketStatus{TicketStatusOpen, TicketStatusInProgress, TicketStatusDone} {
		assert.False(t, CanTransition(TicketStatusDone, next), "DONE must have no outgoing edge to %s", next)
	}
}

func TestParseTicketStatus(t *testing.T) {
	status, ok := ParseTicketStatus("IN_PROGRESS")
	assert.True(t, ok)
	assert.Equal(t, TicketStatusInProgress, status)

	_, ok = ParseTicketStatus("in_progress")
	assert.False(t, ok, "parsing is case sensitive")

	_, ok = ParseTicketStatus("CANCELLED")
	assert.False(t, ok)
}

func TestParseTicketPriority(t *testing.T) {
	priority, ok := ParseTicketPriority("HIGH")
	assert.True(t, ok)
	assert.Equal(t, TicketPriorityHigh, priority)

	_, ok = ParseTicketPriority("URGENT")
	assert.False(t, ok)
}

func TestParseRole(t *testing.T) {
	role, ok := ParseRole("TECH")
	assert.True(t, ok)
	assert.Equal(t, RoleTech, role)

	_, ok = ParseRole("STAFF")
	assert.False(t, ok)
}

func TestRoleCanBeAssignee(t *testing.T) {
	assert.True(t, RoleTech.CanBeAssignee())
	assert.True(t, RoleAdmin.CanBeAssignee())
	assert.False(t, RoleClient.CanBeAssignee())
	assert.False(t, Role("").CanBeAssignee())
}
