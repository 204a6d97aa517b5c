package domain

import "time"

// TicketStatus enumerates lifecycle states for tickets.
type TicketStatus string

const (
	TicketStatusOpen       TicketStatus = "OPEN"
	TicketStatusInProgress TicketStatus = "IN_PROGRESS"
	TicketStatusDone       TicketStatus = "DONE"
)

// ParseTicketStatus maps a raw status string to a TicketStatus.
func ParseTicketStatus(raw string) (TicketStatus, bool) {
	switch TicketStatus(raw) {
	case TicketStatusOpen, TicketStatusInProgress, TicketStatusDone:
		return TicketStatus(raw), true
	}
	return "", false
}

// TicketPriority enumerates urgency levels.
type TicketPriority string

const (
	TicketPriorityLow    TicketPriority = "LOW"
	TicketPriorityMedium TicketPriority = "MEDIUM"
	TicketPriorityHigh   TicketPriority = "HIGH"
)

// ParseTicketPriority maps a raw priority string to a TicketPriority.
func ParseTicketPriority(raw string) (TicketPriority, bool) {
	switch TicketPriority(raw) {
	case TicketPriorityLow, TicketPriorityMedium, TicketPriorityHigh:
		return TicketPriority(raw), true
	}
	return "", false
}

// Ticket is the aggregate for one support request. Status and AssignedToID are
// mutated only through the lifecycle service.
type Ticket struct {
	ID           string
	Title        string
	Description  string
	Status       TicketStatus
	Priority     TicketPriority
	CreatedByID  string
	AssignedToID *string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// IsDone reports whether the ticket is in its terminal state.
func (t *Ticket) IsDone() bool {
	return t.Status == TicketStatusDone
}

// allowedTransitions is the closed set of legal status edges. DONE has no
// outgoing edges; IN_PROGRESS -> OPEN is the reopen edge.
var allowedTransitions = map[TicketStatus][]TicketStatus{
	TicketStatusOpen:       {TicketStatusInProgress, TicketStatusDone},
	TicketStatusInProgress: {TicketStatusDone, TicketStatusOpen},
	TicketStatusDone:       {},
}

// CanTransition reports whether the edge current -> next is legal. A same-status
// "transition" is not an edge; callers treat it as NoChange before asking here.
func CanTransition(current, next TicketStatus) bool {
	for _, candidate := range allowedTransitions[current] {
		if candidate == next {
			return true
		}
	}
	return false
}
