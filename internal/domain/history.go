package domain

import "time"

// HistoryAction captures what a history entry records.
type HistoryAction string

const (
	HistoryActionCreated       HistoryAction = "CREATED"
	HistoryActionStatusChanged HistoryAction = "STATUS_CHANGED"
	HistoryActionAssigned      HistoryAction = "ASSIGNED"
)

// HistoryEntry is an immutable audit record of one ticket mutation. Entries are
// append-only and ordered by CreatedAt ascending; Seq breaks ties between
// entries that share a timestamp, preserving insertion order.
type HistoryEntry struct {
	ID            string
	TicketID      string
	Action        HistoryAction
	FromStatus    *TicketStatus
	ToStatus      *TicketStatus
	Notes         string
	PerformedByID string
	Seq           int64
	CreatedAt     time.Time
}
