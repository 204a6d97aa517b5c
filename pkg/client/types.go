package client

import "time"

// UserSummary is the actor projection the API embeds in responses.
type UserSummary struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

// Ticket is the API's resolved ticket view.
type Ticket struct {
	ID          string       `json:"id"`
	Title       string       `json:"title"`
	Description string       `json:"description"`
	Status      string       `json:"status"`
	Priority    string       `json:"priority"`
	CreatedBy   *UserSummary `json:"createdBy"`
	AssignedTo  *UserSummary `json:"assignedTo,omitempty"`
	CreatedAt   time.Time    `json:"createdAt"`
	UpdatedAt   time.Time    `json:"updatedAt"`
}

// HistoryEntry is one audit record.
type HistoryEntry struct {
	ID          string       `json:"id"`
	Action      string       `json:"action"`
	FromStatus  *string      `json:"fromStatus"`
	ToStatus    *string      `json:"toStatus"`
	Notes       string       `json:"notes"`
	PerformedBy *UserSummary `json:"performedBy"`
	CreatedAt   time.Time    `json:"createdAt"`
}

// Page is the offset-described result projection the API returns.
type Page[T any] struct {
	Content       []T  `json:"content"`
	Number        int  `json:"number"`
	Size          int  `json:"size"`
	TotalElements int  `json:"totalElements"`
	TotalPages    int  `json:"totalPages"`
	First         bool `json:"first"`
	Last          bool `json:"last"`
}

// changeStatusResponse mirrors the server's status-change envelope.
type changeStatusResponse struct {
	Ticket  Ticket `json:"ticket"`
	Changed bool   `json:"changed"`
}
