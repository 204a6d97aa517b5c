package dto

import (
	"time"

	"github.com/spec-kit/helpdesk/internal/domain"
	"github.com/spec-kit/helpdesk/internal/service"
)

// CreateTicketRequest payload.
type CreateTicketRequest struct {
	Title       string `json:"title" validate:"required,max=200"`
	Description string `json:"description" validate:"required,max=5000"`
	Priority    string `json:"priority" validate:"omitempty,oneof=LOW MEDIUM HIGH"`
}

// ChangeStatusRequest payload.
type ChangeStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=OPEN IN_PROGRESS DONE"`
}

// PageResponse mirrors the page projection shape clients expect.
type PageResponse[T any] struct {
	Content       []T  `json:"content"`
	Number        int  `json:"number"`
	Size          int  `json:"size"`
	TotalElements int  `json:"totalElements"`
	TotalPages    int  `json:"totalPages"`
	First         bool `json:"first"`
	Last          bool `json:"last"`
}

// NewPageResponse converts a domain page, mapping items through fn.
func NewPageResponse[S, T any](page domain.Page[S], fn func(S) T) PageResponse[T] {
	content := make([]T, 0, len(page.Content))
	for _, item := range page.Content {
		content = append(content, fn(item))
	}
	return PageResponse[T]{
		Content:       content,
		Number:        page.Number,
		Size:          page.Size,
		TotalElements: page.TotalElements,
		TotalPages:    page.TotalPages,
		First:         page.First,
		Last:          page.Last,
	}
}

// TicketResponse is the resolved ticket view.
type TicketResponse struct {
	ID          string        `json:"id"`
	Title       string        `json:"title"`
	Description string        `json:"description"`
	Status      string        `json:"status"`
	Priority    string        `json:"priority"`
	CreatedBy   *UserSummary  `json:"createdBy"`
	AssignedTo  *UserSummary  `json:"assignedTo,omitempty"`
	CreatedAt   time.Time     `json:"createdAt"`
	UpdatedAt   time.Time     `json:"updatedAt"`
}

// ChangeStatusResponse reports the outcome of a status request. Changed is
// false for an idempotent no-op so clients can avoid refreshing history.
type ChangeStatusResponse struct {
	Ticket  TicketResponse `json:"ticket"`
	Changed bool           `json:"changed"`
}

// AssignResponse mirrors ChangeStatusResponse for assignment.
type AssignResponse struct {
	Ticket  TicketResponse `json:"ticket"`
	Changed bool           `json:"changed"`
}

// HistoryEntryResponse is one audit record.
type HistoryEntryResponse struct {
	ID          string       `json:"id"`
	Action      string       `json:"action"`
	FromStatus  *string      `json:"fromStatus"`
	ToStatus    *string      `json:"toStatus"`
	Notes       string       `json:"notes"`
	PerformedBy *UserSummary `json:"performedBy"`
	CreatedAt   time.Time    `json:"createdAt"`
}

// NewTicketResponse maps a resolved view.
func NewTicketResponse(view service.TicketView) TicketResponse {
	resp := TicketResponse{
		ID:          view.Ticket.ID,
		Title:       view.Ticket.Title,
		Description: view.Ticket.Description,
		Status:      string(view.Ticket.Status),
		Priority:    string(view.Ticket.Priority),
		CreatedAt:   view.Ticket.CreatedAt,
		UpdatedAt:   view.Ticket.UpdatedAt,
	}
	if view.CreatedBy != nil {
		summary := NewUserSummary(*view.CreatedBy)
		resp.CreatedBy = &summary
	}
	if view.AssignedTo != nil {
		summary := NewUserSummary(*view.AssignedTo)
		resp.AssignedTo = &summary
	}
	return resp
}

// NewHistoryEntryResponse maps a resolved history view.
func NewHistoryEntryResponse(view service.HistoryView) HistoryEntryResponse {
	resp := HistoryEntryResponse{
		ID:        view.Entry.ID,
		Action:    string(view.Entry.Action),
		Notes:     view.Entry.Notes,
		CreatedAt: view.Entry.CreatedAt,
	}
	if view.Entry.FromStatus != nil {
		from := string(*view.Entry.FromStatus)
		resp.FromStatus = &from
	}
	if view.Entry.ToStatus != nil {
		to := string(*view.Entry.ToStatus)
		resp.ToStatus = &to
	}
	if view.PerformedBy != nil {
		summary := NewUserSummary(*view.PerformedBy)
		resp.PerformedBy = &summary
	}
	return resp
}
