package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/helpdesk/internal/authz"
	"github.com/spec-kit/helpdesk/internal/cache"
	"github.com/spec-kit/helpdesk/internal/domain"
	"github.com/spec-kit/helpdesk/internal/events"
	"github.com/spec-kit/helpdesk/internal/repository"
	apperrors "github.com/spec-kit/helpdesk/pkg/util"
)

// Actor is the caller identity and role passed explicitly into every lifecycle
// operation. The engine never reads identity from ambient state.
type Actor struct {
	ID   string
	Role domain.Role
}

// LifecycleService is the sole mutation entry point for tickets: create,
// status change, assignment and administrative deletion. All role and state
// validation completes before the store is touched.
type LifecycleService struct {
	tickets    repository.TicketRepository
	users      repository.UserRepository
	userCache  *cache.UserCache
	dispatcher events.Dispatcher
}

// LifecycleDependencies bundles collaborators for the lifecycle service.
type LifecycleDependencies struct {
	TicketRepo repository.TicketRepository
	UserRepo   repository.UserRepository
	UserCache  *cache.UserCache
	Dispatcher events.Dispatcher
}

// TicketCreateInput describes ticket creation payload.
type TicketCreateInput struct {
	Title       string
	Description string
	Priority    domain.TicketPriority
}

// NewLifecycleService constructs the service.
func NewLifecycleService(deps LifecycleDependencies) *LifecycleService {
	return &LifecycleService{
		tickets:    deps.TicketRepo,
		users:      deps.UserRepo,
		userCache:  deps.UserCache,
		dispatcher: deps.Dispatcher,
	}
}

// Create opens a new ticket in OPEN state and records the CREATED entry.
func (s *LifecycleService) Create(ctx context.Context, actor Actor, input TicketCreateInput) (*domain.Ticket, error) {
	if !authz.CapabilitiesOf(actor.Role).CanCreateTicket {
		return nil, apperrors.NewForbidden("role cannot create tickets")
	}

	title := strings.TrimSpace(input.Title)
	description := strings.TrimSpace(input.Description)
	if title == "" || description == "" {
		return nil, apperrors.NewValidationError("title and description required", nil)
	}

	priority := input.Priority
	if priority == "" {
		priority = domain.TicketPriorityMedium
	}

	ticket := &domain.Ticket{
		ID:          uuid.NewString(),
		Title:       title,
		Description: description,
		Status:      domain.TicketStatusOpen,
		Priority:    priority,
		CreatedByID: actor.ID,
	}
	entry := newHistoryEntry(ticket.ID, domain.HistoryActionCreated, actor.ID)
	entry.Notes = "ticket created"

	if err := s.tickets.Create(ctx, ticket, entry); err != nil {
		return nil, apperrors.MapError(err)
	}

	s.publish(ctx, actor, events.Event{
		Type:     events.EventTicketCreated,
		TicketID: ticket.ID,
		Payload: events.TicketCreatedPayload{
			Title:    ticket.Title,
			Priority: ticket.Priority,
		},
	})
	return ticket, nil
}

// ChangeStatus applies a status transition. The boolean reports whether a
// mutation happened: requesting the current status is a NoChange success that
// leaves the audit history untouched.
func (s *LifecycleService) ChangeStatus(ctx context.Context, actor Actor, ticketID string, target domain.TicketStatus) (*domain.Ticket, bool, error) {
	if !authz.CapabilitiesOf(actor.Role).CanChangeStatus {
		return nil, false, apperrors.NewForbidden("role cannot change ticket status")
	}

	ticket, err := s.getTicket(ctx, ticketID)
	if err != nil {
		return nil, false, err
	}
	if ticket.IsDone() {
		return nil, false, apperrors.NewInvalidTransition("ticket is DONE and cannot be changed", map[string]any{
			"ticket_id": ticketID,
		})
	}
	if target == ticket.Status {
		return ticket, false, nil
	}
	if !domain.CanTransition(ticket.Status, target) {
		return nil, false, apperrors.NewInvalidTransition("illegal status transition", map[string]any{
			"from": ticket.Status,
			"to":   target,
		})
	}

	from := ticket.Status
	ticket.Status = target

	entry := newHistoryEntry(ticket.ID, domain.HistoryActionStatusChanged, actor.ID)
	entry.FromStatus = &from
	entry.ToStatus = &target

	if err := s.tickets.Update(ctx, ticket, entry); err != nil {
		return nil, false, apperrors.MapError(err)
	}

	s.publish(ctx, actor, events.Event{
		Type:     events.EventTicketStatusChanged,
		TicketID: ticket.ID,
		Payload: events.TicketStatusChangedPayload{
			OldStatus: from,
			NewStatus: target,
		},
	})
	return ticket, true, nil
}

// Assign binds a technician to a ticket. Re-assigning the current technician
// is an idempotent NoChange, reported via the boolean, never an error.
func (s *LifecycleService) Assign(ctx context.Context, actor Actor, ticketID, assigneeID string) (*domain.Ticket, bool, error) {
	if !authz.CapabilitiesOf(actor.Role).CanAssign {
		return nil, false, apperrors.NewForbidden("role cannot assign tickets")
	}

	ticket, err := s.getTicket(ctx, ticketID)
	if err != nil {
		return nil, false, err
	}
	if ticket.IsDone() {
		return nil, false, apperrors.NewInvalidTransition("ticket is DONE and cannot be assigned", map[string]any{
			"ticket_id": ticketID,
		})
	}

	assignee, err := s.lookupUser(ctx, assigneeID)
	if err != nil {
		return nil, false, err
	}
	if !assignee.Role.CanBeAssignee() {
		return nil, false, apperrors.NewInvalidAssignee("assignee must be TECH or ADMIN", map[string]any{
			"user_id": assigneeID,
			"role":    assignee.Role,
		})
	}

	if ticket.AssignedToID != nil && *ticket.AssignedToID == assigneeID {
		return ticket, false, nil
	}

	prevAssignee := ticket.AssignedToID
	ticket.AssignedToID = &assignee.ID

	entry := newHistoryEntry(ticket.ID, domain.HistoryActionAssigned, actor.ID)
	entry.Notes = fmt.Sprintf("assigned to %s (%s)", assignee.Name, assignee.ID)

	if err := s.tickets.Update(ctx, ticket, entry); err != nil {
		return nil, false, apperrors.MapError(err)
	}

	s.publish(ctx, actor, events.Event{
		Type:     events.EventTicketAssigned,
		TicketID: ticket.ID,
		Payload: events.TicketAssignedPayload{
			AssigneeID:   assignee.ID,
			PrevAssignee: prevAssignee,
		},
	})
	return ticket, true, nil
}

// Delete removes a ticket. This is an administrative operation outside the
// state machine and produces no history entry.
func (s *LifecycleService) Delete(ctx context.Context, actor Actor, ticketID string) error {
	if !authz.CapabilitiesOf(actor.Role).CanManageUsers {
		return apperrors.NewForbidden("role cannot delete tickets")
	}

	if err := s.tickets.Delete(ctx, ticketID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NewNotFound("ticket", map[string]any{"ticket_id": ticketID})
		}
		return apperrors.MapError(err)
	}

	s.publish(ctx, actor, events.Event{
		Type:     events.EventTicketDeleted,
		TicketID: ticketID,
	})
	return nil
}

func (s *LifecycleService) getTicket(ctx context.Context, ticketID string) (*domain.Ticket, error) {
	ticket, err := s.tickets.GetByID(ctx, ticketID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("ticket", map[string]any{"ticket_id": ticketID})
		}
		return nil, apperrors.MapError(err)
	}
	return ticket, nil
}

func (s *LifecycleService) lookupUser(ctx context.Context, userID string) (*domain.User, error) {
	if cached, ok := s.userCache.Get(ctx, userID); ok {
		return cached, nil
	}
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("user", map[string]any{"user_id": userID})
		}
		return nil, apperrors.MapError(err)
	}
	s.userCache.Set(ctx, user)
	return user, nil
}

func (s *LifecycleService) publish(ctx context.Context, actor Actor, event events.Event) {
	if s.dispatcher == nil {
		return
	}
	event.ID = uuid.NewString()
	event.ActorID = actor.ID
	event.ActorRole = actor.Role
	event.Timestamp = time.Now()
	_ = s.dispatcher.Publish(ctx, event)
}

func newHistoryEntry(ticketID string, action domain.HistoryAction, performedBy string) *domain.HistoryEntry {
	return &domain.HistoryEntry{
		ID:            uuid.NewString(),
		TicketID:      ticketID,
		Action:        action,
		PerformedByID: performedBy,
	}
}
