package service

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/helpdesk/internal/cache"
	"github.com/spec-kit/helpdesk/internal/domain"
	"github.com/spec-kit/helpdesk/internal/repository"
	apperrors "github.com/spec-kit/helpdesk/pkg/util"
)

// TicketView is a ticket with its user references resolved to projections, the
// shape the API returns.
type TicketView struct {
	Ticket     domain.Ticket
	CreatedBy  *domain.User
	AssignedTo *domain.User
}

// ListQuery captures read-side filters.
type ListQuery struct {
	Status   *domain.TicketStatus
	Priority *domain.TicketPriority
	Page     int
	Size     int
}

// ListingService is the read-side engine: filtered, paginated ticket views.
// It is independent of the write path and may observe a ticket mid-transition.
type ListingService struct {
	tickets   repository.TicketRepository
	users     repository.UserRepository
	userCache *cache.UserCache
}

// NewListingService constructs the service.
func NewListingService(tickets repository.TicketRepository, users repository.UserRepository, userCache *cache.UserCache) *ListingService {
	return &ListingService{tickets: tickets, users: users, userCache: userCache}
}

// List returns one page of ticket views matching the filter.
func (s *ListingService) List(ctx context.Context, query ListQuery) (domain.Page[TicketView], error) {
	size := query.Size
	if size < 1 {
		size = 10
	}
	page := query.Page
	if page < 0 {
		page = 0
	}

	tickets, total, err := s.tickets.List(ctx, repository.TicketFilter{
		Status:   query.Status,
		Priority: query.Priority,
		Limit:    size,
		Offset:   page * size,
	})
	if err != nil {
		return domain.Page[TicketView]{}, apperrors.MapError(err)
	}

	views := make([]TicketView, 0, len(tickets))
	for i := range tickets {
		view, err := s.resolve(ctx, &tickets[i])
		if err != nil {
			return domain.Page[TicketView]{}, err
		}
		views = append(views, *view)
	}
	return domain.NewPage(views, page, size, total), nil
}

// GetByID returns one resolved ticket view.
func (s *ListingService) GetByID(ctx context.Context, ticketID string) (*TicketView, error) {
	ticket, err := s.tickets.GetByID(ctx, ticketID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("ticket", map[string]any{"ticket_id": ticketID})
		}
		return nil, apperrors.MapError(err)
	}
	return s.resolve(ctx, ticket)
}

// Resolve attaches user projections to a ticket the lifecycle service mutated.
func (s *ListingService) Resolve(ctx context.Context, ticket *domain.Ticket) (*TicketView, error) {
	return s.resolve(ctx, ticket)
}

func (s *ListingService) resolve(ctx context.Context, ticket *domain.Ticket) (*TicketView, error) {
	view := &TicketView{Ticket: *ticket}

	createdBy, err := s.lookupUser(ctx, ticket.CreatedByID)
	if err != nil {
		return nil, err
	}
	view.CreatedBy = createdBy

	if ticket.AssignedToID != nil {
		assignedTo, err := s.lookupUser(ctx, *ticket.AssignedToID)
		if err != nil {
			return nil, err
		}
		view.AssignedTo = assignedTo
	}
	return view, nil
}

func (s *ListingService) lookupUser(ctx context.Context, userID string) (*domain.User, error) {
	if cached, ok := s.userCache.Get(ctx, userID); ok {
		return cached, nil
	}
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			// Referenced user vanished between reads; render a bare reference
			// instead of failing the whole listing.
			return &domain.User{ID: userID}, nil
		}
		return nil, apperrors.MapError(err)
	}
	s.userCache.Set(ctx, user)
	return user, nil
}
