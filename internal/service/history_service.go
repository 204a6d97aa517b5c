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

// HistoryView is a history entry with its actor resolved.
type HistoryView struct {
	Entry       domain.HistoryEntry
	PerformedBy *domain.User
}

// HistoryService pages through a ticket's append-only audit log.
type HistoryService struct {
	tickets   repository.TicketRepository
	history   repository.HistoryRepository
	users     repository.UserRepository
	userCache *cache.UserCache
}

// NewHistoryService constructs the service.
func NewHistoryService(tickets repository.TicketRepository, history repository.HistoryRepository, users repository.UserRepository, userCache *cache.UserCache) *HistoryService {
	return &HistoryService{tickets: tickets, history: history, users: users, userCache: userCache}
}

// Query returns one page of audit entries, ordered by creation time ascending
// with insertion sequence as the stable tie-break.
func (s *HistoryService) Query(ctx context.Context, ticketID string, page, size int) (domain.Page[HistoryView], error) {
	if size < 1 {
		size = 10
	}
	if page < 0 {
		page = 0
	}

	if _, err := s.tickets.GetByID(ctx, ticketID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Page[HistoryView]{}, apperrors.NewNotFound("ticket", map[string]any{"ticket_id": ticketID})
		}
		return domain.Page[HistoryView]{}, apperrors.MapError(err)
	}

	entries, total, err := s.history.ListByTicket(ctx, ticketID, size, page*size)
	if err != nil {
		return domain.Page[HistoryView]{}, apperrors.MapError(err)
	}

	views := make([]HistoryView, 0, len(entries))
	for i := range entries {
		view := HistoryView{Entry: entries[i]}
		view.PerformedBy = s.lookupUser(ctx, entries[i].PerformedByID)
		views = append(views, view)
	}
	return domain.NewPage(views, page, size, total), nil
}

func (s *HistoryService) lookupUser(ctx context.Context, userID string) *domain.User {
	if cached, ok := s.userCache.Get(ctx, userID); ok {
		return cached
	}
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return &domain.User{ID: userID}
	}
	s.userCache.Set(ctx, user)
	return user
}
