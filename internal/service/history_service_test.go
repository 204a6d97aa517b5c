package service

import (
	"context"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/helpdesk/internal/domain"
)

func TestHistoryQuery(t *testing.T) {
	ctx := context.Background()
	now := time.Now()
	from := domain.TicketStatusOpen
	to := domain.TicketStatusInProgress

	tickets := &mockTicketRepo{
		GetByIDFunc: func(_ context.Context, id string) (*domain.Ticket, error) {
			if id != "t1" {
				return nil, pgx.ErrNoRows
			}
			return openTicket(id), nil
		},
	}
	users := &mockUserRepo{
		GetByIDFunc: func(_ context.Context, id string) (*domain.User, error) {
			if id == "tech-1" {
				return &domain.User{ID: "tech-1", Name: "Dana", Role: domain.RoleTech}, nil
			}
			return nil, pgx.ErrNoRows
		},
	}

	t.Run("pages resolved entries", func(t *testing.T) {
		var gotLimit, gotOffset int
		history := &mockHistoryRepo{
			ListByTicketFunc: func(_ context.Context, ticketID string, limit, offset int) ([]domain.HistoryEntry, int, error) {
				gotLimit, gotOffset = limit, offset
				return []domain.HistoryEntry{
					{ID: "h1", TicketID: ticketID, Action: domain.HistoryActionCreated, PerformedByID: "ghost", Seq: 1, CreatedAt: now},
					{ID: "h2", TicketID: ticketID, Action: domain.HistoryActionStatusChanged, FromStatus: &from, ToStatus: &to, PerformedByID: "tech-1", Seq: 2, CreatedAt: now},
				}, 7, nil
			},
		}
		svc := NewHistoryService(tickets, history, users, nil)

		page, err := svc.Query(ctx, "t1", 1, 2)
		require.NoError(t, err)
		assert.Equal(t, 2, gotLimit)
		assert.Equal(t, 2, gotOffset)
		assert.Equal(t, 7, page.TotalElements)
		assert.Equal(t, 4, page.TotalPages)
		require.Len(t, page.Content, 2)

		// Actor lookup failures degrade to a bare reference.
		assert.Equal(t, "ghost", page.Content[0].PerformedBy.ID)
		assert.Empty(t, page.Content[0].PerformedBy.Name)
		assert.Equal(t, "Dana", page.Content[1].PerformedBy.Name)
	})

	t.Run("unknown ticket", func(t *testing.T) {
		svc := NewHistoryService(tickets, &mockHistoryRepo{}, users, nil)
		_, err := svc.Query(ctx, "missing", 0, 10)
		assertCode(t, err, "NOT_FOUND")
	})
}
