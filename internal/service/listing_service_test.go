package service

import (
	"context"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/helpdesk/internal/domain"
	"github.com/spec-kit/helpdesk/internal/repository"
)

func TestListingList(t *testing.T) {
	ctx := context.Background()
	now := time.Now()

	assigned := "tech-1"
	stored := []domain.Ticket{
		{ID: "t1", Title: "a", Status: domain.TicketStatusOpen, Priority: domain.TicketPriorityHigh, CreatedByID: "client-1", CreatedAt: now},
		{ID: "t2", Title: "b", Status: domain.TicketStatusInProgress, Priority: domain.TicketPriorityLow, CreatedByID: "client-1", AssignedToID: &assigned, CreatedAt: now},
	}
	users := &mockUserRepo{
		GetByIDFunc: func(_ context.Context, id string) (*domain.User, error) {
			switch id {
			case "client-1":
				return &domain.User{ID: "client-1", Name: "Casey", Role: domain.RoleClient}, nil
			case "tech-1":
				return &domain.User{ID: "tech-1", Name: "Dana", Role: domain.RoleTech}, nil
			}
			return nil, pgx.ErrNoRows
		},
	}

	t.Run("resolves user references and pages", func(t *testing.T) {
		var gotFilter repository.TicketFilter
		tickets := &mockTicketRepo{
			ListFunc: func(_ context.Context, filter repository.TicketFilter) ([]domain.Ticket, int, error) {
				gotFilter = filter
				return stored, 12, nil
			},
		}
		svc := NewListingService(tickets, users, nil)

		status := domain.TicketStatusOpen
		page, err := svc.List(ctx, ListQuery{Status: &status, Page: 2, Size: 5})
		require.NoError(t, err)

		assert.Equal(t, 5, gotFilter.Limit)
		assert.Equal(t, 10, gotFilter.Offset)
		require.NotNil(t, gotFilter.Status)

		assert.Equal(t, 12, page.TotalElements)
		assert.Equal(t, 3, page.TotalPages)
		assert.Equal(t, 2, page.Number)
		require.Len(t, page.Content, 2)
		assert.Equal(t, "Casey", page.Content[0].CreatedBy.Name)
		assert.Nil(t, page.Content[0].AssignedTo)
		require.NotNil(t, page.Content[1].AssignedTo)
		assert.Equal(t, "Dana", page.Content[1].AssignedTo.Name)
	})

	t.Run("vanished user renders a bare reference", func(t *testing.T) {
		tickets := &mockTicketRepo{
			ListFunc: func(context.Context, repository.TicketFilter) ([]domain.Ticket, int, error) {
				return []domain.Ticket{{ID: "t3", CreatedByID: "ghost"}}, 1, nil
			},
		}
		svc := NewListingService(tickets, users, nil)

		page, err := svc.List(ctx, ListQuery{Size: 10})
		require.NoError(t, err)
		require.Len(t, page.Content, 1)
		require.NotNil(t, page.Content[0].CreatedBy)
		assert.Equal(t, "ghost", page.Content[0].CreatedBy.ID)
		assert.Empty(t, page.Content[0].CreatedBy.Name)
	})
}

func TestListingGetByID(t *testing.T) {
	ctx := context.Background()

	t.Run("found", func(t *testing.T) {
		tickets := &mockTicketRepo{
			GetByIDFunc: func(_ context.Context, id string) (*domain.Ticket, error) {
				return &domain.Ticket{ID: id, CreatedByID: "client-1"}, nil
			},
		}
		users := &mockUserRepo{
			GetByIDFunc: func(_ context.Context, id string) (*domain.User, error) {
				return &domain.User{ID: id, Name: "Casey"}, nil
			},
		}
		svc := NewListingService(tickets, users, nil)

		view, err := svc.GetByID(ctx, "t1")
		require.NoError(t, err)
		assert.Equal(t, "t1", view.Ticket.ID)
		assert.Equal(t, "Casey", view.CreatedBy.Name)
	})

	t.Run("missing", func(t *testing.T) {
		tickets := &mockTicketRepo{
			GetByIDFunc: func(context.Context, string) (*domain.Ticket, error) {
				return nil, pgx.ErrNoRows
			},
		}
		svc := NewListingService(tickets, &mockUserRepo{}, nil)

		_, err := svc.GetByID(ctx, "missing")
		assertCode(t, err, "NOT_FOUND")
	})
}
