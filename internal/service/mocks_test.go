package service

import (
	"context"
	"sync"

	"github.com/spec-kit/helpdesk/internal/domain"
	"github.com/spec-kit/helpdesk/internal/events"
	"github.com/spec-kit/helpdesk/internal/repository"
)

type mockTicketRepo struct {
	CreateFunc  func(ctx context.Context, ticket *domain.Ticket, entry *domain.HistoryEntry) error
	UpdateFunc  func(ctx context.Context, ticket *domain.Ticket, entry *domain.HistoryEntry) error
	GetByIDFunc func(ctx context.Context, id string) (*domain.Ticket, error)
	ListFunc    func(ctx context.Context, filter repository.TicketFilter) ([]domain.Ticket, int, error)
	DeleteFunc  func(ctx context.Context, id string) error

	historyWrites []domain.HistoryEntry
}

func (m *mockTicketRepo) Create(ctx context.Context, ticket *domain.Ticket, entry *domain.HistoryEntry) error {
	if entry != nil {
		m.historyWrites = append(m.historyWrites, *entry)
	}
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, ticket, entry)
	}
	return nil
}

func (m *mockTicketRepo) Update(ctx context.Context, ticket *domain.Ticket, entry *domain.HistoryEntry) error {
	if entry != nil {
		m.historyWrites = append(m.historyWrites, *entry)
	}
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, ticket, entry)
	}
	return nil
}

func (m *mockTicketRepo) GetByID(ctx context.Context, id string) (*domain.Ticket, error) {
	return m.GetByIDFunc(ctx, id)
}

func (m *mockTicketRepo) List(ctx context.Context, filter repository.TicketFilter) ([]domain.Ticket, int, error) {
	return m.ListFunc(ctx, filter)
}

func (m *mockTicketRepo) Delete(ctx context.Context, id string) error {
	return m.DeleteFunc(ctx, id)
}

type mockUserRepo struct {
	GetByIDFunc func(ctx context.Context, id string) (*domain.User, error)
	ListFunc    func(ctx context.Context, filter repository.UserFilter) ([]domain.User, int, error)
	DeleteFunc  func(ctx context.Context, id string) error
}

func (m *mockUserRepo) GetByID(ctx context.Context, id string) (*domain.User, error) {
	return m.GetByIDFunc(ctx, id)
}

func (m *mockUserRepo) List(ctx context.Context, filter repository.UserFilter) ([]domain.User, int, error) {
	return m.ListFunc(ctx, filter)
}

func (m *mockUserRepo) Delete(ctx context.Context, id string) error {
	return m.DeleteFunc(ctx, id)
}

type mockHistoryRepo struct {
	ListByTicketFunc func(ctx context.Context, ticketID string, limit, offset int) ([]domain.HistoryEntry, int, error)
}

func (m *mockHistoryRepo) ListByTicket(ctx context.Context, ticketID string, limit, offset int) ([]domain.HistoryEntry, int, error) {
	return m.ListByTicketFunc(ctx, ticketID, limit, offset)
}

// recordingDispatcher captures published events for assertions.
type recordingDispatcher struct {
	mu     sync.Mutex
	events []events.Event
}

func (d *recordingDispatcher) Publish(_ context.Context, event events.Event) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.events = append(d.events, event)
	return nil
}

func (d *recordingDispatcher) Subscribe(events.EventType, events.EventHandler) {}

func (d *recordingDispatcher) published() []events.Event {
	d.mu.Lock()
	defer d.mu.Unlock()
	return append([]events.Event{}, d.events...)
}
