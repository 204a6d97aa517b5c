package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/helpdesk/internal/domain"
)

// HistoryRepository reads the append-only audit log. Writes happen inside the
// ticket mutation transaction, never here.
type HistoryRepository interface {
	ListByTicket(ctx context.Context, ticketID string, limit, offset int) ([]domain.HistoryEntry, int, error)
}

type historyRepository struct {
	pool *pgxpool.Pool
}

// NewHistoryRepository builds repository.
func NewHistoryRepository(pool *pgxpool.Pool) HistoryRepository {
	return &historyRepository{pool: pool}
}

func (r *historyRepository) ListByTicket(ctx context.Context, ticketID string, limit, offset int) ([]domain.HistoryEntry, int, error) {
	var total int
	if err := r.pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM ticket_history WHERE ticket_id=$1`, ticketID,
	).Scan(&total); err != nil {
		return nil, 0, err
	}

	if limit <= 0 {
		limit = 10
	}
	if offset < 0 {
		offset = 0
	}

	// seq breaks ties between entries created in the same clock tick.
	const query = `
        SELECT id, ticket_id, action, from_status, to_status, notes, performed_by, seq, created_at
        FROM ticket_history WHERE ticket_id=$1
        ORDER BY created_at ASC, seq ASC
        LIMIT $2 OFFSET $3`
	rows, err := r.pool.Query(ctx, query, ticketID, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var result []domain.HistoryEntry
	for rows.Next() {
		var entry domain.HistoryEntry
		if err := rows.Scan(
			&entry.ID,
			&entry.TicketID,
			&entry.Action,
			&entry.FromStatus,
			&entry.ToStatus,
			&entry.Notes,
			&entry.PerformedByID,
			&entry.Seq,
			&entry.CreatedAt,
		); err != nil {
			return nil, 0, err
		}
		result = append(result, entry)
	}
	return result, total, rows.Err()
}
