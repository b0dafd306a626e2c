package repository

import (
	"context"
	"fmt"

	"github.com/easykanban/kanban/internal/db"
)

// SQLiteTicketSequenceRepo allocates board-prefix-scoped ticket numbers
// atomically using the ticket_sequences table.
type SQLiteTicketSequenceRepo struct {
	db db.DBTX
}

// NewSQLiteTicketSequenceRepo creates a new SQLiteTicketSequenceRepo.
func NewSQLiteTicketSequenceRepo(conn db.DBTX) *SQLiteTicketSequenceRepo {
	return &SQLiteTicketSequenceRepo{db: conn}
}

// NextTicketSeq returns the next available ticket number for a prefix.
// Allocation is atomic and safe under concurrent writes: the counter row
// is seeded once from the max existing suffix, then advanced with a single
// UPDATE...RETURNING. Callers must invoke this inside the transaction that
// inserts the task, so an aborted insert also rolls the counter back.
func (r *SQLiteTicketSequenceRepo) NextTicketSeq(ctx context.Context, prefix string) (int, error) {
	seedQuery := `INSERT OR IGNORE INTO ticket_sequences (prefix, next_seq)
		SELECT ?, COALESCE(MAX(CAST(substr(ticket, length(?) + 2) AS INTEGER)), 0) + 1
		FROM tasks WHERE ticket LIKE ? || '-%'`
	if _, err := r.db.ExecContext(ctx, seedQuery, prefix, prefix, prefix); err != nil {
		return 0, fmt.Errorf("seeding ticket sequence for %s: %w", prefix, err)
	}

	var next int
	allocQuery := `UPDATE ticket_sequences
		SET next_seq = next_seq + 1
		WHERE prefix = ?
		RETURNING next_seq - 1`
	if err := r.db.QueryRowContext(ctx, allocQuery, prefix).Scan(&next); err != nil {
		return 0, fmt.Errorf("allocating next ticket for prefix %s: %w", prefix, err)
	}

	return next, nil
}
