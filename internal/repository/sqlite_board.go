package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/easykanban/kanban/internal/db"
	"github.com/easykanban/kanban/internal/domain"
)

// boardColumns is the canonical SELECT column list for boards.
const boardColumns = `id, prefix, name, position, archived_at, created_at, updated_at`

// SQLiteBoardRepo implements BoardRepo using a SQLite database.
type SQLiteBoardRepo struct {
	db db.DBTX
}

// NewSQLiteBoardRepo creates a new SQLiteBoardRepo. Passing a transaction's
// DBTX yields a tx-scoped repository.
func NewSQLiteBoardRepo(conn db.DBTX) *SQLiteBoardRepo {
	return &SQLiteBoardRepo{db: conn}
}

func (r *SQLiteBoardRepo) Create(ctx context.Context, b *domain.Board) error {
	query := `INSERT INTO boards (id, prefix, name, position, archived_at, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		b.ID,
		b.Prefix,
		b.Name,
		b.Position,
		nullableTimeToString(b.ArchivedAt, time.RFC3339),
		b.CreatedAt.Format(time.RFC3339),
		b.UpdatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("inserting board: %w", err)
	}
	return nil
}

func (r *SQLiteBoardRepo) GetByID(ctx context.Context, id string) (*domain.Board, error) {
	query := `SELECT ` + boardColumns + ` FROM boards WHERE id = ?`
	row := r.db.QueryRowContext(ctx, query, id)
	return r.scanBoard(row)
}

func (r *SQLiteBoardRepo) GetByPrefix(ctx context.Context, prefix string) (*domain.Board, error) {
	query := `SELECT ` + boardColumns + ` FROM boards WHERE UPPER(prefix) = UPPER(?)`
	row := r.db.QueryRowContext(ctx, query, prefix)
	return r.scanBoard(row)
}

func (r *SQLiteBoardRepo) List(ctx context.Context, includeArchived bool) ([]*domain.Board, error) {
	query := `SELECT ` + boardColumns + ` FROM boards ORDER BY position`
	if !includeArchived {
		query = `SELECT ` + boardColumns + ` FROM boards WHERE archived_at IS NULL ORDER BY position`
	}
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("listing boards: %w", err)
	}
	defer rows.Close()

	var boards []*domain.Board
	for rows.Next() {
		b, err := r.scanBoardFromRows(rows)
		if err != nil {
			return nil, err
		}
		boards = append(boards, b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating boards: %w", err)
	}
	return boards, nil
}

// Rename updates the name only. Positions are owned by the reorder
// protocol and never written outside it.
func (r *SQLiteBoardRepo) Rename(ctx context.Context, id, name string) error {
	query := `UPDATE boards SET name = ?, updated_at = ? WHERE id = ?`
	res, err := r.db.ExecContext(ctx, query, name, nowUTC(), id)
	if err != nil {
		return fmt.Errorf("renaming board: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("renaming board: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("board %s: %w", id, ErrNotFound)
	}
	return nil
}

func (r *SQLiteBoardRepo) Archive(ctx context.Context, id string) error {
	now := nowUTC()
	query := `UPDATE boards SET archived_at = ?, updated_at = ? WHERE id = ?`
	_, err := r.db.ExecContext(ctx, query, now, now, id)
	if err != nil {
		return fmt.Errorf("archiving board: %w", err)
	}
	return nil
}

func (r *SQLiteBoardRepo) Unarchive(ctx context.Context, id string) error {
	query := `UPDATE boards SET archived_at = NULL, updated_at = ? WHERE id = ?`
	_, err := r.db.ExecContext(ctx, query, nowUTC(), id)
	if err != nil {
		return fmt.Errorf("unarchiving board: %w", err)
	}
	return nil
}

func (r *SQLiteBoardRepo) Delete(ctx context.Context, id string) error {
	query := `DELETE FROM boards WHERE id = ?`
	_, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("deleting board: %w", err)
	}
	return nil
}

// scanBoard scans a single board row from a *sql.Row.
func (r *SQLiteBoardRepo) scanBoard(row *sql.Row) (*domain.Board, error) {
	var b domain.Board
	var createdAtStr, updatedAtStr string
	var archivedAtStr sql.NullString

	err := row.Scan(&b.ID, &b.Prefix, &b.Name, &b.Position, &archivedAtStr, &createdAtStr, &updatedAtStr)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("board: %w", ErrNotFound)
		}
		return nil, fmt.Errorf("scanning board: %w", err)
	}
	return r.populateBoard(&b, createdAtStr, updatedAtStr, archivedAtStr)
}

// scanBoardFromRows scans a single board row from *sql.Rows.
func (r *SQLiteBoardRepo) scanBoardFromRows(rows *sql.Rows) (*domain.Board, error) {
	var b domain.Board
	var createdAtStr, updatedAtStr string
	var archivedAtStr sql.NullString

	err := rows.Scan(&b.ID, &b.Prefix, &b.Name, &b.Position, &archivedAtStr, &createdAtStr, &updatedAtStr)
	if err != nil {
		return nil, fmt.Errorf("scanning board row: %w", err)
	}
	return r.populateBoard(&b, createdAtStr, updatedAtStr, archivedAtStr)
}

func (r *SQLiteBoardRepo) populateBoard(b *domain.Board, createdAtStr, updatedAtStr string, archivedAtStr sql.NullString) (*domain.Board, error) {
	var parseErr error
	b.CreatedAt, parseErr = time.Parse(time.RFC3339, createdAtStr)
	if parseErr != nil {
		return nil, fmt.Errorf("parsing created_at: %w", parseErr)
	}
	b.UpdatedAt, parseErr = time.Parse(time.RFC3339, updatedAtStr)
	if parseErr != nil {
		return nil, fmt.Errorf("parsing updated_at: %w", parseErr)
	}
	b.ArchivedAt = parseNullableTime(archivedAtStr, time.RFC3339)
	return b, nil
}
