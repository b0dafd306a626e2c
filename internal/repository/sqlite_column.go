package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/easykanban/kanban/internal/db"
	"github.com/easykanban/kanban/internal/domain"
)

// columnColumns is the canonical SELECT column list for columns.
const columnColumns = `id, board_id, name, position, created_at, updated_at`

// SQLiteColumnRepo implements ColumnRepo using a SQLite database.
type SQLiteColumnRepo struct {
	db db.DBTX
}

// NewSQLiteColumnRepo creates a new SQLiteColumnRepo.
func NewSQLiteColumnRepo(conn db.DBTX) *SQLiteColumnRepo {
	return &SQLiteColumnRepo{db: conn}
}

func (r *SQLiteColumnRepo) Create(ctx context.Context, c *domain.Column) error {
	query := `INSERT INTO columns (id, board_id, name, position, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		c.ID,
		c.BoardID,
		c.Name,
		c.Position,
		c.CreatedAt.Format(time.RFC3339),
		c.UpdatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("inserting column: %w", err)
	}
	return nil
}

func (r *SQLiteColumnRepo) GetByID(ctx context.Context, id string) (*domain.Column, error) {
	query := `SELECT ` + columnColumns + ` FROM columns WHERE id = ?`
	var c domain.Column
	var createdAtStr, updatedAtStr string
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&c.ID, &c.BoardID, &c.Name, &c.Position, &createdAtStr, &updatedAtStr,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("column: %w", ErrNotFound)
		}
		return nil, fmt.Errorf("scanning column: %w", err)
	}
	return r.populateColumn(&c, createdAtStr, updatedAtStr)
}

func (r *SQLiteColumnRepo) ListByBoard(ctx context.Context, boardID string) ([]*domain.Column, error) {
	query := `SELECT ` + columnColumns + ` FROM columns WHERE board_id = ? ORDER BY position`
	rows, err := r.db.QueryContext(ctx, query, boardID)
	if err != nil {
		return nil, fmt.Errorf("listing columns by board: %w", err)
	}
	defer rows.Close()

	var cols []*domain.Column
	for rows.Next() {
		var c domain.Column
		var createdAtStr, updatedAtStr string
		if err := rows.Scan(&c.ID, &c.BoardID, &c.Name, &c.Position, &createdAtStr, &updatedAtStr); err != nil {
			return nil, fmt.Errorf("scanning column row: %w", err)
		}
		col, err := r.populateColumn(&c, createdAtStr, updatedAtStr)
		if err != nil {
			return nil, err
		}
		cols = append(cols, col)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating columns: %w", err)
	}
	return cols, nil
}

// Rename updates the name only. Positions and parentage are owned by
// the reorder protocol and never written outside it.
func (r *SQLiteColumnRepo) Rename(ctx context.Context, id, name string) error {
	query := `UPDATE columns SET name = ?, updated_at = ? WHERE id = ?`
	res, err := r.db.ExecContext(ctx, query, name, nowUTC(), id)
	if err != nil {
		return fmt.Errorf("renaming column: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("renaming column: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("column %s: %w", id, ErrNotFound)
	}
	return nil
}

func (r *SQLiteColumnRepo) Delete(ctx context.Context, id string) error {
	query := `DELETE FROM columns WHERE id = ?`
	_, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("deleting column: %w", err)
	}
	return nil
}

func (r *SQLiteColumnRepo) populateColumn(c *domain.Column, createdAtStr, updatedAtStr string) (*domain.Column, error) {
	var parseErr error
	c.CreatedAt, parseErr = time.Parse(time.RFC3339, createdAtStr)
	if parseErr != nil {
		return nil, fmt.Errorf("parsing created_at: %w", parseErr)
	}
	c.UpdatedAt, parseErr = time.Parse(time.RFC3339, updatedAtStr)
	if parseErr != nil {
		return nil, fmt.Errorf("parsing updated_at: %w", parseErr)
	}
	return c, nil
}
