package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/easykanban/kanban/internal/db"
	"github.com/easykanban/kanban/internal/ordering"
)

// The three scope adapters below expose each parent scope's position
// sequence as an ordering.Collection. Constructed from a transaction's DBTX
// they give the ordering protocol the single-transaction execution it
// requires.

// TaskCollection is the ordered set of tasks in one column.
func TaskCollection(conn db.DBTX, columnID string) ordering.Collection {
	return &sqlCollection{
		db:       conn,
		lenSQL:   `SELECT COUNT(*) FROM tasks WHERE column_id = ?`,
		posSQL:   `SELECT position FROM tasks WHERE id = ? AND column_id = ?`,
		shiftSQL: `UPDATE tasks SET position = position + ? WHERE column_id = ? AND position BETWEEN ? AND ?`,
		setSQL:   `UPDATE tasks SET position = ?, updated_at = ? WHERE id = ? AND column_id = ?`,
		scopeID:  columnID,
		label:    "task",
	}
}

// ColumnCollection is the ordered set of columns in one board.
func ColumnCollection(conn db.DBTX, boardID string) ordering.Collection {
	return &sqlCollection{
		db:       conn,
		lenSQL:   `SELECT COUNT(*) FROM columns WHERE board_id = ?`,
		posSQL:   `SELECT position FROM columns WHERE id = ? AND board_id = ?`,
		shiftSQL: `UPDATE columns SET position = position + ? WHERE board_id = ? AND position BETWEEN ? AND ?`,
		setSQL:   `UPDATE columns SET position = ?, updated_at = ? WHERE id = ? AND board_id = ?`,
		scopeID:  boardID,
		label:    "column",
	}
}

// BoardCollection is the ordered set of all boards in the workspace.
func BoardCollection(conn db.DBTX) ordering.Collection {
	return &workspaceCollection{db: conn}
}

type sqlCollection struct {
	db       db.DBTX
	lenSQL   string
	posSQL   string
	shiftSQL string
	setSQL   string
	scopeID  string
	label    string
}

func (c *sqlCollection) Len(ctx context.Context) (int, error) {
	var n int
	if err := c.db.QueryRowContext(ctx, c.lenSQL, c.scopeID).Scan(&n); err != nil {
		return 0, fmt.Errorf("counting %ss: %w", c.label, err)
	}
	return n, nil
}

func (c *sqlCollection) PositionOf(ctx context.Context, id string) (int, error) {
	var pos int
	err := c.db.QueryRowContext(ctx, c.posSQL, id, c.scopeID).Scan(&pos)
	if err != nil {
		if err == sql.ErrNoRows {
			return 0, fmt.Errorf("%s %s in scope %s: %w", c.label, id, c.scopeID, ordering.ErrNotFound)
		}
		return 0, fmt.Errorf("reading %s position: %w", c.label, err)
	}
	return pos, nil
}

func (c *sqlCollection) ShiftRange(ctx context.Context, lo, hi, delta int) error {
	if _, err := c.db.ExecContext(ctx, c.shiftSQL, delta, c.scopeID, lo, hi); err != nil {
		return fmt.Errorf("shifting %s positions: %w", c.label, err)
	}
	return nil
}

func (c *sqlCollection) SetPosition(ctx context.Context, id string, pos int) error {
	res, err := c.db.ExecContext(ctx, c.setSQL, pos, nowUTC(), id, c.scopeID)
	if err != nil {
		return fmt.Errorf("setting %s position: %w", c.label, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("setting %s position: %w", c.label, err)
	}
	if n == 0 {
		return fmt.Errorf("%s %s in scope %s: %w", c.label, id, c.scopeID, ordering.ErrNotFound)
	}
	return nil
}

// workspaceCollection orders boards; the workspace is a single implicit
// scope, so the queries carry no scope parameter.
type workspaceCollection struct {
	db db.DBTX
}

func (c *workspaceCollection) Len(ctx context.Context) (int, error) {
	var n int
	if err := c.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM boards`).Scan(&n); err != nil {
		return 0, fmt.Errorf("counting boards: %w", err)
	}
	return n, nil
}

func (c *workspaceCollection) PositionOf(ctx context.Context, id string) (int, error) {
	var pos int
	err := c.db.QueryRowContext(ctx, `SELECT position FROM boards WHERE id = ?`, id).Scan(&pos)
	if err != nil {
		if err == sql.ErrNoRows {
			return 0, fmt.Errorf("board %s: %w", id, ordering.ErrNotFound)
		}
		return 0, fmt.Errorf("reading board position: %w", err)
	}
	return pos, nil
}

func (c *workspaceCollection) ShiftRange(ctx context.Context, lo, hi, delta int) error {
	query := `UPDATE boards SET position = position + ? WHERE position BETWEEN ? AND ?`
	if _, err := c.db.ExecContext(ctx, query, delta, lo, hi); err != nil {
		return fmt.Errorf("shifting board positions: %w", err)
	}
	return nil
}

func (c *workspaceCollection) SetPosition(ctx context.Context, id string, pos int) error {
	query := `UPDATE boards SET position = ?, updated_at = ? WHERE id = ?`
	res, err := c.db.ExecContext(ctx, query, pos, nowUTC(), id)
	if err != nil {
		return fmt.Errorf("setting board position: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("setting board position: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("board %s: %w", id, ordering.ErrNotFound)
	}
	return nil
}
