package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/easykanban/kanban/internal/db"
	"github.com/easykanban/kanban/internal/domain"
)

// taskColumns is the canonical SELECT column list for tasks.
const taskColumns = `id, column_id, ticket, title, description, priority, position,
		due_date, created_at, updated_at`

const dateLayout = "2006-01-02"

// SQLiteTaskRepo implements TaskRepo using a SQLite database.
type SQLiteTaskRepo struct {
	db db.DBTX
}

// NewSQLiteTaskRepo creates a new SQLiteTaskRepo.
func NewSQLiteTaskRepo(conn db.DBTX) *SQLiteTaskRepo {
	return &SQLiteTaskRepo{db: conn}
}

func (r *SQLiteTaskRepo) Create(ctx context.Context, t *domain.Task) error {
	query := `INSERT INTO tasks (id, column_id, ticket, title, description, priority, position,
		due_date, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		t.ID,
		t.ColumnID,
		t.Ticket,
		t.Title,
		t.Description,
		string(t.Priority),
		t.Position,
		nullableTimeToString(t.DueDate, dateLayout),
		t.CreatedAt.Format(time.RFC3339),
		t.UpdatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("inserting task: %w", err)
	}
	return nil
}

func (r *SQLiteTaskRepo) GetByID(ctx context.Context, id string) (*domain.Task, error) {
	query := `SELECT ` + taskColumns + ` FROM tasks WHERE id = ?`
	row := r.db.QueryRowContext(ctx, query, id)
	return r.scanTask(row)
}

func (r *SQLiteTaskRepo) GetByTicket(ctx context.Context, ticket string) (*domain.Task, error) {
	query := `SELECT ` + taskColumns + ` FROM tasks WHERE UPPER(ticket) = UPPER(?)`
	row := r.db.QueryRowContext(ctx, query, ticket)
	return r.scanTask(row)
}

func (r *SQLiteTaskRepo) ListByColumn(ctx context.Context, columnID string) ([]*domain.Task, error) {
	query := `SELECT ` + taskColumns + ` FROM tasks WHERE column_id = ? ORDER BY position`
	rows, err := r.db.QueryContext(ctx, query, columnID)
	if err != nil {
		return nil, fmt.Errorf("listing tasks by column: %w", err)
	}
	defer rows.Close()
	return r.scanTasks(rows)
}

func (r *SQLiteTaskRepo) ListByBoard(ctx context.Context, boardID string) ([]*domain.Task, error) {
	query := `SELECT t.id, t.column_id, t.ticket, t.title, t.description, t.priority, t.position,
		t.due_date, t.created_at, t.updated_at
		FROM tasks t
		JOIN columns c ON c.id = t.column_id
		WHERE c.board_id = ?
		ORDER BY c.position, t.position`
	rows, err := r.db.QueryContext(ctx, query, boardID)
	if err != nil {
		return nil, fmt.Errorf("listing tasks by board: %w", err)
	}
	defer rows.Close()
	return r.scanTasks(rows)
}

// Patch applies a partial update. The SET clause is assembled from the fixed
// TaskPatch field set; caller input never contributes column names.
func (r *SQLiteTaskRepo) Patch(ctx context.Context, id string, patch domain.TaskPatch) error {
	sets := []string{"updated_at = ?"}
	args := []any{nowUTC()}

	if patch.Title != nil {
		sets = append(sets, "title = ?")
		args = append(args, *patch.Title)
	}
	if patch.Description != nil {
		sets = append(sets, "description = ?")
		args = append(args, *patch.Description)
	}
	if patch.Priority != nil {
		sets = append(sets, "priority = ?")
		args = append(args, string(*patch.Priority))
	}
	if patch.ClearDueDate {
		sets = append(sets, "due_date = NULL")
	} else if patch.DueDate != nil {
		sets = append(sets, "due_date = ?")
		args = append(args, patch.DueDate.Format(dateLayout))
	}

	args = append(args, id)
	query := `UPDATE tasks SET ` + strings.Join(sets, ", ") + ` WHERE id = ?`
	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("patching task: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("patching task: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("task %s: %w", id, ErrNotFound)
	}
	return nil
}

func (r *SQLiteTaskRepo) SetColumn(ctx context.Context, id, columnID string, position int, ticket string) error {
	query := `UPDATE tasks SET column_id = ?, position = ?, updated_at = ? WHERE id = ?`
	args := []any{columnID, position, nowUTC(), id}
	if ticket != "" {
		query = `UPDATE tasks SET column_id = ?, position = ?, ticket = ?, updated_at = ? WHERE id = ?`
		args = []any{columnID, position, ticket, nowUTC(), id}
	}
	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("re-parenting task: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("re-parenting task: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("task %s: %w", id, ErrNotFound)
	}
	return nil
}

func (r *SQLiteTaskRepo) Delete(ctx context.Context, id string) error {
	query := `DELETE FROM tasks WHERE id = ?`
	_, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("deleting task: %w", err)
	}
	return nil
}

// scanTask scans a single task from a *sql.Row.
func (r *SQLiteTaskRepo) scanTask(row *sql.Row) (*domain.Task, error) {
	var t domain.Task
	var priorityStr, createdAtStr, updatedAtStr string
	var dueDateStr sql.NullString

	err := row.Scan(
		&t.ID, &t.ColumnID, &t.Ticket, &t.Title, &t.Description, &priorityStr, &t.Position,
		&dueDateStr, &createdAtStr, &updatedAtStr,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("task: %w", ErrNotFound)
		}
		return nil, fmt.Errorf("scanning task: %w", err)
	}
	return r.populateTask(&t, priorityStr, createdAtStr, updatedAtStr, dueDateStr)
}

// scanTasks scans multiple tasks from *sql.Rows.
func (r *SQLiteTaskRepo) scanTasks(rows *sql.Rows) ([]*domain.Task, error) {
	var tasks []*domain.Task
	for rows.Next() {
		var t domain.Task
		var priorityStr, createdAtStr, updatedAtStr string
		var dueDateStr sql.NullString

		err := rows.Scan(
			&t.ID, &t.ColumnID, &t.Ticket, &t.Title, &t.Description, &priorityStr, &t.Position,
			&dueDateStr, &createdAtStr, &updatedAtStr,
		)
		if err != nil {
			return nil, fmt.Errorf("scanning task row: %w", err)
		}
		task, err := r.populateTask(&t, priorityStr, createdAtStr, updatedAtStr, dueDateStr)
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, task)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating tasks: %w", err)
	}
	return tasks, nil
}

func (r *SQLiteTaskRepo) populateTask(t *domain.Task, priorityStr, createdAtStr, updatedAtStr string, dueDateStr sql.NullString) (*domain.Task, error) {
	t.Priority = domain.Priority(priorityStr)

	var parseErr error
	t.CreatedAt, parseErr = time.Parse(time.RFC3339, createdAtStr)
	if parseErr != nil {
		return nil, fmt.Errorf("parsing created_at: %w", parseErr)
	}
	t.UpdatedAt, parseErr = time.Parse(time.RFC3339, updatedAtStr)
	if parseErr != nil {
		return nil, fmt.Errorf("parsing updated_at: %w", parseErr)
	}
	t.DueDate = parseNullableTime(dueDateStr, dateLayout)
	return t, nil
}
