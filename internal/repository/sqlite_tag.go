package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/easykanban/kanban/internal/db"
	"github.com/easykanban/kanban/internal/domain"
)

// SQLiteTagRepo implements TagRepo using a SQLite database.
type SQLiteTagRepo struct {
	db db.DBTX
}

// NewSQLiteTagRepo creates a new SQLiteTagRepo.
func NewSQLiteTagRepo(conn db.DBTX) *SQLiteTagRepo {
	return &SQLiteTagRepo{db: conn}
}

func (r *SQLiteTagRepo) Create(ctx context.Context, t *domain.Tag) error {
	query := `INSERT INTO tags (id, name, color) VALUES (?, ?, ?)`
	if _, err := r.db.ExecContext(ctx, query, t.ID, t.Name, t.Color); err != nil {
		return fmt.Errorf("inserting tag: %w", err)
	}
	return nil
}

func (r *SQLiteTagRepo) GetByName(ctx context.Context, name string) (*domain.Tag, error) {
	query := `SELECT id, name, color FROM tags WHERE name = ?`
	var t domain.Tag
	err := r.db.QueryRowContext(ctx, query, name).Scan(&t.ID, &t.Name, &t.Color)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("tag %q: %w", name, ErrNotFound)
		}
		return nil, fmt.Errorf("scanning tag: %w", err)
	}
	return &t, nil
}

func (r *SQLiteTagRepo) List(ctx context.Context) ([]*domain.Tag, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id, name, color FROM tags ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("listing tags: %w", err)
	}
	defer rows.Close()
	return r.scanTags(rows)
}

func (r *SQLiteTagRepo) Attach(ctx context.Context, taskID, tagID string) error {
	query := `INSERT OR IGNORE INTO task_tags (task_id, tag_id) VALUES (?, ?)`
	if _, err := r.db.ExecContext(ctx, query, taskID, tagID); err != nil {
		return fmt.Errorf("attaching tag: %w", err)
	}
	return nil
}

func (r *SQLiteTagRepo) Detach(ctx context.Context, taskID, tagID string) error {
	query := `DELETE FROM task_tags WHERE task_id = ? AND tag_id = ?`
	if _, err := r.db.ExecContext(ctx, query, taskID, tagID); err != nil {
		return fmt.Errorf("detaching tag: %w", err)
	}
	return nil
}

func (r *SQLiteTagRepo) ListByTask(ctx context.Context, taskID string) ([]*domain.Tag, error) {
	query := `SELECT t.id, t.name, t.color FROM tags t
		JOIN task_tags tt ON tt.tag_id = t.id
		WHERE tt.task_id = ?
		ORDER BY t.name`
	rows, err := r.db.QueryContext(ctx, query, taskID)
	if err != nil {
		return nil, fmt.Errorf("listing tags for task: %w", err)
	}
	defer rows.Close()
	return r.scanTags(rows)
}

func (r *SQLiteTagRepo) Delete(ctx context.Context, id string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM tags WHERE id = ?`, id); err != nil {
		return fmt.Errorf("deleting tag: %w", err)
	}
	return nil
}

func (r *SQLiteTagRepo) scanTags(rows *sql.Rows) ([]*domain.Tag, error) {
	var tags []*domain.Tag
	for rows.Next() {
		var t domain.Tag
		if err := rows.Scan(&t.ID, &t.Name, &t.Color); err != nil {
			return nil, fmt.Errorf("scanning tag row: %w", err)
		}
		tags = append(tags, &t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating tags: %w", err)
	}
	return tags, nil
}
