package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/easykanban/kanban/internal/db"
	"github.com/easykanban/kanban/internal/domain"
)

// SQLiteAttachmentRepo implements AttachmentRepo using a SQLite database.
type SQLiteAttachmentRepo struct {
	db db.DBTX
}

// NewSQLiteAttachmentRepo creates a new SQLiteAttachmentRepo.
func NewSQLiteAttachmentRepo(conn db.DBTX) *SQLiteAttachmentRepo {
	return &SQLiteAttachmentRepo{db: conn}
}

func (r *SQLiteAttachmentRepo) Create(ctx context.Context, a *domain.Attachment) error {
	query := `INSERT INTO attachments (id, task_id, file_name, size_bytes, created_at) VALUES (?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		a.ID, a.TaskID, a.FileName, a.SizeBytes, a.CreatedAt.Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("inserting attachment: %w", err)
	}
	return nil
}

func (r *SQLiteAttachmentRepo) ListByTask(ctx context.Context, taskID string) ([]*domain.Attachment, error) {
	query := `SELECT id, task_id, file_name, size_bytes, created_at FROM attachments WHERE task_id = ? ORDER BY created_at`
	rows, err := r.db.QueryContext(ctx, query, taskID)
	if err != nil {
		return nil, fmt.Errorf("listing attachments: %w", err)
	}
	defer rows.Close()

	var attachments []*domain.Attachment
	for rows.Next() {
		var a domain.Attachment
		var createdAtStr string
		if err := rows.Scan(&a.ID, &a.TaskID, &a.FileName, &a.SizeBytes, &createdAtStr); err != nil {
			return nil, fmt.Errorf("scanning attachment row: %w", err)
		}
		a.CreatedAt, err = time.Parse(time.RFC3339, createdAtStr)
		if err != nil {
			return nil, fmt.Errorf("parsing created_at: %w", err)
		}
		attachments = append(attachments, &a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating attachments: %w", err)
	}
	return attachments, nil
}

func (r *SQLiteAttachmentRepo) Delete(ctx context.Context, id string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM attachments WHERE id = ?`, id); err != nil {
		return fmt.Errorf("deleting attachment: %w", err)
	}
	return nil
}
