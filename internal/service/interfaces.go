package service

import (
	"context"
	"time"

	"github.com/easykanban/kanban/internal/domain"
)

type BoardService interface {
	Create(ctx context.Context, name, prefix string) (*domain.Board, error)
	GetByID(ctx context.Context, id string) (*domain.Board, error)
	GetByPrefix(ctx context.Context, prefix string) (*domain.Board, error)
	List(ctx context.Context, includeArchived bool) ([]*domain.Board, error)
	Rename(ctx context.Context, id, name string) error
	Reorder(ctx context.Context, id string, target int) error
	Archive(ctx context.Context, id string) error
	Unarchive(ctx context.Context, id string) error
	Delete(ctx context.Context, id string) error
}

type ColumnService interface {
	// Create inserts a column at pos (ordering.AtEnd appends).
	Create(ctx context.Context, boardID, name string, pos int) (*domain.Column, error)
	GetByID(ctx context.Context, id string) (*domain.Column, error)
	ListByBoard(ctx context.Context, boardID string) ([]*domain.Column, error)
	Rename(ctx context.Context, id, name string) error
	Reorder(ctx context.Context, id string, target int) error
	Delete(ctx context.Context, id string) error
}

// CreateTaskInput carries optional fields for TaskService.Create.
type CreateTaskInput struct {
	Description string
	Priority    domain.Priority
	DueDate     *time.Time
	// AtTop inserts the task at position 0, shifting siblings down;
	// otherwise the task is appended.
	AtTop bool
}

type TaskService interface {
	Create(ctx context.Context, columnID, title string, in CreateTaskInput) (*domain.Task, error)
	GetByID(ctx context.Context, id string) (*domain.Task, error)
	GetByTicket(ctx context.Context, ticket string) (*domain.Task, error)
	GetDetail(ctx context.Context, id string) (*domain.TaskDetail, error)
	ListByColumn(ctx context.Context, columnID string) ([]*domain.Task, error)
	ListByBoard(ctx context.Context, boardID string) ([]*domain.Task, error)
	Patch(ctx context.Context, id string, patch domain.TaskPatch) error
	Reorder(ctx context.Context, id string, target int) error
	// MoveToColumn re-parents the task, inserting it at pos in the
	// destination (ordering.AtEnd appends) and renumbering the source
	// column, all in one transaction. Moving across boards re-mints the
	// ticket from the destination board's prefix; the task keeps its ID and
	// its comments, attachments, and tags.
	MoveToColumn(ctx context.Context, id, toColumnID string, pos int) error
	Delete(ctx context.Context, id string) error

	AddComment(ctx context.Context, taskID, author, body string) (*domain.Comment, error)
	Comments(ctx context.Context, taskID string) ([]*domain.Comment, error)
	AddAttachment(ctx context.Context, taskID, fileName string, sizeBytes int64) (*domain.Attachment, error)
	Attachments(ctx context.Context, taskID string) ([]*domain.Attachment, error)
}

type TagService interface {
	GetOrCreate(ctx context.Context, name, color string) (*domain.Tag, error)
	List(ctx context.Context) ([]*domain.Tag, error)
	Attach(ctx context.Context, taskID, tagName string) error
	Detach(ctx context.Context, taskID, tagName string) error
	ListByTask(ctx context.Context, taskID string) ([]*domain.Tag, error)
}
