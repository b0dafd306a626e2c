package repository

import (
	"context"

	"github.com/easykanban/kanban/internal/domain"
)

type BoardRepo interface {
	Create(ctx context.Context, b *domain.Board) error
	GetByID(ctx context.Context, id string) (*domain.Board, error)
	GetByPrefix(ctx context.Context, prefix string) (*domain.Board, error)
	List(ctx context.Context, includeArchived bool) ([]*domain.Board, error)
	Rename(ctx context.Context, id, name string) error
	Archive(ctx context.Context, id string) error
	Unarchive(ctx context.Context, id string) error
	Delete(ctx context.Context, id string) error
}

type ColumnRepo interface {
	Create(ctx context.Context, c *domain.Column) error
	GetByID(ctx context.Context, id string) (*domain.Column, error)
	ListByBoard(ctx context.Context, boardID string) ([]*domain.Column, error)
	Rename(ctx context.Context, id, name string) error
	Delete(ctx context.Context, id string) error
}

type TaskRepo interface {
	Create(ctx context.Context, t *domain.Task) error
	GetByID(ctx context.Context, id string) (*domain.Task, error)
	GetByTicket(ctx context.Context, ticket string) (*domain.Task, error)
	ListByColumn(ctx context.Context, columnID string) ([]*domain.Task, error)
	ListByBoard(ctx context.Context, boardID string) ([]*domain.Task, error)
	Patch(ctx context.Context, id string, patch domain.TaskPatch) error
	// SetColumn re-parents the task into columnID at the given position,
	// optionally replacing its ticket (empty keeps the current one).
	// Position bookkeeping in both scopes is the caller's responsibility.
	SetColumn(ctx context.Context, id, columnID string, position int, ticket string) error
	Delete(ctx context.Context, id string) error
}

type CommentRepo interface {
	Create(ctx context.Context, c *domain.Comment) error
	ListByTask(ctx context.Context, taskID string) ([]*domain.Comment, error)
	Delete(ctx context.Context, id string) error
}

type AttachmentRepo interface {
	Create(ctx context.Context, a *domain.Attachment) error
	ListByTask(ctx context.Context, taskID string) ([]*domain.Attachment, error)
	Delete(ctx context.Context, id string) error
}

type TagRepo interface {
	Create(ctx context.Context, t *domain.Tag) error
	GetByName(ctx context.Context, name string) (*domain.Tag, error)
	List(ctx context.Context) ([]*domain.Tag, error)
	Attach(ctx context.Context, taskID, tagID string) error
	Detach(ctx context.Context, taskID, tagID string) error
	ListByTask(ctx context.Context, taskID string) ([]*domain.Tag, error)
	Delete(ctx context.Context, id string) error
}

type TicketSequenceRepo interface {
	NextTicketSeq(ctx context.Context, prefix string) (int, error)
}
