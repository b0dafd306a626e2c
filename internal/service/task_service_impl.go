package service

import (
	"context"
	"fmt"
	"time"

	"github.com/easykanban/kanban/internal/db"
	"github.com/easykanban/kanban/internal/domain"
	"github.com/easykanban/kanban/internal/ordering"
	"github.com/easykanban/kanban/internal/repository"
	"github.com/google/uuid"
)

type taskService struct {
	tasks       repository.TaskRepo
	columns     repository.ColumnRepo
	comments    repository.CommentRepo
	attachments repository.AttachmentRepo
	tags        repository.TagRepo
	uow         db.UnitOfWork
	observer    MoveObserver
}

func NewTaskService(
	tasks repository.TaskRepo,
	columns repository.ColumnRepo,
	comments repository.CommentRepo,
	attachments repository.AttachmentRepo,
	tags repository.TagRepo,
	uow db.UnitOfWork,
	observer MoveObserver,
) TaskService {
	if observer == nil {
		observer = NoopMoveObserver{}
	}
	return &taskService{
		tasks:       tasks,
		columns:     columns,
		comments:    comments,
		attachments: attachments,
		tags:        tags,
		uow:         uow,
		observer:    observer,
	}
}

func (s *taskService) Create(ctx context.Context, columnID, title string, in CreateTaskInput) (*domain.Task, error) {
	if title == "" {
		return nil, fmt.Errorf("task title is required")
	}
	priority := in.Priority
	if priority == "" {
		priority = domain.PriorityMedium
	}
	if !domain.ValidPriorities[string(priority)] {
		return nil, fmt.Errorf("invalid priority %q", priority)
	}

	now := time.Now().UTC()
	t := &domain.Task{
		ID:          uuid.New().String(),
		ColumnID:    columnID,
		Title:       title,
		Description: in.Description,
		Priority:    priority,
		DueDate:     in.DueDate,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	// The ticket allocation, the slot shift, and the insert share one
	// transaction: a failure in any step rolls all of them back, and the
	// sibling count can't change between the read and the insert.
	err := db.RunInTxWithRetry(ctx, s.uow, func(ctx context.Context, tx db.DBTX) error {
		col, err := repository.NewSQLiteColumnRepo(tx).GetByID(ctx, columnID)
		if err != nil {
			return err
		}
		board, err := repository.NewSQLiteBoardRepo(tx).GetByID(ctx, col.BoardID)
		if err != nil {
			return err
		}
		seq, err := repository.NewSQLiteTicketSequenceRepo(tx).NextTicketSeq(ctx, board.Prefix)
		if err != nil {
			return err
		}
		t.Ticket = domain.FormatTicket(board.Prefix, seq)

		pos := ordering.AtEnd
		if in.AtTop {
			pos = 0
		}
		slot, err := ordering.InsertSlot(ctx, repository.TaskCollection(tx, columnID), pos)
		if err != nil {
			return err
		}
		t.Position = slot
		return repository.NewSQLiteTaskRepo(tx).Create(ctx, t)
	})
	if err != nil {
		return nil, err
	}
	return t, nil
}

func (s *taskService) GetByID(ctx context.Context, id string) (*domain.Task, error) {
	return s.tasks.GetByID(ctx, id)
}

func (s *taskService) GetByTicket(ctx context.Context, ticket string) (*domain.Task, error) {
	return s.tasks.GetByTicket(ctx, ticket)
}

func (s *taskService) GetDetail(ctx context.Context, id string) (*domain.TaskDetail, error) {
	t, err := s.tasks.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	comments, err := s.comments.ListByTask(ctx, id)
	if err != nil {
		return nil, err
	}
	attachments, err := s.attachments.ListByTask(ctx, id)
	if err != nil {
		return nil, err
	}
	tags, err := s.tags.ListByTask(ctx, id)
	if err != nil {
		return nil, err
	}
	return &domain.TaskDetail{
		Task:        *t,
		Comments:    comments,
		Attachments: attachments,
		Tags:        tags,
	}, nil
}

func (s *taskService) ListByColumn(ctx context.Context, columnID string) ([]*domain.Task, error) {
	return s.tasks.ListByColumn(ctx, columnID)
}

func (s *taskService) ListByBoard(ctx context.Context, boardID string) ([]*domain.Task, error) {
	return s.tasks.ListByBoard(ctx, boardID)
}

func (s *taskService) Patch(ctx context.Context, id string, patch domain.TaskPatch) error {
	if patch.Empty() {
		return nil
	}
	if patch.Priority != nil && !domain.ValidPriorities[string(*patch.Priority)] {
		return fmt.Errorf("invalid priority %q", *patch.Priority)
	}
	return s.tasks.Patch(ctx, id, patch)
}

func (s *taskService) Reorder(ctx context.Context, id string, target int) error {
	var from int
	var columnID string
	err := db.RunInTxWithRetry(ctx, s.uow, func(ctx context.Context, tx db.DBTX) error {
		t, err := repository.NewSQLiteTaskRepo(tx).GetByID(ctx, id)
		if err != nil {
			return err
		}
		columnID = t.ColumnID
		from, err = ordering.Reorder(ctx, repository.TaskCollection(tx, t.ColumnID), id, target)
		return err
	})
	if err != nil {
		return err
	}
	s.observer.ObserveMove(ctx, MoveEvent{
		Kind: "task", ItemID: id, FromScope: columnID, ToScope: columnID,
		FromPos: from, ToPos: target,
	})
	return nil
}

func (s *taskService) MoveToColumn(ctx context.Context, id, toColumnID string, pos int) error {
	var event MoveEvent

	err := db.RunInTxWithRetry(ctx, s.uow, func(ctx context.Context, tx db.DBTX) error {
		txTasks := repository.NewSQLiteTaskRepo(tx)
		txCols := repository.NewSQLiteColumnRepo(tx)

		t, err := txTasks.GetByID(ctx, id)
		if err != nil {
			return err
		}

		if t.ColumnID == toColumnID {
			// Degenerates to an in-column reorder.
			coll := repository.TaskCollection(tx, t.ColumnID)
			target := pos
			if target == ordering.AtEnd {
				n, err := coll.Len(ctx)
				if err != nil {
					return err
				}
				target = n - 1
			}
			from, err := ordering.Reorder(ctx, coll, id, target)
			if err != nil {
				return err
			}
			event = MoveEvent{
				Kind: "task", ItemID: id, FromScope: t.ColumnID, ToScope: t.ColumnID,
				FromPos: from, ToPos: target,
			}
			return nil
		}

		fromCol, err := txCols.GetByID(ctx, t.ColumnID)
		if err != nil {
			return err
		}
		destCol, err := txCols.GetByID(ctx, toColumnID)
		if err != nil {
			return err
		}

		// Crossing a board boundary re-mints the ticket from the
		// destination prefix; the task row and its associations keep
		// their identifiers.
		ticket := ""
		if fromCol.BoardID != destCol.BoardID {
			destBoard, err := repository.NewSQLiteBoardRepo(tx).GetByID(ctx, destCol.BoardID)
			if err != nil {
				return err
			}
			seq, err := repository.NewSQLiteTicketSequenceRepo(tx).NextTicketSeq(ctx, destBoard.Prefix)
			if err != nil {
				return err
			}
			ticket = domain.FormatTicket(destBoard.Prefix, seq)
		}

		src := repository.TaskCollection(tx, t.ColumnID)
		srcLen, err := src.Len(ctx)
		if err != nil {
			return err
		}
		fromPos, err := src.PositionOf(ctx, id)
		if err != nil {
			return err
		}

		slot, err := ordering.InsertSlot(ctx, repository.TaskCollection(tx, toColumnID), pos)
		if err != nil {
			return err
		}
		if err := txTasks.SetColumn(ctx, id, toColumnID, slot, ticket); err != nil {
			return err
		}
		if err := ordering.CloseGap(ctx, src, fromPos, srcLen); err != nil {
			return err
		}

		event = MoveEvent{
			Kind: "task", ItemID: id, FromScope: t.ColumnID, ToScope: toColumnID,
			FromPos: fromPos, ToPos: slot,
		}
		return nil
	})
	if err != nil {
		return err
	}

	s.observer.ObserveMove(ctx, event)
	return nil
}

func (s *taskService) Delete(ctx context.Context, id string) error {
	return db.RunInTxWithRetry(ctx, s.uow, func(ctx context.Context, tx db.DBTX) error {
		txTasks := repository.NewSQLiteTaskRepo(tx)
		t, err := txTasks.GetByID(ctx, id)
		if err != nil {
			return err
		}
		coll := repository.TaskCollection(tx, t.ColumnID)
		n, err := coll.Len(ctx)
		if err != nil {
			return err
		}
		if err := txTasks.Delete(ctx, id); err != nil {
			return err
		}
		return ordering.CloseGap(ctx, coll, t.Position, n)
	})
}

func (s *taskService) AddComment(ctx context.Context, taskID, author, body string) (*domain.Comment, error) {
	if body == "" {
		return nil, fmt.Errorf("comment body is required")
	}
	if _, err := s.tasks.GetByID(ctx, taskID); err != nil {
		return nil, err
	}
	c := &domain.Comment{
		ID:        uuid.New().String(),
		TaskID:    taskID,
		Author:    author,
		Body:      body,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.comments.Create(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *taskService) Comments(ctx context.Context, taskID string) ([]*domain.Comment, error) {
	return s.comments.ListByTask(ctx, taskID)
}

func (s *taskService) AddAttachment(ctx context.Context, taskID, fileName string, sizeBytes int64) (*domain.Attachment, error) {
	if fileName == "" {
		return nil, fmt.Errorf("attachment file name is required")
	}
	if _, err := s.tasks.GetByID(ctx, taskID); err != nil {
		return nil, err
	}
	a := &domain.Attachment{
		ID:        uuid.New().String(),
		TaskID:    taskID,
		FileName:  fileName,
		SizeBytes: sizeBytes,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.attachments.Create(ctx, a); err != nil {
		return nil, err
	}
	return a, nil
}

func (s *taskService) Attachments(ctx context.Context, taskID string) ([]*domain.Attachment, error) {
	return s.attachments.ListByTask(ctx, taskID)
}
