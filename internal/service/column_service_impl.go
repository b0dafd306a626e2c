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

type columnService struct {
	columns  repository.ColumnRepo
	boards   repository.BoardRepo
	uow      db.UnitOfWork
	observer MoveObserver
}

func NewColumnService(columns repository.ColumnRepo, boards repository.BoardRepo, uow db.UnitOfWork, observer MoveObserver) ColumnService {
	if observer == nil {
		observer = NoopMoveObserver{}
	}
	return &columnService{columns: columns, boards: boards, uow: uow, observer: observer}
}

func (s *columnService) Create(ctx context.Context, boardID, name string, pos int) (*domain.Column, error) {
	if name == "" {
		return nil, fmt.Errorf("column name is required")
	}

	now := time.Now().UTC()
	c := &domain.Column{
		ID:        uuid.New().String(),
		BoardID:   boardID,
		Name:      name,
		CreatedAt: now,
		UpdatedAt: now,
	}

	err := db.RunInTxWithRetry(ctx, s.uow, func(ctx context.Context, tx db.DBTX) error {
		// Validates the board exists before any shifting.
		if _, err := repository.NewSQLiteBoardRepo(tx).GetByID(ctx, boardID); err != nil {
			return err
		}
		slot, err := ordering.InsertSlot(ctx, repository.ColumnCollection(tx, boardID), pos)
		if err != nil {
			return err
		}
		c.Position = slot
		return repository.NewSQLiteColumnRepo(tx).Create(ctx, c)
	})
	if err != nil {
		return nil, err
	}
	return c, nil
}

func (s *columnService) GetByID(ctx context.Context, id string) (*domain.Column, error) {
	return s.columns.GetByID(ctx, id)
}

func (s *columnService) ListByBoard(ctx context.Context, boardID string) ([]*domain.Column, error) {
	return s.columns.ListByBoard(ctx, boardID)
}

func (s *columnService) Rename(ctx context.Context, id, name string) error {
	if name == "" {
		return fmt.Errorf("column name is required")
	}
	return s.columns.Rename(ctx, id, name)
}

func (s *columnService) Reorder(ctx context.Context, id string, target int) error {
	var from int
	var boardID string
	err := db.RunInTxWithRetry(ctx, s.uow, func(ctx context.Context, tx db.DBTX) error {
		c, err := repository.NewSQLiteColumnRepo(tx).GetByID(ctx, id)
		if err != nil {
			return err
		}
		boardID = c.BoardID
		from, err = ordering.Reorder(ctx, repository.ColumnCollection(tx, c.BoardID), id, target)
		return err
	})
	if err != nil {
		return err
	}
	s.observer.ObserveMove(ctx, MoveEvent{
		Kind: "column", ItemID: id, FromScope: boardID, ToScope: boardID,
		FromPos: from, ToPos: target,
	})
	return nil
}

func (s *columnService) Delete(ctx context.Context, id string) error {
	return db.RunInTxWithRetry(ctx, s.uow, func(ctx context.Context, tx db.DBTX) error {
		txCols := repository.NewSQLiteColumnRepo(tx)
		c, err := txCols.GetByID(ctx, id)
		if err != nil {
			return err
		}
		coll := repository.ColumnCollection(tx, c.BoardID)
		n, err := coll.Len(ctx)
		if err != nil {
			return err
		}
		if err := txCols.Delete(ctx, id); err != nil {
			return err
		}
		return ordering.CloseGap(ctx, coll, c.Position, n)
	})
}
