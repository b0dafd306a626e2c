package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/easykanban/kanban/internal/db"
	"github.com/easykanban/kanban/internal/domain"
	"github.com/easykanban/kanban/internal/ordering"
	"github.com/easykanban/kanban/internal/repository"
	"github.com/google/uuid"
)

type boardService struct {
	boards   repository.BoardRepo
	uow      db.UnitOfWork
	observer MoveObserver
}

func NewBoardService(boards repository.BoardRepo, uow db.UnitOfWork, observer MoveObserver) BoardService {
	if observer == nil {
		observer = NoopMoveObserver{}
	}
	return &boardService{boards: boards, uow: uow, observer: observer}
}

func (s *boardService) Create(ctx context.Context, name, prefix string) (*domain.Board, error) {
	prefix = strings.ToUpper(strings.TrimSpace(prefix))
	if name == "" {
		return nil, fmt.Errorf("board name is required")
	}
	if prefix == "" {
		return nil, fmt.Errorf("board prefix is required")
	}
	for _, r := range prefix {
		if r < 'A' || r > 'Z' {
			return nil, fmt.Errorf("board prefix %q must contain only letters", prefix)
		}
	}

	now := time.Now().UTC()
	b := &domain.Board{
		ID:        uuid.New().String(),
		Prefix:    prefix,
		Name:      name,
		CreatedAt: now,
		UpdatedAt: now,
	}

	err := db.RunInTxWithRetry(ctx, s.uow, func(ctx context.Context, tx db.DBTX) error {
		slot, err := ordering.InsertSlot(ctx, repository.BoardCollection(tx), ordering.AtEnd)
		if err != nil {
			return err
		}
		b.Position = slot
		return repository.NewSQLiteBoardRepo(tx).Create(ctx, b)
	})
	if err != nil {
		return nil, err
	}
	return b, nil
}

func (s *boardService) GetByID(ctx context.Context, id string) (*domain.Board, error) {
	return s.boards.GetByID(ctx, id)
}

func (s *boardService) GetByPrefix(ctx context.Context, prefix string) (*domain.Board, error) {
	return s.boards.GetByPrefix(ctx, prefix)
}

func (s *boardService) List(ctx context.Context, includeArchived bool) ([]*domain.Board, error) {
	return s.boards.List(ctx, includeArchived)
}

func (s *boardService) Rename(ctx context.Context, id, name string) error {
	if name == "" {
		return fmt.Errorf("board name is required")
	}
	return s.boards.Rename(ctx, id, name)
}

func (s *boardService) Reorder(ctx context.Context, id string, target int) error {
	var from int
	err := db.RunInTxWithRetry(ctx, s.uow, func(ctx context.Context, tx db.DBTX) error {
		var err error
		from, err = ordering.Reorder(ctx, repository.BoardCollection(tx), id, target)
		return err
	})
	if err != nil {
		return err
	}
	s.observer.ObserveMove(ctx, MoveEvent{
		Kind: "board", ItemID: id, FromPos: from, ToPos: target,
	})
	return nil
}

func (s *boardService) Archive(ctx context.Context, id string) error {
	return s.boards.Archive(ctx, id)
}

func (s *boardService) Unarchive(ctx context.Context, id string) error {
	return s.boards.Unarchive(ctx, id)
}

func (s *boardService) Delete(ctx context.Context, id string) error {
	return db.RunInTxWithRetry(ctx, s.uow, func(ctx context.Context, tx db.DBTX) error {
		coll := repository.BoardCollection(tx)
		n, err := coll.Len(ctx)
		if err != nil {
			return err
		}
		pos, err := coll.PositionOf(ctx, id)
		if err != nil {
			return err
		}
		if err := repository.NewSQLiteBoardRepo(tx).Delete(ctx, id); err != nil {
			return err
		}
		return ordering.CloseGap(ctx, coll, pos, n)
	})
}
