package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/easykanban/kanban/internal/domain"
	"github.com/easykanban/kanban/internal/repository"
	"github.com/google/uuid"
)

type tagService struct {
	tags  repository.TagRepo
	tasks repository.TaskRepo
}

func NewTagService(tags repository.TagRepo, tasks repository.TaskRepo) TagService {
	return &tagService{tags: tags, tasks: tasks}
}

func (s *tagService) GetOrCreate(ctx context.Context, name, color string) (*domain.Tag, error) {
	if name == "" {
		return nil, fmt.Errorf("tag name is required")
	}
	existing, err := s.tags.GetByName(ctx, name)
	if err == nil {
		return existing, nil
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}
	t := &domain.Tag{ID: uuid.New().String(), Name: name, Color: color}
	if err := s.tags.Create(ctx, t); err != nil {
		return nil, err
	}
	return t, nil
}

func (s *tagService) List(ctx context.Context) ([]*domain.Tag, error) {
	return s.tags.List(ctx)
}

func (s *tagService) Attach(ctx context.Context, taskID, tagName string) error {
	if _, err := s.tasks.GetByID(ctx, taskID); err != nil {
		return err
	}
	t, err := s.GetOrCreate(ctx, tagName, "")
	if err != nil {
		return err
	}
	return s.tags.Attach(ctx, taskID, t.ID)
}

func (s *tagService) Detach(ctx context.Context, taskID, tagName string) error {
	t, err := s.tags.GetByName(ctx, tagName)
	if err != nil {
		return err
	}
	return s.tags.Detach(ctx, taskID, t.ID)
}

func (s *tagService) ListByTask(ctx context.Context, taskID string) ([]*domain.Tag, error) {
	return s.tags.ListByTask(ctx, taskID)
}
