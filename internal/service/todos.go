package service

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/oakside/todo-api/internal/errs"
	"github.com/oakside/todo-api/internal/model"
	"github.com/oakside/todo-api/internal/repository"
)

// TodosService orchestrates todo operations.
type TodosService struct {
	repo *repository.TodosRepository
	log  *zerolog.Logger
}

func NewTodosService(repo *repository.TodosRepository, logger *zerolog.Logger) *TodosService {
	return &TodosService{repo: repo, log: logger}
}

func (s *TodosService) Create(ctx context.Context, title string, userID int64) (*model.Todo, error) {
	return s.repo.Create(ctx, title, userID)
}

func (s *TodosService) List(ctx context.Context, userID *int64) ([]model.Todo, error) {
	return s.repo.List(ctx, userID)
}

func (s *TodosService) Get(ctx context.Context, id int64) (*model.Todo, error) {
	return s.repo.Get(ctx, id)
}

// Update applies a partial update. An empty patch is rejected before
// any store access.
func (s *TodosService) Update(ctx context.Context, id int64, patch repository.TodoPatch) (*model.Todo, error) {
	if patch.IsZero() {
		return nil, errs.NewBadRequestError("no updatable fields", true, nil, nil)
	}
	return s.repo.Update(ctx, id, patch)
}

func (s *TodosService) Delete(ctx context.Context, id int64) error {
	return s.repo.Delete(ctx, id)
}
