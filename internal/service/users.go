package service

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/oakside/todo-api/internal/errs"
	"github.com/oakside/todo-api/internal/model"
	"github.com/oakside/todo-api/internal/query"
	"github.com/oakside/todo-api/internal/repository"
)

// UsersService orchestrates user operations.
type UsersService struct {
	repo *repository.UsersRepository
	log  *zerolog.Logger
}

func NewUsersService(repo *repository.UsersRepository, logger *zerolog.Logger) *UsersService {
	return &UsersService{repo: repo, log: logger}
}

func (s *UsersService) Create(ctx context.Context, name, email string) (*model.User, error) {
	return s.repo.Create(ctx, name, email)
}

func (s *UsersService) List(ctx context.Context) ([]model.User, error) {
	return s.repo.List(ctx)
}

// Search normalizes the raw query-string values into a typed filter.
// Malformed values become absent filters rather than errors.
func (s *UsersService) Search(ctx context.Context, nameLike, from, to, domains string) ([]model.User, error) {
	f := query.Filter{
		NameContains: nameLike,
		Range: query.DateRange{
			From: query.ParseDate(from),
			To:   query.ParseDateTo(to),
		},
		Domains: query.ParseDomains(domains),
	}
	return s.repo.Search(ctx, f)
}

func (s *UsersService) Get(ctx context.Context, id int64) (*model.User, error) {
	return s.repo.Get(ctx, id)
}

// Update applies a partial update. An empty patch is rejected before
// any store access.
func (s *UsersService) Update(ctx context.Context, id int64, patch repository.UserPatch) (*model.User, error) {
	if patch.IsZero() {
		return nil, errs.NewBadRequestError("no updatable fields", true, nil, nil)
	}
	return s.repo.Update(ctx, id, patch)
}

func (s *UsersService) Delete(ctx context.Context, id int64) error {
	return s.repo.Delete(ctx, id)
}
