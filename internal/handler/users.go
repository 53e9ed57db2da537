package handler

import (
	"github.com/labstack/echo/v4"

	"github.com/oakside/todo-api/internal/model"
	"github.com/oakside/todo-api/internal/repository"
	"github.com/oakside/todo-api/internal/server"
	"github.com/oakside/todo-api/internal/service"
	"github.com/oakside/todo-api/internal/validation"
)

// UsersHandler exposes the user CRUD and search endpoints.
type UsersHandler struct {
	Handler
	users *service.UsersService
}

func NewUsersHandler(s *server.Server, users *service.UsersService) *UsersHandler {
	return &UsersHandler{Handler: NewHandler(s), users: users}
}

type CreateUserRequest struct {
	Name  string `json:"name" validate:"required"`
	Email string `json:"email" validate:"required,email"`
}

func (r *CreateUserRequest) Validate() error {
	return validation.Struct(r)
}

func (h *UsersHandler) CreateUser(c echo.Context, req *CreateUserRequest) (*model.User, error) {
	return h.users.Create(c.Request().Context(), req.Name, req.Email)
}

type ListUsersRequest struct{}

func (r *ListUsersRequest) Validate() error {
	return nil
}

func (h *UsersHandler) ListUsers(c echo.Context, _ *ListUsersRequest) ([]model.User, error) {
	return h.users.List(c.Request().Context())
}

// SearchUsersRequest carries the raw query-string filters. Values are
// normalized by the service; malformed dates and blank domains are
// treated as absent filters, matching the behavior of an unfiltered
// list.
type SearchUsersRequest struct {
	NameLike string `query:"name_like"`
	From     string `query:"from"`
	To       string `query:"to"`
	Domains  string `query:"domains"`
}

func (r *SearchUsersRequest) Validate() error {
	return nil
}

func (h *UsersHandler) SearchUsers(c echo.Context, req *SearchUsersRequest) ([]model.User, error) {
	return h.users.Search(c.Request().Context(), req.NameLike, req.From, req.To, req.Domains)
}

type GetUserRequest struct {
	ID int64 `param:"id" json:"-" validate:"required,gt=0"`
}

func (r *GetUserRequest) Validate() error {
	return validation.Struct(r)
}

func (h *UsersHandler) GetUser(c echo.Context, req *GetUserRequest) (*model.User, error) {
	return h.users.Get(c.Request().Context(), req.ID)
}

type UpdateUserRequest struct {
	ID    int64   `param:"id" json:"-" validate:"required,gt=0"`
	Name  *string `json:"name" validate:"omitempty,min=1"`
	Email *string `json:"email" validate:"omitempty,email"`
}

func (r *UpdateUserRequest) Validate() error {
	return validation.Struct(r)
}

func (h *UsersHandler) UpdateUser(c echo.Context, req *UpdateUserRequest) (*model.User, error) {
	patch := repository.UserPatch{
		Name:  req.Name,
		Email: req.Email,
	}
	return h.users.Update(c.Request().Context(), req.ID, patch)
}

type DeleteUserRequest struct {
	ID int64 `param:"id" json:"-" validate:"required,gt=0"`
}

func (r *DeleteUserRequest) Validate() error {
	return validation.Struct(r)
}

func (h *UsersHandler) DeleteUser(c echo.Context, req *DeleteUserRequest) error {
	return h.users.Delete(c.Request().Context(), req.ID)
}
