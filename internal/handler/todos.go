package handler

import (
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/oakside/todo-api/internal/errs"
	"github.com/oakside/todo-api/internal/model"
	"github.com/oakside/todo-api/internal/repository"
	"github.com/oakside/todo-api/internal/server"
	"github.com/oakside/todo-api/internal/service"
	"github.com/oakside/todo-api/internal/validation"
)

// TodosHandler exposes the todo CRUD endpoints.
type TodosHandler struct {
	Handler
	todos *service.TodosService
}

func NewTodosHandler(s *server.Server, todos *service.TodosService) *TodosHandler {
	return &TodosHandler{Handler: NewHandler(s), todos: todos}
}

type CreateTodoRequest struct {
	Title  string `json:"title" validate:"required"`
	UserID int64  `json:"user_id" validate:"required,gt=0"`
}

func (r *CreateTodoRequest) Validate() error {
	if err := validation.Struct(r); err != nil {
		return err
	}
	if strings.TrimSpace(r.Title) == "" {
		return validation.CustomValidationErrors{{Field: "title", Message: "is required"}}
	}
	return nil
}

func (h *TodosHandler) CreateTodo(c echo.Context, req *CreateTodoRequest) (*model.Todo, error) {
	return h.todos.Create(c.Request().Context(), req.Title, req.UserID)
}

// ListTodosRequest binds the optional owner filter as a raw string so a
// non-numeric value can be rejected with a 400 instead of being
// silently dropped by the binder.
type ListTodosRequest struct {
	UserID string `query:"userId"`
}

func (r *ListTodosRequest) Validate() error {
	return nil
}

func (h *TodosHandler) ListTodos(c echo.Context, req *ListTodosRequest) ([]model.Todo, error) {
	var userID *int64
	if req.UserID != "" {
		id, err := strconv.ParseInt(req.UserID, 10, 64)
		if err != nil || id <= 0 {
			return nil, errs.NewBadRequestError("invalid userId", true, nil, nil)
		}
		userID = &id
	}
	return h.todos.List(c.Request().Context(), userID)
}

type GetTodoRequest struct {
	ID int64 `param:"id" json:"-" validate:"required,gt=0"`
}

func (r *GetTodoRequest) Validate() error {
	return validation.Struct(r)
}

func (h *TodosHandler) GetTodo(c echo.Context, req *GetTodoRequest) (*model.Todo, error) {
	return h.todos.Get(c.Request().Context(), req.ID)
}

type UpdateTodoRequest struct {
	ID    int64   `param:"id" json:"-" validate:"required,gt=0"`
	Title *string `json:"title" validate:"omitempty,min=1"`
	Done  *bool   `json:"done"`
}

func (r *UpdateTodoRequest) Validate() error {
	return validation.Struct(r)
}

func (h *TodosHandler) UpdateTodo(c echo.Context, req *UpdateTodoRequest) (*model.Todo, error) {
	patch := repository.TodoPatch{
		Title: req.Title,
		Done:  req.Done,
	}
	return h.todos.Update(c.Request().Context(), req.ID, patch)
}

type DeleteTodoRequest struct {
	ID int64 `param:"id" json:"-" validate:"required,gt=0"`
}

func (r *DeleteTodoRequest) Validate() error {
	return validation.Struct(r)
}

func (h *TodosHandler) DeleteTodo(c echo.Context, req *DeleteTodoRequest) error {
	return h.todos.Delete(c.Request().Context(), req.ID)
}
