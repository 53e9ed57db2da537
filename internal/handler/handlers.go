package handler

import (
	"github.com/oakside/todo-api/internal/server"
	"github.com/oakside/todo-api/internal/service"
)

// Handlers is the container for all handler instances.
type Handlers struct {
	Users   *UsersHandler
	Todos   *TodosHandler
	Reports *ReportsHandler
	Health  *HealthHandler
}

// NewHandlers constructs the transport layer on top of the services.
func NewHandlers(s *server.Server, services *service.Services) *Handlers {
	return &Handlers{
		Users:   NewUsersHandler(s, services.Users),
		Todos:   NewTodosHandler(s, services.Todos),
		Reports: NewReportsHandler(s, services.Reports),
		Health:  NewHealthHandler(s),
	}
}
