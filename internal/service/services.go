package service

import (
	"github.com/oakside/todo-api/internal/repository"
	"github.com/oakside/todo-api/internal/server"
)

// Services is the container for all service instances.
type Services struct {
	Users   *UsersService
	Todos   *TodosService
	Reports *ReportsService
}

// NewServices constructs the business layer on top of the repositories.
func NewServices(s *server.Server, repos *repository.Repositories) *Services {
	return &Services{
		Users:   NewUsersService(repos.Users, s.Logger),
		Todos:   NewTodosService(repos.Todos, s.Logger),
		Reports: NewReportsService(repos.Reports, s.Logger),
	}
}
