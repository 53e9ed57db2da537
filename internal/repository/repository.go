// Package repository handles all interactions with the database.
//
// It contains the SQL and the transactional write sequences, keeping
// store access out of the service layer. Repositories depend on
// database.Querier, so tests can substitute a mock pool.
package repository

import (
	sq "github.com/Masterminds/squirrel"

	"github.com/oakside/todo-api/internal/server"
)

// psql renders statements with PostgreSQL dollar placeholders.
var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

// Repositories is the container for all repository instances.
type Repositories struct {
	Users   *UsersRepository
	Todos   *TodosRepository
	Reports *ReportsRepository
}

// NewRepositories constructs every repository against the shared pool.
func NewRepositories(s *server.Server) *Repositories {
	return &Repositories{
		Users:   NewUsersRepository(s.DB.Pool, s.Logger),
		Todos:   NewTodosRepository(s.DB.Pool, s.Logger),
		Reports: NewReportsRepository(s.DB.Pool, s.Logger),
	}
}
