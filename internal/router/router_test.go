package router

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/labstack/echo/v4"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oakside/todo-api/internal/config"
	"github.com/oakside/todo-api/internal/database"
	"github.com/oakside/todo-api/internal/handler"
	"github.com/oakside/todo-api/internal/middleware"
	"github.com/oakside/todo-api/internal/repository"
	"github.com/oakside/todo-api/internal/server"
	"github.com/oakside/todo-api/internal/service"
)

func newMock(t *testing.T) pgxmock.PgxPoolIface {
	t.Helper()

	mock, err := pgxmock.NewPool(pgxmock.QueryMatcherOption(pgxmock.QueryMatcherEqual))
	require.NoError(t, err)
	t.Cleanup(mock.Close)
	return mock
}

func newMonitoredMock(t *testing.T) pgxmock.PgxPoolIface {
	t.Helper()

	mock, err := pgxmock.NewPool(pgxmock.QueryMatcherOption(pgxmock.QueryMatcherEqual))
	require.NoError(t, err)
	t.Cleanup(mock.Close)
	return mock
}

// newTestApp assembles the full application stack on top of a mock
// pool, so requests travel the real route -> handler -> service ->
// repository path.
func newTestApp(t *testing.T, mock pgxmock.PgxPoolIface) *echo.Echo {
	t.Helper()

	nop := zerolog.Nop()
	cfg := &config.Config{
		Primary: config.Primary{Env: "test"},
		Server: config.ServerConfig{
			CORSAllowedOrigins: []string{"*"},
		},
	}

	srv := &server.Server{
		Config: cfg,
		Logger: &nop,
		DB:     &database.Database{Pool: mock},
	}

	repos := repository.NewRepositories(srv)
	services := service.NewServices(srv, repos)
	handlers := handler.NewHandlers(srv, services)
	middlewares := middleware.NewMiddlewares(srv)

	return New(srv, handlers, middlewares)
}

func doRequest(e *echo.Echo, method, target, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestCreateUser(t *testing.T) {
	t.Run("valid payload creates and returns the user", func(t *testing.T) {
		mock := newMock(t)
		e := newTestApp(t, mock)
		created := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

		mock.ExpectBegin()
		mock.ExpectQuery(`INSERT INTO users (name, email) VALUES ($1, $2) RETURNING id`).
			WithArgs("Ada", "ada@example.com").
			WillReturnRows(pgxmock.NewRows([]string{"id"}).AddRow(int64(1)))
		mock.ExpectQuery(`SELECT id, name, email, created_at FROM users WHERE id = $1`).
			WithArgs(int64(1)).
			WillReturnRows(pgxmock.NewRows([]string{"id", "name", "email", "created_at"}).
				AddRow(int64(1), "Ada", "ada@example.com", created))
		mock.ExpectCommit()

		rec := doRequest(e, http.MethodPost, "/users",
			`{"name":"Ada","email":"ada@example.com"}`)

		assert.Equal(t, http.StatusCreated, rec.Code)
		assert.Contains(t, rec.Body.String(), `"email":"ada@example.com"`)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("missing email is a 400 with field errors and no store access", func(t *testing.T) {
		mock := newMock(t)
		e := newTestApp(t, mock)

		rec := doRequest(e, http.MethodPost, "/users", `{"name":"Ada"}`)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Contains(t, rec.Body.String(), `"field":"email"`)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("duplicate email is a 409 conflict", func(t *testing.T) {
		mock := newMock(t)
		e := newTestApp(t, mock)

		mock.ExpectBegin()
		mock.ExpectQuery(`INSERT INTO users (name, email) VALUES ($1, $2) RETURNING id`).
			WithArgs("Ada", "ada@example.com").
			WillReturnError(&pgconn.PgError{
				Code:           "23505",
				TableName:      "users",
				ConstraintName: "users_email_key",
			})
		mock.ExpectRollback()

		rec := doRequest(e, http.MethodPost, "/users",
			`{"name":"Ada","email":"ada@example.com"}`)

		assert.Equal(t, http.StatusConflict, rec.Code)
		assert.Contains(t, rec.Body.String(), "USER_ALREADY_EXISTS")
		require.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestSearchUsers(t *testing.T) {
	t.Run("filters reach the executed statement", func(t *testing.T) {
		mock := newMock(t)
		e := newTestApp(t, mock)
		created := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

		mock.ExpectQuery(`SELECT id, name, email, created_at FROM users WHERE (name ILIKE $1) ORDER BY id ASC`).
			WithArgs("%ada%").
			WillReturnRows(pgxmock.NewRows([]string{"id", "name", "email", "created_at"}).
				AddRow(int64(1), "Ada", "ada@example.com", created))

		rec := doRequest(e, http.MethodGet, "/users/search?name_like=ada", "")

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), `"name":"Ada"`)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("search path is not captured by the id route", func(t *testing.T) {
		mock := newMock(t)
		e := newTestApp(t, mock)

		mock.ExpectQuery(`SELECT id, name, email, created_at FROM users ORDER BY id ASC`).
			WillReturnRows(pgxmock.NewRows([]string{"id", "name", "email", "created_at"}))

		rec := doRequest(e, http.MethodGet, "/users/search", "")

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "[]\n", rec.Body.String())
		require.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestPathIDValidation(t *testing.T) {
	t.Run("non-numeric user id is a 400", func(t *testing.T) {
		mock := newMock(t)
		e := newTestApp(t, mock)

		rec := doRequest(e, http.MethodGet, "/users/abc", "")

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("zero todo id is a 400", func(t *testing.T) {
		mock := newMock(t)
		e := newTestApp(t, mock)

		rec := doRequest(e, http.MethodDelete, "/todos/0", "")

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		require.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestListTodos(t *testing.T) {
	t.Run("non-numeric userId filter is a 400", func(t *testing.T) {
		mock := newMock(t)
		e := newTestApp(t, mock)

		rec := doRequest(e, http.MethodGet, "/todos?userId=abc", "")

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Contains(t, rec.Body.String(), "invalid userId")
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("numeric userId becomes a query parameter", func(t *testing.T) {
		mock := newMock(t)
		e := newTestApp(t, mock)

		mock.ExpectQuery(`SELECT id, title, done, user_id FROM todos WHERE user_id = $1 ORDER BY id DESC`).
			WithArgs(int64(3)).
			WillReturnRows(pgxmock.NewRows([]string{"id", "title", "done", "user_id"}).
				AddRow(int64(10), "write report", false, int64(3)))

		rec := doRequest(e, http.MethodGet, "/todos?userId=3", "")

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), `"title":"write report"`)
		require.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestCreateTodo(t *testing.T) {
	t.Run("whitespace-only title is a 400 with no store access", func(t *testing.T) {
		mock := newMock(t)
		e := newTestApp(t, mock)

		rec := doRequest(e, http.MethodPost, "/todos", `{"title":"   ","user_id":1}`)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Contains(t, rec.Body.String(), `"field":"title"`)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("unknown owner is a 400 naming the missing reference", func(t *testing.T) {
		mock := newMock(t)
		e := newTestApp(t, mock)

		mock.ExpectBegin()
		mock.ExpectQuery(`INSERT INTO todos (title, done, user_id) VALUES ($1, FALSE, $2) RETURNING id`).
			WithArgs("write report", int64(999)).
			WillReturnError(&pgconn.PgError{
				Code:           "23503",
				TableName:      "todos",
				ColumnName:     "user_id",
				ConstraintName: "todos_user_id_fkey",
			})
		mock.ExpectRollback()

		rec := doRequest(e, http.MethodPost, "/todos", `{"title":"write report","user_id":999}`)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Contains(t, rec.Body.String(), "The referenced User does not exist")
		require.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestDeleteTodo(t *testing.T) {
	t.Run("deletes and returns no content", func(t *testing.T) {
		mock := newMock(t)
		e := newTestApp(t, mock)

		mock.ExpectExec(`DELETE FROM todos WHERE id = $1`).
			WithArgs(int64(9)).
			WillReturnResult(pgxmock.NewResult("DELETE", 1))

		rec := doRequest(e, http.MethodDelete, "/todos/9", "")

		assert.Equal(t, http.StatusNoContent, rec.Code)
		assert.Empty(t, rec.Body.String())
		require.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestUserAggregate(t *testing.T) {
	t.Run("unknown type is a 400 with no store access", func(t *testing.T) {
		mock := newMock(t)
		e := newTestApp(t, mock)

		rec := doRequest(e, http.MethodGet, "/userAggregate?type=bogus", "")

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Contains(t, rec.Body.String(), "invalid type")
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("missing type is a 400", func(t *testing.T) {
		mock := newMock(t)
		e := newTestApp(t, mock)

		rec := doRequest(e, http.MethodGet, "/userAggregate", "")

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("by_domain returns grouped rows", func(t *testing.T) {
		mock := newMock(t)
		e := newTestApp(t, mock)

		mock.ExpectQuery(`SELECT split_part(email, '@', 2) AS domain, COUNT(*) AS count FROM users GROUP BY split_part(email, '@', 2) ORDER BY domain ASC`).
			WillReturnRows(pgxmock.NewRows([]string{"domain", "count"}).
				AddRow("example.com", int64(2)))

		rec := doRequest(e, http.MethodGet, "/userAggregate?type=by_domain", "")

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), `"domain":"example.com"`)
		require.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestUnknownRoute(t *testing.T) {
	mock := newMock(t)
	e := newTestApp(t, mock)

	rec := doRequest(e, http.MethodGet, "/nope", "")

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "Route not found")
}

func TestHealth(t *testing.T) {
	t.Run("healthy database reports ok", func(t *testing.T) {
		mock := newMonitoredMock(t)
		e := newTestApp(t, mock)

		mock.ExpectPing()

		rec := doRequest(e, http.MethodGet, "/health", "")

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), `"status":"ok"`)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("unreachable database reports ng with a 500", func(t *testing.T) {
		mock := newMonitoredMock(t)
		e := newTestApp(t, mock)

		mock.ExpectPing().WillReturnError(errors.New("connection refused"))

		rec := doRequest(e, http.MethodGet, "/health", "")

		assert.Equal(t, http.StatusInternalServerError, rec.Code)
		assert.Contains(t, rec.Body.String(), `"status":"ng"`)
		require.NoError(t, mock.ExpectationsWereMet())
	})
}
