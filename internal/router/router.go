// Package router initializes the HTTP router (using Echo).
//
// It registers the middlewares and defines the API route groups,
// mapping specific paths to their corresponding handlers.
package router

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/oakside/todo-api/internal/handler"
	"github.com/oakside/todo-api/internal/middleware"
	"github.com/oakside/todo-api/internal/server"
)

// New assembles the echo instance: global middleware in order, the
// error funnel, and all route registrations.
func New(s *server.Server, h *handler.Handlers, m *middleware.Middlewares) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.HTTPErrorHandler = m.Global.GlobalErrorHandler

	// RequestID must come first so the context enhancer and the request
	// logger see the correlation ID.
	e.Use(middleware.RequestID())
	e.Use(m.ContextEnhancer.EnhanceContext())
	e.Use(m.Global.RequestLogger())
	e.Use(m.Global.Recover())
	e.Use(m.Global.CORS())
	e.Use(m.Global.Secure())

	registerSystemRoutes(e, h)
	registerAPIRoutes(e, h)

	return e
}

// registerAPIRoutes wires the business endpoints.
func registerAPIRoutes(e *echo.Echo, h *handler.Handlers) {
	users := e.Group("/users")
	users.POST("", handler.Handle(h.Users.CreateUser, http.StatusCreated))
	users.GET("", handler.Handle(h.Users.ListUsers, http.StatusOK))
	// Registered before /:id so "search" is not captured as an id.
	users.GET("/search", handler.Handle(h.Users.SearchUsers, http.StatusOK))
	users.GET("/:id", handler.Handle(h.Users.GetUser, http.StatusOK))
	users.PATCH("/:id", handler.Handle(h.Users.UpdateUser, http.StatusOK))
	users.DELETE("/:id", handler.HandleNoContent(h.Users.DeleteUser, http.StatusNoContent))

	todos := e.Group("/todos")
	todos.POST("", handler.Handle(h.Todos.CreateTodo, http.StatusCreated))
	todos.GET("", handler.Handle(h.Todos.ListTodos, http.StatusOK))
	todos.GET("/:id", handler.Handle(h.Todos.GetTodo, http.StatusOK))
	todos.PATCH("/:id", handler.Handle(h.Todos.UpdateTodo, http.StatusOK))
	todos.DELETE("/:id", handler.HandleNoContent(h.Todos.DeleteTodo, http.StatusNoContent))

	e.GET("/userAggregate", handler.Handle(h.Reports.Aggregate, http.StatusOK))
}
