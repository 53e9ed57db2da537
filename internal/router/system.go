package router

import (
	"github.com/labstack/echo/v4"

	"github.com/oakside/todo-api/internal/handler"
)

// registerSystemRoutes registers endpoints that are not part of
// business logic, kept in a dedicated file.
func registerSystemRoutes(e *echo.Echo, h *handler.Handlers) {
	// Health status endpoint (used by Kubernetes/monitors).
	e.GET("/health", h.Health.CheckHealth)
}
