package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/oakside/todo-api/internal/middleware"
	"github.com/oakside/todo-api/internal/server"
)

// HealthHandler reports process and database liveness.
type HealthHandler struct {
	Handler
}

func NewHealthHandler(s *server.Server) *HealthHandler {
	return &HealthHandler{Handler: NewHandler(s)}
}

type healthCheck struct {
	Name   string `json:"name"`
	Status string `json:"status"`
}

type healthResponse struct {
	Status string        `json:"status"`
	Checks []healthCheck `json:"checks"`
}

// CheckHealth pings the database with a short deadline and reports
// overall status. A failing dependency yields a 500 so load balancers
// take the instance out of rotation.
func (h *HealthHandler) CheckHealth(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	status := http.StatusOK
	resp := healthResponse{Status: "ok"}

	dbCheck := healthCheck{Name: "database", Status: "ok"}
	if err := h.server.DB.Pool.Ping(ctx); err != nil {
		middleware.GetLogger(c).Error().Err(err).Msg("database health check failed")
		dbCheck.Status = "ng"
		resp.Status = "ng"
		status = http.StatusInternalServerError
	}
	resp.Checks = append(resp.Checks, dbCheck)

	return c.JSON(status, resp)
}
