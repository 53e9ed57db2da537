package handler

import (
	"github.com/labstack/echo/v4"

	"github.com/oakside/todo-api/internal/server"
	"github.com/oakside/todo-api/internal/service"
	"github.com/oakside/todo-api/internal/validation"
)

// ReportsHandler exposes the user aggregate endpoint.
type ReportsHandler struct {
	Handler
	reports *service.ReportsService
}

func NewReportsHandler(s *server.Server, reports *service.ReportsService) *ReportsHandler {
	return &ReportsHandler{Handler: NewHandler(s), reports: reports}
}

type AggregateRequest struct {
	Type string `query:"type" validate:"required"`
	From string `query:"from"`
	To   string `query:"to"`
}

func (r *AggregateRequest) Validate() error {
	return validation.Struct(r)
}

// Aggregate returns the report rows for the requested type. The shape
// of the response depends on the type, so the result is untyped here.
func (h *ReportsHandler) Aggregate(c echo.Context, req *AggregateRequest) (any, error) {
	return h.reports.Aggregate(c.Request().Context(), req.Type, req.From, req.To)
}
