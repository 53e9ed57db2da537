package service

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/oakside/todo-api/internal/errs"
	"github.com/oakside/todo-api/internal/query"
	"github.com/oakside/todo-api/internal/repository"
)

// ReportsService validates aggregate requests and dispatches them.
type ReportsService struct {
	repo *repository.ReportsRepository
	log  *zerolog.Logger
}

func NewReportsService(repo *repository.ReportsRepository, logger *zerolog.Logger) *ReportsService {
	return &ReportsService{repo: repo, log: logger}
}

// Aggregate runs the report selected by typ. An unrecognized type is
// rejected before any query is executed.
func (s *ReportsService) Aggregate(ctx context.Context, typ, from, to string) (any, error) {
	reportType := repository.ReportType(typ)
	if !reportType.Valid() {
		return nil, errs.NewBadRequestError("invalid type", true, nil, nil)
	}

	rng := query.DateRange{
		From: query.ParseDate(from),
		To:   query.ParseDateTo(to),
	}

	return s.repo.Aggregate(ctx, reportType, rng)
}
