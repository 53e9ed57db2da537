package repository

import (
	"context"

	sq "github.com/Masterminds/squirrel"
	"github.com/rs/zerolog"

	"github.com/oakside/todo-api/internal/database"
	"github.com/oakside/todo-api/internal/errs"
	"github.com/oakside/todo-api/internal/query"
	"github.com/oakside/todo-api/internal/sqlerr"
)

// ReportType selects one of the fixed aggregation shapes.
type ReportType string

const (
	ReportTotal    ReportType = "total"
	ReportByDomain ReportType = "by_domain"
	ReportByDay    ReportType = "by_day"
	ReportByMonth  ReportType = "by_month"
)

// Valid reports whether t is one of the known report types.
func (t ReportType) Valid() bool {
	switch t {
	case ReportTotal, ReportByDomain, ReportByDay, ReportByMonth:
		return true
	}
	return false
}

// Row shapes mirror the legacy API payloads.

type TotalRow struct {
	TotalUsers int64 `json:"total_users"`
}

type DomainRow struct {
	Domain string `json:"domain"`
	Count  int64  `json:"count"`
}

type DayRow struct {
	Day        string `json:"day"`
	TotalUsers int64  `json:"total_users"`
}

type MonthRow struct {
	Month      string `json:"month"`
	TotalUsers int64  `json:"total_users"`
}

// ReportsRepository runs the read-only aggregate queries over users.
type ReportsRepository struct {
	db  database.Querier
	log *zerolog.Logger
}

func NewReportsRepository(db database.Querier, logger *zerolog.Logger) *ReportsRepository {
	return &ReportsRepository{db: db, log: logger}
}

const (
	domainExpr = `split_part(email, '@', 2)`
	dayExpr    = `to_char(created_at, 'YYYY-MM-DD')`
	monthExpr  = `to_char(created_at, 'YYYY-MM')`
)

// Aggregate dispatches on the report type and returns the rows of the
// matching shape. The date range applies to total, by_day, and
// by_month; by_domain is defined as all-time and deliberately ignores
// it. Callers must pass a valid type — the service rejects anything
// else before reaching the store.
func (r *ReportsRepository) Aggregate(ctx context.Context, typ ReportType, rng query.DateRange) (any, error) {
	switch typ {
	case ReportTotal:
		return r.total(ctx, rng)
	case ReportByDomain:
		return r.byDomain(ctx)
	case ReportByDay:
		return r.byDay(ctx, rng)
	case ReportByMonth:
		return r.byMonth(ctx, rng)
	}
	return nil, errs.NewBadRequestError("invalid type", true, nil, nil)
}

// withRange attaches the date-range predicate when any bound is active.
func withRange(builder sq.SelectBuilder, rng query.DateRange) sq.SelectBuilder {
	if conds := rng.Conditions("created_at"); len(conds) > 0 {
		builder = builder.Where(sq.And(conds))
	}
	return builder
}

func (r *ReportsRepository) total(ctx context.Context, rng query.DateRange) ([]TotalRow, error) {
	builder := withRange(psql.Select("COUNT(*) AS total_users").From("users"), rng)

	sqlText, args, err := builder.ToSql()
	if err != nil {
		return nil, sqlerr.HandleError(err)
	}

	var row TotalRow
	if err := r.db.QueryRow(ctx, sqlText, args...).Scan(&row.TotalUsers); err != nil {
		return nil, sqlerr.HandleError(err)
	}
	return []TotalRow{row}, nil
}

func (r *ReportsRepository) byDomain(ctx context.Context) ([]DomainRow, error) {
	sqlText, args, err := psql.Select(domainExpr+" AS domain", "COUNT(*) AS count").
		From("users").
		GroupBy(domainExpr).
		OrderBy("domain ASC").
		ToSql()
	if err != nil {
		return nil, sqlerr.HandleError(err)
	}

	rows, err := r.db.Query(ctx, sqlText, args...)
	if err != nil {
		return nil, sqlerr.HandleError(err)
	}
	defer rows.Close()

	result := []DomainRow{}
	for rows.Next() {
		var row DomainRow
		if err := rows.Scan(&row.Domain, &row.Count); err != nil {
			return nil, sqlerr.HandleError(err)
		}
		result = append(result, row)
	}
	if err := rows.Err(); err != nil {
		return nil, sqlerr.HandleError(err)
	}
	return result, nil
}

func (r *ReportsRepository) byDay(ctx context.Context, rng query.DateRange) ([]DayRow, error) {
	builder := withRange(
		psql.Select(dayExpr+" AS day", "COUNT(*) AS total_users").From("users"),
		rng,
	).GroupBy(dayExpr).OrderBy(dayExpr + " ASC")

	sqlText, args, err := builder.ToSql()
	if err != nil {
		return nil, sqlerr.HandleError(err)
	}

	rows, err := r.db.Query(ctx, sqlText, args...)
	if err != nil {
		return nil, sqlerr.HandleError(err)
	}
	defer rows.Close()

	result := []DayRow{}
	for rows.Next() {
		var row DayRow
		if err := rows.Scan(&row.Day, &row.TotalUsers); err != nil {
			return nil, sqlerr.HandleError(err)
		}
		result = append(result, row)
	}
	if err := rows.Err(); err != nil {
		return nil, sqlerr.HandleError(err)
	}
	return result, nil
}

func (r *ReportsRepository) byMonth(ctx context.Context, rng query.DateRange) ([]MonthRow, error) {
	builder := withRange(
		psql.Select(monthExpr+" AS month", "COUNT(*) AS total_users").From("users"),
		rng,
	).GroupBy(monthExpr).OrderBy(monthExpr + " ASC")

	sqlText, args, err := builder.ToSql()
	if err != nil {
		return nil, sqlerr.HandleError(err)
	}

	rows, err := r.db.Query(ctx, sqlText, args...)
	if err != nil {
		return nil, sqlerr.HandleError(err)
	}
	defer rows.Close()

	result := []MonthRow{}
	for rows.Next() {
		var row MonthRow
		if err := rows.Scan(&row.Month, &row.TotalUsers); err != nil {
			return nil, sqlerr.HandleError(err)
		}
		result = append(result, row)
	}
	if err := rows.Err(); err != nil {
		return nil, sqlerr.HandleError(err)
	}
	return result, nil
}
