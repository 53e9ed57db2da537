package database

import (
	"context"
	_ "embed"
	"fmt"

	"github.com/rs/zerolog"
)

// The schema travels inside the binary so deployment does not depend on
// files being present at runtime.
//
//go:embed schema.sql
var schemaSQL string

// EnsureSchema applies the embedded schema at startup. Every statement
// is idempotent (CREATE ... IF NOT EXISTS), so running it on an
// up-to-date database is a no-op.
func EnsureSchema(ctx context.Context, q Querier, logger *zerolog.Logger) error {
	if _, err := q.Exec(ctx, schemaSQL); err != nil {
		return fmt.Errorf("applying database schema: %w", err)
	}

	logger.Info().Msg("database schema ensured")
	return nil
}
