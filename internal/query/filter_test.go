package query

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFilterBuild(t *testing.T) {
	t.Run("empty filter yields no clause and no params", func(t *testing.T) {
		clause, args, err := Filter{}.Build()

		require.NoError(t, err)
		assert.Empty(t, clause)
		assert.Nil(t, args)
	})

	t.Run("name only", func(t *testing.T) {
		clause, args, err := Filter{NameContains: "ada"}.Build()

		require.NoError(t, err)
		assert.Equal(t, "(name ILIKE ?)", clause)
		assert.Equal(t, []any{"%ada%"}, args)
	})

	t.Run("name is trimmed before wrapping", func(t *testing.T) {
		clause, args, err := Filter{NameContains: "  ada  "}.Build()

		require.NoError(t, err)
		assert.Equal(t, "(name ILIKE ?)", clause)
		assert.Equal(t, []any{"%ada%"}, args)
	})

	t.Run("whitespace-only name is absent", func(t *testing.T) {
		clause, args, err := Filter{NameContains: "   "}.Build()

		require.NoError(t, err)
		assert.Empty(t, clause)
		assert.Nil(t, args)
	})

	t.Run("full filter composes fragments in fixed order", func(t *testing.T) {
		from := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
		to := time.Date(2024, 1, 31, 0, 0, 0, 0, time.UTC)

		clause, args, err := Filter{
			NameContains: "ada",
			Range:        DateRange{From: &from, To: &to},
			Domains:      []string{"example.com", "example.org"},
		}.Build()

		require.NoError(t, err)
		assert.Equal(t,
			"(name ILIKE ? AND created_at BETWEEN ? AND ? AND split_part(email, '@', 2) IN (?,?))",
			clause)
		assert.Equal(t, []any{"%ada%", from, to, "example.com", "example.org"}, args)
	})

	t.Run("one placeholder per domain in input order", func(t *testing.T) {
		clause, args, err := Filter{Domains: []string{"a.com", "b.com", "c.com"}}.Build()

		require.NoError(t, err)
		assert.Equal(t, "(split_part(email, '@', 2) IN (?,?,?))", clause)
		assert.Equal(t, []any{"a.com", "b.com", "c.com"}, args)
	})
}

func TestDateRangeConditions(t *testing.T) {
	from := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2024, 3, 31, 0, 0, 0, 0, time.UTC)

	t.Run("both bounds render BETWEEN with params in from-to order", func(t *testing.T) {
		conds := DateRange{From: &from, To: &to}.Conditions("created_at")

		require.Len(t, conds, 1)
		sql, args, err := conds[0].ToSql()
		require.NoError(t, err)
		assert.Equal(t, "created_at BETWEEN ? AND ?", sql)
		assert.Equal(t, []any{from, to}, args)
	})

	t.Run("lower bound only renders >=", func(t *testing.T) {
		conds := DateRange{From: &from}.Conditions("created_at")

		require.Len(t, conds, 1)
		sql, args, err := conds[0].ToSql()
		require.NoError(t, err)
		assert.Equal(t, "created_at >= ?", sql)
		assert.Equal(t, []any{from}, args)
	})

	t.Run("upper bound only renders <=", func(t *testing.T) {
		conds := DateRange{To: &to}.Conditions("created_at")

		require.Len(t, conds, 1)
		sql, args, err := conds[0].ToSql()
		require.NoError(t, err)
		assert.Equal(t, "created_at <= ?", sql)
		assert.Equal(t, []any{to}, args)
	})

	t.Run("empty range contributes nothing", func(t *testing.T) {
		assert.Nil(t, DateRange{}.Conditions("created_at"))
	})
}

func TestParseDate(t *testing.T) {
	t.Run("plain date", func(t *testing.T) {
		got := ParseDate("2024-06-15")

		require.NotNil(t, got)
		assert.Equal(t, time.Date(2024, 6, 15, 0, 0, 0, 0, time.UTC), *got)
	})

	t.Run("RFC3339 timestamp", func(t *testing.T) {
		got := ParseDate("2024-06-15T10:30:00Z")

		require.NotNil(t, got)
		assert.Equal(t, time.Date(2024, 6, 15, 10, 30, 0, 0, time.UTC), *got)
	})

	t.Run("garbage and empty are absent", func(t *testing.T) {
		assert.Nil(t, ParseDate("not-a-date"))
		assert.Nil(t, ParseDate(""))
		assert.Nil(t, ParseDate("  "))
	})
}

func TestParseDateTo(t *testing.T) {
	t.Run("plain date advances to end of day", func(t *testing.T) {
		got := ParseDateTo("2024-06-15")

		require.NotNil(t, got)
		want := time.Date(2024, 6, 16, 0, 0, 0, 0, time.UTC).Add(-time.Microsecond)
		assert.Equal(t, want, *got)
	})

	t.Run("RFC3339 timestamp is used as-is", func(t *testing.T) {
		got := ParseDateTo("2024-06-15T10:30:00Z")

		require.NotNil(t, got)
		assert.Equal(t, time.Date(2024, 6, 15, 10, 30, 0, 0, time.UTC), *got)
	})

	t.Run("garbage is absent", func(t *testing.T) {
		assert.Nil(t, ParseDateTo("15/06/2024"))
	})
}

func TestParseDomains(t *testing.T) {
	t.Run("splits and trims", func(t *testing.T) {
		assert.Equal(t,
			[]string{"example.com", "example.org"},
			ParseDomains(" example.com , example.org "))
	})

	t.Run("drops empty elements", func(t *testing.T) {
		assert.Equal(t, []string{"a.com"}, ParseDomains("a.com,,  ,"))
	})

	t.Run("blank input is absent", func(t *testing.T) {
		assert.Nil(t, ParseDomains(""))
		assert.Nil(t, ParseDomains("  "))
	})
}
