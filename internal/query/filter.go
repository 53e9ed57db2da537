// Package query builds parameterized SQL predicates from optional
// filter inputs.
//
// Each filter field contributes an isolated squirrel fragment; active
// fragments are composed with AND in a fixed order. Filter values only
// ever become positional parameters — clause text never contains
// user-controlled data. Malformed inputs normalize to "absent" rather
// than failing, since every filter is optional.
package query

import (
	"strings"
	"time"

	sq "github.com/Masterminds/squirrel"
)

// DateRange is an optional inclusive created_at window. Either bound
// may be nil.
type DateRange struct {
	From *time.Time
	To   *time.Time
}

// IsZero reports whether neither bound is set.
func (r DateRange) IsZero() bool {
	return r.From == nil && r.To == nil
}

// Conditions renders the range as predicate fragments over the given
// column: BETWEEN when both bounds are present, >= / <= for a single
// bound, nothing when the range is empty. Parameters appear in
// (from, to) order.
func (r DateRange) Conditions(column string) []sq.Sqlizer {
	switch {
	case r.From != nil && r.To != nil:
		return []sq.Sqlizer{sq.Expr(column+" BETWEEN ? AND ?", *r.From, *r.To)}
	case r.From != nil:
		return []sq.Sqlizer{sq.GtOrEq{column: *r.From}}
	case r.To != nil:
		return []sq.Sqlizer{sq.LtOrEq{column: *r.To}}
	default:
		return nil
	}
}

// Filter is the full search filter vocabulary for users queries.
type Filter struct {
	// NameContains matches case-insensitively anywhere in the name.
	NameContains string
	// Range restricts created_at.
	Range DateRange
	// Domains restricts the email domain (the part after '@') to a set.
	Domains []string
}

// Predicate assembles the active conditions in fixed order:
// text-contains, date range, domain set. An empty filter yields an
// empty conjunction; callers must then omit the WHERE clause entirely.
func (f Filter) Predicate() sq.And {
	and := sq.And{}

	if name := strings.TrimSpace(f.NameContains); name != "" {
		and = append(and, sq.ILike{"name": "%" + name + "%"})
	}

	and = append(and, f.Range.Conditions("created_at")...)

	if len(f.Domains) > 0 {
		// One placeholder per element, in input order.
		and = append(and, sq.Eq{"split_part(email, '@', 2)": f.Domains})
	}

	return and
}

// Build renders the predicate to (clauseText, orderedParams). A filter
// with no active conditions produces an empty clause and no parameters.
func (f Filter) Build() (string, []any, error) {
	pred := f.Predicate()
	if len(pred) == 0 {
		return "", nil, nil
	}
	return pred.ToSql()
}

// dateLayouts are the accepted textual date formats, tried in order.
var dateLayouts = []string{"2006-01-02", time.RFC3339}

// ParseDate parses an optional date bound. Unparseable or empty input
// is treated as absent.
func ParseDate(raw string) *time.Time {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return &t
		}
	}
	return nil
}

// ParseDateTo parses the upper bound of a range. A date-only value is
// advanced to the last instant of that day so the named day itself is
// included in the range.
func ParseDateTo(raw string) *time.Time {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}
	if t, err := time.Parse("2006-01-02", raw); err == nil {
		end := t.AddDate(0, 0, 1).Add(-time.Microsecond)
		return &end
	}
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return &t
	}
	return nil
}

// ParseDomains splits a comma-separated domain list, trimming each
// element and dropping empties. An input with no usable elements yields
// nil.
func ParseDomains(raw string) []string {
	if strings.TrimSpace(raw) == "" {
		return nil
	}

	var domains []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			domains = append(domains, part)
		}
	}
	return domains
}
