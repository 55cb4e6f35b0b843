// Package normalize cleans raw survey tables: identity canonicalization,
// timestamp parsing, week-label parsing, categorical-to-numeric mapping and
// numeric casts. Every function is a pure transform that returns a new
// table; malformed cells degrade to null instead of failing the table.
package normalize

import (
	"strings"
	"time"

	"github.com/coachkit/huddle/internal/domain/model"
	"github.com/coachkit/huddle/internal/domain/table"
)

// timestampLayouts are tried in order when parsing submission timestamps.
// Google Forms exports use the slash layouts; API-shaped data uses RFC3339.
var timestampLayouts = []string{
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	"1/2/2006 15:04:05",
	"1/2/2006 15:04",
	"2006-01-02",
	"1/2/2006",
}

// Common canonicalizes the identity and timestamp columns when present:
// email is trimmed and lower-cased, timestamp is parsed with unparseable
// values becoming null. Columns that are absent are left alone.
func Common(t *table.Table) *table.Table {
	out := t.Clone()
	hasEmail := out.HasColumn(model.ColEmail)
	hasTS := out.HasColumn(model.ColTimestamp)
	if !hasEmail && !hasTS {
		return out
	}
	for _, r := range out.Rows {
		if hasEmail {
			r[model.ColEmail] = canonicalEmail(r.Get(model.ColEmail))
		}
		if hasTS {
			r[model.ColTimestamp] = ParseTimestamp(r.Get(model.ColTimestamp))
		}
	}
	return out
}

func canonicalEmail(v table.Value) table.Value {
	s, ok := v.AsString()
	if !ok {
		if v.IsNull() {
			return table.Null()
		}
		s = v.Text()
	}
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return table.Null()
	}
	return table.String(s)
}

// ParseTimestamp coerces a cell to a time value. Already-parsed times pass
// through; strings are tried against the known layouts; everything else is
// null.
func ParseTimestamp(v table.Value) table.Value {
	if _, ok := v.AsTime(); ok {
		return v
	}
	s, ok := v.AsString()
	if !ok {
		return table.Null()
	}
	s = strings.TrimSpace(s)
	if s == "" {
		return table.Null()
	}
	for _, layout := range timestampLayouts {
		if ts, err := time.Parse(layout, s); err == nil {
			return table.Time(ts)
		}
	}
	return table.Null()
}

// CastNumeric coerces the named columns to float cells on a copy of t.
// Columns the table lacks are skipped; cells that do not parse become null.
func CastNumeric(t *table.Table, cols []string) *table.Table {
	out := t.Clone()
	for _, c := range cols {
		if !out.HasColumn(c) {
			continue
		}
		for _, r := range out.Rows {
			if f, ok := r.Get(c).ParseFloat(); ok {
				r[c] = table.Float(f)
			} else {
				r[c] = table.Null()
			}
		}
	}
	return out
}
