// Package dedupe collapses repeated weekly submissions to the latest one
// per (email, week_number) key.
package dedupe

import (
	"github.com/coachkit/huddle/internal/domain/model"
	"github.com/coachkit/huddle/internal/domain/table"
)

// Collapser reduces a weekly table to at most one row per key, keeping a
// projection of every row that shared its key as an informational report.
type Collapser struct {
	identityCol string
	weekCol     string
	tsCol       string
}

// New creates a Collapser with configuration options.
func New(opts ...Option) *Collapser {
	c := &Collapser{
		identityCol: model.ColEmail,
		weekCol:     model.ColWeekNumber,
		tsCol:       model.ColTimestamp,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Collapse returns the weekly table reduced to the latest row per
// (identity, week) key plus the duplicates report.
//
// Rows are first stable-sorted by timestamp ascending and the LAST row per
// key survives, which makes "latest timestamp wins" hold. The sort MUST be
// stable: rows with equal or missing timestamps fall back to original
// order, so the later original row wins ties. Tables lacking the identity
// or week column are returned unchanged with an empty report.
func (c *Collapser) Collapse(weekly *table.Table) (*table.Table, *table.Table) {
	report := table.New(c.identityCol, c.weekCol, c.tsCol)
	if !weekly.HasColumns(c.identityCol, c.weekCol) {
		return weekly.Clone(), report
	}

	sorted := weekly.Clone()
	if sorted.HasColumn(c.tsCol) {
		sorted.SortStable(func(a, b table.Row) bool {
			return tsBefore(a.Get(c.tsCol), b.Get(c.tsCol))
		})
	}

	counts := make(map[string]int, sorted.Len())
	for _, r := range sorted.Rows {
		counts[c.key(r)]++
	}

	// Report every row whose key occurs more than once, projected to the
	// key columns, ordered by identity then week then timestamp.
	for _, r := range sorted.Rows {
		if counts[c.key(r)] < 2 {
			continue
		}
		report.Append(table.Row{
			c.identityCol: r.Get(c.identityCol),
			c.weekCol:     r.Get(c.weekCol),
			c.tsCol:       r.Get(c.tsCol),
		})
	}
	report.SortStable(func(a, b table.Row) bool {
		if ai, bi := a.Get(c.identityCol).Text(), b.Get(c.identityCol).Text(); ai != bi {
			return ai < bi
		}
		aw, _ := a.Get(c.weekCol).AsInt()
		bw, _ := b.Get(c.weekCol).AsInt()
		if aw != bw {
			return aw < bw
		}
		return tsBefore(a.Get(c.tsCol), b.Get(c.tsCol))
	})

	// Keep the last occurrence per key from the timestamp-sorted rows.
	lastIdx := make(map[string]int, len(counts))
	for i, r := range sorted.Rows {
		lastIdx[c.key(r)] = i
	}
	clean := table.New(sorted.Columns...)
	for i, r := range sorted.Rows {
		if lastIdx[c.key(r)] == i {
			clean.Append(r)
		}
	}
	return clean, report
}

func (c *Collapser) key(r table.Row) string {
	// Null weeks group together, separate from week 0.
	if r.Get(c.weekCol).IsNull() {
		return r.Get(c.identityCol).Text() + "\x00<null>"
	}
	return r.Get(c.identityCol).Text() + "\x00" + r.Get(c.weekCol).Text()
}

// tsBefore orders timestamp cells ascending with nulls first, so an
// untimestamped resubmission never beats a timestamped one.
func tsBefore(a, b table.Value) bool {
	at, aok := a.AsTime()
	bt, bok := b.AsTime()
	switch {
	case !aok && !bok:
		return false
	case !aok:
		return true
	case !bok:
		return false
	default:
		return at.Before(bt)
	}
}
