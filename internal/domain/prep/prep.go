// Package prep joins cleaned weekly check-ins onto intake baselines and
// derives the per-metric delta columns.
package prep

import (
	"github.com/coachkit/huddle/internal/domain/model"
	"github.com/coachkit/huddle/internal/domain/normalize"
	"github.com/coachkit/huddle/internal/domain/table"
)

// deltaSpec names a derived delta column and its weekly/baseline operands.
type deltaSpec struct {
	out      string
	weekly   string
	baseline string
}

var deltas = []deltaSpec{
	{model.ColDeltaBodyweight, model.ColBodyweightWeekly, model.ColBodyweightBaseline},
	{model.ColDeltaRHR, model.ColRHRWeekly, model.ColRHRBaseline},
	{model.ColDeltaEnergy, model.ColEnergyWeekly, model.ColEnergyBaseline},
}

// Merge left-joins weekly rows onto intake rows by email and computes the
// delta columns. Every weekly row appears exactly once in the merged table;
// rows without a baseline match keep null intake cells. Colliding intake
// column names gain the "_intake" suffix. The second return is the cleaned
// weekly table (normalized, week-parsed, categorically mapped) before the
// join. Each preparation step no-ops when its source columns are absent.
func Merge(intake, weekly *table.Table) (*table.Table, *table.Table) {
	// Defensive re-normalization: callers usually normalized already, but
	// the join key must be canonical no matter what.
	intake = normalize.Common(intake)
	weekly = normalize.Common(weekly)

	weekly = normalize.WeekNumbers(weekly)
	weekly = normalize.ApplyCategoricalWeekly(weekly)
	intake = normalize.ApplyCategoricalBaseline(intake)

	intake = normalize.CastNumeric(intake, model.NumericBaseline())
	weekly = normalize.CastNumeric(weekly, model.NumericWeekly())

	merged := leftJoin(weekly, intake, model.ColEmail)

	for _, d := range deltas {
		if !merged.HasColumns(d.weekly, d.baseline) {
			continue
		}
		merged.AddColumn(d.out)
		for _, r := range merged.Rows {
			wv, wok := r.Get(d.weekly).AsFloat()
			bv, bok := r.Get(d.baseline).AsFloat()
			if wok && bok {
				r[d.out] = table.Float(wv - bv)
			} else {
				r[d.out] = table.Null()
			}
		}
	}

	return merged, weekly
}

// leftJoin keeps every row of left, attaching the first right row whose key
// cell matches. Right columns already present on the left side are suffixed
// rather than overwritten. Unmatched left rows read null for right columns.
func leftJoin(left, right *table.Table, key string) *table.Table {
	// Column plan: left schema first, then right schema minus the key,
	// renamed on collision.
	rename := make(map[string]string, len(right.Columns))
	out := table.New(left.Columns...)
	for _, c := range right.Columns {
		if c == key {
			continue
		}
		name := c
		if left.HasColumn(c) {
			name = c + model.IntakeSuffix
		}
		rename[c] = name
		out.AddColumn(name)
	}

	byKey := make(map[string]table.Row, right.Len())
	for _, r := range right.Rows {
		k, ok := r.Get(key).AsString()
		if !ok {
			continue
		}
		if _, seen := byKey[k]; !seen {
			byKey[k] = r
		}
	}

	for _, lr := range left.Rows {
		nr := lr.Clone()
		k, _ := lr.Get(key).AsString()
		if rr, ok := byKey[k]; ok {
			for src, dst := range rename {
				nr[dst] = rr.Get(src)
			}
		} else {
			for _, dst := range rename {
				nr[dst] = table.Null()
			}
		}
		out.Append(nr)
	}
	return out
}
