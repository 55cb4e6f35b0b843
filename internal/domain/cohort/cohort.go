// Package cohort aggregates merged check-in data into per-week summary
// rows for the trends view.
package cohort

import (
	"github.com/coachkit/huddle/internal/domain/model"
	"github.com/coachkit/huddle/internal/domain/table"
)

// Summary output columns. The schema is stable even for zero groups so the
// presentation layer can always render the table shape.
const (
	ColNParticipants  = "n_participants"
	ColBodyweightMean = "bodyweight_mean"
	ColRHRMean        = "rhr_mean"
	ColEnergyMean     = "energy_mean"
	ColAdherenceMean  = "adherence_mean"
	ColSleepHoursMean = "sleep_hours_mean"
	ColStressMean     = "stress_mean"
)

// meanSpec pairs an output column with the merged column it averages.
type meanSpec struct {
	out string
	src string
}

var means = []meanSpec{
	{ColBodyweightMean, model.ColBodyweightWeekly},
	{ColRHRMean, model.ColRHRWeekly},
	{ColEnergyMean, model.ColEnergyWeekly},
	{ColAdherenceMean, model.ColAdherenceScore},
	{ColSleepHoursMean, model.ColSleepHoursNumWeekly},
	{ColStressMean, model.ColStressWeekly},
}

// WeeklySummary groups merged rows by week number and reduces each group to
// a distinct-participant count plus the arithmetic mean of every weekly
// metric, skipping null cells. Rows with a null week are dropped before
// grouping. Output is sorted ascending by week.
func WeeklySummary(merged *table.Table) *table.Table {
	out := schema()
	if merged.Empty() || !merged.HasColumn(model.ColWeekNumber) {
		return out
	}

	// Partition by week, preserving first-seen group membership order.
	groups := make(map[int64][]table.Row)
	var weeks []int64
	for _, r := range merged.Rows {
		wk, ok := r.Get(model.ColWeekNumber).AsInt()
		if !ok {
			continue
		}
		if _, seen := groups[wk]; !seen {
			weeks = append(weeks, wk)
		}
		groups[wk] = append(groups[wk], r)
	}

	for _, wk := range weeks {
		out.Append(reduce(wk, groups[wk]))
	}
	out.SortStable(func(a, b table.Row) bool {
		aw, _ := a.Get(model.ColWeekNumber).AsInt()
		bw, _ := b.Get(model.ColWeekNumber).AsInt()
		return aw < bw
	})
	return out
}

func schema() *table.Table {
	return table.New(
		model.ColWeekNumber,
		ColNParticipants,
		ColBodyweightMean,
		ColRHRMean,
		ColEnergyMean,
		ColAdherenceMean,
		ColSleepHoursMean,
		ColStressMean,
	)
}

// reduce applies the named reducers to one week's rows.
func reduce(week int64, rows []table.Row) table.Row {
	out := table.Row{
		model.ColWeekNumber: table.Int(week),
		ColNParticipants:    table.Int(countDistinctEmails(rows)),
	}
	for _, m := range means {
		out[m.out] = meanOf(rows, m.src)
	}
	return out
}

func countDistinctEmails(rows []table.Row) int64 {
	seen := make(map[string]struct{}, len(rows))
	for _, r := range rows {
		if e, ok := r.Get(model.ColEmail).AsString(); ok {
			seen[e] = struct{}{}
		}
	}
	return int64(len(seen))
}

// meanOf averages the non-null cells of col; all-null groups read as null.
func meanOf(rows []table.Row, col string) table.Value {
	var sum float64
	var n int
	for _, r := range rows {
		if f, ok := r.Get(col).AsFloat(); ok {
			sum += f
			n++
		}
	}
	if n == 0 {
		return table.Null()
	}
	return table.Float(sum / float64(n))
}
