// Package summary computes headline numbers over the merged table: cohort
// weight lost, the current challenge week, and per-member latest snapshots.
//
// Latest-per-participant selection uses week number only. Both functions
// that rely on it assume their input was already deduplicated by
// (email, week); on un-deduplicated input the stable sort makes the later
// original row win among equal max weeks.
package summary

import (
	"math"

	"github.com/coachkit/huddle/internal/domain/model"
	"github.com/coachkit/huddle/internal/domain/table"
)

// TotalWeightLost sums pounds lost across the cohort. For each participant
// only the latest (max-week) row counts, and only negative bodyweight
// deltas contribute; gains are not netted against losses. Returns 0 on
// empty input or when the needed columns are missing.
func TotalWeightLost(merged *table.Table) float64 {
	if merged.Empty() {
		return 0.0
	}
	if !merged.HasColumns(
		model.ColEmail, model.ColWeekNumber,
		model.ColBodyweightWeekly, model.ColBodyweightBaseline,
	) {
		return 0.0
	}

	var total float64
	for _, r := range latestPerEmail(merged) {
		wv, wok := r.Get(model.ColBodyweightWeekly).AsFloat()
		bv, bok := r.Get(model.ColBodyweightBaseline).AsFloat()
		if !wok || !bok {
			continue
		}
		if change := wv - bv; change < 0 {
			total += math.Abs(change)
		}
	}
	return total
}

// CurrentWeek returns the maximum non-null week number across the merged
// table. ok is false when no valid week exists.
func CurrentWeek(merged *table.Table) (int64, bool) {
	if merged.Empty() || !merged.HasColumn(model.ColWeekNumber) {
		return 0, false
	}
	var max int64
	found := false
	for _, r := range merged.Rows {
		wk, ok := r.Get(model.ColWeekNumber).AsInt()
		if !ok {
			continue
		}
		if !found || wk > max {
			max = wk
			found = true
		}
	}
	return max, found
}

// MemberLatestSnapshot returns the greatest-week row for one participant,
// ignoring rows with a null week. ok is false when the participant has no
// valid rows.
func MemberLatestSnapshot(merged *table.Table, email string) (table.Row, bool) {
	if merged.Empty() || !merged.HasColumn(model.ColEmail) {
		return nil, false
	}
	var best table.Row
	var bestWeek int64
	for _, r := range merged.Rows {
		e, ok := r.Get(model.ColEmail).AsString()
		if !ok || e != email {
			continue
		}
		wk, ok := r.Get(model.ColWeekNumber).AsInt()
		if !ok {
			continue
		}
		if best == nil || wk >= bestWeek {
			best = r
			bestWeek = wk
		}
	}
	if best == nil {
		return nil, false
	}
	return best.Clone(), true
}

// latestPerEmail picks each participant's max-week row, dropping null-week
// rows first. Later rows win week ties, matching a stable ascending sort
// followed by taking each group's tail.
func latestPerEmail(merged *table.Table) map[string]table.Row {
	latest := make(map[string]table.Row)
	week := make(map[string]int64)
	for _, r := range merged.Rows {
		e, ok := r.Get(model.ColEmail).AsString()
		if !ok {
			continue
		}
		wk, ok := r.Get(model.ColWeekNumber).AsInt()
		if !ok {
			continue
		}
		if prev, seen := week[e]; !seen || wk >= prev {
			latest[e] = r
			week[e] = wk
		}
	}
	return latest
}
