package normalize

import (
	"strings"

	"github.com/coachkit/huddle/internal/domain/model"
	"github.com/coachkit/huddle/internal/domain/table"
)

// Fixed ordinal-answer scorings. Treated as immutable; lookups return
// (value, ok) so an unknown answer reads as missing, never as zero.
var (
	adherenceScores = map[string]float64{
		"Most days":     1.0,
		"Some days":     0.5,
		"Very few days": 0.0,
	}

	sleepBucketHours = map[string]float64{
		"Less than 5": 4.5,
		"5-6":         5.5,
		"6-7":         6.5,
		"7-8":         7.5,
		"8+":          8.5,
	}
)

// AdherenceScore maps an adherence answer to its numeric score.
func AdherenceScore(answer string) (float64, bool) {
	v, ok := adherenceScores[strings.TrimSpace(answer)]
	return v, ok
}

// SleepBucketHours maps a sleep-hours bucket to its midpoint hours.
func SleepBucketHours(bucket string) (float64, bool) {
	v, ok := sleepBucketHours[strings.TrimSpace(bucket)]
	return v, ok
}

// MapCategorical derives a numeric column from a categorical source column
// on a copy of t using score. Unmapped or non-string cells derive null. The
// source column must exist; callers skip the call when it does not.
func MapCategorical(t *table.Table, src, dst string, score func(string) (float64, bool)) *table.Table {
	out := t.Clone()
	out.AddColumn(dst)
	for _, r := range out.Rows {
		s, ok := r.Get(src).AsString()
		if !ok {
			r[dst] = table.Null()
			continue
		}
		if v, ok := score(s); ok {
			r[dst] = table.Float(v)
		} else {
			r[dst] = table.Null()
		}
	}
	return out
}

// ApplyCategoricalWeekly derives adherence and sleep-hours scores on the
// weekly table for whichever source columns are present.
func ApplyCategoricalWeekly(t *table.Table) *table.Table {
	out := t
	if out.HasColumn(model.ColAdherenceWeekly) {
		out = MapCategorical(out, model.ColAdherenceWeekly, model.ColAdherenceScore, AdherenceScore)
	}
	if out.HasColumn(model.ColSleepHoursWeekly) {
		out = MapCategorical(out, model.ColSleepHoursWeekly, model.ColSleepHoursNumWeekly, SleepBucketHours)
	}
	return out
}

// ApplyCategoricalBaseline derives the sleep-hours score on the intake
// table when its source column is present.
func ApplyCategoricalBaseline(t *table.Table) *table.Table {
	if !t.HasColumn(model.ColSleepHoursBaseline) {
		return t
	}
	return MapCategorical(t, model.ColSleepHoursBaseline, model.ColSleepHoursNumBase, SleepBucketHours)
}
