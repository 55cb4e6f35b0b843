// Package validate checks source tables for the columns the pipeline
// cannot run without. A non-empty result is fatal for the run: the caller
// halts rather than operating on a structurally broken table.
package validate

import (
	"sort"

	"github.com/coachkit/huddle/internal/domain/model"
	"github.com/coachkit/huddle/internal/domain/table"
)

// requiredIntake are the columns the intake export must carry.
var requiredIntake = []string{
	model.ColTimestamp,
	model.ColEmail,
	model.ColBodyweightBaseline,
	model.ColRHRBaseline,
	model.ColSleepQualBaseline,
	model.ColEnergyBaseline,
}

// requiredWeekly is the minimal weekly contract; metric columns are
// optional and degrade per-column downstream.
var requiredWeekly = []string{
	model.ColTimestamp,
	model.ColEmail,
	model.ColWeekNumber,
}

// Intake returns the sorted names of required intake columns missing from
// t. Empty means valid.
func Intake(t *table.Table) []string {
	return missing(t, requiredIntake)
}

// Weekly returns the sorted names of required weekly columns missing from
// t. Empty means valid.
func Weekly(t *table.Table) []string {
	return missing(t, requiredWeekly)
}

func missing(t *table.Table, required []string) []string {
	var out []string
	for _, c := range required {
		if !t.HasColumn(c) {
			out = append(out, c)
		}
	}
	sort.Strings(out)
	return out
}
