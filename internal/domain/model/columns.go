// Package model contains the column-name contract shared between layers.
// Names mirror the CSV exports produced by the intake and weekly check-in
// forms; the presentation layer relies on them staying stable.
package model

// Key columns present in both source tables.
const (
	ColEmail      = "email"
	ColTimestamp  = "timestamp"
	ColWeekNumber = "week_number"
)

// Baseline (intake) metric columns.
const (
	ColBodyweightBaseline = "bodyweight_lbs_baseline"
	ColRHRBaseline        = "rhr_bpm_baseline"
	ColSleepQualBaseline  = "sleep_quality_baseline"
	ColEnergyBaseline     = "energy_baseline"
	ColStressBaseline     = "stress_baseline"
	ColSleepHoursBaseline = "sleep_hours_baseline"
	ColClassesBaseline    = "classes_per_week_baseline"
	ColWholeFoodBaseline  = "whole_food_days_per_week_baseline"
	ColAlcoholBaseline    = "alcohol_days_per_week_baseline"
	ColTakeoutBaseline    = "takeout_per_week_baseline"
)

// Weekly check-in metric columns.
const (
	ColBodyweightWeekly = "bodyweight_lbs_weekly"
	ColRHRWeekly        = "rhr_bpm_weekly"
	ColEnergyWeekly     = "energy_weekly"
	ColSleepQualWeekly  = "sleep_quality_weekly"
	ColStressWeekly     = "stress_weekly"
	ColSleepHoursWeekly = "sleep_hours_weekly"
	ColAdherenceWeekly  = "nutrition_adherence_weekly"
	ColAlcoholWeekly    = "alcohol_days_weekly"
	ColClassesWeekly    = "class_attended_weekly"
	ColNotesWeekly      = "notes_weekly"
	ColWeeklyWin        = "weekly_win"
	ColWeeklyHelp       = "weekly_help"
)

// Columns derived by the pipeline.
const (
	ColAdherenceScore      = "adherence_score_weekly"
	ColSleepHoursNumWeekly = "sleep_hours_numeric_weekly"
	ColSleepHoursNumBase   = "sleep_hours_numeric_baseline"
	ColDeltaBodyweight     = "delta_bodyweight_lbs"
	ColDeltaRHR            = "delta_rhr_bpm"
	ColDeltaEnergy         = "delta_energy"
	ColRiskRules           = "risk_rules"
)

// IntakeSuffix disambiguates intake-side columns whose names collide with
// weekly columns after the merge.
const IntakeSuffix = "_intake"

// NumericBaseline lists the intake columns coerced to numeric during prep.
func NumericBaseline() []string {
	return []string{
		ColBodyweightBaseline, ColRHRBaseline,
		ColSleepQualBaseline, ColEnergyBaseline,
		ColStressBaseline, ColClassesBaseline,
		ColWholeFoodBaseline, ColAlcoholBaseline,
		ColTakeoutBaseline,
	}
}

// NumericWeekly lists the weekly columns coerced to numeric during prep.
func NumericWeekly() []string {
	return []string{
		ColBodyweightWeekly, ColRHRWeekly,
		ColEnergyWeekly, ColSleepQualWeekly,
		ColStressWeekly, ColAlcoholWeekly,
		ColClassesWeekly,
	}
}
