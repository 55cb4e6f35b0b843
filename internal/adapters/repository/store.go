// Package repository holds the current pipeline result and a short history
// of runs. Readers always see a complete, immutable snapshot; a refresh
// swaps the whole thing atomically.
package repository

import (
	"context"
	"time"

	"github.com/coachkit/huddle/internal/domain/table"
)

// Snapshot is one complete pipeline result. All tables are owned by the
// snapshot and must not be mutated after Swap.
type Snapshot struct {
	RunID    string
	LoadedAt time.Time

	Intake      *table.Table
	WeeklyClean *table.Table
	Merged      *table.Table
	Duplicates  *table.Table
	Cohort      *table.Table
	Missing     *table.Table
	AtRisk      *table.Table

	TotalWeightLost float64
	CurrentWeek     int64
	HasCurrentWeek  bool
	WeeklyAvailable bool
}

// RunInfo summarizes one pipeline run for the stats surface.
type RunInfo struct {
	RunID      string    `json:"run_id"`
	LoadedAt   time.Time `json:"loaded_at"`
	IntakeRows int       `json:"intake_rows"`
	WeeklyRows int       `json:"weekly_rows"`
	Duplicates int       `json:"duplicates"`
}

// Store provides read/write access to the latest pipeline result.
type Store interface {
	// Swap installs snap as the current snapshot and records its run.
	Swap(ctx context.Context, snap *Snapshot)

	// Current returns the latest snapshot. ok is false before the first
	// successful Swap.
	Current(ctx context.Context) (*Snapshot, bool)

	// History returns recorded runs, newest first.
	History(ctx context.Context) []RunInfo

	// Count returns the number of recorded runs since startup.
	Count(ctx context.Context) int
}
