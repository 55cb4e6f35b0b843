package app

import (
	"time"

	"github.com/coachkit/huddle/internal/domain/table"
)

// TableView is the JSON shape for a tabular payload. Rows marshal as plain
// maps with nulls for missing cells; Columns carries the order so clients
// render tables stably.
type TableView struct {
	Columns []string         `json:"columns"`
	Rows    []map[string]any `json:"rows"`
}

// Overview carries the headline dashboard numbers.
type Overview struct {
	ChallengeName string `json:"challenge_name"`
	StartDate     string `json:"start_date,omitempty"`
	EndDate       string `json:"end_date,omitempty"`
	WeekCount     int    `json:"week_count,omitempty"`
	CoachEmail    string `json:"coach_email,omitempty"`

	Participants    int     `json:"participants"`
	Submissions     int     `json:"submissions"`
	WeeksTracked    int     `json:"weeks_tracked"`
	CurrentWeek     *int64  `json:"current_week"`
	TotalWeightLost float64 `json:"total_weight_lost_lbs"`

	WeeklyAvailable bool      `json:"weekly_data"`
	RunID           string    `json:"run_id"`
	LoadedAt        time.Time `json:"loaded_at"`
}

// ActionList pairs the two coach to-do surfaces for the current week.
type ActionList struct {
	Missing []string  `json:"missing"`
	AtRisk  TableView `json:"at_risk"`
}

func tableView(t *table.Table) TableView {
	v := TableView{
		Columns: append([]string(nil), t.Columns...),
		Rows:    make([]map[string]any, 0, t.Len()),
	}
	for _, r := range t.Rows {
		v.Rows = append(v.Rows, rowView(t.Columns, r))
	}
	return v
}

func rowView(cols []string, r table.Row) map[string]any {
	out := make(map[string]any, len(cols))
	for _, c := range cols {
		out[c] = r.Get(c).Native()
	}
	return out
}
