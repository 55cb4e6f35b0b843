package normalize

import (
	"strconv"
	"strings"

	"github.com/coachkit/huddle/internal/domain/model"
	"github.com/coachkit/huddle/internal/domain/table"
)

// weekLabelPrefix is stripped literally from free-text week labels, so
// "Week 3", " 3 " and "3" all read as week 3.
const weekLabelPrefix = "Week"

// WeekNumbers rewrites the week_number column as nullable integers parsed
// from free-text labels. Unparseable labels ("TBD", blanks) become null,
// never an error. Tables without the column are returned unchanged.
func WeekNumbers(t *table.Table) *table.Table {
	out := t.Clone()
	if !out.HasColumn(model.ColWeekNumber) {
		return out
	}
	for _, r := range out.Rows {
		r[model.ColWeekNumber] = ParseWeekLabel(r.Get(model.ColWeekNumber))
	}
	return out
}

// ParseWeekLabel extracts the integer week index from a single cell.
// Already-numeric cells pass through; float cells are accepted when whole.
func ParseWeekLabel(v table.Value) table.Value {
	if n, ok := v.AsInt(); ok {
		return table.Int(n)
	}
	if f, ok := v.AsFloat(); ok {
		if f == float64(int64(f)) {
			return table.Int(int64(f))
		}
		return table.Null()
	}
	s, ok := v.AsString()
	if !ok {
		return table.Null()
	}
	s = strings.TrimSpace(s)
	s = strings.TrimSpace(strings.ReplaceAll(s, weekLabelPrefix, ""))
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return table.Null()
	}
	return table.Int(n)
}
