// Package actions builds the coaching action list for the current week:
// who has not checked in, and which submitters look at-risk.
package actions

import (
	"sort"
	"strings"

	"github.com/coachkit/huddle/internal/domain/model"
	"github.com/coachkit/huddle/internal/domain/summary"
	"github.com/coachkit/huddle/internal/domain/table"
)

// Rule is one independently testable at-risk predicate over a merged row.
// Rules are combined by OR, so adding a rule never touches combination
// logic.
type Rule struct {
	Name  string
	Match func(table.Row) bool
}

// Risk thresholds for the stress/sleep rule.
const (
	stressRiskFloor    = 8.0
	sleepQualRiskCeil  = 4.0
	lowAdherenceAnswer = "Very few days"
)

// DefaultRules returns the built-in at-risk rules.
func DefaultRules() []Rule {
	return []Rule{
		{
			Name: "low_adherence",
			Match: func(r table.Row) bool {
				s, ok := r.Get(model.ColAdherenceWeekly).AsString()
				return ok && strings.TrimSpace(s) == lowAdherenceAnswer
			},
		},
		{
			Name: "stress_sleep",
			Match: func(r table.Row) bool {
				stress, ok := r.Get(model.ColStressWeekly).AsFloat()
				if !ok || stress < stressRiskFloor {
					return false
				}
				sleep, ok := r.Get(model.ColSleepQualWeekly).AsFloat()
				return ok && sleep <= sleepQualRiskCeil
			},
		},
	}
}

// Engine evaluates the rule set against the current week.
type Engine struct {
	rules []Rule
}

// New creates an Engine; with no options it runs the default rules.
func New(opts ...Option) *Engine {
	e := &Engine{rules: DefaultRules()}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Evaluate returns the missing-check-in table and the at-risk table for the
// current week (max week present in merged). When no valid week exists both
// outputs are empty. Missing = baseline identities minus current-week
// submitters, sorted. At-risk rows are the current-week rows matching any
// rule, annotated with the matched rule names and sorted by stress
// descending with null stress last.
func (e *Engine) Evaluate(intake, merged *table.Table) (*table.Table, *table.Table) {
	missing := table.New(model.ColEmail)

	wk, ok := summary.CurrentWeek(merged)
	if !ok {
		return missing, table.New()
	}

	thisWeek := merged.Filter(func(r table.Row) bool {
		w, ok := r.Get(model.ColWeekNumber).AsInt()
		return ok && w == wk
	})

	submitted := emailSet(thisWeek)
	for _, email := range sortedDifference(emailSet(intake), submitted) {
		missing.Append(table.Row{model.ColEmail: table.String(email)})
	}

	atRisk := table.New(thisWeek.Columns...)
	atRisk.AddColumn(model.ColRiskRules)
	for _, r := range thisWeek.Rows {
		var matched []string
		for _, rule := range e.rules {
			if rule.Match(r) {
				matched = append(matched, rule.Name)
			}
		}
		if len(matched) == 0 {
			continue
		}
		nr := r.Clone()
		nr[model.ColRiskRules] = table.String(strings.Join(matched, ","))
		atRisk.Append(nr)
	}
	atRisk.SortStable(func(a, b table.Row) bool {
		return stressAfter(a.Get(model.ColStressWeekly), b.Get(model.ColStressWeekly))
	})

	return missing, atRisk
}

func emailSet(t *table.Table) map[string]struct{} {
	out := make(map[string]struct{})
	if !t.HasColumn(model.ColEmail) {
		return out
	}
	for _, r := range t.Rows {
		if e, ok := r.Get(model.ColEmail).AsString(); ok {
			out[e] = struct{}{}
		}
	}
	return out
}

func sortedDifference(all, subtract map[string]struct{}) []string {
	var out []string
	for e := range all {
		if _, ok := subtract[e]; !ok {
			out = append(out, e)
		}
	}
	sort.Strings(out)
	return out
}

// stressAfter orders stress cells descending with nulls last.
func stressAfter(a, b table.Value) bool {
	af, aok := a.AsFloat()
	bf, bok := b.AsFloat()
	switch {
	case !aok:
		return false
	case !bok:
		return true
	default:
		return af > bf
	}
}
