package actions_test

import (
	"testing"

	"github.com/coachkit/huddle/internal/domain/actions"
	"github.com/coachkit/huddle/internal/domain/model"
	"github.com/coachkit/huddle/internal/domain/table"
	. "github.com/smartystreets/goconvey/convey"
)

func intakeWith(emails ...string) *table.Table {
	t := table.New(model.ColEmail)
	for _, e := range emails {
		t.Append(table.Row{model.ColEmail: table.String(e)})
	}
	return t
}

func mergedRow(email string, week int64, adherence string, stress, sleep table.Value) table.Row {
	r := table.Row{
		model.ColEmail:          table.String(email),
		model.ColWeekNumber:     table.Int(week),
		model.ColStressWeekly:   stress,
		model.ColSleepQualWeekly: sleep,
	}
	if adherence != "" {
		r[model.ColAdherenceWeekly] = table.String(adherence)
	}
	return r
}

func TestEvaluate(t *testing.T) {
	Convey("Given an engine with the default rules", t, func() {
		engine := actions.New()
		intake := intakeWith("a@x.com", "b@x.com", "c@x.com")

		merged := table.New(
			model.ColEmail, model.ColWeekNumber, model.ColAdherenceWeekly,
			model.ColStressWeekly, model.ColSleepQualWeekly,
		)

		Convey("When only a and c submitted for the current week", func() {
			merged.Append(mergedRow("a@x.com", 2, "Most days", table.Float(3), table.Float(7)))
			merged.Append(mergedRow("c@x.com", 2, "Some days", table.Float(5), table.Float(6)))
			merged.Append(mergedRow("b@x.com", 1, "Most days", table.Float(2), table.Float(8)))

			missing, atRisk := engine.Evaluate(intake, merged)

			Convey("Then missing is the plain set difference", func() {
				So(missing.Len(), ShouldEqual, 1)
				e, _ := missing.Rows[0].Get(model.ColEmail).AsString()
				So(e, ShouldEqual, "b@x.com")
			})

			Convey("And nobody healthy is flagged", func() {
				So(atRisk.Empty(), ShouldBeTrue)
			})
		})

		Convey("When a submitter reports very low adherence", func() {
			merged.Append(mergedRow("a@x.com", 1, "Very few days", table.Null(), table.Null()))
			_, atRisk := engine.Evaluate(intake, merged)

			Convey("Then rule A flags regardless of stress and sleep", func() {
				So(atRisk.Len(), ShouldEqual, 1)
				rules, _ := atRisk.Rows[0].Get(model.ColRiskRules).AsString()
				So(rules, ShouldEqual, "low_adherence")
			})
		})

		Convey("When stress and sleep quality cross the thresholds", func() {
			merged.Append(mergedRow("a@x.com", 1, "Most days", table.Float(9), table.Float(3)))
			merged.Append(mergedRow("b@x.com", 1, "Most days", table.Float(7), table.Float(3)))
			merged.Append(mergedRow("c@x.com", 1, "Most days", table.Float(8), table.Float(4)))

			_, atRisk := engine.Evaluate(intake, merged)

			Convey("Then stress>=8 with sleep<=4 flags, stress 7 does not", func() {
				So(atRisk.Len(), ShouldEqual, 2)
				for _, r := range atRisk.Rows {
					e, _ := r.Get(model.ColEmail).AsString()
					So(e, ShouldNotEqual, "b@x.com")
				}
			})

			Convey("And flagged rows sort by stress descending", func() {
				s0, _ := atRisk.Rows[0].Get(model.ColStressWeekly).AsFloat()
				s1, _ := atRisk.Rows[1].Get(model.ColStressWeekly).AsFloat()
				So(s0, ShouldEqual, 9)
				So(s1, ShouldEqual, 8)
			})
		})

		Convey("When a flagged row lacks a stress value", func() {
			merged.Append(mergedRow("a@x.com", 1, "Very few days", table.Null(), table.Null()))
			merged.Append(mergedRow("c@x.com", 1, "Very few days", table.Float(6), table.Float(6)))

			_, atRisk := engine.Evaluate(intake, merged)

			Convey("Then null stress sorts last", func() {
				So(atRisk.Len(), ShouldEqual, 2)
				e0, _ := atRisk.Rows[0].Get(model.ColEmail).AsString()
				So(e0, ShouldEqual, "c@x.com")
				So(atRisk.Rows[1].Get(model.ColStressWeekly).IsNull(), ShouldBeTrue)
			})
		})

		Convey("When a member matches both rules", func() {
			merged.Append(mergedRow("a@x.com", 1, "Very few days", table.Float(9), table.Float(2)))
			_, atRisk := engine.Evaluate(intake, merged)

			Convey("Then one row carries both rule names", func() {
				So(atRisk.Len(), ShouldEqual, 1)
				rules, _ := atRisk.Rows[0].Get(model.ColRiskRules).AsString()
				So(rules, ShouldEqual, "low_adherence,stress_sleep")
			})
		})

		Convey("When no valid week exists", func() {
			missing, atRisk := engine.Evaluate(intake, table.New())

			Convey("Then both outputs are empty", func() {
				So(missing.Empty(), ShouldBeTrue)
				So(atRisk.Empty(), ShouldBeTrue)
			})
		})
	})

	Convey("Given an engine with an extra custom rule", t, func() {
		engine := actions.New(actions.WithExtraRule(actions.Rule{
			Name: "no_energy",
			Match: func(r table.Row) bool {
				f, ok := r.Get(model.ColEnergyWeekly).AsFloat()
				return ok && f <= 2
			},
		}))
		intake := intakeWith("a@x.com")
		merged := table.New(model.ColEmail, model.ColWeekNumber, model.ColEnergyWeekly)
		merged.Append(table.Row{
			model.ColEmail:        table.String("a@x.com"),
			model.ColWeekNumber:   table.Int(1),
			model.ColEnergyWeekly: table.Float(1),
		})

		Convey("When evaluating", func() {
			_, atRisk := engine.Evaluate(intake, merged)

			Convey("Then the custom rule participates in the OR", func() {
				So(atRisk.Len(), ShouldEqual, 1)
				rules, _ := atRisk.Rows[0].Get(model.ColRiskRules).AsString()
				So(rules, ShouldEqual, "no_energy")
			})
		})
	})
}
