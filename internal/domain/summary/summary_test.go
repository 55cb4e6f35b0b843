package summary_test

import (
	"testing"

	"github.com/coachkit/huddle/internal/domain/model"
	"github.com/coachkit/huddle/internal/domain/summary"
	"github.com/coachkit/huddle/internal/domain/table"
	. "github.com/smartystreets/goconvey/convey"
)

func mergedFixture() *table.Table {
	t := table.New(
		model.ColEmail, model.ColWeekNumber,
		model.ColBodyweightWeekly, model.ColBodyweightBaseline,
	)
	add := func(email string, week table.Value, weekly, baseline table.Value) {
		t.Append(table.Row{
			model.ColEmail:              table.String(email),
			model.ColWeekNumber:         week,
			model.ColBodyweightWeekly:   weekly,
			model.ColBodyweightBaseline: baseline,
		})
	}
	// a: lost 5 by week 2 (week 1 loss of 2 must not count)
	add("a@x.com", table.Int(1), table.Float(198), table.Float(200))
	add("a@x.com", table.Int(2), table.Float(195), table.Float(200))
	// b: gained weight; contributes nothing
	add("b@x.com", table.Int(2), table.Float(184), table.Float(180))
	// c: null week only; excluded entirely
	add("c@x.com", table.Null(), table.Float(150), table.Float(160))
	return t
}

func TestTotalWeightLost(t *testing.T) {
	Convey("Given merged rows across weeks", t, func() {
		merged := mergedFixture()

		Convey("When computing total weight lost", func() {
			total := summary.TotalWeightLost(merged)

			Convey("Then only the latest row per member counts and gains add zero", func() {
				So(total, ShouldEqual, 5.0)
			})
		})

		Convey("When a required column is absent", func() {
			So(summary.TotalWeightLost(merged.Select(model.ColEmail, model.ColWeekNumber)), ShouldEqual, 0.0)
		})

		Convey("When the table is empty", func() {
			So(summary.TotalWeightLost(table.New()), ShouldEqual, 0.0)
		})

		Convey("When the latest row is missing an operand", func() {
			merged.Append(table.Row{
				model.ColEmail:              table.String("a@x.com"),
				model.ColWeekNumber:         table.Int(3),
				model.ColBodyweightWeekly:   table.Null(),
				model.ColBodyweightBaseline: table.Float(200),
			})

			Convey("Then that member contributes nothing rather than failing", func() {
				So(summary.TotalWeightLost(merged), ShouldEqual, 0.0)
			})
		})
	})
}

func TestCurrentWeek(t *testing.T) {
	Convey("Given merged rows", t, func() {
		merged := mergedFixture()

		Convey("When the table has valid weeks", func() {
			wk, ok := summary.CurrentWeek(merged)
			So(ok, ShouldBeTrue)
			So(wk, ShouldEqual, 2)
		})

		Convey("When no week is valid", func() {
			nulls := table.New(model.ColWeekNumber)
			nulls.Append(table.Row{model.ColWeekNumber: table.Null()})
			_, ok := summary.CurrentWeek(nulls)
			So(ok, ShouldBeFalse)
		})

		Convey("When the table is empty", func() {
			_, ok := summary.CurrentWeek(table.New())
			So(ok, ShouldBeFalse)
		})
	})
}

func TestMemberLatestSnapshot(t *testing.T) {
	Convey("Given merged rows", t, func() {
		merged := mergedFixture()

		Convey("When asking for a member with several weeks", func() {
			row, ok := summary.MemberLatestSnapshot(merged, "a@x.com")

			Convey("Then the greatest-week row comes back", func() {
				So(ok, ShouldBeTrue)
				wk, _ := row.Get(model.ColWeekNumber).AsInt()
				So(wk, ShouldEqual, 2)
				bw, _ := row.Get(model.ColBodyweightWeekly).AsFloat()
				So(bw, ShouldEqual, 195)
			})
		})

		Convey("When the member only has null-week rows", func() {
			_, ok := summary.MemberLatestSnapshot(merged, "c@x.com")
			So(ok, ShouldBeFalse)
		})

		Convey("When the member is unknown", func() {
			_, ok := summary.MemberLatestSnapshot(merged, "nobody@x.com")
			So(ok, ShouldBeFalse)
		})
	})
}
