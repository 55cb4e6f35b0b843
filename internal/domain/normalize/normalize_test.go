package normalize_test

import (
	"testing"
	"time"

	"github.com/coachkit/huddle/internal/domain/model"
	"github.com/coachkit/huddle/internal/domain/normalize"
	"github.com/coachkit/huddle/internal/domain/table"
	. "github.com/smartystreets/goconvey/convey"
)

func TestCommon(t *testing.T) {
	Convey("Given a raw table with messy identity and timestamp cells", t, func() {
		raw := table.New(model.ColEmail, model.ColTimestamp)
		raw.Append(table.Row{
			model.ColEmail:     table.String("  A@X.com "),
			model.ColTimestamp: table.String("2024-01-01 09:30:00"),
		})
		raw.Append(table.Row{
			model.ColEmail:     table.String("b@x.com"),
			model.ColTimestamp: table.String("not a date"),
		})

		Convey("When normalizing", func() {
			out := normalize.Common(raw)

			Convey("Then emails are trimmed and lower-cased", func() {
				e, _ := out.Rows[0].Get(model.ColEmail).AsString()
				So(e, ShouldEqual, "a@x.com")
			})

			Convey("And parseable timestamps become time cells", func() {
				ts, ok := out.Rows[0].Get(model.ColTimestamp).AsTime()
				So(ok, ShouldBeTrue)
				So(ts.Year(), ShouldEqual, 2024)
			})

			Convey("And unparseable timestamps degrade to null", func() {
				So(out.Rows[1].Get(model.ColTimestamp).IsNull(), ShouldBeTrue)
			})

			Convey("And the input table is not mutated", func() {
				e, _ := raw.Rows[0].Get(model.ColEmail).AsString()
				So(e, ShouldEqual, "  A@X.com ")
			})
		})

		Convey("When the table lacks both columns", func() {
			bare := table.New("notes_weekly")
			bare.Append(table.Row{"notes_weekly": table.String("hi")})
			out := normalize.Common(bare)

			Convey("Then it is a no-op", func() {
				s, _ := out.Rows[0].Get("notes_weekly").AsString()
				So(s, ShouldEqual, "hi")
			})
		})
	})
}

func TestParseTimestamp(t *testing.T) {
	Convey("Given cells in the supported timestamp layouts", t, func() {
		cases := []string{
			"2024-03-04T10:00:00Z",
			"2024-03-04 10:00:00",
			"3/4/2024 10:00:00",
			"2024-03-04",
		}

		Convey("When parsing each layout", func() {
			for _, c := range cases {
				v := normalize.ParseTimestamp(table.String(c))
				ts, ok := v.AsTime()
				So(ok, ShouldBeTrue)
				So(ts.Month(), ShouldEqual, time.March)
			}
		})

		Convey("When a cell is already a time value", func() {
			now := time.Now()
			v := normalize.ParseTimestamp(table.Time(now))
			ts, ok := v.AsTime()
			So(ok, ShouldBeTrue)
			So(ts.Equal(now), ShouldBeTrue)
		})

		Convey("When a cell is blank or junk", func() {
			So(normalize.ParseTimestamp(table.String("  ")).IsNull(), ShouldBeTrue)
			So(normalize.ParseTimestamp(table.String("soon")).IsNull(), ShouldBeTrue)
			So(normalize.ParseTimestamp(table.Null()).IsNull(), ShouldBeTrue)
		})
	})
}

func TestWeekNumbers(t *testing.T) {
	Convey("Given free-text week labels", t, func() {
		Convey("When parsing the usual shapes", func() {
			for _, label := range []string{"Week 3", " 3 ", "3"} {
				v := normalize.ParseWeekLabel(table.String(label))
				n, ok := v.AsInt()
				So(ok, ShouldBeTrue)
				So(n, ShouldEqual, 3)
			}
		})

		Convey("When the label is not a week", func() {
			So(normalize.ParseWeekLabel(table.String("TBD")).IsNull(), ShouldBeTrue)
			So(normalize.ParseWeekLabel(table.String("")).IsNull(), ShouldBeTrue)
			So(normalize.ParseWeekLabel(table.Null()).IsNull(), ShouldBeTrue)
		})

		Convey("When the cell is already numeric", func() {
			n, ok := normalize.ParseWeekLabel(table.Int(5)).AsInt()
			So(ok, ShouldBeTrue)
			So(n, ShouldEqual, 5)

			n, ok = normalize.ParseWeekLabel(table.Float(4)).AsInt()
			So(ok, ShouldBeTrue)
			So(n, ShouldEqual, 4)
		})

		Convey("When rewriting a whole table", func() {
			wk := table.New(model.ColWeekNumber)
			wk.Append(table.Row{model.ColWeekNumber: table.String("Week 2")})
			wk.Append(table.Row{model.ColWeekNumber: table.String("TBD")})
			out := normalize.WeekNumbers(wk)

			n, ok := out.Rows[0].Get(model.ColWeekNumber).AsInt()
			So(ok, ShouldBeTrue)
			So(n, ShouldEqual, 2)
			So(out.Rows[1].Get(model.ColWeekNumber).IsNull(), ShouldBeTrue)
		})
	})
}

func TestCategorical(t *testing.T) {
	Convey("Given the fixed categorical scorings", t, func() {
		Convey("When scoring adherence answers", func() {
			v, ok := normalize.AdherenceScore("Most days")
			So(ok, ShouldBeTrue)
			So(v, ShouldEqual, 1.0)

			v, ok = normalize.AdherenceScore("Some days")
			So(ok, ShouldBeTrue)
			So(v, ShouldEqual, 0.5)

			v, ok = normalize.AdherenceScore("Very few days")
			So(ok, ShouldBeTrue)
			So(v, ShouldEqual, 0.0)

			_, ok = normalize.AdherenceScore("every day!!")
			So(ok, ShouldBeFalse)
		})

		Convey("When scoring sleep buckets", func() {
			v, ok := normalize.SleepBucketHours("7-8")
			So(ok, ShouldBeTrue)
			So(v, ShouldEqual, 7.5)

			v, ok = normalize.SleepBucketHours("Less than 5")
			So(ok, ShouldBeTrue)
			So(v, ShouldEqual, 4.5)

			_, ok = normalize.SleepBucketHours("9-10")
			So(ok, ShouldBeFalse)
		})

		Convey("When deriving columns over a weekly table", func() {
			wk := table.New(model.ColAdherenceWeekly, model.ColSleepHoursWeekly)
			wk.Append(table.Row{
				model.ColAdherenceWeekly: table.String("Some days"),
				model.ColSleepHoursWeekly: table.String("8+"),
			})
			wk.Append(table.Row{
				model.ColAdherenceWeekly: table.String("whenever"),
			})

			out := normalize.ApplyCategoricalWeekly(wk)

			Convey("Then mapped answers carry their scores", func() {
				f, ok := out.Rows[0].Get(model.ColAdherenceScore).AsFloat()
				So(ok, ShouldBeTrue)
				So(f, ShouldEqual, 0.5)
				f, ok = out.Rows[0].Get(model.ColSleepHoursNumWeekly).AsFloat()
				So(ok, ShouldBeTrue)
				So(f, ShouldEqual, 8.5)
			})

			Convey("And unmapped answers derive null, not zero", func() {
				So(out.Rows[1].Get(model.ColAdherenceScore).IsNull(), ShouldBeTrue)
				So(out.Rows[1].Get(model.ColSleepHoursNumWeekly).IsNull(), ShouldBeTrue)
			})
		})
	})
}

func TestCastNumeric(t *testing.T) {
	Convey("Given a table with stringly numeric columns", t, func() {
		tb := table.New(model.ColBodyweightWeekly, model.ColNotesWeekly)
		tb.Append(table.Row{
			model.ColBodyweightWeekly: table.String("181.4"),
			model.ColNotesWeekly:      table.String("felt good"),
		})
		tb.Append(table.Row{
			model.ColBodyweightWeekly: table.String("skipped"),
		})

		Convey("When casting the metric columns", func() {
			out := normalize.CastNumeric(tb, []string{model.ColBodyweightWeekly, "absent_column"})

			Convey("Then parseable cells become floats", func() {
				f, ok := out.Rows[0].Get(model.ColBodyweightWeekly).AsFloat()
				So(ok, ShouldBeTrue)
				So(f, ShouldEqual, 181.4)
			})

			Convey("And junk cells become null", func() {
				So(out.Rows[1].Get(model.ColBodyweightWeekly).IsNull(), ShouldBeTrue)
			})

			Convey("And untouched columns keep their strings", func() {
				s, _ := out.Rows[0].Get(model.ColNotesWeekly).AsString()
				So(s, ShouldEqual, "felt good")
			})
		})
	})
}
