package csvsource_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/coachkit/huddle/internal/adapters/csvsource"
	. "github.com/smartystreets/goconvey/convey"
)

func TestRead(t *testing.T) {
	Convey("Given CSV content", t, func() {
		Convey("When the content is well formed", func() {
			in := "email,week_number,bodyweight_lbs_weekly\n" +
				"a@x.com,Week 1,190\n" +
				"b@x.com,Week 1,210\n"
			tb, err := csvsource.Read(strings.NewReader(in))

			Convey("Then columns and rows load as strings", func() {
				So(err, ShouldBeNil)
				So(tb.Columns, ShouldResemble, []string{"email", "week_number", "bodyweight_lbs_weekly"})
				So(tb.Len(), ShouldEqual, 2)
				s, ok := tb.Rows[0].Get("bodyweight_lbs_weekly").AsString()
				So(ok, ShouldBeTrue)
				So(s, ShouldEqual, "190")
			})
		})

		Convey("When rows are ragged", func() {
			in := "email,week_number,notes_weekly\n" +
				"a@x.com,1\n" +
				"b@x.com,1,fine,EXTRA\n"
			tb, err := csvsource.Read(strings.NewReader(in))

			Convey("Then short rows pad with null and overflow is dropped", func() {
				So(err, ShouldBeNil)
				So(tb.Len(), ShouldEqual, 2)
				So(tb.Rows[0].Get("notes_weekly").IsNull(), ShouldBeTrue)
				s, _ := tb.Rows[1].Get("notes_weekly").AsString()
				So(s, ShouldEqual, "fine")
			})
		})

		Convey("When cells are empty", func() {
			tb, err := csvsource.Read(strings.NewReader("email,stress_weekly\na@x.com,\n"))

			Convey("Then empty cells load as null, not empty string", func() {
				So(err, ShouldBeNil)
				So(tb.Rows[0].Get("stress_weekly").IsNull(), ShouldBeTrue)
			})
		})

		Convey("When the input is empty", func() {
			tb, err := csvsource.Read(strings.NewReader(""))

			Convey("Then an empty table comes back without error", func() {
				So(err, ShouldBeNil)
				So(tb.Empty(), ShouldBeTrue)
			})
		})
	})
}

func TestLoad(t *testing.T) {
	Convey("Given CSV files on disk", t, func() {
		dir := t.TempDir()

		Convey("When loading an existing file", func() {
			path := filepath.Join(dir, "intake.csv")
			So(os.WriteFile(path, []byte("email\na@x.com\n"), 0o600), ShouldBeNil)

			tb, err := csvsource.Load(path)
			So(err, ShouldBeNil)
			So(tb.Len(), ShouldEqual, 1)
		})

		Convey("When loading a missing file", func() {
			_, err := csvsource.Load(filepath.Join(dir, "nope.csv"))

			Convey("Then the error wraps the open sentinel", func() {
				So(err, ShouldNotBeNil)
				So(err.Error(), ShouldContainSubstring, "csv open failed")
			})
		})

		Convey("When optionally loading a missing file", func() {
			tb, ok, err := csvsource.LoadOptional(filepath.Join(dir, "weekly.csv"))

			Convey("Then it degrades to an empty table", func() {
				So(err, ShouldBeNil)
				So(ok, ShouldBeFalse)
				So(tb.Empty(), ShouldBeTrue)
			})
		})

		Convey("When optionally loading an existing file", func() {
			path := filepath.Join(dir, "weekly.csv")
			So(os.WriteFile(path, []byte("email,week_number,timestamp\na@x.com,1,2024-01-01\n"), 0o600), ShouldBeNil)

			tb, ok, err := csvsource.LoadOptional(path)
			So(err, ShouldBeNil)
			So(ok, ShouldBeTrue)
			So(tb.Len(), ShouldEqual, 1)
		})
	})
}
