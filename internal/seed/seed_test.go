package seed

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	. "github.com/smartystreets/goconvey/convey"

	"github.com/coachkit/huddle/internal/adapters/csvsource"
	"github.com/coachkit/huddle/internal/domain/model"
	"github.com/coachkit/huddle/internal/domain/validate"
)

func TestRun(t *testing.T) {
	Convey("Given a seed configuration", t, func() {
		cfg := &Config{
			Participants:  10,
			Weeks:         4,
			Seed:          42,
			OutDir:        t.TempDir(),
			DuplicateRate: 0.2,
			MissingRate:   0.2,
			Start:         time.Date(2026, time.January, 5, 8, 0, 0, 0, time.UTC),
		}

		Convey("When generating the challenge", func() {
			So(Run(context.Background(), cfg), ShouldBeNil)

			intake, err := csvsource.Load(filepath.Join(cfg.OutDir, IntakeFile))
			So(err, ShouldBeNil)
			weekly, err := csvsource.Load(filepath.Join(cfg.OutDir, WeeklyFile))
			So(err, ShouldBeNil)

			Convey("Then the intake table passes validation with one row per member", func() {
				So(validate.Intake(intake), ShouldBeEmpty)
				So(intake.Len(), ShouldEqual, cfg.Participants)
			})

			Convey("And the weekly table passes validation with labeled weeks", func() {
				So(validate.Weekly(weekly), ShouldBeEmpty)
				So(weekly.Len(), ShouldBeGreaterThan, 0)
				So(weekly.Len(), ShouldBeLessThanOrEqualTo, int(float64(cfg.Participants*cfg.Weeks)*(1+cfg.DuplicateRate)+1))
				wk, ok := weekly.Rows[0].Get(model.ColWeekNumber).AsString()
				So(ok, ShouldBeTrue)
				So(wk, ShouldStartWith, "Week ")
			})
		})

		Convey("When generating twice with the same seed", func() {
			So(Run(context.Background(), cfg), ShouldBeNil)
			first, err := os.ReadFile(filepath.Join(cfg.OutDir, WeeklyFile))
			So(err, ShouldBeNil)

			So(Run(context.Background(), cfg), ShouldBeNil)
			second, err := os.ReadFile(filepath.Join(cfg.OutDir, WeeklyFile))
			So(err, ShouldBeNil)

			Convey("Then the output is deterministic", func() {
				So(string(second), ShouldEqual, string(first))
			})
		})

		Convey("When the configuration is invalid", func() {
			cfg.Participants = 0

			Convey("Then Run refuses", func() {
				So(Run(context.Background(), cfg), ShouldNotBeNil)
			})
		})
	})
}
