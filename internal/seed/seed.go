// Package seed generates realistic intake and weekly check-in CSVs for
// local development. It deliberately injects duplicate submissions and
// skipped check-ins so the dedup and action-list paths have something to
// chew on.
package seed

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/brianvoe/gofakeit/v6"

	"github.com/coachkit/huddle/internal/domain/model"
)

// File names written into the output directory.
const (
	IntakeFile = "intake_responses.csv"
	WeeklyFile = "weekly_responses.csv"
)

// Config controls the generated challenge.
type Config struct {
	Participants  int
	Weeks         int
	Seed          int64
	OutDir        string
	DuplicateRate float64 // fraction of check-ins submitted twice
	MissingRate   float64 // chance a member skips a given week
	Start         time.Time
}

// member is one generated participant with baseline state.
type member struct {
	email      string
	bodyweight float64
	rhr        float64
	sleepQual  int
	energy     int
	stress     int
	sleepHours string
	classes    int
	wholeFood  int
	alcohol    int
	takeout    int
}

var sleepBuckets = []string{"Less than 5", "5-6", "6-7", "7-8", "8+"}

var adherenceAnswers = []string{"Most days", "Most days", "Some days", "Some days", "Very few days"}

// Run generates both CSVs. Same config, same files.
func Run(_ context.Context, cfg *Config) error {
	if cfg.Participants <= 0 || cfg.Weeks <= 0 {
		return fmt.Errorf("seed: participants and weeks must be positive")
	}
	if err := os.MkdirAll(cfg.OutDir, 0o750); err != nil {
		return fmt.Errorf("seed: create output dir: %w", err)
	}

	faker := gofakeit.New(cfg.Seed)
	start := cfg.Start
	if start.IsZero() {
		start = time.Date(2026, time.January, 5, 8, 0, 0, 0, time.UTC)
	}

	members := make([]member, 0, cfg.Participants)
	for i := 0; i < cfg.Participants; i++ {
		members = append(members, member{
			email:      faker.Email(),
			bodyweight: faker.Float64Range(140, 260),
			rhr:        faker.Float64Range(52, 88),
			sleepQual:  faker.Number(3, 9),
			energy:     faker.Number(3, 9),
			stress:     faker.Number(2, 9),
			sleepHours: sleepBuckets[faker.Number(0, len(sleepBuckets)-1)],
			classes:    faker.Number(0, 5),
			wholeFood:  faker.Number(1, 7),
			alcohol:    faker.Number(0, 4),
			takeout:    faker.Number(0, 6),
		})
	}

	if err := writeIntake(cfg, faker, members, start); err != nil {
		return err
	}
	return writeWeekly(cfg, faker, members, start)
}

func writeIntake(cfg *Config, faker *gofakeit.Faker, members []member, start time.Time) error {
	header := []string{
		model.ColTimestamp, model.ColEmail,
		model.ColBodyweightBaseline, model.ColRHRBaseline,
		model.ColSleepQualBaseline, model.ColEnergyBaseline,
		model.ColStressBaseline, model.ColSleepHoursBaseline,
		model.ColClassesBaseline, model.ColWholeFoodBaseline,
		model.ColAlcoholBaseline, model.ColTakeoutBaseline,
	}

	rows := make([][]string, 0, len(members))
	for _, m := range members {
		ts := start.Add(-time.Duration(faker.Number(1, 72)) * time.Hour)
		rows = append(rows, []string{
			ts.Format("2006-01-02 15:04:05"), m.email,
			formatLbs(m.bodyweight), formatLbs(m.rhr),
			strconv.Itoa(m.sleepQual), strconv.Itoa(m.energy),
			strconv.Itoa(m.stress), m.sleepHours,
			strconv.Itoa(m.classes), strconv.Itoa(m.wholeFood),
			strconv.Itoa(m.alcohol), strconv.Itoa(m.takeout),
		})
	}

	return writeCSV(filepath.Join(cfg.OutDir, IntakeFile), header, rows)
}

func writeWeekly(cfg *Config, faker *gofakeit.Faker, members []member, start time.Time) error {
	header := []string{
		model.ColTimestamp, model.ColEmail, model.ColWeekNumber,
		model.ColBodyweightWeekly, model.ColRHRWeekly,
		model.ColEnergyWeekly, model.ColSleepQualWeekly,
		model.ColStressWeekly, model.ColSleepHoursWeekly,
		model.ColAdherenceWeekly, model.ColAlcoholWeekly,
		model.ColClassesWeekly, model.ColNotesWeekly,
		model.ColWeeklyWin, model.ColWeeklyHelp,
	}

	var rows [][]string
	for _, m := range members {
		weight := m.bodyweight
		rhr := m.rhr
		for week := 1; week <= cfg.Weeks; week++ {
			if faker.Float64Range(0, 1) < cfg.MissingRate {
				continue
			}

			// Slow trend down with noise; some members drift up.
			weight += faker.Float64Range(-2.5, 1.0)
			rhr += faker.Float64Range(-1.5, 1.0)
			ts := start.AddDate(0, 0, 7*week).Add(time.Duration(faker.Number(0, 36)) * time.Hour)

			final := weeklyRow(faker, m, week, ts, weight, rhr)
			if faker.Float64Range(0, 1) < cfg.DuplicateRate {
				// An earlier draft the final submission supersedes.
				draft := weeklyRow(faker, m, week, ts.Add(-time.Duration(faker.Number(10, 120))*time.Minute),
					weight+faker.Float64Range(-1, 1), rhr)
				rows = append(rows, draft)
			}
			rows = append(rows, final)
		}
	}

	return writeCSV(filepath.Join(cfg.OutDir, WeeklyFile), header, rows)
}

func weeklyRow(faker *gofakeit.Faker, m member, week int, ts time.Time, weight, rhr float64) []string {
	help := ""
	if faker.Number(0, 3) == 0 {
		help = faker.Sentence(8)
	}
	return []string{
		ts.Format("2006-01-02 15:04:05"), m.email,
		fmt.Sprintf("Week %d", week),
		formatLbs(weight), formatLbs(rhr),
		strconv.Itoa(faker.Number(2, 9)), strconv.Itoa(faker.Number(2, 9)),
		strconv.Itoa(faker.Number(1, 10)),
		sleepBuckets[faker.Number(0, len(sleepBuckets)-1)],
		adherenceAnswers[faker.Number(0, len(adherenceAnswers)-1)],
		strconv.Itoa(faker.Number(0, 4)), strconv.Itoa(faker.Number(0, 5)),
		faker.Sentence(6), faker.Sentence(5), help,
	}
}

func formatLbs(v float64) string {
	return strconv.FormatFloat(v, 'f', 1, 64)
}

func writeCSV(path string, header []string, rows [][]string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("seed: create %s: %w", path, err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(header); err != nil {
		return fmt.Errorf("seed: write header: %w", err)
	}
	for _, row := range rows {
		if err := w.Write(row); err != nil {
			return fmt.Errorf("seed: write row: %w", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("seed: flush %s: %w", path, err)
	}
	return nil
}
