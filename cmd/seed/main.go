package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/coachkit/huddle/internal/seed"
)

// Default generation parameters.
const (
	defaultParticipants  = 24
	defaultWeeks         = 6
	defaultSeed          = 42
	defaultDuplicateRate = 0.1
	defaultMissingRate   = 0.15
)

func main() {
	var (
		participants = flag.Int("participants", defaultParticipants, "Number of challenge participants")
		weeks        = flag.Int("weeks", defaultWeeks, "Number of check-in weeks to generate")
		seedVal      = flag.Int64("seed", defaultSeed, "Random seed (same seed, same files)")
		outDir       = flag.String("out", "data", "Output directory for the CSV files")
		dupRate      = flag.Float64("dup-rate", defaultDuplicateRate, "Fraction of check-ins submitted twice")
		missingRate  = flag.Float64("missing-rate", defaultMissingRate, "Chance a member skips a given week")
		startStr     = flag.String("start", "", "Challenge start date, YYYY-MM-DD (default: fixed date)")
	)
	flag.Parse()

	var start time.Time
	if *startStr != "" {
		parsed, err := time.Parse("2006-01-02", *startStr)
		if err != nil {
			fmt.Fprintf(os.Stderr, "invalid -start %q: %v\n", *startStr, err)
			os.Exit(1)
		}
		start = parsed
	}

	cfg := &seed.Config{
		Participants:  *participants,
		Weeks:         *weeks,
		Seed:          *seedVal,
		OutDir:        *outDir,
		DuplicateRate: *dupRate,
		MissingRate:   *missingRate,
		Start:         start,
	}

	if err := seed.Run(context.Background(), cfg); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	fmt.Printf("wrote %s and %s under %s (%d participants, %d weeks)\n",
		seed.IntakeFile, seed.WeeklyFile, *outDir, *participants, *weeks)
}
