// Package app provides the core business service that implements the
// dependencies required by the HTTP API. It owns the pipeline: load both
// CSV exports, prepare and merge them, and publish the result as one
// immutable snapshot.
package app

import (
	"context"
	"fmt"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/google/uuid"

	"github.com/coachkit/huddle/internal/adapters/csvsource"
	"github.com/coachkit/huddle/internal/adapters/repository"
	"github.com/coachkit/huddle/internal/domain/actions"
	"github.com/coachkit/huddle/internal/domain/cohort"
	"github.com/coachkit/huddle/internal/domain/dedupe"
	"github.com/coachkit/huddle/internal/domain/model"
	"github.com/coachkit/huddle/internal/domain/normalize"
	"github.com/coachkit/huddle/internal/domain/prep"
	"github.com/coachkit/huddle/internal/domain/summary"
	"github.com/coachkit/huddle/internal/domain/table"
	"github.com/coachkit/huddle/internal/domain/validate"
	"github.com/coachkit/huddle/pkg/logger"
	"github.com/coachkit/huddle/pkg/metrics"
)

// watchDebounce coalesces editor save bursts into one refresh.
const watchDebounce = 500 * time.Millisecond

// Service runs the preparation pipeline and serves read models off the
// latest snapshot.
type Service struct {
	mu sync.Mutex

	// Core components
	store     repository.Store
	collapser *dedupe.Collapser
	engine    *actions.Engine

	// Configuration
	intakePath    string
	weeklyPath    string
	challengeName string
	startDate     string
	endDate       string
	weekCount     int
	coachEmail    string
	rules         []actions.Rule
	watchFiles    bool
	historySize   int

	// State
	started bool
	watcher *fsnotify.Watcher
	stopCh  chan struct{}
	wg      sync.WaitGroup

	// Logging
	logger logger.Logger
}

// New constructs a Service with default configuration.
func New(opts ...Option) *Service {
	s := &Service{
		intakePath:    "data/intake_responses.csv",
		weeklyPath:    "data/weekly_responses.csv",
		challengeName: "Nutrition Challenge",
		watchFiles:    true,
		historySize:   32,
		stopCh:        make(chan struct{}),
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Start initializes the components, runs the first pipeline pass and,
// when enabled, starts watching the CSV files for changes. A failing
// first pass fails Start.
func (s *Service) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started {
		return nil
	}

	if s.logger == nil {
		s.logger = logger.Get()
	}

	s.logger.Info(ctx, "starting huddle service",
		logger.String("intake", s.intakePath),
		logger.String("weekly", s.weeklyPath),
	)

	s.store = repository.NewMemStore(repository.WithHistorySize(s.historySize))
	s.collapser = dedupe.New()
	s.engine = actions.New(actions.WithRules(s.rules))

	if err := s.refresh(ctx); err != nil {
		return err
	}

	if s.watchFiles {
		if err := s.startWatcher(ctx); err != nil {
			// File watching is a convenience; the service still works
			// with manual refreshes.
			s.logger.Warn(ctx, "file watcher unavailable", logger.Error(err))
		}
	}

	s.started = true
	s.logger.Info(ctx, "huddle service started",
		logger.String("challenge", s.challengeName),
		logger.Bool("watching", s.watcher != nil),
	)

	return nil
}

// Stop halts the file watcher. Snapshot reads keep working.
func (s *Service) Stop() {
	s.mu.Lock()
	if !s.started {
		s.mu.Unlock()
		return
	}

	select {
	case <-s.stopCh:
	default:
		close(s.stopCh)
	}
	if s.watcher != nil {
		_ = s.watcher.Close()
	}
	s.started = false
	// The watch loop may be mid-refresh and need the mutex to finish.
	s.mu.Unlock()

	s.wg.Wait()
	s.logger.Info(context.Background(), "huddle service stopped")
}

// Refresh re-runs the whole pipeline. On failure the previous snapshot
// stays in place and the error is returned.
func (s *Service) Refresh(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.refresh(ctx)
}

// refresh runs one pipeline pass. Callers hold s.mu.
func (s *Service) refresh(ctx context.Context) error {
	start := time.Now()

	snap, err := s.buildSnapshot(ctx)
	if err != nil {
		metrics.RecordPipelineFailure()
		s.logger.Error(ctx, "pipeline run failed", logger.Error(err))
		return err
	}

	s.store.Swap(ctx, snap)
	s.publishMetrics(snap, time.Since(start))

	s.logger.Info(ctx, "pipeline run complete",
		logger.String("run_id", snap.RunID),
		logger.Int("intake_rows", snap.Intake.Len()),
		logger.Int("weekly_rows", snap.WeeklyClean.Len()),
		logger.Int("duplicates", snap.Duplicates.Len()),
		logger.Int("at_risk", snap.AtRisk.Len()),
		logger.Int64("duration_ms", time.Since(start).Milliseconds()),
	)

	return nil
}

// buildSnapshot loads both sources and runs every pipeline stage.
func (s *Service) buildSnapshot(_ context.Context) (*repository.Snapshot, error) {
	intakeRaw, err := csvsource.Load(s.intakePath)
	if err != nil {
		return nil, fmt.Errorf("load intake: %w", err)
	}
	intake := normalize.Common(intakeRaw)
	if missing := validate.Intake(intake); len(missing) > 0 {
		return nil, fmt.Errorf("%w: intake missing columns: %s", ErrValidation, strings.Join(missing, ", "))
	}

	weeklyRaw, weeklyAvailable, err := csvsource.LoadOptional(s.weeklyPath)
	if err != nil {
		return nil, fmt.Errorf("load weekly: %w", err)
	}
	weekly := normalize.Common(weeklyRaw)
	if weeklyAvailable {
		if missing := validate.Weekly(weekly); len(missing) > 0 {
			return nil, fmt.Errorf("%w: weekly missing columns: %s", ErrValidation, strings.Join(missing, ", "))
		}
	}
	weekly = normalize.WeekNumbers(weekly)

	metrics.RecordParseFailures(
		parseDegraded(intakeRaw, intake, model.ColTimestamp) +
			parseDegraded(weeklyRaw, weekly, model.ColTimestamp) +
			parseDegraded(weeklyRaw, weekly, model.ColWeekNumber),
	)

	clean, duplicates := s.collapser.Collapse(weekly)
	merged, weeklyClean := prep.Merge(intake, clean)
	cohortSummary := cohort.WeeklySummary(merged)
	lost := summary.TotalWeightLost(merged)
	week, hasWeek := summary.CurrentWeek(merged)
	missingRows, atRisk := s.engine.Evaluate(intake, merged)

	return &repository.Snapshot{
		RunID:    uuid.NewString(),
		LoadedAt: time.Now(),

		Intake:      intake,
		WeeklyClean: weeklyClean,
		Merged:      merged,
		Duplicates:  duplicates,
		Cohort:      cohortSummary,
		Missing:     missingRows,
		AtRisk:      atRisk,

		TotalWeightLost: lost,
		CurrentWeek:     week,
		HasCurrentWeek:  hasWeek,
		WeeklyAvailable: weeklyAvailable,
	}, nil
}

func (s *Service) publishMetrics(snap *repository.Snapshot, elapsed time.Duration) {
	metrics.RecordPipelineRun()
	metrics.RecordPipelineDuration(float64(elapsed.Milliseconds()))
	metrics.UpdateRowsLoaded("intake", snap.Intake.Len())
	metrics.UpdateRowsLoaded("weekly", snap.WeeklyClean.Len())
	metrics.RecordDuplicateRows(snap.Duplicates.Len())
	metrics.UpdateParticipants(len(distinctEmails(snap.Intake)))
	metrics.UpdateWeeksTracked(snap.Cohort.Len())
	if snap.HasCurrentWeek {
		metrics.UpdateCurrentWeek(snap.CurrentWeek)
	}
	metrics.UpdateMissingCheckins(snap.Missing.Len())
	metrics.UpdateAtRiskMembers(snap.AtRisk.Len())
	metrics.UpdateTotalWeightLost(snap.TotalWeightLost)
}

// startWatcher watches the directories holding both CSV files and
// refreshes when either file changes, debounced.
func (s *Service) startWatcher(ctx context.Context) error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}

	dirs := map[string]struct{}{
		filepath.Dir(s.intakePath): {},
		filepath.Dir(s.weeklyPath): {},
	}
	for dir := range dirs {
		if err := w.Add(dir); err != nil {
			_ = w.Close()
			return err
		}
	}

	s.watcher = w
	s.wg.Add(1)
	go s.watchLoop()

	s.logger.Info(ctx, "watching csv files for changes",
		logger.Int("dirs", len(dirs)),
	)
	return nil
}

func (s *Service) watchLoop() {
	defer s.wg.Done()

	watched := map[string]struct{}{
		filepath.Clean(s.intakePath): {},
		filepath.Clean(s.weeklyPath): {},
	}

	var pending *time.Timer
	var pendingC <-chan time.Time
	for {
		select {
		case <-s.stopCh:
			return
		case ev, ok := <-s.watcher.Events:
			if !ok {
				return
			}
			if _, hit := watched[filepath.Clean(ev.Name)]; !hit {
				continue
			}
			if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) && !ev.Has(fsnotify.Rename) {
				continue
			}
			if pending == nil {
				pending = time.NewTimer(watchDebounce)
				pendingC = pending.C
			} else {
				pending.Reset(watchDebounce)
			}
		case err, ok := <-s.watcher.Errors:
			if !ok {
				return
			}
			s.logger.Warn(context.Background(), "file watcher error", logger.Error(err))
		case <-pendingC:
			pending = nil
			pendingC = nil
			ctx := context.Background()
			s.logger.Info(ctx, "csv change detected, refreshing")
			if err := s.Refresh(ctx); err != nil {
				s.logger.Error(ctx, "refresh after csv change failed", logger.Error(err))
			}
		}
	}
}

// current fetches the latest snapshot or ErrNoData.
func (s *Service) current(ctx context.Context) (*repository.Snapshot, error) {
	snap, ok := s.store.Current(ctx)
	if !ok {
		return nil, ErrNoData
	}
	return snap, nil
}

// Overview returns the headline dashboard numbers.
func (s *Service) Overview(ctx context.Context) (Overview, error) {
	snap, err := s.current(ctx)
	if err != nil {
		return Overview{}, err
	}

	o := Overview{
		ChallengeName: s.challengeName,
		StartDate:     s.startDate,
		EndDate:       s.endDate,
		WeekCount:     s.weekCount,
		CoachEmail:    s.coachEmail,

		Participants:    len(distinctEmails(snap.Intake)),
		Submissions:     snap.WeeklyClean.Len(),
		WeeksTracked:    snap.Cohort.Len(),
		TotalWeightLost: snap.TotalWeightLost,

		WeeklyAvailable: snap.WeeklyAvailable,
		RunID:           snap.RunID,
		LoadedAt:        snap.LoadedAt,
	}
	if snap.HasCurrentWeek {
		wk := snap.CurrentWeek
		o.CurrentWeek = &wk
	}
	return o, nil
}

// CohortSummary returns the per-week cohort aggregate rows.
func (s *Service) CohortSummary(ctx context.Context) (TableView, error) {
	snap, err := s.current(ctx)
	if err != nil {
		return TableView{}, err
	}
	return tableView(snap.Cohort), nil
}

// Actions returns the missing-check-in list and the at-risk rows for the
// current week.
func (s *Service) Actions(ctx context.Context) (ActionList, error) {
	snap, err := s.current(ctx)
	if err != nil {
		return ActionList{}, err
	}

	missing := make([]string, 0, snap.Missing.Len())
	for _, r := range snap.Missing.Rows {
		if e, ok := r.Get(model.ColEmail).AsString(); ok {
			missing = append(missing, e)
		}
	}

	return ActionList{
		Missing: missing,
		AtRisk:  tableView(snap.AtRisk),
	}, nil
}

// Members returns the sorted distinct participant emails.
func (s *Service) Members(ctx context.Context) ([]string, error) {
	snap, err := s.current(ctx)
	if err != nil {
		return nil, err
	}

	set := distinctEmails(snap.Intake)
	out := make([]string, 0, len(set))
	for e := range set {
		out = append(out, e)
	}
	sort.Strings(out)
	return out, nil
}

// MemberSnapshot returns the latest merged row for one member.
func (s *Service) MemberSnapshot(ctx context.Context, email string) (map[string]any, error) {
	snap, err := s.current(ctx)
	if err != nil {
		return nil, err
	}

	email = strings.ToLower(strings.TrimSpace(email))
	row, ok := summary.MemberLatestSnapshot(snap.Merged, email)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrMemberNotFound, email)
	}
	return rowView(snap.Merged.Columns, row), nil
}

// Duplicates returns the discarded-submission report.
func (s *Service) Duplicates(ctx context.Context) (TableView, error) {
	snap, err := s.current(ctx)
	if err != nil {
		return TableView{}, err
	}
	return tableView(snap.Duplicates), nil
}

// Merged returns the full merged table for the data tab.
func (s *Service) Merged(ctx context.Context) (TableView, error) {
	snap, err := s.current(ctx)
	if err != nil {
		return TableView{}, err
	}
	return tableView(snap.Merged), nil
}

// GetStats returns service statistics for monitoring.
func (s *Service) GetStats() map[string]interface{} {
	s.mu.Lock()
	defer s.mu.Unlock()

	ctx := context.Background()
	stats := map[string]interface{}{
		"started":        s.started,
		"challenge_name": s.challengeName,
		"intake_path":    s.intakePath,
		"weekly_path":    s.weeklyPath,
		"watch_files":    s.watchFiles,
	}

	if s.store != nil {
		stats["runs"] = s.store.Count(ctx)
		stats["history"] = s.store.History(ctx)
	}

	return stats
}

// parseDegraded counts cells of col that were present before normalization
// and null after it. Transforms preserve row order, so positions line up.
func parseDegraded(before, after *table.Table, col string) int {
	if !before.HasColumn(col) || !after.HasColumn(col) || before.Len() != after.Len() {
		return 0
	}
	var n int
	for i := range after.Rows {
		if after.Rows[i].Get(col).IsNull() && !before.Rows[i].Get(col).IsNull() {
			n++
		}
	}
	return n
}

func distinctEmails(t *table.Table) map[string]struct{} {
	out := make(map[string]struct{})
	if !t.HasColumn(model.ColEmail) {
		return out
	}
	for _, r := range t.Rows {
		if e, ok := r.Get(model.ColEmail).AsString(); ok && e != "" {
			out[e] = struct{}{}
		}
	}
	return out
}
