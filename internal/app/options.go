package app

import (
	"github.com/coachkit/huddle/internal/domain/actions"
	"github.com/coachkit/huddle/pkg/logger"
)

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithLogger sets a custom logger for the service.
func WithLogger(l logger.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithIntakePath sets the intake CSV path.
func WithIntakePath(path string) Option {
	return func(s *Service) {
		if path != "" {
			s.intakePath = path
		}
	}
}

// WithWeeklyPath sets the weekly check-in CSV path.
func WithWeeklyPath(path string) Option {
	return func(s *Service) {
		if path != "" {
			s.weeklyPath = path
		}
	}
}

// WithChallengeName labels the dashboard.
func WithChallengeName(name string) Option {
	return func(s *Service) {
		if name != "" {
			s.challengeName = name
		}
	}
}

// WithChallengeWindow sets the optional start/end date labels.
func WithChallengeWindow(start, end string) Option {
	return func(s *Service) {
		s.startDate = start
		s.endDate = end
	}
}

// WithWeekCount declares the planned number of weeks. Zero means
// undeclared.
func WithWeekCount(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.weekCount = n
		}
	}
}

// WithCoachEmail identifies the coach running the challenge.
func WithCoachEmail(email string) Option {
	return func(s *Service) {
		s.coachEmail = email
	}
}

// WithRules replaces the at-risk rule set.
func WithRules(rules []actions.Rule) Option {
	return func(s *Service) {
		if len(rules) > 0 {
			s.rules = rules
		}
	}
}

// WithWatchFiles toggles the CSV change watcher.
func WithWatchFiles(watch bool) Option {
	return func(s *Service) {
		s.watchFiles = watch
	}
}

// WithHistorySize bounds the run history kept for stats.
func WithHistorySize(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.historySize = n
		}
	}
}
