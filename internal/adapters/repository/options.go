// Package repository holds the current pipeline result and run history.
package repository

// Option applies a configuration option to the MemStore.
type Option func(*MemStore)

// WithHistorySize bounds the run-history ring.
func WithHistorySize(n int) Option {
	return func(s *MemStore) {
		if n > 0 {
			s.historySize = n
		}
	}
}
