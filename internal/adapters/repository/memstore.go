package repository

import (
	"context"
	"sync"
)

const defaultHistorySize = 32

// MemStore is the in-memory Store implementation. A single RWMutex is
// plenty: swaps happen once per refresh, reads are cheap pointer copies.
type MemStore struct {
	mu          sync.RWMutex
	current     *Snapshot
	history     []RunInfo
	historySize int
	total       int
}

// NewMemStore creates a memory-backed store with configuration options.
func NewMemStore(opts ...Option) *MemStore {
	s := &MemStore{historySize: defaultHistorySize}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Swap installs snap as the current snapshot and records its run, evicting
// the oldest history entry when the ring is full.
func (s *MemStore) Swap(_ context.Context, snap *Snapshot) {
	if snap == nil {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	s.current = snap
	s.total++

	info := RunInfo{
		RunID:      snap.RunID,
		LoadedAt:   snap.LoadedAt,
		IntakeRows: snap.Intake.Len(),
		WeeklyRows: snap.WeeklyClean.Len(),
		Duplicates: snap.Duplicates.Len(),
	}
	s.history = append([]RunInfo{info}, s.history...)
	if len(s.history) > s.historySize {
		s.history = s.history[:s.historySize]
	}
}

// Current returns the latest snapshot.
func (s *MemStore) Current(_ context.Context) (*Snapshot, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current, s.current != nil
}

// History returns recorded runs, newest first.
func (s *MemStore) History(_ context.Context) []RunInfo {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]RunInfo, len(s.history))
	copy(out, s.history)
	return out
}

// Count returns the number of swaps since startup.
func (s *MemStore) Count(_ context.Context) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.total
}
