package gate

import "sync"

// Stats accumulates rejection counts per reason for one pipeline run. All
// operations are thread-safe so fanned-out workers can share one value or
// merge per-worker copies.
type Stats struct {
	mu       sync.Mutex
	accepted int64
	rejected map[Reason]int64
}

// NewStats creates an empty Stats.
func NewStats() *Stats {
	return &Stats{rejected: make(map[Reason]int64)}
}

// AddAccepted counts one accepted candidate.
func (s *Stats) AddAccepted() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.accepted++
}

// AddRejected counts one rejection for the reason.
func (s *Stats) AddRejected(reason Reason) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.rejected[reason]++
}

// Merge folds other into s. Used by the single-writer merge step after a
// fanned-out run.
func (s *Stats) Merge(other *Stats) {
	if other == nil {
		return
	}
	other.mu.Lock()
	accepted := other.accepted
	rejected := make(map[Reason]int64, len(other.rejected))
	for reason, n := range other.rejected {
		rejected[reason] = n
	}
	other.mu.Unlock()

	s.mu.Lock()
	defer s.mu.Unlock()
	s.accepted += accepted
	for reason, n := range rejected {
		s.rejected[reason] += n
	}
}

// Accepted returns the number of accepted candidates.
func (s *Stats) Accepted() int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.accepted
}

// Rejected returns the total number of rejections across all reasons.
func (s *Stats) Rejected() int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	var total int64
	for _, n := range s.rejected {
		total += n
	}
	return total
}

// Count returns the rejection count for one reason.
func (s *Stats) Count(reason Reason) int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.rejected[reason]
}

// Snapshot returns a copy of the per-reason counts.
func (s *Stats) Snapshot() map[Reason]int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	snapshot := make(map[Reason]int64, len(s.rejected))
	for reason, n := range s.rejected {
		snapshot[reason] = n
	}
	return snapshot
}

// Reset clears all counts for a new run.
func (s *Stats) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.accepted = 0
	s.rejected = make(map[Reason]int64)
}
