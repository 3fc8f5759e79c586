package observability

import (
	"sync"

	"github.com/schaplens/engine/internal/domain"
)

// Stats is the shared observability context threaded through the engine:
// per-tier usage counters plus an append-only fallback log. It is the
// only mutable state the engine touches, so it is safe for concurrent
// use from independent workers; entry ordering across workers carries
// no meaning.
type Stats struct {
	mu         sync.Mutex
	tierCounts map[domain.MappingTier]int
	dealCounts map[domain.DealType]int
	fallback   []domain.FallbackEntry
}

// Snapshot is a point-in-time copy of the counters.
type Snapshot struct {
	TierCounts map[string]int `json:"tierCounts"`
	DealCounts map[string]int `json:"dealCounts"`
	Fallbacks  int            `json:"fallbacks"`
}

// NewStats creates an empty stats context.
func NewStats() *Stats {
	return &Stats{
		tierCounts: make(map[domain.MappingTier]int),
		dealCounts: make(map[domain.DealType]int),
	}
}

// CountTier increments the usage counter for a resolution tier.
func (s *Stats) CountTier(tier domain.MappingTier) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tierCounts[tier]++
}

// CountDeal increments the usage counter for a matched deal type.
func (s *Stats) CountDeal(t domain.DealType) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.dealCounts[t]++
}

// Record appends one fallback-usage entry for later curation review.
func (s *Stats) Record(e domain.FallbackEntry) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.fallback = append(s.fallback, e)
}

// DrainStats returns a snapshot of the counters. Counters persist for
// the process lifetime; draining does not clear them.
func (s *Stats) DrainStats() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	snap := Snapshot{
		TierCounts: make(map[string]int, len(s.tierCounts)),
		DealCounts: make(map[string]int, len(s.dealCounts)),
		Fallbacks:  len(s.fallback),
	}
	for tier, n := range s.tierCounts {
		snap.TierCounts[string(tier)] = n
	}
	for t, n := range s.dealCounts {
		snap.DealCounts[string(t)] = n
	}
	return snap
}

// DrainFallback hands the accumulated fallback entries to a reporting
// collaborator and clears the log.
func (s *Stats) DrainFallback() []domain.FallbackEntry {
	s.mu.Lock()
	defer s.mu.Unlock()

	entries := s.fallback
	s.fallback = nil
	return entries
}

// Reset clears all counters and the fallback log. Intended for test
// isolation.
func (s *Stats) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.tierCounts = make(map[domain.MappingTier]int)
	s.dealCounts = make(map[domain.DealType]int)
	s.fallback = nil
}
