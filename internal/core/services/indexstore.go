package services

import (
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/lumafile/findex-cli/internal/core/domain"
)

// indexStore is the in-memory catalog of index entries plus the last
// successful build time. It is the single source of truth during a
// session, owned exclusively by the engine: the crawler and the load
// path mutate it, everyone else only reads. Readers never block on a
// writer beyond the short critical sections below.
type indexStore struct {
	mu            sync.RWMutex
	max           int
	entries       map[string]domain.IndexEntry
	lastIndexTime *time.Time
}

func newIndexStore(max int) *indexStore {
	return &indexStore{
		max:     max,
		entries: make(map[string]domain.IndexEntry),
	}
}

// Insert adds one entry, keyed by path. Returns false once the store
// is full; the size never exceeds the ceiling.
func (s *indexStore) Insert(entry domain.IndexEntry) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.entries[entry.Path]; !exists && len(s.entries) >= s.max {
		return false
	}
	s.entries[entry.Path] = entry
	return true
}

// Full reports whether the ceiling has been reached.
func (s *indexStore) Full() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries) >= s.max
}

// Replace swaps the contents wholesale, capping at the ceiling.
func (s *indexStore) Replace(entries []domain.IndexEntry, lastIndexTime *time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.entries = make(map[string]domain.IndexEntry, len(entries))
	for _, entry := range entries {
		if len(s.entries) >= s.max {
			break
		}
		s.entries[entry.Path] = entry
	}
	s.lastIndexTime = lastIndexTime
}

// Reset empties the entries ahead of a rebuild, keeping the last
// successful build time until the new build completes.
func (s *indexStore) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries = make(map[string]domain.IndexEntry)
}

// Clear empties everything, including the build time.
func (s *indexStore) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries = make(map[string]domain.IndexEntry)
	s.lastIndexTime = nil
}

// Len returns the current entry count.
func (s *indexStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries)
}

// LastIndexTime returns the last successful build time, or nil.
func (s *indexStore) LastIndexTime() *time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.lastIndexTime == nil {
		return nil
	}
	t := *s.lastIndexTime
	return &t
}

// SetLastIndexTime records a successful build completion.
func (s *indexStore) SetLastIndexTime(t time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastIndexTime = &t
}

// All returns a copy of every entry, ordered by path.
func (s *indexStore) All() []domain.IndexEntry {
	s.mu.RLock()
	defer s.mu.RUnlock()

	entries := make([]domain.IndexEntry, 0, len(s.entries))
	for _, entry := range s.entries {
		entries = append(entries, entry)
	}
	sort.Slice(entries, func(i, j int) bool {
		return entries[i].Path < entries[j].Path
	})
	return entries
}

// Match returns entries whose name contains the query,
// case-insensitively, ordered so that exact name matches come first
// and ties keep path order.
func (s *indexStore) Match(query string) []domain.IndexEntry {
	fold := strings.ToLower(query)

	s.mu.RLock()
	var matches []domain.IndexEntry
	for _, entry := range s.entries {
		if strings.Contains(strings.ToLower(entry.Name), fold) {
			matches = append(matches, entry)
		}
	}
	s.mu.RUnlock()

	sort.Slice(matches, func(i, j int) bool {
		exactI := strings.EqualFold(matches[i].Name, query)
		exactJ := strings.EqualFold(matches[j].Name, query)
		if exactI != exactJ {
			return exactI
		}
		return matches[i].Path < matches[j].Path
	})
	return matches
}

// Snapshot captures the store contents for persistence.
func (s *indexStore) Snapshot() domain.Snapshot {
	snap := domain.Snapshot{
		Entries:       s.All(),
		LastIndexTime: s.LastIndexTime(),
		Exists:        true,
	}
	return snap
}
