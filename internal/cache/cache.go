// Package cache holds the most recent scan result in memory.
package cache

import (
	"sync"
	"time"

	"github.com/theirongolddev/ccdash/internal/model"
)

// Store is a single-slot cache of the last successful scan. The whole
// result is swapped in one step so readers never observe a partial
// update; concurrent refreshes are last-write-wins. There is no TTL
// and no background refresh: the slot lives until Set or Invalidate.
type Store struct {
	mu       sync.RWMutex
	result   model.ScanResult
	cachedAt time.Time
	valid    bool
}

// New returns an empty store.
func New() *Store {
	return &Store{}
}

// Get returns the cached result and the time it was stored. ok is
// false when the slot is empty or the cached scan found no projects.
func (s *Store) Get() (model.ScanResult, time.Time, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if !s.valid || len(s.result.Projects) == 0 {
		return model.ScanResult{}, time.Time{}, false
	}
	return s.result, s.cachedAt, true
}

// Set replaces the slot with a new result.
func (s *Store) Set(res model.ScanResult) {
	s.mu.Lock()
	s.result = res
	s.cachedAt = time.Now()
	s.valid = true
	s.mu.Unlock()
}

// Invalidate clears the slot; the next scan repopulates it.
func (s *Store) Invalidate() {
	s.mu.Lock()
	s.result = model.ScanResult{}
	s.cachedAt = time.Time{}
	s.valid = false
	s.mu.Unlock()
}
