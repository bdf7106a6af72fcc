package scan

import "sync"

// Generation identifies one load request. Generations are handed out in
// increasing order by Store.Begin.
type Generation uint64

// Store is the single owned slot for the current dataset. It replaces the
// ambient "current dataset" state with an explicit update/read contract.
//
// Overlapping loads follow a newest-request-wins policy: Apply discards a
// result whose generation is older than one already applied, so a slow
// stale load can never clobber a newer dataset. A failed load is recorded
// but the current records remain the previous successful dataset (empty
// on first failure).
type Store struct {
	mu      sync.RWMutex
	next    Generation
	applied Generation
	current LoadResult
	lastErr error
}

// NewStore returns an empty Store.
func NewStore() *Store { return &Store{} }

// Begin registers a new load request and returns its generation token.
func (s *Store) Begin() Generation {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.next++
	return s.next
}

// Apply installs a load result. It returns false when the result was
// discarded because a result from the same or a newer generation has
// already been applied.
func (s *Store) Apply(gen Generation, res LoadResult) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if gen <= s.applied {
		return false
	}
	s.applied = gen

	if res.Err != nil {
		s.lastErr = res.Err
		return true
	}
	s.lastErr = nil
	s.current = res
	return true
}

// Current returns the most recent successful load result. The zero
// LoadResult (no records) is returned before any load has succeeded.
func (s *Store) Current() LoadResult {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current
}

// LastError returns the error of the most recently applied load, nil when
// it succeeded.
func (s *Store) LastError() error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.lastErr
}
