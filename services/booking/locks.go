package booking

import "sync"

// staffDayLocks hands out one mutex per (staff, date) key so admission checks
// and commits for the same staff day serialize while unrelated keys proceed
// in parallel.
type staffDayLocks struct {
	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func newStaffDayLocks() *staffDayLocks {
	return &staffDayLocks{locks: make(map[string]*sync.Mutex)}
}

// get returns the mutex for a key, creating one if it doesn't exist.
func (s *staffDayLocks) get(staffID, date string) *sync.Mutex {
	key := staffID + "|" + date

	s.mu.Lock()
	defer s.mu.Unlock()

	l, exists := s.locks[key]
	if !exists {
		l = &sync.Mutex{}
		s.locks[key] = l
	}
	return l
}
