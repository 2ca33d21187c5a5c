package store

import "sync"

// DefaultDailyGoal is applied whenever a persisted bundle carries no goal.
const DefaultDailyGoal = 500

const maxDailyGoal = 100000

// Store owns the four top-level values: projects, sessions, ideas and the
// daily word goal. All mutation goes through its methods; every mutation
// notifies subscribers with a deep snapshot of the whole bundle.
type Store struct {
	mu     sync.Mutex
	bundle Bundle
	subs   []func(Bundle)
}

func New() *Store {
	return &Store{bundle: Bundle{DailyGoal: DefaultDailyGoal}}
}

// Subscribe registers fn to be called after every state change. Callbacks
// run synchronously on the mutating goroutine, outside the store lock.
func (s *Store) Subscribe(fn func(Bundle)) {
	s.mu.Lock()
	s.subs = append(s.subs, fn)
	s.mu.Unlock()
}

// Snapshot returns a deep copy of the current bundle.
func (s *Store) Snapshot() Bundle {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.bundle.clone()
}

// Replace swaps in a whole bundle at once (remote hydration, import).
// Missing lists become empty; a non-positive goal falls back to the default.
func (s *Store) Replace(b Bundle) {
	if b.Projects == nil {
		b.Projects = []Project{}
	}
	if b.Sessions == nil {
		b.Sessions = []Session{}
	}
	if b.Ideas == nil {
		b.Ideas = []Idea{}
	}
	if b.DailyGoal <= 0 {
		b.DailyGoal = DefaultDailyGoal
	}
	if b.DailyGoal > maxDailyGoal {
		b.DailyGoal = maxDailyGoal
	}
	s.mu.Lock()
	s.bundle = b.clone()
	s.mu.Unlock()
	s.notify()
}

func (s *Store) DailyGoal() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.bundle.DailyGoal
}

// SetDailyGoal clamps to [0, 100000] at the input boundary.
func (s *Store) SetDailyGoal(n int) {
	if n < 0 {
		n = 0
	}
	if n > maxDailyGoal {
		n = maxDailyGoal
	}
	s.mu.Lock()
	s.bundle.DailyGoal = n
	s.mu.Unlock()
	s.notify()
}

// notify must be called without the lock held.
func (s *Store) notify() {
	s.mu.Lock()
	snap := s.bundle.clone()
	subs := s.subs
	s.mu.Unlock()
	for _, fn := range subs {
		fn(snap)
	}
}
