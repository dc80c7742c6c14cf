package cards

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// Run holds the outputs of one batch generation so the result page can
// offer both downloads. Runs live in memory only and expire after the TTL.
type Run struct {
	ID        uuid.UUID
	PDF       []byte
	CSV       []byte
	CardCount int
	Skipped   int
	CreatedAt time.Time
}

// RunStore is a short-lived keyed store for batch runs. Expired entries are
// swept on every access; recomputation is cheap and overwrite-safe, so
// losing an entry just means re-uploading the CSV.
type RunStore struct {
	mu   sync.Mutex
	ttl  time.Duration
	now  func() time.Time
	runs map[uuid.UUID]*Run
}

func NewRunStore(ttl time.Duration) *RunStore {
	return &RunStore{
		ttl:  ttl,
		now:  time.Now,
		runs: make(map[uuid.UUID]*Run),
	}
}

func (s *RunStore) Put(run *Run) {
	s.mu.Lock()
	defer s.mu.Unlock()
	run.CreatedAt = s.now()
	s.sweepLocked()
	s.runs[run.ID] = run
}

func (s *RunStore) Get(id uuid.UUID) (*Run, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sweepLocked()
	run, ok := s.runs[id]
	return run, ok
}

func (s *RunStore) sweepLocked() {
	now := s.now()
	for id, run := range s.runs {
		if now.Sub(run.CreatedAt) > s.ttl {
			delete(s.runs, id)
		}
	}
}
