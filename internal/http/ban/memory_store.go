package ban

import (
	"context"
	"sync"
	"time"
)

type expiring struct {
	count   int
	expires time.Time
}

// MemoryStore keeps bans in process memory. It is used when no Redis
// address is configured and in tests.
type MemoryStore struct {
	mu      sync.Mutex
	strikes map[string]expiring
	bans    map[string]time.Time
	log     []BanLogEntry
	now     func() time.Time
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		strikes: make(map[string]expiring),
		bans:    make(map[string]time.Time),
		now:     time.Now,
	}
}

func (s *MemoryStore) IncrStrikes(_ context.Context, target string, window time.Duration) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	e, ok := s.strikes[target]
	if !ok || !now.Before(e.expires) {
		e = expiring{expires: now.Add(window)}
	}
	e.count++
	s.strikes[target] = e
	return e.count, nil
}

func (s *MemoryStore) SetBan(_ context.Context, target string, d time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.bans[target] = s.now().Add(d)
	delete(s.strikes, target)
	return nil
}

func (s *MemoryStore) IsBanned(_ context.Context, target string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	until, ok := s.bans[target]
	if !ok {
		return false, nil
	}
	if !s.now().Before(until) {
		delete(s.bans, target)
		return false, nil
	}
	return true, nil
}

func (s *MemoryStore) AppendLog(_ context.Context, entry BanLogEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.log = append(s.log, entry)
	return nil
}

func (s *MemoryStore) DrainLog(_ context.Context) ([]BanLogEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	logs := s.log
	s.log = nil
	return logs, nil
}
