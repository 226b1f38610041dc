package session

import (
	"context"
	"sync"
	"time"

	"github.com/papana-farm/metdash/internal/models"
)

type entry struct {
	session models.Session
	expires time.Time
}

// MemoryStore is used when no redis address is configured.
type MemoryStore struct {
	mu         sync.RWMutex
	items      map[string]entry
	expiration time.Duration
	now        func() time.Time
}

func NewMemoryStore(expiration time.Duration) *MemoryStore {
	return &MemoryStore{
		items:      make(map[string]entry),
		expiration: expiration,
		now:        time.Now,
	}
}

func (s *MemoryStore) Set(_ context.Context, sess models.Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	s.sweep(now)
	s.items[sess.ID] = entry{session: sess, expires: now.Add(s.expiration)}
	return nil
}

func (s *MemoryStore) Get(_ context.Context, id string) (models.Session, error) {
	s.mu.RLock()
	e, ok := s.items[id]
	s.mu.RUnlock()

	if !ok {
		return models.Session{}, ErrSessionNotFound
	}
	if s.expired(e, s.now()) {
		s.mu.Lock()
		// A concurrent Set may have refreshed the entry since the read lock was released.
		if cur, ok := s.items[id]; ok && s.expired(cur, s.now()) {
			delete(s.items, id)
		}
		s.mu.Unlock()
		return models.Session{}, ErrSessionNotFound
	}
	return e.session, nil
}

func (s *MemoryStore) expired(e entry, now time.Time) bool {
	return s.expiration > 0 && now.After(e.expires)
}

// sweep drops sessions that were never read again after expiring. Caller holds mu.
func (s *MemoryStore) sweep(now time.Time) {
	for id, e := range s.items {
		if s.expired(e, now) {
			delete(s.items, id)
		}
	}
}
