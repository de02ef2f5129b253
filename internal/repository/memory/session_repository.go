package memory

import (
	"context"
	"sync"
	"time"

	"adRecoDashboard/business/session"
	"adRecoDashboard/domain"
)

type entry struct {
	session   domain.Session
	expiresAt time.Time
}

// SessionRepository keeps sessions in process memory, for deployments
// without Redis. A zero TTL keeps sessions until restart.
type SessionRepository struct {
	mu      sync.Mutex
	entries map[string]entry
	ttl     time.Duration
	now     func() time.Time
}

var _ session.Repository = (*SessionRepository)(nil)

func NewSessionRepository(ttl time.Duration) *SessionRepository {
	return &SessionRepository{
		entries: make(map[string]entry),
		ttl:     ttl,
		now:     time.Now,
	}
}

func (r *SessionRepository) Save(ctx context.Context, s domain.Session) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	e := entry{session: s}
	if r.ttl > 0 {
		e.expiresAt = r.now().Add(r.ttl)
	}
	r.entries[s.ID] = e
	r.sweepLocked()
	return nil
}

func (r *SessionRepository) Get(ctx context.Context, id string) (domain.Session, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	e, ok := r.entries[id]
	if !ok || r.expiredLocked(e) {
		delete(r.entries, id)
		return domain.Session{}, domain.ErrSessionNotFound
	}
	return e.session, nil
}

func (r *SessionRepository) expiredLocked(e entry) bool {
	return !e.expiresAt.IsZero() && !r.now().Before(e.expiresAt)
}

func (r *SessionRepository) sweepLocked() {
	for id, e := range r.entries {
		if r.expiredLocked(e) {
			delete(r.entries, id)
		}
	}
}
