package memory

import (
	"context"
	"sync"
	"time"

	"go-portfolio-site/internal/domain"
)

// purgeEvery controls how many saves happen between sweeps of expired sessions.
const purgeEvery = 256

type sessionEntry struct {
	session   domain.VisitorSession
	expiresAt time.Time
}

type sessionRepo struct {
	mu      sync.Mutex
	entries map[string]sessionEntry
	saves   int
	now     func() time.Time
}

// NewSessionRepository keeps sessions in process memory. Used when Redis is not configured.
func NewSessionRepository() domain.SessionRepository {
	return newSessionRepo(time.Now)
}

func newSessionRepo(now func() time.Time) *sessionRepo {
	return &sessionRepo{
		entries: make(map[string]sessionEntry),
		now:     now,
	}
}

func (r *sessionRepo) Get(ctx context.Context, id string) (*domain.VisitorSession, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	entry, ok := r.entries[id]
	if !ok {
		return nil, domain.ErrSessionNotFound
	}
	if r.now().After(entry.expiresAt) {
		delete(r.entries, id)
		return nil, domain.ErrSessionNotFound
	}

	session := cloneSession(entry.session)
	return &session, nil
}

func (r *sessionRepo) Save(ctx context.Context, session *domain.VisitorSession, ttl time.Duration) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := r.now()
	r.entries[session.ID] = sessionEntry{
		session:   cloneSession(*session),
		expiresAt: now.Add(ttl),
	}

	r.saves++
	if r.saves%purgeEvery == 0 {
		for id, entry := range r.entries {
			if now.After(entry.expiresAt) {
				delete(r.entries, id)
			}
		}
	}
	return nil
}

func (r *sessionRepo) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.entries, id)
	return nil
}

func (r *sessionRepo) len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.entries)
}

func cloneSession(s domain.VisitorSession) domain.VisitorSession {
	if s.Notice != nil {
		notice := *s.Notice
		s.Notice = &notice
	}
	return s
}
