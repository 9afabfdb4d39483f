package repository

import (
	"context"
	"sync"
	"time"

	"storefront/internal/domain/model"
)

type sessionEntry struct {
	mu       sync.Mutex
	session  *model.Session
	lastSeen time.Time // r.mu で保護
}

// SessionMemoryRepository はプロセス内だけでセッションを保持する。
// 再起動で消える。
type SessionMemoryRepository struct {
	mu       sync.Mutex
	sessions map[string]*sessionEntry
	ttl      time.Duration
	now      func() time.Time
}

// DI
func NewSessionMemoryRepository(ttl time.Duration, now func() time.Time) *SessionMemoryRepository {
	if now == nil {
		now = time.Now
	}
	return &SessionMemoryRepository{
		sessions: make(map[string]*sessionEntry),
		ttl:      ttl,
		now:      now,
	}
}

func (r *SessionMemoryRepository) entry(sessionID string) *sessionEntry {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := r.now()
	e, ok := r.sessions[sessionID]
	if !ok {
		e = &sessionEntry{session: model.NewSession(sessionID, now)}
		r.sessions[sessionID] = e
	}
	e.lastSeen = now
	return e
}

func (r *SessionMemoryRepository) WithinSession(ctx context.Context, sessionID string, fn func(s *model.Session) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	e := r.entry(sessionID)
	e.mu.Lock()
	defer e.mu.Unlock()

	e.session.LastSeen = r.now()
	return fn(e.session)
}

func (r *SessionMemoryRepository) Delete(ctx context.Context, sessionID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.sessions, sessionID)
	return nil
}

func (r *SessionMemoryRepository) Sweep(ctx context.Context, now time.Time) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	n := 0
	for id, e := range r.sessions {
		if now.Sub(e.lastSeen) > r.ttl {
			delete(r.sessions, id)
			n++
		}
	}
	return n, nil
}

func (r *SessionMemoryRepository) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.sessions)
}
