// pkg/memcache/session_store.go
package mem

import (
	"context"
	"sync"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
	"yogafunnel/internal/quiz"
)

// Session is one visitor's pass through the quiz.
type Session struct {
	ID        string
	Answers   *quiz.Answers
	Step      quiz.Step
	CreatedAt time.Time
	UpdatedAt time.Time

	expiresAt time.Time
}

type SessionStore interface {
	Put(s *Session)

	// View runs fn on the live session while holding the read lock. fn must
	// not retain s or mutate it. Returns false if missing/expired.
	View(id string, fn func(s *Session)) bool

	// Update runs fn with exclusive access; every write to a session's
	// answers goes through here. Refreshes the TTL.
	Update(id string, fn func(s *Session)) bool

	Delete(id string)
	Len() int

	// Sweep drops expired sessions and returns how many remain.
	Sweep() int
}

type Sessions struct {
	mu   sync.RWMutex
	data *lru.Cache[string, *Session]
	ttl  time.Duration
	now  func() time.Time
}

const (
	DefaultSessionTTL = 2 * time.Hour
	DefaultMaxSession = 10000
)

func NewSessions(ttl time.Duration, maxSessions int) *Sessions {
	if ttl <= 0 {
		ttl = DefaultSessionTTL
	}
	if maxSessions <= 0 {
		maxSessions = DefaultMaxSession
	}
	cache, _ := lru.New[string, *Session](maxSessions) // size guarded above
	return &Sessions{
		data: cache,
		ttl:  ttl,
		now:  time.Now,
	}
}

func (s *Sessions) Put(sess *Session) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	if sess.CreatedAt.IsZero() {
		sess.CreatedAt = now
	}
	sess.UpdatedAt = now
	sess.expiresAt = now.Add(s.ttl)
	s.data.Add(sess.ID, sess)
}

func (s *Sessions) View(id string, fn func(sess *Session)) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sess, ok := s.data.Peek(id)
	if !ok || s.now().After(sess.expiresAt) {
		return false
	}
	fn(sess)
	return true
}

func (s *Sessions) Update(id string, fn func(sess *Session)) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.data.Get(id)
	if !ok {
		return false
	}
	now := s.now()
	if now.After(sess.expiresAt) {
		s.data.Remove(id) // cleanup expired
		return false
	}
	fn(sess)
	sess.UpdatedAt = now
	sess.expiresAt = now.Add(s.ttl)
	return true
}

func (s *Sessions) Delete(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data.Remove(id)
}

func (s *Sessions) Len() int {
	return s.data.Len()
}

func (s *Sessions) Sweep() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	for _, id := range s.data.Keys() {
		if sess, ok := s.data.Peek(id); ok && now.After(sess.expiresAt) {
			s.data.Remove(id)
		}
	}
	return s.data.Len()
}

// RunSweeper calls Sweep every interval until ctx is done and passes the
// remaining count to report.
func (s *Sessions) RunSweeper(ctx context.Context, every time.Duration, report func(active int)) {
	ticker := time.NewTicker(every)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			active := s.Sweep()
			if report != nil {
				report(active)
			}
		}
	}
}
