package httpapi

import (
	"errors"
	"sync"
	"sync/atomic"
	"time"

	"github.com/vovakirdan/tui-match3/internal/games/match3/core"
)

var (
	errSessionNotFound = errors.New("httpapi: session not found")
	errTooManySessions = errors.New("httpapi: too many sessions")
)

// playSession is one board played over HTTP.
type playSession struct {
	mu       sync.Mutex // Serializes swap + drain; a held lock means busy
	id       string
	gameID   string
	level    int // 1-based campaign level, 0 for an endless board
	engine   *core.Engine
	started  time.Time
	lastSeen atomic.Int64 // Unix nanoseconds
	recorded bool         // Result written to storage
}

func (s *playSession) touch(now time.Time) {
	s.lastSeen.Store(now.UnixNano())
}

func (s *playSession) idle(now time.Time) time.Duration {
	return now.Sub(time.Unix(0, s.lastSeen.Load()))
}

func (s *playSession) view() sessionJSON {
	p := s.engine.Progress()
	g := s.engine.Grid()
	return sessionJSON{
		ID:        s.id,
		GameID:    s.gameID,
		Level:     s.level,
		Rows:      g.Rows(),
		Cols:      g.Cols(),
		Board:     boardRows(g),
		Progress:  p.Progress,
		Goal:      p.Goal,
		Percent:   p.Percent,
		Currency:  p.Currency,
		Moves:     s.engine.Moves(),
		BestChain: s.engine.BestChain(),
		Phase:     s.engine.Phase().String(),
		Finished:  s.engine.Finished(),
	}
}

// sessionStore is a mutex-guarded in-memory map of live sessions.
// Sessions idle longer than ttl are dropped when new ones are added.
type sessionStore struct {
	mu       sync.RWMutex
	sessions map[string]*playSession
	ttl      time.Duration
	limit    int
	now      func() time.Time
}

func newSessionStore(ttl time.Duration, limit int) *sessionStore {
	return &sessionStore{
		sessions: make(map[string]*playSession),
		ttl:      ttl,
		limit:    limit,
		now:      time.Now,
	}
}

// add stores s, evicting idle sessions first. The evicted sessions are
// returned so the caller can record them.
func (st *sessionStore) add(s *playSession) ([]*playSession, error) {
	st.mu.Lock()
	defer st.mu.Unlock()

	now := st.now()
	evicted := st.expireLocked(now)
	if st.limit > 0 && len(st.sessions) >= st.limit {
		return evicted, errTooManySessions
	}

	s.started = now
	s.touch(now)
	st.sessions[s.id] = s
	return evicted, nil
}

// expire drops sessions idle longer than ttl and returns them.
func (st *sessionStore) expire() []*playSession {
	st.mu.Lock()
	defer st.mu.Unlock()
	return st.expireLocked(st.now())
}

func (st *sessionStore) expireLocked(now time.Time) []*playSession {
	if st.ttl <= 0 {
		return nil
	}
	var evicted []*playSession
	for id, s := range st.sessions {
		if s.idle(now) > st.ttl {
			evicted = append(evicted, s)
			delete(st.sessions, id)
		}
	}
	return evicted
}

// get looks up a session and marks it as seen.
func (st *sessionStore) get(id string) (*playSession, error) {
	st.mu.RLock()
	s, ok := st.sessions[id]
	st.mu.RUnlock()
	if !ok {
		return nil, errSessionNotFound
	}

	s.touch(st.now())
	return s, nil
}

// remove deletes a session and returns it.
func (st *sessionStore) remove(id string) (*playSession, error) {
	st.mu.Lock()
	defer st.mu.Unlock()

	s, ok := st.sessions[id]
	if !ok {
		return nil, errSessionNotFound
	}
	delete(st.sessions, id)
	return s, nil
}

// len returns the number of live sessions.
func (st *sessionStore) len() int {
	st.mu.RLock()
	defer st.mu.RUnlock()
	return len(st.sessions)
}
