package httpapi

import (
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/vovakirdan/tui-2048/internal/core"
	"github.com/vovakirdan/tui-2048/internal/games/t2048"
)

// ErrSessionNotFound is returned for an unknown session ID.
var ErrSessionNotFound = errors.New("session not found")

// Session is one game played over HTTP. Apply and Reset hold mu, so
// concurrent requests for the same game are serialized.
type Session struct {
	ID        string
	Mode      t2048.Mode
	CreatedAt time.Time

	mu       sync.Mutex
	engine   *t2048.Engine
	recorded bool   // score saved for the current game over
	runID    string // stored run of the current game over, if saved
}

// Apply performs one move under the session lock.
func (s *Session) Apply(dir t2048.Direction) (t2048.MoveResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.engine.Apply(dir)
}

// Reset starts a fresh game in the same session.
func (s *Session) Reset() t2048.State {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.engine.Reset()
	s.recorded = false
	s.runID = ""
	return s.engine.State()
}

// State returns the current engine state.
func (s *Session) State() t2048.State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.engine.State()
}

// markRecorded reports whether the caller should record the finished game.
// It returns true at most once per game over.
func (s *Session) markRecorded() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.engine.GameOver() || s.recorded {
		return false
	}
	s.recorded = true
	return true
}

// setRunID remembers the stored run of the finished game.
func (s *Session) setRunID(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.runID = id
}

// RunID returns the stored run of the finished game, or "" if none was saved.
func (s *Session) RunID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.runID
}

// SessionStore keeps HTTP game sessions in memory.
type SessionStore struct {
	mu       sync.RWMutex
	sessions map[string]*Session
	rules    core.Rules
}

// NewSessionStore creates an empty store whose games use rules.
func NewSessionStore(rules core.Rules) *SessionStore {
	return &SessionStore{
		sessions: make(map[string]*Session),
		rules:    rules,
	}
}

// Create starts a new session. A zero seed picks a time-based one.
func (st *SessionStore) Create(mode t2048.Mode, seed int64) *Session {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	s := &Session{
		ID:        uuid.New().String(),
		Mode:      mode,
		CreatedAt: time.Now(),
		engine:    t2048.NewSeededEngine(mode, seed, st.rules),
	}

	st.mu.Lock()
	st.sessions[s.ID] = s
	st.mu.Unlock()

	return s
}

// Get looks up a session by ID.
func (st *SessionStore) Get(id string) (*Session, error) {
	st.mu.RLock()
	defer st.mu.RUnlock()
	if s, ok := st.sessions[id]; ok {
		return s, nil
	}
	return nil, ErrSessionNotFound
}

// Delete removes a session.
func (st *SessionStore) Delete(id string) error {
	st.mu.Lock()
	defer st.mu.Unlock()
	if _, ok := st.sessions[id]; !ok {
		return ErrSessionNotFound
	}
	delete(st.sessions, id)
	return nil
}

// Len returns the number of live sessions.
func (st *SessionStore) Len() int {
	st.mu.RLock()
	defer st.mu.RUnlock()
	return len(st.sessions)
}
