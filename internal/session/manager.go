package session

import (
	"errors"
	"sync"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

var ErrSessionNotFound = errors.New("session: not found")

// Manager owns every live session. This is the explicit session scope the
// redesign called for: created when a test starts, dropped after submission,
// nothing ambient.
type Manager struct {
	mu        sync.RWMutex
	sessions  map[string]*Session
	newPlayer PlayerFactory
	onForced  func(*Session)
}

type ManagerOption func(*Manager)

// WithPlayerFactory overrides how listening-section players are built.
func WithPlayerFactory(f PlayerFactory) ManagerOption {
	return func(m *Manager) { m.newPlayer = f }
}

func NewManager(opts ...ManagerOption) *Manager {
	m := &Manager{sessions: make(map[string]*Session)}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// OnForcedSubmit registers the hook invoked when an enforced section timer
// force-submits a session (last section expired). The submission service uses
// it to persist the attempt.
func (m *Manager) OnForcedSubmit(fn func(*Session)) {
	m.mu.Lock()
	m.onForced = fn
	m.mu.Unlock()
}

// Start creates and registers a new session over the given registry.
func (m *Manager) Start(reg *Registry, testID uint, userID *uint, enforceTiming bool) *Session {
	id := uuid.NewString()

	s := newSession(id, testID, userID, reg, enforceTiming, m.newPlayer, func(sess *Session) {
		m.mu.RLock()
		fn := m.onForced
		m.mu.RUnlock()
		if fn != nil {
			fn(sess)
		}
	})

	m.mu.Lock()
	m.sessions[id] = s
	m.mu.Unlock()

	log.Info().Str("session_id", id).Uint("test_id", testID).Bool("enforce_timing", enforceTiming).Msg("Session started")
	return s
}

func (m *Manager) Get(id string) (*Session, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	s, ok := m.sessions[id]
	if !ok {
		return nil, ErrSessionNotFound
	}
	return s, nil
}

// Remove drops a session from the registry. Any remaining playback handle is
// released; the session itself stays usable only for reads held elsewhere.
func (m *Manager) Remove(id string) {
	m.mu.Lock()
	s, ok := m.sessions[id]
	delete(m.sessions, id)
	m.mu.Unlock()

	if ok {
		s.mu.Lock()
		s.stopTimerLocked()
		s.teardownPlaybackLocked()
		s.mu.Unlock()
		log.Info().Str("session_id", id).Msg("Session removed")
	}
}

// Count reports the number of live sessions.
func (m *Manager) Count() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions)
}
