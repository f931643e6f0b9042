package session

import (
	"errors"
	"sync"
	"time"

	"github.com/Loikaaa/neplia-sub001/internal/playback"
	"github.com/rs/zerolog/log"
)

// ErrSessionCompleted is returned for any mutation after the submission gate
// has fired. The old front end only disabled inputs in the UI; here the state
// machine itself refuses.
var ErrSessionCompleted = errors.New("session: already completed")

// PlayerFactory builds the playback pair for a listening section. Injectable
// so tests can drive the media clock.
type PlayerFactory func(audioURL string, duration time.Duration) (*playback.Adapter, *playback.TimedSource)

// Snapshot is a consistent read of a session for API responses.
type Snapshot struct {
	ID              string
	TestID          uint
	UserID          *uint
	SectionIndex    int
	SectionCount    int
	Section         Section
	IsFirstSection  bool
	IsLastSection   bool
	Completed       bool
	AnsweredCount   int
	StartedAt       time.Time
	SectionDeadline *time.Time
	Playback        *playback.State
}

// Session owns one user's progress through a test: the current section index,
// the answer map and the completed flag. States are InProgress(i) and
// Completed; Completed is terminal.
type Session struct {
	mu        sync.Mutex
	id        string
	testID    uint
	userID    *uint
	reg       *Registry
	index     int
	answers   map[uint]string
	completed bool
	startedAt time.Time

	enforceTiming bool
	timerGen      int
	timer         *time.Timer
	deadline      time.Time
	onForcedEnd   func(*Session)

	newPlayer PlayerFactory
	player    *playback.Adapter
	source    *playback.TimedSource
}

func newSession(id string, testID uint, userID *uint, reg *Registry, enforceTiming bool, factory PlayerFactory, onForcedEnd func(*Session)) *Session {
	if factory == nil {
		factory = func(audioURL string, duration time.Duration) (*playback.Adapter, *playback.TimedSource) {
			return playback.NewSectionPlayer(audioURL, duration)
		}
	}
	s := &Session{
		id:            id,
		testID:        testID,
		userID:        userID,
		reg:           reg,
		answers:       make(map[uint]string),
		startedAt:     time.Now(),
		enforceTiming: enforceTiming,
		newPlayer:     factory,
		onForcedEnd:   onForcedEnd,
	}
	s.mu.Lock()
	s.enterSectionLocked()
	s.mu.Unlock()
	return s
}

func (s *Session) ID() string          { return s.id }
func (s *Session) TestID() uint        { return s.testID }
func (s *Session) UserID() *uint       { return s.userID }
func (s *Session) Sections() *Registry { return s.reg }

// Index returns the current section index.
func (s *Session) Index() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.index
}

func (s *Session) Completed() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.completed
}

// Next advances to the following section. At the last section it is a silent
// no-op: callers are expected to check IsLastSection and submit instead.
func (s *Session) Next() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.completed {
		return ErrSessionCompleted
	}
	if s.index >= s.reg.LastIndex() {
		return nil
	}
	s.index++
	s.enterSectionLocked()
	return nil
}

// Previous steps back one section; a silent no-op at the first section.
func (s *Session) Previous() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.completed {
		return ErrSessionCompleted
	}
	if s.index <= 0 {
		return nil
	}
	s.index--
	s.enterSectionLocked()
	return nil
}

// SetAnswer records the user's answer for a question, overwriting any earlier
// value (last write wins). The empty string is a real answer — the user
// cleared the field — and is stored as such. No validation against question
// kind or option set happens here; grading deals with that.
func (s *Session) SetAnswer(questionID uint, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.completed {
		return ErrSessionCompleted
	}
	s.answers[questionID] = value
	return nil
}

// Answer returns the stored value and whether the question was ever answered.
// An explicitly stored empty string yields ("", true); a question never
// touched yields ("", false).
func (s *Session) Answer(questionID uint) (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	v, ok := s.answers[questionID]
	return v, ok
}

// Answers returns a copy of the answer map.
func (s *Session) Answers() map[uint]string {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make(map[uint]string, len(s.answers))
	for k, v := range s.answers {
		out[k] = v
	}
	return out
}

// Submit fires the submission gate: completed flips false→true exactly once
// and the session freezes. No precondition — partial submission from any
// section is accepted. Returns true only on the first call; repeat calls are
// no-ops.
func (s *Session) Submit() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.submitLocked()
}

func (s *Session) submitLocked() bool {
	if s.completed {
		return false
	}
	s.completed = true
	s.stopTimerLocked()
	s.teardownPlaybackLocked()
	return true
}

// Player returns the playback adapter for the current section, or nil when the
// section has no audio source (or the session is completed).
func (s *Session) Player() *playback.Adapter {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.player
}

// SyncPlayback refreshes playback progress from the media clock and returns
// the current state, or nil when the section has no audio.
func (s *Session) SyncPlayback() *playback.State {
	s.mu.Lock()
	player, source := s.player, s.source
	s.mu.Unlock()
	if player == nil {
		return nil
	}
	if source != nil {
		source.Sync()
	}
	st := player.State()
	return &st
}

// Snapshot returns a consistent view for rendering.
func (s *Session) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	snap := Snapshot{
		ID:             s.id,
		TestID:         s.testID,
		UserID:         s.userID,
		SectionIndex:   s.index,
		SectionCount:   s.reg.Len(),
		Section:        s.reg.At(s.index),
		IsFirstSection: s.index == 0,
		IsLastSection:  s.index == s.reg.LastIndex(),
		Completed:      s.completed,
		AnsweredCount:  len(s.answers),
		StartedAt:      s.startedAt,
	}
	if s.enforceTiming && !s.completed && !s.deadline.IsZero() {
		d := s.deadline
		snap.SectionDeadline = &d
	}
	if s.player != nil {
		st := s.player.State()
		snap.Playback = &st
	}
	return snap
}

// enterSectionLocked rebuilds per-section state: the previous media handle is
// torn down, a fresh one bound if the new section has audio, and the countdown
// rearmed when timing is enforced. Playback state never carries over.
func (s *Session) enterSectionLocked() {
	s.teardownPlaybackLocked()

	sec := s.reg.At(s.index)
	if sec.AudioURL != "" {
		s.player, s.source = s.newPlayer(sec.AudioURL, sec.Duration)
	}

	s.stopTimerLocked()
	if s.enforceTiming && sec.Duration > 0 {
		s.deadline = time.Now().Add(sec.Duration)
		gen := s.timerGen
		s.timer = time.AfterFunc(sec.Duration, func() { s.sectionExpired(gen) })
	}
}

// sectionExpired force-advances when the enforced section timer runs out, and
// force-submits on the last section.
func (s *Session) sectionExpired(gen int) {
	s.mu.Lock()
	if s.completed || gen != s.timerGen {
		s.mu.Unlock()
		return
	}
	if s.index >= s.reg.LastIndex() {
		forced := s.submitLocked()
		hook := s.onForcedEnd
		s.mu.Unlock()
		log.Info().Str("session_id", s.id).Msg("Section time expired on last section, forcing submission")
		if forced && hook != nil {
			hook(s)
		}
		return
	}
	s.index++
	s.enterSectionLocked()
	s.mu.Unlock()
	log.Info().Str("session_id", s.id).Int("section_index", s.index).Msg("Section time expired, advancing")
}

func (s *Session) stopTimerLocked() {
	s.timerGen++
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
	s.deadline = time.Time{}
}

func (s *Session) teardownPlaybackLocked() {
	if s.player != nil {
		if err := s.player.Close(); err != nil {
			log.Warn().Err(err).Str("session_id", s.id).Msg("Failed to close section playback")
		}
		s.player = nil
		s.source = nil
	}
}
