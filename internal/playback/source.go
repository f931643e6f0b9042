package playback

import (
	"errors"
	"sync"
	"time"
)

var ErrSourceUnavailable = errors.New("playback: media source unavailable")

// Clock abstracts wall time so the source can be driven deterministically in
// tests.
type Clock func() time.Time

// TimedSource is a server-side MediaHandle over a known-duration clip. It does
// not decode audio; it models the clip's timeline (position, play state) so the
// adapter's progress and ended semantics are observable. Position advances with
// the clock while playing; Sync pushes the current position into the adapter
// the way a browser media element pushes timeupdate events.
type TimedSource struct {
	mu        sync.Mutex
	url       string
	duration  time.Duration
	now       Clock
	sink      *Adapter
	playing   bool
	elapsed   time.Duration // accumulated play time before the current run
	playStart time.Time     // valid while playing
	volume    float64
	closed    bool
}

// SourceOption configures a TimedSource.
type SourceOption func(*TimedSource)

func WithClock(c Clock) SourceOption {
	return func(s *TimedSource) { s.now = c }
}

func NewTimedSource(url string, duration time.Duration, opts ...SourceOption) *TimedSource {
	s := &TimedSource{
		url:      url,
		duration: duration,
		now:      time.Now,
		volume:   100,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Bind attaches the adapter that receives time updates and the ended event.
func (s *TimedSource) Bind(sink *Adapter) {
	s.mu.Lock()
	s.sink = sink
	s.mu.Unlock()
}

func (s *TimedSource) URL() string { return s.url }

func (s *TimedSource) Play() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return ErrSourceUnavailable
	}
	if s.playing {
		return nil
	}
	s.playing = true
	s.playStart = s.now()
	return nil
}

func (s *TimedSource) Pause() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return ErrSourceUnavailable
	}
	if !s.playing {
		return nil
	}
	s.elapsed += s.now().Sub(s.playStart)
	s.playing = false
	return nil
}

func (s *TimedSource) Seek(position time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return ErrSourceUnavailable
	}
	if position < 0 {
		position = 0
	}
	if position > s.duration {
		position = s.duration
	}
	s.elapsed = position
	if s.playing {
		s.playStart = s.now()
	}
	return nil
}

func (s *TimedSource) SetVolume(percent float64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return ErrSourceUnavailable
	}
	s.volume = percent
	return nil
}

func (s *TimedSource) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	s.playing = false
	return nil
}

// Position is the current point in the clip's timeline.
func (s *TimedSource) Position() time.Duration {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.positionLocked()
}

func (s *TimedSource) positionLocked() time.Duration {
	pos := s.elapsed
	if s.playing {
		pos += s.now().Sub(s.playStart)
	}
	if pos > s.duration {
		pos = s.duration
	}
	return pos
}

// Sync pushes the current position into the bound adapter, firing its ended
// path if the clip has run out. Returns the position it reported.
func (s *TimedSource) Sync() time.Duration {
	s.mu.Lock()
	if s.closed || s.sink == nil {
		s.mu.Unlock()
		return 0
	}
	pos := s.positionLocked()
	ended := s.playing && pos >= s.duration && s.duration > 0
	if ended {
		s.playing = false
		s.elapsed = s.duration
	}
	sink := s.sink
	duration := s.duration
	s.mu.Unlock()

	sink.HandleTimeUpdate(pos, duration)
	if ended {
		sink.HandleEnded()
	}
	return pos
}

// NewSectionPlayer builds the adapter+source pair for one listening section.
func NewSectionPlayer(audioURL string, duration time.Duration, opts ...SourceOption) (*Adapter, *TimedSource) {
	src := NewTimedSource(audioURL, duration, opts...)
	ad := NewAdapter(src)
	src.Bind(ad)
	return ad, src
}
