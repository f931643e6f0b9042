// Package playback mediates a single audio source for the active listening
// section: transport controls facing the session API, normalized progress
// facing anyone who subscribes. One adapter per section; switching sections
// tears the old one down and builds a fresh one, so no position or play state
// leaks across sections.
package playback

import (
	"errors"
	"sync"
	"time"
)

var ErrAdapterClosed = errors.New("playback: adapter is closed")

// MediaHandle is the underlying media resource. The host environment (or the
// TimedSource stand-in) implements it; the adapter is its only caller.
type MediaHandle interface {
	Play() error
	Pause() error
	Seek(position time.Duration) error
	SetVolume(percent float64) error
	Close() error
}

// State is the UI-facing view of the adapter, reset per section.
type State struct {
	IsPlaying       bool    `json:"is_playing"`
	ProgressPercent float64 `json:"progress_percent"` // 0..100, 0 while duration unknown
	VolumePercent   float64 `json:"volume_percent"`   // 0..100
}

// Adapter wraps one MediaHandle. All methods are safe for concurrent use;
// callbacks fire outside the lock.
type Adapter struct {
	mu         sync.Mutex
	handle     MediaHandle
	state      State
	onProgress func(percent float64)
	onEnded    func()
	closed     bool
}

func NewAdapter(handle MediaHandle) *Adapter {
	return &Adapter{
		handle: handle,
		state:  State{VolumePercent: 100},
	}
}

// OnProgress registers the continuous progress callback.
func (a *Adapter) OnProgress(fn func(percent float64)) {
	a.mu.Lock()
	a.onProgress = fn
	a.mu.Unlock()
}

// OnEnded registers the end-of-clip callback. Playback ending never advances
// the session by itself; navigation stays explicit.
func (a *Adapter) OnEnded(fn func()) {
	a.mu.Lock()
	a.onEnded = fn
	a.mu.Unlock()
}

func (a *Adapter) State() State {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.state
}

// TogglePlayPause flips between playing and paused. If the underlying play
// attempt fails the error is returned and IsPlaying stays false: state tracks
// the real transport status, never the requested one.
func (a *Adapter) TogglePlayPause() error {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.closed {
		return ErrAdapterClosed
	}
	if a.state.IsPlaying {
		if err := a.handle.Pause(); err != nil {
			return err
		}
		a.state.IsPlaying = false
		return nil
	}
	if err := a.handle.Play(); err != nil {
		return err
	}
	a.state.IsPlaying = true
	return nil
}

// SeekToStart is the replay control: rewind to zero and play. Already-playing
// audio restarts and keeps playing; paused audio starts.
func (a *Adapter) SeekToStart() error {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.closed {
		return ErrAdapterClosed
	}
	if err := a.handle.Seek(0); err != nil {
		return err
	}
	if !a.state.IsPlaying {
		if err := a.handle.Play(); err != nil {
			return err
		}
		a.state.IsPlaying = true
	}
	a.state.ProgressPercent = 0
	return nil
}

// SetVolume clamps to [0,100] and applies immediately; playback need not be
// active.
func (a *Adapter) SetVolume(percent float64) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.closed {
		return ErrAdapterClosed
	}
	if percent < 0 {
		percent = 0
	} else if percent > 100 {
		percent = 100
	}
	if err := a.handle.SetVolume(percent); err != nil {
		return err
	}
	a.state.VolumePercent = percent
	return nil
}

// HandleTimeUpdate receives a position report from the media handle and
// publishes normalized progress. Progress is 0 while the duration is unknown.
func (a *Adapter) HandleTimeUpdate(position, duration time.Duration) {
	a.mu.Lock()
	if a.closed {
		a.mu.Unlock()
		return
	}
	percent := 0.0
	if duration > 0 {
		percent = float64(position) / float64(duration) * 100
		if percent > 100 {
			percent = 100
		}
	}
	a.state.ProgressPercent = percent
	fn := a.onProgress
	a.mu.Unlock()

	if fn != nil {
		fn(percent)
	}
}

// HandleEnded receives the end-of-stream notification from the media handle.
func (a *Adapter) HandleEnded() {
	a.mu.Lock()
	if a.closed {
		a.mu.Unlock()
		return
	}
	a.state.IsPlaying = false
	a.state.ProgressPercent = 100
	fn := a.onEnded
	a.mu.Unlock()

	if fn != nil {
		fn()
	}
}

// Close releases the media handle. Called when the session leaves the section
// or is torn down; the adapter is unusable afterwards.
func (a *Adapter) Close() error {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.closed {
		return nil
	}
	a.closed = true
	a.state.IsPlaying = false
	return a.handle.Close()
}
