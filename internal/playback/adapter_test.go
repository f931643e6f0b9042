package playback

import (
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeClock is a manually advanced clock for driving TimedSource.
type fakeClock struct {
	mu sync.Mutex
	t  time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{t: time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.t
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.t = c.t.Add(d)
	c.mu.Unlock()
}

// failingHandle errors on every transport call.
type failingHandle struct {
	err error
}

func (h *failingHandle) Play() error                       { return h.err }
func (h *failingHandle) Pause() error                      { return h.err }
func (h *failingHandle) Seek(position time.Duration) error { return h.err }
func (h *failingHandle) SetVolume(percent float64) error   { return h.err }
func (h *failingHandle) Close() error                      { return nil }

func newTestPlayer(t *testing.T, duration time.Duration) (*Adapter, *TimedSource, *fakeClock) {
	t.Helper()
	clk := newFakeClock()
	ad, src := NewSectionPlayer("https://cdn.example.com/audio/listening-1.mp3", duration, WithClock(clk.Now))
	return ad, src, clk
}

func TestAdapterProgress(t *testing.T) {
	t.Run("reports halfway through a two minute clip", func(t *testing.T) {
		ad, src, clk := newTestPlayer(t, 120*time.Second)

		require.NoError(t, ad.TogglePlayPause())
		clk.Advance(60 * time.Second)
		src.Sync()

		state := ad.State()
		assert.True(t, state.IsPlaying)
		assert.InDelta(t, 50.0, state.ProgressPercent, 0.001)
	})

	t.Run("progress is zero while duration is unknown", func(t *testing.T) {
		ad := NewAdapter(&failingHandle{})
		ad.HandleTimeUpdate(30*time.Second, 0)
		assert.Equal(t, 0.0, ad.State().ProgressPercent)
	})

	t.Run("progress never exceeds 100", func(t *testing.T) {
		ad := NewAdapter(&failingHandle{})
		ad.HandleTimeUpdate(130*time.Second, 120*time.Second)
		assert.Equal(t, 100.0, ad.State().ProgressPercent)
	})

	t.Run("pause freezes the position", func(t *testing.T) {
		ad, src, clk := newTestPlayer(t, 100*time.Second)

		require.NoError(t, ad.TogglePlayPause())
		clk.Advance(25 * time.Second)
		require.NoError(t, ad.TogglePlayPause())
		clk.Advance(60 * time.Second)
		src.Sync()

		state := ad.State()
		assert.False(t, state.IsPlaying)
		assert.InDelta(t, 25.0, state.ProgressPercent, 0.001)
	})
}

func TestAdapterEnded(t *testing.T) {
	ad, src, clk := newTestPlayer(t, 30*time.Second)

	endedCalls := 0
	ad.OnEnded(func() { endedCalls++ })

	require.NoError(t, ad.TogglePlayPause())
	clk.Advance(45 * time.Second)
	src.Sync()

	state := ad.State()
	assert.False(t, state.IsPlaying, "playback must stop when the clip runs out")
	assert.Equal(t, 100.0, state.ProgressPercent)
	assert.Equal(t, 1, endedCalls)

	// Syncing again must not replay the ended event.
	src.Sync()
	assert.Equal(t, 1, endedCalls)
}

func TestAdapterTogglePlayPause(t *testing.T) {
	t.Run("state stays paused when play fails", func(t *testing.T) {
		sourceErr := errors.New("decoder gone")
		ad := NewAdapter(&failingHandle{err: sourceErr})

		err := ad.TogglePlayPause()
		require.ErrorIs(t, err, sourceErr)
		assert.False(t, ad.State().IsPlaying, "IsPlaying must track the real transport, not the request")
	})

	t.Run("flips both ways", func(t *testing.T) {
		ad, _, _ := newTestPlayer(t, time.Minute)

		require.NoError(t, ad.TogglePlayPause())
		assert.True(t, ad.State().IsPlaying)

		require.NoError(t, ad.TogglePlayPause())
		assert.False(t, ad.State().IsPlaying)
	})
}

func TestAdapterSeekToStart(t *testing.T) {
	t.Run("paused audio starts from zero", func(t *testing.T) {
		ad, src, clk := newTestPlayer(t, 80*time.Second)

		require.NoError(t, ad.TogglePlayPause())
		clk.Advance(40 * time.Second)
		require.NoError(t, ad.TogglePlayPause())

		require.NoError(t, ad.SeekToStart())
		state := ad.State()
		assert.True(t, state.IsPlaying)
		assert.Equal(t, 0.0, state.ProgressPercent)
		assert.Equal(t, time.Duration(0), src.Position())
	})

	t.Run("playing audio restarts and keeps playing", func(t *testing.T) {
		ad, src, clk := newTestPlayer(t, 80*time.Second)

		require.NoError(t, ad.TogglePlayPause())
		clk.Advance(40 * time.Second)

		require.NoError(t, ad.SeekToStart())
		assert.True(t, ad.State().IsPlaying)
		assert.Equal(t, time.Duration(0), src.Position())

		clk.Advance(20 * time.Second)
		src.Sync()
		assert.InDelta(t, 25.0, ad.State().ProgressPercent, 0.001)
	})
}

func TestAdapterSetVolume(t *testing.T) {
	ad, _, _ := newTestPlayer(t, time.Minute)

	tests := []struct {
		name string
		in   float64
		want float64
	}{
		{"negative clamps to zero", -10, 0},
		{"over 100 clamps to 100", 150, 100},
		{"in range applied as is", 35, 35},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.NoError(t, ad.SetVolume(tt.in))
			assert.Equal(t, tt.want, ad.State().VolumePercent)
		})
	}

	t.Run("applies while paused", func(t *testing.T) {
		require.False(t, ad.State().IsPlaying)
		require.NoError(t, ad.SetVolume(70))
		assert.Equal(t, 70.0, ad.State().VolumePercent)
	})
}

func TestAdapterClose(t *testing.T) {
	ad, src, _ := newTestPlayer(t, time.Minute)
	require.NoError(t, ad.TogglePlayPause())
	require.NoError(t, ad.Close())

	assert.False(t, ad.State().IsPlaying)
	assert.ErrorIs(t, ad.TogglePlayPause(), ErrAdapterClosed)
	assert.ErrorIs(t, ad.SetVolume(50), ErrAdapterClosed)
	assert.ErrorIs(t, ad.SeekToStart(), ErrAdapterClosed)
	assert.NoError(t, ad.Close(), "closing twice is a no-op")
	assert.ErrorIs(t, src.Play(), ErrSourceUnavailable)
}
