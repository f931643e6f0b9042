package session

import (
	"sync"
	"testing"
	"time"

	"github.com/Loikaaa/neplia-sub001/internal/model"
	"github.com/Loikaaa/neplia-sub001/internal/playback"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeClock struct {
	mu sync.Mutex
	t  time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{t: time.Date(2026, 1, 1, 9, 0, 0, 0, time.UTC)}
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

func testFactory(clk *fakeClock) PlayerFactory {
	return func(audioURL string, duration time.Duration) (*playback.Adapter, *playback.TimedSource) {
		return playback.NewSectionPlayer(audioURL, duration, playback.WithClock(clk.Now))
	}
}

func threeSectionRegistry(t *testing.T) *Registry {
	t.Helper()
	reg, err := NewRegistry([]Section{
		{ID: 1, Title: "Listening", Type: model.SectionListening, Duration: 30 * time.Minute, AudioURL: "https://cdn.example.com/audio/l1.mp3"},
		{ID: 2, Title: "Reading", Type: model.SectionReading, Duration: 60 * time.Minute},
		{ID: 3, Title: "Writing", Type: model.SectionWriting, Duration: 60 * time.Minute},
	})
	require.NoError(t, err)
	return reg
}

func TestRegistry(t *testing.T) {
	t.Run("rejects empty section list", func(t *testing.T) {
		_, err := NewRegistry(nil)
		assert.ErrorIs(t, err, ErrEmptyRegistry)
	})

	t.Run("orders model sections by position in test", func(t *testing.T) {
		audio := "https://cdn.example.com/audio/l1.mp3"
		reg, err := NewRegistryFromModel([]model.Section{
			{ID: 20, Title: "Reading", Type: model.SectionReading, OrderInTest: 2, DurationSeconds: 3600},
			{ID: 10, Title: "Listening", Type: model.SectionListening, OrderInTest: 1, DurationSeconds: 1800, AudioURL: &audio},
		})
		require.NoError(t, err)
		require.Equal(t, 2, reg.Len())
		assert.Equal(t, uint(10), reg.At(0).ID)
		assert.Equal(t, audio, reg.At(0).AudioURL)
		assert.Equal(t, 30*time.Minute, reg.At(0).Duration)
		assert.Equal(t, uint(20), reg.At(1).ID)
	})
}

func TestSessionNavigation(t *testing.T) {
	m := NewManager(WithPlayerFactory(testFactory(newFakeClock())))
	sess := m.Start(threeSectionRegistry(t), 1, nil, false)

	t.Run("previous at the first section is a silent no-op", func(t *testing.T) {
		require.NoError(t, sess.Previous())
		assert.Equal(t, 0, sess.Index())
	})

	t.Run("next walks forward", func(t *testing.T) {
		require.NoError(t, sess.Next())
		assert.Equal(t, 1, sess.Index())
		require.NoError(t, sess.Next())
		assert.Equal(t, 2, sess.Index())
	})

	t.Run("next at the last section is a silent no-op", func(t *testing.T) {
		require.NoError(t, sess.Next())
		assert.Equal(t, 2, sess.Index())
	})

	t.Run("snapshot flags first and last", func(t *testing.T) {
		snap := sess.Snapshot()
		assert.False(t, snap.IsFirstSection)
		assert.True(t, snap.IsLastSection)
		assert.Equal(t, 3, snap.SectionCount)
		assert.Equal(t, uint(3), snap.Section.ID)
	})
}

func TestSessionAnswers(t *testing.T) {
	m := NewManager(WithPlayerFactory(testFactory(newFakeClock())))
	sess := m.Start(threeSectionRegistry(t), 1, nil, false)

	t.Run("last write wins", func(t *testing.T) {
		require.NoError(t, sess.SetAnswer(7, "A"))
		require.NoError(t, sess.SetAnswer(7, "C"))
		v, ok := sess.Answer(7)
		assert.True(t, ok)
		assert.Equal(t, "C", v)
	})

	t.Run("cleared answer is still an answer", func(t *testing.T) {
		require.NoError(t, sess.SetAnswer(7, ""))
		v, ok := sess.Answer(7)
		assert.True(t, ok, "an explicitly stored empty string counts as answered")
		assert.Equal(t, "", v)
	})

	t.Run("untouched question is unanswered", func(t *testing.T) {
		_, ok := sess.Answer(99)
		assert.False(t, ok)
	})

	t.Run("answers survive navigation", func(t *testing.T) {
		require.NoError(t, sess.SetAnswer(8, "coastal erosion"))
		require.NoError(t, sess.Next())
		require.NoError(t, sess.Previous())
		v, ok := sess.Answer(8)
		assert.True(t, ok)
		assert.Equal(t, "coastal erosion", v)
		assert.Equal(t, 2, sess.Snapshot().AnsweredCount)
	})

	t.Run("Answers returns a copy", func(t *testing.T) {
		answers := sess.Answers()
		answers[8] = "tampered"
		v, _ := sess.Answer(8)
		assert.Equal(t, "coastal erosion", v)
	})
}

func TestSessionSubmit(t *testing.T) {
	m := NewManager(WithPlayerFactory(testFactory(newFakeClock())))

	t.Run("partial submission from the first section is accepted", func(t *testing.T) {
		sess := m.Start(threeSectionRegistry(t), 1, nil, false)
		assert.True(t, sess.Submit(), "no precondition guards the gate")
		assert.True(t, sess.Completed())
	})

	t.Run("submit is idempotent", func(t *testing.T) {
		sess := m.Start(threeSectionRegistry(t), 1, nil, false)
		require.NoError(t, sess.SetAnswer(1, "B"))

		assert.True(t, sess.Submit())
		assert.False(t, sess.Submit(), "only the first call flips the gate")
		assert.True(t, sess.Completed())
	})

	t.Run("completed session refuses every mutation", func(t *testing.T) {
		sess := m.Start(threeSectionRegistry(t), 1, nil, false)
		require.True(t, sess.Submit())

		assert.ErrorIs(t, sess.Next(), ErrSessionCompleted)
		assert.ErrorIs(t, sess.Previous(), ErrSessionCompleted)
		assert.ErrorIs(t, sess.SetAnswer(1, "A"), ErrSessionCompleted)
	})

	t.Run("submit releases the playback handle", func(t *testing.T) {
		sess := m.Start(threeSectionRegistry(t), 1, nil, false)
		require.NotNil(t, sess.Player(), "listening section carries a player")
		require.True(t, sess.Submit())
		assert.Nil(t, sess.Player())
		assert.Nil(t, sess.SyncPlayback())
	})
}

func TestSessionPlaybackPerSection(t *testing.T) {
	clk := newFakeClock()
	m := NewManager(WithPlayerFactory(testFactory(clk)))

	reg, err := NewRegistry([]Section{
		{ID: 1, Title: "Listening Part 1", Type: model.SectionListening, Duration: 2 * time.Minute, AudioURL: "https://cdn.example.com/audio/p1.mp3"},
		{ID: 2, Title: "Listening Part 2", Type: model.SectionListening, Duration: 2 * time.Minute, AudioURL: "https://cdn.example.com/audio/p2.mp3"},
		{ID: 3, Title: "Reading", Type: model.SectionReading, Duration: time.Hour},
	})
	require.NoError(t, err)
	sess := m.Start(reg, 1, nil, false)

	t.Run("state never carries across sections", func(t *testing.T) {
		first := sess.Player()
		require.NotNil(t, first)
		require.NoError(t, first.TogglePlayPause())
		clk.Advance(time.Minute)
		state := sess.SyncPlayback()
		require.NotNil(t, state)
		require.True(t, state.IsPlaying)
		require.InDelta(t, 50.0, state.ProgressPercent, 0.001)

		require.NoError(t, sess.Next())
		second := sess.Player()
		require.NotNil(t, second)
		assert.NotSame(t, first, second, "each section gets a fresh adapter")

		state = sess.SyncPlayback()
		require.NotNil(t, state)
		assert.False(t, state.IsPlaying)
		assert.Equal(t, 0.0, state.ProgressPercent)

		assert.ErrorIs(t, first.TogglePlayPause(), playback.ErrAdapterClosed, "old handle is torn down")
	})

	t.Run("returning rebuilds from the start", func(t *testing.T) {
		require.NoError(t, sess.Previous())
		state := sess.SyncPlayback()
		require.NotNil(t, state)
		assert.False(t, state.IsPlaying)
		assert.Equal(t, 0.0, state.ProgressPercent)
	})

	t.Run("section without audio has no player", func(t *testing.T) {
		require.NoError(t, sess.Next())
		require.NoError(t, sess.Next())
		assert.Nil(t, sess.Player())
		assert.Nil(t, sess.SyncPlayback())
	})
}

func TestSessionEnforcedTiming(t *testing.T) {
	t.Run("expired section forces an advance", func(t *testing.T) {
		m := NewManager(WithPlayerFactory(testFactory(newFakeClock())))
		reg, err := NewRegistry([]Section{
			{ID: 1, Title: "Reading", Type: model.SectionReading, Duration: 20 * time.Millisecond},
			{ID: 2, Title: "Writing", Type: model.SectionWriting, Duration: time.Hour},
		})
		require.NoError(t, err)

		sess := m.Start(reg, 1, nil, true)
		require.NotNil(t, sess.Snapshot().SectionDeadline)

		require.Eventually(t, func() bool { return sess.Index() == 1 },
			2*time.Second, 5*time.Millisecond, "timer must push the session forward")
		assert.False(t, sess.Completed())
	})

	t.Run("expiry on the last section forces submission", func(t *testing.T) {
		m := NewManager(WithPlayerFactory(testFactory(newFakeClock())))

		forced := make(chan *Session, 1)
		m.OnForcedSubmit(func(s *Session) { forced <- s })

		reg, err := NewRegistry([]Section{
			{ID: 1, Title: "Writing", Type: model.SectionWriting, Duration: 20 * time.Millisecond},
		})
		require.NoError(t, err)
		sess := m.Start(reg, 1, nil, true)

		select {
		case got := <-forced:
			assert.Same(t, sess, got)
		case <-time.After(2 * time.Second):
			t.Fatal("forced submission hook never fired")
		}
		assert.True(t, sess.Completed())
	})

	t.Run("navigating rearms the countdown for the new section", func(t *testing.T) {
		m := NewManager(WithPlayerFactory(testFactory(newFakeClock())))
		reg, err := NewRegistry([]Section{
			{ID: 1, Title: "Reading", Type: model.SectionReading, Duration: time.Hour},
			{ID: 2, Title: "Writing", Type: model.SectionWriting, Duration: 2 * time.Hour},
		})
		require.NoError(t, err)

		sess := m.Start(reg, 1, nil, true)
		first := sess.Snapshot().SectionDeadline
		require.NotNil(t, first)

		require.NoError(t, sess.Next())
		second := sess.Snapshot().SectionDeadline
		require.NotNil(t, second)
		assert.True(t, second.After(*first))
	})

	t.Run("no deadline without enforcement", func(t *testing.T) {
		m := NewManager(WithPlayerFactory(testFactory(newFakeClock())))
		sess := m.Start(threeSectionRegistry(t), 1, nil, false)
		assert.Nil(t, sess.Snapshot().SectionDeadline)
	})
}

func TestManagerDefaultPlayerFactory(t *testing.T) {
	m := NewManager()
	sess := m.Start(threeSectionRegistry(t), 1, nil, false)

	player := sess.Player()
	require.NotNil(t, player, "listening section must get a player without an injected factory")

	state := sess.SyncPlayback()
	require.NotNil(t, state)
	assert.False(t, state.IsPlaying)
	assert.Equal(t, 0.0, state.ProgressPercent)
	assert.Equal(t, 100.0, state.VolumePercent)
}

func TestManager(t *testing.T) {
	m := NewManager(WithPlayerFactory(testFactory(newFakeClock())))

	t.Run("start registers and get retrieves", func(t *testing.T) {
		userID := uint(42)
		sess := m.Start(threeSectionRegistry(t), 5, &userID, false)

		got, err := m.Get(sess.ID())
		require.NoError(t, err)
		assert.Same(t, sess, got)
		assert.Equal(t, uint(5), got.TestID())
		require.NotNil(t, got.UserID())
		assert.Equal(t, uint(42), *got.UserID())
		assert.Equal(t, 1, m.Count())
	})

	t.Run("unknown id", func(t *testing.T) {
		_, err := m.Get("7b0c2c3e-missing")
		assert.ErrorIs(t, err, ErrSessionNotFound)
	})

	t.Run("remove drops the session and its playback", func(t *testing.T) {
		sess := m.Start(threeSectionRegistry(t), 5, nil, false)
		player := sess.Player()
		require.NotNil(t, player)

		m.Remove(sess.ID())
		_, err := m.Get(sess.ID())
		assert.ErrorIs(t, err, ErrSessionNotFound)
		assert.ErrorIs(t, player.TogglePlayPause(), playback.ErrAdapterClosed)
	})
}
