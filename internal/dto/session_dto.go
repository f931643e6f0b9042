package dto

import "time"

// SessionStartDTO starts a new session for a test.
type SessionStartDTO struct {
	UserID *uint `json:"user_id"` // temporary, until auth lands
	// EnforceTiming arms the per-section countdown. Nil falls back to the
	// server default.
	EnforceTiming *bool `json:"enforce_timing"`
}

// SessionAnswerDTO records one answer. Empty values are allowed and stored:
// clearing a field is distinct from never answering.
type SessionAnswerDTO struct {
	QuestionID uint   `json:"question_id" binding:"required"`
	Value      string `json:"value"`
}

// VolumeDTO sets playback volume; out-of-range values are clamped server-side.
type VolumeDTO struct {
	Percent float64 `json:"percent"`
}

// PlaybackStateDTO mirrors the adapter state for the active section.
type PlaybackStateDTO struct {
	IsPlaying       bool    `json:"is_playing"`
	ProgressPercent float64 `json:"progress_percent"`
	VolumePercent   float64 `json:"volume_percent"`
}

// SessionSnapshotDTO is a read of the live session.
type SessionSnapshotDTO struct {
	ID              string            `json:"id"`
	TestID          uint              `json:"test_id"`
	UserID          *uint             `json:"user_id,omitempty"`
	SectionIndex    int               `json:"section_index"`
	SectionCount    int               `json:"section_count"`
	SectionID       uint              `json:"section_id"`
	SectionTitle    string            `json:"section_title"`
	SectionType     string            `json:"section_type"`
	IsFirstSection  bool              `json:"is_first_section"`
	IsLastSection   bool              `json:"is_last_section"`
	Completed       bool              `json:"completed"`
	AnsweredCount   int               `json:"answered_count"`
	StartedAt       time.Time         `json:"started_at"`
	SectionDeadline *time.Time        `json:"section_deadline,omitempty"`
	Playback        *PlaybackStateDTO `json:"playback,omitempty"`
}
