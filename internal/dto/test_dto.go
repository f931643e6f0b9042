package dto

import "time"

// OptionResponseDTO is a multiple-choice alternative shown to users. The
// answer key never travels in user-facing test payloads.
type OptionResponseDTO struct {
	ID    uint   `json:"id"`
	Label string `json:"label"`
	Text  string `json:"text"`
}

type QuestionResponseDTO struct {
	ID             uint                `json:"id"`
	SectionID      uint                `json:"section_id"`
	Text           string              `json:"text"`
	Kind           string              `json:"kind"`
	OrderInSection int                 `json:"order_in_section"`
	Options        []OptionResponseDTO `json:"options,omitempty"`
	MinWords       int                 `json:"min_words,omitempty"`
	MaxScore       float64             `json:"max_score"`
}

type SectionResponseDTO struct {
	ID              uint                  `json:"id"`
	TestID          uint                  `json:"test_id"`
	Title           string                `json:"title"`
	Type            string                `json:"type"`
	OrderInTest     int                   `json:"order_in_test"`
	DurationSeconds int                   `json:"duration_seconds"`
	AudioURL        *string               `json:"audio_url,omitempty"`
	Questions       []QuestionResponseDTO `json:"questions,omitempty"`
}

// TestResponseDTO is the full test, for a user about to start a session.
type TestResponseDTO struct {
	ID          uint                 `json:"id"`
	Title       string               `json:"title"`
	Description string               `json:"description,omitempty"`
	Sections    []SectionResponseDTO `json:"sections,omitempty"`
	CreatedAt   time.Time            `json:"created_at"`
}

// TestSummaryDTO is used for listing tests available to users.
type TestSummaryDTO struct {
	ID           uint      `json:"id"`
	Title        string    `json:"title"`
	Description  string    `json:"description,omitempty"`
	SectionCount int       `json:"section_count"`
	CreatedAt    time.Time `json:"created_at"`
}
