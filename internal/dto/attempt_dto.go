package dto

import "time"

// AnswerResponseDTO is one graded answer within an attempt.
type AnswerResponseDTO struct {
	ID          uint                `json:"id"`
	QuestionID  uint                `json:"question_id"`
	Question    QuestionResponseDTO `json:"question,omitempty"`
	UserAnswer  string              `json:"user_answer"`
	Correct     *bool               `json:"correct,omitempty"`
	Score       *float64            `json:"score,omitempty"`
	Feedback    string              `json:"feedback,omitempty"`
	Suggestions []string            `json:"suggestions,omitempty"`
}

// SectionResultDTO aggregates one section of an attempt.
type SectionResultDTO struct {
	SectionID uint    `json:"section_id"`
	Type      string  `json:"type"`
	RawScore  float64 `json:"raw_score"`
	MaxScore  float64 `json:"max_score"`
	Band      float64 `json:"band"`
}

// TestAttemptDetailDTO is the full result of a submitted session.
type TestAttemptDetailDTO struct {
	ID             uint               `json:"id"`
	TestID         uint               `json:"test_id"`
	TestTitle      string             `json:"test_title,omitempty"`
	UserID         *uint              `json:"user_id,omitempty"`
	SessionID      string             `json:"session_id"`
	SubmittedAt    time.Time          `json:"submitted_at"`
	Status         string             `json:"status"`
	RawScore       *float64           `json:"raw_score,omitempty"`
	OverallBand    *float64           `json:"overall_band,omitempty"`
	SectionResults []SectionResultDTO `json:"section_results,omitempty"`
	Answers        []AnswerResponseDTO `json:"answers,omitempty"`
}

// TestAttemptSummaryDTO is for listing a user's attempts for a test.
type TestAttemptSummaryDTO struct {
	ID          uint      `json:"id"`
	TestID      uint      `json:"test_id"`
	UserID      *uint     `json:"user_id,omitempty"`
	SubmittedAt time.Time `json:"submitted_at"`
	Status      string    `json:"status"`
	RawScore    *float64  `json:"raw_score,omitempty"`
	OverallBand *float64  `json:"overall_band,omitempty"`
}
