package model

import (
	"time"

	"gorm.io/gorm"
)

// QuestionKind enumerates the supported question formats.
type QuestionKind string

const (
	KindMultipleChoice QuestionKind = "multiple_choice"
	KindFillInBlank    QuestionKind = "fill_in_blank"
	KindEssay          QuestionKind = "essay"
	KindSpeakingPrompt QuestionKind = "speaking_prompt"
)

func (k QuestionKind) Valid() bool {
	switch k {
	case KindMultipleChoice, KindFillInBlank, KindEssay, KindSpeakingPrompt:
		return true
	}
	return false
}

type Question struct {
	ID             uint         `gorm:"primarykey" json:"id"`
	SectionID      uint         `json:"section_id" gorm:"not null;index"`
	Text           string       `json:"text" gorm:"type:text;not null"`
	Kind           QuestionKind `json:"kind" gorm:"not null"`
	OrderInSection int          `json:"order_in_section" gorm:"not null"`
	Options        []Option     `json:"options,omitempty" gorm:"foreignKey:QuestionID"`
	// CorrectAnswer is the answer key for objective kinds: an option label for
	// multiple choice, the expected text for fill-in-blank. Nil for essay and
	// speaking prompts.
	CorrectAnswer *string        `json:"correct_answer,omitempty"`
	MinWords      int            `json:"min_words,omitempty"` // essay/speaking word floor
	MaxScore      float64        `json:"max_score" gorm:"not null"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
	DeletedAt     gorm.DeletedAt `gorm:"index" json:"-"`
}

// Option is a multiple-choice alternative. Label is the stable key the user's
// answer refers to ("A", "B", ...).
type Option struct {
	ID         uint           `gorm:"primarykey" json:"id"`
	QuestionID uint           `json:"question_id" gorm:"not null;index"`
	Label      string         `json:"label" gorm:"not null"`
	Text       string         `json:"text" gorm:"not null"`
	CreatedAt  time.Time      `json:"created_at"`
	UpdatedAt  time.Time      `json:"updated_at"`
	DeletedAt  gorm.DeletedAt `gorm:"index" json:"-"`
}
