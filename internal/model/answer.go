package model

import (
	"time"

	"gorm.io/gorm"
)

type Answer struct {
	ID            uint     `gorm:"primarykey" json:"id"`
	TestAttemptID uint     `json:"test_attempt_id" gorm:"not null;index"`
	QuestionID    uint     `json:"question_id" gorm:"not null;index"`
	Question      Question `json:"question,omitempty" gorm:"foreignKey:QuestionID"`
	// UserAnswer may be the empty string: the user explicitly cleared the field.
	// Questions the user never touched get no Answer row at all.
	UserAnswer  string         `json:"user_answer" gorm:"type:text"`
	Correct     *bool          `json:"correct,omitempty"` // objective kinds only
	Score       *float64       `json:"score,omitempty"`
	Feedback    string         `json:"feedback,omitempty" gorm:"type:text"`
	Suggestions []string       `json:"suggestions,omitempty" gorm:"serializer:json"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`
}
