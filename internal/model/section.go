package model

import (
	"time"

	"gorm.io/gorm"
)

// SectionType is the closed set of section kinds. Exhaustive switches over this
// type replace the stringly-typed checks the old front end scattered around.
type SectionType string

const (
	SectionListening SectionType = "listening"
	SectionReading   SectionType = "reading"
	SectionWriting   SectionType = "writing"
	SectionSpeaking  SectionType = "speaking"
)

// Valid reports whether t is one of the four known section kinds.
func (t SectionType) Valid() bool {
	switch t {
	case SectionListening, SectionReading, SectionWriting, SectionSpeaking:
		return true
	}
	return false
}

// Objective reports whether answers in this section are auto-gradable against
// an answer key (as opposed to needing the feedback evaluator).
func (t SectionType) Objective() bool {
	switch t {
	case SectionListening, SectionReading:
		return true
	case SectionWriting, SectionSpeaking:
		return false
	}
	return false
}

// Section is one ordered part of a test. Immutable once loaded; OrderInTest
// defines the navigation sequence.
type Section struct {
	ID              uint           `gorm:"primarykey" json:"id"`
	TestID          uint           `json:"test_id" gorm:"not null;index"`
	Title           string         `json:"title" gorm:"not null"`
	Type            SectionType    `json:"type" gorm:"not null"`
	OrderInTest     int            `json:"order_in_test" gorm:"not null"`
	DurationSeconds int            `json:"duration_seconds" gorm:"not null"`
	AudioURL        *string        `json:"audio_url,omitempty"` // listening sections only
	Questions       []Question     `json:"questions,omitempty" gorm:"foreignKey:SectionID"`
	CreatedAt       time.Time      `json:"created_at"`
	UpdatedAt       time.Time      `json:"updated_at"`
	DeletedAt       gorm.DeletedAt `gorm:"index" json:"-"`
}
