package model

import (
	"time"

	"gorm.io/gorm"
)

// Attempt statuses, in lifecycle order.
const (
	AttemptStatusPending             = "pending"
	AttemptStatusScoring             = "scoring"
	AttemptStatusCompleted           = "completed"
	AttemptStatusCompletedWithErrors = "completed_with_errors"
)

// TestAttempt is a persisted, submitted session. Live sessions stay in memory;
// a row only exists once the submission gate has fired.
type TestAttempt struct {
	ID             uint            `gorm:"primarykey" json:"id"`
	TestID         uint            `json:"test_id" gorm:"not null;index"`
	Test           Test            `json:"test,omitempty" gorm:"foreignKey:TestID"`
	UserID         *uint           `json:"user_id,omitempty" gorm:"index"`
	SessionID      string          `json:"session_id" gorm:"not null;index"`
	SubmittedAt    time.Time       `json:"submitted_at" gorm:"autoCreateTime"`
	Status         string          `json:"status" gorm:"default:'pending'"`
	RawScore       *float64        `json:"raw_score,omitempty"`
	OverallBand    *float64        `json:"overall_band,omitempty"`
	SectionResults []SectionResult `json:"section_results,omitempty" gorm:"foreignKey:TestAttemptID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
	Answers        []Answer        `json:"answers,omitempty" gorm:"foreignKey:TestAttemptID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
	CreatedAt      time.Time       `json:"created_at"`
	UpdatedAt      time.Time       `json:"updated_at"`
	DeletedAt      gorm.DeletedAt  `gorm:"index" json:"-"`
}

// SectionResult aggregates one section's score within an attempt.
type SectionResult struct {
	ID            uint           `gorm:"primarykey" json:"id"`
	TestAttemptID uint           `json:"test_attempt_id" gorm:"not null;index"`
	SectionID     uint           `json:"section_id" gorm:"not null;index"`
	Type          SectionType    `json:"type" gorm:"not null"`
	RawScore      float64        `json:"raw_score"`
	MaxScore      float64        `json:"max_score"`
	Band          float64        `json:"band"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
	DeletedAt     gorm.DeletedAt `gorm:"index" json:"-"`
}
