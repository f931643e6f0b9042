package model

import (
	"time"

	"gorm.io/gorm"
)

// Test is a full mock test: an ordered set of sections making up one sitting.
type Test struct {
	ID          uint           `gorm:"primarykey" json:"id"`
	Title       string         `json:"title" gorm:"not null;uniqueIndex"` // "Mock Test 1"
	Description string         `json:"description,omitempty"`
	Sections    []Section      `json:"sections,omitempty" gorm:"foreignKey:TestID"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`
}
