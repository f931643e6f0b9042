package repository

import (
	"github.com/Loikaaa/neplia-sub001/internal/model"
	"gorm.io/gorm"
)

type AttemptRepository interface {
	Create(attempt *model.TestAttempt) error
	Update(attempt *model.TestAttempt) error
	FindByIDWithDetails(id uint) (*model.TestAttempt, error)
	FindBySessionIDWithDetails(sessionID string) (*model.TestAttempt, error)
	FindAllByTestAndUser(testID uint, userID *uint) ([]model.TestAttempt, error)
}

type attemptRepository struct {
	db *gorm.DB
}

func NewAttemptRepository(db *gorm.DB) AttemptRepository {
	return &attemptRepository{db: db}
}

func (r *attemptRepository) Create(attempt *model.TestAttempt) error {
	// Associated Answers and SectionResults are created alongside.
	return r.db.Create(attempt).Error
}

func (r *attemptRepository) Update(attempt *model.TestAttempt) error {
	return r.db.Save(attempt).Error
}

func (r *attemptRepository) FindByIDWithDetails(id uint) (*model.TestAttempt, error) {
	var attempt model.TestAttempt
	err := r.db.
		Preload("Test").
		Preload("Test.Sections").
		Preload("SectionResults").
		Preload("Answers.Question.Options").
		First(&attempt, id).Error
	return &attempt, err
}

func (r *attemptRepository) FindBySessionIDWithDetails(sessionID string) (*model.TestAttempt, error) {
	var attempt model.TestAttempt
	err := r.db.
		Preload("Test").
		Preload("Test.Sections").
		Preload("SectionResults").
		Preload("Answers.Question.Options").
		Where("session_id = ?", sessionID).
		First(&attempt).Error
	return &attempt, err
}

func (r *attemptRepository) FindAllByTestAndUser(testID uint, userID *uint) ([]model.TestAttempt, error) {
	var attempts []model.TestAttempt
	query := r.db.Where("test_id = ?", testID)
	if userID != nil {
		query = query.Where("user_id = ?", *userID)
	}
	err := query.Order("submitted_at DESC").Find(&attempts).Error
	return attempts, err
}
