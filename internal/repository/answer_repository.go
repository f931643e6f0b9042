package repository

import (
	"github.com/Loikaaa/neplia-sub001/internal/model"
	"gorm.io/gorm"
)

type AnswerRepository interface {
	Update(answer *model.Answer) error
}

type answerRepository struct {
	db *gorm.DB
}

func NewAnswerRepository(db *gorm.DB) AnswerRepository {
	return &answerRepository{db: db}
}

func (r *answerRepository) Update(answer *model.Answer) error {
	// Save writes all fields, including grading results and feedback.
	return r.db.Save(answer).Error
}
