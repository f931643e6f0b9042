package repository

import (
	"github.com/Loikaaa/neplia-sub001/internal/model"
	"gorm.io/gorm"
)

type TestRepository interface {
	Create(test *model.Test) error
	FindByID(id uint) (*model.Test, error)
	FindByIDWithSections(id uint) (*model.Test, error)
	FindAllWithSectionCount() ([]TestWithSectionCount, error)
}

// TestWithSectionCount backs the catalog listing.
type TestWithSectionCount struct {
	model.Test
	SectionCount int
}

type testRepository struct {
	db *gorm.DB
}

func NewTestRepository(db *gorm.DB) TestRepository {
	return &testRepository{db: db}
}

func (r *testRepository) Create(test *model.Test) error {
	// Creating the test cascades into sections, questions and options via the
	// association foreign keys.
	return r.db.Create(test).Error
}

func (r *testRepository) FindByID(id uint) (*model.Test, error) {
	var test model.Test
	err := r.db.First(&test, id).Error
	return &test, err
}

func (r *testRepository) FindByIDWithSections(id uint) (*model.Test, error) {
	var test model.Test
	err := r.db.
		Preload("Sections", func(db *gorm.DB) *gorm.DB {
			return db.Order("sections.order_in_test ASC")
		}).
		Preload("Sections.Questions", func(db *gorm.DB) *gorm.DB {
			return db.Order("questions.order_in_section ASC")
		}).
		Preload("Sections.Questions.Options").
		First(&test, id).Error
	return &test, err
}

func (r *testRepository) FindAllWithSectionCount() ([]TestWithSectionCount, error) {
	var results []TestWithSectionCount
	err := r.db.Model(&model.Test{}).
		Select("tests.*, (SELECT COUNT(*) FROM sections WHERE sections.test_id = tests.id AND sections.deleted_at IS NULL) as section_count").
		Where("tests.deleted_at IS NULL").
		Order("tests.created_at DESC").
		Scan(&results).Error
	return results, err
}
