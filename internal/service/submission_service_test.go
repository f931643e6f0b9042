package service

import (
	"testing"

	"github.com/Loikaaa/neplia-sub001/internal/model"
	"github.com/stretchr/testify/assert"
)

func TestSortAnswersInTestOrder(t *testing.T) {
	// Section IDs deliberately run against the test sequence: the listening
	// section was inserted last and got the highest ID.
	sections := []model.Section{
		{ID: 9, OrderInTest: 1, Type: model.SectionListening},
		{ID: 2, OrderInTest: 2, Type: model.SectionReading},
		{ID: 5, OrderInTest: 3, Type: model.SectionWriting},
	}

	t.Run("orders by section position, not section id", func(t *testing.T) {
		answers := []model.Answer{
			{QuestionID: 30, Question: model.Question{ID: 30, SectionID: 5, OrderInSection: 1}},
			{QuestionID: 20, Question: model.Question{ID: 20, SectionID: 2, OrderInSection: 1}},
			{QuestionID: 12, Question: model.Question{ID: 12, SectionID: 9, OrderInSection: 2}},
			{QuestionID: 11, Question: model.Question{ID: 11, SectionID: 9, OrderInSection: 1}},
		}

		sortAnswersInTestOrder(answers, sections)

		got := make([]uint, 0, len(answers))
		for _, a := range answers {
			got = append(got, a.QuestionID)
		}
		assert.Equal(t, []uint{11, 12, 20, 30}, got)
	})

	t.Run("falls back to section id when sections are not loaded", func(t *testing.T) {
		answers := []model.Answer{
			{QuestionID: 30, Question: model.Question{ID: 30, SectionID: 5, OrderInSection: 1}},
			{QuestionID: 11, Question: model.Question{ID: 11, SectionID: 2, OrderInSection: 1}},
		}

		sortAnswersInTestOrder(answers, nil)

		assert.Equal(t, uint(11), answers[0].QuestionID)
		assert.Equal(t, uint(30), answers[1].QuestionID)
	})
}
