package grading

import (
	"testing"

	"github.com/Loikaaa/neplia-sub001/internal/model"
	"github.com/stretchr/testify/assert"
)

func strPtr(s string) *string { return &s }

func TestGradeMultipleChoice(t *testing.T) {
	g := NewGrader()
	q := model.Question{
		Kind:          model.KindMultipleChoice,
		CorrectAnswer: strPtr("B"),
		MaxScore:      1,
	}

	tests := []struct {
		name    string
		answer  string
		correct bool
	}{
		{"exact label", "B", true},
		{"case insensitive", "b", true},
		{"surrounding whitespace", " B ", true},
		{"wrong label", "C", false},
		{"empty answer", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := g.Grade(q, tt.answer)
			assert.Equal(t, tt.correct, res.Correct)
			assert.False(t, res.NeedsFeedback)
			if tt.correct {
				assert.Equal(t, 1.0, res.Points)
			} else {
				assert.Equal(t, 0.0, res.Points)
			}
		})
	}
}

func TestGradeFillInBlank(t *testing.T) {
	g := NewGrader()
	q := model.Question{
		Kind:          model.KindFillInBlank,
		CorrectAnswer: strPtr("coastal erosion"),
		MaxScore:      1,
	}

	tests := []struct {
		name    string
		answer  string
		correct bool
	}{
		{"exact", "coastal erosion", true},
		{"case and spacing", "  Coastal   EROSION ", true},
		{"stray punctuation", "coastal erosion.", true},
		{"one typo within tolerance", "costal erosion", true},
		{"too far off", "coastal errosionn", false},
		{"different answer", "rising sea levels", false},
		{"empty never matches", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := g.Grade(q, tt.answer)
			assert.Equal(t, tt.correct, res.Correct)
		})
	}

	t.Run("missing answer key grades as incorrect", func(t *testing.T) {
		res := g.Grade(model.Question{Kind: model.KindFillInBlank, MaxScore: 1}, "anything")
		assert.False(t, res.Correct)
	})

	t.Run("strict matching with zero tolerance", func(t *testing.T) {
		strict := NewGrader(WithMaxEditDistance(0))
		res := strict.Grade(q, "costal erosion")
		assert.False(t, res.Correct)
	})
}

func TestGradeSubjectiveKinds(t *testing.T) {
	g := NewGrader()
	for _, kind := range []model.QuestionKind{model.KindEssay, model.KindSpeakingPrompt} {
		t.Run(string(kind), func(t *testing.T) {
			res := g.Grade(model.Question{Kind: kind, MaxScore: 9}, "some long response")
			assert.True(t, res.NeedsFeedback)
			assert.False(t, res.Correct)
			assert.Equal(t, 0.0, res.Points)
			assert.Equal(t, 9.0, res.MaxPoints)
		})
	}
}

func TestNormalize(t *testing.T) {
	assert.Equal(t, "coastal erosion", normalize("  Coastal,   EROSION!  "))
	assert.Equal(t, "", normalize("?!,."))
}

func TestEditDistance(t *testing.T) {
	assert.Equal(t, 0, editDistance("erosion", "erosion"))
	assert.Equal(t, 1, editDistance("erosion", "errosion"))
	assert.Equal(t, 7, editDistance("", "erosion"))
}
