package service

import (
	"errors"
	"testing"

	"github.com/Loikaaa/neplia-sub001/internal/cache"
	"github.com/Loikaaa/neplia-sub001/internal/dto"
	"github.com/Loikaaa/neplia-sub001/internal/model"
	"github.com/Loikaaa/neplia-sub001/internal/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeTestRepo records the created test and serves it back on reload.
type fakeTestRepo struct {
	created *model.Test
}

func (r *fakeTestRepo) Create(test *model.Test) error {
	test.ID = 1
	r.created = test
	return nil
}

func (r *fakeTestRepo) FindByID(id uint) (*model.Test, error) {
	return r.created, nil
}

func (r *fakeTestRepo) FindByIDWithSections(id uint) (*model.Test, error) {
	return r.created, nil
}

func (r *fakeTestRepo) FindAllWithSectionCount() ([]repository.TestWithSectionCount, error) {
	return nil, nil
}

// reloadFailingRepo creates fine but cannot serve the test back.
type reloadFailingRepo struct {
	fakeTestRepo
}

func (r *reloadFailingRepo) FindByIDWithSections(id uint) (*model.Test, error) {
	return nil, errors.New("connection reset")
}

func strPtr(s string) *string { return &s }

func validCreateRequest() dto.TestCreateDTO {
	return dto.TestCreateDTO{
		Title:       "IELTS Academic Mock 1",
		Description: "Full four-section mock",
		Sections: []dto.SectionCreateDTO{
			{
				Title:           "Listening",
				Type:            "listening",
				OrderInTest:     1,
				DurationSeconds: 1800,
				AudioURL:        strPtr("https://cdn.example.com/audio/l1.mp3"),
				Questions: []dto.QuestionCreateDTO{
					{
						Text:           "What does the speaker recommend?",
						Kind:           "multiple_choice",
						OrderInSection: 1,
						MaxScore:       1,
						CorrectAnswer:  strPtr("B"),
						Options: []dto.OptionCreateDTO{
							{Label: "A", Text: "The bus"},
							{Label: "B", Text: "The train"},
						},
					},
					{
						Text:           "The lecture is mainly about ____.",
						Kind:           "fill_in_blank",
						OrderInSection: 2,
						MaxScore:       1,
						CorrectAnswer:  strPtr("coastal erosion"),
					},
				},
			},
			{
				Title:           "Writing",
				Type:            "writing",
				OrderInTest:     2,
				DurationSeconds: 3600,
				Questions: []dto.QuestionCreateDTO{
					{
						Text:           "Some people think cities should invest in public transport. Discuss.",
						Kind:           "essay",
						OrderInSection: 1,
						MaxScore:       9,
						MinWords:       250,
					},
				},
			},
		},
	}
}

func TestCreateTest(t *testing.T) {
	t.Run("creates a valid test", func(t *testing.T) {
		repo := &fakeTestRepo{}
		svc := NewAdminTestService(repo, cache.NewNoop())

		resp, err := svc.CreateTest(validCreateRequest())
		require.NoError(t, err)
		require.NotNil(t, resp)
		assert.Equal(t, "IELTS Academic Mock 1", resp.Title)

		require.NotNil(t, repo.created)
		require.Len(t, repo.created.Sections, 2)
		assert.Equal(t, model.SectionListening, repo.created.Sections[0].Type)
		require.Len(t, repo.created.Sections[0].Questions, 2)
		assert.Len(t, repo.created.Sections[0].Questions[0].Options, 2)
	})

	t.Run("serves the in-memory model when the reload fails", func(t *testing.T) {
		svc := NewAdminTestService(&reloadFailingRepo{}, cache.NewNoop())

		resp, err := svc.CreateTest(validCreateRequest())
		require.NoError(t, err)
		require.NotNil(t, resp)
		assert.Equal(t, "IELTS Academic Mock 1", resp.Title)
		assert.Len(t, resp.Sections, 2)
	})

	t.Run("rejects duplicate section order", func(t *testing.T) {
		req := validCreateRequest()
		req.Sections[1].OrderInTest = 1

		_, err := NewAdminTestService(&fakeTestRepo{}, cache.NewNoop()).CreateTest(req)
		assert.ErrorContains(t, err, "duplicate order_in_test")
	})

	t.Run("rejects listening section without audio", func(t *testing.T) {
		req := validCreateRequest()
		req.Sections[0].AudioURL = nil

		_, err := NewAdminTestService(&fakeTestRepo{}, cache.NewNoop()).CreateTest(req)
		assert.ErrorContains(t, err, "requires audio_url")
	})

	t.Run("rejects unknown section type", func(t *testing.T) {
		req := validCreateRequest()
		req.Sections[0].Type = "grammar"

		_, err := NewAdminTestService(&fakeTestRepo{}, cache.NewNoop()).CreateTest(req)
		assert.ErrorContains(t, err, "unknown section type")
	})

	t.Run("rejects multiple choice whose key matches no option", func(t *testing.T) {
		req := validCreateRequest()
		req.Sections[0].Questions[0].CorrectAnswer = strPtr("D")

		_, err := NewAdminTestService(&fakeTestRepo{}, cache.NewNoop()).CreateTest(req)
		assert.ErrorContains(t, err, "matches no option label")
	})

	t.Run("rejects multiple choice with a single option", func(t *testing.T) {
		req := validCreateRequest()
		req.Sections[0].Questions[0].Options = req.Sections[0].Questions[0].Options[:1]

		_, err := NewAdminTestService(&fakeTestRepo{}, cache.NewNoop()).CreateTest(req)
		assert.ErrorContains(t, err, "at least 2 options")
	})

	t.Run("rejects essay outside a writing section", func(t *testing.T) {
		req := validCreateRequest()
		req.Sections[0].Questions[1] = dto.QuestionCreateDTO{
			Text:           "Discuss the chart.",
			Kind:           "essay",
			OrderInSection: 2,
			MaxScore:       9,
			MinWords:       150,
		}

		_, err := NewAdminTestService(&fakeTestRepo{}, cache.NewNoop()).CreateTest(req)
		assert.ErrorContains(t, err, "not allowed in listening section")
	})

	t.Run("rejects essay without a word floor", func(t *testing.T) {
		req := validCreateRequest()
		req.Sections[1].Questions[0].MinWords = 0

		_, err := NewAdminTestService(&fakeTestRepo{}, cache.NewNoop()).CreateTest(req)
		assert.ErrorContains(t, err, "requires min_words")
	})

	t.Run("rejects essay carrying an answer key", func(t *testing.T) {
		req := validCreateRequest()
		req.Sections[1].Questions[0].CorrectAnswer = strPtr("model answer")

		_, err := NewAdminTestService(&fakeTestRepo{}, cache.NewNoop()).CreateTest(req)
		assert.ErrorContains(t, err, "must not carry an answer key")
	})
}
