package service

import (
	"context"
	"fmt"

	"github.com/Loikaaa/neplia-sub001/internal/cache"
	"github.com/Loikaaa/neplia-sub001/internal/dto"
	"github.com/Loikaaa/neplia-sub001/internal/model"
	"github.com/Loikaaa/neplia-sub001/internal/repository"
	"github.com/jinzhu/copier"
	"github.com/rs/zerolog/log"
)

type AdminTestService interface {
	CreateTest(req dto.TestCreateDTO) (*dto.TestResponseDTO, error)
}

type adminTestService struct {
	testRepo repository.TestRepository
	cache    cache.Store
}

func NewAdminTestService(testRepo repository.TestRepository, cacheStore cache.Store) AdminTestService {
	return &adminTestService{testRepo: testRepo, cache: cacheStore}
}

func (s *adminTestService) CreateTest(req dto.TestCreateDTO) (*dto.TestResponseDTO, error) {
	sectionOrders := make(map[int]bool)
	var sectionsToCreate []model.Section

	for _, secDto := range req.Sections {
		if sectionOrders[secDto.OrderInTest] {
			return nil, fmt.Errorf("duplicate order_in_test %d found in sections", secDto.OrderInTest)
		}
		sectionOrders[secDto.OrderInTest] = true

		secType := model.SectionType(secDto.Type)
		if !secType.Valid() {
			return nil, fmt.Errorf("unknown section type %q", secDto.Type)
		}
		if secType == model.SectionListening && (secDto.AudioURL == nil || *secDto.AudioURL == "") {
			return nil, fmt.Errorf("listening section '%s' requires audio_url", secDto.Title)
		}

		questions, err := buildSectionQuestions(secType, secDto)
		if err != nil {
			return nil, err
		}

		sectionsToCreate = append(sectionsToCreate, model.Section{
			Title:           secDto.Title,
			Type:            secType,
			OrderInTest:     secDto.OrderInTest,
			DurationSeconds: secDto.DurationSeconds,
			AudioURL:        secDto.AudioURL,
			Questions:       questions,
		})
	}

	testModel := model.Test{
		Title:       req.Title,
		Description: req.Description,
		Sections:    sectionsToCreate,
	}

	if err := s.testRepo.Create(&testModel); err != nil {
		log.Error().Err(err).Msg("Failed to create test in database")
		return nil, fmt.Errorf("database error creating test: %w", err)
	}

	// New content invalidates the catalog cache.
	if err := s.cache.Delete(context.Background(), cache.KeyTestCatalog, cache.KeyTestDetail(testModel.ID)); err != nil {
		log.Warn().Err(err).Msg("Failed to invalidate test catalog cache")
	}

	createdTest, err := s.testRepo.FindByIDWithSections(testModel.ID)
	if err != nil {
		log.Error().Err(err).Uint("testID", testModel.ID).Msg("Failed to reload newly created test for response")
		var fallbackResp dto.TestResponseDTO
		if copyErr := copier.Copy(&fallbackResp, &testModel); copyErr != nil {
			log.Error().Err(copyErr).Msg("Failed to copy in-memory Test model to TestResponseDTO")
			return nil, fmt.Errorf("error preparing response data: %w", copyErr)
		}
		return &fallbackResp, nil
	}

	var resp dto.TestResponseDTO
	if err := copier.Copy(&resp, createdTest); err != nil {
		log.Error().Err(err).Msg("Failed to copy created Test model to TestResponseDTO")
		return nil, fmt.Errorf("error preparing response data: %w", err)
	}
	return &resp, nil
}

// buildSectionQuestions validates question kinds against the section type and
// assembles the models. Objective sections carry answer keys; writing and
// speaking carry word floors for the feedback evaluator.
func buildSectionQuestions(secType model.SectionType, secDto dto.SectionCreateDTO) ([]model.Question, error) {
	questionOrders := make(map[int]bool)
	var questions []model.Question

	for _, qDto := range secDto.Questions {
		if questionOrders[qDto.OrderInSection] {
			return nil, fmt.Errorf("duplicate order_in_section %d in section '%s'", qDto.OrderInSection, secDto.Title)
		}
		questionOrders[qDto.OrderInSection] = true

		kind := model.QuestionKind(qDto.Kind)
		if !kind.Valid() {
			return nil, fmt.Errorf("unknown question kind %q", qDto.Kind)
		}
		if err := validateKindForSection(secType, kind, secDto.Title); err != nil {
			return nil, err
		}

		question := model.Question{
			Text:           qDto.Text,
			Kind:           kind,
			OrderInSection: qDto.OrderInSection,
			CorrectAnswer:  qDto.CorrectAnswer,
			MinWords:       qDto.MinWords,
			MaxScore:       qDto.MaxScore,
		}

		switch kind {
		case model.KindMultipleChoice:
			if len(qDto.Options) < 2 {
				return nil, fmt.Errorf("multiple-choice question (order %d) needs at least 2 options", qDto.OrderInSection)
			}
			if qDto.CorrectAnswer == nil || *qDto.CorrectAnswer == "" {
				return nil, fmt.Errorf("multiple-choice question (order %d) requires correct_answer", qDto.OrderInSection)
			}
			labelFound := false
			for _, optDto := range qDto.Options {
				question.Options = append(question.Options, model.Option{Label: optDto.Label, Text: optDto.Text})
				if optDto.Label == *qDto.CorrectAnswer {
					labelFound = true
				}
			}
			if !labelFound {
				return nil, fmt.Errorf("correct_answer %q of question (order %d) matches no option label", *qDto.CorrectAnswer, qDto.OrderInSection)
			}
		case model.KindFillInBlank:
			if qDto.CorrectAnswer == nil || *qDto.CorrectAnswer == "" {
				return nil, fmt.Errorf("fill-in-blank question (order %d) requires correct_answer", qDto.OrderInSection)
			}
		case model.KindEssay, model.KindSpeakingPrompt:
			if qDto.MinWords <= 0 {
				return nil, fmt.Errorf("question (order %d) of kind %s requires min_words", qDto.OrderInSection, kind)
			}
			if qDto.CorrectAnswer != nil {
				return nil, fmt.Errorf("question (order %d) of kind %s must not carry an answer key", qDto.OrderInSection, kind)
			}
		}

		questions = append(questions, question)
	}
	return questions, nil
}

func validateKindForSection(secType model.SectionType, kind model.QuestionKind, sectionTitle string) error {
	var ok bool
	switch secType {
	case model.SectionListening, model.SectionReading:
		ok = kind == model.KindMultipleChoice || kind == model.KindFillInBlank
	case model.SectionWriting:
		ok = kind == model.KindEssay
	case model.SectionSpeaking:
		ok = kind == model.KindSpeakingPrompt
	}
	if !ok {
		return fmt.Errorf("question kind %s is not allowed in %s section '%s'", kind, secType, sectionTitle)
	}
	return nil
}
