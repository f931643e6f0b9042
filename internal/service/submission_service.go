package service

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/Loikaaa/neplia-sub001/internal/dto"
	"github.com/Loikaaa/neplia-sub001/internal/feedback"
	"github.com/Loikaaa/neplia-sub001/internal/grading"
	"github.com/Loikaaa/neplia-sub001/internal/model"
	"github.com/Loikaaa/neplia-sub001/internal/repository"
	"github.com/Loikaaa/neplia-sub001/internal/session"
	"github.com/jinzhu/copier"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

// evaluateTimeout bounds one feedback evaluation during scoring.
const evaluateTimeout = 30 * time.Second

// SubmissionService turns a completed session into a persisted, scored
// TestAttempt, and serves attempt reads.
type SubmissionService interface {
	SubmitSession(sess *session.Session) (*dto.TestAttemptDetailDTO, error)
	GetAttemptDetails(attemptID uint) (*dto.TestAttemptDetailDTO, error)
	GetUserAttemptsForTest(testID uint, userID *uint) ([]dto.TestAttemptSummaryDTO, error)
}

type submissionService struct {
	testRepo    repository.TestRepository
	attemptRepo repository.AttemptRepository
	answerRepo  repository.AnswerRepository
	grader      grading.Grader
	feedbackSvc feedback.Service
	converter   BandConverterService
	db          *gorm.DB
}

func NewSubmissionService(
	testRepo repository.TestRepository,
	attemptRepo repository.AttemptRepository,
	answerRepo repository.AnswerRepository,
	grader grading.Grader,
	feedbackSvc feedback.Service,
	converter BandConverterService,
	db *gorm.DB,
	manager *session.Manager,
) SubmissionService {
	s := &submissionService{
		testRepo:    testRepo,
		attemptRepo: attemptRepo,
		answerRepo:  answerRepo,
		grader:      grader,
		feedbackSvc: feedbackSvc,
		converter:   converter,
		db:          db,
	}
	// Enforced timers force-submit sessions with nobody on the request path;
	// the hook persists those attempts the same way an explicit submit does.
	manager.OnForcedSubmit(func(sess *session.Session) {
		if _, err := s.persistAttempt(sess); err != nil {
			log.Error().Err(err).Str("session_id", sess.ID()).Msg("Failed to persist force-submitted attempt")
		}
		manager.Remove(sess.ID())
	})
	return s
}

// SubmitSession fires the submission gate and persists the scored attempt.
// Submitting an already-completed session is a no-op that returns the
// previously persisted attempt.
func (s *submissionService) SubmitSession(sess *session.Session) (*dto.TestAttemptDetailDTO, error) {
	if !sess.Submit() {
		attempt, err := s.attemptRepo.FindBySessionIDWithDetails(sess.ID())
		if err != nil {
			return nil, fmt.Errorf("session %s already completed and no attempt found: %w", sess.ID(), err)
		}
		return s.toDetailDTO(attempt), nil
	}

	attempt, err := s.persistAttempt(sess)
	if err != nil {
		return nil, err
	}
	return s.toDetailDTO(attempt), nil
}

// answerScoringResult carries one goroutine's outcome back to the collector.
type answerScoringResult struct {
	answer model.Answer
	index  int
	err    error
}

// persistAttempt grades every recorded answer (objective ones against the
// answer key, essays and speaking prompts through the feedback evaluator, in
// parallel per answer), aggregates per-section raw scores into bands and
// stores the attempt.
func (s *submissionService) persistAttempt(sess *session.Session) (*model.TestAttempt, error) {
	test, err := s.testRepo.FindByIDWithSections(sess.TestID())
	if err != nil {
		log.Error().Err(err).Uint("testID", sess.TestID()).Msg("SubmitSession: test not found")
		return nil, fmt.Errorf("test not found with ID %d: %w", sess.TestID(), err)
	}

	questionMap := make(map[uint]model.Question)
	for _, sec := range test.Sections {
		for _, q := range sec.Questions {
			questionMap[q.ID] = q
		}
	}

	answers := sess.Answers()
	attempt := model.TestAttempt{
		TestID:      sess.TestID(),
		UserID:      sess.UserID(),
		SessionID:   sess.ID(),
		SubmittedAt: time.Now(),
		Status:      model.AttemptStatusPending,
	}

	// No precondition: a partial submission, even an empty one, is accepted.
	for questionID, value := range answers {
		if _, exists := questionMap[questionID]; !exists {
			log.Warn().Uint("questionID", questionID).Uint("testID", test.ID).Msg("SubmitSession: answer for a question not in this test, skipping")
			continue
		}
		attempt.Answers = append(attempt.Answers, model.Answer{
			QuestionID: questionID,
			UserAnswer: value,
		})
	}

	if err := s.db.Transaction(func(tx *gorm.DB) error {
		return tx.Create(&attempt).Error
	}); err != nil {
		log.Error().Err(err).Msg("SubmitSession: failed to create attempt record")
		return nil, fmt.Errorf("failed to create attempt record: %w", err)
	}

	attempt.Status = model.AttemptStatusScoring
	if err := s.attemptRepo.Update(&attempt); err != nil {
		log.Error().Err(err).Uint("attemptID", attempt.ID).Msg("SubmitSession: failed to mark attempt as scoring; continuing")
	}

	scored := s.scoreAnswers(&attempt, questionMap)

	scoredOK := true
	scoreBySection := make(map[uint]float64)
	for i := range attempt.Answers {
		if scored[i].err != nil {
			scoredOK = false
		}
		attempt.Answers[i] = scored[i].answer
		if attempt.Answers[i].Score != nil {
			q := questionMap[attempt.Answers[i].QuestionID]
			scoreBySection[q.SectionID] += *attempt.Answers[i].Score
		}
	}

	// Every section contributes a result, answered or not.
	totalRaw := 0.0
	var bands []float64
	for _, sec := range test.Sections {
		maxScore := 0.0
		for _, q := range sec.Questions {
			maxScore += q.MaxScore
		}
		raw := scoreBySection[sec.ID]
		band, bandErr := s.converter.SectionBand(raw, maxScore)
		if bandErr != nil {
			log.Warn().Err(bandErr).Uint("sectionID", sec.ID).Msg("SubmitSession: band conversion failed")
		}
		totalRaw += raw
		bands = append(bands, band)
		attempt.SectionResults = append(attempt.SectionResults, model.SectionResult{
			SectionID: sec.ID,
			Type:      sec.Type,
			RawScore:  raw,
			MaxScore:  maxScore,
			Band:      band,
		})
	}

	overall := s.converter.OverallBand(bands)
	attempt.RawScore = &totalRaw
	attempt.OverallBand = &overall
	if scoredOK {
		attempt.Status = model.AttemptStatusCompleted
	} else {
		attempt.Status = model.AttemptStatusCompletedWithErrors
	}

	if err := s.attemptRepo.Update(&attempt); err != nil {
		log.Error().Err(err).Uint("attemptID", attempt.ID).Msg("SubmitSession: failed to store final attempt state")
		return nil, fmt.Errorf("failed to store scored attempt: %w", err)
	}

	reloaded, err := s.attemptRepo.FindByIDWithDetails(attempt.ID)
	if err != nil {
		log.Warn().Err(err).Uint("attemptID", attempt.ID).Msg("SubmitSession: failed to reload attempt, returning in-memory state")
		attempt.Test = *test
		return &attempt, nil
	}
	return reloaded, nil
}

// scoreAnswers fans out one goroutine per answer, mirroring results back in
// input order.
func (s *submissionService) scoreAnswers(attempt *model.TestAttempt, questionMap map[uint]model.Question) []answerScoringResult {
	results := make([]answerScoringResult, len(attempt.Answers))
	resultsChan := make(chan answerScoringResult, len(attempt.Answers))

	var wg sync.WaitGroup
	for i := range attempt.Answers {
		wg.Add(1)
		go func(idx int) {
			defer wg.Done()
			answer := attempt.Answers[idx]
			question := questionMap[answer.QuestionID]
			res := s.scoreOne(&question, answer)
			resultsChan <- answerScoringResult{answer: res.answer, index: idx, err: res.err}
		}(i)
	}
	wg.Wait()
	close(resultsChan)

	for res := range resultsChan {
		results[res.index] = res
	}
	return results
}

func (s *submissionService) scoreOne(question *model.Question, answer model.Answer) answerScoringResult {
	graded := s.grader.Grade(*question, answer.UserAnswer)

	if graded.NeedsFeedback {
		ctx, cancel := context.WithTimeout(context.Background(), evaluateTimeout)
		defer cancel()

		fb, err := s.feedbackSvc.Evaluate(ctx, question.Text, answer.UserAnswer, question.MinWords)
		if err != nil {
			log.Error().Err(err).Uint("answerID", answer.ID).Msg("SubmitSession: feedback evaluation failed")
			answer.Feedback = "Feedback is unavailable for this answer. Please try again later."
			if updateErr := s.answerRepo.Update(&answer); updateErr != nil {
				return answerScoringResult{answer: answer, err: updateErr}
			}
			return answerScoringResult{answer: answer, err: err}
		}
		// Feedback bands scale onto the question's point budget.
		score := fb.Score / MaxBand * question.MaxScore
		answer.Score = &score
		answer.Feedback = fb.Feedback
		answer.Suggestions = fb.Suggestions
	} else {
		correct := graded.Correct
		points := graded.Points
		answer.Correct = &correct
		answer.Score = &points
	}

	if err := s.answerRepo.Update(&answer); err != nil {
		log.Error().Err(err).Uint("answerID", answer.ID).Msg("SubmitSession: failed to store scored answer")
		return answerScoringResult{answer: answer, err: err}
	}
	return answerScoringResult{answer: answer}
}

func (s *submissionService) GetAttemptDetails(attemptID uint) (*dto.TestAttemptDetailDTO, error) {
	attempt, err := s.attemptRepo.FindByIDWithDetails(attemptID)
	if err != nil {
		log.Warn().Err(err).Uint("attemptID", attemptID).Msg("GetAttemptDetails: attempt not found")
		return nil, fmt.Errorf("attempt not found with ID %d: %w", attemptID, err)
	}
	return s.toDetailDTO(attempt), nil
}

func (s *submissionService) GetUserAttemptsForTest(testID uint, userID *uint) ([]dto.TestAttemptSummaryDTO, error) {
	attempts, err := s.attemptRepo.FindAllByTestAndUser(testID, userID)
	if err != nil {
		log.Error().Err(err).Uint("testID", testID).Msg("GetUserAttemptsForTest: repository error")
		return nil, fmt.Errorf("error fetching attempts for test %d: %w", testID, err)
	}

	dtos := make([]dto.TestAttemptSummaryDTO, 0, len(attempts))
	for _, attempt := range attempts {
		var summary dto.TestAttemptSummaryDTO
		if err := copier.Copy(&summary, &attempt); err != nil {
			log.Error().Err(err).Uint("attemptID", attempt.ID).Msg("GetUserAttemptsForTest: copy to summary DTO failed")
			continue
		}
		dtos = append(dtos, summary)
	}
	return dtos, nil
}

func (s *submissionService) toDetailDTO(attempt *model.TestAttempt) *dto.TestAttemptDetailDTO {
	// Present answers in test order: section position first, then question
	// position within the section.
	sortAnswersInTestOrder(attempt.Answers, attempt.Test.Sections)

	var resp dto.TestAttemptDetailDTO
	if err := copier.Copy(&resp, attempt); err != nil {
		log.Error().Err(err).Uint("attemptID", attempt.ID).Msg("Failed to copy attempt to detail DTO")
	}
	if attempt.Test.ID != 0 {
		resp.TestTitle = attempt.Test.Title
	}
	return &resp
}

// sortAnswersInTestOrder sorts by the section's position in the test, then the
// question's position within the section. Section IDs carry no ordering
// guarantee; OrderInTest does.
func sortAnswersInTestOrder(answers []model.Answer, sections []model.Section) {
	orderOf := make(map[uint]int, len(sections))
	for _, sec := range sections {
		orderOf[sec.ID] = sec.OrderInTest
	}
	sort.SliceStable(answers, func(i, j int) bool {
		qi, qj := answers[i].Question, answers[j].Question
		oi, okI := orderOf[qi.SectionID]
		oj, okJ := orderOf[qj.SectionID]
		if okI && okJ && oi != oj {
			return oi < oj
		}
		if qi.SectionID != qj.SectionID {
			return qi.SectionID < qj.SectionID
		}
		return qi.OrderInSection < qj.OrderInSection
	})
}
