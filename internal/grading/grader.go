// Package grading auto-grades objective answers (multiple choice and
// fill-in-blank) against a question's answer key. Subjective kinds are routed
// to the feedback evaluator instead and reported here as not auto-gradable.
package grading

import (
	"strings"

	"github.com/Loikaaa/neplia-sub001/internal/model"
)

// Result is the outcome of grading a single answer.
type Result struct {
	Correct       bool
	Points        float64
	MaxPoints     float64
	NeedsFeedback bool // true for essay/speaking: use the feedback evaluator
}

type Grader interface {
	Grade(q model.Question, answer string) Result
}

type Option func(*grader)

// WithMaxEditDistance sets the fuzzy tolerance for fill-in-blank matching.
func WithMaxEditDistance(n int) Option {
	return func(g *grader) { g.maxEditDistance = n }
}

type grader struct {
	maxEditDistance int
}

func NewGrader(opts ...Option) Grader {
	g := &grader{maxEditDistance: 1}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

func (g *grader) Grade(q model.Question, answer string) Result {
	res := Result{MaxPoints: q.MaxScore}

	switch q.Kind {
	case model.KindMultipleChoice:
		if q.CorrectAnswer != nil && strings.EqualFold(strings.TrimSpace(answer), strings.TrimSpace(*q.CorrectAnswer)) {
			res.Correct = true
			res.Points = q.MaxScore
		}
	case model.KindFillInBlank:
		if q.CorrectAnswer == nil {
			return res
		}
		got := normalize(answer)
		want := normalize(*q.CorrectAnswer)
		if got == "" {
			return res
		}
		if got == want || editDistance(got, want) <= g.maxEditDistance {
			res.Correct = true
			res.Points = q.MaxScore
		}
	case model.KindEssay, model.KindSpeakingPrompt:
		res.NeedsFeedback = true
	}
	return res
}
