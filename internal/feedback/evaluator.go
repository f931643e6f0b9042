// Package feedback scores writing and speaking submissions. The evaluator is
// a deterministic stand-in for a real scoring service: it derives a band from
// word count and a handful of language-signal patterns, and simulates the
// latency a network-backed evaluator would have. The Service interface is the
// seam a real implementation would slot into.
package feedback

import (
	"context"
	"fmt"
	"math"
	"regexp"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
)

// Result is one evaluated submission. Score is a band on the 0–9 scale in 0.5
// increments.
type Result struct {
	Score       float64  `json:"score"`
	Feedback    string   `json:"feedback"`
	Suggestions []string `json:"suggestions"`
}

type Service interface {
	Evaluate(ctx context.Context, prompt, submission string, minWords int) (*Result, error)
}

// signal is a language feature the evaluator rewards when present.
type signal struct {
	name    string
	pattern *regexp.Regexp
	bonus   float64
	advice  string
}

var signals = []signal{
	{
		name:    "linking words",
		pattern: regexp.MustCompile(`(?i)\b(however|moreover|furthermore|in addition|on the other hand|therefore|consequently)\b`),
		bonus:   0.5,
		advice:  "Use linking words such as 'however' or 'moreover' to connect your ideas.",
	},
	{
		name:    "complex structures",
		pattern: regexp.MustCompile(`(?i)\b(although|despite|whereas|while|unless|provided that)\b`),
		bonus:   0.5,
		advice:  "Try complex sentences with 'although', 'despite' or 'whereas' to show grammatical range.",
	},
	{
		name:    "examples",
		pattern: regexp.MustCompile(`(?i)\b(for example|for instance|such as)\b`),
		bonus:   0.5,
		advice:  "Support your points with concrete examples ('for example', 'such as').",
	},
}

const (
	baseBand = 5.0
	maxBand  = 9.0
	// shortfallWeight scales the penalty for submissions under the word floor;
	// a completely empty submission loses the full weight.
	shortfallWeight = 3.0
)

type evaluator struct {
	delay time.Duration
}

// NewEvaluator builds the mock evaluator. delay simulates remote latency and
// may be zero (tests).
func NewEvaluator(delay time.Duration) Service {
	return &evaluator{delay: delay}
}

// Evaluate scores a submission against its prompt. Submissions under minWords
// are penalized proportionally to the shortfall, so any under-length
// submission scores strictly below its on-length counterpart.
func (e *evaluator) Evaluate(ctx context.Context, prompt, submission string, minWords int) (*Result, error) {
	if e.delay > 0 {
		select {
		case <-time.After(e.delay):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}

	words := countWords(submission)
	band := baseBand
	var suggestions []string

	for _, sig := range signals {
		if sig.pattern.MatchString(submission) {
			band += sig.bonus
		} else {
			suggestions = append(suggestions, sig.advice)
		}
	}

	var shortfall float64
	if minWords > 0 && words < minWords {
		shortfall = (1 - float64(words)/float64(minWords)) * shortfallWeight
		// at least one half-band off, so the penalty survives rounding
		if shortfall < 0.5 {
			shortfall = 0.5
		}
		band -= shortfall
		suggestions = append(suggestions,
			fmt.Sprintf("Your response has %d words; aim for at least %d to fully develop your answer.", words, minWords))
	}

	band = roundToHalf(clampBand(band))

	res := &Result{
		Score:       band,
		Feedback:    buildFeedback(words, minWords, shortfall, band),
		Suggestions: suggestions,
	}
	log.Debug().Int("words", words).Float64("band", band).Msg("Feedback evaluated")
	return res, nil
}

func buildFeedback(words, minWords int, shortfall, band float64) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Band %.1f. ", band)
	switch {
	case shortfall > 0:
		fmt.Fprintf(&b, "The response is under-length (%d of %d words), which limits how fully the task is addressed.", words, minWords)
	case band >= 7:
		b.WriteString("A well-developed response with good cohesion and grammatical range.")
	case band >= 5.5:
		b.WriteString("A reasonable response; clearer organization and more varied structures would lift the band.")
	default:
		b.WriteString("The response addresses the task only partially; develop your ideas further.")
	}
	return b.String()
}

func countWords(s string) int {
	return len(strings.Fields(s))
}

func clampBand(b float64) float64 {
	if b < 0 {
		return 0
	}
	if b > maxBand {
		return maxBand
	}
	return b
}

// roundToHalf snaps a band to the 0.5 grid.
func roundToHalf(b float64) float64 {
	return math.Round(b*2) / 2
}
