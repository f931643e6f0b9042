package service

import (
	"fmt"
	"math"
)

// MaxBand is the top of the reporting scale; bands move in 0.5 steps.
const MaxBand float64 = 9.0

type BandConverterService interface {
	// SectionBand converts a section's raw score against its maximum into a
	// band on the 0-9 scale, in 0.5 increments.
	SectionBand(rawScore, maxScore float64) (float64, error)
	// OverallBand averages section bands and snaps to the 0.5 grid.
	OverallBand(bands []float64) float64
}

type bandConverterService struct{}

func NewBandConverterService() BandConverterService {
	return &bandConverterService{}
}

// SectionBand maps the raw-score ratio onto bands through a piecewise-linear
// table approximating the published conversion charts: correct-answer ratios
// around 0.6 land at band 6, 0.75 at band 7, and so on.
func (s *bandConverterService) SectionBand(rawScore, maxScore float64) (float64, error) {
	if maxScore <= 0 {
		return 0, fmt.Errorf("max score must be positive, got %.2f", maxScore)
	}
	if rawScore < 0 || rawScore > maxScore {
		return 0, fmt.Errorf("raw score %.2f is out of valid range (0-%.2f)", rawScore, maxScore)
	}

	ratio := rawScore / maxScore

	var band float64
	switch {
	case ratio <= 0:
		band = 0
	case ratio <= 0.15:
		band = ratio / 0.15 * 3.0 // 0 - 3
	case ratio <= 0.30:
		band = 3.0 + (ratio-0.15)/0.15*1.0 // 3 - 4
	case ratio <= 0.45:
		band = 4.0 + (ratio-0.30)/0.15*1.0 // 4 - 5
	case ratio <= 0.60:
		band = 5.0 + (ratio-0.45)/0.15*1.0 // 5 - 6
	case ratio <= 0.75:
		band = 6.0 + (ratio-0.60)/0.15*1.0 // 6 - 7
	case ratio <= 0.87:
		band = 7.0 + (ratio-0.75)/0.12*1.0 // 7 - 8
	default:
		band = 8.0 + (ratio-0.87)/0.13*1.0 // 8 - 9
	}

	if band > MaxBand {
		band = MaxBand
	}
	return math.Round(band*2) / 2, nil
}

func (s *bandConverterService) OverallBand(bands []float64) float64 {
	if len(bands) == 0 {
		return 0
	}
	sum := 0.0
	for _, b := range bands {
		sum += b
	}
	avg := sum / float64(len(bands))
	if avg > MaxBand {
		avg = MaxBand
	}
	return math.Round(avg*2) / 2
}
