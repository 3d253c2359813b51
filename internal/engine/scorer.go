package engine

import (
	"fmt"

	apperrors "github.com/sportsmind/athlete-mind-meter/internal/errors"
)

// ScaleConfig describes the Likert scale submissions are collected on and
// the per-dimension ceiling the catalog is shaped for.
type ScaleConfig struct {
	Min          float64 `json:"min"`
	Max          float64 `json:"max"`
	DimensionMax float64 `json:"dimension_max"`
}

// DefaultScale is the 0-10 Likert scale with five items per dimension,
// which keeps every dimension sum inside [0, 50].
func DefaultScale() ScaleConfig {
	return ScaleConfig{Min: 0, Max: 10, DimensionMax: 50}
}

// Scorer turns a raw submission into a per-dimension quality vector.
// It is stateless and safe for concurrent use.
type Scorer struct {
	scale ScaleConfig
}

// NewScorer creates a scorer on the default 0-10 scale.
func NewScorer() *Scorer {
	return NewScorerWithScale(DefaultScale())
}

// NewScorerWithScale creates a scorer for a custom scale.
func NewScorerWithScale(scale ScaleConfig) *Scorer {
	return &Scorer{scale: scale}
}

// Score validates and aggregates a submission. Each answer is checked
// against its own bounds when the catalog set them, falling back to the
// scale; reverse-keyed items are flipped (min + max - value) on those
// same bounds, and values are summed per dimension. A dimension sum
// outside [0, DimensionMax] is a catalog shape problem and fails loudly
// rather than being clamped. Dimensions with no answers are reported in
// MissingDimensions but do not fail the call.
func (s *Scorer) Score(answers []Answer) (*ScoreReport, error) {
	if len(answers) == 0 {
		return nil, apperrors.NewValidationError("submission contains no answers")
	}

	var vector QualityVector
	answered := make(map[Dimension]bool, len(AllDimensions))

	for i, a := range answers {
		min, max := s.scale.Min, s.scale.Max
		if a.Max > a.Min {
			min, max = a.Min, a.Max
		}
		if a.Value < min || a.Value > max {
			return nil, apperrors.BuildValidationError(
				fmt.Sprintf("answer value %.2f is outside the %.0f-%.0f scale", a.Value, min, max),
				map[string]interface{}{
					"question_id":  a.QuestionID,
					"answer_index": i,
				})
		}
		if !IsValidDimension(a.Dimension) {
			return nil, apperrors.BuildValidationError(
				fmt.Sprintf("answer references unknown quality %q", a.Dimension),
				map[string]interface{}{"question_id": a.QuestionID})
		}

		value := a.Value
		if a.Reversed {
			value = min + max - value
		}

		vector.SetValue(a.Dimension, vector.Value(a.Dimension)+value)
		answered[a.Dimension] = true
	}

	for _, d := range AllDimensions {
		sum := vector.Value(d)
		if sum < 0 || sum > s.scale.DimensionMax {
			return nil, apperrors.NewConfigurationError(
				fmt.Sprintf("quality %q sums to %.2f, outside [0, %.0f]; question catalog does not fit the scale",
					d, sum, s.scale.DimensionMax), nil)
		}
	}

	report := &ScoreReport{
		Vector:             vector,
		SelfEsteemTotal:    vector.DomainTotal(DomainSelfEsteem),
		AthleteMindTotal:   vector.DomainTotal(DomainAthleteMind),
		SportsmanshipTotal: vector.DomainTotal(DomainSportsmanship),
		AnswerCount:        len(answers),
	}
	report.GrandTotal = report.SelfEsteemTotal + report.AthleteMindTotal + report.SportsmanshipTotal

	for _, d := range AllDimensions {
		if !answered[d] {
			report.MissingDimensions = append(report.MissingDimensions, d)
		}
	}

	return report, nil
}

// IsValidDimension reports whether d names one of the nineteen qualities.
func IsValidDimension(d Dimension) bool {
	for _, known := range AllDimensions {
		if known == d {
			return true
		}
	}
	return false
}
