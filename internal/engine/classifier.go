package engine

import (
	"fmt"
	"sort"

	apperrors "github.com/sportsmind/athlete-mind-meter/internal/errors"
)

// AffinityTransform turns a profile's weighted score into a percentage.
// raw is the weighted sum of quality values; maxRaw is the same sum with
// every weighted quality at the dimension ceiling.
type AffinityTransform func(raw, maxRaw float64) float64

// PercentOfMax is the default transform: the weighted score as a share of
// the maximum score the profile allows, on a 0-100 scale. Each archetype
// is scored independently, so percentages do not sum to 100 across
// profiles.
func PercentOfMax(raw, maxRaw float64) float64 {
	if maxRaw <= 0 {
		return 0
	}
	return raw / maxRaw * 100
}

// Classifier matches a quality vector against the archetype profiles.
// Profiles and the transform are fixed at construction; the classifier is
// safe for concurrent use.
type Classifier struct {
	profiles  []ArchetypeProfile
	maxRaws   []float64
	transform AffinityTransform
}

// NewClassifier validates the profile set and builds a classifier with the
// PercentOfMax transform on the default scale. Every profile needs a named
// archetype and at least one positive weight; duplicate archetypes are
// rejected.
func NewClassifier(profiles []ArchetypeProfile) (*Classifier, error) {
	return NewClassifierWithTransform(profiles, PercentOfMax)
}

// NewClassifierWithTransform builds a classifier with a custom affinity
// transform.
func NewClassifierWithTransform(profiles []ArchetypeProfile, transform AffinityTransform) (*Classifier, error) {
	if len(profiles) == 0 {
		return nil, apperrors.NewConfigurationError("no archetype profiles configured", nil)
	}
	if transform == nil {
		transform = PercentOfMax
	}

	dimensionMax := DefaultScale().DimensionMax
	maxRaws := make([]float64, len(profiles))
	seen := make(map[Archetype]bool, len(profiles))
	for i, p := range profiles {
		if p.Archetype == "" {
			return nil, apperrors.NewConfigurationError("archetype profile missing a name", nil)
		}
		if seen[p.Archetype] {
			return nil, apperrors.NewConfigurationError(
				fmt.Sprintf("duplicate archetype profile %q", p.Archetype), nil)
		}
		seen[p.Archetype] = true

		weightSum := 0.0
		positive := false
		for d, w := range p.Weights {
			if !IsValidDimension(d) {
				return nil, apperrors.NewConfigurationError(
					fmt.Sprintf("archetype %q weights unknown quality %q", p.Archetype, d), nil)
			}
			if w < 0 {
				return nil, apperrors.NewConfigurationError(
					fmt.Sprintf("archetype %q has negative weight for %q", p.Archetype, d), nil)
			}
			if w > 0 {
				positive = true
			}
			weightSum += w
		}
		if !positive {
			return nil, apperrors.NewConfigurationError(
				fmt.Sprintf("archetype %q has no positive weights", p.Archetype), nil)
		}
		maxRaws[i] = weightSum * dimensionMax
	}

	return &Classifier{profiles: profiles, maxRaws: maxRaws, transform: transform}, nil
}

// Classify scores the vector against every profile and returns the ranked
// result. Raw affinity is the weighted sum of quality values, accumulated
// in canonical dimension order so repeated calls on the same vector are
// bit-identical; each profile's percentage comes from the transform,
// independently of the other profiles. Ties keep profile declaration
// order, so the earliest-declared archetype wins an exact tie.
func (c *Classifier) Classify(vector *QualityVector) (*Classification, error) {
	if vector == nil {
		return nil, apperrors.NewValidationError("quality vector is required")
	}

	scores := make([]ArchetypeScore, 0, len(c.profiles))
	for i, p := range c.profiles {
		raw := 0.0
		for _, d := range AllDimensions {
			if w, ok := p.Weights[d]; ok {
				raw += w * vector.Value(d)
			}
		}
		scores = append(scores, ArchetypeScore{
			Archetype:  p.Archetype,
			Raw:        raw,
			Percentage: c.transform(raw, c.maxRaws[i]),
		})
	}

	sort.SliceStable(scores, func(i, j int) bool {
		return scores[i].Percentage > scores[j].Percentage
	})

	winner := scores[0].Archetype
	result := &Classification{
		Archetype: winner,
		Scores:    scores,
	}
	for _, p := range c.profiles {
		if p.Archetype == winner {
			result.Label = p.Label
			result.Description = p.Description
			break
		}
	}

	return result, nil
}
