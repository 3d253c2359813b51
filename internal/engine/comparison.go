package engine

import (
	"fmt"
	"math"
	"sort"
	"strings"

	apperrors "github.com/sportsmind/athlete-mind-meter/internal/errors"
)

const (
	// MinParticipants and MaxParticipants bound a comparison group.
	// Only the first two participants are diffed; the rest appear in
	// the participant summaries for display.
	MinParticipants = 2
	MaxParticipants = 4

	// TopGapCount is how many ranked differences get guidance attached.
	TopGapCount = 5

	// interactionGapCount is how many top gaps feed the interaction lists.
	interactionGapCount = 3

	// RiskyGapThreshold is the point gap past which a quality difference
	// is called out as a likely source of friction.
	RiskyGapThreshold = 20.0

	// maxInteractionLines caps each interaction list.
	maxInteractionLines = 5
)

// Participant pairs a display name with a scored quality vector.
type Participant struct {
	Name   string        `json:"name"`
	Vector QualityVector `json:"scores"`
}

// SimilarityFunc scores how alike two quality vectors are on a 0-100
// scale. 100 means identical.
type SimilarityFunc func(a, b *QualityVector) float64

// MeanGapSimilarity is the default similarity measure: 100 minus the mean
// per-quality gap expressed as a percentage of the dimension ceiling,
// clamped to [0, 100].
func MeanGapSimilarity(dimensionMax float64) SimilarityFunc {
	return func(a, b *QualityVector) float64 {
		if dimensionMax <= 0 {
			return 0
		}
		sum := 0.0
		for _, d := range AllDimensions {
			sum += math.Abs(a.Value(d)-b.Value(d)) / dimensionMax * 100
		}
		similarity := 100 - sum/float64(len(AllDimensions))
		return math.Max(0, math.Min(100, similarity))
	}
}

// ComparisonEngine produces pairwise quality comparisons. The similarity
// measure is pluggable, and an optional classifier adds each
// participant's archetype leaning to the summaries and narrative.
type ComparisonEngine struct {
	similarity SimilarityFunc
	classifier *Classifier
}

// NewComparisonEngine builds an engine with the default mean-gap
// similarity on the default scale and no archetype leanings.
func NewComparisonEngine() *ComparisonEngine {
	return NewComparisonEngineWithSimilarity(MeanGapSimilarity(DefaultScale().DimensionMax))
}

// NewComparisonEngineWithSimilarity builds an engine with a custom
// similarity measure.
func NewComparisonEngineWithSimilarity(fn SimilarityFunc) *ComparisonEngine {
	if fn == nil {
		fn = MeanGapSimilarity(DefaultScale().DimensionMax)
	}
	return &ComparisonEngine{similarity: fn}
}

// NewComparisonEngineWithClassifier builds an engine with the default
// similarity measure and archetype leanings from the given classifier.
func NewComparisonEngineWithClassifier(classifier *Classifier) *ComparisonEngine {
	e := NewComparisonEngine()
	e.classifier = classifier
	return e
}

// Compare diffs the first two participants across every quality. The
// report ranks all differences by absolute gap, largest first, with ties
// keeping canonical quality order, and carries a summary for every
// participant including any past the diffed pair. The narrative fields
// key on each side's archetype leaning and on the assessment area holding
// the widest gap.
func (e *ComparisonEngine) Compare(participants []Participant) (*ComparisonReport, error) {
	if len(participants) < MinParticipants || len(participants) > MaxParticipants {
		return nil, apperrors.NewInvalidArgumentError(
			fmt.Sprintf("comparison needs between %d and %d participants, got %d",
				MinParticipants, MaxParticipants, len(participants)),
			map[string]interface{}{"participant_count": len(participants)})
	}

	first, second := participants[0], participants[1]

	diffs := make([]QualityDifference, 0, len(AllDimensions))
	for _, d := range AllDimensions {
		a := first.Vector.Value(d)
		b := second.Vector.Value(d)
		diffs = append(diffs, QualityDifference{
			Dimension:   d,
			Label:       DimensionLabels[d],
			Difference:  a - b,
			FirstValue:  a,
			SecondValue: b,
		})
	}

	sort.SliceStable(diffs, func(i, j int) bool {
		return math.Abs(diffs[i].Difference) > math.Abs(diffs[j].Difference)
	})

	topN := TopGapCount
	if topN > len(diffs) {
		topN = len(diffs)
	}
	topGaps := make([]QualityDifference, topN)
	copy(topGaps, diffs[:topN])

	guidance := make([]string, 0, topN)
	for _, gap := range topGaps {
		guidance = append(guidance, guidanceFor(first.Name, second.Name, gap))
	}

	summaries := make([]ParticipantSummary, 0, len(participants))
	for _, p := range participants {
		summaries = append(summaries, e.summarize(p))
	}

	return &ComparisonReport{
		Participants:          summaries,
		Similarity:            e.similarity(&first.Vector, &second.Vector),
		Differences:           diffs,
		TopGaps:               topGaps,
		Summary:               e.mutualUnderstanding(summaries[0], summaries[1], topGaps[0]),
		EffectiveInteractions: effectiveInteractions(first.Name, second.Name, topGaps),
		RiskyInteractions:     riskyInteractions(topGaps),
		Guidance:              guidance,
	}, nil
}

// summarize builds the display view of one participant: per-domain totals
// and per-dimension averages, plus the archetype leaning when a
// classifier is wired in.
func (e *ComparisonEngine) summarize(p Participant) ParticipantSummary {
	summary := ParticipantSummary{
		Name:           p.Name,
		DomainTotals:   make(map[Domain]float64, 3),
		DomainAverages: make(map[Domain]float64, 3),
		GrandTotal:     p.Vector.GrandTotal(),
	}

	counts := make(map[Domain]int, 3)
	for _, d := range AllDimensions {
		counts[DomainOf(d)]++
	}
	for domain, n := range counts {
		total := p.Vector.DomainTotal(domain)
		summary.DomainTotals[domain] = total
		summary.DomainAverages[domain] = total / float64(n)
	}

	if e.classifier != nil {
		if result, err := e.classifier.Classify(&p.Vector); err == nil {
			summary.Archetype = result.Archetype
		}
	}

	return summary
}

// mutualUnderstanding narrates the pairing: who is being compared, which
// way each leans, and where the widest gap sits.
func (e *ComparisonEngine) mutualUnderstanding(first, second ParticipantSummary, widest QualityDifference) string {
	var b strings.Builder

	if first.Archetype != "" && second.Archetype != "" {
		fmt.Fprintf(&b, "%s leans %s while %s leans %s. ",
			first.Name, first.Archetype, second.Name, second.Archetype)
	} else {
		fmt.Fprintf(&b, "Comparison between %s and %s. ", first.Name, second.Name)
	}

	domain := DomainOf(widest.Dimension)
	fmt.Fprintf(&b, "The widest gap sits in the %s area: %s differs by %.1f points. ",
		DomainLabels[domain], widest.Label, math.Abs(widest.Difference))

	b.WriteString("Understanding this difference and building on each other's strengths " +
		"makes for better communication and cooperation.")

	return b.String()
}

// effectiveInteractions lists ways the pair can use their gaps well: the
// stronger side leads on each wide quality, plus standing habits that
// work regardless of the gap profile.
func effectiveInteractions(firstName, secondName string, topGaps []QualityDifference) []string {
	lines := make([]string, 0, maxInteractionLines)

	n := interactionGapCount
	if n > len(topGaps) {
		n = len(topGaps)
	}
	for _, gap := range topGaps[:n] {
		switch {
		case gap.Difference > 0:
			lines = append(lines, fmt.Sprintf(
				"%s scores higher on %s and can take the lead there, sharing how they approach it.",
				firstName, gap.Label))
		case gap.Difference < 0:
			lines = append(lines, fmt.Sprintf(
				"%s scores higher on %s and can take the lead there, sharing how they approach it.",
				secondName, gap.Label))
		default:
			lines = append(lines, fmt.Sprintf(
				"%s is evenly matched; use it as common ground.", gap.Label))
		}
	}

	lines = append(lines,
		"Hold regular one-on-one conversations to deepen mutual understanding.",
		"Acknowledge each other's strengths openly and often.")

	if len(lines) > maxInteractionLines {
		lines = lines[:maxInteractionLines]
	}
	return lines
}

// riskyInteractions lists patterns to avoid: qualities whose gap is wide
// enough to breed friction, plus standing cautions.
func riskyInteractions(topGaps []QualityDifference) []string {
	lines := make([]string, 0, maxInteractionLines)

	n := interactionGapCount
	if n > len(topGaps) {
		n = len(topGaps)
	}
	for _, gap := range topGaps[:n] {
		if math.Abs(gap.Difference) > RiskyGapThreshold {
			lines = append(lines, fmt.Sprintf(
				"The gap on %s is wide enough to cause clashing values; name it early rather than letting it fester.",
				gap.Label))
		}
	}

	lines = append(lines,
		"Avoid one-sided instructions or criticism.",
		"Do not point at the other's weaker qualities as flaws.",
		"Treat differing values as differences, not mistakes.")

	if len(lines) > maxInteractionLines {
		lines = lines[:maxInteractionLines]
	}
	return lines
}

func guidanceFor(firstName, secondName string, gap QualityDifference) string {
	switch {
	case gap.Difference > 0:
		return fmt.Sprintf("%s scores %.1f higher on %s. %s could close the gap by studying how %s approaches it.",
			firstName, gap.Difference, gap.Label, secondName, firstName)
	case gap.Difference < 0:
		return fmt.Sprintf("%s scores %.1f higher on %s. %s could close the gap by studying how %s approaches it.",
			secondName, -gap.Difference, gap.Label, firstName, secondName)
	default:
		return fmt.Sprintf("%s and %s are evenly matched on %s.", firstName, secondName, gap.Label)
	}
}
