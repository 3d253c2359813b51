package engine

import (
	"fmt"
	"sort"
)

// athleteMindDimensions are the ten qualities the strength/weakness
// ranking draws from.
var athleteMindDimensions = []Dimension{
	Introspection, SelfControl, Devotion, Intuition, Sensitivity,
	Steadiness, Comparison, ResultFocus, Assertion, Commitment,
}

// Insight is the narrative layer produced on top of a score report.
type Insight struct {
	SelfEsteemAnalysis     string   `json:"self_esteem_analysis"`
	SelfEsteemImprovements []string `json:"self_esteem_improvements"`
	SportsmanshipBalance   string   `json:"sportsmanship_balance"`
	Strengths              []string `json:"strengths"`
	Weaknesses             []string `json:"weaknesses"`
}

// InsightGenerator renders human-readable analysis text from a quality
// vector. Stateless, safe for concurrent use.
type InsightGenerator struct{}

// NewInsightGenerator creates an insight generator.
func NewInsightGenerator() *InsightGenerator {
	return &InsightGenerator{}
}

// Generate builds the full narrative set for one scored assessment.
func (g *InsightGenerator) Generate(vector *QualityVector) *Insight {
	strengths, weaknesses := g.strengthsAndWeaknesses(vector)
	return &Insight{
		SelfEsteemAnalysis:     g.selfEsteemAnalysis(vector),
		SelfEsteemImprovements: g.selfEsteemImprovements(vector),
		SportsmanshipBalance:   g.sportsmanshipBalance(vector),
		Strengths:              strengths,
		Weaknesses:             weaknesses,
	}
}

// strengthsAndWeaknesses ranks the ten athlete-mind qualities and returns
// the top five as strengths and the bottom five as weaknesses.
func (g *InsightGenerator) strengthsAndWeaknesses(vector *QualityVector) ([]string, []string) {
	ranked := make([]Dimension, len(athleteMindDimensions))
	copy(ranked, athleteMindDimensions)
	sort.SliceStable(ranked, func(i, j int) bool {
		return vector.Value(ranked[i]) > vector.Value(ranked[j])
	})

	strengths := make([]string, 0, 5)
	for _, d := range ranked[:5] {
		strengths = append(strengths, DimensionLabels[d])
	}
	weaknesses := make([]string, 0, 5)
	for _, d := range ranked[len(ranked)-5:] {
		weaknesses = append(weaknesses, DimensionLabels[d])
	}
	return strengths, weaknesses
}

func (g *InsightGenerator) selfEsteemAnalysis(vector *QualityVector) string {
	total := vector.DomainTotal(DomainSelfEsteem)

	var level string
	switch {
	case total >= 160:
		level = "excellent"
	case total >= 140:
		level = "strong"
	case total >= 120:
		level = "steady"
	default:
		level = "in need of attention"
	}

	dims := []Dimension{SelfDetermination, SelfAcceptance, SelfWorth, SelfEfficacy}
	highest, lowest := extremes(vector, dims)

	return fmt.Sprintf(
		"Your self-esteem is %s. %s stands out as your biggest asset (%.1f points), while %s (%.1f points) leaves room to grow. Strengthening the weaker side while keeping the balance will support steady development.",
		level,
		DimensionLabels[highest], vector.Value(highest),
		DimensionLabels[lowest], vector.Value(lowest))
}

func (g *InsightGenerator) selfEsteemImprovements(vector *QualityVector) []string {
	var improvements []string

	if vector.SelfEfficacy < 30 {
		improvements = append(improvements, "Set small goals and stack up wins to build confidence in your own ability.")
	}
	if vector.SelfDetermination < 30 {
		improvements = append(improvements, "Practice making everyday decisions yourself to strengthen your sense of agency.")
	}
	if vector.SelfAcceptance < 30 {
		improvements = append(improvements, "Take stock of your strengths and shortcomings and practice accepting both.")
	}
	if vector.SelfWorth < 30 {
		improvements = append(improvements, "Look for chances to contribute to others so your own value stays visible to you.")
	}

	improvements = append(improvements,
		"Set aside regular time for self-reflection.",
		"Measure yourself against your own growth rather than against others.",
		"Treat setbacks as learning material instead of verdicts.",
	)

	if len(improvements) > 5 {
		improvements = improvements[:5]
	}
	return improvements
}

func (g *InsightGenerator) sportsmanshipBalance(vector *QualityVector) string {
	dims := []Dimension{Courage, Resilience, Cooperation, NaturalAcceptance, NonRationality}

	sum := 0.0
	for _, d := range dims {
		sum += vector.Value(d)
	}
	average := sum / float64(len(dims))

	var level string
	switch {
	case average >= 40:
		level = "very well balanced"
	case average >= 35:
		level = "well balanced"
	case average >= 30:
		level = "broadly balanced"
	default:
		level = "unevenly balanced"
	}

	highest, lowest := extremes(vector, dims)

	return fmt.Sprintf(
		"Your sportsmanship profile is %s. %s (%.1f points) is your standout quality, while %s (%.1f points) has the most headroom. Working deliberately on %s will round out the profile.",
		level,
		DimensionLabels[highest], vector.Value(highest),
		DimensionLabels[lowest], vector.Value(lowest),
		DimensionLabels[lowest])
}

// extremes returns the highest and lowest valued dimensions of the set.
// Ties keep the earlier dimension, matching the set's declared order.
func extremes(vector *QualityVector, dims []Dimension) (highest, lowest Dimension) {
	highest, lowest = dims[0], dims[0]
	for _, d := range dims[1:] {
		if vector.Value(d) > vector.Value(highest) {
			highest = d
		}
		if vector.Value(d) < vector.Value(lowest) {
			lowest = d
		}
	}
	return highest, lowest
}
