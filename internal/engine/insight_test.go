package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateStrengthsAndWeaknesses(t *testing.T) {
	gen := NewInsightGenerator()

	v := uniformVector(25)
	v.Devotion = 48
	v.Steadiness = 45
	v.Introspection = 42
	v.SelfControl = 40
	v.Commitment = 38
	v.Comparison = 5
	v.Assertion = 8

	insight := gen.Generate(&v)

	require.Len(t, insight.Strengths, 5)
	require.Len(t, insight.Weaknesses, 5)

	assert.Equal(t, []string{"Devotion", "Steadiness", "Introspection", "Self-Control", "Commitment"}, insight.Strengths)
	assert.Contains(t, insight.Weaknesses, "Comparison")
	assert.Contains(t, insight.Weaknesses, "Assertion")
	// Self-esteem and sportsmanship qualities never enter this ranking.
	assert.NotContains(t, insight.Strengths, "Self-Worth")
	assert.NotContains(t, insight.Weaknesses, "Courage")
}

func TestSelfEsteemAnalysisLevels(t *testing.T) {
	gen := NewInsightGenerator()

	tests := []struct {
		name      string
		perDim    float64
		wantLevel string
	}{
		{"excellent above 160", 45, "excellent"},
		{"strong above 140", 36, "strong"},
		{"steady above 120", 31, "steady"},
		{"needs attention below 120", 20, "in need of attention"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var v QualityVector
			v.SelfDetermination = tt.perDim
			v.SelfAcceptance = tt.perDim
			v.SelfWorth = tt.perDim
			v.SelfEfficacy = tt.perDim

			insight := gen.Generate(&v)
			assert.Contains(t, insight.SelfEsteemAnalysis, tt.wantLevel)
		})
	}
}

func TestSelfEsteemAnalysisNamesExtremes(t *testing.T) {
	gen := NewInsightGenerator()

	var v QualityVector
	v.SelfDetermination = 45
	v.SelfAcceptance = 30
	v.SelfWorth = 15
	v.SelfEfficacy = 35

	insight := gen.Generate(&v)
	assert.Contains(t, insight.SelfEsteemAnalysis, "Self-Determination")
	assert.Contains(t, insight.SelfEsteemAnalysis, "Self-Worth")
}

func TestSelfEsteemImprovements(t *testing.T) {
	gen := NewInsightGenerator()

	t.Run("low scores add targeted suggestions capped at five", func(t *testing.T) {
		var v QualityVector
		v.SelfDetermination = 10
		v.SelfAcceptance = 12
		v.SelfWorth = 15
		v.SelfEfficacy = 8

		insight := gen.Generate(&v)
		require.Len(t, insight.SelfEsteemImprovements, 5)
		assert.Contains(t, insight.SelfEsteemImprovements[0], "small goals")
	})

	t.Run("healthy scores keep the general suggestions", func(t *testing.T) {
		var v QualityVector
		v.SelfDetermination = 40
		v.SelfAcceptance = 40
		v.SelfWorth = 40
		v.SelfEfficacy = 40

		insight := gen.Generate(&v)
		require.Len(t, insight.SelfEsteemImprovements, 3)
		assert.Contains(t, insight.SelfEsteemImprovements[0], "self-reflection")
	})
}

func TestSportsmanshipBalanceLevels(t *testing.T) {
	gen := NewInsightGenerator()

	tests := []struct {
		name      string
		perDim    float64
		wantLevel string
	}{
		{"very well balanced at 40", 42, "very well balanced"},
		{"well balanced at 35", 37, "well balanced"},
		{"broadly balanced at 30", 32, "broadly balanced"},
		{"uneven below 30", 22, "unevenly balanced"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var v QualityVector
			v.Courage = tt.perDim
			v.Resilience = tt.perDim
			v.Cooperation = tt.perDim
			v.NaturalAcceptance = tt.perDim
			v.NonRationality = tt.perDim

			insight := gen.Generate(&v)
			assert.Contains(t, insight.SportsmanshipBalance, tt.wantLevel)
		})
	}
}

func TestSportsmanshipBalanceNamesExtremes(t *testing.T) {
	gen := NewInsightGenerator()

	var v QualityVector
	v.Courage = 48
	v.Resilience = 30
	v.Cooperation = 28
	v.NaturalAcceptance = 25
	v.NonRationality = 12

	insight := gen.Generate(&v)
	assert.Contains(t, insight.SportsmanshipBalance, "Courage")
	assert.Contains(t, insight.SportsmanshipBalance, "Non-Rationality")
}
