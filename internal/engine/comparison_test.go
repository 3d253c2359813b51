package engine

import (
	"fmt"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func uniformVector(value float64) QualityVector {
	var v QualityVector
	for _, d := range AllDimensions {
		v.SetValue(d, value)
	}
	return v
}

func TestCompareParticipantBounds(t *testing.T) {
	engine := NewComparisonEngine()

	tests := []struct {
		name  string
		count int
		valid bool
	}{
		{"zero participants", 0, false},
		{"one participant", 1, false},
		{"two participants", 2, true},
		{"three participants", 3, true},
		{"four participants", 4, true},
		{"five participants", 5, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			participants := make([]Participant, tt.count)
			for i := range participants {
				participants[i] = Participant{Name: fmt.Sprintf("p%d", i), Vector: uniformVector(25)}
			}

			report, err := engine.Compare(participants)
			if tt.valid {
				require.NoError(t, err)
				assert.NotNil(t, report)
			} else {
				require.Error(t, err)
				assert.Contains(t, err.Error(), "participants")
			}
		})
	}
}

func TestCompareCoversEveryQuality(t *testing.T) {
	engine := NewComparisonEngine()

	a := uniformVector(30)
	b := uniformVector(20)

	report, err := engine.Compare([]Participant{
		{Name: "Aoi", Vector: a},
		{Name: "Ren", Vector: b},
	})
	require.NoError(t, err)

	assert.Len(t, report.Differences, len(AllDimensions))

	seen := make(map[Dimension]bool)
	for _, d := range report.Differences {
		assert.False(t, seen[d.Dimension], "quality %s appears twice", d.Dimension)
		seen[d.Dimension] = true
		assert.Equal(t, 10.0, d.Difference)
		assert.Equal(t, 30.0, d.FirstValue)
		assert.Equal(t, 20.0, d.SecondValue)
	}
}

func TestCompareRankingAndTopGaps(t *testing.T) {
	engine := NewComparisonEngine()

	a := uniformVector(25)
	b := uniformVector(25)
	// Spread distinct gaps, including a negative one that must rank by
	// absolute value.
	a.Courage = 45      // +20
	b.Devotion = 40     // -15
	a.SelfWorth = 35    // +10
	b.Intuition = 30    // -5
	a.Steadiness = 27   // +2
	a.Assertion = 26    // +1

	report, err := engine.Compare([]Participant{
		{Name: "Aoi", Vector: a},
		{Name: "Ren", Vector: b},
	})
	require.NoError(t, err)

	for i := 1; i < len(report.Differences); i++ {
		assert.GreaterOrEqual(t,
			math.Abs(report.Differences[i-1].Difference),
			math.Abs(report.Differences[i].Difference))
	}

	require.Len(t, report.TopGaps, TopGapCount)
	assert.Equal(t, Courage, report.TopGaps[0].Dimension)
	assert.Equal(t, Devotion, report.TopGaps[1].Dimension)
	assert.Equal(t, SelfWorth, report.TopGaps[2].Dimension)
	assert.Equal(t, Intuition, report.TopGaps[3].Dimension)
	assert.Equal(t, Steadiness, report.TopGaps[4].Dimension)

	require.Len(t, report.Guidance, TopGapCount)
	assert.Contains(t, report.Guidance[0], "Aoi")
	assert.Contains(t, report.Guidance[0], "Courage")
	assert.Contains(t, report.Guidance[1], "Ren")
	assert.Contains(t, report.Guidance[1], "Devotion")
}

func TestCompareTieKeepsCanonicalOrder(t *testing.T) {
	engine := NewComparisonEngine()

	a := uniformVector(25)
	b := uniformVector(20)

	report, err := engine.Compare([]Participant{
		{Name: "Aoi", Vector: a},
		{Name: "Ren", Vector: b},
	})
	require.NoError(t, err)

	// Every gap ties at 5, so the ranking must keep canonical quality order.
	for i, d := range report.Differences {
		assert.Equal(t, AllDimensions[i], d.Dimension)
	}
}

func TestCompareTrailingParticipantsAreDisplayOnly(t *testing.T) {
	engine := NewComparisonEngine()

	a := uniformVector(30)
	b := uniformVector(20)

	base, err := engine.Compare([]Participant{
		{Name: "Aoi", Vector: a},
		{Name: "Ren", Vector: b},
	})
	require.NoError(t, err)

	withExtras, err := engine.Compare([]Participant{
		{Name: "Aoi", Vector: a},
		{Name: "Ren", Vector: b},
		{Name: "Kai", Vector: uniformVector(50)},
		{Name: "Yu", Vector: uniformVector(0)},
	})
	require.NoError(t, err)

	// Extra participants never move the pairwise analysis.
	assert.Equal(t, base.Similarity, withExtras.Similarity)
	assert.Equal(t, base.Differences, withExtras.Differences)
	assert.Equal(t, base.TopGaps, withExtras.TopGaps)
	assert.Equal(t, base.Guidance, withExtras.Guidance)
	assert.Equal(t, base.Summary, withExtras.Summary)
	assert.Equal(t, base.EffectiveInteractions, withExtras.EffectiveInteractions)
	assert.Equal(t, base.RiskyInteractions, withExtras.RiskyInteractions)

	// They do show up in the participant summaries.
	require.Len(t, withExtras.Participants, 4)
	assert.Equal(t, "Kai", withExtras.Participants[2].Name)
	assert.Equal(t, 950.0, withExtras.Participants[2].GrandTotal)
	assert.Equal(t, "Yu", withExtras.Participants[3].Name)
	assert.Equal(t, 0.0, withExtras.Participants[3].GrandTotal)
}

func TestCompareParticipantSummaries(t *testing.T) {
	engine := NewComparisonEngine()

	report, err := engine.Compare([]Participant{
		{Name: "Aoi", Vector: uniformVector(30)},
		{Name: "Ren", Vector: uniformVector(20)},
	})
	require.NoError(t, err)

	require.Len(t, report.Participants, 2)
	aoi := report.Participants[0]
	assert.Equal(t, "Aoi", aoi.Name)
	assert.Equal(t, 120.0, aoi.DomainTotals[DomainSelfEsteem])
	assert.Equal(t, 300.0, aoi.DomainTotals[DomainAthleteMind])
	assert.Equal(t, 150.0, aoi.DomainTotals[DomainSportsmanship])
	assert.InDelta(t, 30.0, aoi.DomainAverages[DomainSelfEsteem], 1e-9)
	assert.InDelta(t, 30.0, aoi.DomainAverages[DomainAthleteMind], 1e-9)
	assert.Equal(t, 570.0, aoi.GrandTotal)

	// No classifier wired in, so no archetype leaning is claimed.
	assert.Empty(t, aoi.Archetype)
}

func TestCompareNarrativeFields(t *testing.T) {
	classifier, err := NewClassifier(testProfiles())
	require.NoError(t, err)
	engine := NewComparisonEngineWithClassifier(classifier)

	a := uniformVector(25)
	b := uniformVector(25)
	a.ResultFocus = 48   // +23, past the risk threshold; tilts Aoi toward Striker
	a.Assertion = 40     // +15
	b.Steadiness = 46    // -21, past the risk threshold; tilts Ren toward Playmaker
	b.Introspection = 38 // -13

	report, err := engine.Compare([]Participant{
		{Name: "Aoi", Vector: a},
		{Name: "Ren", Vector: b},
	})
	require.NoError(t, err)

	assert.Equal(t, ArchetypeStriker, report.Participants[0].Archetype)
	assert.Equal(t, ArchetypePlaymaker, report.Participants[1].Archetype)

	// The summary names both sides, their leanings, and the widest gap
	// with its assessment area.
	assert.Contains(t, report.Summary, "Aoi")
	assert.Contains(t, report.Summary, "Ren")
	assert.Contains(t, report.Summary, string(ArchetypeStriker))
	assert.Contains(t, report.Summary, string(ArchetypePlaymaker))
	assert.Contains(t, report.Summary, "Result Focus")
	assert.Contains(t, report.Summary, "Athlete Mind")
	assert.Contains(t, report.Summary, "23.0")

	// Effective interactions put the stronger side in the lead per gap and
	// close with the standing habits.
	require.NotEmpty(t, report.EffectiveInteractions)
	assert.LessOrEqual(t, len(report.EffectiveInteractions), 5)
	assert.Contains(t, report.EffectiveInteractions[0], "Aoi")
	assert.Contains(t, report.EffectiveInteractions[0], "Result Focus")
	assert.Contains(t, report.EffectiveInteractions[1], "Ren")
	assert.Contains(t, report.EffectiveInteractions[1], "Steadiness")

	// Both 20+ point gaps are flagged as friction risks, ahead of the
	// standing cautions.
	require.GreaterOrEqual(t, len(report.RiskyInteractions), 2)
	assert.LessOrEqual(t, len(report.RiskyInteractions), 5)
	assert.Contains(t, report.RiskyInteractions[0], "Result Focus")
	assert.Contains(t, report.RiskyInteractions[1], "Steadiness")
}

func TestCompareNarrativeWithoutClassifier(t *testing.T) {
	engine := NewComparisonEngine()

	a := uniformVector(28)
	b := uniformVector(22)

	report, err := engine.Compare([]Participant{
		{Name: "Aoi", Vector: a},
		{Name: "Ren", Vector: b},
	})
	require.NoError(t, err)

	assert.Contains(t, report.Summary, "Comparison between Aoi and Ren")
	assert.NotEmpty(t, report.EffectiveInteractions)

	// Gaps of 6 points stay under the risk threshold, so only the standing
	// cautions remain.
	require.Len(t, report.RiskyInteractions, 3)
	for _, line := range report.RiskyInteractions {
		assert.NotContains(t, line, "clashing values")
	}
}

func TestMeanGapSimilarity(t *testing.T) {
	sim := MeanGapSimilarity(50)

	a := uniformVector(30)
	assert.InDelta(t, 100.0, sim(&a, &a), 1e-9)

	b := uniformVector(20)
	// Every quality differs by 10 out of 50: mean gap 20%, similarity 80.
	assert.InDelta(t, 80.0, sim(&a, &b), 1e-9)

	zero := uniformVector(0)
	full := uniformVector(50)
	assert.InDelta(t, 0.0, sim(&zero, &full), 1e-9)
}

func TestCompareCustomSimilarity(t *testing.T) {
	engine := NewComparisonEngineWithSimilarity(func(a, b *QualityVector) float64 {
		return 42
	})

	report, err := engine.Compare([]Participant{
		{Name: "Aoi", Vector: uniformVector(10)},
		{Name: "Ren", Vector: uniformVector(40)},
	})
	require.NoError(t, err)
	assert.Equal(t, 42.0, report.Similarity)
}
