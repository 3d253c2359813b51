package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testProfiles() []ArchetypeProfile {
	return []ArchetypeProfile{
		{Archetype: ArchetypeStriker, Label: "Striker",
			Description: "Chases outcomes above everything else.",
			Weights: map[Dimension]float64{
				ResultFocus: 10, Assertion: 9, Comparison: 8, Intuition: 7, SelfControl: 6,
			}},
		{Archetype: ArchetypeAttacker, Label: "Attacker",
			Description: "Breaks situations open from the front line.",
			Weights: map[Dimension]float64{
				ResultFocus: 10, Intuition: 9, Assertion: 8, SelfControl: 7, Comparison: 6,
			}},
		{Archetype: ArchetypePlaymaker, Label: "Playmaker",
			Description: "Reads the whole team and makes measured calls.",
			Weights: map[Dimension]float64{
				Steadiness: 10, Introspection: 9, Devotion: 8, Comparison: 7, Commitment: 6,
			}},
		{Archetype: ArchetypeAnchor, Label: "Anchor",
			Description: "Provides stability when situations turn difficult.",
			Weights: map[Dimension]float64{
				Steadiness: 10, Introspection: 9, Devotion: 8, Comparison: 7, Commitment: 6,
			}},
		{Archetype: ArchetypeDefender, Label: "Defender",
			Description: "Keeps things steady through cooperation.",
			Weights: map[Dimension]float64{
				Steadiness: 10, Devotion: 9, Sensitivity: 8, Introspection: 7, SelfControl: 6,
			}},
	}
}

func TestClassifierValidation(t *testing.T) {
	tests := []struct {
		name     string
		profiles []ArchetypeProfile
		wantErr  string
	}{
		{
			name:     "empty profile set",
			profiles: nil,
			wantErr:  "no archetype profiles",
		},
		{
			name: "missing archetype name",
			profiles: []ArchetypeProfile{
				{Weights: map[Dimension]float64{Courage: 1}},
			},
			wantErr: "missing a name",
		},
		{
			name: "duplicate archetype",
			profiles: []ArchetypeProfile{
				{Archetype: ArchetypeStriker, Weights: map[Dimension]float64{Courage: 1}},
				{Archetype: ArchetypeStriker, Weights: map[Dimension]float64{Devotion: 1}},
			},
			wantErr: "duplicate archetype",
		},
		{
			name: "unknown quality",
			profiles: []ArchetypeProfile{
				{Archetype: ArchetypeStriker, Weights: map[Dimension]float64{"charisma": 1}},
			},
			wantErr: "unknown quality",
		},
		{
			name: "negative weight",
			profiles: []ArchetypeProfile{
				{Archetype: ArchetypeStriker, Weights: map[Dimension]float64{Courage: -0.5}},
			},
			wantErr: "negative weight",
		},
		{
			name: "no positive weights",
			profiles: []ArchetypeProfile{
				{Archetype: ArchetypeStriker, Weights: map[Dimension]float64{Courage: 0}},
			},
			wantErr: "no positive weights",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := NewClassifier(tt.profiles)
			require.Error(t, err)
			assert.Nil(t, c)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestClassifyDominantArchetype(t *testing.T) {
	classifier, err := NewClassifier(testProfiles())
	require.NoError(t, err)

	// High result focus, assertion and comparison point squarely at Striker.
	var v QualityVector
	v.ResultFocus = 45
	v.Assertion = 42
	v.Comparison = 40
	v.Steadiness = 10
	v.Devotion = 12

	result, err := classifier.Classify(&v)
	require.NoError(t, err)

	assert.Equal(t, ArchetypeStriker, result.Archetype)
	assert.Len(t, result.Scores, 5)
	assert.Equal(t, ArchetypeStriker, result.Scores[0].Archetype)
}

func TestClassifyRepeatedCallsAgree(t *testing.T) {
	classifier, err := NewClassifier(testProfiles())
	require.NoError(t, err)

	// Values chosen so the top two profiles run close; the winner and every
	// score must still come out identical on every call.
	var v QualityVector
	v.Steadiness = 46.9
	v.Introspection = 23.2
	v.Devotion = 2.5
	v.ResultFocus = 31.4
	v.Assertion = 28.7
	v.Comparison = 19.3
	v.Intuition = 27.1
	v.SelfControl = 24.6
	v.Sensitivity = 33.8
	v.Commitment = 12.9

	first, err := classifier.Classify(&v)
	require.NoError(t, err)

	for i := 0; i < 100; i++ {
		again, err := classifier.Classify(&v)
		require.NoError(t, err)
		assert.Equal(t, first.Archetype, again.Archetype, "call %d", i)
		require.Equal(t, len(first.Scores), len(again.Scores))
		for j := range first.Scores {
			assert.Equal(t, first.Scores[j].Archetype, again.Scores[j].Archetype, "call %d rank %d", i, j)
			assert.Equal(t, first.Scores[j].Raw, again.Scores[j].Raw, "call %d rank %d", i, j)
			assert.Equal(t, first.Scores[j].Percentage, again.Scores[j].Percentage, "call %d rank %d", i, j)
		}
	}
}

func TestClassifyPercentagesArePerProfile(t *testing.T) {
	classifier, err := NewClassifier(testProfiles())
	require.NoError(t, err)

	// A vector at the Striker profile's ideal scores that profile at 100%.
	var ideal QualityVector
	for d := range testProfiles()[0].Weights {
		ideal.SetValue(d, 50)
	}

	result, err := classifier.Classify(&ideal)
	require.NoError(t, err)

	assert.Equal(t, ArchetypeStriker, result.Archetype)
	assert.InDelta(t, 100.0, result.Scores[0].Percentage, 1e-9)

	// Each percentage is independent of the others, so the five do not
	// share a fixed 100-point budget.
	sum := 0.0
	for _, s := range result.Scores {
		assert.GreaterOrEqual(t, s.Percentage, 0.0)
		assert.LessOrEqual(t, s.Percentage, 100.0)
		sum += s.Percentage
	}
	assert.Greater(t, sum, 100.0)
}

func TestClassifyUniformVectorScoresUniformly(t *testing.T) {
	classifier, err := NewClassifier(testProfiles())
	require.NoError(t, err)

	var v QualityVector
	for _, d := range AllDimensions {
		v.SetValue(d, 25)
	}

	result, err := classifier.Classify(&v)
	require.NoError(t, err)

	// Every weighted quality sits at half the ceiling, so every profile
	// lands at exactly 50% regardless of its weight budget.
	for _, s := range result.Scores {
		assert.InDelta(t, 50.0, s.Percentage, 1e-9)
	}
	assert.Equal(t, ArchetypeStriker, result.Archetype)
}

func TestClassifyTieKeepsDeclarationOrder(t *testing.T) {
	classifier, err := NewClassifier(testProfiles())
	require.NoError(t, err)

	// Playmaker and Anchor weight the same qualities identically here, so
	// every vector ties them. The earlier-declared Playmaker must win.
	var v QualityVector
	v.Steadiness = 40
	v.Introspection = 38
	v.Devotion = 36

	result, err := classifier.Classify(&v)
	require.NoError(t, err)

	assert.Equal(t, ArchetypePlaymaker, result.Archetype)

	playmakerIdx, anchorIdx := -1, -1
	for i, s := range result.Scores {
		switch s.Archetype {
		case ArchetypePlaymaker:
			playmakerIdx = i
		case ArchetypeAnchor:
			anchorIdx = i
		}
	}
	assert.Less(t, playmakerIdx, anchorIdx)
	assert.InDelta(t, result.Scores[playmakerIdx].Percentage, result.Scores[anchorIdx].Percentage, 1e-9)
}

func TestClassifySurfacesWinnerDescription(t *testing.T) {
	classifier, err := NewClassifier(testProfiles())
	require.NoError(t, err)

	var v QualityVector
	v.Steadiness = 48
	v.Devotion = 45
	v.Sensitivity = 44

	result, err := classifier.Classify(&v)
	require.NoError(t, err)

	assert.Equal(t, ArchetypeDefender, result.Archetype)
	assert.Equal(t, "Defender", result.Label)
	assert.Equal(t, "Keeps things steady through cooperation.", result.Description)
}

func TestClassifyCustomTransform(t *testing.T) {
	// An inverted transform flips the ranking entirely.
	classifier, err := NewClassifierWithTransform(testProfiles(), func(raw, maxRaw float64) float64 {
		if maxRaw <= 0 {
			return 0
		}
		return 100 - raw/maxRaw*100
	})
	require.NoError(t, err)

	var v QualityVector
	v.ResultFocus = 50
	v.Assertion = 50
	v.Comparison = 50

	result, err := classifier.Classify(&v)
	require.NoError(t, err)
	assert.NotEqual(t, ArchetypeStriker, result.Archetype)
}

func TestClassifyZeroVector(t *testing.T) {
	classifier, err := NewClassifier(testProfiles())
	require.NoError(t, err)

	result, err := classifier.Classify(&QualityVector{})
	require.NoError(t, err)

	// Nothing to rank on, so declaration order holds and percentages stay zero.
	assert.Equal(t, ArchetypeStriker, result.Archetype)
	for _, s := range result.Scores {
		assert.Zero(t, s.Percentage)
	}
}

func TestClassifyNilVector(t *testing.T) {
	classifier, err := NewClassifier(testProfiles())
	require.NoError(t, err)

	result, err := classifier.Classify(nil)
	require.Error(t, err)
	assert.Nil(t, result)
}
