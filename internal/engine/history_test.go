package engine

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func entryAt(day int, total float64) HistoryEntry {
	return HistoryEntry{
		ResultID:   fmt.Sprintf("r%d", day),
		TakenAt:    time.Date(2026, 1, day, 10, 0, 0, 0, time.UTC),
		GrandTotal: total,
		Archetype:  ArchetypeStriker,
	}
}

func TestAnalyzeImprovementRates(t *testing.T) {
	analyzer := NewHistoryAnalyzer()

	entries := []HistoryEntry{
		entryAt(1, 100),
		entryAt(2, 150),
		entryAt(3, 120),
	}

	page, err := analyzer.Analyze(entries, HistoryFilter{}, SortByDate, 1, 10)
	require.NoError(t, err)
	require.Len(t, page.Entries, 3)

	// Presentation order is newest first; rates were computed chronologically.
	byID := make(map[string]HistoryEntry)
	for _, e := range page.Entries {
		byID[e.ResultID] = e
	}

	assert.Nil(t, byID["r1"].ImprovementRate)
	require.NotNil(t, byID["r2"].ImprovementRate)
	assert.InDelta(t, 50.0, *byID["r2"].ImprovementRate, 1e-9)
	require.NotNil(t, byID["r3"].ImprovementRate)
	assert.InDelta(t, -20.0, *byID["r3"].ImprovementRate, 1e-9)
}

func TestAnalyzeZeroPreviousTotal(t *testing.T) {
	analyzer := NewHistoryAnalyzer()

	entries := []HistoryEntry{
		entryAt(1, 0),
		entryAt(2, 200),
	}

	page, err := analyzer.Analyze(entries, HistoryFilter{}, SortByDate, 1, 10)
	require.NoError(t, err)
	require.Len(t, page.Entries, 2)

	for _, e := range page.Entries {
		assert.Nil(t, e.ImprovementRate, "entry %s", e.ResultID)
	}
}

func TestAnalyzeUnorderedInput(t *testing.T) {
	analyzer := NewHistoryAnalyzer()

	// Rates must follow actual chronology, not input order.
	entries := []HistoryEntry{
		entryAt(3, 120),
		entryAt(1, 100),
		entryAt(2, 150),
	}

	page, err := analyzer.Analyze(entries, HistoryFilter{}, SortByDate, 1, 10)
	require.NoError(t, err)

	assert.Equal(t, "r3", page.Entries[0].ResultID)
	require.NotNil(t, page.Entries[0].ImprovementRate)
	assert.InDelta(t, -20.0, *page.Entries[0].ImprovementRate, 1e-9)
}

func TestAnalyzeFiltersCombineWithAnd(t *testing.T) {
	analyzer := NewHistoryAnalyzer()

	entries := []HistoryEntry{
		entryAt(1, 100),
		entryAt(2, 150),
		entryAt(3, 120),
		entryAt(4, 180),
	}
	entries[2].Archetype = ArchetypeDefender

	from := time.Date(2026, 1, 2, 0, 0, 0, 0, time.UTC)
	minTotal := 140.0

	page, err := analyzer.Analyze(entries, HistoryFilter{
		From:       &from,
		MinTotal:   &minTotal,
		Archetypes: []Archetype{ArchetypeStriker},
	}, SortByDate, 1, 10)
	require.NoError(t, err)

	// r1 fails the date filter, r3 fails archetype and total, leaving r2 and r4.
	require.Len(t, page.Entries, 2)
	assert.Equal(t, 2, page.TotalCount)
	assert.Equal(t, "r4", page.Entries[0].ResultID)
	assert.Equal(t, "r2", page.Entries[1].ResultID)
}

func TestAnalyzeOnlyImproved(t *testing.T) {
	analyzer := NewHistoryAnalyzer()

	entries := []HistoryEntry{
		entryAt(1, 100),
		entryAt(2, 150),
		entryAt(3, 120),
		entryAt(4, 160),
	}

	page, err := analyzer.Analyze(entries, HistoryFilter{OnlyImproved: true}, SortByDate, 1, 10)
	require.NoError(t, err)

	// r1 has no rate, r3 declined; only r2 and r4 improved.
	require.Len(t, page.Entries, 2)
	assert.Equal(t, "r4", page.Entries[0].ResultID)
	assert.Equal(t, "r2", page.Entries[1].ResultID)
}

func TestAnalyzeSortByTotal(t *testing.T) {
	analyzer := NewHistoryAnalyzer()

	entries := []HistoryEntry{
		entryAt(1, 100),
		entryAt(2, 180),
		entryAt(3, 120),
	}

	page, err := analyzer.Analyze(entries, HistoryFilter{}, SortByTotal, 1, 10)
	require.NoError(t, err)

	require.Len(t, page.Entries, 3)
	assert.Equal(t, 180.0, page.Entries[0].GrandTotal)
	assert.Equal(t, 120.0, page.Entries[1].GrandTotal)
	assert.Equal(t, 100.0, page.Entries[2].GrandTotal)
}

func TestAnalyzePagination(t *testing.T) {
	analyzer := NewHistoryAnalyzer()

	var entries []HistoryEntry
	for day := 1; day <= 25; day++ {
		entries = append(entries, entryAt(day, float64(100+day)))
	}

	first, err := analyzer.Analyze(entries, HistoryFilter{}, SortByDate, 1, 10)
	require.NoError(t, err)
	assert.Len(t, first.Entries, 10)
	assert.Equal(t, 25, first.TotalCount)
	assert.Equal(t, "r25", first.Entries[0].ResultID)

	third, err := analyzer.Analyze(entries, HistoryFilter{}, SortByDate, 3, 10)
	require.NoError(t, err)
	assert.Len(t, third.Entries, 5)
	assert.Equal(t, 25, third.TotalCount)

	// A page past the end stays empty but keeps the filtered count.
	beyond, err := analyzer.Analyze(entries, HistoryFilter{}, SortByDate, 4, 10)
	require.NoError(t, err)
	assert.Empty(t, beyond.Entries)
	assert.Equal(t, 25, beyond.TotalCount)
}

func TestAnalyzeValidation(t *testing.T) {
	analyzer := NewHistoryAnalyzer()

	tests := []struct {
		name    string
		order   HistorySort
		page    int
		perPage int
		wantErr string
	}{
		{"zero page", SortByDate, 0, 10, "page must be positive"},
		{"negative page", SortByDate, -1, 10, "page must be positive"},
		{"zero page size", SortByDate, 1, 0, "page size must be positive"},
		{"unknown sort order", "alphabetical", 1, 10, "unknown sort order"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			page, err := analyzer.Analyze(nil, HistoryFilter{}, tt.order, tt.page, tt.perPage)
			require.Error(t, err)
			assert.Nil(t, page)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestAnalyzeEmptyTimeline(t *testing.T) {
	analyzer := NewHistoryAnalyzer()

	page, err := analyzer.Analyze(nil, HistoryFilter{}, SortByDate, 1, 10)
	require.NoError(t, err)
	assert.Empty(t, page.Entries)
	assert.Zero(t, page.TotalCount)
}

func TestAnalyzeDoesNotMutateInput(t *testing.T) {
	analyzer := NewHistoryAnalyzer()

	entries := []HistoryEntry{
		entryAt(2, 150),
		entryAt(1, 100),
	}

	_, err := analyzer.Analyze(entries, HistoryFilter{}, SortByDate, 1, 10)
	require.NoError(t, err)

	assert.Equal(t, "r2", entries[0].ResultID)
	assert.Equal(t, "r1", entries[1].ResultID)
	assert.Nil(t, entries[0].ImprovementRate)
}
