package engine

import (
	"fmt"
	"sort"

	apperrors "github.com/sportsmind/athlete-mind-meter/internal/errors"
)

// DefaultPerPage is the history page size when the caller does not pick one.
const DefaultPerPage = 10

// HistoryAnalyzer computes improvement trajectories over a participant's
// assessment timeline and serves filtered, sorted pages of it.
// It is stateless and safe for concurrent use.
type HistoryAnalyzer struct{}

// NewHistoryAnalyzer creates a history analyzer.
func NewHistoryAnalyzer() *HistoryAnalyzer {
	return &HistoryAnalyzer{}
}

// Analyze builds one page of a participant's timeline. Improvement rates
// are computed over the full chronological sequence before any filtering,
// so filters never change what an entry improved against. The rate for
// entry k is (total[k] - total[k-1]) / total[k-1] * 100; it stays nil for
// the first entry and whenever the previous total was zero.
func (h *HistoryAnalyzer) Analyze(entries []HistoryEntry, filter HistoryFilter, order HistorySort, page, perPage int) (*HistoryPage, error) {
	if page < 1 {
		return nil, apperrors.NewValidationError(fmt.Sprintf("page must be positive, got %d", page))
	}
	if perPage < 1 {
		return nil, apperrors.NewValidationError(fmt.Sprintf("page size must be positive, got %d", perPage))
	}
	switch order {
	case SortByDate, SortByTotal:
	default:
		return nil, apperrors.NewValidationError(fmt.Sprintf("unknown sort order %q", order))
	}

	timeline := make([]HistoryEntry, len(entries))
	copy(timeline, entries)
	sort.SliceStable(timeline, func(i, j int) bool {
		return timeline[i].TakenAt.Before(timeline[j].TakenAt)
	})

	for i := range timeline {
		timeline[i].ImprovementRate = nil
		if i == 0 {
			continue
		}
		prev := timeline[i-1].GrandTotal
		if prev == 0 {
			continue
		}
		rate := (timeline[i].GrandTotal - prev) / prev * 100
		timeline[i].ImprovementRate = &rate
	}

	filtered := timeline[:0:0]
	for _, e := range timeline {
		if matchesFilter(e, filter) {
			filtered = append(filtered, e)
		}
	}

	switch order {
	case SortByTotal:
		sort.SliceStable(filtered, func(i, j int) bool {
			return filtered[i].GrandTotal > filtered[j].GrandTotal
		})
	default:
		sort.SliceStable(filtered, func(i, j int) bool {
			return filtered[i].TakenAt.After(filtered[j].TakenAt)
		})
	}

	start := (page - 1) * perPage
	end := start + perPage
	var pageEntries []HistoryEntry
	if start < len(filtered) {
		if end > len(filtered) {
			end = len(filtered)
		}
		pageEntries = filtered[start:end]
	}

	return &HistoryPage{
		Entries:    pageEntries,
		TotalCount: len(filtered),
		Page:       page,
		PerPage:    perPage,
	}, nil
}

func matchesFilter(e HistoryEntry, f HistoryFilter) bool {
	if f.From != nil && e.TakenAt.Before(*f.From) {
		return false
	}
	if f.To != nil && e.TakenAt.After(*f.To) {
		return false
	}
	if len(f.Archetypes) > 0 {
		found := false
		for _, a := range f.Archetypes {
			if e.Archetype == a {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	if f.MinTotal != nil && e.GrandTotal < *f.MinTotal {
		return false
	}
	if f.MaxTotal != nil && e.GrandTotal > *f.MaxTotal {
		return false
	}
	if f.OnlyImproved {
		if e.ImprovementRate == nil || *e.ImprovementRate <= 0 {
			return false
		}
	}
	return true
}
