package catalog

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/sportsmind/athlete-mind-meter/internal/engine"
	apperrors "github.com/sportsmind/athlete-mind-meter/internal/errors"
)

// Question is one catalog item presented to participants.
type Question struct {
	ID        string           `json:"id"`
	Text      string           `json:"text"`
	Dimension engine.Dimension `json:"dimension"`
	// Reversed marks items keyed against the quality, scored as
	// min + max - value. All sportsmanship items ship reversed.
	Reversed bool `json:"is_reverse_score"`
	Order    int  `json:"order"`
	// MinValue and MaxValue bound this question's answers. Leaving both
	// zero picks up the scale's bounds at catalog build time.
	MinValue float64 `json:"min_value"`
	MaxValue float64 `json:"max_value"`
}

// RawAnswer is an unvalidated submission item keyed by question ID.
type RawAnswer struct {
	QuestionID string  `json:"question_id"`
	Value      float64 `json:"value"`
}

// Catalog is a validated question set with fast ID lookup.
type Catalog struct {
	questions []Question
	byID      map[string]Question
}

// NewCatalog validates the question set against the scale and builds the
// lookup index. Questions without explicit bounds inherit the scale's,
// and the summed per-dimension maxima must stay inside the scale's
// dimension ceiling.
func NewCatalog(questions []Question, scale engine.ScaleConfig) (*Catalog, error) {
	if len(questions) == 0 {
		return nil, apperrors.NewConfigurationError("question catalog is empty", nil)
	}

	items := make([]Question, len(questions))
	copy(items, questions)

	byID := make(map[string]Question, len(items))
	maxPerDimension := make(map[engine.Dimension]float64)
	for i := range items {
		q := &items[i]
		if q.ID == "" {
			return nil, apperrors.NewConfigurationError(
				fmt.Sprintf("question %q has no ID", q.Text), nil)
		}
		if _, dup := byID[q.ID]; dup {
			return nil, apperrors.NewConfigurationError(
				fmt.Sprintf("duplicate question ID %q", q.ID), nil)
		}
		if !engine.IsValidDimension(q.Dimension) {
			return nil, apperrors.NewConfigurationError(
				fmt.Sprintf("question %q references unknown quality %q", q.ID, q.Dimension), nil)
		}
		if q.MinValue == 0 && q.MaxValue == 0 {
			q.MinValue, q.MaxValue = scale.Min, scale.Max
		}
		if q.MaxValue <= q.MinValue {
			return nil, apperrors.NewConfigurationError(
				fmt.Sprintf("question %q has an invalid %g-%g range", q.ID, q.MinValue, q.MaxValue), nil)
		}
		byID[q.ID] = *q
		maxPerDimension[q.Dimension] += q.MaxValue
	}

	for d, maxSum := range maxPerDimension {
		if maxSum > scale.DimensionMax {
			return nil, apperrors.NewConfigurationError(
				fmt.Sprintf("quality %q sums to a maximum of %.0f, which exceeds the %.0f ceiling",
					d, maxSum, scale.DimensionMax), nil)
		}
	}

	return &Catalog{questions: items, byID: byID}, nil
}

// Questions returns the catalog items in presentation order.
func (c *Catalog) Questions() []Question {
	return c.questions
}

// Len returns the number of catalog items.
func (c *Catalog) Len() int {
	return len(c.questions)
}

// Resolve matches raw submission items against the catalog, attaching
// the dimension, reverse flag and value bounds each answer needs for
// scoring. Unknown question IDs, out-of-range values and duplicate
// answers are rejected; partial coverage is left for the scorer to
// report.
func (c *Catalog) Resolve(raw []RawAnswer) ([]engine.Answer, error) {
	if len(raw) == 0 {
		return nil, apperrors.NewValidationError("submission contains no answers")
	}

	seen := make(map[string]bool, len(raw))
	answers := make([]engine.Answer, 0, len(raw))
	for _, r := range raw {
		q, ok := c.byID[r.QuestionID]
		if !ok {
			return nil, apperrors.BuildValidationError(
				fmt.Sprintf("answer references unknown question %q", r.QuestionID),
				map[string]interface{}{"question_id": r.QuestionID})
		}
		if seen[r.QuestionID] {
			return nil, apperrors.BuildValidationError(
				fmt.Sprintf("duplicate answer for question %q", r.QuestionID),
				map[string]interface{}{"question_id": r.QuestionID})
		}
		seen[r.QuestionID] = true

		if r.Value < q.MinValue || r.Value > q.MaxValue {
			return nil, apperrors.BuildValidationError(
				fmt.Sprintf("answer %.2f for question %q is outside its %g-%g range",
					r.Value, r.QuestionID, q.MinValue, q.MaxValue),
				map[string]interface{}{"question_id": r.QuestionID})
		}

		answers = append(answers, engine.Answer{
			QuestionID: q.ID,
			Dimension:  q.Dimension,
			Value:      r.Value,
			Reversed:   q.Reversed,
			Min:        q.MinValue,
			Max:        q.MaxValue,
		})
	}

	return answers, nil
}

// Store loads and saves question catalogs and archetype profiles from a
// data directory, falling back to the embedded defaults when no file
// exists yet.
type Store struct {
	dataDir string
}

// NewStore creates a catalog store rooted at dataDir.
func NewStore(dataDir string) *Store {
	return &Store{dataDir: dataDir}
}

// LoadQuestions reads questions.json from the data directory, or returns
// the default question set when the file is absent.
func (s *Store) LoadQuestions() ([]Question, error) {
	filePath := filepath.Join(s.dataDir, "questions.json")

	if _, err := os.Stat(filePath); os.IsNotExist(err) {
		return DefaultQuestions(), nil
	}

	file, err := os.Open(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open question catalog: %w", err)
	}
	defer file.Close()

	var questions []Question
	if err := json.NewDecoder(file).Decode(&questions); err != nil {
		return nil, fmt.Errorf("failed to decode question catalog: %w", err)
	}

	return questions, nil
}

// SaveQuestions writes the question set to questions.json.
func (s *Store) SaveQuestions(questions []Question) error {
	if err := os.MkdirAll(s.dataDir, 0755); err != nil {
		return fmt.Errorf("failed to create catalog directory: %w", err)
	}

	file, err := os.Create(filepath.Join(s.dataDir, "questions.json"))
	if err != nil {
		return fmt.Errorf("failed to create question catalog file: %w", err)
	}
	defer file.Close()

	encoder := json.NewEncoder(file)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(questions); err != nil {
		return fmt.Errorf("failed to encode question catalog: %w", err)
	}

	return nil
}

// LoadProfiles reads archetypes.json from the data directory, or returns
// the default archetype profiles when the file is absent.
func (s *Store) LoadProfiles() ([]engine.ArchetypeProfile, error) {
	filePath := filepath.Join(s.dataDir, "archetypes.json")

	if _, err := os.Stat(filePath); os.IsNotExist(err) {
		return DefaultProfiles(), nil
	}

	file, err := os.Open(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open archetype profiles: %w", err)
	}
	defer file.Close()

	var profiles []engine.ArchetypeProfile
	if err := json.NewDecoder(file).Decode(&profiles); err != nil {
		return nil, fmt.Errorf("failed to decode archetype profiles: %w", err)
	}

	return profiles, nil
}

// SaveProfiles writes the archetype profiles to archetypes.json.
func (s *Store) SaveProfiles(profiles []engine.ArchetypeProfile) error {
	if err := os.MkdirAll(s.dataDir, 0755); err != nil {
		return fmt.Errorf("failed to create catalog directory: %w", err)
	}

	file, err := os.Create(filepath.Join(s.dataDir, "archetypes.json"))
	if err != nil {
		return fmt.Errorf("failed to create archetype profile file: %w", err)
	}
	defer file.Close()

	encoder := json.NewEncoder(file)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(profiles); err != nil {
		return fmt.Errorf("failed to encode archetype profiles: %w", err)
	}

	return nil
}
