package engine

import "time"

// Domain groups the measured qualities into the three assessment areas.
type Domain string

const (
	DomainSelfEsteem    Domain = "self_esteem"
	DomainAthleteMind   Domain = "athlete_mind"
	DomainSportsmanship Domain = "sportsmanship"
)

// Dimension identifies a single measured mental quality.
type Dimension string

const (
	// Self-esteem qualities
	SelfDetermination Dimension = "self_determination"
	SelfAcceptance    Dimension = "self_acceptance"
	SelfWorth         Dimension = "self_worth"
	SelfEfficacy      Dimension = "self_efficacy"

	// Athlete-mind qualities
	Introspection Dimension = "introspection"
	SelfControl   Dimension = "self_control"
	Devotion      Dimension = "devotion"
	Intuition     Dimension = "intuition"
	Sensitivity   Dimension = "sensitivity"
	Steadiness    Dimension = "steadiness"
	Comparison    Dimension = "comparison"
	ResultFocus   Dimension = "result"
	Assertion     Dimension = "assertion"
	Commitment    Dimension = "commitment"

	// Sportsmanship qualities
	Courage           Dimension = "courage"
	Resilience        Dimension = "resilience"
	Cooperation       Dimension = "cooperation"
	NaturalAcceptance Dimension = "natural_acceptance"
	NonRationality    Dimension = "non_rationality"
)

// AllDimensions lists every dimension in canonical order. Ordering matters:
// classification ties and comparison rankings resolve to the earliest entry.
var AllDimensions = []Dimension{
	SelfDetermination, SelfAcceptance, SelfWorth, SelfEfficacy,
	Introspection, SelfControl, Devotion, Intuition, Sensitivity,
	Steadiness, Comparison, ResultFocus, Assertion, Commitment,
	Courage, Resilience, Cooperation, NaturalAcceptance, NonRationality,
}

// DomainOf returns the assessment area a dimension belongs to.
func DomainOf(d Dimension) Domain {
	switch d {
	case SelfDetermination, SelfAcceptance, SelfWorth, SelfEfficacy:
		return DomainSelfEsteem
	case Courage, Resilience, Cooperation, NaturalAcceptance, NonRationality:
		return DomainSportsmanship
	default:
		return DomainAthleteMind
	}
}

// DomainLabels maps the assessment areas to display names.
var DomainLabels = map[Domain]string{
	DomainSelfEsteem:    "Self-Esteem",
	DomainAthleteMind:   "Athlete Mind",
	DomainSportsmanship: "Sportsmanship",
}

// DimensionLabels maps dimensions to human-readable names used in
// comparison guidance and insight text.
var DimensionLabels = map[Dimension]string{
	SelfDetermination: "Self-Determination",
	SelfAcceptance:    "Self-Acceptance",
	SelfWorth:         "Self-Worth",
	SelfEfficacy:      "Self-Efficacy",
	Introspection:     "Introspection",
	SelfControl:       "Self-Control",
	Devotion:          "Devotion",
	Intuition:         "Intuition",
	Sensitivity:       "Sensitivity",
	Steadiness:        "Steadiness",
	Comparison:        "Comparison",
	ResultFocus:       "Result Focus",
	Assertion:         "Assertion",
	Commitment:        "Commitment",
	Courage:           "Courage",
	Resilience:        "Resilience",
	Cooperation:       "Cooperation",
	NaturalAcceptance: "Natural Acceptance",
	NonRationality:    "Non-Rationality",
}

// QualityVector holds the scored value for each of the nineteen qualities.
// Self-esteem and athlete-mind values live on a 0-50 scale per dimension;
// sportsmanship values share the same scale with reverse-keyed items
// already folded in by the scorer.
type QualityVector struct {
	SelfDetermination float64 `json:"self_determination"`
	SelfAcceptance    float64 `json:"self_acceptance"`
	SelfWorth         float64 `json:"self_worth"`
	SelfEfficacy      float64 `json:"self_efficacy"`

	Introspection float64 `json:"introspection"`
	SelfControl   float64 `json:"self_control"`
	Devotion      float64 `json:"devotion"`
	Intuition     float64 `json:"intuition"`
	Sensitivity   float64 `json:"sensitivity"`
	Steadiness    float64 `json:"steadiness"`
	Comparison    float64 `json:"comparison"`
	ResultFocus   float64 `json:"result"`
	Assertion     float64 `json:"assertion"`
	Commitment    float64 `json:"commitment"`

	Courage           float64 `json:"courage"`
	Resilience        float64 `json:"resilience"`
	Cooperation       float64 `json:"cooperation"`
	NaturalAcceptance float64 `json:"natural_acceptance"`
	NonRationality    float64 `json:"non_rationality"`
}

// Value returns the score held for the given dimension.
func (v *QualityVector) Value(d Dimension) float64 {
	switch d {
	case SelfDetermination:
		return v.SelfDetermination
	case SelfAcceptance:
		return v.SelfAcceptance
	case SelfWorth:
		return v.SelfWorth
	case SelfEfficacy:
		return v.SelfEfficacy
	case Introspection:
		return v.Introspection
	case SelfControl:
		return v.SelfControl
	case Devotion:
		return v.Devotion
	case Intuition:
		return v.Intuition
	case Sensitivity:
		return v.Sensitivity
	case Steadiness:
		return v.Steadiness
	case Comparison:
		return v.Comparison
	case ResultFocus:
		return v.ResultFocus
	case Assertion:
		return v.Assertion
	case Commitment:
		return v.Commitment
	case Courage:
		return v.Courage
	case Resilience:
		return v.Resilience
	case Cooperation:
		return v.Cooperation
	case NaturalAcceptance:
		return v.NaturalAcceptance
	case NonRationality:
		return v.NonRationality
	}
	return 0
}

// SetValue stores a score for the given dimension.
func (v *QualityVector) SetValue(d Dimension, value float64) {
	switch d {
	case SelfDetermination:
		v.SelfDetermination = value
	case SelfAcceptance:
		v.SelfAcceptance = value
	case SelfWorth:
		v.SelfWorth = value
	case SelfEfficacy:
		v.SelfEfficacy = value
	case Introspection:
		v.Introspection = value
	case SelfControl:
		v.SelfControl = value
	case Devotion:
		v.Devotion = value
	case Intuition:
		v.Intuition = value
	case Sensitivity:
		v.Sensitivity = value
	case Steadiness:
		v.Steadiness = value
	case Comparison:
		v.Comparison = value
	case ResultFocus:
		v.ResultFocus = value
	case Assertion:
		v.Assertion = value
	case Commitment:
		v.Commitment = value
	case Courage:
		v.Courage = value
	case Resilience:
		v.Resilience = value
	case Cooperation:
		v.Cooperation = value
	case NaturalAcceptance:
		v.NaturalAcceptance = value
	case NonRationality:
		v.NonRationality = value
	}
}

// DomainTotal sums the dimensions belonging to one assessment area.
func (v *QualityVector) DomainTotal(domain Domain) float64 {
	total := 0.0
	for _, d := range AllDimensions {
		if DomainOf(d) == domain {
			total += v.Value(d)
		}
	}
	return total
}

// GrandTotal sums all nineteen dimensions.
func (v *QualityVector) GrandTotal() float64 {
	total := 0.0
	for _, d := range AllDimensions {
		total += v.Value(d)
	}
	return total
}

// Answer is a single Likert response resolved against the question catalog.
// Value carries the raw response; Reversed marks items keyed in the
// opposite direction. Min and Max carry the question's own bounds; when
// both are zero the scorer falls back to its scale.
type Answer struct {
	QuestionID string    `json:"question_id"`
	Dimension  Dimension `json:"dimension"`
	Value      float64   `json:"value"`
	Reversed   bool      `json:"reversed"`
	Min        float64   `json:"min,omitempty"`
	Max        float64   `json:"max,omitempty"`
}

// ScoreReport is the output of scoring one complete submission.
type ScoreReport struct {
	Vector             QualityVector `json:"scores"`
	SelfEsteemTotal    float64       `json:"self_esteem_total"`
	AthleteMindTotal   float64       `json:"athlete_mind_total"`
	SportsmanshipTotal float64       `json:"sportsmanship_total"`
	GrandTotal         float64       `json:"grand_total"`
	AnswerCount        int           `json:"answer_count"`
	// MissingDimensions is non-empty when the submission covered only a
	// subset of the nineteen qualities. Scoring still completes; callers
	// decide whether partial coverage is acceptable.
	MissingDimensions []Dimension `json:"missing_dimensions,omitempty"`
}

// Archetype names one of the five athlete mentality profiles.
type Archetype string

const (
	ArchetypeStriker   Archetype = "striker"
	ArchetypeAttacker  Archetype = "attacker"
	ArchetypePlaymaker Archetype = "playmaker"
	ArchetypeAnchor    Archetype = "anchor"
	ArchetypeDefender  Archetype = "defender"
)

// AllArchetypes lists the profiles in canonical order; classification ties
// resolve to the earliest entry.
var AllArchetypes = []Archetype{
	ArchetypeStriker, ArchetypeAttacker, ArchetypePlaymaker,
	ArchetypeAnchor, ArchetypeDefender,
}

// ArchetypeProfile defines how strongly each quality signals an archetype.
type ArchetypeProfile struct {
	Archetype   Archetype             `json:"archetype"`
	Label       string                `json:"label"`
	Description string                `json:"description"`
	Weights     map[Dimension]float64 `json:"weights"`
}

// ArchetypeScore is one archetype's affinity expressed as a percentage.
type ArchetypeScore struct {
	Archetype  Archetype `json:"archetype"`
	Raw        float64   `json:"raw"`
	Percentage float64   `json:"percentage"`
}

// Classification is the outcome of matching a quality vector against the
// archetype profiles. Scores is ranked best-first; Label and Description
// come from the winning profile.
type Classification struct {
	Archetype   Archetype        `json:"athlete_type"`
	Label       string           `json:"label"`
	Description string           `json:"description"`
	Scores      []ArchetypeScore `json:"scores"`
}

// QualityDifference describes the gap on one quality between the first two
// participants of a comparison.
type QualityDifference struct {
	Dimension   Dimension `json:"quality"`
	Label       string    `json:"label"`
	Difference  float64   `json:"difference"`
	FirstValue  float64   `json:"participant1_value"`
	SecondValue float64   `json:"participant2_value"`
}

// ParticipantSummary is the display view of one comparison participant:
// archetype leaning plus per-domain totals and averages. Third and fourth
// participants appear here and nowhere else in the report.
type ParticipantSummary struct {
	Name           string             `json:"name"`
	Archetype      Archetype          `json:"athlete_type,omitempty"`
	DomainTotals   map[Domain]float64 `json:"domain_totals"`
	DomainAverages map[Domain]float64 `json:"domain_averages"`
	GrandTotal     float64            `json:"grand_total"`
}

// ComparisonReport holds the full pairwise comparison output. Differences
// covers every quality ranked by absolute gap; TopGaps is the head of that
// ranking with templated guidance attached per entry. Summary narrates the
// pairing, and the effective/risky lists split the interaction advice by
// whether it builds on the gaps or guards against them.
type ComparisonReport struct {
	Participants          []ParticipantSummary `json:"participants"`
	Similarity            float64              `json:"similarity"`
	Differences           []QualityDifference  `json:"differences"`
	TopGaps               []QualityDifference  `json:"top_gaps"`
	Summary               string               `json:"mutual_understanding"`
	EffectiveInteractions []string             `json:"effective_interactions"`
	RiskyInteractions     []string             `json:"risky_interactions"`
	Guidance              []string             `json:"guidance"`
}

// HistoryEntry is one assessment occurrence in a participant's timeline.
// ImprovementRate is nil for the first entry and whenever the previous
// grand total was zero.
type HistoryEntry struct {
	ResultID        string        `json:"result_id"`
	TakenAt         time.Time     `json:"taken_at"`
	Vector          QualityVector `json:"scores"`
	Archetype       Archetype     `json:"athlete_type"`
	GrandTotal      float64       `json:"grand_total"`
	ImprovementRate *float64      `json:"improvement_rate"`
}

// HistoryFilter narrows a timeline. All set conditions combine with AND.
type HistoryFilter struct {
	From         *time.Time  `json:"from,omitempty"`
	To           *time.Time  `json:"to,omitempty"`
	Archetypes   []Archetype `json:"athlete_types,omitempty"`
	MinTotal     *float64    `json:"min_total,omitempty"`
	MaxTotal     *float64    `json:"max_total,omitempty"`
	OnlyImproved bool        `json:"only_improved,omitempty"`
}

// HistorySort selects the presentation order of a history page.
type HistorySort string

const (
	SortByDate  HistorySort = "date"
	SortByTotal HistorySort = "total"
)

// HistoryPage is one page of a filtered timeline. TotalCount counts the
// entries that survived filtering, not the page size.
type HistoryPage struct {
	Entries    []HistoryEntry `json:"entries"`
	TotalCount int            `json:"total_count"`
	Page       int            `json:"page"`
	PerPage    int            `json:"per_page"`
}
