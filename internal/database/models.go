package database

import (
	"time"

	"github.com/google/uuid"

	"github.com/sportsmind/athlete-mind-meter/internal/engine"
)

// Participant represents an athlete taking assessments
type Participant struct {
	ID        string    `json:"id" db:"id"`
	Name      string    `json:"name" db:"name"`
	Email     string    `json:"email,omitempty" db:"email"`
	IPAddress string    `json:"-" db:"ip_address"`
	UserAgent string    `json:"-" db:"user_agent"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

// AssessmentRecord is one persisted assessment outcome
type AssessmentRecord struct {
	ID            string               `json:"result_id" db:"id"`
	ParticipantID string               `json:"participant_id" db:"participant_id"`
	TakenAt       time.Time            `json:"taken_at" db:"taken_at"`
	Vector        engine.QualityVector `json:"scores"`

	SelfEsteemTotal    float64 `json:"self_esteem_total" db:"self_esteem_total"`
	AthleteMindTotal   float64 `json:"athlete_mind_total" db:"athlete_mind_total"`
	SportsmanshipTotal float64 `json:"sportsmanship_total" db:"sportsmanship_total"`
	GrandTotal         float64 `json:"grand_total" db:"grand_total"`

	Archetype          engine.Archetype `json:"athlete_type" db:"athlete_type"`
	SelfEsteemAnalysis string           `json:"self_esteem_analysis,omitempty" db:"self_esteem_analysis"`
	SportsmanshipText  string           `json:"sportsmanship_balance,omitempty" db:"sportsmanship_balance"`
	Strengths          string           `json:"-" db:"strengths"`  // JSON array
	Weaknesses         string           `json:"-" db:"weaknesses"` // JSON array

	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

// HistoryEntry converts the record into the engine's timeline shape
func (r *AssessmentRecord) HistoryEntry() engine.HistoryEntry {
	return engine.HistoryEntry{
		ResultID:   r.ID,
		TakenAt:    r.TakenAt,
		Vector:     r.Vector,
		Archetype:  r.Archetype,
		GrandTotal: r.GrandTotal,
	}
}

// ComparisonRecord is a persisted comparison for later retrieval
type ComparisonRecord struct {
	ID               string    `json:"comparison_id" db:"id"`
	ParticipantNames string    `json:"-" db:"participant_names"` // JSON array
	Similarity       float64   `json:"similarity" db:"similarity"`
	Report           string    `json:"-" db:"report"` // JSON ComparisonReport
	CreatedAt        time.Time `json:"created_at" db:"created_at"`
}

// SubmissionLog tracks assessment submissions for rate limiting
type SubmissionLog struct {
	ID            string    `json:"id" db:"id"`
	ParticipantID string    `json:"participant_id" db:"participant_id"`
	IPAddress     string    `json:"-" db:"ip_address"`
	Endpoint      string    `json:"endpoint" db:"endpoint"`
	Method        string    `json:"method" db:"method"`
	UserAgent     string    `json:"-" db:"user_agent"`
	CreatedAt     time.Time `json:"created_at" db:"created_at"`
}

// UsageStats represents weekly submission statistics
type UsageStats struct {
	ParticipantID       string    `json:"participant_id"`
	SubmissionsThisWeek int       `json:"submissions_this_week"`
	WeekStart           time.Time `json:"week_start"`
	WeekEnd             time.Time `json:"week_end"`
}

// NewParticipant creates a new participant with generated ID
func NewParticipant(name, ipAddress, userAgent string) *Participant {
	now := time.Now()
	return &Participant{
		ID:        uuid.New().String(),
		Name:      name,
		IPAddress: ipAddress,
		UserAgent: userAgent,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// NewSubmissionLog creates a new submission log entry
func NewSubmissionLog(participantID, ipAddress, endpoint, method, userAgent string) *SubmissionLog {
	return &SubmissionLog{
		ID:            uuid.New().String(),
		ParticipantID: participantID,
		IPAddress:     ipAddress,
		Endpoint:      endpoint,
		Method:        method,
		UserAgent:     userAgent,
		CreatedAt:     time.Now(),
	}
}
