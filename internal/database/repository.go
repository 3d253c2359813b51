package database

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/sportsmind/athlete-mind-meter/internal/engine"
)

// resultColumns is the scan order shared by every assessment_results query.
const resultColumns = `id, participant_id, taken_at,
	self_determination, self_acceptance, self_worth, self_efficacy,
	introspection, self_control, devotion, intuition, sensitivity,
	steadiness, comparison, result, assertion, commitment,
	courage, resilience, cooperation, natural_acceptance, non_rationality,
	self_esteem_total, athlete_mind_total, sportsmanship_total, grand_total,
	athlete_type, self_esteem_analysis, sportsmanship_balance, strengths, weaknesses,
	created_at`

// Repository handles database operations
type Repository struct {
	db *DB
}

// NewRepository creates a new repository
func NewRepository(db *DB) *Repository {
	return &Repository{db: db}
}

// GetOrCreateParticipant finds the participant matching both name and IP
// address, or registers a new one. Matching on the pair keeps different
// people behind a shared address (teammates, a family router) apart.
func (r *Repository) GetOrCreateParticipant(name, ipAddress, userAgent string) (*Participant, error) {
	var p Participant
	err := r.db.QueryRow(`
		SELECT id, name, email, ip_address, user_agent, created_at, updated_at
		FROM participants
		WHERE ip_address = ? AND name = ?
		ORDER BY created_at DESC
		LIMIT 1
	`, ipAddress, name).Scan(
		&p.ID, &p.Name, &p.Email, &p.IPAddress, &p.UserAgent,
		&p.CreatedAt, &p.UpdatedAt,
	)

	if err == nil {
		_, err = r.db.Exec(`
			UPDATE participants SET updated_at = ?, user_agent = ? WHERE id = ?
		`, time.Now(), userAgent, p.ID)
		if err != nil {
			return nil, fmt.Errorf("failed to update participant: %w", err)
		}
		return &p, nil
	}

	if err != sql.ErrNoRows {
		return nil, fmt.Errorf("failed to query participant: %w", err)
	}

	p = *NewParticipant(name, ipAddress, userAgent)
	_, err = r.db.Exec(`
		INSERT INTO participants (id, name, email, ip_address, user_agent, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`, p.ID, p.Name, p.Email, p.IPAddress, p.UserAgent, p.CreatedAt, p.UpdatedAt)

	if err != nil {
		return nil, fmt.Errorf("failed to create participant: %w", err)
	}

	return &p, nil
}

// GetParticipant fetches a participant by ID
func (r *Repository) GetParticipant(id string) (*Participant, error) {
	var p Participant
	err := r.db.QueryRow(`
		SELECT id, name, email, ip_address, user_agent, created_at, updated_at
		FROM participants WHERE id = ?
	`, id).Scan(
		&p.ID, &p.Name, &p.Email, &p.IPAddress, &p.UserAgent,
		&p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// SaveResult persists one assessment outcome
func (r *Repository) SaveResult(rec *AssessmentRecord) error {
	if rec.ID == "" {
		rec.ID = uuid.New().String()
	}
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = time.Now()
	}
	if rec.TakenAt.IsZero() {
		rec.TakenAt = rec.CreatedAt
	}

	v := &rec.Vector
	_, err := r.db.Exec(`
		INSERT INTO assessment_results (
			id, participant_id, taken_at,
			self_determination, self_acceptance, self_worth, self_efficacy,
			introspection, self_control, devotion, intuition, sensitivity,
			steadiness, comparison, result, assertion, commitment,
			courage, resilience, cooperation, natural_acceptance, non_rationality,
			self_esteem_total, athlete_mind_total, sportsmanship_total, grand_total,
			athlete_type, self_esteem_analysis, sportsmanship_balance, strengths, weaknesses,
			created_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`,
		rec.ID, rec.ParticipantID, rec.TakenAt,
		v.SelfDetermination, v.SelfAcceptance, v.SelfWorth, v.SelfEfficacy,
		v.Introspection, v.SelfControl, v.Devotion, v.Intuition, v.Sensitivity,
		v.Steadiness, v.Comparison, v.ResultFocus, v.Assertion, v.Commitment,
		v.Courage, v.Resilience, v.Cooperation, v.NaturalAcceptance, v.NonRationality,
		rec.SelfEsteemTotal, rec.AthleteMindTotal, rec.SportsmanshipTotal, rec.GrandTotal,
		rec.Archetype, rec.SelfEsteemAnalysis, rec.SportsmanshipText, rec.Strengths, rec.Weaknesses,
		rec.CreatedAt,
	)

	if err != nil {
		return fmt.Errorf("failed to save assessment result: %w", err)
	}

	return nil
}

func scanResult(row interface{ Scan(...interface{}) error }) (*AssessmentRecord, error) {
	var rec AssessmentRecord
	v := &rec.Vector
	err := row.Scan(
		&rec.ID, &rec.ParticipantID, &rec.TakenAt,
		&v.SelfDetermination, &v.SelfAcceptance, &v.SelfWorth, &v.SelfEfficacy,
		&v.Introspection, &v.SelfControl, &v.Devotion, &v.Intuition, &v.Sensitivity,
		&v.Steadiness, &v.Comparison, &v.ResultFocus, &v.Assertion, &v.Commitment,
		&v.Courage, &v.Resilience, &v.Cooperation, &v.NaturalAcceptance, &v.NonRationality,
		&rec.SelfEsteemTotal, &rec.AthleteMindTotal, &rec.SportsmanshipTotal, &rec.GrandTotal,
		&rec.Archetype, &rec.SelfEsteemAnalysis, &rec.SportsmanshipText, &rec.Strengths, &rec.Weaknesses,
		&rec.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &rec, nil
}

// ResultsForParticipant returns every assessment a participant has taken,
// oldest first
func (r *Repository) ResultsForParticipant(participantID string) ([]AssessmentRecord, error) {
	rows, err := r.db.Query(fmt.Sprintf(`
		SELECT %s FROM assessment_results
		WHERE participant_id = ?
		ORDER BY taken_at ASC
	`, resultColumns), participantID)
	if err != nil {
		return nil, fmt.Errorf("failed to query results: %w", err)
	}
	defer rows.Close()

	var records []AssessmentRecord
	for rows.Next() {
		rec, err := scanResult(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan result: %w", err)
		}
		records = append(records, *rec)
	}

	return records, rows.Err()
}

// LatestResult returns a participant's most recent assessment, or
// sql.ErrNoRows when none exists
func (r *Repository) LatestResult(participantID string) (*AssessmentRecord, error) {
	row := r.db.QueryRow(fmt.Sprintf(`
		SELECT %s FROM assessment_results
		WHERE participant_id = ?
		ORDER BY taken_at DESC
		LIMIT 1
	`, resultColumns), participantID)

	return scanResult(row)
}

// SaveComparison stores a comparison report for later retrieval
func (r *Repository) SaveComparison(names []string, report *engine.ComparisonReport) (*ComparisonRecord, error) {
	nameJSON, err := json.Marshal(names)
	if err != nil {
		return nil, fmt.Errorf("failed to encode participant names: %w", err)
	}
	reportJSON, err := json.Marshal(report)
	if err != nil {
		return nil, fmt.Errorf("failed to encode comparison report: %w", err)
	}

	rec := &ComparisonRecord{
		ID:               uuid.New().String(),
		ParticipantNames: string(nameJSON),
		Similarity:       report.Similarity,
		Report:           string(reportJSON),
		CreatedAt:        time.Now(),
	}

	stmt, err := r.db.GetPreparedStatement("insert_comparison")
	if err != nil {
		return nil, err
	}

	if _, err := stmt.Exec(rec.ID, rec.ParticipantNames, rec.Similarity, rec.Report, rec.CreatedAt); err != nil {
		return nil, fmt.Errorf("failed to save comparison: %w", err)
	}

	return rec, nil
}

// GetComparison fetches a stored comparison and decodes its report
func (r *Repository) GetComparison(id string) (*ComparisonRecord, []string, *engine.ComparisonReport, error) {
	stmt, err := r.db.GetPreparedStatement("get_comparison")
	if err != nil {
		return nil, nil, nil, err
	}

	var rec ComparisonRecord
	err = stmt.QueryRow(id).Scan(&rec.ID, &rec.ParticipantNames, &rec.Similarity, &rec.Report, &rec.CreatedAt)
	if err != nil {
		return nil, nil, nil, err
	}

	var names []string
	if err := json.Unmarshal([]byte(rec.ParticipantNames), &names); err != nil {
		return nil, nil, nil, fmt.Errorf("failed to decode participant names: %w", err)
	}

	var report engine.ComparisonReport
	if err := json.Unmarshal([]byte(rec.Report), &report); err != nil {
		return nil, nil, nil, fmt.Errorf("failed to decode comparison report: %w", err)
	}

	return &rec, names, &report, nil
}

// LogSubmission logs an assessment submission
func (r *Repository) LogSubmission(participantID, ipAddress, endpoint, method, userAgent string) error {
	entry := NewSubmissionLog(participantID, ipAddress, endpoint, method, userAgent)
	_, err := r.db.Exec(`
		INSERT INTO submission_logs (id, participant_id, ip_address, endpoint, method, user_agent, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`, entry.ID, entry.ParticipantID, entry.IPAddress, entry.Endpoint, entry.Method, entry.UserAgent, entry.CreatedAt)

	if err != nil {
		return fmt.Errorf("failed to log submission: %w", err)
	}

	return nil
}

// GetWeeklyUsage gets submission statistics for a participant for the
// current week
func (r *Repository) GetWeeklyUsage(participantID string) (*UsageStats, error) {
	now := time.Now()

	// Get the start of the current week (Monday)
	weekStart := now.AddDate(0, 0, -int(now.Weekday()-time.Monday))
	if now.Weekday() == time.Sunday {
		weekStart = weekStart.AddDate(0, 0, -7)
	}
	weekStart = time.Date(weekStart.Year(), weekStart.Month(), weekStart.Day(), 0, 0, 0, 0, weekStart.Location())

	weekEnd := weekStart.AddDate(0, 0, 7)

	var count int
	err := r.db.QueryRow(`
		SELECT COUNT(*) FROM submission_logs
		WHERE participant_id = ? AND created_at >= ? AND created_at < ?
	`, participantID, weekStart, weekEnd).Scan(&count)

	if err != nil {
		return nil, fmt.Errorf("failed to count submissions: %w", err)
	}

	return &UsageStats{
		ParticipantID:       participantID,
		SubmissionsThisWeek: count,
		WeekStart:           weekStart,
		WeekEnd:             weekEnd,
	}, nil
}

// CanSubmit checks whether a participant is inside the weekly submission cap
func (r *Repository) CanSubmit(participantID string, weeklyLimit int) (bool, *UsageStats, error) {
	usage, err := r.GetWeeklyUsage(participantID)
	if err != nil {
		return false, nil, err
	}

	return usage.SubmissionsThisWeek < weeklyLimit, usage, nil
}
