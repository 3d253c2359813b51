package database

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// DefaultWeeklySubmissionLimit caps how many assessments one participant
// can submit per week.
const DefaultWeeklySubmissionLimit = 7

// ParticipantService provides business logic for participant management
type ParticipantService struct {
	repo        *Repository
	jwtSecret   []byte
	weeklyLimit int
}

// NewParticipantService creates a new participant service
func NewParticipantService(repo *Repository, jwtSecret string) *ParticipantService {
	return &ParticipantService{
		repo:        repo,
		jwtSecret:   []byte(jwtSecret),
		weeklyLimit: DefaultWeeklySubmissionLimit,
	}
}

// SubmissionResult represents the outcome of processing a submission attempt
type SubmissionResult struct {
	Participant *Participant `json:"participant"`
	Usage       *UsageStats  `json:"usage"`
	CanSubmit   bool         `json:"can_submit"`
	Logged      bool         `json:"logged"`
}

// ProcessSubmission resolves the participant for a request and enforces
// the weekly submission cap, logging the submission when allowed
func (s *ParticipantService) ProcessSubmission(name, ipAddress, userAgent, endpoint, method string) (*SubmissionResult, error) {
	participant, err := s.repo.GetOrCreateParticipant(name, ipAddress, userAgent)
	if err != nil {
		return nil, fmt.Errorf("failed to get/create participant: %w", err)
	}

	canSubmit, usage, err := s.repo.CanSubmit(participant.ID, s.weeklyLimit)
	if err != nil {
		return nil, fmt.Errorf("failed to check submission limits: %w", err)
	}

	result := &SubmissionResult{
		Participant: participant,
		Usage:       usage,
		CanSubmit:   canSubmit,
	}

	if canSubmit {
		if err := s.repo.LogSubmission(participant.ID, ipAddress, endpoint, method, userAgent); err != nil {
			return nil, fmt.Errorf("failed to log submission: %w", err)
		}
		result.Logged = true
	}

	return result, nil
}

// GetRemainingSubmissions returns how many submissions a participant has
// left this week
func (s *ParticipantService) GetRemainingSubmissions(participantID string) (int, error) {
	usage, err := s.repo.GetWeeklyUsage(participantID)
	if err != nil {
		return 0, err
	}

	remaining := s.weeklyLimit - usage.SubmissionsThisWeek
	if remaining < 0 {
		remaining = 0
	}

	return remaining, nil
}

// GenerateSessionToken generates a JWT token for the participant session
func (s *ParticipantService) GenerateSessionToken(participantID string) (string, error) {
	claims := jwt.MapClaims{
		"participant_id": participantID,
		"exp":            time.Now().Add(24 * time.Hour).Unix(),
		"iat":            time.Now().Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString(s.jwtSecret)
	if err != nil {
		return "", fmt.Errorf("failed to generate token: %w", err)
	}

	return tokenString, nil
}

// ValidateSessionToken validates a JWT token and returns the participant ID
func (s *ParticipantService) ValidateSessionToken(tokenString string) (string, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.jwtSecret, nil
	})

	if err != nil {
		return "", err
	}

	if claims, ok := token.Claims.(jwt.MapClaims); ok && token.Valid {
		participantID, ok := claims["participant_id"].(string)
		if !ok {
			return "", fmt.Errorf("participant_id not found in token")
		}
		return participantID, nil
	}

	return "", fmt.Errorf("invalid token")
}

// ParticipantStats represents submission statistics for one participant
type ParticipantStats struct {
	ParticipantID        string    `json:"participant_id"`
	SubmissionsThisWeek  int       `json:"submissions_this_week"`
	RemainingSubmissions int       `json:"remaining_submissions"`
	WeekStart            time.Time `json:"week_start"`
	WeekEnd              time.Time `json:"week_end"`
}

// GetParticipantStats returns comprehensive submission statistics
func (s *ParticipantService) GetParticipantStats(participantID string) (*ParticipantStats, error) {
	usage, err := s.repo.GetWeeklyUsage(participantID)
	if err != nil {
		return nil, err
	}

	remaining, err := s.GetRemainingSubmissions(participantID)
	if err != nil {
		return nil, err
	}

	return &ParticipantStats{
		ParticipantID:        participantID,
		SubmissionsThisWeek:  usage.SubmissionsThisWeek,
		RemainingSubmissions: remaining,
		WeekStart:            usage.WeekStart,
		WeekEnd:              usage.WeekEnd,
	}, nil
}
