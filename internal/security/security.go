package security

import (
	"context"
	"fmt"
	"net/http"
	"regexp"
	"strconv"
	"strings"
	"time"
	"unicode"
	"unicode/utf8"

	"github.com/gin-gonic/gin"
	"github.com/sportsmind/athlete-mind-meter/internal/database"
)

// SecurityConfig holds security configuration
type SecurityConfig struct {
	MaxNameLength  int           `json:"max_name_length"`
	EnableCORS     bool          `json:"enable_cors"`
	AllowedOrigins []string      `json:"allowed_origins"`
	TrustedProxies []string      `json:"trusted_proxies"`
	RequestTimeout time.Duration `json:"request_timeout"`
}

// DefaultSecurityConfig returns secure defaults
func DefaultSecurityConfig() SecurityConfig {
	return SecurityConfig{
		MaxNameLength:  100,
		EnableCORS:     true,
		AllowedOrigins: []string{"http://localhost:3000", "http://localhost:5173"},
		TrustedProxies: []string{"127.0.0.1", "::1", "10.0.0.0/8", "172.16.0.0/12", "192.168.0.0/16"},
		RequestTimeout: 30 * time.Second,
	}
}

// SecurityMiddleware provides input validation and session handling middleware
type SecurityMiddleware struct {
	config             SecurityConfig
	participantService *database.ParticipantService
}

// NewSecurityMiddleware creates a new security middleware instance
func NewSecurityMiddleware(config SecurityConfig) *SecurityMiddleware {
	return &SecurityMiddleware{
		config: config,
	}
}

// SetParticipantService sets the participant service used for session token validation
func (sm *SecurityMiddleware) SetParticipantService(participantService *database.ParticipantService) {
	sm.participantService = participantService
}

// ValidateName validates a participant display name
func (sm *SecurityMiddleware) ValidateName(name string) error {
	if name == "" {
		return fmt.Errorf("name is required")
	}

	if len(name) > sm.config.MaxNameLength {
		return fmt.Errorf("name exceeds maximum length of %d characters", sm.config.MaxNameLength)
	}

	// Null bytes signal an injection attempt
	if strings.Contains(name, "\x00") {
		return fmt.Errorf("name contains invalid characters")
	}

	if !utf8.ValidString(name) {
		return fmt.Errorf("name contains invalid UTF-8 encoding")
	}

	suspiciousPatterns := []string{
		`<script`, `</script>`, `javascript:`,
		`union select`, `drop table`, `alter table`,
		`--`, `/*`, `*/`, `xp_`, `sp_`,
	}

	nameLower := strings.ToLower(name)
	for _, pattern := range suspiciousPatterns {
		if strings.Contains(nameLower, pattern) {
			return fmt.Errorf("name contains suspicious patterns")
		}
	}

	// Names carry letters, digits and common punctuation only
	for _, r := range name {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || unicode.IsSpace(r) {
			continue
		}
		switch r {
		case '-', '\'', '.', ',':
			continue
		}
		return fmt.Errorf("name contains unsupported character %q", r)
	}

	return nil
}

// SanitizeInput sanitizes user input by removing potentially dangerous content
func (sm *SecurityMiddleware) SanitizeInput(input string) string {
	input = strings.TrimSpace(input)

	// Remove script tags and their content
	scriptPattern := regexp.MustCompile(`(?i)<script[^>]*>.*?</script>`)
	input = scriptPattern.ReplaceAllString(input, "")

	// Remove other HTML tags but keep the content between them
	htmlTagPattern := regexp.MustCompile(`<[^>]+>`)
	input = htmlTagPattern.ReplaceAllString(input, "")

	// Collapse excessive whitespace
	input = regexp.MustCompile(`\s+`).ReplaceAllString(input, " ")

	htmlEntities := map[string]string{
		"&lt;":   "<",
		"&gt;":   ">",
		"&amp;":  "&",
		"&quot;": "\"",
		"&#x27;": "'",
		"&#39;":  "'",
	}

	for entity, char := range htmlEntities {
		input = strings.ReplaceAll(input, entity, char)
	}

	return input
}

// SessionAuth resolves the participant from a Bearer session token and stores
// the participant ID in the request context. Requests without a token pass
// through untouched; the submission flow creates a participant on first
// contact and hands back a token for subsequent requests.
func (sm *SecurityMiddleware) SessionAuth(c *gin.Context) {
	if sm.participantService == nil {
		c.Next()
		return
	}

	header := c.GetHeader("Authorization")
	if header == "" {
		c.Next()
		return
	}

	token := strings.TrimPrefix(header, "Bearer ")
	if token == header || token == "" {
		c.JSON(http.StatusUnauthorized, gin.H{
			"error": "authorization header must use the Bearer scheme",
		})
		c.Abort()
		return
	}

	participantID, err := sm.participantService.ValidateSessionToken(token)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{
			"error": "invalid or expired session token",
		})
		c.Abort()
		return
	}

	c.Set("participant_id", participantID)
	c.Next()
}

// ValidateContentType validates request content type
func (sm *SecurityMiddleware) ValidateContentType(c *gin.Context) {
	contentType := c.GetHeader("Content-Type")

	allowedTypes := []string{
		"application/json",
		"application/x-www-form-urlencoded",
		"multipart/form-data",
	}

	if contentType != "" {
		found := false
		for _, allowed := range allowedTypes {
			if strings.Contains(strings.ToLower(contentType), allowed) {
				found = true
				break
			}
		}

		if !found {
			c.JSON(http.StatusUnsupportedMediaType, gin.H{
				"error": "unsupported content type",
			})
			c.Abort()
			return
		}
	}

	c.Next()
}

// RequestTimeout enforces request timeout
func (sm *SecurityMiddleware) RequestTimeout(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), sm.config.RequestTimeout)
	defer cancel()

	c.Request = c.Request.WithContext(ctx)

	c.Header("X-Timeout", strconv.Itoa(int(sm.config.RequestTimeout.Seconds())))

	c.Next()
}
