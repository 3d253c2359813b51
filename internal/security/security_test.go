package security

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sportsmind/athlete-mind-meter/internal/database"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSecurityConfig(t *testing.T) {
	config := DefaultSecurityConfig()

	assert.Equal(t, 100, config.MaxNameLength)
	assert.True(t, config.EnableCORS)
	assert.Contains(t, config.AllowedOrigins, "http://localhost:3000")
	assert.Contains(t, config.AllowedOrigins, "http://localhost:5173")
	assert.Equal(t, 30*time.Second, config.RequestTimeout)
}

func TestValidateName(t *testing.T) {
	sm := NewSecurityMiddleware(DefaultSecurityConfig())

	tests := []struct {
		name        string
		input       string
		expectError bool
		errorMsg    string
	}{
		{
			name:        "simple name",
			input:       "Jordan Matthews",
			expectError: false,
		},
		{
			name:        "name with punctuation",
			input:       "O'Neill-Smith Jr.",
			expectError: false,
		},
		{
			name:        "unicode name",
			input:       "佐藤 花子",
			expectError: false,
		},
		{
			name:        "empty name",
			input:       "",
			expectError: true,
			errorMsg:    "name is required",
		},
		{
			name:        "name too long",
			input:       strings.Repeat("a", 101),
			expectError: true,
			errorMsg:    "exceeds maximum length",
		},
		{
			name:        "null bytes",
			input:       "test\x00name",
			expectError: true,
			errorMsg:    "invalid characters",
		},
		{
			name:        "invalid UTF-8",
			input:       "test\xff\xfename",
			expectError: true,
			errorMsg:    "invalid UTF-8",
		},
		{
			name:        "script tag",
			input:       "<script>alert(1)</script>",
			expectError: true,
			errorMsg:    "suspicious patterns",
		},
		{
			name:        "sql comment",
			input:       "Robert'); -- ",
			expectError: true,
			errorMsg:    "suspicious patterns",
		},
		{
			name:        "unsupported symbol",
			input:       "name@example",
			expectError: true,
			errorMsg:    "unsupported character",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := sm.ValidateName(tt.input)
			if tt.expectError {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.errorMsg)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestSanitizeInput(t *testing.T) {
	sm := NewSecurityMiddleware(DefaultSecurityConfig())

	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "trims whitespace",
			input:    "  Jordan  ",
			expected: "Jordan",
		},
		{
			name:     "removes script tags with content",
			input:    "Jordan<script>alert('x')</script>Matthews",
			expected: "JordanMatthews",
		},
		{
			name:     "strips html tags keeping content",
			input:    "<b>Jordan</b> Matthews",
			expected: "Jordan Matthews",
		},
		{
			name:     "collapses whitespace",
			input:    "Jordan    \t Matthews",
			expected: "Jordan Matthews",
		},
		{
			name:     "decodes html entities",
			input:    "O&#39;Neill",
			expected: "O'Neill",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, sm.SanitizeInput(tt.input))
		})
	}
}

func TestSessionAuth(t *testing.T) {
	gin.SetMode(gin.TestMode)

	db, err := database.NewDB(t.TempDir())
	require.NoError(t, err)
	defer db.Close()

	repo := database.NewRepository(db)
	service := database.NewParticipantService(repo, "test-session-secret")

	participant, err := repo.GetOrCreateParticipant("Casey Reyes", "203.0.113.9", "test-agent")
	require.NoError(t, err)

	token, err := service.GenerateSessionToken(participant.ID)
	require.NoError(t, err)

	sm := NewSecurityMiddleware(DefaultSecurityConfig())
	sm.SetParticipantService(service)

	router := gin.New()
	router.Use(sm.SessionAuth)
	router.GET("/whoami", func(c *gin.Context) {
		id, exists := c.Get("participant_id")
		if !exists {
			c.JSON(http.StatusOK, gin.H{"participant_id": nil})
			return
		}
		c.JSON(http.StatusOK, gin.H{"participant_id": id})
	})

	t.Run("valid token resolves participant", func(t *testing.T) {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		router.ServeHTTP(w, req)

		require.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), participant.ID)
	})

	t.Run("missing header passes through", func(t *testing.T) {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
		router.ServeHTTP(w, req)

		require.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "null")
	})

	t.Run("garbage token rejected", func(t *testing.T) {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
		req.Header.Set("Authorization", "Bearer not-a-jwt")
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("wrong scheme rejected", func(t *testing.T) {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
		req.Header.Set("Authorization", "Basic dXNlcjpwYXNz")
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}

func TestValidateContentType(t *testing.T) {
	gin.SetMode(gin.TestMode)

	sm := NewSecurityMiddleware(DefaultSecurityConfig())

	router := gin.New()
	router.Use(sm.ValidateContentType)
	router.POST("/echo", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	tests := []struct {
		name        string
		contentType string
		wantStatus  int
	}{
		{"json accepted", "application/json", http.StatusOK},
		{"json with charset accepted", "application/json; charset=utf-8", http.StatusOK},
		{"form accepted", "application/x-www-form-urlencoded", http.StatusOK},
		{"no content type accepted", "", http.StatusOK},
		{"xml rejected", "application/xml", http.StatusUnsupportedMediaType},
		{"plain text rejected", "text/plain", http.StatusUnsupportedMediaType},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodPost, "/echo", strings.NewReader("{}"))
			if tt.contentType != "" {
				req.Header.Set("Content-Type", tt.contentType)
			}
			router.ServeHTTP(w, req)
			assert.Equal(t, tt.wantStatus, w.Code)
		})
	}
}

func TestSecurityHeadersMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)

	router := gin.New()
	router.Use(SecurityHeadersMiddleware())
	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, "DENY", w.Header().Get("X-Frame-Options"))
	assert.Equal(t, "nosniff", w.Header().Get("X-Content-Type-Options"))
	assert.Equal(t, "strict-origin-when-cross-origin", w.Header().Get("Referrer-Policy"))
	assert.Contains(t, w.Header().Get("Content-Security-Policy"), "default-src 'self'")
	assert.Empty(t, w.Header().Get("Strict-Transport-Security"))
}
