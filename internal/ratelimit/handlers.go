package ratelimit

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// HandleRateLimitStatus returns the current rate limit policy for the requesting client
func (rl *RateLimiter) HandleRateLimitStatus() gin.HandlerFunc {
	return func(c *gin.Context) {
		ip := c.ClientIP()

		status := gin.H{
			"ip": ip,
			"limits": gin.H{
				"ip_per_minute": gin.H{
					"limit":  rl.config.IPLimitPerMin,
					"period": "1 minute",
				},
				"submissions_per_week": gin.H{
					"limit":  rl.config.SubmissionLimitPerWeek,
					"period": "1 week",
				},
			},
			"timestamp": time.Now().Format(time.RFC3339),
		}

		if participantID, exists := c.Get("participant_id"); exists {
			if idStr, ok := participantID.(string); ok {
				status["participant_id"] = idStr
			}
		}

		c.JSON(http.StatusOK, status)
	}
}

// HandleAdminRateLimits returns comprehensive rate limit information (admin only)
func (rl *RateLimiter) HandleAdminRateLimits() gin.HandlerFunc {
	return func(c *gin.Context) {
		stats := rl.GetStats()

		var rateLimitMetrics map[string]interface{}
		if rl.metrics != nil {
			rateLimitMetrics = rl.metrics.GetRateLimitStats()
		}

		c.JSON(http.StatusOK, gin.H{
			"limiter_stats": stats,
			"metrics":       rateLimitMetrics,
			"timestamp":     time.Now().Format(time.RFC3339),
		})
	}
}

// HandleAdminResetParticipant clears the weekly submission counter for a
// participant (admin only)
func (rl *RateLimiter) HandleAdminResetParticipant() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		participantID := c.Param("participantID")

		if participantID == "" {
			c.JSON(http.StatusBadRequest, gin.H{
				"error": "participant ID is required",
			})
			return
		}

		if err := rl.ResetParticipant(ctx, participantID); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{
				"error":   "failed to reset rate limit",
				"details": err.Error(),
			})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"message":        "rate limit reset successfully",
			"participant_id": participantID,
			"timestamp":      time.Now().Format(time.RFC3339),
		})
	}
}

// HandleAdminResetIP clears rate limit state for an IP address (admin only)
func (rl *RateLimiter) HandleAdminResetIP() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		ip := c.Param("ip")

		if ip == "" {
			c.JSON(http.StatusBadRequest, gin.H{
				"error": "IP address is required",
			})
			return
		}

		if err := rl.ResetIP(ctx, ip); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{
				"error":   "failed to reset IP rate limits",
				"details": err.Error(),
			})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"message":   "IP rate limits reset successfully",
			"ip":        ip,
			"timestamp": time.Now().Format(time.RFC3339),
		})
	}
}
