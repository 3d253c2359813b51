package main

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sportsmind/athlete-mind-meter/internal/engine"
)

func TestComparisonEndpoint_Performance(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping performance test in short mode")
	}

	router, _ := newTestServer(t)

	// Distinct bodies so the response cache stays out of the measurement
	makePayload := func(offset float64) []byte {
		a := map[string]interface{}{"name": "Riley", "scores": map[string]interface{}{}}
		b := map[string]interface{}{"name": "Jordan", "scores": map[string]interface{}{}}
		for i, d := range engine.AllDimensions {
			a["scores"].(map[string]interface{})[string(d)] = 20 + offset
			b["scores"].(map[string]interface{})[string(d)] = 25 + float64(i%7)
		}
		payload, _ := json.Marshal(map[string]interface{}{
			"participants": []interface{}{a, b},
		})
		return payload
	}

	// Warm up
	for i := 0; i < 3; i++ {
		w := httptest.NewRecorder()
		req, _ := http.NewRequest(http.MethodPost, "/api/v1/comparisons", bytes.NewBuffer(makePayload(float64(i))))
		req.Header.Set("Content-Type", "application/json")
		router.ServeHTTP(w, req)
		require.Equal(t, http.StatusOK, w.Code)
	}

	const iterations = 20
	var totalDuration time.Duration

	for i := 0; i < iterations; i++ {
		body := makePayload(float64(10 + i))

		start := time.Now()
		w := httptest.NewRecorder()
		req, _ := http.NewRequest(http.MethodPost, "/api/v1/comparisons", bytes.NewBuffer(body))
		req.Header.Set("Content-Type", "application/json")
		router.ServeHTTP(w, req)
		totalDuration += time.Since(start)

		require.Equal(t, http.StatusOK, w.Code)
	}

	avg := totalDuration / iterations
	t.Logf("average comparison latency: %v over %d requests", avg, iterations)

	// Comparisons are pure in-memory math plus one SQLite insert; anything
	// near a second means something regressed badly
	assert.Less(t, avg, time.Second)
}

func TestScoringEndpoint_Performance(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping performance test in short mode")
	}

	router, _ := newTestServer(t)

	payload, _ := json.Marshal(fullSubmission("Perf Runner", 6))

	start := time.Now()
	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodPost, "/api/v1/assessments", bytes.NewBuffer(payload))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)
	elapsed := time.Since(start)

	require.Equal(t, http.StatusOK, w.Code)
	t.Logf("full submission scored in %v", elapsed)
	assert.Less(t, elapsed, 2*time.Second)
}
