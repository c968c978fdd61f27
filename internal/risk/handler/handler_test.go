package handler

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"anonid/internal/risk"
)

func newRiskRouter(t *testing.T) *chi.Mux {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	handler := New(risk.NewScorer(), logger, nil)
	r := chi.NewRouter()
	handler.Register(r)
	return r
}

func postJSON(t *testing.T, router *chi.Mux, path string, payload any) *httptest.ResponseRecorder {
	t.Helper()
	body, err := json.Marshal(payload)
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestCheckPrivacyRisk(t *testing.T) {
	router := newRiskRouter(t)

	w := postJSON(t, router, "/api/check_privacy_risk", map[string]string{
		"request_text": "Provide your full name and home address",
	})
	assert.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		RiskScore       int    `json:"risk_score"`
		RiskLevel       string `json:"risk_level"`
		OriginalRequest string `json:"original_request"`
		Flags           []struct {
			Keyword string `json:"keyword"`
		} `json:"flags"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, 60, resp.RiskScore)
	assert.Equal(t, "High", resp.RiskLevel)
	assert.Equal(t, "Provide your full name and home address", resp.OriginalRequest)
	require.Len(t, resp.Flags, 2)
	assert.Equal(t, "full name", resp.Flags[0].Keyword)
}

func TestCheckPrivacyRiskRequiresText(t *testing.T) {
	router := newRiskRouter(t)

	w := postJSON(t, router, "/api/check_privacy_risk", map[string]string{})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestBatchCheckKeepsOrderAndSummarizes(t *testing.T) {
	router := newRiskRouter(t)

	w := postJSON(t, router, "/api/batch_check", map[string][]string{
		"requests": {
			"Verify age over 18",
			"Provide city and gender",
			"Provide full name and home address",
		},
	})
	assert.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Results []struct {
			RiskLevel       string `json:"risk_level"`
			OriginalRequest string `json:"original_request"`
		} `json:"results"`
		Summary map[string]int `json:"summary"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.Results, 3)
	assert.Equal(t, "Verify age over 18", resp.Results[0].OriginalRequest)
	assert.Equal(t, "Safe", resp.Results[0].RiskLevel)
	assert.Equal(t, "Medium", resp.Results[1].RiskLevel)
	assert.Equal(t, "High", resp.Results[2].RiskLevel)
	assert.Equal(t, map[string]int{"Safe": 1, "Medium": 1, "High": 1}, resp.Summary)
}

func TestBatchCheckRejectsEmptyAndOversized(t *testing.T) {
	router := newRiskRouter(t)

	w := postJSON(t, router, "/api/batch_check", map[string][]string{"requests": {}})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	oversized := make([]string, batchLimit+1)
	for i := range oversized {
		oversized[i] = "Verify age over 18"
	}
	w = postJSON(t, router, "/api/batch_check", map[string][]string{"requests": oversized})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestRiskStats(t *testing.T) {
	router := newRiskRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/api/risk_stats", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	var resp map[string]int
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, 30, resp["weight_high"])
	assert.Equal(t, -20, resp["weight_safe"])
	assert.Equal(t, 60, resp["threshold_high"])
	assert.Positive(t, resp["high_keywords"])
}
