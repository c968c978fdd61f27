// Package handler exposes the privacy risk engine over HTTP: single checks,
// parallel batch checks, and the table statistics endpoint.
package handler

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"golang.org/x/sync/errgroup"

	"anonid/internal/platform/metrics"
	"anonid/internal/risk"
	dErrors "anonid/pkg/domain-errors"
	"anonid/pkg/platform/httputil"
	"anonid/pkg/requestcontext"
)

// batchLimit bounds one batch_check call; larger batches should page.
const batchLimit = 100

// Handler wires risk endpoints to the scorer. The scorer is immutable and
// safe for concurrent use, so the handler calls it directly without a
// service indirection.
type Handler struct {
	scorer  *risk.Scorer
	logger  *slog.Logger
	metrics *metrics.Metrics
}

// New constructs a risk handler with its dependencies.
func New(scorer *risk.Scorer, logger *slog.Logger, m *metrics.Metrics) *Handler {
	return &Handler{scorer: scorer, logger: logger, metrics: m}
}

// Register mounts risk endpoints on the router.
func (h *Handler) Register(r chi.Router) {
	r.Post("/api/check_privacy_risk", h.HandleCheck)
	r.Post("/api/batch_check", h.HandleBatchCheck)
	r.Get("/api/risk_stats", h.HandleStats)
}

type checkRequest struct {
	RequestText string `json:"request_text"`
}

type checkResponse struct {
	risk.Verdict
	OriginalRequest string `json:"original_request"`
}

// HandleCheck handles POST /api/check_privacy_risk requests.
func (h *Handler) HandleCheck(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	req, ok := httputil.Decode[checkRequest](w, r, h.logger)
	if !ok {
		return
	}
	if req.RequestText == "" {
		httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "request_text is required"))
		return
	}

	verdict := h.scorer.Score(req.RequestText)
	h.metrics.ObserveRiskCheck(string(verdict.Level), verdict.Score)

	h.logger.InfoContext(ctx, "risk check",
		"request_id", requestcontext.RequestID(ctx),
		"risk_score", verdict.Score,
		"risk_level", verdict.Level,
	)
	httputil.WriteJSON(w, http.StatusOK, checkResponse{
		Verdict:         verdict,
		OriginalRequest: req.RequestText,
	})
}

type batchRequest struct {
	Requests []string `json:"requests"`
}

type batchResponse struct {
	Results []checkResponse `json:"results"`
	Summary map[string]int  `json:"summary"`
}

// HandleBatchCheck handles POST /api/batch_check requests. Each text is
// scored concurrently; results keep the order of the input slice.
func (h *Handler) HandleBatchCheck(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	req, ok := httputil.Decode[batchRequest](w, r, h.logger)
	if !ok {
		return
	}
	if len(req.Requests) == 0 {
		httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "requests is required"))
		return
	}
	if len(req.Requests) > batchLimit {
		httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "too many requests in one batch"))
		return
	}

	results := make([]checkResponse, len(req.Requests))
	g, _ := errgroup.WithContext(ctx)
	g.SetLimit(8)
	for i, text := range req.Requests {
		g.Go(func() error {
			verdict := h.scorer.Score(text)
			h.metrics.ObserveRiskCheck(string(verdict.Level), verdict.Score)
			results[i] = checkResponse{Verdict: verdict, OriginalRequest: text}
			return nil
		})
	}
	_ = g.Wait()

	summary := map[string]int{
		string(risk.LevelSafe):   0,
		string(risk.LevelMedium): 0,
		string(risk.LevelHigh):   0,
	}
	for _, res := range results {
		summary[string(res.Level)]++
	}

	h.logger.InfoContext(ctx, "batch risk check",
		"request_id", requestcontext.RequestID(ctx),
		"batch_size", len(req.Requests),
	)
	httputil.WriteJSON(w, http.StatusOK, batchResponse{Results: results, Summary: summary})
}

type statsResponse struct {
	HighKeywords    int `json:"high_keywords"`
	MediumKeywords  int `json:"medium_keywords"`
	SafePatterns    int `json:"safe_patterns"`
	WeightHigh      int `json:"weight_high"`
	WeightMedium    int `json:"weight_medium"`
	WeightSafe      int `json:"weight_safe"`
	ThresholdMedium int `json:"threshold_medium"`
	ThresholdHigh   int `json:"threshold_high"`
}

// HandleStats handles GET /api/risk_stats requests.
func (h *Handler) HandleStats(w http.ResponseWriter, _ *http.Request) {
	stats := h.scorer.TableStats()
	httputil.WriteJSON(w, http.StatusOK, statsResponse{
		HighKeywords:    stats.HighKeywords,
		MediumKeywords:  stats.MediumKeywords,
		SafePatterns:    stats.SafePatterns,
		WeightHigh:      risk.WeightHigh,
		WeightMedium:    risk.WeightMedium,
		WeightSafe:      risk.WeightSafe,
		ThresholdMedium: risk.ThresholdMedium,
		ThresholdHigh:   risk.ThresholdHigh,
	})
}
