// Package handler exposes the disclosure gate: field-level access to
// encrypted identity data, gated on the privacy risk of the stated purpose.
package handler

import (
	"context"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"anonid/internal/audit"
	"anonid/internal/disclosure"
	"anonid/internal/identity"
	"anonid/internal/risk"
	"anonid/pkg/platform/httputil"
	"anonid/pkg/requestcontext"
)

// Service defines the operations the disclosure endpoint depends on.
type Service interface {
	Evaluate(ctx context.Context, record identity.Record, purpose string, requestedFields []string) (disclosure.Decision, error)
}

// RecordFinder resolves a NIN to its stored record.
type RecordFinder interface {
	LookupByNIN(ctx context.Context, nin string) (identity.Record, error)
}

// Recorder appends to the access audit log.
type Recorder interface {
	Record(ctx context.Context, entry audit.Entry)
}

// Handler wires the access_data endpoint to the gate.
type Handler struct {
	gate     Service
	records  RecordFinder
	recorder Recorder
	logger   *slog.Logger
}

// New constructs a disclosure handler with its dependencies.
func New(gate Service, records RecordFinder, recorder Recorder, logger *slog.Logger) *Handler {
	return &Handler{
		gate:     gate,
		records:  records,
		recorder: recorder,
		logger:   logger,
	}
}

// Register mounts the disclosure endpoint on the router.
func (h *Handler) Register(r chi.Router) {
	r.Post("/api/access_data", h.HandleAccessData)
}

type accessRequest struct {
	NIN                 string   `json:"nin"`
	RequestedFields     []string `json:"requested_fields"`
	VerificationRequest string   `json:"verification_request"`
}

type accessResponse struct {
	AccessGranted bool              `json:"access_granted"`
	Data          map[string]string `json:"data"`
	RiskAnalysis  risk.Verdict      `json:"risk_analysis"`
	Message       string            `json:"message"`
}

// HandleAccessData handles POST /api/access_data requests. When the caller
// gives no verification_request, a purpose is synthesized from the requested
// fields so the risk engine still sees what is being asked for.
func (h *Handler) HandleAccessData(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	start := time.Now()
	requestID := requestcontext.RequestID(ctx)

	req, ok := httputil.Decode[accessRequest](w, r, h.logger)
	if !ok {
		return
	}
	nin := strings.TrimSpace(req.NIN)

	record, err := h.records.LookupByNIN(ctx, nin)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	purpose := req.VerificationRequest
	if purpose == "" {
		purpose = "Provide " + strings.Join(req.RequestedFields, " and ")
	}

	decision, err := h.gate.Evaluate(ctx, record, purpose, req.RequestedFields)
	if err != nil {
		h.logger.ErrorContext(ctx, "disclosure evaluation failed",
			"request_id", requestID,
			"error", err,
		)
		httputil.WriteError(w, err)
		return
	}

	h.recorder.Record(ctx, audit.Entry{
		NIN:             nin,
		Endpoint:        "/api/access_data",
		RequestedFields: req.RequestedFields,
		Granted:         decision.Granted,
		RiskLevel:       string(decision.Verdict.Level),
		RiskScore:       decision.Verdict.Score,
	})

	if decision.Fields == nil {
		decision.Fields = map[string]string{}
	}
	status := http.StatusOK
	message := "access granted"
	if !decision.Granted {
		status = http.StatusForbidden
		message = "access denied, high privacy risk"
	}

	h.logger.InfoContext(ctx, "access_data handled",
		"request_id", requestID,
		"granted", decision.Granted,
		"risk_level", decision.Verdict.Level,
		"duration_ms", time.Since(start).Milliseconds(),
	)
	httputil.WriteJSON(w, status, accessResponse{
		AccessGranted: decision.Granted,
		Data:          decision.Fields,
		RiskAnalysis:  decision.Verdict,
		Message:       message,
	})
}
