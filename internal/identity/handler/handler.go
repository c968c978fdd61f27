// Package handler wires the identity endpoints: registration, verification,
// pseudonymous lookup, and system statistics.
package handler

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"anonid/internal/audit"
	"anonid/internal/identity"
	"anonid/internal/risk"
	dErrors "anonid/pkg/domain-errors"
	"anonid/pkg/platform/httputil"
	"anonid/pkg/requestcontext"
)

// Service defines the identity operations the handler depends on.
type Service interface {
	Register(ctx context.Context, nin string) (identity.RegistrationResult, error)
	LookupByNIN(ctx context.Context, nin string) (identity.Record, error)
	Lookup(ctx context.Context, anonID string) (identity.Record, error)
	Count(ctx context.Context) (int64, error)
}

// RiskChecker scores verification request text.
type RiskChecker interface {
	Score(text string) risk.Verdict
}

// Recorder appends to the access audit log.
type Recorder interface {
	Record(ctx context.Context, entry audit.Entry)
}

// AccessCounter reports audit totals for the stats endpoint.
type AccessCounter interface {
	CountByOutcome(ctx context.Context) (granted, denied int64, err error)
}

// Handler wires identity endpoints to the registrar.
type Handler struct {
	service  Service
	scorer   RiskChecker
	recorder Recorder
	accesses AccessCounter
	logger   *slog.Logger
}

// New constructs an identity handler with its dependencies.
func New(service Service, scorer RiskChecker, recorder Recorder, accesses AccessCounter, logger *slog.Logger) *Handler {
	return &Handler{
		service:  service,
		scorer:   scorer,
		recorder: recorder,
		accesses: accesses,
		logger:   logger,
	}
}

// Register mounts identity endpoints on the router.
func (h *Handler) Register(r chi.Router) {
	r.Post("/api/register", h.HandleRegister)
	r.Post("/api/verify", h.HandleVerify)
	r.Get("/api/user/{anonID}", h.HandleGetUser)
	r.Get("/api/stats", h.HandleStats)
}

type registerRequest struct {
	NIN string `json:"nin"`
}

type registerResponse struct {
	AnonID    string `json:"anon_id"`
	MaskedNIN string `json:"masked_nin"`
	Status    string `json:"status"`
	Message   string `json:"message"`
}

// HandleRegister handles POST /api/register requests.
func (h *Handler) HandleRegister(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	start := time.Now()

	req, ok := httputil.Decode[registerRequest](w, r, h.logger)
	if !ok {
		return
	}
	nin := strings.TrimSpace(req.NIN)

	result, err := h.service.Register(ctx, nin)
	if err != nil {
		h.logger.ErrorContext(ctx, "registration failed",
			"request_id", requestcontext.RequestID(ctx),
			"error", err,
		)
		httputil.WriteError(w, err)
		return
	}

	status := http.StatusOK
	message := "user already registered"
	if result.Status == identity.StatusNew {
		status = http.StatusCreated
		message = "user registered successfully"
	}

	h.logger.InfoContext(ctx, "registration handled",
		"request_id", requestcontext.RequestID(ctx),
		"status", result.Status,
		"duration_ms", time.Since(start).Milliseconds(),
	)
	httputil.WriteJSON(w, status, registerResponse{
		AnonID:    result.Record.AnonID,
		MaskedNIN: identity.MaskNIN(nin),
		Status:    string(result.Status),
		Message:   message,
	})
}

type verifyRequest struct {
	NIN                 string `json:"nin"`
	VerificationRequest string `json:"verification_request"`
}

type verifyResponse struct {
	Verified     bool                   `json:"verified"`
	AnonID       string                 `json:"anon_id"`
	PublicData   identity.PublicProfile `json:"public_data"`
	RiskAnalysis *risk.Verdict          `json:"risk_analysis,omitempty"`
	Message      string                 `json:"message"`
}

// HandleVerify handles POST /api/verify requests. Verification releases only
// the public profile; the risk verdict on the stated purpose is informational.
func (h *Handler) HandleVerify(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	req, ok := httputil.Decode[verifyRequest](w, r, h.logger)
	if !ok {
		return
	}
	nin := strings.TrimSpace(req.NIN)

	record, err := h.service.LookupByNIN(ctx, nin)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	var verdict *risk.Verdict
	entry := audit.Entry{
		NIN:             nin,
		Endpoint:        "/api/verify",
		RequestedFields: []string{"public_profile"},
		Granted:         true,
	}
	if req.VerificationRequest != "" {
		v := h.scorer.Score(req.VerificationRequest)
		verdict = &v
		entry.RiskLevel = string(v.Level)
		entry.RiskScore = v.Score
	}
	h.recorder.Record(ctx, entry)

	httputil.WriteJSON(w, http.StatusOK, verifyResponse{
		Verified:     true,
		AnonID:       record.AnonID,
		PublicData:   record.PublicProfile,
		RiskAnalysis: verdict,
		Message:      "identity verified, public data only",
	})
}

type userResponse struct {
	AnonID        string                 `json:"anon_id"`
	MaskedNIN     string                 `json:"masked_nin"`
	PublicProfile identity.PublicProfile `json:"public_profile"`
	CreatedAt     time.Time              `json:"created_at"`
}

// HandleGetUser handles GET /api/user/{anonID} requests.
func (h *Handler) HandleGetUser(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	anonID := chi.URLParam(r, "anonID")
	if anonID == "" {
		httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "anon id is required"))
		return
	}

	record, err := h.service.Lookup(ctx, anonID)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, userResponse{
		AnonID:        record.AnonID,
		MaskedNIN:     identity.MaskNIN(record.NIN),
		PublicProfile: record.PublicProfile,
		CreatedAt:     record.CreatedAt,
	})
}

type statsResponse struct {
	TotalUsers       int64  `json:"total_users"`
	TotalAPIAccesses int64  `json:"total_api_accesses"`
	AccessGranted    int64  `json:"access_granted"`
	AccessDenied     int64  `json:"access_denied"`
	GrantRate        string `json:"grant_rate"`
}

// HandleStats handles GET /api/stats requests.
func (h *Handler) HandleStats(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	users, err := h.service.Count(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "count users failed", "error", err)
		httputil.WriteError(w, err)
		return
	}
	granted, denied, err := h.accesses.CountByOutcome(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "count accesses failed", "error", err)
		httputil.WriteError(w, err)
		return
	}

	total := granted + denied
	rate := "0%"
	if total > 0 {
		rate = strconv.FormatFloat(float64(granted)/float64(total)*100, 'f', 1, 64) + "%"
	}

	httputil.WriteJSON(w, http.StatusOK, statsResponse{
		TotalUsers:       users,
		TotalAPIAccesses: total,
		AccessGranted:    granted,
		AccessDenied:     denied,
		GrantRate:        rate,
	})
}
