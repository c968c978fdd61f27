package auth

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	dErrors "anonid/pkg/domain-errors"
	"anonid/pkg/platform/httputil"
	"anonid/pkg/requestcontext"
)

// Handler wires organization enrollment and token exchange.
type Handler struct {
	service *Service
	logger  *slog.Logger
}

func NewHandler(service *Service, logger *slog.Logger) *Handler {
	return &Handler{service: service, logger: logger}
}

// Register mounts auth endpoints on the router.
func (h *Handler) Register(r chi.Router) {
	r.Post("/api/organizations", h.HandleEnroll)
	r.Post("/api/token", h.HandleToken)
}

type enrollRequest struct {
	Name string `json:"name"`
}

// HandleEnroll handles POST /api/organizations requests. The response is the
// only place the plaintext API key ever appears.
func (h *Handler) HandleEnroll(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	req, ok := httputil.Decode[enrollRequest](w, r, h.logger)
	if !ok {
		return
	}

	creds, err := h.service.Enroll(ctx, req.Name)
	if err != nil {
		h.logger.ErrorContext(ctx, "organization enrollment failed",
			"request_id", requestcontext.RequestID(ctx),
			"organization", req.Name,
			"error", err,
		)
		httputil.WriteError(w, err)
		return
	}

	h.logger.InfoContext(ctx, "organization enrolled",
		"request_id", requestcontext.RequestID(ctx),
		"organization", creds.Name,
	)
	httputil.WriteJSON(w, http.StatusCreated, creds)
}

type tokenRequest struct {
	Organization string `json:"organization"`
	APIKey       string `json:"api_key"`
}

// HandleToken handles POST /api/token requests.
func (h *Handler) HandleToken(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	req, ok := httputil.Decode[tokenRequest](w, r, h.logger)
	if !ok {
		return
	}
	if req.Organization == "" || req.APIKey == "" {
		httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "organization and api_key are required"))
		return
	}

	token, err := h.service.IssueToken(ctx, req.Organization, req.APIKey)
	if err != nil {
		h.logger.WarnContext(ctx, "token issuance refused",
			"request_id", requestcontext.RequestID(ctx),
			"organization", req.Organization,
		)
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, token)
}
