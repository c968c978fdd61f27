// Package httptransport assembles the HTTP surface: shared middleware, the
// module handlers, and the operational endpoints.
package httptransport

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"anonid/internal/auth"
	disclosurehandler "anonid/internal/disclosure/handler"
	identityhandler "anonid/internal/identity/handler"
	riskhandler "anonid/internal/risk/handler"
	"anonid/pkg/platform/httputil"
	"anonid/pkg/platform/middleware/metadata"
)

// Deps carries everything the router mounts. AuthMiddleware is nil when
// organization auth is disabled; the disclosure endpoint is then open.
type Deps struct {
	Identity       *identityhandler.Handler
	Risk           *riskhandler.Handler
	Disclosure     *disclosurehandler.Handler
	Auth           *auth.Handler
	AuthMiddleware func(http.Handler) http.Handler
}

// NewRouter wires all endpoints with the shared middleware stack.
func NewRouter(deps Deps) http.Handler {
	r := chi.NewRouter()

	r.Use(chimiddleware.Recoverer)
	r.Use(metadata.RequestID)
	r.Use(metadata.ClientMetadata)

	r.Get("/api/health", handleHealth)
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	deps.Identity.Register(r)
	deps.Risk.Register(r)
	deps.Auth.Register(r)

	if deps.AuthMiddleware != nil {
		r.Group(func(r chi.Router) {
			r.Use(deps.AuthMiddleware)
			deps.Disclosure.Register(r)
		})
	} else {
		deps.Disclosure.Register(r)
	}

	return r
}

func handleHealth(w http.ResponseWriter, _ *http.Request) {
	httputil.WriteJSON(w, http.StatusOK, map[string]string{
		"status":  "healthy",
		"service": "anonid",
	})
}
