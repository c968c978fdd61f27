// Package metadata extracts client-facing request metadata (IP, User-Agent,
// request ID, request time) and stores it in the context for handlers, audit
// recording, and logging.
package metadata

import (
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/mssola/useragent"

	"anonid/pkg/requestcontext"
)

// ClientMetadata extracts the client IP address and User-Agent from the
// request and adds them to the context. Apply early in the chain.
func ClientMetadata(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := requestcontext.WithClientMetadata(r.Context(),
			ClientIPFromRequest(r),
			r.Header.Get("User-Agent"),
		)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// RequestID assigns a request ID for correlation across log lines and audit
// events. An inbound X-Request-ID is honored so upstream proxies can stitch
// traces together.
func RequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		reqID := r.Header.Get("X-Request-ID")
		if reqID == "" {
			reqID = uuid.NewString()
		}
		w.Header().Set("X-Request-ID", reqID)
		ctx := requestcontext.WithRequestID(r.Context(), reqID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// ClientIPFromRequest extracts the real client IP, handling proxies and load
// balancers.
func ClientIPFromRequest(r *http.Request) string {
	// X-Forwarded-For can contain multiple IPs (client, proxy1, proxy2, ...);
	// the first is the original client.
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		if idx := strings.Index(xff, ","); idx != -1 {
			return strings.TrimSpace(xff[:idx])
		}
		return strings.TrimSpace(xff)
	}

	if xri := r.Header.Get("X-Real-IP"); xri != "" {
		return strings.TrimSpace(xri)
	}

	// RemoteAddr is "ip:port" (IPv6: "[::1]:port").
	if addr := r.RemoteAddr; addr != "" {
		if idx := strings.LastIndex(addr, ":"); idx != -1 {
			return addr[:idx]
		}
		return addr
	}
	return ""
}

// ClientPlatform summarizes a User-Agent string as "browser/os" for audit
// events. Raw UA strings are long and high-entropy; the summary keeps audit
// rows compact without identifying the client.
func ClientPlatform(userAgentHeader string) string {
	if userAgentHeader == "" {
		return "unknown"
	}
	ua := useragent.New(userAgentHeader)
	name, _ := ua.Browser()
	osInfo := ua.OSInfo().Name
	if ua.Bot() {
		return "bot"
	}
	if name == "" && osInfo == "" {
		return "unknown"
	}
	return strings.ToLower(strings.TrimSpace(name + "/" + osInfo))
}
