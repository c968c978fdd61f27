package auth

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"anonid/pkg/requestcontext"
)

func protectedHandler(t *testing.T, tokens *JWTService) (http.Handler, *string) {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	var seenOrg string
	inner := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seenOrg = requestcontext.OrgName(r.Context())
		w.WriteHeader(http.StatusNoContent)
	})
	return RequireOrganization(tokens, logger)(inner), &seenOrg
}

func TestRequireOrganizationAcceptsValidToken(t *testing.T) {
	tokens := NewJWTService("test-signing-key", "anonid", "anonid-api")
	handler, seenOrg := protectedHandler(t, tokens)

	signed, err := tokens.GenerateAccessToken(Organization{ID: "x", Name: "acme-bank"}, time.Hour)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/api/access_data", nil)
	req.Header.Set("Authorization", "Bearer "+signed)
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "acme-bank", *seenOrg)
}

func TestRequireOrganizationRejectsMissingHeader(t *testing.T) {
	tokens := NewJWTService("test-signing-key", "anonid", "anonid-api")
	handler, _ := protectedHandler(t, tokens)

	req := httptest.NewRequest(http.MethodPost, "/api/access_data", nil)
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRequireOrganizationRejectsBadToken(t *testing.T) {
	tokens := NewJWTService("test-signing-key", "anonid", "anonid-api")
	handler, _ := protectedHandler(t, tokens)

	req := httptest.NewRequest(http.MethodPost, "/api/access_data", nil)
	req.Header.Set("Authorization", "Bearer not.a.token")
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
