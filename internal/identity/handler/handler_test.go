package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	"anonid/internal/identity"
	"anonid/internal/identity/handler/mocks"
	"anonid/internal/risk"
	dErrors "anonid/pkg/domain-errors"
)

//go:generate mockgen -source=handler.go -destination=mocks/identity-mocks.go -package=mocks

type IdentityHandlerSuite struct {
	suite.Suite
	ctx context.Context
}

func (s *IdentityHandlerSuite) SetupSuite() {
	s.ctx = context.Background()
}

func TestIdentityHandlerSuite(t *testing.T) {
	suite.Run(t, new(IdentityHandlerSuite))
}

type handlerMocks struct {
	service  *mocks.MockService
	scorer   *mocks.MockRiskChecker
	recorder *mocks.MockRecorder
	accesses *mocks.MockAccessCounter
}

func newTestHandler(t *testing.T) (*chi.Mux, handlerMocks) {
	t.Helper()
	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)
	m := handlerMocks{
		service:  mocks.NewMockService(ctrl),
		scorer:   mocks.NewMockRiskChecker(ctrl),
		recorder: mocks.NewMockRecorder(ctrl),
		accesses: mocks.NewMockAccessCounter(ctrl),
	}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	handler := New(m.service, m.scorer, m.recorder, m.accesses, logger)
	r := chi.NewRouter()
	handler.Register(r)
	return r, m
}

func (s *IdentityHandlerSuite) TestHandleRegisterNew() {
	router, m := newTestHandler(s.T())

	m.service.EXPECT().Register(gomock.Any(), "12345678901").Return(identity.RegistrationResult{
		Record: identity.Record{AnonID: "a1b2c3d4e5f6", NIN: "12345678901"},
		Status: identity.StatusNew,
	}, nil)

	body, err := json.Marshal(map[string]string{"nin": "12345678901"})
	require.NoError(s.T(), err)
	req := httptest.NewRequest(http.MethodPost, "/api/register", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(s.T(), http.StatusCreated, w.Code)
	var resp map[string]any
	require.NoError(s.T(), json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(s.T(), "a1b2c3d4e5f6", resp["anon_id"])
	assert.Equal(s.T(), "12*******01", resp["masked_nin"])
	assert.Equal(s.T(), "new", resp["status"])
	assert.NotContains(s.T(), w.Body.String(), `"nin"`)
}

func (s *IdentityHandlerSuite) TestHandleRegisterExisting() {
	router, m := newTestHandler(s.T())

	m.service.EXPECT().Register(gomock.Any(), "12345678901").Return(identity.RegistrationResult{
		Record: identity.Record{AnonID: "a1b2c3d4e5f6"},
		Status: identity.StatusExisting,
	}, nil)

	body, _ := json.Marshal(map[string]string{"nin": "12345678901"})
	req := httptest.NewRequest(http.MethodPost, "/api/register", bytes.NewReader(body))
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(s.T(), http.StatusOK, w.Code)
}

func (s *IdentityHandlerSuite) TestHandleRegisterUnknownNIN() {
	router, m := newTestHandler(s.T())

	m.service.EXPECT().Register(gomock.Any(), "00000000000").
		Return(identity.RegistrationResult{}, dErrors.New(dErrors.CodeNotFound, "nin not found in national registry"))

	body, _ := json.Marshal(map[string]string{"nin": "00000000000"})
	req := httptest.NewRequest(http.MethodPost, "/api/register", bytes.NewReader(body))
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(s.T(), http.StatusNotFound, w.Code)
}

func (s *IdentityHandlerSuite) TestHandleVerifyScoresAndAudits() {
	router, m := newTestHandler(s.T())

	record := identity.Record{
		AnonID:        "a1b2c3d4e5f6",
		PublicProfile: identity.PublicProfile{"country": "Nigeria"},
	}
	m.service.EXPECT().LookupByNIN(gomock.Any(), "12345678901").Return(record, nil)
	m.scorer.EXPECT().Score("Verify age over 18").Return(risk.Verdict{
		Score: 0, Level: risk.LevelSafe, Recommendation: "APPROVED: request appears privacy-safe",
	})
	m.recorder.EXPECT().Record(gomock.Any(), gomock.Any())

	body, _ := json.Marshal(map[string]string{
		"nin":                  "12345678901",
		"verification_request": "Verify age over 18",
	})
	req := httptest.NewRequest(http.MethodPost, "/api/verify", bytes.NewReader(body))
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(s.T(), http.StatusOK, w.Code)
	var resp map[string]any
	require.NoError(s.T(), json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(s.T(), true, resp["verified"])
	assert.Equal(s.T(), "a1b2c3d4e5f6", resp["anon_id"])
	publicData := resp["public_data"].(map[string]any)
	assert.Equal(s.T(), "Nigeria", publicData["country"])
	riskAnalysis := resp["risk_analysis"].(map[string]any)
	assert.Equal(s.T(), "Safe", riskAnalysis["risk_level"])
}

func (s *IdentityHandlerSuite) TestHandleVerifySkipsScorerWithoutRequestText() {
	router, m := newTestHandler(s.T())

	m.service.EXPECT().LookupByNIN(gomock.Any(), "12345678901").
		Return(identity.Record{AnonID: "a1b2c3d4e5f6"}, nil)
	m.recorder.EXPECT().Record(gomock.Any(), gomock.Any())

	body, _ := json.Marshal(map[string]string{"nin": "12345678901"})
	req := httptest.NewRequest(http.MethodPost, "/api/verify", bytes.NewReader(body))
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(s.T(), http.StatusOK, w.Code)
	var resp map[string]any
	require.NoError(s.T(), json.Unmarshal(w.Body.Bytes(), &resp))
	_, present := resp["risk_analysis"]
	assert.False(s.T(), present)
}

func (s *IdentityHandlerSuite) TestHandleGetUser() {
	router, m := newTestHandler(s.T())

	created := time.Date(2025, 5, 1, 9, 0, 0, 0, time.UTC)
	m.service.EXPECT().Lookup(gomock.Any(), "a1b2c3d4e5f6").Return(identity.Record{
		AnonID:        "a1b2c3d4e5f6",
		NIN:           "12345678901",
		PublicProfile: identity.PublicProfile{"gender": "female"},
		CreatedAt:     created,
	}, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/user/a1b2c3d4e5f6", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(s.T(), http.StatusOK, w.Code)
	var resp map[string]any
	require.NoError(s.T(), json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(s.T(), "12*******01", resp["masked_nin"])
	assert.NotContains(s.T(), w.Body.String(), "12345678901")
}

func (s *IdentityHandlerSuite) TestHandleGetUserNotFound() {
	router, m := newTestHandler(s.T())

	m.service.EXPECT().Lookup(gomock.Any(), "ffffffffffff").
		Return(identity.Record{}, dErrors.New(dErrors.CodeNotFound, "unknown anonymous id"))

	req := httptest.NewRequest(http.MethodGet, "/api/user/ffffffffffff", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(s.T(), http.StatusNotFound, w.Code)
}

func (s *IdentityHandlerSuite) TestHandleStats() {
	router, m := newTestHandler(s.T())

	m.service.EXPECT().Count(gomock.Any()).Return(int64(3), nil)
	m.accesses.EXPECT().CountByOutcome(gomock.Any()).Return(int64(7), int64(3), nil)

	req := httptest.NewRequest(http.MethodGet, "/api/stats", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(s.T(), http.StatusOK, w.Code)
	var resp map[string]any
	require.NoError(s.T(), json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(s.T(), float64(3), resp["total_users"])
	assert.Equal(s.T(), float64(10), resp["total_api_accesses"])
	assert.Equal(s.T(), "70.0%", resp["grant_rate"])
}
