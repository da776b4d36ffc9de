package handlers

import (
	"context"
	"net/http"

	"telemetry_demo/internal/models"
	"telemetry_demo/internal/service"

	"github.com/gin-gonic/gin"
)

// ---- Service Mocks ----

type mockTelemetry struct {
	latest    models.LatestState
	latestErr error
	ingestErr error

	ingested []models.Reading
}

func (m *mockTelemetry) Ingest(ctx context.Context, r models.Reading) error {
	m.ingested = append(m.ingested, r)
	return m.ingestErr
}

func (m *mockTelemetry) GetLatest(ctx context.Context) (models.LatestState, error) {
	return m.latest, m.latestErr
}

type mockEventLog struct {
	resp []models.Event
	err  error
}

func (m *mockEventLog) List(ctx context.Context) ([]models.Event, error) {
	return m.resp, m.err
}

type mockFault struct {
	on      bool
	err     error
	setCall []bool
}

func (m *mockFault) SetFault(ctx context.Context, on bool) (bool, error) {
	m.setCall = append(m.setCall, on)
	if m.err != nil {
		return false, m.err
	}
	m.on = on
	return m.on, nil
}

func (m *mockFault) GetFault(ctx context.Context) (bool, error) {
	return m.on, m.err
}

type mockAuth struct {
	enabled  bool
	subject  string
	parseErr error

	lastParseToken string
}

func (m *mockAuth) Enabled() bool { return m.enabled }

func (m *mockAuth) IssueToken(subject string) (string, error) { return "token-" + subject, nil }

func (m *mockAuth) ParseToken(token string) (string, error) {
	m.lastParseToken = token
	return m.subject, m.parseErr
}

// ---- Shared Test Helpers ----

func newTestRouter(s *service.Service) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := NewHandler(s, nil)
	return h.InitRoutes()
}

func authHeader(token string) http.Header {
	h := http.Header{}
	if token != "" {
		h.Set("Authorization", "Bearer "+token)
	}
	return h
}
