package handlers

import (
	"context"
	"io"
	"net/http"
	"time"

	"coke_oee/internal/models"
	"coke_oee/internal/service"

	"github.com/gin-gonic/gin"
)

// ---- Service Mocks ----

type mockAuth struct {
	genTokenToken string
	genTokenErr   error
	parseID       int
	parseErr      error

	lastGenUsername string
	lastGenPassword string
	lastParseToken  string
}

func (m *mockAuth) EnsureOperator(ctx context.Context, username, passwordHash string) (int, error) {
	return 1, nil
}
func (m *mockAuth) GenerateToken(ctx context.Context, username, password string) (string, error) {
	m.lastGenUsername = username
	m.lastGenPassword = password
	return m.genTokenToken, m.genTokenErr
}
func (m *mockAuth) ParseToken(token string) (int, error) {
	m.lastParseToken = token
	return m.parseID, m.parseErr
}

type mockIngestion struct {
	dataset    models.Dataset
	ingestErr  error
	list       []models.DatasetInfo
	listErr    error
	ignored    []models.IgnoredRow
	ignoredErr error

	lastStops      []byte
	lastProduction []byte
	lastIgnoredID  string
}

func (m *mockIngestion) Ingest(ctx context.Context, stops, production io.Reader) (models.Dataset, error) {
	m.lastStops, _ = io.ReadAll(stops)
	m.lastProduction, _ = io.ReadAll(production)
	return m.dataset, m.ingestErr
}
func (m *mockIngestion) List(ctx context.Context) ([]models.DatasetInfo, error) {
	return m.list, m.listErr
}
func (m *mockIngestion) Ignored(ctx context.Context, id string) ([]models.IgnoredRow, error) {
	m.lastIgnoredID = id
	return m.ignored, m.ignoredErr
}

type mockReports struct {
	report models.Report
	err    error

	lastID        string
	lastFilter    models.Filter
	lastReference time.Time
}

func (m *mockReports) Report(ctx context.Context, datasetID string, f models.Filter, reference time.Time) (models.Report, error) {
	m.lastID = datasetID
	m.lastFilter = f
	m.lastReference = reference
	return m.report, m.err
}

// ---- Shared Test Helpers ----

func newTestRouter(s *service.Service) *gin.Engine {
	h := NewHandler(s, nil, 0)
	gin.SetMode(gin.TestMode)
	return h.InitRoutes()
}

func authHeader(token string) http.Header {
	h := http.Header{}
	if token != "" {
		h.Set("Authorization", "Bearer "+token)
	}
	return h
}

func withHeader(req *http.Request, header http.Header) *http.Request {
	for k, vv := range header {
		for _, v := range vv {
			req.Header.Add(k, v)
		}
	}
	return req
}
