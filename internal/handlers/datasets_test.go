package handlers

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"coke_oee/internal/ingest"
	"coke_oee/internal/models"
	"coke_oee/internal/repository"
	"coke_oee/internal/service"
)

// uploadRequest builds a multipart POST carrying the named files.
func uploadRequest(t *testing.T, files map[string]string) *http.Request {
	t.Helper()

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	for field, content := range files {
		fw, err := mw.CreateFormFile(field, field+".xlsx")
		if err != nil {
			t.Fatalf("create form file: %v", err)
		}
		if _, err := fw.Write([]byte(content)); err != nil {
			t.Fatalf("write form file: %v", err)
		}
	}
	if err := mw.Close(); err != nil {
		t.Fatalf("close multipart: %v", err)
	}
	req := httptest.NewRequest(http.MethodPost, "/api/v1/datasets", &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return withHeader(req, authHeader("valid"))
}

func TestUploadDataset(t *testing.T) {
	created := time.Date(2024, 3, 10, 12, 0, 0, 0, time.UTC)
	ing := &mockIngestion{dataset: models.Dataset{
		ID:        "ds-1",
		CreatedAt: created,
		Ignored:   []models.IgnoredRow{{Row: 3, Reason: "Data Inválida"}},
		Audit:     models.AuditStats{StopCount: 12, ProductionDays: 5},
	}}
	s := &service.Service{Authorization: &mockAuth{parseID: 1}, Ingestion: ing}
	r := newTestRouter(s)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, uploadRequest(t, map[string]string{"stops": "stop-bytes", "production": "prod-bytes"}))
	if w.Code != http.StatusCreated {
		t.Fatalf("upload status=%d, body=%s", w.Code, w.Body.String())
	}
	if string(ing.lastStops) != "stop-bytes" || string(ing.lastProduction) != "prod-bytes" {
		t.Fatalf("files not passed through: %q / %q", ing.lastStops, ing.lastProduction)
	}

	var resp struct {
		ID      string              `json:"id"`
		Audit   models.AuditStats   `json:"audit"`
		Ignored []models.IgnoredRow `json:"ignored"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if resp.ID != "ds-1" || resp.Audit.StopCount != 12 || len(resp.Ignored) != 1 {
		t.Fatalf("unexpected response: %+v", resp)
	}
}

func TestUploadDataset_Errors(t *testing.T) {
	cases := []struct {
		name     string
		files    map[string]string
		err      error
		wantCode int
	}{
		{name: "missing production file", files: map[string]string{"stops": "x"}, wantCode: http.StatusBadRequest},
		{name: "missing stops file", files: map[string]string{"production": "x"}, wantCode: http.StatusBadRequest},
		{name: "not a workbook", err: fmt.Errorf("stops: %w", ingest.ErrInvalidWorkbook), wantCode: http.StatusBadRequest},
		{name: "header not found", err: fmt.Errorf("stops: %w", ingest.ErrHeaderNotFound), wantCode: http.StatusBadRequest},
		{name: "production sheet missing", err: fmt.Errorf("production: %w", ingest.ErrSheetNotFound), wantCode: http.StatusBadRequest},
		{name: "storage failure", err: errors.New("disk full"), wantCode: http.StatusInternalServerError},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			ing := &mockIngestion{ingestErr: tc.err}
			s := &service.Service{Authorization: &mockAuth{parseID: 1}, Ingestion: ing}
			r := newTestRouter(s)

			files := tc.files
			if files == nil {
				files = map[string]string{"stops": "a", "production": "b"}
			}
			w := httptest.NewRecorder()
			r.ServeHTTP(w, uploadRequest(t, files))
			if w.Code != tc.wantCode {
				t.Fatalf("status: got %d, want %d (body=%s)", w.Code, tc.wantCode, w.Body.String())
			}
			if tc.wantCode == http.StatusInternalServerError && bytes.Contains(w.Body.Bytes(), []byte("disk full")) {
				t.Fatalf("internal error leaked: %s", w.Body.String())
			}
		})
	}
}

func TestUploadDataset_RequiresAuth(t *testing.T) {
	ing := &mockIngestion{}
	s := &service.Service{Authorization: &mockAuth{}, Ingestion: ing}
	r := newTestRouter(s)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/datasets", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 without auth, got %d", w.Code)
	}
	if ing.lastStops != nil {
		t.Fatalf("ingestion reached without auth")
	}
}

func TestListDatasets(t *testing.T) {
	ing := &mockIngestion{list: []models.DatasetInfo{{ID: "a"}, {ID: "b"}}}
	s := &service.Service{Authorization: &mockAuth{parseID: 1}, Ingestion: ing}
	r := newTestRouter(s)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, withHeader(httptest.NewRequest(http.MethodGet, "/api/v1/datasets", nil), authHeader("valid")))
	if w.Code != http.StatusOK {
		t.Fatalf("list status=%d, body=%s", w.Code, w.Body.String())
	}
	var resp struct {
		Count    int                  `json:"count"`
		Datasets []models.DatasetInfo `json:"datasets"`
	}
	_ = json.Unmarshal(w.Body.Bytes(), &resp)
	if resp.Count != 2 || resp.Datasets[1].ID != "b" {
		t.Fatalf("unexpected response: %+v", resp)
	}

	ing.listErr = errors.New("db closed")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, withHeader(httptest.NewRequest(http.MethodGet, "/api/v1/datasets", nil), authHeader("valid")))
	if w.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", w.Code)
	}
}

func TestGetIgnored(t *testing.T) {
	ing := &mockIngestion{ignored: []models.IgnoredRow{{Row: 7, Reason: "Processo: forno"}}}
	s := &service.Service{Authorization: &mockAuth{parseID: 1}, Ingestion: ing}
	r := newTestRouter(s)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, withHeader(httptest.NewRequest(http.MethodGet, "/api/v1/datasets/ds-9/ignored", nil), authHeader("valid")))
	if w.Code != http.StatusOK {
		t.Fatalf("ignored status=%d, body=%s", w.Code, w.Body.String())
	}
	if ing.lastIgnoredID != "ds-9" {
		t.Fatalf("id = %q", ing.lastIgnoredID)
	}
	var resp struct {
		Count int                 `json:"count"`
		Rows  []models.IgnoredRow `json:"rows"`
	}
	_ = json.Unmarshal(w.Body.Bytes(), &resp)
	if resp.Count != 1 || resp.Rows[0].Reason != "Processo: forno" {
		t.Fatalf("unexpected response: %+v", resp)
	}

	ing.ignoredErr = repository.ErrDatasetNotFound
	w = httptest.NewRecorder()
	r.ServeHTTP(w, withHeader(httptest.NewRequest(http.MethodGet, "/api/v1/datasets/nope/ignored", nil), authHeader("valid")))
	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", w.Code)
	}
}

func TestStatusFor(t *testing.T) {
	t.Parallel()

	cases := []struct {
		err  error
		want int
	}{
		{repository.ErrDatasetNotFound, http.StatusNotFound},
		{fmt.Errorf("wrapped: %w", service.ErrInvalidDateRange), http.StatusBadRequest},
		{service.ErrUnknownAggregation, http.StatusBadRequest},
		{service.ErrUnknownLossFilter, http.StatusBadRequest},
		{ingest.ErrSheetNotFound, http.StatusBadRequest},
		{errors.New("boom"), http.StatusInternalServerError},
	}
	for _, tc := range cases {
		if got := statusFor(tc.err); got != tc.want {
			t.Fatalf("statusFor(%v) = %d, want %d", tc.err, got, tc.want)
		}
	}
}
