package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"coke_oee/internal/models"
	"coke_oee/internal/repository"
	"coke_oee/internal/service"
)

func TestGetReport(t *testing.T) {
	rep := &mockReports{report: models.Report{
		DatasetID: "ds-1",
		Periods:   []models.PeriodAggregate{{Key: "2024-03", Label: "Mar 2024"}},
		Summary:   &models.Summary{Days: 31, OEEPct: 64.2},
	}}
	s := &service.Service{Authorization: &mockAuth{parseID: 1}, Reports: rep}
	r := newTestRouter(s)

	url := "/api/v1/datasets/ds-1/report?start=2024-03-01&end=2024-03-31&aggregation=WEEK&equipment=EMP-01&loss=availability&period=2024-W10"
	w := httptest.NewRecorder()
	r.ServeHTTP(w, withHeader(httptest.NewRequest(http.MethodGet, url, nil), authHeader("valid")))
	if w.Code != http.StatusOK {
		t.Fatalf("report status=%d, body=%s", w.Code, w.Body.String())
	}

	want := models.Filter{
		Range:       models.DateRange{Start: "2024-03-01", End: "2024-03-31"},
		Aggregation: models.AggregationWeek,
		Equipment:   "EMP-01",
		Loss:        models.LossAvailability,
		Period:      "2024-W10",
	}
	if rep.lastID != "ds-1" || rep.lastFilter != want {
		t.Fatalf("filter = %+v", rep.lastFilter)
	}
	if rep.lastReference.IsZero() {
		t.Fatalf("reference time not supplied")
	}

	var got models.Report
	if err := json.Unmarshal(w.Body.Bytes(), &got); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if got.Summary == nil || got.Summary.OEEPct != 64.2 || len(got.Periods) != 1 {
		t.Fatalf("unexpected report: %+v", got)
	}
}

func TestGetReport_Errors(t *testing.T) {
	cases := []struct {
		name     string
		err      error
		wantCode int
	}{
		{name: "unknown dataset", err: repository.ErrDatasetNotFound, wantCode: http.StatusNotFound},
		{name: "bad aggregation", err: fmt.Errorf("%w: %q", service.ErrUnknownAggregation, "hour"), wantCode: http.StatusBadRequest},
		{name: "bad range", err: service.ErrInvalidDateRange, wantCode: http.StatusBadRequest},
		{name: "internal", err: fmt.Errorf("read stops: %w", errors.New("boom")), wantCode: http.StatusInternalServerError},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			s := &service.Service{Authorization: &mockAuth{parseID: 1}, Reports: &mockReports{err: tc.err}}
			r := newTestRouter(s)

			w := httptest.NewRecorder()
			r.ServeHTTP(w, withHeader(httptest.NewRequest(http.MethodGet, "/api/v1/datasets/x/report", nil), authHeader("valid")))
			if w.Code != tc.wantCode {
				t.Fatalf("status: got %d, want %d (body=%s)", w.Code, tc.wantCode, w.Body.String())
			}
			var out struct {
				Error string `json:"error"`
			}
			_ = json.Unmarshal(w.Body.Bytes(), &out)
			if out.Error == "" {
				t.Fatalf("missing error body")
			}
			if tc.wantCode == http.StatusInternalServerError && out.Error != errBuildReport {
				t.Fatalf("internal error leaked: %q", out.Error)
			}
		})
	}
}
