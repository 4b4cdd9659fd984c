package oee

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"coke_oee/internal/models"
)

var march = models.DateRange{Start: "2024-03-01", End: "2024-03-31"}

func TestRankPareto_TopTenDescending(t *testing.T) {
	t.Parallel()

	var stops []models.StopEvent
	for i := 0; i < 12; i++ {
		start := at(2024, time.March, 5, 0, 0)
		stops = append(stops, stop(start, start.Add(time.Duration(10+i)*time.Minute), failure(fmt.Sprintf("EQ-%02d", i))))
	}
	report := RankPareto(stops, models.Filter{Range: march, Aggregation: models.AggregationMonth})

	if len(report.Equipment) != 10 {
		t.Fatalf("expected 10 entries, got %d", len(report.Equipment))
	}
	if report.Equipment[0].Name != "EQ-11" || report.Equipment[0].TotalDurationMin != 21 {
		t.Fatalf("unexpected leader: %+v", report.Equipment[0])
	}
	for i := 1; i < len(report.Equipment); i++ {
		if report.Equipment[i].TotalDurationMin > report.Equipment[i-1].TotalDurationMin {
			t.Fatalf("not descending at %d: %+v", i, report.Equipment)
		}
	}
}

func TestRankPareto_TiesKeepFirstSeen(t *testing.T) {
	t.Parallel()

	stops := []models.StopEvent{
		stop(at(2024, time.March, 5, 1, 0), at(2024, time.March, 5, 1, 30), failure("B")),
		stop(at(2024, time.March, 5, 2, 0), at(2024, time.March, 5, 2, 30), failure("A")),
	}
	report := RankPareto(stops, models.Filter{Range: march})
	if report.Equipment[0].Name != "B" || report.Equipment[1].Name != "A" {
		t.Fatalf("tie order changed: %+v", report.Equipment)
	}
}

func TestCauseLabel(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		ev   models.StopEvent
		want string
	}{
		{"component and mode", models.StopEvent{Component: "Motor", FailureMode: "Queimado"}, "Motor - Queimado"},
		{"component only", models.StopEvent{Component: "Motor"}, "Motor - ?"},
		{"mode only", models.StopEvent{FailureMode: "Travado"}, "? - Travado"},
		{"description", models.StopEvent{Description: "Falta de energia", Type: "Corretiva"}, "Falta de energia"},
		{"type", models.StopEvent{Type: "Corretiva"}, "Corretiva"},
		{"nothing", models.StopEvent{}, "Não identificado"},
		{"truncated", models.StopEvent{Description: strings.Repeat("é", 40)}, strings.Repeat("é", 35) + "..."},
	}
	for _, tc := range cases {
		if got := causeLabel(tc.ev); got != tc.want {
			t.Fatalf("%s: got %q, want %q", tc.name, got, tc.want)
		}
	}
}

func TestRankPareto_LossFacets(t *testing.T) {
	t.Parallel()

	stops := []models.StopEvent{
		stop(at(2024, time.March, 5, 1, 0), at(2024, time.March, 5, 2, 0), failure("MAINT")),
		stop(at(2024, time.March, 5, 8, 0), at(2024, time.March, 5, 9, 0), func(ev *models.StopEvent) {
			window("Norte")(ev)
			ev.Equipment = "WIN"
			ev.StoppedFlag = ""
		}),
		stop(at(2024, time.March, 5, 3, 0), at(2024, time.March, 5, 4, 0), func(ev *models.StopEvent) {
			ev.Area = "Produção"
			ev.StoppedFlag = "sim"
			ev.Equipment = "OPS"
		}),
		stop(at(2024, time.March, 5, 5, 0), at(2024, time.March, 5, 6, 0), func(ev *models.StopEvent) {
			ev.Area = "Produção"
			ev.Equipment = "RUNNING"
		}),
	}

	names := func(loss models.LossFilter) []string {
		var out []string
		for _, e := range RankPareto(stops, models.Filter{Range: march, Loss: loss}).Equipment {
			out = append(out, e.Name)
		}
		return out
	}

	cases := map[models.LossFilter][]string{
		models.LossAny:          {"MAINT", "WIN", "OPS"},
		models.LossAvailability: {"MAINT", "WIN"},
		models.LossPerformance:  {"WIN", "OPS"},
	}
	for loss, want := range cases {
		got := names(loss)
		if strings.Join(got, ",") != strings.Join(want, ",") {
			t.Fatalf("loss %q: got %v, want %v", loss, got, want)
		}
	}
}

func TestRankPareto_PeriodAndEquipment(t *testing.T) {
	t.Parallel()

	stops := []models.StopEvent{
		stop(at(2024, time.March, 5, 1, 0), at(2024, time.March, 5, 2, 0), failure("EMP-01")),
		stop(at(2024, time.March, 20, 1, 0), at(2024, time.March, 20, 1, 30), failure("EMP-01")),
		stop(at(2024, time.March, 20, 2, 0), at(2024, time.March, 20, 2, 30), failure("DES-02")),
	}
	f := models.Filter{Range: march, Aggregation: models.AggregationFortnight, Period: "2024-03-2", Equipment: "EMP-01"}
	report := RankPareto(stops, f)
	if len(report.Equipment) != 1 || report.Equipment[0].TotalDurationMin != 30 {
		t.Fatalf("unexpected ranking: %+v", report.Equipment)
	}

	f.Period = "2024-03-05"
	report = RankPareto(stops, f)
	if len(report.Equipment) != 1 || report.Equipment[0].TotalDurationMin != 60 {
		t.Fatalf("exact date period: %+v", report.Equipment)
	}
}
