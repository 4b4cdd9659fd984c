package oee

import (
	"math"
	"testing"
	"time"

	"coke_oee/internal/models"
)

func at(y int, m time.Month, d, hh, mm int) time.Time {
	return time.Date(y, m, d, hh, mm, 0, 0, time.UTC)
}

// stop builds an event and derives duration and production date the way ingestion does.
func stop(start, end time.Time, mut func(*models.StopEvent)) models.StopEvent {
	ev := models.StopEvent{
		Start:          start,
		End:            end,
		DurationMin:    minutesBetween(start, end),
		ProductionDate: DateKey(ProductionDate(start)),
	}
	if mut != nil {
		mut(&ev)
	}
	return ev
}

func failure(equip string) func(*models.StopEvent) {
	return func(ev *models.StopEvent) {
		ev.Area = "Manutenção Mecânica"
		ev.StoppedFlag = "sim"
		ev.Equipment = equip
	}
}

func window(quench string) func(*models.StopEvent) {
	return func(ev *models.StopEvent) {
		ev.StationSide = "Janela A/B"
		ev.QuenchTag = quench
		ev.StoppedFlag = "sim"
	}
}

func record(date string, ovens, yield float64) models.ProductionRecord {
	d, _ := ParseDateKey(date)
	return models.ProductionRecord{Date: d, OvenCount: ovens, YieldPct: yield}
}

func approx(t *testing.T, name string, got, want float64) {
	t.Helper()
	if math.Abs(got-want) > 1e-9 {
		t.Fatalf("%s: got %v, want %v", name, got, want)
	}
}
