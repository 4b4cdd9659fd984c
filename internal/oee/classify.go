package oee

import (
	"strings"
	"time"

	"coke_oee/internal/models"
)

// Category is the loss bucket family a stop event belongs to.
type Category int

const (
	CategoryNone Category = iota
	CategoryWindow
	CategoryShiftChange
	CategoryFailure
	CategoryOperationalLoss
)

func (c Category) String() string {
	switch c {
	case CategoryWindow:
		return "window"
	case CategoryShiftChange:
		return "shift_change"
	case CategoryFailure:
		return "failure"
	case CategoryOperationalLoss:
		return "operational_loss"
	default:
		return "none"
	}
}

// Side is a quench station.
type Side int

const (
	SideSul Side = iota
	SideNorte
)

func (s Side) String() string {
	if s == SideNorte {
		return "Norte"
	}
	return "Sul"
}

var (
	windowMarkers      = []string{"janela a/b", "janela c/d"}
	shiftMarkers       = []string{"turno", "passagem"}
	maintenanceMarkers = []string{"manut"}
	productionMarkers  = []string{"produção", "producao", "externo"}
	correctiveMarkers  = []string{"corretiva", "quebra"}
	northMarkers       = []string{"norte", "north"}
	stoppedMarker      = "sim"
)

func containsAny(s string, subs []string) bool {
	s = strings.ToLower(s)
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}

// IsWindow reports whether the event is a planned quench maintenance window.
func IsWindow(ev models.StopEvent) bool { return containsAny(ev.StationSide, windowMarkers) }

func isShiftChange(ev models.StopEvent) bool {
	return containsAny(ev.FailureMode+ev.Description, shiftMarkers)
}

func isStopped(ev models.StopEvent) bool {
	return strings.Contains(strings.ToLower(ev.StoppedFlag), stoppedMarker)
}

func isMaintenanceArea(ev models.StopEvent) bool { return containsAny(ev.Area, maintenanceMarkers) }

func isProductionArea(ev models.StopEvent) bool { return containsAny(ev.Area, productionMarkers) }

// Classify assigns the event to exactly one category. Rules are evaluated in
// order: window, shift change, then stopped events split by responsible area.
func Classify(ev models.StopEvent) Category {
	switch {
	case IsWindow(ev):
		return CategoryWindow
	case isShiftChange(ev):
		return CategoryShiftChange
	case !isStopped(ev):
		return CategoryNone
	case isMaintenanceArea(ev):
		return CategoryFailure
	case isProductionArea(ev):
		return CategoryOperationalLoss
	default:
		return CategoryNone
	}
}

// SideOf returns the quench a window event belongs to. Anything not tagged
// north is treated as Sul.
func SideOf(ev models.StopEvent) Side {
	if containsAny(ev.QuenchTag, northMarkers) {
		return SideNorte
	}
	return SideSul
}

// WindowSplit divides an event's minutes by overlap with the 08:00-13:00 window.
type WindowSplit struct {
	Total   float64
	Inside  float64
	Outside float64
}

// SplitWindow measures the overlap of [start, end] with 08:00-13:00 on the
// start's own calendar day, in the start's location.
func SplitWindow(start, end time.Time) WindowSplit {
	if start.IsZero() || end.IsZero() {
		return WindowSplit{}
	}
	total := minutesBetween(start, end)
	winStart := atHour(start, windowStartHour)
	winEnd := atHour(start, windowEndHour)

	effStart := start
	if effStart.Before(winStart) {
		effStart = winStart
	}
	effEnd := end
	if effEnd.After(winEnd) {
		effEnd = winEnd
	}
	inside := minutesBetween(effStart, effEnd)
	return WindowSplit{
		Total:   total,
		Inside:  inside,
		Outside: max(0, total-inside),
	}
}

// ProductionDate applies the noon cutover: events starting at or after 12:00
// belong to the next production day.
func ProductionDate(t time.Time) time.Time {
	d := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
	if t.Hour() >= 12 {
		d = d.AddDate(0, 0, 1)
	}
	return d
}

// DateKey formats t as YYYY-MM-DD, or "" when t cannot be represented.
func DateKey(t time.Time) string {
	if t.IsZero() || t.Year() < 1 || t.Year() > 9999 {
		return ""
	}
	return t.Format(isoDate)
}

const isoDate = "2006-01-02"

// ParseDateKey parses a YYYY-MM-DD key as midnight UTC.
func ParseDateKey(key string) (time.Time, bool) {
	t, err := time.Parse(isoDate, key)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

func atHour(t time.Time, hour int) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), hour, 0, 0, 0, t.Location())
}

// minutesBetween returns end-start in minutes, clamped at zero.
func minutesBetween(start, end time.Time) float64 {
	return max(0, end.Sub(start).Minutes())
}
