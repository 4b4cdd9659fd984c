package oee

import (
	"sort"

	"github.com/samber/lo"

	"coke_oee/internal/models"
)

// causeLabel names a stop's cause from component and failure mode, falling
// back to description, then type. Long labels are truncated.
func causeLabel(ev models.StopEvent) string {
	var label string
	switch {
	case ev.Component != "" || ev.FailureMode != "":
		label = orDefault(ev.Component, unknownCausePart) + " - " + orDefault(ev.FailureMode, unknownCausePart)
	case ev.Description != "":
		label = ev.Description
	case ev.Type != "":
		label = ev.Type
	default:
		label = unidentifiedCause
	}
	if r := []rune(label); len(r) > causeLabelMaxLen {
		label = string(r[:causeLabelMaxLen]) + "..."
	}
	return label
}

func orDefault(s, def string) string {
	if s == "" {
		return def
	}
	return s
}

// inPeriod reports whether a stop's production date matches the selected
// period key, either as the date itself or as its period under agg.
func inPeriod(date, period string, agg models.Aggregation) bool {
	if period == "" || date == period {
		return true
	}
	key, _ := PeriodKey(date, agg)
	return key == period
}

// paretoEligible applies the stopped/window gate and the loss facet.
func paretoEligible(ev models.StopEvent, loss models.LossFilter) bool {
	window := IsWindow(ev)
	if !isStopped(ev) && !window {
		return false
	}
	maint := isMaintenanceArea(ev) || containsAny(ev.Type, correctiveMarkers)
	switch loss {
	case models.LossAvailability:
		return maint || window
	case models.LossPerformance:
		return !maint
	}
	return true
}

// RankPareto totals stop minutes by equipment and by cause for the filter's
// range, period, equipment and loss facet, and returns the top ten of each.
func RankPareto(stops []models.StopEvent, f models.Filter) models.ParetoReport {
	active := lo.Filter(stops, func(ev models.StopEvent, _ int) bool {
		if !f.Range.Contains(ev.ProductionDate) || !inPeriod(ev.ProductionDate, f.Period, f.Aggregation) {
			return false
		}
		if f.Equipment != "" && ev.Equipment != f.Equipment {
			return false
		}
		return paretoEligible(ev, f.Loss)
	})

	byEquip := newOrdered[models.ParetoEntry]()
	byCause := newOrdered[models.ParetoEntry]()
	for _, ev := range active {
		name := equipmentLabel(ev)
		byEquip.at(name, func() models.ParetoEntry { return models.ParetoEntry{Name: name} }).TotalDurationMin += ev.DurationMin
		cause := causeLabel(ev)
		byCause.at(cause, func() models.ParetoEntry { return models.ParetoEntry{Name: cause} }).TotalDurationMin += ev.DurationMin
	}

	return models.ParetoReport{
		Equipment: topN(byEquip.values(), paretoTopN),
		Causes:    topN(byCause.values(), paretoTopN),
	}
}

// topN rounds totals to whole minutes, sorts descending keeping first-seen
// order on ties, and truncates to n.
func topN(entries []models.ParetoEntry, n int) []models.ParetoEntry {
	for i := range entries {
		entries[i].TotalDurationMin = float64(jsRound(entries[i].TotalDurationMin))
	}
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].TotalDurationMin > entries[j].TotalDurationMin
	})
	if len(entries) > n {
		entries = entries[:n]
	}
	return entries
}
