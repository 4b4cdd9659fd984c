package oee

import (
	"sort"
	"time"

	"coke_oee/internal/models"
)

// dayTally accumulates one production day's stop minutes by category.
type dayTally struct {
	insideNorte float64
	insideSul   float64
	outside     float64
	failure     float64
	shiftChange float64
	operational float64
}

// add folds one event into the tally and returns the new value.
func (t dayTally) add(ev models.StopEvent) dayTally {
	split := SplitWindow(ev.Start, ev.End)
	switch Classify(ev) {
	case CategoryWindow:
		if SideOf(ev) == SideNorte {
			t.insideNorte += split.Inside
		} else {
			t.insideSul += split.Inside
		}
		t.outside += split.Outside
	case CategoryShiftChange:
		t.shiftChange += split.Total
	case CategoryFailure:
		t.failure += split.Total
	case CategoryOperationalLoss:
		t.operational += split.Total
	}
	return t
}

// budget splits a side's inside-window minutes into the used allotment and the excess.
func budget(inside float64) (used, excess float64) {
	used = min(inside, QuenchBudgetMin)
	return used, inside - used
}

// isWeekend reports whether the production day falls on Saturday or Sunday.
func isWeekend(date string, rec models.ProductionRecord) bool {
	d := rec.Date
	if d.IsZero() {
		parsed, ok := ParseDateKey(date)
		if !ok {
			return false
		}
		d = parsed
	}
	wd := d.Weekday()
	return wd == time.Saturday || wd == time.Sunday
}

// ComputeDay builds the metrics of one production day from the stops already
// attributed to it.
func ComputeDay(date string, rec models.ProductionRecord, stops []models.StopEvent) models.DailyMetrics {
	var t dayTally
	for _, ev := range stops {
		t = t.add(ev)
	}

	usedN, excessN := budget(t.insideNorte)
	usedS, excessS := budget(t.insideSul)
	excessInside := excessN + excessS

	weekend := isWeekend(date, rec)
	b := models.LossBuckets{
		FailureLoss:       t.failure,
		ShiftChange:       t.shiftChange,
		OperationalLoss:   t.operational,
		TargetMaintenance: MaintenanceBudgetMin,
		UsedMaintenance:   usedN + usedS,
		UsedProduction:    0,
		UsedMaintenanceN:  usedN,
		UsedMaintenanceS:  usedS,
	}
	if weekend {
		b.ProductionExcess = excessInside
		b.OutsideProduction = t.outside
	} else {
		b.MaintenanceExcess = excessInside
		b.OutsideMaintenance = t.outside
	}

	loading := CalendarMinutes - (b.UsedMaintenance + b.UsedProduction)
	lossAvail := b.MaintenanceExcess + b.OutsideMaintenance + b.FailureLoss
	operating := max(0, loading-lossAvail)
	lossPerf := b.ProductionExcess + b.OutsideProduction + b.ShiftChange + b.OperationalLoss

	m := models.DailyMetrics{
		Date:             date,
		Weekend:          weekend,
		Calendar:         CalendarMinutes,
		Loading:          loading,
		Operating:        operating,
		LossAvailability: lossAvail,
		LossPerformance:  lossPerf,
		LossBuckets:      b,
		Ovens:            rec.OvenCount,
		YieldPct:         rec.YieldPct,
		ActualOutput:     rec.ActualOvens,
		WaterM3:          rec.WaterM3,
	}
	m.Avail, m.Perf, m.Qual, m.OEE = ratios(loading, operating, lossPerf, rec.YieldPct)
	return m
}

// ratios derives availability, performance, quality and OEE as fractions.
func ratios(loading, operating, lossPerf, yieldPct float64) (avail, perf, qual, oee float64) {
	avail = safeDiv(operating, loading)
	perf = safeDiv(operating-lossPerf, operating)
	qual = yieldPct / 100
	return avail, perf, qual, avail * perf * qual
}

func safeDiv(num, den float64) float64 {
	if den <= 0 {
		return 0
	}
	return num / den
}

// ComputeDaily returns one DailyMetrics per production record inside rng, in
// date order. When equipment is set only that equipment's stops are counted;
// the production baseline is not filtered.
func ComputeDaily(stops []models.StopEvent, prod map[string]models.ProductionRecord, rng models.DateRange, equipment string) []models.DailyMetrics {
	if len(prod) == 0 || rng.Start == "" || rng.End == "" {
		return nil
	}

	byDate := make(map[string][]models.StopEvent)
	for _, ev := range stops {
		if !rng.Contains(ev.ProductionDate) {
			continue
		}
		if equipment != "" && ev.Equipment != equipment {
			continue
		}
		byDate[ev.ProductionDate] = append(byDate[ev.ProductionDate], ev)
	}

	dates := make([]string, 0, len(prod))
	for d := range prod {
		if rng.Contains(d) {
			dates = append(dates, d)
		}
	}
	sort.Strings(dates)

	out := make([]models.DailyMetrics, 0, len(dates))
	for _, d := range dates {
		out = append(out, ComputeDay(d, prod[d], byDate[d]))
	}
	return out
}
