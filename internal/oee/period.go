package oee

import (
	"fmt"
	"sort"

	"github.com/shopspring/decimal"

	"coke_oee/internal/models"
)

// PeriodKey maps an ISO date to its sortable period key and display label.
// Unknown granularities and unparsable dates fall back to the date itself.
func PeriodKey(date string, agg models.Aggregation) (key, label string) {
	d, ok := ParseDateKey(date)
	if !ok {
		return date, date
	}
	switch agg {
	case models.AggregationDay:
		return date, d.Format("02/01")
	case models.AggregationWeek:
		y, w := d.ISOWeek()
		return fmt.Sprintf("%04d-W%02d", y, w), fmt.Sprintf("Sem %d", w)
	case models.AggregationFortnight:
		half, name := 1, "1ª Qinz"
		if d.Day() > 15 {
			half, name = 2, "2ª Qinz"
		}
		return fmt.Sprintf("%s-%d", d.Format("2006-01"), half), d.Format("Jan") + "-" + name
	case models.AggregationMonth:
		return d.Format("2006-01"), d.Format("Jan/06")
	case models.AggregationQuarter:
		q := (int(d.Month())-1)/3 + 1
		return fmt.Sprintf("%04d-Q%d", d.Year(), q), fmt.Sprintf("%d T%d", d.Year(), q)
	case models.AggregationYear:
		return d.Format("2006"), d.Format("2006")
	default:
		return date, date
	}
}

// AggregatePeriods sums daily metrics into periods sorted by key, recomputes
// ratios from the sums and attaches running cumulative losses.
//
// Input must be daily metrics: feeding periods back in would average yield
// over periods instead of days and is not supported.
func AggregatePeriods(days []models.DailyMetrics, agg models.Aggregation) []models.PeriodAggregate {
	groups := make(map[string]*models.PeriodAggregate)
	for _, day := range days {
		key, label := PeriodKey(day.Date, agg)
		g, ok := groups[key]
		if !ok {
			g = &models.PeriodAggregate{Key: key, Label: label}
			groups[key] = g
		}
		accumulate(g, day)
	}

	out := make([]models.PeriodAggregate, 0, len(groups))
	for _, g := range groups {
		finalize(g)
		out = append(out, *g)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Key < out[j].Key })

	var cumAvail, cumPerf float64
	for i := range out {
		cumAvail += out[i].LossAvailability
		cumPerf += out[i].LossPerformance
		out[i].CumLossAvailability = cumAvail
		out[i].CumLossPerformance = cumPerf
	}
	return out
}

func accumulate(g *models.PeriodAggregate, day models.DailyMetrics) {
	g.Days++
	g.Calendar += day.Calendar
	g.Loading += day.Loading
	g.Operating += day.Operating
	g.LossAvailability += day.LossAvailability
	g.LossPerformance += day.LossPerformance
	g.LossBuckets = g.LossBuckets.Add(day.LossBuckets)
	g.Ovens += day.Ovens
	g.ActualOutput += day.ActualOutput
	g.WaterM3 += day.WaterM3
	if day.YieldPct > 0 {
		g.YieldSum += day.YieldPct
		g.YieldDays++
	}
}

func finalize(g *models.PeriodAggregate) {
	g.AvgYieldPct = safeDiv(g.YieldSum, float64(g.YieldDays))
	g.Avail, g.Perf, g.Qual, g.OEE = ratios(g.Loading, g.Operating, g.LossPerformance, g.AvgYieldPct)
	g.OEEPct = roundTo(g.OEE*100, 1)
	g.AvailPct = roundTo(g.Avail*100, 1)
	g.PerfPct = roundTo(g.Perf*100, 1)
	g.QualPct = roundTo(g.AvgYieldPct, 2)
}

// roundTo rounds v half away from zero to the given decimal places.
func roundTo(v float64, places int32) float64 {
	f, _ := decimal.NewFromFloat(v).Round(places).Float64()
	return f
}
