package oee

import (
	"github.com/samber/lo"

	"coke_oee/internal/models"
)

// SelectPeriods returns the single period matching key, or all periods when key is empty.
func SelectPeriods(periods []models.PeriodAggregate, key string) []models.PeriodAggregate {
	if key == "" {
		return periods
	}
	return lo.Filter(periods, func(p models.PeriodAggregate, _ int) bool { return p.Key == key })
}

// Summarize aggregates the selected periods into the headline figures.
// It reports false when no period matches. Window adherence is left empty;
// see CheckWindows.
func Summarize(periods []models.PeriodAggregate, key string, targets Targets) (models.Summary, bool) {
	sel := SelectPeriods(periods, key)
	if len(sel) == 0 {
		return models.Summary{}, false
	}
	sum := func(f func(p models.PeriodAggregate) float64) float64 { return lo.SumBy(sel, f) }
	mean := func(f func(p models.PeriodAggregate) float64) float64 { return sum(f) / float64(len(sel)) }

	days := lo.SumBy(sel, func(p models.PeriodAggregate) int { return p.Days })
	ovens := sum(func(p models.PeriodAggregate) float64 { return p.Ovens })
	targetOvens := targets.OvensPerDay * float64(days)
	operating := sum(func(p models.PeriodAggregate) float64 { return p.Operating })
	loading := sum(func(p models.PeriodAggregate) float64 { return p.Loading })
	maintExcess := sum(func(p models.PeriodAggregate) float64 { return p.MaintenanceExcess })
	outsideMaint := sum(func(p models.PeriodAggregate) float64 { return p.OutsideMaintenance })

	return models.Summary{
		Periods: len(sel),
		Days:    days,

		OEEPct:   roundTo(mean(func(p models.PeriodAggregate) float64 { return p.OEEPct }), 1),
		AvailPct: roundTo(mean(func(p models.PeriodAggregate) float64 { return p.AvailPct }), 1),
		PerfPct:  roundTo(mean(func(p models.PeriodAggregate) float64 { return p.PerfPct }), 1),
		QualPct:  roundTo(mean(func(p models.PeriodAggregate) float64 { return p.QualPct }), 2),

		Ovens:       ovens,
		TargetOvens: targetOvens,
		WaterM3:     sum(func(p models.PeriodAggregate) float64 { return p.WaterM3 }),

		PaceMin:       safeDiv(operating, ovens),
		TargetPaceMin: safeDiv(loading, targetOvens),

		LossAvailabilityMin: sum(func(p models.PeriodAggregate) float64 { return p.LossAvailability }),
		LossPerformanceMin:  sum(func(p models.PeriodAggregate) float64 { return p.LossPerformance }),
		FailureLossMin:      sum(func(p models.PeriodAggregate) float64 { return p.FailureLoss }),
		ScheduledMaintMin:   maintExcess + outsideMaint,
		OperationalLossMin:  sum(func(p models.PeriodAggregate) float64 { return p.OperationalLoss }),
		ShiftChangeMin:      sum(func(p models.PeriodAggregate) float64 { return p.ShiftChange }),
		TargetMaintMin:      sum(func(p models.PeriodAggregate) float64 { return p.TargetMaintenance }),
		UsedMaintMin:        sum(func(p models.PeriodAggregate) float64 { return p.UsedMaintenance }),
		LoadingMin:          loading,
		MaintExcessMin:      maintExcess,
		OutsideMaintMin:     outsideMaint,
		UsedProdMin:         sum(func(p models.PeriodAggregate) float64 { return p.UsedProduction }),
		ProdExcessMin:       sum(func(p models.PeriodAggregate) float64 { return p.ProductionExcess }),
		OutsideProdMin:      sum(func(p models.PeriodAggregate) float64 { return p.OutsideProduction }),

		TargetShiftChanges: targets.ShiftChangesPerDay * float64(days),
		CalendarMin:        float64(days) * CalendarMinutes,
	}, true
}

// BuildLossTree breaks the selected periods' loading time down to fully
// productive time and attaches each loss's allowance under targets.
func BuildLossTree(periods []models.PeriodAggregate, key string, targets Targets) (models.LossTree, bool) {
	sel := SelectPeriods(periods, key)
	if len(sel) == 0 {
		return models.LossTree{}, false
	}
	sum := func(f func(p models.PeriodAggregate) float64) float64 { return lo.SumBy(sel, f) }

	loading := sum(func(p models.PeriodAggregate) float64 { return p.Loading })
	operating := sum(func(p models.PeriodAggregate) float64 { return p.Operating })
	lossPerf := sum(func(p models.PeriodAggregate) float64 { return p.LossPerformance })
	netOperating := max(0, operating-lossPerf)
	avgYield := sum(func(p models.PeriodAggregate) float64 { return p.QualPct }) / float64(len(sel)) / 100
	fully := netOperating * avgYield

	return models.LossTree{
		Loading:         loading,
		Operating:       operating,
		NetOperating:    netOperating,
		FullyProductive: fully,
		LossAvail:       sum(func(p models.PeriodAggregate) float64 { return p.LossAvailability }),
		LossPerf:        lossPerf,
		Failure: models.LossBranch{
			Minutes: sum(func(p models.PeriodAggregate) float64 { return p.FailureLoss }),
			Target:  loading * (1 - targets.Avail/100),
		},
		ScheduledMaint: models.LossBranch{
			Minutes: sum(func(p models.PeriodAggregate) float64 { return p.MaintenanceExcess + p.OutsideMaintenance }),
		},
		ShiftChange: models.LossBranch{
			Minutes: sum(func(p models.PeriodAggregate) float64 { return p.ShiftChange }),
		},
		Rhythm: models.LossBranch{
			Minutes: sum(func(p models.PeriodAggregate) float64 { return p.ProductionExcess + p.OutsideProduction }),
			Target:  operating * (1 - targets.Perf/100),
		},
		Operational: models.LossBranch{
			Minutes: sum(func(p models.PeriodAggregate) float64 { return p.OperationalLoss }),
		},
		Quality: models.LossBranch{
			Minutes: netOperating - fully,
			Target:  netOperating * (1 - targets.Qual/100),
		},
	}, true
}
