package models

// LossBuckets holds the minute buckets every stop minute is routed into.
type LossBuckets struct {
	FailureLoss        float64 `json:"failure_loss"`        // maintenance-area stops
	MaintenanceExcess  float64 `json:"maintenance_excess"`  // window minutes over budget, weekdays
	OutsideMaintenance float64 `json:"outside_maintenance"` // window minutes outside 08-13, weekdays
	ShiftChange        float64 `json:"shift_change"`        // handover stops
	OperationalLoss    float64 `json:"operational_loss"`    // production/external stops
	ProductionExcess   float64 `json:"production_excess"`   // window minutes over budget, weekends
	OutsideProduction  float64 `json:"outside_production"`  // window minutes outside 08-13, weekends
	TargetMaintenance  float64 `json:"target_maintenance"`  // scheduled maintenance budget
	UsedMaintenance    float64 `json:"used_maintenance"`    // budgeted window minutes consumed
	UsedProduction     float64 `json:"used_production"`     // always 0 in the budget model
	UsedMaintenanceN   float64 `json:"used_maintenance_n"`  // Norte share of UsedMaintenance
	UsedMaintenanceS   float64 `json:"used_maintenance_s"`  // Sul share of UsedMaintenance
}

// Add returns the field-wise sum of b and o.
func (b LossBuckets) Add(o LossBuckets) LossBuckets {
	return LossBuckets{
		FailureLoss:        b.FailureLoss + o.FailureLoss,
		MaintenanceExcess:  b.MaintenanceExcess + o.MaintenanceExcess,
		OutsideMaintenance: b.OutsideMaintenance + o.OutsideMaintenance,
		ShiftChange:        b.ShiftChange + o.ShiftChange,
		OperationalLoss:    b.OperationalLoss + o.OperationalLoss,
		ProductionExcess:   b.ProductionExcess + o.ProductionExcess,
		OutsideProduction:  b.OutsideProduction + o.OutsideProduction,
		TargetMaintenance:  b.TargetMaintenance + o.TargetMaintenance,
		UsedMaintenance:    b.UsedMaintenance + o.UsedMaintenance,
		UsedProduction:     b.UsedProduction + o.UsedProduction,
		UsedMaintenanceN:   b.UsedMaintenanceN + o.UsedMaintenanceN,
		UsedMaintenanceS:   b.UsedMaintenanceS + o.UsedMaintenanceS,
	}
}

// DailyMetrics is the OEE breakdown of one production day.
type DailyMetrics struct {
	Date             string  `json:"date"` // YYYY-MM-DD
	Weekend          bool    `json:"weekend"`
	Calendar         float64 `json:"calendar"`
	Loading          float64 `json:"loading"`
	Operating        float64 `json:"operating"`
	LossAvailability float64 `json:"loss_availability"`
	LossPerformance  float64 `json:"loss_performance"`
	LossBuckets

	Ovens        float64 `json:"ovens"`
	YieldPct     float64 `json:"yield_pct"`
	ActualOutput float64 `json:"actual_output"`
	WaterM3      float64 `json:"water_m3"`

	Avail float64 `json:"avail"`
	Perf  float64 `json:"perf"`
	Qual  float64 `json:"qual"`
	OEE   float64 `json:"oee"`
}

// PeriodAggregate sums DailyMetrics sharing a period key.
// It is a terminal shape: periods are never re-aggregated into coarser periods.
type PeriodAggregate struct {
	Key              string  `json:"key"`
	Label            string  `json:"label"`
	Days             int     `json:"days"`
	Calendar         float64 `json:"calendar"`
	Loading          float64 `json:"loading"`
	Operating        float64 `json:"operating"`
	LossAvailability float64 `json:"loss_availability"`
	LossPerformance  float64 `json:"loss_performance"`
	LossBuckets

	Ovens        float64 `json:"ovens"`
	YieldSum     float64 `json:"yield_sum"`
	YieldDays    int     `json:"yield_days"` // days with yield > 0
	AvgYieldPct  float64 `json:"avg_yield_pct"`
	ActualOutput float64 `json:"actual_output"`
	WaterM3      float64 `json:"water_m3"`

	Avail float64 `json:"avail"` // fractions, recomputed from sums
	Perf  float64 `json:"perf"`
	Qual  float64 `json:"qual"`
	OEE   float64 `json:"oee"`

	OEEPct   float64 `json:"oee_pct"` // percent, one decimal
	AvailPct float64 `json:"avail_pct"`
	PerfPct  float64 `json:"perf_pct"`
	QualPct  float64 `json:"qual_pct"` // average yield, two decimals

	CumLossAvailability float64 `json:"cum_loss_availability"`
	CumLossPerformance  float64 `json:"cum_loss_performance"`
}
