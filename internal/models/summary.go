package models

// SideAdherence scores one quench station's window discipline over a date range.
type SideAdherence struct {
	DaysWithWindow    int     `json:"days_with_window"`
	DaysWithoutWindow int     `json:"days_without_window"`
	StartOnTime       int     `json:"start_on_time"` // days with first start within 08:00 +-15min
	EndOnTime         int     `json:"end_on_time"`   // days with last end within 13:00 +-15min
	Contained         int     `json:"contained"`     // days with the window inside 08:00-17:00
	AvgDurationPct    float64 `json:"avg_duration_pct"`
}

// WindowAdherence is the per-side maintenance-window check.
type WindowAdherence struct {
	TotalDays      int           `json:"total_days"`
	Norte          SideAdherence `json:"norte"`
	Sul            SideAdherence `json:"sul"`
	FrequencyScore float64       `json:"frequency_score"` // 0-100
}

// Summary is the headline aggregate of a filtered period list.
//
// When an equipment filter is active only the loss minutes reflect that equipment;
// ovens, yield and the target baseline still cover the whole plant.
type Summary struct {
	Periods int `json:"periods"`
	Days    int `json:"days"`

	OEEPct   float64 `json:"oee_pct"` // mean of period values
	AvailPct float64 `json:"avail_pct"`
	PerfPct  float64 `json:"perf_pct"`
	QualPct  float64 `json:"qual_pct"`

	Ovens       float64 `json:"ovens"`
	TargetOvens float64 `json:"target_ovens"`
	WaterM3     float64 `json:"water_m3"`

	PaceMin       float64 `json:"pace_min"`        // operating minutes per oven
	TargetPaceMin float64 `json:"target_pace_min"` // loading minutes per target oven

	LossAvailabilityMin float64 `json:"loss_availability_min"`
	LossPerformanceMin  float64 `json:"loss_performance_min"`
	FailureLossMin      float64 `json:"failure_loss_min"`
	ScheduledMaintMin   float64 `json:"scheduled_maint_loss_min"` // maintenance excess + outside
	OperationalLossMin  float64 `json:"operational_loss_min"`
	ShiftChangeMin      float64 `json:"shift_change_min"`
	TargetMaintMin      float64 `json:"target_maint_min"`
	UsedMaintMin        float64 `json:"used_maint_min"`
	LoadingMin          float64 `json:"loading_min"`
	MaintExcessMin      float64 `json:"maint_excess_min"`
	OutsideMaintMin     float64 `json:"outside_maint_min"`
	UsedProdMin         float64 `json:"used_prod_min"`
	ProdExcessMin       float64 `json:"prod_excess_min"`
	OutsideProdMin      float64 `json:"outside_prod_min"`

	TargetShiftChanges float64 `json:"target_shift_changes"`
	CalendarMin        float64 `json:"calendar_min"`

	Window WindowAdherence `json:"window"`
}

// LossBranch is one node of the loss tree with its allowance.
type LossBranch struct {
	Minutes float64 `json:"minutes"`
	Target  float64 `json:"target"`
}

// LossTree decomposes loading time down to fully productive time, in minutes.
type LossTree struct {
	Loading         float64    `json:"loading"`
	Operating       float64    `json:"operating"`
	NetOperating    float64    `json:"net_operating"`
	FullyProductive float64    `json:"fully_productive"`
	LossAvail       float64    `json:"loss_availability"`
	LossPerf        float64    `json:"loss_performance"`
	Failure         LossBranch `json:"failure"`
	ScheduledMaint  LossBranch `json:"scheduled_maintenance"`
	ShiftChange     LossBranch `json:"shift_change"`
	Rhythm          LossBranch `json:"rhythm"`
	Operational     LossBranch `json:"operational"`
	Quality         LossBranch `json:"quality"`
}
