package models

import "time"

// ProductionRecord is one calendar day of the production log.
type ProductionRecord struct {
	Date         time.Time `json:"date"`
	PlannedOvens float64   `json:"planned_ovens"`
	ActualOvens  float64   `json:"actual_ovens"`
	OvenCount    float64   `json:"oven_count"`
	YieldPct     float64   `json:"yield_pct"` // 0-100
	WaterM3      float64   `json:"water_m3"`
	WetChargeTon float64   `json:"wet_charge_ton"`
}
