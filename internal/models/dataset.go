package models

import "time"

// IgnoredRow records a raw row that ingestion skipped and why.
type IgnoredRow struct {
	Row    int    `json:"row"` // 1-based sheet row
	Reason string `json:"reason"`
}

// AuditStats summarizes an ingestion pass for the operator.
type AuditStats struct {
	StopCount        int     `json:"stop_count"`
	StoppedHours     float64 `json:"stopped_hours"`
	MaintenanceHours float64 `json:"maintenance_hours"`
	ProductionDays   int     `json:"production_days"`
	Ovens            float64 `json:"ovens"`
	ActualOutput     float64 `json:"actual_output"`
	WaterM3          float64 `json:"water_m3"`
}

// Dataset is the immutable result of ingesting one stop log and one production log.
// Production is keyed by ISO date (YYYY-MM-DD); a later row for the same date replaces an earlier one.
type Dataset struct {
	ID         string                      `json:"id"`
	CreatedAt  time.Time                   `json:"created_at"`
	Stops      []StopEvent                 `json:"stops"`
	Production map[string]ProductionRecord `json:"production"`
	Ignored    []IgnoredRow                `json:"ignored"`
	Audit      AuditStats                  `json:"audit"`
}

// DatasetInfo is the listing view of a stored dataset.
type DatasetInfo struct {
	ID        string     `json:"id"`
	CreatedAt time.Time  `json:"created_at"`
	Audit     AuditStats `json:"audit"`
}
