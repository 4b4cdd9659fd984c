package models

import "time"

// StopEvent is a single accepted row of the downtime log.
type StopEvent struct {
	Start          time.Time `json:"start"`
	End            time.Time `json:"end"`
	DurationMin    float64   `json:"duration_min"`    // max(0, end-start)
	ProductionDate string    `json:"production_date"` // YYYY-MM-DD, noon cutover applied
	Area           string    `json:"area"`
	Type           string    `json:"type"`
	Description    string    `json:"description"`
	Equipment      string    `json:"equipment"`
	Component      string    `json:"component"`
	FailureMode    string    `json:"failure_mode"`
	StoppedFlag    string    `json:"stopped_flag"` // lower-cased "sim" | "não" | ...
	StationSide    string    `json:"station_side"` // battery / window marker, e.g. "Janela A/B"
	QuenchTag      string    `json:"quench_tag"`   // Norte | Sul
}
