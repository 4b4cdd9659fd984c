package models

// ReliabilityPoint is the failure profile of one equipment or equipment+component.
type ReliabilityPoint struct {
	Name             string  `json:"name"`
	Component        string  `json:"component,omitempty"`
	ParentEquipment  string  `json:"parent_equipment,omitempty"`
	Frequency        int     `json:"frequency"`
	TotalDurationMin float64 `json:"total_duration_min"`
	MTTRMin          float64 `json:"mttr_min"`
}

// ReliabilityReport is the Jack-Knife dataset for a date range.
type ReliabilityReport struct {
	Equipment  []ReliabilityPoint `json:"equipment"`
	Components []ReliabilityPoint `json:"components"`
	Noise      []ReliabilityPoint `json:"noise"`
}

// Quadrant names a Jack-Knife region.
type Quadrant string

const (
	QuadrantIdeal        Quadrant = "ideal"
	QuadrantChronic      Quadrant = "chronic"
	QuadrantAcute        Quadrant = "acute"
	QuadrantChronicAcute Quadrant = "chronic+acute"
)

// QuadrantLimits are the crosshair and iso-downtime lines derived from one dataset.
type QuadrantLimits struct {
	Frequency         float64 `json:"frequency"`
	MTTR              float64 `json:"mttr"`
	AvailabilityLimit float64 `json:"availability_limit"` // frequency*mttr above which downtime is critical
	TargetDowntime    float64 `json:"target_downtime"`
}

// ClassifiedPoint pairs a point with its quadrant for presentation.
type ClassifiedPoint struct {
	ReliabilityPoint
	Quadrant Quadrant `json:"quadrant"`
}
