package models

// ReliabilityView is the Jack-Knife analysis with quadrants placed against
// the limits of the same point set.
type ReliabilityView struct {
	EquipmentLimits QuadrantLimits     `json:"equipment_limits"`
	Equipment       []ClassifiedPoint  `json:"equipment"`
	ComponentLimits QuadrantLimits     `json:"component_limits"`
	Components      []ClassifiedPoint  `json:"components"`
	Noise           []ReliabilityPoint `json:"noise"`
}

// Report is everything computed for one dataset and filter. Summary,
// LossTree and Bridge are nil when the filter selects no period.
type Report struct {
	DatasetID   string            `json:"dataset_id"`
	Filter      Filter            `json:"filter"`
	Periods     []PeriodAggregate `json:"periods"`
	Summary     *Summary          `json:"summary"`
	LossTree    *LossTree         `json:"loss_tree"`
	Bridge      []BridgeStep      `json:"bridge"`
	Reliability ReliabilityView   `json:"reliability"`
	Pareto      ParetoReport      `json:"pareto"`
}
