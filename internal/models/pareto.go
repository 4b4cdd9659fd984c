package models

// ParetoEntry is one bar of a Pareto ranking.
type ParetoEntry struct {
	Name             string  `json:"name"`
	TotalDurationMin float64 `json:"total_duration_min"` // rounded to whole minutes
}

// ParetoReport holds the equipment and cause rankings.
type ParetoReport struct {
	Equipment []ParetoEntry `json:"equipment"`
	Causes    []ParetoEntry `json:"causes"`
}
