package models

// Aggregation is the period granularity used to group daily metrics.
type Aggregation string

const (
	AggregationDay       Aggregation = "day"
	AggregationWeek      Aggregation = "week"
	AggregationFortnight Aggregation = "fortnight"
	AggregationMonth     Aggregation = "month"
	AggregationQuarter   Aggregation = "quarter"
	AggregationYear      Aggregation = "year"
)

// Valid reports whether a is one of the known granularities.
func (a Aggregation) Valid() bool {
	switch a {
	case AggregationDay, AggregationWeek, AggregationFortnight,
		AggregationMonth, AggregationQuarter, AggregationYear:
		return true
	}
	return false
}

// LossFilter narrows the Pareto ranking to one OEE loss facet.
type LossFilter string

const (
	LossAny          LossFilter = ""
	LossAvailability LossFilter = "availability"
	LossPerformance  LossFilter = "performance"
)

// Valid reports whether l is empty or one of the known facets.
func (l LossFilter) Valid() bool {
	return l == LossAny || l == LossAvailability || l == LossPerformance
}

// DateRange is an inclusive range of ISO dates (YYYY-MM-DD).
type DateRange struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

// Contains reports whether the ISO date falls inside the range.
func (r DateRange) Contains(date string) bool {
	return date >= r.Start && date <= r.End
}

// Filter is the caller's selection applied to one report computation.
type Filter struct {
	Range       DateRange   `json:"range"`
	Aggregation Aggregation `json:"aggregation"`
	Equipment   string      `json:"equipment,omitempty"` // empty = all equipment
	Loss        LossFilter  `json:"loss,omitempty"`
	Period      string      `json:"period,omitempty"` // single selected period key
}
