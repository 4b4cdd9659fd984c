package oee

// Budget model constants, in minutes.
const (
	CalendarMinutes      = 48 * 60 // two-day rolling window per production day
	MaintenanceBudgetMin = 10 * 60 // both quenches
	QuenchBudgetMin      = 5 * 60  // per quench
)

// Maintenance window used for the inside/outside split (hour of the event's start day).
const (
	windowStartHour = 8
	windowEndHour   = 13
)

// Adherence scoring.
const (
	containmentStartHour = 8
	containmentEndHour   = 17
	punctualityTolMin    = 15
)

// Reliability and ranking heuristics.
const (
	noiseMaxMTTRMin       = 30
	quadrantShare         = 0.3
	minFrequencyCrosshair = 2
	minMTTRCrosshair      = 10
	availabilityLimitK    = 0.8
	targetDowntimeK       = 0.2

	paretoTopN       = 10
	causeLabelMaxLen = 35
)

// Fallback labels.
const (
	untaggedEquipment = "Sem Tag"
	generalComponent  = "Geral"
	unidentifiedCause = "Não identificado"
	unknownCausePart  = "?"
)

// Targets are the plant goals used by the summary, loss tree and bridge.
// Percentages are 0-100.
type Targets struct {
	OEE                float64
	Avail              float64
	Perf               float64
	Qual               float64
	OvensPerDay        float64
	ShiftChangesPerDay float64
}

// DefaultTargets returns the plant's standing goals.
func DefaultTargets() Targets {
	return Targets{
		OEE:                65,
		Avail:              90,
		Perf:               95,
		Qual:               72.15,
		OvensPerDay:        160,
		ShiftChangesPerDay: 3,
	}
}
