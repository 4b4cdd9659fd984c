package oee

import (
	"math"
	"sort"

	"coke_oee/internal/models"
)

// Bridge step names, in the plant's vocabulary.
const (
	StepTarget      = "Meta"
	StepActual      = "Realizado"
	StepFailures    = "Falhas"
	StepOtherAvail  = "Outros Disp"
	StepMissingWin  = "Ausência de Janelas"
	StepUtilization = "Utilização"
	StepRhythm      = "Forno a Forno"

	categoryAvailability = "availability"
	categoryPerformance  = "performance"
)

// BridgeInput holds the aggregate minutes the decomposition works from.
type BridgeInput struct {
	TargetOvens   float64
	ActualOvens   float64
	TargetPaceMin float64 // loading minutes per target oven

	LoadingMin        float64
	FailureLossMin    float64
	ScheduledMaintMin float64 // maintenance excess + outside maintenance
	TargetMaintMin    float64
	UsedMaintMin      float64
	OperationalMin    float64
	ShiftChangeMin    float64
	ProdExcessMin     float64
	OutsideProdMin    float64
}

// BridgeInputFromSummary copies the relevant totals out of a summary.
func BridgeInputFromSummary(s models.Summary) BridgeInput {
	return BridgeInput{
		TargetOvens:       s.TargetOvens,
		ActualOvens:       s.Ovens,
		TargetPaceMin:     s.TargetPaceMin,
		LoadingMin:        s.LoadingMin,
		FailureLossMin:    s.FailureLossMin,
		ScheduledMaintMin: s.ScheduledMaintMin,
		TargetMaintMin:    s.TargetMaintMin,
		UsedMaintMin:      s.UsedMaintMin,
		OperationalMin:    s.OperationalLossMin,
		ShiftChangeMin:    s.ShiftChangeMin,
		ProdExcessMin:     s.ProdExcessMin,
		OutsideProdMin:    s.OutsideProdMin,
	}
}

// Decompose bridges the target oven count to the actual one. The returned
// waterfall starts with the target bar, has one bar per contribution sorted
// most negative first, and ends with the actual bar. The rhythm contribution
// is the residual, so target plus all deltas always equals actual.
//
// It returns nil when the target pace is zero or not finite.
func Decompose(in BridgeInput, targets Targets) []models.BridgeStep {
	pace := in.TargetPaceMin
	if pace == 0 || math.IsNaN(pace) || math.IsInf(pace, 0) {
		return nil
	}
	target := jsRound(in.TargetOvens)
	actual := jsRound(in.ActualOvens)
	toOvens := func(minutes float64) int { return jsRound(minutes / pace) }

	failureBudget := in.LoadingMin * (1 - targets.Avail/100)
	failures := toOvens(failureBudget - in.FailureLossMin)
	otherAvail := toOvens(-in.ScheduledMaintMin)
	missingWin := toOvens(in.TargetMaintMin - in.UsedMaintMin)
	utilization := toOvens(-(in.OperationalMin + in.ShiftChangeMin + in.ProdExcessMin + in.OutsideProdMin))
	rhythm := actual - target - failures - otherAvail - missingWin - utilization

	steps := []models.BridgeStep{
		{Name: StepFailures, Category: categoryAvailability, Delta: failures},
		{Name: StepOtherAvail, Category: categoryAvailability, Delta: otherAvail},
		{Name: StepMissingWin, Category: categoryAvailability, Delta: missingWin},
		{Name: StepUtilization, Category: categoryPerformance, Delta: utilization},
		{Name: StepRhythm, Category: categoryPerformance, Delta: rhythm},
	}
	sort.SliceStable(steps, func(i, j int) bool { return steps[i].Delta < steps[j].Delta })

	out := make([]models.BridgeStep, 0, len(steps)+2)
	out = append(out, models.BridgeStep{Name: StepTarget, Delta: target, Value: target, Kind: models.BridgeStart})

	running := target
	for _, st := range steps {
		if st.Delta >= 0 {
			st.Base = running
			running += st.Delta
			st.Kind = models.BridgeGain
		} else {
			running += st.Delta
			st.Base = running
			st.Kind = models.BridgeLoss
		}
		st.Value = absInt(st.Delta)
		out = append(out, st)
	}

	out = append(out, models.BridgeStep{Name: StepActual, Delta: actual, Value: actual, Kind: models.BridgeEnd})
	return out
}

// jsRound rounds half toward positive infinity, matching the plant's reports.
func jsRound(v float64) int {
	return int(math.Floor(v + 0.5))
}

func absInt(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
