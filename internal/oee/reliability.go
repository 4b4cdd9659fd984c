package oee

import (
	"strings"

	"coke_oee/internal/models"
)

// isReliabilityFailure selects the stops the Jack-Knife counts: stopped,
// maintenance-owned or corrective, and not part of any maintenance window.
func isReliabilityFailure(ev models.StopEvent) bool {
	if strings.Contains(strings.ToLower(ev.StationSide), "janela") {
		return false
	}
	if !isStopped(ev) {
		return false
	}
	return isMaintenanceArea(ev) || containsAny(ev.Type, correctiveMarkers)
}

func equipmentLabel(ev models.StopEvent) string {
	if ev.Equipment == "" {
		return untaggedEquipment
	}
	return ev.Equipment
}

// AnalyzeReliability groups failures in rng by equipment and by
// equipment+component. Single short failures (frequency 1, MTTR under 30
// minutes) are moved from the equipment list into Noise.
func AnalyzeReliability(stops []models.StopEvent, rng models.DateRange) models.ReliabilityReport {
	equip := newOrdered[models.ReliabilityPoint]()
	comp := newOrdered[models.ReliabilityPoint]()

	for _, ev := range stops {
		if !rng.Contains(ev.ProductionDate) || !isReliabilityFailure(ev) {
			continue
		}
		name := equipmentLabel(ev)
		e := equip.at(name, func() models.ReliabilityPoint { return models.ReliabilityPoint{Name: name} })
		e.Frequency++
		e.TotalDurationMin += ev.DurationMin

		cname := ev.Component
		if cname == "" {
			cname = generalComponent
		}
		key := name + " | " + cname
		c := comp.at(key, func() models.ReliabilityPoint {
			return models.ReliabilityPoint{Name: key, Component: cname, ParentEquipment: name}
		})
		c.Frequency++
		c.TotalDurationMin += ev.DurationMin
	}

	report := models.ReliabilityReport{
		Equipment:  []models.ReliabilityPoint{},
		Components: withMTTR(comp.values()),
		Noise:      []models.ReliabilityPoint{},
	}
	for _, p := range withMTTR(equip.values()) {
		if p.Frequency == 1 && p.MTTRMin < noiseMaxMTTRMin {
			report.Noise = append(report.Noise, p)
			continue
		}
		report.Equipment = append(report.Equipment, p)
	}
	return report
}

func withMTTR(points []models.ReliabilityPoint) []models.ReliabilityPoint {
	for i := range points {
		points[i].MTTRMin = safeDiv(points[i].TotalDurationMin, float64(points[i].Frequency))
	}
	return points
}

// FilterComponents keeps the component points belonging to equipment.
func FilterComponents(points []models.ReliabilityPoint, equipment string) []models.ReliabilityPoint {
	out := make([]models.ReliabilityPoint, 0, len(points))
	for _, p := range points {
		if p.ParentEquipment == equipment {
			out = append(out, p)
		}
	}
	return out
}

// QuadrantLimitsFor derives the crosshair and iso-downtime lines from the
// points themselves, so the same point can land in different quadrants for
// different datasets.
func QuadrantLimitsFor(points []models.ReliabilityPoint) models.QuadrantLimits {
	if len(points) == 0 {
		return models.QuadrantLimits{}
	}
	var maxFreq, maxMTTR, maxTotal float64
	for _, p := range points {
		maxFreq = max(maxFreq, float64(p.Frequency))
		maxMTTR = max(maxMTTR, p.MTTRMin)
		maxTotal = max(maxTotal, p.TotalDurationMin)
	}
	return models.QuadrantLimits{
		Frequency:         float64(max(minFrequencyCrosshair, jsRound(maxFreq*quadrantShare))),
		MTTR:              float64(max(minMTTRCrosshair, jsRound(maxMTTR*quadrantShare))),
		AvailabilityLimit: maxTotal * availabilityLimitK,
		TargetDowntime:    maxTotal * targetDowntimeK,
	}
}

// QuadrantOf places p relative to limits. Points on a crosshair count as below it.
func QuadrantOf(p models.ReliabilityPoint, limits models.QuadrantLimits) models.Quadrant {
	chronic := float64(p.Frequency) > limits.Frequency
	acute := p.MTTRMin > limits.MTTR
	switch {
	case chronic && acute:
		return models.QuadrantChronicAcute
	case chronic:
		return models.QuadrantChronic
	case acute:
		return models.QuadrantAcute
	default:
		return models.QuadrantIdeal
	}
}

// ClassifyQuadrants computes fresh limits for points and classifies each one.
func ClassifyQuadrants(points []models.ReliabilityPoint) (models.QuadrantLimits, []models.ClassifiedPoint) {
	limits := QuadrantLimitsFor(points)
	out := make([]models.ClassifiedPoint, 0, len(points))
	for _, p := range points {
		out = append(out, models.ClassifiedPoint{ReliabilityPoint: p, Quadrant: QuadrantOf(p, limits)})
	}
	return limits, out
}
