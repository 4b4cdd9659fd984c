package oee

import (
	"time"

	"coke_oee/internal/models"
)

// sideDay is one quench's window activity on one production day.
type sideDay struct {
	seen     bool
	minStart time.Time
	maxEnd   time.Time
	duration float64
}

func (s sideDay) add(ev models.StopEvent) sideDay {
	if !s.seen || ev.Start.Before(s.minStart) {
		s.minStart = ev.Start
	}
	if !s.seen || ev.End.After(s.maxEnd) {
		s.maxEnd = ev.End
	}
	s.seen = true
	s.duration += ev.DurationMin
	return s
}

func minuteOfDay(t time.Time) int { return t.Hour()*60 + t.Minute() }

func withinTolerance(t time.Time, hour int) bool {
	diff := minuteOfDay(t) - hour*60
	if diff < 0 {
		diff = -diff
	}
	return diff <= punctualityTolMin
}

// contained checks the exact 08:00-17:00 band, by time of day.
func contained(start, end time.Time) bool {
	return minuteOfDay(start) >= containmentStartHour*60 && minuteOfDay(end) <= containmentEndHour*60
}

func (s sideDay) score(acc models.SideAdherence) models.SideAdherence {
	if s.seen {
		acc.DaysWithWindow++
		if withinTolerance(s.minStart, windowStartHour) {
			acc.StartOnTime++
		}
		if withinTolerance(s.maxEnd, windowEndHour) {
			acc.EndOnTime++
		}
		if contained(s.minStart, s.maxEnd) {
			acc.Contained++
		}
	}
	acc.AvgDurationPct += min(100, s.duration/QuenchBudgetMin*100)
	return acc
}

// CheckWindows scores maintenance-window discipline per quench over every
// calendar day of rng. Days without a window on a side count as zero duration.
func CheckWindows(stops []models.StopEvent, rng models.DateRange) models.WindowAdherence {
	first, okStart := ParseDateKey(rng.Start)
	last, okEnd := ParseDateKey(rng.End)
	if !okStart || !okEnd || last.Before(first) {
		return models.WindowAdherence{}
	}

	type pair struct{ norte, sul sideDay }
	byDate := make(map[string]pair)
	for _, ev := range stops {
		if !rng.Contains(ev.ProductionDate) || !IsWindow(ev) {
			continue
		}
		p := byDate[ev.ProductionDate]
		if SideOf(ev) == SideNorte {
			p.norte = p.norte.add(ev)
		} else {
			p.sul = p.sul.add(ev)
		}
		byDate[ev.ProductionDate] = p
	}

	var out models.WindowAdherence
	var freqSum float64
	for d := first; !d.After(last); d = d.AddDate(0, 0, 1) {
		out.TotalDays++
		p := byDate[d.Format(isoDate)]
		out.Norte = p.norte.score(out.Norte)
		out.Sul = p.sul.score(out.Sul)
		switch {
		case p.norte.seen && p.sul.seen:
			freqSum += 100
		case p.norte.seen || p.sul.seen:
			freqSum += 50
		}
	}

	days := float64(max(1, out.TotalDays))
	out.Norte.DaysWithoutWindow = out.TotalDays - out.Norte.DaysWithWindow
	out.Sul.DaysWithoutWindow = out.TotalDays - out.Sul.DaysWithWindow
	out.Norte.AvgDurationPct /= days
	out.Sul.AvgDurationPct /= days
	out.FrequencyScore = freqSum / days
	return out
}
