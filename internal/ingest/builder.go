package ingest

import (
	"math"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"coke_oee/internal/models"
	"coke_oee/internal/oee"
)

// Rejection reasons reported for skipped stop rows.
const (
	reasonInvalidDate = "Data Inválida"
	reasonBadISO      = "Erro ISO"
)

// Production sheet column positions.
const (
	colProdDate      = 1
	colProdPlanned   = 2
	colProdActual    = 3
	colProdWetCharge = 6
	colProdOvens     = 9
	colProdYield     = 10
	colProdWater     = 20
)

// StopLog is the outcome of reading the stop sheet.
type StopLog struct {
	Stops          []models.StopEvent
	Ignored        []models.IgnoredRow
	StoppedMin     float64
	MaintenanceMin float64
}

// ProductionLog is the outcome of reading the production sheet.
type ProductionLog struct {
	Records map[string]models.ProductionRecord
	First   time.Time
	Last    time.Time
	Ovens   float64
	Output  float64
	WaterM3 float64
}

// BuildStops turns raw stop sheet rows into events. Rows for other processes,
// rows with unreadable times and rows whose production date cannot be
// formatted are reported in Ignored with their 1-based sheet row.
func BuildStops(rows [][]any, loc *time.Location) (StopLog, error) {
	hdr, err := LocateHeader(rows)
	if err != nil {
		return StopLog{}, err
	}
	cols := mapColumns(rows[hdr])

	out := StopLog{Stops: []models.StopEvent{}, Ignored: []models.IgnoredRow{}}
	for i := hdr + 1; i < len(rows); i++ {
		r := rows[i]
		if len(r) == 0 {
			continue
		}
		rowNum := i + 1

		process := strings.ToLower(textAt(r, cols.Process))
		if !strings.Contains(process, "maquina") && !strings.Contains(process, "máquina") {
			out.Ignored = append(out.Ignored, models.IgnoredRow{Row: rowNum, Reason: "Processo: " + process})
			continue
		}

		start, okStart := ParseDate(cellAt(r, cols.Start), loc)
		end, okEnd := ParseDate(cellAt(r, cols.End), loc)
		if !okStart || !okEnd {
			out.Ignored = append(out.Ignored, models.IgnoredRow{Row: rowNum, Reason: reasonInvalidDate})
			continue
		}
		date := oee.DateKey(oee.ProductionDate(start))
		if date == "" {
			out.Ignored = append(out.Ignored, models.IgnoredRow{Row: rowNum, Reason: reasonBadISO})
			continue
		}

		duration := math.Max(0, end.Sub(start).Minutes())
		stopped := strings.ToLower(textAt(r, cols.Stopped))
		area := textAt(r, cols.Area)
		if strings.Contains(stopped, "sim") {
			out.StoppedMin += duration
			if strings.Contains(strings.ToLower(area), "manut") {
				out.MaintenanceMin += duration
			}
		}

		side := textAt(r, cols.Side)
		if cols.Side < 0 {
			side = textAt(r, fallbackSideColumn)
		}

		out.Stops = append(out.Stops, models.StopEvent{
			Start:          start,
			End:            end,
			DurationMin:    duration,
			ProductionDate: date,
			Area:           area,
			Type:           textAt(r, cols.Type),
			Description:    textAt(r, cols.Description),
			Equipment:      textAt(r, cols.Equipment),
			Component:      textAt(r, cols.Component),
			FailureMode:    textAt(r, cols.Mode),
			StoppedFlag:    stopped,
			StationSide:    side,
			QuenchTag:      textAt(r, cols.Quench),
		})
	}
	return out, nil
}

// BuildProduction reads the production sheet. Rows without a date and
// subtotal rows are skipped; a later row for the same date replaces the
// earlier one. Yields reported as fractions are scaled to percent.
func BuildProduction(rows [][]any, loc *time.Location) ProductionLog {
	out := ProductionLog{Records: make(map[string]models.ProductionRecord)}
	for _, r := range rows {
		if len(r) == 0 {
			continue
		}
		raw := cellAt(r, colProdDate)
		d, ok := ParseDate(raw, loc)
		if !ok || strings.Contains(strings.ToLower(cellString(raw)), "total") {
			continue
		}
		key := oee.DateKey(d)
		if key == "" {
			continue
		}
		if out.First.IsZero() || d.Before(out.First) {
			out.First = d
		}
		if out.Last.IsZero() || d.After(out.Last) {
			out.Last = d
		}

		yield := ParseNumber(cellAt(r, colProdYield))
		if yield > 0 && yield < 1 {
			yield *= 100
		}
		rec := models.ProductionRecord{
			Date:         d,
			PlannedOvens: ParseNumber(cellAt(r, colProdPlanned)),
			ActualOvens:  ParseNumber(cellAt(r, colProdActual)),
			OvenCount:    ParseNumber(cellAt(r, colProdOvens)),
			YieldPct:     yield,
			WaterM3:      ParseNumber(cellAt(r, colProdWater)),
			WetChargeTon: ParseNumber(cellAt(r, colProdWetCharge)),
		}
		out.Ovens += rec.OvenCount
		out.Output += rec.ActualOvens
		out.WaterM3 += rec.WaterM3
		out.Records[key] = rec
	}
	return out
}

// SpanDays counts calendar days from the first to the last production date, inclusive.
func (p ProductionLog) SpanDays() int {
	if p.First.IsZero() || p.Last.IsZero() {
		return 0
	}
	return int(math.Ceil(p.Last.Sub(p.First).Hours()/24)) + 1
}

// Assemble combines both logs into a dataset with its audit figures.
func Assemble(stops StopLog, prod ProductionLog) models.Dataset {
	return models.Dataset{
		Stops:      stops.Stops,
		Production: prod.Records,
		Ignored:    stops.Ignored,
		Audit: models.AuditStats{
			StopCount:        len(stops.Stops),
			StoppedHours:     round(stops.StoppedMin/60, 1),
			MaintenanceHours: round(stops.MaintenanceMin/60, 1),
			ProductionDays:   prod.SpanDays(),
			Ovens:            prod.Ovens,
			ActualOutput:     round(prod.Output, 0),
			WaterM3:          round(prod.WaterM3, 0),
		},
	}
}

func round(v float64, places int32) float64 {
	return decimal.NewFromFloat(v).Round(places).InexactFloat64()
}
