package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"golang.org/x/sync/errgroup"

	"coke_oee/internal/logger"
	"coke_oee/internal/models"
	"coke_oee/internal/oee"
	"coke_oee/internal/repository"
)

// Filter validation errors.
var (
	ErrInvalidDateRange   = errors.New("invalid date range")
	ErrUnknownAggregation = errors.New("unknown aggregation")
	ErrUnknownLossFilter  = errors.New("unknown loss filter")
)

// DefaultAggregation is used when the filter names none.
const DefaultAggregation = models.AggregationMonth

type ReportService struct {
	datasets repository.Datasets
	targets  oee.Targets
	loc      *time.Location
	log      *logger.Logger
}

func NewReportService(datasets repository.Datasets, targets oee.Targets, loc *time.Location, log *logger.Logger) *ReportService {
	return &ReportService{datasets: datasets, targets: targets, loc: loc, log: log}
}

func (s *ReportService) Report(ctx context.Context, datasetID string, f models.Filter, reference time.Time) (models.Report, error) {
	f, err := NormalizeFilter(f)
	if err != nil {
		return models.Report{}, err
	}
	ds, err := s.datasets.Get(ctx, datasetID)
	if err != nil {
		return models.Report{}, err
	}
	f.Range = DefaultRange(ds.Production, f.Range, reference.In(s.loc))

	rep, err := BuildReport(ctx, ds, f, s.targets)
	if err != nil {
		return models.Report{}, err
	}
	s.log.Debugw("report_built",
		"dataset_id", datasetID,
		"start", f.Range.Start,
		"end", f.Range.End,
		"aggregation", f.Aggregation,
		"periods", len(rep.Periods),
	)
	return rep, nil
}

// NormalizeFilter applies the default aggregation and rejects unknown
// aggregations, loss facets and malformed dates.
func NormalizeFilter(f models.Filter) (models.Filter, error) {
	if f.Aggregation == "" {
		f.Aggregation = DefaultAggregation
	}
	if !f.Aggregation.Valid() {
		return f, fmt.Errorf("%w: %q", ErrUnknownAggregation, f.Aggregation)
	}
	if !f.Loss.Valid() {
		return f, fmt.Errorf("%w: %q", ErrUnknownLossFilter, f.Loss)
	}
	for _, d := range []string{f.Range.Start, f.Range.End} {
		if d == "" {
			continue
		}
		if _, ok := oee.ParseDateKey(d); !ok {
			return f, fmt.Errorf("%w: %q is not YYYY-MM-DD", ErrInvalidDateRange, d)
		}
	}
	if f.Range.Start != "" && f.Range.End != "" && f.Range.Start > f.Range.End {
		return f, fmt.Errorf("%w: start %s after end %s", ErrInvalidDateRange, f.Range.Start, f.Range.End)
	}
	return f, nil
}

// DefaultRange fills a missing start with the first production date and a
// missing end with the day before reference, capped at the last production
// date. Without production data the range is returned unchanged.
func DefaultRange(prod map[string]models.ProductionRecord, rng models.DateRange, reference time.Time) models.DateRange {
	if len(prod) == 0 || (rng.Start != "" && rng.End != "") {
		return rng
	}
	dates := make([]string, 0, len(prod))
	for d := range prod {
		dates = append(dates, d)
	}
	sort.Strings(dates)

	if rng.Start == "" {
		rng.Start = dates[0]
	}
	if rng.End == "" {
		last := dates[len(dates)-1]
		rng.End = last
		if yesterday := oee.DateKey(reference.AddDate(0, 0, -1)); yesterday != "" && yesterday < last {
			rng.End = yesterday
		}
	}
	return rng
}

// BuildReport runs every analysis for ds under f. The period chain is
// computed first; the summary-derived views, the reliability analysis and
// the Pareto ranking then run concurrently.
func BuildReport(ctx context.Context, ds models.Dataset, f models.Filter, targets oee.Targets) (models.Report, error) {
	days := oee.ComputeDaily(ds.Stops, ds.Production, f.Range, f.Equipment)
	periods := oee.AggregatePeriods(days, f.Aggregation)

	var (
		summary     *models.Summary
		tree        *models.LossTree
		bridge      []models.BridgeStep
		reliability models.ReliabilityView
		pareto      models.ParetoReport
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		if err := gctx.Err(); err != nil {
			return err
		}
		s, ok := oee.Summarize(periods, f.Period, targets)
		if !ok {
			return nil
		}
		s.Window = oee.CheckWindows(ds.Stops, f.Range)
		summary = &s
		if t, ok := oee.BuildLossTree(periods, f.Period, targets); ok {
			tree = &t
		}
		bridge = oee.Decompose(oee.BridgeInputFromSummary(s), targets)
		return nil
	})
	g.Go(func() error {
		if err := gctx.Err(); err != nil {
			return err
		}
		reliability = reliabilityView(ds.Stops, f)
		return nil
	})
	g.Go(func() error {
		if err := gctx.Err(); err != nil {
			return err
		}
		pareto = oee.RankPareto(ds.Stops, f)
		return nil
	})
	if err := g.Wait(); err != nil {
		return models.Report{}, err
	}

	if periods == nil {
		periods = []models.PeriodAggregate{}
	}
	return models.Report{
		DatasetID:   ds.ID,
		Filter:      f,
		Periods:     periods,
		Summary:     summary,
		LossTree:    tree,
		Bridge:      bridge,
		Reliability: reliability,
		Pareto:      pareto,
	}, nil
}

// reliabilityView classifies equipment points and, when an equipment is
// selected, only that equipment's components.
func reliabilityView(stops []models.StopEvent, f models.Filter) models.ReliabilityView {
	rel := oee.AnalyzeReliability(stops, f.Range)
	comps := rel.Components
	if f.Equipment != "" {
		comps = oee.FilterComponents(comps, f.Equipment)
	}

	var view models.ReliabilityView
	view.EquipmentLimits, view.Equipment = oee.ClassifyQuadrants(rel.Equipment)
	view.ComponentLimits, view.Components = oee.ClassifyQuadrants(comps)
	view.Noise = rel.Noise
	return view
}
