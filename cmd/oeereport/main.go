// Command oeereport computes an OEE report from a stop log and a production
// log workbook and prints it as JSON.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	_ "time/tzdata"

	"github.com/spf13/pflag"

	"coke_oee/internal/config"
	"coke_oee/internal/ingest"
	"coke_oee/internal/logger"
	"coke_oee/internal/models"
	"coke_oee/internal/service"
)

type options struct {
	configPath  string
	stops       string
	production  string
	timezone    string
	start       string
	end         string
	aggregation string
	equipment   string
	loss        string
	period      string
	ignored     bool
}

func parseFlags(args []string) (options, error) {
	var o options
	fs := pflag.NewFlagSet("oeereport", pflag.ContinueOnError)
	fs.StringVar(&o.configPath, "config", "", "config file for plant targets and timezone")
	fs.StringVar(&o.stops, "stops", "", "stop log workbook (.xlsx)")
	fs.StringVar(&o.production, "production", "", "production log workbook (.xlsx)")
	fs.StringVar(&o.timezone, "timezone", "", "plant timezone, overrides plant.timezone")
	fs.StringVar(&o.start, "start", "", "first production date (YYYY-MM-DD)")
	fs.StringVar(&o.end, "end", "", "last production date (YYYY-MM-DD)")
	fs.StringVar(&o.aggregation, "aggregation", string(service.DefaultAggregation), "day|week|fortnight|month|quarter|year")
	fs.StringVar(&o.equipment, "equipment", "", "only count this equipment's stops")
	fs.StringVar(&o.loss, "loss", "", "Pareto loss facet: availability|performance")
	fs.StringVar(&o.period, "period", "", "restrict summary views to one period key")
	fs.BoolVar(&o.ignored, "ignored", false, "print the ignored rows instead of the report")
	if err := fs.Parse(args); err != nil {
		return o, err
	}
	if o.stops == "" || o.production == "" {
		return o, fmt.Errorf("--stops and --production are required")
	}
	return o, nil
}

func (o options) filter() models.Filter {
	return models.Filter{
		Range:       models.DateRange{Start: o.start, End: o.end},
		Aggregation: models.Aggregation(o.aggregation),
		Equipment:   o.equipment,
		Loss:        models.LossFilter(o.loss),
		Period:      o.period,
	}
}

func main() {
	log := logger.Get(logger.WarnLevel)

	opts, err := parseFlags(os.Args[1:])
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	if err := run(context.Background(), opts, os.Stdout); err != nil {
		log.Errorw("report_failed", "err", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, opts options, out io.Writer) error {
	cfg, err := config.Load(opts.configPath)
	if err != nil {
		return err
	}
	if opts.timezone != "" {
		cfg.Plant.Timezone = opts.timezone
	}
	loc, err := cfg.Location()
	if err != nil {
		return err
	}

	f, err := service.NormalizeFilter(opts.filter())
	if err != nil {
		return err
	}

	ds, err := loadDataset(opts, loc)
	if err != nil {
		return err
	}

	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	if opts.ignored {
		return enc.Encode(ds.Ignored)
	}

	f.Range = service.DefaultRange(ds.Production, f.Range, time.Now().In(loc))
	rep, err := service.BuildReport(ctx, ds, f, cfg.OEETargets())
	if err != nil {
		return err
	}
	return enc.Encode(rep)
}

func loadDataset(opts options, loc *time.Location) (models.Dataset, error) {
	stops, err := os.Open(opts.stops)
	if err != nil {
		return models.Dataset{}, err
	}
	defer stops.Close()

	production, err := os.Open(opts.production)
	if err != nil {
		return models.Dataset{}, err
	}
	defer production.Close()

	return ingest.Load(stops, production, loc)
}
