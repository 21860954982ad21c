package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/torkilv/phase-out-village/internal/config"
	"github.com/torkilv/phase-out-village/internal/dataset"
	"github.com/torkilv/phase-out-village/internal/economy"
	"github.com/torkilv/phase-out-village/internal/game"
	"github.com/torkilv/phase-out-village/internal/production"
	"github.com/torkilv/phase-out-village/internal/scoring"
	"github.com/torkilv/phase-out-village/internal/telemetry"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	if len(args) < 1 {
		printUsage(stderr)
		return 2
	}

	var err error
	switch args[0] {
	case "fields":
		err = cmdFields(args[1:], stdout)
	case "stats":
		err = cmdStats(args[1:], stdout)
	case "project":
		err = cmdProject(args[1:], stdout)
	case "simulate":
		err = cmdSimulate(args[1:], stdout, stderr)
	case "schema":
		err = cmdSchema(args[1:], stdout)
	default:
		printUsage(stderr)
		return 2
	}
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		fmt.Fprintf(stderr, "%s failed: %v\n", args[0], err)
		return 1
	}
	return 0
}

func printUsage(w io.Writer) {
	fmt.Fprintln(w, `usage: phaseout <command> [flags]

commands:
  fields    list fields with their production model
  stats     dataset totals and the emissions baseline
  project   project one field forward
  simulate  play a session from the command line
  schema    print the JSON schema of the dataset file`)
}

func loadData(path string) (*dataset.Dataset, error) {
	if path == "" {
		return dataset.Load()
	}
	return dataset.LoadFile(path)
}

func loadConfig(path, difficulty string) (*config.Config, error) {
	cfg := config.Default()
	if path != "" {
		var err error
		if cfg, err = config.Load(path); err != nil {
			return nil, err
		}
	}

	switch {
	case difficulty != "":
		cfg.ApplyBalance(config.Preset(difficulty))
	case hasEnvPrefix("PHASEOUT_"):
		b, err := config.FromEnv()
		if err != nil {
			return nil, err
		}
		cfg.ApplyBalance(b)
	}
	return cfg, nil
}

func hasEnvPrefix(prefix string) bool {
	for _, kv := range os.Environ() {
		if strings.HasPrefix(kv, prefix) {
			return true
		}
	}
	return false
}

func cmdFields(args []string, stdout io.Writer) error {
	fs := flag.NewFlagSet("fields", flag.ContinueOnError)
	data := fs.String("data", "", "dataset JSON file (default: embedded)")
	year := fs.Int("active-in", 0, "only list fields active in this year")
	refYear := fs.Int("reference-year", production.DefaultReferenceYear, "reference year for baselines")
	if err := fs.Parse(args); err != nil {
		return err
	}

	ds, err := loadData(*data)
	if err != nil {
		return err
	}
	fields := ds.Fields()
	if *year > 0 {
		fields = ds.Active(*year)
	}

	tw := tabwriter.NewWriter(stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tNAME\tCATEGORY\tBASELINE\tOIL\tCO2\tDECLINE\tPHASE-OUT")
	for _, f := range fields {
		m := production.NewModel(f.History, *refYear)
		fmt.Fprintf(tw, "%s\t%s\t%s\t%d\t%.3f\t%.0f\t%.3f\t%s\n",
			f.ID, f.Name, f.Category, m.BaselineYear, m.BaselineProduction, m.BaselineEmissions,
			m.DeclineRate, yearSpan(f.PhaseOutYearOptions))
	}
	return tw.Flush()
}

func yearSpan(years []int) string {
	if len(years) == 0 {
		return "-"
	}
	return fmt.Sprintf("%d-%d", years[0], years[len(years)-1])
}

func cmdStats(args []string, stdout io.Writer) error {
	fs := flag.NewFlagSet("stats", flag.ContinueOnError)
	data := fs.String("data", "", "dataset JSON file (default: embedded)")
	if err := fs.Parse(args); err != nil {
		return err
	}

	ds, err := loadData(*data)
	if err != nil {
		return err
	}
	st := ds.Statistics()

	fmt.Fprintf(stdout, "fields:     %d (%d active)\n", st.TotalFields, st.ActiveFields)
	fmt.Fprintf(stdout, "years:      %d-%d\n", st.YearRange.Start, st.YearRange.End)
	fmt.Fprintf(stdout, "oil:        %s\n", scoring.FormatNumber(st.TotalOilProduction, "Mbbl"))
	fmt.Fprintf(stdout, "gas:        %s\n", scoring.FormatNumber(st.TotalGasProduction, "GSm3"))
	fmt.Fprintf(stdout, "emissions:  %s\n", scoring.FormatNumber(st.TotalEmissions, "t CO2"))
	fmt.Fprintf(stdout, "baseline:   %s per year (2020-2022)\n", scoring.FormatNumber(ds.BaselineEmissions(), "t CO2"))
	return nil
}

func cmdProject(args []string, stdout io.Writer) error {
	fs := flag.NewFlagSet("project", flag.ContinueOnError)
	data := fs.String("data", "", "dataset JSON file (default: embedded)")
	cfgPath := fs.String("config", "", "YAML config file")
	fieldID := fs.String("field", "", "field id")
	from := fs.Int("from", 2025, "first projected year")
	to := fs.Int("to", 2050, "last projected year")
	phaseOut := fs.Int("phase-out-year", 0, "year the field stops producing")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *fieldID == "" {
		return errors.New("field is required")
	}
	if *to < *from {
		return fmt.Errorf("to %d is before from %d", *to, *from)
	}

	cfg, err := loadConfig(*cfgPath, "")
	if err != nil {
		return err
	}
	ds, err := loadData(*data)
	if err != nil {
		return err
	}
	f, err := ds.Field(*fieldID)
	if err != nil {
		return err
	}

	m := production.NewModel(f.History, cfg.Simulation.ReferenceYear)
	m.PhaseOutYear = *phaseOut
	p := cfg.Projector()

	fmt.Fprintf(stdout, "%s: baseline %d, %.3f oil, rate %.3f, %s\n",
		f.Name, m.BaselineYear, m.BaselineProduction, m.DeclineRate, m.Category)

	tw := tabwriter.NewWriter(stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "YEAR\tOIL\tCO2")
	for year := *from; year <= *to; year++ {
		proj := p.Project(m, year, nil, f.ID)
		fmt.Fprintf(tw, "%d\t%.4f\t%.1f\n", year, proj.OilVolume, proj.CO2)
	}
	return tw.Flush()
}

func cmdSimulate(args []string, stdout, stderr io.Writer) error {
	fs := flag.NewFlagSet("simulate", flag.ContinueOnError)
	data := fs.String("data", "", "dataset JSON file (default: embedded)")
	cfgPath := fs.String("config", "", "YAML config file")
	difficulty := fs.String("difficulty", "", "balance preset: casual, hard")
	years := fs.Int("years", 0, "years to simulate (default: until the configured end year)")
	phaseOut := fs.String("phase-out", "", "comma-separated field ids to retire at the start")
	schedule := fs.String("schedule", "", "comma-separated id=year phase-out schedules")
	invest := fs.String("invest", "", "comma-separated investment types to start")
	seed := fs.Int64("seed", 0, "price seed (default: time based unless seeded_rng is on)")
	metricsOut := fs.String("metrics-out", "", "write Prometheus textfile metrics here")
	verbose := fs.Bool("v", false, "log every tick to stderr")
	if err := fs.Parse(args); err != nil {
		return err
	}

	cfg, err := loadConfig(*cfgPath, *difficulty)
	if err != nil {
		return err
	}
	ds, err := loadData(*data)
	if err != nil {
		return err
	}

	if *seed == 0 {
		*seed = time.Now().UnixNano()
	}

	level := slog.LevelWarn
	if *verbose {
		level = slog.LevelInfo
	}
	clock := game.RealClock{}

	e := game.NewEngine(ds, game.NewMemoryStateRepo())
	e.Projector = cfg.Projector()
	e.Prices = cfg.PriceModel(cfg.Rand(*seed))
	e.Tax = cfg.Tax()
	e.ExportFactor = cfg.Economy.ExportFactor
	e.ReferenceYear = cfg.Simulation.ReferenceYear
	e.Scoring = cfg.Scoring
	e.Clock = clock
	e.Events = telemetry.NewMemoryRepository().WithClock(clock.Now)
	e.Metrics = telemetry.NewCollector()
	e.Logger = slog.New(slog.NewJSONHandler(stderr, &slog.HandlerOptions{Level: level}))

	ctx := context.Background()
	s, err := e.Start(ctx, cfg.Simulation.StartYear)
	if err != nil {
		return err
	}

	cmds, err := parseCommands(*phaseOut, *schedule, *invest)
	if err != nil {
		return err
	}
	for _, cmd := range cmds {
		if s, err = e.Dispatch(ctx, s.ID, cmd); err != nil {
			return err
		}
	}

	n := *years
	if n <= 0 {
		n = cfg.Simulation.EndYear - cfg.Simulation.StartYear
	}

	tw := tabwriter.NewWriter(stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "YEAR\tPRICE\tACTIVE\tEMISSIONS\tREVENUE\tSCORE")
	for i := 0; i < n; i++ {
		res, err := e.YearTick(ctx, s.ID)
		if err != nil {
			return err
		}
		fmt.Fprintf(tw, "%d\t%.2f\t%d\t%s\t%s\t%.0f\n", res.Year, res.OilPrice, res.ActiveFields,
			scoring.FormatNumber(res.Emissions, "t"), scoring.FormatNumber(res.Revenue, "NOK"), res.Score)
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	if s, err = e.State.Get(ctx, s.ID); err != nil {
		return err
	}
	printSummary(stdout, e, s, cfg.Simulation.StartYear)

	if *metricsOut != "" {
		if err := e.Metrics.WriteTextfile(*metricsOut); err != nil {
			return err
		}
	}
	return nil
}

func parseCommands(phaseOut, schedule, invest string) ([]game.Command, error) {
	var cmds []game.Command
	for _, id := range splitList(phaseOut) {
		cmds = append(cmds, game.PhaseOutField{FieldID: id})
	}
	for _, item := range splitList(schedule) {
		id, y, ok := strings.Cut(item, "=")
		if !ok {
			return nil, fmt.Errorf("schedule %q: want id=year", item)
		}
		year, err := strconv.Atoi(y)
		if err != nil {
			return nil, fmt.Errorf("schedule %q: %w", item, err)
		}
		cmds = append(cmds, game.SchedulePhaseOut{FieldID: id, Year: year})
	}
	for _, t := range splitList(invest) {
		cmds = append(cmds, game.StartInvestment{Type: economy.InvestmentType(t)})
	}
	return cmds, nil
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func printSummary(w io.Writer, e game.Engine, s game.State, startYear int) {
	stars := scoring.MetricStars(s.Metrics, e.Baselines)
	savings := scoring.SavingsStars(s.Cumulative)
	paris := e.ParisProgress(s)
	outlook := e.Outlook(s, startYear)

	fmt.Fprintln(w)
	fmt.Fprintf(w, "year %d, %d fields retired\n", s.CurrentYear, len(s.Retired))
	fmt.Fprintf(w, "score       %.0f (speed x%.2f)\n", s.Score.TotalScore, s.Score.Breakdown.SpeedMultiplier)
	fmt.Fprintf(w, "co2 saved   %s %s\n", scoring.FormatNumber(s.Cumulative.TotalCO2Saved, "t"), scoring.StarDisplay(savings.CO2))
	fmt.Fprintf(w, "energy      %s %s\n", scoring.FormatNumber(s.Cumulative.TotalEnergySaved, "TWh"), scoring.StarDisplay(savings.Energy))
	fmt.Fprintf(w, "revenue     -%s %s\n", scoring.FormatNumber(s.Cumulative.TotalEconomicImpact, "NOK"), scoring.StarDisplay(savings.Economic))
	fmt.Fprintf(w, "emissions   %s\n", scoring.StarDisplay(stars.Emissions))
	fmt.Fprintf(w, "happiness   %.1f %s\n", s.Indicators.Happiness, scoring.StarDisplay(stars.Happiness))
	fmt.Fprintf(w, "wealth fund %s\n", scoring.FormatNumber(s.WealthFund.CurrentValue, "NOK"))
	fmt.Fprintf(w, "paris %d    %.0f%% of baseline (target %.0f%%)\n",
		paris.Target.Year, paris.Ratio*100, paris.Target.EmissionsTarget*100)
	fmt.Fprintf(w, "outlook     since %d: oil -%s, co2 -%s, revenue -%s\n", startYear,
		scoring.FormatNumber(outlook.ProductionLoss, "Mbbl"),
		scoring.FormatNumber(outlook.EmissionReduction, "t"),
		scoring.FormatNumber(outlook.RevenueImpactUSD, "USD"))

	dirty := game.DirtiestFields(s, 5)
	if len(dirty) == 0 {
		return
	}
	fmt.Fprintln(w, "\ndirtiest producing fields:")
	for i, f := range dirty {
		fmt.Fprintf(w, "  %d. %s (%.1f kg/bbl)\n", i+1, f.Name, f.Intensity*1000)
	}
}

func cmdSchema(args []string, stdout io.Writer) error {
	fs := flag.NewFlagSet("schema", flag.ContinueOnError)
	out := fs.String("out", "", "write to file instead of stdout")
	if err := fs.Parse(args); err != nil {
		return err
	}

	b, err := dataset.SchemaJSON()
	if err != nil {
		return err
	}
	if *out == "" {
		_, err = stdout.Write(b)
		return err
	}
	return os.WriteFile(*out, b, 0o644)
}
