package game

import (
	"cmp"
	"context"
	"fmt"
	"io"
	"log/slog"
	"maps"
	"math"
	"slices"
	"time"

	"github.com/google/uuid"

	"github.com/torkilv/phase-out-village/internal/dataset"
	"github.com/torkilv/phase-out-village/internal/economy"
	"github.com/torkilv/phase-out-village/internal/indicators"
	"github.com/torkilv/phase-out-village/internal/production"
	"github.com/torkilv/phase-out-village/internal/scoring"
	"github.com/torkilv/phase-out-village/internal/telemetry"
)

const (
	baseIndex = 100
	maxIndex  = 200

	// TWhPerMillionBarrels converts forgone oil into energy for scoring.
	TWhPerMillionBarrels = 1.7
)

type Engine struct {
	Data          *dataset.Dataset
	State         StateRepository
	Projector     production.Projector
	Prices        economy.PriceModel
	Tax           economy.Tax
	ExportFactor  float64
	ReferenceYear int
	Baselines     indicators.Baselines
	Scoring       scoring.Config
	Events        telemetry.Repository
	Metrics       *telemetry.Collector
	Clock         Clock
	Logger        *slog.Logger
}

// NewEngine wires an engine with default economics. Callers override
// fields before use.
func NewEngine(ds *dataset.Dataset, repo StateRepository) Engine {
	return Engine{
		Data:          ds,
		State:         repo,
		Projector:     production.NewProjector(),
		Prices:        economy.DefaultPriceModel(nil),
		Tax:           economy.DefaultTax(),
		ExportFactor:  economy.DefaultExportFactor,
		ReferenceYear: production.DefaultReferenceYear,
		Baselines:     indicators.DefaultBaselines(),
		Scoring:       scoring.DefaultConfig(),
		Clock:         RealClock{},
	}
}

type YearTickResult struct {
	SessionID    string   `json:"session_id"`
	Year         int      `json:"year"`
	OilPrice     float64  `json:"oil_price"`
	Emissions    float64  `json:"emissions"`
	Revenue      float64  `json:"revenue"`
	ActiveFields int      `json:"active_fields"`
	NewlyRetired []string `json:"newly_retired"`
	CO2Saved     float64  `json:"co2_saved"`
	Score        float64  `json:"score"`
}

// Start creates and stores a new session beginning at startYear.
func (e Engine) Start(ctx context.Context, startYear int) (State, error) {
	s := NewState(uuid.NewString(), e.Data, startYear, e.referenceYear(), e.Prices.Price(startYear))
	s, _ = e.evaluate(s)
	s.Score = scoring.Total(s.Cumulative, e.Scoring)
	s.LastTickAt = e.now()

	if err := e.State.Update(ctx, s); err != nil {
		return State{}, fmt.Errorf("store session: %w", err)
	}

	e.record(telemetry.EventSessionStarted, telemetry.EventMetadata{"session_id": s.ID, "year": startYear})
	e.logger().Info("session_started", "session_id", s.ID, "year", startYear, "fields", len(s.Fields))
	return s, nil
}

// YearTick advances a session one year: the price is redrawn, due
// schedules retire their fields, every field is projected from its recorded
// history and savings are measured against business as usual.
func (e Engine) YearTick(ctx context.Context, sessionID string) (YearTickResult, error) {
	s, err := e.State.Get(ctx, sessionID)
	if err != nil {
		return YearTickResult{}, err
	}

	prev := s.Metrics
	next, err := Reduce(s, AdvanceYear{})
	if err != nil {
		return YearTickResult{}, err
	}
	next.Previous = &prev
	next.OilPrice = e.Prices.Price(next.CurrentYear)

	retired := retireDue(&next)

	next, actual := e.evaluate(next)
	bau := e.businessAsUsual(next)

	co2Saved := bau.emissions - actual.emissions
	next.Cumulative.TotalCO2Saved += co2Saved
	next.Cumulative.TotalEnergySaved += (bau.oil - actual.oil) * TWhPerMillionBarrels
	next.Cumulative.TotalEconomicImpact += bau.revenue - actual.revenue
	next.Cumulative.YearsActive++
	next.Score = scoring.Total(next.Cumulative, e.Scoring)
	next.LastTickAt = e.now()

	if err := e.State.Update(ctx, next); err != nil {
		return YearTickResult{}, fmt.Errorf("store session: %w", err)
	}

	res := YearTickResult{
		SessionID:    next.ID,
		Year:         next.CurrentYear,
		OilPrice:     next.OilPrice,
		Emissions:    next.Metrics.Emissions,
		Revenue:      next.Metrics.Revenue,
		ActiveFields: actual.active,
		NewlyRetired: retired,
		CO2Saved:     co2Saved,
		Score:        next.Score.TotalScore,
	}

	for _, id := range retired {
		e.record(telemetry.EventFieldPhasedOut, telemetry.EventMetadata{"field_id": id, "year": next.CurrentYear, "scheduled": true})
	}
	e.record(telemetry.EventYearTick, telemetry.EventMetadata{
		"year":      res.Year,
		"oil_price": res.OilPrice,
		"emissions": res.Emissions,
		"revenue":   res.Revenue,
		"score":     res.Score,
	})
	if e.Metrics != nil {
		e.Metrics.PhasedOut(len(retired))
		e.Metrics.Observe(telemetry.Snapshot{
			Year:          res.Year,
			Emissions:     res.Emissions,
			Revenue:       res.Revenue,
			OilPrice:      res.OilPrice,
			Score:         res.Score,
			ActiveFields:  res.ActiveFields,
			RetiredFields: len(next.Retired),
		})
	}

	e.logger().Info("year_tick",
		"session_id", res.SessionID,
		"year", res.Year,
		"oil_price", res.OilPrice,
		"emissions", res.Emissions,
		"active_fields", res.ActiveFields,
		"newly_retired", len(retired),
		"score", res.Score,
	)
	return res, nil
}

// Dispatch applies a command and recomputes the current year's metrics.
// AdvanceYear runs a full YearTick.
func (e Engine) Dispatch(ctx context.Context, sessionID string, cmd Command) (State, error) {
	if _, ok := cmd.(AdvanceYear); ok {
		if _, err := e.YearTick(ctx, sessionID); err != nil {
			return State{}, err
		}
		return e.State.Get(ctx, sessionID)
	}

	s, err := e.State.Get(ctx, sessionID)
	if err != nil {
		return State{}, err
	}

	next, err := Reduce(s, cmd)
	if err != nil {
		e.logger().Warn("command_rejected", "session_id", sessionID, "command", cmd.Name(), "err", err)
		return State{}, err
	}
	if c, ok := cmd.(SetYear); ok {
		next.OilPrice = e.Prices.Price(c.Year)
	}
	next, _ = e.evaluate(next)

	if err := e.State.Update(ctx, next); err != nil {
		return State{}, fmt.Errorf("store session: %w", err)
	}

	e.recordCommand(next, cmd)
	e.logger().Info("command_applied", "session_id", sessionID, "command", cmd.Name(), "year", next.CurrentYear)
	return next, nil
}

func (e Engine) recordCommand(s State, cmd Command) {
	switch c := cmd.(type) {
	case PhaseOutField:
		e.record(telemetry.EventFieldPhasedOut, telemetry.EventMetadata{"field_id": c.FieldID, "year": s.CurrentYear})
		if e.Metrics != nil {
			e.Metrics.PhasedOut(1)
		}
	case SchedulePhaseOut:
		e.record(telemetry.EventPhaseOutScheduled, telemetry.EventMetadata{"field_id": c.FieldID, "year": c.Year})
	case StartInvestment:
		e.record(telemetry.EventInvestmentStarted, telemetry.EventMetadata{"investment_type": string(c.Type), "year": s.CurrentYear})
		if e.Metrics != nil {
			e.Metrics.InvestmentStarted(string(c.Type))
		}
	case SetOilPrice:
		e.record(telemetry.EventOilPriceSet, telemetry.EventMetadata{"price": c.Price, "year": s.CurrentYear})
	}
}

// retireDue moves scheduled fields whose year has arrived into the retired
// set and returns their IDs in order.
func retireDue(s *State) []string {
	var due []string
	for _, id := range slices.Sorted(maps.Keys(s.Scheduled)) {
		if s.CurrentYear >= s.Scheduled[id] {
			due = append(due, id)
		}
	}
	for _, id := range due {
		s.Retired = s.Retired.With(id)
		delete(s.Scheduled, id)
	}
	return due
}

type yearTotals struct {
	oil       float64
	emissions float64
	revenue   float64 // state take plus dividends
	active    int
}

// observe returns a field's output for year: the recorded value when there
// is one, otherwise the projection.
func (e Engine) observe(v FieldView, year int, retired production.RetiredSet, phaseOutYear int) production.Observation {
	if retired.Has(v.ID) || (phaseOutYear > 0 && year >= phaseOutYear) {
		return production.Observation{}
	}
	if obs, ok := v.History[year]; ok {
		return obs
	}
	m := v.Model
	m.PhaseOutYear = phaseOutYear
	return e.Projector.Project(m, year, retired, v.ID).Observation()
}

// evaluate recomputes everything derived from the current year and merges
// projected years into the field views.
func (e Engine) evaluate(s State) (State, yearTotals) {
	year := s.CurrentYear
	ids := s.FieldIDs()

	s.Fields = maps.Clone(s.Fields)
	fields := make([]economy.FieldYear, 0, len(ids))
	records := make(map[string]production.Record, len(ids))
	var totals yearTotals

	for _, id := range ids {
		v := s.Fields[id]
		obs := e.observe(v, year, s.Retired, s.Scheduled[id])

		if _, recorded := v.History[year]; !recorded {
			v.Production = production.Extend(v.Production, year, production.Projection{OilVolume: obs.Oil(), CO2: obs.Emissions()})
			s.Fields[id] = v
		}

		fields = append(fields, economy.FieldYear{FieldID: id, Obs: obs})
		records[id] = production.Record{year: obs}
		totals.oil += obs.Oil()
		if obs.Oil() > 0 {
			totals.active++
		}
	}

	totals.emissions = economy.TotalEmissions(fields, s.Retired, e.exportFactor())
	revenue := economy.PetroleumRevenue(fields, s.OilPrice, e.Tax)

	s.Dividends = make(map[string]float64, len(fields))
	dividends := 0.0
	for _, f := range fields {
		if s.Retired.Has(f.FieldID) {
			continue
		}
		d := economy.FieldDividend(f.Obs, s.OilPrice, e.Tax)
		s.Dividends[f.FieldID] = d
		dividends += d
	}
	totals.revenue = revenue + dividends

	impact := economy.InvestmentImpact(s.Investments, year)
	s.Metrics = indicators.Metrics{
		Year:      year,
		Emissions: math.Max(0, totals.emissions+impact.Emissions),
		Energy:    clampIndex(baseIndex + impact.Energy),
		Happiness: clampIndex(baseIndex + impact.Happiness),
		Equality:  clampIndex(baseIndex + impact.Equality),
		Revenue:   revenue + impact.Revenue + dividends,
	}

	var prevIndicators *indicators.Metrics
	if s.Indicators.Year == year-1 {
		p := s.Indicators
		prevIndicators = &p
	}
	s.Indicators = e.Baselines.Compute(indicators.Input{
		Year:             year,
		Fields:           records,
		Retired:          s.Retired,
		PetroleumRevenue: revenue,
		TotalEmissions:   totals.emissions,
		Previous:         prevIndicators,
	})
	s.WealthFund = e.Baselines.FundStatus(revenue, year, e.referenceYear())

	return s, totals
}

// businessAsUsual totals the current year as if nothing had been retired or
// scheduled.
func (e Engine) businessAsUsual(s State) yearTotals {
	var totals yearTotals
	fields := make([]economy.FieldYear, 0, len(s.Fields))
	for _, id := range s.FieldIDs() {
		obs := e.observe(s.Fields[id], s.CurrentYear, nil, 0)
		fields = append(fields, economy.FieldYear{FieldID: id, Obs: obs})
		totals.oil += obs.Oil()
		if obs.Oil() > 0 {
			totals.active++
		}
		totals.revenue += economy.FieldDividend(obs, s.OilPrice, e.Tax)
	}
	totals.emissions = economy.TotalEmissions(fields, nil, e.exportFactor())
	totals.revenue += economy.PetroleumRevenue(fields, s.OilPrice, e.Tax)
	return totals
}

// Outlook estimates the fall in output and emissions from fromYear to the
// session's current year under its retirements, projected from recorded
// history alone.
func (e Engine) Outlook(s State, fromYear int) production.Impact {
	return e.Projector.DeclineImpact(e.Data.Histories(), fromYear, s.CurrentYear, s.Retired)
}

type FieldIntensity struct {
	ID        string  `json:"id"`
	Name      string  `json:"name"`
	Oil       float64 `json:"oil"`
	Emissions float64 `json:"emissions"`
	Intensity float64 `json:"intensity"` // tonnes CO2 per barrel
}

// DirtiestFields ranks producing fields by emission intensity in the
// session's current year. n <= 0 returns them all.
func DirtiestFields(s State, n int) []FieldIntensity {
	var out []FieldIntensity
	for _, id := range s.FieldIDs() {
		if s.Retired.Has(id) {
			continue
		}
		v := s.Fields[id]
		obs := v.Production[s.CurrentYear]
		intensity := economy.EmissionIntensity(obs)
		if intensity == 0 {
			continue
		}
		out = append(out, FieldIntensity{
			ID:        id,
			Name:      v.Name,
			Oil:       obs.Oil(),
			Emissions: obs.Emissions(),
			Intensity: intensity,
		})
	}

	slices.SortStableFunc(out, func(a, b FieldIntensity) int {
		return cmp.Compare(b.Intensity, a.Intensity)
	})
	if n > 0 && len(out) > n {
		out = out[:n]
	}
	return out
}

type ParisStatus struct {
	Year              int                 `json:"year"`
	BaselineEmissions float64             `json:"baseline_emissions"`
	CurrentEmissions  float64             `json:"current_emissions"`
	Ratio             float64             `json:"ratio"`
	Target            dataset.ParisTarget `json:"target"`
	OnTrack           bool                `json:"on_track"`
}

// ParisProgress compares the current year's direct emissions with the
// 2020-2022 baseline and the next target on the path.
func (e Engine) ParisProgress(s State) ParisStatus {
	fields := make([]economy.FieldYear, 0, len(s.Fields))
	for id, v := range s.Fields {
		fields = append(fields, economy.FieldYear{FieldID: id, Obs: v.Production[s.CurrentYear]})
	}

	st := ParisStatus{
		Year:              s.CurrentYear,
		BaselineEmissions: e.Data.BaselineEmissions(),
		CurrentEmissions:  economy.DirectEmissions(fields, s.Retired),
	}
	if st.BaselineEmissions > 0 {
		st.Ratio = st.CurrentEmissions / st.BaselineEmissions
	}

	targets := e.Data.ParisTargets()
	if len(targets) == 0 {
		return st
	}
	st.Target = targets[len(targets)-1]
	for _, t := range targets {
		if t.Year >= s.CurrentYear {
			st.Target = t
			break
		}
	}
	st.OnTrack = st.Ratio <= st.Target.EmissionsTarget
	return st
}

func (e Engine) record(t telemetry.EventType, md telemetry.EventMetadata) {
	if e.Events == nil {
		return
	}
	if err := e.Events.RecordEvent(t, md); err != nil {
		e.logger().Warn("telemetry_record_failed", "event", string(t), "err", err)
	}
}

func (e Engine) exportFactor() float64 {
	if e.ExportFactor == 0 {
		return economy.DefaultExportFactor
	}
	return e.ExportFactor
}

func (e Engine) referenceYear() int {
	if e.ReferenceYear == 0 {
		return production.DefaultReferenceYear
	}
	return e.ReferenceYear
}

func (e Engine) now() time.Time {
	if e.Clock == nil {
		return time.Now()
	}
	return e.Clock.Now()
}

func (e Engine) logger() *slog.Logger {
	if e.Logger == nil {
		return slog.New(slog.NewJSONHandler(io.Discard, nil))
	}
	return e.Logger
}

func clampIndex(v float64) float64 {
	return math.Max(0, math.Min(maxIndex, v))
}
