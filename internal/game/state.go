package game

import (
	"context"
	"maps"
	"slices"
	"time"

	"github.com/torkilv/phase-out-village/internal/dataset"
	"github.com/torkilv/phase-out-village/internal/economy"
	"github.com/torkilv/phase-out-village/internal/indicators"
	"github.com/torkilv/phase-out-village/internal/production"
	"github.com/torkilv/phase-out-village/internal/scoring"
)

// FieldView is a field as the game sees it: recorded history plus every
// projected year the session has evaluated. History is shared with the
// dataset and never written; Production is replaced, not mutated.
type FieldView struct {
	ID                  string              `json:"id"`
	Name                string              `json:"name"`
	Category            production.Category `json:"category"`
	Model               production.Model    `json:"model"`
	PhaseOutYearOptions []int               `json:"phase_out_year_options"`
	History             production.Record   `json:"-"`
	Production          production.Record   `json:"production"`
}

// State is one game session.
type State struct {
	ID              string                      `json:"id"`
	CurrentYear     int                         `json:"current_year"`
	OilPrice        float64                     `json:"oil_price"`
	Retired         production.RetiredSet       `json:"retired"`
	Scheduled       map[string]int              `json:"scheduled"`
	Investments     []economy.ActiveInvestment  `json:"investments"`
	Dividends       map[string]float64          `json:"dividends"`
	Metrics         indicators.Metrics          `json:"metrics"`
	Previous        *indicators.Metrics         `json:"previous,omitempty"`
	Indicators      indicators.Metrics          `json:"indicators"`
	WealthFund      indicators.WealthFundStatus `json:"wealth_fund"`
	SelectedFieldID string                      `json:"selected_field_id,omitempty"`
	Fields          map[string]FieldView        `json:"fields"`
	Cumulative      scoring.Cumulative          `json:"cumulative"`
	Score           scoring.Result              `json:"score"`
	LastTickAt      time.Time                   `json:"last_tick_at"`
}

// NewState seeds a session from the dataset. Models are built against
// referenceYear; categories come from the dataset's own classification.
func NewState(id string, ds *dataset.Dataset, startYear, referenceYear int, oilPrice float64) State {
	fields := make(map[string]FieldView, ds.Len())
	for _, f := range ds.Fields() {
		m := production.NewModel(f.History, referenceYear)
		m.Category = f.Category
		fields[f.ID] = FieldView{
			ID:                  f.ID,
			Name:                f.Name,
			Category:            f.Category,
			Model:               m,
			PhaseOutYearOptions: f.PhaseOutYearOptions,
			History:             f.History,
			Production:          f.History,
		}
	}

	return State{
		ID:          id,
		CurrentYear: startYear,
		OilPrice:    oilPrice,
		Retired:     production.NewRetiredSet(),
		Scheduled:   map[string]int{},
		Dividends:   map[string]float64{},
		Fields:      fields,
		Metrics: indicators.Metrics{
			Year:      startYear,
			Energy:    baseIndex,
			Happiness: baseIndex,
			Equality:  baseIndex,
		},
	}
}

// Clone copies every container so the result can be changed freely.
// Field records are shared; they are only ever replaced.
func (s State) Clone() State {
	out := s
	out.Retired = maps.Clone(s.Retired)
	if out.Retired == nil {
		out.Retired = production.NewRetiredSet()
	}
	out.Scheduled = maps.Clone(s.Scheduled)
	if out.Scheduled == nil {
		out.Scheduled = map[string]int{}
	}
	out.Dividends = maps.Clone(s.Dividends)
	out.Investments = slices.Clone(s.Investments)
	out.Fields = maps.Clone(s.Fields)
	if s.Previous != nil {
		prev := *s.Previous
		out.Previous = &prev
	}
	return out
}

// FieldIDs returns the session's field IDs in sorted order.
func (s State) FieldIDs() []string {
	return slices.Sorted(maps.Keys(s.Fields))
}

// StateRepository persists sessions.
type StateRepository interface {
	Get(ctx context.Context, id string) (State, error)
	Update(ctx context.Context, s State) error
	List(ctx context.Context) ([]string, error)
	Delete(ctx context.Context, id string) error
}
