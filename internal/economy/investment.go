package economy

import (
	"errors"
	"fmt"
)

var ErrUnknownInvestment = errors.New("unknown investment")

type InvestmentType string

const (
	InvestmentEfficiency InvestmentType = "efficiency"
	InvestmentOil        InvestmentType = "oil"
	InvestmentRenewables InvestmentType = "renewables"
	InvestmentNuclear    InvestmentType = "nuclear"
)

// Effect is a per-year change applied to the national metrics while an
// investment is running. Zero fields have no effect.
type Effect struct {
	Emissions float64 `json:"emissions,omitempty"`
	Energy    float64 `json:"energy,omitempty"`
	Happiness float64 `json:"happiness,omitempty"`
	Equality  float64 `json:"equality,omitempty"`
	Revenue   float64 `json:"revenue,omitempty"`
}

func (e Effect) Add(o Effect) Effect {
	return Effect{
		Emissions: e.Emissions + o.Emissions,
		Energy:    e.Energy + o.Energy,
		Happiness: e.Happiness + o.Happiness,
		Equality:  e.Equality + o.Equality,
		Revenue:   e.Revenue + o.Revenue,
	}
}

type Investment struct {
	Type        InvestmentType `json:"type"`
	Cost        float64        `json:"cost"` // NOK
	Effect      Effect         `json:"effect"`
	Timeline    int            `json:"timeline"` // years the effect lasts
	Description string         `json:"description"`
}

type ActiveInvestment struct {
	Investment Investment `json:"investment"`
	StartYear  int        `json:"start_year"`
}

// Running reports whether the investment applies in year.
func (a ActiveInvestment) Running(year int) bool {
	active := year - a.StartYear
	return active >= 0 && active < a.Investment.Timeline
}

// InvestmentImpact sums the effects of every investment running in year.
func InvestmentImpact(active []ActiveInvestment, year int) Effect {
	var total Effect
	for _, a := range active {
		if a.Running(year) {
			total = total.Add(a.Investment.Effect)
		}
	}
	return total
}

var catalog = []Investment{
	{
		Type:        InvestmentRenewables,
		Cost:        50_000_000_000,
		Effect:      Effect{Energy: 15, Emissions: -20, Happiness: 10, Equality: 5},
		Timeline:    5,
		Description: "Massive offshore wind expansion program",
	},
	{
		Type:        InvestmentEfficiency,
		Cost:        20_000_000_000,
		Effect:      Effect{Emissions: -10, Energy: 5, Revenue: 5_000_000_000},
		Timeline:    3,
		Description: "Energy efficiency improvements across all sectors",
	},
	{
		Type:        InvestmentNuclear,
		Cost:        100_000_000_000,
		Effect:      Effect{Energy: 25, Emissions: -30, Happiness: -5},
		Timeline:    10,
		Description: "Small modular reactor program",
	},
	{
		Type:        InvestmentOil,
		Cost:        30_000_000_000,
		Effect:      Effect{Revenue: 10_000_000_000, Emissions: 5, Energy: -5, Happiness: 5, Equality: -3},
		Timeline:    7,
		Description: "Enhanced oil recovery and new field development",
	},
}

// Catalog lists the investments a player can start.
func Catalog() []Investment {
	return append([]Investment(nil), catalog...)
}

func LookupInvestment(t InvestmentType) (Investment, error) {
	for _, inv := range catalog {
		if inv.Type == t {
			return inv, nil
		}
	}
	return Investment{}, fmt.Errorf("%w: %s", ErrUnknownInvestment, t)
}
