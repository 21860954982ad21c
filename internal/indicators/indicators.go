// Package indicators derives national wellbeing scores from a year's
// production, revenue and emissions.
package indicators

import (
	"math"

	"github.com/torkilv/phase-out-village/internal/production"
)

// Metrics is the per-year national dashboard.
type Metrics struct {
	Year      int     `json:"year"`
	Emissions float64 `json:"emissions"` // tonnes CO2, direct plus exported
	Energy    float64 `json:"energy"`
	Happiness float64 `json:"happiness"`
	Equality  float64 `json:"equality"`
	Revenue   float64 `json:"revenue"` // NOK
}

type WealthFundBaseline struct {
	CurrentValue              float64 `json:"current_value"`
	BaselineGrowthRate        float64 `json:"baseline_growth_rate"`
	PetroleumContributionRate float64 `json:"petroleum_contribution_rate"`
}

type HappinessBaseline struct {
	BaselineScore        float64 `json:"baseline_score"`
	MaxScore             float64 `json:"max_score"`
	EconomicSecurity     float64 `json:"economic_security"`
	EnvironmentalConcern float64 `json:"environmental_concern"`
	EnergySecurity       float64 `json:"energy_security"`
}

type EnergyBaseline struct {
	BaselineScore  float64 `json:"baseline_score"`
	RenewableShare float64 `json:"renewable_share"`
	OilDependency  float64 `json:"oil_dependency"`
}

type EqualityBaseline struct {
	BaselineGini       float64 `json:"baseline_gini"`
	PetroleumJobsShare float64 `json:"petroleum_jobs_share"`
}

type EnvironmentBaseline struct {
	DomesticEmissions      float64 `json:"domestic_emissions"`
	ExportedEmissions      float64 `json:"exported_emissions"`
	Population             float64 `json:"population"`
	GlobalAveragePerCapita float64 `json:"global_average_per_capita"`
	CarbonNeutralTarget    int     `json:"carbon_neutral_target"`
}

// Baselines are the status-quo figures every indicator is measured against.
type Baselines struct {
	WealthFund  WealthFundBaseline  `json:"wealth_fund"`
	Happiness   HappinessBaseline   `json:"happiness"`
	Energy      EnergyBaseline      `json:"energy"`
	Equality    EqualityBaseline    `json:"equality"`
	Environment EnvironmentBaseline `json:"environment"`
}

func DefaultBaselines() Baselines {
	return Baselines{
		WealthFund: WealthFundBaseline{
			CurrentValue:              15_000_000_000_000,
			BaselineGrowthRate:        0.03,
			PetroleumContributionRate: 0.65,
		},
		Happiness: HappinessBaseline{
			BaselineScore:        7.3,
			MaxScore:             10,
			EconomicSecurity:     0.3,
			EnvironmentalConcern: 0.4,
			EnergySecurity:       0.3,
		},
		Energy: EnergyBaseline{
			BaselineScore:  85,
			RenewableShare: 0.98,
			OilDependency:  0.15,
		},
		Equality: EqualityBaseline{
			BaselineGini:       0.27,
			PetroleumJobsShare: 0.05,
		},
		Environment: EnvironmentBaseline{
			DomesticEmissions:      50_000_000,
			ExportedEmissions:      500_000_000,
			Population:             5_400_000,
			GlobalAveragePerCapita: 4.8,
			CarbonNeutralTarget:    2050,
		},
	}
}

// PerCapitaEmissions divides total emissions across the population.
func (b Baselines) PerCapitaEmissions(emissions float64) float64 {
	if b.Environment.Population <= 0 {
		return 0
	}
	return emissions / b.Environment.Population
}

// HappinessScore scores on a 0-10 scale from year-over-year changes in revenue
// (NOK), emissions (tonnes) and energy security (points).
func (b Baselines) HappinessScore(revenueChange, emissionChange, energyChange float64) float64 {
	var economic float64
	if revenueChange > 0 {
		economic = math.Log1p(revenueChange/1e11) * 0.1
	} else {
		economic = -math.Sqrt(math.Abs(revenueChange)/1e11) * 0.2
	}

	var environmental float64
	if emissionChange < 0 {
		environmental = math.Sqrt(-emissionChange/1e8) * 0.4
	} else {
		environmental = -math.Sqrt(emissionChange/1e8) * 0.5
	}

	energy := energyChange * 0.01

	h := b.Happiness
	total := economic*h.EconomicSecurity + environmental*h.EnvironmentalConcern + energy*h.EnergySecurity
	return clamp(h.BaselineScore+total, 0, h.MaxScore)
}

// WealthFundGrowth is the fund's annual growth rate given this year's
// petroleum revenue.
func (b Baselines) WealthFundGrowth(petroleumRevenue float64) float64 {
	wf := b.WealthFund
	return wf.BaselineGrowthRate + petroleumRevenue*wf.PetroleumContributionRate/wf.CurrentValue
}

// EnergySecurity scores 0-100. Remaining production up to 100 units adds up
// to 15 points on top of the baseline.
func (b Baselines) EnergySecurity(fields map[string]production.Record, year int, retired production.RetiredSet) float64 {
	total := 0.0
	for id, rec := range fields {
		if retired.Has(id) {
			continue
		}
		total += rec[year].Oil()
	}
	factor := math.Min(1, total/100)
	return clamp(b.Energy.BaselineScore+factor*15, 0, 100)
}

// EqualityScore scores 0-100 from an adjusted Gini coefficient. unemployment is
// the share of the workforce displaced by phase-out.
func (b Baselines) EqualityScore(petroleumRevenue, unemployment float64) float64 {
	revenueEffect := 0.0
	if petroleumRevenue > 0 {
		revenueEffect = math.Log1p(petroleumRevenue/1e12) * 0.02
	}
	gini := b.Equality.BaselineGini + revenueEffect + unemployment*0.1
	return clamp((1-gini)*100, 0, 100)
}

// Input is what Compute needs for one year.
type Input struct {
	Year             int
	Fields           map[string]production.Record
	Retired          production.RetiredSet
	PetroleumRevenue float64
	TotalEmissions   float64
	Previous         *Metrics
}

// Compute builds the national metrics for a year. Changes are measured
// against Previous; without it every change is zero.
func (b Baselines) Compute(in Input) Metrics {
	energy := b.EnergySecurity(in.Fields, in.Year, in.Retired)

	var revenueChange, emissionChange, energyChange float64
	if in.Previous != nil {
		revenueChange = in.PetroleumRevenue - in.Previous.Revenue
		emissionChange = in.TotalEmissions - in.Previous.Emissions
		energyChange = energy - in.Previous.Energy
	}

	return Metrics{
		Year:      in.Year,
		Emissions: in.TotalEmissions,
		Energy:    energy,
		Happiness: b.HappinessScore(revenueChange, emissionChange, energyChange) * 10,
		Equality:  b.EqualityScore(in.PetroleumRevenue, 0),
		Revenue:   in.PetroleumRevenue,
	}
}

type WealthFundStatus struct {
	CurrentValue          float64 `json:"current_value"`
	GrowthRate            float64 `json:"growth_rate"`
	PetroleumContribution float64 `json:"petroleum_contribution"`
}

// FundStatus projects the fund value to year at the growth rate implied by
// petroleumRevenue, compounding from baseYear.
func (b Baselines) FundStatus(petroleumRevenue float64, year, baseYear int) WealthFundStatus {
	growth := b.WealthFundGrowth(petroleumRevenue)
	return WealthFundStatus{
		CurrentValue:          b.WealthFund.CurrentValue * math.Pow(1+growth, float64(year-baseYear)),
		GrowthRate:            growth,
		PetroleumContribution: petroleumRevenue * b.WealthFund.PetroleumContributionRate,
	}
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}
