package economy

import "github.com/torkilv/phase-out-village/internal/production"

const (
	// BarrelsPerUnit converts dataset oil volumes (million barrels) to barrels.
	BarrelsPerUnit = 1_000_000

	// DefaultExportFactor is tonnes CO2 per barrel burned downstream.
	DefaultExportFactor = 3.2
)

type Tax struct {
	PetroleumRate float64 `json:"petroleum_rate"`
	CorporateRate float64 `json:"corporate_rate"`
	SpecialRate   float64 `json:"special_rate"`
}

func DefaultTax() Tax {
	return Tax{PetroleumRate: 0.78, CorporateRate: 0.22, SpecialRate: 0.56}
}

// FieldYear is one field's observation for the year being evaluated.
type FieldYear struct {
	FieldID string
	Obs     production.Observation
}

func grossRevenue(obs production.Observation, price float64) float64 {
	return obs.Oil() * BarrelsPerUnit * price
}

// FieldDividend is the operator's share after petroleum tax.
func FieldDividend(obs production.Observation, price float64, tax Tax) float64 {
	if obs.Oil() == 0 {
		return 0
	}
	gross := grossRevenue(obs, price)
	return gross - gross*tax.PetroleumRate
}

// PetroleumRevenue is the state's tax take across all fields.
func PetroleumRevenue(fields []FieldYear, price float64, tax Tax) float64 {
	total := 0.0
	for _, f := range fields {
		if f.Obs.Oil() == 0 {
			continue
		}
		total += grossRevenue(f.Obs, price) * tax.PetroleumRate
	}
	return total
}

// TotalEmissions adds direct emissions and downstream emissions of exported
// oil for every field that is not retired and reports both figures.
func TotalEmissions(fields []FieldYear, retired production.RetiredSet, exportFactor float64) float64 {
	total := 0.0
	for _, f := range fields {
		if retired.Has(f.FieldID) {
			continue
		}
		if f.Obs.Emissions() == 0 || f.Obs.Oil() == 0 {
			continue
		}
		total += f.Obs.Emissions() + f.Obs.Oil()*BarrelsPerUnit*exportFactor
	}
	return total
}

// DirectEmissions sums reported production emissions only.
func DirectEmissions(fields []FieldYear, retired production.RetiredSet) float64 {
	total := 0.0
	for _, f := range fields {
		if !retired.Has(f.FieldID) {
			total += f.Obs.Emissions()
		}
	}
	return total
}

// EmissionIntensity is tonnes CO2 per barrel produced.
func EmissionIntensity(obs production.Observation) float64 {
	if obs.Oil() == 0 || obs.Emissions() == 0 {
		return 0
	}
	return obs.Emissions() / (obs.Oil() * BarrelsPerUnit)
}
