package production

// ReferenceOilPriceUSD is the flat price used for rough revenue impact estimates.
const ReferenceOilPriceUSD = 80

const barrelsPerUnit = 1_000_000

type Impact struct {
	ProductionLoss    float64 `json:"production_loss"`
	EmissionReduction float64 `json:"emission_reduction"`
	RevenueImpactUSD  float64 `json:"revenue_impact_usd"`
}

// DeclineImpact compares unretired output in fromYear with output in toYear
// under the given retirements, summed over all histories (keyed by field ID).
func (p Projector) DeclineImpact(histories map[string]Record, fromYear, toYear int, retired RetiredSet) Impact {
	var out Impact
	for id, r := range histories {
		m := NewModel(r, fromYear)
		from := p.Project(m, fromYear, nil, id)
		to := p.Project(m, toYear, retired, id)

		out.ProductionLoss += from.OilVolume - to.OilVolume
		out.EmissionReduction += from.CO2 - to.CO2
	}
	out.RevenueImpactUSD = out.ProductionLoss * barrelsPerUnit * ReferenceOilPriceUSD
	return out
}
