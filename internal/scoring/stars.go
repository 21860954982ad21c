package scoring

import (
	"math"

	"github.com/torkilv/phase-out-village/internal/indicators"
)

type MetricRatings struct {
	Emissions int `json:"emissions"`
	Energy    int `json:"energy"`
	Happiness int `json:"happiness"`
	Equality  int `json:"equality"`
	Economy   int `json:"economy"`
}

// MetricStars rates a year's dashboard. Emissions are rated per capita on a
// base-4 log scale against the global average: at or below it is five stars.
func MetricStars(m indicators.Metrics, b indicators.Baselines) MetricRatings {
	perCapita := b.PerCapitaEmissions(m.Emissions)
	emission := 5 - math.Log(perCapita/b.Environment.GlobalAveragePerCapita)/math.Log(4)

	return MetricRatings{
		Emissions: starClamp(emission),
		Energy:    starClamp(m.Energy / 20),
		Happiness: starClamp(m.Happiness / 20),
		Equality:  starClamp(m.Equality / 20),
		Economy:   starClamp(math.Log10(math.Max(1, m.Revenue/1e9))),
	}
}

type SavingsRatings struct {
	CO2      int `json:"co2"`
	Energy   int `json:"energy"`
	Economic int `json:"economic"`
}

// SavingsStars rates cumulative progress: one star per 20 Mt CO2, 100 TWh or
// 100 billion NOK, capped at five.
func SavingsStars(c Cumulative) SavingsRatings {
	return SavingsRatings{
		CO2:      min(5, int(math.Floor(c.TotalCO2Saved/20_000_000))+1),
		Energy:   min(5, int(math.Floor(c.TotalEnergySaved/100))+1),
		Economic: min(5, int(math.Floor(math.Abs(c.TotalEconomicImpact)/100e9))+1),
	}
}

// starClamp rounds half up and bounds to 1-5.
func starClamp(v float64) int {
	r := math.Floor(v + 0.5)
	if math.IsNaN(r) || r < 1 {
		return 1
	}
	if r > 5 {
		return 5
	}
	return int(r)
}
