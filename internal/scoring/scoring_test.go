package scoring

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/torkilv/phase-out-village/internal/indicators"
)

func TestCO2Score(t *testing.T) {
	cfg := DefaultConfig()

	assert.Zero(t, CO2Score(0, cfg))
	assert.Zero(t, CO2Score(-10, cfg))
	assert.InDelta(t, 10*(500+10*50/2.0), CO2Score(10, cfg), 1e-9)

	// each extra tonne is worth more than the last
	assert.Greater(t, CO2Score(20, cfg)-CO2Score(10, cfg), CO2Score(10, cfg)-CO2Score(0, cfg))
}

func TestEnergyScore(t *testing.T) {
	cfg := DefaultConfig()

	assert.Zero(t, EnergyScore(0, cfg))
	assert.InDelta(t, 10*(1e6-10*5e4/2), EnergyScore(10, cfg), 1e-6)
	// 50 TWh would average below zero, the floor holds it at 10% of base
	assert.InDelta(t, 50*1e5, EnergyScore(50, cfg), 1e-6)
}

func TestTotal(t *testing.T) {
	cfg := DefaultConfig()

	t.Run("first year doubles nearly everything", func(t *testing.T) {
		c := Cumulative{TotalCO2Saved: 10, TotalEnergySaved: 10, TotalEconomicImpact: 1000}
		r := Total(c, cfg)

		benefit := CO2Score(10, cfg) + EnergyScore(10, cfg)
		assert.Equal(t, 2.0, r.Breakdown.SpeedMultiplier)
		assert.InDelta(t, benefit, r.SpeedBonus, 1e-6)
		assert.InDelta(t, 2*benefit-1000, r.TotalScore, 1e-6)
		assert.Equal(t, 1000.0, r.Breakdown.EconomicCost)
	})

	t.Run("bonus decays to nothing after the window", func(t *testing.T) {
		r := Total(Cumulative{TotalCO2Saved: 10, YearsActive: 13}, cfg)
		assert.InDelta(t, 1.5, r.Breakdown.SpeedMultiplier, 1e-12)

		r = Total(Cumulative{TotalCO2Saved: 10, YearsActive: 40}, cfg)
		assert.Equal(t, 1.0, r.Breakdown.SpeedMultiplier)
		assert.Zero(t, r.SpeedBonus)
		assert.InDelta(t, r.CO2Score, r.TotalScore, 1e-9)
	})
}

func TestStars(t *testing.T) {
	th := DefaultThresholds.EnergyConsumption

	tests := []struct {
		value float64
		want  int
	}{
		{0, 1},
		{10, 1},
		{11, 2},
		{50, 3},
		{99, 4},
		{1000, 5},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Stars(tt.value, th), tt.value)
	}
}

func TestFormatNumber(t *testing.T) {
	assert.Equal(t, "1.5T NOK", FormatNumber(1.5e12, "NOK"))
	assert.Equal(t, "2.0B NOK", FormatNumber(2e9, "NOK"))
	assert.Equal(t, "3.3M t", FormatNumber(3.25e6+1, "t"))
	assert.Equal(t, "1.0K TWh", FormatNumber(1000, "TWh"))
	assert.Equal(t, "12.3 TWh", FormatNumber(12.3, "TWh"))
}

func TestStarDisplay(t *testing.T) {
	assert.Equal(t, "⭐⭐⭐☆☆", StarDisplay(3))
	assert.Equal(t, "☆☆☆☆☆", StarDisplay(-1))
	assert.Equal(t, "⭐⭐⭐⭐⭐", StarDisplay(9))
}

func TestMetricStars(t *testing.T) {
	b := indicators.DefaultBaselines()

	t.Run("at the global average", func(t *testing.T) {
		m := indicators.Metrics{
			Emissions: 4.8 * 5.4e6,
			Energy:    100,
			Happiness: 73,
			Equality:  30,
			Revenue:   1e12,
		}
		r := MetricStars(m, b)
		assert.Equal(t, 5, r.Emissions)
		assert.Equal(t, 5, r.Energy)
		assert.Equal(t, 4, r.Happiness)
		assert.Equal(t, 2, r.Equality)
		assert.Equal(t, 3, r.Economy)
	})

	t.Run("sixteen times the average", func(t *testing.T) {
		r := MetricStars(indicators.Metrics{Emissions: 16 * 4.8 * 5.4e6}, b)
		assert.Equal(t, 3, r.Emissions)
		assert.Equal(t, 1, r.Energy)
		assert.Equal(t, 1, r.Economy)
	})

	t.Run("zero emissions", func(t *testing.T) {
		r := MetricStars(indicators.Metrics{}, b)
		assert.Equal(t, 5, r.Emissions)
	})
}

func TestSavingsStars(t *testing.T) {
	assert.Equal(t, SavingsRatings{CO2: 1, Energy: 1, Economic: 1}, SavingsStars(Cumulative{}))
	assert.Equal(t,
		SavingsRatings{CO2: 3, Energy: 5, Economic: 2},
		SavingsStars(Cumulative{TotalCO2Saved: 45e6, TotalEnergySaved: 900, TotalEconomicImpact: -150e9}),
	)
}
