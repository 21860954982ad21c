package indicators

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/torkilv/phase-out-village/internal/production"
)

func TestHappiness(t *testing.T) {
	b := DefaultBaselines()

	tests := []struct {
		name                 string
		revenue, co2, energy float64
		want                 float64
	}{
		{name: "no change", want: 7.3},
		{name: "emission cut", co2: -4e8, want: 7.3 + 2*0.4*0.4},
		{name: "emission rise", co2: 1e8, want: 7.3 - 0.5*0.4},
		{name: "revenue loss", revenue: -4e11, want: 7.3 - 2*0.2*0.3},
		{name: "revenue gain", revenue: 1e11, want: 7.3 + math.Log(2)*0.1*0.3},
		{name: "energy gain", energy: 10, want: 7.3 + 0.1*0.3},
		{name: "clamped high", co2: -1e14, want: 10},
		{name: "clamped low", co2: 1e14, want: 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, b.HappinessScore(tt.revenue, tt.co2, tt.energy), 1e-9)
		})
	}
}

func TestWealthFund(t *testing.T) {
	b := DefaultBaselines()

	assert.InDelta(t, 0.03, b.WealthFundGrowth(0), 1e-12)
	assert.InDelta(t, 0.03+0.65*1.5e12/1.5e13, b.WealthFundGrowth(1.5e12), 1e-12)

	st := b.FundStatus(0, 2026, 2024)
	assert.InDelta(t, 1.5e13*1.03*1.03, st.CurrentValue, 1)
	assert.Zero(t, st.PetroleumContribution)

	st = b.FundStatus(1e9, 2024, 2024)
	assert.InDelta(t, 1.5e13, st.CurrentValue, 1e-3)
	assert.InDelta(t, 6.5e8, st.PetroleumContribution, 1e-6)
}

func TestEnergySecurity(t *testing.T) {
	b := DefaultBaselines()
	fields := map[string]production.Record{
		"a": {2030: {OilVolume: production.Float(30)}},
		"b": {2030: {OilVolume: production.Float(20)}},
		"c": {2031: {OilVolume: production.Float(500)}},
	}

	assert.InDelta(t, 85+0.5*15, b.EnergySecurity(fields, 2030, nil), 1e-9)
	assert.InDelta(t, 85+0.3*15, b.EnergySecurity(fields, 2030, production.NewRetiredSet("b")), 1e-9)
	assert.InDelta(t, 100, b.EnergySecurity(fields, 2031, nil), 1e-9)
	assert.InDelta(t, 85, b.EnergySecurity(fields, 2040, nil), 1e-9)
}

func TestEquality(t *testing.T) {
	b := DefaultBaselines()

	assert.InDelta(t, 73, b.EqualityScore(0, 0), 1e-9)
	assert.InDelta(t, (1-0.27-math.Log(2)*0.02)*100, b.EqualityScore(1e12, 0), 1e-9)
	assert.InDelta(t, 63, b.EqualityScore(0, 1), 1e-9)
	assert.Zero(t, b.EqualityScore(0, 20))
}

func TestCompute(t *testing.T) {
	b := DefaultBaselines()
	fields := map[string]production.Record{
		"a": {2025: {OilVolume: production.Float(40)}},
	}

	t.Run("first year has no changes", func(t *testing.T) {
		m := b.Compute(Input{Year: 2025, Fields: fields, PetroleumRevenue: 1e10, TotalEmissions: 5e8})
		assert.Equal(t, 2025, m.Year)
		assert.Equal(t, 5e8, m.Emissions)
		assert.Equal(t, 1e10, m.Revenue)
		assert.InDelta(t, 73, m.Happiness, 1e-9)
		assert.InDelta(t, 85+0.4*15, m.Energy, 1e-9)
	})

	t.Run("emission cut raises happiness", func(t *testing.T) {
		prev := &Metrics{Year: 2024, Emissions: 9e8, Energy: 91, Revenue: 1e10}
		m := b.Compute(Input{Year: 2025, Fields: fields, PetroleumRevenue: 1e10, TotalEmissions: 5e8, Previous: prev})
		assert.InDelta(t, (7.3+2*0.4*0.4)*10, m.Happiness, 1e-9)
	})
}

func TestPerCapitaEmissions(t *testing.T) {
	b := DefaultBaselines()
	assert.InDelta(t, 100, b.PerCapitaEmissions(5.4e8), 1e-9)

	b.Environment.Population = 0
	assert.Zero(t, b.PerCapitaEmissions(5.4e8))
}

func TestScoresReadBaselines(t *testing.T) {
	b := DefaultBaselines()
	b.Happiness.BaselineScore = 5
	b.Happiness.MaxScore = 6
	b.Equality.BaselineGini = 0.5
	b.WealthFund.CurrentValue = 1e12
	b.WealthFund.BaselineGrowthRate = 0.1

	assert.InDelta(t, 5, b.HappinessScore(0, 0, 0), 1e-9)
	assert.InDelta(t, 6, b.HappinessScore(0, -1e14, 0), 1e-9)
	assert.InDelta(t, 50, b.EqualityScore(0, 0), 1e-9)

	st := b.FundStatus(0, 2025, 2024)
	assert.InDelta(t, 1.1e12, st.CurrentValue, 1e-3)
	assert.InDelta(t, 0.1, st.GrowthRate, 1e-12)

	m := b.Compute(Input{Year: 2025})
	assert.InDelta(t, 50, m.Happiness, 1e-9)
	assert.InDelta(t, 50, m.Equality, 1e-9)
}
