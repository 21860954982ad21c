package production

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func establishedModel() Model {
	return Model{
		BaselineYear:       2022,
		BaselineProduction: 10,
		BaselineEmissions:  50_000,
		DeclineRate:        0.05,
		Category:           CategoryEstablished,
	}
}

func TestProject_EstablishedScenario(t *testing.T) {
	m := establishedModel()

	p := Project(m, 2023, nil, "field")
	assert.InDelta(t, 9.5, p.OilVolume, 1e-9)
	assert.InDelta(t, 47_500, p.CO2, 1e-6)

	p = Project(m, 2024, nil, "field")
	assert.InDelta(t, 9.025, p.OilVolume, 1e-9)

	// the floor is measured against the staleness-corrected baseline
	floor := 10 * math.Pow(0.95, 2) * CategoryEstablished.FloorRatio()
	for year := 2023; year <= 2100; year++ {
		got := Project(m, year, nil, "field").OilVolume
		assert.GreaterOrEqual(t, got, floor, "year %d", year)
	}
}

func TestProject_BaselineYearIsExact(t *testing.T) {
	m := establishedModel()

	for _, year := range []int{1990, 2021, 2022} {
		p := Project(m, year, nil, "field")
		assert.Equal(t, Projection{OilVolume: 10, CO2: 50_000}, p, "year %d", year)
	}
}

func TestProject_Retired(t *testing.T) {
	m := establishedModel()
	retired := NewRetiredSet("field")

	assert.Greater(t, Project(m, 2030, nil, "field").OilVolume, 0.0)
	for year := 2000; year <= 2060; year++ {
		assert.Equal(t, Projection{}, Project(m, year, retired, "field"))
	}

	t.Run("other ids are unaffected", func(t *testing.T) {
		assert.Greater(t, Project(m, 2030, retired, "other").OilVolume, 0.0)
	})
}

func TestProject_PhaseOutYear(t *testing.T) {
	m := establishedModel()
	m.PhaseOutYear = 2030

	assert.Greater(t, Project(m, 2029, nil, "field").OilVolume, 0.0)
	assert.Equal(t, Projection{}, Project(m, 2030, nil, "field"))
	assert.Equal(t, Projection{}, Project(m, 2045, nil, "field"))
}

func TestProject_MonotonicEarlyDecline(t *testing.T) {
	m := establishedModel()

	prev := Project(m, m.BaselineYear, nil, "field").OilVolume
	for year := m.BaselineYear + 1; year <= m.BaselineYear+5; year++ {
		cur := Project(m, year, nil, "field").OilVolume
		assert.LessOrEqual(t, cur, prev, "year %d", year)
		prev = cur
	}
}

func TestProject_MonotonicLateDecline(t *testing.T) {
	m := establishedModel()

	prev := Project(m, m.BaselineYear+16, nil, "field").OilVolume
	for year := m.BaselineYear + 17; year <= m.BaselineYear+60; year++ {
		cur := Project(m, year, nil, "field").OilVolume
		assert.LessOrEqual(t, cur, prev, "year %d", year)
		prev = cur
	}
}

func TestProject_StaleBaseline(t *testing.T) {
	m := Model{
		BaselineYear:       2010,
		BaselineProduction: 10,
		DeclineRate:        0.1,
		Category:           CategoryMature,
	}

	// decayed from 2010 to 2015 at the capped rate, then ten years at the mid-phase rate
	rate := 0.1 * (0.7 + 0.3*5.0/10)
	want := 10 * math.Pow(0.92, 5) * math.Pow(1-rate, 10)
	assert.InDelta(t, want, Project(m, 2020, nil, "f").OilVolume, 1e-9)

	t.Run("anchor year caps the correction", func(t *testing.T) {
		p := Projector{AnchorYear: 2012}
		want := 10 * math.Pow(0.92, 2) * math.Pow(1-rate, 10)
		assert.InDelta(t, want, p.Project(m, 2020, nil, "f").OilVolume, 1e-9)
	})

	t.Run("zero anchor falls back to default", func(t *testing.T) {
		assert.Equal(t, Project(m, 2040, nil, "f"), Projector{}.Project(m, 2040, nil, "f"))
	})
}

func TestProject_LongTailFloor(t *testing.T) {
	m := Model{
		BaselineYear:       2022,
		BaselineProduction: 10,
		BaselineEmissions:  1000,
		DeclineRate:        0.2,
		Category:           CategoryNew,
	}

	base := 10 * math.Pow(0.92, 2)
	want := base * CategoryNew.FloorRatio() * 0.1

	p := Project(m, 2200, nil, "f")
	assert.InDelta(t, want, p.OilVolume, 1e-9)
	assert.InDelta(t, want*100, p.CO2, 1e-6)
}

func TestProject_EmissionIntensityPreserved(t *testing.T) {
	m := establishedModel()
	intensity := m.BaselineEmissions / m.BaselineProduction

	for year := 2023; year <= 2090; year++ {
		p := Project(m, year, nil, "field")
		require.Greater(t, p.OilVolume, 0.0)
		assert.InDelta(t, intensity, p.CO2/p.OilVolume, 1e-6, "year %d", year)
	}
}

func TestProject_NeverNegative(t *testing.T) {
	models := []Model{
		{},
		{BaselineYear: 2020, BaselineProduction: 0, BaselineEmissions: 100, DeclineRate: 0.1},
		{BaselineYear: 2020, BaselineProduction: 5, BaselineEmissions: -100, DeclineRate: 0.2, Category: CategoryMature},
		{BaselineYear: 1980, BaselineProduction: 50, BaselineEmissions: 10, DeclineRate: 0.2, Category: CategoryNew},
	}

	for _, m := range models {
		for year := 1970; year <= 2150; year += 3 {
			p := Project(m, year, nil, "f")
			if year > m.BaselineYear {
				assert.GreaterOrEqual(t, p.OilVolume, 0.0)
				assert.GreaterOrEqual(t, p.CO2, 0.0)
			}
		}
	}
}

func TestProject_ZeroBaseline(t *testing.T) {
	m := Model{BaselineYear: 2019, BaselineEmissions: 300, DeclineRate: 0.05, Category: CategoryMature}

	assert.Equal(t, Projection{CO2: 300}, Project(m, 2019, nil, "f"))
	assert.Equal(t, Projection{}, Project(m, 2020, nil, "f"))
}

func TestDeclineImpact(t *testing.T) {
	histories := map[string]Record{
		"a": {2021: oilCO2(10, 100), 2022: oilCO2(10, 100), 2023: oilCO2(10, 100)},
		"b": {2021: oilCO2(4, 40), 2022: oilCO2(4, 40), 2023: oilCO2(4, 40)},
	}

	impact := NewProjector().DeclineImpact(histories, 2023, 2025, NewRetiredSet("a"))

	// b has no decline, so only a contributes
	assert.InDelta(t, 10, impact.ProductionLoss, 1e-9)
	assert.InDelta(t, 100, impact.EmissionReduction, 1e-9)
	assert.InDelta(t, 10*1_000_000*80, impact.RevenueImpactUSD, 1e-3)
}
