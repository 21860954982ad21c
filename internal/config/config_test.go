package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/torkilv/phase-out-village/internal/economy"
	"github.com/torkilv/phase-out-village/internal/scoring"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "phaseout.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestDefault(t *testing.T) {
	c := Default()

	assert.Equal(t, "1", c.Version)
	assert.Equal(t, 2024, c.Simulation.StartYear)
	assert.Equal(t, 2050, c.Simulation.EndYear)
	assert.Equal(t, 2024, c.Simulation.AnchorYear)
	assert.Equal(t, 80.0, c.Economy.BaseOilPrice)
	assert.Equal(t, economy.PriceWalk, c.PriceModel(nil).Mode)
	assert.Equal(t, 3.2, c.Economy.ExportFactor)
	assert.Equal(t, 0.78, c.Tax().PetroleumRate)
	assert.Equal(t, scoring.DefaultConfig(), c.Scoring)
	assert.Equal(t, 2024, c.Projector().AnchorYear)
}

func TestLoad(t *testing.T) {
	t.Run("partial file keeps defaults", func(t *testing.T) {
		path := writeConfig(t, `
version: "2"
simulation:
  start_year: 2026
  end_year: 2040
seeded_rng:
  enabled: true
  seed: 99
economy:
  base_oil_price: 70
  tax:
    petroleum: 0.5
`)
		c, err := Load(path)
		require.NoError(t, err)

		assert.Equal(t, "2", c.Version)
		assert.Equal(t, 2026, c.Simulation.StartYear)
		assert.Equal(t, 2040, c.Simulation.EndYear)
		assert.Equal(t, 2024, c.Simulation.ReferenceYear)
		assert.Equal(t, 70.0, c.Economy.BaseOilPrice)
		assert.Equal(t, 20.0, c.Economy.MinOilPrice)
		assert.Equal(t, 0.5, c.Tax().PetroleumRate)
		assert.Zero(t, c.Tax().CorporateRate)

		pm := c.PriceModel(nil)
		assert.Equal(t, 70.0, pm.BasePrice)
		assert.Equal(t, 2024, pm.BaseYear)
	})

	t.Run("seeded rng is reproducible", func(t *testing.T) {
		c, err := Load(writeConfig(t, "seeded_rng:\n  enabled: true\n  seed: 5\n"))
		require.NoError(t, err)
		assert.Equal(t, c.Rand(1).Float64(), c.Rand(2).Float64())
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "read config")
	})

	t.Run("bad yaml", func(t *testing.T) {
		_, err := Load(writeConfig(t, "simulation: [1, 2"))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "parse config")
	})

	t.Run("trend price model", func(t *testing.T) {
		c, err := Load(writeConfig(t, "economy:\n  price_model: trend\n"))
		require.NoError(t, err)

		pm := c.PriceModel(nil)
		assert.Equal(t, economy.PriceTrend, pm.Mode)
		assert.Equal(t, -0.5, pm.Slope)
		assert.InDelta(t, 76.5, pm.Price(2031), 1e-9)
	})

	t.Run("unknown price model", func(t *testing.T) {
		_, err := Load(writeConfig(t, "economy:\n  price_model: oracle\n"))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "price_model")
	})

	t.Run("end before start", func(t *testing.T) {
		_, err := Load(writeConfig(t, "simulation:\n  start_year: 2030\n  end_year: 2025\n"))
		assert.Error(t, err)
	})
}

func TestPresets(t *testing.T) {
	assert.Equal(t, DefaultBalance(), Preset(""))
	assert.Equal(t, DefaultBalance(), Preset("unknown"))
	assert.Equal(t, Casual(), Preset("casual"))
	assert.Equal(t, Hard(), Preset("hard"))

	assert.Greater(t, Casual().CO2BaseCost, DefaultBalance().CO2BaseCost)
	assert.Less(t, Hard().CO2BaseCost, DefaultBalance().CO2BaseCost)
}

func TestFromEnv(t *testing.T) {
	t.Run("no variables", func(t *testing.T) {
		b, err := FromEnv()
		require.NoError(t, err)
		assert.Equal(t, DefaultBalance(), b)
	})

	t.Run("preset with override", func(t *testing.T) {
		t.Setenv("PHASEOUT_DIFFICULTY", "hard")
		t.Setenv("PHASEOUT_EXPORT_FACTOR", "2.5")

		b, err := FromEnv()
		require.NoError(t, err)

		want := Hard()
		want.ExportFactor = 2.5
		assert.Equal(t, want, b)
	})

	t.Run("invalid number", func(t *testing.T) {
		t.Setenv("PHASEOUT_OIL_PRICE", "cheap")

		_, err := FromEnv()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "parse env")
	})
}

func TestApplyBalance(t *testing.T) {
	c := Default()
	c.ApplyBalance(Hard())

	assert.Equal(t, 95.0, c.Economy.BaseOilPrice)
	assert.Equal(t, -0.08, c.Economy.PriceAdjustMin)
	assert.Equal(t, 0.08, c.Economy.PriceAdjustMax)
	assert.Equal(t, 300.0, c.Scoring.CO2BaseCost)
	assert.Equal(t, 50_000.0, c.Scoring.EnergyValueDecrease)
}
