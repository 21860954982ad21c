package config

import (
	"fmt"
	"math/rand"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/torkilv/phase-out-village/internal/economy"
	"github.com/torkilv/phase-out-village/internal/production"
	"github.com/torkilv/phase-out-village/internal/scoring"
)

type Config struct {
	Version    string         `yaml:"version" json:"version"`
	Simulation Simulation     `yaml:"simulation" json:"simulation"`
	SeededRNG  SeededRNG      `yaml:"seeded_rng" json:"seeded_rng"`
	Economy    Economy        `yaml:"economy" json:"economy"`
	Scoring    scoring.Config `yaml:"scoring" json:"scoring"`
}

type Simulation struct {
	StartYear     int `yaml:"start_year" json:"start_year"`
	EndYear       int `yaml:"end_year" json:"end_year"`
	ReferenceYear int `yaml:"reference_year" json:"reference_year"`
	AnchorYear    int `yaml:"anchor_year" json:"anchor_year"`
}

type SeededRNG struct {
	Enabled bool  `yaml:"enabled" json:"enabled"`
	Seed    int64 `yaml:"seed" json:"seed"`
}

type Economy struct {
	PriceModel      string   `yaml:"price_model" json:"price_model"` // walk or trend
	BaseOilPrice    float64  `yaml:"base_oil_price" json:"base_oil_price"`
	MinOilPrice     float64  `yaml:"min_oil_price" json:"min_oil_price"`
	PriceAdjustMin  float64  `yaml:"price_adjust_min" json:"price_adjust_min"`
	PriceAdjustMax  float64  `yaml:"price_adjust_max" json:"price_adjust_max"`
	PriceTrendSlope float64  `yaml:"price_trend_slope" json:"price_trend_slope"`
	ExportFactor    float64  `yaml:"export_factor" json:"export_factor"`
	Tax             TaxRates `yaml:"tax" json:"tax"`
}

type TaxRates struct {
	Petroleum float64 `yaml:"petroleum" json:"petroleum"`
	Corporate float64 `yaml:"corporate" json:"corporate"`
	Special   float64 `yaml:"special" json:"special"`
}

func (s *Simulation) ApplyDefaults() {
	if s.StartYear == 0 {
		s.StartYear = production.DefaultReferenceYear
	}
	if s.EndYear == 0 {
		s.EndYear = 2050
	}
	if s.ReferenceYear == 0 {
		s.ReferenceYear = production.DefaultReferenceYear
	}
	if s.AnchorYear == 0 {
		s.AnchorYear = production.DefaultAnchorYear
	}
}

func (e *Economy) ApplyDefaults() {
	if e.PriceModel == "" {
		e.PriceModel = string(economy.PriceWalk)
	}
	if e.PriceModel == string(economy.PriceTrend) && e.PriceTrendSlope == 0 {
		e.PriceTrendSlope = -0.5
	}
	if e.BaseOilPrice == 0 {
		e.BaseOilPrice = 80
	}
	if e.MinOilPrice == 0 {
		e.MinOilPrice = 20
	}
	if e.PriceAdjustMin == 0 && e.PriceAdjustMax == 0 {
		e.PriceAdjustMin = -0.05
		e.PriceAdjustMax = 0.05
	}
	if e.ExportFactor == 0 {
		e.ExportFactor = economy.DefaultExportFactor
	}
	if e.Tax == (TaxRates{}) {
		t := economy.DefaultTax()
		e.Tax = TaxRates{Petroleum: t.PetroleumRate, Corporate: t.CorporateRate, Special: t.SpecialRate}
	}
}

func (c *Config) ApplyDefaults() {
	if c.Version == "" {
		c.Version = "1"
	}
	c.Simulation.ApplyDefaults()
	c.Economy.ApplyDefaults()
	if c.Scoring == (scoring.Config{}) {
		c.Scoring = scoring.DefaultConfig()
	}
}

// Default is the configuration used when no file is given.
func Default() *Config {
	var c Config
	c.ApplyDefaults()
	return &c
}

func Load(path string) (*Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	var r Config
	if err := yaml.Unmarshal(b, &r); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	r.ApplyDefaults()
	if r.Simulation.EndYear < r.Simulation.StartYear {
		return nil, fmt.Errorf("simulation end_year %d before start_year %d", r.Simulation.EndYear, r.Simulation.StartYear)
	}
	switch economy.PriceMode(r.Economy.PriceModel) {
	case economy.PriceWalk, economy.PriceTrend:
	default:
		return nil, fmt.Errorf("economy price_model %q: want walk or trend", r.Economy.PriceModel)
	}
	return &r, nil
}

// ApplyBalance overlays a difficulty preset on the loaded configuration.
func (c *Config) ApplyBalance(b Balance) {
	c.Economy.BaseOilPrice = b.OilPrice
	c.Economy.PriceAdjustMin = -b.PriceVolatility
	c.Economy.PriceAdjustMax = b.PriceVolatility
	c.Economy.ExportFactor = b.ExportFactor
	c.Economy.Tax.Petroleum = b.PetroleumTaxRate
	c.Scoring.CO2BaseCost = b.CO2BaseCost
	c.Scoring.CO2CostIncrease = b.CO2CostIncrease
	c.Scoring.EnergyBaseValue = b.EnergyBaseValue
}

// Rand returns a seeded source when seeded_rng is enabled, otherwise one
// seeded from seed.
func (c *Config) Rand(seed int64) *rand.Rand {
	if c.SeededRNG.Enabled {
		seed = c.SeededRNG.Seed
	}
	return rand.New(rand.NewSource(seed))
}

func (c *Config) PriceModel(rnd *rand.Rand) economy.PriceModel {
	return economy.PriceModel{
		Mode:      economy.PriceMode(c.Economy.PriceModel),
		BasePrice: c.Economy.BaseOilPrice,
		MinPrice:  c.Economy.MinOilPrice,
		AdjustMin: c.Economy.PriceAdjustMin,
		AdjustMax: c.Economy.PriceAdjustMax,
		Slope:     c.Economy.PriceTrendSlope,
		BaseYear:  c.Simulation.ReferenceYear,
		Rand:      rnd,
	}
}

func (c *Config) Tax() economy.Tax {
	return economy.Tax{
		PetroleumRate: c.Economy.Tax.Petroleum,
		CorporateRate: c.Economy.Tax.Corporate,
		SpecialRate:   c.Economy.Tax.Special,
	}
}

func (c *Config) Projector() production.Projector {
	return production.Projector{AnchorYear: c.Simulation.AnchorYear}
}
