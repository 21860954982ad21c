// Package scoring turns cumulative savings into a game score. CO2 savings
// earn progressively more per tonne, energy savings progressively less per
// TWh, and finishing early multiplies both.
package scoring

import (
	"fmt"
	"math"
	"strings"
)

// SpeedWindowYears is the span (2024-2050) over which the speed bonus decays.
const SpeedWindowYears = 26

type Config struct {
	CO2BaseCost         float64 `yaml:"co2_base_cost" json:"co2_base_cost"`                 // NOK per tonne
	CO2CostIncrease     float64 `yaml:"co2_cost_increase" json:"co2_cost_increase"`         // NOK per tonne per tonne
	EnergyBaseValue     float64 `yaml:"energy_base_value" json:"energy_base_value"`         // NOK per TWh
	EnergyValueDecrease float64 `yaml:"energy_value_decrease" json:"energy_value_decrease"` // NOK per TWh per TWh
	MaxCO2Budget        float64 `yaml:"max_co2_budget" json:"max_co2_budget"`
	MaxEnergyBudget     float64 `yaml:"max_energy_budget" json:"max_energy_budget"`
}

func DefaultConfig() Config {
	return Config{
		CO2BaseCost:         500,
		CO2CostIncrease:     50,
		EnergyBaseValue:     1_000_000,
		EnergyValueDecrease: 50_000,
		MaxCO2Budget:        100_000_000,
		MaxEnergyBudget:     1000,
	}
}

// Cumulative tracks savings against business as usual.
type Cumulative struct {
	TotalCO2Saved       float64 `json:"total_co2_saved"`       // tonnes
	TotalEnergySaved    float64 `json:"total_energy_saved"`    // TWh
	TotalEconomicImpact float64 `json:"total_economic_impact"` // NOK of revenue forgone
	YearsActive         int     `json:"years_active"`
}

type Breakdown struct {
	CO2Benefit      float64 `json:"co2_benefit"`
	EnergyBenefit   float64 `json:"energy_benefit"`
	EconomicCost    float64 `json:"economic_cost"`
	SpeedMultiplier float64 `json:"speed_multiplier"`
}

type Result struct {
	CO2Score    float64   `json:"co2_score"`
	EnergyScore float64   `json:"energy_score"`
	SpeedBonus  float64   `json:"speed_bonus"`
	TotalScore  float64   `json:"total_score"`
	Breakdown   Breakdown `json:"breakdown"`
}

// CO2Score integrates a linearly rising cost per tonne over saved tonnes.
func CO2Score(saved float64, cfg Config) float64 {
	if saved <= 0 {
		return 0
	}
	avg := cfg.CO2BaseCost + saved*cfg.CO2CostIncrease/2
	return saved * avg
}

// EnergyScore integrates a linearly falling value per TWh, floored at 10% of
// the base value.
func EnergyScore(saved float64, cfg Config) float64 {
	if saved <= 0 {
		return 0
	}
	avg := math.Max(cfg.EnergyBaseValue-saved*cfg.EnergyValueDecrease/2, cfg.EnergyBaseValue*0.1)
	return saved * avg
}

func Total(c Cumulative, cfg Config) Result {
	co2 := CO2Score(c.TotalCO2Saved, cfg)
	energy := EnergyScore(c.TotalEnergySaved, cfg)

	speed := math.Max(1, 2-float64(c.YearsActive)/SpeedWindowYears)
	bonus := (co2 + energy) * (speed - 1)

	return Result{
		CO2Score:    co2,
		EnergyScore: energy,
		SpeedBonus:  bonus,
		TotalScore:  co2 + energy + bonus - c.TotalEconomicImpact,
		Breakdown: Breakdown{
			CO2Benefit:      co2,
			EnergyBenefit:   energy,
			EconomicCost:    c.TotalEconomicImpact,
			SpeedMultiplier: speed,
		},
	}
}

// Thresholds are ascending upper bounds for one through four stars.
type Thresholds []float64

var DefaultThresholds = struct {
	CO2Emissions      Thresholds
	EnergyConsumption Thresholds
	EconomicImpact    Thresholds
}{
	CO2Emissions:      Thresholds{1_000_000, 5_000_000, 10_000_000, 20_000_000},
	EnergyConsumption: Thresholds{10, 25, 50, 100},
	EconomicImpact:    Thresholds{10e9, 50e9, 100e9, 200e9},
}

// Stars rates value 1-5: the first threshold it does not exceed decides,
// past all of them is five.
func Stars(value float64, thresholds Thresholds) int {
	for i, limit := range thresholds {
		if value <= limit {
			return i + 1
		}
	}
	return 5
}

func FormatNumber(num float64, unit string) string {
	switch {
	case num >= 1e12:
		return fmt.Sprintf("%.1fT %s", num/1e12, unit)
	case num >= 1e9:
		return fmt.Sprintf("%.1fB %s", num/1e9, unit)
	case num >= 1e6:
		return fmt.Sprintf("%.1fM %s", num/1e6, unit)
	case num >= 1e3:
		return fmt.Sprintf("%.1fK %s", num/1e3, unit)
	}
	return fmt.Sprintf("%.1f %s", num, unit)
}

func StarDisplay(stars int) string {
	stars = max(0, min(5, stars))
	return strings.Repeat("⭐", stars) + strings.Repeat("☆", 5-stars)
}
