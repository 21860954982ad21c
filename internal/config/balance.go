package config

// Balance holds the tunables that difficulty presets change. Every field can
// be overridden from the environment with a PHASEOUT_ prefix.
type Balance struct {
	OilPrice         float64 `env:"OIL_PRICE" json:"oil_price"`
	PriceVolatility  float64 `env:"PRICE_VOLATILITY" json:"price_volatility"`
	ExportFactor     float64 `env:"EXPORT_FACTOR" json:"export_factor"`
	PetroleumTaxRate float64 `env:"PETROLEUM_TAX_RATE" json:"petroleum_tax_rate"`

	// Scoring
	CO2BaseCost     float64 `env:"CO2_BASE_COST" json:"co2_base_cost"`
	CO2CostIncrease float64 `env:"CO2_COST_INCREASE" json:"co2_cost_increase"`
	EnergyBaseValue float64 `env:"ENERGY_BASE_VALUE" json:"energy_base_value"`
}

// DefaultBalance returns the default balance configuration
func DefaultBalance() Balance {
	return Balance{
		OilPrice:         80,
		PriceVolatility:  0.05,
		ExportFactor:     3.2,
		PetroleumTaxRate: 0.78,
		CO2BaseCost:      500,
		CO2CostIncrease:  50,
		EnergyBaseValue:  1_000_000,
	}
}

// Casual values each saved tonne higher and keeps prices calm.
func Casual() Balance {
	cfg := DefaultBalance()
	cfg.PriceVolatility = 0.03
	cfg.CO2BaseCost = 750
	cfg.EnergyBaseValue = 1_500_000
	return cfg
}

// Hard makes oil more lucrative to keep and savings worth less.
func Hard() Balance {
	cfg := DefaultBalance()
	cfg.OilPrice = 95
	cfg.PriceVolatility = 0.08
	cfg.CO2BaseCost = 300
	cfg.CO2CostIncrease = 30
	return cfg
}

// Preset returns the named difficulty, falling back to the default.
func Preset(name string) Balance {
	switch name {
	case "casual":
		return Casual()
	case "hard":
		return Hard()
	}
	return DefaultBalance()
}
