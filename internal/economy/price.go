package economy

import (
	"math"
	"math/rand"
)

type PriceMode string

const (
	PriceWalk  PriceMode = "walk"
	PriceTrend PriceMode = "trend"
)

// PriceModel draws a yearly oil price as a random walk from BaseYear.
// Every call re-walks from BasePrice; prices are not chained across years.
// In PriceTrend mode the price follows TrendPrice instead, with the adjust
// range as volatility and Slope in USD per year.
type PriceModel struct {
	Mode      PriceMode
	BasePrice float64
	MinPrice  float64
	AdjustMin float64
	AdjustMax float64
	Slope     float64
	BaseYear  int
	Rand      *rand.Rand
}

func DefaultPriceModel(rnd *rand.Rand) PriceModel {
	return PriceModel{
		Mode:      PriceWalk,
		BasePrice: 80,
		MinPrice:  20,
		AdjustMin: -0.05,
		AdjustMax: 0.05,
		BaseYear:  2024,
		Rand:      rnd,
	}
}

// Price returns the USD/bbl price for year, never below MinPrice.
func (m PriceModel) Price(year int) float64 {
	if m.Mode == PriceTrend {
		return math.Max(TrendPrice(year, m.BaseYear, m.BasePrice, m.AdjustMax-m.AdjustMin, m.Slope, m.Rand), m.MinPrice)
	}

	steps := year - m.BaseYear
	if steps < 0 {
		steps = -steps
	}

	price := m.BasePrice
	spread := m.AdjustMax - m.AdjustMin
	for i := 0; i < steps; i++ {
		adj := (m.float()-0.5)*2*spread + m.AdjustMin
		price *= 1 + adj
	}
	return math.Max(price, m.MinPrice)
}

func (m PriceModel) float() float64 {
	if m.Rand == nil {
		return 0.5
	}
	return m.Rand.Float64()
}

// TrendPrice is an alternative generator: linear decline, a seven year cycle
// and noise, bounded to [30, 120].
func TrendPrice(year, baseYear int, basePrice, volatility, slope float64, rnd *rand.Rand) float64 {
	diff := float64(year - baseYear)
	trend := basePrice + slope*diff
	cycle := math.Sin(diff*math.Pi/7) * basePrice * 0.1

	noise := 0.0
	if rnd != nil {
		noise = (rnd.Float64() - 0.5) * basePrice * volatility
	}
	return math.Max(30, math.Min(120, trend+cycle+noise))
}
