package production

import "math"

const (
	// DefaultAnchorYear caps how far a stale baseline is decayed forward
	// before the main curve is applied.
	DefaultAnchorYear = 2024

	staleAfterYears   = 5
	staleDeclineCap   = 0.08
	earlyPhaseYears   = 5
	midPhaseYears     = 15
	latePhaseFactor   = 0.3
	longTailStart     = 30
	longTailDecay     = 0.98
	longTailFloorFrac = 0.1
)

// Projection is the estimate for exactly one target year.
type Projection struct {
	OilVolume float64 `json:"productionOil"`
	CO2       float64 `json:"emission"`
}

// Observation converts the projection into a record entry.
func (p Projection) Observation() Observation {
	return Observation{OilVolume: Float(p.OilVolume), CO2: Float(p.CO2)}
}

// RetiredSet holds IDs of fields forced to zero output.
type RetiredSet map[string]struct{}

func NewRetiredSet(ids ...string) RetiredSet {
	s := make(RetiredSet, len(ids))
	for _, id := range ids {
		s[id] = struct{}{}
	}
	return s
}

func (s RetiredSet) Has(id string) bool {
	_, ok := s[id]
	return ok
}

// With returns a copy of s including id.
func (s RetiredSet) With(id string) RetiredSet {
	out := make(RetiredSet, len(s)+1)
	for k := range s {
		out[k] = struct{}{}
	}
	out[id] = struct{}{}
	return out
}

type Projector struct {
	AnchorYear int
}

func NewProjector() Projector {
	return Projector{AnchorYear: DefaultAnchorYear}
}

// Project is Projector.Project with the default anchor year.
func Project(m Model, targetYear int, retired RetiredSet, fieldID string) Projection {
	return NewProjector().Project(m, targetYear, retired, fieldID)
}

// Project estimates production and emissions for targetYear. It never fails:
// degenerate models project to zero.
func (p Projector) Project(m Model, targetYear int, retired RetiredSet, fieldID string) Projection {
	if retired.Has(fieldID) {
		return Projection{}
	}
	if m.PhaseOutYear > 0 && targetYear >= m.PhaseOutYear {
		return Projection{}
	}

	elapsed := targetYear - m.BaselineYear
	if elapsed <= 0 {
		return Projection{OilVolume: m.BaselineProduction, CO2: m.BaselineEmissions}
	}

	anchor := p.AnchorYear
	if anchor == 0 {
		anchor = DefaultAnchorYear
	}

	base := m.BaselineProduction
	if m.BaselineYear < targetYear-staleAfterYears {
		if toPresent := min(targetYear-staleAfterYears, anchor) - m.BaselineYear; toPresent > 0 {
			base *= math.Pow(1-math.Min(m.DeclineRate, staleDeclineCap), float64(toPresent))
		}
	}

	produced := 0.0
	if base != 0 {
		rate := effectiveDeclineRate(m.DeclineRate, elapsed)
		declined := base * math.Pow(1-rate, float64(elapsed))
		floor := base * m.Category.FloorRatio()
		produced = math.Max(declined, floor)

		if elapsed > longTailStart {
			tail := math.Pow(longTailDecay, float64(elapsed-longTailStart))
			produced = math.Max(produced*tail, floor*longTailFloorFrac)
		}
	}

	intensity := 0.0
	if m.BaselineProduction > 0 {
		intensity = m.BaselineEmissions / m.BaselineProduction
	}

	return Projection{
		OilVolume: math.Max(0, produced),
		CO2:       math.Max(0, produced*intensity),
	}
}

// effectiveDeclineRate slows the decline as a field ages.
func effectiveDeclineRate(rate float64, elapsed int) float64 {
	switch {
	case elapsed <= earlyPhaseYears:
		return rate
	case elapsed <= midPhaseYears:
		return rate * (0.7 + 0.3*float64(midPhaseYears-elapsed)/10)
	default:
		return rate * latePhaseFactor
	}
}
