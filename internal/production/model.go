package production

const (
	DefaultDeclineRate = 0.05
	MaxDeclineRate     = 0.20

	// DefaultReferenceYear is the "current" year models are built against.
	DefaultReferenceYear = 2024

	declineWindow     = 5
	minHistoryYears   = 3
	significantVolume = 0.1
	peakLookbackYears = 10
	newFieldFirstYear = 2015
	recentYear        = 2020
	matureCutoffYear  = 2000
)

type Category string

const (
	CategoryMature      Category = "mature"
	CategoryEstablished Category = "established"
	CategoryNew         Category = "new"
)

// FloorRatio is the fraction of baseline production a field keeps as a long tail.
func (c Category) FloorRatio() float64 {
	switch c {
	case CategoryEstablished:
		return 0.05
	case CategoryNew:
		return 0.08
	default:
		return 0.02
	}
}

// Model is derived from a field's history for each projection request.
type Model struct {
	BaselineYear       int      `json:"baseline_year"`
	BaselineProduction float64  `json:"baseline_production"`
	BaselineEmissions  float64  `json:"baseline_emissions"`
	DeclineRate        float64  `json:"decline_rate"`
	Category           Category `json:"category"`
	PhaseOutYear       int      `json:"phase_out_year,omitempty"` // 0 = not scheduled
}

type Baseline struct {
	Year       int     `json:"year"`
	Production float64 `json:"production"`
	Emissions  float64 `json:"emissions"`
}

// NewModel builds a production model from history. referenceYear anchors the
// peak-search window and the empty-history fallback.
func NewModel(r Record, referenceYear int) Model {
	b := SelectBaseline(r, referenceYear)
	return Model{
		BaselineYear:       b.Year,
		BaselineProduction: b.Production,
		BaselineEmissions:  b.Emissions,
		DeclineRate:        DeclineRate(r),
		Category:           Categorize(r),
	}
}

// DeclineRate averages the year-over-year decline across the most recent
// recorded years. Growth counts as zero decline.
func DeclineRate(r Record) float64 {
	years := r.YearsDesc()
	if len(years) < minHistoryYears {
		return DefaultDeclineRate
	}
	if len(years) > declineWindow {
		years = years[:declineWindow]
	}

	total := 0.0
	pairs := 0
	for i := 1; i < len(years); i++ {
		newer := r[years[i-1]].Oil()
		older := r[years[i]].Oil()
		if newer <= 0 || older <= 0 {
			continue
		}
		total += (older - newer) / older
		pairs++
	}
	if pairs == 0 {
		return DefaultDeclineRate
	}
	return clamp(total/float64(pairs), 0, MaxDeclineRate)
}

// Categorize classifies a field by its first production year and whether it
// still produced after 2020.
func Categorize(r Record) Category {
	return CategorizeWithCutoff(r, matureCutoffYear)
}

// CategorizeWithCutoff is Categorize with a configurable last "mature" start year.
func CategorizeWithCutoff(r Record, matureCutoff int) Category {
	years := r.YearsAsc()
	if len(years) == 0 {
		return CategoryNew
	}

	first := years[0]
	recent := false
	for _, y := range years {
		if y >= recentYear && r[y].Oil() > 0 {
			recent = true
			break
		}
	}

	switch {
	case first >= newFieldFirstYear && recent:
		return CategoryNew
	case first <= matureCutoff || !recent:
		return CategoryMature
	default:
		return CategoryEstablished
	}
}

// SelectBaseline picks the reference observation, first match wins:
//  1. newest year with oil > 0.1
//  2. peak oil within the last 10 years before referenceYear
//  3. newest year with any oil > 0
//  4. newest year that reports oil at all, even zero
//  5. referenceYear with zeros
func SelectBaseline(r Record, referenceYear int) Baseline {
	years := r.YearsDesc()

	for _, y := range years {
		if o := r[y]; o.Oil() > significantVolume {
			return Baseline{Year: y, Production: o.Oil(), Emissions: o.Emissions()}
		}
	}

	peak := Baseline{Year: referenceYear}
	for _, y := range years {
		if y < referenceYear-peakLookbackYears {
			continue
		}
		if o := r[y]; o.Oil() > peak.Production {
			peak = Baseline{Year: y, Production: o.Oil(), Emissions: o.Emissions()}
		}
	}
	if peak.Production > 0 {
		return peak
	}

	for _, y := range years {
		if o := r[y]; o.Oil() > 0 {
			return Baseline{Year: y, Production: o.Oil(), Emissions: o.Emissions()}
		}
	}

	for _, y := range years {
		if o := r[y]; o.HasOil() {
			return Baseline{Year: y, Production: o.Oil(), Emissions: o.Emissions()}
		}
	}

	return Baseline{Year: referenceYear}
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
