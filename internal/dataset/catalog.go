package dataset

import (
	"github.com/torkilv/phase-out-village/internal/economy"
	"github.com/torkilv/phase-out-village/internal/production"
)

const (
	gapYear = 2024

	// The phase-out schedule treats anything started by 2010 as mature, a
	// looser cutoff than the decline model uses.
	scheduleMatureCutoff = 2010
)

var defaultLocation = Location{Lat: 60.0, Lon: 5.0}

var coordinates = map[string]Location{
	"Aasta Hansteen": {67.1, 8.3},
	"Alvheim":        {56.5, 2.9},
	"Balder":         {60.8, 2.3},
	"Brage":          {60.5, 2.4},
	"Draugen":        {64.3, 7.8},
	"Edvard Grieg":   {56.6, 2.1},
	"Ekofisk":        {56.5, 3.2},
	"Eldfisk":        {56.3, 2.9},
	"Gjøa":           {61.3, 2.1},
	"Goliat":         {71.3, 22.2},
	"Grane":          {58.9, 2.1},
	"Gullfaks":       {61.2, 2.3},
	"Heidrun":        {65.3, 7.3},
	"Johan Castberg": {71.9, 19.9},
	"Johan Sverdrup": {56.1, 2.8},
	"Kristin":        {65.0, 6.6},
	"Kvitebjørn":     {61.1, 2.5},
	"Martin Linge":   {56.5, 3.8},
	"Njord":          {65.1, 6.6},
	"Norne":          {66.0, 8.1},
	"Ormen Lange":    {64.1, 5.9},
	"Oseberg":        {60.5, 2.8},
	"Sleipner":       {58.4, 1.9},
	"Snorre":         {61.4, 2.1},
	"Statfjord":      {61.2, 1.9},
	"Troll":          {60.6, 3.7},
	"Urd":            {56.6, 2.1},
	"Valhall":        {56.3, 3.4},
	"Visund":         {61.4, 2.3},
}

var phaseOutOptions = map[production.Category][]int{
	production.CategoryMature:      {2027, 2028, 2029, 2030},
	production.CategoryEstablished: {2030, 2031, 2032, 2033, 2034, 2035},
	production.CategoryNew:         {2035, 2036, 2037, 2038, 2039, 2040},
}

// ParisTarget is an emissions level, as a fraction of the baseline, to reach by Year.
type ParisTarget struct {
	Year            int     `json:"year"`
	EmissionsTarget float64 `json:"emissions_target"`
}

var parisTargets = []ParisTarget{
	{Year: 2030, EmissionsTarget: 0.45},
	{Year: 2035, EmissionsTarget: 0.25},
	{Year: 2040, EmissionsTarget: 0.10},
	{Year: 2050, EmissionsTarget: 0.05},
}

func (d *Dataset) ParisTargets() []ParisTarget {
	return append([]ParisTarget(nil), parisTargets...)
}

// Investments is the catalogue offered alongside the field data.
func (d *Dataset) Investments() []economy.Investment {
	return economy.Catalog()
}

type YearRange struct {
	Start int `json:"start"`
	End   int `json:"end"`
}

type Statistics struct {
	TotalFields        int       `json:"total_fields"`
	ActiveFields       int       `json:"active_fields"`
	TotalOilProduction float64   `json:"total_oil_production"`
	TotalGasProduction float64   `json:"total_gas_production"`
	TotalEmissions     float64   `json:"total_emissions"`
	YearRange          YearRange `json:"year_range"`
}

// Statistics sums every recorded year. A field counts as active when it
// produced oil in 2020 or later.
func (d *Dataset) Statistics() Statistics {
	st := Statistics{TotalFields: len(d.fields)}
	first := true

	for _, f := range d.fields {
		active := false
		for year, obs := range f.History {
			if first || year < st.YearRange.Start {
				st.YearRange.Start = year
			}
			if first || year > st.YearRange.End {
				st.YearRange.End = year
			}
			first = false

			if obs.Oil() != 0 {
				st.TotalOilProduction += obs.Oil()
				if year >= 2020 {
					active = true
				}
			}
			st.TotalGasProduction += obs.Gas()
			st.TotalEmissions += obs.Emissions()
		}
		if active {
			st.ActiveFields++
		}
	}
	return st
}

var baselineYears = []int{2020, 2021, 2022}

// BaselineEmissions averages total direct emissions over the reference years,
// skipping years with nothing reported.
func (d *Dataset) BaselineEmissions() float64 {
	total := 0.0
	years := 0
	for _, y := range baselineYears {
		sum := 0.0
		for _, f := range d.fields {
			sum += f.History[y].Emissions()
		}
		if sum > 0 {
			total += sum
			years++
		}
	}
	if years == 0 {
		return 0
	}
	return total / float64(years)
}
