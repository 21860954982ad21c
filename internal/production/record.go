package production

import "sort"

// Observation is one year of reported field data. Nil means not reported.
type Observation struct {
	OilVolume *float64 `json:"productionOil,omitempty"`
	GasVolume *float64 `json:"productionGas,omitempty"`
	CO2       *float64 `json:"emission,omitempty"`
}

func (o Observation) Oil() float64 {
	if o.OilVolume == nil {
		return 0
	}
	return *o.OilVolume
}

func (o Observation) Gas() float64 {
	if o.GasVolume == nil {
		return 0
	}
	return *o.GasVolume
}

func (o Observation) Emissions() float64 {
	if o.CO2 == nil {
		return 0
	}
	return *o.CO2
}

func (o Observation) HasOil() bool { return o.OilVolume != nil }

// Record maps year -> observation for a single field.
type Record map[int]Observation

// YearsDesc returns the recorded years, newest first.
func (r Record) YearsDesc() []int {
	years := make([]int, 0, len(r))
	for y := range r {
		years = append(years, y)
	}
	sort.Sort(sort.Reverse(sort.IntSlice(years)))
	return years
}

// YearsAsc returns the recorded years, oldest first.
func (r Record) YearsAsc() []int {
	years := make([]int, 0, len(r))
	for y := range r {
		years = append(years, y)
	}
	sort.Ints(years)
	return years
}

// Clone returns a shallow copy; observation pointers are shared, which is
// fine because nothing writes through them.
func (r Record) Clone() Record {
	out := make(Record, len(r)+1)
	for y, o := range r {
		out[y] = o
	}
	return out
}

// Extend returns a copy of r with the projection stored under year.
// Existing years are left alone except year itself.
func Extend(r Record, year int, p Projection) Record {
	out := r.Clone()
	out[year] = p.Observation()
	return out
}

// Float is a small helper for building observations in code and tests.
func Float(v float64) *float64 { return &v }
