package dataset

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/torkilv/phase-out-village/internal/production"
)

//go:embed fields.json
var embeddedFields []byte

var ErrFieldNotFound = errors.New("field not found")

// File is the on-disk shape: field name -> year -> observation.
type File map[string]map[string]production.Observation

type Location struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

type Field struct {
	ID                  string              `json:"id"`
	Name                string              `json:"name"`
	Location            Location            `json:"location"`
	History             production.Record   `json:"production"`
	PhaseOutYearOptions []int               `json:"phase_out_year_options"`
	Category            production.Category `json:"category"`
}

// Dataset is an immutable, load-once handle over the static field data.
type Dataset struct {
	fields []Field
	byID   map[string]int
}

// Load parses the embedded dataset.
func Load() (*Dataset, error) {
	return Parse(bytes.NewReader(embeddedFields))
}

func LoadFile(path string) (*Dataset, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return Parse(f)
}

func Parse(r io.Reader) (*Dataset, error) {
	var raw File
	if err := json.NewDecoder(r).Decode(&raw); err != nil {
		return nil, fmt.Errorf("decode dataset: %w", err)
	}
	return FromFile(raw)
}

// FromFile transforms raw per-field series into fields. Field names must map
// to distinct IDs.
func FromFile(raw File) (*Dataset, error) {
	names := make([]string, 0, len(raw))
	for name := range raw {
		names = append(names, name)
	}
	sort.Strings(names)

	ds := &Dataset{
		fields: make([]Field, 0, len(names)),
		byID:   make(map[string]int, len(names)),
	}
	for _, name := range names {
		f := transform(name, raw[name])
		if f.ID == "" {
			return nil, fmt.Errorf("field %q has no usable id", name)
		}
		if _, dup := ds.byID[f.ID]; dup {
			return nil, fmt.Errorf("duplicate field id %q (from %q)", f.ID, name)
		}
		ds.byID[f.ID] = len(ds.fields)
		ds.fields = append(ds.fields, f)
	}
	return ds, nil
}

func transform(name string, series map[string]production.Observation) Field {
	history := make(production.Record, len(series)+1)
	for key, obs := range series {
		year, err := strconv.Atoi(strings.TrimSpace(key))
		if err != nil {
			continue
		}
		history[year] = obs
	}
	fillGapYear(history)

	category := production.CategorizeWithCutoff(history, scheduleMatureCutoff)
	loc, ok := coordinates[name]
	if !ok {
		loc = defaultLocation
	}

	return Field{
		ID:                  Slug(name),
		Name:                name,
		Location:            loc,
		History:             history,
		PhaseOutYearOptions: append([]int(nil), phaseOutOptions[category]...),
		Category:            category,
	}
}

// fillGapYear estimates the first simulated year when the source data stops short of it.
func fillGapYear(h production.Record) {
	if _, ok := h[gapYear]; ok {
		return
	}
	if obs, ok := h[gapYear-2]; ok && (obs.Oil() != 0 || obs.Emissions() != 0) {
		h[gapYear] = scaleObservation(obs, 0.95*0.95)
		return
	}
	if obs, ok := h[gapYear-3]; ok && (obs.Oil() != 0 || obs.Emissions() != 0) {
		h[gapYear] = scaleObservation(obs, 0.90*0.90*0.90)
	}
}

func scaleObservation(o production.Observation, factor float64) production.Observation {
	var out production.Observation
	if o.Oil() != 0 {
		out.OilVolume = production.Float(o.Oil() * factor)
	}
	if o.Gas() != 0 {
		out.GasVolume = production.Float(o.Gas() * factor)
	}
	if o.Emissions() != 0 {
		out.CO2 = production.Float(o.Emissions() * factor)
	}
	return out
}

var (
	nonSlug    = regexp.MustCompile(`[^a-z0-9]`)
	dashes     = regexp.MustCompile(`-+`)
	edgeDashes = regexp.MustCompile(`^-|-$`)
)

// Slug turns a field name into its ID, e.g. "Johan Sverdrup" -> "johan-sverdrup".
func Slug(name string) string {
	s := nonSlug.ReplaceAllString(strings.ToLower(name), "-")
	s = dashes.ReplaceAllString(s, "-")
	return edgeDashes.ReplaceAllString(s, "")
}

// Fields returns a copy of all fields ordered by name.
func (d *Dataset) Fields() []Field {
	out := make([]Field, len(d.fields))
	copy(out, d.fields)
	return out
}

func (d *Dataset) Len() int { return len(d.fields) }

func (d *Dataset) Field(id string) (Field, error) {
	i, ok := d.byID[id]
	if !ok {
		return Field{}, fmt.Errorf("%w: %s", ErrFieldNotFound, id)
	}
	return d.fields[i], nil
}

// Histories returns field ID -> history for every field.
func (d *Dataset) Histories() map[string]production.Record {
	out := make(map[string]production.Record, len(d.fields))
	for _, f := range d.fields {
		out[f.ID] = f.History
	}
	return out
}

// Active returns fields that reported oil or emissions in any of the three
// years before currentYear.
func (d *Dataset) Active(currentYear int) []Field {
	out := make([]Field, 0, len(d.fields))
	for _, f := range d.fields {
		for y := currentYear - 3; y < currentYear; y++ {
			obs, ok := f.History[y]
			if ok && (obs.Oil() != 0 || obs.Emissions() != 0) {
				out = append(out, f)
				break
			}
		}
	}
	return out
}
