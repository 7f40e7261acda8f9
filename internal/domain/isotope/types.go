// Package isotope holds the radionuclide reference table: half-life, gamma
// constant and half-value layer (HVL) thickness per shielding material, grouped
// by the reference standard they were taken from.
//
// A Table is built once, validated, and never mutated afterwards. Every
// accessor returns copies, so a *Table can be shared by any number of
// goroutines without locking. Callers that need to pick up a revised data set
// build a new Table and swap the pointer (see internal/app.Catalog).
//
// The table carries constants only. Decay, attenuation and dose-rate math
// belong to the consuming application.
package isotope

import (
	"fmt"
	"sort"
	"strings"
)

// Unit is the time unit of a half-life value.
type Unit string

const (
	Minutes Unit = "minutes"
	Hours   Unit = "hours"
	Days    Unit = "days"
	Years   Unit = "years"
)

// unitAliases maps accepted spellings to their canonical unit. The short
// forms are the ones used by the source data sheets.
var unitAliases = map[string]Unit{
	"m":       Minutes,
	"min":     Minutes,
	"minute":  Minutes,
	"minutes": Minutes,
	"h":       Hours,
	"hour":    Hours,
	"hours":   Hours,
	"d":       Days,
	"day":     Days,
	"days":    Days,
	"y":       Years,
	"year":    Years,
	"years":   Years,
}

// ParseUnit resolves a long or short unit tag ("d", "days") to a Unit.
func ParseUnit(s string) (Unit, error) {
	if u, ok := unitAliases[strings.ToLower(strings.TrimSpace(s))]; ok {
		return u, nil
	}
	return "", fmt.Errorf("unknown half-life unit %q", s)
}

// Valid reports whether u is one of the four canonical units.
func (u Unit) Valid() bool {
	switch u {
	case Minutes, Hours, Days, Years:
		return true
	}
	return false
}

// Short returns the single-letter tag ("m", "h", "d", "y").
func (u Unit) Short() string {
	if !u.Valid() {
		return string(u)
	}
	return string(u)[:1]
}

// HalfLife is a positive duration expressed in the unit the source standard uses.
type HalfLife struct {
	Value float64
	Unit  Unit
}

func (h HalfLife) String() string {
	return fmt.Sprintf("%g %s", h.Value, h.Unit.Short())
}

// GammaUnit is the fixed unit of every gamma constant in the table.
const GammaUnit = "mSv·m²/h·Ci"

// Material names a shielding material. The set is open; datasets may carry
// materials beyond the ones declared here.
type Material string

const (
	Lead     Material = "Lead"
	Steel    Material = "Steel"
	Concrete Material = "Concrete"
	Tungsten Material = "Tungsten"
	DU       Material = "DU" // depleted uranium
)

// canonicalMaterials is the display and export order for known materials.
// Unknown materials sort after these, alphabetically.
var canonicalMaterials = []Material{Lead, Steel, Concrete, Tungsten, DU}

// Provenance records how an HVL value was obtained.
type Provenance string

const (
	// FromTable is a value read directly off the standard's published table.
	FromTable Provenance = "table"
	// Approximated is a value the source did not list directly (derived from
	// density or neighbouring entries). Kept as given, never silently corrected.
	Approximated Provenance = "approximated"
)

// Valid reports whether p is a known provenance. The empty value counts as
// FromTable.
func (p Provenance) Valid() bool {
	switch p {
	case "", FromTable, Approximated:
		return true
	}
	return false
}

// HVL is a half-value layer thickness in millimetres.
type HVL struct {
	MM         float64
	Provenance Provenance
}

// Record holds the physical constants of one nuclide within one dataset.
// HVL may be partial: a missing material means the standard gives no value,
// not a zero thickness.
type Record struct {
	ID       string // element symbol + mass number, e.g. "Co-60"
	HalfLife HalfLife
	Gamma    float64 // GammaUnit
	HVL      map[Material]HVL
}

// Materials returns the materials with an HVL value, in canonical order.
func (r Record) Materials() []Material {
	return sortMaterials(r.HVL)
}

func (r Record) clone() Record {
	c := r
	c.HVL = make(map[Material]HVL, len(r.HVL))
	for m, v := range r.HVL {
		c.HVL[m] = v
	}
	return c
}

// Dataset is one reference standard's set of records, in source order.
type Dataset struct {
	Key     string
	Records []Record
}

func (d Dataset) clone() Dataset {
	c := Dataset{Key: d.Key, Records: make([]Record, len(d.Records))}
	for i, r := range d.Records {
		c.Records[i] = r.clone()
	}
	return c
}

func sortMaterials(hvl map[Material]HVL) []Material {
	out := make([]Material, 0, len(hvl))
	for _, m := range canonicalMaterials {
		if _, ok := hvl[m]; ok {
			out = append(out, m)
		}
	}
	var extra []Material
	for m := range hvl {
		if !isCanonical(m) {
			extra = append(extra, m)
		}
	}
	sort.Slice(extra, func(i, j int) bool { return extra[i] < extra[j] })
	return append(out, extra...)
}

func isCanonical(m Material) bool {
	for _, c := range canonicalMaterials {
		if c == m {
			return true
		}
	}
	return false
}
