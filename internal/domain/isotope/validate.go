package isotope

import (
	"fmt"
	"math"
	"strings"
)

// Validate checks every dataset against the table invariants and returns all
// violations found, in dataset and record order. An empty result means the
// input is safe to build a Table from.
//
// A constant that is zero, negative or not finite would flow straight into a
// dose calculation, so nothing here is treated as a warning.
func Validate(datasets []Dataset) []Violation {
	var out []Violation
	seen := make(map[string]bool, len(datasets))

	for _, ds := range datasets {
		key := strings.TrimSpace(ds.Key)
		switch {
		case key == "":
			out = append(out, Violation{Field: "key", Message: "dataset key is empty"})
		case seen[ds.Key]:
			out = append(out, Violation{Dataset: ds.Key, Field: "key", Message: "duplicate dataset key"})
		}
		seen[ds.Key] = true

		if len(ds.Records) == 0 {
			out = append(out, Violation{Dataset: ds.Key, Message: "dataset has no records"})
		}

		ids := make(map[string]int, len(ds.Records))
		for i, r := range ds.Records {
			if strings.TrimSpace(r.ID) == "" {
				out = append(out, Violation{
					Dataset: ds.Key,
					Isotope: fmt.Sprintf("#%d", i),
					Field:   "id",
					Message: "isotope id is empty",
				})
			} else if first, dup := ids[r.ID]; dup {
				out = append(out, Violation{
					Dataset: ds.Key,
					Isotope: r.ID,
					Field:   "id",
					Message: fmt.Sprintf("duplicate isotope id (first at #%d)", first),
				})
			} else {
				ids[r.ID] = i
			}
			out = append(out, validateRecord(ds.Key, r)...)
		}
	}
	return out
}

func validateRecord(dataset string, r Record) []Violation {
	var out []Violation
	add := func(field, format string, args ...interface{}) {
		out = append(out, Violation{
			Dataset: dataset,
			Isotope: r.ID,
			Field:   field,
			Message: fmt.Sprintf(format, args...),
		})
	}

	if !positive(r.HalfLife.Value) {
		add("halfLife.value", "half-life must be a positive finite number, got %v", r.HalfLife.Value)
	}
	if !r.HalfLife.Unit.Valid() {
		add("halfLife.unit", "unit %q is not one of minutes, hours, days, years", r.HalfLife.Unit)
	}
	if !positive(r.Gamma) {
		add("gamma", "gamma constant must be a positive finite number, got %v", r.Gamma)
	}

	if len(r.HVL) == 0 {
		add("hvl", "HVL map has no entries")
	}
	for _, m := range sortMaterials(r.HVL) {
		v := r.HVL[m]
		field := "hvl." + string(m)
		if strings.TrimSpace(string(m)) == "" {
			add("hvl", "material name is empty")
			continue
		}
		if !positive(v.MM) {
			add(field, "thickness must be a positive finite number of mm, got %v", v.MM)
		}
		if !v.Provenance.Valid() {
			add(field, "unknown provenance %q", v.Provenance)
		}
	}
	return out
}

func positive(f float64) bool {
	return f > 0 && !math.IsInf(f, 0) && !math.IsNaN(f)
}
