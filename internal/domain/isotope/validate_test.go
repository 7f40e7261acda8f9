package isotope

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func goodRecord(id string) Record {
	return Record{
		ID:       id,
		HalfLife: HalfLife{Value: 1, Unit: Days},
		Gamma:    1,
		HVL:      map[Material]HVL{Lead: {MM: 1}},
	}
}

// fields collects "isotope.field" for compact assertions.
func fields(vs []Violation) []string {
	out := make([]string, 0, len(vs))
	for _, v := range vs {
		out = append(out, v.Isotope+"."+v.Field)
	}
	return out
}

func TestValidate_RecordInvariants(t *testing.T) {
	bad := []Record{
		goodRecord("ok"),
		{ID: "zero-hl", HalfLife: HalfLife{0, Days}, Gamma: 1, HVL: map[Material]HVL{Lead: {MM: 1}}},
		{ID: "nan-hl", HalfLife: HalfLife{math.NaN(), Days}, Gamma: 1, HVL: map[Material]HVL{Lead: {MM: 1}}},
		{ID: "bad-unit", HalfLife: HalfLife{1, "weeks"}, Gamma: 1, HVL: map[Material]HVL{Lead: {MM: 1}}},
		{ID: "neg-gamma", HalfLife: HalfLife{1, Days}, Gamma: -2, HVL: map[Material]HVL{Lead: {MM: 1}}},
		{ID: "inf-gamma", HalfLife: HalfLife{1, Days}, Gamma: math.Inf(1), HVL: map[Material]HVL{Lead: {MM: 1}}},
		{ID: "no-hvl", HalfLife: HalfLife{1, Days}, Gamma: 1},
		{ID: "zero-hvl", HalfLife: HalfLife{1, Days}, Gamma: 1, HVL: map[Material]HVL{Steel: {MM: 0}}},
		{ID: "bad-prov", HalfLife: HalfLife{1, Days}, Gamma: 1, HVL: map[Material]HVL{Lead: {MM: 1, Provenance: "guess"}}},
		{ID: "blank-material", HalfLife: HalfLife{1, Days}, Gamma: 1, HVL: map[Material]HVL{"": {MM: 1}}},
	}

	vs := Validate([]Dataset{{Key: "T", Records: bad}})
	assert.ElementsMatch(t, []string{
		"zero-hl.halfLife.value",
		"nan-hl.halfLife.value",
		"bad-unit.halfLife.unit",
		"neg-gamma.gamma",
		"inf-gamma.gamma",
		"no-hvl.hvl",
		"zero-hvl.hvl.Steel",
		"bad-prov.hvl.Lead",
		"blank-material.hvl",
	}, fields(vs))
	for _, v := range vs {
		assert.Equal(t, "T", v.Dataset)
		assert.NotEmpty(t, v.Message)
	}
}

func TestValidate_IDs(t *testing.T) {
	vs := Validate([]Dataset{{Key: "T", Records: []Record{
		goodRecord("Co-60"),
		goodRecord(""),
		goodRecord("Co-60"),
	}}})

	require.Len(t, vs, 2)
	assert.Equal(t, "#1", vs[0].Isotope)
	assert.Equal(t, "id", vs[0].Field)
	assert.Equal(t, "Co-60", vs[1].Isotope)
	assert.Contains(t, vs[1].Message, "duplicate")
}

func TestValidate_SameIDAcrossDatasetsIsFine(t *testing.T) {
	vs := Validate([]Dataset{
		{Key: "A", Records: []Record{goodRecord("Co-60")}},
		{Key: "B", Records: []Record{goodRecord("Co-60")}},
	})
	assert.Empty(t, vs)
}

func TestValidate_DatasetKeys(t *testing.T) {
	vs := Validate([]Dataset{
		{Key: "", Records: []Record{goodRecord("x")}},
		{Key: "A", Records: []Record{goodRecord("x")}},
		{Key: "A", Records: []Record{goodRecord("y")}},
		{Key: "Empty"},
	})

	require.Len(t, vs, 3)
	assert.Equal(t, "key", vs[0].Field)
	assert.Equal(t, "A", vs[1].Dataset)
	assert.Contains(t, vs[1].Message, "duplicate")
	assert.Equal(t, "Empty", vs[2].Dataset)
}

func TestValidationError_Message(t *testing.T) {
	err := &ValidationError{Violations: []Violation{
		{Dataset: "QSA", Isotope: "Co-60", Field: "gamma", Message: "bad"},
		{Message: "dataset key is empty"},
	}}
	msg := err.Error()
	assert.Contains(t, msg, "2 violation(s)")
	assert.Contains(t, msg, "QSA/Co-60.gamma: bad")
	assert.Contains(t, msg, "<unnamed>: dataset key is empty")
	assert.ErrorIs(t, err, ErrValidation)
}
