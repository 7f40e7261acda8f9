package document

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/corey/hobis/internal/domain/isotope"
	"gopkg.in/yaml.v3"
)

// wireRecord mirrors one entry of a dataset list:
//
//	{id, halfLife: {value, unit}, gamma, hvl: {material: value, ...}}
type wireRecord struct {
	ID       string       `json:"id" yaml:"id"`
	HalfLife wireHalfLife `json:"halfLife" yaml:"halfLife"`
	Gamma    float64      `json:"gamma" yaml:"gamma"`
	HVL      hvlList      `json:"hvl" yaml:"hvl"`
}

type wireHalfLife struct {
	Value float64 `json:"value" yaml:"value"`
	Unit  string  `json:"unit" yaml:"unit"`
}

// hvlList keeps materials in document order so a decode/encode round trip
// does not reshuffle them.
type hvlList []hvlEntry

type hvlEntry struct {
	Material string
	hvlValue
}

// hvlValue is either a bare number (read off the standard's table) or
// {value, provenance}.
type hvlValue struct {
	Value      float64 `json:"value" yaml:"value"`
	Provenance string  `json:"provenance,omitempty" yaml:"provenance,omitempty"`
}

func (r *wireRecord) UnmarshalYAML(n *yaml.Node) error {
	if err := checkKeys(n, "id", "halfLife", "gamma", "hvl"); err != nil {
		return err
	}
	type plain wireRecord
	return n.Decode((*plain)(r))
}

func (h *wireHalfLife) UnmarshalYAML(n *yaml.Node) error {
	if err := checkKeys(n, "value", "unit"); err != nil {
		return err
	}
	type plain wireHalfLife
	return n.Decode((*plain)(h))
}

func (h *hvlList) UnmarshalYAML(n *yaml.Node) error {
	if n.ShortTag() == "!!null" {
		*h = nil
		return nil
	}
	if n.Kind != yaml.MappingNode {
		return fmt.Errorf("line %d: hvl must be a mapping of material to thickness", n.Line)
	}
	out := make(hvlList, 0, len(n.Content)/2)
	for i := 0; i+1 < len(n.Content); i += 2 {
		var e hvlEntry
		if err := n.Content[i].Decode(&e.Material); err != nil {
			return err
		}
		if err := n.Content[i+1].Decode(&e.hvlValue); err != nil {
			return err
		}
		out = append(out, e)
	}
	*h = out
	return nil
}

func (v *hvlValue) UnmarshalYAML(n *yaml.Node) error {
	if n.Kind == yaml.ScalarNode {
		v.Provenance = ""
		return n.Decode(&v.Value)
	}
	if err := checkKeys(n, "value", "provenance"); err != nil {
		return err
	}
	type plain hvlValue
	return n.Decode((*plain)(v))
}

func (h *hvlList) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if tok == nil {
		*h = nil
		return nil
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return fmt.Errorf("hvl must be an object of material to thickness")
	}
	var out hvlList
	for dec.More() {
		kt, err := dec.Token()
		if err != nil {
			return err
		}
		e := hvlEntry{Material: kt.(string)}
		if err := dec.Decode(&e.hvlValue); err != nil {
			return fmt.Errorf("hvl %q: %w", e.Material, err)
		}
		out = append(out, e)
	}
	if _, err := dec.Token(); err != nil {
		return err
	}
	*h = out
	return nil
}

func (v *hvlValue) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || data[0] != '{' {
		v.Provenance = ""
		return json.Unmarshal(data, &v.Value)
	}
	type plain hvlValue
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	return dec.Decode((*plain)(v))
}

func (h hvlList) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, e := range h {
		if i > 0 {
			buf.WriteByte(',')
		}
		k, err := json.Marshal(e.Material)
		if err != nil {
			return nil, err
		}
		buf.Write(k)
		buf.WriteByte(':')
		v, err := json.Marshal(e.value())
		if err != nil {
			return nil, err
		}
		buf.Write(v)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

func (h hvlList) MarshalYAML() (interface{}, error) {
	n := &yaml.Node{Kind: yaml.MappingNode}
	for _, e := range h {
		var v yaml.Node
		if err := v.Encode(e.value()); err != nil {
			return nil, err
		}
		n.Content = append(n.Content,
			&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: e.Material},
			&v,
		)
	}
	return n, nil
}

// value is the encoded form: a bare number unless the provenance needs saying.
func (v hvlValue) value() interface{} {
	if v.Provenance == "" || v.Provenance == string(isotope.FromTable) {
		return v.Value
	}
	return v
}

// checkKeys rejects mapping keys outside allowed. yaml.v3 drops KnownFields
// when decoding through a Node, so the check is done by hand.
func checkKeys(n *yaml.Node, allowed ...string) error {
	if n.Kind != yaml.MappingNode {
		return fmt.Errorf("line %d: expected a mapping", n.Line)
	}
	for i := 0; i+1 < len(n.Content); i += 2 {
		k := n.Content[i]
		ok := false
		for _, a := range allowed {
			if k.Value == a {
				ok = true
				break
			}
		}
		if !ok {
			return fmt.Errorf("line %d: unknown field %q", k.Line, k.Value)
		}
	}
	return nil
}

func toRecord(w wireRecord) (isotope.Record, error) {
	unit, err := isotope.ParseUnit(w.HalfLife.Unit)
	if err != nil {
		// Keep the raw tag; validation reports it with the record id.
		unit = isotope.Unit(w.HalfLife.Unit)
	}
	r := isotope.Record{
		ID:       w.ID,
		HalfLife: isotope.HalfLife{Value: w.HalfLife.Value, Unit: unit},
		Gamma:    w.Gamma,
		HVL:      make(map[isotope.Material]isotope.HVL, len(w.HVL)),
	}
	for _, e := range w.HVL {
		m := isotope.Material(e.Material)
		if _, dup := r.HVL[m]; dup {
			return isotope.Record{}, fmt.Errorf("%s: duplicate hvl material %q", w.ID, e.Material)
		}
		r.HVL[m] = isotope.HVL{MM: e.Value, Provenance: isotope.Provenance(e.Provenance)}
	}
	return r, nil
}

func fromRecord(r isotope.Record) wireRecord {
	w := wireRecord{
		ID:       r.ID,
		HalfLife: wireHalfLife{Value: r.HalfLife.Value, Unit: string(r.HalfLife.Unit)},
		Gamma:    r.Gamma,
		HVL:      make(hvlList, 0, len(r.HVL)),
	}
	for _, m := range r.Materials() {
		v := r.HVL[m]
		w.HVL = append(w.HVL, hvlEntry{
			Material: string(m),
			hvlValue: hvlValue{Value: v.MM, Provenance: string(v.Provenance)},
		})
	}
	return w
}
