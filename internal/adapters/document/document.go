// Package document reads and writes the isotope interchange document: a
// JSON or YAML mapping whose top-level keys are dataset names, each holding an
// ordered list of records. The shape mirrors isotope.Dataset exactly, so no
// transformation happens beyond unit parsing.
//
//	QSA:
//	  - id: Co-60
//	    halfLife: {value: 5.27, unit: years}
//	    gamma: 13.0
//	    hvl: {Lead: 12.7, DU: {value: 6.8, provenance: table}}
//
// Decoding never validates values; a zero gamma decodes as zero and is left
// for isotope.New to reject with the record id attached.
package document

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/corey/hobis/internal/domain/isotope"
	"gopkg.in/yaml.v3"
)

// ErrMalformed wraps every structural decode failure.
var ErrMalformed = errors.New("malformed isotope document")

// Format selects the document encoding.
type Format string

const (
	FormatAuto Format = ""
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// ParseFormat accepts "json", "yaml", "yml" or "" (auto).
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "auto":
		return FormatAuto, nil
	case "json":
		return FormatJSON, nil
	case "yaml", "yml":
		return FormatYAML, nil
	}
	return "", fmt.Errorf("unknown document format %q (want json or yaml)", s)
}

// FormatFromPath infers the format from a file extension. Unknown extensions
// return FormatAuto.
func FormatFromPath(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON
	case ".yaml", ".yml":
		return FormatYAML
	}
	return FormatAuto
}

// Decode reads a whole document. With FormatAuto, input whose first
// non-blank byte is '{' is read as JSON, anything else as YAML.
func Decode(r io.Reader, format Format) ([]isotope.Dataset, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read document: %w", err)
	}
	if format == FormatAuto {
		format = sniff(data)
	}

	var ds []isotope.Dataset
	switch format {
	case FormatJSON:
		ds, err = decodeJSON(data)
	case FormatYAML:
		ds, err = decodeYAML(data)
	default:
		return nil, fmt.Errorf("unsupported format %q", format)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	return ds, nil
}

func sniff(data []byte) Format {
	if t := bytes.TrimSpace(data); len(t) > 0 && t[0] == '{' {
		return FormatJSON
	}
	return FormatYAML
}

func decodeJSON(data []byte) ([]isotope.Dataset, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()

	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return nil, fmt.Errorf("top level must be an object of dataset lists")
	}

	var out []isotope.Dataset
	for dec.More() {
		kt, err := dec.Token()
		if err != nil {
			return nil, err
		}
		key := kt.(string)

		var recs []wireRecord
		if err := dec.Decode(&recs); err != nil {
			return nil, fmt.Errorf("dataset %q (offset %d): %v", key, dec.InputOffset(), err)
		}
		ds, err := toDataset(key, recs)
		if err != nil {
			return nil, err
		}
		out = append(out, ds)
	}
	if _, err := dec.Token(); err != nil {
		return nil, err
	}
	if _, err := dec.Token(); err != io.EOF {
		return nil, fmt.Errorf("trailing data after document (offset %d)", dec.InputOffset())
	}
	return out, nil
}

func decodeYAML(data []byte) ([]isotope.Dataset, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, err
	}
	if doc.Kind != yaml.DocumentNode || len(doc.Content) == 0 {
		return nil, fmt.Errorf("empty document")
	}
	root := doc.Content[0]
	if root.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("line %d: top level must be a mapping of dataset lists", root.Line)
	}

	// Walk the mapping node directly: decoding into a Go map would lose
	// dataset order.
	var out []isotope.Dataset
	for i := 0; i+1 < len(root.Content); i += 2 {
		k, v := root.Content[i], root.Content[i+1]
		if v.Kind != yaml.SequenceNode && v.ShortTag() != "!!null" {
			return nil, fmt.Errorf("line %d: dataset %q must be a list of records", v.Line, k.Value)
		}
		var recs []wireRecord
		if err := v.Decode(&recs); err != nil {
			return nil, fmt.Errorf("dataset %q: %v", k.Value, err)
		}
		ds, err := toDataset(k.Value, recs)
		if err != nil {
			return nil, err
		}
		out = append(out, ds)
	}
	return out, nil
}

func toDataset(key string, recs []wireRecord) (isotope.Dataset, error) {
	ds := isotope.Dataset{Key: key, Records: make([]isotope.Record, 0, len(recs))}
	for _, w := range recs {
		r, err := toRecord(w)
		if err != nil {
			return isotope.Dataset{}, fmt.Errorf("dataset %q: %v", key, err)
		}
		ds.Records = append(ds.Records, r)
	}
	return ds, nil
}

// Encode writes datasets in the given format, keeping dataset, record and
// canonical material order. FormatAuto encodes JSON.
func Encode(w io.Writer, datasets []isotope.Dataset, format Format) error {
	switch format {
	case FormatAuto, FormatJSON:
		return encodeJSON(w, datasets)
	case FormatYAML:
		return encodeYAML(w, datasets)
	}
	return fmt.Errorf("unsupported format %q", format)
}

func encodeJSON(w io.Writer, datasets []isotope.Dataset) error {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, ds := range datasets {
		if i > 0 {
			buf.WriteByte(',')
		}
		k, err := json.Marshal(ds.Key)
		if err != nil {
			return err
		}
		recs, err := json.Marshal(wireRecords(ds))
		if err != nil {
			return fmt.Errorf("marshal dataset %q: %w", ds.Key, err)
		}
		buf.Write(k)
		buf.WriteByte(':')
		buf.Write(recs)
	}
	buf.WriteByte('}')

	var out bytes.Buffer
	if err := json.Indent(&out, buf.Bytes(), "", "  "); err != nil {
		return err
	}
	out.WriteByte('\n')
	_, err := out.WriteTo(w)
	return err
}

func encodeYAML(w io.Writer, datasets []isotope.Dataset) error {
	root := &yaml.Node{Kind: yaml.MappingNode}
	for _, ds := range datasets {
		var recs yaml.Node
		if err := recs.Encode(wireRecords(ds)); err != nil {
			return fmt.Errorf("marshal dataset %q: %w", ds.Key, err)
		}
		root.Content = append(root.Content,
			&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: ds.Key},
			&recs,
		)
	}

	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(&yaml.Node{Kind: yaml.DocumentNode, Content: []*yaml.Node{root}}); err != nil {
		return err
	}
	return enc.Close()
}

func wireRecords(ds isotope.Dataset) []wireRecord {
	out := make([]wireRecord, 0, len(ds.Records))
	for _, r := range ds.Records {
		out = append(out, fromRecord(r))
	}
	return out
}
