// Package outfmt renders command results as JSON or YAML, optionally
// filtered through a jq expression.
package outfmt

import (
	"encoding/json"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"
)

// Format is an output encoding.
type Format int

const (
	// JSON is indented JSON, the default.
	JSON Format = iota
	// YAML is a YAML document.
	YAML
)

// Parse parses an output format name.
func Parse(s string) (Format, error) {
	switch s {
	case "json", "":
		return JSON, nil
	case "yaml", "yml":
		return YAML, nil
	default:
		return JSON, fmt.Errorf("invalid output format: %q (use 'json' or 'yaml')", s)
	}
}

// String returns the name of the format.
func (f Format) String() string {
	if f == YAML {
		return "yaml"
	}
	return "json"
}

// Printer writes values to Out.
type Printer struct {
	Out    io.Writer
	Format Format
	Query  string
}

// Print normalizes v to plain JSON data, applies the query and writes the
// result in the printer's format.
func (p *Printer) Print(v any) error {
	data, err := Normalize(v)
	if err != nil {
		return err
	}
	data, err = ApplyQuery(data, p.Query)
	if err != nil {
		return err
	}
	if p.Format == YAML {
		return WriteYAML(p.Out, data)
	}
	return WriteJSON(p.Out, data)
}

// Normalize round-trips v through encoding/json so custom marshalers,
// raw messages and json tags shape the output of every format alike.
func Normalize(v any) (any, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("encode output: %w", err)
	}
	var out any
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, fmt.Errorf("encode output: %w", err)
	}
	return out, nil
}

// WriteJSON writes v as pretty-printed JSON.
func WriteJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// WriteYAML writes v as a YAML document.
func WriteYAML(w io.Writer, v any) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return err
	}
	return enc.Close()
}
