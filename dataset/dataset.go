// Package dataset provides evaluation sample types and file readers.
package dataset

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"
)

// Sample is a single evaluation input and the answer it is graded against.
type Sample struct {
	ID       string            `json:"id,omitempty" yaml:"id,omitempty"`
	Input    string            `json:"input" yaml:"input"`
	Target   string            `json:"target" yaml:"target"`
	Metadata map[string]string `json:"metadata,omitempty" yaml:"metadata,omitempty"`
}

// Validate reports whether the sample can be scored.
func (s Sample) Validate() error {
	if s.Input == "" {
		return fmt.Errorf("input is required")
	}
	if s.Target == "" {
		return fmt.Errorf("target is required")
	}
	return nil
}

// Dataset is an ordered collection of samples.
type Dataset []Sample

// Validate checks every sample and reports the first invalid one.
func (d Dataset) Validate() error {
	for i, s := range d {
		if err := s.Validate(); err != nil {
			return fmt.Errorf("sample %d: %w", i, err)
		}
	}
	return nil
}

// ReadYAML decodes a dataset from r. The document must be a YAML sequence
// of samples.
func ReadYAML(r io.Reader) (Dataset, error) {
	var ds Dataset
	if err := yaml.NewDecoder(r).Decode(&ds); err != nil {
		return nil, fmt.Errorf("decoding dataset: %w", err)
	}
	if err := ds.Validate(); err != nil {
		return nil, err
	}
	return ds, nil
}

// ReadJSONL decodes a dataset from r, one JSON-encoded sample per line.
// Blank lines are skipped. A line that fails to decode aborts the read.
func ReadJSONL(r io.Reader) (Dataset, error) {
	var ds Dataset
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	line := 0
	for sc.Scan() {
		line++
		b := sc.Bytes()
		if len(b) == 0 {
			continue
		}
		var s Sample
		if err := json.Unmarshal(b, &s); err != nil {
			return nil, fmt.Errorf("decoding sample at line %d: %w", line, err)
		}
		ds = append(ds, s)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("reading dataset: %w", err)
	}
	if err := ds.Validate(); err != nil {
		return nil, err
	}
	return ds, nil
}
