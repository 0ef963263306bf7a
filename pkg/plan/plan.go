// Package plan loads YAML job files describing a set of batch conversions.
package plan

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Plan is a conversion job file: global schema/delimiter settings plus the
// batches to convert.
type Plan struct {
	XSD       string  `yaml:"xsd"`
	Delimiter string  `yaml:"delimiter"`
	Batches   []Batch `yaml:"batches"`
}

// Batch is one input file to convert. Output defaults to the input path
// with an .xml extension; Delimiter overrides the plan-wide one.
type Batch struct {
	Input     string `yaml:"input"`
	Output    string `yaml:"output"`
	Delimiter string `yaml:"delimiter"`
}

// Load reads and validates a plan file.
func Load(path string) (*Plan, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read plan file: %w", err)
	}

	var p Plan
	if err := yaml.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("failed to parse yaml: %w", err)
	}

	if len(p.Batches) == 0 {
		return nil, fmt.Errorf("plan has no batches")
	}
	for i, b := range p.Batches {
		if b.Input == "" {
			return nil, fmt.Errorf("plan batch %d has no input file", i+1)
		}
	}
	return &p, nil
}

// File returns the batch input path with ~ expanded.
func (b *Batch) File() (string, error) {
	if strings.HasPrefix(b.Input, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		return filepath.Join(home, b.Input[2:]), nil
	}
	return b.Input, nil
}

// OutputFile returns the configured output path, defaulting to the input
// path with its extension swapped for .xml.
func (b *Batch) OutputFile() string {
	if b.Output != "" {
		return b.Output
	}
	return strings.TrimSuffix(b.Input, filepath.Ext(b.Input)) + ".xml"
}

// Print writes a human-readable summary of the plan to stdout.
func (p *Plan) Print() {
	if p.XSD != "" {
		fmt.Printf("schema: %s\n", p.XSD)
	}
	for i, b := range p.Batches {
		fmt.Printf("[%d] input=%s output=%s\n", i+1, b.Input, b.OutputFile())
	}
}
