// Package xsdval adapts the jacoelho/xsd validator to the narrow
// SchemaChecker interface used by the conversion pipeline.
package xsdval

import (
	"bytes"
	"context"
	"fmt"

	"github.com/jacoelho/xsd"
)

// Validator checks documents against one compiled XML Schema.
type Validator struct {
	engine *xsd.Engine
}

// New compiles a schema from its source bytes.
func New(schemaBytes []byte) (*Validator, error) {
	engine, err := xsd.Compile(context.Background(), xsd.Bytes("schema.xsd", schemaBytes))
	if err != nil {
		return nil, fmt.Errorf("failed to compile schema: %w", err)
	}
	return &Validator{engine: engine}, nil
}

// FromFile compiles the schema stored at path.
func FromFile(path string) (*Validator, error) {
	engine, err := xsd.Compile(context.Background(), xsd.File(path))
	if err != nil {
		return nil, fmt.Errorf("failed to compile schema %s: %w", path, err)
	}
	return &Validator{engine: engine}, nil
}

// Check validates xml against the schema and returns every violation found.
// A conforming document yields an empty list.
func (v *Validator) Check(xml []byte) ([]string, error) {
	err := v.engine.Validate(context.Background(), bytes.NewReader(xml))
	if err == nil {
		return nil, nil
	}
	return flatten(err), nil
}

// flatten expands joined validation errors into individual messages so the
// caller always sees the full list.
func flatten(err error) []string {
	if joined, ok := err.(interface{ Unwrap() []error }); ok {
		var out []string
		for _, e := range joined.Unwrap() {
			out = append(out, flatten(e)...)
		}
		return out
	}
	return []string{err.Error()}
}
