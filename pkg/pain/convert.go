package pain

import (
	"strings"

	"github.com/loteiro/loteiro/pkg/batch"
)

// SchemaChecker validates serialized XML against an external schema
// definition. Check returns the full list of violations (empty when the
// document conforms); the error is reserved for failures to run the check
// at all.
type SchemaChecker interface {
	Check(xml []byte) ([]string, error)
}

// SchemaViolationError carries every violation reported by the schema
// checker, never a truncated single message.
type SchemaViolationError struct {
	Violations []string
}

func (e *SchemaViolationError) Error() string {
	return "document does not validate against the schema:\n" + strings.Join(e.Violations, "\n")
}

// Converter runs the whole pipeline: raw file bytes to validated batch to
// serialized pain.001.001.09 text. A nil checker skips schema validation.
type Converter struct {
	builder   *Builder
	checker   SchemaChecker
	delimiter rune
}

// NewConverter returns a Converter with the given optional schema checker
// and record delimiter for delimited-text inputs.
func NewConverter(checker SchemaChecker, delimiter rune) *Converter {
	if delimiter == 0 {
		delimiter = ';'
	}
	return &Converter{builder: NewBuilder(), checker: checker, delimiter: delimiter}
}

// WithBuilder overrides the document builder, letting callers pin the id
// generator and clock.
func (c *Converter) WithBuilder(b *Builder) *Converter {
	c.builder = b
	return c
}

// ConvertFile converts one batch file (csv, txt, xls or xlsx, chosen by
// filename) into pain.001.001.09 XML text. Any failure aborts the whole
// conversion; partial output is never returned.
func (c *Converter) ConvertFile(data []byte, filename string) (string, error) {
	records, err := batch.ReadRecords(data, filename, c.delimiter)
	if err != nil {
		return "", err
	}
	return c.ConvertRecords(records)
}

// ConvertRecords converts raw records (header first) into XML text.
func (c *Converter) ConvertRecords(records [][]string) (string, error) {
	b, err := batch.Parse(records)
	if err != nil {
		return "", err
	}

	out, err := Serialize(c.builder.Build(b))
	if err != nil {
		return "", err
	}

	if c.checker != nil {
		violations, err := c.checker.Check([]byte(out))
		if err != nil {
			return "", err
		}
		if len(violations) > 0 {
			return "", &SchemaViolationError{Violations: violations}
		}
	}
	return out, nil
}
