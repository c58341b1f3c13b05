// Package script decodes and validates the step files executed by the
// intensity CLI.
//
// A script is a YAML (or JSON) document listing store operations:
//
//	name: reference
//	steps:
//	  - {op: add, from: 10, to: 30, amount: 1}
//	  - {op: set, from: 25, to: 35, amount: 10}
//	  - {op: segments}
//
// Documents are checked against an embedded JSON schema before decoding.
// Operands stay loosely typed; the store converts them, so a fractional
// amount passes the schema and is rejected when the step runs.
package script

import (
	_ "embed"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/xeipuuv/gojsonschema"
	"gopkg.in/yaml.v3"
)

// Op names a store operation.
type Op string

// Supported operations.
const (
	OpAdd      Op = "add"
	OpSet      Op = "set"
	OpClear    Op = "clear"
	OpSegments Op = "segments"
)

// Sentinel errors.
var (
	ErrMalformedScript = errors.New("malformed script")
	ErrSchemaViolation = errors.New("script does not match schema")
)

//go:embed schema.json
var schemaJSON []byte

// Schema returns the embedded JSON schema scripts are validated against.
func Schema() []byte {
	return schemaJSON
}

// Script is an ordered list of store operations.
type Script struct {
	Name  string `yaml:"name,omitempty"  json:"name,omitempty"`
	Steps []Step `yaml:"steps"           json:"steps"`
}

// Step is one store operation. Operands are only meaningful for add and set.
type Step struct {
	Op     Op  `yaml:"op"               json:"op"`
	From   any `yaml:"from,omitempty"   json:"from,omitempty"`
	To     any `yaml:"to,omitempty"     json:"to,omitempty"`
	Amount any `yaml:"amount,omitempty" json:"amount,omitempty"`
}

// Violation is a single schema failure.
type Violation struct {
	Field       string
	Description string
}

func (v Violation) String() string {
	return v.Field + ": " + v.Description
}

// ValidationError carries every schema violation found in a document.
type ValidationError struct {
	Violations []Violation
}

func (e *ValidationError) Error() string {
	msgs := make([]string, 0, len(e.Violations))

	for _, v := range e.Violations {
		msgs = append(msgs, v.String())
	}

	return ErrSchemaViolation.Error() + ": " + strings.Join(msgs, "; ")
}

// Is makes errors.Is(err, ErrSchemaViolation) hold.
func (e *ValidationError) Is(target error) bool {
	return target == ErrSchemaViolation
}

// Check validates raw YAML or JSON against the schema. A nil error with no
// violations means the document is valid.
func Check(data []byte) ([]Violation, error) {
	var doc any

	err := yaml.Unmarshal(data, &doc)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformedScript, err)
	}

	result, err := gojsonschema.Validate(
		gojsonschema.NewBytesLoader(schemaJSON),
		gojsonschema.NewGoLoader(doc),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformedScript, err)
	}

	if result.Valid() {
		return nil, nil
	}

	violations := make([]Violation, 0, len(result.Errors()))

	for _, resErr := range result.Errors() {
		violations = append(violations, Violation{
			Field:       resErr.Field(),
			Description: resErr.Description(),
		})
	}

	return violations, nil
}

// Parse validates data against the schema and decodes it.
func Parse(data []byte) (*Script, error) {
	violations, err := Check(data)
	if err != nil {
		return nil, err
	}

	if len(violations) > 0 {
		return nil, &ValidationError{Violations: violations}
	}

	var s Script

	err = yaml.Unmarshal(data, &s)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformedScript, err)
	}

	return &s, nil
}

// Decode reads a whole document from r and parses it.
func Decode(r io.Reader) (*Script, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read script: %w", err)
	}

	return Parse(data)
}

// Reference returns the scenario the intensity store was first demonstrated with.
func Reference() *Script {
	return &Script{
		Name: "reference",
		Steps: []Step{
			{Op: OpAdd, From: 10, To: 30, Amount: 1},
			{Op: OpAdd, From: 20, To: 40, Amount: 1},
			{Op: OpAdd, From: 10, To: 40, Amount: -2},
			{Op: OpSet, From: 25, To: 35, Amount: 10},
			{Op: OpSegments},
		},
	}
}
