// Package schema validates legacy-dialect manifests against JSON
// Schemas and publishes generated schemas for the typed document
// model.
package schema

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/routekit-dev/routekit/diag"
)

//go:embed sandbox_schema.json
var sandboxSchema []byte

// ExtraSchema is a caller-supplied schema applied after the embedded
// one. ErrorSuffix, when set, is appended to every violation the
// schema produces.
type ExtraSchema struct {
	Name        string
	Data        []byte
	ErrorSuffix string
}

type compiledSchema struct {
	schema *jsonschema.Schema
	suffix string
}

// Checker validates legacy manifest documents against the embedded
// schema plus any extra schemas. Immutable after construction and safe
// for concurrent use.
type Checker struct {
	schemas []compiledSchema
}

// CheckerOption configures a Checker.
type CheckerOption func(*checkerConfig)

type checkerConfig struct {
	extras []ExtraSchema
}

// WithExtraSchemas appends caller-supplied schemas to the check.
func WithExtraSchemas(extras ...ExtraSchema) CheckerOption {
	return func(c *checkerConfig) {
		c.extras = append(c.extras, extras...)
	}
}

// NewChecker compiles the embedded schema and any extras. A compile
// failure of the embedded schema is a programmer error surfaced as a
// plain error; extras fail with the offending schema's name.
func NewChecker(opts ...CheckerOption) (*Checker, error) {
	cfg := &checkerConfig{}
	for _, opt := range opts {
		opt(cfg)
	}

	checker := &Checker{}

	embedded, err := compile("sandbox_schema.json", sandboxSchema)
	if err != nil {
		return nil, fmt.Errorf("embedded schema: %w", err)
	}
	checker.schemas = append(checker.schemas, compiledSchema{schema: embedded})

	for _, extra := range cfg.extras {
		compiled, err := compile(extra.Name, extra.Data)
		if err != nil {
			return nil, fmt.Errorf("extra schema %s: %w", extra.Name, err)
		}
		checker.schemas = append(checker.schemas, compiledSchema{
			schema: compiled,
			suffix: extra.ErrorSuffix,
		})
	}
	return checker, nil
}

func compile(name string, data []byte) (*jsonschema.Schema, error) {
	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource(name, bytes.NewReader(data)); err != nil {
		return nil, err
	}
	return compiler.Compile(name)
}

// Check validates one legacy manifest document. Violations from every
// schema accumulate into a single list.
func (c *Checker) Check(data []byte) error {
	var document interface{}
	if err := json.Unmarshal(data, &document); err != nil {
		errs := diag.NewList()
		errs.Add(diag.NewParse(err.Error()))
		return errs
	}

	errs := diag.NewList()
	for _, compiled := range c.schemas {
		err := compiled.schema.Validate(document)
		if err == nil {
			continue
		}
		var validationErr *jsonschema.ValidationError
		if !errors.As(err, &validationErr) {
			errs.Add(diag.NewInternal(err.Error()))
			continue
		}
		for _, violation := range leafCauses(validationErr) {
			message := fmt.Sprintf("%s: %s", violation.InstanceLocation, violation.Message)
			if compiled.suffix != "" {
				message += " " + compiled.suffix
			}
			errs.Add(diag.NewParse(message))
		}
	}
	return errs.Err()
}

// leafCauses flattens a validation error tree to its most specific
// violations.
func leafCauses(err *jsonschema.ValidationError) []*jsonschema.ValidationError {
	if len(err.Causes) == 0 {
		return []*jsonschema.ValidationError{err}
	}
	var leaves []*jsonschema.ValidationError
	for _, cause := range err.Causes {
		leaves = append(leaves, leafCauses(cause)...)
	}
	return leaves
}
