// Package diag defines the structured validation errors and the
// ordered, deduplicated list that accumulates them across a validation
// run.
//
// Validation is exhaustive, not fail-fast: every validator appends to
// one shared List, and a single validate call surfaces every
// independent violation. Rendering and ordering are stable across runs
// on identical input.
package diag

import (
	"fmt"
	"strings"
)

// Kind classifies a validation error.
type Kind string

const (
	ParseError               Kind = "parse_error"
	MissingField             Kind = "missing_field"
	InvalidField             Kind = "invalid_field"
	EmptyField               Kind = "empty_field"
	FieldTooLong             Kind = "field_too_long"
	DuplicateField           Kind = "duplicate_field"
	InvalidChild             Kind = "invalid_child"
	InvalidCollection        Kind = "invalid_collection"
	InvalidCapability        Kind = "invalid_capability"
	InvalidEnvironment       Kind = "invalid_environment"
	InvalidRunner            Kind = "invalid_runner"
	InvalidPathOverlap       Kind = "invalid_path_overlap"
	DependencyCycle          Kind = "dependency_cycle"
	RestrictedFeature        Kind = "restricted_feature"
	OfferTargetEqualsSource  Kind = "offer_target_equals_source"
	EventStreamEventNotFound Kind = "event_stream_event_not_found"
	EventStreamUnsupported   Kind = "event_stream_unsupported_mode"
	InternalError            Kind = "internal"
)

// Error is a single structured validation finding. Equality-comparable
// for test assertions.
type Error struct {
	Kind    Kind
	Decl    string // declaration type label, e.g. "OfferProtocolDecl"
	Field   string // offending field, when field-scoped
	Name    string // offending name/value, when name-scoped
	Message string // preformatted display text
}

// Error implements the error interface.
func (e Error) Error() string {
	return e.Message
}

// NewMissingField reports a required field absent from a declaration.
func NewMissingField(decl, field string) Error {
	return Error{
		Kind: MissingField, Decl: decl, Field: field,
		Message: fmt.Sprintf("%s missing %q", decl, field),
	}
}

// NewEmptyField reports a present-but-empty field.
func NewEmptyField(decl, field string) Error {
	return Error{
		Kind: EmptyField, Decl: decl, Field: field,
		Message: fmt.Sprintf("%s has empty %q", decl, field),
	}
}

// NewInvalidField reports a field whose value fails its validity rule.
func NewInvalidField(decl, field, detail string) Error {
	return Error{
		Kind: InvalidField, Decl: decl, Field: field,
		Message: fmt.Sprintf("%s has invalid %q: %s", decl, field, detail),
	}
}

// NewFieldTooLong reports a field exceeding its length bound.
func NewFieldTooLong(decl, field, value string) Error {
	return Error{
		Kind: FieldTooLong, Decl: decl, Field: field, Name: value,
		Message: fmt.Sprintf("%s field %q too long", decl, field),
	}
}

// NewDuplicateField reports two declarations colliding on a value that
// must be unique in their scope.
func NewDuplicateField(decl, field, value string) Error {
	return Error{
		Kind: DuplicateField, Decl: decl, Field: field, Name: value,
		Message: fmt.Sprintf("%s has duplicate %q: %q", decl, field, value),
	}
}

// NewInvalidChild reports a reference to an undeclared child.
func NewInvalidChild(decl, field, name string) Error {
	return Error{
		Kind: InvalidChild, Decl: decl, Field: field, Name: name,
		Message: fmt.Sprintf("%s %q references child %q which does not exist", decl, field, name),
	}
}

// NewInvalidCollection reports a reference to an undeclared collection.
func NewInvalidCollection(decl, field, name string) Error {
	return Error{
		Kind: InvalidCollection, Decl: decl, Field: field, Name: name,
		Message: fmt.Sprintf("%s %q references collection %q which does not exist", decl, field, name),
	}
}

// NewInvalidCapability reports a reference to an undeclared capability.
func NewInvalidCapability(decl, field, name string) Error {
	return Error{
		Kind: InvalidCapability, Decl: decl, Field: field, Name: name,
		Message: fmt.Sprintf("%s %q references capability %q which does not exist", decl, field, name),
	}
}

// NewInvalidEnvironment reports a reference to an undeclared
// environment.
func NewInvalidEnvironment(decl, field, name string) Error {
	return Error{
		Kind: InvalidEnvironment, Decl: decl, Field: field, Name: name,
		Message: fmt.Sprintf("%s %q references environment %q which does not exist", decl, field, name),
	}
}

// NewInvalidRunner reports a reference to an undeclared runner.
func NewInvalidRunner(decl, field, name string) Error {
	return Error{
		Kind: InvalidRunner, Decl: decl, Field: field, Name: name,
		Message: fmt.Sprintf("%s %q references runner %q which does not exist", decl, field, name),
	}
}

// NewInvalidPathOverlap reports two path-bearing declarations whose
// target paths conflict.
func NewInvalidPathOverlap(decl, path, otherDecl, otherPath string) Error {
	return Error{
		Kind: InvalidPathOverlap, Decl: decl, Name: path,
		Message: fmt.Sprintf("%s target path %q conflicts with %s target path %q", decl, path, otherDecl, otherPath),
	}
}

// NewDependencyCycle reports that the strong-dependency graph is not
// acyclic. rendered is the deterministic cycle-set rendering.
func NewDependencyCycle(rendered string) Error {
	return Error{
		Kind: DependencyCycle, Name: rendered,
		Message: fmt.Sprintf("dependency cycle(s) exist: %s", rendered),
	}
}

// NewRestrictedFeature reports use of feature-gated syntax without the
// feature enabled.
func NewRestrictedFeature(feature string) Error {
	return Error{
		Kind: RestrictedFeature, Name: feature,
		Message: fmt.Sprintf("feature %q is not enabled for this manifest", feature),
	}
}

// NewOfferTargetEqualsSource reports an offer routed back to its own
// source child.
func NewOfferTargetEqualsSource(decl, name string) Error {
	return Error{
		Kind: OfferTargetEqualsSource, Decl: decl, Name: name,
		Message: fmt.Sprintf("%s target %q is same as source", decl, name),
	}
}

// NewEventStreamEventNotFound reports a subscription to an event not
// introduced by a use event declaration.
func NewEventStreamEventNotFound(decl, field, name string) Error {
	return Error{
		Kind: EventStreamEventNotFound, Decl: decl, Field: field, Name: name,
		Message: fmt.Sprintf("%s %q: event %q is not used in this manifest", decl, field, name),
	}
}

// NewEventStreamUnsupportedMode reports an unsupported subscription
// mode.
func NewEventStreamUnsupportedMode(decl, mode string) Error {
	return Error{
		Kind: EventStreamUnsupported, Decl: decl, Name: mode,
		Message: fmt.Sprintf("%s has unsupported mode %q", decl, mode),
	}
}

// NewInternal reports a validator-internal invariant violation. Never
// expected in normal operation.
func NewInternal(detail string) Error {
	return Error{
		Kind:    InternalError,
		Message: fmt.Sprintf("internal error: %s", detail),
	}
}

// NewParse reports a malformed-input error from the deserialization
// boundary.
func NewParse(detail string) Error {
	return Error{
		Kind:    ParseError,
		Message: fmt.Sprintf("parse error: %s", detail),
	}
}

// List is an ordered accumulator of validation errors. Adding an error
// equal to one already present is a no-op, so the list stays
// deduplicated while preserving first-seen order.
type List struct {
	errs []Error
	seen map[Error]bool
}

// NewList creates an empty error list.
func NewList() *List {
	return &List{seen: make(map[Error]bool)}
}

// Add appends an error unless an equal one is already present.
func (l *List) Add(err Error) {
	if l.seen == nil {
		l.seen = make(map[Error]bool)
	}
	if l.seen[err] {
		return
	}
	l.seen[err] = true
	l.errs = append(l.errs, err)
}

// AddAll appends every error from other in order.
func (l *List) AddAll(other *List) {
	for _, err := range other.errs {
		l.Add(err)
	}
}

// Len returns the number of accumulated errors.
func (l *List) Len() int {
	return len(l.errs)
}

// IsEmpty returns true when no error has been accumulated.
func (l *List) IsEmpty() bool {
	return len(l.errs) == 0
}

// Errors returns the accumulated errors in first-seen order. The
// returned slice is shared; callers must not mutate it.
func (l *List) Errors() []Error {
	return l.errs
}

// Err returns nil when the list is empty and the list itself otherwise.
func (l *List) Err() error {
	if l.IsEmpty() {
		return nil
	}
	return l
}

// Error implements the error interface with one finding per line.
func (l *List) Error() string {
	msgs := make([]string, len(l.errs))
	for i, err := range l.errs {
		msgs[i] = err.Message
	}
	return strings.Join(msgs, "\n")
}
