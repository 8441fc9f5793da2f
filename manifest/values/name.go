// Package values contains validated value objects shared by the manifest
// model and the validators: names, paths, references, and the small
// enumerations used by routing declarations.
package values

import (
	"encoding/json"
	"fmt"
)

// MaxNameLength is the byte-length bound for ordinary entity names
// (children, collections, environments, capabilities).
const MaxNameLength = 100

// MaxLongNameLength is the relaxed bound available to capability names
// when long names are enabled.
const MaxLongNameLength = 255

// Name represents a validated short identifier.
// Enforces non-empty, bounded, restricted-charset names.
type Name struct {
	value string
}

// NewName creates a Name with strict validation.
// A valid name must:
// - Be non-empty
// - Be at most MaxNameLength bytes
// - Contain only alphanumeric characters, '_', '.', and '-'
// - Start with an alphanumeric character or '_'
func NewName(s string) (Name, error) {
	return newName(s, MaxNameLength)
}

// NewLongName is NewName with the MaxLongNameLength bound.
// Callers are expected to gate it on the long-names feature.
func NewLongName(s string) (Name, error) {
	return newName(s, MaxLongNameLength)
}

func newName(s string, maxLen int) (Name, error) {
	if s == "" {
		return Name{}, fmt.Errorf("name cannot be empty")
	}
	if len(s) > maxLen {
		return Name{}, fmt.Errorf("name too long (max %d bytes)", maxLen)
	}
	for i, ch := range s {
		if i == 0 && !isNameStartChar(ch) {
			return Name{}, fmt.Errorf("invalid name %q: must start with an alphanumeric character or underscore", s)
		}
		if !isNameChar(ch) {
			return Name{}, fmt.Errorf("invalid name %q: must contain only alphanumeric characters, underscores, dots, and hyphens", s)
		}
	}
	return Name{value: s}, nil
}

func isNameStartChar(r rune) bool {
	return (r >= 'a' && r <= 'z') ||
		(r >= 'A' && r <= 'Z') ||
		(r >= '0' && r <= '9') ||
		r == '_'
}

func isNameChar(r rune) bool {
	return isNameStartChar(r) || r == '.' || r == '-'
}

// MustName creates a Name or panics.
func MustName(s string) Name {
	n, err := NewName(s)
	if err != nil {
		panic(err)
	}
	return n
}

// String returns the string representation.
func (n Name) String() string {
	return n.value
}

// IsEmpty returns true if this is the zero value.
func (n Name) IsEmpty() bool {
	return n.value == ""
}

// Equals checks if two names are equal.
func (n Name) Equals(other Name) bool {
	return n.value == other.value
}

// MarshalJSON implements json.Marshaler.
func (n Name) MarshalJSON() ([]byte, error) {
	return json.Marshal(n.value)
}

// UnmarshalJSON implements json.Unmarshaler.
func (n *Name) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("invalid name JSON: %w", err)
	}
	parsed, err := NewLongName(s)
	if err != nil {
		return err
	}
	*n = parsed
	return nil
}

// MarshalYAML implements yaml.Marshaler.
func (n Name) MarshalYAML() (interface{}, error) {
	return n.value, nil
}

// UnmarshalYAML implements yaml.Unmarshaler.
func (n *Name) UnmarshalYAML(unmarshal func(interface{}) error) error {
	var s string
	if err := unmarshal(&s); err != nil {
		return err
	}
	parsed, err := NewLongName(s)
	if err != nil {
		return err
	}
	*n = parsed
	return nil
}
