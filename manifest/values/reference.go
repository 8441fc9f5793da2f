package values

import (
	"encoding/json"
	"fmt"
	"strings"
)

// RefKind discriminates the variants of a Reference.
type RefKind int

const (
	// RefInvalid is the zero value; no valid Reference carries it.
	RefInvalid RefKind = iota
	// RefParent refers to the parent component.
	RefParent
	// RefSelf refers to this component.
	RefSelf
	// RefFramework refers to the component framework.
	RefFramework
	// RefDebug refers to the debug capability set of the environment.
	RefDebug
	// RefVoid is the intentionally-absent source.
	RefVoid
	// RefNamed refers to a named entity; whether that is a child,
	// collection, capability, or storage is disambiguated by context.
	RefNamed
	// RefChild refers to a child, optionally within a collection.
	RefChild
	// RefAll is the "all" offer-target sentinel. It is only legal as
	// the target of an offer.
	RefAll
)

// Reference identifies the source or target of a routing declaration.
type Reference struct {
	kind       RefKind
	name       Name
	collection Name
}

// ParentRef returns the parent reference.
func ParentRef() Reference { return Reference{kind: RefParent} }

// SelfRef returns the self reference.
func SelfRef() Reference { return Reference{kind: RefSelf} }

// FrameworkRef returns the framework reference.
func FrameworkRef() Reference { return Reference{kind: RefFramework} }

// DebugRef returns the debug reference.
func DebugRef() Reference { return Reference{kind: RefDebug} }

// VoidRef returns the void reference.
func VoidRef() Reference { return Reference{kind: RefVoid} }

// AllRef returns the "all" offer-target sentinel.
func AllRef() Reference { return Reference{kind: RefAll} }

// NamedRef returns a reference to a named entity.
func NamedRef(name Name) Reference { return Reference{kind: RefNamed, name: name} }

// ChildRef returns a reference to a child, optionally scoped to a
// collection (zero-value collection means none).
func ChildRef(name, collection Name) Reference {
	return Reference{kind: RefChild, name: name, collection: collection}
}

// ParseReference parses the tagged string encoding of a reference:
// "parent", "self", "framework", "debug", "void", "#name", or
// "#collection:name".
func ParseReference(s string) (Reference, error) {
	switch s {
	case "parent":
		return ParentRef(), nil
	case "self":
		return SelfRef(), nil
	case "framework":
		return FrameworkRef(), nil
	case "debug":
		return DebugRef(), nil
	case "void":
		return VoidRef(), nil
	case "all":
		return AllRef(), nil
	}
	if rest, ok := strings.CutPrefix(s, "#"); ok {
		if coll, child, found := strings.Cut(rest, ":"); found {
			collName, err := NewName(coll)
			if err != nil {
				return Reference{}, fmt.Errorf("invalid reference %q: %w", s, err)
			}
			childName, err := NewName(child)
			if err != nil {
				return Reference{}, fmt.Errorf("invalid reference %q: %w", s, err)
			}
			return ChildRef(childName, collName), nil
		}
		name, err := NewLongName(rest)
		if err != nil {
			return Reference{}, fmt.Errorf("invalid reference %q: %w", s, err)
		}
		return NamedRef(name), nil
	}
	return Reference{}, fmt.Errorf(
		"invalid reference %q: must be one of \"parent\", \"self\", \"framework\", \"debug\", \"void\", or \"#<name>\"", s)
}

// MustReference parses a reference or panics.
func MustReference(s string) Reference {
	r, err := ParseReference(s)
	if err != nil {
		panic(err)
	}
	return r
}

// Kind returns the variant of the reference.
func (r Reference) Kind() RefKind { return r.kind }

// Name returns the referenced name for RefNamed and RefChild; the zero
// Name otherwise.
func (r Reference) Name() Name { return r.name }

// Collection returns the collection a RefChild is scoped to; the zero
// Name when unscoped or not a child reference.
func (r Reference) Collection() Name { return r.collection }

// IsZero returns true if this is the zero value.
func (r Reference) IsZero() bool { return r.kind == RefInvalid }

// Equals checks if two references are equal.
func (r Reference) Equals(other Reference) bool {
	return r.kind == other.kind && r.name == other.name && r.collection == other.collection
}

// String renders the tagged string encoding.
func (r Reference) String() string {
	switch r.kind {
	case RefParent:
		return "parent"
	case RefSelf:
		return "self"
	case RefFramework:
		return "framework"
	case RefDebug:
		return "debug"
	case RefVoid:
		return "void"
	case RefAll:
		return "all"
	case RefNamed:
		return "#" + r.name.String()
	case RefChild:
		if !r.collection.IsEmpty() {
			return "#" + r.collection.String() + ":" + r.name.String()
		}
		return "#" + r.name.String()
	}
	return "<invalid>"
}

// MarshalJSON implements json.Marshaler.
func (r Reference) MarshalJSON() ([]byte, error) {
	return json.Marshal(r.String())
}

// UnmarshalJSON implements json.Unmarshaler.
func (r *Reference) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("invalid reference JSON: %w", err)
	}
	parsed, err := ParseReference(s)
	if err != nil {
		return err
	}
	*r = parsed
	return nil
}

// UnmarshalYAML implements yaml.Unmarshaler.
func (r *Reference) UnmarshalYAML(unmarshal func(interface{}) error) error {
	var s string
	if err := unmarshal(&s); err != nil {
		return err
	}
	parsed, err := ParseReference(s)
	if err != nil {
		return err
	}
	*r = parsed
	return nil
}
