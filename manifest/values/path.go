package values

import (
	"encoding/json"
	"fmt"
	"strings"
)

// MaxPathLength is the byte-length bound for both absolute and relative
// paths.
const MaxPathLength = 1024

// MaxURLLength is the byte-length bound for component URLs.
const MaxURLLength = 4096

// Path represents a validated absolute capability path.
// Enforces a leading slash, non-empty segments, and no trailing slash.
type Path struct {
	value string
}

// NewPath creates a Path with strict validation.
func NewPath(s string) (Path, error) {
	if s == "" {
		return Path{}, fmt.Errorf("path cannot be empty")
	}
	if len(s) > MaxPathLength {
		return Path{}, fmt.Errorf("path too long (max %d bytes)", MaxPathLength)
	}
	if !strings.HasPrefix(s, "/") {
		return Path{}, fmt.Errorf("invalid path %q: must start with /", s)
	}
	if strings.HasSuffix(s, "/") {
		return Path{}, fmt.Errorf("invalid path %q: must not end with /", s)
	}
	for _, segment := range strings.Split(s[1:], "/") {
		if segment == "" {
			return Path{}, fmt.Errorf("invalid path %q: contains an empty segment", s)
		}
	}
	return Path{value: s}, nil
}

// MustPath creates a Path or panics.
func MustPath(s string) Path {
	p, err := NewPath(s)
	if err != nil {
		panic(err)
	}
	return p
}

// String returns the string representation.
func (p Path) String() string {
	return p.value
}

// IsEmpty returns true if this is the zero value.
func (p Path) IsEmpty() bool {
	return p.value == ""
}

// Equals checks if two paths are equal.
func (p Path) Equals(other Path) bool {
	return p.value == other.value
}

// IsPrefixOf reports whether p is a strict path-prefix of other.
// Prefixing is segment-wise: "/foo" is a prefix of "/foo/bar" but not
// of "/foobar".
func (p Path) IsPrefixOf(other Path) bool {
	if p.value == other.value {
		return false
	}
	return strings.HasPrefix(other.value, p.value+"/")
}

// MarshalJSON implements json.Marshaler.
func (p Path) MarshalJSON() ([]byte, error) {
	return json.Marshal(p.value)
}

// UnmarshalJSON implements json.Unmarshaler.
func (p *Path) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("invalid path JSON: %w", err)
	}
	parsed, err := NewPath(s)
	if err != nil {
		return err
	}
	*p = parsed
	return nil
}

// UnmarshalYAML implements yaml.Unmarshaler.
func (p *Path) UnmarshalYAML(unmarshal func(interface{}) error) error {
	var s string
	if err := unmarshal(&s); err != nil {
		return err
	}
	parsed, err := NewPath(s)
	if err != nil {
		return err
	}
	*p = parsed
	return nil
}

// RelativePath represents a validated relative (subdir) path.
// Enforces no leading slash, no trailing slash, non-empty segments.
type RelativePath struct {
	value string
}

// NewRelativePath creates a RelativePath with strict validation.
func NewRelativePath(s string) (RelativePath, error) {
	if s == "" {
		return RelativePath{}, fmt.Errorf("relative path cannot be empty")
	}
	if len(s) > MaxPathLength {
		return RelativePath{}, fmt.Errorf("relative path too long (max %d bytes)", MaxPathLength)
	}
	if strings.HasPrefix(s, "/") {
		return RelativePath{}, fmt.Errorf("invalid relative path %q: must not start with /", s)
	}
	if strings.HasSuffix(s, "/") {
		return RelativePath{}, fmt.Errorf("invalid relative path %q: must not end with /", s)
	}
	for _, segment := range strings.Split(s, "/") {
		if segment == "" {
			return RelativePath{}, fmt.Errorf("invalid relative path %q: contains an empty segment", s)
		}
	}
	return RelativePath{value: s}, nil
}

// MustRelativePath creates a RelativePath or panics.
func MustRelativePath(s string) RelativePath {
	p, err := NewRelativePath(s)
	if err != nil {
		panic(err)
	}
	return p
}

// String returns the string representation.
func (p RelativePath) String() string {
	return p.value
}

// IsEmpty returns true if this is the zero value.
func (p RelativePath) IsEmpty() bool {
	return p.value == ""
}

// UnmarshalJSON implements json.Unmarshaler.
func (p *RelativePath) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("invalid relative path JSON: %w", err)
	}
	parsed, err := NewRelativePath(s)
	if err != nil {
		return err
	}
	*p = parsed
	return nil
}

// MarshalJSON implements json.Marshaler.
func (p RelativePath) MarshalJSON() ([]byte, error) {
	return json.Marshal(p.value)
}

// UnmarshalYAML implements yaml.Unmarshaler.
func (p *RelativePath) UnmarshalYAML(unmarshal func(interface{}) error) error {
	var s string
	if err := unmarshal(&s); err != nil {
		return err
	}
	parsed, err := NewRelativePath(s)
	if err != nil {
		return err
	}
	*p = parsed
	return nil
}

// URL represents a syntactically accepted component URL.
// Resolution is out of scope; only emptiness and length are checked.
type URL struct {
	value string
}

// NewURL creates a URL with length validation.
func NewURL(s string) (URL, error) {
	if s == "" {
		return URL{}, fmt.Errorf("url cannot be empty")
	}
	if len(s) > MaxURLLength {
		return URL{}, fmt.Errorf("url too long (max %d bytes)", MaxURLLength)
	}
	return URL{value: s}, nil
}

// MustURL creates a URL or panics.
func MustURL(s string) URL {
	u, err := NewURL(s)
	if err != nil {
		panic(err)
	}
	return u
}

// String returns the string representation.
func (u URL) String() string {
	return u.value
}

// IsEmpty returns true if this is the zero value.
func (u URL) IsEmpty() bool {
	return u.value == ""
}

// MarshalJSON implements json.Marshaler.
func (u URL) MarshalJSON() ([]byte, error) {
	return json.Marshal(u.value)
}

// UnmarshalJSON implements json.Unmarshaler.
func (u *URL) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("invalid url JSON: %w", err)
	}
	parsed, err := NewURL(s)
	if err != nil {
		return err
	}
	*u = parsed
	return nil
}

// UnmarshalYAML implements yaml.Unmarshaler.
func (u *URL) UnmarshalYAML(unmarshal func(interface{}) error) error {
	var s string
	if err := unmarshal(&s); err != nil {
		return err
	}
	parsed, err := NewURL(s)
	if err != nil {
		return err
	}
	*u = parsed
	return nil
}
