// Package parser turns raw manifest bytes into the typed document
// model. Parsing covers syntax, value-object validity, and the
// source-form expansion of declarations naming several capabilities or
// targets; semantic rules are the validator's job.
package parser

import (
	"strings"

	"github.com/routekit-dev/routekit/manifest"
)

// ManifestParser parses raw manifest bytes into a Document.
type ManifestParser interface {
	// Parse unmarshals and expands manifest bytes into a Document.
	Parse(data []byte) (*manifest.Document, error)
}

// ForPath returns the parser matching a manifest file path: JSON for
// .json, YAML otherwise.
func ForPath(path string) ManifestParser {
	if strings.HasSuffix(path, ".json") {
		return NewJSONManifestParser()
	}
	return NewYamlManifestParser()
}
