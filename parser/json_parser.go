package parser

import (
	"bytes"
	"encoding/json"

	"github.com/routekit-dev/routekit/diag"
	"github.com/routekit-dev/routekit/manifest"
)

// JSONManifestParser implements ManifestParser for JSON.
type JSONManifestParser struct{}

// NewJSONManifestParser creates a new JSONManifestParser.
func NewJSONManifestParser() ManifestParser {
	return &JSONManifestParser{}
}

// Parse unmarshals JSON manifest bytes and expands them into a
// Document. Unknown fields are rejected.
func (p *JSONManifestParser) Parse(data []byte) (*manifest.Document, error) {
	var raw rawDocument
	decoder := json.NewDecoder(bytes.NewReader(data))
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&raw); err != nil {
		errs := diag.NewList()
		errs.Add(diag.NewParse(err.Error()))
		return nil, errs
	}
	return raw.document()
}
