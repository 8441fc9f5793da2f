package parser

import (
	"github.com/goccy/go-yaml"

	"github.com/routekit-dev/routekit/diag"
	"github.com/routekit-dev/routekit/manifest"
)

// YamlManifestParser implements ManifestParser for YAML.
type YamlManifestParser struct{}

// NewYamlManifestParser creates a new YamlManifestParser.
func NewYamlManifestParser() ManifestParser {
	return &YamlManifestParser{}
}

// Parse unmarshals YAML manifest bytes and expands them into a
// Document. Unknown and duplicate fields are rejected.
func (p *YamlManifestParser) Parse(data []byte) (*manifest.Document, error) {
	var raw rawDocument
	if err := yaml.UnmarshalWithOptions(data, &raw, yaml.Strict()); err != nil {
		errs := diag.NewList()
		errs.Add(diag.NewParse(err.Error()))
		return nil, errs
	}
	return raw.document()
}
