package parser_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/routekit-dev/routekit/manifest"
	"github.com/routekit-dev/routekit/parser"
)

func Test_YamlManifestParser_ExpandsMultiNameUse(t *testing.T) {
	doc, err := parser.NewYamlManifestParser().Parse([]byte(`
use:
  - protocol: ["fuchsia.logger.LogSink", "fuchsia.net.Lookup"]
    from: parent
`))
	require.NoError(t, err)
	require.Len(t, doc.Uses, 2)

	first, ok := doc.Uses[0].(*manifest.UseProtocol)
	require.True(t, ok)
	assert.Equal(t, "fuchsia.logger.LogSink", first.SourceName.String())
	assert.Equal(t, "/svc/fuchsia.logger.LogSink", first.TargetPath.String())
	assert.Equal(t, "parent", first.Source.String())

	second, ok := doc.Uses[1].(*manifest.UseProtocol)
	require.True(t, ok)
	assert.Equal(t, "/svc/fuchsia.net.Lookup", second.TargetPath.String())
}

func Test_YamlManifestParser_PathWithMultipleCapabilities(t *testing.T) {
	_, err := parser.NewYamlManifestParser().Parse([]byte(`
use:
  - protocol: ["a", "b"]
    from: parent
    path: /svc/shared
`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), `"path"/"as" can only be specified when one capability is supplied`)
}

func Test_YamlManifestParser_OfferCrossProduct(t *testing.T) {
	doc, err := parser.NewYamlManifestParser().Parse([]byte(`
offer:
  - protocol: ["p1", "p2"]
    from: parent
    to: ["#a", "#b"]
children:
  - name: a
    url: fuchsia-pkg://fuchsia.com/a#meta/a.cm
  - name: b
    url: fuchsia-pkg://fuchsia.com/b#meta/b.cm
`))
	require.NoError(t, err)
	require.Len(t, doc.Offers, 4)

	var got []string
	for _, offer := range doc.Offers {
		got = append(got, offer.OfferSourceName().String()+"->"+offer.OfferTarget().String())
	}
	assert.Equal(t, []string{"p1->#a", "p1->#b", "p2->#a", "p2->#b"}, got)
}

func Test_YamlManifestParser_OfferStorageAsDefault(t *testing.T) {
	doc, err := parser.NewYamlManifestParser().Parse([]byte(`
offer:
  - storage: data
    from: self
    to: "#child"
`))
	require.NoError(t, err)
	require.Len(t, doc.Offers, 1)

	storage, ok := doc.Offers[0].(*manifest.OfferStorage)
	require.True(t, ok)
	assert.True(t, storage.TargetName.IsEmpty())
	assert.Equal(t, "data", storage.OfferTargetName().String())
}

func Test_YamlManifestParser_ExposeDefaultsToParent(t *testing.T) {
	doc, err := parser.NewYamlManifestParser().Parse([]byte(`
expose:
  - protocol: echo
    from: self
    as: echo.renamed
`))
	require.NoError(t, err)
	require.Len(t, doc.Exposes, 1)
	assert.Equal(t, "parent", doc.Exposes[0].ExposeTarget().String())
	assert.Equal(t, "echo.renamed", doc.Exposes[0].ExposeTargetName().String())
	assert.Equal(t, "echo", doc.Exposes[0].ExposeSourceName().String())
}

func Test_YamlManifestParser_Capabilities(t *testing.T) {
	doc, err := parser.NewYamlManifestParser().Parse([]byte(`
capabilities:
  - protocol: ["a", "b"]
    path: /svc/shared
`))
	require.Error(t, err)

	doc, err = parser.NewYamlManifestParser().Parse([]byte(`
capabilities:
  - storage: data
    from: "#child"
    backing_dir: backing
    storage_id: static_instance_id
children:
  - name: child
    url: fuchsia-pkg://fuchsia.com/child#meta/child.cm
`))
	require.NoError(t, err)
	require.Len(t, doc.Capabilities, 1)

	storage, ok := doc.Capabilities[0].(*manifest.StorageCapability)
	require.True(t, ok)
	assert.Equal(t, "data", storage.Name.String())
	assert.Equal(t, "#child", storage.Source.String())
	assert.Equal(t, "backing", storage.BackingDir.String())
	assert.Equal(t, manifest.StorageIDStaticInstance, storage.StorageID)
}

func Test_YamlManifestParser_CapabilityKindFields(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr string
	}{
		{
			"storage forbids path",
			`capabilities:
  - storage: data
    from: parent
    backing_dir: backing
    storage_id: static_instance_id
    path: /data
`,
			`"path" cannot be specified in storage capability declarations`,
		},
		{
			"runner forbids from",
			`capabilities:
  - runner: elf
    path: /svc/fuchsia.component.runner.ComponentRunner
    from: parent
`,
			`"from" cannot be specified in runner capability declarations`,
		},
		{
			"resolver forbids from",
			`capabilities:
  - resolver: pkg
    path: /svc/fuchsia.component.resolution.Resolver
    from: "#child"
`,
			`"from" cannot be specified in resolver capability declarations`,
		},
		{
			"protocol forbids rights",
			`capabilities:
  - protocol: echo
    path: /svc/echo
    rights: ["r*"]
`,
			`"rights" cannot be specified in protocol capability declarations`,
		},
		{
			"directory forbids storage_id",
			`capabilities:
  - directory: blobs
    path: /blobs
    rights: ["r*"]
    storage_id: static_instance_id
`,
			`"storage_id" cannot be specified in directory capability declarations`,
		},
		{
			"event forbids path",
			`capabilities:
  - event: started
    path: /events/started
`,
			`"path" cannot be specified in event capability declarations`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := parser.NewYamlManifestParser().Parse([]byte(tt.input))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func Test_YamlManifestParser_Environment(t *testing.T) {
	doc, err := parser.NewYamlManifestParser().Parse([]byte(`
environments:
  - name: env
    extends: none
    stop_timeout_ms: 5000
    runners:
      - runner: elf
        from: self
        as: elf-renamed
    resolvers:
      - resolver: pkg
        from: parent
        scheme: fuchsia-pkg
children:
  - name: c
    url: fuchsia-pkg://fuchsia.com/c#meta/c.cm
    environment: "#env"
`))
	require.NoError(t, err)
	require.Len(t, doc.Environments, 1)

	env := doc.Environments[0]
	require.NotNil(t, env.StopTimeoutMs)
	assert.Equal(t, uint32(5000), *env.StopTimeoutMs)
	require.Len(t, env.Runners, 1)
	assert.Equal(t, "elf-renamed", env.Runners[0].TargetName.String())
	require.Len(t, env.Resolvers, 1)
	assert.Equal(t, "fuchsia-pkg", env.Resolvers[0].Scheme)

	require.Len(t, doc.Children, 1)
	assert.Equal(t, "env", doc.Children[0].Environment.String())
}

func Test_YamlManifestParser_NoCapabilityNamed(t *testing.T) {
	_, err := parser.NewYamlManifestParser().Parse([]byte(`
use:
  - from: parent
`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "use declaration names no capability")
}

func Test_YamlManifestParser_BadReference(t *testing.T) {
	_, err := parser.NewYamlManifestParser().Parse([]byte(`
use:
  - protocol: p
    from: sibling
`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), `invalid reference "sibling"`)
}

func Test_YamlManifestParser_SchemaVersion(t *testing.T) {
	tests := []struct {
		name    string
		version string
		wantErr string
	}{
		{"absent accepted", "", ""},
		{"current accepted", "1.2.0", ""},
		{"future major rejected", "2.0.0", "unsupported schema_version"},
		{"garbage rejected", "latest", "invalid schema_version"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			input := "{}"
			if tt.version != "" {
				input = `{"schema_version": "` + tt.version + `"}`
			}
			_, err := parser.NewJSONManifestParser().Parse([]byte(input))
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func Test_JSONManifestParser_UnknownField(t *testing.T) {
	_, err := parser.NewJSONManifestParser().Parse([]byte(`{"uses": []}`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown field")
}

func Test_JSONManifestParser_Parse(t *testing.T) {
	doc, err := parser.NewJSONManifestParser().Parse([]byte(`{
		"use": [
			{"event": "capability_requested", "from": "framework", "mode": "async", "as": "requested"}
		],
		"disable": {"must_offer": ["fuchsia.logger.*"]}
	}`))
	require.NoError(t, err)
	require.Len(t, doc.Uses, 1)

	event, ok := doc.Uses[0].(*manifest.UseEvent)
	require.True(t, ok)
	assert.Equal(t, "capability_requested", event.SourceName.String())
	assert.Equal(t, "requested", event.TargetName.String())
	assert.Equal(t, []string{"fuchsia.logger.*"}, doc.Disable.MustOffer)
}

func Test_ForPath(t *testing.T) {
	assert.IsType(t, parser.NewJSONManifestParser(), parser.ForPath("meta/component.json"))
	assert.IsType(t, parser.NewYamlManifestParser(), parser.ForPath("meta/component.yaml"))
	assert.IsType(t, parser.NewYamlManifestParser(), parser.ForPath("meta/component.cml"))
}
