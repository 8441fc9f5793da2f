package schema_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/routekit-dev/routekit/schema"
)

func Test_Checker_ValidLegacyManifest(t *testing.T) {
	checker, err := schema.NewChecker()
	require.NoError(t, err)

	err = checker.Check([]byte(`{
		"program": {"binary": "bin/app", "args": ["--verbose"]},
		"sandbox": {"services": ["fuchsia.logger.LogSink"], "features": ["isolated-temp"]}
	}`))
	assert.NoError(t, err)
}

func Test_Checker_MissingProgram(t *testing.T) {
	checker, err := schema.NewChecker()
	require.NoError(t, err)

	err = checker.Check([]byte(`{"sandbox": {}}`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "program")
}

func Test_Checker_UnknownSandboxField(t *testing.T) {
	checker, err := schema.NewChecker()
	require.NoError(t, err)

	err = checker.Check([]byte(`{
		"program": {"binary": "bin/app"},
		"sandbox": {"netstack": true}
	}`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "netstack")
}

func Test_Checker_MalformedJSON(t *testing.T) {
	checker, err := schema.NewChecker()
	require.NoError(t, err)

	err = checker.Check([]byte(`{`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parse error")
}

func Test_Checker_ExtraSchemaSuffix(t *testing.T) {
	checker, err := schema.NewChecker(schema.WithExtraSchemas(schema.ExtraSchema{
		Name: "policy.json",
		Data: []byte(`{
			"type": "object",
			"properties": {
				"sandbox": {
					"type": "object",
					"properties": {
						"features": {"type": "array", "maxItems": 1}
					}
				}
			}
		}`),
		ErrorSuffix: "(see the sandbox policy guide)",
	}))
	require.NoError(t, err)

	err = checker.Check([]byte(`{
		"program": {"binary": "bin/app"},
		"sandbox": {"features": ["a", "b"]}
	}`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "(see the sandbox policy guide)")
}

func Test_Checker_BadExtraSchema(t *testing.T) {
	_, err := schema.NewChecker(schema.WithExtraSchemas(schema.ExtraSchema{
		Name: "broken.json",
		Data: []byte(`{"type": 42}`),
	}))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "broken.json")
}

func Test_Registry_RegisterAndLookup(t *testing.T) {
	registry, err := schema.DefaultRegistry()
	require.NoError(t, err)

	assert.Equal(t, []string{"child", "collection", "disable", "environment"}, registry.Sections())

	generated, ok := registry.Schema("child")
	require.True(t, ok)
	assert.Contains(t, generated, "$schema")

	_, ok = registry.Schema("unknown")
	assert.False(t, ok)

	err = registry.Register("child", struct{}{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already registered")
}
