package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeManifest(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCommand()
	out := &bytes.Buffer{}
	cmd.SetOut(out)
	cmd.SetErr(out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func Test_ValidateCommand_ValidManifest(t *testing.T) {
	path := writeManifest(t, t.TempDir(), "component.yaml", `
use:
  - protocol: fuchsia.logger.LogSink
    from: parent
`)

	_, err := execute(t, "validate", path)
	assert.NoError(t, err)
}

func Test_ValidateCommand_InvalidManifest(t *testing.T) {
	path := writeManifest(t, t.TempDir(), "component.yaml", `
use:
  - protocol: fuchsia.logger.LogSink
`)

	out, err := execute(t, "validate", path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "1 of 1 manifests invalid")
	assert.Contains(t, out, `UseProtocolDecl missing "from"`)
}

func Test_ValidateCommand_Glob(t *testing.T) {
	dir := t.TempDir()
	writeManifest(t, dir, "a.yaml", "use:\n  - protocol: p\n    from: parent\n")
	writeManifest(t, dir, "b.yaml", "use:\n  - protocol: q\n")

	out, err := execute(t, "validate", filepath.Join(dir, "*.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "1 of 2 manifests invalid")
	assert.Contains(t, out, "b.yaml")
	assert.NotContains(t, out, "a.yaml")
}

func Test_ValidateCommand_NoMatches(t *testing.T) {
	_, err := execute(t, "validate", filepath.Join(t.TempDir(), "*.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no manifests match")
}

func Test_ValidateCommand_MustOffer(t *testing.T) {
	path := writeManifest(t, t.TempDir(), "component.yaml", `
children:
  - name: logger
    url: fuchsia-pkg://fuchsia.com/logger#meta/logger.cm
`)

	out, err := execute(t, "validate", "--must-offer", "fuchsia.logger.LogSink", path)
	require.Error(t, err)
	assert.Contains(t, out, `not offered to child "#logger"`)
}

func Test_ValidateCommand_UnknownFeature(t *testing.T) {
	path := writeManifest(t, t.TempDir(), "component.yaml", "{}\n")

	_, err := execute(t, "validate", "--feature", "time_travel", path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), `unknown feature "time_travel"`)
}

func Test_ValidateCommand_FeatureEnables(t *testing.T) {
	path := writeManifest(t, t.TempDir(), "component.yaml", `
collections:
  - name: coll
    durability: transient
    allowed_offers: static_and_dynamic
`)

	_, err := execute(t, "validate", path)
	require.Error(t, err)

	_, err = execute(t, "validate", "--feature", "dynamic_offers", path)
	assert.NoError(t, err)
}

func Test_ValidateCommand_LegacyManifest(t *testing.T) {
	dir := t.TempDir()
	valid := writeManifest(t, dir, "app.sandbox.json",
		`{"program": {"binary": "bin/app"}, "sandbox": {"services": ["fuchsia.logger.LogSink"]}}`)
	invalid := writeManifest(t, dir, "broken.sandbox.json", `{"sandbox": {}}`)

	_, err := execute(t, "validate", valid)
	assert.NoError(t, err)

	out, err := execute(t, "validate", invalid)
	require.Error(t, err)
	assert.Contains(t, out, "program")
}

func Test_SchemaCommand(t *testing.T) {
	out, err := execute(t, "schema")
	require.NoError(t, err)
	assert.Contains(t, out, "child")
	assert.Contains(t, out, "environment")

	out, err = execute(t, "schema", "child")
	require.NoError(t, err)
	assert.Contains(t, out, "$schema")

	_, err = execute(t, "schema", "bogus")
	require.Error(t, err)
	assert.Contains(t, err.Error(), `unknown section "bogus"`)
}
