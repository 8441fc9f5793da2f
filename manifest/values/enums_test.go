package values

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_ParseDependencyType(t *testing.T) {
	dt, err := ParseDependencyType("")
	require.NoError(t, err)
	assert.Equal(t, DependencyStrong, dt)
	assert.False(t, dt.IsWeak())

	dt, err = ParseDependencyType("weak")
	require.NoError(t, err)
	assert.True(t, dt.IsWeak())

	dt, err = ParseDependencyType("weak_for_migration")
	require.NoError(t, err)
	assert.True(t, dt.IsWeak())

	_, err = ParseDependencyType("flimsy")
	assert.Error(t, err)
}

func Test_ParseAvailability(t *testing.T) {
	av, err := ParseAvailability("")
	require.NoError(t, err)
	assert.Equal(t, AvailabilityRequired, av)

	for _, s := range []string{"required", "optional", "same_as_target", "transitional"} {
		av, err := ParseAvailability(s)
		require.NoError(t, err)
		assert.Equal(t, Availability(s), av)
	}

	_, err = ParseAvailability("maybe")
	assert.Error(t, err)
}

func Test_ParseStartupMode(t *testing.T) {
	m, err := ParseStartupMode("")
	require.NoError(t, err)
	assert.Equal(t, StartupLazy, m)

	_, err = ParseStartupMode("immediate")
	assert.Error(t, err)
}

func Test_ParseDurability(t *testing.T) {
	d, err := ParseDurability("transient")
	require.NoError(t, err)
	assert.Equal(t, DurabilityTransient, d)

	_, err = ParseDurability("")
	assert.Error(t, err)
}

func Test_ParseEnvironmentExtends(t *testing.T) {
	e, err := ParseEnvironmentExtends("realm")
	require.NoError(t, err)
	assert.Equal(t, ExtendsRealm, e)

	_, err = ParseEnvironmentExtends("universe")
	assert.Error(t, err)
}

func Test_ParseEventMode(t *testing.T) {
	m, err := ParseEventMode("async")
	require.NoError(t, err)
	assert.Equal(t, EventModeAsync, m)

	_, err = ParseEventMode("")
	assert.Error(t, err)
}
