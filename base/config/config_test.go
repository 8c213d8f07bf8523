package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func registerTestOptions(t *testing.T, prefix string) {
	t.Helper()

	require.NoError(t, Register(&Option{
		Name:         "Source",
		Key:          prefix + "/source",
		Description:  "Source of randomness.",
		OptType:      OptTypeString,
		DefaultValue: "auto",
		PossibleValues: []PossibleValue{
			{Name: "Auto", Value: "auto"},
			{Name: "OS", Value: "os"},
			{Name: "Alea", Value: "alea"},
		},
	}))
	require.NoError(t, Register(&Option{
		Name:         "Count",
		Key:          prefix + "/count",
		Description:  "A count.",
		OptType:      OptTypeInt,
		DefaultValue: 10,
	}))
	require.NoError(t, Register(&Option{
		Name:         "Enabled",
		Key:          prefix + "/enabled",
		Description:  "A switch.",
		OptType:      OptTypeBool,
		DefaultValue: false,
	}))
}

func TestRegisterValidation(t *testing.T) {
	t.Parallel()

	assert.Error(t, Register(&Option{Key: "x", Description: "x", OptType: OptTypeString}))
	assert.Error(t, Register(&Option{Name: "x", Description: "x", OptType: OptTypeString}))
	assert.Error(t, Register(&Option{Name: "x", Key: "x", Description: "x"}))
	assert.Error(t, Register(&Option{
		Name:         "Bad Default",
		Key:          "test/bad-default",
		Description:  "Invalid default.",
		OptType:      OptTypeInt,
		DefaultValue: "ten",
	}))
}

func TestGetAndSet(t *testing.T) { //nolint:paralleltest // Uses global registry.
	registerTestOptions(t, "getset")

	source := GetAsString("getset/source", "fallback")
	count := GetAsInt("getset/count", 0)
	enabled := GetAsBool("getset/enabled", true)
	missing := GetAsString("getset/missing", "fallback")

	assert.Equal(t, "auto", source())
	assert.Equal(t, int64(10), count())
	assert.False(t, enabled())
	assert.Equal(t, "fallback", missing())

	require.NoError(t, SetConfigOption("getset/source", "alea"))
	require.NoError(t, SetConfigOption("getset/count", 5))
	require.NoError(t, SetConfigOption("getset/enabled", true))
	assert.Equal(t, "alea", source())
	assert.Equal(t, int64(5), count())
	assert.True(t, enabled())

	assert.Error(t, SetConfigOption("getset/source", "nope"))
	assert.Error(t, SetConfigOption("getset/count", 1.5))
	assert.Error(t, SetConfigOption("getset/enabled", "yes"))
	assert.Error(t, SetConfigOption("getset/missing", "x"))
	assert.Equal(t, "alea", source())

	require.NoError(t, SetConfigOption("getset/source", nil))
	assert.Equal(t, "auto", source())
}

func TestReplaceConfig(t *testing.T) { //nolint:paralleltest // Uses global registry.
	registerTestOptions(t, "replace")

	count := GetAsInt("replace/count", 0)
	err := ReplaceConfig(map[string]interface{}{
		"replace/count":  float64(7),
		"replace/source": "invalid",
	})
	require.Error(t, err)

	var vErr *ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Equal(t, "replace/source", vErr.Option.Key)
	assert.Equal(t, int64(7), count())
}

func TestPersistence(t *testing.T) { //nolint:paralleltest // Uses global registry and config file.
	registerTestOptions(t, "persist")
	defer SetConfigFile("")

	dir := t.TempDir()

	// YAML, hierarchical.
	yamlFile := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(yamlFile, []byte("persist:\n  source: os\n  count: 3\n"), 0o600))
	SetConfigFile(yamlFile)
	require.NoError(t, LoadConfig())
	assert.Equal(t, "os", GetAsString("persist/source", "")())
	assert.Equal(t, int64(3), GetAsInt("persist/count", 0)())

	// Saving writes YAML back.
	require.NoError(t, SetConfigOption("persist/enabled", true))
	data, err := os.ReadFile(yamlFile)
	require.NoError(t, err)
	assert.Contains(t, string(data), "enabled: true")

	// JSON, flat keys.
	jsonFile := filepath.Join(dir, "config.json")
	require.NoError(t, os.WriteFile(jsonFile, []byte(`{"persist/source": "alea"}`), 0o600))
	SetConfigFile(jsonFile)
	require.NoError(t, LoadConfig())
	assert.Equal(t, "alea", GetAsString("persist/source", "")())
	assert.Equal(t, int64(10), GetAsInt("persist/count", 0)(), "unset values fall back to default")

	// Missing file is fine.
	SetConfigFile(filepath.Join(dir, "missing.json"))
	assert.NoError(t, LoadConfig())
}

func TestFlattenExpand(t *testing.T) {
	t.Parallel()

	flat := Flatten(map[string]interface{}{
		"a": map[string]interface{}{
			"b": map[string]interface{}{"c": 1},
			"d": "e",
		},
	})
	assert.Equal(t, map[string]interface{}{"a/b/c": 1, "a/d": "e"}, flat)
	assert.Equal(t, flat, Flatten(Expand(flat)))
}
