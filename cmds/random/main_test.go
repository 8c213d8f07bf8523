package main

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/safing/random/base/random"
)

func TestParseLength(t *testing.T) {
	t.Parallel()

	n, err := parseLength(nil, 0, 17)
	require.NoError(t, err)
	assert.Equal(t, 17, n)

	n, err = parseLength([]string{"name", "5"}, 1, 17)
	require.NoError(t, err)
	assert.Equal(t, 5, n)

	_, err = parseLength([]string{"-1"}, 0, 17)
	assert.ErrorIs(t, err, random.ErrInvalidLength)
	_, err = parseLength([]string{"many"}, 0, 17)
	assert.Error(t, err)
}

func TestSeededStream(t *testing.T) { //nolint:paralleltest // Runs the only service instance.
	out := &bytes.Buffer{}
	rootCmd.SetOut(out)
	rootCmd.SetArgs([]string{
		"--config", filepath.Join(t.TempDir(), "config.yaml"),
		"--log", "error",
		"--seed", "abc",
		"--seed", "123",
		"stream", "3",
	})
	require.NoError(t, rootCmd.Execute())

	assert.Equal(t, []string{
		"0.6509925271384418",
		"0.8471606157254428",
		"0.6003588198218495",
	}, strings.Fields(out.String()))
}
