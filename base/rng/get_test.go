package rng

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNumberRandomness(t *testing.T) {
	t.Parallel()

	if testing.Short() {
		t.Skip()
	}

	var subjects uint64 = 10
	var testSize uint64 = 10000

	results := make([]uint64, int(subjects))
	for range int(subjects * testSize) {
		n, err := Number(subjects - 1)
		require.NoError(t, err)
		results[int(n)]++
	}

	// Catch big mistakes, eg. massive modulo bias. The margin is wide enough
	// to not trigger on regular statistical noise.
	lowerMargin := testSize - testSize/10
	upperMargin := testSize + testSize/10
	for subject, result := range results {
		assert.True(t, result > lowerMargin && result < upperMargin, "subject %d is outside of margins: %d", subject, result)
	}
}
