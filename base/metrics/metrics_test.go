package metrics

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCounter(t *testing.T) {
	t.Parallel()

	c, err := NewCounter("test/draws_total", map[string]string{"source": "alea"})
	require.NoError(t, err)
	assert.Equal(t, `test_draws_total{source="alea"}`, c.LabeledID())

	c.Inc()
	c.Add(2)
	assert.Equal(t, uint64(3), c.CurrentValue())

	buf := &bytes.Buffer{}
	WritePrometheus(buf)
	assert.Contains(t, buf.String(), `test_draws_total{source="alea"} 3`)

	_, err = NewCounter("test/draws_total", map[string]string{"source": "alea"})
	assert.True(t, errors.Is(err, ErrAlreadyRegistered))
}

func TestInvalidNames(t *testing.T) {
	t.Parallel()

	_, err := NewCounter("1invalid", nil)
	assert.Error(t, err)
	_, err = NewCounter("valid_name", map[string]string{"bad-label": "x"})
	assert.Error(t, err)
}
