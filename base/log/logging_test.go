package log

import (
	"bytes"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseLevel(t *testing.T) {
	t.Parallel()

	for _, level := range []Severity{TraceLevel, DebugLevel, InfoLevel, WarningLevel, ErrorLevel, CriticalLevel} {
		assert.Equal(t, level, ParseLevel(level.Name()))
	}
	assert.Equal(t, WarningLevel, ParseLevel("WARN"))
	assert.Equal(t, Severity(0), ParseLevel("loud"))
	assert.Equal(t, "none", Severity(0xFF).Name())
}

func TestLogging(t *testing.T) { //nolint:paralleltest // Modifies global output.
	buf := &bytes.Buffer{}
	SetOutput(buf)
	defer func() {
		SetOutput(os.Stderr)
		SetLogLevel(InfoLevel)
	}()

	assert.NoError(t, Start("warning"))
	assert.True(t, IsStarted())
	assert.Equal(t, WarningLevel, GetLogLevel())

	Info("hidden info")
	Debugf("hidden %s", "debug")
	Warningf("visible %s", "warning")
	Errorf("visible %s", "error")
	Critical("visible critical")

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, "visible warning")
	assert.Contains(t, out, "visible error")
	assert.Contains(t, out, "visible critical")
	assert.Contains(t, out, "CRT")

	SetLogLevel(TraceLevel)
	Tracef("trace %d", 1)
	assert.Contains(t, buf.String(), "trace 1")

	assert.Positive(t, TotalWarningLogLines())
	assert.Positive(t, TotalErrorLogLines())
	assert.Positive(t, TotalCriticalLogLines())
}
