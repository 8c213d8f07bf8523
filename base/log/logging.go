package log

import (
	"io"
	"log/slog"
	"os"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/tevino/abool"
)

// Severity describes a log level.
type Severity uint32

// Log Levels.
const (
	TraceLevel    Severity = 1
	DebugLevel    Severity = 2
	InfoLevel     Severity = 3
	WarningLevel  Severity = 4
	ErrorLevel    Severity = 5
	CriticalLevel Severity = 6
)

// slog has no trace and critical levels, map them just outside of the
// regular range.
const (
	slogLevelTrace    = slog.LevelDebug - 4
	slogLevelCritical = slog.LevelError + 4
)

func (s Severity) toSLogLevel() slog.Level {
	switch s {
	case TraceLevel:
		return slogLevelTrace
	case DebugLevel:
		return slog.LevelDebug
	case InfoLevel:
		return slog.LevelInfo
	case WarningLevel:
		return slog.LevelWarn
	case ErrorLevel:
		return slog.LevelError
	case CriticalLevel:
		return slogLevelCritical
	}
	// Failed to convert, return default log level
	return slog.LevelWarn
}

// Name returns the name of the log level.
func (s Severity) Name() string {
	switch s {
	case TraceLevel:
		return "trace"
	case DebugLevel:
		return "debug"
	case InfoLevel:
		return "info"
	case WarningLevel:
		return "warning"
	case ErrorLevel:
		return "error"
	case CriticalLevel:
		return "critical"
	default:
		return "none"
	}
}

// ParseLevel returns the level severity of a log level name.
// Unknown names return 0.
func ParseLevel(level string) Severity {
	switch strings.ToLower(level) {
	case "trace":
		return TraceLevel
	case "debug":
		return DebugLevel
	case "info":
		return InfoLevel
	case "warning", "warn":
		return WarningLevel
	case "error":
		return ErrorLevel
	case "critical":
		return CriticalLevel
	}
	return 0
}

var (
	logLevel = uint32(InfoLevel)

	output     io.Writer = os.Stderr
	outputLock sync.Mutex

	started = abool.NewBool(false)

	// slogLevel is shared by all handlers, so level changes also apply to
	// loggers derived before the change.
	slogLevel = new(slog.LevelVar)
)

// GetLogLevel returns the current log level.
func GetLogLevel() Severity {
	return Severity(atomic.LoadUint32(&logLevel))
}

// SetLogLevel sets a new log level.
func SetLogLevel(level Severity) {
	atomic.StoreUint32(&logLevel, uint32(level))
	slogLevel.Set(level.toSLogLevel())
}

// SetOutput redirects all log output to the given writer.
// Loggers derived before the change keep writing to the previous output.
func SetOutput(w io.Writer) {
	outputLock.Lock()
	output = w
	outputLock.Unlock()

	setupSLog(GetLogLevel())
}

// Start starts the logging system with the given level name.
// An empty or invalid level falls back to info.
func Start(level string) error {
	initialLogLevel := InfoLevel
	if level != "" {
		initialLogLevel = ParseLevel(level)
		if initialLogLevel == 0 {
			initialLogLevel = InfoLevel
			defer Warningf("log: invalid log level %q, falling back to level info", level)
		}
	}

	SetLogLevel(initialLogLevel)
	setupSLog(initialLogLevel)
	started.Set()
	return nil
}

// IsStarted returns whether the logging system was started.
func IsStarted() bool {
	return started.IsSet()
}
