package log

import (
	"log/slog"
	"os"

	"github.com/lmittmann/tint"
	"github.com/mattn/go-isatty"
)

const timeFormat = "060102 15:04:05.000"

func setupSLog(level Severity) {
	outputLock.Lock()
	w := output
	outputLock.Unlock()

	// Only color output that goes to a terminal.
	noColor := true
	if f, ok := w.(*os.File); ok {
		noColor = !isatty.IsTerminal(f.Fd())
	}

	logHandler := tint.NewHandler(w, &tint.Options{
		AddSource:  level <= DebugLevel,
		Level:      slogLevel,
		TimeFormat: timeFormat,
		NoColor:    noColor,
		ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
			if a.Key != slog.LevelKey || len(groups) > 0 {
				return a
			}
			switch a.Value.Any() {
			case slogLevelTrace:
				return slog.String(slog.LevelKey, "TRC")
			case slogLevelCritical:
				return slog.String(slog.LevelKey, "CRT")
			}
			return a
		},
	})

	slog.SetDefault(slog.New(logHandler))
}
