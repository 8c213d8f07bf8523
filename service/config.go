package service

import (
	"os"
	"path/filepath"

	"github.com/safing/random/base/config"
	"github.com/safing/random/base/log"
	"github.com/safing/random/base/random"
)

// Config keys registered by the service.
const (
	CfgLogLevelKey    = "core/log/level"
	CfgJournalPathKey = "random/journal/path"
)

// ServiceConfig holds the command line configuration of the service.
type ServiceConfig struct {
	ConfigFile string
	LogLevel   string

	// Source overrides the configured random source, if set.
	Source string
	// Seeds makes all output reproducible, if set.
	Seeds []string

	// EnableAPI starts the HTTP API.
	EnableAPI bool
}

// Init checks the configuration and fills in defaults.
func (sc *ServiceConfig) Init() error {
	if _, err := random.ParseSourcePreference(sc.Source); err != nil {
		return err
	}
	if sc.ConfigFile == "" {
		sc.ConfigFile = filepath.Join(defaultDataDir(), "config.yaml")
	}
	return nil
}

func defaultDataDir() string {
	if dir, err := os.UserConfigDir(); err == nil {
		return filepath.Join(dir, "random")
	}
	return "."
}

var (
	logLevelOption    config.StringOption
	journalPathOption config.StringOption
)

func registerConfig() error {
	err := config.Register(&config.Option{
		Name:         "Log Level",
		Key:          CfgLogLevelKey,
		Description:  "Minimum severity of log messages.",
		OptType:      config.OptTypeString,
		DefaultValue: log.InfoLevel.Name(),
		PossibleValues: []config.PossibleValue{
			{Name: "Trace", Value: log.TraceLevel.Name()},
			{Name: "Debug", Value: log.DebugLevel.Name()},
			{Name: "Info", Value: log.InfoLevel.Name()},
			{Name: "Warning", Value: log.WarningLevel.Name()},
			{Name: "Error", Value: log.ErrorLevel.Name()},
			{Name: "Critical", Value: log.CriticalLevel.Name()},
		},
	})
	if err != nil {
		return err
	}
	logLevelOption = config.GetAsString(CfgLogLevelKey, log.InfoLevel.Name())

	err = config.Register(&config.Option{
		Name:         "Seed Journal Path",
		Key:          CfgJournalPathKey,
		Description:  "File of the journal that stores named seed sequences.",
		OptType:      config.OptTypeString,
		DefaultValue: filepath.Join(defaultDataDir(), "journal.db"),
	})
	if err != nil {
		return err
	}
	journalPathOption = config.GetAsString(CfgJournalPathKey, "")

	return nil
}
