package random

import (
	"github.com/safing/random/base/config"
)

// CfgOptionSourceKey is the config key of the preferred random source.
const CfgOptionSourceKey = "random/source"

var sourceOption config.StringOption

func registerConfig() error {
	err := config.Register(&config.Option{
		Name: "Random Source",
		Key:  CfgOptionSourceKey,
		Description: "Source the default generator draws from. " +
			"Auto prefers fortuna, then the operating system and falls back to the insecure Alea generator.",
		OptType:      config.OptTypeString,
		DefaultValue: string(PreferAuto),
		PossibleValues: []config.PossibleValue{
			{Name: "Auto", Value: string(PreferAuto)},
			{Name: "Fortuna", Value: string(PreferFortuna)},
			{Name: "Operating System", Value: string(PreferOS)},
			{Name: "Alea (insecure)", Value: string(PreferAlea)},
		},
	})
	if err != nil {
		return err
	}
	sourceOption = config.GetAsString(CfgOptionSourceKey, string(PreferAuto))
	return nil
}
