package api

import (
	"github.com/safing/random/base/config"
)

// CfgDefaultListenAddressKey is the config key for the listen address.
const CfgDefaultListenAddressKey = "random/api/listen"

// DefaultListenAddress is the listen address used if none is configured.
const DefaultListenAddress = "127.0.0.1:8117"

var listenAddressConfig config.StringOption

func registerConfig() error {
	err := config.Register(&config.Option{
		Name:            "API Listen Address",
		Key:             CfgDefaultListenAddressKey,
		Description:     "Defines the IP address and port on which the HTTP API listens.",
		OptType:         config.OptTypeString,
		DefaultValue:    DefaultListenAddress,
		ValidationRegex: `^[^\s]*:[0-9]{1,5}$`,
	})
	if err != nil {
		return err
	}
	listenAddressConfig = config.GetAsString(CfgDefaultListenAddressKey, DefaultListenAddress)
	return nil
}
