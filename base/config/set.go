package config

import (
	"errors"
	"sync"

	"github.com/hashicorp/go-multierror"
	"github.com/tevino/abool"
)

var (
	// ErrInvalidOptionType is returned by SetConfigOption if given an unsupported option type.
	ErrInvalidOptionType = errors.New("invalid option value type")

	validityFlag     = abool.NewBool(true)
	validityFlagLock sync.RWMutex
)

// getValidityFlag returns a flag that signifies if the configuration has been changed. This flag must not be changed, only read.
func getValidityFlag() *abool.AtomicBool {
	validityFlagLock.RLock()
	defer validityFlagLock.RUnlock()
	return validityFlag
}

// signalChanges marks the configs validtityFlag as dirty.
func signalChanges() {
	validityFlagLock.Lock()
	defer validityFlagLock.Unlock()

	validityFlag.SetTo(false)
	validityFlag = abool.NewBool(true)
}

// ReplaceConfig sets the user defined config. Options that are not part of
// newValues are reset to their default. All validation errors are returned
// combined, valid values are applied regardless.
func ReplaceConfig(newValues map[string]interface{}) error {
	var result *multierror.Error

	optionsLock.RLock()
	for key, option := range options {
		newValue, ok := newValues[key]

		option.Lock()
		option.activeValue = nil
		if ok {
			valueCache, vErr := validateValue(option, newValue)
			if vErr == nil {
				option.activeValue = valueCache
			} else {
				result = multierror.Append(result, vErr)
			}
		}
		option.Unlock()
	}
	optionsLock.RUnlock()

	signalChanges()
	return result.ErrorOrNil()
}

// SetConfigOption sets a single value in the user defined config.
// A nil value resets the option to its default.
func SetConfigOption(key string, value any) error {
	option, err := GetOption(key)
	if err != nil {
		return err
	}

	option.Lock()
	if value == nil {
		option.activeValue = nil
	} else {
		valueCache, vErr := validateValue(option, value)
		if vErr != nil {
			option.Unlock()
			return vErr
		}
		option.activeValue = valueCache
	}
	option.Unlock()

	signalChanges()
	return SaveConfig()
}
