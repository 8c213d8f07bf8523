package config

import (
	"regexp"
	"sync"
)

// OptionType defines the value type of an option.
type OptionType uint8

// Supported option types.
const (
	optTypeAny    OptionType = 0
	OptTypeString OptionType = 1
	OptTypeInt    OptionType = 3
	OptTypeBool   OptionType = 4
)

func getTypeName(t OptionType) string {
	switch t {
	case optTypeAny:
		return "any"
	case OptTypeString:
		return "string"
	case OptTypeInt:
		return "int"
	case OptTypeBool:
		return "bool"
	default:
		return "unknown"
	}
}

// PossibleValue defines a value that is possible for
// a configuration setting.
type PossibleValue struct {
	// Name is a human readable name of the option.
	Name string
	// Description is a human readable description of
	// this value.
	Description string
	// Value is the actual value of the option. The type
	// must match the option's value type.
	Value interface{}
}

// Option describes a configuration option.
type Option struct {
	sync.Mutex

	// Name holds the human readable name of the option.
	// Name is considered immutable after the option has been created.
	Name string
	// Key holds the path of the option in the format `category/sub/key`.
	// Key is considered immutable after the option has been created.
	Key string
	// Description holds a short human readable description of the option.
	Description string
	// OptType defines the type of the option.
	// OptType is considered immutable after the option has been created.
	OptType OptionType
	// DefaultValue holds the default value of the option.
	DefaultValue interface{}
	// ValidationRegex may contain a regular expression used to validate
	// the value of option. It is generated from PossibleValues if empty.
	ValidationRegex string
	// PossibleValues may be set to a slice of values that are allowed
	// for this configuration setting.
	PossibleValues []PossibleValue `json:",omitempty"`

	activeValue         *valueCache // runtime value (loaded from config file or set by user)
	activeFallbackValue *valueCache // default value from option registration
	compiledRegex       *regexp.Regexp
}

type valueCache struct {
	stringVal string
	intVal    int64
	boolVal   bool
}

func (vc *valueCache) getData(opt *Option) interface{} {
	switch opt.OptType {
	case OptTypeBool:
		return vc.boolVal
	case OptTypeInt:
		return vc.intVal
	case OptTypeString:
		return vc.stringVal
	default:
		return nil
	}
}

// copyOrNil returns a copy of the option without its values, or nil if the
// option is nil. The option must be locked.
func (option *Option) copyOrNil() *Option {
	if option == nil {
		return nil
	}
	return &Option{
		Name:            option.Name,
		Key:             option.Key,
		Description:     option.Description,
		OptType:         option.OptType,
		DefaultValue:    option.DefaultValue,
		ValidationRegex: option.ValidationRegex,
		PossibleValues:  option.PossibleValues,
	}
}

// IsSetByUser returns whether the option has been set by the user.
func (option *Option) IsSetByUser() bool {
	option.Lock()
	defer option.Unlock()

	return option.activeValue != nil
}

// UserValue returns the value set by the user or nil if the value has not
// been changed from the default.
func (option *Option) UserValue() any {
	option.Lock()
	defer option.Unlock()

	if option.activeValue == nil {
		return nil
	}
	return option.activeValue.getData(option)
}
