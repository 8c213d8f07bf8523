package config

import (
	"errors"
	"fmt"
	"math"
	"reflect"
)

// isAllowedPossibleValue checks if value is defined as a PossibleValue
// in opt. If there are no possible values defined, any value is allowed.
func isAllowedPossibleValue(opt *Option, value interface{}) error {
	if opt.PossibleValues == nil {
		return nil
	}

	for _, val := range opt.PossibleValues {
		compareAgainst := val.Value
		valueType := reflect.TypeOf(value)

		// Integers loaded from JSON are float64, convert before comparing.
		if valueType != nil && reflect.TypeOf(val.Value).ConvertibleTo(valueType) {
			compareAgainst = reflect.ValueOf(val.Value).Convert(valueType).Interface()
		}
		if compareAgainst == value {
			return nil
		}
	}

	return errors.New("value is not allowed")
}

// validateValue ensures that value matches the expected type of option.
func validateValue(option *Option, value interface{}) (*valueCache, *ValidationError) {
	if err := isAllowedPossibleValue(option, value); err != nil {
		return nil, &ValidationError{
			Option: option.copyOrNil(),
			Err:    err,
		}
	}

	switch v := value.(type) {
	case string:
		if option.OptType != OptTypeString {
			return nil, invalid(option, "expected type %s, got type %T", getTypeName(option.OptType), v)
		}
		if option.compiledRegex != nil && !option.compiledRegex.MatchString(v) {
			return nil, invalid(option, "did not match validation regex")
		}
		return &valueCache{stringVal: v}, nil

	case int, int8, int16, int32, int64, uint, uint8, uint16, uint32, float32, float64:
		// uint64 is omitted, as it does not fit in a int64
		if option.OptType != OptTypeInt {
			return nil, invalid(option, "expected type %s, got type %T", getTypeName(option.OptType), v)
		}
		f := reflect.ValueOf(v).Convert(reflect.TypeOf(float64(0))).Float()
		if math.Remainder(f, 1) != 0 {
			return nil, invalid(option, "failed to convert %v to int64", v)
		}
		if option.compiledRegex != nil && !option.compiledRegex.MatchString(fmt.Sprintf("%d", int64(f))) {
			return nil, invalid(option, "did not match validation regex")
		}
		return &valueCache{intVal: int64(f)}, nil

	case bool:
		if option.OptType != OptTypeBool {
			return nil, invalid(option, "expected type %s, got type %T", getTypeName(option.OptType), v)
		}
		return &valueCache{boolVal: v}, nil

	default:
		return nil, invalid(option, "invalid option value type: %T", value)
	}
}

// ValidationError error holds details about a config option value validation error.
type ValidationError struct {
	Option *Option
	Err    error
}

// Error returns the formatted error.
func (ve *ValidationError) Error() string {
	return fmt.Sprintf("validation of %s failed: %s", ve.Option.Key, ve.Err)
}

// Unwrap returns the wrapped error.
func (ve *ValidationError) Unwrap() error {
	return ve.Err
}

func invalid(option *Option, format string, a ...interface{}) *ValidationError {
	return &ValidationError{
		Option: option.copyOrNil(),
		Err:    fmt.Errorf(format, a...),
	}
}
