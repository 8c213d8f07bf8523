package random

import "errors"

var (
	// ErrNoSeeds is returned when a reproducible generator is requested with
	// an explicitly empty seed list.
	ErrNoSeeds = errors.New("no seeds provided")

	// ErrNoGenerator is returned when a value is requested from a generator
	// without any source of randomness.
	ErrNoGenerator = errors.New("no random generator available")

	// ErrEmptyChoice is returned when choosing from an empty collection.
	ErrEmptyChoice = errors.New("cannot choose from an empty collection")

	// ErrInvalidLength is returned for negative output lengths.
	ErrInvalidLength = errors.New("invalid length")

	// ErrSourceUnavailable is returned when an explicitly requested strong
	// source cannot be used.
	ErrSourceUnavailable = errors.New("random source unavailable")
)
