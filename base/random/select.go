package random

import (
	"fmt"
	"strings"
	"sync"

	"github.com/safing/random/base/log"
	"github.com/safing/random/base/rng"
)

// SourcePreference selects which source a generator should be built on.
type SourcePreference string

// Source preferences.
const (
	PreferAuto    SourcePreference = "auto"
	PreferFortuna SourcePreference = "fortuna"
	PreferOS      SourcePreference = "os"
	PreferAlea    SourcePreference = "alea"
)

// ParseSourcePreference parses a source preference. An empty string selects
// PreferAuto.
func ParseSourcePreference(s string) (SourcePreference, error) {
	switch pref := SourcePreference(strings.ToLower(strings.TrimSpace(s))); pref {
	case "":
		return PreferAuto, nil
	case PreferAuto, PreferFortuna, PreferOS, PreferAlea:
		return pref, nil
	default:
		return "", fmt.Errorf("unknown random source %q", s)
	}
}

// CreateWithSeeds returns a reproducible generator seeded with the given
// values. Equal seeds always produce equal output. The generator is NOT
// cryptographically secure.
func CreateWithSeeds(seeds ...any) (*Generator, error) {
	if len(seeds) == 0 {
		return nil, ErrNoSeeds
	}
	return NewGenerator(NewAlea(seeds...), KindAlea, false), nil
}

// NewInsecure returns a generator seeded from the given seed source, or
// from AmbientSeeds if nil.
func NewInsecure(seeds SeedSource) *Generator {
	if seeds == nil {
		seeds = AmbientSeeds
	}
	return NewGenerator(NewAlea(seeds.Seeds()...), KindAlea, false)
}

// Select returns a generator for the given preference.
//
// PreferAuto uses the fortuna CSPRNG if it is running, then the operating
// system source and finally falls back to a generator seeded from ambient,
// which is not secure. Explicit preferences fail with ErrSourceUnavailable
// if the requested strong source cannot be used.
func Select(pref SourcePreference, ambient SeedSource) (*Generator, error) {
	switch pref {
	case PreferFortuna:
		if !rng.Ready() {
			return nil, fmt.Errorf("%w: fortuna is not running", ErrSourceUnavailable)
		}
		return fortunaGenerator(), nil

	case PreferOS:
		if err := checkSource(OSSource()); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrSourceUnavailable, err)
		}
		return NewGenerator(OSSource(), KindOS, true), nil

	case PreferAlea:
		return NewInsecure(ambient), nil

	case PreferAuto, "":
		if rng.Ready() {
			return fortunaGenerator(), nil
		}
		err := checkSource(OSSource())
		if err == nil {
			return NewGenerator(OSSource(), KindOS, true), nil
		}

		log.Warningf("random: no strong source available (%s), falling back to insecure generator", err)
		countInsecureFallback()
		return NewInsecure(ambient), nil

	default:
		return nil, fmt.Errorf("unknown random source %q", pref)
	}
}

func fortunaGenerator() *Generator {
	return NewGenerator(FortunaSource(), KindFortuna, true)
}

// checkSource checks whether a strong source can deliver bytes.
func checkSource(src *ReaderSource) error {
	var b [1]byte
	_, err := src.Read(b[:])
	return err
}

var (
	defaultGenerator     *Generator
	defaultGeneratorLock sync.Mutex
)

// Default returns the process wide generator. It is selected with PreferAuto
// on first use, unless set before with SetDefault.
func Default() *Generator {
	defaultGeneratorLock.Lock()
	defer defaultGeneratorLock.Unlock()

	if defaultGenerator == nil {
		g, err := Select(PreferAuto, AmbientSeeds)
		if err != nil {
			// Unreachable with PreferAuto, which always falls back.
			log.Errorf("random: failed to select default generator: %s", err)
			return &Generator{}
		}
		defaultGenerator = g
	}
	return defaultGenerator
}

// SetDefault replaces the process wide generator. Passing nil resets it, so
// the next call to Default selects a new one.
func SetDefault(g *Generator) {
	defaultGeneratorLock.Lock()
	defer defaultGeneratorLock.Unlock()

	defaultGenerator = g
}
