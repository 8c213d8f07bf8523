package random

import (
	"math/rand/v2"
	"os"
	"time"

	"golang.org/x/term"

	"github.com/safing/random/base/info"
)

// SeedSource supplies the seed values for a generator that is not backed by
// a strong source.
type SeedSource interface {
	Seeds() []any
}

// SeedsFunc adapts a function to a SeedSource.
type SeedsFunc func() []any

// Seeds implements SeedSource.
func (fn SeedsFunc) Seeds() []any {
	return fn()
}

// StaticSeeds is a SeedSource that always returns the same seeds.
type StaticSeeds []any

// Seeds implements SeedSource.
func (s StaticSeeds) Seeds() []any {
	return s
}

// AmbientSeeds collects weak entropy from the environment of the process:
// the wall clock time, the terminal size, the client identification and one
// draw of the math/rand generator.
//
// None of these values are secret. Generators seeded from them are NOT
// cryptographically secure.
var AmbientSeeds SeedSource = SeedsFunc(ambientSeeds)

func ambientSeeds() []any {
	now := time.Now()
	width, height := terminalSize()

	return []any{
		now.UnixMilli(),
		width,
		height,
		info.UserAgent(),
		now.Nanosecond(),
		rand.Float64(), //nolint:gosec // Intentionally weak entropy.
	}
}

// terminalSize returns the size of the attached terminal, or 1x1 if there
// is none.
func terminalSize() (width, height int) {
	for _, f := range []*os.File{os.Stdout, os.Stderr, os.Stdin} {
		fd := int(f.Fd())
		if !term.IsTerminal(fd) {
			continue
		}
		w, h, err := term.GetSize(fd)
		if err == nil && w > 0 && h > 0 {
			return w, h
		}
	}
	return 1, 1
}
