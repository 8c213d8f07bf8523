package random

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"sync"
	"time"
)

const (
	aleaMultiplier = 2091639
	twoPowNeg53    = 1.1102230246251565e-16 // 2^-53
)

// nowMillis returns the current time in milliseconds and is replaced in tests.
var nowMillis = func() int64 {
	return time.Now().UnixMilli()
}

// Alea is Johannes Baagøe's Alea PRNG. It is fast and fully reproducible
// from its seeds, but NOT cryptographically secure. Never use it to generate
// keys, tokens or passwords that must not be guessed.
//
// Alea is safe for concurrent use; draws are serialized.
type Alea struct {
	lock sync.Mutex

	seeds []string

	s0, s1, s2 float64
	c          float64
}

// NewAlea returns a new Alea generator seeded with the given values. See
// SeedText for how values are converted to text. Without seeds, the current
// time in milliseconds is used as the only seed.
func NewAlea(seeds ...any) *Alea {
	textSeeds := make([]string, 0, len(seeds))
	for _, seed := range seeds {
		textSeeds = append(textSeeds, SeedText(seed))
	}
	if len(textSeeds) == 0 {
		textSeeds = append(textSeeds, strconv.FormatInt(nowMillis(), 10))
	}

	a := &Alea{
		seeds: textSeeds,
		c:     1,
	}

	m := newMash()
	a.s0 = m.mix(" ")
	a.s1 = m.mix(" ")
	a.s2 = m.mix(" ")

	for _, seed := range textSeeds {
		a.s0 -= m.mix(seed)
		if a.s0 < 0 {
			a.s0++
		}
		a.s1 -= m.mix(seed)
		if a.s1 < 0 {
			a.s1++
		}
		a.s2 -= m.mix(seed)
		if a.s2 < 0 {
			a.s2++
		}
	}

	return a
}

// Seeds returns a copy of the textual seed sequence the generator was
// initialized with.
func (a *Alea) Seeds() []string {
	return append([]string(nil), a.seeds...)
}

// Float64 advances the generator and returns the next fraction in [0,1).
func (a *Alea) Float64() float64 {
	a.lock.Lock()
	defer a.lock.Unlock()

	return a.next()
}

func (a *Alea) next() float64 {
	// The explicit conversions round each product on its own and forbid
	// fused multiply-add, which would change the stream on some platforms.
	t := float64(aleaMultiplier*a.s0) + float64(a.c*twoPowNeg32)
	a.s0 = a.s1
	a.s1 = a.s2
	a.c = math.Trunc(t)
	a.s2 = t - a.c
	return a.s2
}

// Fraction implements Source. It never fails.
func (a *Alea) Fraction() (float64, error) {
	return a.Float64(), nil
}

// Uint32 returns the next draw scaled to a 32 bit unsigned integer.
func (a *Alea) Uint32() uint32 {
	return uint32(a.Float64() * twoPow32)
}

// Fract53 returns a fraction in [0,1) with the full 53 bits of precision,
// consuming two draws.
func (a *Alea) Fract53() float64 {
	a.lock.Lock()
	defer a.lock.Unlock()

	high := a.next()
	low := math.Trunc(a.next() * 0x200000)
	return high + float64(low*twoPowNeg53)
}

// String returns a short description of the generator.
func (a *Alea) String() string {
	return fmt.Sprintf("Alea %q", a.seeds)
}

// SeedText converts a seed value to its textual representation:
// strings are used as is, fmt.Stringer values via String, integers in base 10,
// floats in the shortest representation of their float64 value (exponent
// notation below 1e-6 and from 1e21 on), everything else via fmt.Sprint.
func SeedText(seed any) string {
	switch v := seed.(type) {
	case string:
		return v
	case fmt.Stringer:
		return v.String()
	case []byte:
		return string(v)
	case bool:
		return strconv.FormatBool(v)
	case int:
		return strconv.FormatInt(int64(v), 10)
	case int8:
		return strconv.FormatInt(int64(v), 10)
	case int16:
		return strconv.FormatInt(int64(v), 10)
	case int32:
		return strconv.FormatInt(int64(v), 10)
	case int64:
		return strconv.FormatInt(v, 10)
	case uint:
		return strconv.FormatUint(uint64(v), 10)
	case uint8:
		return strconv.FormatUint(uint64(v), 10)
	case uint16:
		return strconv.FormatUint(uint64(v), 10)
	case uint32:
		return strconv.FormatUint(uint64(v), 10)
	case uint64:
		return strconv.FormatUint(v, 10)
	case float32:
		return formatFloat(float64(v))
	case float64:
		return formatFloat(v)
	default:
		return fmt.Sprint(v)
	}
}

func formatFloat(f float64) string {
	abs := math.Abs(f)
	switch {
	case abs == 0:
		return "0"
	case math.IsInf(f, 1):
		return "Infinity"
	case math.IsInf(f, -1):
		return "-Infinity"
	case abs >= 1e-6 && abs < 1e21:
		return strconv.FormatFloat(f, 'f', -1, 64)
	}

	// Exponents are written without leading zeros, eg. "1e-7".
	s := strconv.FormatFloat(f, 'g', -1, 64)
	if i := strings.IndexByte(s, 'e'); i >= 0 && i+2 < len(s) {
		exp := strings.TrimLeft(s[i+2:], "0")
		s = s[:i+2] + exp
	}
	return s
}
