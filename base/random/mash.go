package random

import (
	"unicode/utf16"
)

const (
	mashInit   = 0xefc8249d
	mashFactor = 0.02519603282416938

	twoPow32    = 4294967296.0           // 2^32
	twoPowNeg32 = 2.3283064365386963e-10 // 2^-32
)

// mash is the seed mixing function of the Alea generator. It folds strings
// into a 32 bit accumulator. The accumulator is kept as a float64 between
// characters, as values above 2^32 and fractions carry over into the next
// character.
type mash struct {
	n float64
}

func newMash() *mash {
	return &mash{n: mashInit}
}

// toUint32 truncates a non-negative float64 to its lower 32 bits.
func toUint32(x float64) float64 {
	return float64(uint32(uint64(x)))
}

// mix folds every UTF-16 code unit of data into the accumulator and returns
// the accumulator as a fraction in [0,1).
func (m *mash) mix(data string) float64 {
	n := m.n
	for _, ch := range utf16.Encode([]rune(data)) {
		n += float64(ch)
		h := mashFactor * n
		n = toUint32(h)
		h -= n
		h *= n
		n = toUint32(h)
		h -= n
		n += float64(h * twoPow32)
	}
	m.n = n
	return toUint32(n) * twoPowNeg32
}
