package random

import (
	"encoding/hex"
	"fmt"
	"io"
	"math"
	"strings"
	"unicode/utf8"

	"github.com/gofrs/uuid"
)

// Source is the primitive every generator is built on.
type Source interface {
	// Fraction returns a uniformly distributed value in [0,1).
	Fraction() (float64, error)
}

// ByteSource is a Source with a native byte oriented strong source.
// Generators use the bytes directly where possible.
type ByteSource interface {
	Source
	Read(p []byte) (n int, err error)
}

// Kind describes which kind of source a Generator draws from.
type Kind string

// Source kinds.
const (
	KindOS      Kind = "os"
	KindFortuna Kind = "fortuna"
	KindAlea    Kind = "alea"
	KindCustom  Kind = "custom"
)

// Generator derives all random values from a single Source.
// The zero value has no source and fails with ErrNoGenerator.
type Generator struct {
	src    Source
	kind   Kind
	secure bool
}

// NewGenerator returns a Generator for the given source. The secure flag must only
// be set for cryptographically strong sources.
func NewGenerator(src Source, kind Kind, secure bool) *Generator {
	return &Generator{
		src:    src,
		kind:   kind,
		secure: secure,
	}
}

// Kind returns the kind of the underlying source.
func (g *Generator) Kind() Kind {
	return g.kind
}

// Secure reports whether the generator draws from a cryptographically strong
// source. Security sensitive callers must reject generators where this is false.
func (g *Generator) Secure() bool {
	return g.src != nil && g.secure
}

// Source returns the underlying source.
func (g *Generator) Source() Source {
	return g.src
}

// Fraction returns a uniformly distributed value in [0,1).
func (g *Generator) Fraction() (float64, error) {
	if g == nil || g.src == nil {
		return 0, ErrNoGenerator
	}

	f, err := g.src.Fraction()
	if err != nil {
		return 0, err
	}
	countDraw(g.kind)
	return f, nil
}

func (g *Generator) index(length int) (int, error) {
	f, err := g.Fraction()
	if err != nil {
		return 0, err
	}
	return int(math.Floor(f * float64(length))), nil
}

// Choice returns a random element of items.
func Choice[T any](g *Generator, items []T) (T, error) {
	var zero T
	if len(items) == 0 {
		return zero, ErrEmptyChoice
	}

	i, err := g.index(len(items))
	if err != nil {
		return zero, err
	}
	return items[i], nil
}

// ChoiceString returns a random character of s.
func (g *Generator) ChoiceString(s string) (string, error) {
	if s == "" {
		return "", ErrEmptyChoice
	}

	// Fast path for ASCII-only strings.
	if len(s) == utf8.RuneCountInString(s) {
		i, err := g.index(len(s))
		if err != nil {
			return "", err
		}
		return s[i : i+1], nil
	}

	r, err := Choice(g, []rune(s))
	if err != nil {
		return "", err
	}
	return string(r), nil
}

// String returns a string of length characters drawn from alphabet.
func (g *Generator) String(length int, alphabet string) (string, error) {
	if err := checkLength(length); err != nil {
		return "", err
	}
	if alphabet == "" {
		return "", ErrEmptyChoice
	}

	var b strings.Builder
	b.Grow(length)
	for range length {
		c, err := g.ChoiceString(alphabet)
		if err != nil {
			return "", err
		}
		b.WriteString(c)
	}
	return b.String(), nil
}

// HexString returns a string of digits lowercase hex characters.
func (g *Generator) HexString(digits int) (string, error) {
	if err := checkLength(digits); err != nil {
		return "", err
	}

	if g == nil || g.src == nil {
		return "", ErrNoGenerator
	}

	byteSrc, ok := g.src.(ByteSource)
	if !ok {
		return g.String(digits, HexAlphabet)
	}

	// An odd number of digits wastes the last half byte.
	data := make([]byte, digits/2+digits%2)
	if _, err := io.ReadFull(byteSrc, data); err != nil {
		return "", err
	}
	countDraw(g.kind)
	return hex.EncodeToString(data)[:digits], nil
}

// ID returns an identifier of DefaultIDLength characters from the
// UnmistakableAlphabet, eg. "Jjwjg6gouWLXhMGKW".
func (g *Generator) ID() (string, error) {
	return g.IDOfLength(DefaultIDLength)
}

// IDOfLength returns an identifier of the given length from the
// UnmistakableAlphabet.
func (g *Generator) IDOfLength(length int) (string, error) {
	return g.String(length, UnmistakableAlphabet)
}

// Secret returns a secret of DefaultSecretLength characters from the
// SecretAlphabet, which carries 256 bits of entropy.
func (g *Generator) Secret() (string, error) {
	return g.SecretOfLength(DefaultSecretLength)
}

// SecretOfLength returns a secret of the given length from the SecretAlphabet.
func (g *Generator) SecretOfLength(length int) (string, error) {
	return g.String(length, SecretAlphabet)
}

// Read fills p with random bytes. Sources without a native byte source
// produce one byte per fraction. Every successful Read counts as a single draw.
func (g *Generator) Read(p []byte) (n int, err error) {
	if g == nil || g.src == nil {
		return 0, ErrNoGenerator
	}

	if byteSrc, ok := g.src.(ByteSource); ok {
		n, err = io.ReadFull(byteSrc, p)
		if err == nil {
			countDraw(g.kind)
		}
		return n, err
	}

	for i := range p {
		f, err := g.src.Fraction()
		if err != nil {
			return i, err
		}
		p[i] = byte(f * 256)
	}
	countDraw(g.kind)
	return len(p), nil
}

// Bytes returns n random bytes.
func (g *Generator) Bytes(n int) ([]byte, error) {
	if err := checkLength(n); err != nil {
		return nil, err
	}

	b := make([]byte, n)
	if _, err := g.Read(b); err != nil {
		return nil, err
	}
	return b, nil
}

func checkLength(length int) error {
	if length < 0 || length > MaxLength {
		return fmt.Errorf("%w: %d is not within 0 and %d", ErrInvalidLength, length, MaxLength)
	}
	return nil
}

// UUID returns a random version 4 UUID. Under a seeded generator the UUIDs
// are reproducible and must not be used where unpredictability matters.
func (g *Generator) UUID() (uuid.UUID, error) {
	var u uuid.UUID
	if _, err := g.Read(u[:]); err != nil {
		return uuid.Nil, err
	}
	u.SetVersion(uuid.V4)
	u.SetVariant(uuid.VariantRFC4122)
	return u, nil
}
