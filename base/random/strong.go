package random

import (
	"crypto/rand"
	"encoding/binary"
	"fmt"
	"io"

	"github.com/safing/random/base/rng"
)

// ReaderSource turns a byte oriented strong source into a Source.
// It is safe for concurrent use if the reader is.
type ReaderSource struct {
	r io.Reader
}

var _ ByteSource = &ReaderSource{}

// NewReaderSource returns a Source that reads from r.
func NewReaderSource(r io.Reader) *ReaderSource {
	return &ReaderSource{r: r}
}

// OSSource returns a Source reading from the operating system CSPRNG.
func OSSource() *ReaderSource {
	return NewReaderSource(rand.Reader)
}

// FortunaSource returns a Source reading from the fortuna CSPRNG of the rng
// package, which must be started before use.
func FortunaSource() *ReaderSource {
	return NewReaderSource(rng.Reader)
}

// Read fills p completely or fails.
func (s *ReaderSource) Read(p []byte) (n int, err error) {
	return readFull(s.r, p)
}

// Fraction returns four random bytes as a fraction in [0,1).
func (s *ReaderSource) Fraction() (float64, error) {
	var b [4]byte
	if _, err := readFull(s.r, b[:]); err != nil {
		return 0, err
	}
	return float64(binary.BigEndian.Uint32(b[:])) * twoPowNeg32, nil
}

func readFull(r io.Reader, p []byte) (int, error) {
	n, err := io.ReadFull(r, p)
	if err != nil {
		return n, fmt.Errorf("failed to read random bytes: %w", err)
	}
	return n, nil
}
