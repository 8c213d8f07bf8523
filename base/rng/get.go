package rng

import (
	"encoding/binary"
	"errors"
	"io"
	"math"
	"time"
)

const (
	reseedAfterSeconds = 600     // ten minutes
	reseedAfterBytes   = 1048576 // one megabyte
)

var (
	// Reader provides a global instance to read from the RNG.
	Reader io.Reader = reader{}

	// ErrNotReady is returned when the RNG is read from before it was started.
	ErrNotReady = errors.New("RNG is not ready yet")

	rngBytesRead uint64
	rngLastFeed  = time.Now()
)

// reader provides an io.Reader interface.
type reader struct{}

// resetReseedCounters must be called with rngLock held.
func resetReseedCounters() {
	rngBytesRead = 0
	rngLastFeed = time.Now()
}

// checkEntropy must be called with rngLock held.
func checkEntropy() (err error) {
	if !rngReady.IsSet() {
		return ErrNotReady
	}
	if rngBytesRead > reseedAfterBytes ||
		int(time.Since(rngLastFeed).Seconds()) > reseedAfterSeconds {
		select {
		case r := <-feedData:
			rng.Reseed(r)
			countReseed()
			resetReseedCounters()
		case <-time.After(1 * time.Second):
			return errors.New("failed to get new entropy")
		}
	}
	return nil
}

// Read reads random bytes into the supplied byte slice.
func Read(b []byte) (n int, err error) {
	rngLock.Lock()
	defer rngLock.Unlock()

	if err := checkEntropy(); err != nil {
		return 0, err
	}

	rngBytesRead += uint64(len(b))
	return copy(b, rng.PseudoRandomData(uint(len(b)))), nil
}

// Read implements the io.Reader interface.
func (r reader) Read(b []byte) (n int, err error) {
	return Read(b)
}

// Bytes allocates a new byte slice of given length and fills it with random data.
func Bytes(n int) ([]byte, error) {
	b := make([]byte, n)
	if _, err := Read(b); err != nil {
		return nil, err
	}
	return b, nil
}

// Number returns a random number from 0 to (incl.) max.
func Number(max uint64) (uint64, error) {
	switch max {
	case 0:
		return 0, nil
	case math.MaxUint64:
		randomBytes, err := Bytes(8)
		if err != nil {
			return 0, err
		}
		return binary.LittleEndian.Uint64(randomBytes), nil
	}

	// Reject candidates from the incomplete last interval to avoid modulo bias.
	max++
	secureLimit := math.MaxUint64 - (math.MaxUint64 % max)

	for {
		randomBytes, err := Bytes(8)
		if err != nil {
			return 0, err
		}

		candidate := binary.LittleEndian.Uint64(randomBytes)
		if candidate < secureLimit {
			return candidate % max, nil
		}
	}
}
