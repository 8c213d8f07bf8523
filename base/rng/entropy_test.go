package rng

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFeeder(t *testing.T) {
	t.Parallel()

	// Not closed, a blocked supply call below is still pending at the end.
	f := NewFeeder("test")

	assert.Eventually(t, f.NeedsEntropy, time.Second, time.Millisecond)
	f.SupplyEntropy([]byte{0}, 0)
	f.SupplyEntropyAsInt(0, 0)
	f.SupplyEntropyIfNeeded([]byte{0}, 0)
	f.SupplyEntropyAsIntIfNeeded(0, 0)

	// A full batch stops gathering until the batch was taken.
	f.SupplyEntropyAsInt(0, minFeedEntropy)
	assert.Eventually(t, func() bool {
		return !f.NeedsEntropy()
	}, time.Second, time.Millisecond)

	blocked := func(supply func()) func() bool {
		done := make(chan struct{})
		go func() {
			supply()
			close(done)
		}()
		return func() bool {
			select {
			case <-done:
				return true
			default:
				return false
			}
		}
	}

	// Non-blocking calls return right away.
	assert.Eventually(t, blocked(func() { f.SupplyEntropyIfNeeded([]byte{0}, 0) }), 100*time.Millisecond, time.Millisecond)
	assert.Eventually(t, blocked(func() { f.SupplyEntropyAsIntIfNeeded(0, 0) }), 100*time.Millisecond, time.Millisecond)

	// Blocking calls wait for the feeder.
	assert.Never(t, blocked(func() { f.SupplyEntropy([]byte{0}, 0) }), 20*time.Millisecond, time.Millisecond)
}

func TestIntToBytes(t *testing.T) {
	t.Parallel()

	assert.Equal(t, []byte{1, 0, 0, 0, 0, 0, 0, 0}, intToBytes(1))
	assert.Equal(t, []byte{0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff}, intToBytes(-1))
}
