package rng

import (
	"github.com/safing/random/base/metrics"
)

var (
	entropyBits *metrics.Counter
	reseeds     *metrics.Counter
)

func registerMetrics() (err error) {
	entropyBits, err = metrics.NewCounter("random/rng/entropy_bits_total", nil)
	if err != nil {
		return err
	}
	reseeds, err = metrics.NewCounter("random/rng/reseeds_total", nil)
	return err
}

func countEntropy(bits int64) {
	if entropyBits != nil && bits > 0 {
		entropyBits.Add(int(bits))
	}
}

// countReseed must be called with rngLock held.
func countReseed() {
	if reseeds != nil {
		reseeds.Inc()
	}
}
