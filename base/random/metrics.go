package random

import (
	"sync"

	"github.com/safing/random/base/log"
	"github.com/safing/random/base/metrics"
)

var (
	// drawCounters maps a Kind to its *metrics.Counter. Failed registrations
	// are stored as nil so they are attempted only once.
	drawCounters     sync.Map
	drawCountersLock sync.Mutex

	insecureFallbacks     *metrics.Counter
	insecureFallbacksOnce sync.Once
)

// countDraw increments the draw counter of the given source kind. A draw is a
// single request to a source: one fraction or one byte read.
func countDraw(kind Kind) {
	if counter := drawCounter(kind); counter != nil {
		counter.Inc()
	}
}

func drawCounter(kind Kind) *metrics.Counter {
	if kind == "" {
		kind = KindCustom
	}
	if c, ok := drawCounters.Load(kind); ok {
		return c.(*metrics.Counter) //nolint:forcetypeassert
	}

	drawCountersLock.Lock()
	defer drawCountersLock.Unlock()

	if c, ok := drawCounters.Load(kind); ok {
		return c.(*metrics.Counter) //nolint:forcetypeassert
	}
	counter, err := metrics.NewCounter("random/draws_total", map[string]string{
		"source": string(kind),
	})
	if err != nil {
		log.Warningf("random: failed to register draw counter for %s: %s", kind, err)
	}
	drawCounters.Store(kind, counter)
	return counter
}

// countInsecureFallback increments the counter of selections that fell back
// to the non-secure generator.
func countInsecureFallback() {
	insecureFallbacksOnce.Do(func() {
		var err error
		insecureFallbacks, err = metrics.NewCounter("random/insecure_fallbacks_total", nil)
		if err != nil {
			log.Warningf("random: failed to register fallback counter: %s", err)
		}
	})

	if insecureFallbacks != nil {
		insecureFallbacks.Inc()
	}
}

// Draws returns the number of successful draws from sources of the given
// kind since the start of the program.
func Draws(kind Kind) uint64 {
	c, ok := drawCounters.Load(kind)
	if !ok {
		return 0
	}
	if counter := c.(*metrics.Counter); counter != nil { //nolint:forcetypeassert
		return counter.CurrentValue()
	}
	return 0
}
