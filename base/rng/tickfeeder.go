package rng

import (
	"time"

	"github.com/safing/random/service/mgr"
)

// tickBits is the number of ticks collected into one value.
const tickBits = 64

// getTickFeederTickDuration returns the tick interval that gathers a full
// batch within a tenth of the reseed interval, but no faster than every 10ms.
func getTickFeederTickDuration() time.Duration {
	// One tick yields about 1/8 bit of entropy.
	ticksNeeded := minFeedEntropy * 8
	interval := time.Duration(reseedAfterSeconds) * 100 * time.Millisecond / time.Duration(ticksNeeded)
	return max(interval, 10*time.Millisecond)
}

// tickFeeder collects the lowest bit of the wall clock nanoseconds whenever a
// ticker fires. Scheduling jitter makes that bit unpredictable, more so under
// load.
func tickFeeder(w *mgr.WorkerCtx) error {
	feeder := NewFeeder("tick")
	defer feeder.CloseFeeder()

	ticker := time.NewTicker(getTickFeederTickDuration())
	defer ticker.Stop()

	var (
		value int64
		ticks int
	)
	for {
		select {
		case <-ticker.C:
			value = value<<1 | time.Now().UnixNano()&1
			ticks++
		case <-w.Done():
			return nil
		}

		if ticks < tickBits {
			continue
		}
		if err := feeder.supply(w.Ctx(), intToBytes(value), tickBits/8); err != nil {
			return nil
		}
		value, ticks = 0, 0
	}
}
