package rng

import (
	"time"

	"github.com/safing/random/service/mgr"
)

func getFullFeedDuration() time.Duration {
	// full feed every 5x time of reseedAfterSeconds, at most once every ten minutes
	secsUntilFullFeed := reseedAfterSeconds * 5
	if secsUntilFullFeed < 600 {
		secsUntilFullFeed = 600
	}

	return time.Duration(secsUntilFullFeed) * time.Second
}

// fullFeeder regularly reseeds the RNG with all entropy that is pending.
func fullFeeder(ctx *mgr.WorkerCtx) error {
	ticker := time.NewTicker(getFullFeedDuration())
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			drainFeeders()
		case <-ctx.Done():
			return nil
		}
	}
}

// drainFeeders reseeds the RNG with all entropy that is currently offered
// by feeders without waiting for more. It returns the number of reseeds.
func drainFeeders() (n int) {
	rngLock.Lock()
	defer rngLock.Unlock()

	for {
		select {
		case data := <-feedData:
			rng.Reseed(data)
			countReseed()
			n++
		default:
			if n > 0 {
				resetReseedCounters()
			}
			return n
		}
	}
}
