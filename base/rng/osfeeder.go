package rng

import (
	"crypto/rand"
	"fmt"

	"github.com/safing/random/service/mgr"
)

// osFeeder keeps a feeder supplied with full entropy batches from the
// operating system.
func osFeeder(w *mgr.WorkerCtx) error {
	feeder := NewFeeder("os")
	defer feeder.CloseFeeder()

	batch := minFeedEntropy / 8
	for {
		data := make([]byte, batch)
		if _, err := rand.Read(data); err != nil {
			return fmt.Errorf("could not read entropy from os: %w", err)
		}
		if err := feeder.supply(w.Ctx(), data, batch*8); err != nil {
			return nil
		}
	}
}
