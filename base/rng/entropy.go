package rng

import (
	"context"
	"encoding/binary"

	"github.com/safing/structures/container"
	"github.com/tevino/abool"

	"github.com/safing/random/service/mgr"
)

// minFeedEntropy is the amount of entropy in bits a Feeder collects before it
// offers its data for reseeding.
const minFeedEntropy = 256

// feedData carries collected entropy batches from feeders to the generator.
var feedData = make(chan []byte)

// Feeder collects entropy from a single source. Once at least minFeedEntropy
// bits are pooled, the batch is offered to the generator and collection
// pauses until it was taken.
type Feeder struct {
	name  string
	input chan *entropyData

	gathering *abool.AtomicBool
	pool      *container.Container
	pooled    int64
}

type entropyData struct {
	data    []byte
	entropy int
}

// NewFeeder returns a new entropy Feeder and starts its collection worker.
// The rng module must exist.
func NewFeeder(name string) *Feeder {
	f := &Feeder{
		name:      name,
		input:     make(chan *entropyData),
		gathering: abool.NewBool(true),
		pool:      container.New(),
	}
	module.mgr.Go(name+" feeder", f.run)
	return f
}

// NeedsEntropy returns whether the feeder is currently gathering entropy.
func (f *Feeder) NeedsEntropy() bool {
	return f.gathering.IsSet()
}

// SupplyEntropy hands data carrying the given bits of entropy to the Feeder.
// It blocks until the Feeder took the data.
func (f *Feeder) SupplyEntropy(data []byte, entropy int) {
	_ = f.supply(context.Background(), data, entropy)
}

// SupplyEntropyIfNeeded is like SupplyEntropy, but returns immediately if the
// Feeder is not gathering or busy.
func (f *Feeder) SupplyEntropyIfNeeded(data []byte, entropy int) {
	if !f.gathering.IsSet() {
		return
	}

	select {
	case f.input <- &entropyData{data: data, entropy: entropy}:
	default:
	}
}

// SupplyEntropyAsInt supplies the 8 bytes of n, see SupplyEntropy.
func (f *Feeder) SupplyEntropyAsInt(n int64, entropy int) {
	f.SupplyEntropy(intToBytes(n), entropy)
}

// SupplyEntropyAsIntIfNeeded supplies the 8 bytes of n, see SupplyEntropyIfNeeded.
func (f *Feeder) SupplyEntropyAsIntIfNeeded(n int64, entropy int) {
	// Skip the allocation when nothing is needed.
	if f.gathering.IsSet() {
		f.SupplyEntropyIfNeeded(intToBytes(n), entropy)
	}
}

// CloseFeeder stops the collection worker. The Feeder must not be used afterwards.
func (f *Feeder) CloseFeeder() {
	close(f.input)
}

// supply blocks until the Feeder took the data or ctx is done.
func (f *Feeder) supply(ctx context.Context, data []byte, entropy int) error {
	select {
	case f.input <- &entropyData{data: data, entropy: entropy}:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (f *Feeder) run(w *mgr.WorkerCtx) error {
	defer f.gathering.UnSet()

	for {
		f.gathering.Set()
		for f.pooled < minFeedEntropy {
			select {
			case in, ok := <-f.input:
				if !ok {
					return nil
				}
				f.pool.Append(in.data)
				f.pooled += int64(in.entropy)
			case <-w.Done():
				return nil
			}
		}
		f.gathering.UnSet()

		select {
		case feedData <- f.pool.CompileData():
			countEntropy(f.pooled)
			w.Debug("entropy batch taken", "feeder", f.name, "bits", f.pooled)
		case <-w.Done():
			return nil
		}
		f.pool = container.New()
		f.pooled = 0
	}
}

func intToBytes(n int64) []byte {
	b := make([]byte, 8)
	binary.LittleEndian.PutUint64(b, uint64(n))
	return b
}
