// Package rng provides a feedable CSPRNG.
//
// CSPRNG used is fortuna: github.com/seehuhn/fortuna
// By default the CSPRNG is fed by three sources:
// - It starts with a seed from `crypto/rand` and periodically reseeds from there
// - A really simple tickfeeder which extracts entropy from the internal go scheduler using goroutines and is meant to be used under load.
// - A full feeder that regularly drains all pending entropy into the generator.
//
// The RNG can also be easily fed with additional sources via NewFeeder. Collected entropy
// and reseeds are counted in the random_rng_entropy_bits_total and
// random_rng_reseeds_total metrics.
// The random package wraps it as its preferred strong source.
package rng
