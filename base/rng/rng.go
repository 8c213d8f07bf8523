package rng

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/aead/serpent"
	"github.com/seehuhn/fortuna"
	"github.com/tevino/abool"

	"github.com/safing/random/base/config"
	"github.com/safing/random/service/mgr"
)

// CfgOptionCipherKey is the config key of the block cipher used by fortuna.
const CfgOptionCipherKey = "random/cipher"

// Supported ciphers.
const (
	CipherAES     = "aes"
	CipherSerpent = "serpent"
)

// Rng is the module that runs the fortuna CSPRNG and its feeders.
type Rng struct {
	mgr *mgr.Manager

	instance instance
}

var (
	rng      *fortuna.Generator
	rngLock  sync.Mutex
	rngReady = abool.New()

	cipherOption config.StringOption
)

func newCipher(name string) func(key []byte) (cipher.Block, error) {
	return func(key []byte) (cipher.Block, error) {
		switch name {
		case CipherAES:
			return aes.NewCipher(key)
		case CipherSerpent:
			return serpent.NewCipher(key)
		default:
			return nil, fmt.Errorf("unknown or unsupported cipher: %s", name)
		}
	}
}

func registerConfig() error {
	err := config.Register(&config.Option{
		Name:         "RNG Cipher",
		Key:          CfgOptionCipherKey,
		Description:  "Block cipher the fortuna CSPRNG uses to generate output.",
		OptType:      config.OptTypeString,
		DefaultValue: CipherAES,
		PossibleValues: []config.PossibleValue{
			{Name: "AES", Value: CipherAES},
			{Name: "Serpent", Value: CipherSerpent},
		},
	})
	if err != nil {
		return err
	}
	cipherOption = config.GetAsString(CfgOptionCipherKey, CipherAES)
	return nil
}

// Manager returns the module manager.
func (r *Rng) Manager() *mgr.Manager {
	return r.mgr
}

// Start seeds the CSPRNG and starts the entropy feeders.
func (r *Rng) Start() error {
	cipherName := cipherOption()
	if _, err := newCipher(cipherName)(make([]byte, 32)); err != nil {
		return err
	}

	// Get initial entropy from OS, so the generator is usable right away.
	osEntropy := make([]byte, minFeedEntropy/8)
	if _, err := rand.Read(osEntropy); err != nil {
		return fmt.Errorf("could not read entropy from os: %w", err)
	}

	rngLock.Lock()
	rng = fortuna.NewGenerator(newCipher(cipherName))
	rng.Reseed(osEntropy)
	resetReseedCounters()
	rngLock.Unlock()

	rngReady.Set()
	r.mgr.Info("fortuna ready", "cipher", cipherName)

	// random source: OS
	r.mgr.Go("os rng feeder", osFeeder)
	// random source: goroutine ticks
	r.mgr.Go("tick rng feeder", tickFeeder)
	// drain feeders regularly
	r.mgr.Go("full feeder", fullFeeder)

	return nil
}

// Stop marks the CSPRNG as unavailable. Workers are stopped by the manager.
func (r *Rng) Stop() error {
	rngReady.UnSet()
	return nil
}

// Ready returns whether the CSPRNG has been seeded and can be read from.
func Ready() bool {
	return rngReady.IsSet()
}

var (
	module     *Rng
	shimLoaded atomic.Bool
)

// New returns the rng module. Only one instance is allowed.
func New(instance instance) (*Rng, error) {
	if !shimLoaded.CompareAndSwap(false, true) {
		return nil, errors.New("only one instance allowed")
	}
	if err := registerConfig(); err != nil {
		return nil, err
	}
	if err := registerMetrics(); err != nil {
		return nil, err
	}

	module = &Rng{
		mgr:      mgr.New("rng"),
		instance: instance,
	}
	return module, nil
}

type instance interface{}
