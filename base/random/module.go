package random

import (
	"errors"
	"sync/atomic"

	"github.com/safing/random/service/mgr"
)

// Random is the module that selects the default generator and serves it
// through the API.
type Random struct {
	mgr *mgr.Manager

	instance instance
}

// Manager returns the module manager.
func (r *Random) Manager() *mgr.Manager {
	return r.mgr
}

// Start selects the default generator according to the configured source.
func (r *Random) Start() error {
	source := sourceOption()
	var seeds SeedSource = AmbientSeeds
	if r.instance != nil {
		if override := r.instance.SourcePreference(); override != "" {
			source = override
		}
		if s := r.instance.Seeds(); len(s) > 0 {
			seeds = StaticSeeds(s)
			source = string(PreferAlea)
		}
	}

	pref, err := ParseSourcePreference(source)
	if err != nil {
		return err
	}

	g, err := Select(pref, seeds)
	if err != nil {
		return err
	}
	SetDefault(g)

	r.mgr.Info("default generator selected", "source", g.Kind(), "secure", g.Secure())
	if !g.Secure() {
		r.mgr.Warn("default generator is not cryptographically secure")
	}
	return nil
}

// Stop resets the default generator.
func (r *Random) Stop() error {
	SetDefault(nil)
	return nil
}

var shimLoaded atomic.Bool

// New returns the random module. Only one instance is allowed.
func New(instance instance) (*Random, error) {
	if !shimLoaded.CompareAndSwap(false, true) {
		return nil, errors.New("only one instance allowed")
	}
	if err := registerConfig(); err != nil {
		return nil, err
	}
	if err := registerAPIEndpoints(); err != nil {
		return nil, err
	}

	return &Random{
		mgr:      mgr.New("random"),
		instance: instance,
	}, nil
}

type instance interface {
	// Seeds returns the seeds given by the user. If any are returned, the
	// default generator is reproducible.
	Seeds() []any
	// SourcePreference overrides the configured source, if not empty.
	SourcePreference() string
}
