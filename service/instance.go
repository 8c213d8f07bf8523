package service

import (
	"fmt"

	"github.com/safing/random/base/api"
	"github.com/safing/random/base/config"
	"github.com/safing/random/base/journal"
	"github.com/safing/random/base/log"
	"github.com/safing/random/base/random"
	"github.com/safing/random/base/rng"
	"github.com/safing/random/service/mgr"
)

// Instance is an instance of the random service.
type Instance struct {
	*mgr.Group

	cfg *ServiceConfig

	rng    *rng.Rng
	random *random.Random
	api    *api.API
}

// New returns a new random service instance. The configuration file is
// loaded and logging is started before the modules are created.
func New(cfg *ServiceConfig) (*Instance, error) {
	if err := cfg.Init(); err != nil {
		return nil, err
	}

	// Start logging before the modules are created, so that they use the
	// right logger. The level from the config file is applied later.
	if err := log.Start(cfg.LogLevel); err != nil {
		return nil, err
	}

	// Create instance to pass it to modules.
	instance := &Instance{
		cfg: cfg,
	}

	var err error
	instance.rng, err = rng.New(instance)
	if err != nil {
		return nil, fmt.Errorf("create rng module: %w", err)
	}
	instance.random, err = random.New(instance)
	if err != nil {
		return nil, fmt.Errorf("create random module: %w", err)
	}
	if cfg.EnableAPI {
		instance.api, err = api.New(instance)
		if err != nil {
			return nil, fmt.Errorf("create api module: %w", err)
		}
	}
	if err := registerConfig(); err != nil {
		return nil, fmt.Errorf("register config: %w", err)
	}

	// Load config after all options are registered.
	config.SetConfigFile(cfg.ConfigFile)
	if err := config.LoadConfig(); err != nil {
		// Invalid values are reported, valid ones are applied.
		log.Warningf("service: %s", err)
	}

	// Command line takes precedence over the config file.
	if cfg.LogLevel == "" {
		if level := log.ParseLevel(logLevelOption()); level != 0 {
			log.SetLogLevel(level)
		}
	}

	// Add all modules to instance group.
	// rng must be started before random to be selectable.
	instance.Group = mgr.NewGroup(
		instance.rng,
		instance.random,
		instance.api,
	)

	return instance, nil
}

// Seeds returns the seeds given on the command line.
func (i *Instance) Seeds() []any {
	seeds := make([]any, 0, len(i.cfg.Seeds))
	for _, seed := range i.cfg.Seeds {
		seeds = append(seeds, seed)
	}
	return seeds
}

// SourcePreference returns the random source given on the command line.
func (i *Instance) SourcePreference() string {
	return i.cfg.Source
}

// Generator returns the default generator. The instance must be started.
func (i *Instance) Generator() *random.Generator {
	return random.Default()
}

// OpenJournal opens the configured seed journal.
func (i *Instance) OpenJournal() (*journal.Journal, error) {
	return journal.Open(journalPathOption())
}

// RNG returns the rng module.
func (i *Instance) RNG() *rng.Rng {
	return i.rng
}

// Random returns the random module.
func (i *Instance) Random() *random.Random {
	return i.random
}

// API returns the api module.
func (i *Instance) API() *api.API {
	return i.api
}
