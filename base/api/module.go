package api

import (
	"errors"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/safing/random/service/mgr"
)

// API is the HTTP API module.
type API struct {
	mgr *mgr.Manager

	instance instance
}

// Manager returns the module manager.
func (api *API) Manager() *mgr.Manager {
	return api.mgr
}

// Start starts the HTTP server on the configured listen address.
func (api *API) Start() error {
	server := &http.Server{
		Addr:              listenAddressConfig(),
		Handler:           Router(api.mgr),
		ReadHeaderTimeout: 10 * time.Second,
	}

	api.mgr.Go("http server", func(w *mgr.WorkerCtx) error {
		return serve(w, server)
	})
	return nil
}

// Stop stops the module. The server is shut down by its worker.
func (api *API) Stop() error {
	return nil
}

var shimLoaded atomic.Bool

// New returns the API module. Only one instance is allowed.
func New(instance instance) (*API, error) {
	if !shimLoaded.CompareAndSwap(false, true) {
		return nil, errors.New("only one instance allowed")
	}

	if err := registerConfig(); err != nil {
		return nil, err
	}
	if err := registerMetaEndpoints(); err != nil {
		return nil, err
	}

	return &API{
		mgr:      mgr.New("api"),
		instance: instance,
	}, nil
}

type instance interface{}
