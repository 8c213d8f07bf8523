package api

import (
	"context"
	"errors"
	"net/http"
	"path"
	"strings"
	"sync"
	"time"

	"github.com/gorilla/mux"

	"github.com/safing/random/base/log"
	"github.com/safing/random/service/mgr"
)

var (
	// mainMux is the main mux router.
	mainMux = mux.NewRouter()

	handlerLock sync.RWMutex
)

// RegisterHandler registers a handler with the API endpoint.
func RegisterHandler(path string, handler http.Handler) *mux.Route {
	handlerLock.Lock()
	defer handlerLock.Unlock()
	return mainMux.Handle(path, handler)
}

// RegisterHandleFunc registers a handle function with the API endpoint.
func RegisterHandleFunc(path string, handleFunc func(http.ResponseWriter, *http.Request)) *mux.Route {
	handlerLock.Lock()
	defer handlerLock.Unlock()
	return mainMux.HandleFunc(path, handleFunc)
}

// Router returns the handler serving all registered handlers and endpoints.
// Requests are handled as workers of the given manager, if not nil.
func Router(m *mgr.Manager) http.Handler {
	return &mainHandler{
		mux: mainMux,
		mgr: m,
	}
}

// serve runs the given server until the worker context is canceled.
func serve(w *mgr.WorkerCtx, server *http.Server) error {
	serverErr := make(chan error, 1)
	go func() {
		log.Infof("api: starting to listen on %s", server.Addr)
		serverErr <- server.ListenAndServe()
	}()

	select {
	case err := <-serverErr:
		// return on shutdown error
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-w.Done():
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return server.Shutdown(ctx)
	}
}

type mainHandler struct {
	mux *mux.Router
	mgr *mgr.Manager
}

func (mh *mainHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if mh.mgr == nil {
		mh.handle(w, r)
		return
	}

	_ = mh.mgr.Do("http request", func(_ *mgr.WorkerCtx) error {
		mh.handle(w, r)
		return nil
	})
}

func (mh *mainHandler) handle(w http.ResponseWriter, r *http.Request) {
	log.Tracef("api request: %s ___ %s %s", r.RemoteAddr, r.Method, r.RequestURI)

	// Add security headers.
	w.Header().Set("Referrer-Policy", "same-origin")
	w.Header().Set("X-Content-Type-Options", "nosniff")
	w.Header().Set("X-Frame-Options", "deny")

	// Clean URL.
	cleanedRequestPath := cleanRequestPath(r.URL.Path)

	// If the cleaned URL differs from the original one, redirect to there.
	if r.URL.Path != cleanedRequestPath {
		redirURL := *r.URL
		redirURL.Path = cleanedRequestPath
		http.Redirect(w, r, redirURL.String(), http.StatusMovedPermanently)
		return
	}

	// Get handler for request.
	// Gorilla does not support handling this on our own very well.
	// See github.com/gorilla/mux.ServeHTTP for reference.
	var match mux.RouteMatch
	handlerLock.RLock()
	matched := mh.mux.Match(r, &match)
	handlerLock.RUnlock()
	if !matched || match.Handler == nil {
		switch {
		case errors.Is(match.MatchErr, mux.ErrMethodMismatch):
			http.Error(w, "Method not allowed.", http.StatusMethodNotAllowed)
		default:
			log.Debugf("api: no handler registered for %s", r.URL.Path)
			http.Error(w, "Not found.", http.StatusNotFound)
		}
		return
	}

	// Add request context.
	apiRequest := newRequest(r, match.Route, match.Vars)
	r = r.WithContext(context.WithValue(r.Context(), RequestContextKey, apiRequest))
	apiRequest.Request = r

	// Format panics in handler.
	defer func() {
		if panicValue := recover(); panicValue != nil {
			// Log failure.
			log.Errorf("api: handler panic: %s", panicValue)
			// Respond with a server error.
			http.Error(w, "Internal Server Error.", http.StatusInternalServerError)
		}
	}()

	// Handle with registered handler.
	match.Handler.ServeHTTP(w, r)
}

// cleanRequestPath cleans and returns a request URL.
func cleanRequestPath(requestPath string) string {
	// If the request URL is empty, return a request for "root".
	if requestPath == "" || requestPath == "/" {
		return "/"
	}
	// If the request URL does not start with a slash, prepend it.
	if !strings.HasPrefix(requestPath, "/") {
		requestPath = "/" + requestPath
	}

	// Clean path to remove any relative parts.
	cleanedRequestPath := path.Clean(requestPath)
	// Because path.Clean removes a trailing slash, we need to add it back here
	// if the original URL had one.
	if strings.HasSuffix(requestPath, "/") {
		cleanedRequestPath += "/"
	}

	return cleanedRequestPath
}
