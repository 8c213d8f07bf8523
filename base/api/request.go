package api

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/safing/random/base/log"
)

// Request is a support struct to pool more request related information.
type Request struct {
	// Request is the http request.
	*http.Request

	// InputData contains the request body for write operations.
	InputData []byte

	// Route of this request.
	Route *mux.Route

	// URLVars contains the URL variables extracted by the gorilla mux.
	URLVars map[string]string

	// ResponseHeader holds the response header.
	ResponseHeader http.Header
}

// apiRequestContextKey is a key used for the context key/value storage.
type apiRequestContextKey struct{}

// RequestContextKey is the key used to add the API request to the context.
var RequestContextKey = apiRequestContextKey{}

func newRequest(r *http.Request, route *mux.Route, vars map[string]string) *Request {
	if vars == nil {
		vars = mux.Vars(r)
	}
	// Be sure that URLVars always is a map.
	if vars == nil {
		vars = make(map[string]string)
	}

	return &Request{
		Request: r,
		Route:   route,
		URLVars: vars,
	}
}

// GetAPIRequest returns the API Request of the given http request.
func GetAPIRequest(r *http.Request) *Request {
	ar, ok := r.Context().Value(RequestContextKey).(*Request)
	if ok {
		return ar
	}
	return nil
}

// IntParam returns the integer value of the URL variable or query parameter
// with the given name. Missing values return the fallback.
func (ar *Request) IntParam(name string, fallback int) (int, error) {
	value, ok := ar.URLVars[name]
	if !ok {
		value = ar.URL.Query().Get(name)
	}
	if value == "" {
		return fallback, nil
	}

	n, err := strconv.Atoi(value)
	if err != nil {
		return 0, ErrorWithStatus(
			fmt.Errorf("invalid value for %s: %w", name, err),
			http.StatusBadRequest,
		)
	}
	return n, nil
}

// TextResponse writes a text response.
func TextResponse(w http.ResponseWriter, r *http.Request, text string) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Header().Set("X-Content-Type-Options", "nosniff")
	w.WriteHeader(http.StatusOK)
	_, err := fmt.Fprintln(w, text)
	if err != nil {
		log.Warningf("api: failed to write text response to %s: %s", r.RemoteAddr, err)
	}
}
