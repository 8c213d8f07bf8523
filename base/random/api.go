package random

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/safing/random/base/api"
)

// maxStreamCount limits the draws of a single stream request.
const maxStreamCount = 10000

func registerAPIEndpoints() error {
	if err := api.RegisterEndpoint(api.Endpoint{
		Name:        "Random Fraction",
		Description: "Returns a random fraction in [0,1) from the default generator.",
		Path:        "random/fraction",
		ActionFunc:  handleFraction,
	}); err != nil {
		return err
	}

	if err := api.RegisterEndpoint(api.Endpoint{
		Name:        "Random Hex String",
		Description: "Returns a random lowercase hex string with the requested number of digits.",
		Path:        "random/hex/{digits:[0-9]+}",
		ActionFunc:  handleHex,
	}); err != nil {
		return err
	}

	if err := api.RegisterEndpoint(api.Endpoint{
		Name:        "Random ID",
		Description: "Returns a random identifier built from characters that are hard to confuse.",
		Path:        "random/id",
		Parameters: []api.Parameter{{
			Method:      http.MethodGet,
			Field:       "length",
			Value:       strconv.Itoa(DefaultIDLength),
			Description: "Length of the identifier.",
		}},
		ActionFunc: handleID,
	}); err != nil {
		return err
	}

	if err := api.RegisterEndpoint(api.Endpoint{
		Name:        "Random Secret",
		Description: "Returns a random URL-safe secret. Fails if the default generator is not secure.",
		Path:        "random/secret",
		Parameters: []api.Parameter{{
			Method:      http.MethodGet,
			Field:       "length",
			Value:       strconv.Itoa(DefaultSecretLength),
			Description: "Length of the secret.",
		}},
		ActionFunc: handleSecret,
	}); err != nil {
		return err
	}

	if err := api.RegisterEndpoint(api.Endpoint{
		Name:        "Random UUID",
		Description: "Returns a random version 4 UUID.",
		Path:        "random/uuid",
		ActionFunc:  handleUUID,
	}); err != nil {
		return err
	}

	return api.RegisterEndpoint(api.Endpoint{
		Name:        "Reproducible Stream",
		Description: "Returns a stream of fractions of a generator seeded with the given seeds. Equal seeds always return the same stream.",
		Path:        "random/stream",
		Parameters: []api.Parameter{
			{
				Method:      http.MethodGet,
				Field:       "seed",
				Description: "Seed value, may be given multiple times.",
			},
			{
				Method:      http.MethodGet,
				Field:       "count",
				Value:       "10",
				Description: "Number of fractions to return.",
			},
		},
		StructFunc: handleStream,
	})
}

func handleFraction(_ *api.Request) (msg string, err error) {
	f, err := Default().Fraction()
	if err != nil {
		return "", err
	}
	return strconv.FormatFloat(f, 'f', -1, 64), nil
}

func handleHex(ar *api.Request) (msg string, err error) {
	digits, err := ar.IntParam("digits", 0)
	if err != nil {
		return "", err
	}
	return withStatus(Default().HexString(digits))
}

func handleID(ar *api.Request) (msg string, err error) {
	length, err := ar.IntParam("length", DefaultIDLength)
	if err != nil {
		return "", err
	}
	return withStatus(Default().IDOfLength(length))
}

func handleSecret(ar *api.Request) (msg string, err error) {
	g := Default()
	if !g.Secure() {
		return "", api.ErrorWithStatus(
			fmt.Errorf("%w: default generator is not secure", ErrSourceUnavailable),
			http.StatusServiceUnavailable,
		)
	}

	length, err := ar.IntParam("length", DefaultSecretLength)
	if err != nil {
		return "", err
	}
	return withStatus(g.SecretOfLength(length))
}

func handleUUID(_ *api.Request) (msg string, err error) {
	u, err := Default().UUID()
	if err != nil {
		return "", err
	}
	return u.String(), nil
}

// StreamResponse is returned by the stream endpoint.
type StreamResponse struct {
	Seeds     []string
	Fractions []float64
}

func handleStream(ar *api.Request) (i interface{}, err error) {
	seeds := ar.URL.Query()["seed"]
	if len(seeds) == 0 {
		return nil, api.ErrorWithStatus(ErrNoSeeds, http.StatusBadRequest)
	}

	count, err := ar.IntParam("count", 10)
	if err != nil {
		return nil, err
	}
	if count < 0 || count > maxStreamCount {
		return nil, api.ErrorWithStatus(
			fmt.Errorf("%w: count must be between 0 and %d", ErrInvalidLength, maxStreamCount),
			http.StatusBadRequest,
		)
	}

	seedValues := make([]any, 0, len(seeds))
	for _, seed := range seeds {
		seedValues = append(seedValues, seed)
	}
	alea := NewAlea(seedValues...)
	g := NewGenerator(alea, KindAlea, false)

	resp := &StreamResponse{
		Seeds:     alea.Seeds(),
		Fractions: make([]float64, 0, count),
	}
	for range count {
		f, err := g.Fraction()
		if err != nil {
			return nil, err
		}
		resp.Fractions = append(resp.Fractions, f)
	}
	return resp, nil
}

// withStatus maps input errors to a bad request status.
func withStatus(s string, err error) (string, error) {
	switch {
	case err == nil:
		return s, nil
	case errors.Is(err, ErrInvalidLength), errors.Is(err, ErrEmptyChoice):
		return "", api.ErrorWithStatus(err, http.StatusBadRequest)
	default:
		return "", err
	}
}
