package api

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestModule(t *testing.T) { //nolint:paralleltest // Registers global config and endpoints.
	m, err := New(struct{}{})
	require.NoError(t, err)
	assert.Equal(t, DefaultListenAddress, listenAddressConfig())

	_, err = New(struct{}{})
	assert.Error(t, err)

	testHandler := Router(m.Manager())
	assert.HTTPBodyContains(t, testHandler.ServeHTTP, "GET", apiV1Path+"ping", nil, "Pong.")
	assert.HTTPBodyContains(t, testHandler.ServeHTTP, "GET", apiV1Path+"endpoints", nil, `"Path":"ping"`)
	assert.HTTPStatusCode(t, testHandler.ServeHTTP, "GET", apiV1Path+"metrics", nil, http.StatusNoContent)
}
