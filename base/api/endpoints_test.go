package api

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	successMsg = "endpoint api success"
	failedMsg  = "endpoint api failed"
)

type actionTestStruct struct {
	Msg string
}

func TestEndpoints(t *testing.T) {
	t.Parallel()

	testHandler := Router(nil)

	// ActionFn

	assert.NoError(t, RegisterEndpoint(Endpoint{
		Path: "test/action",
		ActionFunc: func(_ *Request) (msg string, err error) {
			return successMsg, nil
		},
	}))
	assert.HTTPBodyContains(t, testHandler.ServeHTTP, "GET", apiV1Path+"test/action", nil, successMsg)

	assert.NoError(t, RegisterEndpoint(Endpoint{
		Path: "test/action-err",
		ActionFunc: func(_ *Request) (msg string, err error) {
			return "", errors.New(failedMsg)
		},
	}))
	assert.HTTPBodyContains(t, testHandler.ServeHTTP, "GET", apiV1Path+"test/action-err", nil, failedMsg)
	assert.HTTPError(t, testHandler.ServeHTTP, "GET", apiV1Path+"test/action-err", nil)

	// DataFn

	assert.NoError(t, RegisterEndpoint(Endpoint{
		Path: "test/data",
		DataFunc: func(_ *Request) (data []byte, err error) {
			return []byte(successMsg), nil
		},
	}))
	assert.HTTPBodyContains(t, testHandler.ServeHTTP, "GET", apiV1Path+"test/data", nil, successMsg)

	assert.NoError(t, RegisterEndpoint(Endpoint{
		Path: "test/data-err",
		DataFunc: func(_ *Request) (data []byte, err error) {
			return nil, ErrorWithStatus(errors.New(failedMsg), http.StatusTeapot)
		},
	}))
	rec := httptest.NewRecorder()
	testHandler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, apiV1Path+"test/data-err", nil))
	assert.Equal(t, http.StatusTeapot, rec.Code)
	assert.Contains(t, rec.Body.String(), failedMsg)

	// StructFn

	assert.NoError(t, RegisterEndpoint(Endpoint{
		Path: "test/struct",
		StructFunc: func(_ *Request) (i interface{}, err error) {
			return &actionTestStruct{
				Msg: successMsg,
			}, nil
		},
	}))
	req := httptest.NewRequest(http.MethodGet, apiV1Path+"test/struct", nil)
	req.Header.Set("Accept", MimeTypeJSON)
	rec = httptest.NewRecorder()
	testHandler.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"Msg":"`+successMsg+`"}`, rec.Body.String())
	assert.Contains(t, rec.Header().Get("Content-Type"), MimeTypeJSON)

	// Method

	assert.HTTPStatusCode(t, testHandler.ServeHTTP, "POST", apiV1Path+"test/action", nil, http.StatusMethodNotAllowed)
	assert.HTTPStatusCode(t, testHandler.ServeHTTP, "GET", apiV1Path+"test/missing", nil, http.StatusNotFound)
	assert.HTTPStatusCode(t, testHandler.ServeHTTP, "GET", "/api/v1/test/../test/action", nil, http.StatusMovedPermanently)
}

func TestURLVars(t *testing.T) {
	t.Parallel()

	testHandler := Router(nil)

	assert.NoError(t, RegisterEndpoint(Endpoint{
		Path: "test/double/{n}",
		ActionFunc: func(ar *Request) (msg string, err error) {
			n, err := ar.IntParam("n", 0)
			if err != nil {
				return "", err
			}
			return strconv.Itoa(2 * n), nil
		},
	}))
	assert.HTTPBodyContains(t, testHandler.ServeHTTP, "GET", apiV1Path+"test/double/21", nil, "42")
	assert.HTTPStatusCode(t, testHandler.ServeHTTP, "GET", apiV1Path+"test/double/x", nil, http.StatusBadRequest)

	assert.NoError(t, RegisterEndpoint(Endpoint{
		Path: "test/query",
		ActionFunc: func(ar *Request) (msg string, err error) {
			n, err := ar.IntParam("count", 7)
			return strconv.Itoa(n), err
		},
	}))
	assert.HTTPBodyContains(t, testHandler.ServeHTTP, "GET", apiV1Path+"test/query", url.Values{"count": {"3"}}, "3")
	assert.HTTPBodyContains(t, testHandler.ServeHTTP, "GET", apiV1Path+"test/query", nil, "7")
}

func TestHandlerPanic(t *testing.T) {
	t.Parallel()

	assert.NoError(t, RegisterEndpoint(Endpoint{
		Path: "test/panic",
		ActionFunc: func(_ *Request) (msg string, err error) {
			panic("boom")
		},
	}))
	assert.HTTPStatusCode(t, Router(nil).ServeHTTP, "GET", apiV1Path+"test/panic", nil, http.StatusInternalServerError)
}

func TestActionRegistration(t *testing.T) {
	t.Parallel()

	assert.ErrorIs(t, RegisterEndpoint(Endpoint{}), ErrInvalidEndpoint)

	assert.Error(t, RegisterEndpoint(Endpoint{
		Path: "test/err",
	}))

	assert.Error(t, RegisterEndpoint(Endpoint{
		Path:   "test/err",
		Method: http.MethodPatch,
		ActionFunc: func(_ *Request) (msg string, err error) {
			return successMsg, nil
		},
	}))

	assert.Error(t, RegisterEndpoint(Endpoint{
		Path: "test/err",
		ActionFunc: func(_ *Request) (msg string, err error) {
			return successMsg, nil
		},
		DataFunc: func(_ *Request) (data []byte, err error) {
			return []byte(successMsg), nil
		},
	}))

	require.NoError(t, RegisterEndpoint(Endpoint{
		Path: "test/err",
		ActionFunc: func(_ *Request) (msg string, err error) {
			return successMsg, nil
		},
	}))
	assert.ErrorIs(t, RegisterEndpoint(Endpoint{
		Path: "test/err",
		ActionFunc: func(_ *Request) (msg string, err error) {
			return successMsg, nil
		},
	}), ErrAlreadyRegistered)

	ep, err := GetEndpointByPath("test/err")
	require.NoError(t, err)
	assert.Equal(t, http.MethodGet, ep.Method)
	assert.Equal(t, MimeTypeText, ep.MimeType)
}
