package api

import (
	"bytes"
	"encoding/json"

	"github.com/safing/random/base/info"
	"github.com/safing/random/base/metrics"
)

func registerMetaEndpoints() error {
	if err := RegisterEndpoint(Endpoint{
		Path:        "endpoints",
		MimeType:    MimeTypeJSON,
		DataFunc:    listEndpoints,
		Name:        "Export API Endpoints",
		Description: "Returns a list of all registered endpoints and their metadata.",
	}); err != nil {
		return err
	}

	if err := RegisterEndpoint(Endpoint{
		Path:        "ping",
		ActionFunc:  ping,
		Name:        "Ping",
		Description: "Pong.",
	}); err != nil {
		return err
	}

	if err := RegisterEndpoint(Endpoint{
		Path:        "version",
		StructFunc:  version,
		Name:        "Get Version",
		Description: "Returns the version information of the program.",
	}); err != nil {
		return err
	}

	return RegisterEndpoint(Endpoint{
		Path:        "metrics",
		MimeType:    "text/plain; version=0.0.4",
		DataFunc:    exportMetrics,
		Name:        "Export Metrics",
		Description: "Returns all metrics in the Prometheus text format.",
	})
}

func listEndpoints(_ *Request) (data []byte, err error) {
	data, err = json.Marshal(ExportEndpoints())
	return
}

func ping(_ *Request) (msg string, err error) {
	return "Pong.", nil
}

func version(_ *Request) (i interface{}, err error) {
	return info.GetInfo(), nil
}

func exportMetrics(_ *Request) (data []byte, err error) {
	buf := &bytes.Buffer{}
	metrics.WritePrometheus(buf)
	return buf.Bytes(), nil
}
