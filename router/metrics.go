package router

import (
	"bytes"
	"strings"

	"github.com/oesand/ember"
	"github.com/oesand/ember/specs"
	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/common/expfmt"
)

// MetricsPlugin writes the gathered metrics in the prometheus text format.
// The "prefix" query argument keeps only the families whose name starts
// with it.
type MetricsPlugin struct {
	// Gatherer to expose. If nil, prometheus.DefaultGatherer is used.
	Gatherer prometheus.Gatherer
}

func (plugin *MetricsPlugin) Serve(socket *ember.HTTPSocket, request *Request) error {
	gatherer := plugin.Gatherer
	if gatherer == nil {
		gatherer = prometheus.DefaultGatherer
	}

	families, err := gatherer.Gather()
	if err != nil {
		return errors.Wrap(err, "gather metrics")
	}

	prefix := specs.ParseQuery(request.Query).Get("prefix")

	format := expfmt.NewFormat(expfmt.TypeTextPlain)
	var buf bytes.Buffer
	encoder := expfmt.NewEncoder(&buf, format)
	for _, family := range families {
		if !strings.HasPrefix(family.GetName(), prefix) {
			continue
		}
		if err = encoder.Encode(family); err != nil {
			return errors.Wrap(err, "encode metrics")
		}
	}

	socket.SetHeader("Content-Type", string(format))
	return socket.CloseBuffer(buf.Bytes())
}
