package router

import (
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"gotest.tools/v3/assert"
	is "gotest.tools/v3/assert/cmp"
)

func TestMetricsPlugin_CustomGatherer(t *testing.T) {
	registry := prometheus.NewRegistry()
	counter := prometheus.NewCounter(prometheus.CounterOpts{Name: "site_hits_total", Help: "Hits."})
	registry.MustRegister(counter)
	counter.Add(3)

	router := newTestRouter(t)
	assert.NilError(t, router.Register("/metrics", &MetricsPlugin{Gatherer: registry}))

	status, head, body := response(t, handle(router, nil, get("/metrics", "localhost")))
	assert.Check(t, is.Equal(status, "HTTP/1.1 200 OK"))
	assert.Check(t, is.Contains(head, "Content-Type: text/plain"))
	assert.Check(t, is.Contains(body, "# TYPE site_hits_total counter\n"))
	assert.Check(t, is.Contains(body, "site_hits_total 3\n"))
}

func TestMetricsPlugin_EngineCounters(t *testing.T) {
	config := (&Config{Plugins: map[string]string{"/metrics": "metrics"}}).withDefaults()
	router, err := New(t.TempDir(), config, quietLogger())
	assert.NilError(t, err)

	_, _, body := response(t, handle(router, nil, get("/metrics", "localhost")))
	assert.Check(t, is.Contains(body, "ember_engine_connections_accepted_total"))

	_, _, body = response(t, handle(router, nil, get("/metrics?prefix=ember_engine_invalid", "localhost")))
	assert.Check(t, is.Contains(body, "ember_engine_invalid_requests_total"))
	assert.Check(t, !strings.Contains(body, "ember_engine_connections_accepted_total"))
}
