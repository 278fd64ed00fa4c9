// Package metrics holds the process wide engine counters. They are
// registered with the default prometheus registry on init.
package metrics

import "github.com/docker/go-metrics"

var (
	ConnectionsAccepted metrics.Counter
	InvalidRequests     metrics.Counter
	ListenerPanics      metrics.Counter
	Upgrades            metrics.LabeledCounter
	ActiveSessions      metrics.Gauge
	FramesReceived      metrics.LabeledCounter
	FramesSent          metrics.LabeledCounter
	ResponseBytes       metrics.Counter
)

func init() {
	ns := metrics.NewNamespace("ember", "engine", nil)
	ConnectionsAccepted = ns.NewCounter("connections_accepted", "The number of accepted connections")
	InvalidRequests = ns.NewCounter("invalid_requests", "The number of requests the parser marked invalid")
	ListenerPanics = ns.NewCounter("listener_panics", "The number of connection listeners that panicked")
	Upgrades = ns.NewLabeledCounter("websocket_upgrades", "The number of websocket handshakes by result", "result")
	ActiveSessions = ns.NewGauge("websocket_sessions", "The number of websocket sessions with a running read loop", metrics.Unit("sessions"))
	FramesReceived = ns.NewLabeledCounter("frames_received", "The number of websocket frames parsed by opcode", "opcode")
	FramesSent = ns.NewLabeledCounter("frames_sent", "The number of websocket frames written by opcode", "opcode")
	ResponseBytes = ns.NewCounter("response_body_bytes", "The number of response body bytes written before chunk framing")
	metrics.Register(ns)
}
