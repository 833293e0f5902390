package client

import "github.com/prometheus/client_golang/prometheus"

// Metrics holds the client's Prometheus collectors.
type Metrics struct {
	FramesEmitted  prometheus.Counter
	FramesDropped  prometheus.Counter
	FramesReceived *prometheus.CounterVec
	Connects       prometheus.Counter
	Disconnects    prometheus.Counter
}

// NewMetrics creates the client collectors and registers them with reg.
// A nil reg registers them with a private registry, leaving them inert.
// Each Client needs its own Registerer; registering two clients with the
// same one fails on duplicate collectors.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	if reg == nil {
		reg = prometheus.NewRegistry()
	}

	m := &Metrics{
		FramesEmitted: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "scorpiui_client_frames_emitted_total",
			Help: "Component event frames sent to the server",
		}),
		FramesDropped: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "scorpiui_client_frames_dropped_total",
			Help: "Emit calls dropped for lack of a live connection",
		}),
		FramesReceived: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "scorpiui_client_frames_received_total",
			Help: "Frames received from the server, by channel",
		}, []string{"channel"}),
		Connects: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "scorpiui_client_connects_total",
			Help: "Successful transport connections",
		}),
		Disconnects: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "scorpiui_client_disconnects_total",
			Help: "Transport disconnections",
		}),
	}

	reg.MustRegister(m.FramesEmitted, m.FramesDropped, m.FramesReceived,
		m.Connects, m.Disconnects)
	return m
}
