// Package metrics exports terminal and web activity as Prometheus metrics.
package metrics

import (
	"net/http"
	"time"

	"nlterm/internal/terminal"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "nlterm"

// Metrics holds all Prometheus metrics on a private registry.
type Metrics struct {
	registry *prometheus.Registry

	// Terminal metrics
	SessionsActive prometheus.Gauge
	SessionsOpened prometheus.Counter
	Commands       *prometheus.CounterVec
	Elevations     prometheus.Counter
	HackDuration   prometheus.Histogram

	// HTTP metrics
	RequestsTotal   *prometheus.CounterVec
	RequestDuration *prometheus.HistogramVec

	// WebSocket metrics
	WSConnections prometheus.Gauge
	WSMessages    *prometheus.CounterVec

	// Visitor metrics
	VisitsRecorded prometheus.Counter
}

// New creates the metrics and registers them, plus the Go and process
// collectors, on a fresh registry.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	f := promauto.With(reg)

	return &Metrics{
		registry: reg,

		SessionsActive: f.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "sessions_active",
			Help:      "Number of open terminal sessions",
		}),
		SessionsOpened: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "sessions_opened_total",
			Help:      "Total number of terminal opens",
		}),
		Commands: f.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "commands_total",
				Help:      "Commands executed, by command",
			},
			[]string{"command"},
		),
		Elevations: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "elevations_total",
			Help:      "Total number of elevated mode activations",
		}),
		HackDuration: f.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "hack_duration_seconds",
			Help:      "Duration of completed hack runs",
			Buckets:   prometheus.LinearBuckets(0.5, 0.5, 10),
		}),

		RequestsTotal: f.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "http_requests_total",
				Help:      "Total number of HTTP requests",
			},
			[]string{"method", "path", "status"},
		),
		RequestDuration: f.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "http_request_duration_seconds",
				Help:      "HTTP request latency in seconds",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"method", "path"},
		),

		WSConnections: f.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "websocket_connections",
			Help:      "Number of active terminal websocket connections",
		}),
		WSMessages: f.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "websocket_messages_total",
				Help:      "Websocket messages, by direction and type",
			},
			[]string{"direction", "type"},
		),

		VisitsRecorded: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "visits_recorded_total",
			Help:      "Total number of recorded page visits",
		}),
	}
}

// Registry returns the registry the metrics live on.
func (m *Metrics) Registry() *prometheus.Registry { return m.registry }

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// RecordHTTPRequest records one served request.
func (m *Metrics) RecordHTTPRequest(method, path, status string, duration time.Duration) {
	m.RequestsTotal.WithLabelValues(method, path, status).Inc()
	m.RequestDuration.WithLabelValues(method, path).Observe(duration.Seconds())
}

// RecordWSMessage counts a websocket message.
func (m *Metrics) RecordWSMessage(direction, msgType string) {
	m.WSMessages.WithLabelValues(direction, msgType).Inc()
}

func (m *Metrics) IncWSConnections() { m.WSConnections.Inc() }
func (m *Metrics) DecWSConnections() { m.WSConnections.Dec() }

// IncVisits counts a recorded page visit.
func (m *Metrics) IncVisits() { m.VisitsRecorded.Inc() }

// Observer returns a terminal.Observer feeding these metrics.
func (m *Metrics) Observer() terminal.Observer { return observer{m} }

type observer struct{ m *Metrics }

func (o observer) SessionOpened() {
	o.m.SessionsActive.Inc()
	o.m.SessionsOpened.Inc()
}

func (o observer) SessionClosed() { o.m.SessionsActive.Dec() }

func (o observer) CommandExecuted(cmd terminal.Command) {
	o.m.Commands.WithLabelValues(cmd.String()).Inc()
}

func (o observer) ElevatedActivated() { o.m.Elevations.Inc() }

func (o observer) HackCompleted(d time.Duration) { o.m.HackDuration.Observe(d.Seconds()) }
