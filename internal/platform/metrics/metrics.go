package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds the process registry and the counters the pipeline moves.
type Metrics struct {
	registry *prometheus.Registry

	DraftsSubmitted   prometheus.Counter
	DraftsApproved    prometheus.Counter
	DraftsRejected    prometheus.Counter
	SnapshotsWritten  prometheus.Counter
	EventsPublished   prometheus.Counter
	HTTPRequestsTotal *prometheus.CounterVec
}

func New() *Metrics {
	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	m := &Metrics{
		registry: registry,
		DraftsSubmitted: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "pricesaver_drafts_submitted_total",
			Help: "Price drafts accepted into the moderation queue.",
		}),
		DraftsApproved: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "pricesaver_drafts_approved_total",
			Help: "Drafts promoted to approved price observations.",
		}),
		DraftsRejected: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "pricesaver_drafts_rejected_total",
			Help: "Drafts rejected by moderators.",
		}),
		SnapshotsWritten: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "pricesaver_heatmap_snapshots_written_total",
			Help: "Heatmap snapshots generated and persisted.",
		}),
		EventsPublished: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "pricesaver_outbox_events_published_total",
			Help: "Outbox events relayed to the broker.",
		}),
		HTTPRequestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "pricesaver_http_requests_total",
			Help: "HTTP requests by route and status code.",
		}, []string{"route", "status"}),
	}

	registry.MustRegister(
		m.DraftsSubmitted,
		m.DraftsApproved,
		m.DraftsRejected,
		m.SnapshotsWritten,
		m.EventsPublished,
		m.HTTPRequestsTotal,
	)
	return m
}

func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
