// Package metrics exposes reconciler activity as Prometheus metrics.
package metrics

import (
	"net/http"
	"time"

	"agora/internal/domain/entity"
	"agora/internal/domain/service"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/fx"
)

const namespace = "agora"

// Collector implements service.SessionMetrics.
type Collector struct {
	authEvents       *prometheus.CounterVec
	reconcileResults *prometheus.CounterVec
	reconcileLatency prometheus.Histogram
	profileUpdates   *prometheus.CounterVec
	bootstrapFailed  prometheus.Counter
	mailboxDepth     prometheus.Gauge
}

var _ service.SessionMetrics = (*Collector)(nil)

// NewRegistry returns a registry carrying the Go runtime and process collectors.
func NewRegistry() *prometheus.Registry {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	return reg
}

// NewCollector creates the session metrics and registers them with reg.
func NewCollector(reg prometheus.Registerer) *Collector {
	c := &Collector{
		authEvents: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "auth_events_total",
			Help:      "Session events received from the identity provider, by kind.",
		}, []string{"kind"}),
		reconcileResults: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "reconcile_total",
			Help:      "Profile reconciliations, by outcome.",
		}, []string{"outcome"}),
		reconcileLatency: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "reconcile_duration_seconds",
			Help:      "Time spent reconciling one identity against the profile store.",
			Buckets:   prometheus.DefBuckets,
		}),
		profileUpdates: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "profile_updates_total",
			Help:      "Profile updates requested by the signed-in user, by outcome.",
		}, []string{"outcome"}),
		bootstrapFailed: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "bootstrap_failures_total",
			Help:      "Bootstraps that fell back to unauthenticated because the session query failed.",
		}),
		mailboxDepth: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "mailbox_depth",
			Help:      "Reconciler jobs waiting to run.",
		}),
	}

	reg.MustRegister(
		c.authEvents,
		c.reconcileResults,
		c.reconcileLatency,
		c.profileUpdates,
		c.bootstrapFailed,
		c.mailboxDepth,
	)

	return c
}

// AuthEvent counts one identity provider event.
func (c *Collector) AuthEvent(kind entity.AuthEventKind) {
	c.authEvents.WithLabelValues(kind.String()).Inc()
}

// ReconcileOutcome counts a reconcile and observes its latency.
func (c *Collector) ReconcileOutcome(outcome string, took time.Duration) {
	c.reconcileResults.WithLabelValues(outcome).Inc()
	c.reconcileLatency.Observe(took.Seconds())
}

// ProfileUpdate counts a profile update by outcome.
func (c *Collector) ProfileUpdate(outcome string) {
	c.profileUpdates.WithLabelValues(outcome).Inc()
}

// BootstrapFailed counts a fail-open bootstrap.
func (c *Collector) BootstrapFailed() {
	c.bootstrapFailed.Inc()
}

// MailboxDepth records the number of queued jobs.
func (c *Collector) MailboxDepth(depth int) {
	c.mailboxDepth.Set(float64(depth))
}

// Handler returns the scrape handler for gatherer.
func Handler(gatherer prometheus.Gatherer) http.Handler {
	return promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})
}

// Module provides the registry and the session metrics.
//
//nolint:gochecknoglobals
var Module = fx.Options(
	fx.Provide(
		NewRegistry,
		func(reg *prometheus.Registry) service.SessionMetrics {
			return NewCollector(reg)
		},
	),
)
