// Package metrics exposes resolution pass statistics as Prometheus metrics.
package metrics

import (
	"errors"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/vk/scenebus/internal/binding"
)

const namespace = "scenebus"

// Collector implements binding.Observer. It owns its registry so several
// instances can live in one process.
type Collector struct {
	registry *prometheus.Registry

	passes    *prometheus.CounterVec
	duration  *prometheus.HistogramVec
	calls     *prometheus.CounterVec
	issues    *prometheus.CounterVec
	events    prometheus.Gauge
	fires     *prometheus.CounterVec
	fireFails *prometheus.CounterVec
}

// New creates a Collector with Go runtime and process metrics registered.
func New() *Collector {
	c := &Collector{
		registry: prometheus.NewRegistry(),
		passes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "passes_total",
			Help:      "Resolution passes by kind.",
		}, []string{"kind"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "pass_duration_seconds",
			Help:      "Resolution pass duration by kind.",
			Buckets:   prometheus.ExponentialBuckets(0.0001, 4, 8),
		}, []string{"kind"}),
		calls: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "signal_calls_total",
			Help:      "Native attach and detach calls made by resolution passes.",
		}, []string{"op"}),
		issues: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "listener_issues_total",
			Help:      "Listeners dropped by resolution passes, by reason.",
		}, []string{"reason"}),
		events: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "events",
			Help:      "Live event descriptors.",
		}),
		fires: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "fires_total",
			Help:      "Events fired, by event id.",
		}, []string{"event"}),
		fireFails: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "fire_errors_total",
			Help:      "Fires that returned an error, by event id.",
		}, []string{"event"}),
	}
	c.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		c.passes, c.duration, c.calls, c.issues, c.events, c.fires, c.fireFails,
	)
	return c
}

// ObservePass implements binding.Observer.
func (c *Collector) ObservePass(r *binding.Report, live int) {
	kind := string(r.Kind)
	c.passes.WithLabelValues(kind).Inc()
	c.duration.WithLabelValues(kind).Observe(r.Duration.Seconds())
	c.calls.WithLabelValues("attach").Add(float64(r.Attached))
	c.calls.WithLabelValues("detach").Add(float64(r.Detached))
	for _, issue := range r.Issues {
		c.issues.WithLabelValues(reason(issue)).Inc()
	}
	c.events.Set(float64(live))
}

// ObserveFire records one fire of event id.
func (c *Collector) ObserveFire(id string, err error) {
	c.fires.WithLabelValues(id).Inc()
	if err != nil {
		c.fireFails.WithLabelValues(id).Inc()
	}
}

// Handler serves the collector's registry in the Prometheus text format.
func (c *Collector) Handler() http.Handler {
	return promhttp.HandlerFor(c.registry, promhttp.HandlerOpts{Registry: c.registry})
}

// Registry returns the underlying registry.
func (c *Collector) Registry() *prometheus.Registry {
	return c.registry
}

func reason(err error) string {
	if errors.Is(err, binding.ErrUnresolvedListener) {
		return "unresolved"
	}
	return "signature"
}
