// Package metrics holds the Prometheus collectors for catalog loading.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics groups the collectors shared by the fetcher and the music source.
type Metrics struct {
	Registry      *prometheus.Registry
	Fetches       prometheus.Counter
	FetchFailures prometheus.Counter
	SongsLoaded   prometheus.Gauge
}

// New creates the collectors and registers them on a fresh registry.
func New() *Metrics {
	m := &Metrics{
		Registry: prometheus.NewRegistry(),
		Fetches: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "musify",
			Subsystem: "catalog",
			Name:      "fetches_total",
			Help:      "Catalog fetches that returned documents from the store.",
		}),
		FetchFailures: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "musify",
			Subsystem: "catalog",
			Name:      "fetch_failures_total",
			Help:      "Catalog fetches that failed and were reported as an empty catalog.",
		}),
		SongsLoaded: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "musify",
			Subsystem: "source",
			Name:      "songs",
			Help:      "Songs held by the music source after the last load.",
		}),
	}
	m.Registry.MustRegister(m.Fetches, m.FetchFailures, m.SongsLoaded)
	return m
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.Registry, promhttp.HandlerOpts{})
}
