// Package observability métricas Prometheus de la API.
package observability

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Collector agrupa las métricas de la aplicación en un registro propio.
type Collector struct {
	registry *prometheus.Registry

	// HTTP
	HTTPRequests *prometheus.CounterVec
	HTTPDuration *prometheus.HistogramVec

	// Negocio
	SelectionToggles *prometheus.CounterVec
	FilterRequests   prometheus.Counter
	FilterMatches    prometheus.Histogram

	// Caché
	CacheHits   *prometheus.CounterVec
	CacheMisses *prometheus.CounterVec
}

// NewCollector crea el collector con el namespace dado y registra también
// las métricas de proceso y del runtime de Go.
func NewCollector(namespace string) *Collector {
	registry := prometheus.NewRegistry()

	c := &Collector{
		registry: registry,
		HTTPRequests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "http_requests_total",
				Help:      "Total number of HTTP requests",
			},
			[]string{"method", "route", "status"},
		),
		HTTPDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "http_request_duration_seconds",
				Help:      "HTTP request duration in seconds",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"method", "route"},
		),
		SelectionToggles: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "selection_toggles_total",
				Help:      "Total number of taxonomy selection toggles by level",
			},
			[]string{"level"},
		),
		FilterRequests: prometheus.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "vendor_filter_requests_total",
				Help:      "Total number of vendor filter evaluations",
			},
		),
		FilterMatches: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "vendor_filter_matches",
				Help:      "Number of vendors returned by a filter evaluation",
				Buckets:   []float64{0, 1, 5, 10, 25, 50, 100, 250},
			},
		),
		CacheHits: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "cache_hits_total",
				Help:      "Total number of cache hits",
			},
			[]string{"cache"},
		),
		CacheMisses: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "cache_misses_total",
				Help:      "Total number of cache misses",
			},
			[]string{"cache"},
		),
	}

	registry.MustRegister(
		c.HTTPRequests,
		c.HTTPDuration,
		c.SelectionToggles,
		c.FilterRequests,
		c.FilterMatches,
		c.CacheHits,
		c.CacheMisses,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return c
}

// Registry registro Prometheus del collector.
func (c *Collector) Registry() *prometheus.Registry { return c.registry }

// Handler handler net/http para exponer /metrics.
func (c *Collector) Handler() http.Handler {
	return promhttp.HandlerFor(c.registry, promhttp.HandlerOpts{Registry: c.registry})
}

// ObserveHTTP registra una petición atendida.
func (c *Collector) ObserveHTTP(method, route string, status int, elapsed time.Duration) {
	c.HTTPRequests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	c.HTTPDuration.WithLabelValues(method, route).Observe(elapsed.Seconds())
}

// SelectionToggled cuenta una marca/desmarca por nivel.
func (c *Collector) SelectionToggled(level string) {
	c.SelectionToggles.WithLabelValues(level).Inc()
}

// VendorsFiltered cuenta una evaluación del filtro y cuántos proveedores devolvió.
func (c *Collector) VendorsFiltered(matched int) {
	c.FilterRequests.Inc()
	c.FilterMatches.Observe(float64(matched))
}

// CacheHit cuenta un acierto de caché.
func (c *Collector) CacheHit(cache string) { c.CacheHits.WithLabelValues(cache).Inc() }

// CacheMiss cuenta un fallo de caché.
func (c *Collector) CacheMiss(cache string) { c.CacheMisses.WithLabelValues(cache).Inc() }
