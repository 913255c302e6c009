package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Collector bundles every metric the service exports.
type Collector struct {
	registry *prometheus.Registry

	Requests         *prometheus.CounterVec
	RequestDuration  *prometheus.HistogramVec
	SchedulesLoaded  prometheus.Gauge
	StationsLoaded   prometheus.Gauge
	Confirmations    prometheus.Counter
	DelaySimulations prometheus.Counter
}

// NewCollector builds and registers all metrics on a fresh private registry.
func NewCollector() *Collector {
	c := &Collector{
		registry: prometheus.NewRegistry(),
		Requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "trainjatri_requests_total",
			Help: "HTTP requests by endpoint and status code.",
		}, []string{"endpoint", "status"}),
		RequestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "trainjatri_request_duration_seconds",
			Help:    "HTTP request latency by endpoint.",
			Buckets: prometheus.DefBuckets,
		}, []string{"endpoint"}),
		SchedulesLoaded: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "trainjatri_schedules_loaded",
			Help: "Train schedules in the current snapshot.",
		}),
		StationsLoaded: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "trainjatri_stations_loaded",
			Help: "Stations in the current snapshot.",
		}),
		Confirmations: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "trainjatri_confirmations_total",
			Help: "Crowd confirmations accepted.",
		}),
		DelaySimulations: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "trainjatri_delay_simulations_total",
			Help: "Delay simulations performed.",
		}),
	}
	c.registry.MustRegister(
		c.Requests,
		c.RequestDuration,
		c.SchedulesLoaded,
		c.StationsLoaded,
		c.Confirmations,
		c.DelaySimulations,
	)
	return c
}

// Handler serves the private registry in Prometheus exposition format.
func (c *Collector) Handler() http.Handler {
	return promhttp.HandlerFor(c.registry, promhttp.HandlerOpts{})
}
