package prometheus

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Outcome labels for list operations and the secret overlay
const (
	OutcomeSuccess = "success"
	OutcomeInvalid = "invalid"
	OutcomeFailure = "failure"
	OutcomeSkipped = "skipped"
)

// Collector records ListService metrics
type Collector struct {
	httpRequests    *prometheus.CounterVec
	httpDuration    *prometheus.HistogramVec
	listOperations  *prometheus.CounterVec
	listItemsServed *prometheus.HistogramVec
	secretOverlay   *prometheus.CounterVec
	secretKeys      prometheus.Gauge
}

// NewCollector creates a collector and registers it on reg
func NewCollector(reg prometheus.Registerer) *Collector {
	factory := promauto.With(reg)

	return &Collector{
		httpRequests: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "listservice_http_requests_total",
				Help: "Total number of HTTP requests handled",
			},
			[]string{"method", "route", "status"},
		),
		httpDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "listservice_http_request_duration_seconds",
				Help:    "HTTP request duration in seconds",
				Buckets: []float64{0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1},
			},
			[]string{"method", "route"},
		),
		listOperations: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "listservice_list_operations_total",
				Help: "Total number of list operations by outcome",
			},
			[]string{"operation", "outcome"},
		),
		listItemsServed: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "listservice_list_items_returned",
				Help:    "Number of items returned per list operation",
				Buckets: []float64{1, 2, 5, 10, 50, 100},
			},
			[]string{"operation"},
		),
		secretOverlay: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "listservice_secret_overlay_total",
				Help: "Boot-time secret overlay attempts by outcome",
			},
			[]string{"outcome"},
		),
		secretKeys: factory.NewGauge(
			prometheus.GaugeOpts{
				Name: "listservice_secret_overlay_keys",
				Help: "Number of keys applied by the last secret overlay",
			},
		),
	}
}

// ObserveRequest records a finished HTTP request
func (c *Collector) ObserveRequest(method, route string, status int, duration time.Duration) {
	c.httpRequests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	c.httpDuration.WithLabelValues(method, route).Observe(duration.Seconds())
}

// RecordListOperation records a head or tail call and the number of items it returned
func (c *Collector) RecordListOperation(operation, outcome string, items int) {
	c.listOperations.WithLabelValues(operation, outcome).Inc()
	if outcome == OutcomeSuccess {
		c.listItemsServed.WithLabelValues(operation).Observe(float64(items))
	}
}

// RecordSecretOverlay records the result of the boot-time secret overlay
func (c *Collector) RecordSecretOverlay(outcome string, keys int) {
	c.secretOverlay.WithLabelValues(outcome).Inc()
	c.secretKeys.Set(float64(keys))
}
