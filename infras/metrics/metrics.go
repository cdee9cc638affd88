package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "voyage"

const (
	OperationPut    = "put"
	OperationDelete = "delete"
)

// Metrics exports request, cache, media store and notification health.
type Metrics interface {
	RecordRequest(method, route string, status int, duration time.Duration)
	RecordCache(hit bool)
	RecordMedia(operation string, duration time.Duration, err error)
	RecordOrphaned(directory string, count int)
	RecordNotification(err error)
	Handler() http.Handler
}

type prometheusMetrics struct {
	registry          *prometheus.Registry
	requestDuration   *prometheus.HistogramVec
	cacheLookups      *prometheus.CounterVec
	mediaDuration     *prometheus.HistogramVec
	mediaErrors       *prometheus.CounterVec
	orphanedMedia     *prometheus.CounterVec
	notificationTotal *prometheus.CounterVec
}

// New builds an isolated registry so every instance can be scraped on its own.
func New() Metrics {
	registry := prometheus.NewRegistry()

	m := &prometheusMetrics{
		registry: registry,
		requestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "Latency of HTTP requests by matched route.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route", "status"}),
		cacheLookups: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "cache",
			Name:      "lookups_total",
			Help:      "Cache reads by result.",
		}, []string{"result"}),
		mediaDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "media",
			Name:      "operation_duration_seconds",
			Help:      "Latency of media store operations.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"operation"}),
		mediaErrors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "media",
			Name:      "operation_errors_total",
			Help:      "Count of failed media store operations.",
		}, []string{"operation"}),
		orphanedMedia: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "media",
			Name:      "orphaned_total",
			Help:      "Media objects that could not be removed after their owner let go of them.",
		}, []string{"directory"}),
		notificationTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "notification",
			Name:      "sent_total",
			Help:      "Booking notifications by result.",
		}, []string{"result"}),
	}

	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.requestDuration,
		m.cacheLookups,
		m.mediaDuration,
		m.mediaErrors,
		m.orphanedMedia,
		m.notificationTotal,
	)

	return m
}

// RecordRequest labels by route pattern, never by raw path, to keep cardinality bounded.
func (m *prometheusMetrics) RecordRequest(method, route string, status int, duration time.Duration) {
	if route == "" {
		route = "unmatched"
	}

	m.requestDuration.WithLabelValues(method, route, strconv.Itoa(status)).Observe(duration.Seconds())
}

func (m *prometheusMetrics) RecordCache(hit bool) {
	result := "miss"
	if hit {
		result = "hit"
	}

	m.cacheLookups.WithLabelValues(result).Inc()
}

func (m *prometheusMetrics) RecordMedia(operation string, duration time.Duration, err error) {
	m.mediaDuration.WithLabelValues(operation).Observe(duration.Seconds())

	if err != nil {
		m.mediaErrors.WithLabelValues(operation).Inc()
	}
}

func (m *prometheusMetrics) RecordOrphaned(directory string, count int) {
	if count <= 0 {
		return
	}

	m.orphanedMedia.WithLabelValues(directory).Add(float64(count))
}

func (m *prometheusMetrics) RecordNotification(err error) {
	result := "ok"
	if err != nil {
		result = "failed"
	}

	m.notificationTotal.WithLabelValues(result).Inc()
}

func (m *prometheusMetrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}
