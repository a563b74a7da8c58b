// Package metrics содержит Prometheus-метрики сервиса
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type Metrics struct {
	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec

	ContentSavesTotal      prometheus.Counter
	ContentRollbacksTotal  prometheus.Counter
	BlobWritesTotal        prometheus.Counter
	BlobBytesWrittenTotal  prometheus.Counter
	PrivateDownloadsTotal  prometheus.Counter
	IntegrityFailuresTotal prometheus.Counter
}

// NewMetrics создает и регистрирует все метрики
func NewMetrics() *Metrics {
	m := &Metrics{}

	m.HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "sitevault_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	m.HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "sitevault_http_request_duration_seconds",
			Help:    "Duration of HTTP requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	m.ContentSavesTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "sitevault_content_saves_total",
		Help: "Total number of content versions appended",
	})

	m.ContentRollbacksTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "sitevault_content_rollbacks_total",
		Help: "Total number of content rollbacks",
	})

	m.BlobWritesTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "sitevault_blob_writes_total",
		Help: "Total number of blobs written to disk",
	})

	m.BlobBytesWrittenTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "sitevault_blob_bytes_written_total",
		Help: "Total bytes written to blob storage",
	})

	m.PrivateDownloadsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "sitevault_private_downloads_total",
		Help: "Total number of verified private downloads",
	})

	m.IntegrityFailuresTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "sitevault_integrity_failures_total",
		Help: "Total number of digest mismatches detected on download",
	})

	return m
}
