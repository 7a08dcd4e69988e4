package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// HTTPRequestsTotal counts HTTP requests by route and status
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "The total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	// HTTPRequestDuration measures HTTP request latency by route
	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "The duration of HTTP requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	// RendersTotal counts catalog renders by output format and status
	RendersTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "catalog_renders_total",
			Help: "The total number of catalog renders",
		},
		[]string{"format", "status"},
	)

	// RenderDuration measures render plus export time
	RenderDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "catalog_render_duration_seconds",
			Help:    "The duration of catalog renders in seconds",
			Buckets: []float64{0.05, 0.1, 0.5, 1, 2, 5, 10, 30},
		},
		[]string{"format"},
	)

	// ExportSize measures exported artifact sizes
	ExportSize = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "catalog_export_size_bytes",
			Help:    "The size of exported catalogs in bytes",
			Buckets: []float64{1e4, 1e5, 5e5, 1e6, 5e6, 1e7, 5e7}, // 10KB .. 50MB
		},
		[]string{"format"},
	)

	// CatalogPages observes the page count of rendered catalogs
	CatalogPages = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "catalog_pages",
			Help:    "Pages per rendered catalog",
			Buckets: []float64{1, 2, 5, 10, 20, 50, 100},
		},
	)

	// AuditScore observes template quality scores
	AuditScore = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "template_audit_score",
			Help:    "Template audit scores",
			Buckets: []float64{0, 20, 40, 60, 75, 90, 100},
		},
	)

	// AuditIssuesTotal counts audit findings by severity and category
	AuditIssuesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "template_audit_issues_total",
			Help: "The total number of template audit issues",
		},
		[]string{"severity", "category"},
	)

	// ImagesInlinedTotal counts image inlining attempts by status
	ImagesInlinedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "catalog_images_inlined_total",
			Help: "The total number of product images inlined into catalogs",
		},
		[]string{"status"},
	)

	// ErrorsTotal counts errors by operation
	ErrorsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "catalog_errors_total",
			Help: "The total number of errors",
		},
		[]string{"operation"},
	)
)
