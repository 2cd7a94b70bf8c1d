package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Registry holds every collector exported on /metrics.
var Registry = prometheus.NewRegistry()

var factory = promauto.With(Registry)

var (
	// Buckets from a few milliseconds (validation errors) up to slow SMTP handshakes
	CustomAPIBuckets = []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2, 3, 5, 8, 13, 21, 34}

	// HTTP Metrics
	HTTPRequestDuration = factory.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_server_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: CustomAPIBuckets,
		},
		[]string{"http_request_method", "http_route", "http_response_status_code"},
	)

	HTTPRequestTotal = factory.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_server_request_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"http_request_method", "http_route", "http_response_status_code"},
	)

	ActiveRequests = factory.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "http_server_active_requests",
			Help: "Number of active HTTP requests",
		},
		[]string{"http_request_method"},
	)

	// Intake pipeline
	ContactFormSubmissions = factory.NewCounterVec(
		prometheus.CounterOpts{
			Name: "msquare_contact_form_submissions_total",
			Help: "Contact form submissions by outcome",
		},
		[]string{"status"}, // success, validation_failed, rate_limited, notify_failed
	)

	RateLimitDecisions = factory.NewCounterVec(
		prometheus.CounterOpts{
			Name: "msquare_rate_limit_decisions_total",
			Help: "Rate limiter decisions",
		},
		[]string{"limiter", "decision"},
	)

	MailDispatchDuration = factory.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "mail_client_operation_duration_seconds",
			Help:    "Outbound mail dispatch duration in seconds",
			Buckets: CustomAPIBuckets,
		},
		[]string{"message", "status"},
	)

	MailDispatchTotal = factory.NewCounterVec(
		prometheus.CounterOpts{
			Name: "mail_client_operation_total",
			Help: "Total number of outbound mail dispatches",
		},
		[]string{"message", "status"},
	)

	NewsletterSubscriptions = factory.NewCounterVec(
		prometheus.CounterOpts{
			Name: "msquare_newsletter_subscriptions_total",
			Help: "Newsletter subscription attempts",
		},
		[]string{"status"},
	)

	// Catalogue
	CacheHits = factory.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cache_hits_total",
			Help: "Total number of cache hits",
		},
		[]string{"cache_name"},
	)

	CacheMisses = factory.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cache_misses_total",
			Help: "Total number of cache misses",
		},
		[]string{"cache_name"},
	)

	CacheSize = factory.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "cache_entries",
			Help: "Number of entries in cache",
		},
		[]string{"cache_name"},
	)

	// Object storage (catalogue publishing)
	StorageRequestDuration = factory.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "storage_client_operation_duration_seconds",
			Help:    "Storage client operation duration in seconds",
			Buckets: CustomAPIBuckets,
		},
		[]string{"operation", "status"},
	)

	StorageRequestTotal = factory.NewCounterVec(
		prometheus.CounterOpts{
			Name: "storage_client_operation_total",
			Help: "Total number of storage client operations",
		},
		[]string{"operation", "status"},
	)
)

func init() {
	Registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
}

// MeasureDuration measures the duration of an operation
func MeasureDuration(start time.Time) float64 {
	return time.Since(start).Seconds()
}
