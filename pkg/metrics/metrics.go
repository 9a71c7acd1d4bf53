package metrics

import (
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Registry holds every metric exposed on /api/metrics
	Registry = prometheus.NewRegistry()

	factory = promauto.With(Registry)
	initMu  sync.Once

	// Custom histogram buckets for API response times; email providers usually answer in
	// well under a second but SMTP handshakes can take several.
	CustomAPIBuckets = []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2, 3, 5, 8, 13, 21, 34, 55}

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

	// Email client metrics
	EmailSendDuration = factory.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "email_client_send_duration_seconds",
			Help:    "Email provider send duration in seconds",
			Buckets: CustomAPIBuckets,
		},
		[]string{"provider", "template", "status"},
	)

	EmailSendTotal = factory.NewCounterVec(
		prometheus.CounterOpts{
			Name: "email_client_send_total",
			Help: "Total number of email provider send calls",
		},
		[]string{"provider", "template", "status"},
	)

	// Business Metrics
	InquirySubmissions = factory.NewCounterVec(
		prometheus.CounterOpts{
			Name: "inquiry_submissions_total",
			Help: "Total number of inquiry form submissions",
		},
		[]string{"status"},
	)

	FieldValidationFailures = factory.NewCounterVec(
		prometheus.CounterOpts{
			Name: "inquiry_field_validation_failures_total",
			Help: "Total number of failed field validations",
		},
		[]string{"field", "reason"},
	)

	ServiceInfo = factory.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "inquiry_service_info",
			Help: "Static information about the running service",
		},
		[]string{"service_name"},
	)
)

// Init registers runtime collectors and publishes the service name.
// Calling it more than once is harmless.
func Init(serviceName string) {
	initMu.Do(func() {
		Registry.MustRegister(
			collectors.NewGoCollector(),
			collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		)
		ServiceInfo.WithLabelValues(serviceName).Set(1)
	})
}

// MeasureDuration measures the duration of an operation
func MeasureDuration(start time.Time) float64 {
	return time.Since(start).Seconds()
}
