package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// HTTP request metrics
var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "room_api_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "room_api_http_request_duration_seconds",
			Help:    "Duration of HTTP requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path", "status"},
	)
)

// Authentication metrics
var (
	AuthAttemptsCounter = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "room_api_auth_attempts_total",
			Help: "Total number of login attempts",
		},
	)

	AuthSuccessCounter = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "room_api_auth_success_total",
			Help: "Total number of successful logins",
		},
	)

	AuthErrorsCounter = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "room_api_auth_errors_total",
			Help: "Total number of failed logins",
		},
	)
)

// Rate limit metrics
var RateLimitedRequestsCounter = promauto.NewCounter(
	prometheus.CounterOpts{
		Name: "room_api_rate_limited_requests_total",
		Help: "Total number of requests rejected by the per-IP rate limiter",
	},
)

// Audit metrics
var AuditWriteErrorsCounter = promauto.NewCounter(
	prometheus.CounterOpts{
		Name: "room_api_audit_write_errors_total",
		Help: "Total number of audit log rows that failed to persist",
	},
)
