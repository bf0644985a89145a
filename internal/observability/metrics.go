package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// RequestDuration tracks request duration
	RequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name: "survey_api_request_duration_seconds",
			Help: "Duration of HTTP requests in seconds",
		},
		[]string{"path", "method", "status"},
	)

	// CacheHits tracks verdict cache lookups by result (hit/miss)
	CacheHits = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "survey_api_cache_hits_total",
			Help: "Number of verdict cache lookups",
		},
		[]string{"operation", "result"},
	)

	// DatabaseOperations tracks store operations
	DatabaseOperations = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "survey_api_database_operations_total",
			Help: "Number of store operations",
		},
		[]string{"operation", "status"},
	)

	// EmailChecks tracks uniqueness checks by verdict
	EmailChecks = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "survey_api_email_checks_total",
			Help: "Number of email uniqueness checks",
		},
		[]string{"verdict"},
	)

	// EmailRegistrations tracks registration attempts by outcome
	EmailRegistrations = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "survey_api_email_registrations_total",
			Help: "Number of email registration attempts",
		},
		[]string{"status"},
	)

	// HashScanDuration tracks the linear hash scan over stored emails
	HashScanDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "survey_api_hash_scan_duration_seconds",
			Help:    "Duration of the stored hash comparison scan",
			Buckets: prometheus.ExponentialBuckets(0.01, 2, 12),
		},
	)

	// SurveySubmissions tracks survey submissions by outcome
	SurveySubmissions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "survey_api_survey_submissions_total",
			Help: "Number of survey submissions",
		},
		[]string{"status"},
	)

	// Resets tracks bulk resets by scope and outcome
	Resets = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "survey_api_resets_total",
			Help: "Number of bulk resets",
		},
		[]string{"scope", "status"},
	)

	// RateLimitRejections tracks requests rejected by the per-client rate limiter
	RateLimitRejections = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "survey_api_rate_limit_rejections_total",
			Help: "Number of requests rejected by the rate limiter",
		},
		[]string{"operation"},
	)

	// VerdictCacheEntries tracks the size of the in-memory verdict cache after each sweep
	VerdictCacheEntries = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "survey_api_verdict_cache_entries",
			Help: "Number of entries held by the in-memory verdict cache",
		},
	)

	// ActiveConnections tracks active connections
	ActiveConnections = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "survey_api_active_connections",
			Help: "Number of active connections",
		},
	)
)
