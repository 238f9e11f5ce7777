package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// RequestCounter counts HTTP requests by status code, method, and path
	RequestCounter = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ticketsim_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"status", "method", "path"},
	)

	// RequestDuration measures HTTP request duration
	RequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "ticketsim_http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"status", "method", "path"},
	)

	// RequestInProgress counts HTTP requests currently being processed
	RequestInProgress = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "ticketsim_http_requests_in_progress",
			Help: "Number of HTTP requests currently being processed",
		},
		[]string{"method", "path"},
	)

	// Registrations counts registration attempts by outcome
	Registrations = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ticketsim_registrations_total",
			Help: "Total number of registration attempts",
		},
		[]string{"result"},
	)

	// Logins counts login attempts by outcome
	Logins = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ticketsim_logins_total",
			Help: "Total number of login attempts",
		},
		[]string{"result"},
	)

	// SuccessRates records the distribution of simulated success rates
	SuccessRates = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "ticketsim_simulated_success_rate",
			Help:    "Distribution of simulated success rates",
			Buckets: prometheus.LinearBuckets(0, 10, 11),
		},
	)

	// QRCodesGenerated counts rendered QR codes by kind
	QRCodesGenerated = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ticketsim_qr_codes_generated_total",
			Help: "Total number of QR codes generated",
		},
		[]string{"kind"},
	)

	// CacheHits counts the number of cache hits
	CacheHits = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ticketsim_cache_hits_total",
			Help: "Total number of cache hits",
		},
		[]string{"cache"},
	)

	// CacheMisses counts the number of cache misses
	CacheMisses = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ticketsim_cache_misses_total",
			Help: "Total number of cache misses",
		},
		[]string{"cache"},
	)
)
