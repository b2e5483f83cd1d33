package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Prometheus metrics for the onboarding pipeline

var (
	// Upstream call metrics
	UpstreamRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "kickoff_upstream_requests_total",
			Help: "Total number of requests issued to external providers",
		},
		[]string{"provider", "endpoint", "status"},
	)

	UpstreamRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "kickoff_upstream_request_duration_seconds",
			Help:    "Duration of external provider requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"provider", "endpoint"},
	)

	RateLimitWaitSeconds = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "kickoff_ratelimit_wait_seconds",
			Help:    "Time spent suspended by a provider rate limiter",
			Buckets: []float64{.01, .05, .1, .25, .5, 1, 2, 5, 10},
		},
		[]string{"provider"},
	)

	// Geocoding metrics
	GeocodeLookupsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "kickoff_geocode_lookups_total",
			Help: "Geocoding lookups by result (hit, miss, cached, error)",
		},
		[]string{"result"},
	)

	// Reconciliation metrics
	EntitySyncTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "kickoff_entity_sync_total",
			Help: "Reconciled entities by kind and outcome",
		},
		[]string{"kind", "outcome"},
	)

	LeagueOnboardingsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "kickoff_league_onboardings_total",
			Help: "League onboardings by status (succeeded, failed)",
		},
		[]string{"status"},
	)

	LeagueOnboardingDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "kickoff_league_onboarding_duration_seconds",
			Help:    "Duration of a single league onboarding in seconds",
			Buckets: []float64{1, 5, 15, 30, 60, 120, 300, 600},
		},
	)

	BulkRunsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "kickoff_bulk_runs_total",
			Help: "Bulk onboarding runs by status (completed, fatal)",
		},
		[]string{"status"},
	)

	// Progress fan-out
	ProgressSubscribers = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "kickoff_progress_subscribers",
			Help: "Number of connected progress websocket subscribers",
		},
	)
)
