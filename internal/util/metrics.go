package util

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	ClaimsCreatedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "claims_created_total",
		Help: "Total number of claims created",
	})

	ClaimsFailedTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "claims_failed_total",
		Help: "Total number of failed claim attempts",
	}, []string{"reason"})

	ClaimTxLatency = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "claim_tx_latency_seconds",
		Help:    "Latency of the claim transaction",
		Buckets: prometheus.DefBuckets,
	})

	ClaimStatusUpdatesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "claim_status_updates_total",
		Help: "Total number of claim status updates",
	}, []string{"status"})

	ClaimsDeletedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "claims_deleted_total",
		Help: "Total number of claims deleted",
	})

	ListingsCreatedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "listings_created_total",
		Help: "Total number of listings created",
	})

	ListingsDeletedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "listings_deleted_total",
		Help: "Total number of listings deleted",
	})

	CascadedClaimsDeletedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "cascaded_claims_deleted_total",
		Help: "Total number of claims removed by listing deletion",
	})

	CacheInvalidationsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "cache_invalidations_total",
		Help: "Total number of read-cache invalidations",
	}, []string{"view"})

	ReportCacheHitsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "report_cache_hits_total",
		Help: "Report queries answered from the read cache",
	}, []string{"report", "result"})

	HTTPRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "http_request_duration_seconds",
		Help:    "HTTP request latency",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "path", "status"})

	HTTPRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "http_requests_total",
		Help: "Total number of HTTP requests",
	}, []string{"method", "path", "status"})
)
