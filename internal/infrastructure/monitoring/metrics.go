package monitoring

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Duration of HTTP requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"handler", "method", "status_code"},
	)

	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"handler", "method", "status_code"},
	)
)

var (
	CartOperationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cart_operations_total",
			Help: "Total number of cart mutations",
		},
		[]string{"operation"},
	)

	CartConflictsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "cart_restaurant_conflicts_total",
			Help: "Total number of adds rejected pending restaurant-switch confirmation",
		},
	)

	CheckoutAttemptsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "checkout_attempts_total",
			Help: "Total number of checkout attempts",
		},
	)

	CheckoutSuccessTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "checkout_success_total",
			Help: "Total number of successful checkouts",
		},
	)

	CheckoutFailureTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "checkout_failure_total",
			Help: "Total number of failed checkouts",
		},
		[]string{"reason"},
	)

	PointsRedeemedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "loyalty_points_redeemed_total",
			Help: "Total loyalty points redeemed as discounts",
		},
	)

	PointsEarnedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "loyalty_points_earned_total",
			Help: "Total loyalty points earned from charges",
		},
	)
)

var (
	DBQueryDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "db_query_duration_seconds",
			Help:    "Duration of database queries in seconds",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		},
		[]string{"query_type", "table"},
	)

	DBConnectionsActive = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "db_connections_active",
			Help: "Number of active database connections",
		},
	)

	DBConnectionsIdle = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "db_connections_idle",
			Help: "Number of idle database connections",
		},
	)
)

var (
	RedisCommandDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "redis_command_duration_seconds",
			Help:    "Duration of Redis commands in seconds",
			Buckets: []float64{0.0001, 0.0005, 0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
		},
		[]string{"command"},
	)

	CatalogCacheHitsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "catalog_cache_hits_total",
			Help: "Catalog cache lookups by outcome",
		},
		[]string{"outcome"},
	)
)

func TimeHTTPRequest(handler, method string) func(statusCode string) {
	start := time.Now()
	return func(statusCode string) {
		duration := time.Since(start).Seconds()
		HTTPRequestDuration.WithLabelValues(handler, method, statusCode).Observe(duration)
		HTTPRequestsTotal.WithLabelValues(handler, method, statusCode).Inc()
	}
}

func TimeDBQuery(queryType, table string) func() {
	start := time.Now()
	return func() {
		duration := time.Since(start).Seconds()
		DBQueryDuration.WithLabelValues(queryType, table).Observe(duration)
	}
}

func RecordCartOperation(operation string) {
	CartOperationsTotal.WithLabelValues(operation).Inc()
}

func RecordCartConflict() {
	CartConflictsTotal.Inc()
}

func RecordCheckoutAttempt() {
	CheckoutAttemptsTotal.Inc()
}

func RecordCheckoutSuccess(pointsRedeemed, pointsEarned int64) {
	CheckoutSuccessTotal.Inc()
	PointsRedeemedTotal.Add(float64(pointsRedeemed))
	PointsEarnedTotal.Add(float64(pointsEarned))
}

func RecordCheckoutFailure(reason string) {
	CheckoutFailureTotal.WithLabelValues(reason).Inc()
}

func RecordCatalogCacheHit() {
	CatalogCacheHitsTotal.WithLabelValues("hit").Inc()
}

func RecordCatalogCacheMiss() {
	CatalogCacheHitsTotal.WithLabelValues("miss").Inc()
}
