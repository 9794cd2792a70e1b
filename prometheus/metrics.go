package prometheus

import (
	"net/http"
	"strconv"
	"time"

	"spc-api/pkg/config"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// HTTP request metrics
	HttpRequestsTotal   *prometheus.CounterVec
	HttpRequestDuration *prometheus.HistogramVec

	// Authentication metrics
	LoginCounter    prometheus.Counter
	RegisterCounter prometheus.Counter
	RefreshCounter  prometheus.Counter
	RevokeCounter   prometheus.Counter
	AuthErrorCounter *prometheus.CounterVec

	// Resource operation counters
	DrugOperationsCounter     *prometheus.CounterVec
	SupplierOperationsCounter *prometheus.CounterVec
	OrderOperationsCounter    *prometheus.CounterVec
	StockOperationsCounter    *prometheus.CounterVec

	// Database operation metrics
	DbOperationDuration *prometheus.HistogramVec

	// Active tokens
	ActiveTokensGauge prometheus.Gauge
)

// InitMetrics initializes Prometheus metrics with configuration
func InitMetrics(cfg *config.Config) {
	// Use metric prefix from configuration
	prefix := cfg.Metrics.Prefix

	HttpRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: prefix + "_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	HttpRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    prefix + "_http_request_duration_seconds",
			Help:    "Duration of HTTP requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path", "status"},
	)

	LoginCounter = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: prefix + "_auth_login_total",
			Help: "Total number of login attempts",
		},
	)

	RegisterCounter = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: prefix + "_auth_register_total",
			Help: "Total number of user registrations",
		},
	)

	RefreshCounter = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: prefix + "_auth_refresh_total",
			Help: "Total number of refresh token exchanges",
		},
	)

	RevokeCounter = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: prefix + "_auth_revoke_total",
			Help: "Total number of refresh token revocations",
		},
	)

	AuthErrorCounter = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: prefix + "_auth_errors_total",
			Help: "Total number of authentication errors",
		},
		[]string{"type"}, // type can be "login_failure", "invalid_token", "db_error" etc.
	)

	DrugOperationsCounter = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: prefix + "_drug_operations_total",
			Help: "Total number of drug inventory operations",
		},
		[]string{"operation"},
	)

	SupplierOperationsCounter = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: prefix + "_supplier_operations_total",
			Help: "Total number of supplier operations",
		},
		[]string{"operation"},
	)

	OrderOperationsCounter = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: prefix + "_order_operations_total",
			Help: "Total number of order operations",
		},
		[]string{"operation"},
	)

	StockOperationsCounter = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: prefix + "_stock_operations_total",
			Help: "Total number of stock batch operations",
		},
		[]string{"operation"},
	)

	DbOperationDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    prefix + "_db_operation_duration_seconds",
			Help:    "Duration of database operations in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"operation"}, // operation can be "query", "insert", "update", "delete"
	)

	ActiveTokensGauge = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: prefix + "_auth_active_tokens",
			Help: "Number of currently active authentication tokens",
		},
	)
}

// TrackDBOperation measures database operation durations
func TrackDBOperation(operation string) func(time.Time) {
	startTime := time.Now()
	return func(endTime time.Time) {
		duration := time.Since(startTime).Seconds()
		DbOperationDuration.With(prometheus.Labels{
			"operation": operation,
		}).Observe(duration)
	}
}

// MetricsMiddleware creates a middleware function that captures metrics for each request
func MetricsMiddleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()

			// Execute the request handler
			err := next(c)

			// Record request duration
			duration := time.Since(start).Seconds()
			status := strconv.Itoa(c.Response().Status)
			path := c.Path()
			method := c.Request().Method

			HttpRequestsTotal.With(prometheus.Labels{
				"method": method,
				"path":   path,
				"status": status,
			}).Inc()

			HttpRequestDuration.With(prometheus.Labels{
				"method": method,
				"path":   path,
				"status": status,
			}).Observe(duration)

			return err
		}
	}
}

// RecordAuthError records an authentication error by type
func RecordAuthError(errorType string) {
	AuthErrorCounter.With(prometheus.Labels{"type": errorType}).Inc()
}

// RecordDrugOperation records a drug inventory operation
func RecordDrugOperation(operation string) {
	DrugOperationsCounter.With(prometheus.Labels{"operation": operation}).Inc()
}

// RecordSupplierOperation records a supplier operation
func RecordSupplierOperation(operation string) {
	SupplierOperationsCounter.With(prometheus.Labels{"operation": operation}).Inc()
}

// RecordOrderOperation records an order operation
func RecordOrderOperation(operation string) {
	OrderOperationsCounter.With(prometheus.Labels{"operation": operation}).Inc()
}

// RecordStockOperation records a stock batch operation
func RecordStockOperation(operation string) {
	StockOperationsCounter.With(prometheus.Labels{"operation": operation}).Inc()
}

// IncreaseActiveTokens increments the active tokens gauge
func IncreaseActiveTokens() {
	ActiveTokensGauge.Inc()
}

// DecreaseActiveTokens decrements the active tokens gauge
func DecreaseActiveTokens() {
	ActiveTokensGauge.Dec()
}

// GetPrometheusHandler returns an HTTP handler for the Prometheus metrics
func GetPrometheusHandler() http.Handler {
	return promhttp.Handler()
}
