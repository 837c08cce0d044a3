package monitoring

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

const namespace = "nutrino"

// MetricsCollector handles Prometheus metrics collection
type MetricsCollector struct {
	logger   *zap.Logger
	registry *prometheus.Registry

	// HTTP metrics
	httpRequestsTotal   *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec
	httpResponseSize    *prometheus.HistogramVec

	// Business metrics
	recipeMutationsTotal *prometheus.CounterVec
	ingredientsAdded     prometheus.Counter
	priceUpdatesTotal    prometheus.Counter
	ordersPlacedTotal    prometheus.Counter
	mealsOrderedTotal    prometheus.Counter
	partialResultsTotal  *prometheus.CounterVec

	// System metrics
	dbConnectionsOpen prometheus.Gauge
	dbConnectionsIdle prometheus.Gauge
	errorsTotal       *prometheus.CounterVec
}

// NewMetricsCollector creates a collector with its own registry, including
// the Go runtime and process collectors
func NewMetricsCollector(logger *zap.Logger) *MetricsCollector {
	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	factory := promauto.With(registry)

	return &MetricsCollector{
		logger:   logger.Named("metrics"),
		registry: registry,

		httpRequestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "http_requests_total",
				Help:      "Total number of HTTP requests",
			},
			[]string{"method", "path", "status_code"},
		),
		httpRequestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "http_request_duration_seconds",
				Help:      "HTTP request duration in seconds",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"method", "path", "status_code"},
		),
		httpResponseSize: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "http_response_size_bytes",
				Help:      "HTTP response size in bytes",
				Buckets:   prometheus.ExponentialBuckets(100, 10, 6),
			},
			[]string{"method", "path", "status_code"},
		),

		recipeMutationsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "recipe_mutations_total",
				Help:      "Recipe documents added, replaced or deleted",
			},
			[]string{"operation"},
		),
		ingredientsAdded: factory.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "ingredients_added_total",
				Help:      "Ingredients added to the catalog",
			},
		),
		priceUpdatesTotal: factory.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "price_updates_total",
				Help:      "Ingredient price updates",
			},
		),
		ordersPlacedTotal: factory.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "orders_placed_total",
				Help:      "Meal orders placed",
			},
		),
		mealsOrderedTotal: factory.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "meals_ordered_total",
				Help:      "Meals included in placed orders",
			},
		),
		partialResultsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "partial_results_total",
				Help:      "Responses computed with ingredients missing from the catalog",
			},
			[]string{"path"},
		),

		dbConnectionsOpen: factory.NewGauge(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Name:      "db_connections_open",
				Help:      "Number of open database connections",
			},
		),
		dbConnectionsIdle: factory.NewGauge(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Name:      "db_connections_idle",
				Help:      "Number of idle database connections",
			},
		),
		errorsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "errors_total",
				Help:      "Errors by source and kind",
			},
			[]string{"source", "error_type"},
		),
	}
}

// Registry exposes the collector's registry
func (m *MetricsCollector) Registry() *prometheus.Registry {
	return m.registry
}

// HTTPMiddleware creates a Gin middleware for HTTP metrics collection
func (m *MetricsCollector) HTTPMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}
		status := c.Writer.Status()
		statusCode := strconv.Itoa(status)

		m.httpRequestsTotal.WithLabelValues(c.Request.Method, path, statusCode).Inc()
		m.httpRequestDuration.WithLabelValues(c.Request.Method, path, statusCode).Observe(time.Since(start).Seconds())
		m.httpResponseSize.WithLabelValues(c.Request.Method, path, statusCode).Observe(float64(c.Writer.Size()))

		if status >= 400 {
			errorType := "client_error"
			if status >= 500 {
				errorType = "server_error"
			}
			m.errorsTotal.WithLabelValues("http", errorType).Inc()
		}
	}
}

// RecipeMutated counts a recipe add, replace or delete
func (m *MetricsCollector) RecipeMutated(operation string) {
	m.recipeMutationsTotal.WithLabelValues(operation).Inc()
}

// IngredientAdded counts a new catalog record
func (m *MetricsCollector) IngredientAdded() {
	m.ingredientsAdded.Inc()
}

// PriceUpdated counts a price change
func (m *MetricsCollector) PriceUpdated() {
	m.priceUpdatesTotal.Inc()
}

// OrderPlaced counts an order and its meals
func (m *MetricsCollector) OrderPlaced(meals int) {
	m.ordersPlacedTotal.Inc()
	m.mealsOrderedTotal.Add(float64(meals))
}

// PartialResult counts a response that skipped unknown ingredients
func (m *MetricsCollector) PartialResult(path string) {
	m.partialResultsTotal.WithLabelValues(path).Inc()
}

// UpdateDBConnections records pool statistics
func (m *MetricsCollector) UpdateDBConnections(open, idle int) {
	m.dbConnectionsOpen.Set(float64(open))
	m.dbConnectionsIdle.Set(float64(idle))
}

// RecordError counts an error outside the HTTP path
func (m *MetricsCollector) RecordError(source, errorType string) {
	m.errorsTotal.WithLabelValues(source, errorType).Inc()
}

// Handler returns the Prometheus metrics HTTP handler
func (m *MetricsCollector) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}
