package monitoring

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/nutrino/kitchen/internal/domain/ingredient"
	"github.com/nutrino/kitchen/internal/domain/mealplan"
	"github.com/nutrino/kitchen/internal/domain/recipe"
	"github.com/nutrino/kitchen/internal/domain/shared"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
	"go.uber.org/zap"
)

func TestEventHandlersFeedMetrics(t *testing.T) {
	metrics := NewMetricsCollector(zap.NewNop())
	dispatcher := shared.NewSyncDispatcher()
	RegisterEventHandlers(dispatcher, metrics, zap.NewNop())

	now := time.Now()
	events := []shared.DomainEvent{
		recipe.RecipeAddedEvent{Name: "Soup", AddedAt: now},
		recipe.RecipeAddedEvent{Name: "Salad", AddedAt: now},
		recipe.RecipeDeletedEvent{Name: "Soup", DeletedAt: now},
		ingredient.PriceUpdatedEvent{Name: "Egg", OldPrice: 1, NewPrice: 2, UpdatedAt: now},
		mealplan.OrderPlacedEvent{OrderID: uuid.New(), UserName: "sara", Meals: 3, PlacedAt: now},
	}
	require.NoError(t, shared.DispatchAll(dispatcher, events))

	assert.Equal(t, 2.0, testutil.ToFloat64(metrics.recipeMutationsTotal.WithLabelValues("add")))
	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.recipeMutationsTotal.WithLabelValues("delete")))
	assert.Equal(t, 0.0, testutil.ToFloat64(metrics.recipeMutationsTotal.WithLabelValues("replace")))
	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.priceUpdatesTotal))
	assert.Equal(t, 0.0, testutil.ToFloat64(metrics.ingredientsAdded))
	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.ordersPlacedTotal))
	assert.Equal(t, 3.0, testutil.ToFloat64(metrics.mealsOrderedTotal))
}

func TestHTTPMiddlewareAndHandler(t *testing.T) {
	gin.SetMode(gin.TestMode)
	metrics := NewMetricsCollector(zap.NewNop())

	router := gin.New()
	router.Use(metrics.HTTPMiddleware())
	router.GET("/recipes/:name", func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"success": false})
	})
	router.GET("/metrics", gin.WrapH(metrics.Handler()))

	for i := 0; i < 2; i++ {
		router.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/recipes/Soup", nil))
	}
	router.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/nowhere", nil))

	assert.Equal(t, 2.0, testutil.ToFloat64(metrics.httpRequestsTotal.WithLabelValues("GET", "/recipes/:name", "404")))
	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.httpRequestsTotal.WithLabelValues("GET", "unmatched", "404")))
	assert.Equal(t, 3.0, testutil.ToFloat64(metrics.errorsTotal.WithLabelValues("http", "client_error")))

	metrics.PartialResult("/calculate")

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	assert.Contains(t, body, `nutrino_http_requests_total{method="GET",path="/recipes/:name",status_code="404"} 2`)
	assert.Contains(t, body, `nutrino_partial_results_total{path="/calculate"} 1`)
	assert.Contains(t, body, "go_goroutines")
}

func TestTracingProviderDisabled(t *testing.T) {
	tp, err := NewTracingProvider(context.Background(), TracingConfig{}, zap.NewNop())
	require.NoError(t, err)

	_, span := tp.Tracer().Start(context.Background(), "noop")
	assert.False(t, span.SpanContext().IsValid())
	span.End()
	assert.NoError(t, tp.Shutdown(context.Background()))
}

func TestTracingProviderRecordsSpans(t *testing.T) {
	recorder := tracetest.NewSpanRecorder()
	tp := newTracingProvider(TracingConfig{
		Enabled:        true,
		ServiceName:    "kitchen",
		ServiceVersion: "1.2.0",
		Environment:    "test",
		SampleRatio:    1,
	}, zap.NewNop(), sdktrace.WithSpanProcessor(recorder))

	_, span := tp.Tracer().Start(context.Background(), "GET /recipes")
	assert.True(t, span.SpanContext().IsValid())
	span.End()

	ended := recorder.Ended()
	require.Len(t, ended, 1)
	assert.Equal(t, "GET /recipes", ended[0].Name())
	assert.Equal(t, TracerName, ended[0].InstrumentationScope().Name)
	assert.Contains(t, ended[0].Resource().Attributes(), attribute.String("service.name", "kitchen"))

	require.NoError(t, tp.Shutdown(context.Background()))
	_, late := tp.Tracer().Start(context.Background(), "after shutdown")
	late.End()
	assert.Len(t, recorder.Ended(), 1)
}

func TestTracingProviderSamplesByRatio(t *testing.T) {
	recorder := tracetest.NewSpanRecorder()
	tp := newTracingProvider(TracingConfig{Enabled: true, SampleRatio: 0}, zap.NewNop(), sdktrace.WithSpanProcessor(recorder))
	defer func() { _ = tp.Shutdown(context.Background()) }()

	_, span := tp.Tracer().Start(context.Background(), "dropped")
	assert.False(t, span.SpanContext().IsSampled())
	span.End()

	assert.Empty(t, recorder.Ended())
}

func TestNewTracingProviderWithExporter(t *testing.T) {
	tp, err := NewTracingProvider(context.Background(), TracingConfig{
		Enabled:      true,
		ServiceName:  "kitchen",
		OTLPEndpoint: "127.0.0.1:4318",
		OTLPInsecure: true,
		SampleRatio:  1,
	}, zap.NewNop())
	require.NoError(t, err)

	_, span := otel.Tracer(TracerName).Start(context.Background(), "global")
	assert.True(t, span.SpanContext().IsValid())
	span.End()

	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()
	_ = tp.Shutdown(ctx)
}
