// Package middleware provides HTTP middleware components
// following the Chain of Responsibility pattern
package middleware

import (
	stderrors "errors"
	"fmt"
	"net/http"
	"runtime/debug"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/nutrino/kitchen/internal/infrastructure/config"
	"github.com/nutrino/kitchen/internal/infrastructure/monitoring"
	"github.com/nutrino/kitchen/pkg/errors"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

// RequestIDKey is the gin context key holding the request id
const RequestIDKey = "request_id"

// limiterIdleTTL is how long an idle client keeps its token bucket
const limiterIdleTTL = 10 * time.Minute

type clientLimiter struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// Middleware provides all middleware functions
type Middleware struct {
	config  *config.Config
	logger  *zap.Logger
	tracer  trace.Tracer
	metrics *monitoring.MetricsCollector

	mu        sync.Mutex
	limiters  map[string]*clientLimiter
	lastSweep time.Time
	now       func() time.Time
}

// New creates a new middleware instance
func New(cfg *config.Config, logger *zap.Logger, tracer trace.Tracer, metrics *monitoring.MetricsCollector) *Middleware {
	return &Middleware{
		config:   cfg,
		logger:   logger.Named("http"),
		tracer:   tracer,
		metrics:  metrics,
		limiters: make(map[string]*clientLimiter),
		now:      time.Now,
	}
}

// RequestID adds a unique request ID to the context
func (m *Middleware) RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := c.GetHeader("X-Request-ID")
		if requestID == "" {
			requestID = uuid.New().String()
		}

		c.Set(RequestIDKey, requestID)
		c.Header("X-Request-ID", requestID)

		c.Next()
	}
}

// Logger provides structured logging for requests
func (m *Middleware) Logger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		raw := c.Request.URL.RawQuery

		c.Next()

		// Skip logging for health probes
		switch path {
		case m.config.Monitoring.HealthCheckPath, m.config.Monitoring.LivenessPath, m.config.Monitoring.ReadinessPath:
			return
		}

		if raw != "" {
			path = path + "?" + raw
		}
		statusCode := c.Writer.Status()

		fields := []zap.Field{
			zap.String("request_id", c.GetString(RequestIDKey)),
			zap.String("method", c.Request.Method),
			zap.String("path", path),
			zap.String("ip", c.ClientIP()),
			zap.Int("status", statusCode),
			zap.Duration("latency", time.Since(start)),
			zap.String("user_agent", c.Request.UserAgent()),
		}
		if len(c.Errors) > 0 {
			fields = append(fields, zap.String("error", c.Errors.String()))
		}

		switch {
		case statusCode >= 500:
			m.logger.Error("Server error", fields...)
		case statusCode >= 400:
			m.logger.Warn("Client error", fields...)
		default:
			m.logger.Info("Request completed", fields...)
		}
	}
}

// Recovery recovers from panics and returns 500 error
func (m *Middleware) Recovery() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if err := recover(); err != nil {
				m.logger.Error("Panic recovered",
					zap.String("request_id", c.GetString(RequestIDKey)),
					zap.Any("error", err),
					zap.String("stack", string(debug.Stack())),
				)

				appErr := errors.NewInternalError("")
				c.AbortWithStatusJSON(http.StatusInternalServerError, errors.ToErrorResponse(appErr, c.GetString(RequestIDKey)))
			}
		}()

		c.Next()
	}
}

// CORS handles Cross-Origin Resource Sharing
func (m *Middleware) CORS() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !m.config.Server.EnableCORS {
			c.Next()
			return
		}

		origin := c.Request.Header.Get("Origin")
		if origin != "" && m.isOriginAllowed(origin) {
			c.Header("Access-Control-Allow-Origin", origin)
			c.Header("Access-Control-Allow-Headers", "Content-Type, X-Request-ID")
			c.Header("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
			c.Header("Access-Control-Max-Age", "86400")
			c.Header("Vary", "Origin")
		}

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}

// RateLimit applies a token bucket per client IP
func (m *Middleware) RateLimit() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !m.config.RateLimit.Enable {
			c.Next()
			return
		}

		if !m.limiterFor(c.ClientIP()).Allow() {
			c.Header("Retry-After", "60")
			appErr := errors.NewAppError(errors.CodeTooManyRequests, "Rate limit exceeded", "")
			c.AbortWithStatusJSON(http.StatusTooManyRequests, errors.ToErrorResponse(appErr, c.GetString(RequestIDKey)))
			return
		}

		c.Next()
	}
}

func (m *Middleware) limiterFor(ip string) *rate.Limiter {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := m.now()
	if now.Sub(m.lastSweep) >= limiterIdleTTL {
		m.sweepLimiters(now)
	}

	client, ok := m.limiters[ip]
	if !ok {
		client = &clientLimiter{
			limiter: rate.NewLimiter(rate.Limit(m.config.RateLimit.RequestsPerMin)/60, m.config.RateLimit.BurstSize),
		}
		m.limiters[ip] = client
	}
	client.lastSeen = now
	return client.limiter
}

// sweepLimiters drops clients idle for longer than limiterIdleTTL. Caller holds mu.
func (m *Middleware) sweepLimiters(now time.Time) {
	for ip, client := range m.limiters {
		if now.Sub(client.lastSeen) >= limiterIdleTTL {
			delete(m.limiters, ip)
		}
	}
	m.lastSweep = now
}

// Tracing adds a server span per request
func (m *Middleware) Tracing() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !m.config.Monitoring.EnableTracing || m.tracer == nil {
			c.Next()
			return
		}

		ctx, span := m.tracer.Start(
			c.Request.Context(),
			fmt.Sprintf("%s %s", c.Request.Method, c.FullPath()),
			trace.WithSpanKind(trace.SpanKindServer),
			trace.WithAttributes(
				attribute.String("http.method", c.Request.Method),
				attribute.String("http.url", c.Request.URL.String()),
				attribute.String("request.id", c.GetString(RequestIDKey)),
			),
		)
		defer span.End()

		c.Request = c.Request.WithContext(ctx)

		c.Next()

		status := c.Writer.Status()
		span.SetAttributes(
			attribute.Int("http.status_code", status),
			attribute.Int("http.response_size", c.Writer.Size()),
		)
		if len(c.Errors) > 0 {
			span.RecordError(c.Errors.Last())
		}
		if status >= 500 {
			span.SetStatus(codes.Error, http.StatusText(status))
		}
	}
}

// Metrics records request metrics when a collector is configured
func (m *Middleware) Metrics() gin.HandlerFunc {
	if m.metrics == nil || !m.config.Monitoring.EnableMetrics {
		return func(c *gin.Context) { c.Next() }
	}
	return m.metrics.HTTPMiddleware()
}

// Security adds security headers
func (m *Middleware) Security() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("X-Content-Type-Options", "nosniff")
		c.Header("X-Frame-Options", "DENY")
		c.Header("Referrer-Policy", "strict-origin-when-cross-origin")

		c.Next()
	}
}

// ErrorHandler renders the last error attached by a handler
func (m *Middleware) ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 || c.Writer.Written() {
			return
		}

		err := c.Errors.Last().Err

		var appErr *errors.AppError
		if !stderrors.As(err, &appErr) {
			appErr = errors.NewInternalError("").WithCause(err)
		}

		fields := []zap.Field{
			zap.String("request_id", c.GetString(RequestIDKey)),
			zap.String("code", string(appErr.Code)),
			zap.String("details", appErr.Details),
		}
		if appErr.Cause != nil {
			fields = append(fields, zap.Error(appErr.Cause))
		}
		if m.metrics != nil {
			m.metrics.RecordError("http", string(appErr.Code))
		}
		if appErr.StatusCode() >= 500 {
			m.logger.Error("Request failed", fields...)
		} else {
			m.logger.Debug("Request rejected", fields...)
		}

		c.JSON(appErr.StatusCode(), errors.ToErrorResponse(appErr, c.GetString(RequestIDKey)))
	}
}

// isOriginAllowed checks if origin is in allowed list
func (m *Middleware) isOriginAllowed(origin string) bool {
	if m.config.IsDevelopment() {
		return true
	}

	for _, allowed := range m.config.Server.AllowedOrigins {
		if allowed == "*" || allowed == origin {
			return true
		}
	}

	return false
}
