// Package container provides dependency injection using Uber FX
package container

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	catalogapp "github.com/nutrino/kitchen/internal/application/catalog"
	mealplanapp "github.com/nutrino/kitchen/internal/application/mealplan"
	nutritionapp "github.com/nutrino/kitchen/internal/application/nutrition"
	recipeapp "github.com/nutrino/kitchen/internal/application/recipe"
	"github.com/nutrino/kitchen/internal/domain/mealplan"
	"github.com/nutrino/kitchen/internal/domain/nutrition"
	"github.com/nutrino/kitchen/internal/domain/shared"
	"github.com/nutrino/kitchen/internal/infrastructure/config"
	"github.com/nutrino/kitchen/internal/infrastructure/http/handlers"
	"github.com/nutrino/kitchen/internal/infrastructure/http/middleware"
	"github.com/nutrino/kitchen/internal/infrastructure/http/server"
	"github.com/nutrino/kitchen/internal/infrastructure/importer"
	"github.com/nutrino/kitchen/internal/infrastructure/monitoring"
	"github.com/nutrino/kitchen/internal/infrastructure/persistence/filestore"
	gormrepo "github.com/nutrino/kitchen/internal/infrastructure/persistence/gorm"
	"github.com/nutrino/kitchen/internal/infrastructure/persistence/postgres"
	"github.com/nutrino/kitchen/internal/infrastructure/persistence/sqlite"
	"github.com/nutrino/kitchen/internal/infrastructure/render"
	"github.com/nutrino/kitchen/internal/ports/outbound"
	"github.com/nutrino/kitchen/pkg/healthcheck"
	"github.com/nutrino/kitchen/pkg/logger"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const dbStatsInterval = 15 * time.Second

// ConfigPath is the file handed to config.Load. Empty searches the default locations.
type ConfigPath string

// Module provides every module the API server needs
var Module = fx.Options(
	CoreModule,
	HTTPModule,
	LifecycleModule,
)

// CoreModule wires configuration, storage and the application services.
// The import command runs on it without the HTTP layer.
var CoreModule = fx.Options(
	ConfigModule,
	LoggerModule,
	DatabaseModule,
	RepositoryModule,
	DomainModule,
	EventModule,
	ServiceModule,
	MonitoringModule,
)

// ConfigModule provides configuration
var ConfigModule = fx.Provide(
	func(path ConfigPath) (*config.Config, error) {
		return config.Load(string(path))
	},
)

// LoggerModule provides logging
var LoggerModule = fx.Provide(
	func(cfg *config.Config) (*zap.Logger, error) {
		return logger.New(logger.Config{
			Level:       cfg.App.LogLevel,
			Format:      cfg.App.LogFormat,
			Development: cfg.App.Debug,
		})
	},
)

// DatabaseModule provides the catalog connection
var DatabaseModule = fx.Provide(
	NewDatabase,
	func(db *gorm.DB) (*sql.DB, error) {
		return db.DB()
	},
)

// NewDatabase opens the catalog for the configured driver and closes it on stop
func NewDatabase(lc fx.Lifecycle, cfg *config.Config, log *zap.Logger) (*gorm.DB, error) {
	switch cfg.Database.Driver {
	case "postgres":
		cm, err := postgres.NewConnectionManager(cfg, log)
		if err != nil {
			return nil, err
		}
		lc.Append(fx.Hook{
			OnStop: func(context.Context) error { return cm.Close() },
		})
		return cm.GetDB(), nil

	default:
		db, err := sqlite.SetupDatabase(cfg.Database.Path, gormrepo.LogLevel(cfg.Database.LogLevel), log)
		if err != nil {
			return nil, fmt.Errorf("failed to setup SQLite database: %w", err)
		}
		log.Info("Connected to SQLite database", zap.String("path", cfg.Database.Path))

		lc.Append(fx.Hook{
			OnStop: func(context.Context) error {
				sqlDB, err := db.DB()
				if err != nil {
					return err
				}
				return sqlDB.Close()
			},
		})
		return db, nil
	}
}

// RepositoryModule provides the catalog repository and the document stores
var RepositoryModule = fx.Provide(
	gormrepo.NewIngredientRepository,
	func(cfg *config.Config, log *zap.Logger) (outbound.RecipeStore, error) {
		return filestore.OpenRecipeStore(cfg.Storage.RecipesPath, log)
	},
	func(cfg *config.Config, log *zap.Logger) outbound.OrderLog {
		return filestore.NewOrderLog(cfg.Storage.OrdersPath, log)
	},
)

// DomainModule provides the reference tables and domain engines
var DomainModule = fx.Provide(
	func(cfg *config.Config) (*nutrition.Aggregator, error) {
		currencies, err := cfg.CurrencyTable()
		if err != nil {
			return nil, err
		}
		return nutrition.NewAggregator(nutrition.DefaultReference(), currencies), nil
	},
	func(cfg *config.Config) nutrition.Pricing {
		return cfg.PricingSettings()
	},
	func(cfg *config.Config) *mealplan.Selector {
		return mealplan.NewSelector(mealplan.NewTimeSeededSource(), cfg.MealPlan.Size)
	},
	recipeapp.NewAnnotator,
	render.NewLabelRenderer,
	render.NewSheetRenderer,
)

// EventModule provides the domain event dispatcher
var EventModule = fx.Provide(
	fx.Annotate(
		shared.NewSyncDispatcher,
		fx.As(new(shared.EventDispatcher)),
	),
)

// ServiceModule provides application services
var ServiceModule = fx.Provide(
	catalogapp.NewCatalogService,
	nutritionapp.NewNutritionService,
	recipeapp.NewRecipeService,
	func() mealplanapp.Clock {
		return time.Now
	},
	mealplanapp.NewMealPlanService,
	importer.New,
)

// MonitoringModule provides metrics, tracing and health checks
var MonitoringModule = fx.Provide(
	monitoring.NewMetricsCollector,
	NewTracingProvider,
	func(tp *monitoring.TracingProvider) trace.Tracer {
		return tp.Tracer()
	},
	NewHealthCheck,
)

// NewTracingProvider builds the tracer provider and flushes it on stop
func NewTracingProvider(lc fx.Lifecycle, cfg *config.Config, log *zap.Logger) (*monitoring.TracingProvider, error) {
	tp, err := monitoring.NewTracingProvider(context.Background(), monitoring.TracingConfig{
		Enabled:        cfg.Monitoring.EnableTracing,
		ServiceName:    cfg.App.Name,
		ServiceVersion: cfg.App.Version,
		Environment:    cfg.App.Environment,
		OTLPEndpoint:   cfg.Monitoring.OTLPEndpoint,
		OTLPInsecure:   cfg.Monitoring.OTLPInsecure,
		SampleRatio:    cfg.Monitoring.TraceSampleRatio,
	}, log.Named("tracing"))
	if err != nil {
		return nil, err
	}

	lc.Append(fx.Hook{
		OnStop: tp.Shutdown,
	})
	return tp, nil
}

// NewHealthCheck registers the catalog and document file checks
func NewHealthCheck(cfg *config.Config, sqlDB *sql.DB, log *zap.Logger) *healthcheck.HealthCheck {
	health := healthcheck.New(cfg.App.Version, log)
	health.Register("database", healthcheck.NewDatabaseChecker(sqlDB))
	health.Register("recipe_store", healthcheck.NewFileChecker(cfg.Storage.RecipesPath))
	health.Register("order_log", healthcheck.NewFileChecker(cfg.Storage.OrdersPath))
	return health
}

// HTTPModule provides HTTP server and handlers
var HTTPModule = fx.Provide(
	middleware.New,
	handlers.NewAPIHandlers,
	server.NewServer,
)

// LifecycleModule provides lifecycle hooks
var LifecycleModule = fx.Invoke(
	RegisterEventHandlers,
	RegisterLifecycleHooks,
)

// RegisterEventHandlers subscribes monitoring to the domain events
func RegisterEventHandlers(dispatcher shared.EventDispatcher, metrics *monitoring.MetricsCollector, log *zap.Logger) {
	monitoring.RegisterEventHandlers(dispatcher, metrics, log)
}

// RegisterLifecycleHooks registers application lifecycle hooks
func RegisterLifecycleHooks(
	lc fx.Lifecycle,
	cfg *config.Config,
	log *zap.Logger,
	sqlDB *sql.DB,
	repo outbound.IngredientRepository,
	metrics *monitoring.MetricsCollector,
	srv *server.Server,
) {
	stopStats := make(chan struct{})

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			log.Info("Starting Nutrino application",
				zap.String("version", cfg.App.Version),
				zap.String("environment", cfg.App.Environment),
				zap.String("database", cfg.Database.Driver),
			)

			if cfg.Database.Seed {
				if err := sqlite.SeedDatabase(ctx, repo, log); err != nil {
					log.Warn("Failed to seed database", zap.Error(err))
				}
			}

			go reportDBStats(sqlDB, metrics, stopStats)

			go func() {
				if err := srv.Start(); err != nil {
					log.Fatal("Failed to start HTTP server", zap.Error(err))
				}
			}()

			return nil
		},
		OnStop: func(ctx context.Context) error {
			log.Info("Shutting down Nutrino application")
			close(stopStats)

			if err := srv.Shutdown(ctx); err != nil {
				log.Error("Failed to shutdown HTTP server", zap.Error(err))
			}

			_ = log.Sync()
			return nil
		},
	})
}

// reportDBStats publishes pool gauges until stop is closed
func reportDBStats(sqlDB *sql.DB, metrics *monitoring.MetricsCollector, stop <-chan struct{}) {
	ticker := time.NewTicker(dbStatsInterval)
	defer ticker.Stop()

	for {
		stats := sqlDB.Stats()
		metrics.UpdateDBConnections(stats.OpenConnections, stats.Idle)

		select {
		case <-stop:
			return
		case <-ticker.C:
		}
	}
}
