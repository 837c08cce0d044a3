// Package postgres provides PostgreSQL connection management for the catalog
package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/nutrino/kitchen/internal/infrastructure/config"
	gormrepo "github.com/nutrino/kitchen/internal/infrastructure/persistence/gorm"
	"github.com/nutrino/kitchen/internal/infrastructure/persistence/migrations"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const slowQueryThreshold = 200 * time.Millisecond

// ConnectionManager owns the PostgreSQL connection pool
type ConnectionManager struct {
	config *config.Config
	logger *zap.Logger
	db     *gorm.DB
	sqlDB  *sql.DB
}

// NewConnectionManager connects, configures the pool and applies migrations
// when database.auto_migrate is set
func NewConnectionManager(cfg *config.Config, log *zap.Logger) (*ConnectionManager, error) {
	cm := &ConnectionManager{
		config: cfg,
		logger: log.Named("postgres"),
	}

	if err := cm.initializeConnection(); err != nil {
		return nil, fmt.Errorf("failed to initialize connection: %w", err)
	}

	if cfg.Database.AutoMigrate {
		migrator, err := migrations.New(cm.sqlDB, migrations.DialectPostgres, log)
		if err != nil {
			return nil, err
		}
		if err := migrator.Up(); err != nil {
			return nil, fmt.Errorf("failed to migrate database: %w", err)
		}
	}

	cm.logger.Info("Database connection established",
		zap.String("host", cfg.Database.Host),
		zap.Int("port", cfg.Database.Port),
		zap.String("database", cfg.Database.Database),
	)

	return cm, nil
}

func (cm *ConnectionManager) initializeConnection() error {
	db, err := gorm.Open(postgres.Open(cm.config.GetDSN()), &gorm.Config{
		Logger:         cm.createGORMLogger(),
		TranslateError: true,
	})
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}

	dbCfg := cm.config.Database
	sqlDB.SetMaxOpenConns(dbCfg.MaxOpenConns)
	sqlDB.SetMaxIdleConns(dbCfg.MaxIdleConns)
	sqlDB.SetConnMaxLifetime(dbCfg.ConnMaxLifetime)
	sqlDB.SetConnMaxIdleTime(dbCfg.ConnMaxIdleTime)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := sqlDB.PingContext(ctx); err != nil {
		return fmt.Errorf("failed to ping database: %w", err)
	}

	cm.db = db
	cm.sqlDB = sqlDB
	return nil
}

// createGORMLogger routes GORM output through zap
func (cm *ConnectionManager) createGORMLogger() logger.Interface {
	return logger.New(
		&GORMLogWriter{logger: cm.logger},
		logger.Config{
			SlowThreshold:             slowQueryThreshold,
			LogLevel:                  gormrepo.LogLevel(cm.config.Database.LogLevel),
			IgnoreRecordNotFoundError: true,
			Colorful:                  false,
		},
	)
}

// GetDB returns the main database connection
func (cm *ConnectionManager) GetDB() *gorm.DB {
	return cm.db
}

// HealthCheck performs a health check on the database connection
func (cm *ConnectionManager) HealthCheck(ctx context.Context) error {
	if err := cm.sqlDB.PingContext(ctx); err != nil {
		return fmt.Errorf("database ping failed: %w", err)
	}
	return nil
}

// Close closes the connection pool
func (cm *ConnectionManager) Close() error {
	if cm.sqlDB == nil {
		return nil
	}
	if err := cm.sqlDB.Close(); err != nil {
		cm.logger.Error("Failed to close database", zap.Error(err))
		return err
	}
	return nil
}

// GORMLogWriter adapts zap to the GORM logger writer
type GORMLogWriter struct {
	logger *zap.Logger
}

// Printf implements logger.Writer
func (w *GORMLogWriter) Printf(format string, args ...interface{}) {
	w.logger.Info(fmt.Sprintf(format, args...))
}
