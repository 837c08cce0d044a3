// Package config provides centralized configuration management
// using Viper for configuration loading and validation
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/nutrino/kitchen/internal/domain/nutrition"
	"github.com/spf13/viper"
)

// Config holds all application configuration
type Config struct {
	App        AppConfig        `mapstructure:"app"`
	Server     ServerConfig     `mapstructure:"server"`
	Database   DatabaseConfig   `mapstructure:"database"`
	Storage    StorageConfig    `mapstructure:"storage"`
	Pricing    PricingConfig    `mapstructure:"pricing"`
	MealPlan   MealPlanConfig   `mapstructure:"meal_plan"`
	Monitoring MonitoringConfig `mapstructure:"monitoring"`
	RateLimit  RateLimitConfig  `mapstructure:"rate_limit"`
}

// AppConfig contains application-level configuration
type AppConfig struct {
	Name        string `mapstructure:"name"`
	Version     string `mapstructure:"version"`
	Environment string `mapstructure:"environment"`
	Debug       bool   `mapstructure:"debug"`
	LogLevel    string `mapstructure:"log_level"`
	LogFormat   string `mapstructure:"log_format"`
}

// ServerConfig contains HTTP server configuration
type ServerConfig struct {
	Host            string        `mapstructure:"host"`
	Port            int           `mapstructure:"port"`
	ReadTimeout     time.Duration `mapstructure:"read_timeout"`
	WriteTimeout    time.Duration `mapstructure:"write_timeout"`
	IdleTimeout     time.Duration `mapstructure:"idle_timeout"`
	MaxHeaderBytes  int           `mapstructure:"max_header_bytes"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
	EnableCORS      bool          `mapstructure:"enable_cors"`
	AllowedOrigins  []string      `mapstructure:"allowed_origins"`
	TrustedProxies  []string      `mapstructure:"trusted_proxies"`
}

// DatabaseConfig contains catalog database configuration
type DatabaseConfig struct {
	Driver          string        `mapstructure:"driver"`
	Path            string        `mapstructure:"path"`
	Host            string        `mapstructure:"host"`
	Port            int           `mapstructure:"port"`
	Database        string        `mapstructure:"database"`
	Username        string        `mapstructure:"username"`
	Password        string        `mapstructure:"password"`
	SSLMode         string        `mapstructure:"ssl_mode"`
	MaxOpenConns    int           `mapstructure:"max_open_conns"`
	MaxIdleConns    int           `mapstructure:"max_idle_conns"`
	ConnMaxLifetime time.Duration `mapstructure:"conn_max_lifetime"`
	ConnMaxIdleTime time.Duration `mapstructure:"conn_max_idle_time"`
	LogLevel        string        `mapstructure:"log_level"`
	AutoMigrate     bool          `mapstructure:"auto_migrate"`
	Seed            bool          `mapstructure:"seed"`
}

// StorageConfig locates the document files
type StorageConfig struct {
	RecipesPath string `mapstructure:"recipes_path"`
	OrdersPath  string `mapstructure:"orders_path"`
}

// CurrencyConfig is one entry of the currency table
type CurrencyConfig struct {
	Code   string  `mapstructure:"code"`
	Factor float64 `mapstructure:"factor"`
}

// PricingConfig contains cost display configuration
type PricingConfig struct {
	BaseCurrency string           `mapstructure:"base_currency"`
	Currencies   []CurrencyConfig `mapstructure:"currencies"`
	Markup       float64          `mapstructure:"markup"`
}

// MealPlanConfig contains meal plan generation configuration
type MealPlanConfig struct {
	Size int `mapstructure:"size"`
}

// MonitoringConfig contains monitoring configuration
type MonitoringConfig struct {
	EnableMetrics   bool   `mapstructure:"enable_metrics"`
	MetricsPath     string `mapstructure:"metrics_path"`
	EnableTracing   bool   `mapstructure:"enable_tracing"`
	HealthCheckPath string `mapstructure:"health_check_path"`
	LivenessPath    string `mapstructure:"liveness_path"`
	ReadinessPath   string `mapstructure:"readiness_path"`

	// OTLPEndpoint is the trace collector host:port; empty keeps spans in process
	OTLPEndpoint     string  `mapstructure:"otlp_endpoint"`
	OTLPInsecure     bool    `mapstructure:"otlp_insecure"`
	TraceSampleRatio float64 `mapstructure:"trace_sample_ratio"`
}

// RateLimitConfig contains rate limiting configuration
type RateLimitConfig struct {
	Enable         bool `mapstructure:"enable"`
	RequestsPerMin int  `mapstructure:"requests_per_min"`
	BurstSize      int  `mapstructure:"burst_size"`
}

// Load loads configuration from file and environment variables
func Load(configPath string) (*Config, error) {
	v := viper.New()

	setDefaults(v)

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./config")
		v.AddConfigPath("/etc/nutrino")
	}

	v.SetEnvPrefix("NUTRINO")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		// It's okay if config file doesn't exist, we have defaults
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

// setDefaults sets default configuration values
func setDefaults(v *viper.Viper) {
	// App defaults
	v.SetDefault("app.name", "Nutrino")
	v.SetDefault("app.version", "1.0.0")
	v.SetDefault("app.environment", "development")
	v.SetDefault("app.debug", false)
	v.SetDefault("app.log_level", "info")
	v.SetDefault("app.log_format", "json")

	// Server defaults
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.read_timeout", "15s")
	v.SetDefault("server.write_timeout", "15s")
	v.SetDefault("server.idle_timeout", "60s")
	v.SetDefault("server.max_header_bytes", 1<<20) // 1MB
	v.SetDefault("server.shutdown_timeout", "30s")
	v.SetDefault("server.enable_cors", true)
	v.SetDefault("server.allowed_origins", []string{"*"})

	// Database defaults
	v.SetDefault("database.driver", "sqlite")
	v.SetDefault("database.path", "data/nutrition.db")
	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", 5432)
	v.SetDefault("database.database", "nutrino")
	v.SetDefault("database.ssl_mode", "disable")
	v.SetDefault("database.max_open_conns", 25)
	v.SetDefault("database.max_idle_conns", 5)
	v.SetDefault("database.conn_max_lifetime", "1h")
	v.SetDefault("database.conn_max_idle_time", "10m")
	v.SetDefault("database.log_level", "warn")
	v.SetDefault("database.auto_migrate", true)
	v.SetDefault("database.seed", false)

	// Storage defaults
	v.SetDefault("storage.recipes_path", "data/recipes.json")
	v.SetDefault("storage.orders_path", "data/orders.json")

	// Pricing defaults
	v.SetDefault("pricing.base_currency", nutrition.CurrencyToman)
	v.SetDefault("pricing.currencies", []map[string]interface{}{
		{"code": nutrition.CurrencyToman, "factor": 1},
		{"code": nutrition.CurrencyIRR, "factor": 10},
	})
	v.SetDefault("pricing.markup", nutrition.DefaultMarkup)

	// Meal plan defaults
	v.SetDefault("meal_plan.size", 5)

	// Monitoring defaults
	v.SetDefault("monitoring.enable_metrics", true)
	v.SetDefault("monitoring.metrics_path", "/metrics")
	v.SetDefault("monitoring.enable_tracing", true)
	v.SetDefault("monitoring.otlp_endpoint", "")
	v.SetDefault("monitoring.otlp_insecure", false)
	v.SetDefault("monitoring.trace_sample_ratio", 1.0)
	v.SetDefault("monitoring.health_check_path", "/health")
	v.SetDefault("monitoring.liveness_path", "/health/live")
	v.SetDefault("monitoring.readiness_path", "/health/ready")

	// Rate limit defaults
	v.SetDefault("rate_limit.enable", false)
	v.SetDefault("rate_limit.requests_per_min", 600)
	v.SetDefault("rate_limit.burst_size", 50)
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.App.Name == "" {
		return fmt.Errorf("app.name is required")
	}

	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port must be between 1 and 65535")
	}

	switch c.Database.Driver {
	case "sqlite":
		if c.Database.Path == "" {
			return fmt.Errorf("database.path is required for sqlite")
		}
	case "postgres":
		if c.Database.Database == "" {
			return fmt.Errorf("database.database is required for postgres")
		}
	default:
		return fmt.Errorf("database.driver must be sqlite or postgres, got %q", c.Database.Driver)
	}

	if c.Storage.RecipesPath == "" || c.Storage.OrdersPath == "" {
		return fmt.Errorf("storage.recipes_path and storage.orders_path are required")
	}

	if c.Pricing.Markup <= 0 {
		return fmt.Errorf("pricing.markup must be positive")
	}
	table, err := c.CurrencyTable()
	if err != nil {
		return fmt.Errorf("pricing.currencies: %w", err)
	}
	if !table.Supports(c.Pricing.BaseCurrency) {
		return fmt.Errorf("pricing.base_currency %q is not in pricing.currencies", c.Pricing.BaseCurrency)
	}

	if c.MealPlan.Size < 1 {
		return fmt.Errorf("meal_plan.size must be at least 1")
	}

	if c.Monitoring.TraceSampleRatio < 0 || c.Monitoring.TraceSampleRatio > 1 {
		return fmt.Errorf("monitoring.trace_sample_ratio must be between 0 and 1")
	}

	if c.RateLimit.Enable && (c.RateLimit.RequestsPerMin < 1 || c.RateLimit.BurstSize < 1) {
		return fmt.Errorf("rate_limit.requests_per_min and rate_limit.burst_size must be positive")
	}

	return nil
}

// CurrencyTable builds the currency table from the pricing section
func (c *Config) CurrencyTable() (nutrition.CurrencyTable, error) {
	factors := make(map[string]float64, len(c.Pricing.Currencies))
	for _, cur := range c.Pricing.Currencies {
		factors[cur.Code] = cur.Factor
	}
	return nutrition.NewCurrencyTable(factors)
}

// PricingSettings returns the cost display settings
func (c *Config) PricingSettings() nutrition.Pricing {
	return nutrition.Pricing{DefaultCurrency: c.Pricing.BaseCurrency, Markup: c.Pricing.Markup}
}

// IsProduction returns true if running in production
func (c *Config) IsProduction() bool {
	return c.App.Environment == "production"
}

// IsDevelopment returns true if running in development
func (c *Config) IsDevelopment() bool {
	return c.App.Environment == "development"
}

// GetDSN returns the postgres connection string
func (c *Config) GetDSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Database.Host,
		c.Database.Port,
		c.Database.Username,
		c.Database.Password,
		c.Database.Database,
		c.Database.SSLMode,
	)
}
