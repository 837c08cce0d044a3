package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/nutrino/kitchen/internal/domain/nutrition"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load(writeConfig(t, "app:\n  name: Nutrino\n"))
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, "sqlite", cfg.Database.Driver)
	assert.Equal(t, "data/recipes.json", cfg.Storage.RecipesPath)
	assert.Equal(t, nutrition.DefaultMarkup, cfg.Pricing.Markup)
	assert.Equal(t, 5, cfg.MealPlan.Size)
	assert.Equal(t, 1.0, cfg.Monitoring.TraceSampleRatio)
	assert.Empty(t, cfg.Monitoring.OTLPEndpoint)

	table, err := cfg.CurrencyTable()
	require.NoError(t, err)
	assert.Equal(t, []string{"IRR", "Toman"}, table.Codes())
	assert.Equal(t, nutrition.Pricing{DefaultCurrency: "Toman", Markup: 1.5}, cfg.PricingSettings())
}

func TestLoadFileAndEnvironment(t *testing.T) {
	path := writeConfig(t, `
server:
  port: 9000
pricing:
  base_currency: USD
  markup: 2
  currencies:
    - code: USD
      factor: 0.00002
storage:
  recipes_path: /tmp/r.json
  orders_path: /tmp/o.json
`)
	t.Setenv("NUTRINO_SERVER_PORT", "9100")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 9100, cfg.Server.Port)
	assert.Equal(t, "USD", cfg.Pricing.BaseCurrency)
	assert.Equal(t, 2.0, cfg.Pricing.Markup)
	assert.Equal(t, "/tmp/r.json", cfg.Storage.RecipesPath)

	table, err := cfg.CurrencyTable()
	require.NoError(t, err)
	assert.True(t, table.Supports("USD"))
	assert.False(t, table.Supports("Toman"))
}

func TestValidate(t *testing.T) {
	valid := func() *Config {
		cfg, err := Load(writeConfig(t, "app:\n  name: Nutrino\n"))
		require.NoError(t, err)
		return cfg
	}

	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"bad port", func(c *Config) { c.Server.Port = 0 }},
		{"unknown driver", func(c *Config) { c.Database.Driver = "mysql" }},
		{"sqlite without path", func(c *Config) { c.Database.Path = "" }},
		{"non-positive markup", func(c *Config) { c.Pricing.Markup = 0 }},
		{"base currency not in table", func(c *Config) { c.Pricing.BaseCurrency = "EUR" }},
		{"zero currency factor", func(c *Config) { c.Pricing.Currencies[0].Factor = 0 }},
		{"missing orders path", func(c *Config) { c.Storage.OrdersPath = "" }},
		{"empty plan", func(c *Config) { c.MealPlan.Size = 0 }},
		{"sample ratio above one", func(c *Config) { c.Monitoring.TraceSampleRatio = 1.5 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}
