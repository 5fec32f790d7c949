package config

import (
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func resetViper(t *testing.T) {
	t.Helper()
	viper.Reset()
	t.Cleanup(viper.Reset)
}

func TestFromViper_Defaults(t *testing.T) {
	resetViper(t)
	SetDefaults()

	cfg, err := FromViper()
	require.NoError(t, err)

	assert.Equal(t, 7000, cfg.Port)
	assert.Equal(t, "http://localhost:5050", cfg.SuggestionBaseURL)
	assert.Equal(t, StrategyPrefix, cfg.TrendStrategy)
	assert.Equal(t, 10, cfg.MaxTrends)
	assert.Equal(t, 3, cfg.ProductsPerCategory)
	assert.Equal(t, 8, cfg.ImageConcurrency)
	assert.Equal(t, "10s", cfg.ImageTimeout.String())
	assert.Equal(t, "google.co.in", cfg.GoogleDomain)
}

func TestFromViper_Overrides(t *testing.T) {
	resetViper(t)
	SetDefaults()
	viper.Set("trends.strategy", StrategyAllowlist)
	viper.Set("trends.brands", []string{"Nike", "Adidas"})
	viper.Set("enrich.imagetimeout", "2s")
	viper.Set("serpapi.apikey", "key-123")

	cfg, err := FromViper()
	require.NoError(t, err)

	assert.Equal(t, StrategyAllowlist, cfg.TrendStrategy)
	assert.Equal(t, []string{"Nike", "Adidas"}, cfg.KnownBrands)
	assert.Equal(t, "2s", cfg.ImageTimeout.String())
	assert.Equal(t, "key-123", cfg.SerpAPIKey)
}

func TestFromViper_BadTimeout(t *testing.T) {
	resetViper(t)
	SetDefaults()
	viper.Set("enrich.imagetimeout", "soonish")

	_, err := FromViper()
	assert.Error(t, err)
}

func TestFromViper_UnknownStrategy(t *testing.T) {
	resetViper(t)
	SetDefaults()
	viper.Set("trends.strategy", "ml")

	_, err := FromViper()
	assert.Error(t, err)
}
