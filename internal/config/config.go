// Package config loads application configuration via viper and hands it to
// components as an explicit struct, so tests can inject fixtures instead of
// mutating process-wide state.
package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"
)

// Config carries everything the pipeline and its surfaces need.
type Config struct {
	// HTTP server
	Port int

	// SerpAPI (trending source + image search)
	SerpAPIKey    string
	SerpBaseURL   string
	TrendingQuery string
	GoogleDomain  string
	Country       string
	Language      string
	ImageRate     int
	RetryAttempts int

	// Suggestion service
	SuggestionBaseURL string

	// Extraction
	TrendStrategy string // "prefix" or "allowlist"
	MaxTrends     int
	KnownBrands   []string
	AllowlistFile string

	// Orchestration
	ProductsPerCategory int
	ImageConcurrency    int
	ImageTimeout        time.Duration

	// Optional extras
	SnapshotDBFile string
	ThumbnailDir   string
}

// StrategyPrefix and StrategyAllowlist are the two trend extraction policies.
const (
	StrategyPrefix    = "prefix"
	StrategyAllowlist = "allowlist"
)

// SetDefaults registers default values with viper.
func SetDefaults() {
	viper.SetDefault("server.port", 7000)
	viper.SetDefault("serpapi.baseurl", "")
	viper.SetDefault("serpapi.imagerate", 4)
	viper.SetDefault("serpapi.retries", 3)
	viper.SetDefault("serpapi.trendingquery", "trending products")
	viper.SetDefault("serpapi.googledomain", "google.co.in")
	viper.SetDefault("serpapi.country", "in")
	viper.SetDefault("serpapi.language", "en")
	viper.SetDefault("suggestion.baseurl", "http://localhost:5050")
	viper.SetDefault("trends.strategy", StrategyPrefix)
	viper.SetDefault("trends.max", 10)
	viper.SetDefault("enrich.productspercategory", 3)
	viper.SetDefault("enrich.imageconcurrency", 8)
	viper.SetDefault("enrich.imagetimeout", "10s")
}

// FromViper builds a Config from viper's current state.
func FromViper() (*Config, error) {
	timeoutStr := viper.GetString("enrich.imagetimeout")
	timeout, err := time.ParseDuration(timeoutStr)
	if err != nil {
		return nil, fmt.Errorf("invalid enrich.imagetimeout %q: %w", timeoutStr, err)
	}

	strategy := viper.GetString("trends.strategy")
	if strategy != StrategyPrefix && strategy != StrategyAllowlist {
		return nil, fmt.Errorf("unknown trends.strategy %q", strategy)
	}

	return &Config{
		Port:                viper.GetInt("server.port"),
		SerpAPIKey:          viper.GetString("serpapi.apikey"),
		SerpBaseURL:         viper.GetString("serpapi.baseurl"),
		TrendingQuery:       viper.GetString("serpapi.trendingquery"),
		GoogleDomain:        viper.GetString("serpapi.googledomain"),
		Country:             viper.GetString("serpapi.country"),
		Language:            viper.GetString("serpapi.language"),
		ImageRate:           viper.GetInt("serpapi.imagerate"),
		RetryAttempts:       viper.GetInt("serpapi.retries"),
		SuggestionBaseURL:   viper.GetString("suggestion.baseurl"),
		TrendStrategy:       strategy,
		MaxTrends:           viper.GetInt("trends.max"),
		KnownBrands:         viper.GetStringSlice("trends.brands"),
		AllowlistFile:       viper.GetString("trends.allowlistfile"),
		ProductsPerCategory: viper.GetInt("enrich.productspercategory"),
		ImageConcurrency:    viper.GetInt("enrich.imageconcurrency"),
		ImageTimeout:        timeout,
		SnapshotDBFile:      viper.GetString("snapshot.dbfile"),
		ThumbnailDir:        viper.GetString("thumbnails.dir"),
	}, nil
}
