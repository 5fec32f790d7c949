// Package cmd wires the Kong CLI to the enrichment pipeline.
package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/alecthomas/kong"
	"github.com/lepinkainen/humanlog"
	"github.com/spf13/viper"

	"github.com/storegenius/storegenius/internal/config"
	"github.com/storegenius/storegenius/internal/enrich"
	"github.com/storegenius/storegenius/internal/images"
	"github.com/storegenius/storegenius/internal/ratelimit"
	"github.com/storegenius/storegenius/internal/serpapi"
	"github.com/storegenius/storegenius/internal/suggest"
	"github.com/storegenius/storegenius/internal/trends"
)

// CLI represents the complete command structure for the storegenius application
type CLI struct {
	// Global flags
	APIKey        string `help:"SerpAPI key (overrides config and SERPAPI_API_KEY)"`
	SuggestionURL string `help:"Base URL of the suggestion service"`

	Serve    ServeCmd    `cmd:"" help:"Run the HTTP API server"`
	Trending TrendingCmd `cmd:"" help:"Enrich the current shopping trend and print the result"`
	Suggest  SuggestCmd  `cmd:"" help:"Enrich products for a free-form prompt"`
}

// Execute runs the Kong-based CLI
func Execute() {
	initLogging()
	initConfig()

	var cli CLI

	ctx := kong.Parse(&cli,
		kong.Name("storegenius"),
		kong.Description("Trend-driven product suggestion and image enrichment."),
		kong.UsageOnError(),
	)

	updateGlobalConfig(&cli)

	err := ctx.Run()
	if err != nil {
		slog.Error("Command failed", "error", err)
		os.Exit(1)
	}
}

func initConfig() {
	config.SetDefaults()

	// Enable environment variable support
	viper.AutomaticEnv()
	bindEnv("serpapi.apikey", "SERPAPI_API_KEY")
	bindEnv("suggestion.baseurl", "SUGGESTION_SERVICE_URL")
	bindEnv("server.port", "PORT")

	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			slog.Info("Config file not found, using defaults")
		} else {
			slog.Error("Fatal error config file", "error", err)
			os.Exit(1)
		}
	}
}

func bindEnv(key, env string) {
	if err := viper.BindEnv(key, env); err != nil {
		slog.Error("Failed to bind environment variable", "env", env, "error", err)
	}
}

func updateGlobalConfig(cli *CLI) {
	if cli.APIKey != "" {
		viper.Set("serpapi.apikey", cli.APIKey)
	}
	if cli.SuggestionURL != "" {
		viper.Set("suggestion.baseurl", cli.SuggestionURL)
	}
}

// buildPipeline assembles the API clients and orchestrator from config.
func buildPipeline(cfg *config.Config) (*enrich.Service, *serpapi.Client, trends.Strategy, error) {
	if cfg.SerpAPIKey == "" {
		return nil, nil, nil, fmt.Errorf("serpapi API key is required (set SERPAPI_API_KEY, --api-key or serpapi.apikey in config)")
	}

	serp := serpapi.NewClient(cfg.SerpAPIKey,
		serpapi.WithBaseURL(cfg.SerpBaseURL),
		serpapi.WithRetryAttempts(cfg.RetryAttempts),
		serpapi.WithRateLimiter(ratelimit.New("serpapi", cfg.ImageRate)),
		serpapi.WithTrendingQuery(cfg.TrendingQuery, cfg.GoogleDomain, cfg.Country, cfg.Language),
	)

	suggester := suggest.NewClient(cfg.SuggestionBaseURL,
		suggest.WithRetryAttempts(cfg.RetryAttempts))

	resolver := images.NewResolver(serp, images.WithTimeout(cfg.ImageTimeout))

	strategy, err := buildStrategy(cfg)
	if err != nil {
		return nil, nil, nil, err
	}

	service := enrich.NewService(serp, strategy, suggester, resolver,
		enrich.WithProductsPerCategory(cfg.ProductsPerCategory),
		enrich.WithImageConcurrency(cfg.ImageConcurrency),
	)
	return service, serp, strategy, nil
}

func buildStrategy(cfg *config.Config) (trends.Strategy, error) {
	switch cfg.TrendStrategy {
	case config.StrategyPrefix:
		return trends.PrefixStrategy{MaxTokens: cfg.MaxTrends}, nil
	case config.StrategyAllowlist:
		brands := cfg.KnownBrands
		if cfg.AllowlistFile != "" {
			loaded, err := trends.LoadAllowlist(cfg.AllowlistFile)
			if err != nil {
				return nil, fmt.Errorf("failed to load brand allowlist: %w", err)
			}
			brands = append(brands, loaded...)
		}
		if len(brands) == 0 {
			return nil, fmt.Errorf("allowlist strategy requires trends.brands or trends.allowlistfile")
		}
		return trends.AllowlistStrategy{Brands: brands}, nil
	default:
		return nil, fmt.Errorf("unknown trends.strategy %q", cfg.TrendStrategy)
	}
}

// signalContext returns a context cancelled on SIGINT or SIGTERM.
func signalContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
}

func initLogging() {
	level := slog.LevelInfo
	switch strings.ToLower(os.Getenv("STOREGENIUS_LOG_LEVEL")) {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	}

	handler := humanlog.NewHandler(os.Stdout, &humanlog.Options{
		Level: level,
	})
	slog.SetDefault(slog.New(handler))
}
