// Package bootstrap loads configuration and assembles the provider chain shared
// by the web server and the terminal client.
package bootstrap

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"time"

	"weathercard/cache"
	"weathercard/datasource"

	"github.com/joho/godotenv"
)

// LoadConfig reads .env, the JSON config file and the environment, in that
// order of increasing precedence. A missing config file falls back to defaults.
func LoadConfig(path string) (*datasource.Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		slog.Warn("error loading .env file", "error", err)
	}

	config, err := datasource.LoadConfig(path)
	if errors.Is(err, fs.ErrNotExist) {
		slog.Info("config file not found, using defaults", "path", path)
		config = datasource.DefaultConfig()
	} else if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	config.ApplyEnv()
	if config.OpenWeatherMap.APIKey == "" {
		return nil, errors.New("no OpenWeatherMap API key: set OPENWEATHER_API_KEY or openWeatherMap.apiKey")
	}
	return config, nil
}

// Options tweak the provider chain from command line flags
type Options struct {
	RateLimit bool
	CacheTTL  time.Duration // overrides config.CacheTTL when non-zero
}

// Provider builds OpenWeatherMap wrapped, innermost first, in rate limiting,
// instrumentation and caching. The cache is returned separately so callers can
// prune it; it is nil when caching is off.
func Provider(config *datasource.Config, opts Options) (datasource.WeatherProvider, *cache.CachedProvider) {
	var provider datasource.WeatherProvider = datasource.NewOpenWeatherMapProviderFromConfig(config)

	if opts.RateLimit && config.RateLimit.RPS > 0 {
		provider = datasource.NewRateLimitedProvider(provider, config.RateLimit.RPS, config.RateLimit.Burst)
		slog.Info("applied rate limiting", "provider", provider.Name(),
			"rps", config.RateLimit.RPS, "burst", config.RateLimit.Burst)
	}

	provider = datasource.NewInstrumentedProvider(provider)

	ttl := time.Duration(config.CacheTTL)
	if opts.CacheTTL > 0 {
		ttl = opts.CacheTTL
	}
	if ttl <= 0 {
		return provider, nil
	}
	cached := cache.NewCachedProvider(provider, ttl)
	slog.Info("caching lookups", "ttl", ttl)
	return cached, cached
}
