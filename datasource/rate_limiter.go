package datasource

import (
	"context"
	"fmt"

	"weathercard/models"

	"golang.org/x/time/rate"
)

// RateLimitedProvider wraps a WeatherProvider with rate limiting
type RateLimitedProvider struct {
	provider WeatherProvider
	limiter  *rate.Limiter
	name     string
}

// NewRateLimitedProvider creates a new rate limited weather provider
// rps is the maximum requests per second allowed (can be fractional for less than 1 request per second)
// burst is the maximum burst size allowed
func NewRateLimitedProvider(provider WeatherProvider, rps float64, burst int) *RateLimitedProvider {
	return &RateLimitedProvider{
		provider: provider,
		limiter:  rate.NewLimiter(rate.Limit(rps), burst),
		name:     fmt.Sprintf("%s [Rate Limited]", provider.Name()),
	}
}

// GetWeather fetches weather data, respecting rate limits
func (r *RateLimitedProvider) GetWeather(ctx context.Context, query string) (models.WeatherRecord, error) {
	// Wait for rate limiter permission or context cancellation
	if err := r.limiter.Wait(ctx); err != nil {
		return models.WeatherRecord{}, &LookupError{
			Kind:  KindNetwork,
			Query: query,
			Err:   fmt.Errorf("rate limit wait canceled: %w", err),
		}
	}

	return r.provider.GetWeather(ctx, query)
}

// Name returns the provider name
func (r *RateLimitedProvider) Name() string {
	return r.name
}

var _ WeatherProvider = (*RateLimitedProvider)(nil)
