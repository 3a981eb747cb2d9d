package datasource

import (
	"context"

	"weathercard/models"
)

// WeatherProvider is implemented by every source of current weather, including
// the decorators that wrap another provider
type WeatherProvider interface {
	// GetWeather fetches current weather for a free-text location query
	GetWeather(ctx context.Context, query string) (models.WeatherRecord, error)

	// Name returns the provider's name
	Name() string
}
