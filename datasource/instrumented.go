package datasource

import (
	"context"
	"time"

	"weathercard/models"
	"weathercard/observability"
)

// InstrumentedProvider records lookup outcomes and latency for the wrapped provider
type InstrumentedProvider struct {
	provider WeatherProvider
}

// NewInstrumentedProvider wraps provider with prometheus instrumentation
func NewInstrumentedProvider(provider WeatherProvider) *InstrumentedProvider {
	return &InstrumentedProvider{provider: provider}
}

// GetWeather forwards to the wrapped provider and records the outcome
func (p *InstrumentedProvider) GetWeather(ctx context.Context, query string) (models.WeatherRecord, error) {
	start := time.Now()
	record, err := p.provider.GetWeather(ctx, query)

	outcome := "ok"
	if err != nil {
		outcome = KindOf(err).String()
	}
	observability.LookupCounter.WithLabelValues(p.provider.Name(), outcome).Inc()
	observability.LookupDuration.WithLabelValues(p.provider.Name()).Observe(time.Since(start).Seconds())

	return record, err
}

// Name returns the wrapped provider's name
func (p *InstrumentedProvider) Name() string {
	return p.provider.Name()
}

var _ WeatherProvider = (*InstrumentedProvider)(nil)
