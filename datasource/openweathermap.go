package datasource

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"weathercard/models"
)

// DefaultBaseURL is the OpenWeatherMap current weather API root
const DefaultBaseURL = "https://api.openweathermap.org/data/2.5"

// maxBodyBytes caps how much of a provider response is read
const maxBodyBytes = 1 << 20

// OpenWeatherMapProvider fetches current weather from OpenWeatherMap
type OpenWeatherMapProvider struct {
	apiKey     string
	baseURL    string
	units      string
	httpClient *http.Client
}

// apiError is the body OpenWeatherMap sends with non-200 responses.
// cod is a number or a string depending on the endpoint.
type apiError struct {
	Cod     any    `json:"cod"`
	Message string `json:"message"`
}

// NewOpenWeatherMapProvider creates a new OpenWeatherMap provider using metric units
// and the transport's default timeout
func NewOpenWeatherMapProvider(apiKey string) *OpenWeatherMapProvider {
	return &OpenWeatherMapProvider{
		apiKey:     apiKey,
		baseURL:    DefaultBaseURL,
		units:      "metric",
		httpClient: &http.Client{},
	}
}

// NewOpenWeatherMapProviderFromConfig creates a provider from the openWeatherMap config section
func NewOpenWeatherMapProviderFromConfig(config *Config) *OpenWeatherMapProvider {
	p := NewOpenWeatherMapProvider(config.OpenWeatherMap.APIKey)
	if config.OpenWeatherMap.BaseURL != "" {
		p.SetBaseURL(config.OpenWeatherMap.BaseURL)
	}
	if config.OpenWeatherMap.Units != "" {
		p.units = config.OpenWeatherMap.Units
	}
	p.SetTimeout(time.Duration(config.OpenWeatherMap.Timeout))
	return p
}

// SetBaseURL points the provider at another API root
func (p *OpenWeatherMapProvider) SetBaseURL(baseURL string) {
	p.baseURL = strings.TrimRight(baseURL, "/")
}

// SetTimeout changes the HTTP timeout; zero means no client-side limit
func (p *OpenWeatherMapProvider) SetTimeout(timeout time.Duration) {
	p.httpClient.Timeout = timeout
}

// Name returns the provider name
func (p *OpenWeatherMapProvider) Name() string {
	return "OpenWeatherMap"
}

// GetWeather fetches current weather for a location
func (p *OpenWeatherMapProvider) GetWeather(ctx context.Context, query string) (models.WeatherRecord, error) {
	if strings.TrimSpace(query) == "" {
		return models.WeatherRecord{}, &LookupError{Kind: KindEmptyQuery, Query: query}
	}

	// Build URL
	params := url.Values{}
	params.Add("q", query)
	params.Add("units", p.units)
	params.Add("appid", p.apiKey)
	endpoint := fmt.Sprintf("%s/weather?%s", p.baseURL, params.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return models.WeatherRecord{}, &LookupError{Kind: KindProvider, Query: query, Err: fmt.Errorf("failed to create request: %w", err)}
	}

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return models.WeatherRecord{}, &LookupError{Kind: KindNetwork, Query: query, Err: fmt.Errorf("failed to execute request: %w", err)}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes+1))
	if err != nil {
		return models.WeatherRecord{}, &LookupError{Kind: KindNetwork, Query: query, Status: resp.StatusCode, Err: fmt.Errorf("failed to read response body: %w", err)}
	}
	if len(body) > maxBodyBytes {
		return models.WeatherRecord{}, &LookupError{Kind: KindProvider, Query: query, Status: resp.StatusCode, Err: fmt.Errorf("response body exceeds %d bytes", maxBodyBytes)}
	}

	if resp.StatusCode != http.StatusOK {
		lerr := &LookupError{Kind: KindProvider, Query: query, Status: resp.StatusCode}
		if resp.StatusCode == http.StatusNotFound {
			lerr.Kind = KindNotFound
		}
		var apiErr apiError
		if json.Unmarshal(body, &apiErr) == nil {
			lerr.Message = apiErr.Message
		}
		return models.WeatherRecord{}, lerr
	}

	var record models.WeatherRecord
	if err := json.Unmarshal(body, &record); err != nil {
		return models.WeatherRecord{}, &LookupError{Kind: KindProvider, Query: query, Status: resp.StatusCode, Err: fmt.Errorf("failed to parse response: %w", err)}
	}
	if !record.Present() {
		return models.WeatherRecord{}, &LookupError{Kind: KindProvider, Query: query, Status: resp.StatusCode, Err: errors.New("incomplete weather record")}
	}
	record.Raw = json.RawMessage(body)

	return record, nil
}

var _ WeatherProvider = (*OpenWeatherMapProvider)(nil)
