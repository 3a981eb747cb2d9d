package datasource

import (
	"encoding/json"
	"fmt"
	"os"
	"time"
)

// Duration is a time.Duration that decodes from strings such as "10s" in JSON
type Duration time.Duration

// UnmarshalJSON accepts either a duration string or a number of seconds
func (d *Duration) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err == nil {
		parsed, err := time.ParseDuration(s)
		if err != nil {
			return fmt.Errorf("invalid duration %q: %w", s, err)
		}
		*d = Duration(parsed)
		return nil
	}

	var secs float64
	if err := json.Unmarshal(b, &secs); err != nil {
		return fmt.Errorf("invalid duration %s", string(b))
	}
	*d = Duration(time.Duration(secs * float64(time.Second)))
	return nil
}

// Config represents the application configuration
type Config struct {
	OpenWeatherMap struct {
		APIKey  string   `json:"apiKey"`
		BaseURL string   `json:"baseURL"`
		Units   string   `json:"units"`
		Timeout Duration `json:"timeout"` // zero keeps the transport default
	} `json:"openWeatherMap"`

	// Rate limiting applied to outbound lookups
	RateLimit struct {
		RPS   float64 `json:"rps"`
		Burst int     `json:"burst"`
	} `json:"rateLimit"`

	// How long successful lookups are reused, zero disables caching
	CacheTTL Duration `json:"cacheTTL"`

	// Time zone used to show sunrise and sunset, empty means the local zone
	TimeZone string `json:"timeZone"`
}

// LoadConfig loads configuration from a JSON file on top of DefaultConfig
func LoadConfig(filename string) (*Config, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	config := DefaultConfig()
	decoder := json.NewDecoder(file)
	if err := decoder.Decode(config); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", filename, err)
	}

	return config, nil
}

// DefaultConfig creates a default configuration
func DefaultConfig() *Config {
	config := &Config{}
	config.OpenWeatherMap.BaseURL = DefaultBaseURL
	config.OpenWeatherMap.Units = "metric"
	// OpenWeatherMap free tier allows 60 calls/minute
	config.RateLimit.RPS = 1.0
	config.RateLimit.Burst = 5
	return config
}

// ApplyEnv overrides file settings with environment variables
func (c *Config) ApplyEnv() {
	if key := os.Getenv("OPENWEATHER_API_KEY"); key != "" {
		c.OpenWeatherMap.APIKey = key
	}
	if base := os.Getenv("OPENWEATHER_BASE_URL"); base != "" {
		c.OpenWeatherMap.BaseURL = base
	}
	if tz := os.Getenv("WEATHERCARD_TZ"); tz != "" {
		c.TimeZone = tz
	}
}

// Location resolves TimeZone, falling back to the local zone
func (c *Config) Location() (*time.Location, error) {
	if c.TimeZone == "" {
		return time.Local, nil
	}
	loc, err := time.LoadLocation(c.TimeZone)
	if err != nil {
		return nil, fmt.Errorf("invalid time zone %q: %w", c.TimeZone, err)
	}
	return loc, nil
}
