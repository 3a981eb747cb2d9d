package datasource

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	body := `{
  "openWeatherMap": {"apiKey": "file-key", "timeout": "7s"},
  "rateLimit": {"rps": 0.5, "burst": 2},
  "cacheTTL": 90,
  "timeZone": "Europe/Paris"
}`
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.OpenWeatherMap.APIKey != "file-key" {
		t.Errorf("unexpected api key %q", cfg.OpenWeatherMap.APIKey)
	}
	if cfg.OpenWeatherMap.BaseURL != DefaultBaseURL || cfg.OpenWeatherMap.Units != "metric" {
		t.Errorf("expected defaults to survive, got %+v", cfg.OpenWeatherMap)
	}
	if time.Duration(cfg.OpenWeatherMap.Timeout) != 7*time.Second {
		t.Errorf("unexpected timeout %s", time.Duration(cfg.OpenWeatherMap.Timeout))
	}
	if cfg.RateLimit.RPS != 0.5 || cfg.RateLimit.Burst != 2 {
		t.Errorf("unexpected rate limit %+v", cfg.RateLimit)
	}
	if time.Duration(cfg.CacheTTL) != 90*time.Second {
		t.Errorf("unexpected cache ttl %s", time.Duration(cfg.CacheTTL))
	}
}

func TestLoadConfigInvalidDuration(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	if err := os.WriteFile(path, []byte(`{"cacheTTL": "soon"}`), 0o600); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadConfig(path); err == nil {
		t.Fatal("expected an error for an invalid duration")
	}
}

func TestApplyEnv(t *testing.T) {
	t.Setenv("OPENWEATHER_API_KEY", "env-key")
	t.Setenv("WEATHERCARD_TZ", "UTC")

	cfg := DefaultConfig()
	cfg.OpenWeatherMap.APIKey = "file-key"
	cfg.ApplyEnv()

	if cfg.OpenWeatherMap.APIKey != "env-key" {
		t.Errorf("expected env key to win, got %q", cfg.OpenWeatherMap.APIKey)
	}
	loc, err := cfg.Location()
	if err != nil || loc.String() != "UTC" {
		t.Errorf("expected UTC location, got %v (%v)", loc, err)
	}
}
