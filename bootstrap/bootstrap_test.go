package bootstrap

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"weathercard/datasource"
)

func TestLoadConfigMissingFileUsesDefaults(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv("OPENWEATHER_API_KEY", "env-key")

	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "absent.json"))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.OpenWeatherMap.APIKey != "env-key" || cfg.OpenWeatherMap.BaseURL != datasource.DefaultBaseURL {
		t.Errorf("unexpected config %+v", cfg.OpenWeatherMap)
	}
}

func TestLoadConfigRequiresKey(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv("OPENWEATHER_API_KEY", "")

	if _, err := LoadConfig(filepath.Join(t.TempDir(), "absent.json")); err == nil {
		t.Fatal("expected an error without an API key")
	}
}

func TestProviderChain(t *testing.T) {
	cfg := datasource.DefaultConfig()
	cfg.OpenWeatherMap.APIKey = "k"

	p, cached := Provider(cfg, Options{RateLimit: true})
	if cached != nil {
		t.Error("expected no cache by default")
	}
	if !strings.Contains(p.Name(), "[Rate Limited]") {
		t.Errorf("expected rate limited provider, got %q", p.Name())
	}

	p, cached = Provider(cfg, Options{CacheTTL: time.Minute})
	if cached == nil || p.Name() != "OpenWeatherMap [Cached]" {
		t.Errorf("expected cached provider, got %q", p.Name())
	}
}

// chdir mirrors testing.T.Chdir (Go 1.24+) for older toolchains.
func chdir(t *testing.T, dir string) {
	t.Helper()
	old, err := os.Getwd()
	if err != nil {
		t.Fatalf("getwd: %v", err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatalf("chdir: %v", err)
	}
	t.Cleanup(func() {
		if err := os.Chdir(old); err != nil {
			t.Fatalf("restore dir: %v", err)
		}
	})
}
