package cache

import (
	"context"
	"errors"
	"testing"
	"time"

	"weathercard/models"
)

type stubProvider struct {
	calls int
	fail  bool
}

func (s *stubProvider) Name() string { return "stub" }

func (s *stubProvider) GetWeather(_ context.Context, query string) (models.WeatherRecord, error) {
	s.calls++
	if s.fail {
		return models.WeatherRecord{}, errors.New("boom")
	}
	return models.WeatherRecord{Name: query}, nil
}

func TestCachedProviderHitsWithinTTL(t *testing.T) {
	inner := &stubProvider{}
	c := NewCachedProvider(inner, time.Minute)
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	c.now = func() time.Time { return now }

	ctx := context.Background()
	if _, err := c.GetWeather(ctx, "London"); err != nil {
		t.Fatal(err)
	}
	rec, err := c.GetWeather(ctx, "  london ")
	if err != nil {
		t.Fatal(err)
	}
	if rec.Name != "London" {
		t.Errorf("expected cached London record, got %q", rec.Name)
	}
	if inner.calls != 1 {
		t.Errorf("expected one upstream call, got %d", inner.calls)
	}

	now = now.Add(2 * time.Minute)
	if _, err := c.GetWeather(ctx, "London"); err != nil {
		t.Fatal(err)
	}
	if inner.calls != 2 {
		t.Errorf("expected expiry to refetch, got %d calls", inner.calls)
	}

	hits, misses := c.CacheStats()
	if hits != 1 || misses != 2 {
		t.Errorf("expected 1 hit / 2 misses, got %d / %d", hits, misses)
	}
}

func TestCachedProviderSkipsFailures(t *testing.T) {
	inner := &stubProvider{fail: true}
	c := NewCachedProvider(inner, time.Minute)

	for i := 0; i < 2; i++ {
		if _, err := c.GetWeather(context.Background(), "London"); err == nil {
			t.Fatal("expected error")
		}
	}
	if inner.calls != 2 {
		t.Errorf("expected failures not to be cached, got %d calls", inner.calls)
	}
}

func TestCachedProviderDisabled(t *testing.T) {
	inner := &stubProvider{}
	c := NewCachedProvider(inner, 0)

	for i := 0; i < 3; i++ {
		if _, err := c.GetWeather(context.Background(), "London"); err != nil {
			t.Fatal(err)
		}
	}
	if inner.calls != 3 {
		t.Errorf("expected every call to reach the provider, got %d", inner.calls)
	}
}

func TestCachedProviderPrune(t *testing.T) {
	inner := &stubProvider{}
	c := NewCachedProvider(inner, time.Minute)
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	c.now = func() time.Time { return now }

	c.GetWeather(context.Background(), "London")
	now = now.Add(30 * time.Second)
	c.GetWeather(context.Background(), "Paris")
	now = now.Add(45 * time.Second)

	if pruned := c.Prune(); pruned != 1 {
		t.Fatalf("expected 1 entry pruned, got %d", pruned)
	}
	if c.Name() != "stub [Cached]" {
		t.Errorf("unexpected name %q", c.Name())
	}
}
