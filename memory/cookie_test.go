package memory

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestCookieMemoryLoadWithoutCookie(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	m := NewCookieMemory(httptest.NewRecorder(), r)

	got, ok, err := m.Load(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ok || got != "" {
		t.Fatalf("expected nothing stored, got %q (ok=%v)", got, ok)
	}
}

func TestCookieMemoryRoundTrip(t *testing.T) {
	rec := httptest.NewRecorder()
	m := NewCookieMemory(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	if err := m.Save(context.Background(), "New York, US"); err != nil {
		t.Fatalf("save: %v", err)
	}

	cookies := rec.Result().Cookies()
	if len(cookies) != 1 {
		t.Fatalf("expected 1 cookie, got %d", len(cookies))
	}
	c := cookies[0]
	if c.Name != Key {
		t.Errorf("expected cookie %q, got %q", Key, c.Name)
	}
	if c.MaxAge != int(Expiry.Seconds()) {
		t.Errorf("expected MaxAge %d, got %d", int(Expiry.Seconds()), c.MaxAge)
	}

	next := httptest.NewRequest(http.MethodGet, "/", nil)
	next.AddCookie(c)
	got, ok, err := NewCookieMemory(httptest.NewRecorder(), next).Load(context.Background())
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if !ok || got != "New York, US" {
		t.Fatalf("expected %q, got %q (ok=%v)", "New York, US", got, ok)
	}
}

func TestCookieMemoryEmptyValueIsAbsent(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r.AddCookie(&http.Cookie{Name: Key, Value: ""})

	_, ok, err := NewCookieMemory(httptest.NewRecorder(), r).Load(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ok {
		t.Fatal("expected empty cookie to read as absent")
	}
}
