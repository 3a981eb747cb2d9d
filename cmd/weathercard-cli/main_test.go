package main

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"strings"
	"testing"
	"time"

	"weathercard/controller"
	"weathercard/datasource"
	"weathercard/models"
)

type stubProvider struct{}

func (stubProvider) Name() string { return "stub" }

func (stubProvider) GetWeather(_ context.Context, query string) (models.WeatherRecord, error) {
	if query != "London" {
		return models.WeatherRecord{}, &datasource.LookupError{Kind: datasource.KindNotFound, Query: query, Status: 404}
	}
	rec := models.WeatherRecord{Name: "London"}
	rec.Sys.Country = "GB"
	rec.Main.Temp = 9.4
	rec.Weather = []models.Condition{{Description: "light drizzle", Icon: "09d"}}
	return rec, nil
}

type stubMemory struct {
	value string
}

func (m *stubMemory) Load(context.Context) (string, bool, error) {
	return m.value, m.value != "", nil
}

func (m *stubMemory) Save(_ context.Context, q string) error {
	m.value = q
	return nil
}

func runLoop(t *testing.T, mem *stubMemory, input string) (string, string) {
	t.Helper()
	var out, errOut bytes.Buffer
	term := &terminal{out: &out, errOut: &errOut}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	ctrl := controller.New(stubProvider{}, mem, term, term, logger)
	ctrl.Mount(context.Background())

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := loop(ctx, strings.NewReader(input), ctrl, term, time.UTC); err != nil {
		t.Fatalf("loop: %v", err)
	}
	return out.String(), errOut.String()
}

func TestLoopSearchRendersCard(t *testing.T) {
	out, errOut := runLoop(t, &stubMemory{}, "London\n:quit\n")

	if !strings.Contains(out, "London  GB") || !strings.Contains(out, "light drizzle") {
		t.Errorf("expected card in output:\n%s", out)
	}
	if errOut != "" {
		t.Errorf("expected no failure output, got %q", errOut)
	}
}

func TestLoopFailureRingsBell(t *testing.T) {
	_, errOut := runLoop(t, &stubMemory{}, "Nowhereville\n")

	if !strings.Contains(errOut, "\a") {
		t.Error("expected the terminal bell")
	}
	if !strings.Contains(errOut, controller.FailureMessage) {
		t.Errorf("expected failure message, got %q", errOut)
	}
}

func TestLoopEnterSearchesRememberedLocation(t *testing.T) {
	out, _ := runLoop(t, &stubMemory{value: "London"}, "\n")

	if !strings.Contains(out, "[x] search (London)> ") {
		t.Errorf("expected remembered query in prompt:\n%s", out)
	}
	if !strings.Contains(out, "light drizzle") {
		t.Errorf("expected the remembered location to be searched:\n%s", out)
	}
}

func TestLoopRememberCommand(t *testing.T) {
	mem := &stubMemory{}
	out, _ := runLoop(t, mem, ":remember Paris\n:forget\n")

	if mem.value != "Paris" {
		t.Errorf("expected Paris to be stored, got %q", mem.value)
	}
	if !strings.Contains(out, "[x] search (Paris)> ") || !strings.Contains(out, "[ ] search (Paris)> ") {
		t.Errorf("expected remember box to toggle:\n%s", out)
	}
}

func TestLoopForgetAfterSearchKeepsStoredLocation(t *testing.T) {
	mem := &stubMemory{value: "London"}
	runLoop(t, mem, "\n:forget\n")

	if mem.value != "London" {
		t.Errorf("expected London to stay stored, got %q", mem.value)
	}
}
