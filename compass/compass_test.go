package compass

import (
	"math"
	"testing"
)

func TestCardinalPrincipalPoints(t *testing.T) {
	cases := map[float64]string{
		0:   "N",
		90:  "E",
		180: "S",
		270: "W",
		45:  "NE",
		135: "SE",
		225: "SW",
		315: "NW",
	}
	for deg, want := range cases {
		if got := Cardinal(deg); got != want {
			t.Errorf("Cardinal(%v) = %q, want %q", deg, got, want)
		}
	}
}

func TestCardinalSectorBoundaries(t *testing.T) {
	cases := []struct {
		deg  float64
		want string
	}{
		{11.24, "N"},
		{11.25, "NNE"},
		{33.74, "NNE"},
		{33.75, "NE"},
		{348.74, "NNW"},
		{348.75, "N"},
		{359.99, "N"},
	}
	for _, tc := range cases {
		if got := Cardinal(tc.deg); got != tc.want {
			t.Errorf("Cardinal(%v) = %q, want %q", tc.deg, got, tc.want)
		}
	}
}

func TestCardinalWrapsOutOfRange(t *testing.T) {
	for d := 0.0; d < 360; d += 0.5 {
		want := Cardinal(d)
		if got := Cardinal(d + 360); got != want {
			t.Fatalf("Cardinal(%v) = %q, Cardinal(%v) = %q", d, want, d+360, got)
		}
		if got := Cardinal(d - 720); got != want {
			t.Fatalf("Cardinal(%v) = %q, Cardinal(%v) = %q", d, want, d-720, got)
		}
	}
	if got := Cardinal(-90); got != "W" {
		t.Errorf("Cardinal(-90) = %q, want W", got)
	}
}

func TestCardinalAlwaysReturnsKnownLabel(t *testing.T) {
	known := make(map[string]bool)
	for _, l := range Labels() {
		known[l] = true
	}
	if len(known) != 16 {
		t.Fatalf("expected 16 distinct labels, got %d", len(known))
	}

	seen := make(map[string]bool)
	for d := 0.0; d < 360; d += 0.25 {
		got := Cardinal(d)
		if !known[got] {
			t.Fatalf("Cardinal(%v) = %q is not a compass label", d, got)
		}
		seen[got] = true
	}
	if len(seen) != 16 {
		t.Errorf("expected every label to be reachable, saw %d", len(seen))
	}
}

func TestCardinalNonFinite(t *testing.T) {
	for _, d := range []float64{math.NaN(), math.Inf(1), math.Inf(-1)} {
		if got := Cardinal(d); got != "N" {
			t.Errorf("Cardinal(%v) = %q, want N", d, got)
		}
	}
}
