// Package compass converts wind bearings into 16-point compass labels.
package compass

import "math"

const sector = 360.0 / 16

var labels = [16]string{
	"N", "NNE", "NE", "ENE",
	"E", "ESE", "SE", "SSE",
	"S", "SSW", "SW", "WSW",
	"W", "WNW", "NW", "NNW",
}

// Labels returns the 16 compass points clockwise from north.
func Labels() []string {
	out := make([]string, len(labels))
	copy(out, labels[:])
	return out
}

// Cardinal maps a bearing in degrees (0 = north, clockwise) to its compass point.
// Each point owns the half-open sector [k*22.5-11.25, k*22.5+11.25). Bearings
// outside [0, 360) are wrapped first; NaN and infinities map to "N".
func Cardinal(degrees float64) string {
	if math.IsNaN(degrees) || math.IsInf(degrees, 0) {
		return labels[0]
	}
	d := math.Mod(degrees, 360)
	if d < 0 {
		d += 360
	}
	idx := int(math.Floor((d+sector/2)/sector)) % len(labels)
	return labels[idx]
}
