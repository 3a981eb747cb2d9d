// Package memory persists the single remembered default location.
package memory

import (
	"context"
	"time"
)

// Key names the remembered location wherever it is stored
const Key = "default_weather_location"

// Expiry is how long a remembered location survives without being saved again
const Expiry = 150 * 24 * time.Hour

// LocationMemory stores one default location query outside process memory
type LocationMemory interface {
	// Load returns the stored location and whether one was found
	Load(ctx context.Context) (string, bool, error)
	// Save replaces the stored location
	Save(ctx context.Context, query string) error
}
