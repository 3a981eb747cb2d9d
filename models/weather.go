package models

import (
	"encoding/json"
)

// Condition is one weather condition descriptor reported by the provider
type Condition struct {
	ID          int    `json:"id"`
	Main        string `json:"main"`
	Description string `json:"description"`
	Icon        string `json:"icon"`
}

// WeatherRecord is the current weather for a location, in the provider's schema
type WeatherRecord struct {
	Name string `json:"name"`
	Sys  struct {
		Country string `json:"country"`
		Sunrise int64  `json:"sunrise"` // epoch seconds, UTC
		Sunset  int64  `json:"sunset"`  // epoch seconds, UTC
	} `json:"sys"`
	Main struct {
		Temp      float64 `json:"temp"`       // in Celsius
		FeelsLike float64 `json:"feels_like"` // in Celsius
		Humidity  float64 `json:"humidity"`   // percentage
		Pressure  float64 `json:"pressure"`   // in hPa
	} `json:"main"`
	Weather []Condition `json:"weather"`
	Wind    struct {
		Speed float64 `json:"speed"` // in m/s
		Deg   float64 `json:"deg"`   // bearing in degrees
	} `json:"wind"`
	Visibility float64 `json:"visibility"` // in meters

	// Raw is the unmodified provider body the record was decoded from
	Raw json.RawMessage `json:"-"`
}

// Present reports whether the record is complete enough to be displayed
func (r *WeatherRecord) Present() bool {
	if r == nil {
		return false
	}
	return r.Name != "" && len(r.Weather) > 0 && r.Weather[0].Description != ""
}

// Primary returns the first condition descriptor, if any
func (r *WeatherRecord) Primary() (Condition, bool) {
	if r == nil || len(r.Weather) == 0 {
		return Condition{}, false
	}
	return r.Weather[0], true
}
