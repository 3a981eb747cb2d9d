// Package view renders a weather record as a two-sided card.
package view

import (
	"fmt"
	"math"
	"time"

	"weathercard/compass"
	"weathercard/models"
)

// IconURL is the provider's icon image URL pattern
const IconURL = "https://openweathermap.org/img/wn/%s@2x.png"

// Card holds everything shown on the front and back of the weather card
type Card struct {
	// Front
	City        string
	Country     string
	Temp        int // °C
	IconURL     string
	Description string

	// Back
	FeelsLike     int     // °C
	Humidity      int     // %
	Pressure      float64 // hPa
	WindDirection string
	WindSpeed     float64 // km/h
	Visibility    float64 // km
	Sunrise       string
	Sunset        string
}

// NewCard builds a card from rec, formatting sunrise and sunset in loc.
// It returns false for an absent or incomplete record.
func NewCard(rec *models.WeatherRecord, loc *time.Location) (Card, bool) {
	if !rec.Present() {
		return Card{}, false
	}
	if loc == nil {
		loc = time.Local
	}
	primary, _ := rec.Primary()

	return Card{
		City:        rec.Name,
		Country:     rec.Sys.Country,
		Temp:        round(rec.Main.Temp),
		IconURL:     fmt.Sprintf(IconURL, primary.Icon),
		Description: primary.Description,

		FeelsLike:     round(rec.Main.FeelsLike),
		Humidity:      round(rec.Main.Humidity),
		Pressure:      rec.Main.Pressure,
		WindDirection: compass.Cardinal(rec.Wind.Deg),
		WindSpeed:     math.Round(rec.Wind.Speed*3.6*10) / 10,
		Visibility:    rec.Visibility / 1000,
		Sunrise:       clock(rec.Sys.Sunrise, loc),
		Sunset:        clock(rec.Sys.Sunset, loc),
	}, true
}

// round rounds half up, so -2.5 becomes -2
func round(v float64) int {
	return int(math.Floor(v + 0.5))
}

func clock(epoch int64, loc *time.Location) string {
	if epoch == 0 {
		return "-"
	}
	return time.Unix(epoch, 0).In(loc).Format("3:04:05 PM")
}
