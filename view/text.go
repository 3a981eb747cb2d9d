package view

import (
	"fmt"
	"io"
	"strconv"
	"text/tabwriter"
)

// RenderText writes the front and back of the card as aligned text.
// An absent card writes nothing.
func RenderText(w io.Writer, card Card, ok bool) error {
	if !ok {
		return nil
	}

	fmt.Fprintf(w, "\n%s  %s\n", card.City, card.Country)
	fmt.Fprintln(w, "─────────────────────────────────")
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "Temperature:\t%d °C\n", card.Temp)
	fmt.Fprintf(tw, "Condition:\t%s\n", card.Description)
	fmt.Fprintf(tw, "Icon:\t%s\n", card.IconURL)
	if err := tw.Flush(); err != nil {
		return err
	}

	fmt.Fprintln(w, "\nDetail")
	fmt.Fprintln(w, "─────────────────────────────────")
	tw = tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "Feels like:\t%d °C\n", card.FeelsLike)
	fmt.Fprintf(tw, "Humidity:\t%d %%\n", card.Humidity)
	fmt.Fprintf(tw, "Pressure:\t%s hPa\n", number(card.Pressure))
	fmt.Fprintf(tw, "Wind direction:\t%s\n", card.WindDirection)
	fmt.Fprintf(tw, "Wind speed:\t%s km/h\n", number(card.WindSpeed))
	fmt.Fprintf(tw, "Visibility:\t%s km\n", number(card.Visibility))
	fmt.Fprintf(tw, "Sunrise:\t%s\n", card.Sunrise)
	fmt.Fprintf(tw, "Sunset:\t%s\n", card.Sunset)
	if err := tw.Flush(); err != nil {
		return err
	}
	_, err := fmt.Fprintln(w)
	return err
}

// number prints v without trailing zeros
func number(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
