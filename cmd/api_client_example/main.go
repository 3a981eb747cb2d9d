package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"time"

	"weathercard/compass"
	"weathercard/models"
)

func main() {
	baseURL := flag.String("url", "http://localhost:8080", "Base URL of the weathercard server")
	query := flag.String("q", "London", "Location to look up")
	flag.Parse()

	fmt.Println("Weather Card API Client Example")
	fmt.Println("===============================")

	client := &http.Client{Timeout: 10 * time.Second}

	weatherURL := fmt.Sprintf("%s/api/weather?q=%s", *baseURL, url.QueryEscape(*query))
	fmt.Printf("Fetching weather for %s...\n", *query)

	resp, err := client.Get(weatherURL)
	if err != nil {
		fmt.Printf("Error fetching weather: %v\n", err)
		os.Exit(1)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		fmt.Printf("Error reading response: %v\n", err)
		os.Exit(1)
	}

	if resp.StatusCode != http.StatusOK {
		var apiErr struct {
			Error string `json:"error"`
			Kind  string `json:"kind"`
		}
		json.Unmarshal(body, &apiErr)
		fmt.Printf("Lookup failed (HTTP %d, %s): %s\n", resp.StatusCode, apiErr.Kind, apiErr.Error)
		os.Exit(1)
	}

	var record models.WeatherRecord
	if err := json.Unmarshal(body, &record); err != nil {
		fmt.Printf("Error decoding weather: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("\n%s, %s: %.1f°C, wind %s at %.1f m/s\n",
		record.Name, record.Sys.Country, record.Main.Temp, compass.Cardinal(record.Wind.Deg), record.Wind.Speed)

	// Pretty print the raw provider payload
	var raw map[string]interface{}
	json.Unmarshal(body, &raw)
	prettyJSON, _ := json.MarshalIndent(raw, "", "  ")
	fmt.Printf("\nRaw payload:\n%s\n", string(prettyJSON))
}
