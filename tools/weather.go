package tools

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// weatherFailureText is returned for any network or non-200 outcome. The
// model only ever sees this fixed text, never an exception.
const weatherFailureText = "Something went wrong while fetching the weather."

// WeatherTool fetches current conditions for a city from a wttr.in-style
// text endpoint.
type WeatherTool struct {
	Endpoint string
	Client   *http.Client
}

// NewWeatherTool creates a WeatherTool against the public wttr.in service.
func NewWeatherTool() *WeatherTool {
	return &WeatherTool{
		Endpoint: "https://wttr.in",
		Client:   &http.Client{Timeout: 10 * time.Second},
	}
}

func (t *WeatherTool) Name() string { return "get_weather" }

func (t *WeatherTool) Description() string {
	return "Takes a city name and returns current weather info."
}

// Invoke performs the lookup. The response body is treated as opaque
// trimmed text on HTTP 200; everything else maps to the fixed failure text.
func (t *WeatherTool) Invoke(ctx context.Context, input string) (string, error) {
	city := strings.TrimSpace(input)
	endpoint := fmt.Sprintf("%s/%s?format=%%C+%%t", t.Endpoint, url.PathEscape(city))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return weatherFailureText, nil
	}

	resp, err := t.Client.Do(req)
	if err != nil {
		return weatherFailureText, nil
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return weatherFailureText, nil
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return weatherFailureText, nil
	}

	return fmt.Sprintf("The weather in %s is %s.", city, strings.TrimSpace(string(body))), nil
}
