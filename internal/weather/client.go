package weather

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"time"
)

// ErrCityNotFound is returned when no lookup strategy resolved the
// city. The conversational layer turns it into a retryable hint; the
// dispatcher skips the reminder for the cycle.
var ErrCityNotFound = errors.New("city not found")

const defaultAPIBase = "https://api.openweathermap.org"

// Client resolves a city name to formatted current-weather text using
// the OpenWeatherMap API. All requests share one short-timeout HTTP
// client so a hung upstream cannot stall a dispatch cycle.
type Client struct {
	apiKey  string
	apiBase string
	httpc   *http.Client
}

func NewClient(apiKey string) *Client {
	return &Client{
		apiKey:  apiKey,
		apiBase: defaultAPIBase,
		httpc:   &http.Client{Timeout: 10 * time.Second},
	}
}

type currentResponse struct {
	Main struct {
		Temp      float64 `json:"temp"`
		FeelsLike float64 `json:"feels_like"`
		Humidity  int     `json:"humidity"`
		Pressure  int     `json:"pressure"`
	} `json:"main"`
	Wind struct {
		Speed float64 `json:"speed"`
	} `json:"wind"`
	Weather []struct {
		Main        string `json:"main"`
		Description string `json:"description"`
	} `json:"weather"`
	Sys struct {
		Country string `json:"country"`
	} `json:"sys"`
}

type geoResult struct {
	Lat        float64           `json:"lat"`
	Lon        float64           `json:"lon"`
	Name       string            `json:"name"`
	Country    string            `json:"country"`
	LocalNames map[string]string `json:"local_names"`
}

// Current returns formatted weather text for the city, trying the
// strategies the bot has always used: a Russia-scoped query for
// Cyrillic names first, then a plain query, then the same query
// without a language hint, then geocoding to coordinates. The first
// hit wins; if all miss, ErrCityNotFound.
func (c *Client) Current(ctx context.Context, city string) (string, error) {
	if hasCyrillic(city) {
		if data, err := c.fetchCurrent(ctx, url.Values{"q": {city + ",RU"}}, "ru"); err == nil {
			return formatCurrent(data, city, data.Sys.Country), nil
		}
	}

	if data, err := c.fetchCurrent(ctx, url.Values{"q": {city}}, "ru"); err == nil {
		return formatCurrent(data, city, data.Sys.Country), nil
	}

	// Some spellings only resolve without the language hint; settle
	// for a minimal temperature-only answer then.
	if data, err := c.fetchCurrent(ctx, url.Values{"q": {city}}, ""); err == nil {
		return fmt.Sprintf("🌡 %s: %.1f°C", city, data.Main.Temp), nil
	}

	if msg, err := c.currentByGeocoding(ctx, city); err == nil {
		return msg, nil
	}

	return "", fmt.Errorf("%w: %q", ErrCityNotFound, city)
}

// currentByGeocoding resolves the city to coordinates first, then asks
// for weather at that point. Prefers the Russian local name for the
// resolved place when the geocoder knows one.
func (c *Client) currentByGeocoding(ctx context.Context, city string) (string, error) {
	q := url.Values{
		"q":     {city},
		"limit": {"1"},
		"appid": {c.apiKey},
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.apiBase+"/geo/1.0/direct?"+q.Encode(), nil)
	if err != nil {
		return "", err
	}
	resp, err := c.httpc.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("geocoding status %d", resp.StatusCode)
	}

	var places []geoResult
	if err := json.NewDecoder(resp.Body).Decode(&places); err != nil {
		return "", err
	}
	if len(places) == 0 {
		return "", ErrCityNotFound
	}

	place := places[0]
	name := place.Name
	if ru, ok := place.LocalNames["ru"]; ok && ru != "" {
		name = ru
	}

	data, err := c.fetchCurrent(ctx, url.Values{
		"lat": {fmt.Sprintf("%f", place.Lat)},
		"lon": {fmt.Sprintf("%f", place.Lon)},
	}, "ru")
	if err != nil {
		return "", err
	}
	return formatCurrent(data, name, place.Country), nil
}

func (c *Client) fetchCurrent(ctx context.Context, q url.Values, lang string) (*currentResponse, error) {
	q.Set("appid", c.apiKey)
	q.Set("units", "metric")
	if lang != "" {
		q.Set("lang", lang)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.apiBase+"/data/2.5/weather?"+q.Encode(), nil)
	if err != nil {
		return nil, err
	}
	resp, err := c.httpc.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("weather status %d", resp.StatusCode)
	}

	var data currentResponse
	if err := json.NewDecoder(resp.Body).Decode(&data); err != nil {
		return nil, err
	}
	return &data, nil
}

func hasCyrillic(s string) bool {
	for _, r := range s {
		if r >= 0x0400 && r <= 0x04FF {
			return true
		}
	}
	return false
}
