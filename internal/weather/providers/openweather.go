// Package providers contains the upstream weather API clients.
package providers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/sony/gobreaker"

	"github.com/tzapp/weather-planner/internal/httpx"
	"github.com/tzapp/weather-planner/internal/weather"
)

// OpenWeatherClient implements weather.Providers against the OpenWeather
// current-conditions, day-summary, and 5-day/3-hour forecast endpoints. Each
// endpoint gets its own circuit breaker so a failing endpoint does not trip
// the others.
type OpenWeatherClient struct {
	apiKey      string
	currentURL  string
	summaryURL  string
	forecastURL string
	httpCfg     httpx.ClientConfig

	currentCB  *gobreaker.CircuitBreaker
	summaryCB  *gobreaker.CircuitBreaker
	forecastCB *gobreaker.CircuitBreaker
}

var _ weather.Providers = (*OpenWeatherClient)(nil)

func NewOpenWeatherClient(client *http.Client, apiKey string) *OpenWeatherClient {
	return &OpenWeatherClient{
		apiKey:      apiKey,
		currentURL:  "https://api.openweathermap.org/data/2.5/weather",
		summaryURL:  "https://api.openweathermap.org/data/3.0/onecall/day_summary",
		forecastURL: "https://api.openweathermap.org/data/2.5/forecast",
		httpCfg: httpx.ClientConfig{
			Client:  client,
			Backoff: httpx.DefaultBackoff,
		},
		currentCB:  httpx.NewBreaker("openweather-current"),
		summaryCB:  httpx.NewBreaker("openweather-day-summary"),
		forecastCB: httpx.NewBreaker("openweather-forecast"),
	}
}

// Current fetches live conditions in metric units.
func (c *OpenWeatherClient) Current(ctx context.Context, lat, lon float64) (weather.CurrentPayload, error) {
	var payload weather.CurrentPayload
	if c.apiKey == "" {
		return payload, fmt.Errorf("openweather api key is not configured")
	}

	buildRequest := func() (*http.Request, error) {
		values := url.Values{}
		values.Set("appid", c.apiKey)
		values.Set("units", "metric")
		values.Set("lat", fmt.Sprintf("%f", lat))
		values.Set("lon", fmt.Sprintf("%f", lon))
		return http.NewRequest(http.MethodGet, fmt.Sprintf("%s?%s", c.currentURL, values.Encode()), nil)
	}

	resp, err := httpx.Do(ctx, c.httpCfg, c.currentCB, buildRequest)
	if err != nil {
		return payload, err
	}
	defer resp.Body.Close()

	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return payload, fmt.Errorf("decode current conditions: %w", err)
	}
	return payload, nil
}

// DaySummary fetches the aggregated summary for one past or future date. The
// tz parameter carries the requested date's UTC offset so the provider
// aggregates over the caller's local day.
func (c *OpenWeatherClient) DaySummary(ctx context.Context, lat, lon float64, date time.Time) (weather.DaySummaryPayload, error) {
	var payload weather.DaySummaryPayload
	if c.apiKey == "" {
		return payload, fmt.Errorf("openweather api key is not configured")
	}

	buildRequest := func() (*http.Request, error) {
		values := url.Values{}
		values.Set("appid", c.apiKey)
		values.Set("units", "metric")
		values.Set("lat", fmt.Sprintf("%f", lat))
		values.Set("lon", fmt.Sprintf("%f", lon))
		values.Set("date", date.Format(weather.DateLayout))
		values.Set("tz", utcOffset(date))
		return http.NewRequest(http.MethodGet, fmt.Sprintf("%s?%s", c.summaryURL, values.Encode()), nil)
	}

	resp, err := httpx.Do(ctx, c.httpCfg, c.summaryCB, buildRequest)
	if err != nil {
		return payload, err
	}
	defer resp.Body.Close()

	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return payload, fmt.Errorf("decode day summary: %w", err)
	}
	return payload, nil
}

// Forecast fetches the raw 5-day/3-hour feed in metric units.
func (c *OpenWeatherClient) Forecast(ctx context.Context, lat, lon float64) (weather.ForecastPayload, error) {
	var payload weather.ForecastPayload
	if c.apiKey == "" {
		return payload, fmt.Errorf("openweather api key is not configured")
	}

	buildRequest := func() (*http.Request, error) {
		values := url.Values{}
		values.Set("appid", c.apiKey)
		values.Set("units", "metric")
		values.Set("lat", fmt.Sprintf("%f", lat))
		values.Set("lon", fmt.Sprintf("%f", lon))
		return http.NewRequest(http.MethodGet, fmt.Sprintf("%s?%s", c.forecastURL, values.Encode()), nil)
	}

	resp, err := httpx.Do(ctx, c.httpCfg, c.forecastCB, buildRequest)
	if err != nil {
		return payload, err
	}
	defer resp.Body.Close()

	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return payload, fmt.Errorf("decode forecast: %w", err)
	}
	return payload, nil
}

// utcOffset renders a date's UTC offset as +HH:MM / -HH:MM.
func utcOffset(date time.Time) string {
	_, seconds := date.Zone()
	minutes := seconds / 60
	sign := "+"
	if minutes < 0 {
		sign = "-"
		minutes = -minutes
	}
	return fmt.Sprintf("%s%02d:%02d", sign, minutes/60, minutes%60)
}
