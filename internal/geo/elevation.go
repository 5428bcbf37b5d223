package geo

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	"github.com/sony/gobreaker"

	"github.com/tzapp/weather-planner/internal/httpx"
)

// ElevationClient looks up terrain elevation through the Open-Meteo elevation
// endpoint, which needs no API key.
type ElevationClient struct {
	baseURL string
	httpCfg httpx.ClientConfig
	circuit *gobreaker.CircuitBreaker
}

func NewElevationClient(client *http.Client) *ElevationClient {
	return &ElevationClient{
		baseURL: "https://api.open-meteo.com/v1/elevation",
		httpCfg: httpx.ClientConfig{
			Client:  client,
			Backoff: httpx.DefaultBackoff,
		},
		circuit: httpx.NewBreaker("openmeteo-elevation"),
	}
}

// Elevation returns the elevation in meters at the coordinates.
func (c *ElevationClient) Elevation(ctx context.Context, lat, lon float64) (float64, error) {
	buildRequest := func() (*http.Request, error) {
		values := url.Values{}
		values.Set("latitude", fmt.Sprintf("%f", lat))
		values.Set("longitude", fmt.Sprintf("%f", lon))
		return http.NewRequest(http.MethodGet, fmt.Sprintf("%s?%s", c.baseURL, values.Encode()), nil)
	}

	resp, err := httpx.Do(ctx, c.httpCfg, c.circuit, buildRequest)
	if err != nil {
		return 0, err
	}
	defer resp.Body.Close()

	var payload struct {
		Elevation []float64 `json:"elevation"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return 0, err
	}
	if len(payload.Elevation) == 0 {
		return 0, fmt.Errorf("elevation response was empty")
	}
	return payload.Elevation[0], nil
}
