package geo

import (
	"errors"

	"github.com/kelvins/geocoder"

	"github.com/tzapp/weather-planner/internal/logger"
)

// ErrNoAddress is returned when reverse geocoding finds nothing at the
// coordinates.
var ErrNoAddress = errors.New("no address for coordinates")

// Geocoder reverse-geocodes coordinates into formatted addresses and display
// names via the Google Geocoding API.
type Geocoder struct{}

// NewGeocoder configures the geocoding API key. The underlying library keys
// off a package-level variable, so one Geocoder serves the whole process.
func NewGeocoder(apiKey string) *Geocoder {
	geocoder.ApiKey = apiKey
	return &Geocoder{}
}

// FormattedAddress returns the first formatted address at the coordinates.
func (g *Geocoder) FormattedAddress(lat, lon float64) (string, error) {
	addresses, err := geocoder.GeocodingReverse(geocoder.Location{
		Latitude:  lat,
		Longitude: lon,
	})
	if err != nil {
		return "", err
	}
	if len(addresses) == 0 {
		return "", ErrNoAddress
	}
	return addresses[0].FormatAddress(), nil
}

// DisplayName resolves the display name for the coordinates, degrading to
// the fallback city name when geocoding fails.
func (g *Geocoder) DisplayName(lat, lon float64, fallbackCityName string) string {
	address, err := g.FormattedAddress(lat, lon)
	if err != nil {
		logger.GetLogger().Warnw("reverse geocoding failed; using fallback name",
			"lat", lat, "lon", lon, "error", err)
		return Resolve("", fallbackCityName)
	}
	return Resolve(address, fallbackCityName)
}
