package providers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCurrentRequestShape(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		assert.Equal(t, "test-key", q.Get("appid"))
		assert.Equal(t, "metric", q.Get("units"))
		assert.Equal(t, "44.430000", q.Get("lat"))
		assert.Equal(t, "26.100000", q.Get("lon"))

		_, _ = w.Write([]byte(`{
			"coord": {"lat": 44.43, "lon": 26.1},
			"weather": [{"id": 800, "main": "Clear", "description": "clear sky", "icon": "01d"}],
			"main": {"temp": 23.5, "feels_like": 24.0, "temp_min": 21.0, "temp_max": 25.0, "pressure": 1012, "humidity": 45},
			"wind": {"speed": 3.1, "deg": 200},
			"clouds": {"all": 10},
			"name": "Bucharest"
		}`))
	}))
	defer srv.Close()

	client := NewOpenWeatherClient(srv.Client(), "test-key")
	client.currentURL = srv.URL

	payload, err := client.Current(context.Background(), 44.43, 26.1)
	require.NoError(t, err)
	require.NotNil(t, payload.Main.Temp)
	assert.Equal(t, 23.5, *payload.Main.Temp)
	assert.Equal(t, "Bucharest", payload.Name)
}

func TestDaySummaryRequestShape(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		assert.Equal(t, "2026-07-10", q.Get("date"))
		assert.Equal(t, "+03:00", q.Get("tz"))

		_, _ = w.Write([]byte(`{
			"lat": 44.43, "lon": 26.1, "date": "2026-07-10",
			"cloud_cover": {"afternoon": 30},
			"humidity": {"afternoon": 50},
			"precipitation": {"total": 0.2},
			"temperature": {"min": 15, "max": 28, "afternoon": 26, "night": 17, "evening": 23, "morning": 18},
			"pressure": {"afternoon": 1013},
			"wind": {"max": {"speed": 4.5, "direction": 220}}
		}`))
	}))
	defer srv.Close()

	client := NewOpenWeatherClient(srv.Client(), "test-key")
	client.summaryURL = srv.URL

	date := time.Date(2026, time.July, 10, 0, 0, 0, 0, time.FixedZone("EEST", 3*3600))
	payload, err := client.DaySummary(context.Background(), 44.43, 26.1, date)
	require.NoError(t, err)
	require.NotNil(t, payload.Temperature.Afternoon)
	assert.Equal(t, 26.0, *payload.Temperature.Afternoon)
	require.NotNil(t, payload.Precipitation.Total)
	assert.Equal(t, 0.2, *payload.Precipitation.Total)
}

func TestForecastDecoding(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{
			"list": [
				{"dt": 1790000000, "main": {"temp": 20, "humidity": 55, "pressure": 1010},
				 "weather": [{"main": "Rain", "description": "light rain", "icon": "10d"}],
				 "clouds": {"all": 80}, "wind": {"speed": 5, "deg": 180},
				 "rain": {"3h": 0.6}, "pop": 0.7}
			],
			"city": {"name": "Bucharest", "timezone": 10800}
		}`))
	}))
	defer srv.Close()

	client := NewOpenWeatherClient(srv.Client(), "test-key")
	client.forecastURL = srv.URL

	payload, err := client.Forecast(context.Background(), 44.43, 26.1)
	require.NoError(t, err)
	require.Len(t, payload.List, 1)
	assert.Equal(t, 0.6, payload.List[0].Rain.ThreeH)
	assert.Equal(t, 0.7, payload.List[0].Pop)
	assert.Equal(t, 10800, payload.City.Timezone)
}

func TestMissingAPIKey(t *testing.T) {
	client := NewOpenWeatherClient(http.DefaultClient, "")

	_, err := client.Current(context.Background(), 44.43, 26.1)
	require.Error(t, err)
	_, err = client.DaySummary(context.Background(), 44.43, 26.1, time.Now())
	require.Error(t, err)
	_, err = client.Forecast(context.Background(), 44.43, 26.1)
	require.Error(t, err)
}

func TestUTCOffsetRendering(t *testing.T) {
	tests := []struct {
		seconds int
		want    string
	}{
		{0, "+00:00"},
		{3 * 3600, "+03:00"},
		{-5 * 3600, "-05:00"},
		{5*3600 + 30*60, "+05:30"},
		{-(9*3600 + 30*60), "-09:30"},
	}
	for _, tt := range tests {
		date := time.Date(2026, time.July, 10, 0, 0, 0, 0, time.FixedZone("tz", tt.seconds))
		assert.Equal(t, tt.want, utcOffset(date))
	}
}
