package weather

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// slot builds a 3-hour forecast entry at the given UTC time.
func slot(at time.Time, temp, humidity, wind, clouds, rain, pop float64) ForecastEntry {
	var e ForecastEntry
	e.Dt = at.Unix()
	e.Main.Temp = temp
	e.Main.Humidity = humidity
	e.Main.Pressure = 1012
	e.Wind.Speed = wind
	e.Wind.Deg = 200
	e.Clouds.All = clouds
	e.Rain.ThreeH = rain
	e.Pop = pop
	e.Weather = append(e.Weather, struct {
		Main        string `json:"main"`
		Description string `json:"description"`
		Icon        string `json:"icon"`
	}{Main: "Clear", Description: "clear sky", Icon: "01d"})
	return e
}

func TestBuildForecastBucketsByLocalDate(t *testing.T) {
	var p ForecastPayload
	p.City.Timezone = 0

	base := time.Date(2026, time.September, 1, 0, 0, 0, 0, time.UTC)
	for day := 0; day < 6; day++ {
		for h := 0; h < 24; h += 3 {
			at := base.AddDate(0, 0, day).Add(time.Duration(h) * time.Hour)
			p.List = append(p.List, slot(at, 20, 50, 3, 10, 0, 0))
		}
	}

	forecast := BuildForecast(p)
	require.Len(t, forecast, 5, "the strip is capped at five days")
	assert.Equal(t, "2026-09-01", forecast[0].Date)
	assert.Equal(t, "2026-09-05", forecast[4].Date)
	assert.Equal(t, "Tue", forecast[0].DayOfWeek)
}

func TestBuildForecastTimezoneShiftMovesSlotsAcrossDays(t *testing.T) {
	var p ForecastPayload
	p.City.Timezone = 3 * 3600 // UTC+3

	// 22:00 UTC is 01:00 the next local day.
	at := time.Date(2026, time.September, 1, 22, 0, 0, 0, time.UTC)
	p.List = append(p.List, slot(at, 18, 60, 2, 5, 0, 0))

	forecast := BuildForecast(p)
	require.Len(t, forecast, 1)
	assert.Equal(t, "2026-09-02", forecast[0].Date)
}

func TestBuildForecastDaySummary(t *testing.T) {
	var p ForecastPayload
	p.City.Timezone = 0

	day := time.Date(2026, time.September, 3, 0, 0, 0, 0, time.UTC)
	p.List = []ForecastEntry{
		slot(day.Add(0*time.Hour), 12, 80, 2, 90, 0.6, 0.8),  // night
		slot(day.Add(6*time.Hour), 14, 70, 3, 60, 0, 0),      // morning
		slot(day.Add(12*time.Hour), 24, 40, 5, 10, 0, 0),     // midday, representative
		slot(day.Add(18*time.Hour), 19, 50, 4, 20, 0.4, 0.5), // evening
	}

	forecast := BuildForecast(p)
	require.Len(t, forecast, 1)
	got := forecast[0]

	assert.Equal(t, 12.0, got.Temperature.Min)
	assert.Equal(t, 24.0, got.Temperature.Max)
	assert.Equal(t, 24.0, got.Temperature.Day, "day temperature comes from the midday slot")
	assert.Equal(t, 12.0, got.Temperature.Night, "night temperature comes from the first late/early slot")

	assert.Equal(t, 60.0, got.Humidity)   // (80+70+40+50)/4
	assert.Equal(t, 3.5, got.WindSpeed)   // (2+3+5+4)/4
	assert.Equal(t, 45.0, got.Cloudiness) // (90+60+10+20)/4
	assert.Equal(t, 1.0, got.Precipitation)
	assert.Equal(t, 50.0, got.PrecipitationChance, "2 of 4 slots are wet")

	assert.Equal(t, "Clear", got.Weather.Main)
	assert.Equal(t, "01d", got.Weather.Icon)
}

func TestBuildForecastFallbackSlots(t *testing.T) {
	var p ForecastPayload
	p.City.Timezone = 0

	// Only mid-morning slots: no midday slot, no night slot.
	day := time.Date(2026, time.September, 4, 0, 0, 0, 0, time.UTC)
	p.List = []ForecastEntry{
		slot(day.Add(9*time.Hour), 16, 55, 3, 30, 0, 0),
		slot(day.Add(10*time.Hour), 18, 50, 3, 25, 0, 0),
		slot(day.Add(11*time.Hour), 20, 45, 3, 20, 0, 0),
	}

	forecast := BuildForecast(p)
	require.Len(t, forecast, 1)

	// Middle slot represents the day, the last slot stands in for night.
	assert.Equal(t, 18.0, forecast[0].Temperature.Day)
	assert.Equal(t, 20.0, forecast[0].Temperature.Night)
}

func TestBuildForecastEmptyFeed(t *testing.T) {
	assert.Nil(t, BuildForecast(ForecastPayload{}))
}
