package weather

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func f(v float64) *float64 { return &v }

func validDaySummary() DaySummaryPayload {
	var p DaySummaryPayload
	p.Lat = f(44.43)
	p.Lon = f(26.1)
	p.Date = "2026-07-10"
	p.CloudCover.Afternoon = f(35)
	p.Humidity.Afternoon = f(52)
	p.Precipitation.Total = f(0.3)
	p.Temperature.Min = f(14.2)
	p.Temperature.Max = f(27.8)
	p.Temperature.Afternoon = f(25.1)
	p.Temperature.Morning = f(16.4)
	p.Temperature.Evening = f(22.0)
	p.Temperature.Night = f(15.5)
	p.Pressure.Afternoon = f(1014)
	p.Wind.Max.Speed = f(5.4)
	p.Wind.Max.Direction = f(230)
	return p
}

func TestNormalizeDaySummary(t *testing.T) {
	date := time.Date(2026, time.July, 10, 0, 0, 0, 0, time.UTC)

	n, err := NormalizeDaySummary(validDaySummary(), date, KindFuture)
	require.NoError(t, err)

	assert.Equal(t, "2026-07-10", n.Date)
	assert.Equal(t, date, n.DateObj)
	assert.Equal(t, KindFuture, n.Type)
	assert.Equal(t, 14.2, n.Temperature.Min)
	assert.Equal(t, 27.8, n.Temperature.Max)
	require.NotNil(t, n.Temperature.Afternoon)
	assert.Equal(t, 25.1, *n.Temperature.Afternoon)
	assert.Equal(t, 52.0, n.Humidity)
	assert.Equal(t, 1014.0, n.Pressure)
	assert.Equal(t, 35.0, n.Cloudiness)
	require.NotNil(t, n.Precipitation)
	assert.Equal(t, 0.3, *n.Precipitation)
	assert.Equal(t, 5.4, n.Wind.Speed)
	require.NotNil(t, n.Wind.Direction)
	assert.Equal(t, 230.0, *n.Wind.Direction)
	assert.Equal(t, Coordinates{Lat: 44.43, Lon: 26.1}, n.Location)

	// Current-only fields stay absent on summary records.
	assert.Nil(t, n.Temperature.Current)
	assert.Nil(t, n.Temperature.FeelsLike)
	assert.Nil(t, n.Weather)
	assert.Nil(t, n.Visibility)
}

func TestNormalizeDaySummaryMissingField(t *testing.T) {
	date := time.Date(2026, time.July, 10, 0, 0, 0, 0, time.UTC)

	p := validDaySummary()
	p.Precipitation.Total = nil

	_, err := NormalizeDaySummary(p, date, KindPast)
	require.Error(t, err)

	var normErr *NormalizationError
	require.True(t, errors.As(err, &normErr))
	assert.Equal(t, "day_summary", normErr.Source)
	assert.Equal(t, "precipitation.total", normErr.Field)
}

func TestNormalizeDaySummaryFallsBackToFormattedDate(t *testing.T) {
	date := time.Date(2026, time.July, 10, 0, 0, 0, 0, time.UTC)

	p := validDaySummary()
	p.Date = ""

	n, err := NormalizeDaySummary(p, date, KindPresent)
	require.NoError(t, err)
	assert.Equal(t, "2026-07-10", n.Date)
}

func validCurrent() CurrentPayload {
	var p CurrentPayload
	p.Coord.Lat = f(44.43)
	p.Coord.Lon = f(26.1)
	p.Main.Temp = f(23.6)
	p.Main.FeelsLike = f(24.1)
	p.Main.TempMin = f(21.0)
	p.Main.TempMax = f(25.3)
	p.Main.Pressure = f(1011)
	p.Main.Humidity = f(48)
	p.Clouds.All = f(20)
	p.Wind.Speed = f(2.7)
	p.Wind.Deg = f(180)
	p.Visibility = f(8250)
	p.Weather = append(p.Weather, struct {
		ID          int    `json:"id"`
		Main        string `json:"main"`
		Description string `json:"description"`
		Icon        string `json:"icon"`
	}{ID: 801, Main: "Clouds", Description: "few clouds", Icon: "02d"})
	return p
}

func TestNormalizeCurrent(t *testing.T) {
	date := time.Date(2026, time.August, 31, 0, 0, 0, 0, time.UTC)
	elev := &Elevation{Elevation: 87, Lat: 44.43, Lon: 26.1}

	n, err := NormalizeCurrent(validCurrent(), date, elev)
	require.NoError(t, err)

	assert.Equal(t, KindPresent, n.Type)
	assert.Equal(t, "2026-08-31", n.Date)
	require.NotNil(t, n.Temperature.Current)
	assert.Equal(t, 23.6, *n.Temperature.Current)
	require.NotNil(t, n.Temperature.FeelsLike)
	assert.Equal(t, 24.1, *n.Temperature.FeelsLike)
	assert.Equal(t, 21.0, n.Temperature.Min)
	assert.Equal(t, 25.3, n.Temperature.Max)
	require.NotNil(t, n.Weather)
	assert.Equal(t, "few clouds", n.Weather.Description)
	assert.Equal(t, "02d", n.Weather.Icon)
	require.NotNil(t, n.Visibility)
	assert.Equal(t, 8.0, *n.Visibility) // meters rounded to whole km
	assert.Same(t, elev, n.Elevation)

	// Summary-only fields stay absent on live records.
	assert.Nil(t, n.Temperature.Afternoon)
	assert.Nil(t, n.Precipitation)
}

func TestNormalizeCurrentMissingField(t *testing.T) {
	date := time.Date(2026, time.August, 31, 0, 0, 0, 0, time.UTC)

	p := validCurrent()
	p.Main.FeelsLike = nil

	_, err := NormalizeCurrent(p, date, nil)
	require.Error(t, err)

	var normErr *NormalizationError
	require.True(t, errors.As(err, &normErr))
	assert.Equal(t, "current", normErr.Source)
	assert.Equal(t, "main.feels_like", normErr.Field)
}

func TestNormalizeCurrentOptionalExtras(t *testing.T) {
	date := time.Date(2026, time.August, 31, 0, 0, 0, 0, time.UTC)

	p := validCurrent()
	p.Weather = nil
	p.Visibility = nil

	n, err := NormalizeCurrent(p, date, nil)
	require.NoError(t, err)
	assert.Nil(t, n.Weather)
	assert.Nil(t, n.Visibility)
	assert.Nil(t, n.Elevation)
}

func TestClassify(t *testing.T) {
	today := time.Date(2026, time.August, 31, 14, 30, 0, 0, time.UTC)

	tests := []struct {
		name   string
		target time.Time
		want   DayKind
	}{
		{"yesterday", today.AddDate(0, 0, -1), KindPast},
		{"last year", today.AddDate(-1, 0, 0), KindPast},
		{"same day earlier hour", time.Date(2026, time.August, 31, 0, 1, 0, 0, time.UTC), KindPresent},
		{"same day later hour", time.Date(2026, time.August, 31, 23, 59, 0, 0, time.UTC), KindPresent},
		{"tomorrow", today.AddDate(0, 0, 1), KindFuture},
		{"next month", today.AddDate(0, 1, 0), KindFuture},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Classify(tt.target, today))
		})
	}
}

func TestClassifyAcrossDSTTransition(t *testing.T) {
	loc, err := time.LoadLocation("Europe/Bucharest")
	require.NoError(t, err)

	// The clock jumps forward on 2026-03-29; the day before it is still
	// exactly one calendar day away.
	today := time.Date(2026, time.March, 30, 12, 0, 0, 0, loc)
	yesterday := time.Date(2026, time.March, 29, 12, 0, 0, 0, loc)

	assert.Equal(t, KindPast, Classify(yesterday, today))
	assert.Equal(t, KindFuture, Classify(today, yesterday))
}
