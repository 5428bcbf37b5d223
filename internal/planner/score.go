package planner

import (
	"math"
	"time"

	"github.com/tzapp/weather-planner/internal/weather"
)

// DayConditions are the five weather factors a day is scored on.
type DayConditions struct {
	Date     time.Time
	Temp     float64 // afternoon temperature, Celsius
	Precip   float64 // total precipitation, mm
	Wind     float64 // max wind speed, m/s
	Humidity float64 // percent
	Clouds   float64 // percent
}

// FromNormalized extracts scoring conditions from a normalized day summary.
// It reports false for records lacking the summary fields (live records carry
// no afternoon temperature or precipitation total).
func FromNormalized(n weather.NormalizedWeatherData) (DayConditions, bool) {
	if n.Temperature.Afternoon == nil || n.Precipitation == nil {
		return DayConditions{}, false
	}
	return DayConditions{
		Date:     n.DateObj,
		Temp:     *n.Temperature.Afternoon,
		Precip:   *n.Precipitation,
		Wind:     n.Wind.Speed,
		Humidity: n.Humidity,
		Clouds:   n.Cloudiness,
	}, true
}

// Sub-score weights and out-of-band penalty slopes. The slopes are hand-tuned
// constants; behavioural parity depends on keeping them exactly as they are.
const (
	tempPoints     = 30.0
	precipPoints   = 25.0
	windPoints     = 20.0
	humidityPoints = 15.0
	cloudPoints    = 10.0

	tempSlope     = 2.0
	precipSlope   = 10.0
	windSlope     = 3.0
	humiditySlope = 0.3
	cloudSlope    = 0.2
)

// Score computes the 0-100 suitability of one day's weather for an event
// profile, rounded to two decimals. Five independently weighted sub-scores
// are summed; each is full inside its criteria band and degrades linearly
// outside it, floored at zero. In-band maxima total exactly 100, so no
// ceiling clamp is needed.
func Score(day DayConditions, c EventCriteria) float64 {
	var score float64

	tempMin, tempMax := c.TempRange[0], c.TempRange[1]
	if day.Temp >= tempMin && day.Temp <= tempMax {
		score += tempPoints
	} else {
		penalty := math.Min(math.Abs(day.Temp-tempMin), math.Abs(day.Temp-tempMax))
		score += math.Max(0, tempPoints-penalty*tempSlope)
	}

	if day.Precip <= c.MaxPrecip {
		score += precipPoints
	} else {
		score += math.Max(0, precipPoints-(day.Precip-c.MaxPrecip)*precipSlope)
	}

	if day.Wind <= c.MaxWind {
		score += windPoints
	} else {
		score += math.Max(0, windPoints-(day.Wind-c.MaxWind)*windSlope)
	}

	if day.Humidity <= c.MaxHumidity {
		score += humidityPoints
	} else {
		score += math.Max(0, humidityPoints-(day.Humidity-c.MaxHumidity)*humiditySlope)
	}

	if day.Clouds <= c.MaxClouds {
		score += cloudPoints
	} else {
		score += math.Max(0, cloudPoints-(day.Clouds-c.MaxClouds)*cloudSlope)
	}

	return math.Round(score*100) / 100
}
