package weather

import (
	"fmt"
	"math"
	"time"
)

// NormalizationError reports a required numeric field that was missing from
// an upstream payload. Numeric weather fields are never defaulted to zero;
// the caller decides whether to retry another endpoint or surface the error.
type NormalizationError struct {
	Source string // "day_summary" or "current"
	Field  string
}

func (e *NormalizationError) Error() string {
	return fmt.Sprintf("normalize %s payload: missing required field %q", e.Source, e.Field)
}

func requireField(source, field string, v *float64) (float64, error) {
	if v == nil {
		return 0, &NormalizationError{Source: source, Field: field}
	}
	return *v, nil
}

// Classify derives the temporal kind of a date from its signed day-difference
// to today, both taken at midnight in their own locations: negative is past,
// zero present, positive future. Every normalization site recomputes this
// rather than storing it redundantly.
func Classify(target, today time.Time) DayKind {
	diff := Midnight(target).Sub(Midnight(today))
	// Round to whole days so DST transitions cannot skew the bucket.
	days := int(math.Round(diff.Hours() / 24))
	switch {
	case days < 0:
		return KindPast
	case days > 0:
		return KindFuture
	default:
		return KindPresent
	}
}

// NormalizeDaySummary converts a day-summary payload into the unified shape.
// The kind is chosen by the caller from its own date comparison (the payload
// covers both past and future dates) and is not re-derived here.
func NormalizeDaySummary(p DaySummaryPayload, date time.Time, kind DayKind) (NormalizedWeatherData, error) {
	const src = "day_summary"

	lat, err := requireField(src, "lat", p.Lat)
	if err != nil {
		return NormalizedWeatherData{}, err
	}
	lon, err := requireField(src, "lon", p.Lon)
	if err != nil {
		return NormalizedWeatherData{}, err
	}
	tempMin, err := requireField(src, "temperature.min", p.Temperature.Min)
	if err != nil {
		return NormalizedWeatherData{}, err
	}
	tempMax, err := requireField(src, "temperature.max", p.Temperature.Max)
	if err != nil {
		return NormalizedWeatherData{}, err
	}
	humidity, err := requireField(src, "humidity.afternoon", p.Humidity.Afternoon)
	if err != nil {
		return NormalizedWeatherData{}, err
	}
	pressure, err := requireField(src, "pressure.afternoon", p.Pressure.Afternoon)
	if err != nil {
		return NormalizedWeatherData{}, err
	}
	clouds, err := requireField(src, "cloud_cover.afternoon", p.CloudCover.Afternoon)
	if err != nil {
		return NormalizedWeatherData{}, err
	}
	precip, err := requireField(src, "precipitation.total", p.Precipitation.Total)
	if err != nil {
		return NormalizedWeatherData{}, err
	}
	windSpeed, err := requireField(src, "wind.max.speed", p.Wind.Max.Speed)
	if err != nil {
		return NormalizedWeatherData{}, err
	}

	dateStr := p.Date
	if dateStr == "" {
		dateStr = FormatDate(date)
	}

	return NormalizedWeatherData{
		Date:    dateStr,
		DateObj: date,
		Temperature: Temperature{
			Min:       tempMin,
			Max:       tempMax,
			Afternoon: p.Temperature.Afternoon,
			Morning:   p.Temperature.Morning,
			Evening:   p.Temperature.Evening,
			Night:     p.Temperature.Night,
		},
		Humidity:      humidity,
		Pressure:      pressure,
		Cloudiness:    clouds,
		Precipitation: &precip,
		Wind: Wind{
			Speed:     windSpeed,
			Direction: p.Wind.Max.Direction,
		},
		Type:     kind,
		Location: Coordinates{Lat: lat, Lon: lon},
	}, nil
}

// NormalizeCurrent converts a live current-conditions payload into the
// unified shape with Type fixed to present. The elevation side-channel, when
// available, is attached as-is.
func NormalizeCurrent(p CurrentPayload, date time.Time, elev *Elevation) (NormalizedWeatherData, error) {
	const src = "current"

	temp, err := requireField(src, "main.temp", p.Main.Temp)
	if err != nil {
		return NormalizedWeatherData{}, err
	}
	feelsLike, err := requireField(src, "main.feels_like", p.Main.FeelsLike)
	if err != nil {
		return NormalizedWeatherData{}, err
	}
	tempMin, err := requireField(src, "main.temp_min", p.Main.TempMin)
	if err != nil {
		return NormalizedWeatherData{}, err
	}
	tempMax, err := requireField(src, "main.temp_max", p.Main.TempMax)
	if err != nil {
		return NormalizedWeatherData{}, err
	}
	humidity, err := requireField(src, "main.humidity", p.Main.Humidity)
	if err != nil {
		return NormalizedWeatherData{}, err
	}
	pressure, err := requireField(src, "main.pressure", p.Main.Pressure)
	if err != nil {
		return NormalizedWeatherData{}, err
	}
	clouds, err := requireField(src, "clouds.all", p.Clouds.All)
	if err != nil {
		return NormalizedWeatherData{}, err
	}
	windSpeed, err := requireField(src, "wind.speed", p.Wind.Speed)
	if err != nil {
		return NormalizedWeatherData{}, err
	}

	var lat, lon float64
	if p.Coord.Lat != nil {
		lat = *p.Coord.Lat
	}
	if p.Coord.Lon != nil {
		lon = *p.Coord.Lon
	}

	n := NormalizedWeatherData{
		Date:    FormatDate(date),
		DateObj: date,
		Temperature: Temperature{
			Min:       tempMin,
			Max:       tempMax,
			Current:   &temp,
			FeelsLike: &feelsLike,
		},
		Humidity:   humidity,
		Pressure:   pressure,
		Cloudiness: clouds,
		Wind: Wind{
			Speed:     windSpeed,
			Direction: p.Wind.Deg,
		},
		Type:      KindPresent,
		Location:  Coordinates{Lat: lat, Lon: lon},
		Elevation: elev,
	}

	if len(p.Weather) > 0 {
		n.Weather = &ConditionInfo{
			Description: p.Weather[0].Description,
			Icon:        p.Weather[0].Icon,
			Main:        p.Weather[0].Main,
		}
	}

	if p.Visibility != nil {
		// Provider reports meters; the unified shape uses kilometers.
		km := math.Round(*p.Visibility / 1000)
		n.Visibility = &km
	}

	return n, nil
}
