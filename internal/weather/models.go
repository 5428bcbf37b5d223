package weather

import (
	"time"
)

// DayKind classifies a normalized record by where its date falls relative to
// "today" at local midnight. It determines which upstream endpoint produced
// the record and which temperature sub-fields are trustworthy.
type DayKind string

const (
	KindPast    DayKind = "past"
	KindPresent DayKind = "present"
	KindFuture  DayKind = "future"
)

// Coordinates is a latitude/longitude pair in decimal degrees.
type Coordinates struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// Temperature carries the temperature fields of a normalized record, all in
// degrees Celsius. Min and Max are always populated. The day-part fields are
// populated for past/future day summaries; Current and FeelsLike only for
// live data. They are never all populated at once.
type Temperature struct {
	Min       float64  `json:"min"`
	Max       float64  `json:"max"`
	Afternoon *float64 `json:"afternoon,omitempty"`
	Morning   *float64 `json:"morning,omitempty"`
	Evening   *float64 `json:"evening,omitempty"`
	Night     *float64 `json:"night,omitempty"`
	Current   *float64 `json:"current,omitempty"`
	FeelsLike *float64 `json:"feels_like,omitempty"`
}

// Wind is wind speed in m/s with an optional direction in degrees.
type Wind struct {
	Speed     float64  `json:"speed"`
	Direction *float64 `json:"direction,omitempty"`
}

// ConditionInfo is the textual weather condition reported by the live
// endpoint (first entry of the provider's condition list).
type ConditionInfo struct {
	Description string `json:"description"`
	Icon        string `json:"icon"`
	Main        string `json:"main"`
}

// Elevation is the optional elevation side-channel attached to live records.
type Elevation struct {
	Elevation float64 `json:"elevation"`
	Lat       float64 `json:"lat"`
	Lon       float64 `json:"lng"`
}

// NormalizedWeatherData is the unified view of the upstream payload shapes
// (live current conditions, and past/future day summaries). Which optional
// fields are set is determined by Type.
type NormalizedWeatherData struct {
	Date          string         `json:"date"`    // ISO YYYY-MM-DD
	DateObj       time.Time      `json:"dateObj"` // same date as a time value
	Temperature   Temperature    `json:"temperature"`
	Humidity      float64        `json:"humidity"`                // percent
	Pressure      float64        `json:"pressure"`                // hPa
	Cloudiness    float64        `json:"cloudiness"`              // percent
	Precipitation *float64       `json:"precipitation,omitempty"` // mm; absent for live data
	Wind          Wind           `json:"wind"`
	Type          DayKind        `json:"type"`
	Location      Coordinates    `json:"location"`
	Weather       *ConditionInfo `json:"weather,omitempty"`
	UVI           *float64       `json:"uvi,omitempty"`
	Visibility    *float64       `json:"visibility,omitempty"` // km
	Elevation     *Elevation     `json:"elevation,omitempty"`
}

// DayTemperatures is the per-day temperature block of the forecast strip.
type DayTemperatures struct {
	Min   float64 `json:"min"`
	Max   float64 `json:"max"`
	Day   float64 `json:"day"`
	Night float64 `json:"night"`
}

// ForecastData is one day of the 5-day forecast strip. It is built from the
// provider's 3-hour feed and consumed separately from NormalizedWeatherData:
// the strip is shown as-is rather than joined against calendar days.
type ForecastData struct {
	Date                string          `json:"date"`
	DayOfWeek           string          `json:"dayOfWeek"`
	Temperature         DayTemperatures `json:"temperature"`
	Weather             ConditionInfo   `json:"weather"`
	Humidity            float64         `json:"humidity"`
	WindSpeed           float64         `json:"windSpeed"`
	WindDirection       float64         `json:"windDirection"`
	Pressure            float64         `json:"pressure"`
	Cloudiness          float64         `json:"cloudiness"`
	Precipitation       float64         `json:"precipitation"`       // mm over the day
	PrecipitationChance float64         `json:"precipitationChance"` // percent of periods with rain
}

// DateLayout is the ISO date format used as the join key between normalized
// records and calendar days.
const DateLayout = "2006-01-02"

// FormatDate renders a time value as the ISO date key.
func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}

// Midnight truncates a time value to midnight in its own location.
func Midnight(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}
