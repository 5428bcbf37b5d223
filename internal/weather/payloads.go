package weather

// Upstream payload shapes, decoded by the provider clients and consumed by
// the normalizer. Required numeric fields are pointers so a missing field is
// distinguishable from a zero value; the normalizer turns absence into a
// NormalizationError instead of silently defaulting, which would corrupt
// downstream ranking.

// DaySummaryPayload is the single-day aggregated summary shape returned for
// past and future dates. Values are already metric.
type DaySummaryPayload struct {
	Lat   *float64 `json:"lat"`
	Lon   *float64 `json:"lon"`
	TZ    string   `json:"tz"`
	Date  string   `json:"date"`
	Units string   `json:"units"`

	CloudCover struct {
		Afternoon *float64 `json:"afternoon"`
	} `json:"cloud_cover"`
	Humidity struct {
		Afternoon *float64 `json:"afternoon"`
	} `json:"humidity"`
	Precipitation struct {
		Total *float64 `json:"total"`
	} `json:"precipitation"`
	Temperature struct {
		Min       *float64 `json:"min"`
		Max       *float64 `json:"max"`
		Afternoon *float64 `json:"afternoon"`
		Night     *float64 `json:"night"`
		Evening   *float64 `json:"evening"`
		Morning   *float64 `json:"morning"`
	} `json:"temperature"`
	Pressure struct {
		Afternoon *float64 `json:"afternoon"`
	} `json:"pressure"`
	Wind struct {
		Max struct {
			Speed     *float64 `json:"speed"`
			Direction *float64 `json:"direction"`
		} `json:"max"`
	} `json:"wind"`
}

// CurrentPayload is the live current-conditions shape (metric units).
type CurrentPayload struct {
	Coord struct {
		Lat *float64 `json:"lat"`
		Lon *float64 `json:"lon"`
	} `json:"coord"`
	Weather []struct {
		ID          int    `json:"id"`
		Main        string `json:"main"`
		Description string `json:"description"`
		Icon        string `json:"icon"`
	} `json:"weather"`
	Main struct {
		Temp      *float64 `json:"temp"`
		FeelsLike *float64 `json:"feels_like"`
		TempMin   *float64 `json:"temp_min"`
		TempMax   *float64 `json:"temp_max"`
		Pressure  *float64 `json:"pressure"`
		Humidity  *float64 `json:"humidity"`
	} `json:"main"`
	Visibility *float64 `json:"visibility"` // meters
	Wind       struct {
		Speed *float64 `json:"speed"`
		Deg   *float64 `json:"deg"`
		Gust  *float64 `json:"gust"`
	} `json:"wind"`
	Clouds struct {
		All *float64 `json:"all"`
	} `json:"clouds"`
	Dt  int64 `json:"dt"`
	Sys struct {
		Country string `json:"country"`
		Sunrise int64  `json:"sunrise"`
		Sunset  int64  `json:"sunset"`
	} `json:"sys"`
	Timezone int    `json:"timezone"` // shift from UTC in seconds
	Name     string `json:"name"`
}

// ForecastPayload is the 5-day/3-hour forecast feed.
type ForecastPayload struct {
	List []ForecastEntry `json:"list"`
	City struct {
		Name     string `json:"name"`
		Timezone int    `json:"timezone"` // shift from UTC in seconds
	} `json:"city"`
}

// ForecastEntry is a single 3-hour slot of the forecast feed.
type ForecastEntry struct {
	Dt   int64 `json:"dt"`
	Main struct {
		Temp     float64 `json:"temp"`
		Humidity float64 `json:"humidity"`
		Pressure float64 `json:"pressure"`
	} `json:"main"`
	Weather []struct {
		Main        string `json:"main"`
		Description string `json:"description"`
		Icon        string `json:"icon"`
	} `json:"weather"`
	Clouds struct {
		All float64 `json:"all"`
	} `json:"clouds"`
	Wind struct {
		Speed float64 `json:"speed"`
		Deg   float64 `json:"deg"`
	} `json:"wind"`
	Rain struct {
		ThreeH float64 `json:"3h"`
	} `json:"rain"`
	Pop float64 `json:"pop"` // probability of precipitation, 0..1
}
