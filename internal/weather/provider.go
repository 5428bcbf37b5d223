package weather

import (
	"context"
	"time"
)

// CurrentProvider fetches live current conditions for a coordinate pair.
type CurrentProvider interface {
	Current(ctx context.Context, lat, lon float64) (CurrentPayload, error)
}

// SummaryProvider fetches the aggregated single-day summary for a past or
// future date.
type SummaryProvider interface {
	DaySummary(ctx context.Context, lat, lon float64, date time.Time) (DaySummaryPayload, error)
}

// ForecastProvider fetches the raw 5-day/3-hour forecast feed.
type ForecastProvider interface {
	Forecast(ctx context.Context, lat, lon float64) (ForecastPayload, error)
}

// Providers bundles the upstream endpoints the service composes. A single
// client typically implements all three.
type Providers interface {
	CurrentProvider
	SummaryProvider
	ForecastProvider
}

// ElevationProvider is the optional elevation side-channel attached to live
// records. Failures degrade to a zero elevation rather than failing the
// weather request.
type ElevationProvider interface {
	Elevation(ctx context.Context, lat, lon float64) (float64, error)
}
