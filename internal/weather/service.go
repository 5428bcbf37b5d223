package weather

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/tzapp/weather-planner/internal/logger"
)

// Service orchestrates the upstream endpoints: it picks the endpoint matching
// a requested date's temporal kind, fans out over a month for the planner,
// and builds the 5-day forecast strip.
type Service struct {
	providers Providers
	elevation ElevationProvider
	clock     clockwork.Clock
}

// NewService creates a Service. elevation may be nil, in which case live
// records carry no elevation block.
func NewService(providers Providers, elevation ElevationProvider, clock clockwork.Clock) *Service {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return &Service{
		providers: providers,
		elevation: elevation,
		clock:     clock,
	}
}

// WeatherForDate returns the normalized weather view for one date. The date's
// kind relative to today selects the upstream endpoint: present dates use the
// live current-conditions endpoint (with the elevation side-channel), past and
// future dates use the day-summary endpoint.
func (s *Service) WeatherForDate(ctx context.Context, lat, lon float64, date time.Time) (NormalizedWeatherData, error) {
	kind := Classify(date, s.clock.Now())

	if kind == KindPresent {
		return s.currentWeather(ctx, lat, lon, date)
	}

	payload, err := s.providers.DaySummary(ctx, lat, lon, date)
	if err != nil {
		return NormalizedWeatherData{}, fmt.Errorf("day summary for %s: %w", FormatDate(date), err)
	}
	return NormalizeDaySummary(payload, date, kind)
}

func (s *Service) currentWeather(ctx context.Context, lat, lon float64, date time.Time) (NormalizedWeatherData, error) {
	log := logger.GetLogger()

	var (
		wg      sync.WaitGroup
		payload CurrentPayload
		fetchEr error
		elev    *Elevation
	)

	wg.Add(1)
	go func() {
		defer wg.Done()
		payload, fetchEr = s.providers.Current(ctx, lat, lon)
	}()

	if s.elevation != nil {
		wg.Add(1)
		go func() {
			defer wg.Done()
			meters, err := s.elevation.Elevation(ctx, lat, lon)
			if err != nil {
				log.Warnw("elevation lookup failed; defaulting to zero",
					"lat", lat, "lon", lon, "error", err)
				meters = 0
			}
			elev = &Elevation{Elevation: meters, Lat: lat, Lon: lon}
		}()
	}

	wg.Wait()

	if fetchEr != nil {
		return NormalizedWeatherData{}, fmt.Errorf("current conditions: %w", fetchEr)
	}
	return NormalizeCurrent(payload, date, elev)
}

// MonthSummaries fetches and normalizes the day summary for every day of the
// given month concurrently, preserving chronological order. Every day,
// today included, goes through the day-summary endpoint: the live endpoint's
// record lacks the afternoon temperature and precipitation total, which
// month consumers score on. Days whose fetch or normalization fails are
// dropped; an error is returned only when no day succeeded.
func (s *Service) MonthSummaries(ctx context.Context, lat, lon float64, year int, month time.Month) ([]NormalizedWeatherData, error) {
	log := logger.GetLogger()
	today := s.clock.Now()

	first := time.Date(year, month, 1, 0, 0, 0, 0, today.Location())
	daysInMonth := first.AddDate(0, 1, -1).Day()

	results := make([]*NormalizedWeatherData, daysInMonth)
	var wg sync.WaitGroup

	for i := 0; i < daysInMonth; i++ {
		i := i
		date := first.AddDate(0, 0, i)

		wg.Add(1)
		go func() {
			defer wg.Done()

			kind := Classify(date, today)
			var n NormalizedWeatherData
			payload, err := s.providers.DaySummary(ctx, lat, lon, date)
			if err == nil {
				n, err = NormalizeDaySummary(payload, date, kind)
			}
			if err != nil {
				log.Warnw("month summary day skipped",
					"date", FormatDate(date), "error", err)
				return
			}
			results[i] = &n
		}()
	}

	wg.Wait()

	summaries := make([]NormalizedWeatherData, 0, daysInMonth)
	for _, r := range results {
		if r != nil {
			summaries = append(summaries, *r)
		}
	}

	if len(summaries) == 0 {
		return nil, fmt.Errorf("no day summaries available for %04d-%02d", year, month)
	}
	return summaries, nil
}

// FiveDayForecast returns the 5-day strip for a coordinate pair.
func (s *Service) FiveDayForecast(ctx context.Context, lat, lon float64) ([]ForecastData, error) {
	payload, err := s.providers.Forecast(ctx, lat, lon)
	if err != nil {
		return nil, fmt.Errorf("forecast: %w", err)
	}

	forecast := BuildForecast(payload)
	if len(forecast) == 0 {
		return nil, fmt.Errorf("forecast feed was empty")
	}
	return forecast, nil
}

// Now exposes the service clock so callers derive "today" consistently with
// the temporal classification above.
func (s *Service) Now() time.Time {
	return s.clock.Now()
}
