// Package scheduler periodically refreshes the saved location's current
// weather so the saved tab never shows stale conditions.
package scheduler

import (
	"context"
	"errors"
	"time"

	"github.com/go-co-op/gocron"

	"github.com/tzapp/weather-planner/internal/logger"
	"github.com/tzapp/weather-planner/internal/store"
	"github.com/tzapp/weather-planner/internal/weather"
)

// WeatherSource is the slice of the weather service the refresher needs.
type WeatherSource interface {
	WeatherForDate(ctx context.Context, lat, lon float64, date time.Time) (weather.NormalizedWeatherData, error)
	Now() time.Time
}

// LocationStore is the slice of the store the refresher needs.
type LocationStore interface {
	Location() (store.SavedLocation, error)
	SaveLocation(store.SavedLocation)
}

// Scheduler drives the periodic saved-location refresh.
type Scheduler struct {
	scheduler *gocron.Scheduler
	source    WeatherSource
	locations LocationStore
	interval  time.Duration
}

func New(source WeatherSource, locations LocationStore, interval time.Duration) *Scheduler {
	return &Scheduler{
		scheduler: gocron.NewScheduler(time.UTC),
		source:    source,
		locations: locations,
		interval:  interval,
	}
}

// Start schedules the refresh job and starts the underlying scheduler.
func (s *Scheduler) Start() error {
	minutes := int(s.interval.Minutes())
	if minutes <= 0 {
		minutes = 15
	}

	_, err := s.scheduler.Every(minutes).Minutes().Do(s.refresh)
	if err != nil {
		return err
	}

	s.scheduler.StartAsync()
	return nil
}

// Stop stops the scheduler and cancels any future jobs.
func (s *Scheduler) Stop() {
	if s.scheduler != nil {
		s.scheduler.Stop()
	}
}

func (s *Scheduler) refresh() {
	log := logger.GetLogger()

	saved, err := s.locations.Location()
	if err != nil {
		if !errors.Is(err, store.ErrNotFound) {
			log.Errorw("saved location lookup failed", "error", err)
		}
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	now := s.source.Now()
	fresh, err := s.source.WeatherForDate(ctx, saved.Weather.Location.Lat, saved.Weather.Location.Lon, now)
	if err != nil {
		// Keep the last good snapshot rather than overwriting with nothing.
		log.Warnw("saved location refresh failed; keeping previous snapshot",
			"name", saved.Name, "error", err)
		return
	}

	saved.Weather = fresh
	s.locations.SaveLocation(saved)

	log.Debugw("saved location weather refreshed", "name", saved.Name, "date", fresh.Date)
}
