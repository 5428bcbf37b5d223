package weather

import (
	"math"
	"sort"
	"time"
)

// BuildForecast folds the 3-hour forecast feed into at most five per-day
// entries. Slots are bucketed by their local calendar date (using the
// timezone shift echoed in the payload), each bucket is summarized around a
// midday representative slot, and numeric fields are averaged or totaled
// across the bucket.
func BuildForecast(p ForecastPayload) []ForecastData {
	if len(p.List) == 0 {
		return nil
	}

	zone := time.FixedZone("local", p.City.Timezone)

	buckets := make(map[string][]ForecastEntry)
	for _, entry := range p.List {
		day := time.Unix(entry.Dt, 0).In(zone).Format(DateLayout)
		buckets[day] = append(buckets[day], entry)
	}

	days := make([]string, 0, len(buckets))
	for day := range buckets {
		days = append(days, day)
	}
	sort.Strings(days)

	if len(days) > 5 {
		days = days[:5]
	}

	forecast := make([]ForecastData, 0, len(days))
	for _, day := range days {
		forecast = append(forecast, summarizeDay(day, buckets[day], zone))
	}
	return forecast
}

func summarizeDay(day string, entries []ForecastEntry, zone *time.Location) ForecastData {
	main := representativeSlot(entries, zone)
	night := nightSlot(entries, zone)

	minTemp := entries[0].Main.Temp
	maxTemp := entries[0].Main.Temp
	var sumHumidity, sumWind, sumPressure, sumClouds, totalPrecip float64
	wet := 0

	for _, e := range entries {
		if e.Main.Temp < minTemp {
			minTemp = e.Main.Temp
		}
		if e.Main.Temp > maxTemp {
			maxTemp = e.Main.Temp
		}
		sumHumidity += e.Main.Humidity
		sumWind += e.Wind.Speed
		sumPressure += e.Main.Pressure
		sumClouds += e.Clouds.All
		totalPrecip += e.Rain.ThreeH
		if e.Rain.ThreeH > 0 || e.Pop > 0 {
			wet++
		}
	}

	n := float64(len(entries))

	data := ForecastData{
		Date:      day,
		DayOfWeek: dayOfWeek(day),
		Temperature: DayTemperatures{
			Min:   round0(minTemp),
			Max:   round0(maxTemp),
			Day:   round0(main.Main.Temp),
			Night: round0(night.Main.Temp),
		},
		Humidity:            round0(sumHumidity / n),
		WindSpeed:           round1(sumWind / n),
		WindDirection:       main.Wind.Deg,
		Pressure:            round0(sumPressure / n),
		Cloudiness:          round0(sumClouds / n),
		Precipitation:       round1(totalPrecip),
		PrecipitationChance: round0(float64(wet) / n * 100),
	}

	if len(main.Weather) > 0 {
		data.Weather = ConditionInfo{
			Main:        main.Weather[0].Main,
			Description: main.Weather[0].Description,
			Icon:        main.Weather[0].Icon,
		}
	}
	return data
}

// representativeSlot picks the early-afternoon slot (12:00-15:59 local) as
// the day's face value, falling back to the middle of the bucket.
func representativeSlot(entries []ForecastEntry, zone *time.Location) ForecastEntry {
	for _, e := range entries {
		h := time.Unix(e.Dt, 0).In(zone).Hour()
		if h >= 12 && h <= 15 {
			return e
		}
	}
	return entries[len(entries)/2]
}

// nightSlot picks a late-evening or early-morning slot, falling back to the
// last slot of the bucket.
func nightSlot(entries []ForecastEntry, zone *time.Location) ForecastEntry {
	for _, e := range entries {
		h := time.Unix(e.Dt, 0).In(zone).Hour()
		if h >= 21 || h <= 6 {
			return e
		}
	}
	return entries[len(entries)-1]
}

func dayOfWeek(day string) string {
	t, err := time.Parse(DateLayout, day)
	if err != nil {
		return ""
	}
	return t.Format("Mon")
}

func round0(v float64) float64 {
	return math.Round(v)
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
