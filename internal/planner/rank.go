package planner

import (
	"sort"
	"time"

	"github.com/tzapp/weather-planner/internal/weather"
)

// topDays is how many ranked days a planning request returns.
const topDays = 5

// DayScore is one ranked day: its suitability score plus the raw factor
// values that produced it, retained for display rather than recomputed.
type DayScore struct {
	Date     time.Time `json:"date"`
	DateStr  string    `json:"dateStr"`
	Score    float64   `json:"score"`
	Temp     float64   `json:"temp"`
	Precip   float64   `json:"precip"`
	Wind     float64   `json:"wind"`
	Humidity float64   `json:"humidity"`
	Clouds   float64   `json:"clouds"`
}

// RankDays scores every day against the criteria and returns at most the top
// five, descending by score. The sort is stable, so days with equal scores
// keep their chronological input order; this is a guarantee, not an accident
// of the sort implementation. An empty input yields an empty result.
func RankDays(days []DayConditions, c EventCriteria) []DayScore {
	scores := make([]DayScore, 0, len(days))
	for _, day := range days {
		scores = append(scores, DayScore{
			Date:     day.Date,
			DateStr:  weather.FormatDate(day.Date),
			Score:    Score(day, c),
			Temp:     day.Temp,
			Precip:   day.Precip,
			Wind:     day.Wind,
			Humidity: day.Humidity,
			Clouds:   day.Clouds,
		})
	}

	sort.SliceStable(scores, func(i, j int) bool {
		return scores[i].Score > scores[j].Score
	})

	if len(scores) > topDays {
		scores = scores[:topDays]
	}
	return scores
}
