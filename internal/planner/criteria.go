// Package planner scores and ranks calendar days by how well their weather
// fits a chosen event type.
package planner

// EventCriteria is the threshold set of one event profile. Every threshold is
// the inclusive boundary of the full-score band; scoring degrades linearly
// beyond it rather than dropping to zero.
type EventCriteria struct {
	TempRange   [2]float64 `json:"temp_range"` // inclusive [min, max], Celsius
	MaxPrecip   float64    `json:"max_precip"` // mm
	MaxWind     float64    `json:"max_wind"`   // m/s
	MaxHumidity float64    `json:"max_humidity"`
	MaxClouds   float64    `json:"max_clouds"`
}

// EventProfile is a named activity with its criteria.
type EventProfile struct {
	ID       string        `json:"id"`
	Label    string        `json:"label"`
	Criteria EventCriteria `json:"criteria"`
}

// Profiles is the built-in event profile table. The thresholds are
// configuration data, hand-tuned; changing them changes ranking behaviour.
var Profiles = []EventProfile{
	{
		ID:    "picnic",
		Label: "picnic",
		Criteria: EventCriteria{
			TempRange:   [2]float64{18, 26},
			MaxPrecip:   0.5,
			MaxWind:     4.0,
			MaxHumidity: 70,
			MaxClouds:   60,
		},
	},
	{
		ID:    "festival",
		Label: "festival",
		Criteria: EventCriteria{
			TempRange:   [2]float64{15, 28},
			MaxPrecip:   1.0,
			MaxWind:     6.0,
			MaxHumidity: 75,
			MaxClouds:   80,
		},
	},
	{
		ID:    "pool_party",
		Label: "pool party",
		Criteria: EventCriteria{
			TempRange:   [2]float64{22, 32},
			MaxPrecip:   0.0,
			MaxWind:     3.0,
			MaxHumidity: 65,
			MaxClouds:   40,
		},
	},
	{
		ID:    "concert",
		Label: "concert",
		Criteria: EventCriteria{
			TempRange:   [2]float64{12, 25},
			MaxPrecip:   0.2,
			MaxWind:     5.0,
			MaxHumidity: 80,
			MaxClouds:   70,
		},
	},
	{
		ID:    "hiking",
		Label: "hiking",
		Criteria: EventCriteria{
			TempRange:   [2]float64{8, 22},
			MaxPrecip:   0.1,
			MaxWind:     7.0,
			MaxHumidity: 80,
			MaxClouds:   70,
		},
	},
	{
		ID:    "wedding",
		Label: "wedding",
		Criteria: EventCriteria{
			TempRange:   [2]float64{16, 26},
			MaxPrecip:   0.0,
			MaxWind:     3.0,
			MaxHumidity: 65,
			MaxClouds:   30,
		},
	},
	{
		ID:    "birthday",
		Label: "birthday",
		Criteria: EventCriteria{
			TempRange:   [2]float64{15, 27},
			MaxPrecip:   0.3,
			MaxWind:     4.0,
			MaxHumidity: 75,
			MaxClouds:   60,
		},
	},
}

// ProfileByID looks up a built-in profile.
func ProfileByID(id string) (EventProfile, bool) {
	for _, p := range Profiles {
		if p.ID == id {
			return p, true
		}
	}
	return EventProfile{}, false
}
