// Package calendar provides the month-view date arithmetic behind the date
// picker and the planner's month navigation.
package calendar

import (
	"time"
)

// DefaultHorizonMonths is how far into the future a month may be selected.
const DefaultHorizonMonths = 18

// MonthYear identifies a calendar month.
type MonthYear struct {
	Year  int
	Month time.Month
}

// MonthOption is one entry of a year's month strip.
type MonthOption struct {
	Name     string     `json:"name"`
	Month    time.Month `json:"month"`
	Year     int        `json:"year"`
	Selected bool       `json:"selected"`
	Disabled bool       `json:"disabled"`
}

// MonthGrid returns the dates of a month view: leading padding borrowed from
// the previous month to fill the first week (week starts on Sunday), followed
// by every day of the requested month. No trailing padding is added. Dates
// are midnight UTC.
func MonthGrid(year int, month time.Month) []time.Time {
	first := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	daysInMonth := first.AddDate(0, 1, -1).Day()
	padding := int(first.Weekday())

	grid := make([]time.Time, 0, padding+daysInMonth)
	for i := padding; i > 0; i-- {
		grid = append(grid, first.AddDate(0, 0, -i))
	}
	for day := 0; day < daysInMonth; day++ {
		grid = append(grid, first.AddDate(0, 0, day))
	}
	return grid
}

// MonthsForYear returns the twelve months of a year annotated for selection.
// A month is disabled when it is strictly before the current month, or
// strictly after today plus the horizon; both window bounds are selectable.
func MonthsForYear(year int, today time.Time, selected MonthYear, horizonMonths int) []MonthOption {
	if horizonMonths <= 0 {
		horizonMonths = DefaultHorizonMonths
	}

	current := MonthYear{Year: today.Year(), Month: today.Month()}
	horizon := today.AddDate(0, horizonMonths, 0)
	max := MonthYear{Year: horizon.Year(), Month: horizon.Month()}

	options := make([]MonthOption, 0, 12)
	for m := time.January; m <= time.December; m++ {
		my := MonthYear{Year: year, Month: m}
		options = append(options, MonthOption{
			Name:     m.String()[:3],
			Month:    m,
			Year:     year,
			Selected: my == selected,
			Disabled: before(my, current) || before(max, my),
		})
	}
	return options
}

func before(a, b MonthYear) bool {
	if a.Year != b.Year {
		return a.Year < b.Year
	}
	return a.Month < b.Month
}
