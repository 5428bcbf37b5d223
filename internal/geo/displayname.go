// Package geo resolves human-readable place names and elevation for
// coordinate pairs.
package geo

import (
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"
)

// boilerplate are address segments that never make a good display name.
var boilerplate = []string{"USA", "United States", "State", "Province", "County", "Region"}

const (
	minSegmentLen = 3
	maxSegmentLen = 25
	maxSegments   = 4
)

// Resolve extracts a city or neighborhood name from a geocoded formatted
// address, upper-cased. A raw "lat,lng" address (the GPS fallback) yields the
// fallback city name immediately. Otherwise the first few comma segments are
// scanned for one that is not digit-led, not boilerplate, and of plausible
// length; failing that, the fallback city name is used, and failing that the
// raw first segment. There is no error outcome.
func Resolve(formattedAddress, fallbackCityName string) string {
	segments := splitSegments(formattedAddress)

	if len(segments) == 2 && isNumeric(segments[0]) && isNumeric(segments[1]) {
		return strings.ToUpper(fallbackCityName)
	}

	limit := len(segments)
	if limit > maxSegments {
		limit = maxSegments
	}

	for _, segment := range segments[:limit] {
		if segment == "" || startsWithDigit(segment) {
			continue
		}
		// Character count, not bytes: accented names must not change
		// classification near the bounds.
		if n := utf8.RuneCountInString(segment); n < minSegmentLen || n > maxSegmentLen {
			continue
		}
		if equalsAnyFold(segment, boilerplate...) {
			continue
		}
		return strings.ToUpper(segment)
	}

	if fallbackCityName != "" {
		return strings.ToUpper(fallbackCityName)
	}
	if len(segments) > 0 {
		return strings.ToUpper(segments[0])
	}
	return ""
}

func splitSegments(address string) []string {
	parts := strings.Split(address, ",")
	segments := make([]string, len(parts))
	for i, p := range parts {
		segments[i] = strings.TrimSpace(p)
	}
	return segments
}

func startsWithDigit(s string) bool {
	for _, r := range s {
		return unicode.IsDigit(r)
	}
	return false
}

func isNumeric(s string) bool {
	_, err := strconv.ParseFloat(s, 64)
	return err == nil
}

// equalsAnyFold reports whether s case-insensitively equals any candidate.
func equalsAnyFold(s string, candidates ...string) bool {
	for _, c := range candidates {
		if strings.EqualFold(s, c) {
			return true
		}
	}
	return false
}
