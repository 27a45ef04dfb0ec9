package services

import (
	"regexp"
	"strconv"
	"strings"

	"venue-scraper/models"
)

var (
	// numberRegexp captures the first numeric value, commas allowed
	numberRegexp = regexp.MustCompile(`[\d,]+(?:\.\d+)?`)
	// ratingRegexp captures a numeric rating in the 0.0–5.0 range
	ratingRegexp = regexp.MustCompile(`\b([0-5](?:\.\d{1,2})?)\b`)
)

// ParsePrice extracts the leading numeric value from raw price text such as
// "₹ 800 onwards". The bool is false for the sentinel and unparseable text.
func ParsePrice(raw string) (float64, bool) {
	if raw == "" || raw == models.Unavailable {
		return 0, false
	}
	cleaned := strings.ReplaceAll(raw, ",", "")
	match := numberRegexp.FindString(cleaned)
	if match == "" {
		return 0, false
	}
	val, err := strconv.ParseFloat(match, 64)
	if err != nil {
		return 0, false
	}
	return val, true
}

// ParseRating extracts a 0.0–5.0 rating from raw text like "4.5".
func ParseRating(raw string) (float64, bool) {
	if raw == "" || raw == models.Unavailable {
		return 0, false
	}
	match := ratingRegexp.FindStringSubmatch(raw)
	if len(match) < 2 {
		return 0, false
	}
	val, err := strconv.ParseFloat(match[1], 64)
	if err != nil || val < 0 || val > 5 {
		return 0, false
	}
	return val, true
}

// ParseRaters extracts the reviewer count from text like "(230)".
func ParseRaters(raw string) (int, bool) {
	if raw == "" || raw == models.Unavailable {
		return 0, false
	}
	cleaned := strings.ReplaceAll(raw, ",", "")
	match := numberRegexp.FindString(cleaned)
	if match == "" {
		return 0, false
	}
	n, err := strconv.Atoi(match)
	if err != nil {
		return 0, false
	}
	return n, true
}

// CityDisplay renders a city slug like "navi-mumbai" for humans.
func CityDisplay(slug string) string {
	parts := strings.Split(slug, "-")
	for i, p := range parts {
		if p == "" || p == "&" {
			continue
		}
		parts[i] = strings.ToUpper(p[:1]) + p[1:]
	}
	return strings.Join(parts, " ")
}
