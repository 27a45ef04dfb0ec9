package models

import "time"

// CityResult is the outcome of crawling one city.
type CityResult struct {
	City    string
	Records []VenueRecord
	Err     error
}

// Failed reports whether the city produced no usable crawl. A city with
// zero records and a nil error is a completed empty city, not a failure.
func (r CityResult) Failed() bool {
	return r.Err != nil
}

// RunProgress accumulates results across a whole run.
type RunProgress struct {
	ScrapedCities []string
	FailedCities  []string
	Records       []VenueRecord
	LastUpdated   time.Time
}

// Apply folds one city outcome into the progress. Each processed city lands
// in exactly one of the scraped/failed lists; records collected before a
// failure are kept.
func (p *RunProgress) Apply(res CityResult) {
	if res.Failed() {
		p.FailedCities = append(p.FailedCities, res.City)
	} else {
		p.ScrapedCities = append(p.ScrapedCities, res.City)
	}
	p.Records = append(p.Records, res.Records...)
	p.LastUpdated = time.Now()
}

// Snapshot converts the progress to its persisted form.
func (p *RunProgress) Snapshot() ProgressSnapshot {
	snap := ProgressSnapshot{
		ScrapedCities: append([]string{}, p.ScrapedCities...),
		FailedCities:  append([]string{}, p.FailedCities...),
		TotalVenues:   len(p.Records),
		LastUpdated:   "Never",
	}
	if !p.LastUpdated.IsZero() {
		snap.LastUpdated = p.LastUpdated.Format(time.RFC3339)
	}
	return snap
}

// ProgressSnapshot is the progress.json wire format.
type ProgressSnapshot struct {
	ScrapedCities []string `json:"scraped_cities"`
	FailedCities  []string `json:"failed_cities"`
	TotalVenues   int      `json:"total_venues"`
	LastUpdated   string   `json:"last_updated"`
}

// RatedVenue pairs a venue with its parsed numeric rating.
type RatedVenue struct {
	Name   string
	City   string
	Rating float64
}

// InsightReport holds the computed analytics over the scraped dataset.
type InsightReport struct {
	TotalVenues   int
	VenuesByCity  map[string]int
	RatedVenues   int
	AverageRating float64
	TopRated      []RatedVenue
	PricedVenues  int
	MinPrice      float64
	MaxPrice      float64
	AveragePrice  float64
}
