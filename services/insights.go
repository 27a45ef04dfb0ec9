package services

import (
	"fmt"
	"sort"
	"strings"

	"venue-scraper/models"
	"venue-scraper/utils"
)

type InsightService struct {
	logger *utils.Logger
}

func NewInsightService(logger *utils.Logger) *InsightService {
	return &InsightService{logger: logger}
}

func (s *InsightService) Generate(records []models.VenueRecord) *models.InsightReport {
	report := &models.InsightReport{
		VenuesByCity: make(map[string]int),
	}

	if len(records) == 0 {
		return report
	}

	report.TotalVenues = len(records)

	var ratingTotal float64
	var priceTotal float64
	var rated []models.RatedVenue

	for _, rec := range records {
		if rec.City != "" && rec.City != models.Unavailable {
			report.VenuesByCity[CityDisplay(rec.City)]++
		}

		if rating, ok := ParseRating(rec.Rating); ok {
			ratingTotal += rating
			report.RatedVenues++
			rated = append(rated, models.RatedVenue{
				Name:   rec.Name,
				City:   CityDisplay(rec.City),
				Rating: rating,
			})
		}

		if price, ok := ParsePrice(rec.Price); ok {
			if report.PricedVenues == 0 || price < report.MinPrice {
				report.MinPrice = price
			}
			if report.PricedVenues == 0 || price > report.MaxPrice {
				report.MaxPrice = price
			}
			priceTotal += price
			report.PricedVenues++
		}
	}

	if report.RatedVenues > 0 {
		report.AverageRating = round2(ratingTotal / float64(report.RatedVenues))
	}
	if report.PricedVenues > 0 {
		report.AveragePrice = round2(priceTotal / float64(report.PricedVenues))
		report.MinPrice = round2(report.MinPrice)
		report.MaxPrice = round2(report.MaxPrice)
	}

	// Top 5 by rating
	sort.Slice(rated, func(i, j int) bool {
		return rated[i].Rating > rated[j].Rating
	})
	if len(rated) > 5 {
		rated = rated[:5]
	}
	report.TopRated = rated

	return report
}

func (s *InsightService) Print(r *models.InsightReport) {
	sep := strings.Repeat("═", 54)
	thin := strings.Repeat("─", 54)

	fmt.Printf("\n\033[1;35m%s\033[0m\n", sep)
	fmt.Printf("\033[1;35m  📊 VENUE SCRAPE INSIGHTS\033[0m\n")
	fmt.Printf("\033[1;35m%s\033[0m\n\n", sep)

	// Overview
	fmt.Printf("\033[1;33m  Overview\033[0m\n")
	fmt.Printf("  %s\n", thin)
	fmt.Printf("  Total venues scraped : \033[1m%d\033[0m\n", r.TotalVenues)
	fmt.Printf("  Cities covered       : \033[1m%d\033[0m\n", len(r.VenuesByCity))
	fmt.Printf("  Rated venues         : \033[1m%d\033[0m\n", r.RatedVenues)
	if r.RatedVenues > 0 {
		fmt.Printf("  Average rating       : \033[1m%.2f ★\033[0m\n", r.AverageRating)
	}
	fmt.Println()

	// Price Stats
	fmt.Printf("\033[1;33m  Price Statistics (per slot)\033[0m\n")
	fmt.Printf("  %s\n", thin)
	if r.PricedVenues > 0 {
		fmt.Printf("  Average price : \033[1;32m₹%.2f\033[0m\n", r.AveragePrice)
		fmt.Printf("  Minimum price : \033[1;32m₹%.2f\033[0m\n", r.MinPrice)
		fmt.Printf("  Maximum price : \033[1;32m₹%.2f\033[0m\n", r.MaxPrice)
	} else {
		fmt.Printf("  No price data available\n")
	}
	fmt.Println()

	// ── TOP 5 HIGHEST RATED ──────────────────────────────────────────────
	fmt.Printf("\033[1;33m  Top 5 Highest Rated Venues\033[0m\n")
	fmt.Printf("  %s\n", thin)
	if len(r.TopRated) == 0 {
		fmt.Printf("  No rated venues found\n")
	} else {
		for i, v := range r.TopRated {
			name := truncate(v.Name, 32)
			fmt.Printf("  \033[1m%d.\033[0m %-34s %-12s \033[1;32m%.2f ★\033[0m\n",
				i+1, name, truncate(v.City, 12), v.Rating)
		}
	}
	fmt.Println()

	// Venues by City
	fmt.Printf("\033[1;33m  Venues by City\033[0m\n")
	fmt.Printf("  %s\n", thin)
	if len(r.VenuesByCity) == 0 {
		fmt.Printf("  No city data\n")
	} else {
		// Sort cities by count descending, name ascending on ties
		type cityCount struct {
			city  string
			count int
		}
		var cities []cityCount
		for city, cnt := range r.VenuesByCity {
			cities = append(cities, cityCount{city, cnt})
		}
		sort.Slice(cities, func(i, j int) bool {
			if cities[i].count != cities[j].count {
				return cities[i].count > cities[j].count
			}
			return cities[i].city < cities[j].city
		})
		for _, cc := range cities {
			width := cc.count
			if width > 40 {
				width = 40
			}
			bar := strings.Repeat("█", width)
			fmt.Printf("  %-22s %s (%d)\n", truncate(cc.city, 20), bar, cc.count)
		}
	}

	fmt.Printf("\n\033[1;35m%s\033[0m\n\n", sep)
}

func round2(f float64) float64 {
	return float64(int(f*100+0.5)) / 100
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max-3] + "..."
}
