package khelomore

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"venue-scraper/browser"
	"venue-scraper/models"
)

// ScrapeCity crawls every venue of one city listing. Venues that keep
// failing are skipped; the city as a whole fails only when the listing
// itself is unreachable or the run is cancelled.
func (s *Scraper) ScrapeCity(ctx context.Context, city string) models.CityResult {
	result := models.CityResult{City: city}

	page, err := s.pages.NewPage()
	if err != nil {
		result.Err = fmt.Errorf("open page for %s: %w", city, err)
		return result
	}
	defer page.Close()

	listingURL := s.cfg.ListingURL(city)
	s.logger.Info("[khelomore] Scraping %s — %s", city, listingURL)

	if err := s.navigateToListing(ctx, page, city, listingURL); err != nil {
		result.Err = err
		return result
	}

	items, state := s.collectAllItems(ctx, page)
	if err := ctx.Err(); err != nil {
		result.Err = fmt.Errorf("scrape %s: %w", city, err)
		return result
	}

	total := len(items)
	s.logger.Info("[khelomore] %s enumeration finished (%s) — %d venues", city, state, total)
	if total == 0 {
		s.logger.Warn("[khelomore] No venues found for %s", city)
		return result
	}

	if s.cfg.MaxVenuesPerCity > 0 && total > s.cfg.MaxVenuesPerCity {
		s.logger.Info("[khelomore] Capping %s at %d of %d venues", city, s.cfg.MaxVenuesPerCity, total)
		total = s.cfg.MaxVenuesPerCity
	}

	for idx := 0; idx < total; idx++ {
		if err := ctx.Err(); err != nil {
			result.Err = fmt.Errorf("scrape %s: %w", city, err)
			return result
		}

		s.pacer.Wait()
		s.logger.Info("[khelomore] Processing venue %d/%d in %s", idx+1, total, city)

		rec, err := s.processItem(ctx, page, listingURL, idx)
		if err != nil {
			if errors.Is(err, errItemGone) {
				s.logger.Warn("[khelomore] Venue %d/%d vanished from %s listing — skipping", idx+1, total, city)
				continue
			}
			s.logger.Error("[khelomore] Venue %d/%d in %s failed: %v", idx+1, total, city, err)
			continue
		}

		rec.City = city
		rec.ScrapedAt = time.Now().Format(time.RFC3339)
		result.Records = append(result.Records, rec)
		s.logger.Info("[khelomore] Scraped %q in %s", rec.Name, city)
	}

	if err := ctx.Err(); err != nil {
		result.Err = fmt.Errorf("scrape %s: %w", city, err)
		return result
	}

	s.logger.Info("[khelomore] Completed %s — %d venues", city, len(result.Records))
	return result
}

// navigateToListing drives the initial navigation with bounded retry. When
// every attempt fails the whole city fails: without a listing there is
// nothing to salvage.
func (s *Scraper) navigateToListing(ctx context.Context, page browser.Page, city, listingURL string) error {
	return s.retry.Do(ctx, "navigate-"+city, func() error {
		if err := page.Navigate(ctx, listingURL); err != nil {
			return err
		}
		if err := page.WaitReady(ctx, s.cfg.PageLoadTimeout); err != nil {
			s.logger.Debug("[khelomore] %s listing load signal timed out: %v", city, err)
		}
		s.settle(ctx)
		return nil
	})
}

// processItem extracts one venue by listing index with bounded retry. The
// enumeration is re-resolved on every attempt because item handles do not
// survive the back-navigation of a previous venue.
func (s *Scraper) processItem(ctx context.Context, page browser.Page, listingURL string, idx int) (models.VenueRecord, error) {
	var lastErr error

	for attempt := 1; attempt <= s.cfg.MaxItemRetries; attempt++ {
		if err := ctx.Err(); err != nil {
			return models.VenueRecord{}, err
		}

		items, err := s.enumerateItems(ctx, page)
		if err != nil {
			lastErr = fmt.Errorf("re-enumerate listing: %w", err)
			s.logger.Warn("[khelomore] Venue %d attempt %d/%d: %v", idx+1, attempt, s.cfg.MaxItemRetries, lastErr)
			s.recoverListing(ctx, page, listingURL)
			continue
		}
		if idx >= len(items) {
			return models.VenueRecord{}, errItemGone
		}

		rec, err := s.extractVenue(ctx, page, items[idx])
		if err == nil {
			s.returnToListing(ctx, page, listingURL)
			return rec, nil
		}

		lastErr = err
		s.logger.Warn("[khelomore] Venue %d attempt %d/%d failed: %v", idx+1, attempt, s.cfg.MaxItemRetries, err)
		s.recoverListing(ctx, page, listingURL)
	}

	return models.VenueRecord{}, fmt.Errorf("venue %d: %w", idx+1, lastErr)
}

// returnToListing brings the page back to the listing after a detail visit.
// When history does not land on the listing, navigate there directly.
func (s *Scraper) returnToListing(ctx context.Context, page browser.Page, listingURL string) {
	if err := page.Back(ctx); err != nil {
		s.logger.Debug("[khelomore] back-navigation failed: %v", err)
	}
	if err := page.WaitReady(ctx, s.cfg.PageLoadTimeout); err != nil {
		s.logger.Debug("[khelomore] listing load signal timed out: %v", err)
	}
	s.settle(ctx)

	loc, err := page.Location(ctx)
	if err == nil && strings.HasPrefix(loc, listingURL) {
		return
	}

	s.logger.Debug("[khelomore] landed on %q after back-navigation, going to listing directly", loc)
	if err := page.Navigate(ctx, listingURL); err != nil {
		s.logger.Warn("[khelomore] Could not return to listing: %v", err)
		return
	}
	if err := page.WaitReady(ctx, s.cfg.PageLoadTimeout); err != nil {
		s.logger.Debug("[khelomore] listing load signal timed out: %v", err)
	}
	s.settle(ctx)
}

// recoverListing resets page state between item attempts: head back towards
// the listing and reload it, so a wedged detail view cannot poison the next
// attempt.
func (s *Scraper) recoverListing(ctx context.Context, page browser.Page, listingURL string) {
	if err := page.Back(ctx); err != nil {
		s.logger.Debug("[khelomore] recovery back-navigation failed: %v", err)
	}

	loc, err := page.Location(ctx)
	if err != nil || !strings.HasPrefix(loc, listingURL) {
		if err := page.Navigate(ctx, listingURL); err != nil {
			s.logger.Warn("[khelomore] Recovery navigation failed: %v", err)
			return
		}
	} else if err := page.Reload(ctx); err != nil {
		s.logger.Debug("[khelomore] recovery reload failed: %v", err)
	}

	if err := page.WaitReady(ctx, s.cfg.PageLoadTimeout); err != nil {
		s.logger.Debug("[khelomore] listing load signal timed out: %v", err)
	}
	s.settle(ctx)
}
