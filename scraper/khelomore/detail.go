package khelomore

import (
	"context"
	"fmt"

	"venue-scraper/browser"
	"venue-scraper/models"
)

// extractVenue opens one listing item and reads the full field schema from
// its detail view. Fields that cannot be resolved carry the Unavailable
// sentinel; only failing to reach the detail view at all is an error, which
// the caller retries at the item level.
func (s *Scraper) extractVenue(ctx context.Context, page browser.Page, item browser.Element) (models.VenueRecord, error) {
	rec := models.NewVenueRecord()

	if err := item.ScrollIntoView(ctx); err != nil {
		s.logger.Debug("[khelomore] item scroll failed: %v", err)
	}
	s.settle(ctx)

	if err := item.Click(ctx); err != nil {
		s.logger.Debug("[khelomore] item click rejected (%v), trying scripted click", err)
		if jsErr := item.ClickJS(ctx); jsErr != nil {
			return rec, fmt.Errorf("open detail view: %w", jsErr)
		}
	}

	// The load signal is advisory; extraction proceeds on timeout.
	if err := page.WaitReady(ctx, s.cfg.PageLoadTimeout); err != nil {
		s.logger.Debug("[khelomore] detail view not settled: %v", err)
	}
	s.settle(ctx)

	if loc, err := page.Location(ctx); err == nil && loc != "" {
		rec.SourceURL = loc
	}

	for _, f := range detailFields {
		rec.Set(f.field, s.resolveText(ctx, page, f.field, f.candidates))
	}
	for _, m := range modalFields {
		rec.Set(m.field, s.extractModalField(ctx, page, m))
	}

	return rec, nil
}

// extractModalField runs the open, read, close protocol for a dialog-gated
// field. A missing opener means the venue simply has no such section; a
// missing close control is tolerated and the dialog left as-is.
func (s *Scraper) extractModalField(ctx context.Context, page browser.Page, m modalField) string {
	opener := s.resolveElement(ctx, page, m.opener)
	if opener == nil {
		s.logger.Debug("[khelomore] no %s opener on this venue", m.field)
		return models.Unavailable
	}

	if err := opener.ScrollIntoView(ctx); err != nil {
		s.logger.Debug("[khelomore] %s opener scroll failed: %v", m.field, err)
	}
	if err := opener.Click(ctx); err != nil {
		s.logger.Debug("[khelomore] %s opener click rejected (%v), trying scripted click", m.field, err)
		if jsErr := opener.ClickJS(ctx); jsErr != nil {
			s.logger.Warn("[khelomore] Could not open %s dialog: %v", m.field, jsErr)
			return models.Unavailable
		}
	}
	s.settle(ctx)

	text := s.resolveText(ctx, page, m.field, modalContentCandidates)

	if closer := s.resolveElement(ctx, page, modalCloseCandidates); closer != nil {
		if err := closer.Click(ctx); err != nil {
			if jsErr := closer.ClickJS(ctx); jsErr != nil {
				s.logger.Debug("[khelomore] %s dialog close failed: %v", m.field, jsErr)
			}
		}
		s.settle(ctx)
	} else {
		s.logger.Debug("[khelomore] no close control for %s dialog, leaving it open", m.field)
	}

	return text
}
