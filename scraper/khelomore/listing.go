package khelomore

import (
	"context"

	"venue-scraper/browser"
)

// listingState is the terminal state of the pagination loop.
type listingState int

const (
	listingStable listingState = iota
	listingBudgetExhausted
)

func (st listingState) String() string {
	if st == listingStable {
		return "stable"
	}
	return "budget exhausted"
}

// enumerateItems returns the venue cards currently present on the listing.
// Candidates are tried in order; the first one matching anything wins. An
// error comes back only when every candidate query failed.
func (s *Scraper) enumerateItems(ctx context.Context, page browser.Page) ([]browser.Element, error) {
	var lastErr error
	queried := false

	for _, sel := range listingItemCandidates {
		els, err := page.Query(ctx, sel)
		if err != nil {
			lastErr = err
			continue
		}
		queried = true
		if len(els) > 0 {
			return els, nil
		}
	}

	if !queried {
		return nil, lastErr
	}
	return nil, nil
}

// collectAllItems drives the load-more loop until the listing stops growing
// or the attempt budget runs out. Both exits hand back whatever is currently
// enumerable; an empty listing is a valid result, not an error.
func (s *Scraper) collectAllItems(ctx context.Context, page browser.Page) ([]browser.Element, listingState) {
	prevCount := -1
	stableRounds := 0
	noProgress := 0
	state := listingBudgetExhausted

	for attempt := 1; attempt <= s.cfg.MaxPaginationAttempts; attempt++ {
		if ctx.Err() != nil {
			break
		}
		if noProgress >= s.cfg.MaxNoProgress {
			s.logger.Warn("[khelomore] %d consecutive attempts without progress — treating listing as complete", noProgress)
			state = listingStable
			break
		}

		// Slow pages time out here; proceed with whatever has rendered.
		if err := page.WaitReady(ctx, s.cfg.ElementTimeout); err != nil {
			s.logger.Debug("[khelomore] listing not settled: %v", err)
		}

		items, err := s.enumerateItems(ctx, page)
		if err != nil {
			s.logger.Warn("[khelomore] Item enumeration failed on attempt %d: %v", attempt, err)
			noProgress++
			continue
		}

		count := len(items)
		unchanged := count == prevCount
		if unchanged {
			stableRounds++
		} else {
			stableRounds = 0
		}
		prevCount = count
		s.logger.Debug("[khelomore] attempt %d — %d items loaded", attempt, count)

		if stableRounds >= s.cfg.StableRounds {
			s.logger.Info("[khelomore] Listing stable at %d items", count)
			state = listingStable
			break
		}

		if err := page.ScrollToBottom(ctx); err != nil {
			s.logger.Debug("[khelomore] scroll failed: %v", err)
		}
		s.settle(ctx)

		if s.clickLoadMore(ctx, page) {
			noProgress = 0
			s.settle(ctx)

			fresh, err := s.enumerateItems(ctx, page)
			if err == nil && len(fresh) > count {
				s.logger.Info("[khelomore] Loaded %d new items (%d total)", len(fresh)-count, len(fresh))
			} else {
				noProgress++
				s.logger.Warn("[khelomore] Load more clicked but no new items appeared")
			}
		} else {
			noProgress++
			atBottom, err := page.AtBottom(ctx)
			if err == nil && atBottom && unchanged {
				s.logger.Info("[khelomore] No load-more control and viewport at bottom — listing complete at %d items", count)
				state = listingStable
				break
			}
		}
	}

	items, err := s.enumerateItems(ctx, page)
	if err != nil {
		s.logger.Warn("[khelomore] Final enumeration failed: %v", err)
		return nil, state
	}
	return items, state
}

// clickLoadMore finds and clicks the load-more control. A natural click the
// page rejects falls back to a scripted click.
func (s *Scraper) clickLoadMore(ctx context.Context, page browser.Page) bool {
	el := s.resolveElement(ctx, page, loadMoreCandidates)
	if el == nil {
		return false
	}

	if err := el.ScrollIntoView(ctx); err != nil {
		s.logger.Debug("[khelomore] load-more scroll failed: %v", err)
	}
	if err := el.Click(ctx); err != nil {
		s.logger.Debug("[khelomore] load-more click rejected (%v), trying scripted click", err)
		if err := el.ClickJS(ctx); err != nil {
			s.logger.Debug("[khelomore] scripted load-more click failed: %v", err)
			return false
		}
	}
	return true
}
