package khelomore

import (
	"context"

	"venue-scraper/browser"
	"venue-scraper/models"
	"venue-scraper/utils"
)

// resolveText walks an ordered candidate list and returns the text of the
// first visible match with non-empty content. Exhausting every candidate is
// a valid outcome, reported as the Unavailable sentinel rather than an error.
func (s *Scraper) resolveText(ctx context.Context, page browser.Page, field string, candidates []browser.Selector) string {
	for _, sel := range candidates {
		els, err := page.Query(ctx, sel)
		if err != nil {
			// A broken candidate is just a miss; later candidates may live.
			s.logger.Debug("[khelomore] %s: candidate %q failed: %v", field, sel.Expr, err)
			continue
		}
		for _, el := range els {
			visible, err := el.Visible(ctx)
			if err != nil || !visible {
				continue
			}
			if text := s.elementText(ctx, el); text != "" {
				return text
			}
		}
	}
	return models.Unavailable
}

// resolveElement returns the first visible element among the candidates, or
// nil when nothing matches.
func (s *Scraper) resolveElement(ctx context.Context, page browser.Page, candidates []browser.Selector) browser.Element {
	for _, sel := range candidates {
		els, err := page.Query(ctx, sel)
		if err != nil {
			continue
		}
		for _, el := range els {
			if visible, err := el.Visible(ctx); err == nil && visible {
				return el
			}
		}
	}
	return nil
}

// elementText reads an element's content as flattened plain text. The markup
// is preferred so block boundaries survive as spaces; raw text is the
// fallback for elements whose markup cannot be read.
func (s *Scraper) elementText(ctx context.Context, el browser.Element) string {
	if markup, err := el.HTML(ctx); err == nil {
		if text := utils.FlattenHTML(markup); text != "" {
			return text
		}
	}
	raw, err := el.Text(ctx)
	if err != nil {
		return ""
	}
	return utils.CollapseSpace(raw)
}
