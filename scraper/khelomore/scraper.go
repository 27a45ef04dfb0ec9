package khelomore

import (
	"context"
	"errors"
	"time"

	"venue-scraper/browser"
	"venue-scraper/config"
	"venue-scraper/utils"
)

// errItemGone signals that a fresh enumeration of the listing no longer
// reaches the requested item index. The item is skipped without burning
// its retry budget.
var errItemGone = errors.New("listing item no longer present")

// PageSource mints fresh browser pages. *browser.Chrome satisfies it; tests
// substitute scripted pages.
type PageSource interface {
	NewPage() (browser.Page, error)
}

// Scraper walks the KheloMore city listings and extracts venue records.
type Scraper struct {
	cfg    *config.Config
	logger *utils.Logger
	pages  PageSource
	pacer  *utils.Pacer
	retry  *utils.RetryConfig
}

// New creates a ready-to-use KheloMore Scraper.
func New(cfg *config.Config, logger *utils.Logger, pages PageSource) *Scraper {
	return &Scraper{
		cfg:    cfg,
		logger: logger,
		pages:  pages,
		pacer:  utils.NewPacer(cfg.PacingDelay),
		retry: &utils.RetryConfig{
			MaxAttempts: cfg.NavRetries,
			BaseDelay:   cfg.RetryBaseDelay,
			Logger:      logger,
		},
	}
}

// settle gives the page time to re-render after an interaction.
func (s *Scraper) settle(ctx context.Context) {
	select {
	case <-time.After(s.cfg.SettleDelay):
	case <-ctx.Done():
	}
}
