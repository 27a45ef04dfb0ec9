package services

import (
	"context"
	"fmt"
	"time"

	"venue-scraper/config"
	"venue-scraper/models"
	"venue-scraper/utils"
)

// CityScraper produces one city's venues.
type CityScraper interface {
	ScrapeCity(ctx context.Context, city string) models.CityResult
}

// ProgressSink persists the cumulative dataset and progress snapshot.
type ProgressSink interface {
	Persist(progress *models.RunProgress) error
}

// Runner drives a sequential run over the configured cities, handing the
// cumulative progress to the sink after every city so a crash loses at most
// one city's work.
type Runner struct {
	cfg     *config.Config
	logger  *utils.Logger
	scraper CityScraper
	sink    ProgressSink
}

func NewRunner(cfg *config.Config, logger *utils.Logger, scraper CityScraper, sink ProgressSink) *Runner {
	return &Runner{
		cfg:     cfg,
		logger:  logger,
		scraper: scraper,
		sink:    sink,
	}
}

// Run processes every configured city in order. Failed cities are recorded
// and skipped over; the run itself fails only when it yields no data at all,
// is cancelled, or cannot persist what it collected.
func (r *Runner) Run(ctx context.Context) (*models.RunProgress, error) {
	progress := &models.RunProgress{}
	var persistErr error

	r.logger.Info("[runner] Starting run — %d cities", len(r.cfg.Cities))

	for i, city := range r.cfg.Cities {
		if ctx.Err() != nil {
			break
		}

		result := r.scraper.ScrapeCity(ctx, city)
		if result.Failed() {
			r.logger.Error("[runner] City %s failed: %v", city, result.Err)
		} else {
			r.logger.Info("[runner] City %s done — %d venues (%d/%d cities)",
				city, len(result.Records), i+1, len(r.cfg.Cities))
		}
		progress.Apply(result)

		if err := r.sink.Persist(progress); err != nil {
			persistErr = err
			r.logger.Error("[runner] Persisting progress failed: %v", err)
		}

		if i < len(r.cfg.Cities)-1 {
			select {
			case <-time.After(r.cfg.InterCityDelay):
			case <-ctx.Done():
			}
		}
	}

	r.logger.Info("[runner] Run finished — %d venues, %d cities scraped, %d failed",
		len(progress.Records), len(progress.ScrapedCities), len(progress.FailedCities))

	if err := ctx.Err(); err != nil {
		return progress, fmt.Errorf("run cancelled: %w", err)
	}
	if len(progress.ScrapedCities) == 0 && len(progress.Records) == 0 {
		return progress, fmt.Errorf("run produced no data: all %d cities failed", len(progress.FailedCities))
	}
	if persistErr != nil {
		return progress, fmt.Errorf("run finished but persistence failed: %w", persistErr)
	}
	return progress, nil
}

// RunCity scrapes a single city without touching persisted state. The
// control surface uses it as a diagnostic probe.
func (r *Runner) RunCity(ctx context.Context, city string) models.CityResult {
	return r.scraper.ScrapeCity(ctx, city)
}
