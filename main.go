package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"venue-scraper/browser"
	"venue-scraper/config"
	"venue-scraper/scraper/khelomore"
	"venue-scraper/server"
	"venue-scraper/services"
	"venue-scraper/storage"
	"venue-scraper/utils"
)

func main() {
	once := flag.Bool("once", false, "run the full scrape once and exit")
	city := flag.String("city", "", "scrape a single city and exit (no persistence)")
	insights := flag.Bool("insights", false, "print the insight report over the stored dataset and exit")
	flag.Parse()

	cfg := config.Load()
	logger := utils.NewLogger(cfg.Debug)

	logger.Info("=== Venue Scraping System starting ===")
	logger.Info("Config — cities: %d | pagination budget: %d | item retries: %d | output: %s",
		len(cfg.Cities), cfg.MaxPaginationAttempts, cfg.MaxItemRetries, cfg.OutputDir)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	store, err := storage.NewStore(cfg, logger)
	if err != nil {
		logger.Error("Failed to initialise storage: %v", err)
		logger.Error("If PostgreSQL is configured, make sure it is running: docker compose up -d")
		os.Exit(1)
	}
	defer store.Close()

	if *insights {
		printInsights(logger, store)
		return
	}

	chrome := browser.New(cfg, logger)
	defer chrome.Close()

	scraper := khelomore.New(cfg, logger, chrome)
	runner := services.NewRunner(cfg, logger, scraper, store)

	switch {
	case *city != "":
		runCity(ctx, logger, runner, *city)
	case *once:
		runOnce(ctx, cfg, logger, runner)
	default:
		srv := server.New(ctx, cfg, logger, runner, store)
		if err := srv.Start(); err != nil {
			logger.Error("Server stopped: %v", err)
			os.Exit(1)
		}
	}
}

// runCity scrapes one city and prints a short sample, persisting nothing.
func runCity(ctx context.Context, logger *utils.Logger, runner *services.Runner, city string) {
	res := runner.RunCity(ctx, strings.ToLower(strings.TrimSpace(city)))
	if res.Failed() {
		logger.Error("City run failed: %v", res.Err)
		os.Exit(1)
	}

	logger.Info("Scraped %d venues in %s", len(res.Records), res.City)
	for i := range res.Records {
		if i == 3 {
			logger.Info("  and %d more", len(res.Records)-3)
			break
		}
		logger.Info("  %s — %s", res.Records[i].Name, res.Records[i].Price)
	}
}

// runOnce drives the full pipeline once and prints the insight report.
func runOnce(ctx context.Context, cfg *config.Config, logger *utils.Logger, runner *services.Runner) {
	progress, err := runner.Run(ctx)
	if err != nil {
		logger.Error("Run failed: %v", err)
		if len(progress.Records) == 0 {
			os.Exit(1)
		}
	}

	insightSvc := services.NewInsightService(logger)
	report := insightSvc.Generate(progress.Records)
	insightSvc.Print(report)

	fmt.Printf("  Done. Dataset → %s | CSV → %s\n\n", cfg.RecordsPath(), cfg.ExportPath())
}

// printInsights renders the report over whatever the store already holds.
func printInsights(logger *utils.Logger, store *storage.Store) {
	records, err := store.LoadRecords()
	if err != nil {
		logger.Error("Failed to load dataset: %v", err)
		os.Exit(1)
	}
	if len(records) == 0 {
		logger.Warn("No stored venues yet — run the scraper first")
		return
	}

	svc := services.NewInsightService(logger)
	svc.Print(svc.Generate(records))
}
