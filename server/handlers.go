package server

import (
	"net/http"
	"os"
	"strings"

	"github.com/gin-gonic/gin"
)

func (s *Server) handleDashboard(c *gin.Context) {
	c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(dashboardHTML))
}

// handleStartScraping runs the full pipeline synchronously. The run gate
// turns overlapping triggers into 409s instead of queueing them.
func (s *Server) handleStartScraping(c *gin.Context) {
	if !s.gate.TryAcquire() {
		c.JSON(http.StatusConflict, gin.H{"error": "a scraping run is already active"})
		return
	}
	defer s.gate.Release()

	s.logger.Info("[server] Full run triggered by %s", c.ClientIP())

	progress, err := s.runner.Run(s.appCtx)
	snap := progress.Snapshot()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":          err.Error(),
			"scraped_cities": snap.ScrapedCities,
			"failed_cities":  snap.FailedCities,
			"total_venues":   snap.TotalVenues,
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":        "scraping completed",
		"scraped_cities": snap.ScrapedCities,
		"failed_cities":  snap.FailedCities,
		"total_venues":   snap.TotalVenues,
		"last_updated":   snap.LastUpdated,
	})
}

// handleStatus reports the persisted snapshot. The store is refreshed after
// every completed city, so mid-run reads lag by at most one city.
func (s *Server) handleStatus(c *gin.Context) {
	snap, err := s.store.LoadProgress()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"running":        s.gate.Active(),
		"scraped_cities": snap.ScrapedCities,
		"failed_cities":  snap.FailedCities,
		"total_venues":   snap.TotalVenues,
		"last_updated":   snap.LastUpdated,
	})
}

func (s *Server) handleDownloadCSV(c *gin.Context) {
	path := s.cfg.ExportPath()
	if _, err := os.Stat(path); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "no export available yet, run the scraper first"})
		return
	}
	c.FileAttachment(path, "venues_data.csv")
}

// handleTestCity crawls a single city as a diagnostic probe. Nothing is
// persisted; the response carries a small sample of what was found.
func (s *Server) handleTestCity(c *gin.Context) {
	city := strings.ToLower(strings.TrimSpace(c.Param("city")))
	if city == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing city"})
		return
	}

	if !s.gate.TryAcquire() {
		c.JSON(http.StatusConflict, gin.H{"error": "a scraping run is already active"})
		return
	}
	defer s.gate.Release()

	s.logger.Info("[server] Test run for %s triggered by %s", city, c.ClientIP())

	res := s.runner.RunCity(s.appCtx, city)
	if res.Failed() {
		c.JSON(http.StatusInternalServerError, gin.H{"city": city, "error": res.Err.Error()})
		return
	}

	sample := res.Records
	if len(sample) > 3 {
		sample = sample[:3]
	}
	c.JSON(http.StatusOK, gin.H{
		"city":         city,
		"venues_found": len(res.Records),
		"sample":       sample,
	})
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
