package server

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"venue-scraper/config"
	"venue-scraper/models"
	"venue-scraper/storage"
	"venue-scraper/utils"
)

// Runner is the slice of the run orchestration the control surface needs.
type Runner interface {
	Run(ctx context.Context) (*models.RunProgress, error)
	RunCity(ctx context.Context, city string) models.CityResult
}

// Server exposes the scraping pipeline over HTTP: a dashboard, trigger
// endpoints, progress reporting, and the CSV export.
type Server struct {
	cfg    *config.Config
	logger *utils.Logger
	runner Runner
	store  *storage.Store
	gate   *utils.RunGate
	engine *gin.Engine

	// appCtx outlives individual requests, so a dropped client connection
	// does not kill a crawl in flight.
	appCtx context.Context
}

// New builds the server and registers its routes. The given context bounds
// every crawl the server starts.
func New(appCtx context.Context, cfg *config.Config, logger *utils.Logger, runner Runner, store *storage.Store) *Server {
	if !cfg.Debug {
		gin.SetMode(gin.ReleaseMode)
	}
	engine := gin.New()
	engine.Use(gin.Recovery(), corsMiddleware())

	s := &Server{
		cfg:    cfg,
		logger: logger,
		runner: runner,
		store:  store,
		gate:   utils.NewRunGate(),
		engine: engine,
		appCtx: appCtx,
	}

	engine.GET("/", s.handleDashboard)
	engine.POST("/start_scraping", s.handleStartScraping)
	engine.GET("/status", s.handleStatus)
	engine.GET("/download_csv", s.handleDownloadCSV)
	engine.POST("/test_city/:city", s.handleTestCity)
	engine.GET("/health", s.handleHealth)

	return s
}

// Handler returns the underlying router, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.engine
}

// Start blocks serving HTTP on the configured port.
func (s *Server) Start() error {
	s.logger.Info("[server] Listening on :%s", s.cfg.Port)
	return s.engine.Run(":" + s.cfg.Port)
}

func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Content-Type")
		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	}
}
