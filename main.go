package main

import (
	"context"
	"log"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"github.com/content-audit/backend/analyzer"
	"github.com/content-audit/backend/config"
	"github.com/content-audit/backend/extract"
	"github.com/content-audit/backend/history"
	"github.com/content-audit/backend/llm"
	"github.com/content-audit/backend/logging"
	"github.com/content-audit/backend/metrics"
	"github.com/content-audit/backend/middleware"
	"github.com/content-audit/backend/report"
	"github.com/content-audit/backend/serp"
	"github.com/content-audit/backend/stats"
)

const serviceName = "content-audit"

func loadEnv() {
	// Try .env.development first (local development), then regular .env.
	if err := godotenv.Load(".env.development"); err != nil {
		if err := godotenv.Load(); err != nil {
			log.Println("No .env file found, using environment variables")
		}
	}
}

func main() {
	loadEnv()

	cfg := config.Load()
	logger := logging.New(serviceName, cfg.LogLevel)

	gin.SetMode(cfg.GinMode)

	extractor := extract.New(cfg.FetchTimeout, cfg.FetchUserAgent, cfg.ContentCacheTTL, cfg.ContentCacheSize)
	scraper := serp.NewScraper(serp.Config{
		Endpoint:        cfg.SearchEndpoint,
		UserAgent:       cfg.FetchUserAgent,
		Timeout:         cfg.FetchTimeout,
		CompetitorLimit: cfg.CompetitorLimit,
		RatePerSecond:   cfg.OutboundRate,
		Burst:           cfg.OutboundBurst,
	}, logger)

	engine := analyzer.NewEngine(logger)

	generator := llm.NewClient(cfg.LLMBaseURL, cfg.LLMModel, cfg.LLMAPIKey, 30*time.Second)
	suggestor := analyzer.NewSuggestor(generator)

	statsStorage, err := stats.NewStorage(cfg.DataDir)
	if err != nil {
		logger.Error("failed to initialize stats storage", "error", err)
		os.Exit(1)
	}

	var repo *history.Repository
	if cfg.HistoryEnabled && cfg.PostgresDSN != "" {
		db, err := history.OpenDB(cfg.PostgresDSN)
		if err != nil {
			logger.Error("failed to open history database", "error", err)
			os.Exit(1)
		}
		defer db.Close()

		repo = history.NewRepository(db)
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		if err := repo.EnsureSchema(ctx); err != nil {
			cancel()
			logger.Error("failed to ensure history schema", "error", err)
			os.Exit(1)
		}
		cancel()

		go shareLinkCleanup(context.Background(), repo, logger, time.Hour)
	} else {
		logger.Info("history persistence disabled")
	}

	m := metrics.New(serviceName)

	srv := &server{
		cfg:       cfg,
		log:       logger,
		engine:    engine,
		extractor: extractor,
		scraper:   scraper,
		suggestor: suggestor,
		repo:      repo,
		exporter:  report.NewExporter(),
		stats:     statsStorage,
		metrics:   m,
	}

	rateLimiter := middleware.NewRateLimiter(cfg.RateLimitPerSecond, cfg.RateLimitBurst)

	r := gin.New()
	r.Use(gin.Logger())
	r.Use(middleware.ErrorHandler(logger))
	r.Use(rateLimiter.RateLimit())
	r.Use(m.Middleware(serviceName))
	r.Use(corsMiddleware())

	r.GET("/metrics", m.Handler())

	api := r.Group("/api")
	{
		api.GET("/health", srv.health)
		api.POST("/analyze", srv.analyze)
		api.POST("/compare", srv.compare)
		api.POST("/suggestions", srv.suggestions)
		api.POST("/report", srv.exportReport)
		api.GET("/statistics", srv.serviceStatistics)

		api.GET("/history", srv.listHistory)
		api.GET("/history/progress", srv.historyProgress)
		api.GET("/history/statistics", srv.historyStatistics)

		api.POST("/share", srv.createShareLink)
		api.GET("/share/:token", srv.resolveShareLink)
	}

	logger.Info("server starting", "port", cfg.Port)
	if err := r.Run(":" + cfg.Port); err != nil {
		logger.Error("server exited", "error", err)
		os.Exit(1)
	}
}

// shareLinkCleanup purges expired share tokens on an interval.
func shareLinkCleanup(ctx context.Context, repo *history.Repository, logger *slog.Logger, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			n, err := repo.DeleteExpiredShareLinks(ctx)
			if err != nil {
				logger.Error("share link cleanup failed", "error", err)
				continue
			}
			if n > 0 {
				logger.Info("expired share links removed", "count", n)
			}
		}
	}
}

func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, X-CSRF-Token, Authorization, accept, origin, Cache-Control, X-Requested-With")

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}
