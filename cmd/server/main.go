package main

import (
	"context"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/mmcdole/gofeed"

	"github.com/aristath/portfolio-analyzer/internal/catalog"
	"github.com/aristath/portfolio-analyzer/internal/clients/yahoo"
	"github.com/aristath/portfolio-analyzer/internal/config"
	"github.com/aristath/portfolio-analyzer/internal/database"
	"github.com/aristath/portfolio-analyzer/internal/modules/analysis"
	analysishandlers "github.com/aristath/portfolio-analyzer/internal/modules/analysis/handlers"
	"github.com/aristath/portfolio-analyzer/internal/modules/insights"
	insightshandlers "github.com/aristath/portfolio-analyzer/internal/modules/insights/handlers"
	"github.com/aristath/portfolio-analyzer/internal/modules/stocks"
	stockshandlers "github.com/aristath/portfolio-analyzer/internal/modules/stocks/handlers"
	"github.com/aristath/portfolio-analyzer/internal/scheduler"
	"github.com/aristath/portfolio-analyzer/internal/server"
	"github.com/aristath/portfolio-analyzer/internal/services"
	"github.com/aristath/portfolio-analyzer/pkg/logger"
)

const indexRefreshSchedule = "@every 1m"

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		// Logger is not configured yet, build a default one just for this
		bootLog := logger.New(logger.Config{Level: "info", Pretty: true})
		bootLog.Fatal().Err(err).Msg("Failed to load configuration")
	}

	// Initialize logger
	log := logger.New(logger.Config{
		Level:  cfg.LogLevel,
		Pretty: cfg.DevMode,
	})

	log.Info().Msg("Starting portfolio analyzer")

	// Initialize catalog database
	db, err := database.New(database.Config{
		Path: filepath.Join(cfg.DataDir, "catalog.db"),
		Name: "catalog",
	})
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize catalog database")
	}
	defer db.Close()

	if err := db.ExecSchema(catalog.Schema); err != nil {
		log.Fatal().Err(err).Msg("Failed to apply catalog schema")
	}

	// Build the in-memory catalog, seeding defaults on first run
	cat, err := catalog.Load(db.Conn(), log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load security catalog")
	}
	log.Info().Int("securities", cat.Len()).Msg("Security catalog loaded")

	// Market data client
	yahooClient := yahoo.NewClient(log)

	// Services
	analysisService := analysis.NewService(cat, yahooClient, cfg.QuoteLookback, log)
	stocksService := stocks.NewService(yahooClient, cat, log)

	quoteCache := services.NewQuoteCache(5 * time.Minute)
	insightsService := insights.NewService(yahooClient, quoteCache, gofeed.NewParser(), insights.Config{
		IndexSymbols: cfg.IndexSymbols,
		MoverSymbols: cfg.MoverSymbols,
		FeedURL:      cfg.NewsFeedURL,
		NewsLimit:    cfg.NewsLimit,
		LookbackDays: cfg.QuoteLookback,
	}, log)

	// Scheduler keeps the index quote cache warm
	sched := scheduler.New(log)
	err = sched.AddJob(indexRefreshSchedule, scheduler.FuncJob{
		JobName: "refresh_index_cache",
		Fn: func() error {
			ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
			defer cancel()
			return insightsService.RefreshIndexCache(ctx)
		},
	})
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to register index refresh job")
	}
	sched.Start()
	defer sched.Stop()

	// HTTP server
	srv := server.New(server.Config{
		Port:    cfg.Port,
		Log:     log,
		Catalog: cat,
		System:  server.NewSystemHandlers(log, cfg.DataDir, db),
		DevMode: cfg.DevMode,
	},
		analysishandlers.NewHandler(analysisService, log),
		stockshandlers.NewHandler(stocksService, log),
		insightshandlers.NewHandler(insightsService, log),
	)

	// Start server in goroutine
	go func() {
		if err := srv.Start(); err != nil {
			log.Fatal().Err(err).Msg("Failed to start server")
		}
	}()

	log.Info().Int("port", cfg.Port).Msg("Server started successfully")

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Shutting down server...")

	// Graceful shutdown
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("Server forced to shutdown")
	}

	log.Info().Msg("Server stopped")
}
