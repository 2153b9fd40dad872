package main

import (
	stdlog "log"
	"net/http"
	"os"
	"time"

	"github.com/patrickmn/go-cache"
	"github.com/shopspring/decimal"
	"golang.org/x/time/rate"

	"github.com/username/fasbooks/src/assembler"
	"github.com/username/fasbooks/src/classifier"
	"github.com/username/fasbooks/src/config"
	"github.com/username/fasbooks/src/engine"
	"github.com/username/fasbooks/src/handlers"
	"github.com/username/fasbooks/src/logger"
	"github.com/username/fasbooks/src/services"
	"github.com/username/fasbooks/src/standards"
	"github.com/username/fasbooks/src/visualization"
)

func main() {
	config.LoadConfig()
	logger.InitLogger(config.Cfg.LogLevel)
	logger.L.Info("Fasbooks backend server starting...")

	// Monetary values are encoded as JSON numbers, not quoted strings.
	decimal.MarshalJSONWithoutQuotes = true

	logger.L.Info("Loading standards catalog...", "path", config.Cfg.StandardsPath)
	catalog, err := standards.Load(config.Cfg.StandardsPath, config.Cfg.MinKeywordOverlap)
	if err != nil {
		logger.L.Error("Failed to load standards catalog", "error", err)
		os.Exit(1)
	}
	logger.L.Info("Standards catalog loaded", "standardCount", len(catalog.All()))

	logger.L.Info("Initializing response cache...")
	responseCache := cache.New(config.Cfg.StandardsCacheTTL, 2*config.Cfg.StandardsCacheTTL)

	logger.L.Info("Initializing services and handlers...")
	processingService := services.NewProcessingService(
		catalog,
		classifier.NewClassifier(catalog),
		engine.NewEngine(),
		assembler.NewAssembler(),
		visualization.NewChartDataRenderer(),
	)

	processHandler := handlers.NewProcessHandler(processingService, config.Cfg.MaxRequestBytes)
	standardsHandler := handlers.NewStandardsHandler(processingService, responseCache, config.Cfg.StandardsCacheTTL)

	logger.L.Info("Configuring routes...")
	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/process", processHandler.HandleProcess)
	mux.HandleFunc("GET /api/standards", standardsHandler.HandleGetStandards)
	mux.HandleFunc("GET /health", handlers.HandleHealth)

	logger.L.Info("Applying global middleware...")
	limiter := rate.NewLimiter(rate.Every(config.Cfg.RateLimitInterval), config.Cfg.RateLimitBurst)
	finalHandler := handlers.CORSMiddleware(config.Cfg.AllowedOrigins)(
		handlers.RateLimitMiddleware(limiter)(
			handlers.RequestIDMiddleware(mux)))

	serverAddr := ":" + config.Cfg.Port
	server := &http.Server{
		Addr:         serverAddr,
		Handler:      finalHandler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	logger.L.Info("Server starting", "address", serverAddr)
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.L.Error("Failed to start server", "error", err)
		stdlog.Fatalf("Failed to start server: %v", err)
	} else if err == http.ErrServerClosed {
		logger.L.Info("Server stopped gracefully.")
	}
}
