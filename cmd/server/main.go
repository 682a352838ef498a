package main

import (
	"fmt"
	"log"
	"net/http"

	"github.com/gorilla/mux"

	fxvanilla "github.com/jwaldner/fxvanilla/fxvanilla_lib"
	"github.com/jwaldner/fxvanilla/internal/config"
	"github.com/jwaldner/fxvanilla/internal/handlers"
	"github.com/jwaldner/fxvanilla/internal/logger"
)

func main() {
	cfg := config.Load()

	// Initialize logging with config level and file path
	if err := logger.InitWithConfig(cfg.Logging.LogLevel, cfg.Logging.LogFile); err != nil {
		log.Fatalf("Failed to initialize logging: %v", err)
	}
	logger.Always.Printf("FX vanilla pricer starting - Port: %s, log level: %s", cfg.Port, logger.Level())

	if cfg.Logging.LogLevel == "verbose" {
		fmt.Printf("VERBOSE LOGGING ENABLED - every priced request will be logged to %s\n", cfg.Logging.LogFile)
	}

	// Validate the configured defaults once so a bad config.yaml fails fast
	if _, err := fxvanilla.FXVanillaPrice(cfg.Defaults.Spot, cfg.Defaults.Strike, cfg.Defaults.TimeToExpiry,
		cfg.Defaults.DomesticRate, cfg.Defaults.ForeignRate, cfg.Defaults.Volatility, cfg.Defaults.OptionType); err != nil {
		log.Fatalf("Invalid defaults in configuration: %v", err)
	}

	executionMode := cfg.Engine.ExecutionMode
	if executionMode == "" {
		executionMode = "auto" // fallback to auto if not set
	}
	engine := fxvanilla.NewEngineWithConfig(executionMode, cfg.Engine.Workers, cfg.Engine.BatchSize)
	logger.Always.Printf("EXECUTION MODE: %s (%d workers, parallel from %d contracts)",
		engine.Mode(), engine.Workers(), cfg.Engine.BatchSize)

	pricingHandler := handlers.NewPricingHandler(engine, cfg)

	// Setup router
	r := mux.NewRouter()
	pricingHandler.RegisterRoutes(r)

	// Start server
	fmt.Printf("Server starting on http://localhost:%s\n", cfg.Port)
	logger.Always.Printf("Server starting on http://localhost:%s", cfg.Port)
	logger.Info.Printf("HTTP server started on port %s", cfg.Port)

	if err := http.ListenAndServe("0.0.0.0:"+cfg.Port, r); err != nil {
		log.Fatal("Server failed to start:", err)
	}
}
