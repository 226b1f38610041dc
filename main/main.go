package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/papana-farm/metdash/internal/app"
	"github.com/papana-farm/metdash/internal/config"
	"github.com/papana-farm/metdash/internal/services/metrics"
	"github.com/papana-farm/metdash/pkg/logger"
)

const serviceName = "metdash"

// @title Papana Farm Hourly Weather Dashboard API
// @version 1.0
// @description Hourly agro-meteorological observations for the farm's field locations.
// @BasePath /api/v1
func main() {
	if err := godotenv.Load(); err != nil {
		log.Printf("No .env file found: %v", err)
	}

	cfg, err := config.NewConfig()
	if err != nil {
		log.Panicf("failed to load configuration: %v", err)
	}

	l, err := logger.NewLogger(cfg.LogsPath, serviceName)
	if err != nil {
		log.Panicf("failed to create logger: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	application := app.New(*cfg, l, metrics.NewMetrics(serviceName))

	if err := application.Start(ctx); err != nil {
		l.Error().Err(err).Msg("application failed")
		stop()
		os.Exit(1)
	}
}
