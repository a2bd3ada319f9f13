package main

import (
	"context"
	"net/http"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/parkpulse/parkpulse-backend/api/routes"
	"github.com/parkpulse/parkpulse-backend/internal/garage"
	"github.com/parkpulse/parkpulse-backend/internal/orchestrator"
	"github.com/parkpulse/parkpulse-backend/internal/pricing"
	"github.com/parkpulse/parkpulse-backend/internal/simulation"
	"github.com/parkpulse/parkpulse-backend/pkg/clock"
	"github.com/parkpulse/parkpulse-backend/pkg/config"
	"github.com/parkpulse/parkpulse-backend/pkg/logger"
	"github.com/parkpulse/parkpulse-backend/pkg/metrics"
)

func main() {
	logg := logger.New(logger.Options{ServiceName: "api"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "api",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	pricer, err := pricing.NewEngine(pricing.DefaultConfig())
	if err != nil {
		logg.Error(context.Background(), "failed to build pricing engine", err)
		os.Exit(1)
	}

	registry := prometheus.NewRegistry()
	simMetrics := metrics.NewSimulationMetrics(registry)

	orch, err := orchestrator.New(orchestrator.Config{
		Layout:            garage.LayoutConfig{Rows: cfg.Garage.Rows, Cols: cfg.Garage.Cols},
		DayStart:          cfg.Garage.DayStartHour,
		DayEnd:            cfg.Garage.DayEnd(),
		EventHour:         cfg.Garage.EventHour,
		HoldTTL:           cfg.Garage.HoldTTL,
		TimeStep:          cfg.Playback.TimeStep,
		SimulationEnabled: cfg.Simulation.Enabled,
	}, simulation.FromSettings(cfg.Simulation, cfg.Garage.DayEnd()), cfg.Simulation.Seed, pricer, clock.NewSystem(), logg, simMetrics)
	if err != nil {
		logg.Error(context.Background(), "failed to build orchestrator", err)
		os.Exit(1)
	}

	tickerCtx, stopTicker := context.WithCancel(context.Background())
	defer stopTicker()
	go runTicker(tickerCtx, orch, cfg.Playback.TickInterval)

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.App.Port
	}
	addr := ":" + port
	ctx := logg.WithFields(context.Background(), map[string]any{
		"env":  cfg.App.Env,
		"addr": addr,
	})
	logg.Info(ctx, "starting api server")

	server := &http.Server{
		Addr:    addr,
		Handler: routes.NewRouter(cfg, logg, orch, registry),
	}

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logg.Error(ctx, "api server stopped unexpectedly", err)
		os.Exit(1)
	}
}

// runTicker drives playback: one orchestrator tick per wall interval.
// The orchestrator itself decides whether the tick does anything.
func runTicker(ctx context.Context, orch *orchestrator.Orchestrator, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			orch.Tick(ctx)
		}
	}
}
