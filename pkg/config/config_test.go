package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() returned unexpected error: %v", err)
	}

	if cfg.App.Env != "dev" {
		t.Fatalf("expected App.Env to default to dev, got %q", cfg.App.Env)
	}
	if !cfg.App.IsDev() {
		t.Fatalf("expected IsDev for default env")
	}
	if cfg.Garage.Rows != 10 || cfg.Garage.Cols != 10 {
		t.Fatalf("unexpected garage dimensions %dx%d", cfg.Garage.Rows, cfg.Garage.Cols)
	}
	if cfg.Garage.HoldTTL != 30*time.Second {
		t.Fatalf("expected 30s hold TTL, got %v", cfg.Garage.HoldTTL)
	}
	if got := cfg.Garage.DayEnd(); got < 23.98 || got > 23.99 {
		t.Fatalf("expected day end near 23.983, got %v", got)
	}
	if cfg.Playback.TickInterval != 500*time.Millisecond {
		t.Fatalf("expected 500ms tick interval, got %v", cfg.Playback.TickInterval)
	}
	if !cfg.Simulation.Enabled {
		t.Fatalf("expected simulation enabled by default")
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("PARKPULSE_GARAGE_ROWS", "4")
	t.Setenv("PARKPULSE_SIM_SEED", "42")
	t.Setenv("PARKPULSE_HOLD_TTL", "5s")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() returned unexpected error: %v", err)
	}
	if cfg.Garage.Rows != 4 {
		t.Fatalf("expected 4 rows, got %d", cfg.Garage.Rows)
	}
	if cfg.Simulation.Seed != 42 {
		t.Fatalf("expected seed 42, got %d", cfg.Simulation.Seed)
	}
	if cfg.Garage.HoldTTL != 5*time.Second {
		t.Fatalf("expected 5s hold TTL, got %v", cfg.Garage.HoldTTL)
	}
}

func TestLoadRejectsInvalidDay(t *testing.T) {
	t.Setenv("PARKPULSE_DAY_START_HOUR", "23")
	t.Setenv("PARKPULSE_DAY_END_HOUR", "6")
	t.Setenv("PARKPULSE_DAY_END_MINUTE", "0")

	if _, err := Load(); err == nil {
		t.Fatalf("expected error when day start is after day end")
	}
}
