package config

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
)

const EnvPrefix = "parkpulse"

const (
	AppEnvDev  = "dev"
	AppEnvProd = "production"
)

type Config struct {
	App        AppConfig
	Garage     GarageConfig
	Playback   PlaybackConfig
	Simulation SimulationConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.Garage.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

type AppConfig struct {
	Env          string `envconfig:"PARKPULSE_APP_ENV" default:"dev"`
	Port         string `envconfig:"PARKPULSE_APP_PORT" default:"8080"`
	LogLevel     string `envconfig:"PARKPULSE_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"PARKPULSE_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return a.Env == AppEnvDev
}

func (a AppConfig) IsProd() bool {
	return a.Env == AppEnvProd
}

type GarageConfig struct {
	Rows         int           `envconfig:"PARKPULSE_GARAGE_ROWS" default:"10"`
	Cols         int           `envconfig:"PARKPULSE_GARAGE_COLS" default:"10"`
	EventHour    float64       `envconfig:"PARKPULSE_EVENT_HOUR" default:"19"`
	DayStartHour float64       `envconfig:"PARKPULSE_DAY_START_HOUR" default:"6"`
	DayEndHour   int           `envconfig:"PARKPULSE_DAY_END_HOUR" default:"23"`
	DayEndMinute int           `envconfig:"PARKPULSE_DAY_END_MINUTE" default:"59"`
	HoldTTL      time.Duration `envconfig:"PARKPULSE_HOLD_TTL" default:"30s"`
}

// DayEnd returns the end of the simulated day as a decimal hour.
func (g GarageConfig) DayEnd() float64 {
	return float64(g.DayEndHour) + float64(g.DayEndMinute)/60.0
}

func (g GarageConfig) validate() error {
	if g.Rows <= 0 || g.Cols <= 0 {
		return fmt.Errorf("garage dimensions must be positive, got %dx%d", g.Rows, g.Cols)
	}
	if g.DayStartHour >= g.DayEnd() {
		return fmt.Errorf("day start %.2f must precede day end %.2f", g.DayStartHour, g.DayEnd())
	}
	if g.HoldTTL <= 0 {
		return fmt.Errorf("hold TTL must be positive, got %v", g.HoldTTL)
	}
	return nil
}

type PlaybackConfig struct {
	TickInterval time.Duration `envconfig:"PARKPULSE_TICK_INTERVAL" default:"500ms"`
	TimeStep     float64       `envconfig:"PARKPULSE_TIME_STEP" default:"0.05"`
}

// SimulationConfig carries the tuned demand-process knobs. Departure
// rates are hazard rates per simulated hour so outcomes stay
// independent of tick granularity and playback speed.
type SimulationConfig struct {
	Enabled                  bool    `envconfig:"PARKPULSE_SIM_ENABLED" default:"true"`
	Seed                     int64   `envconfig:"PARKPULSE_SIM_SEED" default:"0"`
	EarlyDepartureRate       float64 `envconfig:"PARKPULSE_SIM_EARLY_DEPARTURE_RATE" default:"0.4"`
	EventWindowDepartureRate float64 `envconfig:"PARKPULSE_SIM_EVENT_WINDOW_DEPARTURE_RATE" default:"0.12"`
	PostEventDepartureRate   float64 `envconfig:"PARKPULSE_SIM_POST_EVENT_DEPARTURE_RATE" default:"3.0"`
	EventWindowStart         float64 `envconfig:"PARKPULSE_SIM_EVENT_WINDOW_START" default:"17"`
	EventWindowEnd           float64 `envconfig:"PARKPULSE_SIM_EVENT_WINDOW_END" default:"21.5"`
	CatchUpRate              float64 `envconfig:"PARKPULSE_SIM_CATCH_UP_RATE" default:"10.0"`
	MaxBurstAttempts         int     `envconfig:"PARKPULSE_SIM_MAX_BURST_ATTEMPTS" default:"8"`
}
