package simulation

import (
	"fmt"

	"github.com/parkpulse/parkpulse-backend/internal/pricing"
	"github.com/parkpulse/parkpulse-backend/pkg/config"
	"go.uber.org/multierr"
)

// Config carries the demand-process tuning. All rates are hazard rates
// per simulated hour, so outcomes do not depend on tick granularity or
// playback speed. The departure and burst constants are calibrated for
// a lively demo day, not derived from a model; treat them as inputs.
type Config struct {
	// TargetOccupancyCurve maps hour-of-day to the fraction of the
	// garage that should be full for a realistic event-day pattern.
	// Distinct from the demand forecast the pricing engine reads.
	TargetOccupancyCurve pricing.Curve

	// EarlyDepartureRate applies during normal hours,
	// EventWindowDepartureRate inside [EventWindowStart, EventWindowEnd)
	// (occupants stay through the game) and PostEventDepartureRate
	// afterwards (mass exodus).
	EarlyDepartureRate       float64
	EventWindowDepartureRate float64
	PostEventDepartureRate   float64
	EventWindowStart         float64
	EventWindowEnd           float64

	// CatchUpRate is the fraction of the unit deficit closed per
	// simulated hour; MaxBurstAttempts caps booking attempts per tick.
	CatchUpRate      float64
	MaxBurstAttempts int

	// DurationWeights index duration-1 for 1..4 hour bookings.
	// EventSpanBoost multiplies the weight of durations that reach past
	// the event window's end when booking inside the window.
	DurationWeights [4]float64
	EventSpanBoost  float64

	// DayEnd bounds booking durations.
	DayEnd float64
}

// DefaultTargetOccupancyCurve is the event-day fill pattern: near-empty
// at opening, 95% by the 7 PM game, draining overnight.
func DefaultTargetOccupancyCurve() pricing.Curve {
	return pricing.MustCurve(
		pricing.Breakpoint{X: 6, Y: 0.00},
		pricing.Breakpoint{X: 10, Y: 0.10},
		pricing.Breakpoint{X: 14, Y: 0.30},
		pricing.Breakpoint{X: 17, Y: 0.60},
		pricing.Breakpoint{X: 18, Y: 0.85},
		pricing.Breakpoint{X: 19, Y: 0.95},
		pricing.Breakpoint{X: 21, Y: 0.90},
		pricing.Breakpoint{X: 22, Y: 0.50},
		pricing.Breakpoint{X: 23, Y: 0.15},
	)
}

// DefaultConfig returns the demo-day tuning.
func DefaultConfig() Config {
	return Config{
		TargetOccupancyCurve:     DefaultTargetOccupancyCurve(),
		EarlyDepartureRate:       0.4,
		EventWindowDepartureRate: 0.12,
		PostEventDepartureRate:   3.0,
		EventWindowStart:         17,
		EventWindowEnd:           21.5,
		CatchUpRate:              10.0,
		MaxBurstAttempts:         8,
		DurationWeights:          [4]float64{0.15, 0.35, 0.30, 0.20},
		EventSpanBoost:           3.0,
		DayEnd:                   23 + 59.0/60.0,
	}
}

// FromSettings overlays environment-driven knobs on the defaults.
func FromSettings(s config.SimulationConfig, dayEnd float64) Config {
	cfg := DefaultConfig()
	cfg.EarlyDepartureRate = s.EarlyDepartureRate
	cfg.EventWindowDepartureRate = s.EventWindowDepartureRate
	cfg.PostEventDepartureRate = s.PostEventDepartureRate
	cfg.EventWindowStart = s.EventWindowStart
	cfg.EventWindowEnd = s.EventWindowEnd
	cfg.CatchUpRate = s.CatchUpRate
	cfg.MaxBurstAttempts = s.MaxBurstAttempts
	cfg.DayEnd = dayEnd
	return cfg
}

// Validate checks the tuning and reports every problem at once.
func (c Config) Validate() error {
	var err error
	if c.TargetOccupancyCurve.IsZero() {
		err = multierr.Append(err, fmt.Errorf("target occupancy curve is required"))
	}
	if c.EarlyDepartureRate < 0 || c.EventWindowDepartureRate < 0 || c.PostEventDepartureRate < 0 {
		err = multierr.Append(err, fmt.Errorf("departure rates must be non-negative"))
	}
	if c.EventWindowStart >= c.EventWindowEnd {
		err = multierr.Append(err, fmt.Errorf("event window start %.2f must precede end %.2f", c.EventWindowStart, c.EventWindowEnd))
	}
	if c.CatchUpRate <= 0 {
		err = multierr.Append(err, fmt.Errorf("catch-up rate must be positive, got %.2f", c.CatchUpRate))
	}
	if c.MaxBurstAttempts < 1 {
		err = multierr.Append(err, fmt.Errorf("max burst attempts must be at least 1, got %d", c.MaxBurstAttempts))
	}
	var weightSum float64
	for _, w := range c.DurationWeights {
		if w < 0 {
			err = multierr.Append(err, fmt.Errorf("duration weights must be non-negative"))
			break
		}
		weightSum += w
	}
	if weightSum == 0 {
		err = multierr.Append(err, fmt.Errorf("duration weights must not all be zero"))
	}
	if c.EventSpanBoost < 1 {
		err = multierr.Append(err, fmt.Errorf("event span boost must be at least 1, got %.2f", c.EventSpanBoost))
	}
	return err
}
