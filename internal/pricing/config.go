package pricing

import (
	"fmt"

	"github.com/parkpulse/parkpulse-backend/pkg/enums"
	"go.uber.org/multierr"
)

// PerUnitType holds one value per unit type. Closed struct fields (not a
// string-keyed map) so a new variant cannot silently fall through.
type PerUnitType struct {
	Standard   float64
	EV         float64
	Motorcycle float64
}

// For returns the value for the given unit type.
func (p PerUnitType) For(t enums.UnitType) (float64, error) {
	switch t {
	case enums.UnitTypeStandard:
		return p.Standard, nil
	case enums.UnitTypeEV:
		return p.EV, nil
	case enums.UnitTypeMotorcycle:
		return p.Motorcycle, nil
	default:
		return 0, fmt.Errorf("no value configured for unit type %q", t)
	}
}

// PerZone holds one value per garage zone.
type PerZone struct {
	A float64
	B float64
	C float64
}

// For returns the value for the given zone.
func (p PerZone) For(z enums.Zone) (float64, error) {
	switch z {
	case enums.ZoneA:
		return p.A, nil
	case enums.ZoneB:
		return p.B, nil
	case enums.ZoneC:
		return p.C, nil
	default:
		return 0, fmt.Errorf("no value configured for zone %q", z)
	}
}

// Config carries every table the pricing engine reads. All curves are
// static configuration; nothing here is learned or mutated at runtime.
type Config struct {
	BasePrices       PerUnitType
	ElasticityByType PerUnitType
	ElasticityByZone PerZone

	// Timing modifiers applied to elasticity when the booking lead
	// time is known.
	LastMinuteElasticityModifier float64
	AdvanceElasticityModifier    float64

	EventMultiplier float64
	EventHour       float64

	PriceFloor   float64
	PriceCeiling float64

	// OccupancyCurve maps occupancy fraction (0..1) to a multiplier.
	OccupancyCurve Curve
	// TimeCurve maps signed hours-before-event to a multiplier;
	// negative X means after the event has started.
	TimeCurve Curve
	// DemandCurve maps hour-of-day to the forecast demand factor.
	DemandCurve Curve

	LocationMultipliers PerZone
}

// DefaultConfig returns the event-day tables: a World Cup game at 7 PM,
// scarcity pricing invisible below 50% occupancy and escalating to 4x
// at a full garage.
func DefaultConfig() Config {
	return Config{
		BasePrices: PerUnitType{
			Standard:   10.0,
			EV:         15.0,
			Motorcycle: 5.0,
		},
		ElasticityByType: PerUnitType{
			Standard:   1.0, // unit elastic baseline
			EV:         0.7, // captive demand
			Motorcycle: 1.1,
		},
		ElasticityByZone: PerZone{
			A: 0.9, // convenience premium near the entrance
			B: 1.0,
			C: 1.3, // far zone, volume-sensitive
		},
		LastMinuteElasticityModifier: 0.7,
		AdvanceElasticityModifier:    1.2,
		EventMultiplier:              2.0,
		EventHour:                    19.0,
		PriceFloor:                   5.0,
		PriceCeiling:                 50.0,
		OccupancyCurve: MustCurve(
			Breakpoint{X: 0.00, Y: 1.0},
			Breakpoint{X: 0.50, Y: 1.0},
			Breakpoint{X: 0.70, Y: 1.5},
			Breakpoint{X: 0.85, Y: 2.5},
			Breakpoint{X: 0.95, Y: 3.5},
			Breakpoint{X: 1.00, Y: 4.0},
		),
		TimeCurve: MustCurve(
			Breakpoint{X: -4.0, Y: 0.8}, // game winding down
			Breakpoint{X: -1.0, Y: 1.5},
			Breakpoint{X: 0.0, Y: 2.5}, // game time
			Breakpoint{X: 1.0, Y: 2.0},
			Breakpoint{X: 2.0, Y: 1.5},
			Breakpoint{X: 4.0, Y: 1.0},
			Breakpoint{X: 8.0, Y: 0.7},
			Breakpoint{X: 13.0, Y: 0.5}, // early morning
		),
		DemandCurve: MustCurve(
			Breakpoint{X: 6, Y: 0.05},
			Breakpoint{X: 7, Y: 0.08},
			Breakpoint{X: 8, Y: 0.10},
			Breakpoint{X: 9, Y: 0.12},
			Breakpoint{X: 10, Y: 0.15},
			Breakpoint{X: 11, Y: 0.20},
			Breakpoint{X: 12, Y: 0.25},
			Breakpoint{X: 13, Y: 0.30},
			Breakpoint{X: 14, Y: 0.40},
			Breakpoint{X: 15, Y: 0.50},
			Breakpoint{X: 16, Y: 0.60},
			Breakpoint{X: 17, Y: 0.75},
			Breakpoint{X: 18, Y: 0.90},
			Breakpoint{X: 19, Y: 1.00},
			Breakpoint{X: 20, Y: 0.70},
			Breakpoint{X: 21, Y: 0.40},
			Breakpoint{X: 22, Y: 0.20},
			Breakpoint{X: 23, Y: 0.10},
		),
		LocationMultipliers: PerZone{
			A: 1.3,
			B: 1.0,
			C: 0.8,
		},
	}
}

// Validate checks the whole table set and reports every problem at once.
func (c Config) Validate() error {
	var err error
	if c.PriceFloor <= 0 {
		err = multierr.Append(err, fmt.Errorf("price floor must be positive, got %.2f", c.PriceFloor))
	}
	if c.PriceCeiling <= c.PriceFloor {
		err = multierr.Append(err, fmt.Errorf("price ceiling %.2f must exceed floor %.2f", c.PriceCeiling, c.PriceFloor))
	}
	if c.BasePrices.Standard <= 0 || c.BasePrices.EV <= 0 || c.BasePrices.Motorcycle <= 0 {
		err = multierr.Append(err, fmt.Errorf("base prices must be positive: %+v", c.BasePrices))
	}
	if c.ElasticityByType.Standard <= 0 || c.ElasticityByType.EV <= 0 || c.ElasticityByType.Motorcycle <= 0 {
		err = multierr.Append(err, fmt.Errorf("type elasticities must be positive: %+v", c.ElasticityByType))
	}
	if c.ElasticityByZone.A <= 0 || c.ElasticityByZone.B <= 0 || c.ElasticityByZone.C <= 0 {
		err = multierr.Append(err, fmt.Errorf("zone elasticity modifiers must be positive: %+v", c.ElasticityByZone))
	}
	if c.LastMinuteElasticityModifier <= 0 || c.AdvanceElasticityModifier <= 0 {
		err = multierr.Append(err, fmt.Errorf("elasticity timing modifiers must be positive"))
	}
	if c.EventMultiplier <= 0 {
		err = multierr.Append(err, fmt.Errorf("event multiplier must be positive, got %.2f", c.EventMultiplier))
	}
	if c.OccupancyCurve.IsZero() {
		err = multierr.Append(err, fmt.Errorf("occupancy curve is required"))
	}
	if c.TimeCurve.IsZero() {
		err = multierr.Append(err, fmt.Errorf("time curve is required"))
	}
	if c.DemandCurve.IsZero() {
		err = multierr.Append(err, fmt.Errorf("demand curve is required"))
	}
	return err
}
