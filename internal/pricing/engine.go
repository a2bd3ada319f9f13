package pricing

import (
	"fmt"
	"math"

	"github.com/parkpulse/parkpulse-backend/pkg/enums"
)

// PriceResult exposes every intermediate value of a quote. Downstream
// consumers (UI transparency panel, simulation weighting, tests) rely on
// the full breakdown, not just the final number.
type PriceResult struct {
	FinalPrice   float64 `json:"final_price"`
	BasePrice    float64 `json:"base_price"`
	ContextPrice float64 `json:"context_price"`

	OccupancyMultiplier float64 `json:"occupancy_multiplier"`
	TimeMultiplier      float64 `json:"time_multiplier"`
	DemandMultiplier    float64 `json:"demand_multiplier"`
	LocationMultiplier  float64 `json:"location_multiplier"`
	EventMultiplier     float64 `json:"event_multiplier"`

	Elasticity           float64 `json:"elasticity"`
	ElasticityAdjustment float64 `json:"elasticity_adjustment"`
	OptimizationNote     string  `json:"optimization_note"`
}

// QuoteInput captures the context a quote is computed against.
type QuoteInput struct {
	UnitType      enums.UnitType
	Zone          enums.Zone
	Now           float64 // simulated time, decimal hour
	OccupancyRate float64 // fraction of units occupied at Now
	// LeadTimeHours is the time between booking and the reservation
	// start. Nil when unknown; the elasticity timing modifier only
	// applies when it is set.
	LeadTimeHours *float64
}

// Engine computes the revenue-maximizing hourly price for a unit.
// Quotes are pure: no state is read beyond the input snapshot.
type Engine struct {
	cfg Config
}

// NewEngine validates the configuration tables and returns an engine.
func NewEngine(cfg Config) (*Engine, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("pricing config: %w", err)
	}
	return &Engine{cfg: cfg}, nil
}

// Config returns the engine's table set.
func (e *Engine) Config() Config {
	return e.cfg
}

// Quote runs the three-layer model: base price by type, context
// multipliers (occupancy, time, demand, location, event), then the
// elasticity adjustment, clamped to the floor/ceiling guardrails.
// Successive quotes may jump discontinuously across guardrail edges;
// no smoothing is applied.
func (e *Engine) Quote(in QuoteInput) (PriceResult, error) {
	basePrice, err := e.cfg.BasePrices.For(in.UnitType)
	if err != nil {
		return PriceResult{}, err
	}

	occMult := e.cfg.OccupancyCurve.Eval(in.OccupancyRate)
	timeMult := e.cfg.TimeCurve.Eval(e.cfg.EventHour - in.Now)
	demandMult := e.cfg.DemandCurve.Eval(in.Now)
	locationMult, err := e.cfg.LocationMultipliers.For(in.Zone)
	if err != nil {
		return PriceResult{}, err
	}
	eventMult := e.cfg.EventMultiplier

	contextPrice := basePrice * occMult * timeMult * demandMult * locationMult * eventMult

	elasticity, err := e.elasticity(in)
	if err != nil {
		return PriceResult{}, err
	}

	var adjustment float64
	var note string
	switch {
	case elasticity < 1.0:
		// Inelastic: push price up in proportion to how inelastic.
		adjustment = 1.0 + (1.0 - elasticity)
		note = fmt.Sprintf("Inelastic segment (e=%.2f): price pushed up %.0f%%", elasticity, (adjustment-1)*100)
	case elasticity > 1.0:
		// Elastic: pull price down for volume.
		adjustment = 1.0 / elasticity
		note = fmt.Sprintf("Elastic segment (e=%.2f): price reduced %.0f%%", elasticity, (1-adjustment)*100)
	default:
		adjustment = 1.0
		note = "Unit elastic (e=1.00): no adjustment"
	}

	finalPrice := contextPrice * adjustment
	finalPrice = math.Max(e.cfg.PriceFloor, math.Min(e.cfg.PriceCeiling, finalPrice))

	return PriceResult{
		FinalPrice:           round2(finalPrice),
		BasePrice:            basePrice,
		ContextPrice:         round2(contextPrice),
		OccupancyMultiplier:  round4(occMult),
		TimeMultiplier:       round4(timeMult),
		DemandMultiplier:     round4(demandMult),
		LocationMultiplier:   locationMult,
		EventMultiplier:      eventMult,
		Elasticity:           round4(elasticity),
		ElasticityAdjustment: round4(adjustment),
		OptimizationNote:     note,
	}, nil
}

// elasticity combines the type elasticity with the zone modifier, then
// applies the timing modifier when the lead time is known: last-minute
// bookers are captive, advance bookers shop around.
func (e *Engine) elasticity(in QuoteInput) (float64, error) {
	typeElasticity, err := e.cfg.ElasticityByType.For(in.UnitType)
	if err != nil {
		return 0, err
	}
	zoneModifier, err := e.cfg.ElasticityByZone.For(in.Zone)
	if err != nil {
		return 0, err
	}

	elasticity := typeElasticity * zoneModifier

	if in.LeadTimeHours != nil {
		hoursBeforeEvent := e.cfg.EventHour - in.Now
		if hoursBeforeEvent < 1.0 {
			elasticity *= e.cfg.LastMinuteElasticityModifier
		} else if hoursBeforeEvent > 4.0 {
			elasticity *= e.cfg.AdvanceElasticityModifier
		}
	}

	return elasticity, nil
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

func round4(v float64) float64 {
	return math.Round(v*10000) / 10000
}
