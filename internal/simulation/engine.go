package simulation

import (
	"fmt"
	"math"
	"math/rand"

	"github.com/google/uuid"
	"github.com/parkpulse/parkpulse-backend/internal/garage"
	"github.com/parkpulse/parkpulse-backend/internal/holds"
	"github.com/parkpulse/parkpulse-backend/internal/pricing"
	"github.com/parkpulse/parkpulse-backend/pkg/enums"
)

// Actor is the identity the simulation holds units under, so manual
// actors and the demand process arbitrate through the same manager.
const Actor = "sim"

// Engine drives the synthetic demand process: departures first, then
// arrivals paced against the target occupancy curve. It mutates the
// state it is handed and is only ever invoked by the orchestrator's
// single writer.
type Engine struct {
	cfg     Config
	pricer  *pricing.Engine
	holdMgr *holds.Manager
	rng     *rand.Rand
}

// NewEngine validates the tuning and builds an engine. The random
// source is injected so runs replay exactly under a fixed seed.
func NewEngine(cfg Config, pricer *pricing.Engine, holdMgr *holds.Manager, rng *rand.Rand) (*Engine, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("simulation config: %w", err)
	}
	if pricer == nil {
		return nil, fmt.Errorf("pricing engine required")
	}
	if holdMgr == nil {
		return nil, fmt.Errorf("hold manager required")
	}
	if rng == nil {
		return nil, fmt.Errorf("random source required")
	}
	return &Engine{cfg: cfg, pricer: pricer, holdMgr: holdMgr, rng: rng}, nil
}

// TickResult reports what one simulated step changed.
type TickResult struct {
	NewReservations []*garage.Reservation
	ExpiredUnitIDs  []string
	EarlyUnitIDs    []string
}

// Tick advances the demand process by dt simulated hours at the state's
// current time. Departures run before arrivals so units freed this tick
// are visible to the arrival selection pool.
func (e *Engine) Tick(state *garage.State, dt float64) TickResult {
	var result TickResult
	e.processDepartures(state, dt, &result)
	e.processArrivals(state, dt, &result)
	return result
}

// hazardProb converts a per-hour hazard rate into a Bernoulli
// probability for a dt-hour step.
func hazardProb(ratePerHour, dt float64) float64 {
	if ratePerHour <= 0 || dt <= 0 {
		return 0
	}
	return 1 - math.Exp(-ratePerHour*dt)
}

func (e *Engine) departureRate(now float64) float64 {
	switch {
	case now >= e.cfg.EventWindowEnd:
		return e.cfg.PostEventDepartureRate
	case now >= e.cfg.EventWindowStart:
		return e.cfg.EventWindowDepartureRate
	default:
		return e.cfg.EarlyDepartureRate
	}
}

func (e *Engine) processDepartures(state *garage.State, dt float64, result *TickResult) {
	now := state.CurrentTime
	earlyProb := hazardProb(e.departureRate(now), dt)

	for _, r := range state.Reservations {
		if r.Status != enums.ReservationStatusActive {
			continue
		}

		if now >= r.EndTime {
			r.Complete()
			result.ExpiredUnitIDs = append(result.ExpiredUnitIDs, r.UnitID)
			state.AppendEvent("departure", fmt.Sprintf("Reservation completed for %s", r.UnitID))
			continue
		}

		if r.StartTime <= now && e.rng.Float64() < earlyProb {
			r.Complete()
			result.EarlyUnitIDs = append(result.EarlyUnitIDs, r.UnitID)
			remaining := r.EndTime - now
			state.AppendEvent("early_departure", fmt.Sprintf("Early departure from %s (%.1fhr remaining)", r.UnitID, remaining))
		}
	}
}

func (e *Engine) processArrivals(state *garage.State, dt float64, result *TickResult) {
	now := state.CurrentTime
	target := e.cfg.TargetOccupancyCurve.Eval(now)
	deficit := target - state.OccupancyRate(now)
	if deficit <= 0 {
		return
	}

	// Attempts scale with how many units the garage is behind target:
	// bursts when badly behind, nothing when demand is satisfied.
	attemptsF := deficit * float64(len(state.Units)) * e.cfg.CatchUpRate * dt
	attempts := int(attemptsF)
	if e.rng.Float64() < attemptsF-float64(attempts) {
		attempts++
	}
	if attempts > e.cfg.MaxBurstAttempts {
		attempts = e.cfg.MaxBurstAttempts
	}

	for i := 0; i < attempts; i++ {
		if r := e.attemptBooking(state); r != nil {
			result.NewReservations = append(result.NewReservations, r)
		}
	}
}

// attemptBooking makes one synthetic booking: pick a free unit weighted
// by inverse price, hold it, and immediately promote the hold at its
// quote. Returning nil (no free units, lost race) is a normal outcome
// for the tick, not an error.
func (e *Engine) attemptBooking(state *garage.State) *garage.Reservation {
	now := state.CurrentTime

	unit, quote, ok := e.selectUnit(state)
	if !ok {
		return nil
	}

	// Acquire re-checks occupancy at promotion time; a unit grabbed by
	// a manual actor between the filter and here is simply skipped.
	if _, err := e.holdMgr.Acquire(unit.ID, Actor, quote); err != nil {
		return nil
	}
	hold, err := e.holdMgr.Promote(unit.ID, Actor)
	if err != nil {
		return nil
	}

	duration := e.selectDuration(now)
	reservation := &garage.Reservation{
		ID:          "sim-" + uuid.NewString()[:8],
		UnitID:      unit.ID,
		StartTime:   now,
		EndTime:     now + float64(duration),
		LockedPrice: hold.Quote.FinalPrice,
		TotalCost:   garage.NewReservationCost(hold.Quote.FinalPrice, float64(duration)),
		Origin:      enums.ReservationOriginSimulated,
		Status:      enums.ReservationStatusActive,
	}
	state.AddReservation(reservation)
	state.AppendEvent("sim_booking",
		fmt.Sprintf("Auto-booked %s (%s) for %dhr at $%.2f/hr", unit.ID, unit.Type, duration, hold.Quote.FinalPrice))
	return reservation
}

// selectUnit picks a free unit by inverse-price weighting: cheaper
// units are proportionally more likely, which makes the cheap far zone
// fill first.
func (e *Engine) selectUnit(state *garage.State) (garage.Unit, pricing.PriceResult, bool) {
	now := state.CurrentTime
	occupied := state.OccupiedUnitIDs(now)
	held := e.holdMgr.HeldUnitIDs()
	occupancyRate := float64(len(occupied)) / float64(max(len(state.Units), 1))

	type candidate struct {
		unit   garage.Unit
		quote  pricing.PriceResult
		weight float64
	}
	var candidates []candidate
	var totalWeight float64

	for _, unit := range state.Units {
		if _, ok := occupied[unit.ID]; ok {
			continue
		}
		if _, ok := held[unit.ID]; ok {
			continue
		}
		quote, err := e.pricer.Quote(pricing.QuoteInput{
			UnitType:      unit.Type,
			Zone:          unit.Zone,
			Now:           now,
			OccupancyRate: occupancyRate,
		})
		if err != nil {
			continue
		}
		w := 1.0 / (quote.FinalPrice + 0.01)
		candidates = append(candidates, candidate{unit: unit, quote: quote, weight: w})
		totalWeight += w
	}

	if len(candidates) == 0 || totalWeight <= 0 {
		return garage.Unit{}, pricing.PriceResult{}, false
	}

	r := e.rng.Float64() * totalWeight
	var cumulative float64
	for _, c := range candidates {
		cumulative += c.weight
		if r <= cumulative {
			return c.unit, c.quote, true
		}
	}
	last := candidates[len(candidates)-1]
	return last.unit, last.quote, true
}

// selectDuration draws a 1-4 hour stay, clamped so the booking does not
// run past the end of the day. Inside the pre-game-to-end window,
// durations that reach past the event's end are boosted: event-time
// arrivals tend to stay for the whole game.
func (e *Engine) selectDuration(now float64) int {
	maxDuration := len(e.cfg.DurationWeights)
	if capped := int(e.cfg.DayEnd - now); capped < maxDuration {
		maxDuration = capped
	}
	if maxDuration < 1 {
		return 1
	}

	inWindow := now >= e.cfg.EventWindowStart && now < e.cfg.EventWindowEnd

	weights := make([]float64, maxDuration)
	var total float64
	for i := range weights {
		w := e.cfg.DurationWeights[i]
		if inWindow && now+float64(i+1) >= e.cfg.EventWindowEnd {
			w *= e.cfg.EventSpanBoost
		}
		weights[i] = w
		total += w
	}
	if total <= 0 {
		return 1
	}

	r := e.rng.Float64() * total
	var cumulative float64
	for i, w := range weights {
		cumulative += w
		if r <= cumulative {
			return i + 1
		}
	}
	return maxDuration
}
