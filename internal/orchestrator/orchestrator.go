package orchestrator

import (
	"context"
	"fmt"
	"math/rand"
	"strconv"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/parkpulse/parkpulse-backend/internal/garage"
	"github.com/parkpulse/parkpulse-backend/internal/holds"
	"github.com/parkpulse/parkpulse-backend/internal/pricing"
	"github.com/parkpulse/parkpulse-backend/internal/simulation"
	"github.com/parkpulse/parkpulse-backend/pkg/clock"
	"github.com/parkpulse/parkpulse-backend/pkg/enums"
	"github.com/parkpulse/parkpulse-backend/pkg/logger"
	"github.com/parkpulse/parkpulse-backend/pkg/metrics"
)

// Config carries the day parameters the orchestrator runs under.
type Config struct {
	Layout            garage.LayoutConfig
	DayStart          float64
	DayEnd            float64
	EventHour         float64
	HoldTTL           time.Duration
	TimeStep          float64
	SimulationEnabled bool
}

func (c Config) validate() error {
	if c.DayStart >= c.DayEnd {
		return fmt.Errorf("day start %.2f must precede day end %.2f", c.DayStart, c.DayEnd)
	}
	if c.TimeStep <= 0 {
		return fmt.Errorf("time step must be positive, got %v", c.TimeStep)
	}
	if c.HoldTTL <= 0 {
		return fmt.Errorf("hold TTL must be positive, got %v", c.HoldTTL)
	}
	return nil
}

// Orchestrator is the single writer over the garage state. Every
// mutation, whether a client action or a playback tick, runs under one
// mutex, so the pricing engine, hold manager and simulation never see a
// torn state. Handlers call into it synchronously; the ticker goroutine
// calls Tick.
type Orchestrator struct {
	mu sync.Mutex

	cfg    Config
	log    *logger.Logger
	met    *metrics.SimulationMetrics
	clk    clock.Clock
	pricer *pricing.Engine

	simCfg  simulation.Config
	seed    int64
	sim     *simulation.Engine
	holdMgr *holds.Manager
	state   *garage.State
}

// New wires the orchestrator and its owned state. A zero seed draws a
// fresh seed from the clock on every start and reset; any other value
// replays the same demand sequence.
func New(cfg Config, simCfg simulation.Config, seed int64, pricer *pricing.Engine, clk clock.Clock, log *logger.Logger, met *metrics.SimulationMetrics) (*Orchestrator, error) {
	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("orchestrator config: %w", err)
	}
	if pricer == nil {
		return nil, fmt.Errorf("pricing engine required")
	}
	if clk == nil {
		clk = clock.NewSystem()
	}
	if log == nil {
		log = logger.New(logger.Options{ServiceName: "parkpulse"})
	}

	o := &Orchestrator{
		cfg:    cfg,
		log:    log,
		met:    met,
		clk:    clk,
		pricer: pricer,
		simCfg: simCfg,
		seed:   seed,
	}
	o.holdMgr = holds.NewManager(clk, cfg.HoldTTL, func(unitID string) bool {
		return o.state.IsOccupied(unitID, o.state.CurrentTime)
	})
	if err := o.reset(); err != nil {
		return nil, err
	}
	return o, nil
}

func (o *Orchestrator) effectiveSeed() int64 {
	if o.seed != 0 {
		return o.seed
	}
	return o.clk.Now().UnixNano()
}

// reset rebuilds the state, clears holds and reseeds the demand
// process. Callers hold the mutex (or are still in New).
func (o *Orchestrator) reset() error {
	o.state = garage.NewState(garage.BuildLayout(o.cfg.Layout), o.cfg.DayStart)
	o.state.SimulationEnabled = o.cfg.SimulationEnabled
	o.holdMgr.Clear()

	sim, err := simulation.NewEngine(o.simCfg, o.pricer, o.holdMgr, rand.New(rand.NewSource(o.effectiveSeed())))
	if err != nil {
		return fmt.Errorf("simulation engine: %w", err)
	}
	o.sim = sim
	return nil
}

// SelectResult is what a client gets back from selecting a unit: the
// quote its eventual booking will be charged at, and how long the unit
// stays held for it.
type SelectResult struct {
	Unit          garage.Unit         `json:"unit"`
	Quote         pricing.PriceResult `json:"quote"`
	HoldExpiresAt time.Time           `json:"hold_expires_at"`
}

// SelectUnit quotes a unit at the current context and places a hold for
// the actor. The quote is locked into the hold: a booking within the
// TTL pays this price even if conditions move.
func (o *Orchestrator) SelectUnit(ctx context.Context, unitID, actor string) (SelectResult, error) {
	o.mu.Lock()
	defer o.mu.Unlock()

	unit, err := o.state.UnitByID(unitID)
	if err != nil {
		return SelectResult{}, err
	}

	leadTime := o.cfg.EventHour - o.state.CurrentTime
	quote, err := o.pricer.Quote(pricing.QuoteInput{
		UnitType:      unit.Type,
		Zone:          unit.Zone,
		Now:           o.state.CurrentTime,
		OccupancyRate: o.state.OccupancyRate(o.state.CurrentTime),
		LeadTimeHours: &leadTime,
	})
	if err != nil {
		return SelectResult{}, err
	}

	hold, err := o.holdMgr.Acquire(unitID, actor, quote)
	if err != nil {
		return SelectResult{}, err
	}

	ctx = o.log.WithFields(ctx, map[string]any{"unit_id": unitID, "actor_id": actor, "price": quote.FinalPrice})
	o.log.Debug(ctx, "unit held")

	return SelectResult{Unit: unit, Quote: quote, HoldExpiresAt: hold.ExpiresAt}, nil
}

// ReleaseUnit drops the actor's hold on a unit. Releasing a unit that
// is not held by the actor is a no-op, so the client can fire and
// forget on deselection.
func (o *Orchestrator) ReleaseUnit(ctx context.Context, unitID, actor string) error {
	o.mu.Lock()
	defer o.mu.Unlock()

	if _, err := o.state.UnitByID(unitID); err != nil {
		return err
	}
	o.holdMgr.Release(unitID, actor)
	return nil
}

// ReleaseActor drops every hold the actor owns and returns the freed
// unit ids. Called when a client disconnects.
func (o *Orchestrator) ReleaseActor(ctx context.Context, actor string) []string {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.holdMgr.ReleaseAllByActor(actor)
}

// BookUnit promotes the actor's hold into a reservation at the held
// quote. The total cost is fixed here and never recomputed.
func (o *Orchestrator) BookUnit(ctx context.Context, unitID, actor string, durationHours int) (garage.Reservation, error) {
	o.mu.Lock()
	defer o.mu.Unlock()

	if _, err := o.state.UnitByID(unitID); err != nil {
		return garage.Reservation{}, err
	}
	if durationHours < 1 || durationHours > 4 {
		return garage.Reservation{}, garage.ErrInvalidDuration
	}

	hold, err := o.holdMgr.Promote(unitID, actor)
	if err != nil {
		return garage.Reservation{}, err
	}

	now := o.state.CurrentTime
	reservation := &garage.Reservation{
		ID:          uuid.NewString(),
		UnitID:      unitID,
		StartTime:   now,
		EndTime:     now + float64(durationHours),
		LockedPrice: hold.Quote.FinalPrice,
		TotalCost:   garage.NewReservationCost(hold.Quote.FinalPrice, float64(durationHours)),
		Origin:      enums.ReservationOriginManual,
		Status:      enums.ReservationStatusActive,
	}
	o.state.AddReservation(reservation)
	o.state.AppendEvent("booking",
		fmt.Sprintf("Booked %s for %dhr at $%.2f/hr", unitID, durationHours, hold.Quote.FinalPrice))

	o.met.IncBooking("manual")
	o.met.AddRevenue(reservation.TotalCost.InexactFloat64())

	ctx = o.log.WithFields(ctx, map[string]any{
		"unit_id": unitID, "actor_id": actor,
		"duration_hours": durationHours, "total_cost": reservation.TotalCost.String(),
	})
	o.log.Info(ctx, "unit booked")

	return *reservation, nil
}

// SetPlaying starts or pauses playback.
func (o *Orchestrator) SetPlaying(ctx context.Context, playing bool) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.state.IsPlaying = playing
}

// SetPlaybackSpeed sets the number of simulated steps per wall tick.
func (o *Orchestrator) SetPlaybackSpeed(ctx context.Context, speed int) error {
	o.mu.Lock()
	defer o.mu.Unlock()

	switch speed {
	case 1, 2, 5, 10:
		o.state.PlaybackSpeed = speed
		return nil
	default:
		return garage.ErrInvalidSpeed
	}
}

// SetSimulatedTime pauses playback and jumps the clock, clamped to the
// operating day. Reservations are not rewritten; a backwards jump
// leaves completed stays completed.
func (o *Orchestrator) SetSimulatedTime(ctx context.Context, hour float64) {
	o.mu.Lock()
	defer o.mu.Unlock()

	if hour < o.cfg.DayStart {
		hour = o.cfg.DayStart
	}
	if hour > o.cfg.DayEnd {
		hour = o.cfg.DayEnd
	}
	o.state.IsPlaying = false
	o.state.CurrentTime = hour
}

// SetSimulationEnabled toggles the synthetic demand process. Scheduled
// departures still run when disabled.
func (o *Orchestrator) SetSimulationEnabled(ctx context.Context, enabled bool) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.state.SimulationEnabled = enabled
}

// Reset rebuilds the day from scratch: fresh layout, no reservations,
// no holds, clock at day start, playback paused at speed 1.
func (o *Orchestrator) Reset(ctx context.Context) error {
	o.mu.Lock()
	defer o.mu.Unlock()

	if err := o.reset(); err != nil {
		return err
	}
	o.log.Info(ctx, "garage reset")
	return nil
}

// Tick advances the day by one wall tick: PlaybackSpeed simulated steps
// of TimeStep hours each. Probabilities inside the demand process are
// per simulated hour, so a 10x day is the same day played faster, not a
// different day. No-op while paused.
func (o *Orchestrator) Tick(ctx context.Context) {
	o.mu.Lock()
	defer o.mu.Unlock()

	if !o.state.IsPlaying {
		return
	}
	started := o.clk.Now()
	speed := o.state.PlaybackSpeed

	for i := 0; i < speed; i++ {
		if o.step(ctx) {
			break
		}
	}

	o.met.ObserveTick(strconv.Itoa(speed), o.clk.Now().Sub(started))
	o.met.SetOccupancy(o.state.OccupancyRate(o.state.CurrentTime))
	o.met.SetSimTime(o.state.CurrentTime)
}

// step advances one simulated step and reports whether the day ended.
func (o *Orchestrator) step(ctx context.Context) (dayOver bool) {
	next := o.state.CurrentTime + o.cfg.TimeStep
	if next >= o.cfg.DayEnd {
		o.completeDay(ctx)
		return true
	}
	o.state.CurrentTime = next

	if o.state.SimulationEnabled {
		result := o.sim.Tick(o.state, o.cfg.TimeStep)
		for _, r := range result.NewReservations {
			o.met.IncBooking("simulated")
			o.met.AddRevenue(r.TotalCost.InexactFloat64())
		}
		for range result.ExpiredUnitIDs {
			o.met.IncDeparture("scheduled")
		}
		for range result.EarlyUnitIDs {
			o.met.IncDeparture("early")
		}
		return false
	}

	// Demand process off: scheduled departures still happen.
	for _, r := range o.state.Reservations {
		if r.Status == enums.ReservationStatusActive && o.state.CurrentTime >= r.EndTime {
			r.Complete()
			o.state.AppendEvent("departure", fmt.Sprintf("Reservation completed for %s", r.UnitID))
			o.met.IncDeparture("scheduled")
		}
	}
	return false
}

// completeDay closes out the day: the clock stops at day end, every
// active reservation completes, and playback pauses on the summary.
func (o *Orchestrator) completeDay(ctx context.Context) {
	o.state.CurrentTime = o.cfg.DayEnd
	for _, r := range o.state.Reservations {
		if r.Status == enums.ReservationStatusActive {
			r.Complete()
			o.met.IncDeparture("scheduled")
		}
	}
	o.state.IsPlaying = false

	summary := o.state.Summarize()
	o.state.AppendEvent("day_complete",
		fmt.Sprintf("Day complete: %d bookings, $%s revenue", summary.TotalBookings, summary.TotalRevenue.StringFixed(2)))

	ctx = o.log.WithFields(ctx, map[string]any{
		"total_bookings": summary.TotalBookings,
		"total_revenue":  summary.TotalRevenue.String(),
	})
	o.log.Info(ctx, "day complete")
}

// Summary aggregates revenue and bookings as of now.
func (o *Orchestrator) Summary(ctx context.Context) garage.Summary {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.state.Summarize()
}
