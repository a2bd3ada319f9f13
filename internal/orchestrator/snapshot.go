package orchestrator

import (
	"context"
	"math"
	"time"

	"github.com/parkpulse/parkpulse-backend/internal/garage"
	"github.com/parkpulse/parkpulse-backend/internal/pricing"
	"github.com/shopspring/decimal"
)

// UnitView is one unit as the dashboard sees it: layout, live status
// and the price a selection right now would quote.
type UnitView struct {
	garage.Unit
	Occupied      bool                `json:"occupied"`
	Held          bool                `json:"held"`
	HoldExpiresAt *time.Time          `json:"hold_expires_at,omitempty"`
	Price         pricing.PriceResult `json:"price"`
}

// DashboardMetrics are the headline numbers on the snapshot.
type DashboardMetrics struct {
	TotalRevenue      decimal.Decimal `json:"total_revenue"`
	TotalBookings     int             `json:"total_bookings"`
	SimulatedBookings int             `json:"simulated_bookings"`
	ManualBookings    int             `json:"manual_bookings"`
	AveragePrice      float64         `json:"average_price"`
	OccupancyRate     float64         `json:"occupancy_rate"`
	BookingsThisHour  int             `json:"bookings_this_hour"`
	RevenueThisHour   decimal.Decimal `json:"revenue_this_hour"`
}

// Snapshot is the full client-facing view of the garage at one
// simulated instant. All slices are copies; the caller can marshal it
// without holding any lock.
type Snapshot struct {
	CurrentTime       float64                `json:"current_time"`
	IsPlaying         bool                   `json:"is_playing"`
	PlaybackSpeed     int                    `json:"playback_speed"`
	SimulationEnabled bool                   `json:"simulation_enabled"`
	Units             []UnitView             `json:"units"`
	Reservations      []garage.Reservation   `json:"reservations"`
	EventLog          []garage.EventLogEntry `json:"event_log"`
	Metrics           DashboardMetrics       `json:"metrics"`
}

// Snapshot renders the current state with a live quote per unit. The
// quoted prices match what SelectUnit would lock for a booking placed
// right now.
func (o *Orchestrator) Snapshot(ctx context.Context) (Snapshot, error) {
	o.mu.Lock()
	defer o.mu.Unlock()

	now := o.state.CurrentTime
	occupied := o.state.OccupiedUnitIDs(now)
	occupancyRate := o.state.OccupancyRate(now)
	expiries := o.holdMgr.Expiries()
	leadTime := o.cfg.EventHour - now

	units := make([]UnitView, 0, len(o.state.Units))
	for _, unit := range o.state.Units {
		quote, err := o.pricer.Quote(pricing.QuoteInput{
			UnitType:      unit.Type,
			Zone:          unit.Zone,
			Now:           now,
			OccupancyRate: occupancyRate,
			LeadTimeHours: &leadTime,
		})
		if err != nil {
			return Snapshot{}, err
		}

		view := UnitView{Unit: unit, Price: quote}
		if _, ok := occupied[unit.ID]; ok {
			view.Occupied = true
		}
		if expiry, ok := expiries[unit.ID]; ok {
			view.Held = true
			expiresAt := expiry
			view.HoldExpiresAt = &expiresAt
		}
		units = append(units, view)
	}

	reservations := make([]garage.Reservation, 0, len(o.state.Reservations))
	hourStart := math.Floor(now)
	bookingsThisHour := 0
	revenueThisHour := decimal.Zero
	for _, r := range o.state.Reservations {
		reservations = append(reservations, *r)
		if r.StartTime >= hourStart && r.StartTime <= now {
			bookingsThisHour++
			revenueThisHour = revenueThisHour.Add(r.TotalCost)
		}
	}

	summary := o.state.Summarize()

	return Snapshot{
		CurrentTime:       now,
		IsPlaying:         o.state.IsPlaying,
		PlaybackSpeed:     o.state.PlaybackSpeed,
		SimulationEnabled: o.state.SimulationEnabled,
		Units:             units,
		Reservations:      reservations,
		EventLog:          append([]garage.EventLogEntry(nil), o.state.EventLog...),
		Metrics: DashboardMetrics{
			TotalRevenue:      summary.TotalRevenue,
			TotalBookings:     summary.TotalBookings,
			SimulatedBookings: summary.SimulatedBookings,
			ManualBookings:    summary.ManualBookings,
			AveragePrice:      summary.AveragePrice,
			OccupancyRate:     occupancyRate,
			BookingsThisHour:  bookingsThisHour,
			RevenueThisHour:   revenueThisHour,
		},
	}, nil
}
