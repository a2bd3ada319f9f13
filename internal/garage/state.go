package garage

import (
	"github.com/parkpulse/parkpulse-backend/pkg/enums"
	"github.com/shopspring/decimal"
)

// MaxEventLogSize caps the rolling event log. The log is an
// observability artifact, not authoritative state.
const MaxEventLogSize = 50

// EventLogEntry records one state-changing event at a simulated time.
type EventLogEntry struct {
	Timestamp float64 `json:"timestamp"`
	Kind      string  `json:"kind"`
	Details   string  `json:"details"`
}

// State is the single in-memory record of the garage: every unit, every
// reservation and the simulated clock. It owns invariants, not
// behavior; the orchestrator serializes all mutations.
type State struct {
	CurrentTime       float64         `json:"current_time"`
	IsPlaying         bool            `json:"is_playing"`
	PlaybackSpeed     int             `json:"playback_speed"`
	SimulationEnabled bool            `json:"simulation_enabled"`
	Units             []Unit          `json:"units"`
	Reservations      []*Reservation  `json:"reservations"`
	EventLog          []EventLogEntry `json:"event_log"`

	unitsByID map[string]*Unit
}

// NewState builds the initial state for a unit layout with the clock at
// day start.
func NewState(units []Unit, dayStart float64) *State {
	s := &State{
		CurrentTime:   dayStart,
		PlaybackSpeed: 1,
		Units:         units,
		Reservations:  make([]*Reservation, 0),
		EventLog:      make([]EventLogEntry, 0),
	}
	s.reindex()
	return s
}

func (s *State) reindex() {
	s.unitsByID = make(map[string]*Unit, len(s.Units))
	for i := range s.Units {
		s.unitsByID[s.Units[i].ID] = &s.Units[i]
	}
}

// UnitByID returns the unit with the given id, or ErrUnknownUnit.
func (s *State) UnitByID(id string) (Unit, error) {
	if s.unitsByID == nil {
		s.reindex()
	}
	unit, ok := s.unitsByID[id]
	if !ok {
		return Unit{}, ErrUnknownUnit
	}
	return *unit, nil
}

// IsOccupied reports whether an active reservation covers the unit at
// the given simulated time.
func (s *State) IsOccupied(unitID string, at float64) bool {
	for _, r := range s.Reservations {
		if r.UnitID == unitID && r.Covers(at) {
			return true
		}
	}
	return false
}

// OccupiedUnitIDs returns the set of units covered by an active
// reservation at the given simulated time.
func (s *State) OccupiedUnitIDs(at float64) map[string]struct{} {
	occupied := make(map[string]struct{})
	for _, r := range s.Reservations {
		if r.Covers(at) {
			occupied[r.UnitID] = struct{}{}
		}
	}
	return occupied
}

// OccupancyRate returns the fraction of units occupied at the given
// simulated time.
func (s *State) OccupancyRate(at float64) float64 {
	if len(s.Units) == 0 {
		return 0
	}
	return float64(len(s.OccupiedUnitIDs(at))) / float64(len(s.Units))
}

// AddReservation appends a reservation to the state.
func (s *State) AddReservation(r *Reservation) {
	s.Reservations = append(s.Reservations, r)
}

// AppendEvent records an event at the current simulated time, evicting
// the oldest entries past MaxEventLogSize.
func (s *State) AppendEvent(kind, details string) {
	s.EventLog = append(s.EventLog, EventLogEntry{
		Timestamp: s.CurrentTime,
		Kind:      kind,
		Details:   details,
	})
	if overflow := len(s.EventLog) - MaxEventLogSize; overflow > 0 {
		s.EventLog = append(s.EventLog[:0:0], s.EventLog[overflow:]...)
	}
}

// Summary is the end-of-day aggregation over all reservations. It is a
// pure read of the state, not new state.
type Summary struct {
	TotalRevenue      decimal.Decimal `json:"total_revenue"`
	TotalBookings     int             `json:"total_bookings"`
	SimulatedBookings int             `json:"simulated_bookings"`
	ManualBookings    int             `json:"manual_bookings"`
	OccupancyRate     float64         `json:"occupancy_rate"`
	AveragePrice      float64         `json:"average_price"`
}

// Summarize aggregates revenue and booking counts as of the current
// simulated time.
func (s *State) Summarize() Summary {
	summary := Summary{TotalRevenue: decimal.Zero}

	var priceSum float64
	for _, r := range s.Reservations {
		if r.Status == enums.ReservationStatusCancelled {
			continue
		}
		summary.TotalRevenue = summary.TotalRevenue.Add(r.TotalCost)
		summary.TotalBookings++
		priceSum += r.LockedPrice
		if r.Origin == enums.ReservationOriginSimulated {
			summary.SimulatedBookings++
		} else {
			summary.ManualBookings++
		}
	}

	summary.OccupancyRate = s.OccupancyRate(s.CurrentTime)
	if summary.TotalBookings > 0 {
		summary.AveragePrice = priceSum / float64(summary.TotalBookings)
	}
	return summary
}
