package holds

import (
	"time"

	"github.com/parkpulse/parkpulse-backend/internal/garage"
	"github.com/parkpulse/parkpulse-backend/internal/pricing"
	"github.com/parkpulse/parkpulse-backend/pkg/clock"
)

// Hold is a time-limited exclusive claim on a unit. It carries the
// quote computed at selection so a later promotion books at the price
// locked then, not a fresh quote.
type Hold struct {
	UnitID    string
	Actor     string
	Quote     pricing.PriceResult
	ExpiresAt time.Time
}

// OccupiedFunc reports whether a unit is covered by an active
// reservation at the current simulated time.
type OccupiedFunc func(unitID string) bool

// Manager arbitrates holds between manual actors and the simulation.
// Expiry is checked lazily on every access against the injected clock;
// there is no timer goroutine and no second source of truth about time.
// The manager is not internally synchronized: the orchestrator
// serializes all access under its single-writer discipline.
type Manager struct {
	clock    clock.Clock
	ttl      time.Duration
	occupied OccupiedFunc
	holds    map[string]*Hold
}

// NewManager builds a hold manager with the given TTL for new holds.
func NewManager(clk clock.Clock, ttl time.Duration, occupied OccupiedFunc) *Manager {
	return &Manager{
		clock:    clk,
		ttl:      ttl,
		occupied: occupied,
		holds:    make(map[string]*Hold),
	}
}

// TTL returns the hold lifetime.
func (m *Manager) TTL() time.Duration {
	return m.ttl
}

// get returns the live hold for a unit, deleting it first if expired.
func (m *Manager) get(unitID string) *Hold {
	hold, ok := m.holds[unitID]
	if !ok {
		return nil
	}
	if m.clock.Now().After(hold.ExpiresAt) {
		delete(m.holds, unitID)
		return nil
	}
	return hold
}

// Acquire claims a unit for an actor. It fails with ErrUnitOccupied if
// an active reservation covers the unit now, and with ErrAlreadyHeld if
// a live hold belongs to a different actor. Re-acquiring one's own hold
// refreshes the quote and the expiry.
func (m *Manager) Acquire(unitID, actor string, quote pricing.PriceResult) (Hold, error) {
	if m.occupied != nil && m.occupied(unitID) {
		return Hold{}, garage.ErrUnitOccupied
	}
	if existing := m.get(unitID); existing != nil && existing.Actor != actor {
		return Hold{}, garage.ErrAlreadyHeld
	}

	hold := &Hold{
		UnitID:    unitID,
		Actor:     actor,
		Quote:     quote,
		ExpiresAt: m.clock.Now().Add(m.ttl),
	}
	m.holds[unitID] = hold
	return *hold, nil
}

// Release drops an actor's hold on a unit. Releasing a unit that is not
// held, already expired, or held by someone else is a no-op.
func (m *Manager) Release(unitID, actor string) {
	if hold := m.get(unitID); hold != nil && hold.Actor == actor {
		delete(m.holds, unitID)
	}
}

// Promote consumes an actor's hold and returns it so the caller can
// create the reservation at the held quote. After the TTL has elapsed
// the hold is cleared and ErrHoldExpired is returned, leaving the unit
// free for re-selection.
func (m *Manager) Promote(unitID, actor string) (Hold, error) {
	hold, ok := m.holds[unitID]
	if !ok {
		return Hold{}, garage.ErrHoldNotFound
	}
	if m.clock.Now().After(hold.ExpiresAt) {
		delete(m.holds, unitID)
		return Hold{}, garage.ErrHoldExpired
	}
	if hold.Actor != actor {
		return Hold{}, garage.ErrHoldNotOwned
	}
	delete(m.holds, unitID)
	return *hold, nil
}

// IsHeld reports whether a live hold exists on the unit.
func (m *Manager) IsHeld(unitID string) bool {
	return m.get(unitID) != nil
}

// HeldUnitIDs returns the set of units with live holds.
func (m *Manager) HeldUnitIDs() map[string]struct{} {
	held := make(map[string]struct{}, len(m.holds))
	now := m.clock.Now()
	for unitID, hold := range m.holds {
		if now.After(hold.ExpiresAt) {
			delete(m.holds, unitID)
			continue
		}
		held[unitID] = struct{}{}
	}
	return held
}

// Expiries returns unit id to expiry for every live hold, for client
// visibility in state snapshots.
func (m *Manager) Expiries() map[string]time.Time {
	out := make(map[string]time.Time, len(m.holds))
	now := m.clock.Now()
	for unitID, hold := range m.holds {
		if now.After(hold.ExpiresAt) {
			delete(m.holds, unitID)
			continue
		}
		out[unitID] = hold.ExpiresAt
	}
	return out
}

// ReleaseAllByActor drops every hold owned by the actor (client
// disconnect path) and returns the affected unit ids.
func (m *Manager) ReleaseAllByActor(actor string) []string {
	var released []string
	for unitID, hold := range m.holds {
		if hold.Actor == actor {
			delete(m.holds, unitID)
			released = append(released, unitID)
		}
	}
	return released
}

// Clear drops every hold (reset path).
func (m *Manager) Clear() {
	m.holds = make(map[string]*Hold)
}
