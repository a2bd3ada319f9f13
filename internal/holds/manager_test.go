package holds

import (
	"testing"
	"time"

	"github.com/parkpulse/parkpulse-backend/internal/garage"
	"github.com/parkpulse/parkpulse-backend/internal/pricing"
	"github.com/parkpulse/parkpulse-backend/pkg/clock"
)

func newTestManager(occupied OccupiedFunc) (*Manager, *clock.Fake) {
	fake := clock.NewFake(time.Date(2026, 6, 14, 12, 0, 0, 0, time.UTC))
	return NewManager(fake, 30*time.Second, occupied), fake
}

func quoteAt(price float64) pricing.PriceResult {
	return pricing.PriceResult{FinalPrice: price}
}

func TestAcquireMutualExclusion(t *testing.T) {
	m, _ := newTestManager(nil)

	if _, err := m.Acquire("R1C1", "alice", quoteAt(12)); err != nil {
		t.Fatalf("first acquire: %v", err)
	}
	if _, err := m.Acquire("R1C1", "bob", quoteAt(12)); err != garage.ErrAlreadyHeld {
		t.Fatalf("expected ErrAlreadyHeld, got %v", err)
	}

	m.Release("R1C1", "alice")
	if _, err := m.Acquire("R1C1", "bob", quoteAt(13)); err != nil {
		t.Fatalf("acquire after release: %v", err)
	}
}

func TestAcquireOccupiedUnit(t *testing.T) {
	m, _ := newTestManager(func(unitID string) bool { return unitID == "R2C2" })

	if _, err := m.Acquire("R2C2", "alice", quoteAt(10)); err != garage.ErrUnitOccupied {
		t.Fatalf("expected ErrUnitOccupied, got %v", err)
	}
	if _, err := m.Acquire("R2C3", "alice", quoteAt(10)); err != nil {
		t.Fatalf("free unit should be acquirable: %v", err)
	}
}

func TestAcquireSameActorRefreshes(t *testing.T) {
	m, fake := newTestManager(nil)

	first, err := m.Acquire("R1C1", "alice", quoteAt(10))
	if err != nil {
		t.Fatalf("acquire: %v", err)
	}

	fake.Advance(20 * time.Second)
	second, err := m.Acquire("R1C1", "alice", quoteAt(14))
	if err != nil {
		t.Fatalf("re-acquire by holder: %v", err)
	}
	if !second.ExpiresAt.After(first.ExpiresAt) {
		t.Fatalf("expected refreshed expiry")
	}
	if second.Quote.FinalPrice != 14 {
		t.Fatalf("expected refreshed quote, got %v", second.Quote.FinalPrice)
	}
}

func TestReleaseIsIdempotent(t *testing.T) {
	m, _ := newTestManager(nil)

	if _, err := m.Acquire("R1C1", "alice", quoteAt(10)); err != nil {
		t.Fatalf("acquire: %v", err)
	}

	m.Release("R1C1", "alice")
	m.Release("R1C1", "alice") // second release must not panic or error
	m.Release("R9C9", "alice") // never held at all

	if m.IsHeld("R1C1") {
		t.Fatalf("unit should be free after release")
	}
}

func TestReleaseByNonOwnerIsNoOp(t *testing.T) {
	m, _ := newTestManager(nil)

	if _, err := m.Acquire("R1C1", "alice", quoteAt(10)); err != nil {
		t.Fatalf("acquire: %v", err)
	}
	m.Release("R1C1", "bob")
	if !m.IsHeld("R1C1") {
		t.Fatalf("non-owner release must not drop the hold")
	}
}

func TestHoldExpiresLazily(t *testing.T) {
	m, fake := newTestManager(nil)

	if _, err := m.Acquire("R1C1", "alice", quoteAt(10)); err != nil {
		t.Fatalf("acquire: %v", err)
	}
	if !m.IsHeld("R1C1") {
		t.Fatalf("hold should be live")
	}

	fake.Advance(31 * time.Second)
	if m.IsHeld("R1C1") {
		t.Fatalf("hold should have expired")
	}
	if _, err := m.Acquire("R1C1", "bob", quoteAt(11)); err != nil {
		t.Fatalf("expired hold should not block a new actor: %v", err)
	}
}

func TestPromoteReturnsHeldQuote(t *testing.T) {
	m, _ := newTestManager(nil)

	if _, err := m.Acquire("R1C1", "alice", quoteAt(17.5)); err != nil {
		t.Fatalf("acquire: %v", err)
	}

	hold, err := m.Promote("R1C1", "alice")
	if err != nil {
		t.Fatalf("promote: %v", err)
	}
	if hold.Quote.FinalPrice != 17.5 {
		t.Fatalf("expected the quote locked at selection, got %v", hold.Quote.FinalPrice)
	}
	if m.IsHeld("R1C1") {
		t.Fatalf("promotion must consume the hold")
	}
}

func TestPromoteAfterTTLFailsAndFreesUnit(t *testing.T) {
	m, fake := newTestManager(nil)

	if _, err := m.Acquire("R1C1", "alice", quoteAt(10)); err != nil {
		t.Fatalf("acquire: %v", err)
	}

	fake.Advance(time.Minute)
	if _, err := m.Promote("R1C1", "alice"); err != garage.ErrHoldExpired {
		t.Fatalf("expected ErrHoldExpired, got %v", err)
	}
	if m.IsHeld("R1C1") {
		t.Fatalf("expired hold must be cleared, leaving the unit free")
	}
}

func TestPromoteGuards(t *testing.T) {
	m, _ := newTestManager(nil)

	if _, err := m.Promote("R1C1", "alice"); err != garage.ErrHoldNotFound {
		t.Fatalf("expected ErrHoldNotFound, got %v", err)
	}

	if _, err := m.Acquire("R1C1", "alice", quoteAt(10)); err != nil {
		t.Fatalf("acquire: %v", err)
	}
	if _, err := m.Promote("R1C1", "bob"); err != garage.ErrHoldNotOwned {
		t.Fatalf("expected ErrHoldNotOwned, got %v", err)
	}
	// The failed promotion must not consume alice's hold.
	if _, err := m.Promote("R1C1", "alice"); err != nil {
		t.Fatalf("owner promote after foreign attempt: %v", err)
	}
}

func TestReleaseAllByActor(t *testing.T) {
	m, _ := newTestManager(nil)

	for _, unitID := range []string{"R1C1", "R1C2", "R1C3"} {
		if _, err := m.Acquire(unitID, "alice", quoteAt(10)); err != nil {
			t.Fatalf("acquire %s: %v", unitID, err)
		}
	}
	if _, err := m.Acquire("R2C1", "bob", quoteAt(10)); err != nil {
		t.Fatalf("acquire: %v", err)
	}

	released := m.ReleaseAllByActor("alice")
	if len(released) != 3 {
		t.Fatalf("expected 3 released units, got %v", released)
	}
	if !m.IsHeld("R2C1") {
		t.Fatalf("bob's hold must survive")
	}
}

func TestHeldUnitIDsSkipsExpired(t *testing.T) {
	m, fake := newTestManager(nil)

	if _, err := m.Acquire("R1C1", "alice", quoteAt(10)); err != nil {
		t.Fatalf("acquire: %v", err)
	}
	fake.Advance(20 * time.Second)
	if _, err := m.Acquire("R1C2", "bob", quoteAt(10)); err != nil {
		t.Fatalf("acquire: %v", err)
	}
	fake.Advance(15 * time.Second) // alice's hold is now past TTL, bob's is not

	held := m.HeldUnitIDs()
	if _, ok := held["R1C1"]; ok {
		t.Fatalf("expired hold leaked into held set")
	}
	if _, ok := held["R1C2"]; !ok {
		t.Fatalf("live hold missing from held set")
	}
}
