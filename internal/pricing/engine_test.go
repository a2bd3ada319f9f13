package pricing

import (
	"strings"
	"testing"

	"github.com/parkpulse/parkpulse-backend/pkg/enums"
)

func newTestEngine(t *testing.T) *Engine {
	t.Helper()
	engine, err := NewEngine(DefaultConfig())
	if err != nil {
		t.Fatalf("NewEngine: %v", err)
	}
	return engine
}

func TestQuoteGuardrailsHoldForAllInputs(t *testing.T) {
	engine := newTestEngine(t)
	cfg := engine.Config()

	lead := 2.0
	leadTimes := []*float64{nil, &lead}

	for _, unitType := range []enums.UnitType{enums.UnitTypeStandard, enums.UnitTypeEV, enums.UnitTypeMotorcycle} {
		for _, zone := range []enums.Zone{enums.ZoneA, enums.ZoneB, enums.ZoneC} {
			for hour := 6.0; hour <= 24.0; hour += 0.25 {
				for occ := 0.0; occ <= 1.0; occ += 0.05 {
					for _, leadTime := range leadTimes {
						res, err := engine.Quote(QuoteInput{
							UnitType:      unitType,
							Zone:          zone,
							Now:           hour,
							OccupancyRate: occ,
							LeadTimeHours: leadTime,
						})
						if err != nil {
							t.Fatalf("Quote: %v", err)
						}
						if res.FinalPrice < cfg.PriceFloor || res.FinalPrice > cfg.PriceCeiling {
							t.Fatalf("final price %.2f outside [%.2f, %.2f] for type=%s zone=%s hour=%.2f occ=%.2f",
								res.FinalPrice, cfg.PriceFloor, cfg.PriceCeiling, unitType, zone, hour, occ)
						}
					}
				}
			}
		}
	}
}

func TestOccupancyMultiplierMonotone(t *testing.T) {
	engine := newTestEngine(t)

	prev := -1.0
	for occ := 0.0; occ <= 1.0001; occ += 0.01 {
		res, err := engine.Quote(QuoteInput{
			UnitType:      enums.UnitTypeStandard,
			Zone:          enums.ZoneB,
			Now:           12,
			OccupancyRate: occ,
		})
		if err != nil {
			t.Fatalf("Quote: %v", err)
		}
		if res.OccupancyMultiplier < prev {
			t.Fatalf("occupancy multiplier decreased at occ=%.2f: %v < %v", occ, res.OccupancyMultiplier, prev)
		}
		prev = res.OccupancyMultiplier

		if occ <= 0.5 && res.OccupancyMultiplier != 1.0 {
			t.Fatalf("expected multiplier 1.0 at occ=%.2f, got %v", occ, res.OccupancyMultiplier)
		}
	}

	full, err := engine.Quote(QuoteInput{UnitType: enums.UnitTypeStandard, Zone: enums.ZoneB, Now: 12, OccupancyRate: 1.0})
	if err != nil {
		t.Fatalf("Quote: %v", err)
	}
	if full.OccupancyMultiplier != 4.0 {
		t.Fatalf("expected configured max 4.0 at full garage, got %v", full.OccupancyMultiplier)
	}
}

func TestElasticityBranchSelection(t *testing.T) {
	engine := newTestEngine(t)

	tests := []struct {
		name     string
		unitType enums.UnitType
		zone     enums.Zone
		check    func(t *testing.T, res PriceResult)
	}{
		{
			name:     "inelastic raises price",
			unitType: enums.UnitTypeEV, // 0.7 x zone A 0.9 = 0.63
			zone:     enums.ZoneA,
			check: func(t *testing.T, res PriceResult) {
				if res.Elasticity >= 1.0 {
					t.Fatalf("expected e < 1, got %v", res.Elasticity)
				}
				if res.ElasticityAdjustment <= 1.0 {
					t.Fatalf("expected adjustment > 1, got %v", res.ElasticityAdjustment)
				}
				if !strings.Contains(res.OptimizationNote, "Inelastic") {
					t.Fatalf("unexpected note %q", res.OptimizationNote)
				}
			},
		},
		{
			name:     "elastic lowers price",
			unitType: enums.UnitTypeStandard, // 1.0 x zone C 1.3 = 1.3
			zone:     enums.ZoneC,
			check: func(t *testing.T, res PriceResult) {
				if res.Elasticity <= 1.0 {
					t.Fatalf("expected e > 1, got %v", res.Elasticity)
				}
				if res.ElasticityAdjustment >= 1.0 {
					t.Fatalf("expected adjustment < 1, got %v", res.ElasticityAdjustment)
				}
				if !strings.Contains(res.OptimizationNote, "Elastic") {
					t.Fatalf("unexpected note %q", res.OptimizationNote)
				}
			},
		},
		{
			name:     "unit elastic leaves price alone",
			unitType: enums.UnitTypeStandard, // 1.0 x zone B 1.0 = 1.0
			zone:     enums.ZoneB,
			check: func(t *testing.T, res PriceResult) {
				if res.Elasticity != 1.0 {
					t.Fatalf("expected e == 1, got %v", res.Elasticity)
				}
				if res.ElasticityAdjustment != 1.0 {
					t.Fatalf("expected adjustment == 1, got %v", res.ElasticityAdjustment)
				}
				if !strings.Contains(res.OptimizationNote, "Unit elastic") {
					t.Fatalf("unexpected note %q", res.OptimizationNote)
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := engine.Quote(QuoteInput{
				UnitType:      tt.unitType,
				Zone:          tt.zone,
				Now:           12,
				OccupancyRate: 0.3,
			})
			if err != nil {
				t.Fatalf("Quote: %v", err)
			}
			tt.check(t, res)
		})
	}
}

func TestQuoteEVPeakHitsCeiling(t *testing.T) {
	// EV, zone A, 70% occupancy, one hour before the game: the context
	// price (15 x 1.5 x 2.0 x 0.9 x 1.3 x 2.0 = 105.30) times the
	// inelastic push already exceeds the ceiling, so the final price is
	// exactly the $50 guardrail.
	engine := newTestEngine(t)

	res, err := engine.Quote(QuoteInput{
		UnitType:      enums.UnitTypeEV,
		Zone:          enums.ZoneA,
		Now:           18,
		OccupancyRate: 0.70,
	})
	if err != nil {
		t.Fatalf("Quote: %v", err)
	}

	if res.ContextPrice != 105.30 {
		t.Fatalf("expected context price 105.30, got %v", res.ContextPrice)
	}
	if res.Elasticity != 0.63 {
		t.Fatalf("expected elasticity 0.63, got %v", res.Elasticity)
	}
	if res.ElasticityAdjustment != 1.37 {
		t.Fatalf("expected adjustment 1.37, got %v", res.ElasticityAdjustment)
	}
	if res.FinalPrice != 50.00 {
		t.Fatalf("expected ceiling price 50.00, got %v", res.FinalPrice)
	}
}

func TestQuoteEarlyMorningFarZoneHitsFloor(t *testing.T) {
	// Standard, zone C, empty garage, 13 hours before the game: the
	// time multiplier bottoms out at 0.5 and demand at 0.05, so the raw
	// price collapses below base and the floor takes over.
	engine := newTestEngine(t)

	res, err := engine.Quote(QuoteInput{
		UnitType:      enums.UnitTypeStandard,
		Zone:          enums.ZoneC,
		Now:           6,
		OccupancyRate: 0,
	})
	if err != nil {
		t.Fatalf("Quote: %v", err)
	}

	if res.OccupancyMultiplier != 1.0 {
		t.Fatalf("expected occupancy multiplier 1.0, got %v", res.OccupancyMultiplier)
	}
	if res.TimeMultiplier != 0.5 {
		t.Fatalf("expected minimum time multiplier 0.5, got %v", res.TimeMultiplier)
	}
	if res.FinalPrice >= res.BasePrice {
		t.Fatalf("expected final price below base %v, got %v", res.BasePrice, res.FinalPrice)
	}
	if res.FinalPrice < 5.0 {
		t.Fatalf("expected floor to hold, got %v", res.FinalPrice)
	}
}

func TestLeadTimeModifiesElasticity(t *testing.T) {
	engine := newTestEngine(t)
	lead := 0.5

	withLead, err := engine.Quote(QuoteInput{
		UnitType:      enums.UnitTypeStandard,
		Zone:          enums.ZoneB,
		Now:           18.5, // half an hour before the game
		OccupancyRate: 0.3,
		LeadTimeHours: &lead,
	})
	if err != nil {
		t.Fatalf("Quote: %v", err)
	}
	if withLead.Elasticity != 0.7 {
		t.Fatalf("expected last-minute elasticity 0.7, got %v", withLead.Elasticity)
	}

	withoutLead, err := engine.Quote(QuoteInput{
		UnitType:      enums.UnitTypeStandard,
		Zone:          enums.ZoneB,
		Now:           18.5,
		OccupancyRate: 0.3,
	})
	if err != nil {
		t.Fatalf("Quote: %v", err)
	}
	if withoutLead.Elasticity != 1.0 {
		t.Fatalf("timing modifier should not apply without lead time, got %v", withoutLead.Elasticity)
	}

	advance := 6.0
	early, err := engine.Quote(QuoteInput{
		UnitType:      enums.UnitTypeStandard,
		Zone:          enums.ZoneB,
		Now:           13, // six hours out
		OccupancyRate: 0.3,
		LeadTimeHours: &advance,
	})
	if err != nil {
		t.Fatalf("Quote: %v", err)
	}
	if early.Elasticity != 1.2 {
		t.Fatalf("expected advance elasticity 1.2, got %v", early.Elasticity)
	}
}

func TestQuoteRejectsUnknownVariants(t *testing.T) {
	engine := newTestEngine(t)

	if _, err := engine.Quote(QuoteInput{UnitType: "HOVERCRAFT", Zone: enums.ZoneA, Now: 12}); err == nil {
		t.Fatalf("expected error for unknown unit type")
	}
	if _, err := engine.Quote(QuoteInput{UnitType: enums.UnitTypeEV, Zone: "Z", Now: 12}); err == nil {
		t.Fatalf("expected error for unknown zone")
	}
}

func TestValidateCollectsEveryProblem(t *testing.T) {
	cfg := DefaultConfig()
	cfg.PriceFloor = -1
	cfg.PriceCeiling = -2
	cfg.EventMultiplier = 0
	cfg.OccupancyCurve = Curve{}

	err := cfg.Validate()
	if err == nil {
		t.Fatalf("expected validation errors")
	}
	for _, want := range []string{"floor", "ceiling", "event multiplier", "occupancy curve"} {
		if !strings.Contains(err.Error(), want) {
			t.Fatalf("expected %q in error, got %v", want, err)
		}
	}
}
