package garage

import (
	"github.com/parkpulse/parkpulse-backend/pkg/enums"
	"github.com/shopspring/decimal"
)

// Reservation is a confirmed booking of one unit for a span of
// simulated hours. LockedPrice is the hourly quote captured when the
// unit was selected; TotalCost is fixed at creation and never
// recomputed, even if later quotes for the unit change.
type Reservation struct {
	ID          string                  `json:"id"`
	UnitID      string                  `json:"unit_id"`
	StartTime   float64                 `json:"start_time"`
	EndTime     float64                 `json:"end_time"`
	LockedPrice float64                 `json:"locked_price"`
	TotalCost   decimal.Decimal         `json:"total_cost"`
	Origin      enums.ReservationOrigin `json:"origin"`
	Status      enums.ReservationStatus `json:"status"`
}

// NewReservationCost computes the fixed total for an hourly price and
// duration using exact decimal arithmetic.
func NewReservationCost(lockedPrice float64, durationHours float64) decimal.Decimal {
	return decimal.NewFromFloat(lockedPrice).
		Mul(decimal.NewFromFloat(durationHours)).
		Round(2)
}

// Covers reports whether the reservation is active and spans the given
// simulated time.
func (r *Reservation) Covers(at float64) bool {
	return r.Status == enums.ReservationStatusActive && r.StartTime <= at && at < r.EndTime
}

// Complete transitions an active reservation to completed.
func (r *Reservation) Complete() {
	if r.Status == enums.ReservationStatusActive {
		r.Status = enums.ReservationStatusCompleted
	}
}

// Cancel transitions an active reservation to cancelled. Only valid
// before the reservation has started; callers enforce the timing rule.
func (r *Reservation) Cancel() {
	if r.Status == enums.ReservationStatusActive {
		r.Status = enums.ReservationStatusCancelled
	}
}
