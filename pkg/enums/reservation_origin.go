package enums

import "fmt"

// ReservationOrigin distinguishes manual bookings from bookings created
// by the demand simulation.
type ReservationOrigin string

const (
	ReservationOriginManual    ReservationOrigin = "MANUAL"
	ReservationOriginSimulated ReservationOrigin = "SIMULATED"
)

var validReservationOrigins = []ReservationOrigin{
	ReservationOriginManual,
	ReservationOriginSimulated,
}

// String implements fmt.Stringer.
func (o ReservationOrigin) String() string {
	return string(o)
}

// IsValid reports whether the origin is recognized.
func (o ReservationOrigin) IsValid() bool {
	for _, candidate := range validReservationOrigins {
		if candidate == o {
			return true
		}
	}
	return false
}

// ParseReservationOrigin converts a raw string into a ReservationOrigin.
func ParseReservationOrigin(value string) (ReservationOrigin, error) {
	for _, candidate := range validReservationOrigins {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid reservation origin %q", value)
}
