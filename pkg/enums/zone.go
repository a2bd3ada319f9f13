package enums

import "fmt"

// Zone represents a pricing zone of the garage, ordered by distance
// from the entrance (A nearest, C farthest).
type Zone string

const (
	ZoneA Zone = "A"
	ZoneB Zone = "B"
	ZoneC Zone = "C"
)

var validZones = []Zone{
	ZoneA,
	ZoneB,
	ZoneC,
}

// String implements fmt.Stringer.
func (z Zone) String() string {
	return string(z)
}

// IsValid reports whether the zone is recognized.
func (z Zone) IsValid() bool {
	for _, candidate := range validZones {
		if candidate == z {
			return true
		}
	}
	return false
}

// ParseZone converts a raw string into a Zone.
func ParseZone(value string) (Zone, error) {
	for _, candidate := range validZones {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid zone %q", value)
}
