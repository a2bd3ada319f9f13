package enums

import "fmt"

// UnitType represents the physical kind of a parking unit.
type UnitType string

const (
	UnitTypeStandard   UnitType = "STANDARD"
	UnitTypeEV         UnitType = "EV"
	UnitTypeMotorcycle UnitType = "MOTORCYCLE"
)

var validUnitTypes = []UnitType{
	UnitTypeStandard,
	UnitTypeEV,
	UnitTypeMotorcycle,
}

// String implements fmt.Stringer.
func (u UnitType) String() string {
	return string(u)
}

// IsValid reports whether the unit type is recognized.
func (u UnitType) IsValid() bool {
	for _, candidate := range validUnitTypes {
		if candidate == u {
			return true
		}
	}
	return false
}

// ParseUnitType converts a raw string into a UnitType.
func ParseUnitType(value string) (UnitType, error) {
	for _, candidate := range validUnitTypes {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid unit type %q", value)
}
