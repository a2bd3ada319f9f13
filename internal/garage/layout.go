package garage

import (
	"fmt"
	"math"

	"github.com/parkpulse/parkpulse-backend/pkg/enums"
)

// LayoutConfig describes the deterministic garage grid.
type LayoutConfig struct {
	Rows int
	Cols int
}

// BuildLayout generates the rows x cols unit grid. Zone bands run by
// row (A nearest the entrance at row 0), EV chargers sit in zone A's
// two leftmost columns and motorcycle bays in zone C's two rightmost.
// The same config always yields the same ids, types and zones.
func BuildLayout(cfg LayoutConfig) []Unit {
	units := make([]Unit, 0, cfg.Rows*cfg.Cols)
	for row := 0; row < cfg.Rows; row++ {
		zone := zoneForRow(row, cfg.Rows)
		for col := 0; col < cfg.Cols; col++ {
			units = append(units, Unit{
				ID:                 fmt.Sprintf("R%dC%d", row, col),
				Type:               unitTypeFor(zone, col, cfg.Cols),
				Zone:               zone,
				Row:                row,
				Col:                col,
				DistanceToEntrance: distanceToEntrance(row, col, cfg.Cols),
			})
		}
	}
	return units
}

func zoneForRow(row, totalRows int) enums.Zone {
	switch {
	case float64(row) < float64(totalRows)*0.3:
		return enums.ZoneA
	case float64(row) < float64(totalRows)*0.7:
		return enums.ZoneB
	default:
		return enums.ZoneC
	}
}

func unitTypeFor(zone enums.Zone, col, totalCols int) enums.UnitType {
	if zone == enums.ZoneA && col <= 1 {
		return enums.UnitTypeEV
	}
	if zone == enums.ZoneC && col >= totalCols-2 {
		return enums.UnitTypeMotorcycle
	}
	return enums.UnitTypeStandard
}

// distanceToEntrance is the Euclidean distance from the unit to the
// entrance at row 0, center column.
func distanceToEntrance(row, col, totalCols int) float64 {
	entranceCol := float64(totalCols) / 2.0
	d := math.Sqrt(float64(row)*float64(row) + (float64(col)-entranceCol)*(float64(col)-entranceCol))
	return math.Round(d*100) / 100
}
