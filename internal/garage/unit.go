package garage

import "github.com/parkpulse/parkpulse-backend/pkg/enums"

// Unit is a single parking space. Identity is fixed at garage
// initialization; units are never mutated or destroyed.
type Unit struct {
	ID                 string         `json:"id"`
	Type               enums.UnitType `json:"type"`
	Zone               enums.Zone     `json:"zone"`
	Row                int            `json:"row"`
	Col                int            `json:"col"`
	DistanceToEntrance float64        `json:"distance_to_entrance"`
}
