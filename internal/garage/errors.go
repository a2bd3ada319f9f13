package garage

import "errors"

var (
	ErrUnknownUnit     = errors.New("unknown unit")
	ErrInvalidDuration = errors.New("duration must be between 1 and 4 hours")
	ErrInvalidSpeed    = errors.New("playback speed must be 1, 2, 5 or 10")
	ErrAlreadyHeld     = errors.New("unit already held")
	ErrUnitOccupied    = errors.New("unit occupied")
	ErrHoldNotFound    = errors.New("no hold on unit")
	ErrHoldExpired     = errors.New("hold expired")
	ErrHoldNotOwned    = errors.New("hold owned by another actor")
)
