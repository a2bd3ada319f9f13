package controllers

import (
	"errors"

	"github.com/parkpulse/parkpulse-backend/internal/garage"
	pkgerrors "github.com/parkpulse/parkpulse-backend/pkg/errors"
)

// domainError maps garage sentinels onto API error codes. Anything
// unrecognized passes through and surfaces as an internal error.
func domainError(err error) error {
	switch {
	case errors.Is(err, garage.ErrUnknownUnit):
		return pkgerrors.Wrap(pkgerrors.CodeNotFound, err, "unknown unit")
	case errors.Is(err, garage.ErrAlreadyHeld):
		return pkgerrors.Wrap(pkgerrors.CodeConflict, err, "unit is held by another client")
	case errors.Is(err, garage.ErrUnitOccupied):
		return pkgerrors.Wrap(pkgerrors.CodeConflict, err, "unit is occupied")
	case errors.Is(err, garage.ErrHoldExpired):
		return pkgerrors.Wrap(pkgerrors.CodeGone, err, "hold expired, reselect the unit")
	case errors.Is(err, garage.ErrHoldNotFound):
		return pkgerrors.Wrap(pkgerrors.CodeStateConflict, err, "no hold on unit, select it first")
	case errors.Is(err, garage.ErrHoldNotOwned):
		return pkgerrors.Wrap(pkgerrors.CodeConflict, err, "unit is held by another client")
	case errors.Is(err, garage.ErrInvalidDuration), errors.Is(err, garage.ErrInvalidSpeed):
		return pkgerrors.Wrap(pkgerrors.CodeValidation, err, err.Error())
	default:
		return err
	}
}

func requireActor(actor string) error {
	if actor == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "X-Client-Id header is required")
	}
	return nil
}
