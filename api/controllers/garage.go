package controllers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/parkpulse/parkpulse-backend/api/middleware"
	"github.com/parkpulse/parkpulse-backend/api/responses"
	"github.com/parkpulse/parkpulse-backend/api/validators"
	"github.com/parkpulse/parkpulse-backend/internal/orchestrator"
	"github.com/parkpulse/parkpulse-backend/pkg/logger"
)

// GarageState returns the full snapshot: units with live quotes,
// reservations, the event log and dashboard metrics.
func GarageState(orch *orchestrator.Orchestrator, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		snapshot, err := orch.Snapshot(ctx)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, snapshot)
	}
}

// SelectUnit quotes and holds a unit for the calling client.
func SelectUnit(orch *orchestrator.Orchestrator, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		actor := middleware.ActorID(ctx)
		if err := requireActor(actor); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		result, err := orch.SelectUnit(ctx, chi.URLParam(r, "unitID"), actor)
		if err != nil {
			responses.WriteError(ctx, logg, w, domainError(err))
			return
		}
		responses.WriteSuccess(w, result)
	}
}

// ReleaseUnit drops the calling client's hold on a unit.
func ReleaseUnit(orch *orchestrator.Orchestrator, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		actor := middleware.ActorID(ctx)
		if err := requireActor(actor); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		if err := orch.ReleaseUnit(ctx, chi.URLParam(r, "unitID"), actor); err != nil {
			responses.WriteError(ctx, logg, w, domainError(err))
			return
		}
		responses.WriteSuccess(w, map[string]string{"status": "released"})
	}
}

type bookUnitRequest struct {
	DurationHours int `json:"duration_hours" validate:"required,min=1,max=4"`
}

// BookUnit promotes the client's hold into a reservation at the price
// locked when the unit was selected.
func BookUnit(orch *orchestrator.Orchestrator, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		actor := middleware.ActorID(ctx)
		if err := requireActor(actor); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		var req bookUnitRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		reservation, err := orch.BookUnit(ctx, chi.URLParam(r, "unitID"), actor, req.DurationHours)
		if err != nil {
			responses.WriteError(ctx, logg, w, domainError(err))
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, reservation)
	}
}

// GarageSummary returns the aggregated revenue and booking counts.
func GarageSummary(orch *orchestrator.Orchestrator, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		responses.WriteSuccess(w, orch.Summary(r.Context()))
	}
}
