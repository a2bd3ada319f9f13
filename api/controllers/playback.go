package controllers

import (
	"net/http"

	"github.com/parkpulse/parkpulse-backend/api/responses"
	"github.com/parkpulse/parkpulse-backend/api/validators"
	"github.com/parkpulse/parkpulse-backend/internal/orchestrator"
	"github.com/parkpulse/parkpulse-backend/pkg/logger"
)

type setPlaybackRequest struct {
	Playing *bool `json:"playing" validate:"required"`
}

// SetPlayback starts or pauses the simulated day.
func SetPlayback(orch *orchestrator.Orchestrator, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		var req setPlaybackRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		orch.SetPlaying(ctx, *req.Playing)
		responses.WriteSuccess(w, map[string]bool{"playing": *req.Playing})
	}
}

type setTimeRequest struct {
	Hour *float64 `json:"hour" validate:"required,min=0,max=24"`
}

// SetTime pauses playback and jumps the simulated clock.
func SetTime(orch *orchestrator.Orchestrator, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		var req setTimeRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		orch.SetSimulatedTime(ctx, *req.Hour)
		responses.WriteSuccess(w, map[string]float64{"hour": *req.Hour})
	}
}

type setSpeedRequest struct {
	Speed int `json:"speed" validate:"required,oneof=1 2 5 10"`
}

// SetSpeed sets the playback speed multiplier.
func SetSpeed(orch *orchestrator.Orchestrator, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		var req setSpeedRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		if err := orch.SetPlaybackSpeed(ctx, req.Speed); err != nil {
			responses.WriteError(ctx, logg, w, domainError(err))
			return
		}
		responses.WriteSuccess(w, map[string]int{"speed": req.Speed})
	}
}

type setSimulationRequest struct {
	Enabled *bool `json:"enabled" validate:"required"`
}

// SetSimulation toggles the synthetic demand process.
func SetSimulation(orch *orchestrator.Orchestrator, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		var req setSimulationRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		orch.SetSimulationEnabled(ctx, *req.Enabled)
		responses.WriteSuccess(w, map[string]bool{"enabled": *req.Enabled})
	}
}

// ResetGarage rebuilds the day from scratch.
func ResetGarage(orch *orchestrator.Orchestrator, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if err := orch.Reset(ctx); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]string{"status": "reset"})
	}
}
