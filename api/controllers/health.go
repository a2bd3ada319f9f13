package controllers

import (
	"net/http"

	"github.com/parkpulse/parkpulse-backend/api/responses"
	"github.com/parkpulse/parkpulse-backend/pkg/config"
)

func HealthLive(cfg *config.Config) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-ParkPulse-Env", cfg.App.Env)
		responses.WriteSuccess(w, map[string]string{"status": "live"})
	}
}
