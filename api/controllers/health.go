package controllers

import (
	"net/http"

	"github.com/brandbuddy-hq/brandbuddy-backend/api/responses"
	"github.com/brandbuddy-hq/brandbuddy-backend/pkg/config"
)

func HealthLive(cfg *config.Config) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-BrandBuddy-Env", cfg.App.Env)
		responses.WriteSuccess(w, map[string]string{"status": "live", "brand": cfg.Tenant.Brand})
	}
}
