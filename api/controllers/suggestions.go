package controllers

import (
	"net/http"

	"github.com/brandbuddy-hq/brandbuddy-backend/api/responses"
	"github.com/brandbuddy-hq/brandbuddy-backend/api/validators"
	"github.com/brandbuddy-hq/brandbuddy-backend/internal/suggest"
	"github.com/brandbuddy-hq/brandbuddy-backend/pkg/logger"
)

// InventorySuggestion serves POST /inventory-suggestion: a per-SKU
// explanation of the item's state with concrete next steps.
func InventorySuggestion(svc *suggest.Service, logg *logger.Logger) http.HandlerFunc {
	return suggestionHandler(svc, logg, suggest.PageInventory)
}

// ReplenishmentSuggestion serves POST /replenishment-suggestion.
func ReplenishmentSuggestion(svc *suggest.Service, logg *logger.Logger) http.HandlerFunc {
	return suggestionHandler(svc, logg, suggest.PageReplenishment)
}

func suggestionHandler(svc *suggest.Service, logg *logger.Logger, page string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		var req suggest.Request
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		if err := suggest.ValidateRequest(req); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		if req.Page == "" {
			req.Page = page
		}

		responses.WriteSuccess(w, svc.Suggest(ctx, req))
	}
}
