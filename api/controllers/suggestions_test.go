package controllers

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/brandbuddy-hq/brandbuddy-backend/internal/suggest"
)

func testSuggestService() *suggest.Service {
	return suggest.NewService(nil, "", nil, testLogger())
}

func TestInventorySuggestionSuccess(t *testing.T) {
	body := `{"itemData":{"sku":"SKU-9","name":"Widget","supplier":"Acme","unitQuantity":0,"unitCost":25,"active":true,"status":"Out of Stock","totalValue":0}}`
	req := httptest.NewRequest(http.MethodPost, "/inventory-suggestion", strings.NewReader(body))
	rec := httptest.NewRecorder()

	InventorySuggestion(testSuggestService(), testLogger()).ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	data := dataOf(t, rec)
	if data["sku"] != "SKU-9" {
		t.Fatalf("expected sku echoed back, got %v", data["sku"])
	}
	if data["priority"] != suggest.PriorityHigh {
		t.Fatalf("out-of-stock active item should be high priority, got %v", data["priority"])
	}
	for _, key := range []string{"suggestion", "actionable", "estimatedImpact"} {
		if _, ok := data[key]; !ok {
			t.Fatalf("payload missing %q", key)
		}
	}
}

func TestInventorySuggestionMissingSKU(t *testing.T) {
	body := `{"itemData":{"name":"Widget"}}`
	req := httptest.NewRequest(http.MethodPost, "/inventory-suggestion", strings.NewReader(body))
	rec := httptest.NewRecorder()

	InventorySuggestion(testSuggestService(), testLogger()).ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
	envelope := decodeEnvelope(t, rec)
	if envelope["success"] != false {
		t.Fatalf("expected failure envelope, got %v", envelope)
	}
}

func TestInventorySuggestionMalformedBody(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/inventory-suggestion", strings.NewReader("{not json"))
	rec := httptest.NewRecorder()

	InventorySuggestion(testSuggestService(), testLogger()).ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestReplenishmentSuggestionDefaultsPage(t *testing.T) {
	body := `{"itemData":{"sku":"SKU-2","unitQuantity":3,"unitCost":4,"active":true}}`
	req := httptest.NewRequest(http.MethodPost, "/replenishment-suggestion", strings.NewReader(body))
	rec := httptest.NewRecorder()

	ReplenishmentSuggestion(testSuggestService(), testLogger()).ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	data := dataOf(t, rec)
	if data["priority"] != suggest.PriorityMedium {
		t.Fatalf("low stock item should be medium priority, got %v", data["priority"])
	}
}
