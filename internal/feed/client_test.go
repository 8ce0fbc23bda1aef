package feed

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/brandbuddy-hq/brandbuddy-backend/pkg/config"
	pkgerrors "github.com/brandbuddy-hq/brandbuddy-backend/pkg/errors"
)

func feedConfig(baseURL string) config.FeedConfig {
	return config.FeedConfig{BaseURL: baseURL, Token: "test-token", PageLimit: 500}
}

func TestFetchProductsParsesEnvelopeAndFilters(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("token"); got != "test-token" {
			t.Errorf("expected token query param, got %q", got)
		}
		if got := r.URL.Query().Get("limit"); got != "500" {
			t.Errorf("expected limit query param, got %q", got)
		}
		if got := r.URL.Query().Get("brand_name"); got != "Callahan-Smith" {
			t.Errorf("expected brand_name query param, got %q", got)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"data":[
			{"product_id":"p1","brand_name":"Callahan-Smith","product_sku":"SKU-1","unit_quantity":5,"active":true},
			{"product_id":"p2","brand_name":"Other-Brand","product_sku":"SKU-2","unit_quantity":9,"active":true}
		],"rows":2}`))
	}))
	defer server.Close()

	client := NewClient(feedConfig(server.URL), feedConfig(server.URL), "Callahan-Smith")
	products, err := client.FetchProducts(context.Background())
	if err != nil {
		t.Fatalf("fetch products: %v", err)
	}
	if len(products) != 1 {
		t.Fatalf("expected upstream rows re-filtered to 1, got %d", len(products))
	}
	if products[0].ProductID != "p1" {
		t.Fatalf("unexpected product %+v", products[0])
	}
}

func TestFetchMissingDataFieldMeansEmpty(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte(`{"meta":{"rows":0}}`))
	}))
	defer server.Close()

	client := NewClient(feedConfig(server.URL), feedConfig(server.URL), "Callahan-Smith")
	products, err := client.FetchProducts(context.Background())
	if err != nil {
		t.Fatalf("fetch products: %v", err)
	}
	if len(products) != 0 {
		t.Fatalf("missing data field should yield empty slice, got %d", len(products))
	}
}

func TestFetchReturnsConfigErrorWhenUnconfigured(t *testing.T) {
	client := NewClient(config.FeedConfig{}, config.FeedConfig{}, "Callahan-Smith")
	_, err := client.FetchProducts(context.Background())
	if !pkgerrors.IsCode(err, pkgerrors.CodeConfig) {
		t.Fatalf("expected config error, got %v", err)
	}
}

func TestFetchMapsNon2xxToUpstreamError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "nope", http.StatusBadGateway)
	}))
	defer server.Close()

	client := NewClient(feedConfig(server.URL), feedConfig(server.URL), "Callahan-Smith")
	_, err := client.FetchShipments(context.Background())
	if !pkgerrors.IsCode(err, pkgerrors.CodeUpstream) {
		t.Fatalf("expected upstream error, got %v", err)
	}
}

func TestFetchMapsMalformedJSONToUpstreamError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte(`{"data":[`))
	}))
	defer server.Close()

	client := NewClient(feedConfig(server.URL), feedConfig(server.URL), "Callahan-Smith")
	_, err := client.FetchShipments(context.Background())
	if !pkgerrors.IsCode(err, pkgerrors.CodeUpstream) {
		t.Fatalf("expected upstream error, got %v", err)
	}
}

func TestSnapshotFetchesBothFeedsInParallel(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		calls.Add(1)
		w.Write([]byte(`{"data":[]}`))
	}))
	defer server.Close()

	client := NewClient(feedConfig(server.URL), feedConfig(server.URL), "Callahan-Smith")
	snap, err := client.Snapshot(context.Background())
	if err != nil {
		t.Fatalf("snapshot: %v", err)
	}
	if calls.Load() != 2 {
		t.Fatalf("expected both feeds hit, got %d calls", calls.Load())
	}
	if snap.Products == nil || snap.Shipments == nil {
		t.Fatal("snapshot slices should be non-nil even when empty")
	}
}

func TestSnapshotPropagatesFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "down", http.StatusInternalServerError)
	}))
	defer server.Close()

	client := NewClient(feedConfig(server.URL), feedConfig(server.URL), "Callahan-Smith")
	if _, err := client.Snapshot(context.Background()); err == nil {
		t.Fatal("expected snapshot to fail when a feed is down")
	}
}
