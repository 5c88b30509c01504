package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/transpo-mobility/fare-engine/internal/service/fare"
	"github.com/transpo-mobility/fare-engine/internal/tariff"
	"github.com/transpo-mobility/fare-engine/pkg/logger"
)

const handlerTestTariff = `{
	"base_fare": 3.50,
	"per_km": 1.75,
	"per_min": 0.65,
	"government_fee": 0.90,
	"gst_rate": 0.05,
	"qst_rate": 0.09975,
	"platform_commission_rate": 0.25,
	"competitors": [
		{"provider_name": "UberX", "multiplier_vs_baseline": 0.92},
		{"provider_name": "Lyft", "multiplier_vs_baseline": 0.97}
	]
}`

func newFareHandler(t *testing.T) *Fare {
	t.Helper()

	path := filepath.Join(t.TempDir(), "tariff.json")
	if err := os.WriteFile(path, []byte(handlerTestTariff), 0o644); err != nil {
		t.Fatal(err)
	}

	log := logger.InitLogger("handler-test", logger.LevelError)
	store, err := tariff.NewStore(context.Background(), path, log)
	if err != nil {
		t.Fatalf("tariff store: %v", err)
	}

	return NewFare(fare.NewService(fare.NewHaversineEstimator(), store, log), log)
}

func postEstimate(t *testing.T, h *Fare, body string) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(http.MethodPost, "/api/fare/estimate", strings.NewReader(body))
	rec := httptest.NewRecorder()
	h.EstimateFare(rec, req)
	return rec
}

const montrealHop = `{
	"pickup_lat": 45.5017,
	"pickup_lng": -73.5673,
	"dropoff_lat": 45.5088,
	"dropoff_lng": -73.5538,
	"vehicle_type": "sedan"
}`

func TestEstimateFare_OK(t *testing.T) {
	h := newFareHandler(t)

	rec := postEstimate(t, h, montrealHop)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("content type = %q", ct)
	}

	var resp struct {
		OurFare struct {
			DistanceKm  float64 `json:"distance_km"`
			DurationMin int     `json:"duration_min"`
		} `json:"our_fare"`
		CompetitorEstimates []struct {
			Provider string `json:"provider"`
		} `json:"competitor_estimates"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.OurFare.DistanceKm != 1.7 || resp.OurFare.DurationMin != 3 {
		t.Errorf("trip = (%v, %v), want (1.7, 3)", resp.OurFare.DistanceKm, resp.OurFare.DurationMin)
	}
	if len(resp.CompetitorEstimates) != 2 || resp.CompetitorEstimates[0].Provider != "UberX" {
		t.Errorf("competitors = %+v", resp.CompetitorEstimates)
	}

	// money fields render as plain two-decimal numbers
	for _, want := range []string{`"base_fare": 3.50`, `"gst": 0.47`, `"qst": 0.93`, `"total": 10.73`} {
		if !strings.Contains(rec.Body.String(), want) {
			t.Errorf("body missing %s:\n%s", want, rec.Body.String())
		}
	}
}

func TestEstimateFare_Deterministic(t *testing.T) {
	h := newFareHandler(t)

	first := postEstimate(t, h, montrealHop)
	second := postEstimate(t, h, montrealHop)

	if !bytes.Equal(first.Body.Bytes(), second.Body.Bytes()) {
		t.Errorf("identical requests produced different bodies:\n%s\n---\n%s", first.Body.String(), second.Body.String())
	}
}

func TestEstimateFare_UnknownVehicleType(t *testing.T) {
	h := newFareHandler(t)

	body := `{
		"pickup_lat": 45.5017,
		"pickup_lng": -73.5673,
		"dropoff_lat": 45.5088,
		"dropoff_lng": -73.5538,
		"vehicle_type": "bus"
	}`
	rec := postEstimate(t, h, body)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}

	var resp struct {
		Error  string            `json:"error"`
		Detail map[string]string `json:"detail"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.Error != "INVALID_INPUT" {
		t.Errorf("error code = %q", resp.Error)
	}
	if _, ok := resp.Detail["vehicle_type"]; !ok {
		t.Errorf("detail does not name vehicle_type: %+v", resp.Detail)
	}
}

func TestEstimateFare_MissingPickup(t *testing.T) {
	h := newFareHandler(t)

	body := `{
		"dropoff_lat": 45.5088,
		"dropoff_lng": -73.5538,
		"vehicle_type": "sedan"
	}`
	rec := postEstimate(t, h, body)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
	for _, field := range []string{"pickup_lat", "pickup_lng"} {
		if !strings.Contains(rec.Body.String(), field) {
			t.Errorf("detail does not name %s:\n%s", field, rec.Body.String())
		}
	}
}

func TestEstimateFare_ZeroCoordinatesAreValid(t *testing.T) {
	h := newFareHandler(t)

	body := `{
		"pickup_lat": 0,
		"pickup_lng": 0,
		"dropoff_lat": 0,
		"dropoff_lng": 0,
		"vehicle_type": "sedan"
	}`
	rec := postEstimate(t, h, body)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}
	if !strings.Contains(rec.Body.String(), `"total": 5.06`) {
		t.Errorf("zero-distance fare:\n%s", rec.Body.String())
	}
}

func TestEstimateFare_MalformedBody(t *testing.T) {
	h := newFareHandler(t)

	for name, body := range map[string]string{
		"bad json":      `{"pickup_lat": `,
		"empty":         ``,
		"unknown field": `{"pickup_lat": 1, "pickup_lng": 1, "dropoff_lat": 1, "dropoff_lng": 1, "vehicle_type": "sedan", "surge": true}`,
		"wrong type":    `{"pickup_lat": "here", "pickup_lng": 1, "dropoff_lat": 1, "dropoff_lng": 1, "vehicle_type": "sedan"}`,
	} {
		rec := postEstimate(t, h, body)
		if rec.Code != http.StatusBadRequest {
			t.Errorf("%s: status = %d, want 400", name, rec.Code)
		}
	}
}
