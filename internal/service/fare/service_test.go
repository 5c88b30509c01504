package fare

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/transpo-mobility/fare-engine/internal/domain/models"
	"github.com/transpo-mobility/fare-engine/internal/domain/types"
	"github.com/transpo-mobility/fare-engine/internal/tariff"
	"github.com/transpo-mobility/fare-engine/pkg/logger"
)

const serviceTestTariff = `{
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

func newTestService(t *testing.T) *Service {
	t.Helper()

	path := filepath.Join(t.TempDir(), "tariff.json")
	if err := os.WriteFile(path, []byte(serviceTestTariff), 0o644); err != nil {
		t.Fatal(err)
	}

	log := logger.InitLogger("fare-test", logger.LevelError)
	store, err := tariff.NewStore(context.Background(), path, log)
	if err != nil {
		t.Fatalf("tariff store: %v", err)
	}

	return NewService(NewHaversineEstimator(), store, log)
}

func TestEstimate_EndToEnd(t *testing.T) {
	svc := newTestService(t)

	est, err := svc.Estimate(context.Background(), oldPort, placeDesArts, types.ClassSedan)
	if err != nil {
		t.Fatalf("estimate: %v", err)
	}

	fare := est.OurFare
	if fare.DistanceKm != 1.7 || fare.DurationMin != 3 {
		t.Fatalf("trip = (%v km, %v min), want (1.7, 3)", fare.DistanceKm, fare.DurationMin)
	}
	assertMoney(t, "base_fare", fare.BaseFare, "3.50")
	assertMoney(t, "distance_charge", fare.DistanceCharge, "2.98")
	assertMoney(t, "time_charge", fare.TimeCharge, "1.95")
	assertMoney(t, "government_fee", fare.GovernmentFee, "0.90")
	assertMoney(t, "gst", fare.GST, "0.47")
	assertMoney(t, "qst", fare.QST, "0.93")
	assertMoney(t, "total", fare.Total, "10.73")

	if len(est.CompetitorEstimates) != 2 {
		t.Fatalf("got %d competitor estimates, want 2", len(est.CompetitorEstimates))
	}
	if est.CompetitorEstimates[0].Provider != "UberX" {
		t.Errorf("competitor order not preserved: %+v", est.CompetitorEstimates)
	}
}

func TestEstimate_InvalidCoordinates(t *testing.T) {
	svc := newTestService(t)

	bad := models.Coordinate{Lat: 91.0, Lng: 0}
	if _, err := svc.Estimate(context.Background(), bad, placeDesArts, types.ClassSedan); !errors.Is(err, types.ErrInvalidCoordinate) {
		t.Errorf("bad pickup: got %v", err)
	}
	if _, err := svc.Estimate(context.Background(), oldPort, bad, types.ClassSedan); !errors.Is(err, types.ErrInvalidCoordinate) {
		t.Errorf("bad dropoff: got %v", err)
	}
}

func TestEstimate_UnknownVehicleClass(t *testing.T) {
	svc := newTestService(t)

	_, err := svc.Estimate(context.Background(), oldPort, placeDesArts, types.VehicleClass("bus"))
	if !errors.Is(err, types.ErrUnknownVehicleClass) {
		t.Fatalf("got %v, want ErrUnknownVehicleClass", err)
	}
}

func TestQuote_CarriesTariffVersion(t *testing.T) {
	svc := newTestService(t)

	fare, version, err := svc.Quote(context.Background(), 10.0, 15, types.ClassSedan)
	if err != nil {
		t.Fatalf("quote: %v", err)
	}
	if version != svc.TariffVersion() {
		t.Errorf("quote version %s != active version %s", version, svc.TariffVersion())
	}
	assertMoney(t, "total", fare.Total, "36.39")
}
