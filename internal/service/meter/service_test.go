package meter

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/transpo-mobility/fare-engine/internal/domain/models"
	"github.com/transpo-mobility/fare-engine/internal/domain/types"
	"github.com/transpo-mobility/fare-engine/internal/tariff"
	"github.com/transpo-mobility/fare-engine/pkg/logger"
)

const testTariff = `{
	"base_fare": 3.50,
	"per_km": 1.75,
	"per_min": 0.65,
	"government_fee": 0.90,
	"gst_rate": 0.05,
	"qst_rate": 0.09975,
	"platform_commission_rate": 0.25
}`

var startPoint = models.Coordinate{Lat: 45.5017, Lng: -73.5673}

// oneKmNorth is close to 1 km up the meridian from startPoint.
var oneKmNorth = models.Coordinate{Lat: 45.5017 + 0.008993, Lng: -73.5673}

type clock struct {
	t time.Time
}

func (c *clock) Now() time.Time { return c.t }

func (c *clock) Advance(d time.Duration) { c.t = c.t.Add(d) }

func newTestService(t *testing.T, at time.Time) (*Service, *clock) {
	t.Helper()

	path := filepath.Join(t.TempDir(), "tariff.json")
	if err := os.WriteFile(path, []byte(testTariff), 0o644); err != nil {
		t.Fatal(err)
	}

	log := logger.InitLogger("meter-test", logger.LevelError)
	store, err := tariff.NewStore(context.Background(), path, log)
	if err != nil {
		t.Fatal(err)
	}

	c := &clock{t: at}
	svc := NewService(store, log)
	svc.now = c.Now

	return svc, c
}

func noon() time.Time {
	return time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
}

func TestRatesFor_Periods(t *testing.T) {
	tests := []struct {
		hour, minute int
		want         types.RatePeriod
	}{
		{12, 0, types.PeriodDay},
		{5, 0, types.PeriodDay},
		{22, 59, types.PeriodDay},
		{23, 0, types.PeriodNight},
		{2, 30, types.PeriodNight},
		{4, 59, types.PeriodNight},
	}

	for _, tt := range tests {
		at := time.Date(2026, 3, 10, tt.hour, tt.minute, 0, 0, time.UTC)
		if got := RatesFor(at).Period; got != tt.want {
			t.Errorf("RatesFor(%02d:%02d) = %s, want %s", tt.hour, tt.minute, got, tt.want)
		}
	}
}

func TestMeter_MovingBillsDistance(t *testing.T) {
	svc, c := newTestService(t, noon())
	driverID := uuid.New()

	state, err := svc.Start(context.Background(), driverID, startPoint)
	if err != nil {
		t.Fatalf("start: %v", err)
	}
	if state.Breakdown.BaseFare.String() != "5.15" {
		t.Errorf("day base = %s, want 5.15", state.Breakdown.BaseFare)
	}

	// ~1 km in 2 min is ~30 km/h, above the day threshold
	c.Advance(2 * time.Minute)
	bd, err := svc.Update(context.Background(), driverID, state.MeterID, oneKmNorth)
	if err != nil {
		t.Fatalf("update: %v", err)
	}

	if bd.DistanceKm < 0.95 || bd.DistanceKm > 1.05 {
		t.Errorf("distance = %v km, want ~1.0", bd.DistanceKm)
	}
	if bd.WaitingMin != 0 {
		t.Errorf("waiting = %v min, want 0", bd.WaitingMin)
	}

	if !bd.Total.Equal(bd.Subtotal) {
		t.Errorf("total %s != subtotal %s", bd.Total, bd.Subtotal)
	}
}

func TestMeter_GovernmentFeeIsDisplayOnly(t *testing.T) {
	svc, _ := newTestService(t, noon())

	state, err := svc.Start(context.Background(), uuid.New(), startPoint)
	if err != nil {
		t.Fatal(err)
	}

	// the base fares include the statutory charge; a fresh meter reads the
	// base fare, never base plus fee
	bd := state.Breakdown
	if bd.GovernmentFee.String() != "0.90" {
		t.Errorf("government fee line = %s, want 0.90", bd.GovernmentFee)
	}
	if bd.Subtotal.String() != "5.15" {
		t.Errorf("subtotal = %s, want 5.15", bd.Subtotal)
	}
	if bd.Total.String() != "5.15" {
		t.Errorf("total = %s, want 5.15 (fee must not be added on top)", bd.Total)
	}
}

func TestMeter_StationaryBillsWaiting(t *testing.T) {
	svc, c := newTestService(t, noon())
	driverID := uuid.New()

	state, err := svc.Start(context.Background(), driverID, startPoint)
	if err != nil {
		t.Fatal(err)
	}

	// same point two minutes later: GPS jitter, bill as waiting
	c.Advance(2 * time.Minute)
	bd, err := svc.Update(context.Background(), driverID, state.MeterID, startPoint)
	if err != nil {
		t.Fatal(err)
	}

	if bd.DistanceKm != 0 {
		t.Errorf("distance = %v, want 0", bd.DistanceKm)
	}
	if bd.WaitingMin != 2.0 {
		t.Errorf("waiting = %v min, want 2", bd.WaitingMin)
	}
	if bd.WaitingCharge.String() != "1.54" {
		t.Errorf("waiting charge = %s, want 1.54 (2 min at 0.77)", bd.WaitingCharge)
	}
}

func TestMeter_SlowTrafficBillsWaiting(t *testing.T) {
	svc, c := newTestService(t, noon())
	driverID := uuid.New()

	state, err := svc.Start(context.Background(), driverID, startPoint)
	if err != nil {
		t.Fatal(err)
	}

	// ~200 m in 2 min is ~6 km/h, below the threshold
	crawl := models.Coordinate{Lat: startPoint.Lat + 0.0018, Lng: startPoint.Lng}
	c.Advance(2 * time.Minute)
	bd, err := svc.Update(context.Background(), driverID, state.MeterID, crawl)
	if err != nil {
		t.Fatal(err)
	}

	if bd.DistanceKm != 0 {
		t.Errorf("distance = %v, below-threshold movement must not bill distance", bd.DistanceKm)
	}
	if bd.WaitingMin != 2.0 {
		t.Errorf("waiting = %v min, want 2", bd.WaitingMin)
	}
}

func TestMeter_NightRates(t *testing.T) {
	at := time.Date(2026, 3, 10, 23, 30, 0, 0, time.UTC)
	svc, _ := newTestService(t, at)

	state, err := svc.Start(context.Background(), uuid.New(), startPoint)
	if err != nil {
		t.Fatal(err)
	}

	if state.Breakdown.RatePeriod != types.PeriodNight {
		t.Errorf("period = %s, want night", state.Breakdown.RatePeriod)
	}
	if state.Breakdown.BaseFare.String() != "5.75" {
		t.Errorf("night base = %s, want 5.75", state.Breakdown.BaseFare)
	}
}

func TestMeter_RatePeriodLockedAtStart(t *testing.T) {
	at := time.Date(2026, 3, 10, 22, 58, 0, 0, time.UTC)
	svc, c := newTestService(t, at)
	driverID := uuid.New()

	state, err := svc.Start(context.Background(), driverID, startPoint)
	if err != nil {
		t.Fatal(err)
	}

	// trip crosses into the night period; the day card stays in force
	c.Advance(10 * time.Minute)
	bd, err := svc.Update(context.Background(), driverID, state.MeterID, startPoint)
	if err != nil {
		t.Fatal(err)
	}
	if bd.RatePeriod != types.PeriodDay {
		t.Errorf("period changed mid-trip to %s", bd.RatePeriod)
	}
	if bd.BaseFare.String() != "5.15" {
		t.Errorf("base switched mid-trip to %s", bd.BaseFare)
	}
}

func TestMeter_StopSettlement(t *testing.T) {
	svc, c := newTestService(t, noon())
	driverID := uuid.New()

	state, err := svc.Start(context.Background(), driverID, startPoint)
	if err != nil {
		t.Fatal(err)
	}

	// ten minutes waiting: 5.15 base + 7.70 waiting = 12.85 subtotal
	c.Advance(10 * time.Minute)
	if _, err := svc.Update(context.Background(), driverID, state.MeterID, startPoint); err != nil {
		t.Fatal(err)
	}

	settlement, err := svc.Stop(context.Background(), driverID, state.MeterID, types.MoneyFromFloat(2.00))
	if err != nil {
		t.Fatalf("stop: %v", err)
	}

	if settlement.Subtotal.String() != "12.85" {
		t.Errorf("subtotal = %s, want 12.85", settlement.Subtotal)
	}
	if settlement.Total.String() != "12.85" {
		t.Errorf("total = %s, want 12.85", settlement.Total)
	}
	if settlement.TotalWithTip.String() != "14.85" {
		t.Errorf("total with tip = %s, want 14.85", settlement.TotalWithTip)
	}
	if settlement.PlatformCommission.String() != "3.21" {
		t.Errorf("commission = %s, want 3.21 (25%% of subtotal)", settlement.PlatformCommission)
	}
	if settlement.DriverEarnings.String() != "11.64" {
		t.Errorf("driver earnings = %s, want 11.64", settlement.DriverEarnings)
	}

	// the session is gone after stop
	if _, err := svc.Update(context.Background(), driverID, state.MeterID, startPoint); !errors.Is(err, types.ErrMeterNotFound) {
		t.Errorf("update after stop: got %v, want ErrMeterNotFound", err)
	}
	if svc.ActiveCount() != 0 {
		t.Errorf("active count = %d after stop, want 0", svc.ActiveCount())
	}
}

func TestMeter_StopBillsFinalWait(t *testing.T) {
	svc, c := newTestService(t, noon())
	driverID := uuid.New()

	state, err := svc.Start(context.Background(), driverID, startPoint)
	if err != nil {
		t.Fatal(err)
	}

	// no GPS update ever arrives; the four minutes until stop still bill
	// as waiting
	c.Advance(4 * time.Minute)
	settlement, err := svc.Stop(context.Background(), driverID, state.MeterID, types.Money{})
	if err != nil {
		t.Fatalf("stop: %v", err)
	}

	if settlement.WaitingMin != 4.0 {
		t.Errorf("waiting = %v min, want 4", settlement.WaitingMin)
	}
	if settlement.WaitingCharge.String() != "3.08" {
		t.Errorf("waiting charge = %s, want 3.08 (4 min at 0.77)", settlement.WaitingCharge)
	}
	if settlement.Total.String() != "8.23" {
		t.Errorf("total = %s, want 8.23", settlement.Total)
	}
	if settlement.PlatformCommission.String() != "2.06" {
		t.Errorf("commission = %s, want 2.06", settlement.PlatformCommission)
	}
	if settlement.DriverEarnings.String() != "6.17" {
		t.Errorf("driver earnings = %s, want 6.17", settlement.DriverEarnings)
	}
}

func TestMeter_LiveBreakdownIncludesPendingWait(t *testing.T) {
	svc, c := newTestService(t, noon())
	driverID := uuid.New()
	driver := &models.User{ID: driverID, Role: types.RoleDriver}

	state, err := svc.Start(context.Background(), driverID, startPoint)
	if err != nil {
		t.Fatal(err)
	}

	// a read three minutes in already shows the pending wait
	c.Advance(3 * time.Minute)
	snap, err := svc.Get(context.Background(), driver, state.MeterID)
	if err != nil {
		t.Fatal(err)
	}
	if snap.Breakdown.WaitingMin != 3.0 {
		t.Errorf("live waiting = %v min, want 3", snap.Breakdown.WaitingMin)
	}

	// the read is display-only: the next update still bills the full span
	// since the last update
	c.Advance(1 * time.Minute)
	bd, err := svc.Update(context.Background(), driverID, state.MeterID, startPoint)
	if err != nil {
		t.Fatal(err)
	}
	if bd.WaitingMin != 4.0 {
		t.Errorf("waiting after update = %v min, want 4", bd.WaitingMin)
	}
}

func TestMeter_Ownership(t *testing.T) {
	svc, _ := newTestService(t, noon())
	driverID := uuid.New()

	state, err := svc.Start(context.Background(), driverID, startPoint)
	if err != nil {
		t.Fatal(err)
	}

	other := uuid.New()
	if _, err := svc.Update(context.Background(), other, state.MeterID, startPoint); !errors.Is(err, types.ErrForbidden) {
		t.Errorf("foreign update: got %v, want ErrForbidden", err)
	}
	if _, err := svc.Stop(context.Background(), other, state.MeterID, types.Money{}); !errors.Is(err, types.ErrForbidden) {
		t.Errorf("foreign stop: got %v, want ErrForbidden", err)
	}

	stranger := &models.User{ID: other, Role: types.RoleDriver}
	if _, err := svc.Get(context.Background(), stranger, state.MeterID); !errors.Is(err, types.ErrForbidden) {
		t.Errorf("foreign get: got %v, want ErrForbidden", err)
	}

	admin := &models.User{ID: uuid.New(), Role: types.RoleAdmin}
	if _, err := svc.Get(context.Background(), admin, state.MeterID); err != nil {
		t.Errorf("admin get: %v", err)
	}
}

func TestMeter_NegativeTip(t *testing.T) {
	svc, _ := newTestService(t, noon())
	driverID := uuid.New()

	state, err := svc.Start(context.Background(), driverID, startPoint)
	if err != nil {
		t.Fatal(err)
	}

	if _, err := svc.Stop(context.Background(), driverID, state.MeterID, types.MoneyFromFloat(-1)); !errors.Is(err, types.ErrNegativeTip) {
		t.Fatalf("got %v, want ErrNegativeTip", err)
	}

	// the failed stop must not kill the session
	if svc.ActiveCount() != 1 {
		t.Error("session must survive a rejected stop")
	}
}
