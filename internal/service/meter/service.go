package meter

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/transpo-mobility/fare-engine/internal/domain/models"
	"github.com/transpo-mobility/fare-engine/internal/domain/types"
	"github.com/transpo-mobility/fare-engine/internal/service/fare"
	"github.com/transpo-mobility/fare-engine/internal/tariff"
	"github.com/transpo-mobility/fare-engine/pkg/logger"
	wrap "github.com/transpo-mobility/fare-engine/pkg/logger/wrapper"
	"github.com/transpo-mobility/fare-engine/pkg/metrics"
)

const serviceName = "fare-engine"

// jitterKm: GPS points closer than 3 m are stationary noise, not movement.
const jitterKm = 0.003

// session is the mutable state of one running meter. Owned by Service;
// access goes through the service mutex.
type session struct {
	meterID  uuid.UUID
	driverID uuid.UUID
	status   types.MeterStatus
	rates    models.MeterRates

	startedAt  time.Time
	lastPoint  models.Coordinate
	lastUpdate time.Time

	distanceKm float64
	waitingMin float64
}

// Service runs CTQ-compliant taxi meters. Sessions live in memory: a meter is
// bound to the engine instance that started it, and a restart voids running
// meters the same way a power cut voids a physical one.
type Service struct {
	mu       sync.RWMutex
	sessions map[uuid.UUID]*session

	tariffs *tariff.Store
	log     logger.Logger

	// now is replaceable in tests to pin the rate period and elapsed time.
	now func() time.Time
}

func NewService(tariffs *tariff.Store, log logger.Logger) *Service {
	return &Service{
		sessions: make(map[uuid.UUID]*session),
		tariffs:  tariffs,
		log:      log,
		now:      time.Now,
	}
}

// Start opens a meter for the driver at the given position. The rate period
// is locked in from the start time for the whole trip.
func (s *Service) Start(ctx context.Context, driverID uuid.UUID, start models.Coordinate) (*models.MeterState, error) {
	ctx = wrap.WithAction(ctx, types.ActionMeterStart)

	if !start.Valid() {
		return nil, fmt.Errorf("%w: %+v", types.ErrInvalidCoordinate, start)
	}

	now := s.now()
	sess := &session{
		meterID:    uuid.New(),
		driverID:   driverID,
		status:     types.MeterRunning,
		rates:      RatesFor(now),
		startedAt:  now,
		lastPoint:  start,
		lastUpdate: now,
	}

	s.mu.Lock()
	s.sessions[sess.meterID] = sess
	active := len(s.sessions)
	s.mu.Unlock()

	metrics.ActiveMetersGauge.WithLabelValues(serviceName).Set(float64(active))
	s.log.Info(wrap.WithMeterID(ctx, sess.meterID.String()), "meter started",
		"rate_period", sess.rates.Period,
	)

	return s.state(sess), nil
}

// Update feeds a GPS point into the meter and returns the running breakdown.
// Movement below the speed threshold bills as waiting time; at or above it,
// as distance. A point within 3 m of the previous one is jitter and always
// bills as waiting.
func (s *Service) Update(ctx context.Context, driverID, meterID uuid.UUID, point models.Coordinate) (*models.MeterBreakdown, error) {
	ctx = wrap.WithAction(ctx, types.ActionMeterUpdate)
	ctx = wrap.WithMeterID(ctx, meterID.String())

	if !point.Valid() {
		return nil, fmt.Errorf("%w: %+v", types.ErrInvalidCoordinate, point)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.owned(driverID, meterID)
	if err != nil {
		return nil, wrap.Error(ctx, err)
	}

	now := s.now()
	elapsed := now.Sub(sess.lastUpdate)
	if elapsed > 0 {
		seg := fare.HaversineKm(sess.lastPoint, point)
		speedKmh := seg / elapsed.Hours()

		switch {
		case seg < jitterKm:
			sess.waitingMin += elapsed.Minutes()
		case speedKmh >= sess.rates.SpeedThresholdKmh:
			sess.distanceKm += seg
		default:
			sess.waitingMin += elapsed.Minutes()
		}
	}
	sess.lastPoint = point
	sess.lastUpdate = now

	breakdown := s.breakdown(sess)
	return &breakdown, nil
}

// Stop closes the meter and returns the final settlement, including the tip
// and the platform/driver split. Time between the last GPS update and the
// stop is billed as waiting.
func (s *Service) Stop(ctx context.Context, driverID, meterID uuid.UUID, tip types.Money) (*models.MeterSettlement, error) {
	ctx = wrap.WithAction(ctx, types.ActionMeterStop)
	ctx = wrap.WithMeterID(ctx, meterID.String())

	if tip.IsNegative() {
		return nil, fmt.Errorf("%w: %s", types.ErrNegativeTip, tip)
	}

	s.mu.Lock()
	sess, err := s.owned(driverID, meterID)
	if err != nil {
		s.mu.Unlock()
		return nil, wrap.Error(ctx, err)
	}

	now := s.now()
	if pending := now.Sub(sess.lastUpdate); pending > 0 {
		sess.waitingMin += pending.Minutes()
		sess.lastUpdate = now
	}
	sess.status = types.MeterCompleted
	breakdown := s.breakdown(sess)
	delete(s.sessions, meterID)
	active := len(s.sessions)
	s.mu.Unlock()

	metrics.ActiveMetersGauge.WithLabelValues(serviceName).Set(float64(active))

	rate := s.tariffs.Current().PlatformCommissionRate
	commission := types.NewMoney(breakdown.Subtotal.Decimal().Mul(rate))
	totalWithTip := breakdown.Total.Add(tip)

	settlement := &models.MeterSettlement{
		MeterBreakdown:       breakdown,
		TipAmount:            tip,
		TotalWithTip:         totalWithTip,
		CommissionableAmount: breakdown.Subtotal,
		PlatformCommission:   commission,
		DriverEarnings:       totalWithTip.Sub(commission),
	}

	s.log.Info(ctx, "meter stopped",
		"distance_km", breakdown.DistanceKm,
		"waiting_min", breakdown.WaitingMin,
		"total", settlement.TotalWithTip.String(),
	)

	return settlement, nil
}

// Get returns the session snapshot. Only the owning driver or an admin may
// read it.
func (s *Service) Get(ctx context.Context, caller *models.User, meterID uuid.UUID) (*models.MeterState, error) {
	ctx = wrap.WithAction(ctx, types.ActionMeterGet)

	s.mu.RLock()
	defer s.mu.RUnlock()

	sess, ok := s.sessions[meterID]
	if !ok {
		return nil, wrap.Error(ctx, types.ErrMeterNotFound)
	}
	if caller.Role != types.RoleAdmin && sess.driverID != caller.ID {
		return nil, wrap.Error(ctx, types.ErrForbidden)
	}

	return s.state(sess), nil
}

// ActiveCount reports the number of running meters.
func (s *Service) ActiveCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}

// owned fetches a running session and checks the driver owns it. Callers hold
// the mutex.
func (s *Service) owned(driverID, meterID uuid.UUID) (*session, error) {
	sess, ok := s.sessions[meterID]
	if !ok {
		return nil, types.ErrMeterNotFound
	}
	if sess.driverID != driverID {
		return nil, types.ErrForbidden
	}
	if sess.status != types.MeterRunning {
		return nil, types.ErrMeterCompleted
	}
	return sess, nil
}

// breakdown prices the session as of now. On a running meter the time since
// the last GPS update counts as waiting in the returned figures without
// touching the accumulators; only Update and Stop advance those.
func (s *Service) breakdown(sess *session) models.MeterBreakdown {
	waitingMin := sess.waitingMin
	if sess.status == types.MeterRunning {
		if pending := s.now().Sub(sess.lastUpdate); pending > 0 {
			waitingMin += pending.Minutes()
		}
	}

	distCharge := types.NewMoney(decimal.NewFromFloat(sess.distanceKm).Mul(sess.rates.PerKm.Decimal()))
	waitCharge := types.NewMoney(decimal.NewFromFloat(waitingMin).Mul(sess.rates.WaitingPerMin.Decimal()))

	subtotal := sess.rates.BaseFare.Add(distCharge).Add(waitCharge)

	// The CTQ base fares already include the statutory per-trip charge, so
	// the fee is reported as a line item but never added on top.
	return models.MeterBreakdown{
		MeterID:        sess.meterID,
		Status:         sess.status,
		RatePeriod:     sess.rates.Period,
		BaseFare:       sess.rates.BaseFare,
		DistanceKm:     sess.distanceKm,
		DistanceCharge: distCharge,
		WaitingMin:     waitingMin,
		WaitingCharge:  waitCharge,
		GovernmentFee:  governmentFee,
		Subtotal:       subtotal,
		Total:          subtotal,
		Rates:          sess.rates,
	}
}

func (s *Service) state(sess *session) *models.MeterState {
	return &models.MeterState{
		MeterID:   sess.meterID,
		DriverID:  sess.driverID,
		Status:    sess.status,
		StartedAt: sess.startedAt,
		Breakdown: s.breakdown(sess),
	}
}
