package booking

import (
	"context"
	"crypto/rand"
	"fmt"
	"math/big"
	"time"

	"github.com/google/uuid"

	"github.com/transpo-mobility/fare-engine/internal/domain/models"
	"github.com/transpo-mobility/fare-engine/internal/domain/types"
	"github.com/transpo-mobility/fare-engine/internal/tariff"
	"github.com/transpo-mobility/fare-engine/pkg/logger"
	wrap "github.com/transpo-mobility/fare-engine/pkg/logger/wrapper"
	"github.com/transpo-mobility/fare-engine/pkg/metrics"
)

const serviceName = "fare-engine"

// Service creates and reads bookings. A booking's fare is always recomputed
// server-side against the tariff revision active at confirmation time, so a
// quote that aged past a tariff reload silently reprices instead of binding a
// stale estimate.
type Service struct {
	repo      Repo
	fares     FareQuoter
	tariffs   *tariff.Store
	publisher SettlementPublisher
	trm       TxManager

	log logger.Logger
}

func NewService(repo Repo, fares FareQuoter, tariffs *tariff.Store, publisher SettlementPublisher, trm TxManager, log logger.Logger) *Service {
	return &Service{
		repo:      repo,
		fares:     fares,
		tariffs:   tariffs,
		publisher: publisher,
		trm:       trm,
		log:       log,
	}
}

// Create confirms a booking for rider riderID. The returned booking carries
// the authoritative itemization and the tariff version that produced it.
func (s *Service) Create(ctx context.Context, riderID uuid.UUID, pickup, dropoff models.Location, class types.VehicleClass) (*models.Booking, error) {
	ctx = wrap.WithAction(ctx, types.ActionBookingCreate)

	if !pickup.Valid() {
		return nil, fmt.Errorf("%w: pickup %+v", types.ErrInvalidCoordinate, pickup.Coordinate)
	}
	if !dropoff.Valid() {
		return nil, fmt.Errorf("%w: dropoff %+v", types.ErrInvalidCoordinate, dropoff.Coordinate)
	}

	km, min := s.fares.EstimateTrip(pickup.Coordinate, dropoff.Coordinate)
	fare, tariffVersion, err := s.fares.Quote(ctx, km, min, class)
	if err != nil {
		metrics.RecordBooking(serviceName, string(class), err)
		return nil, wrap.Error(ctx, err)
	}

	split := SettlementSplit(fare, s.tariffs.Current())

	b := &models.Booking{
		ID:                 uuid.New(),
		BookingNumber:      newBookingNumber(),
		RiderID:            riderID,
		Status:             types.BookingConfirmed,
		VehicleClass:       class,
		Pickup:             pickup,
		Dropoff:            dropoff,
		Fare:               fare,
		PlatformCommission: split.Commission,
		TariffVersion:      tariffVersion,
		CreatedAt:          time.Now().UTC(),
	}
	ctx = wrap.WithBookingID(ctx, b.ID.String())

	err = s.trm.Do(ctx, func(ctx context.Context) error {
		return s.repo.Create(ctx, b)
	})
	metrics.RecordBooking(serviceName, string(class), err)
	if err != nil {
		return nil, wrap.Error(ctx, fmt.Errorf("create booking: %w", err))
	}

	s.publishSettlement(ctx, b, split)

	s.log.Info(ctx, "booking confirmed",
		"booking_number", b.BookingNumber,
		"vehicle_class", class,
		"total", fare.Total.String(),
		"tariff_version", tariffVersion,
	)

	return b, nil
}

// Get returns a booking by ID. Riders can only read their own bookings;
// admins can read any.
func (s *Service) Get(ctx context.Context, caller *models.User, id uuid.UUID) (*models.Booking, error) {
	ctx = wrap.WithAction(ctx, types.ActionBookingGet)
	ctx = wrap.WithBookingID(ctx, id.String())

	b, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, wrap.Error(ctx, err)
	}

	if caller.Role != types.RoleAdmin && b.RiderID != caller.ID {
		return nil, wrap.Error(ctx, types.ErrForbidden)
	}

	return b, nil
}

// ListForRider returns the caller's booking history, newest first.
func (s *Service) ListForRider(ctx context.Context, riderID uuid.UUID) ([]models.Booking, error) {
	ctx = wrap.WithAction(ctx, types.ActionBookingList)

	bookings, err := s.repo.ListByRider(ctx, riderID)
	if err != nil {
		return nil, wrap.Error(ctx, err)
	}

	return bookings, nil
}

// List returns a page of all bookings. Admin only; the handler enforces the
// role.
func (s *Service) List(ctx context.Context, limit, offset int) ([]models.Booking, error) {
	ctx = wrap.WithAction(ctx, types.ActionBookingList)

	bookings, err := s.repo.List(ctx, limit, offset)
	if err != nil {
		return nil, wrap.Error(ctx, err)
	}

	return bookings, nil
}

// publishSettlement emits the settlement event. Publishing is best effort: the
// booking is already committed, so a broker outage only delays the payout
// pipeline, which reconciles from the database anyway.
func (s *Service) publishSettlement(ctx context.Context, b *models.Booking, split Split) {
	msg := models.BookingSettlementMessage{
		BookingID:            b.ID,
		BookingNumber:        b.BookingNumber,
		RiderID:              b.RiderID,
		VehicleClass:         string(b.VehicleClass),
		Total:                b.Fare.Total,
		CommissionableAmount: split.Commissionable,
		PlatformCommission:   split.Commission,
		DriverEarnings:       split.DriverEarnings,
		TariffVersion:        b.TariffVersion,
		CreatedAt:            b.CreatedAt,
		CorrelationID:        uuid.NewString(),
	}

	if err := s.publisher.PublishSettlement(ctx, msg); err != nil {
		s.log.Error(ctx, "settlement publish failed", err,
			"booking_number", b.BookingNumber,
		)
	}
}

// Split is the commission breakdown of a fare.
type Split struct {
	Commissionable types.Money
	Commission     types.Money
	DriverEarnings types.Money
}

// SettlementSplit divides a fare between platform and driver. Commission
// applies only to the service portion (base, distance, time); the government
// fee and taxes are pass-throughs and never commissioned.
func SettlementSplit(fare *models.FareItemization, table *models.TariffTable) Split {
	commissionable := fare.BaseFare.Add(fare.DistanceCharge).Add(fare.TimeCharge)
	commission := types.NewMoney(commissionable.Decimal().Mul(table.PlatformCommissionRate))

	return Split{
		Commissionable: commissionable,
		Commission:     commission,
		DriverEarnings: commissionable.Sub(commission),
	}
}

// newBookingNumber builds a short human-readable reference like BK-4X7K2M9Q.
// Uniqueness is enforced by the database column, not the generator.
func newBookingNumber() string {
	const alphabet = "23456789ABCDEFGHJKMNPQRSTUVWXYZ"

	buf := make([]byte, 8)
	for i := range buf {
		n, err := rand.Int(rand.Reader, big.NewInt(int64(len(alphabet))))
		if err != nil {
			// crypto/rand only fails when the OS entropy source is broken
			return "BK-" + uuid.NewString()[:8]
		}
		buf[i] = alphabet[n.Int64()]
	}

	return "BK-" + string(buf)
}
