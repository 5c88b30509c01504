package booking

import (
	"context"

	"github.com/google/uuid"

	"github.com/transpo-mobility/fare-engine/internal/domain/models"
	"github.com/transpo-mobility/fare-engine/internal/domain/types"
)

// Repo persists booking records.
type Repo interface {
	Create(ctx context.Context, b *models.Booking) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Booking, error)
	ListByRider(ctx context.Context, riderID uuid.UUID) ([]models.Booking, error)
	List(ctx context.Context, limit, offset int) ([]models.Booking, error)
}

// FareQuoter recomputes the fare at booking time. Implemented by the fare
// service; the client's pre-booking estimate is never trusted.
type FareQuoter interface {
	EstimateTrip(pickup, dropoff models.Coordinate) (km float64, min int)
	Quote(ctx context.Context, distanceKm float64, durationMin int, class types.VehicleClass) (*models.FareItemization, string, error)
}

// SettlementPublisher emits settlement events for the driver-payout pipeline.
type SettlementPublisher interface {
	PublishSettlement(ctx context.Context, msg models.BookingSettlementMessage) error
}

// TxManager runs fn inside a database transaction.
type TxManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}
