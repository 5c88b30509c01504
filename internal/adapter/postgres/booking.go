package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/transpo-mobility/fare-engine/internal/domain/models"
	"github.com/transpo-mobility/fare-engine/internal/domain/types"
	"github.com/transpo-mobility/fare-engine/pkg/metrics"
)

const serviceName = "fare-engine"

type BookingRepo struct {
	db *pgxpool.Pool
}

func NewBookingRepo(db *pgxpool.Pool) *BookingRepo {
	return &BookingRepo{db: db}
}

func (r *BookingRepo) Create(ctx context.Context, b *models.Booking) error {
	q := TxorDB(ctx, r.db)
	start := time.Now()

	fare, err := json.Marshal(b.Fare)
	if err != nil {
		return fmt.Errorf("booking repo: Create (marshal fare): %w", err)
	}

	query := `INSERT INTO bookings (id, booking_number, rider_id, status, vehicle_class,
                                    pickup_address, pickup_lat, pickup_lng,
                                    dropoff_address, dropoff_lat, dropoff_lng,
                                    fare, total, platform_commission, tariff_version, created_at)
              VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16);`

	_, err = q.Exec(ctx, query,
		b.ID, b.BookingNumber, b.RiderID, b.Status, b.VehicleClass,
		b.Pickup.Address, b.Pickup.Lat, b.Pickup.Lng,
		b.Dropoff.Address, b.Dropoff.Lat, b.Dropoff.Lng,
		fare, b.Fare.Total.Decimal(), b.PlatformCommission.Decimal(), b.TariffVersion, b.CreatedAt,
	)
	metrics.RecordDatabaseQuery(serviceName, "booking_create", err, time.Since(start))
	if err != nil {
		return fmt.Errorf("booking repo: Create: %w", err)
	}

	return nil
}

const bookingColumns = `id, booking_number, rider_id, status, vehicle_class,
       pickup_address, pickup_lat, pickup_lng,
       dropoff_address, dropoff_lat, dropoff_lng,
       fare, platform_commission, tariff_version, created_at, completed_at, cancelled_at`

func (r *BookingRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Booking, error) {
	q := TxorDB(ctx, r.db)
	start := time.Now()

	query := fmt.Sprintf("SELECT %s FROM bookings WHERE id = $1;", bookingColumns)

	b, err := scanBooking(q.QueryRow(ctx, query, id))
	metrics.RecordDatabaseQuery(serviceName, "booking_get", err, time.Since(start))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, types.ErrBookingNotFound
		}
		return nil, fmt.Errorf("booking repo: GetByID: %w", err)
	}

	return b, nil
}

func (r *BookingRepo) ListByRider(ctx context.Context, riderID uuid.UUID) ([]models.Booking, error) {
	q := TxorDB(ctx, r.db)
	start := time.Now()

	query := fmt.Sprintf(`SELECT %s FROM bookings WHERE rider_id = $1 ORDER BY created_at DESC;`, bookingColumns)

	rows, err := q.Query(ctx, query, riderID)
	metrics.RecordDatabaseQuery(serviceName, "booking_list_by_rider", err, time.Since(start))
	if err != nil {
		return nil, fmt.Errorf("booking repo: ListByRider: %w", err)
	}
	defer rows.Close()

	return collectBookings(rows)
}

func (r *BookingRepo) List(ctx context.Context, limit, offset int) ([]models.Booking, error) {
	q := TxorDB(ctx, r.db)
	start := time.Now()

	query := fmt.Sprintf(`SELECT %s FROM bookings ORDER BY created_at DESC LIMIT $1 OFFSET $2;`, bookingColumns)

	rows, err := q.Query(ctx, query, limit, offset)
	metrics.RecordDatabaseQuery(serviceName, "booking_list", err, time.Since(start))
	if err != nil {
		return nil, fmt.Errorf("booking repo: List: %w", err)
	}
	defer rows.Close()

	return collectBookings(rows)
}

func scanBooking(row pgx.Row) (*models.Booking, error) {
	var (
		b          models.Booking
		fareRaw    []byte
		commission float64
	)

	err := row.Scan(
		&b.ID, &b.BookingNumber, &b.RiderID, &b.Status, &b.VehicleClass,
		&b.Pickup.Address, &b.Pickup.Lat, &b.Pickup.Lng,
		&b.Dropoff.Address, &b.Dropoff.Lat, &b.Dropoff.Lng,
		&fareRaw, &commission, &b.TariffVersion, &b.CreatedAt, &b.CompletedAt, &b.CancelledAt,
	)
	if err != nil {
		return nil, err
	}

	var fare models.FareItemization
	if err := json.Unmarshal(fareRaw, &fare); err != nil {
		return nil, fmt.Errorf("unmarshal fare: %w", err)
	}
	b.Fare = &fare
	b.PlatformCommission = types.MoneyFromFloat(commission)

	return &b, nil
}

func collectBookings(rows pgx.Rows) ([]models.Booking, error) {
	bookings := []models.Booking{}
	for rows.Next() {
		b, err := scanBooking(rows)
		if err != nil {
			return nil, err
		}
		bookings = append(bookings, *b)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return bookings, nil
}
