package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/transpo-mobility/fare-engine/internal/domain/models"
	"github.com/transpo-mobility/fare-engine/internal/domain/types"
	"github.com/transpo-mobility/fare-engine/pkg/metrics"
)

type AdminRepo struct {
	db *pgxpool.Pool
}

func NewAdminRepo(db *pgxpool.Pool) *AdminRepo {
	return &AdminRepo{db: db}
}

// Stats aggregates booking counts and revenue. Cancelled bookings count
// toward volume but not revenue.
func (r *AdminRepo) Stats(ctx context.Context) (*models.AdminStats, error) {
	start := time.Now()

	query := `
        SELECT
            COUNT(*),
            COUNT(*) FILTER (WHERE status = 'COMPLETED'),
            COUNT(*) FILTER (WHERE status = 'CANCELLED'),
            COALESCE(SUM(total) FILTER (WHERE status <> 'CANCELLED'), 0),
            COALESCE(SUM(platform_commission) FILTER (WHERE status <> 'CANCELLED'), 0)
        FROM bookings;`

	var (
		stats      models.AdminStats
		revenue    decimal.Decimal
		commission decimal.Decimal
	)
	err := r.db.QueryRow(ctx, query).Scan(
		&stats.TotalBookings,
		&stats.CompletedBookings,
		&stats.CancelledBookings,
		&revenue,
		&commission,
	)
	metrics.RecordDatabaseQuery(serviceName, "admin_stats", err, time.Since(start))
	if err != nil {
		return nil, fmt.Errorf("admin repo: Stats: %w", err)
	}

	stats.TotalRevenue = types.NewMoney(revenue)
	stats.PlatformCommission = types.NewMoney(commission)

	return &stats, nil
}
