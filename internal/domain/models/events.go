package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/transpo-mobility/fare-engine/internal/domain/types"
)

// BookingSettlementMessage is published when a booking is created. The
// settlement consumer uses the commission split to credit the driver ledger;
// the commission is never charged to the rider on top of the fare.
type BookingSettlementMessage struct {
	BookingID     uuid.UUID   `json:"booking_id"`
	BookingNumber string      `json:"booking_number"`
	RiderID       uuid.UUID   `json:"rider_id"`
	VehicleClass  string      `json:"vehicle_class"`
	Total         types.Money `json:"total"`

	// Commission is computed on the pre-tax, pre-statutory portion of the fare.
	CommissionableAmount types.Money `json:"commissionable_amount"`
	PlatformCommission   types.Money `json:"platform_commission"`
	DriverEarnings       types.Money `json:"driver_earnings"`

	TariffVersion string    `json:"tariff_version"`
	CreatedAt     time.Time `json:"created_at"`
	CorrelationID string    `json:"correlation_id"`
}
