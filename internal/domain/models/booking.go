package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/transpo-mobility/fare-engine/internal/domain/types"
)

// Location is a coordinate with its display address, as recorded on bookings.
type Location struct {
	Coordinate
	Address string `json:"address,omitempty"`
}

// Booking is a confirmed trip request. The attached fare is always the
// server-side recomputation, never the client's pre-booking estimate.
type Booking struct {
	ID            uuid.UUID
	BookingNumber string
	RiderID       uuid.UUID
	Status        types.BookingStatus
	VehicleClass  types.VehicleClass
	Pickup        Location
	Dropoff       Location

	// Fare is the authoritative itemization recomputed at booking time.
	Fare *FareItemization

	// PlatformCommission is the platform's cut, fixed at creation so later
	// tariff changes cannot reprice history.
	PlatformCommission types.Money

	// TariffVersion records which tariff revision priced this booking.
	TariffVersion string

	CreatedAt   time.Time
	CompletedAt *time.Time
	CancelledAt *time.Time
}

// AdminStats is the aggregate view served to the admin dashboard.
type AdminStats struct {
	TotalBookings      int         `json:"total_bookings"`
	CompletedBookings  int         `json:"completed_bookings"`
	CancelledBookings  int         `json:"cancelled_bookings"`
	TotalRevenue       types.Money `json:"total_revenue"`
	PlatformCommission types.Money `json:"platform_commission"`
	TariffVersion      string      `json:"tariff_version"`
}
