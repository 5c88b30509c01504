package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/transpo-mobility/fare-engine/internal/domain/types"
)

// MeterRates is the CTQ rate card locked in when a meter starts. The rate
// period never changes mid-trip.
type MeterRates struct {
	Period            types.RatePeriod `json:"period"`
	BaseFare          types.Money      `json:"base"`
	PerKm             types.Money      `json:"per_km"`
	WaitingPerMin     types.Money      `json:"waiting_per_min"`
	SpeedThresholdKmh float64          `json:"speed_threshold_kmh"`
}

// MeterBreakdown is the running fare of a metered trip, pushed to the driver
// app after every GPS update.
type MeterBreakdown struct {
	MeterID        uuid.UUID         `json:"meter_id"`
	Status         types.MeterStatus `json:"status"`
	RatePeriod     types.RatePeriod  `json:"rate_period"`
	BaseFare       types.Money       `json:"base_fare"`
	DistanceKm     float64           `json:"distance_km"`
	DistanceCharge types.Money       `json:"distance_charge"`
	WaitingMin     float64           `json:"waiting_minutes"`
	WaitingCharge  types.Money       `json:"waiting_charge"`
	GovernmentFee  types.Money       `json:"government_fee"`
	Subtotal       types.Money       `json:"subtotal"`
	Total          types.Money       `json:"total"`
	Rates          MeterRates        `json:"rates_used"`
}

// MeterSettlement extends the final breakdown with the tip and the
// driver/platform commission split.
type MeterSettlement struct {
	MeterBreakdown

	TipAmount            types.Money `json:"tip_amount"`
	TotalWithTip         types.Money `json:"total_with_tip"`
	CommissionableAmount types.Money `json:"commissionable_amount"`
	PlatformCommission   types.Money `json:"platform_commission"`
	DriverEarnings       types.Money `json:"driver_earnings"`
}

// MeterState is the public snapshot of a meter session.
type MeterState struct {
	MeterID   uuid.UUID         `json:"meter_id"`
	DriverID  uuid.UUID         `json:"driver_id"`
	Status    types.MeterStatus `json:"status"`
	StartedAt time.Time         `json:"started_at"`
	Breakdown MeterBreakdown    `json:"breakdown"`
}
