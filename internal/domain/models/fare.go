package models

import (
	"github.com/transpo-mobility/fare-engine/internal/domain/types"
)

// Coordinate is an immutable geographic point in decimal degrees.
type Coordinate struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// Valid reports whether the coordinate is inside the geographic ranges.
func (c Coordinate) Valid() bool {
	return c.Lat >= -90 && c.Lat <= 90 && c.Lng >= -180 && c.Lng <= 180
}

// FareItemization is the canonical fare breakdown quoted to the rider and
// bound to the booking record. Field names and the two-decimal number format
// are fixed by the client renderer; renaming any of them is a breaking change.
type FareItemization struct {
	DistanceKm     float64            `json:"distance_km"`
	DurationMin    int                `json:"duration_min"`
	BaseFare       types.Money        `json:"base_fare"`
	DistanceCharge types.Money        `json:"distance_charge"`
	TimeCharge     types.Money        `json:"time_charge"`
	GovernmentFee  types.Money        `json:"government_fee"`
	GST            types.Money        `json:"gst"`
	QST            types.Money        `json:"qst"`
	Total          types.Money        `json:"total"`
	VehicleClass   types.VehicleClass `json:"vehicle_class"`
	Currency       string             `json:"currency"`
}

// Subtotal is the pre-tax amount the taxes were computed on.
func (f *FareItemization) Subtotal() types.Money {
	return f.BaseFare.Add(f.DistanceCharge).Add(f.TimeCharge).Add(f.GovernmentFee)
}

// CompetitorEstimate is an advisory market reference price.
type CompetitorEstimate struct {
	Provider      string      `json:"provider"`
	EstimatedFare types.Money `json:"estimated_fare"`
}

// FareEstimate is the full response of the estimate operation.
type FareEstimate struct {
	OurFare             *FareItemization     `json:"our_fare"`
	CompetitorEstimates []CompetitorEstimate `json:"competitor_estimates"`
}
