package dto

import (
	"strings"

	"github.com/transpo-mobility/fare-engine/internal/domain/models"
	"github.com/transpo-mobility/fare-engine/internal/domain/types"
	"github.com/transpo-mobility/fare-engine/pkg/validator"
)

// EstimateFareRequest is the body of POST /api/fare/estimate. Coordinates are
// flat fields, matching what the rider client sends. Pointer fields
// distinguish an absent key from an explicit zero, so a request for the
// equator does not read as a missing coordinate.
type EstimateFareRequest struct {
	PickupLat   *float64 `json:"pickup_lat"`
	PickupLng   *float64 `json:"pickup_lng"`
	DropoffLat  *float64 `json:"dropoff_lat"`
	DropoffLng  *float64 `json:"dropoff_lng"`
	VehicleType string   `json:"vehicle_type"`
}

func validateLat(v *validator.Validator, lat *float64, field string) {
	if lat == nil {
		v.AddError(field, "must be provided")
		return
	}
	v.Check(*lat >= -90 && *lat <= 90, field, "must be between -90 and 90")
}

func validateLng(v *validator.Validator, lng *float64, field string) {
	if lng == nil {
		v.AddError(field, "must be provided")
		return
	}
	v.Check(*lng >= -180 && *lng <= 180, field, "must be between -180 and 180")
}

func validateVehicleType(v *validator.Validator, vehicleType string) {
	v.Check(vehicleType != "", "vehicle_type", "must be provided")
	if vehicleType != "" {
		v.Check(validator.PermittedValue(strings.ToLower(vehicleType), "sedan", "suv", "van"),
			"vehicle_type", "must be one of sedan, suv, or van")
	}
}

func (r *EstimateFareRequest) Validate(v *validator.Validator) {
	validateLat(v, r.PickupLat, "pickup_lat")
	validateLng(v, r.PickupLng, "pickup_lng")
	validateLat(v, r.DropoffLat, "dropoff_lat")
	validateLng(v, r.DropoffLng, "dropoff_lng")
	validateVehicleType(v, r.VehicleType)
}

// VehicleClass returns the normalized vehicle class. Valid only after
// Validate passed.
func (r *EstimateFareRequest) VehicleClass() types.VehicleClass {
	return types.VehicleClass(strings.ToLower(r.VehicleType))
}

func (r *EstimateFareRequest) PickupCoordinate() models.Coordinate {
	return models.Coordinate{Lat: *r.PickupLat, Lng: *r.PickupLng}
}

func (r *EstimateFareRequest) DropoffCoordinate() models.Coordinate {
	return models.Coordinate{Lat: *r.DropoffLat, Lng: *r.DropoffLng}
}
