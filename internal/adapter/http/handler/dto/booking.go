package dto

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/transpo-mobility/fare-engine/internal/domain/models"
	"github.com/transpo-mobility/fare-engine/internal/domain/types"
	"github.com/transpo-mobility/fare-engine/pkg/validator"
)

// CreateBookingRequest is the body of POST /api/taxi/book, flat like the
// estimate request. Addresses are display strings; pricing only uses the
// coordinates.
type CreateBookingRequest struct {
	PickupLat      *float64 `json:"pickup_lat"`
	PickupLng      *float64 `json:"pickup_lng"`
	DropoffLat     *float64 `json:"dropoff_lat"`
	DropoffLng     *float64 `json:"dropoff_lng"`
	PickupAddress  string   `json:"pickup_address"`
	DropoffAddress string   `json:"dropoff_address"`
	VehicleType    string   `json:"vehicle_type"`
}

func (r *CreateBookingRequest) Validate(v *validator.Validator) {
	validateLat(v, r.PickupLat, "pickup_lat")
	validateLng(v, r.PickupLng, "pickup_lng")
	validateLat(v, r.DropoffLat, "dropoff_lat")
	validateLng(v, r.DropoffLng, "dropoff_lng")

	v.Check(len(r.PickupAddress) <= 255, "pickup_address", "must not be more than 255 characters long")
	v.Check(len(r.DropoffAddress) <= 255, "dropoff_address", "must not be more than 255 characters long")

	validateVehicleType(v, r.VehicleType)
}

// VehicleClass returns the normalized vehicle class. Valid only after
// Validate passed.
func (r *CreateBookingRequest) VehicleClass() types.VehicleClass {
	return types.VehicleClass(strings.ToLower(r.VehicleType))
}

func (r *CreateBookingRequest) PickupLocation() models.Location {
	return models.Location{
		Coordinate: models.Coordinate{Lat: *r.PickupLat, Lng: *r.PickupLng},
		Address:    r.PickupAddress,
	}
}

func (r *CreateBookingRequest) DropoffLocation() models.Location {
	return models.Location{
		Coordinate: models.Coordinate{Lat: *r.DropoffLat, Lng: *r.DropoffLng},
		Address:    r.DropoffAddress,
	}
}

// BookingResponse is the public view of a booking record.
type BookingResponse struct {
	BookingID     uuid.UUID               `json:"booking_id"`
	BookingNumber string                  `json:"booking_number"`
	Status        string                  `json:"status"`
	VehicleClass  string                  `json:"vehicle_class"`
	Pickup        models.Location         `json:"pickup"`
	Dropoff       models.Location         `json:"dropoff"`
	Fare          *models.FareItemization `json:"fare"`
	TariffVersion string                  `json:"tariff_version"`
	CreatedAt     time.Time               `json:"created_at"`
}

func ToBookingResponse(b *models.Booking) BookingResponse {
	return BookingResponse{
		BookingID:     b.ID,
		BookingNumber: b.BookingNumber,
		Status:        string(b.Status),
		VehicleClass:  string(b.VehicleClass),
		Pickup:        b.Pickup,
		Dropoff:       b.Dropoff,
		Fare:          b.Fare,
		TariffVersion: b.TariffVersion,
		CreatedAt:     b.CreatedAt,
	}
}

func ToBookingResponses(bookings []models.Booking) []BookingResponse {
	out := make([]BookingResponse, 0, len(bookings))
	for i := range bookings {
		out = append(out, ToBookingResponse(&bookings[i]))
	}
	return out
}
