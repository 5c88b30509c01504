package dto

import (
	"github.com/transpo-mobility/fare-engine/pkg/validator"
)

// Point is a coordinate pair in a meter request body.
type Point struct {
	Lat *float64 `json:"lat"`
	Lng *float64 `json:"lng"`
}

func validatePoint(v *validator.Validator, p *Point, field string) {
	if p == nil {
		v.AddError(field, "must be provided")
		return
	}
	validateLat(v, p.Lat, field+".lat")
	validateLng(v, p.Lng, field+".lng")
}

// StartMeterRequest is the body of POST /api/taxi/meter/start.
type StartMeterRequest struct {
	Position *Point `json:"position"`
}

func (r *StartMeterRequest) Validate(v *validator.Validator) {
	validatePoint(v, r.Position, "position")
}

// UpdateMeterRequest feeds one GPS point into a running meter.
type UpdateMeterRequest struct {
	Position *Point `json:"position"`
}

func (r *UpdateMeterRequest) Validate(v *validator.Validator) {
	validatePoint(v, r.Position, "position")
}

// StopMeterRequest closes a meter. The tip is optional and defaults to zero.
type StopMeterRequest struct {
	TipAmount *float64 `json:"tip_amount"`
}

func (r *StopMeterRequest) Validate(v *validator.Validator) {
	if r.TipAmount != nil {
		v.Check(*r.TipAmount >= 0, "tip_amount", "must not be negative")
	}
}
