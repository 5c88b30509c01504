package handler

import (
	"context"
	"net/http"

	"github.com/google/uuid"

	"github.com/transpo-mobility/fare-engine/internal/adapter/http/handler/dto"
	"github.com/transpo-mobility/fare-engine/internal/domain/models"
	"github.com/transpo-mobility/fare-engine/internal/domain/types"
	"github.com/transpo-mobility/fare-engine/internal/service/meter"
	"github.com/transpo-mobility/fare-engine/pkg/logger"
	wrap "github.com/transpo-mobility/fare-engine/pkg/logger/wrapper"
	"github.com/transpo-mobility/fare-engine/pkg/validator"
)

type MeterService interface {
	Start(ctx context.Context, driverID uuid.UUID, start models.Coordinate) (*models.MeterState, error)
	Update(ctx context.Context, driverID, meterID uuid.UUID, point models.Coordinate) (*models.MeterBreakdown, error)
	Stop(ctx context.Context, driverID, meterID uuid.UUID, tip types.Money) (*models.MeterSettlement, error)
	Get(ctx context.Context, caller *models.User, meterID uuid.UUID) (*models.MeterState, error)
}

// BreakdownPusher streams running breakdowns to connected driver apps.
type BreakdownPusher interface {
	Push(meterID uuid.UUID, breakdown *models.MeterBreakdown)
}

type Meter struct {
	meters MeterService
	pusher BreakdownPusher
	l      logger.Logger
}

func NewMeter(meters MeterService, pusher BreakdownPusher, l logger.Logger) *Meter {
	return &Meter{
		meters: meters,
		pusher: pusher,
		l:      l,
	}
}

// Rates godoc
// @Summary      Published taxi rate cards
// @Description  Returns the regulated day and night street-hail rates
// @Tags         Meter
// @Produce      json
// @Success      200  {object}  map[string]any
// @Router       /api/taxi/rates [get]
func (h *Meter) Rates(w http.ResponseWriter, r *http.Request) {
	ctx := wrap.WithAction(r.Context(), "taxi_rates")

	day, night, fee := meter.RateCards()
	response := envelope{
		"day":            day,
		"night":          night,
		"government_fee": fee,
	}

	if err := writeJSON(w, http.StatusOK, response, nil); err != nil {
		h.l.Error(ctx, "failed to write response", err)
	}
}

// Start godoc
// @Summary      Start a taxi meter
// @Tags         Meter
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request  body      dto.StartMeterRequest  true  "Starting position"
// @Success      201      {object}  models.MeterState
// @Router       /api/taxi/meter/start [post]
func (h *Meter) Start(w http.ResponseWriter, r *http.Request) {
	ctx := wrap.WithAction(r.Context(), types.ActionMeterStart)
	user := models.UserFromContext(ctx)

	var req dto.StartMeterRequest
	if err := readJSON(w, r, &req); err != nil {
		badRequestResponse(w, err.Error())
		return
	}

	v := validator.New()
	if req.Validate(v); !v.Valid() {
		failedValidationResponse(w, v.Errors)
		return
	}

	state, err := h.meters.Start(ctx, user.ID, models.Coordinate{Lat: *req.Position.Lat, Lng: *req.Position.Lng})
	if err != nil {
		h.l.Error(ctx, "meter start failed", err)
		serviceErrorResponse(w, err)
		return
	}

	if err := writeJSON(w, http.StatusCreated, state, nil); err != nil {
		h.l.Error(ctx, "failed to write response", err)
	}
}

// Update godoc
// @Summary      Feed a GPS point into a running meter
// @Tags         Meter
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        meter_id  path      string                  true  "Meter ID"
// @Param        request   body      dto.UpdateMeterRequest  true  "Current position"
// @Success      200       {object}  models.MeterBreakdown
// @Router       /api/taxi/meter/{meter_id}/update [post]
func (h *Meter) Update(w http.ResponseWriter, r *http.Request) {
	ctx := wrap.WithAction(r.Context(), types.ActionMeterUpdate)
	user := models.UserFromContext(ctx)

	meterID, err := uuid.Parse(r.PathValue("meter_id"))
	if err != nil {
		badRequestResponse(w, "meter_id must be a valid UUID")
		return
	}

	var req dto.UpdateMeterRequest
	if err := readJSON(w, r, &req); err != nil {
		badRequestResponse(w, err.Error())
		return
	}

	v := validator.New()
	if req.Validate(v); !v.Valid() {
		failedValidationResponse(w, v.Errors)
		return
	}

	breakdown, err := h.meters.Update(ctx, user.ID, meterID, models.Coordinate{Lat: *req.Position.Lat, Lng: *req.Position.Lng})
	if err != nil {
		serviceErrorResponse(w, err)
		return
	}

	h.pusher.Push(meterID, breakdown)

	if err := writeJSON(w, http.StatusOK, breakdown, nil); err != nil {
		h.l.Error(ctx, "failed to write response", err)
	}
}

// Stop godoc
// @Summary      Stop a meter and settle the trip
// @Tags         Meter
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        meter_id  path      string                true  "Meter ID"
// @Param        request   body      dto.StopMeterRequest  true  "Optional tip"
// @Success      200       {object}  models.MeterSettlement
// @Router       /api/taxi/meter/{meter_id}/stop [post]
func (h *Meter) Stop(w http.ResponseWriter, r *http.Request) {
	ctx := wrap.WithAction(r.Context(), types.ActionMeterStop)
	user := models.UserFromContext(ctx)

	meterID, err := uuid.Parse(r.PathValue("meter_id"))
	if err != nil {
		badRequestResponse(w, "meter_id must be a valid UUID")
		return
	}

	var req dto.StopMeterRequest
	if err := readJSON(w, r, &req); err != nil {
		badRequestResponse(w, err.Error())
		return
	}

	v := validator.New()
	if req.Validate(v); !v.Valid() {
		failedValidationResponse(w, v.Errors)
		return
	}

	tip := types.Money{}
	if req.TipAmount != nil {
		tip = types.MoneyFromFloat(*req.TipAmount)
	}

	settlement, err := h.meters.Stop(ctx, user.ID, meterID, tip)
	if err != nil {
		serviceErrorResponse(w, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, settlement, nil); err != nil {
		h.l.Error(ctx, "failed to write response", err)
	}
}

// Get godoc
// @Summary      Read a running meter
// @Tags         Meter
// @Produce      json
// @Security     BearerAuth
// @Param        meter_id  path      string  true  "Meter ID"
// @Success      200       {object}  models.MeterState
// @Router       /api/taxi/meter/{meter_id} [get]
func (h *Meter) Get(w http.ResponseWriter, r *http.Request) {
	ctx := wrap.WithAction(r.Context(), types.ActionMeterGet)
	user := models.UserFromContext(ctx)

	meterID, err := uuid.Parse(r.PathValue("meter_id"))
	if err != nil {
		badRequestResponse(w, "meter_id must be a valid UUID")
		return
	}

	state, err := h.meters.Get(ctx, user, meterID)
	if err != nil {
		serviceErrorResponse(w, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, state, nil); err != nil {
		h.l.Error(ctx, "failed to write response", err)
	}
}
