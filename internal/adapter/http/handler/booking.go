package handler

import (
	"context"
	"net/http"

	"github.com/google/uuid"

	"github.com/transpo-mobility/fare-engine/internal/adapter/http/handler/dto"
	"github.com/transpo-mobility/fare-engine/internal/domain/models"
	"github.com/transpo-mobility/fare-engine/internal/domain/types"
	"github.com/transpo-mobility/fare-engine/pkg/logger"
	wrap "github.com/transpo-mobility/fare-engine/pkg/logger/wrapper"
	"github.com/transpo-mobility/fare-engine/pkg/validator"
)

type BookingService interface {
	Create(ctx context.Context, riderID uuid.UUID, pickup, dropoff models.Location, class types.VehicleClass) (*models.Booking, error)
	Get(ctx context.Context, caller *models.User, id uuid.UUID) (*models.Booking, error)
	ListForRider(ctx context.Context, riderID uuid.UUID) ([]models.Booking, error)
}

type Booking struct {
	bookings BookingService
	l        logger.Logger
}

func NewBooking(bookings BookingService, l logger.Logger) *Booking {
	return &Booking{
		bookings: bookings,
		l:        l,
	}
}

// Create godoc
// @Summary      Book a trip
// @Description  Confirms a booking; the fare is recomputed server-side at confirmation time
// @Tags         Booking
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request  body      dto.CreateBookingRequest  true  "Trip to book"
// @Success      201      {object}  dto.BookingResponse
// @Failure      400      {object}  map[string]any
// @Router       /api/taxi/book [post]
func (h *Booking) Create(w http.ResponseWriter, r *http.Request) {
	ctx := wrap.WithAction(r.Context(), types.ActionBookingCreate)
	user := models.UserFromContext(ctx)

	var req dto.CreateBookingRequest
	if err := readJSON(w, r, &req); err != nil {
		badRequestResponse(w, err.Error())
		return
	}

	v := validator.New()
	if req.Validate(v); !v.Valid() {
		failedValidationResponse(w, v.Errors)
		return
	}

	booking, err := h.bookings.Create(ctx, user.ID, req.PickupLocation(), req.DropoffLocation(), req.VehicleClass())
	if err != nil {
		h.l.Error(ctx, "booking create failed", err)
		serviceErrorResponse(w, err)
		return
	}

	if err := writeJSON(w, http.StatusCreated, dto.ToBookingResponse(booking), nil); err != nil {
		h.l.Error(ctx, "failed to write response", err)
	}
}

// Get godoc
// @Summary      Get a booking
// @Tags         Booking
// @Produce      json
// @Security     BearerAuth
// @Param        booking_id  path      string  true  "Booking ID"
// @Success      200         {object}  dto.BookingResponse
// @Failure      404         {object}  map[string]any
// @Router       /api/taxi/bookings/{booking_id} [get]
func (h *Booking) Get(w http.ResponseWriter, r *http.Request) {
	ctx := wrap.WithAction(r.Context(), types.ActionBookingGet)
	user := models.UserFromContext(ctx)

	id, err := uuid.Parse(r.PathValue("booking_id"))
	if err != nil {
		badRequestResponse(w, "booking_id must be a valid UUID")
		return
	}

	booking, err := h.bookings.Get(ctx, user, id)
	if err != nil {
		serviceErrorResponse(w, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, dto.ToBookingResponse(booking), nil); err != nil {
		h.l.Error(ctx, "failed to write response", err)
	}
}

// ListMine godoc
// @Summary      List the caller's bookings
// @Tags         Booking
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  map[string]any
// @Router       /api/bookings/user [get]
func (h *Booking) ListMine(w http.ResponseWriter, r *http.Request) {
	ctx := wrap.WithAction(r.Context(), types.ActionBookingList)
	user := models.UserFromContext(ctx)

	bookings, err := h.bookings.ListForRider(ctx, user.ID)
	if err != nil {
		h.l.Error(ctx, "booking list failed", err)
		serviceErrorResponse(w, err)
		return
	}

	response := envelope{"bookings": dto.ToBookingResponses(bookings)}
	if err := writeJSON(w, http.StatusOK, response, nil); err != nil {
		h.l.Error(ctx, "failed to write response", err)
	}
}
