package handler

import (
	"context"
	"net/http"

	"github.com/transpo-mobility/fare-engine/internal/adapter/http/handler/dto"
	"github.com/transpo-mobility/fare-engine/internal/domain/models"
	"github.com/transpo-mobility/fare-engine/internal/domain/types"
	"github.com/transpo-mobility/fare-engine/pkg/logger"
	wrap "github.com/transpo-mobility/fare-engine/pkg/logger/wrapper"
	"github.com/transpo-mobility/fare-engine/pkg/validator"
)

type FareService interface {
	Estimate(ctx context.Context, pickup, dropoff models.Coordinate, class types.VehicleClass) (*models.FareEstimate, error)
}

type Fare struct {
	fares FareService
	l     logger.Logger
}

func NewFare(fares FareService, l logger.Logger) *Fare {
	return &Fare{
		fares: fares,
		l:     l,
	}
}

// EstimateFare godoc
// @Summary      Estimate a fare
// @Description  Returns the itemized fare for a trip plus market reference prices
// @Tags         Fare
// @Accept       json
// @Produce      json
// @Param        request  body      dto.EstimateFareRequest  true  "Trip to price"
// @Success      200      {object}  models.FareEstimate
// @Failure      400      {object}  map[string]any
// @Router       /api/fare/estimate [post]
func (h *Fare) EstimateFare(w http.ResponseWriter, r *http.Request) {
	ctx := wrap.WithAction(r.Context(), types.ActionFareEstimate)

	var req dto.EstimateFareRequest
	if err := readJSON(w, r, &req); err != nil {
		badRequestResponse(w, err.Error())
		return
	}

	v := validator.New()
	if req.Validate(v); !v.Valid() {
		failedValidationResponse(w, v.Errors)
		return
	}

	estimate, err := h.fares.Estimate(ctx, req.PickupCoordinate(), req.DropoffCoordinate(), req.VehicleClass())
	if err != nil {
		h.l.Error(ctx, "fare estimate failed", err)
		serviceErrorResponse(w, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, estimate, nil); err != nil {
		h.l.Error(ctx, "failed to write response", err)
	}
}
