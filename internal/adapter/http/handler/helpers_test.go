package handler

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/transpo-mobility/fare-engine/internal/domain/types"
)

func TestGetCode(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{types.ErrInvalidCoordinate, http.StatusBadRequest},
		{types.ErrUnknownVehicleClass, http.StatusBadRequest},
		{types.ErrNegativeTip, http.StatusBadRequest},
		{fmt.Errorf("wrapped: %w", types.ErrDistanceTooLong), http.StatusBadRequest},
		{types.ErrBookingNotFound, http.StatusNotFound},
		{types.ErrMeterNotFound, http.StatusNotFound},
		{types.ErrForbidden, http.StatusForbidden},
		{types.ErrMeterCompleted, http.StatusConflict},
		{types.ErrTariffNotLoaded, http.StatusInternalServerError},
		{errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		if got := GetCode(tt.err); got != tt.want {
			t.Errorf("GetCode(%v) = %d, want %d", tt.err, got, tt.want)
		}
	}
}
