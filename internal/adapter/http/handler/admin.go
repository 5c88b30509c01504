package handler

import (
	"context"
	"net/http"
	"strconv"

	"github.com/transpo-mobility/fare-engine/internal/adapter/http/handler/dto"
	"github.com/transpo-mobility/fare-engine/internal/domain/models"
	"github.com/transpo-mobility/fare-engine/internal/domain/types"
	"github.com/transpo-mobility/fare-engine/pkg/logger"
	wrap "github.com/transpo-mobility/fare-engine/pkg/logger/wrapper"
)

type AdminService interface {
	Stats(ctx context.Context) (*models.AdminStats, error)
}

type BookingLister interface {
	List(ctx context.Context, limit, offset int) ([]models.Booking, error)
}

type Admin struct {
	admin    AdminService
	bookings BookingLister
	l        logger.Logger
}

func NewAdmin(admin AdminService, bookings BookingLister, l logger.Logger) *Admin {
	return &Admin{
		admin:    admin,
		bookings: bookings,
		l:        l,
	}
}

// Stats godoc
// @Summary      Booking aggregates
// @Tags         Admin
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  models.AdminStats
// @Router       /api/admin/stats [get]
func (h *Admin) Stats(w http.ResponseWriter, r *http.Request) {
	ctx := wrap.WithAction(r.Context(), types.ActionAdminStats)

	stats, err := h.admin.Stats(ctx)
	if err != nil {
		h.l.Error(ctx, "admin stats failed", err)
		serviceErrorResponse(w, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, stats, nil); err != nil {
		h.l.Error(ctx, "failed to write response", err)
	}
}

// Bookings godoc
// @Summary      List all bookings
// @Tags         Admin
// @Produce      json
// @Security     BearerAuth
// @Param        limit   query     int  false  "Page size (default 20, max 100)"
// @Param        offset  query     int  false  "Page offset"
// @Success      200     {object}  map[string]any
// @Router       /api/admin/bookings [get]
func (h *Admin) Bookings(w http.ResponseWriter, r *http.Request) {
	ctx := wrap.WithAction(r.Context(), types.ActionBookingList)

	limit := queryInt(r, "limit", 20)
	if limit < 1 || limit > 100 {
		badRequestResponse(w, "limit must be between 1 and 100")
		return
	}
	offset := queryInt(r, "offset", 0)
	if offset < 0 {
		badRequestResponse(w, "offset must not be negative")
		return
	}

	bookings, err := h.bookings.List(ctx, limit, offset)
	if err != nil {
		h.l.Error(ctx, "admin booking list failed", err)
		serviceErrorResponse(w, err)
		return
	}

	response := envelope{
		"bookings": dto.ToBookingResponses(bookings),
		"limit":    limit,
		"offset":   offset,
	}
	if err := writeJSON(w, http.StatusOK, response, nil); err != nil {
		h.l.Error(ctx, "failed to write response", err)
	}
}

func queryInt(r *http.Request, key string, fallback int) int {
	raw := r.URL.Query().Get(key)
	if raw == "" {
		return fallback
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return -1
	}
	return n
}
