package server

import (
	"github.com/transpo-mobility/fare-engine/internal/domain/types"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger"
)

// setupRoutes - setups http routes
func (a *API) setupRoutes() {
	mux, routes, m := a.mux, a.routes, a.m

	// System Health
	mux.HandleFunc("GET /health", routes.health.HealthCheck)

	// Swagger UI endpoint
	mux.HandleFunc("/swagger/", httpSwagger.Handler(httpSwagger.InstanceName("fare")))

	// Prometheus metrics endpoint
	mux.Handle("/metrics", promhttp.Handler())

	// Public pricing surface
	mux.HandleFunc("POST /api/fare/estimate", routes.fare.EstimateFare) // Estimate fare before booking
	mux.HandleFunc("GET /api/taxi/rates", routes.meter.Rates)          // Posted day/night meter rate card

	// Rider bookings
	mux.Handle("POST /api/taxi/book", m.RequireRoles(routes.booking.Create, types.RoleRider))                            // Book a taxi at the estimated fare
	mux.Handle("GET /api/taxi/bookings/{booking_id}", m.RequireRoles(routes.booking.Get, types.RoleRider, types.RoleAdmin)) // Get a booking
	mux.Handle("GET /api/bookings/user", m.RequireRoles(routes.booking.ListMine, types.RoleRider))                       // List caller's bookings

	// Driver meter
	mux.Handle("POST /api/taxi/meter/start", m.RequireRoles(routes.meter.Start, types.RoleDriver))              // Start a metered trip
	mux.Handle("POST /api/taxi/meter/{meter_id}/update", m.RequireRoles(routes.meter.Update, types.RoleDriver)) // Report a position sample
	mux.Handle("POST /api/taxi/meter/{meter_id}/stop", m.RequireRoles(routes.meter.Stop, types.RoleDriver))     // Stop the meter and settle
	mux.Handle("GET /api/taxi/meter/{meter_id}", m.RequireRoles(routes.meter.Get, types.RoleDriver, types.RoleAdmin))

	// WebSocket live meter breakdown
	mux.HandleFunc("GET /ws/meter/{meter_id}", routes.stream.Handle)

	// Admin
	mux.Handle("GET /api/admin/stats", m.RequireRoles(routes.admin.Stats, types.RoleAdmin))       // Aggregated booking stats
	mux.Handle("GET /api/admin/bookings", m.RequireRoles(routes.admin.Bookings, types.RoleAdmin)) // Paginated booking list
}
