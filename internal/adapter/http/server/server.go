package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/transpo-mobility/fare-engine/config"
	"github.com/transpo-mobility/fare-engine/internal/adapter/http/handler"
	"github.com/transpo-mobility/fare-engine/internal/adapter/http/middleware"
	"github.com/transpo-mobility/fare-engine/internal/adapter/http/ws"
	"github.com/transpo-mobility/fare-engine/pkg/logger"
	wrap "github.com/transpo-mobility/fare-engine/pkg/logger/wrapper"
)

const serviceName = "fare-engine"

type API struct {
	mux    *http.ServeMux
	server *http.Server
	routes *handlers
	m      *middleware.Middleware

	addr string
	cfg  config.Config
	log  logger.Logger
}

type handlers struct {
	fare    *handler.Fare
	booking *handler.Booking
	meter   *handler.Meter
	admin   *handler.Admin
	health  *handler.Health
	stream  *ws.MeterStream
}

func New(
	cfg config.Config,
	fareService handler.FareService,
	bookingService handler.BookingService,
	bookingLister handler.BookingLister,
	meterService handler.MeterService,
	adminService handler.AdminService,
	tariffs handler.TariffVersioner,
	stream *ws.MeterStream,
	log logger.Logger,
) (*API, error) {
	if fareService == nil {
		return nil, errors.New("fare service is required")
	}

	routes := &handlers{
		fare:    handler.NewFare(fareService, log),
		booking: handler.NewBooking(bookingService, log),
		meter:   handler.NewMeter(meterService, stream, log),
		admin:   handler.NewAdmin(adminService, bookingLister, log),
		health:  handler.NewHealth(serviceName, tariffs, log),
		stream:  stream,
	}

	mid := middleware.NewMiddleware(cfg.Auth.JWTSecret, log)

	api := &API{
		mux:    http.NewServeMux(),
		routes: routes,
		m:      mid,
		addr:   fmt.Sprintf("%s:%s", cfg.Server.Host, cfg.Server.Port),
		cfg:    cfg,
		log:    log,
	}

	api.setupRoutes()

	api.server = &http.Server{
		Addr:    api.addr,
		Handler: api.withMiddleware(),
	}

	return api, nil
}

func (a *API) Stop(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	ctx = wrap.WithAction(ctx, "http_server_stop")

	a.log.Debug(ctx, "shutting down HTTP server...", "address", a.addr)
	a.routes.stream.CloseAll()
	if err := a.server.Shutdown(ctx); err != nil {
		return fmt.Errorf("error shutting down server: %w", err)
	}
	a.log.Debug(ctx, "shutting down HTTP server completed")

	return nil
}

func (a *API) Run(ctx context.Context, errCh chan<- error) {
	go func() {
		ctx = wrap.WithAction(ctx, "http_server_start")
		a.log.Info(ctx, "started http server", "address", a.addr)
		if err := a.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- fmt.Errorf("failed to start HTTP server: %w", err)
			return
		}
	}()
}

// withMiddleware applies middlewares to the mux
func (a *API) withMiddleware() http.Handler {
	return a.m.Recover(a.m.RequestID(a.m.Logging(a.m.Metrics(serviceName)(a.m.Auth(a.mux)))))
}
