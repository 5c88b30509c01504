package app

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/transpo-mobility/fare-engine/config"
	"github.com/transpo-mobility/fare-engine/internal/adapter/http/server"
	"github.com/transpo-mobility/fare-engine/internal/adapter/http/ws"
	"github.com/transpo-mobility/fare-engine/internal/adapter/postgres"
	"github.com/transpo-mobility/fare-engine/internal/adapter/rabbit"
	"github.com/transpo-mobility/fare-engine/internal/service/admin"
	"github.com/transpo-mobility/fare-engine/internal/service/booking"
	"github.com/transpo-mobility/fare-engine/internal/service/fare"
	"github.com/transpo-mobility/fare-engine/internal/service/meter"
	"github.com/transpo-mobility/fare-engine/internal/tariff"
	"github.com/transpo-mobility/fare-engine/pkg/logger"
	wrap "github.com/transpo-mobility/fare-engine/pkg/logger/wrapper"
	"github.com/transpo-mobility/fare-engine/pkg/metrics"
	pgclient "github.com/transpo-mobility/fare-engine/pkg/postgres"
	rabbitclient "github.com/transpo-mobility/fare-engine/pkg/rabbit"
	"github.com/transpo-mobility/fare-engine/pkg/trm"
	wshub "github.com/transpo-mobility/fare-engine/pkg/wshub"
)

const serviceName = "fare-engine"

type App struct {
	server  *server.API
	tariffs *tariff.Store
	db      *pgclient.DB
	queue   *rabbitclient.RabbitMQ

	cfg config.Config
	log logger.Logger
}

// NewApplication wires every adapter and service together. The tariff file is
// required: a missing or invalid file aborts startup here, before any port is
// bound.
func NewApplication(ctx context.Context, cfg config.Config, log logger.Logger) (*App, error) {
	tariffs, err := tariff.NewStore(ctx, cfg.Tariff.Path, log)
	if err != nil {
		return nil, fmt.Errorf("failed to load tariff table: %w", err)
	}

	db, err := pgclient.New(ctx, cfg.Database)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to postgres: %w", err)
	}

	queue, err := rabbitclient.New(ctx, cfg.RabbitMQ.GetDSN(), log)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to rabbitmq: %w", err)
	}

	broker, err := rabbit.NewSettlementBroker(ctx, queue, log)
	if err != nil {
		return nil, fmt.Errorf("failed to declare settlement topology: %w", err)
	}

	txManager := trm.New(db.Pool)
	bookingRepo := postgres.NewBookingRepo(db.Pool)
	adminRepo := postgres.NewAdminRepo(db.Pool)

	fareService := fare.NewService(fare.NewHaversineEstimator(), tariffs, log)
	bookingService := booking.NewService(bookingRepo, fareService, tariffs, broker, txManager, log)
	meterService := meter.NewService(tariffs, log)
	adminService := admin.NewService(adminRepo, tariffs, log)

	stream := ws.NewMeterStream(wshub.NewConnHub(log), log)

	api, err := server.New(
		cfg,
		fareService,
		bookingService,
		bookingRepo,
		meterService,
		adminService,
		tariffs,
		stream,
		log,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to build http server: %w", err)
	}

	return &App{
		server:  api,
		tariffs: tariffs,
		db:      db,
		queue:   queue,
		cfg:     cfg,
		log:     log,
	}, nil
}

// Run starts the HTTP server and blocks until a shutdown signal or a server
// error. SIGHUP reloads the tariff file without a restart.
func (a *App) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	a.server.Run(ctx, errCh)

	shutdownCh := make(chan os.Signal, 1)
	signal.Notify(shutdownCh, syscall.SIGINT, syscall.SIGTERM)

	reloadCh := make(chan os.Signal, 1)
	signal.Notify(reloadCh, syscall.SIGHUP)

	for {
		select {
		case err := <-errCh:
			a.log.Error(ctx, "server error", err)
			a.Close(ctx)
			return err

		case <-reloadCh:
			err := a.tariffs.Reload(wrap.WithAction(ctx, "tariff_reload_signal"))
			metrics.RecordTariffReload(serviceName, err)

		case sig := <-shutdownCh:
			a.log.Info(ctx, "received shutdown signal", "signal", sig.String())
			a.Close(ctx)
			return nil
		}
	}
}

// Close shuts down in dependency order: stop accepting requests, then drop
// broker and database connections.
func (a *App) Close(ctx context.Context) {
	ctx = wrap.WithAction(ctx, "application_shutdown")

	if err := a.server.Stop(ctx); err != nil {
		a.log.Error(ctx, "failed to stop http server", err)
	}

	if err := a.queue.Close(ctx); err != nil {
		a.log.Error(ctx, "failed to close rabbitmq connection", err)
	}

	a.db.Pool.Close()

	a.log.Info(ctx, "application stopped")
}
