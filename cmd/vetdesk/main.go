package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/vetdesk-app/vetdesk/internal/apiclient"
	"github.com/vetdesk-app/vetdesk/internal/availability"
	"github.com/vetdesk-app/vetdesk/internal/config"
	"github.com/vetdesk-app/vetdesk/internal/nav"
	"github.com/vetdesk-app/vetdesk/internal/observability"
	"github.com/vetdesk-app/vetdesk/internal/router"
	"github.com/vetdesk-app/vetdesk/internal/service"
	"github.com/vetdesk-app/vetdesk/internal/session"
	"github.com/vetdesk-app/vetdesk/internal/theme"
	"github.com/vetdesk-app/vetdesk/internal/tokenstore"
	"github.com/vetdesk-app/vetdesk/internal/ui"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger, err := observability.NewLogger(cfg.Logger)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logger.Sync() //nolint:errcheck

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go cancelOnSignal(cancel, logger)

	metrics := observability.NewMetrics()
	api := apiclient.New(cfg.API, logger, metrics)
	store := tokenstore.NewFileStore(cfg.Store.Path, cfg.Store.Secret)
	sess := session.NewManager(api, store, logger)

	// silent reload before the first route decision
	sess.LoadToken(ctx)

	appointments := service.NewAppointmentService(api)
	services := ui.Services{
		Clinics:      service.NewClinicService(api),
		Users:        service.NewUserService(api),
		Pets:         service.NewPetService(api),
		Catalog:      service.NewCatalogService(api),
		Appointments: appointments,
		Availability: service.NewAvailabilityService(api, appointments, availability.SystemClock()),
	}

	registry := router.NewRegistry(
		nav.NewClientNavigator(api, logger),
		nav.NewVetNavigator(),
		nav.NewClinicAdminNavigator(),
		nav.NewSuperAdminNavigator(),
	)

	themes := theme.NewStore(cfg.App.Theme)
	app := ui.New(sess, registry, services, themes, logger, os.Stdin, os.Stdout)

	if err := app.Run(ctx); err != nil && err != context.Canceled {
		logger.Fatal("ui loop failed", zap.Error(err))
	}
}

func cancelOnSignal(cancel context.CancelFunc, logger *zap.Logger) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigCh
	logger.Info("shutting down", zap.String("signal", sig.String()))
	cancel()
}
