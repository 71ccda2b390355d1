package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/laundrycare/lce/internal/api"
	v1 "github.com/laundrycare/lce/internal/api/v1"
	"github.com/laundrycare/lce/internal/config"
	"github.com/laundrycare/lce/internal/cron"
	"github.com/laundrycare/lce/internal/gateway/stripe"
	"github.com/laundrycare/lce/internal/logger"
	"github.com/laundrycare/lce/internal/postgres"
	"github.com/laundrycare/lce/internal/repository"
	"github.com/laundrycare/lce/internal/service"
	"github.com/laundrycare/lce/internal/types"
	"github.com/joho/godotenv"
)

func init() {
	// Set UTC timezone for the entire application
	time.Local = time.UTC
}

func main() {
	_ = godotenv.Load()

	cfg, err := config.NewConfig()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	lg, err := logger.NewLogger(cfg)
	if err != nil {
		log.Fatalf("failed to initialize logger: %v", err)
	}

	db, err := postgres.NewDB(cfg, lg)
	if err != nil {
		lg.Fatalw("failed to connect to postgres", "error", err)
	}
	client := postgres.NewClient(db, lg)

	params := service.ServiceParams{
		Logger:           lg,
		Config:           cfg,
		DB:               client,
		Clock:            types.RealClock(),
		Gateway:          stripe.NewGateway(cfg, lg),
		UserRepo:         repository.NewUserRepository(client, lg),
		PlanRepo:         repository.NewPlanRepository(client, lg),
		SubRepo:          repository.NewSubscriptionRepository(client, lg),
		BagUsageRepo:     repository.NewBagUsageRepository(client, lg),
		CreditRepo:       repository.NewCreditRepository(client, lg),
		PickupRepo:       repository.NewPickupRepository(client, lg),
		InvoiceRepo:      repository.NewInvoiceRepository(client, lg),
		InvoiceLineRepo:  repository.NewInvoiceLineRepository(client, lg),
		TransactionRepo:  repository.NewTransactionRepository(client, lg),
		HolidayRepo:      repository.NewHolidayRepository(client, lg),
		PriceCatalogRepo: repository.NewPriceCatalogRepository(client, lg),
		ZoneRepo:         repository.NewZoneRepository(client, lg),
	}

	calendarService := service.NewCalendarService(params)
	schedulingService := service.NewSchedulingService(params, calendarService)
	pricingService := service.NewPricingService(params)
	creditService := service.NewCreditService(params)
	billingService := service.NewBillingService(params, creditService)
	subscriptionService := service.NewSubscriptionService(params, creditService)

	router := api.NewRouter(api.Handlers{
		Health:       v1.NewHealthHandler(lg),
		Subscription: v1.NewSubscriptionHandler(subscriptionService, lg),
		Pickup:       v1.NewPickupHandler(schedulingService, calendarService, pricingService, lg),
		Invoice:      v1.NewInvoiceHandler(billingService, lg),
		Credit:       v1.NewCreditHandler(creditService, lg),
	}, cfg)

	renewals := cron.NewRenewalScheduler(subscriptionService, lg)
	if err := renewals.Setup(); err != nil {
		lg.Fatalw("failed to register renewal job", "error", err)
	}
	renewals.Start()
	defer renewals.Stop()

	srv := &http.Server{
		Addr:    cfg.Server.Address,
		Handler: router,
	}

	go func() {
		lg.Infow("starting server", "address", cfg.Server.Address)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			lg.Fatalw("server failed", "error", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	lg.Infow("shutting down server")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		lg.Errorw("forced shutdown", "error", err)
	}
}
