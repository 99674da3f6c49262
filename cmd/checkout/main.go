package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/DanielPopoola/ficmart-checkout-service/internal/application"
	"github.com/DanielPopoola/ficmart-checkout-service/internal/application/services"
	"github.com/DanielPopoola/ficmart-checkout-service/internal/config"
	"github.com/DanielPopoola/ficmart-checkout-service/internal/infrastructure/identity"
	"github.com/DanielPopoola/ficmart-checkout-service/internal/infrastructure/store/postgres"
	"github.com/DanielPopoola/ficmart-checkout-service/internal/infrastructure/store/postgrest"
	"github.com/DanielPopoola/ficmart-checkout-service/internal/infrastructure/stripe"
	"github.com/DanielPopoola/ficmart-checkout-service/internal/interfaces/rest/handlers"
	"github.com/DanielPopoola/ficmart-checkout-service/internal/interfaces/rest/middleware"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	logger := cfg.Logger.NewLogger()
	slog.SetDefault(logger)

	logger.Info("starting checkout service",
		"port", cfg.Server.Port,
		"store_mode", cfg.Store.Mode,
		"identity_mode", cfg.Identity.Mode,
	)

	ctx := context.Background()

	var (
		orderStore application.OrderStore
		adminStore application.AdminOrderStore
	)
	if cfg.Store.Mode == "postgres" {
		db, err := postgres.Connect(ctx, &cfg.Database, logger)
		if err != nil {
			logger.Error("failed to connect to database", "error", err)
			os.Exit(1)
		}
		defer db.Close()

		if err := postgres.Migrate(db.Pool); err != nil {
			logger.Error("failed to migrate database", "error", err)
			os.Exit(1)
		}

		store := postgres.NewOrderStore(db, identity.NewJWTVerifier(cfg.Identity.JWTSecret))
		orderStore, adminStore = store, store
	} else {
		client := postgrest.NewClient(cfg.Store)
		orderStore, adminStore = client, client
	}

	var callerIdentity application.Identity
	if cfg.Identity.Mode == "jwt" {
		callerIdentity = identity.NewJWTVerifier(cfg.Identity.JWTSecret)
	} else {
		callerIdentity = identity.NewClient(cfg.Identity.URL, cfg.Store.AnonKey, cfg.Identity.ConnTimeout)
	}

	stripeClient := stripe.NewClient(cfg.Stripe)
	webhookVerifier := stripe.NewWebhookVerifier(cfg.Stripe.WebhookSecret, cfg.Stripe.WebhookTolerance)

	orderService := services.NewOrderService(callerIdentity, orderStore, logger)
	intentService := services.NewPaymentIntentService(orderStore, stripeClient, logger)
	captureService := services.NewCaptureService(adminStore, logger)
	exportService := services.NewExportService(callerIdentity, orderStore, logger)
	webhookService := services.NewWebhookService(webhookVerifier, adminStore, logger)

	h := handlers.NewCheckoutHandler(
		orderService,
		intentService,
		captureService,
		exportService,
		webhookService,
		logger,
	)

	mux := http.NewServeMux()
	h.RegisterRoutes(mux)

	handler := middleware.CORS()(mux)
	handler = middleware.Timeout(cfg.Server.ReadTimeout)(handler)
	handler = middleware.Logging(logger)(handler)
	handler = middleware.Recovery(logger)(handler)

	server := &http.Server{
		Addr:         "0.0.0.0:" + cfg.Server.Port,
		Handler:      handler,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	go func() {
		logger.Info("server starting", "addr", server.Addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("server forced to shutdown", "error", err)
	}

	logger.Info("server exited")
}
