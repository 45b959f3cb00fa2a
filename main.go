package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/swiftparcel/swiftparcel-be/internal/api"
	"github.com/swiftparcel/swiftparcel-be/internal/config"
	"github.com/swiftparcel/swiftparcel-be/internal/database"
	"github.com/swiftparcel/swiftparcel-be/internal/logger"
	"github.com/swiftparcel/swiftparcel-be/internal/monitoring"
	"github.com/swiftparcel/swiftparcel-be/internal/payments"
	"github.com/swiftparcel/swiftparcel-be/internal/services"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}

	logger.Init(cfg.LogLevel)

	// Set up database
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	client, err := database.New(ctx, cfg.MongoURI)
	cancel()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to MongoDB")
	}
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := client.Disconnect(ctx); err != nil {
			log.Error().Err(err).Msg("Failed to disconnect from MongoDB")
		}
	}()

	db := client.Database(cfg.DatabaseName)

	ctx, cancel = context.WithTimeout(context.Background(), 10*time.Second)
	err = database.EnsureIndexes(ctx, db)
	cancel()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to create indexes")
	}

	// Set up the payment processor client
	stripeClient := payments.NewStripeClient(cfg.StripeSecretKey)

	// Set up services
	parcelService := services.NewParcelService(db)
	userService := services.NewUserService(db)
	paymentService := services.NewPaymentService(db, parcelService, stripeClient)

	// Set up and run the background settlement reconciler
	reconciler, err := monitoring.NewReconciler(parcelService, paymentService, cfg.ReconcileSchedule)
	if err != nil {
		log.Fatal().Err(err).Str("schedule", cfg.ReconcileSchedule).Msg("Invalid reconcile schedule")
	}
	go reconciler.Run()

	// Set up router
	router := api.NewRouter(cfg.AllowedOrigin, parcelService, userService, paymentService)

	// Set up server
	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.ServerPort),
		Handler: router,
	}

	// Graceful shutdown
	go func() {
		log.Info().Int("port", cfg.ServerPort).Msg("Server starting")
		if err := srv.ListenAndServe(); err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("ListenAndServe()")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("Shutting down server...")

	reconciler.Stop()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatal().Err(err).Msg("Server forced to shutdown")
	}

	log.Info().Msg("Server exiting")
}
