package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"flightstatus-service/internal/auth"
	"flightstatus-service/internal/domain/repository"
	"flightstatus-service/internal/infrastructure/config"
	"flightstatus-service/internal/infrastructure/oauth"
	"flightstatus-service/internal/infrastructure/persistence"
	"flightstatus-service/internal/interface/api"
	"flightstatus-service/internal/interface/notifier"
	mongoRepo "flightstatus-service/internal/interface/repository"
	"flightstatus-service/internal/usecase"
	"flightstatus-service/pkg/logger"
	"flightstatus-service/pkg/metrics"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func main() {
	// Create logger
	log := logger.NewLogger()
	log.Info("Starting Flight Status Service")

	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal("Failed to load config", "error", err)
	}

	// Set up context with cancellation
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Set up MongoDB connection
	log.Info("Connecting to MongoDB")
	mongoClient, db, err := persistence.NewMongoClient(ctx, cfg.MongoURI, cfg.MongoDB)
	if err != nil {
		log.Fatal("Failed to connect to MongoDB", "error", err)
	}

	gormDB, err := gorm.Open(postgres.Open(cfg.PostgresURI), &gorm.Config{})
	if err != nil {
		log.Fatal("Failed to connect to PostgreSQL", "error", err)
	}

	// Set up repositories
	flightRepo := mongoRepo.NewMongoFlightRepository(db)
	userRepo := mongoRepo.NewMongoUserRepository(db)
	notificationRepo := mongoRepo.NewMongoNotificationRepository(db)
	deliveryRepo, err := mongoRepo.NewGormDeliveryRepository(gormDB)
	if err != nil {
		log.Fatal("Failed to set up delivery repository", "error", err)
	}

	// Set up outbound channels
	channels := []repository.Notifier{
		notifier.NewSMSNotifier(cfg.TwilioAccountSID, cfg.TwilioAuthToken, cfg.TwilioFromNumber, log),
		notifier.NewEmailNotifier(cfg.SendgridAPIKey, cfg.SendgridSenderEmail, log),
	}
	if cfg.FCMProjectID != "" {
		fcmOAuth := oauth.NewFCMOAuth(cfg.GoogleClientID, cfg.GoogleClientSecret, cfg.GoogleRefreshToken, log)
		push, err := notifier.NewPushNotifier(ctx, fcmOAuth.GetTokenSource(ctx), cfg.FCMProjectID, log)
		if err != nil {
			log.Fatal("Failed to create push notifier", "error", err)
		}
		channels = append(channels, push)
	} else {
		log.Warn("FCM_PROJECT_ID not set, push channel disabled")
	}

	// Set up dispatcher worker pool
	m := metrics.NewMetrics("flightstatus")
	dispatcher := usecase.NewDispatcher(userRepo, notificationRepo, deliveryRepo, channels, usecase.DispatcherConfig{
		Workers:      cfg.WorkerCount,
		QueueSize:    cfg.QueueSize,
		MaxAttempts:  cfg.MaxAttempts,
		RetryBackoff: cfg.RetryBackoff,
	}, log, m)
	dispatcher.Start()

	// Set up services
	issuer := auth.NewTokenIssuer(cfg.JWTSecret, cfg.TokenTTL)
	authService, err := usecase.NewAuthService(issuer, userRepo, cfg.AdminUsername, cfg.AdminPassword, log)
	if err != nil {
		log.Fatal("Failed to set up auth service", "error", err)
	}
	userService := usecase.NewUserService(userRepo, flightRepo, log)
	flightService := usecase.NewFlightService(flightRepo, userRepo, dispatcher, log)

	// Set up HTTP server
	router := api.NewRouter(issuer,
		api.NewAuthHandler(authService, userService, log),
		api.NewFlightHandler(flightService, log),
		api.NewUserHandler(userService, log),
	)

	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	// Start HTTP server in a goroutine
	go func() {
		log.Info("Starting HTTP server", "port", cfg.Port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("HTTP server error", "error", err)
		}
	}()

	// Wait for interrupt signal
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	sig := <-sigChan
	log.Info("Received signal", "signal", sig)

	// Graceful shutdown
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error("HTTP server shutdown error", "error", err)
	}

	// Drain in-flight fan-out jobs before disconnecting stores
	dispatcher.Stop()
	cancel()

	// Disconnect from MongoDB
	if err := mongoClient.Disconnect(context.Background()); err != nil {
		log.Error("MongoDB disconnect error", "error", err)
	}

	log.Info("Flight Status Service stopped")
}
