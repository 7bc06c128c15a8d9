package main

import (
	"database/sql"
	"flag"
	"log"
	"net/http"
	"time"

	_ "github.com/lib/pq"
	"github.com/shopspring/decimal"

	httpapi "renthub-backend/internal/api/http"
	"renthub-backend/internal/config"
	"renthub-backend/internal/logger"
	"renthub-backend/internal/pricing"
	"renthub-backend/internal/processor"
	"renthub-backend/internal/repository/postgres"
	"renthub-backend/internal/security"
	"renthub-backend/internal/service"
)

func main() {
	// Parse command-line flags
	configPath := flag.String("config", "config/config.dev.yaml", "Path to configuration file")
	flag.Parse()

	// Load configuration
	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize logger
	logger.Initialize(cfg.Log.Level, cfg.Log.Format)
	logger.Info("Starting RentHub Backend...", "log_level", cfg.Log.Level, "log_format", cfg.Log.Format)
	logger.Info("Server configuration", "address", cfg.GetServerAddress())
	logger.Info("Database configuration", "host", cfg.Database.Host, "port", cfg.Database.Port, "database", cfg.Database.Database, "user", cfg.Database.User)
	logger.Info("SMTP configuration", "host", cfg.SMTP.Host, "port", cfg.SMTP.Port)

	// Initialize Database
	db, err := sql.Open("postgres", cfg.GetDatabaseConnectionString())
	if err != nil {
		logger.Error("Failed to connect to database", "error", err)
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	// Test database connection
	if err := db.Ping(); err != nil {
		logger.Error("Failed to ping database", "error", err)
		log.Fatalf("Failed to ping database: %v", err)
	}
	logger.Info("Database connection established")

	// Initialize Repositories
	store := postgres.NewStore(db)

	// Initialize Security
	tokenManager := security.NewTokenManager(
		cfg.JWT.Secret,
		time.Duration(cfg.JWT.AccessTokenExpiry)*time.Minute,
	)

	// Initialize Payment Processor client
	processorClient := processor.NewClient(cfg.Processor.BaseURL, cfg.Processor.SecretKey)

	// Initialize Fee Calculator
	feeCalculator := pricing.NewCalculator(feeConfig(cfg.Fees))

	// Initialize Services
	emailSvc := service.NewEmailService(cfg.SMTP)
	notifierSvc := service.NewNotifierService(store.ConversationRepository)
	authSvc := service.NewAuthService(store.UserRepository, tokenManager)
	walletSvc := service.NewWalletService(store.WalletRepository)
	bookingSvc := service.NewBookingService(
		store.BookingRepository,
		store.WalletRepository,
		store.PendingModificationRepository,
		store.UserRepository,
		processorClient,
		feeCalculator,
		notifierSvc,
		emailSvc,
		cfg.Processor.Currency,
	)
	paymentEventSvc := service.NewPaymentEventService(
		store.BookingRepository,
		store.PendingModificationRepository,
		notifierSvc,
		emailSvc,
	)

	// Set up HTTP server
	router := httpapi.NewRouter(
		authSvc,
		bookingSvc,
		walletSvc,
		paymentEventSvc,
		tokenManager,
		cfg.Processor.WebhookSecret,
	)

	logger.Info("HTTP server listening", "address", cfg.GetServerAddress())
	if err := http.ListenAndServe(cfg.GetServerAddress(), router); err != nil {
		logger.Error("Failed to serve HTTP", "error", err)
		log.Fatalf("Failed to serve: %v", err)
	}
}

func feeConfig(f config.FeesConfig) pricing.Config {
	return pricing.Config{
		VariableFeePercent:      decimal.NewFromFloat(f.VariableFeePercent),
		RenterFixedFeeThreshold: decimal.NewFromFloat(f.RenterFixedThreshold),
		RenterFixedFeeBelow:     decimal.NewFromFloat(f.RenterFixedBelow),
		RenterFixedFeeAbove:     decimal.NewFromFloat(f.RenterFixedAbove),
		HubberFixedFeeThreshold: decimal.NewFromFloat(f.HubberFixedThreshold),
		HubberFixedFeeBelow:     decimal.NewFromFloat(f.HubberFixedBelow),
		HubberFixedFeeAbove:     decimal.NewFromFloat(f.HubberFixedAbove),
	}
}
