package cmd

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"example.com/packpal/api"
	"example.com/packpal/api/routes"
	"example.com/packpal/config"
	"example.com/packpal/internal/cache"
	"example.com/packpal/internal/database"
	"example.com/packpal/internal/repository"
	"example.com/packpal/internal/service"
	"example.com/packpal/internal/telemetry"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var (
	// Serve command flags
	disableNewRelic bool
	serverPort      int
	gracefulTimeout int
)

// serveCmd represents the serve command
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the API server",
	Long: `Starts the Packpal API server that handles accounts, packing
checklists, announcements, shipment tracking and global settings.

The server respects the configuration in config.yaml or specified via the --config flag.
It will gracefully shut down on receiving SIGINT or SIGTERM signals.`,
	Run: func(cmd *cobra.Command, args []string) {
		startServer()
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)

	// Serve-specific flags
	serveCmd.Flags().BoolVar(&disableNewRelic, "disable-newrelic", false, "Disable New Relic monitoring")
	serveCmd.Flags().IntVar(&serverPort, "port", 0, "Server port (overrides config file)")
	serveCmd.Flags().IntVar(&gracefulTimeout, "graceful-timeout", 30, "Graceful shutdown timeout in seconds")
}

// startServer initializes and starts the API server
func startServer() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Override config with command line flags if provided
	if serverPort > 0 {
		cfg.Server.Port = serverPort
	}

	log.WithFields(logrus.Fields{
		"port":             cfg.Server.Port,
		"newrelic_enabled": cfg.NewRelic.Enabled && !disableNewRelic,
	}).Info("Initializing service components...")

	db := connectWithRetry(cfg)
	defer func() {
		log.Info("Closing database connection...")
		if err := db.Close(); err != nil {
			log.WithField("error", err.Error()).Error("Error closing database connection")
		}
	}()

	// Redis is optional; reads fall back to the database without it
	log.Info("Connecting to Redis...")
	redisClient, err := cache.NewRedisClient(cfg.Redis)
	if err != nil {
		log.Warnf("Failed to connect to Redis, continuing without caching: %v", err)
		redisClient = nil
	} else {
		defer func() {
			log.Info("Closing Redis connection...")
			if err := redisClient.Close(); err != nil {
				log.WithField("error", err.Error()).Error("Error closing Redis connection")
			}
		}()
	}

	// Initialize New Relic if enabled
	nrCfg := cfg.NewRelic
	if disableNewRelic {
		nrCfg.Enabled = false
	}
	nrApp, err := telemetry.InitNewRelic(nrCfg)
	if err != nil {
		log.Warnf("Failed to initialize New Relic: %v", err)
	}

	svc := buildServices(cfg, db, redisClient)

	// Create and initialize the server
	log.Info("Initializing API server...")
	server := api.NewServer(cfg, log, nrApp, svc)

	// Set up graceful shutdown
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	// Start the server in a goroutine
	go func() {
		log.WithFields(logrus.Fields{
			"port": cfg.Server.Port,
		}).Info("Starting server...")

		if err := server.Start(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	// Wait for shutdown signal
	sig := <-stop
	log.Infof("Received signal %s, shutting down gracefully...", sig.String())

	// Create a timeout context for shutdown
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(gracefulTimeout)*time.Second)
	defer cancel()

	// Shutdown HTTP server
	log.Info("Shutting down HTTP server...")
	if err := server.Shutdown(ctx); err != nil {
		log.Warnf("Server shutdown error: %v", err)
	}

	log.Info("Server shutdown complete")
}

// connectWithRetry connects to the database with exponential backoff
func connectWithRetry(cfg *config.Config) database.DB {
	var db database.DB
	var err error

	maxRetries := 5
	retryInterval := time.Second

	for i := 0; i < maxRetries; i++ {
		log.WithField("attempt", i+1).Info("Connecting to database...")
		db, err = database.Connect(cfg.Database)
		if err == nil {
			break
		}

		log.WithFields(logrus.Fields{
			"error":         err.Error(),
			"retry_attempt": i + 1,
			"max_retries":   maxRetries,
		}).Error("Failed to connect to database, retrying...")

		if i < maxRetries-1 {
			time.Sleep(retryInterval)
			retryInterval *= 2
		}
	}

	if err != nil {
		log.Fatalf("Failed to connect to database after %d attempts: %v", maxRetries, err)
	}

	log.Info("Successfully connected to database")
	return db
}

// buildServices constructs the service layer shared by serve and worker
func buildServices(cfg *config.Config, db database.DB, redisClient cache.RedisClient) routes.Services {
	log.Info("Initializing repositories...")
	userRepo := repository.NewUserRepository(db)
	checklistRepo := repository.NewChecklistRepository(db)
	announcementRepo := repository.NewAnnouncementRepository(db)
	packageRepo := repository.NewPackageRepository(db)
	settingsRepo := repository.NewSettingsRepository(db)

	log.Info("Initializing service layer...")
	tokenTTL := time.Duration(cfg.Auth.TokenTTLHours) * time.Hour

	return routes.Services{
		Auth:          service.NewAuthService(userRepo, log, cfg.Auth.JWTSecret, tokenTTL),
		Checklists:    service.NewChecklistService(checklistRepo, userRepo, log),
		Announcements: service.NewAnnouncementService(announcementRepo, log),
		Packages:      service.NewPackageService(packageRepo, settingsRepo, log),
		Settings:      service.NewSettingsService(settingsRepo, packageRepo, redisClient, log),
	}
}
