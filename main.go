package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/charmbracelet/log"

	"github.com/arenax/arenax-server/internal/arena"
	"github.com/arenax/arenax-server/internal/checkin"
	"github.com/arenax/arenax-server/internal/config"
	"github.com/arenax/arenax-server/internal/database"
	server "github.com/arenax/arenax-server/internal/http"
	"github.com/arenax/arenax-server/internal/match"
	"github.com/arenax/arenax-server/internal/metrics"
	"github.com/arenax/arenax-server/internal/notifier/slack"
	"github.com/arenax/arenax-server/internal/processor"
	"github.com/arenax/arenax-server/internal/pubsub"
	"github.com/arenax/arenax-server/internal/wallet"
	"github.com/arenax/arenax-server/internal/xendit"
)

func main() {
	// Start profiling timer
	startTime := time.Now()
	log.SetFormatter(log.JSONFormatter)
	cfg := config.Load()
	db, dbTeardown, err := database.InitDB(cfg.DBName, cfg.Turso.PrimaryURL, cfg.Turso.AuthToken, cfg.MigrationsDir)
	dbInitDuration := time.Since(startTime)
	log.Info("Database initialization time recorded", "duration_ms", dbInitDuration.Milliseconds())
	if err != nil {
		log.Fatalf("Failed to initialize database: %s", err)
	}
	defer func() {
		log.Info("Closing database connection")
		dbTeardown()
	}()

	matchStore := match.New(db)
	arenaStore := arena.New(db)
	walletStore := wallet.New(db)
	tracker := checkin.NewTracker()
	metricsSvc := metrics.NewService()
	metricsHandler := metrics.NewMetricsHandler()
	xenditClient := xendit.NewClient(cfg.Xendit.SecretKey)
	notifier := slack.NewNotifier(cfg.Slack.Token, cfg.Slack.ChannelID, metricsSvc)
	pubsub := pubsub.New(cfg.ProjectID)
	processor := processor.New(matchStore, arenaStore, notifier, metricsSvc, pubsub)

	s := server.NewServer(
		matchStore,
		arenaStore,
		walletStore,
		tracker,
		metricsSvc,
		metricsHandler,
		cfg,
		xenditClient,
		notifier,
		processor,
		pubsub,
	)

	// --- Record startup time ---
	startupDuration := time.Since(startTime)
	metricsSvc.SetStartupTime(startupDuration.Seconds())
	log.Info("Startup time recorded", "duration_ms", startupDuration.Milliseconds())

	// Background lifecycle sweep: announces fresh bookings and completes
	// matches past their end time.
	sweepDone := make(chan struct{})
	go processor.Run(sweepDone, time.Minute, false)

	// --- Graceful shutdown setup ---
	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: s,
	}

	// Channel to listen for errors coming from the server
	serverErrors := make(chan error, 1)

	// Start the server in a goroutine
	go func() {
		log.Info("Server started", "port", cfg.Port)
		serverErrors <- srv.ListenAndServe()
	}()

	// Channel to listen for interrupt signals
	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	// Block until we receive a signal or an error
	select {
	case err := <-serverErrors:
		if err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server error: %v", err)
		}
	case sig := <-shutdown:
		log.Info("Shutdown signal received", "signal", sig)
		close(sweepDone)
		s.Monitors.Shutdown()

		// Create a context with a timeout for the shutdown.
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		// Attempt to gracefully shut down the server.
		if err := srv.Shutdown(ctx); err != nil {
			log.Error("Server shutdown failed", "error", err)
		} else {
			log.Info("Server gracefully stopped")
		}
	}

	log.Info("Server process shutting down")
}
