package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/SherClockHolmes/webpush-go"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"

	"hostel-food-backend/config"
	"hostel-food-backend/internal/api"
	"hostel-food-backend/internal/db"
	"hostel-food-backend/internal/logging"
	"hostel-food-backend/internal/monitoring"
	"hostel-food-backend/internal/notification"
	"hostel-food-backend/internal/store"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Warn().Err(err).Msg("no .env file loaded")
	}

	// Load configuration
	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "./config/config.yaml" // Default path for local development
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		log.Fatal().Err(err).Str("path", configPath).Msg("failed to load configuration")
	}

	logging.Setup(&cfg.Logging)
	logger := logging.NewLogger("foodreviewd")
	logger.Info().Str("path", configPath).Msg("configuration loaded")
	if cfg.Logging.Level != "debug" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Initialize database
	gormDB, err := db.Init(&cfg.Database)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to initialize database")
	}
	appStore := store.NewGormStore(gormDB)

	var metrics *monitoring.Metrics
	if cfg.Metrics.Enabled {
		metrics = monitoring.New()
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Alerts are optional; without VAPID keys the service only stores and lists.
	var (
		alerts         api.Dispatcher
		workerPool     *notification.WorkerPool
		webpushOptions *webpush.Options
	)
	if cfg.Push.Enabled {
		webpushOptions = &webpush.Options{
			VAPIDPublicKey:  cfg.Push.PublicKey,
			VAPIDPrivateKey: cfg.Push.PrivateKey,
			Subscriber:      cfg.Push.Subject,
			TTL:             cfg.Push.TTL,
		}
		workerPool = notification.NewWorkerPool(cfg.WorkerPool.Size, cfg.WorkerPool.Queue, appStore,
			webpushOptions, metrics, logging.NewLogger("notification"))
		workerPool.Start(ctx)
		alerts = workerPool
		logger.Info().Int("workers", cfg.WorkerPool.Size).Msg("new-review alerts enabled")
	}

	handler := api.NewHandler(appStore, alerts, webpushOptions, metrics, logging.NewLogger("api"))
	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:           api.NewRouter(handler, cfg),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Info().Int("port", cfg.Server.Port).Msg("HTTP server starting")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal().Err(err).Msg("HTTP server ListenAndServe")
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	<-stop
	logger.Info().Msg("Shutdown signal received, stopping services...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("HTTP server Shutdown")
	}

	cancel()
	if workerPool != nil {
		workerPool.Wait()
	}

	logger.Info().Msg("Server gracefully stopped")
}
