package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/pageza/macro-tracker/backend/config"
	"github.com/pageza/macro-tracker/backend/internal/database"
	"github.com/pageza/macro-tracker/backend/internal/estimation"
	"github.com/pageza/macro-tracker/backend/internal/logging"
	"github.com/pageza/macro-tracker/backend/internal/server"
)

func main() {
	log := logging.New(os.Getenv("LOG_LEVEL"), os.Getenv("LOG_FORMAT"), os.Stdout)

	cfg, err := config.LoadConfig()
	if err != nil {
		log.WithError(err).Fatal("failed to load configuration")
	}
	log = logging.New(cfg.LogLevel, cfg.LogFormat, os.Stdout)
	log.WithField("environment", cfg.Environment).Info("starting macro tracker API")

	db, err := database.New(cfg, log)
	if err != nil {
		log.WithError(err).Fatal("failed to connect to database")
	}
	migrationsDir := os.Getenv("MIGRATIONS_DIR")
	if migrationsDir == "" {
		migrationsDir = "migrations"
	}
	if err := database.RunMigrations(db, migrationsDir, log); err != nil {
		log.WithError(err).Fatal("failed to run migrations")
	}

	rdb, err := database.NewRedisClient(cfg, log)
	if err != nil {
		log.WithError(err).Fatal("failed to connect to redis")
	}
	defer rdb.Close()

	// no client timeout: the request context bounds each call
	estimator, err := estimation.NewClient(cfg.EstimationAPIURL, cfg.EstimationAPIVersion, cfg.EstimationAPIKey, &http.Client{}, log)
	if err != nil {
		log.WithError(err).Fatal("failed to create estimation client")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	deps := server.Dependencies{
		DB:        db,
		Redis:     rdb,
		Estimator: estimator,
		Logger:    log,
	}
	if cfg.S3Bucket != "" {
		storage, err := config.NewS3Config(ctx, cfg)
		if err != nil {
			log.WithError(err).Warn("failed to initialize S3, meal export disabled")
		} else {
			deps.Storage = storage
		}
	}

	srv := server.New(cfg, deps)
	if err := srv.Start(ctx); err != nil {
		log.WithError(err).Fatal("server error")
	}
	log.Info("server stopped")
}
