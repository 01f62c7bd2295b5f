package server

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/pageza/macro-tracker/backend/config"
	"github.com/pageza/macro-tracker/backend/internal/api"
	"github.com/pageza/macro-tracker/backend/internal/estimation"
	"github.com/pageza/macro-tracker/backend/internal/logging"
	"github.com/pageza/macro-tracker/backend/internal/middleware"
	"github.com/pageza/macro-tracker/backend/internal/service"
)

const shutdownTimeout = 5 * time.Second

// Dependencies are the external resources the server is built on
type Dependencies struct {
	DB        *gorm.DB
	Redis     *redis.Client
	Estimator estimation.Estimator
	// Storage is nil when meal export is disabled
	Storage service.ObjectStore
	Logger  *logrus.Logger
}

// Server represents the HTTP server
type Server struct {
	router *gin.Engine
	http   *http.Server
	logger *logrus.Logger
}

// New wires services, middleware and routes
func New(cfg *config.Config, deps Dependencies) *Server {
	if cfg.Environment == config.Production {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(
		logging.RequestLogger(deps.Logger),
		middleware.ErrorHandler(deps.Logger),
		middleware.CORS(cfg.CORSOrigins),
	)

	events := service.NewAuthEvents()
	meals := service.NewMealService(deps.DB)
	profiles := service.NewProfileService(deps.DB)

	svc := api.Services{
		Auth:            service.NewAuthService(deps.DB, cfg.JWTSecret, service.NewRedisRevocationStore(deps.Redis), events, deps.Logger),
		Profiles:        profiles,
		Meals:           meals,
		Summaries:       service.NewSummaryService(meals, profiles),
		Estimation:      service.NewEstimationService(deps.Estimator, service.NewRedisDraftStore(deps.Redis), deps.Logger),
		Events:          events,
		EstimateLimiter: middleware.NewEstimationRateLimiter(deps.Redis, cfg.EstimationRateLimit, deps.Logger),
		AllowedOrigins:  cfg.CORSOrigins,
		Logger:          deps.Logger,
	}
	if deps.Storage != nil {
		svc.Export = service.NewExportService(meals, profiles, deps.Storage, deps.Logger)
	} else {
		deps.Logger.Warn("no export storage configured, meal export disabled")
	}

	api.RegisterRoutes(router, deps.DB, svc)

	return &Server{
		router: router,
		http: &http.Server{
			Addr:              net.JoinHostPort(cfg.ServerHost, cfg.ServerPort),
			Handler:           router,
			ReadHeaderTimeout: 10 * time.Second,
		},
		logger: deps.Logger,
	}
}

// Handler exposes the router
func (s *Server) Handler() http.Handler {
	return s.router
}

// Start serves until ctx is cancelled, then shuts down gracefully
func (s *Server) Start(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		s.logger.WithField("addr", s.http.Addr).Info("server listening")
		if err := s.http.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	s.logger.Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return s.Stop(shutdownCtx)
}

// Stop gracefully stops the HTTP server
func (s *Server) Stop(ctx context.Context) error {
	return s.http.Shutdown(ctx)
}
