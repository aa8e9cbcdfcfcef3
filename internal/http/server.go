// Package http assembles the gin router and runs the API and metrics servers.
package http

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	authHTTP "github.com/stakwork/fieldcrypt/internal/auth/http"
	authService "github.com/stakwork/fieldcrypt/internal/auth/service"
	"github.com/stakwork/fieldcrypt/internal/config"
	encryptionHTTP "github.com/stakwork/fieldcrypt/internal/encryption/http"
	fieldsHTTP "github.com/stakwork/fieldcrypt/internal/fields/http"
	"github.com/stakwork/fieldcrypt/internal/metrics"
)

const readinessTimeout = 2 * time.Second

// Server is the API server.
type Server struct {
	db     *sql.DB
	server *http.Server
	router *gin.Engine
	logger *slog.Logger
}

// NewServer creates the API server. SetupRouter must be called before Start.
func NewServer(db *sql.DB, host string, port int, logger *slog.Logger) *Server {
	return &Server{
		db:     db,
		logger: logger,
		server: &http.Server{
			Addr:         fmt.Sprintf("%s:%d", host, port),
			ReadTimeout:  15 * time.Second,
			WriteTimeout: 15 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
	}
}

// RouterDeps are the handlers and middleware dependencies mounted by SetupRouter.
type RouterDeps struct {
	FieldHandler  *fieldsHTTP.FieldHandler
	EnvVarHandler *encryptionHTTP.EnvVarHandler
	// TokenVerifier guards /v1. When nil the /v1 routes are not mounted.
	TokenVerifier   authService.TokenVerifier
	MetricsProvider *metrics.Provider
}

// SetupRouter builds the gin engine. ctx bounds background work started by
// middleware, such as rate limiter cleanup.
func (s *Server) SetupRouter(ctx context.Context, cfg *config.Config, deps RouterDeps) {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(requestid.New(requestid.WithGenerator(func() string {
		return uuid.Must(uuid.NewV7()).String()
	})))
	router.Use(CustomLoggerMiddleware(s.logger))

	if corsMiddleware := createCORSMiddleware(cfg.CORSEnabled, cfg.CORSAllowOrigins, s.logger); corsMiddleware != nil {
		router.Use(corsMiddleware)
	}

	if deps.MetricsProvider != nil {
		router.Use(metrics.HTTPMetricsMiddleware(deps.MetricsProvider.MeterProvider(), cfg.MetricsNamespace))
	}

	router.GET("/health", s.healthHandler)
	router.GET("/ready", s.readinessHandler)

	if deps.TokenVerifier == nil {
		s.logger.Warn("AUTH_TOKEN_HASH not set, /v1 API disabled")
		s.router = router
		return
	}

	v1 := router.Group("/v1")
	// Rate limiting runs first so floods of bad tokens never reach Argon2id.
	if cfg.RateLimitEnabled {
		v1.Use(authHTTP.RateLimitMiddleware(ctx, cfg.RateLimitRequestsPerSec, cfg.RateLimitBurst, s.logger))
	}
	v1.Use(authHTTP.AuthenticationMiddleware(deps.TokenVerifier, s.logger))

	if deps.FieldHandler != nil {
		fields := v1.Group("/fields/:ownerType/:ownerId")
		fields.GET("", deps.FieldHandler.ListHandler)
		fields.PUT("/:fieldName", deps.FieldHandler.PutHandler)
		fields.GET("/:fieldName", deps.FieldHandler.GetHandler)
		fields.DELETE("/:fieldName", deps.FieldHandler.DeleteHandler)
	}

	if deps.EnvVarHandler != nil {
		v1.POST("/env-vars/encrypt", deps.EnvVarHandler.EncryptHandler)
		v1.POST("/env-vars/decrypt", deps.EnvVarHandler.DecryptHandler)
		v1.GET("/keys/active", deps.EnvVarHandler.ActiveKeyHandler)
	}

	s.router = router
}

// GetHandler returns the router for tests.
func (s *Server) GetHandler() http.Handler {
	return s.router
}

// Start serves until Shutdown is called.
func (s *Server) Start(ctx context.Context) error {
	if s.router == nil {
		return errors.New("router not configured")
	}
	s.server.Handler = s.router

	s.logger.Info("starting http server", slog.String("addr", s.server.Addr))

	if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("failed to start server: %w", err)
	}
	return nil
}

// Shutdown gracefully shuts down the server.
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("shutting down http server")
	return s.server.Shutdown(ctx)
}

func (s *Server) healthHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "healthy"})
}

// readinessHandler reports ready only when the database answers a ping.
func (s *Server) readinessHandler(c *gin.Context) {
	database := "ok"
	if s.db == nil {
		database = "error"
	} else {
		ctx, cancel := context.WithTimeout(c.Request.Context(), readinessTimeout)
		defer cancel()
		if err := s.db.PingContext(ctx); err != nil {
			s.logger.Warn("readiness check failed", slog.Any("error", err))
			database = "error"
		}
	}

	status, code := "ready", http.StatusOK
	if database != "ok" {
		status, code = "not_ready", http.StatusServiceUnavailable
	}

	c.JSON(code, gin.H{
		"status":     status,
		"components": gin.H{"database": database},
	})
}
