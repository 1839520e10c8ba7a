package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/ROHITHC1526/CyberGuardBOT/internal/config"
	"github.com/ROHITHC1526/CyberGuardBOT/internal/handler"
	"github.com/ROHITHC1526/CyberGuardBOT/internal/middleware"
)

const shutdownTimeout = 5 * time.Second

// Handlers groups the route handlers the server exposes.
type Handlers struct {
	Analysis handler.AnalysisHandler
	Messages handler.MessagesHandler
	Stats    handler.StatsHandler
	Health   handler.HealthHandler
}

type Server struct {
	router *gin.Engine
	cfg    *config.Config
	logger *zap.Logger
}

func NewServer(cfg *config.Config, handlers Handlers, logger *zap.Logger) (*Server, error) {
	if !cfg.IsDevelopment() {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	if err := router.SetTrustedProxies(cfg.Server.TrustedProxies); err != nil {
		return nil, fmt.Errorf("invalid trusted proxies: %w", err)
	}

	router.Use(
		middleware.RequestLogger(logger),
		middleware.Recovery(logger, cfg.IsDevelopment()),
		middleware.CORS(),
	)

	s := &Server{
		router: router,
		cfg:    cfg,
		logger: logger,
	}
	s.setupRoutes(handlers)

	return s, nil
}

func (s *Server) setupRoutes(h Handlers) {
	s.router.GET("/", h.Health.Info)
	s.router.GET("/health", h.Health.Health)

	api := s.router.Group("/api")
	{
		api.POST("/analyze-message", h.Analysis.AnalyzeMessage)
		api.GET("/messages", h.Messages.ListMessages)
		api.GET("/stats", h.Stats.GetStats)
	}

	s.router.NoRoute(handler.NotFound)
}

func (s *Server) Handler() http.Handler {
	return s.router
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              ":" + s.cfg.Server.Port,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("Server starting", zap.String("address", srv.Addr), zap.String("env", s.cfg.App.Env))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	s.logger.Info("Shutting down server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server forced to shutdown: %w", err)
	}
	s.logger.Info("Server exited")
	return nil
}
