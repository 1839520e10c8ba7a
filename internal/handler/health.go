package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/ROHITHC1526/CyberGuardBOT/internal/scorer_client"
)

const healthCheckTimeout = 3 * time.Second

type StorePinger interface {
	Ping(ctx context.Context) error
}

type ScorerHealthChecker interface {
	HealthCheck(ctx context.Context) (*scorer_client.HealthResponse, error)
}

type HealthHandler interface {
	Info(c *gin.Context)
	Health(c *gin.Context)
}

type healthHandler struct {
	store  StorePinger
	scorer ScorerHealthChecker
	logger *zap.Logger
}

func NewHealthHandler(store StorePinger, scorer ScorerHealthChecker, logger *zap.Logger) HealthHandler {
	return &healthHandler{
		store:  store,
		scorer: scorer,
		logger: logger,
	}
}

// Info handles GET /
func (h *healthHandler) Info(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "running",
		"message": "CyberGuard Bot - Go Backend API",
		"endpoints": gin.H{
			"POST /api/analyze-message": "Analyze a message for scam detection",
			"GET /api/messages":         "Retrieve stored messages (with pagination)",
			"GET /api/stats":            "Get statistics about analyzed messages",
			"GET /health":               "Check store and scoring engine availability",
		},
	})
}

type healthStatus struct {
	Store       string `json:"store"`
	Scorer      string `json:"scorer"`
	ModelLoaded bool   `json:"modelLoaded"`
}

// Health handles GET /health
func (h *healthHandler) Health(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), healthCheckTimeout)
	defer cancel()

	status := healthStatus{Store: "up", Scorer: "up"}

	if err := h.store.Ping(ctx); err != nil {
		h.logger.Warn("Store health check failed", zap.Error(err))
		status.Store = "down"
	}

	resp, err := h.scorer.HealthCheck(ctx)
	if err != nil {
		h.logger.Warn("Scoring engine health check failed", zap.Error(err))
		status.Scorer = "down"
	} else {
		status.ModelLoaded = resp.ModelLoaded
	}

	if status.Store == "down" || status.Scorer == "down" {
		c.JSON(http.StatusServiceUnavailable, gin.H{"success": false, "data": status})
		return
	}
	respondOK(c, status)
}
