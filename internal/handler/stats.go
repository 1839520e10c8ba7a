package handler

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/ROHITHC1526/CyberGuardBOT/internal/service"
)

type StatsHandler interface {
	GetStats(c *gin.Context)
}

type statsHandler struct {
	stats        service.StatsService
	logger       *zap.Logger
	exposeDetail bool
}

func NewStatsHandler(stats service.StatsService, logger *zap.Logger, exposeDetail bool) StatsHandler {
	return &statsHandler{
		stats:        stats,
		logger:       logger,
		exposeDetail: exposeDetail,
	}
}

// GetStats handles GET /api/stats
func (h *statsHandler) GetStats(c *gin.Context) {
	stats, err := h.stats.Compute(c.Request.Context())
	if err != nil {
		respondError(c, h.logger, err, "Failed to retrieve statistics", h.exposeDetail)
		return
	}

	respondOK(c, stats)
}
