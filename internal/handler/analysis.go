package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/ROHITHC1526/CyberGuardBOT/internal/service"
)

type AnalysisHandler interface {
	AnalyzeMessage(c *gin.Context)
}

type analysisHandler struct {
	analyzer     service.AnalyzerService
	logger       *zap.Logger
	exposeDetail bool
}

func NewAnalysisHandler(analyzer service.AnalyzerService, logger *zap.Logger, exposeDetail bool) AnalysisHandler {
	return &analysisHandler{
		analyzer:     analyzer,
		logger:       logger,
		exposeDetail: exposeDetail,
	}
}

// MaxRequestBytes caps the analyze request body.
const MaxRequestBytes = 100 << 10

type analyzeRequest struct {
	Message *string `json:"message"`
}

// AnalyzeMessage handles POST /api/analyze-message
func (h *analysisHandler) AnalyzeMessage(c *gin.Context) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, MaxRequestBytes)

	var req analyzeRequest
	err := c.ShouldBindJSON(&req)
	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		c.JSON(http.StatusRequestEntityTooLarge, errorBody("Request body too large"))
		return
	}
	if err != nil || req.Message == nil {
		respondError(c, h.logger, service.NewValidationError(), msgInternalError, h.exposeDetail)
		return
	}

	address := c.ClientIP()
	in := service.AnalyzeInput{Message: req.Message}
	if address != "" {
		in.SourceAddress = &address
	}

	result, err := h.analyzer.Analyze(c.Request.Context(), in)
	if err != nil {
		respondError(c, h.logger, err, msgInternalError, h.exposeDetail)
		return
	}

	respondOK(c, result)
}
