package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/ROHITHC1526/CyberGuardBOT/internal/service"
)

const msgInternalError = "Internal server error"

func respondOK(c *gin.Context, data any) {
	c.JSON(http.StatusOK, gin.H{"success": true, "data": data})
}

// respondError maps service errors to HTTP responses. Errors outside the
// service taxonomy become a 500 with fallback as the message; the underlying
// error text is only added when exposeDetail is set.
func respondError(c *gin.Context, logger *zap.Logger, err error, fallback string, exposeDetail bool) {
	var (
		validationErr  *service.ValidationError
		unavailableErr *service.ScorerUnavailableError
		upstreamErr    *service.ScorerUpstreamError
		invalidErr     *service.InvalidScorerResponseError
	)

	switch {
	case errors.As(err, &validationErr):
		c.JSON(http.StatusBadRequest, errorBody(validationErr.Message))
	case errors.As(err, &unavailableErr):
		c.JSON(http.StatusServiceUnavailable, errorBody(unavailableErr.Message()))
	case errors.As(err, &upstreamErr):
		c.JSON(upstreamErr.StatusCode(), errorBody(upstreamErr.Message()))
	case errors.As(err, &invalidErr):
		c.JSON(http.StatusInternalServerError, errorBody(invalidErr.Message()))
	default:
		logger.Error(fallback, zap.String("path", c.Request.URL.Path), zap.Error(err))
		body := errorBody(fallback)
		if exposeDetail {
			body["message"] = err.Error()
		}
		c.JSON(http.StatusInternalServerError, body)
	}
	_ = c.Error(err)
}

func errorBody(msg string) gin.H {
	return gin.H{"success": false, "error": msg}
}

// NotFound answers every unmatched route.
func NotFound(c *gin.Context) {
	c.JSON(http.StatusNotFound, errorBody("Route not found"))
}
