package middleware

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Recovery turns a panic in any handler into the standard 500 error envelope.
// The panic value is only echoed back when exposeDetail is set.
func Recovery(logger *zap.Logger, exposeDetail bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if r := recover(); r != nil {
				logger.Error("Recovered from panic",
					zap.String("path", c.Request.URL.Path),
					zap.Any("panic", r),
					zap.Stack("stack"))

				body := gin.H{"success": false, "error": "Internal server error"}
				if exposeDetail {
					body["message"] = fmt.Sprint(r)
				}
				c.AbortWithStatusJSON(http.StatusInternalServerError, body)
			}
		}()
		c.Next()
	}
}
