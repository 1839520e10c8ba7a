package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/ROHITHC1526/CyberGuardBOT/internal/service"
)

type MessagesHandler interface {
	ListMessages(c *gin.Context)
}

type messagesHandler struct {
	history      service.HistoryService
	logger       *zap.Logger
	exposeDetail bool
}

func NewMessagesHandler(history service.HistoryService, logger *zap.Logger, exposeDetail bool) MessagesHandler {
	return &messagesHandler{
		history:      history,
		logger:       logger,
		exposeDetail: exposeDetail,
	}
}

// ListMessages handles GET /api/messages?limit=&skip=&prediction=
func (h *messagesHandler) ListMessages(c *gin.Context) {
	q := service.HistoryQuery{
		Limit:      queryInt(c, "limit", service.DefaultHistoryLimit, 1),
		Skip:       queryInt(c, "skip", service.DefaultHistorySkip, 0),
		Prediction: c.Query("prediction"),
	}

	page, err := h.history.List(c.Request.Context(), q)
	if err != nil {
		respondError(c, h.logger, err, "Failed to retrieve messages", h.exposeDetail)
		return
	}

	respondOK(c, page)
}

// queryInt returns def when the parameter is absent, not an integer, or below min.
func queryInt(c *gin.Context, key string, def, min int) int {
	raw, ok := c.GetQuery(key)
	if !ok {
		return def
	}
	v, err := strconv.Atoi(raw)
	if err != nil || v < min {
		return def
	}
	return v
}
