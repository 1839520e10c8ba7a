package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/ROHITHC1526/CyberGuardBOT/internal/service"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func errorResponse(t *testing.T, err error, exposeDetail bool) (int, map[string]any) {
	t.Helper()
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/x", nil)

	respondError(c, zap.NewNop(), err, "Something failed", exposeDetail)

	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return w.Code, body
}

func TestRespondError_Taxonomy(t *testing.T) {
	cases := []struct {
		name    string
		err     error
		status  int
		message string
	}{
		{"validation", service.NewValidationError(), http.StatusBadRequest, "Message is required and cannot be empty"},
		{"unavailable", &service.ScorerUnavailableError{Err: errors.New("refused")}, http.StatusServiceUnavailable, "Scoring engine is unavailable. Please try again later."},
		{"upstream", &service.ScorerUpstreamError{Status: 418, Msg: "teapot"}, 418, "teapot"},
		{"upstream without message", &service.ScorerUpstreamError{Status: 500}, http.StatusInternalServerError, "Error from scoring engine"},
		{"invalid payload", &service.InvalidScorerResponseError{Err: errors.New("missing label")}, http.StatusInternalServerError, "Invalid response from scoring engine"},
		{"unhandled", errors.New("disk on fire"), http.StatusInternalServerError, "Something failed"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			code, body := errorResponse(t, tc.err, false)

			assert.Equal(t, tc.status, code)
			assert.Equal(t, false, body["success"])
			assert.Equal(t, tc.message, body["error"])
			assert.NotContains(t, body, "message")
		})
	}
}

func TestRespondError_DetailOnlyInDevelopment(t *testing.T) {
	_, body := errorResponse(t, errors.New("disk on fire"), true)
	assert.Equal(t, "disk on fire", body["message"])

	_, body = errorResponse(t, &service.InvalidScorerResponseError{Err: errors.New("secret internals")}, true)
	assert.NotContains(t, body, "message")
}

func TestQueryInt(t *testing.T) {
	cases := []struct {
		query string
		want  int
	}{
		{"", 50},
		{"?limit=10", 10},
		{"?limit=abc", 50},
		{"?limit=0", 50},
		{"?limit=-5", 50},
		{"?limit=7.5", 50},
		{"?limit=", 50},
	}

	for _, tc := range cases {
		c, _ := gin.CreateTestContext(httptest.NewRecorder())
		c.Request = httptest.NewRequest(http.MethodGet, "/api/messages"+tc.query, nil)

		assert.Equal(t, tc.want, queryInt(c, "limit", 50, 1), tc.query)
	}

	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest(http.MethodGet, "/api/messages?skip=0", nil)
	assert.Equal(t, 0, queryInt(c, "skip", 0, 0))
}
