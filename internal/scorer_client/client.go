package scorer_client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/ROHITHC1526/CyberGuardBOT/internal/models"
)

const (
	DefaultTimeout = 10 * time.Second

	// MaxResponseBytes caps how much of an engine answer is read.
	MaxResponseBytes = 1 << 20
)

var (
	// ErrUnreachable covers every transport-level failure: refused
	// connections, DNS errors and timeouts.
	ErrUnreachable = errors.New("scoring engine unreachable")
	// ErrInvalidResponse is returned for a 2xx answer that is not a usable score.
	ErrInvalidResponse = errors.New("invalid response from scoring engine")
)

// StatusError is returned when the scoring engine answers with a non-2xx status.
type StatusError struct {
	StatusCode int
	Message    string // the engine's "error" field, empty when absent
}

func (e *StatusError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("scoring engine returned status %d", e.StatusCode)
	}
	return fmt.Sprintf("scoring engine returned status %d: %s", e.StatusCode, e.Message)
}

// Client is a client for the scam scoring engine.
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     *zap.Logger
}

// DetectRequest is the body of POST /detect-scam.
type DetectRequest struct {
	Message string `json:"message"`
}

// DetectResponse is the raw answer of POST /detect-scam. Pointer fields
// distinguish a missing value from a zero one.
type DetectResponse struct {
	Prediction   *string   `json:"prediction"`
	Probability  *float64  `json:"probability"`
	Explanations *[]string `json:"explanations"`
}

type errorResponse struct {
	Error string `json:"error"`
}

// HealthResponse is the answer of GET / on the scoring engine.
type HealthResponse struct {
	Status      string `json:"status"`
	Message     string `json:"message"`
	ModelLoaded bool   `json:"model_loaded"`
}

// NewClient creates a new scoring engine client. Deadlines are applied per
// call, so the underlying http.Client has no global timeout.
func NewClient(baseURL string, logger *zap.Logger) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{},
		logger:     logger,
	}
}

// Score sends text to the engine once, bounded by timeout.
func (c *Client) Score(ctx context.Context, text string, timeout time.Duration) (*models.ScoreOutcome, error) {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	jsonData, err := json.Marshal(DetectRequest{Message: text})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/detect-scam", bytes.NewReader(jsonData))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Warn("Scoring engine request failed", zap.String("url", req.URL.String()), zap.Error(err))
		return nil, fmt.Errorf("%w: %w", ErrUnreachable, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, MaxResponseBytes+1))
	if err != nil {
		if ctx.Err() != nil {
			return nil, fmt.Errorf("%w: %w", ErrUnreachable, err)
		}
		return nil, fmt.Errorf("%w: failed to read body: %v", ErrInvalidResponse, err)
	}
	if len(body) > MaxResponseBytes {
		return nil, fmt.Errorf("%w: body exceeds %d bytes", ErrInvalidResponse, MaxResponseBytes)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var errBody errorResponse
		_ = json.Unmarshal(body, &errBody)
		return nil, &StatusError{StatusCode: resp.StatusCode, Message: errBody.Error}
	}

	var result DetectResponse
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, fmt.Errorf("%w: failed to decode response: %v", ErrInvalidResponse, err)
	}

	return result.outcome()
}

// outcome validates the raw answer against the scored message invariants.
func (r DetectResponse) outcome() (*models.ScoreOutcome, error) {
	if r.Prediction == nil || *r.Prediction == "" || r.Probability == nil || r.Explanations == nil {
		return nil, fmt.Errorf("%w: missing prediction, probability or explanations", ErrInvalidResponse)
	}

	label, ok := models.ParseLabel(*r.Prediction)
	if !ok {
		return nil, fmt.Errorf("%w: unknown prediction %q", ErrInvalidResponse, *r.Prediction)
	}

	probability := *r.Probability
	if probability < 0 || probability > 100 {
		return nil, fmt.Errorf("%w: probability %v out of range", ErrInvalidResponse, probability)
	}

	explanations := make([]string, len(*r.Explanations))
	copy(explanations, *r.Explanations)

	return &models.ScoreOutcome{
		Label:        label,
		Confidence:   probability,
		Explanations: explanations,
	}, nil
}

// HealthCheck checks if the scoring engine is up and has a model loaded.
func (c *Client) HealthCheck(ctx context.Context) (*HealthResponse, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/", nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrUnreachable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("scoring engine returned status %d: %s", resp.StatusCode, string(body))
	}

	var result HealthResponse
	if err := json.NewDecoder(io.LimitReader(resp.Body, MaxResponseBytes)).Decode(&result); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	return &result, nil
}
