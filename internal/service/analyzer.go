package service

import (
	"context"
	"errors"
	"strings"
	"time"
	"unicode"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/ROHITHC1526/CyberGuardBOT/internal/models"
	"github.com/ROHITHC1526/CyberGuardBOT/internal/repository"
	"github.com/ROHITHC1526/CyberGuardBOT/internal/scorer_client"
)

// Scorer classifies message text. *scorer_client.Client implements it.
type Scorer interface {
	Score(ctx context.Context, text string, timeout time.Duration) (*models.ScoreOutcome, error)
}

// ScamAlerter receives scored messages after analysis. It must not block.
type ScamAlerter interface {
	Enqueue(msg models.ScoredMessage, durable bool) bool
}

type AnalyzeInput struct {
	Message       *string
	SourceAddress *string
}

// Persisted is the outcome of the best-effort store write. Durable is false
// when the message only exists in memory.
type Persisted struct {
	Message models.ScoredMessage
	Durable bool
}

type AnalyzerService interface {
	Analyze(ctx context.Context, in AnalyzeInput) (*models.AnalysisResult, error)
}

type analyzer struct {
	scorer  Scorer
	repo    repository.MessageRepository
	alerter ScamAlerter
	timeout time.Duration
	logger  *zap.Logger

	now         func() time.Time
	ephemeralID func() string
}

// NewAnalyzer wires the orchestrator. alerter may be nil.
func NewAnalyzer(scorer Scorer, repo repository.MessageRepository, alerter ScamAlerter, timeout time.Duration, logger *zap.Logger) AnalyzerService {
	if timeout <= 0 {
		timeout = scorer_client.DefaultTimeout
	}
	return &analyzer{
		scorer:      scorer,
		repo:        repo,
		alerter:     alerter,
		timeout:     timeout,
		logger:      logger,
		now:         time.Now,
		ephemeralID: newEphemeralID,
	}
}

func newEphemeralID() string {
	id, err := uuid.NewV7()
	if err != nil {
		return "ephemeral-" + uuid.NewString()
	}
	return "ephemeral-" + id.String()
}

// trimMessage strips Unicode whitespace and the byte order mark from both ends.
func trimMessage(s string) string {
	return strings.TrimFunc(s, func(r rune) bool {
		return unicode.IsSpace(r) || r == '\uFEFF'
	})
}

func (a *analyzer) Analyze(ctx context.Context, in AnalyzeInput) (*models.AnalysisResult, error) {
	if in.Message == nil {
		return nil, NewValidationError()
	}
	text := trimMessage(*in.Message)
	if text == "" {
		return nil, NewValidationError()
	}

	outcome, err := a.scorer.Score(ctx, text, a.timeout)
	if err != nil {
		return nil, a.mapScorerError(err)
	}

	persisted := a.persist(ctx, models.ScoredMessage{
		Text:          text,
		Label:         outcome.Label,
		Confidence:    outcome.Confidence,
		Explanations:  models.Explanations(outcome.Explanations),
		SourceAddress: in.SourceAddress,
	})

	if a.alerter != nil {
		a.alerter.Enqueue(persisted.Message, persisted.Durable)
	}

	return models.NewAnalysisResult(persisted.Message), nil
}

// persist never fails: a store error degrades the result to an ephemeral one.
func (a *analyzer) persist(ctx context.Context, msg models.ScoredMessage) Persisted {
	stored := msg
	err := a.repo.Create(ctx, &stored)
	if err == nil {
		return Persisted{Message: stored, Durable: true}
	}
	a.logger.Warn("Failed to persist scored message, returning ephemeral result",
		zap.String("prediction", string(msg.Label)),
		zap.Error(err))

	msg.ID = a.ephemeralID()
	msg.CreatedAt = a.now().UTC()
	if msg.Explanations == nil {
		msg.Explanations = models.Explanations{}
	}
	return Persisted{Message: msg, Durable: false}
}

func (a *analyzer) mapScorerError(err error) error {
	var statusErr *scorer_client.StatusError
	switch {
	case errors.As(err, &statusErr):
		return &ScorerUpstreamError{Status: statusErr.StatusCode, Msg: statusErr.Message}
	case errors.Is(err, scorer_client.ErrInvalidResponse):
		a.logger.Error("Scoring engine returned an invalid payload", zap.Error(err))
		return &InvalidScorerResponseError{Err: err}
	case errors.Is(err, scorer_client.ErrUnreachable):
		a.logger.Error("Scoring engine unreachable", zap.Error(err))
		return &ScorerUnavailableError{Err: err}
	default:
		return err
	}
}
