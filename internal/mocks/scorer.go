package mocks

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/ROHITHC1526/CyberGuardBOT/internal/models"
)

// Scorer is a testify mock of service.Scorer.
type Scorer struct {
	mock.Mock
}

func (m *Scorer) Score(ctx context.Context, text string, timeout time.Duration) (*models.ScoreOutcome, error) {
	args := m.Called(ctx, text, timeout)
	var outcome *models.ScoreOutcome
	if v := args.Get(0); v != nil {
		outcome = v.(*models.ScoreOutcome)
	}
	return outcome, args.Error(1)
}

// ScamAlerter is a testify mock of service.ScamAlerter.
type ScamAlerter struct {
	mock.Mock
}

func (m *ScamAlerter) Enqueue(msg models.ScoredMessage, durable bool) bool {
	args := m.Called(msg, durable)
	return args.Bool(0)
}
