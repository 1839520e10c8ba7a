package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/ROHITHC1526/CyberGuardBOT/internal/models"
)

// MessageRepository is a testify mock of repository.MessageRepository.
type MessageRepository struct {
	mock.Mock
}

func (m *MessageRepository) Create(ctx context.Context, msg *models.ScoredMessage) error {
	args := m.Called(ctx, msg)
	return args.Error(0)
}

func (m *MessageRepository) Find(ctx context.Context, filter models.MessageFilter, limit, skip int) ([]models.ScoredMessage, int, error) {
	args := m.Called(ctx, filter, limit, skip)
	var rows []models.ScoredMessage
	if v := args.Get(0); v != nil {
		rows = v.([]models.ScoredMessage)
	}
	return rows, args.Int(1), args.Error(2)
}

func (m *MessageRepository) Count(ctx context.Context, label *models.Label) (int, error) {
	args := m.Called(ctx, label)
	return args.Int(0), args.Error(1)
}

func (m *MessageRepository) Aggregate(ctx context.Context, label models.Label) (*models.ConfidenceStats, error) {
	args := m.Called(ctx, label)
	var stats *models.ConfidenceStats
	if v := args.Get(0); v != nil {
		stats = v.(*models.ConfidenceStats)
	}
	return stats, args.Error(1)
}

func (m *MessageRepository) Ping(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}
