package service

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/ROHITHC1526/CyberGuardBOT/internal/models"
	"github.com/ROHITHC1526/CyberGuardBOT/internal/repository"
)

const (
	DefaultHistoryLimit = 50
	DefaultHistorySkip  = 0
)

// HistoryQuery holds already-parsed pagination values. Prediction is the raw
// filter value; anything other than a valid label means no filter.
type HistoryQuery struct {
	Limit      int
	Skip       int
	Prediction string
}

type HistoryService interface {
	List(ctx context.Context, q HistoryQuery) (*models.HistoryPage, error)
}

type historyService struct {
	repo   repository.MessageRepository
	logger *zap.Logger
}

func NewHistoryService(repo repository.MessageRepository, logger *zap.Logger) HistoryService {
	return &historyService{repo: repo, logger: logger}
}

func (s *historyService) List(ctx context.Context, q HistoryQuery) (*models.HistoryPage, error) {
	if q.Limit <= 0 {
		q.Limit = DefaultHistoryLimit
	}
	if q.Skip < 0 {
		q.Skip = DefaultHistorySkip
	}

	var filter models.MessageFilter
	if label, ok := models.ParseLabel(q.Prediction); ok {
		filter.Label = &label
	}

	rows, total, err := s.repo.Find(ctx, filter, q.Limit, q.Skip)
	if err != nil {
		s.logger.Error("Failed to retrieve messages", zap.Error(err))
		return nil, fmt.Errorf("failed to retrieve messages: %w", err)
	}

	views := make([]models.MessageView, 0, len(rows))
	for _, m := range rows {
		views = append(views, models.NewMessageView(m))
	}

	return &models.HistoryPage{
		Messages: views,
		Pagination: models.Pagination{
			Total:   total,
			Limit:   q.Limit,
			Skip:    q.Skip,
			HasMore: HasMore(q.Skip, q.Limit, total),
		},
	}, nil
}

// HasMore reports whether skip+limit < total without computing the sum, so a
// huge skip cannot overflow.
func HasMore(skip, limit, total int) bool {
	return limit < total && skip < total-limit
}
