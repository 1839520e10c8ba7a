package service

import (
	"context"
	"fmt"
	"math"

	"go.uber.org/zap"

	"github.com/ROHITHC1526/CyberGuardBOT/internal/models"
	"github.com/ROHITHC1526/CyberGuardBOT/internal/repository"
)

type StatsService interface {
	Compute(ctx context.Context) (*models.Stats, error)
}

type statsService struct {
	repo   repository.MessageRepository
	logger *zap.Logger
}

func NewStatsService(repo repository.MessageRepository, logger *zap.Logger) StatsService {
	return &statsService{repo: repo, logger: logger}
}

func (s *statsService) Compute(ctx context.Context) (*models.Stats, error) {
	total, err := s.repo.Count(ctx, nil)
	if err != nil {
		return nil, s.fail(err)
	}

	scam := models.LabelScam
	scamCount, err := s.repo.Count(ctx, &scam)
	if err != nil {
		return nil, s.fail(err)
	}

	legit := models.LabelLegit
	legitCount, err := s.repo.Count(ctx, &legit)
	if err != nil {
		return nil, s.fail(err)
	}

	scamStats, err := s.repo.Aggregate(ctx, models.LabelScam)
	if err != nil {
		return nil, s.fail(err)
	}

	legitStats, err := s.repo.Aggregate(ctx, models.LabelLegit)
	if err != nil {
		return nil, s.fail(err)
	}

	return &models.Stats{
		TotalMessages:   total,
		ScamCount:       scamCount,
		LegitCount:      legitCount,
		ScamPercentage:  Percentage(scamCount, total),
		LegitPercentage: Percentage(legitCount, total),
		ScamStats:       scamStats,
		LegitStats:      legitStats,
	}, nil
}

func (s *statsService) fail(err error) error {
	s.logger.Error("Failed to compute statistics", zap.Error(err))
	return fmt.Errorf("failed to compute statistics: %w", err)
}

// Percentage is part/total*100 rounded to two decimals, and 0 for an empty total.
func Percentage(part, total int) float64 {
	if total <= 0 {
		return 0
	}
	return round2(float64(part) / float64(total) * 100)
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
