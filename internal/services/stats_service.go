package services

import (
	"context"

	"github.com/mkallas/flashdeck/internal/errors"
	"github.com/mkallas/flashdeck/internal/logger"
	"github.com/mkallas/flashdeck/internal/models"
	"github.com/mkallas/flashdeck/internal/repository"
)

// StatsService handles statistics-related business logic
type StatsService interface {
	GetReport(ctx context.Context, filter models.ReportFilter) ([]models.StatsReportRow, error)
	GetCardStats(ctx context.Context, cardID int64) (*models.CardStats, error)
}

type statsService struct {
	statsRepo repository.StatsRepository
}

// NewStatsService creates a new StatsService
func NewStatsService(statsRepo repository.StatsRepository) StatsService {
	return &statsService{statsRepo: statsRepo}
}

func (s *statsService) GetReport(ctx context.Context, filter models.ReportFilter) ([]models.StatsReportRow, error) {
	log := logger.FromContext(ctx)
	log.Debug("getting statistics report: category_id=%d", filter.CategoryID)

	report, err := s.statsRepo.ListReport(ctx, filter)
	if err != nil {
		log.Error("failed to get statistics report: %v", err)
		return nil, errors.NewPersistenceError("list statistics", err)
	}

	return report, nil
}

func (s *statsService) GetCardStats(ctx context.Context, cardID int64) (*models.CardStats, error) {
	log := logger.FromContext(ctx)
	log.Debug("getting card statistics: card_id=%d", cardID)

	stats, err := s.statsRepo.ForCard(ctx, cardID)
	if err != nil {
		log.Error("failed to get card statistics: %v", err)
		return nil, errors.NewPersistenceError("get statistics", err)
	}
	if stats == nil {
		return nil, errors.NewNotFoundError("statistics for card", cardID)
	}

	return stats, nil
}
