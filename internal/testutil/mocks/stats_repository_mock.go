package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/mkallas/flashdeck/internal/models"
)

// MockStatsRepository is a mock implementation of repository.StatsRepository
type MockStatsRepository struct {
	mock.Mock
}

func (m *MockStatsRepository) RecordAttempt(ctx context.Context, cardID int64, correct bool) (*models.CardStats, error) {
	args := m.Called(ctx, cardID, correct)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.CardStats), args.Error(1)
}

func (m *MockStatsRepository) ForCard(ctx context.Context, cardID int64) (*models.CardStats, error) {
	args := m.Called(ctx, cardID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.CardStats), args.Error(1)
}

func (m *MockStatsRepository) ListReport(ctx context.Context, filter models.ReportFilter) ([]models.StatsReportRow, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.StatsReportRow), args.Error(1)
}
