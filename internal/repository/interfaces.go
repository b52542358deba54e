package repository

import (
	"context"

	"github.com/mkallas/flashdeck/internal/models"
)

// CategoryRepository handles category data access
type CategoryRepository interface {
	Insert(ctx context.Context, name string) (*models.Category, error)
	Get(ctx context.Context, id int64) (*models.Category, error)
	List(ctx context.Context) ([]models.Category, error)
	Delete(ctx context.Context, id int64) error
}

// CardRepository handles card data access. Insert creates the card and
// its zero-count statistics row in a single transaction.
type CardRepository interface {
	Insert(ctx context.Context, categoryID int64, question, answer string) (*models.Card, error)
	Get(ctx context.Context, id int64) (*models.Card, error)
	ListByCategory(ctx context.Context, filter models.CardFilter) ([]models.Card, error)
	CountByCategory(ctx context.Context, categoryID int64) (int, error)
	Update(ctx context.Context, id int64, question, answer string) (*models.Card, error)
	Delete(ctx context.Context, id int64) error
}

// StatsRepository handles attempt statistics
type StatsRepository interface {
	RecordAttempt(ctx context.Context, cardID int64, correct bool) (*models.CardStats, error)
	ForCard(ctx context.Context, cardID int64) (*models.CardStats, error)
	ListReport(ctx context.Context, filter models.ReportFilter) ([]models.StatsReportRow, error)
}
